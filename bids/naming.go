// Package bids maps between BIDS subject/session identifiers and the
// FreeSurfer longitudinal output layout an upstream recon-all stage leaves
// behind. Discovery is purely name-based: a prior stage owns the directory
// contents, this package only reads them.
package bids

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// SubjectPrefix is the BIDS subject directory prefix.
const SubjectPrefix = "sub-"

// longMarker separates the timepoint from its within-subject template in a
// longitudinal output directory name, e.g. "sub-01_ses-1.long.sub-01".
const longMarker = ".long."

// The two hemisphere surface files whose presence marks a timepoint complete.
const (
	LeftLGI  = "lh.pial_lgi"
	RightLGI = "rh.pial_lgi"
)

// ReconAllBinary is the external reconstruction command.
const ReconAllBinary = "recon-all"

// SubjectLabel extracts the bare subject label from a directory entry name,
// e.g. "sub-01_ses-1.long.sub-01" -> "01".
func SubjectLabel(name string) string {
	head, _, _ := strings.Cut(name, "_")
	if idx := strings.LastIndex(head, "-"); idx != -1 {
		return head[idx+1:]
	}
	return head
}

// SessionLabel extracts the session label from a timepoint identifier,
// e.g. "sub-01_ses-2" -> "2".
func SessionLabel(timepoint string) string {
	tail := timepoint
	if idx := strings.LastIndex(tail, "_"); idx != -1 {
		tail = tail[idx+1:]
	}
	if idx := strings.LastIndex(tail, "-"); idx != -1 {
		tail = tail[idx+1:]
	}
	return tail
}

// SurfDir returns the surface output directory of a longitudinal timepoint.
func SurfDir(outputDir, subject, session string) string {
	long := fmt.Sprintf("%s%s_ses-%s%s%s%s", SubjectPrefix, subject, session, longMarker, SubjectPrefix, subject)
	return filepath.Join(outputDir, long, "surf")
}

// ReconLongArgs builds the recon-all argument vector for computing the local
// gyrification index of one longitudinal timepoint.
func ReconLongArgs(timepoint, subject, outputDir string, nCPUs int) []string {
	return []string{
		"-long", timepoint, SubjectPrefix + subject,
		"-sd", outputDir,
		"-localGI",
		"-parallel", "-openmp", strconv.Itoa(nCPUs),
	}
}
