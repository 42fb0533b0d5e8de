package bids

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fliem/freesurfer-lgi/errors"
)

// Subjects derives the distinct subject labels present in outputDir by
// scanning for entries with the BIDS subject prefix.
func Subjects(outputDir string) ([]string, error) {
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return nil, fmt.Errorf("bids: read output dir: %w", err)
	}

	seen := make(map[string]struct{})
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), SubjectPrefix) {
			continue
		}
		seen[SubjectLabel(e.Name())] = struct{}{}
	}

	labels := make([]string, 0, len(seen))
	for l := range seen {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels, nil
}

// Timepoints returns the sorted distinct timepoint identifiers of a subject,
// taken from the longitudinal output directories in outputDir.
// Zero timepoints means the upstream longitudinal stage never ran for this
// subject, which is a fatal precondition failure.
func Timepoints(outputDir, subject string) ([]string, error) {
	pattern := filepath.Join(outputDir, SubjectPrefix+subject+"*"+longMarker+"*")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("bids: glob %s: %w", pattern, err)
	}

	seen := make(map[string]struct{})
	for _, m := range matches {
		name := filepath.Base(m)
		tp, _, ok := strings.Cut(name, longMarker)
		if !ok {
			continue
		}
		seen[tp] = struct{}{}
	}

	if len(seen) == 0 {
		return nil, errors.Precondition(
			fmt.Sprintf("no timepoints found for subject %s, the longitudinal stage did not run", subject))
	}

	tps := make([]string, 0, len(seen))
	for tp := range seen {
		tps = append(tps, tp)
	}
	sort.Strings(tps)
	return tps, nil
}

// MissingLGI reports which of the two hemisphere surface files are absent
// from surfDir. An empty result means the timepoint is complete.
func MissingLGI(surfDir string) []string {
	var missing []string
	for _, name := range []string{LeftLGI, RightLGI} {
		if _, err := os.Stat(filepath.Join(surfDir, name)); err != nil {
			missing = append(missing, name)
		}
	}
	return missing
}
