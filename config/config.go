// Package config holds the resolved invocation parameters of the wrapper.
// Values come from CLI arguments first, then the process environment, then
// an optional .env file in the working directory.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/fliem/freesurfer-lgi/errors"
	"github.com/fliem/freesurfer-lgi/logger"
	"github.com/fliem/freesurfer-lgi/validation"
)

// AnalysisLevelParticipant is the only analysis level this wrapper supports.
const AnalysisLevelParticipant = "participant"

// Environment variable names consumed by Load.
const (
	EnvSubjectsDir = "SUBJECTS_DIR"
	EnvLicenseKey  = "FS_LICENSE_KEY"
)

// Config is the fully resolved invocation configuration.
type Config struct {
	// BIDSDir is the input dataset directory (BIDS layout, opaque here).
	BIDSDir string `mapstructure:"bids_dir" validate:"required"`
	// OutputDir is where the upstream longitudinal stage left its outputs
	// and where recon-all writes. Made absolute by ApplyDefaults: recon-all
	// mishandles relative -sd paths.
	OutputDir string `mapstructure:"output_dir" validate:"required"`
	// AnalysisLevel must be "participant".
	AnalysisLevel string `mapstructure:"analysis_level" validate:"required,oneof=participant"`
	// ParticipantLabels restricts processing to these subjects. Empty means
	// every subject discoverable in OutputDir.
	ParticipantLabels []string `mapstructure:"participant_label"`
	// NCPUs is passed to recon-all's -openmp flag.
	NCPUs int `mapstructure:"n_cpus" validate:"min=1"`
	// LicenseKey is the FreeSurfer license credential.
	LicenseKey string `mapstructure:"license_key"`
	// SubjectsDir is the shared FreeSurfer reference location holding the
	// template assets (fsaverage, EC averages).
	SubjectsDir string `mapstructure:"subjects_dir"`

	Logging logger.Config `mapstructure:"logging"`
}

// ApplyDefaults applies default values and normalizes paths.
func (c *Config) ApplyDefaults() error {
	if c.NCPUs == 0 {
		c.NCPUs = 1
	}
	c.Logging.ApplyDefaults()

	if c.OutputDir != "" {
		abs, err := filepath.Abs(c.OutputDir)
		if err != nil {
			return fmt.Errorf("config: resolve output dir: %w", err)
		}
		c.OutputDir = abs
	}
	return nil
}

// Validate checks the configuration, distinguishing usage errors from
// missing required settings.
func (c *Config) Validate() error {
	if c.AnalysisLevel != AnalysisLevelParticipant {
		return errors.InvalidInput("analysis_level",
			fmt.Sprintf("analysis level must be %q (got: %q)", AnalysisLevelParticipant, c.AnalysisLevel))
	}
	if c.LicenseKey == "" {
		return errors.MissingConfig("license_key")
	}
	if c.SubjectsDir == "" {
		return errors.MissingConfig(EnvSubjectsDir)
	}
	if err := validation.Validate(c); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return errors.InvalidInput("logging", err.Error())
	}
	return nil
}
