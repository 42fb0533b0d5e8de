package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fliem/freesurfer-lgi/config"
	"github.com/fliem/freesurfer-lgi/logger"
	"github.com/fliem/freesurfer-lgi/orchestrator"
	"github.com/fliem/freesurfer-lgi/version"
)

func rootCmd() *cobra.Command {
	var (
		participants []string
		nCPUs        int
		licenseKey   string
	)

	cmd := &cobra.Command{
		Use:   "freesurfer-lgi <bids_dir> <output_dir> <analysis_level>",
		Short: "Longitudinal FreeSurfer local gyrification index wrapper",
		Long: `freesurfer-lgi computes the local gyrification index (pial_lgi) for
longitudinal FreeSurfer outputs produced by a prior participant-level stage.

The output directory must be pre-populated with the per-subject longitudinal
directories (sub-<label>_ses-<session>.long.sub-<label>). Timepoints whose
lh.pial_lgi and rh.pial_lgi surfaces already exist are skipped; the rest are
computed with recon-all -long ... -localGI.`,
		Version:       version.GetShortVersion(),
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := &config.Config{
				BIDSDir:           args[0],
				OutputDir:         args[1],
				AnalysisLevel:     args[2],
				ParticipantLabels: splitLabels(participants),
				NCPUs:             nCPUs,
				LicenseKey:        licenseKey,
			}
			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringSliceVar(&participants, "participant_label", nil,
		"subject label(s) to analyze, without the \"sub-\" prefix; repeatable or space separated; default: all subjects in the output dir")
	cmd.Flags().IntVar(&nCPUs, "n_cpus", 1, "number of CPUs/cores available to recon-all")
	cmd.Flags().StringVar(&licenseKey, "license_key", "", "FreeSurfer license key")
	cmd.SetVersionTemplate("{{.Version}}\n")

	return cmd
}

func run(ctx context.Context, cfg *config.Config) error {
	if err := config.Load(cfg); err != nil {
		return err
	}
	if err := cfg.ApplyDefaults(); err != nil {
		return err
	}
	logger.SetGlobalLogger(logger.New(&cfg.Logging))
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Info("starting participant-level analysis", logger.Fields(
		"version", version.GetShortVersion(),
		"output_dir", cfg.OutputDir,
		"n_cpus", cfg.NCPUs,
	))

	return orchestrator.New(cfg, nil).Run(ctx)
}

// splitLabels flattens repeated and space separated --participant_label
// values into one list, mirroring the original BIDS-App CLI.
func splitLabels(values []string) []string {
	var labels []string
	for _, v := range values {
		for _, label := range strings.Fields(v) {
			labels = append(labels, strings.TrimPrefix(label, "sub-"))
		}
	}
	return labels
}
