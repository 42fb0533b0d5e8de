// Package orchestrator drives the per-subject, per-timepoint recon-all loop:
// provision shared template assets, discover longitudinal timepoints, skip
// complete ones, compute the rest, and aggregate failures per subject.
//
// Everything runs sequentially. recon-all parallelizes internally via its
// -openmp flag; this component never overlaps invocations.
package orchestrator

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/fliem/freesurfer-lgi/bids"
	"github.com/fliem/freesurfer-lgi/config"
	"github.com/fliem/freesurfer-lgi/errors"
	"github.com/fliem/freesurfer-lgi/logger"
	"github.com/fliem/freesurfer-lgi/process"
)

// Runner executes an external command to completion.
type Runner interface {
	Run(ctx context.Context, cmd process.Command) (*process.Result, error)
}

// Orchestrator holds one run's configuration and collaborators.
type Orchestrator struct {
	cfg    *config.Config
	runner Runner
	log    *logger.Logger
}

// New creates an Orchestrator. A nil runner gets the default process runner
// streaming child output to stdout.
func New(cfg *config.Config, runner Runner) *Orchestrator {
	if runner == nil {
		runner = &process.Runner{}
	}
	return &Orchestrator{
		cfg:    cfg,
		runner: runner,
		log:    logger.WithComponent("orchestrator").WithRunID(uuid.NewString()),
	}
}

// Run executes the participant-level analysis: verifies the output tree,
// provisions shared assets, then processes each subject in order. The first
// subject whose timepoints cannot all be completed aborts the run.
func (o *Orchestrator) Run(ctx context.Context) error {
	entries, err := os.ReadDir(o.cfg.OutputDir)
	if err != nil {
		return errors.Precondition(
			fmt.Sprintf("cannot read output dir %s", o.cfg.OutputDir)).WithCause(err)
	}
	if len(entries) == 0 {
		return errors.Precondition(
			fmt.Sprintf("output dir %s is empty, run the longitudinal stage first", o.cfg.OutputDir))
	}
	o.log.Info("output dir scanned", logger.Fields("entries", len(entries)))

	if err := o.provisionAssets(ctx); err != nil {
		return err
	}

	subjects := o.cfg.ParticipantLabels
	if len(subjects) == 0 {
		subjects, err = bids.Subjects(o.cfg.OutputDir)
		if err != nil {
			return err
		}
	}
	if len(subjects) == 0 {
		o.log.Warn("no subjects found in output dir")
		return nil
	}

	for _, label := range subjects {
		if err := o.processSubject(ctx, label); err != nil {
			return err
		}
	}
	return nil
}
