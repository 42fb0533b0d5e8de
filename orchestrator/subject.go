package orchestrator

import (
	"context"
	"strings"

	"github.com/fliem/freesurfer-lgi/bids"
	"github.com/fliem/freesurfer-lgi/errors"
	"github.com/fliem/freesurfer-lgi/logger"
	"github.com/fliem/freesurfer-lgi/process"
)

// processSubject runs the local gyrification computation for every
// incomplete timepoint of one subject. Individual timepoint failures are
// recorded and the loop continues; afterwards any failure becomes a single
// aggregate error naming the subject and the failed session labels.
func (o *Orchestrator) processSubject(ctx context.Context, label string) error {
	log := o.log.WithSubject(label)

	timepoints, err := bids.Timepoints(o.cfg.OutputDir, label)
	if err != nil {
		return err
	}
	log.Info("timepoints found", logger.Fields("timepoints", timepoints))

	results := make([]TimepointResult, 0, len(timepoints))
	for _, tp := range timepoints {
		res, err := o.processTimepoint(ctx, log, label, tp)
		if err != nil {
			// Only context cancellation aborts the timepoint loop.
			return err
		}
		results = append(results, res)
	}

	if good := sessionsIn(results, StateSucceeded); len(good) > 0 {
		log.Info("timepoints successfully processed", logger.Fields("sessions", good))
	}
	if bad := sessionsIn(results, StateFailed); len(bad) > 0 {
		return errors.TimepointsFailed(label, bad)
	}
	log.Info("all timepoints complete")
	return nil
}

// processTimepoint computes one timepoint, returning its outcome. An error
// return is reserved for context cancellation; tool failures are folded into
// the result state.
func (o *Orchestrator) processTimepoint(ctx context.Context, log *logger.Logger, label, tp string) (TimepointResult, error) {
	session := bids.SessionLabel(tp)
	res := TimepointResult{Timepoint: tp, Session: session}
	surfDir := bids.SurfDir(o.cfg.OutputDir, label, session)

	if missing := bids.MissingLGI(surfDir); len(missing) == 0 {
		log.Info("pial_lgi surfaces exist, not recomputing",
			logger.Fields(logger.FieldSession, session))
		res.State = StateSkipped
		return res, nil
	}

	log.Info("running longitudinal localGI",
		logger.Fields(logger.FieldTimepoint, tp, logger.FieldSession, session))

	_, err := o.runner.Run(ctx, process.Command{
		Binary: bids.ReconAllBinary,
		Args:   bids.ReconLongArgs(tp, label, o.cfg.OutputDir, o.cfg.NCPUs),
	})
	if err != nil {
		if ctx.Err() != nil {
			return res, err
		}
		log.WithError(err).Warn("recon-all failed, trying remaining timepoints",
			logger.Fields(logger.FieldSession, session))
		res.State = StateFailed
		return res, nil
	}

	if missing := bids.MissingLGI(surfDir); len(missing) > 0 {
		log.Warn("pial_lgi missing after computation, trying remaining timepoints",
			logger.Fields(logger.FieldSession, session, "missing", strings.Join(missing, " ")))
		res.State = StateFailed
		res.Missing = missing
		return res, nil
	}

	log.Info("pial_lgi computed", logger.Fields(logger.FieldSession, session))
	res.State = StateSucceeded
	return res, nil
}
