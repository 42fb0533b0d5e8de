package orchestrator

// State is the outcome of one timepoint within a run.
type State string

const (
	// StateSkipped means both surface files pre-existed, nothing was run.
	StateSkipped State = "skipped"
	// StateSucceeded means recon-all ran and both surface files exist.
	StateSucceeded State = "succeeded"
	// StateFailed means recon-all failed or the surface files are missing
	// after a clean exit.
	StateFailed State = "failed"
)

// TimepointResult records the outcome of one timepoint.
type TimepointResult struct {
	// Timepoint is the full identifier, e.g. "sub-01_ses-2".
	Timepoint string
	// Session is the bare session label, e.g. "2". Failure reporting uses
	// this shorter form.
	Session string
	// State is the outcome.
	State State
	// Missing lists the surface files absent after a clean recon-all exit.
	Missing []string
}

// sessionsIn collects the session labels of results in the given state.
func sessionsIn(results []TimepointResult, state State) []string {
	var sessions []string
	for _, r := range results {
		if r.State == state {
			sessions = append(sessions, r.Session)
		}
	}
	return sessions
}
