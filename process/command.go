package process

import (
	"io"
	"time"
)

// Command configures a subprocess to execute.
type Command struct {
	// Binary is the executable path or name (resolved via PATH).
	Binary string
	// Args are the command-line arguments.
	Args []string
	// Dir is the working directory. If empty, uses the current directory.
	Dir string
	// Env is additional environment variables layered over a copy of the
	// parent environment. The parent environment itself is never mutated.
	Env map[string]string
	// Stdin provides input to the process. May be nil.
	Stdin io.Reader
	// IgnoreExit suppresses the error for a non-zero exit status.
	// The Result still carries the real exit code.
	IgnoreExit bool
	// GracePeriod is how long to wait after SIGTERM before SIGKILL.
	// Defaults to 5 seconds if zero.
	GracePeriod time.Duration
}
