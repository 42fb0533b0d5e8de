package process

import "time"

// Result holds the output and status of a completed subprocess.
type Result struct {
	// Output is the captured combined stdout and stderr stream, interleaved
	// in arrival order.
	Output []byte
	// ExitCode is the process exit code. -1 if the process was killed.
	ExitCode int
	// Duration is how long the process ran.
	Duration time.Duration
}
