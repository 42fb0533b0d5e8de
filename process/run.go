// Package process executes external commands with combined-output streaming.
//
// FreeSurfer invocations run for hours, so the child's stdout and stderr are
// merged into one stream and relayed line by line as they arrive instead of
// being buffered until exit. The parent environment is copied, never mutated,
// and the DEBUG variable is always scrubbed from the child environment:
// FreeSurfer's debug mode writes gigabytes of diagnostics.
package process

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/fliem/freesurfer-lgi/errors"
)

// debugVar is removed from every child environment unconditionally.
const debugVar = "DEBUG"

// maxLineSize bounds a single output line; recon-all occasionally emits
// very long matrix dumps.
const maxLineSize = 1024 * 1024

// Runner executes subprocesses, relaying their combined output to Sink.
type Runner struct {
	// Sink receives the child's combined output line by line as it arrives.
	// Defaults to os.Stdout.
	Sink io.Writer
}

// Run executes a subprocess and waits for it to complete.
// If the context is canceled, SIGTERM is sent first, then SIGKILL after
// GracePeriod.
func (r *Runner) Run(ctx context.Context, cmd Command) (*Result, error) {
	if cmd.Binary == "" {
		return nil, fmt.Errorf("process: binary is required")
	}

	sink := r.Sink
	if sink == nil {
		sink = os.Stdout
	}

	gracePeriod := cmd.GracePeriod
	if gracePeriod == 0 {
		gracePeriod = 5 * time.Second
	}

	c := exec.CommandContext(ctx, cmd.Binary, cmd.Args...) //nolint:gosec // dynamic args are the purpose of this package
	c.Dir = cmd.Dir
	c.Env = childEnv(cmd.Env)

	if cmd.Stdin != nil {
		c.Stdin = cmd.Stdin
	}

	// One pipe for both streams keeps the interleaving the child produced.
	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("process: pipe: %w", err)
	}
	c.Stdout = pw
	c.Stderr = pw

	// Use process group so we can kill the entire tree
	c.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	// Don't let exec.CommandContext kill with SIGKILL immediately
	c.Cancel = func() error {
		if c.Process == nil {
			return nil
		}
		return syscall.Kill(-c.Process.Pid, syscall.SIGTERM)
	}
	c.WaitDelay = gracePeriod

	start := time.Now()
	if err := c.Start(); err != nil {
		pw.Close()
		pr.Close()
		return nil, fmt.Errorf("process: start %s: %w", cmd.Binary, err)
	}
	// The child holds its own copy of the write end.
	pw.Close()

	var captured bytes.Buffer
	scanner := bufio.NewScanner(pr)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := scanner.Bytes()
		captured.Write(line)
		captured.WriteByte('\n')
		sink.Write(line)
		io.WriteString(sink, "\n")
	}
	if scanner.Err() != nil {
		// keep draining so the child never blocks on a full pipe
		io.Copy(io.Discard, pr) //nolint:errcheck
	}
	pr.Close()

	waitErr := c.Wait()
	duration := time.Since(start)

	result := &Result{
		Output:   captured.Bytes(),
		ExitCode: c.ProcessState.ExitCode(),
		Duration: duration,
	}

	if waitErr != nil {
		// Context cancellation is the expected way to kill a process
		if ctx.Err() != nil {
			return result, fmt.Errorf("process: killed by context: %w", ctx.Err())
		}
		if cmd.IgnoreExit {
			return result, nil
		}
		return result, errors.ExternalTool(cmd.Binary, result.ExitCode).WithCause(waitErr)
	}

	return result, nil
}

// Run executes a command with a default Runner streaming to os.Stdout.
func Run(ctx context.Context, cmd Command) (*Result, error) {
	return (&Runner{}).Run(ctx, cmd)
}

// childEnv builds the child environment: a copy of the parent environment
// with overrides layered on top and the debug variable removed.
func childEnv(overrides map[string]string) []string {
	merged := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			merged[k] = v
		}
	}
	for k, v := range overrides {
		merged[k] = v
	}
	delete(merged, debugVar)

	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	env := make([]string, 0, len(merged))
	for _, k := range keys {
		env = append(env, k+"="+merged[k])
	}
	return env
}
