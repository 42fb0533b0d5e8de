package process_test

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/fliem/freesurfer-lgi/errors"
	"github.com/fliem/freesurfer-lgi/process"
)

func TestRunEcho(t *testing.T) {
	var sink bytes.Buffer
	r := &process.Runner{Sink: &sink}
	result, err := r.Run(context.Background(), process.Command{
		Binary: "echo",
		Args:   []string{"hello", "world"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ExitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", result.ExitCode)
	}
	out := strings.TrimSpace(string(result.Output))
	if out != "hello world" {
		t.Fatalf("expected 'hello world', got %q", out)
	}
	if strings.TrimSpace(sink.String()) != "hello world" {
		t.Fatalf("sink did not receive output: %q", sink.String())
	}
}

func TestRunCombinedOutput(t *testing.T) {
	var sink bytes.Buffer
	r := &process.Runner{Sink: &sink}
	result, err := r.Run(context.Background(), process.Command{
		Binary: "sh",
		Args:   []string{"-c", "echo out; echo err >&2; echo out2"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := string(result.Output)
	for _, want := range []string{"out\n", "err\n", "out2\n"} {
		if !strings.Contains(out, want) {
			t.Fatalf("combined output missing %q: %q", want, out)
		}
	}
	if sink.String() != out {
		t.Fatalf("sink and captured output differ:\nsink: %q\ncaptured: %q", sink.String(), out)
	}
}

func TestRunStdin(t *testing.T) {
	var sink bytes.Buffer
	r := &process.Runner{Sink: &sink}
	result, err := r.Run(context.Background(), process.Command{
		Binary: "cat",
		Stdin:  strings.NewReader("from stdin\n"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(string(result.Output)) != "from stdin" {
		t.Fatalf("expected 'from stdin', got %q", result.Output)
	}
}

func TestRunExitCode(t *testing.T) {
	var sink bytes.Buffer
	r := &process.Runner{Sink: &sink}
	result, err := r.Run(context.Background(), process.Command{
		Binary: "sh",
		Args:   []string{"-c", "exit 42"},
	})
	if err == nil {
		t.Fatal("expected error for non-zero exit")
	}
	if result.ExitCode != 42 {
		t.Fatalf("expected exit code 42, got %d", result.ExitCode)
	}
	if !errors.HasCode(err, errors.ErrCodeExternalTool) {
		t.Fatalf("expected EXTERNAL_TOOL_FAILED, got %v", err)
	}
}

func TestRunIgnoreExit(t *testing.T) {
	var sink bytes.Buffer
	r := &process.Runner{Sink: &sink}
	result, err := r.Run(context.Background(), process.Command{
		Binary:     "sh",
		Args:       []string{"-c", "exit 42"},
		IgnoreExit: true,
	})
	if err != nil {
		t.Fatalf("unexpected error with IgnoreExit: %v", err)
	}
	if result.ExitCode != 42 {
		t.Fatalf("expected exit code 42, got %d", result.ExitCode)
	}
}

func TestRunEnvOverride(t *testing.T) {
	var sink bytes.Buffer
	r := &process.Runner{Sink: &sink}
	result, err := r.Run(context.Background(), process.Command{
		Binary: "sh",
		Args:   []string{"-c", "echo $MY_TEST_VAR"},
		Env:    map[string]string{"MY_TEST_VAR": "hello123"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(string(result.Output)) != "hello123" {
		t.Fatalf("expected 'hello123', got %q", result.Output)
	}
}

func TestRunScrubsDebugVar(t *testing.T) {
	t.Setenv("DEBUG", "1")
	var sink bytes.Buffer
	r := &process.Runner{Sink: &sink}
	result, err := r.Run(context.Background(), process.Command{
		Binary: "sh",
		Args:   []string{"-c", `echo "DEBUG=[$DEBUG]"`},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(string(result.Output)) != "DEBUG=[]" {
		t.Fatalf("DEBUG leaked into child env: %q", result.Output)
	}
}

func TestRunScrubsDebugFromOverrides(t *testing.T) {
	var sink bytes.Buffer
	r := &process.Runner{Sink: &sink}
	result, err := r.Run(context.Background(), process.Command{
		Binary: "sh",
		Args:   []string{"-c", `echo "DEBUG=[$DEBUG]"`},
		Env:    map[string]string{"DEBUG": "1"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(string(result.Output)) != "DEBUG=[]" {
		t.Fatalf("DEBUG override not scrubbed: %q", result.Output)
	}
}

func TestRunDoesNotMutateParentEnv(t *testing.T) {
	var sink bytes.Buffer
	r := &process.Runner{Sink: &sink}
	_, err := r.Run(context.Background(), process.Command{
		Binary: "true",
		Env:    map[string]string{"MUTATION_CANARY": "set"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, present := os.LookupEnv("MUTATION_CANARY"); present {
		t.Fatal("parent environment was mutated by Run")
	}
}

func TestRunContextCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	var sink bytes.Buffer
	r := &process.Runner{Sink: &sink}
	result, err := r.Run(ctx, process.Command{
		Binary:      "sleep",
		Args:        []string{"10"},
		GracePeriod: 500 * time.Millisecond,
	})
	if err == nil {
		t.Fatal("expected error from context cancellation")
	}
	if result.Duration > 5*time.Second {
		t.Fatalf("process took too long to kill: %v", result.Duration)
	}
}

func TestRunEmptyBinary(t *testing.T) {
	_, err := process.Run(context.Background(), process.Command{})
	if err == nil {
		t.Fatal("expected error for empty binary")
	}
}
