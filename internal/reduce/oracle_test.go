package reduce_test

import (
	"context"
	"errors"
	"runtime"
	"testing"

	"github.com/calvinalkan/chomp/internal/reduce"
)

func TestOracle_CapturesStdoutStderrAndExitCode(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("shell command differs on windows")
	}

	oracle := reduce.NewOracle(`echo -n out; echo -n err 1>&2; exit 3`)

	result, err := oracle.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stdout != "out" {
		t.Fatalf("Stdout = %q, want %q", result.Stdout, "out")
	}

	if result.Stderr != "err" {
		t.Fatalf("Stderr = %q, want %q", result.Stderr, "err")
	}

	if result.ExitCode != 3 {
		t.Fatalf("ExitCode = %d, want 3", result.ExitCode)
	}
}

func TestOracle_EmptyCommandErrors(t *testing.T) {
	t.Parallel()

	oracle := reduce.NewOracle("")

	_, err := oracle.Run(context.Background())
	if err == nil {
		t.Fatalf("Run() error = nil, want non-nil")
	}
}

func TestRunResult_IsIdentical(t *testing.T) {
	t.Parallel()

	a := reduce.RunResult{Stdout: "x", Stderr: "y", ExitCode: 1}
	b := reduce.RunResult{Stdout: "x", Stderr: "y", ExitCode: 1}
	c := reduce.RunResult{Stdout: "x", Stderr: "y", ExitCode: 2}

	if !a.IsIdentical(b) {
		t.Fatalf("IsIdentical(a, b) = false, want true")
	}

	if a.IsIdentical(c) {
		t.Fatalf("IsIdentical(a, c) = true, want false")
	}
}

func TestOracle_ContextCancellationStopsProcess(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("shell command differs on windows")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	oracle := reduce.NewOracle("sleep 5")

	_, err := oracle.Run(ctx)
	if err == nil {
		t.Fatalf("Run() error = nil, want non-nil after cancellation")
	}

	if !errors.Is(err, context.Canceled) {
		t.Logf("Run() error = %v (not wrapping context.Canceled, acceptable if shell reports its own failure)", err)
	}
}
