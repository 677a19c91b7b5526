package reduce

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
)

// RunResult is a single oracle invocation's observable output: stdout,
// stderr, and exit code. Equality is strict byte-for-byte on stdout and
// stderr and numeric on exit code (spec.md §3).
type RunResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// IsIdentical reports whether a and b are bit-exactly the same result.
func (a RunResult) IsIdentical(b RunResult) bool {
	return a.Stdout == b.Stdout && a.Stderr == b.Stderr && a.ExitCode == b.ExitCode
}

// Oracle runs the user's command through the host shell and captures its
// observable output. It is stateless between calls: successive Run calls
// see whatever is currently on disk (spec.md §4.2).
type Oracle struct {
	command string
	dir     string
}

// NewOracle wraps a single shell command line (not argv) to be run
// through the host platform's shell, inheriting the engine's own
// working directory.
func NewOracle(command string) *Oracle {
	return &Oracle{command: command}
}

// NewOracleInDir is like NewOracle but runs the command with dir as
// its working directory — used when the managed files live outside
// the engine's own process working directory.
func NewOracleInDir(command, dir string) *Oracle {
	return &Oracle{command: command, dir: dir}
}

// Run executes the command via "sh -c" on POSIX platforms or "cmd /C"
// on Windows, inheriting the engine's environment, in the directory
// given to NewOracleInDir (the engine's own working directory for
// NewOracle), and captures the full output in memory. A process killed
// by a signal (no numeric exit code) reports ExitCode -1, matching
// spec.md §3.
func (o *Oracle) Run(ctx context.Context) (RunResult, error) {
	if o.command == "" {
		return RunResult{}, errEmptyCommand
	}

	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.CommandContext(ctx, "cmd", "/C", o.command)
	} else {
		cmd = exec.CommandContext(ctx, "sh", "-c", o.command)
	}

	cmd.Dir = o.dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	var exitErr *exec.ExitError
	switch {
	case runErr == nil:
		return RunResult{Stdout: stdout.String(), Stderr: stderr.String(), ExitCode: 0}, nil
	case errors.As(runErr, &exitErr):
		code := exitErr.ExitCode() // -1 if killed by signal, per os/exec
		return RunResult{Stdout: stdout.String(), Stderr: stderr.String(), ExitCode: code}, nil
	default:
		// The shell itself could not be launched (not found, permission
		// denied) — fatal to the run, not a per-attempt failure (spec.md §7).
		return RunResult{}, fmt.Errorf("launching oracle command: %w", runErr)
	}
}
