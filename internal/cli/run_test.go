package cli_test

import (
	"bytes"
	"runtime"
	"testing"

	"github.com/calvinalkan/chomp/internal/cli"
)

func skipOnWindows(t *testing.T) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("shell command differs on windows")
	}
}

func TestRun_RequiresOracleCommand(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile("main.go", "package main")

	stderr := c.MustFail()
	cli.AssertContains(t, stderr, "oracle command is required")
}

func TestRun_HelpExitsZero(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	stdout := c.MustRun("--help")
	cli.AssertContains(t, stdout, "Usage: chomp")
}

func TestRun_FailsWhenNoFilesFound(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	stderr := c.MustFail("true")
	cli.AssertContains(t, stderr, "no source files found")
}

func TestRun_DirectoryMissingFails(t *testing.T) {
	t.Parallel()

	var outBuf, errBuf bytes.Buffer

	code := cli.Run(nil, &outBuf, &errBuf, []string{"chomp", "--directory", "/does/not/exist", "--yes", "true"}, nil, nil)
	if code == 0 {
		t.Fatalf("Run() code = 0, want non-zero")
	}

	cli.AssertContains(t, errBuf.String(), "does not exist")
}

func TestRun_ChompsEverythingWhenOracleIsIndifferent(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	c := cli.NewCLI(t)
	c.WriteFile("main.go", "package main\n\nfunc main() {\n\tprintln(\"hi\")\n}")

	stdout := c.MustRun("exit 0")
	cli.AssertContains(t, stdout, "lines:")

	got := c.ReadFile("main.go")
	for _, r := range got {
		if r != '\n' {
			t.Fatalf("ReadFile(main.go) = %q, want all lines blanked", got)
		}
	}
}

func TestRun_PreservesLinesTheOracleNeeds(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	c := cli.NewCLI(t)
	c.WriteFile("a.go", "needle\nhaystack\nhaystack\nhaystack")

	c.MustRun("grep -q needle a.go")

	got := c.ReadFile("a.go")
	cli.AssertContains(t, got, "needle")
}
