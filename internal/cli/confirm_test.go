package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestRun_PromptDeclinedAborts(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell command differs on windows")
	}

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.go"), []byte("package main"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	prev := confirmPrompt
	defer func() { confirmPrompt = prev }()

	confirmPrompt = func(string) (bool, error) { return false, nil }

	var outBuf, errBuf bytes.Buffer

	code := Run(nil, &outBuf, &errBuf, []string{"chomp", "--directory", dir, "true"}, nil, nil)
	if code == 0 {
		t.Fatalf("Run() code = 0, want non-zero after declined prompt")
	}

	AssertContains(t, errBuf.String(), "aborted")
}

func TestRun_PromptAcceptedProceeds(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell command differs on windows")
	}

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.go"), []byte("package main"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	prev := confirmPrompt
	defer func() { confirmPrompt = prev }()

	confirmPrompt = func(string) (bool, error) { return true, nil }

	var outBuf, errBuf bytes.Buffer

	code := Run(nil, &outBuf, &errBuf, []string{"chomp", "--directory", dir, "exit 0"}, nil, nil)
	if code != 0 {
		t.Fatalf("Run() code = %d, want 0\nstderr: %s", code, errBuf.String())
	}

	AssertContains(t, outBuf.String(), "lines:")
}
