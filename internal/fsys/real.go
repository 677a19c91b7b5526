package fsys

import (
	"bytes"
	"os"

	"github.com/natefinch/atomic"
)

// Real implements [FS] using the real filesystem.
//
// ReadFile, ReadDir, and Stat are pure passthroughs to the [os] package.
// WriteFile goes through [github.com/natefinch/atomic] so a write always
// completes as a whole file (temp file + rename) rather than a
// truncate-in-place that a crash mid-write could leave torn.
type Real struct{}

// NewReal returns a new [Real] filesystem.
func NewReal() *Real {
	return &Real{}
}

// A passthrough wrapper for [os.ReadFile].
func (r *Real) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile atomically replaces path's contents with data via
// [atomic.WriteFile]. perm is accepted for interface symmetry with
// [os.WriteFile] but atomic.WriteFile always uses 0600 for the
// temp file; existing file permissions on path are preserved by rename.
func (r *Real) WriteFile(path string, data []byte, _ os.FileMode) error {
	return atomic.WriteFile(path, bytes.NewReader(data))
}

// A passthrough wrapper for [os.ReadDir].
func (r *Real) ReadDir(path string) ([]os.DirEntry, error) {
	return os.ReadDir(path)
}

// A passthrough wrapper for [os.Stat].
func (r *Real) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

// Compile-time interface check.
var _ FS = (*Real)(nil)
