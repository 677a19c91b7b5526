// Package fsys provides the filesystem abstraction chomp reads source
// files and writes blanked renderings through.
//
// The main type is [Real], a production implementation backed by [os]
// and [github.com/natefinch/atomic]. Tests that need to exercise the
// "I/O failure during an attempt" error path (spec.md §7) use [Fake], an
// in-memory filesystem whose FailWriteOn/FailErr fields make one write
// fail — see internal/reduce/fs_fault_test.go.
package fsys

import "os"

// FS defines the filesystem operations the reduction engine and the
// directory walker need. All methods mirror their [os] package
// equivalents but are intercepted here so tests can inject failures.
//
// Paths use OS semantics (like the os package and path/filepath), not
// the slash-separated paths used by the standard library io/fs package.
type FS interface {
	// ReadFile reads an entire file into memory. See [os.ReadFile].
	ReadFile(path string) ([]byte, error)

	// WriteFile durably replaces path's contents with data. Implementations
	// must write-then-rename (or equivalent) so a crash never leaves a
	// torn write in place. See [Real.WriteFile].
	WriteFile(path string, data []byte, perm os.FileMode) error

	// ReadDir reads a directory and returns its entries, sorted by name.
	// See [os.ReadDir].
	ReadDir(path string) ([]os.DirEntry, error)

	// Stat returns file info. See [os.Stat].
	Stat(path string) (os.FileInfo, error)
}
