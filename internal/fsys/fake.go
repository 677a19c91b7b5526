package fsys

import (
	"os"
	"sync"
)

// Fake is an in-memory [FS] for unit tests that don't want to touch disk,
// with optional fault injection for exercising I/O-failure paths (see
// spec.md §7, "I/O failure ... fatal to the current attempt").
//
// Zero value is not usable; use [NewFake].
type Fake struct {
	mu    sync.Mutex
	files map[string][]byte

	// FailWriteOn, if set, names a path whose next WriteFile call fails
	// with FailErr instead of succeeding. Cleared after firing once.
	FailWriteOn string
	FailErr     error
}

// NewFake returns an empty in-memory filesystem seeded with files.
func NewFake(files map[string][]byte) *Fake {
	f := &Fake{files: make(map[string][]byte, len(files))}
	for path, data := range files {
		f.files[path] = append([]byte(nil), data...)
	}

	return f
}

func (f *Fake) ReadFile(path string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, ok := f.files[path]
	if !ok {
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	}

	return append([]byte(nil), data...), nil
}

func (f *Fake) WriteFile(path string, data []byte, _ os.FileMode) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.FailWriteOn != "" && f.FailWriteOn == path {
		f.FailWriteOn = ""

		return f.FailErr
	}

	f.files[path] = append([]byte(nil), data...)

	return nil
}

func (f *Fake) ReadDir(string) ([]os.DirEntry, error) {
	return nil, nil
}

func (f *Fake) Stat(path string) (os.FileInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.files[path]; !ok {
		return nil, &os.PathError{Op: "stat", Path: path, Err: os.ErrNotExist}
	}

	return nil, nil
}

var _ FS = (*Fake)(nil)
