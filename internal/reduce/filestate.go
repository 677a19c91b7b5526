package reduce

import (
	"fmt"
	"sort"
	"strings"

	"github.com/calvinalkan/chomp/internal/fsys"
)

// FileState is the per-file record of a managed source file: its
// original lines, as first read, plus the set of line indices currently
// considered blanked. original_lines is never mutated after construction
// (spec.md §3).
type FileState struct {
	Path          string
	originalLines []string
	blanked       map[int]struct{}
}

// NewFileState splits content at LF boundaries (CR, if present, stays
// attached to the preceding line) and starts with nothing blanked. A
// trailing empty segment after a final newline is preserved as an empty
// line, matching strings.Split's behavior (unlike strings.Lines /
// bufio.Scanner, which would drop it).
func NewFileState(path, content string) *FileState {
	return &FileState{
		Path:          path,
		originalLines: strings.Split(content, "\n"),
		blanked:       make(map[int]struct{}),
	}
}

// Blank inserts each in-range index into the blanked set. Out-of-range
// indices are silently ignored (spec.md §4.1 tolerates clamped ranges).
func (s *FileState) Blank(indices []int) {
	for _, i := range indices {
		if i >= 0 && i < len(s.originalLines) {
			s.blanked[i] = struct{}{}
		}
	}
}

// Unblank removes each index from the blanked set. Absent indices are
// ignored.
func (s *FileState) Unblank(indices []int) {
	for _, i := range indices {
		delete(s.blanked, i)
	}
}

// TotalLines returns the number of original lines.
func (s *FileState) TotalLines() int {
	return len(s.originalLines)
}

// NonBlankCount returns the number of lines not currently blanked.
func (s *FileState) NonBlankCount() int {
	return len(s.originalLines) - len(s.blanked)
}

// NonBlankIndices returns, in ascending order, the indices of lines not
// currently blanked.
func (s *FileState) NonBlankIndices() []int {
	out := make([]int, 0, s.NonBlankCount())

	for i := range s.originalLines {
		if _, blanked := s.blanked[i]; !blanked {
			out = append(out, i)
		}
	}

	return out
}

// sortedBlanked returns the currently blanked indices, sorted — used by
// the state key and nowhere else (rendering doesn't need an order).
func (s *FileState) sortedBlanked() []int {
	out := make([]int, 0, len(s.blanked))
	for i := range s.blanked {
		out = append(out, i)
	}

	sort.Ints(out)

	return out
}

// Render produces the current content: original lines in order, each
// blanked index replaced by the empty string, joined by LF. No trailing
// newline is appended — a deliberate, testable choice (spec.md §3, §8
// Scenario A, §9).
func (s *FileState) Render() string {
	lines := make([]string, len(s.originalLines))

	for i, line := range s.originalLines {
		if _, blanked := s.blanked[i]; blanked {
			continue // leave lines[i] as the zero value, ""
		}

		lines[i] = line
	}

	return strings.Join(lines, "\n")
}

// FileStateSet is the engine's managed mapping from path to FileState.
// Strategies receive it only for the duration of generate and must treat
// it as read-only (spec.md §3, "Ownership").
type FileStateSet struct {
	files map[string]*FileState
}

// NewFileStateSet returns an empty set.
func NewFileStateSet() *FileStateSet {
	return &FileStateSet{files: make(map[string]*FileState)}
}

// AddFile reads path from disk (UTF-8, lossy on invalid sequences per
// spec.md §6) and adds it as a managed file.
func (fss *FileStateSet) AddFile(fs fsys.FS, path string) error {
	data, err := fs.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: reading %s: %w", ErrIO, path, err)
	}

	fss.files[path] = NewFileState(path, lossyUTF8(data))

	return nil
}

// AddFileContent registers path with content directly, bypassing disk —
// used by tests and by callers that already have file contents in hand.
func (fss *FileStateSet) AddFileContent(path, content string) {
	fss.files[path] = NewFileState(path, content)
}

// Get returns the managed file-state for path, if any.
func (fss *FileStateSet) Get(path string) (*FileState, bool) {
	fs, ok := fss.files[path]

	return fs, ok
}

// Paths returns all managed paths, sorted — the canonical iteration
// order for anything that needs determinism (state keys, the file
// walker's strategies).
func (fss *FileStateSet) Paths() []string {
	paths := make([]string, 0, len(fss.files))
	for p := range fss.files {
		paths = append(paths, p)
	}

	sort.Strings(paths)

	return paths
}

// Len returns the number of managed files.
func (fss *FileStateSet) Len() int {
	return len(fss.files)
}

// TotalLines sums TotalLines across all managed files.
func (fss *FileStateSet) TotalLines() int {
	total := 0
	for _, fs := range fss.files {
		total += fs.TotalLines()
	}

	return total
}

// NonBlankLines sums NonBlankCount across all managed files.
func (fss *FileStateSet) NonBlankLines() int {
	total := 0
	for _, fs := range fss.files {
		total += fs.NonBlankCount()
	}

	return total
}

// PersistAll writes every managed file's current rendering to disk,
// replacing prior contents. Each write is atomic via [fsys.FS.WriteFile];
// the set does not roll back earlier writes in the same call if a later
// one fails (spec.md §4.1, "best-effort atomic per file").
func (fss *FileStateSet) PersistAll(fs fsys.FS) error {
	for _, path := range fss.Paths() {
		fileState := fss.files[path]

		if err := fs.WriteFile(path, []byte(fileState.Render()), 0o644); err != nil {
			return fmt.Errorf("%w: writing %s: %w", ErrIO, path, err)
		}
	}

	return nil
}

// RestoreAll writes each file's original, unblanked content back to
// disk. Used on abort paths.
func (fss *FileStateSet) RestoreAll(fs fsys.FS) error {
	for _, path := range fss.Paths() {
		fileState := fss.files[path]
		original := strings.Join(fileState.originalLines, "\n")

		if err := fs.WriteFile(path, []byte(original), 0o644); err != nil {
			return fmt.Errorf("%w: restoring %s: %w", ErrIO, path, err)
		}
	}

	return nil
}

// stateKey is the canonical State Key for the current configuration of
// all managed files: for each file, (path, sorted blanked indices), the
// whole set sorted by path and concatenated (spec.md §3). Two logically
// identical configurations always produce the same key regardless of
// insertion order, since both the path list and each file's blanked
// indices are sorted before formatting.
func (fss *FileStateSet) stateKey() string {
	paths := fss.Paths()

	var b strings.Builder

	for i, path := range paths {
		if i > 0 {
			b.WriteByte('|')
		}

		fmt.Fprintf(&b, "%s:%v", path, fss.files[path].sortedBlanked())
	}

	return b.String()
}

// lossyUTF8 decodes data as UTF-8, replacing invalid sequences with
// U+FFFD rather than erroring — the core never rejects binary-ish input
// (spec.md §6); a walker upstream is expected to filter to text files.
func lossyUTF8(data []byte) string {
	return strings.ToValidUTF8(string(data), "�")
}
