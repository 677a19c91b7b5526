package reduce_test

import (
	"errors"
	"testing"

	"github.com/calvinalkan/chomp/internal/fsys"
	"github.com/calvinalkan/chomp/internal/reduce"
)

func TestFileState_RenderNoBlanks(t *testing.T) {
	t.Parallel()

	fs := reduce.NewFileState("a.go", "one\ntwo\nthree")

	if got, want := fs.Render(), "one\ntwo\nthree"; got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
}

func TestFileState_RenderBlankedLinesBecomeEmpty(t *testing.T) {
	t.Parallel()

	fs := reduce.NewFileState("a.go", "one\ntwo\nthree")
	fs.Blank([]int{1})

	if got, want := fs.Render(), "one\n\nthree"; got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
}

func TestFileState_RenderNeverAddsTrailingNewline(t *testing.T) {
	t.Parallel()

	fs := reduce.NewFileState("a.go", "one\ntwo\nthree")
	fs.Blank([]int{0, 1, 2})

	if got, want := fs.Render(), "\n\n"; got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
}

func TestFileState_BlankOutOfRangeIgnored(t *testing.T) {
	t.Parallel()

	fs := reduce.NewFileState("a.go", "one\ntwo")
	fs.Blank([]int{-1, 99})

	if got, want := fs.NonBlankCount(), 2; got != want {
		t.Fatalf("NonBlankCount() = %d, want %d", got, want)
	}
}

func TestFileState_UnblankRestoresLine(t *testing.T) {
	t.Parallel()

	fs := reduce.NewFileState("a.go", "one\ntwo\nthree")
	fs.Blank([]int{1})
	fs.Unblank([]int{1})

	if got, want := fs.Render(), "one\ntwo\nthree"; got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}

	if got, want := fs.NonBlankCount(), 3; got != want {
		t.Fatalf("NonBlankCount() = %d, want %d", got, want)
	}
}

func TestFileState_NonBlankIndices(t *testing.T) {
	t.Parallel()

	fs := reduce.NewFileState("a.go", "a\nb\nc\nd")
	fs.Blank([]int{1, 3})

	got := fs.NonBlankIndices()
	want := []int{0, 2}

	if len(got) != len(want) {
		t.Fatalf("NonBlankIndices() = %v, want %v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("NonBlankIndices() = %v, want %v", got, want)
		}
	}
}

func TestFileStateSet_PersistAndRestore(t *testing.T) {
	t.Parallel()

	fake := fsys.NewFake(map[string][]byte{
		"a.go": []byte("one\ntwo\nthree"),
	})

	set := reduce.NewFileStateSet()
	if err := set.AddFile(fake, "a.go"); err != nil {
		t.Fatalf("AddFile() error = %v", err)
	}

	fileState, ok := set.Get("a.go")
	if !ok {
		t.Fatalf("Get() ok = false, want true")
	}

	fileState.Blank([]int{1})

	if err := set.PersistAll(fake); err != nil {
		t.Fatalf("PersistAll() error = %v", err)
	}

	got, err := fake.ReadFile("a.go")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	if string(got) != "one\n\nthree" {
		t.Fatalf("persisted content = %q, want %q", got, "one\n\nthree")
	}

	if err := set.RestoreAll(fake); err != nil {
		t.Fatalf("RestoreAll() error = %v", err)
	}

	got, err = fake.ReadFile("a.go")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	if string(got) != "one\ntwo\nthree" {
		t.Fatalf("restored content = %q, want %q", got, "one\ntwo\nthree")
	}
}

func TestFileStateSet_AddFileReplacesInvalidUTF8(t *testing.T) {
	t.Parallel()

	fake := fsys.NewFake(map[string][]byte{
		"bin.go": {0x68, 0x69, 0xff, 0x0a, 0x62, 0x79, 0x65},
	})

	set := reduce.NewFileStateSet()
	if err := set.AddFile(fake, "bin.go"); err != nil {
		t.Fatalf("AddFile() error = %v", err)
	}

	fileState, _ := set.Get("bin.go")

	if got, want := fileState.TotalLines(), 2; got != want {
		t.Fatalf("TotalLines() = %d, want %d", got, want)
	}
}

func TestFileStateSet_AddFileMissingReturnsIOError(t *testing.T) {
	t.Parallel()

	fake := fsys.NewFake(nil)

	set := reduce.NewFileStateSet()

	err := set.AddFile(fake, "missing.go")
	if !errors.Is(err, reduce.ErrIO) {
		t.Fatalf("AddFile() error = %v, want wrapping ErrIO", err)
	}
}
