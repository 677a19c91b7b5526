package reduce_test

import (
	"context"
	"errors"
	"testing"

	"github.com/calvinalkan/chomp/internal/fsys"
	"github.com/calvinalkan/chomp/internal/reduce"
)

// An I/O failure while persisting an attempt is fatal to that attempt,
// not to the whole run (spec.md §7). TryBlank surfaces it as an error
// so the caller (Engine.ExecuteStrategy / the driver) can decide
// whether to keep going.
func TestEngine_TryBlankSurfacesWriteFailure(t *testing.T) {
	t.Parallel()

	fake := fsys.NewFake(map[string][]byte{"a.go": []byte("1\n2\n3")})

	set := reduce.NewFileStateSet()
	if err := set.AddFile(fake, "a.go"); err != nil {
		t.Fatalf("AddFile() error = %v", err)
	}

	engine := reduce.NewEngine(fake, set, reduce.NewOracle("true"))
	if _, err := engine.EstablishBaseline(context.Background()); err != nil {
		t.Fatalf("EstablishBaseline() error = %v", err)
	}

	injected := errors.New("disk full")
	fake.FailWriteOn = "a.go"
	fake.FailErr = injected

	_, err := engine.TryBlank(context.Background(), reduce.ChompRange{File: "a.go", Start: 0, End: 1})
	if !errors.Is(err, injected) {
		t.Fatalf("TryBlank() error = %v, want wrapping %v", err, injected)
	}

	// The line is left unblanked after the failed write.
	fileState, _ := set.Get("a.go")
	if got, want := fileState.NonBlankCount(), 3; got != want {
		t.Fatalf("NonBlankCount() = %d, want %d", got, want)
	}
}
