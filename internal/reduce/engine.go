package reduce

import (
	"context"
	"errors"
	"fmt"

	"github.com/calvinalkan/chomp/internal/fsys"
)

// BaselineResult is the oracle's output against the fully-populated,
// unblanked source tree — every later attempt is compared against it
// (spec.md §4.2).
type BaselineResult = RunResult

// Engine drives the blank-persist-run-compare loop against one managed
// [FileStateSet]. It owns the only copy of "what's on disk right now"
// for the files it manages: callers must route every mutation through
// TryBlank rather than touching FileStateSet directly while an Engine
// is live.
type Engine struct {
	fs     fsys.FS
	files  *FileStateSet
	oracle *Oracle

	baseline    BaselineResult
	haveBase    bool
	memo        map[string]bool
	chompsTried int
	chompsKept  int
}

// NewEngine wires a filesystem, the set of managed files (already
// populated via FileStateSet.AddFile/AddFileContent), and the oracle
// command to run after every attempt.
func NewEngine(fs fsys.FS, files *FileStateSet, oracle *Oracle) *Engine {
	return &Engine{
		fs:     fs,
		files:  files,
		oracle: oracle,
		memo:   make(map[string]bool),
	}
}

// EstablishBaseline persists every managed file in its original,
// unblanked form and records the oracle's output as the target every
// later attempt must reproduce exactly. Must be called exactly once,
// before any TryBlank (spec.md §4.2).
func (e *Engine) EstablishBaseline(ctx context.Context) (BaselineResult, error) {
	if e.haveBase {
		return BaselineResult{}, errBaselineAlreadySet
	}

	if err := e.files.RestoreAll(e.fs); err != nil {
		return BaselineResult{}, err
	}

	result, err := e.oracle.Run(ctx)
	if err != nil {
		return BaselineResult{}, fmt.Errorf("establishing baseline: %w", err)
	}

	e.baseline = result
	e.haveBase = true

	return result, nil
}

// TryBlank attempts to blank r's lines in its file. It reports whether
// the attempt succeeded (the oracle's output after blanking was
// bit-identical to the baseline) and leaves the managed file — and
// disk — in whichever state won: blanked on success, restored on
// failure. Identical configurations are memoized by [FileStateSet]'s
// canonical state key so a range already tried (by any strategy, in
// any round) is resolved without a second oracle invocation (spec.md
// §3, "State Key").
func (e *Engine) TryBlank(ctx context.Context, r ChompRange) (bool, error) {
	if !e.haveBase {
		return false, errBaselineNotEstablished
	}

	fileState, ok := e.files.Get(r.File)
	if !ok {
		return false, fmt.Errorf("%w: %s", errFileNotManaged, r.File)
	}

	indices := rangeIndices(r)

	fileState.Blank(indices)
	key := e.files.stateKey()

	if kept, memoized := e.memo[key]; memoized {
		if !kept {
			fileState.Unblank(indices)
		}

		return kept, nil
	}

	e.chompsTried++

	if err := e.files.PersistAll(e.fs); err != nil {
		fileState.Unblank(indices)

		return false, err
	}

	result, err := e.oracle.Run(ctx)
	if err != nil {
		fileState.Unblank(indices)

		return false, err
	}

	kept := result.IsIdentical(e.baseline)
	e.memo[key] = kept

	if kept {
		e.chompsKept++

		return true, nil
	}

	fileState.Unblank(indices)

	if err := e.files.PersistAll(e.fs); err != nil {
		return false, err
	}

	return false, nil
}

// ExecuteStrategy generates candidates from strategy against the
// current file states and tries each in turn, returning how many
// succeeded. A candidate whose range is already fully blanked is
// skipped without consuming an oracle invocation. An attempt that fails
// with [ErrIO] counts as a non-success and the loop moves on; any other
// error ends the strategy and is returned.
func (e *Engine) ExecuteStrategy(ctx context.Context, strategy Strategy) (int, error) {
	candidates := strategy.Generate(e.files)

	successes := 0

	for _, r := range candidates {
		if e.alreadyBlank(r) {
			continue
		}

		ok, err := e.TryBlank(ctx, r)
		if err != nil {
			if errors.Is(err, ErrIO) {
				continue
			}

			return successes, err
		}

		if ok {
			successes++
		}
	}

	return successes, nil
}

func (e *Engine) alreadyBlank(r ChompRange) bool {
	fileState, ok := e.files.Get(r.File)
	if !ok {
		return false
	}

	for _, i := range rangeIndices(r) {
		if i < 0 || i >= fileState.TotalLines() {
			continue
		}

		if _, blanked := fileState.blanked[i]; !blanked {
			return false
		}
	}

	return true
}

// ChompsTried returns the number of attempts not resolved from the memo
// (memoized repeats don't count). An attempt whose write to disk failed
// is counted too, although the oracle was not run for it.
func (e *Engine) ChompsTried() int {
	return e.chompsTried
}

// ChompsKept returns the number of attempts that succeeded.
func (e *Engine) ChompsKept() int {
	return e.chompsKept
}

// Files exposes the managed file-state set for callers that need to
// read final results (rendering, diff reporting) once reduction ends.
func (e *Engine) Files() *FileStateSet {
	return e.files
}

func rangeIndices(r ChompRange) []int {
	if r.End <= r.Start {
		return nil
	}

	indices := make([]int, 0, r.End-r.Start)
	for i := r.Start; i < r.End; i++ {
		indices = append(indices, i)
	}

	return indices
}
