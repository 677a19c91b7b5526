package reduce

import "errors"

// Fatal engine errors. These indicate a programming error or an
// unrecoverable environment failure (spec.md §7) and propagate up to the
// meta-driver / CLI rather than being treated as a failed attempt.
var (
	errBaselineNotEstablished = errors.New("baseline not established")
	errBaselineAlreadySet     = errors.New("baseline already established")
	errFileNotManaged         = errors.New("file not managed by engine")
	errNoStrategies           = errors.New("no strategies configured")
	errUnknownStrategy        = errors.New("unknown strategy")
	errEmptyCommand           = errors.New("oracle command is empty")
)

// ErrIO wraps any error reading or writing a managed file. Attempts that
// fail with ErrIO are counted as a non-success by Engine.ExecuteStrategy,
// which goes on to the next candidate; they are not fatal to the run and
// the error itself is not reported further.
var ErrIO = errors.New("file I/O")
