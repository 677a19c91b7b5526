package reduce

// ChompRange is a candidate blanking attempt: a half-open line interval
// `[Start, End)` in File (spec.md §3).
type ChompRange struct {
	File  string
	Start int
	End   int
}

// Strategy generates candidate chomp ranges from the current file-state
// snapshot. Generate must be pure and deterministic with respect to its
// input; implementations never mutate files (spec.md §4.3, "Ownership").
type Strategy interface {
	// Name identifies the strategy for progress output and --strategies
	// parsing.
	Name() string

	// Generate returns an ordered list of candidate ranges. The engine
	// iterates the list in order but makes no other ordering assumption
	// across calls.
	Generate(files *FileStateSet) []ChompRange
}
