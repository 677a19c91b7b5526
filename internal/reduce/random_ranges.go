package reduce

// RandomRangesStrategy tries removing random variable-length contiguous
// blocks of a file's non-blank lines. Where RandomLinesStrategy probes
// single lines, this strategy can collapse a dead multi-line block
// (an unused function body, an extra argument spread across lines) in
// one attempt (spec.md §4.3.3). Files with fewer than two non-blank
// lines are skipped — a single line is RandomLinesStrategy's job.
type RandomRangesStrategy struct {
	maxAttempts int
	seed        uint64
}

// NewRandomRangesStrategy uses the fixed default seed for reproducibility.
func NewRandomRangesStrategy(maxAttempts int) *RandomRangesStrategy {
	return &RandomRangesStrategy{maxAttempts: maxAttempts, seed: defaultRandomRangesSeed}
}

// NewRandomRangesStrategyWithSeed overrides the default seed.
func NewRandomRangesStrategyWithSeed(maxAttempts int, seed uint64) *RandomRangesStrategy {
	return &RandomRangesStrategy{maxAttempts: maxAttempts, seed: seed}
}

func (RandomRangesStrategy) Name() string { return "random_ranges" }

func (s *RandomRangesStrategy) Generate(files *FileStateSet) []ChompRange {
	paths := files.Paths()
	if len(paths) == 0 {
		return nil
	}

	rng := newLCG(s.seed)

	var ranges []ChompRange

	for i := 0; i < s.maxAttempts; i++ {
		path := paths[rng.intn(len(paths))]

		fileState, _ := files.Get(path)

		nonBlank := fileState.NonBlankIndices()
		if len(nonBlank) < 2 {
			continue
		}

		startIdx := rng.intn(len(nonBlank))

		maxSize := len(nonBlank) / 4
		if maxSize < 1 {
			maxSize = 1
		}

		size := rng.intn(maxSize) + 1

		endIdx := startIdx + size
		if endIdx > len(nonBlank) {
			endIdx = len(nonBlank)
		}

		ranges = append(ranges, ChompRange{
			File:  path,
			Start: nonBlank[startIdx],
			End:   nonBlank[endIdx-1] + 1,
		})
	}

	return ranges
}
