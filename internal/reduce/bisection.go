package reduce

// BisectionStrategy systematically proposes removing progressively
// smaller contiguous blocks of a file's currently non-blank lines:
// halves, quarters, eighths, and so on, down to single lines (spec.md
// §4.3.1). Operating on non-blank indices rather than raw line numbers
// means later rounds (after other strategies have blanked some lines)
// still bisect only what's left, instead of re-proposing ranges that
// straddle already-blanked lines.
//
// The base width is ⌊|L|/2⌋, which never reaches the whole file in one
// range — preserved as-is per spec.md §9; SlidingWindowStrategy covers
// the whole-file case.
type BisectionStrategy struct{}

func (BisectionStrategy) Name() string { return "bisection" }

func (BisectionStrategy) Generate(files *FileStateSet) []ChompRange {
	var ranges []ChompRange

	for _, path := range files.Paths() {
		fileState, _ := files.Get(path)

		nonBlank := fileState.NonBlankIndices()
		if len(nonBlank) == 0 {
			continue
		}

		for width := len(nonBlank) / 2; width > 0; width /= 2 {
			for chunkStart := 0; chunkStart < len(nonBlank); chunkStart += width {
				chunkEnd := chunkStart + width
				if chunkEnd > len(nonBlank) {
					chunkEnd = len(nonBlank)
				}

				ranges = append(ranges, ChompRange{
					File:  path,
					Start: nonBlank[chunkStart],
					End:   nonBlank[chunkEnd-1] + 1,
				})
			}
		}
	}

	return ranges
}
