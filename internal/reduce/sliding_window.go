package reduce

// SlidingWindowStrategy exhaustively sweeps every consecutive window of
// non-blank indices for a fixed width, or for every width from 1 up to
// a maximum (the "up-to-N" variant), translated back to original line
// numbers. Used as the final, exhaustive pass once bisection and the
// random strategies have stopped finding anything (spec.md §4.3.4).
//
// If a file has fewer non-blank lines than the current width, the
// whole file's remaining non-blank content is emitted as one range
// instead of being skipped — this is the only strategy that can reach
// "blank everything left" in a single candidate.
type SlidingWindowStrategy struct {
	minWidth int
	maxWidth int
}

// NewSlidingWindow fixes the window at a single width w (clamped to at
// least 1).
func NewSlidingWindow(w int) *SlidingWindowStrategy {
	if w < 1 {
		w = 1
	}

	return &SlidingWindowStrategy{minWidth: w, maxWidth: w}
}

// NewUpToN sweeps every width from 1 to w inclusive (clamped to at
// least 1), narrowest first.
func NewUpToN(w int) *SlidingWindowStrategy {
	if w < 1 {
		w = 1
	}

	return &SlidingWindowStrategy{minWidth: 1, maxWidth: w}
}

func (s *SlidingWindowStrategy) Name() string {
	if s.minWidth == s.maxWidth {
		return "sliding_window"
	}

	return "up_to_n_lines"
}

func (s *SlidingWindowStrategy) Generate(files *FileStateSet) []ChompRange {
	var ranges []ChompRange

	for width := s.minWidth; width <= s.maxWidth; width++ {
		for _, path := range files.Paths() {
			fileState, _ := files.Get(path)

			nonBlank := fileState.NonBlankIndices()
			if len(nonBlank) == 0 {
				continue
			}

			if len(nonBlank) < width {
				ranges = append(ranges, ChompRange{
					File:  path,
					Start: nonBlank[0],
					End:   nonBlank[len(nonBlank)-1] + 1,
				})

				continue
			}

			for i := 0; i <= len(nonBlank)-width; i++ {
				ranges = append(ranges, ChompRange{
					File:  path,
					Start: nonBlank[i],
					End:   nonBlank[i+width-1] + 1,
				})
			}
		}
	}

	return ranges
}
