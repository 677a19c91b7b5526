package reduce

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// FileDiff is one file's contribution to a reduction's summary report.
type FileDiff struct {
	Path         string
	OriginalLine int
	FinalLines   int
	Removed      int
	UnifiedDiff  string
}

// DiffReport summarizes what a completed reduction removed, file by
// file: line counts plus an inline diff against each file's original
// content (SUPPLEMENTED FEATURES). UnifiedDiff holds diffmatchpatch's
// pretty text, the original and final content merged inline with
// deletions and insertions marked by ANSI colour codes; it is not in
// unified-diff format. The CLI prints only each file's Summary line at
// the end of a run; the diff text is not printed.
func DiffReport(files *FileStateSet) []FileDiff {
	dmp := diffmatchpatch.New()

	reports := make([]FileDiff, 0, files.Len())

	for _, path := range files.Paths() {
		fileState, _ := files.Get(path)

		original := strings.Join(fileState.originalLines, "\n")
		final := fileState.Render()

		diffs := dmp.DiffMain(original, final, false)
		diffs = dmp.DiffCleanupSemantic(diffs)

		reports = append(reports, FileDiff{
			Path:         path,
			OriginalLine: fileState.TotalLines(),
			FinalLines:   fileState.NonBlankCount(),
			Removed:      fileState.TotalLines() - fileState.NonBlankCount(),
			UnifiedDiff:  dmp.DiffPrettyText(diffs),
		})
	}

	return reports
}

// Summary renders a short human-readable line for one file's diff,
// e.g. "main.rs: 120 -> 47 lines (73 removed)".
func (d FileDiff) Summary() string {
	return fmt.Sprintf("%s: %d -> %d lines (%d removed)", d.Path, d.OriginalLine, d.FinalLines, d.Removed)
}
