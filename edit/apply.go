// Package edit implements the edit applier (spec §4.6): it sorts a
// refactoring's edits, verifies they do not overlap, and reconstructs the
// revised source text by interleaving original text with replacements.
package edit

import (
	"fmt"
	"sort"

	"github.com/thisfred/breakfast-sub000/source"
)

// ErrOverlap is returned when two edits in the same source overlap; the
// spec treats this as a caller bug, not a recoverable condition.
var ErrOverlap = fmt.Errorf("edit: overlapping edits")

// Sort returns edits ordered by Range.Start, ascending. It does not
// mutate its argument.
func Sort(edits []source.Edit) []source.Edit {
	out := make([]source.Edit, len(edits))
	copy(out, edits)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Range.Start.Less(out[j].Range.Start)
	})
	return out
}

// CheckNonOverlapping verifies that sorted edits never overlap within the
// same source; edits against different sources never conflict.
func CheckNonOverlapping(sorted []source.Edit) error {
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		if prev.Range.Source() != cur.Range.Source() {
			continue
		}
		if cur.Range.Start.Less(prev.Range.End) {
			return fmt.Errorf("%w: %s and %s", ErrOverlap, prev.Range.Start, cur.Range.Start)
		}
	}
	return nil
}

// Apply sorts edits, verifies non-overlap, and reconstructs src's text
// with every edit's range replaced by its text. Line endings in the
// result are always "\n" (matching spec §4.6).
func Apply(src *source.Source, edits []source.Edit) (string, error) {
	sorted := Sort(edits)
	if err := CheckNonOverlapping(sorted); err != nil {
		return "", err
	}
	lines := src.Lines()
	startOfFile, err := src.Position(0, 0)
	if err != nil {
		return "", err
	}
	lastRow := len(lines) - 1
	lastCol := len([]rune(src.Line(lastRow)))
	endOfFile, err := src.Position(lastRow, lastCol)
	if err != nil {
		return "", err
	}
	fullRange, err := source.NewTextRange(startOfFile, endOfFile)
	if err != nil {
		return "", err
	}
	return fullRange.TextWithSubstitutions(sorted), nil
}
