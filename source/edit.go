package source

import "sort"

// Edit replaces the text covered by Range with Text.
type Edit struct {
	Range TextRange
	Text  string
}

// sortEdits orders edits by Range.Start, ascending.
func sortEdits(edits []Edit) {
	sort.SliceStable(edits, func(i, j int) bool {
		return edits[i].Range.Start.Less(edits[j].Range.Start)
	})
}
