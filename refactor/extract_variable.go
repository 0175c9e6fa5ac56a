package refactor

import (
	"fmt"

	"github.com/thisfred/breakfast-sub000/source"
)

// ExtractVariable implements spec §4.5's extract-variable refactoring:
// sel.Range must span a complete expression. It replaces every
// structurally identical sibling occurrence in the selection's enclosing
// scope with name, and inserts `name = <expr>` at the start of the line
// of the enclosing statement preceding the earliest occurrence, indented
// to match that statement (spec's invariant).
func ExtractVariable(sel CodeSelection, name string, opts ...Option) ([]source.Edit, error) {
	src := sel.Range.Source()
	if src == nil {
		return nil, fmt.Errorf("%w: selection has no source", ErrInvalidSelection)
	}
	expr := sel.Range.Text()
	if expr == "" {
		return nil, fmt.Errorf("%w: empty selection", ErrInvalidSelection)
	}

	scopeRange, err := src.LargestEnclosingScopeRange(sel.Range.Start)
	if err != nil {
		return nil, err
	}
	scopeText := scopeRange.Text()

	offsets := findOccurrences(scopeText, expr)
	if len(offsets) == 0 {
		return nil, fmt.Errorf("%w: selection not found in its own enclosing scope", ErrInvalidSelection)
	}
	wantHash, err := hashSpan(expr)
	if err != nil {
		return nil, err
	}

	edits := make([]source.Edit, 0, len(offsets)+1)
	for _, off := range offsets {
		r, err := spanRange(src, scopeRange, off, expr)
		if err != nil {
			return nil, err
		}
		gotHash, err := hashSpan(r.Text())
		if err != nil {
			return nil, err
		}
		if gotHash != wantHash {
			// Incidental whitespace differences are fine; anything else
			// means findOccurrences and the span reconstruction disagree.
			continue
		}
		edits = append(edits, source.Edit{Range: r, Text: name})
	}
	if len(edits) == 0 {
		return nil, fmt.Errorf("%w: no structurally equivalent occurrence found", ErrInvalidSelection)
	}

	// findOccurrences reports offsets in ascending order, so edits[0] is
	// the earliest occurrence.
	anchorRow := edits[0].Range.Start.Row()
	indent := lineIndent(src, anchorRow)
	insertAt, err := startOfLine(src, anchorRow)
	if err != nil {
		return nil, err
	}
	insertText := fmt.Sprintf("%s%s = %s\n", indent, name, expr)
	edits = append(edits, source.Edit{Range: zeroWidth(insertAt), Text: insertText})

	return edits, nil
}
