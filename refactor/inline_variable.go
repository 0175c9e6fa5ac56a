package refactor

import (
	"fmt"
	"strings"

	"github.com/thisfred/breakfast-sub000/scopegraph"
	"github.com/thisfred/breakfast-sub000/source"
)

// InlineVariable implements spec §4.5's inline-variable refactoring:
// sel.Range.Start must land on the variable's single-assignment
// definition or one of its uses. Every use is replaced with the
// assigned expression's text, and the definition statement is deleted.
func InlineVariable(sel CodeSelection) ([]source.Edit, error) {
	src := sel.Range.Source()
	start, ok := nodeAtPosition(sel.Graph, sel.Range.Start)
	if !ok {
		return nil, fmt.Errorf("%w: no identifier at selection start", ErrInvalidSelection)
	}
	defID := start
	if !sel.Graph.Node(start).IsDefinition() {
		resolved, err := sel.Graph.Resolve(start)
		if err != nil {
			return nil, err
		}
		defID = resolved
	}
	def := sel.Graph.Node(defID)
	if def.Pos == nil {
		return nil, fmt.Errorf("%w: definition has no source position", ErrInvalidSelection)
	}

	rhs, ok := rightHandSide(src.Line(def.Pos.Row()))
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a simple single-line assignment", ErrInvalidSelection, def.Name)
	}

	var edits []source.Edit
	for _, refID := range sel.Graph.ReferencesNamed(def.Name) {
		ref := sel.Graph.Node(refID)
		resolved, err := sel.Graph.Resolve(refID)
		if err != nil || resolved != defID {
			continue
		}
		end, err := ref.Pos.Plus(len([]rune(def.Name)))
		if err != nil {
			return nil, err
		}
		r, err := source.NewTextRange(*ref.Pos, end)
		if err != nil {
			return nil, err
		}
		edits = append(edits, source.Edit{Range: r, Text: rhs})
	}

	delRange, err := deleteLineRange(src, def.Pos.Row())
	if err != nil {
		return nil, err
	}
	edits = append(edits, source.Edit{Range: delRange, Text: ""})

	return edits, nil
}

// nodeAtPosition picks the node AllOccurrencePositions-style functions
// resolve from: a Reference is preferred since it exercises the full
// resolution path; a Definition at the same position is the fallback for
// querying directly at a store site.
func nodeAtPosition(g *scopegraph.Graph, pos source.Position) (scopegraph.NodeID, bool) {
	var fallback scopegraph.NodeID
	haveFallback := false
	for _, id := range g.NodesAt(pos) {
		n := g.Node(id)
		if n.IsReference() {
			return id, true
		}
		if n.IsDefinition() && !haveFallback {
			fallback, haveFallback = id, true
		}
	}
	return fallback, haveFallback
}

// rightHandSide returns the trimmed text to the right of line's top-level
// `=` (not `==`, `!=`, `<=`, `>=`), if any.
func rightHandSide(line string) (string, bool) {
	for i := 0; i < len(line); i++ {
		if line[i] != '=' {
			continue
		}
		if i+1 < len(line) && line[i+1] == '=' {
			i++
			continue
		}
		if i > 0 && strings.ContainsRune("!<>=", rune(line[i-1])) {
			continue
		}
		return strings.TrimSpace(line[i+1:]), true
	}
	return "", false
}

// deleteLineRange returns the range covering the whole of line row,
// including its trailing newline when a following line exists.
func deleteLineRange(src *source.Source, row int) (source.TextRange, error) {
	start, err := src.Position(row, 0)
	if err != nil {
		return source.TextRange{}, err
	}
	if row+1 < len(src.Lines()) {
		end, err := src.Position(row+1, 0)
		if err != nil {
			return source.TextRange{}, err
		}
		return source.NewTextRange(start, end)
	}
	end, err := src.Position(row, len([]rune(src.Line(row))))
	if err != nil {
		return source.TextRange{}, err
	}
	return source.NewTextRange(start, end)
}
