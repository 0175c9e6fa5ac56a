package refactor

import (
	"fmt"

	"github.com/thisfred/breakfast-sub000/occurrence"
	"github.com/thisfred/breakfast-sub000/scopegraph"
	"github.com/thisfred/breakfast-sub000/source"
)

// Rename is a supplemented refactoring built directly on occurrence's
// consolidator (spec §4.4): every position in the occurrence group rooted
// at pos is replaced with newName.
func Rename(g *scopegraph.Graph, pos source.Position, newName string) ([]source.Edit, error) {
	start, ok := nodeAtPosition(g, pos)
	if !ok {
		return nil, fmt.Errorf("%w: no identifier at selection", ErrInvalidSelection)
	}
	name := g.Node(start).Name

	positions, err := occurrence.AllOccurrencePositions(g, pos)
	if err != nil {
		return nil, err
	}

	nameLen := len([]rune(name))
	edits := make([]source.Edit, 0, len(positions))
	for _, p := range positions {
		end, err := p.Plus(nameLen)
		if err != nil {
			return nil, err
		}
		r, err := source.NewTextRange(p, end)
		if err != nil {
			return nil, err
		}
		edits = append(edits, source.Edit{Range: r, Text: newName})
	}
	return edits, nil
}
