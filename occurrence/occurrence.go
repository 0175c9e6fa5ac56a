// Package occurrence implements spec §4.4's occurrence consolidator: it
// groups every Reference and Definition node that names the same
// binding into one rename-ready set of source positions.
package occurrence

import (
	"errors"
	"sort"

	"github.com/thisfred/breakfast-sub000/scopegraph"
	"github.com/thisfred/breakfast-sub000/source"
)

// ErrNotFound is returned when pos does not land on any scope-graph node.
var ErrNotFound = errors.New("occurrence: no node at position")

// Group is one consolidated set of positions that all name the same
// binding, in source order, yaml-tagged for golden-test comparison.
type Group struct {
	Positions []string `yaml:"positions"`
}

// AllOccurrencePositions resolves the node at pos to its definition, then
// collects every other Reference/Definition of the same bare name that
// resolves to that same definition, returning every position in source
// order (spec §4.4, step by step: find the starting node, resolve it,
// walk every same-named node, group by resolved identity, sort).
func AllOccurrencePositions(g *scopegraph.Graph, pos source.Position) ([]source.Position, error) {
	start, ok := startingNode(g, pos)
	if !ok {
		return nil, ErrNotFound
	}

	defID := start
	if !g.Node(start).IsDefinition() {
		resolved, err := g.Resolve(start)
		if err != nil {
			return nil, err
		}
		defID = resolved
	}

	defNode := g.Node(defID)
	name := defNode.Name

	var positions []source.Position
	if defNode.Pos != nil {
		positions = append(positions, *defNode.Pos)
	}
	for _, refID := range g.ReferencesNamed(name) {
		resolved, err := g.Resolve(refID)
		if err != nil || resolved != defID {
			continue
		}
		if p := g.Node(refID).Pos; p != nil {
			positions = append(positions, *p)
		}
	}

	return dedupeSorted(positions), nil
}

// startingNode picks the node AllOccurrencePositions should resolve from:
// a Reference recorded at pos is preferred because it exercises the full
// resolution path rather than trivially stopping at itself; otherwise the
// first Definition recorded there is used.
func startingNode(g *scopegraph.Graph, pos source.Position) (scopegraph.NodeID, bool) {
	ids := g.NodesAt(pos)
	var fallback scopegraph.NodeID
	haveFallback := false
	for _, id := range ids {
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

func dedupeSorted(positions []source.Position) []source.Position {
	sort.SliceStable(positions, func(i, j int) bool { return positions[i].Less(positions[j]) })
	out := positions[:0:0]
	for i, p := range positions {
		if i > 0 && p.Equal(positions[i-1]) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// GroupAt renders AllOccurrencePositions's result as a yaml-friendly
// Group for golden tests.
func GroupAt(g *scopegraph.Graph, pos source.Position) (Group, error) {
	positions, err := AllOccurrencePositions(g, pos)
	if err != nil {
		return Group{}, err
	}
	grp := Group{Positions: make([]string, len(positions))}
	for i, p := range positions {
		grp.Positions[i] = p.String()
	}
	return grp, nil
}
