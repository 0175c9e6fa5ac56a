package refactor

import (
	"github.com/thisfred/breakfast-sub000/scopegraph"
	"github.com/thisfred/breakfast-sub000/source"
)

// FreeVariables returns the names, in first-occurrence source order, that
// are read inside r but whose definition lies strictly before r.Start
// within the enclosing scope (spec §4.5's extract-function contract:
// "free_variables ... these become parameters").
func FreeVariables(g *scopegraph.Graph, r source.TextRange) []string {
	seen := map[string]bool{}
	var out []string
	for _, id := range g.NodesInRange(r) {
		n := g.Node(id)
		if !n.IsReference() {
			continue
		}
		defID, err := g.Resolve(id)
		if err != nil {
			continue
		}
		def := g.Node(defID)
		if def.Pos == nil || !def.Pos.Less(r.Start) {
			continue
		}
		if seen[n.Name] {
			continue
		}
		seen[n.Name] = true
		out = append(out, n.Name)
	}
	return out
}

// ModifiedAndReadAfter returns the names, in first-occurrence source
// order, that are assigned inside r and read after r.End within the same
// enclosing scope (spec §4.5's extract-function contract: "these become
// return values in source order, unique").
func ModifiedAndReadAfter(g *scopegraph.Graph, r source.TextRange) []string {
	seen := map[string]bool{}
	var out []string
	for _, id := range g.NodesInRange(r) {
		n := g.Node(id)
		if !n.IsDefinition() || n.Pos == nil {
			continue
		}
		if readAfter(g, n.Name, id, r.End) {
			if seen[n.Name] {
				continue
			}
			seen[n.Name] = true
			out = append(out, n.Name)
		}
	}
	return out
}

// readAfter reports whether any Reference named name, positioned after
// end, resolves back to the Definition def.
func readAfter(g *scopegraph.Graph, name string, def scopegraph.NodeID, end source.Position) bool {
	for _, refID := range g.ReferencesNamed(name) {
		ref := g.Node(refID)
		if ref.Pos == nil || !end.Less(*ref.Pos) {
			continue
		}
		resolved, err := g.Resolve(refID)
		if err == nil && resolved == def {
			return true
		}
	}
	return false
}
