package refactor

import (
	"github.com/thisfred/breakfast-sub000/scopegraph"
	"github.com/thisfred/breakfast-sub000/source"
)

// SlideStatementsDown implements spec §4.5's slide-down refactoring: it
// finds the earliest downstream position that reads a name assigned in
// sel.Range, and moves the selected statement(s) to just above that
// statement (walking back to the read's enclosing indentation level if
// the read sits inside a deeper block). A no-op (nil, nil) is returned
// when no such target exists at least one line past the range.
func SlideStatementsDown(sel CodeSelection) ([]source.Edit, error) {
	src := sel.Range.Source()
	g := sel.Graph

	earliest, ok := earliestReadAfter(g, sel.Range)
	if !ok {
		return nil, nil
	}
	targetRow := walkBackToOuterIndent(src, earliest.Row(), sel.Range.Start.Row())
	if targetRow <= sel.Range.End.Row() {
		return nil, nil
	}
	return moveRangeTo(src, sel.Range, targetRow)
}

// SlideStatementsUp implements spec §4.5's slide-up refactoring: it finds
// the latest upstream statement in the enclosing scope that defines a
// name read in sel.Range, and moves the selected statement(s) to just
// below it. A no-op (nil, nil) is returned when no such target exists
// strictly above the range.
func SlideStatementsUp(sel CodeSelection) ([]source.Edit, error) {
	src := sel.Range.Source()
	g := sel.Graph

	latest, ok := latestDefinitionBefore(g, sel.Range)
	if !ok {
		return nil, nil
	}
	targetRow := latest.Row() + 1
	if targetRow >= sel.Range.Start.Row() {
		return nil, nil
	}
	return moveRangeTo(src, sel.Range, targetRow)
}

// earliestReadAfter returns the position of the earliest Reference after
// r.End that resolves to a Definition recorded inside r.
func earliestReadAfter(g *scopegraph.Graph, r source.TextRange) (source.Position, bool) {
	defs := definitionsInRange(g, r)
	var earliest *source.Position
	for _, d := range defs {
		for _, refID := range g.ReferencesNamed(d.name) {
			ref := g.Node(refID)
			if ref.Pos == nil || !r.End.Less(*ref.Pos) {
				continue
			}
			resolved, err := g.Resolve(refID)
			if err != nil || resolved != d.id {
				continue
			}
			if earliest == nil || ref.Pos.Less(*earliest) {
				p := *ref.Pos
				earliest = &p
			}
		}
	}
	if earliest == nil {
		return source.Position{}, false
	}
	return *earliest, true
}

// latestDefinitionBefore returns the position of the latest Definition
// before r.Start that some Reference inside r resolves to.
func latestDefinitionBefore(g *scopegraph.Graph, r source.TextRange) (source.Position, bool) {
	var latest *source.Position
	for _, id := range g.NodesInRange(r) {
		n := g.Node(id)
		if !n.IsReference() {
			continue
		}
		resolved, err := g.Resolve(id)
		if err != nil {
			continue
		}
		def := g.Node(resolved)
		if def.Pos == nil || !def.Pos.Less(r.Start) {
			continue
		}
		if latest == nil || latest.Less(*def.Pos) {
			p := *def.Pos
			latest = &p
		}
	}
	if latest == nil {
		return source.Position{}, false
	}
	return *latest, true
}

type rangeDef struct {
	name string
	id   scopegraph.NodeID
}

func definitionsInRange(g *scopegraph.Graph, r source.TextRange) []rangeDef {
	var out []rangeDef
	for _, id := range g.NodesInRange(r) {
		n := g.Node(id)
		if n.IsDefinition() {
			out = append(out, rangeDef{name: n.Name, id: id})
		}
	}
	return out
}

// walkBackToOuterIndent walks row upward while its line is more deeply
// indented than anchorRow's line, so a slide target lands at the start
// of the enclosing statement rather than mid-block.
func walkBackToOuterIndent(src *source.Source, row, anchorRow int) int {
	anchorLen := len([]rune(lineIndent(src, anchorRow)))
	for row > 0 && len([]rune(lineIndent(src, row))) > anchorLen {
		row--
	}
	return row
}

// moveRangeTo deletes r's whole lines and reinserts their text at the
// start of targetRow.
func moveRangeTo(src *source.Source, r source.TextRange, targetRow int) ([]source.Edit, error) {
	text := r.Text()
	delRange, err := deleteRangeLines(src, r)
	if err != nil {
		return nil, err
	}
	insertAt, err := startOfLine(src, targetRow)
	if err != nil {
		return nil, err
	}
	return []source.Edit{
		{Range: delRange, Text: ""},
		{Range: zeroWidth(insertAt), Text: text + "\n"},
	}, nil
}

// deleteRangeLines returns the range covering every whole line r spans,
// including the trailing newline when a following line exists.
func deleteRangeLines(src *source.Source, r source.TextRange) (source.TextRange, error) {
	start, err := src.Position(r.Start.Row(), 0)
	if err != nil {
		return source.TextRange{}, err
	}
	if r.End.Row()+1 < len(src.Lines()) {
		end, err := src.Position(r.End.Row()+1, 0)
		if err != nil {
			return source.TextRange{}, err
		}
		return source.NewTextRange(start, end)
	}
	end, err := src.Position(r.End.Row(), len([]rune(src.Line(r.End.Row()))))
	if err != nil {
		return source.TextRange{}, err
	}
	return source.NewTextRange(start, end)
}
