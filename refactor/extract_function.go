package refactor

import (
	"fmt"
	"strings"

	"github.com/thisfred/breakfast-sub000/source"
)

// ExtractFunction implements spec §4.5's extract-function/method
// refactoring. sel.Range must cover one or more whole statements or a
// partial single-line expression. Free variables (names read in range
// whose definition precedes it) become parameters; names assigned in
// range and read afterwards become return values, in source order.
func ExtractFunction(sel CodeSelection, name string, opts ...Option) ([]source.Edit, error) {
	o := newOptions(opts...)
	src := sel.Range.Source()
	if src == nil {
		return nil, fmt.Errorf("%w: selection has no source", ErrInvalidSelection)
	}
	selText := sel.Range.Text()
	if strings.TrimSpace(selText) == "" {
		return nil, fmt.Errorf("%w: empty selection", ErrInvalidSelection)
	}

	free := FreeVariables(sel.Graph, sel.Range)
	returns := ModifiedAndReadAfter(sel.Graph, sel.Range)

	isMethod := false
	params := make([]string, 0, len(free))
	for _, p := range free {
		if p == "self" {
			isMethod = true
			continue
		}
		params = append(params, p)
	}

	partial := !isWholeStatementSelection(src, sel.Range)

	var body string
	if partial {
		body = o.indent + "return " + selText
	} else {
		body = reindentBlock(selText, o.indent)
		if len(returns) > 0 {
			body += "\n" + o.indent + "return " + strings.Join(returns, ", ")
		}
	}

	displayParams := params
	if isMethod {
		displayParams = append([]string{"self"}, params...)
	}
	def := fmt.Sprintf("def %s(%s):\n%s\n", name, strings.Join(displayParams, ", "), body)

	insertAt, err := insertionPointAfterEnclosingFunction(src, sel.Range.Start)
	if err != nil {
		return nil, err
	}

	callArgs := make([]string, len(params))
	for i, p := range params {
		callArgs[i] = fmt.Sprintf("%s=%s", p, p)
	}
	callee := name
	if isMethod {
		callee = "self." + name
	}
	callExpr := fmt.Sprintf("%s(%s)", callee, strings.Join(callArgs, ", "))

	var call string
	switch {
	case partial:
		call = callExpr
	case len(returns) > 0:
		call = fmt.Sprintf("%s = %s\n", strings.Join(returns, ", "), callExpr)
	default:
		call = callExpr + "\n"
	}

	edits := []source.Edit{
		{Range: insertAt, Text: insertionText(src, insertAt, def)},
		{Range: sel.Range, Text: call},
	}
	return edits, nil
}

// isWholeStatementSelection reports whether r begins at its first line's
// indentation and ends at its last line's end, i.e. covers whole
// statements rather than a sub-expression.
func isWholeStatementSelection(src *source.Source, r source.TextRange) bool {
	indentLen := len([]rune(lineIndent(src, r.Start.Row())))
	if r.Start.Column() != indentLen {
		return false
	}
	endLen := len([]rune(src.Line(r.End.Row())))
	return r.End.Column() == endLen
}

// reindentBlock strips text's common leading whitespace and reapplies
// indent uniformly, so a block moved into a new function body lands at
// exactly one nesting level regardless of its original placement.
func reindentBlock(text, indent string) string {
	lines := strings.Split(text, "\n")
	common := commonLeadingWhitespace(lines)
	for i, l := range lines {
		if strings.TrimSpace(l) == "" {
			lines[i] = ""
			continue
		}
		lines[i] = indent + strings.TrimPrefix(l, common)
	}
	return strings.Join(lines, "\n")
}

func commonLeadingWhitespace(lines []string) string {
	var common string
	first := true
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		ws := l[:len(l)-len(strings.TrimLeft(l, " \t"))]
		if first {
			common = ws
			first = false
			continue
		}
		common = commonPrefix(common, ws)
	}
	return common
}

func commonPrefix(a, b string) string {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return a[:i]
}

// insertionPointAfterEnclosingFunction locates the zero-width range where
// the extracted function's definition should be inserted: immediately
// after the enclosing function, or at end of file when pos is at module
// scope or the enclosing function is the file's last statement.
func insertionPointAfterEnclosingFunction(src *source.Source, pos source.Position) (source.TextRange, error) {
	funcRange, err := src.EnclosingFunctionRange(pos)
	if err != nil {
		return source.TextRange{}, err
	}
	lastRow := len(src.Lines()) - 1
	insertRow := funcRange.End.Row() + 1
	var at source.Position
	if insertRow > lastRow {
		at, err = endOfLine(src, lastRow)
	} else {
		at, err = startOfLine(src, insertRow)
	}
	if err != nil {
		return source.TextRange{}, err
	}
	return zeroWidth(at), nil
}

func insertionText(src *source.Source, at source.TextRange, def string) string {
	lastRow := len(src.Lines()) - 1
	atEOF := at.Start.Row() == lastRow && at.Start.Column() == len([]rune(src.Line(lastRow)))
	if atEOF {
		return "\n\n" + def
	}
	return "\n" + def
}
