package refactor

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/thisfred/breakfast-sub000/ast"
	"github.com/thisfred/breakfast-sub000/scopegraph"
	"github.com/thisfred/breakfast-sub000/source"
)

// InlineCall implements spec §4.5's inline-call refactoring: sel.Range
// must cover a whole call expression `name(args...)`. It locates the
// call target's definition via the scope graph, substitutes its
// parameters with the actual arguments (positional by index, keyword by
// name) throughout the callable's body, and places the inlined body
// above the enclosing statement at matching indentation. If the
// callable's last statement is `return expr`, the call site binds a
// variable to expr and the call is replaced with that variable; a
// callable with no trailing return simply has its call site removed.
func InlineCall(sel CodeSelection, opts ...Option) ([]source.Edit, error) {
	callText := sel.Range.Text()
	funcName, argTexts, err := parseCall(callText)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSelection, err)
	}

	refID, ok := startingReferenceAt(sel.Graph, sel.Range.Start)
	if !ok {
		return nil, fmt.Errorf("%w: no call-target reference at selection start", ErrInvalidSelection)
	}
	defID, err := sel.Graph.Resolve(refID)
	if err != nil {
		return nil, err
	}
	defNode := sel.Graph.Node(defID)
	if defNode.Pos == nil {
		return nil, fmt.Errorf("%w: call target has no source position", ErrInvalidSelection)
	}

	defSrc := defNode.Pos.Source()
	root, err := defSrc.AST()
	if err != nil {
		return nil, err
	}
	fn := findFunctionDefAt(root, defNode.Pos.Row()+1)
	if fn == nil {
		return nil, fmt.Errorf("%w: %q does not resolve to a function definition", ErrInvalidSelection, funcName)
	}

	subs, err := bindArguments(fn, argTexts)
	if err != nil {
		return nil, err
	}

	funcRange, err := defSrc.EnclosingFunctionRange(*defNode.Pos)
	if err != nil {
		return nil, err
	}
	bodyStart, err := defSrc.NodePosition(fn.Body[0])
	if err != nil {
		return nil, err
	}
	bodyStartOfLine, err := defSrc.Position(bodyStart.Row(), 0)
	if err != nil {
		return nil, err
	}
	bodyRange, err := source.NewTextRange(bodyStartOfLine, funcRange.End)
	if err != nil {
		return nil, err
	}
	bodyText := bodyRange.Text()

	returnExpr, rest := splitTrailingReturn(bodyText)
	substituted := substituteNames(rest, subs)

	src := sel.Range.Source()
	stmtRow := sel.Range.Start.Row()
	indent := lineIndent(src, stmtRow)
	reindented := reindentBlock(substituted, indent)

	insertAt, err := startOfLine(src, stmtRow)
	if err != nil {
		return nil, err
	}

	var insertText, callReplacement string
	if returnExpr != "" {
		boundName := defNode.Name
		assign := fmt.Sprintf("%s%s = %s\n", indent, boundName, substituteNames(returnExpr, subs))
		if strings.TrimSpace(reindented) == "" {
			insertText = assign
		} else {
			insertText = reindented + "\n" + assign
		}
		callReplacement = boundName
	} else {
		if strings.TrimSpace(reindented) == "" {
			insertText = ""
		} else {
			insertText = reindented + "\n"
		}
		callReplacement = ""
	}

	edits := []source.Edit{
		{Range: zeroWidth(insertAt), Text: insertText},
		{Range: sel.Range, Text: callReplacement},
	}
	return edits, nil
}

// startingReferenceAt returns the Reference node id recorded at pos, if
// any.
func startingReferenceAt(g *scopegraph.Graph, pos source.Position) (scopegraph.NodeID, bool) {
	for _, id := range g.NodesAt(pos) {
		if g.Node(id).IsReference() {
			return id, true
		}
	}
	return 0, false
}

func findFunctionDefAt(root ast.Node, line int) *ast.FunctionDef {
	var found *ast.FunctionDef
	ast.Walk(root, func(n ast.Node) bool {
		if fd, ok := n.(*ast.FunctionDef); ok && fd.Position().Line == line {
			found = fd
		}
		return true
	})
	return found
}

// bindArguments matches a call's textual argument list against a
// function's formal parameters: positional arguments bind by index,
// keyword arguments (`name=value`) bind by name.
func bindArguments(fn *ast.FunctionDef, argTexts []string) (map[string]string, error) {
	subs := map[string]string{}
	positional := fn.Args.AllPositional()
	posIdx := 0
	for _, a := range argTexts {
		if name, value, ok := splitKeyword(a); ok {
			subs[name] = value
			continue
		}
		if posIdx >= len(positional) {
			return nil, fmt.Errorf("too many positional arguments for %q", fn.Name)
		}
		subs[positional[posIdx].Name] = a
		posIdx++
	}
	return subs, nil
}

// splitKeyword reports whether arg is a top-level `name=value` keyword
// argument (not `==`), returning its parts.
func splitKeyword(arg string) (name, value string, ok bool) {
	eq := strings.IndexByte(arg, '=')
	if eq <= 0 || eq+1 >= len(arg) || arg[eq+1] == '=' {
		return "", "", false
	}
	candidate := strings.TrimSpace(arg[:eq])
	if !isIdentifier(candidate) {
		return "", "", false
	}
	return candidate, strings.TrimSpace(arg[eq+1:]), true
}

var identifierRe = regexp.MustCompile(`^[\p{L}_][\p{L}\p{N}_]*$`)

func isIdentifier(s string) bool { return identifierRe.MatchString(s) }

// parseCall splits `name(args...)` into the callee name and its
// top-level comma-separated argument texts.
func parseCall(text string) (name string, args []string, err error) {
	open := strings.IndexByte(text, '(')
	if open < 0 || !strings.HasSuffix(strings.TrimSpace(text), ")") {
		return "", nil, fmt.Errorf("not a call expression: %q", text)
	}
	name = strings.TrimSpace(text[:open])
	inner := strings.TrimSpace(text)
	inner = inner[open+1 : len(inner)-1]
	args = splitTopLevel(inner)
	return name, args, nil
}

// splitTopLevel splits s on commas that are not nested inside
// parens/brackets/braces or quotes.
func splitTopLevel(s string) []string {
	var out []string
	depth := 0
	var quote rune
	start := 0
	runes := []rune(s)
	for i, r := range runes {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		case r == '(' || r == '[' || r == '{':
			depth++
		case r == ')' || r == ']' || r == '}':
			depth--
		case r == ',' && depth == 0:
			out = append(out, strings.TrimSpace(string(runes[start:i])))
			start = i + 1
		}
	}
	if trimmed := strings.TrimSpace(string(runes[start:])); trimmed != "" {
		out = append(out, trimmed)
	}
	return out
}

// splitTrailingReturn reports the expression of a trailing `return expr`
// line in body, and the body text with that line removed. If the last
// non-blank line is not a return statement, returnExpr is "".
func splitTrailingReturn(body string) (returnExpr, rest string) {
	lines := strings.Split(body, "\n")
	last := len(lines) - 1
	for last >= 0 && strings.TrimSpace(lines[last]) == "" {
		last--
	}
	if last < 0 {
		return "", body
	}
	trimmed := strings.TrimSpace(lines[last])
	if !strings.HasPrefix(trimmed, "return ") && trimmed != "return" {
		return "", body
	}
	returnExpr = strings.TrimSpace(strings.TrimPrefix(trimmed, "return"))
	rest = strings.Join(lines[:last], "\n")
	return returnExpr, rest
}

// substituteNames replaces every whole-word occurrence of a key in subs
// with its value, in a single pass so substitutions never cascade into
// each other's output.
func substituteNames(text string, subs map[string]string) string {
	if len(subs) == 0 {
		return text
	}
	names := make([]string, 0, len(subs))
	for n := range subs {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = regexp.QuoteMeta(n)
	}
	re := regexp.MustCompile(`\b(` + strings.Join(quoted, "|") + `)\b`)
	return re.ReplaceAllStringFunc(text, func(m string) string { return subs[m] })
}
