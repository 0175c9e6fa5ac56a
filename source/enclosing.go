package source

import (
	"fmt"

	"github.com/thisfred/breakfast-sub000/ast"
)

// lineRange returns the 1-based [start, end] line span a node covers,
// approximated as the min/max line of the node itself and every
// descendant, since the §6 AST contract only guarantees a start line per
// node (no end_lineno). This is exact for leaf nodes and a safe
// over-approximation for compound statements, which is all the planner
// needs (enclosing ranges only ever grow to include more lines, never
// fewer).
func lineRange(n ast.Node) (start, end int) {
	start = n.Position().Line
	end = start
	ast.Walk(n, func(cur ast.Node) bool {
		l := cur.Position().Line
		if l < start {
			start = l
		}
		if l > end {
			end = l
		}
		return true
	})
	return start, end
}

func isScopeNode(n ast.Node) bool {
	switch n.(type) {
	case *ast.FunctionDef, *ast.Lambda, *ast.ListComp, *ast.SetComp, *ast.DictComp, *ast.GeneratorExp:
		return true
	default:
		return false
	}
}

// scopePath returns every scope-introducing ancestor (outermost first)
// whose line range contains row (1-based), ending with the innermost.
func scopePath(root ast.Node, row int) []ast.Node {
	var path []ast.Node
	var visit func(n ast.Node)
	visit = func(n ast.Node) {
		if n == nil {
			return
		}
		start, end := lineRange(n)
		if row < start || row > end {
			return
		}
		if isScopeNode(n) {
			path = append(path, n)
		}
		for _, c := range n.Children() {
			visit(c)
		}
	}
	visit(root)
	return path
}

func fullLineRange(s *Source, startLine, endLine int) (TextRange, error) {
	startPos, err := s.Position(startLine-1, 0)
	if err != nil {
		return TextRange{}, err
	}
	endLineText := s.Line(endLine - 1)
	endPos, err := s.Position(endLine-1, len([]rune(endLineText)))
	if err != nil {
		return TextRange{}, err
	}
	return NewTextRange(startPos, endPos)
}

// EnclosingFunctionRange returns the full-line range of the innermost
// function (or lambda/comprehension) body containing pos. If pos lies
// outside any such scope, it returns the whole module's range.
func (s *Source) EnclosingFunctionRange(pos Position) (TextRange, error) {
	root, err := s.AST()
	if err != nil {
		return TextRange{}, err
	}
	path := scopePath(root, pos.Row()+1)
	if len(path) == 0 {
		return fullLineRange(s, 1, len(s.lines))
	}
	innermost := path[len(path)-1]
	start, end := lineRange(innermost)
	return fullLineRange(s, start, end)
}

// LargestEnclosingScopeRange returns the full-line range of the outermost
// function/lambda/comprehension scope containing pos (falling through
// nested scopes to the widest one still strictly inside the module),
// matching §4.1's get_largest_enclosing_scope_range.
func (s *Source) LargestEnclosingScopeRange(pos Position) (TextRange, error) {
	root, err := s.AST()
	if err != nil {
		return TextRange{}, err
	}
	path := scopePath(root, pos.Row()+1)
	if len(path) == 0 {
		return fullLineRange(s, 1, len(s.lines))
	}
	outermost := path[0]
	start, end := lineRange(outermost)
	return fullLineRange(s, start, end)
}

func (s *Source) String() string {
	return fmt.Sprintf("Source(%s)", s.moduleName)
}
