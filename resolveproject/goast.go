package resolveproject

import (
	"fmt"
	goast "go/ast"
	"go/parser"
	"go/token"

	"golang.org/x/tools/go/ast/astutil"

	ourast "github.com/thisfred/breakfast-sub000/ast"
)

// FromGoSource parses a real Go source file and translates its
// declarations into this module's ast package node shapes: assignments,
// attribute/selector chains, and closures (func literals) closing over
// outer names. It exists purely so this engine's own scope-graph and
// occurrence tests can run against non-trivial, real-world-shaped trees
// without needing a Python parser, the same role inspector/golang plays
// for the teacher's own Go-source analyzer.
func FromGoSource(filename, src string) (*ourast.Module, *token.FileSet, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.AllErrors)
	if err != nil {
		return nil, nil, err
	}
	t := &translator{fset: fset}
	mod := &ourast.Module{}
	for _, decl := range file.Decls {
		mod.Body = append(mod.Body, t.decl(decl)...)
	}
	return mod, fset, nil
}

// EnclosingFuncLines uses astutil.PathEnclosingInterval to find the
// innermost FuncDecl/FuncLit covering pos, returning its 1-based
// [start, end] line span as an independent oracle to compare
// source.Source.EnclosingFunctionRange's result against in tests.
func EnclosingFuncLines(fset *token.FileSet, file *goast.File, pos token.Pos) (start, end int, ok bool) {
	path, _ := astutil.PathEnclosingInterval(file, pos, pos)
	for _, n := range path {
		switch fn := n.(type) {
		case *goast.FuncDecl:
			return fset.Position(fn.Pos()).Line, fset.Position(fn.End()).Line, true
		case *goast.FuncLit:
			return fset.Position(fn.Pos()).Line, fset.Position(fn.End()).Line, true
		}
	}
	return 0, 0, false
}

type translator struct {
	fset *token.FileSet
}

func (t *translator) pos(p token.Pos) ourast.Pos {
	position := t.fset.Position(p)
	col := position.Column - 1
	if col < 0 {
		col = 0
	}
	return ourast.Pos{Line: position.Line, Col: col}
}

func (t *translator) decl(d goast.Decl) []ourast.Node {
	switch decl := d.(type) {
	case *goast.FuncDecl:
		return []ourast.Node{t.funcDef(decl.Name.Name, decl.Type, decl.Body, decl.Pos())}
	case *goast.GenDecl:
		var out []ourast.Node
		for _, spec := range decl.Specs {
			if vs, ok := spec.(*goast.ValueSpec); ok {
				out = append(out, t.valueSpec(vs)...)
			}
		}
		return out
	default:
		return nil
	}
}

func (t *translator) valueSpec(vs *goast.ValueSpec) []ourast.Node {
	var out []ourast.Node
	for i, name := range vs.Names {
		if name.Name == "_" {
			continue
		}
		var value ourast.Node
		if i < len(vs.Values) {
			value = t.expr(vs.Values[i])
		}
		out = append(out, &ourast.Assign{
			Base:    ourast.Base{Pos: t.pos(name.Pos())},
			Targets: []ourast.Node{t.ident(name, ourast.Store)},
			Value:   value,
		})
	}
	return out
}

func (t *translator) funcDef(name string, typ *goast.FuncType, body *goast.BlockStmt, at token.Pos) *ourast.FunctionDef {
	fn := &ourast.FunctionDef{
		Base: ourast.Base{Pos: t.pos(at)},
		Name: name,
		Args: t.params(typ),
	}
	if body != nil {
		fn.Body = t.stmts(body.List)
	}
	if len(fn.Body) == 0 {
		fn.Body = []ourast.Node{&ourast.Pass{Base: ourast.Base{Pos: t.pos(at)}}}
	}
	return fn
}

func (t *translator) params(typ *goast.FuncType) ourast.Arguments {
	var args ourast.Arguments
	if typ == nil || typ.Params == nil {
		return args
	}
	for _, field := range typ.Params.List {
		if len(field.Names) == 0 {
			args.Args = append(args.Args, ourast.Arg{Name: "_", Pos: t.pos(field.Pos())})
			continue
		}
		for _, n := range field.Names {
			args.Args = append(args.Args, ourast.Arg{Name: n.Name, Pos: t.pos(n.Pos())})
		}
	}
	return args
}

func (t *translator) stmts(list []goast.Stmt) []ourast.Node {
	var out []ourast.Node
	for _, s := range list {
		if n := t.stmt(s); n != nil {
			out = append(out, n...)
		}
	}
	return out
}

func (t *translator) stmt(s goast.Stmt) []ourast.Node {
	switch stmt := s.(type) {
	case *goast.AssignStmt:
		return []ourast.Node{t.assign(stmt)}
	case *goast.ExprStmt:
		return []ourast.Node{t.expr(stmt.X)}
	case *goast.ReturnStmt:
		ret := &ourast.Return{Base: ourast.Base{Pos: t.pos(stmt.Pos())}}
		if len(stmt.Results) > 0 {
			ret.Value = t.expr(stmt.Results[0])
		}
		return []ourast.Node{ret}
	case *goast.IfStmt:
		ifNode := &ourast.If{Base: ourast.Base{Pos: t.pos(stmt.Pos())}, Test: t.expr(stmt.Cond)}
		if stmt.Body != nil {
			ifNode.Body = t.stmts(stmt.Body.List)
		}
		if stmt.Else != nil {
			ifNode.Orelse = t.stmt(stmt.Else)
		}
		return []ourast.Node{ifNode}
	case *goast.BlockStmt:
		return t.stmts(stmt.List)
	case *goast.DeclStmt:
		if gd, ok := stmt.Decl.(*goast.GenDecl); ok {
			return t.decl(gd)
		}
		return nil
	default:
		return nil
	}
}

func (t *translator) assign(a *goast.AssignStmt) ourast.Node {
	targets := make([]ourast.Node, 0, len(a.Lhs))
	for _, lhs := range a.Lhs {
		targets = append(targets, t.exprCtx(lhs, ourast.Store))
	}
	var value ourast.Node
	if len(a.Rhs) > 0 {
		value = t.expr(a.Rhs[0])
	}
	return &ourast.Assign{Base: ourast.Base{Pos: t.pos(a.Pos())}, Targets: targets, Value: value}
}

func (t *translator) ident(id *goast.Ident, ctx ourast.ExprContext) *ourast.Name {
	return &ourast.Name{Base: ourast.Base{Pos: t.pos(id.Pos())}, Id: id.Name, Ctx: ctx}
}

func (t *translator) exprCtx(e goast.Expr, ctx ourast.ExprContext) ourast.Node {
	if id, ok := e.(*goast.Ident); ok {
		return t.ident(id, ctx)
	}
	return t.expr(e)
}

func (t *translator) expr(e goast.Expr) ourast.Node {
	switch expr := e.(type) {
	case *goast.Ident:
		return t.ident(expr, ourast.Load)
	case *goast.SelectorExpr:
		return &ourast.Attribute{
			Base:  ourast.Base{Pos: t.pos(expr.Pos())},
			Value: t.expr(expr.X),
			Attr:  expr.Sel.Name,
			Ctx:   ourast.Load,
		}
	case *goast.CallExpr:
		call := &ourast.Call{Base: ourast.Base{Pos: t.pos(expr.Pos())}, Func: t.expr(expr.Fun)}
		for _, a := range expr.Args {
			call.Args = append(call.Args, t.expr(a))
		}
		return call
	case *goast.BinaryExpr:
		return &ourast.BinOp{
			Base:  ourast.Base{Pos: t.pos(expr.Pos())},
			Left:  t.expr(expr.X),
			Op:    expr.Op.String(),
			Right: t.expr(expr.Y),
		}
	case *goast.BasicLit:
		return &ourast.Constant{Base: ourast.Base{Pos: t.pos(expr.Pos())}, Value: expr.Value}
	case *goast.FuncLit:
		return t.funcDef("", expr.Type, expr.Body, expr.Pos())
	case *goast.ParenExpr:
		return t.expr(expr.X)
	case *goast.UnaryExpr:
		return &ourast.UnaryOp{Base: ourast.Base{Pos: t.pos(expr.Pos())}, Op: expr.Op.String(), Operand: t.expr(expr.X)}
	default:
		return &ourast.Constant{Base: ourast.Base{Pos: t.pos(e.Pos())}, Value: fmt.Sprintf("%T", e)}
	}
}
