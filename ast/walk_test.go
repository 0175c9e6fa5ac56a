package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thisfred/breakfast-sub000/ast"
)

func TestWalkVisitsEveryDescendantPreOrder(t *testing.T) {
	module := &ast.Module{
		Body: []ast.Node{
			&ast.Assign{
				Targets: []ast.Node{&ast.Name{Id: "a", Ctx: ast.Store}},
				Value:   &ast.Name{Id: "b", Ctx: ast.Load},
			},
			&ast.Return{Value: &ast.Name{Id: "c", Ctx: ast.Load}},
		},
	}

	var kinds []ast.Kind
	ast.Walk(module, func(n ast.Node) bool {
		kinds = append(kinds, n.Kind())
		return true
	})

	assert.Equal(t, []ast.Kind{
		ast.KindModule,
		ast.KindAssign,
		ast.KindName,
		ast.KindName,
		ast.KindReturn,
		ast.KindName,
	}, kinds)
}

func TestWalkStopsDescendingWhenFnReturnsFalse(t *testing.T) {
	inner := &ast.Name{Id: "skipped", Ctx: ast.Load}
	module := &ast.Module{
		Body: []ast.Node{
			&ast.Return{Value: inner},
		},
	}

	var visited []ast.Kind
	ast.Walk(module, func(n ast.Node) bool {
		visited = append(visited, n.Kind())
		return n.Kind() != ast.KindReturn
	})

	assert.Equal(t, []ast.Kind{ast.KindModule, ast.KindReturn}, visited)
}

func TestWalkOnNilIsNoOp(t *testing.T) {
	calls := 0
	ast.Walk(nil, func(ast.Node) bool {
		calls++
		return true
	})
	assert.Equal(t, 0, calls)
}

func TestNamesCollectsEveryNameNode(t *testing.T) {
	module := &ast.Module{
		Body: []ast.Node{
			&ast.Assign{
				Targets: []ast.Node{&ast.Name{Id: "x", Ctx: ast.Store}},
				Value: &ast.BinOp{
					Left:  &ast.Name{Id: "y", Ctx: ast.Load},
					Op:    "+",
					Right: &ast.Name{Id: "z", Ctx: ast.Load},
				},
			},
		},
	}

	names := ast.Names(module)
	ids := make([]string, len(names))
	for i, n := range names {
		ids[i] = n.Id
	}
	assert.Equal(t, []string{"x", "y", "z"}, ids)
}

func TestDeleteChildrenReturnsTargets(t *testing.T) {
	target := &ast.Name{Id: "x", Ctx: ast.Del}
	del := &ast.Delete{Targets: []ast.Node{target}}

	assert.Equal(t, ast.KindDelete, del.Kind())
	assert.Equal(t, []ast.Node{target}, del.Children())
}

func TestWithChildrenIncludesContextExprOptionalVarsAndBody(t *testing.T) {
	ctxExpr := &ast.Call{Func: &ast.Name{Id: "open", Ctx: ast.Load}}
	asVar := &ast.Name{Id: "f", Ctx: ast.Store}
	bodyStmt := &ast.Pass{}
	with := &ast.With{
		Items: []ast.WithItem{{ContextExpr: ctxExpr, OptionalVars: asVar}},
		Body:  []ast.Node{bodyStmt},
	}

	assert.Equal(t, ast.KindWith, with.Kind())
	assert.Equal(t, []ast.Node{ctxExpr, asVar, bodyStmt}, with.Children())
}

func TestWithChildrenOmitsNilOptionalVars(t *testing.T) {
	ctxExpr := &ast.Name{Id: "lock", Ctx: ast.Load}
	with := &ast.With{Items: []ast.WithItem{{ContextExpr: ctxExpr}}}

	assert.Equal(t, []ast.Node{ctxExpr}, with.Children())
}

func TestLambdaChildrenIsBodyOnly(t *testing.T) {
	body := &ast.Name{Id: "x", Ctx: ast.Load}
	lam := &ast.Lambda{Args: ast.Arguments{Args: []ast.Arg{{Name: "x"}}}, Body: body}

	assert.Equal(t, ast.KindLambda, lam.Kind())
	assert.Equal(t, []ast.Node{body}, lam.Children())
}

func TestMatchChildrenIncludesSubjectPatternGuardAndBody(t *testing.T) {
	subject := &ast.Name{Id: "command", Ctx: ast.Load}
	pattern := &ast.MatchAs{Name: "rest"}
	guard := &ast.Name{Id: "cond", Ctx: ast.Load}
	body := &ast.Pass{}
	m := &ast.Match{
		Subject: subject,
		Cases:   []ast.MatchCase{{Pattern: pattern, Guard: guard, Body: []ast.Node{body}}},
	}

	assert.Equal(t, ast.KindMatch, m.Kind())
	assert.Equal(t, []ast.Node{subject, pattern, guard, body}, m.Children())
}
