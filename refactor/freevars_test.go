package refactor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thisfred/breakfast-sub000/ast"
	"github.com/thisfred/breakfast-sub000/refactor"
	"github.com/thisfred/breakfast-sub000/scopegraph"
	"github.com/thisfred/breakfast-sub000/source"
)

func TestFreeVariablesFindsNameDefinedBeforeRange(t *testing.T) {
	module, text := extractFunctionModule()
	src := source.NewWithAST("a.py", "a", text, module)
	b := scopegraph.NewBuilder()
	require.NoError(t, b.BuildModule(module, src, "a"))

	start, err := src.Position(2, 4)
	require.NoError(t, err)
	end, err := src.Position(2, 18)
	require.NoError(t, err)
	r, err := source.NewTextRange(start, end)
	require.NoError(t, err)
	require.Equal(t, "result = a + 1", r.Text())

	assert.Equal(t, []string{"a"}, refactor.FreeVariables(b.Graph(), r))
}

func TestFreeVariablesEmptyWhenRangeHasNoOutsideReads(t *testing.T) {
	module, text := extractFunctionModule()
	src := source.NewWithAST("a.py", "a", text, module)
	b := scopegraph.NewBuilder()
	require.NoError(t, b.BuildModule(module, src, "a"))

	start, err := src.Position(1, 4)
	require.NoError(t, err)
	end, err := src.Position(1, 9)
	require.NoError(t, err)
	r, err := source.NewTextRange(start, end)
	require.NoError(t, err)
	require.Equal(t, "a = 1", r.Text())

	assert.Empty(t, refactor.FreeVariables(b.Graph(), r))
}

// twoFreeVarsModule builds:
//
//	p = 1
//	q = 2
//	r = p + q
func twoFreeVarsModule() (*ast.Module, string) {
	module := &ast.Module{
		Body: []ast.Node{
			&ast.Assign{
				Base:    ast.Base{Pos: ast.Pos{Line: 1, Col: 0}},
				Targets: []ast.Node{&ast.Name{Base: ast.Base{Pos: ast.Pos{Line: 1, Col: 0}}, Id: "p", Ctx: ast.Store}},
				Value:   &ast.Constant{Base: ast.Base{Pos: ast.Pos{Line: 1, Col: 4}}, Value: "1"},
			},
			&ast.Assign{
				Base:    ast.Base{Pos: ast.Pos{Line: 2, Col: 0}},
				Targets: []ast.Node{&ast.Name{Base: ast.Base{Pos: ast.Pos{Line: 2, Col: 0}}, Id: "q", Ctx: ast.Store}},
				Value:   &ast.Constant{Base: ast.Base{Pos: ast.Pos{Line: 2, Col: 4}}, Value: "2"},
			},
			&ast.Assign{
				Base:    ast.Base{Pos: ast.Pos{Line: 3, Col: 0}},
				Targets: []ast.Node{&ast.Name{Base: ast.Base{Pos: ast.Pos{Line: 3, Col: 0}}, Id: "r", Ctx: ast.Store}},
				Value: &ast.BinOp{
					Base:  ast.Base{Pos: ast.Pos{Line: 3, Col: 4}},
					Left:  &ast.Name{Base: ast.Base{Pos: ast.Pos{Line: 3, Col: 4}}, Id: "p", Ctx: ast.Load},
					Op:    "+",
					Right: &ast.Name{Base: ast.Base{Pos: ast.Pos{Line: 3, Col: 8}}, Id: "q", Ctx: ast.Load},
				},
			},
		},
	}
	text := "p = 1\nq = 2\nr = p + q"
	return module, text
}

func TestFreeVariablesOrdersByFirstOccurrence(t *testing.T) {
	module, text := twoFreeVarsModule()
	src := source.NewWithAST("a.py", "a", text, module)
	b := scopegraph.NewBuilder()
	require.NoError(t, b.BuildModule(module, src, "a"))

	start, err := src.Position(2, 0)
	require.NoError(t, err)
	end, err := src.Position(2, 9)
	require.NoError(t, err)
	r, err := source.NewTextRange(start, end)
	require.NoError(t, err)
	require.Equal(t, "r = p + q", r.Text())

	assert.Equal(t, []string{"p", "q"}, refactor.FreeVariables(b.Graph(), r))
}

func TestModifiedAndReadAfterFindsNameReadPastRangeEnd(t *testing.T) {
	module, text := extractFunctionModule()
	src := source.NewWithAST("a.py", "a", text, module)
	b := scopegraph.NewBuilder()
	require.NoError(t, b.BuildModule(module, src, "a"))

	start, err := src.Position(2, 4)
	require.NoError(t, err)
	end, err := src.Position(2, 18)
	require.NoError(t, err)
	r, err := source.NewTextRange(start, end)
	require.NoError(t, err)
	require.Equal(t, "result = a + 1", r.Text())

	assert.Equal(t, []string{"result"}, refactor.ModifiedAndReadAfter(b.Graph(), r))
}

func TestModifiedAndReadAfterEmptyWhenNothingReadLater(t *testing.T) {
	module, text := extractFunctionModule()
	src := source.NewWithAST("a.py", "a", text, module)
	b := scopegraph.NewBuilder()
	require.NoError(t, b.BuildModule(module, src, "a"))

	start, err := src.Position(3, 4)
	require.NoError(t, err)
	end, err := src.Position(3, 17)
	require.NoError(t, err)
	r, err := source.NewTextRange(start, end)
	require.NoError(t, err)
	require.Equal(t, "print(result)", r.Text())

	assert.Empty(t, refactor.ModifiedAndReadAfter(b.Graph(), r))
}
