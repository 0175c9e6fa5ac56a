package refactor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thisfred/breakfast-sub000/ast"
	"github.com/thisfred/breakfast-sub000/edit"
	"github.com/thisfred/breakfast-sub000/refactor"
	"github.com/thisfred/breakfast-sub000/scopegraph"
	"github.com/thisfred/breakfast-sub000/source"
)

// inlineCallModule builds:
//
//	def add(a, b):
//	    return a + b
//
//	result = add(1, 2)
func inlineCallModule() (*ast.Module, string) {
	module := &ast.Module{
		Body: []ast.Node{
			&ast.FunctionDef{
				Base: ast.Base{Pos: ast.Pos{Line: 1, Col: 0}},
				Name: "add",
				Args: ast.Arguments{Args: []ast.Arg{
					{Name: "a", Pos: ast.Pos{Line: 1, Col: 8}},
					{Name: "b", Pos: ast.Pos{Line: 1, Col: 11}},
				}},
				Body: []ast.Node{
					&ast.Return{
						Base: ast.Base{Pos: ast.Pos{Line: 2, Col: 4}},
						Value: &ast.BinOp{
							Base:  ast.Base{Pos: ast.Pos{Line: 2, Col: 11}},
							Left:  &ast.Name{Base: ast.Base{Pos: ast.Pos{Line: 2, Col: 11}}, Id: "a", Ctx: ast.Load},
							Op:    "+",
							Right: &ast.Name{Base: ast.Base{Pos: ast.Pos{Line: 2, Col: 15}}, Id: "b", Ctx: ast.Load},
						},
					},
				},
			},
			&ast.Assign{
				Base: ast.Base{Pos: ast.Pos{Line: 4, Col: 0}},
				Targets: []ast.Node{
					&ast.Name{Base: ast.Base{Pos: ast.Pos{Line: 4, Col: 0}}, Id: "result", Ctx: ast.Store},
				},
				Value: &ast.Call{
					Base: ast.Base{Pos: ast.Pos{Line: 4, Col: 9}},
					Func: &ast.Name{Base: ast.Base{Pos: ast.Pos{Line: 4, Col: 9}}, Id: "add", Ctx: ast.Load},
					Args: []ast.Node{
						&ast.Constant{Base: ast.Base{Pos: ast.Pos{Line: 4, Col: 13}}, Value: "1"},
						&ast.Constant{Base: ast.Base{Pos: ast.Pos{Line: 4, Col: 16}}, Value: "2"},
					},
				},
			},
		},
	}
	text := "def add(a, b):\n    return a + b\n\nresult = add(1, 2)"
	return module, text
}

func TestInlineCallSubstitutesArgumentsAndBindsReturn(t *testing.T) {
	module, text := inlineCallModule()
	src := source.NewWithAST("a.py", "a", text, module)
	b := scopegraph.NewBuilder()
	require.NoError(t, b.BuildModule(module, src, "a"))

	start, err := src.Position(3, 9)
	require.NoError(t, err)
	end, err := src.Position(3, 18)
	require.NoError(t, err)
	r, err := source.NewTextRange(start, end)
	require.NoError(t, err)
	require.Equal(t, "add(1, 2)", r.Text())

	edits, err := refactor.InlineCall(refactor.CodeSelection{Range: r, Graph: b.Graph()})
	require.NoError(t, err)
	require.Len(t, edits, 2)
	assert.Equal(t, "add = 1 + 2\n", edits[0].Text)
	assert.Equal(t, "add", edits[1].Text)

	result, err := edit.Apply(src, edits)
	require.NoError(t, err)
	assert.Equal(t, "def add(a, b):\n    return a + b\n\nadd = 1 + 2\nresult = add", result)
}

func TestInlineCallRejectsNonCallSelection(t *testing.T) {
	module, text := inlineCallModule()
	src := source.NewWithAST("a.py", "a", text, module)
	b := scopegraph.NewBuilder()
	require.NoError(t, b.BuildModule(module, src, "a"))

	start, err := src.Position(3, 0)
	require.NoError(t, err)
	end, err := src.Position(3, 6)
	require.NoError(t, err)
	r, err := source.NewTextRange(start, end)
	require.NoError(t, err)
	require.Equal(t, "result", r.Text())

	_, err = refactor.InlineCall(refactor.CodeSelection{Range: r, Graph: b.Graph()})
	assert.ErrorIs(t, err, refactor.ErrInvalidSelection)
}
