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

// extractFunctionModule builds:
//
//	def outer():
//	    a = 1
//	    result = a + 1
//	    print(result)
func extractFunctionModule() (*ast.Module, string) {
	module := &ast.Module{
		Body: []ast.Node{
			&ast.FunctionDef{
				Base: ast.Base{Pos: ast.Pos{Line: 1, Col: 0}},
				Name: "outer",
				Body: []ast.Node{
					&ast.Assign{
						Base:    ast.Base{Pos: ast.Pos{Line: 2, Col: 4}},
						Targets: []ast.Node{&ast.Name{Base: ast.Base{Pos: ast.Pos{Line: 2, Col: 4}}, Id: "a", Ctx: ast.Store}},
						Value:   &ast.Constant{Base: ast.Base{Pos: ast.Pos{Line: 2, Col: 8}}, Value: "1"},
					},
					&ast.Assign{
						Base: ast.Base{Pos: ast.Pos{Line: 3, Col: 4}},
						Targets: []ast.Node{
							&ast.Name{Base: ast.Base{Pos: ast.Pos{Line: 3, Col: 4}}, Id: "result", Ctx: ast.Store},
						},
						Value: &ast.BinOp{
							Base:  ast.Base{Pos: ast.Pos{Line: 3, Col: 13}},
							Left:  &ast.Name{Base: ast.Base{Pos: ast.Pos{Line: 3, Col: 13}}, Id: "a", Ctx: ast.Load},
							Op:    "+",
							Right: &ast.Constant{Base: ast.Base{Pos: ast.Pos{Line: 3, Col: 17}}, Value: "1"},
						},
					},
					&ast.Call{
						Base: ast.Base{Pos: ast.Pos{Line: 4, Col: 4}},
						Func: &ast.Name{Base: ast.Base{Pos: ast.Pos{Line: 4, Col: 4}}, Id: "print", Ctx: ast.Load},
						Args: []ast.Node{
							&ast.Name{Base: ast.Base{Pos: ast.Pos{Line: 4, Col: 10}}, Id: "result", Ctx: ast.Load},
						},
					},
				},
			},
		},
	}
	text := "def outer():\n    a = 1\n    result = a + 1\n    print(result)"
	return module, text
}

func TestExtractFunctionWholeStatementWithParamAndReturn(t *testing.T) {
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

	edits, err := refactor.ExtractFunction(refactor.CodeSelection{Range: r, Graph: b.Graph()}, "extracted")
	require.NoError(t, err)
	require.Len(t, edits, 2)

	assert.Equal(t, "result = extracted(a=a)\n", edits[1].Text)
	assert.Equal(t, "\n\ndef extracted(a):\n    result = a + 1\n    return result\n", edits[0].Text)

	result, err := edit.Apply(src, edits)
	require.NoError(t, err)
	assert.Equal(t, "def outer():\n    a = 1\n    result = extracted(a=a)\n\n    print(result)\n\ndef extracted(a):\n    result = a + 1\n    return result\n", result)
}

func TestExtractFunctionRejectsEmptySelection(t *testing.T) {
	module, text := extractFunctionModule()
	src := source.NewWithAST("a.py", "a", text, module)
	b := scopegraph.NewBuilder()
	require.NoError(t, b.BuildModule(module, src, "a"))

	pos, err := src.Position(1, 4)
	require.NoError(t, err)
	r, err := source.NewTextRange(pos, pos)
	require.NoError(t, err)

	_, err = refactor.ExtractFunction(refactor.CodeSelection{Range: r, Graph: b.Graph()}, "extracted")
	assert.ErrorIs(t, err, refactor.ErrInvalidSelection)
}
