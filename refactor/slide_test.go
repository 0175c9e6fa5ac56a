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

// slideModule builds: x = 1\ny = 2\nprint(x)
func slideModule() (*ast.Module, string) {
	module := &ast.Module{
		Body: []ast.Node{
			&ast.Assign{
				Base:    ast.Base{Pos: ast.Pos{Line: 1, Col: 0}},
				Targets: []ast.Node{&ast.Name{Base: ast.Base{Pos: ast.Pos{Line: 1, Col: 0}}, Id: "x", Ctx: ast.Store}},
				Value:   &ast.Constant{Base: ast.Base{Pos: ast.Pos{Line: 1, Col: 4}}, Value: "1"},
			},
			&ast.Assign{
				Base:    ast.Base{Pos: ast.Pos{Line: 2, Col: 0}},
				Targets: []ast.Node{&ast.Name{Base: ast.Base{Pos: ast.Pos{Line: 2, Col: 0}}, Id: "y", Ctx: ast.Store}},
				Value:   &ast.Constant{Base: ast.Base{Pos: ast.Pos{Line: 2, Col: 4}}, Value: "2"},
			},
			&ast.Call{
				Base: ast.Base{Pos: ast.Pos{Line: 3, Col: 0}},
				Func: &ast.Name{Base: ast.Base{Pos: ast.Pos{Line: 3, Col: 0}}, Id: "print", Ctx: ast.Load},
				Args: []ast.Node{
					&ast.Name{Base: ast.Base{Pos: ast.Pos{Line: 3, Col: 6}}, Id: "x", Ctx: ast.Load},
				},
			},
		},
	}
	text := "x = 1\ny = 2\nprint(x)"
	return module, text
}

func TestSlideStatementsDownMovesDefinitionToEarliestRead(t *testing.T) {
	module, text := slideModule()
	src := source.NewWithAST("a.py", "a", text, module)
	b := scopegraph.NewBuilder()
	require.NoError(t, b.BuildModule(module, src, "a"))

	start, err := src.Position(0, 0)
	require.NoError(t, err)
	end, err := src.Position(0, 5)
	require.NoError(t, err)
	r, err := source.NewTextRange(start, end)
	require.NoError(t, err)
	require.Equal(t, "x = 1", r.Text())

	edits, err := refactor.SlideStatementsDown(refactor.CodeSelection{Range: r, Graph: b.Graph()})
	require.NoError(t, err)
	require.Len(t, edits, 2)

	result, err := edit.Apply(src, edits)
	require.NoError(t, err)
	assert.Equal(t, "y = 2\nx = 1\nprint(x)", result)
}

func TestSlideStatementsDownNoOpWhenNoLaterRead(t *testing.T) {
	module, text := slideModule()
	src := source.NewWithAST("a.py", "a", text, module)
	b := scopegraph.NewBuilder()
	require.NoError(t, b.BuildModule(module, src, "a"))

	start, err := src.Position(1, 0)
	require.NoError(t, err)
	end, err := src.Position(1, 5)
	require.NoError(t, err)
	r, err := source.NewTextRange(start, end)
	require.NoError(t, err)
	require.Equal(t, "y = 2", r.Text())

	edits, err := refactor.SlideStatementsDown(refactor.CodeSelection{Range: r, Graph: b.Graph()})
	require.NoError(t, err)
	assert.Nil(t, edits)
}

func TestSlideStatementsUpMovesReadToLatestDefinition(t *testing.T) {
	module, text := slideModule()
	src := source.NewWithAST("a.py", "a", text, module)
	b := scopegraph.NewBuilder()
	require.NoError(t, b.BuildModule(module, src, "a"))

	start, err := src.Position(2, 0)
	require.NoError(t, err)
	end, err := src.Position(2, 8)
	require.NoError(t, err)
	r, err := source.NewTextRange(start, end)
	require.NoError(t, err)
	require.Equal(t, "print(x)", r.Text())

	edits, err := refactor.SlideStatementsUp(refactor.CodeSelection{Range: r, Graph: b.Graph()})
	require.NoError(t, err)
	require.Len(t, edits, 2)

	result, err := edit.Apply(src, edits)
	require.NoError(t, err)
	assert.Equal(t, "x = 1\nprint(x)\ny = 2\n", result)
}

func TestSlideStatementsUpNoOpWhenNoEarlierDefinition(t *testing.T) {
	module, text := slideModule()
	src := source.NewWithAST("a.py", "a", text, module)
	b := scopegraph.NewBuilder()
	require.NoError(t, b.BuildModule(module, src, "a"))

	start, err := src.Position(0, 0)
	require.NoError(t, err)
	end, err := src.Position(0, 5)
	require.NoError(t, err)
	r, err := source.NewTextRange(start, end)
	require.NoError(t, err)
	require.Equal(t, "x = 1", r.Text())

	edits, err := refactor.SlideStatementsUp(refactor.CodeSelection{Range: r, Graph: b.Graph()})
	require.NoError(t, err)
	assert.Nil(t, edits)
}
