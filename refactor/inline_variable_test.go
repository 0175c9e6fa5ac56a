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

// inlineVariableModule builds: temp = 1 + 2\ny = temp + 3\nz = temp
func inlineVariableModule() (*ast.Module, string) {
	module := &ast.Module{
		Body: []ast.Node{
			&ast.Assign{
				Base: ast.Base{Pos: ast.Pos{Line: 1, Col: 0}},
				Targets: []ast.Node{
					&ast.Name{Base: ast.Base{Pos: ast.Pos{Line: 1, Col: 0}}, Id: "temp", Ctx: ast.Store},
				},
				Value: &ast.BinOp{
					Base:  ast.Base{Pos: ast.Pos{Line: 1, Col: 7}},
					Left:  &ast.Constant{Base: ast.Base{Pos: ast.Pos{Line: 1, Col: 7}}, Value: "1"},
					Op:    "+",
					Right: &ast.Constant{Base: ast.Base{Pos: ast.Pos{Line: 1, Col: 11}}, Value: "2"},
				},
			},
			&ast.Assign{
				Base: ast.Base{Pos: ast.Pos{Line: 2, Col: 0}},
				Targets: []ast.Node{
					&ast.Name{Base: ast.Base{Pos: ast.Pos{Line: 2, Col: 0}}, Id: "y", Ctx: ast.Store},
				},
				Value: &ast.BinOp{
					Base:  ast.Base{Pos: ast.Pos{Line: 2, Col: 4}},
					Left:  &ast.Name{Base: ast.Base{Pos: ast.Pos{Line: 2, Col: 4}}, Id: "temp", Ctx: ast.Load},
					Op:    "+",
					Right: &ast.Constant{Base: ast.Base{Pos: ast.Pos{Line: 2, Col: 11}}, Value: "3"},
				},
			},
			&ast.Assign{
				Base: ast.Base{Pos: ast.Pos{Line: 3, Col: 0}},
				Targets: []ast.Node{
					&ast.Name{Base: ast.Base{Pos: ast.Pos{Line: 3, Col: 0}}, Id: "z", Ctx: ast.Store},
				},
				Value: &ast.Name{Base: ast.Base{Pos: ast.Pos{Line: 3, Col: 4}}, Id: "temp", Ctx: ast.Load},
			},
		},
	}
	text := "temp = 1 + 2\ny = temp + 3\nz = temp"
	return module, text
}

func TestInlineVariableSubstitutesEveryUseAndDeletesDefinition(t *testing.T) {
	module, text := inlineVariableModule()
	src := source.NewWithAST("a.py", "a", text, module)
	b := scopegraph.NewBuilder()
	require.NoError(t, b.BuildModule(module, src, "a"))

	pos, err := src.Position(1, 4)
	require.NoError(t, err)

	edits, err := refactor.InlineVariable(refactor.CodeSelection{Range: source.TextRange{Start: pos, End: pos}, Graph: b.Graph()})
	require.NoError(t, err)
	require.Len(t, edits, 3)

	result, err := edit.Apply(src, edits)
	require.NoError(t, err)
	assert.Equal(t, "y = 1 + 2 + 3\nz = 1 + 2", result)
}

func TestInlineVariableFromDefinitionSiteMatchesFromUseSite(t *testing.T) {
	module, text := inlineVariableModule()
	src := source.NewWithAST("a.py", "a", text, module)
	b := scopegraph.NewBuilder()
	require.NoError(t, b.BuildModule(module, src, "a"))

	pos, err := src.Position(0, 0)
	require.NoError(t, err)

	edits, err := refactor.InlineVariable(refactor.CodeSelection{Range: source.TextRange{Start: pos, End: pos}, Graph: b.Graph()})
	require.NoError(t, err)

	result, err := edit.Apply(src, edits)
	require.NoError(t, err)
	assert.Equal(t, "y = 1 + 2 + 3\nz = 1 + 2", result)
}

func TestInlineVariableRejectsNonAssignmentDefinition(t *testing.T) {
	module := &ast.Module{
		Body: []ast.Node{
			&ast.For{
				Base:   ast.Base{Pos: ast.Pos{Line: 1, Col: 0}},
				Target: &ast.Name{Base: ast.Base{Pos: ast.Pos{Line: 1, Col: 4}}, Id: "temp", Ctx: ast.Store},
				Iter: &ast.Call{
					Base: ast.Base{Pos: ast.Pos{Line: 1, Col: 12}},
					Func: &ast.Name{Base: ast.Base{Pos: ast.Pos{Line: 1, Col: 12}}, Id: "range", Ctx: ast.Load},
					Args: []ast.Node{&ast.Constant{Base: ast.Base{Pos: ast.Pos{Line: 1, Col: 18}}, Value: "3"}},
				},
				Body: []ast.Node{&ast.Pass{Base: ast.Base{Pos: ast.Pos{Line: 2, Col: 4}}}},
			},
		},
	}
	text := "for temp in range(3):\n    pass"
	src := source.NewWithAST("a.py", "a", text, module)
	b := scopegraph.NewBuilder()
	require.NoError(t, b.BuildModule(module, src, "a"))

	pos, err := src.Position(0, 4)
	require.NoError(t, err)

	_, err = refactor.InlineVariable(refactor.CodeSelection{Range: source.TextRange{Start: pos, End: pos}, Graph: b.Graph()})
	assert.ErrorIs(t, err, refactor.ErrInvalidSelection)
}
