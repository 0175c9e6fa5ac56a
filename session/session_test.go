package session_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thisfred/breakfast-sub000/ast"
	"github.com/thisfred/breakfast-sub000/session"
)

// stoveAndChefModules returns the two fixtures and a Parser that maps each
// known source text to its pre-built module, standing in for a real parser.
func stoveAndChefModules() (stoveText, chefText string, parse func(text string) (ast.Node, error)) {
	stoveModule := &ast.Module{
		Body: []ast.Node{
			&ast.FunctionDef{
				Base: ast.Base{Pos: ast.Pos{Line: 1, Col: 0}},
				Name: "broil",
				Body: []ast.Node{&ast.Pass{Base: ast.Base{Pos: ast.Pos{Line: 2, Col: 4}}}},
			},
		},
	}
	chefModule := &ast.Module{
		Body: []ast.Node{
			&ast.Import{
				Base:  ast.Base{Pos: ast.Pos{Line: 1, Col: 0}},
				Names: []ast.Alias{{Name: "stove", Pos: ast.Pos{Line: 1, Col: 7}}},
			},
			&ast.Attribute{
				Base: ast.Base{Pos: ast.Pos{Line: 2, Col: 0}},
				Value: &ast.Name{
					Base: ast.Base{Pos: ast.Pos{Line: 2, Col: 0}}, Id: "stove", Ctx: ast.Load,
				},
				Attr: "broil",
				Ctx:  ast.Load,
			},
		},
	}
	stoveText = "def broil():\n    pass"
	chefText = "import stove\nstove.broil()"
	parse = func(text string) (ast.Node, error) {
		switch text {
		case stoveText:
			return stoveModule, nil
		case chefText:
			return chefModule, nil
		default:
			return &ast.Module{}, nil
		}
	}
	return
}

func TestSessionAddSourceLinksCrossModuleReference(t *testing.T) {
	stoveText, chefText, parse := stoveAndChefModules()
	s := session.New(session.WithParser(parse))

	_, err := s.AddSource("stove.py", "stove", stoveText)
	require.NoError(t, err)
	chefSrc, err := s.AddSource("chef.py", "chef", chefText)
	require.NoError(t, err)

	require.False(t, s.Linked())
	s.Link()
	assert.True(t, s.Linked())
	assert.Empty(t, s.Graph().Diagnostics())

	pos, err := chefSrc.Position(1, 6)
	require.NoError(t, err)
	refs := s.Graph().NodesAt(pos)
	require.NotEmpty(t, refs)

	var broilRef = refs[0]
	for _, id := range refs {
		if s.Graph().Node(id).IsReference() {
			broilRef = id
		}
	}
	resolved, err := s.Graph().Resolve(broilRef)
	require.NoError(t, err)
	assert.Equal(t, "broil", s.Graph().Node(resolved).Name)

	assert.Len(t, s.Sources(), 2)
}

func TestSessionAddSourcePropagatesParseError(t *testing.T) {
	parse := func(text string) (ast.Node, error) {
		return nil, assert.AnError
	}
	s := session.New(session.WithParser(parse))
	_, err := s.AddSource("bad.py", "bad", "whatever")
	assert.Error(t, err)
}

func TestSessionLoadDirBuildsAndLinksEveryMatchingFile(t *testing.T) {
	stoveText, chefText, parse := stoveAndChefModules()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "stove.py"), []byte(stoveText), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "chef.py"), []byte(chefText), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "ignore.txt"), []byte("not python"), 0o644))

	s := session.New(session.WithParser(parse))
	require.NoError(t, s.LoadDir(context.Background(), root, ".py"))

	assert.True(t, s.Linked())
	assert.Len(t, s.Sources(), 2)
	assert.Empty(t, s.Graph().Diagnostics())
}

func TestSessionLoadProjectDetectsRootThenLoads(t *testing.T) {
	stoveText, chefText, parse := stoveAndChefModules()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/proj\n\ngo 1.21\n"), 0o644))
	nested := filepath.Join(root, "pkg")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(nested, "stove.py"), []byte(stoveText), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "chef.py"), []byte(chefText), 0o644))

	s := session.New(session.WithParser(parse))
	require.NoError(t, s.LoadProject(context.Background(), nested, ".py"))

	assert.True(t, s.Linked())
	assert.Len(t, s.Sources(), 2)
}
