// Package session is the thin glue layer SPEC_FULL.md adds on top of this
// module's core: it wires source, scopegraph, and resolveproject together
// for callers, the way the teacher's analyzer.Analyzer plus
// AnalyzeDir/AnalyzeAll wire tree-sitter parsing and package discovery
// together. It is ambient plumbing, not a parser or protocol adapter.
package session

import (
	"context"
	"fmt"

	"github.com/thisfred/breakfast-sub000/resolveproject"
	"github.com/thisfred/breakfast-sub000/scopegraph"
	"github.com/thisfred/breakfast-sub000/source"
)

// Session owns one shared scope graph across every source a caller
// registers with it.
type Session struct {
	builder *scopegraph.Builder
	sources []*source.Source
	parse   source.Parser
	linked  bool
}

// Option configures a Session.
type Option func(*Session)

// WithParser sets the parser every subsequently loaded source uses.
func WithParser(parse source.Parser) Option {
	return func(s *Session) { s.parse = parse }
}

// New creates an empty Session around a fresh scope graph.
func New(opts ...Option) *Session {
	s := &Session{builder: scopegraph.NewBuilder()}
	for _, apply := range opts {
		apply(s)
	}
	return s
}

// Graph returns the session's shared scope graph.
func (s *Session) Graph() *scopegraph.Graph { return s.builder.Graph() }

// Sources returns every source added to this session so far, in add order.
func (s *Session) Sources() []*source.Source { return s.sources }

// AddSource parses text, builds it into the shared graph under
// moduleName, and records it. Call Link again once every source in the
// session has been added and before resolving or refactoring against it.
func (s *Session) AddSource(path, moduleName, text string) (*source.Source, error) {
	src := source.New(path, moduleName, text, s.parse)
	root, err := src.AST()
	if err != nil {
		return nil, fmt.Errorf("session: parsing %s: %w", path, err)
	}
	if err := s.builder.BuildModule(root, src, moduleName); err != nil {
		return nil, err
	}
	s.sources = append(s.sources, src)
	s.linked = false
	return src, nil
}

// Link resolves every cross-module Import/ImportFrom recorded while
// building every source added so far.
func (s *Session) Link() {
	s.builder.Link()
	s.linked = true
}

// Linked reports whether Link has run since the last AddSource call.
func (s *Session) Linked() bool { return s.linked }

// LoadDir walks root loading and building every file ending in suffix,
// then Links the session — the AnalyzeDir-equivalent one-shot entry
// point for a whole project tree.
func (s *Session) LoadDir(ctx context.Context, root, suffix string) error {
	loader := resolveproject.NewLoader(suffix, s.parse)
	srcs, err := loader.Load(ctx, root)
	if err != nil {
		return err
	}
	for _, src := range srcs {
		rootNode, err := src.AST()
		if err != nil {
			return fmt.Errorf("session: parsing %s: %w", src.Path(), err)
		}
		if err := s.builder.BuildModule(rootNode, src, src.ModuleName()); err != nil {
			return err
		}
		s.sources = append(s.sources, src)
	}
	s.Link()
	return nil
}

// LoadProject detects startPath's project root and then LoadDirs it,
// the combined self-hosting entry point SPEC_FULL.md §4.8 describes.
func (s *Session) LoadProject(ctx context.Context, startPath, suffix string) error {
	root, err := resolveproject.NewDetector().Root(startPath)
	if err != nil {
		return err
	}
	return s.LoadDir(ctx, root, suffix)
}
