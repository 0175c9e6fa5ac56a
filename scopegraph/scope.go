package scopegraph

import "github.com/thisfred/breakfast-sub000/source"

// scope is the builder's bookkeeping for one lexical scope: a hub node
// that every direct definition in the scope hangs off of, plus a fallback
// edge to the enclosing scope's hub for names not found locally (spec
// §4.2's "walk up through enclosing scopes" behavior, flattened into a
// single fan-out node per scope instead of per-statement chaining).
type scope struct {
	hub       NodeID
	parent    *scope
	redirects map[string]*scope
}

// newScope allocates a fresh scope hub, wiring a priority-1
// ToEnclosingScope edge to parent's hub when parent is non-nil.
func newScope(g *Graph, parent *scope) *scope {
	hub := g.AddNode(KindScope, "", nil, None())
	s := &scope{hub: hub, parent: parent}
	if parent != nil {
		g.AddEdge(hub, parent.hub, Edge{Priority: 1, ToEnclosingScope: true})
	}
	return s
}

// target resolves which scope a binding of name actually belongs to: a
// scope with no global/nonlocal redirect for name binds into itself.
func (s *scope) target(name string) *scope {
	if s.redirects != nil {
		if t, ok := s.redirects[name]; ok {
			return t
		}
	}
	return s
}

// redirect records that name, declared global or nonlocal in this scope,
// binds into to instead (spec's supplemented Global/Nonlocal handling).
func (s *scope) redirect(name string, to *scope) {
	if s.redirects == nil {
		s.redirects = map[string]*scope{}
	}
	s.redirects[name] = to
}

// bind creates a Definition(name) node reachable from the scope that
// owns name (itself, or a global/nonlocal redirect target) at priority 0.
func (s *scope) bind(g *Graph, name string, pos *source.Position) NodeID {
	def := g.AddNode(KindDefinition, name, pos, PopSym(name))
	owner := s.target(name)
	g.AddEdge(owner.hub, def, Edge{Priority: 0})
	return def
}

// reference creates a Reference(name) node that pushes name and enters
// this scope's hub, letting resolution fan out to local definitions
// first and fall back to enclosing scopes via the hub's own edges.
func (s *scope) reference(g *Graph, name string, pos *source.Position) NodeID {
	ref := g.AddNode(KindReference, name, pos, PushSym(name))
	g.AddEdge(ref, s.hub, Edge{Priority: 0})
	return ref
}
