package scopegraph

import (
	"sort"

	"github.com/thisfred/breakfast-sub000/source"
)

type edgeTo struct {
	Edge Edge
	To   NodeID
}

// Graph is the arena-owned scope graph for one refactoring session. Nodes
// are owned by integer id; edges reference ids; Fragments only borrow ids
// (DESIGN NOTES §9: no cycles in ownership, cycles only in edges).
type Graph struct {
	nodes  map[NodeID]*Node
	out    map[NodeID][]edgeTo
	byName map[string][]NodeID
	byPos  map[source.Position][]NodeID
	byMod  map[string]NodeID
	byHub  map[string]NodeID
	root   NodeID
	nextID NodeID

	diagnostics []string
}

// New creates an empty graph with a designated root scope node.
func New() *Graph {
	g := &Graph{
		nodes:  map[NodeID]*Node{},
		out:    map[NodeID][]edgeTo{},
		byName: map[string][]NodeID{},
		byPos:  map[source.Position][]NodeID{},
		byMod:  map[string]NodeID{},
		byHub:  map[string]NodeID{},
	}
	g.root = g.AddNode(KindScope, "", nil, None())
	return g
}

// Root returns the designated root node id.
func (g *Graph) Root() NodeID { return g.root }

// Node looks up a node by id.
func (g *Graph) Node(id NodeID) *Node { return g.nodes[id] }

// AddNode allocates a new node, indexing it by name (if a Reference or
// Definition) and by position (if pos is non-nil).
func (g *Graph) AddNode(kind Kind, name string, pos *source.Position, action Action, rules ...Rule) NodeID {
	g.nextID++
	id := g.nextID
	n := &Node{ID: id, Kind: kind, Name: name, Pos: pos, Action: action, Rules: rules}
	g.nodes[id] = n
	if (kind == KindReference || kind == KindDefinition) && name != "" {
		g.byName[name] = append(g.byName[name], id)
	}
	if pos != nil {
		g.byPos[*pos] = append(g.byPos[*pos], id)
	}
	return id
}

// AddEdge records a directed edge from -> to.
func (g *Graph) AddEdge(from, to NodeID, edge Edge) {
	g.out[from] = append(g.out[from], edgeTo{Edge: edge, To: to})
}

// RegisterModule indexes name as the module-scope entry point reachable
// from root, per spec's "module roots are reachable from root via a Pop
// of the module name" invariant.
func (g *Graph) RegisterModule(name string, entry NodeID) {
	g.byMod[name] = entry
}

// ModuleEntry looks up the Pop(moduleName) entry node for name.
func (g *Graph) ModuleEntry(name string) (NodeID, bool) {
	id, ok := g.byMod[name]
	return id, ok
}

// RegisterModuleHub indexes name's post-"." entry node (the node reached
// after popping moduleName then "."), used by the builder's deferred
// cross-module Import/ImportFrom linking (Link) to jump straight past the
// moduleName hop it has already resolved statically.
func (g *Graph) RegisterModuleHub(name string, hub NodeID) { g.byHub[name] = hub }

// ModuleHub looks up the node registered by RegisterModuleHub.
func (g *Graph) ModuleHub(name string) (NodeID, bool) {
	id, ok := g.byHub[name]
	return id, ok
}

// ReferencesNamed returns every Reference node id with the given bare
// name, in insertion order.
func (g *Graph) ReferencesNamed(name string) []NodeID {
	var out []NodeID
	for _, id := range g.byName[name] {
		if g.nodes[id].Kind == KindReference {
			out = append(out, id)
		}
	}
	return out
}

// DefinitionsNamed returns every Definition node id with the given bare
// name, in insertion order.
func (g *Graph) DefinitionsNamed(name string) []NodeID {
	var out []NodeID
	for _, id := range g.byName[name] {
		if g.nodes[id].Kind == KindDefinition {
			out = append(out, id)
		}
	}
	return out
}

// NodesAt returns every scope-graph node recorded at pos. A plain store
// site records only a Definition, but several nodes can share a position
// (an import-from alias records its local Pop and the Reference to the
// remote name there), so more than one node may be returned.
func (g *Graph) NodesAt(pos source.Position) []NodeID {
	return g.byPos[pos]
}

// permittedEdges returns from's outgoing edges that pass every rule
// attached to from plus every rule accumulated along the path so far
// (extraRules).
func (g *Graph) permittedEdges(from NodeID, extraRules []Rule) []edgeTo {
	node := g.nodes[from]
	var out []edgeTo
	for _, e := range g.out[from] {
		if node != nil && !node.permits(e.Edge) {
			continue
		}
		ok := true
		for _, r := range extraRules {
			if !r(e.Edge) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, e)
		}
	}
	return out
}

// NodesInRange returns every Reference/Definition node whose recorded
// position falls within r (inclusive), in source order. Used by the
// refactoring planner's free-variable and modified-and-read-after
// analyses (spec §4.5) to enumerate the occurrences a selection touches
// without re-walking the AST.
func (g *Graph) NodesInRange(r source.TextRange) []NodeID {
	var out []NodeID
	for pos, ids := range g.byPos {
		if pos.Source() != r.Source() {
			continue
		}
		if pos.Less(r.Start) || r.End.Less(pos) {
			continue
		}
		for _, id := range ids {
			n := g.nodes[id]
			if n.IsReference() || n.IsDefinition() {
				out = append(out, id)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return g.nodes[out[i]].Pos.Less(*g.nodes[out[j]].Pos)
	})
	return out
}

// AddDiagnostic records a condition the builder recovered from without
// failing the build (Link records each import of a module that was not
// built into this graph), surfacing it for callers who want it rather
// than writing to stderr from inside the single-threaded core.
func (g *Graph) AddDiagnostic(msg string) { g.diagnostics = append(g.diagnostics, msg) }

// Diagnostics returns every recovered-but-noteworthy condition collected
// while building this graph.
func (g *Graph) Diagnostics() []string { return g.diagnostics }
