package scopegraph

import "github.com/thisfred/breakfast-sub000/source"

// NodeSnapshot is a yaml-friendly rendering of one graph node, used by
// golden tests to assert on a built graph's shape without comparing raw
// NodeIDs (which are arbitrary allocation order, not a stable contract).
type NodeSnapshot struct {
	Kind   string `yaml:"kind"`
	Name   string `yaml:"name,omitempty"`
	Action string `yaml:"action,omitempty"`
	Pos    string `yaml:"pos,omitempty"`
}

func (k Kind) String() string {
	switch k {
	case KindModuleScope:
		return "module_scope"
	case KindDefinition:
		return "definition"
	case KindReference:
		return "reference"
	case KindInstance:
		return "instance"
	case KindClass:
		return "class"
	default:
		return "scope"
	}
}

func (a Action) String() string {
	switch a.Kind {
	case ActionPush:
		return "push(" + a.Symbol + ")"
	case ActionPop:
		return "pop(" + a.Symbol + ")"
	default:
		return ""
	}
}

// Snapshot renders every node named name as a NodeSnapshot, in id order,
// for golden-test comparison (spec's visualization supplement, reviving
// the debug-dump role of the original tool's scope-graph visualizer).
func (g *Graph) Snapshot(name string) []NodeSnapshot {
	var out []NodeSnapshot
	for _, id := range g.byName[name] {
		n := g.nodes[id]
		snap := NodeSnapshot{Kind: n.Kind.String(), Name: n.Name, Action: n.Action.String()}
		if n.Pos != nil {
			snap.Pos = n.Pos.String()
		}
		out = append(out, snap)
	}
	return out
}

// ResolvedPosition is a convenience helper: it resolves a reference node
// and, if the result has a recorded position, returns it.
func (g *Graph) ResolvedPosition(ref NodeID) (source.Position, bool) {
	def, err := g.Resolve(ref)
	if err != nil {
		return source.Position{}, false
	}
	n := g.nodes[def]
	if n == nil || n.Pos == nil {
		return source.Position{}, false
	}
	return *n.Pos, true
}
