// Package scopegraph builds and resolves the scope graph described in
// spec §3-§4: a directed graph whose nodes carry at most one stack action
// (Push/Pop of a symbol) and whose paths model lexical name resolution by
// maintaining a symbol stack during traversal.
package scopegraph

import "github.com/thisfred/breakfast-sub000/source"

// ActionKind tags the three possible node actions.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionPush
	ActionPop
)

// Action is a node's effect on the symbol stack during resolution.
// Represented as a small tagged struct (DESIGN NOTES §9: "avoid per-node
// dynamic dispatch by monomorphizing the traversal loop over action
// kinds") rather than an interface.
type Action struct {
	Kind   ActionKind
	Symbol string
}

// None is the zero action: a node that neither pushes nor pops.
func None() Action { return Action{Kind: ActionNone} }

// PushSym builds a Push(symbol) action.
func PushSym(symbol string) Action { return Action{Kind: ActionPush, Symbol: symbol} }

// PopSym builds a Pop(symbol) action.
func PopSym(symbol string) Action { return Action{Kind: ActionPop, Symbol: symbol} }

// Accepts reports whether this node's action precondition is satisfied by
// stack (the top of stack is stack[len(stack)-1]): Push always accepts;
// Pop(sym) accepts iff the stack is non-empty and its top equals sym;
// None always accepts.
func (a Action) Accepts(stack []string) bool {
	switch a.Kind {
	case ActionPop:
		return len(stack) > 0 && stack[len(stack)-1] == a.Symbol
	default:
		return true
	}
}

// Apply returns the stack resulting from applying a: Push prepends (we
// store the stack top-last, so Push appends); Pop removes the top.
func (a Action) Apply(stack []string) []string {
	switch a.Kind {
	case ActionPush:
		next := make([]string, len(stack)+1)
		copy(next, stack)
		next[len(stack)] = a.Symbol
		return next
	case ActionPop:
		if len(stack) == 0 {
			return stack
		}
		return stack[:len(stack)-1]
	default:
		return stack
	}
}

// Kind classifies a scope-graph node.
type Kind int

const (
	KindScope Kind = iota
	KindModuleScope
	KindDefinition
	KindReference
	KindInstance
	KindClass
)

// Rule is a predicate over an outgoing edge, attached to the node the edge
// leaves from; every rule on that node must permit the edge for the
// resolver to follow it.
type Rule func(Edge) bool

// NoEnclosingScope forbids following edges marked ToEnclosingScope. The
// builder attaches it to no node; it takes effect only on nodes whose
// Rules a caller sets.
func NoEnclosingScope(e Edge) bool { return !e.ToEnclosingScope }

// Edge carries resolution-affecting and layout-hint metadata.
type Edge struct {
	// SameRank is a layout hint only; it never affects resolution.
	SameRank bool
	// ToEnclosingScope marks an edge used only for lookup-in-enclosing-scope
	// fallback, so NoEnclosingScope rules can exclude it.
	ToEnclosingScope bool
	// Priority is a tiebreaker for multiple outgoing paths; lower fires
	// first.
	Priority int
}

// NodeID identifies a node within one Graph's arena.
type NodeID int

// Node is one vertex of the scope graph.
type Node struct {
	ID     NodeID
	Kind   Kind
	Name   string
	Pos    *source.Position
	Action Action
	Rules  []Rule
}

// IsDefinition reports whether n is a Definition-kind node.
func (n *Node) IsDefinition() bool { return n.Kind == KindDefinition }

// IsReference reports whether n is a Reference-kind node.
func (n *Node) IsReference() bool { return n.Kind == KindReference }

// permits reports whether every rule on n allows following e.
func (n *Node) permits(e Edge) bool {
	for _, r := range n.Rules {
		if !r(e) {
			return false
		}
	}
	return true
}
