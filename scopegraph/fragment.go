package scopegraph

// Fragment is a subgraph with a designated entry and exit node, the
// compositional return value of every AST-visiting builder function
// (spec §3's Fragment data model).
type Fragment struct {
	Entry       NodeID
	Exit        NodeID
	IsStatement bool
}

// single builds a Fragment whose entry and exit are the same node, the
// shape used for a plain name reference (load).
func single(id NodeID) Fragment {
	return Fragment{Entry: id, Exit: id}
}
