package ast

// Walk visits n and every descendant in pre-order. fn returns false to skip
// descending into a node's children (the Module/FunctionDef/etc. visitor
// has already handled them, e.g. for building a nested scope). Unknown or
// unhandled node kinds simply recurse into Children(), matching the
// "generic walker" fallback described for the scope-graph builder.
func Walk(n Node, fn func(Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Children() {
		Walk(c, fn)
	}
}

// Names collects every Name node under n, in pre-order.
func Names(n Node) []*Name {
	var out []*Name
	Walk(n, func(cur Node) bool {
		if nm, ok := cur.(*Name); ok {
			out = append(out, nm)
		}
		return true
	})
	return out
}
