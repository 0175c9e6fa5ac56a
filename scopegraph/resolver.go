package scopegraph

import "errors"

// ErrNotFound signals that no accepting Definition node was reached from
// the starting reference (spec §4.3's NotFound outcome).
var ErrNotFound = errors.New("scopegraph: not found")

type queueItem struct {
	node  NodeID
	stack []string
}

// Resolve implements spec §4.3: starting from reference node s, maintain
// a symbol stack, fire Push/Pop actions while traversing edges permitted
// by s's rules, and return the Definition node reached with an empty
// stack. Traversal is breadth-first, draining the lowest-priority
// non-empty queue first, which is what makes resolution deterministic
// given a fixed graph (spec §5).
func (g *Graph) Resolve(s NodeID) (NodeID, error) {
	start := g.nodes[s]
	if start == nil {
		return 0, ErrNotFound
	}

	stack := start.Action.Apply(nil)

	// Two FIFO queues keyed by edge priority (0 and 1, per spec §4.3 step 2).
	queues := map[int][]queueItem{}
	enqueue := func(priority int, item queueItem) {
		queues[priority] = append(queues[priority], item)
	}

	seed := func(from NodeID, stack []string, rules []Rule) {
		for _, e := range g.permittedEdges(from, rules) {
			next := g.nodes[e.To]
			if next == nil || !next.Action.Accepts(stack) {
				continue
			}
			enqueue(e.Edge.Priority, queueItem{node: e.To, stack: stack})
		}
	}

	seed(s, stack, nil)

	priorities := sortedPriorities(queues)
	for hasWork(queues) {
		drained := false
		for _, p := range priorities {
			for len(queues[p]) > 0 {
				drained = true
				item := queues[p][0]
				queues[p] = queues[p][1:]

				node := g.nodes[item.node]
				if node == nil {
					continue
				}
				nextStack := node.Action.Apply(item.stack)
				if node.IsDefinition() && len(nextStack) == 0 {
					return item.node, nil
				}
				seed(item.node, nextStack, nil)
				priorities = sortedPriorities(queues)
			}
		}
		if !drained {
			break
		}
	}
	return 0, ErrNotFound
}

func hasWork(queues map[int][]queueItem) bool {
	for _, q := range queues {
		if len(q) > 0 {
			return true
		}
	}
	return false
}

func sortedPriorities(queues map[int][]queueItem) []int {
	out := make([]int, 0, len(queues))
	for p := range queues {
		out = append(out, p)
	}
	// insertion sort: priority sets are tiny (0, 1) in practice.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
