package graph

import "errors"

// ExpandContextByLength grows a context subgraph outward from its current
// nodes, pulling in neighbors from g until walks exceed length bases. The
// context's pre-existing nodes act as seeds and keep their ids; reached nodes
// are copied over with theirs.
//
// An edge is never crossed, and never copied, if either of its attachment
// sides is listed in barriers. Edges directly joining two seed nodes are not
// copied either: the caller seeded those nodes deliberately and gets to
// decide their interconnection.
func (g *Graph) ExpandContextByLength(context *Graph, length int, barriers []NodeSide) error {
	barred := make(map[NodeSide]bool, len(barriers))
	for _, b := range barriers {
		barred[b] = true
	}
	seeds := make(map[ID]bool)
	for _, n := range context.Nodes() {
		if !g.HasNode(n.ID) {
			return errors.New("context seed node missing from source graph")
		}
		seeds[n.ID] = true
	}

	type visit struct {
		side      NodeSide
		remaining int
	}
	var queue []visit
	for id := range seeds {
		queue = append(queue, visit{side: Side(id, false), remaining: length})
		queue = append(queue, visit{side: Side(id, true), remaining: length})
	}
	best := make(map[NodeSide]int)
	for _, v := range queue {
		best[v.side] = v.remaining
	}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, e := range g.EdgesOn(v.side) {
			s1, s2 := e.Sides()
			if barred[s1] || barred[s2] {
				continue
			}
			far := s2
			if far == v.side {
				far = s1
			}
			n := g.nodes[far.Node]
			cost := n.Len()
			if cost > v.remaining {
				continue
			}
			if !context.HasNode(far.Node) {
				if err := context.AddNode(*n); err != nil {
					return err
				}
			}
			// Continue the walk out of the node's other side.
			next := visit{side: far.Flip(), remaining: v.remaining - cost}
			if cur, seen := best[next.side]; !seen || next.remaining > cur {
				best[next.side] = next.remaining
				queue = append(queue, next)
			}
		}
	}

	for _, e := range g.edgeOrder {
		s1, s2 := e.Sides()
		if barred[s1] || barred[s2] {
			continue
		}
		if seeds[s1.Node] && seeds[s2.Node] {
			continue
		}
		if context.HasNode(s1.Node) && context.HasNode(s2.Node) && !context.HasEdge(s1, s2) {
			if _, err := context.CreateEdge(s1, s2, e.Overlap); err != nil {
				return err
			}
		}
	}
	return nil
}
