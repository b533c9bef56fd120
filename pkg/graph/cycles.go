package graph

// orientedVertex is a node read in one direction. Every edge induces two
// directed arcs over these vertices, one per reading direction, so a cycle
// check on them respects strand.
type orientedVertex struct {
	node    ID
	reverse bool
}

type visitState uint8

const (
	unvisited visitState = iota
	inProgress
	done
)

// IsAcyclic reports whether no oriented walk through the graph can revisit a
// node in the same orientation. A non-reversing self edge is a self-loop on
// an oriented vertex and makes the graph cyclic; a reversing self edge on its
// own does not, since it only crosses to the other strand.
func (g *Graph) IsAcyclic() bool {
	arcs := make(map[orientedVertex][]orientedVertex)
	for _, e := range g.edgeOrder {
		u := orientedVertex{node: e.From, reverse: e.FromStart}
		v := orientedVertex{node: e.To, reverse: e.ToEnd}
		arcs[u] = append(arcs[u], v)
		// Mirror arc: the same edge crossed while reading the other strand.
		mu := orientedVertex{node: e.To, reverse: !e.ToEnd}
		mv := orientedVertex{node: e.From, reverse: !e.FromStart}
		arcs[mu] = append(arcs[mu], mv)
	}

	state := make(map[orientedVertex]visitState)
	var visit func(orientedVertex) bool
	visit = func(v orientedVertex) bool {
		switch state[v] {
		case inProgress:
			return false
		case done:
			return true
		}
		state[v] = inProgress
		for _, next := range arcs[v] {
			if !visit(next) {
				return false
			}
		}
		state[v] = done
		return true
	}
	for _, id := range g.nodeOrder {
		for _, rev := range []bool{false, true} {
			if !visit(orientedVertex{node: id, reverse: rev}) {
				return false
			}
		}
	}
	return true
}
