package graph

import (
	"fmt"
	"slices"
)

// DivideNode splits a node at the given interior offsets (bases from the
// node's start on its forward strand) and returns the replacement pieces in
// left-to-right order. Offsets outside (0, len) are ignored and duplicates
// collapsed. Edges on the original start side move to the first piece, edges
// on the end side to the last piece, and plain zero-overlap edges chain the
// pieces together. With no usable offsets the node is returned unchanged as
// a single piece.
func (g *Graph) DivideNode(id ID, offsets []int) ([]*Node, error) {
	n, err := g.GetNode(id)
	if err != nil {
		return nil, err
	}
	cuts := make([]int, 0, len(offsets))
	for _, off := range offsets {
		if off > 0 && off < n.Len() {
			cuts = append(cuts, off)
		}
	}
	slices.Sort(cuts)
	cuts = slices.Compact(cuts)
	if len(cuts) == 0 {
		return []*Node{n}, nil
	}

	pieces := make([]*Node, 0, len(cuts)+1)
	prev := 0
	for _, off := range append(cuts, n.Len()) {
		pieces = append(pieces, g.CreateNode(n.Sequence[prev:off]))
		prev = off
	}

	// Reattach incident edges, remapping the original's sides onto the
	// outer pieces. Self edges remap both endpoints.
	first, last := pieces[0], pieces[len(pieces)-1]
	remap := func(s NodeSide) NodeSide {
		if s.Node != id {
			return s
		}
		if s.End {
			return Side(last.ID, true)
		}
		return Side(first.ID, false)
	}
	for _, e := range g.EdgesOf(id) {
		s1, s2 := e.Sides()
		if _, err := g.CreateEdge(remap(s1), remap(s2), e.Overlap); err != nil {
			return nil, fmt.Errorf("divide node %d: %w", id, err)
		}
	}
	for i := 0; i < len(pieces)-1; i++ {
		if _, err := g.CreateEdge(Side(pieces[i].ID, true), Side(pieces[i+1].ID, false), 0); err != nil {
			return nil, fmt.Errorf("divide node %d: %w", id, err)
		}
	}
	g.DestroyNode(id)
	return pieces, nil
}

// Unchop merges unbranching runs of forward-linked nodes. Two nodes u and v
// merge when a single zero-overlap edge joins u's end to v's start, that edge
// is the only edge on both of those sides, and u and v are distinct. The
// merged node takes a fresh id and the concatenated sequence. Returns the
// number of merges performed.
func (g *Graph) Unchop() int {
	merges := 0
	for {
		merged := false
		for _, u := range g.Nodes() {
			e, ok := g.soleMergeEdge(u.ID)
			if !ok {
				continue
			}
			ms1, ms2 := e.Sides()
			if ms1 != Side(u.ID, true) {
				ms1, ms2 = ms2, ms1
			}
			v := g.nodes[ms2.Node]

			joined := g.CreateNode(u.Sequence + v.Sequence)
			remap := func(s NodeSide) NodeSide {
				switch s {
				case Side(u.ID, false):
					return Side(joined.ID, false)
				case Side(v.ID, true):
					return Side(joined.ID, true)
				}
				return s
			}
			incident := slices.Concat(g.EdgesOf(u.ID), g.EdgesOf(v.ID))
			seen := make(map[*Edge]bool, len(incident))
			for _, in := range incident {
				if in == e || seen[in] {
					continue
				}
				seen[in] = true
				a, b := in.Sides()
				if _, err := g.CreateEdge(remap(a), remap(b), in.Overlap); err != nil {
					// Two parallel edges can collapse onto the same
					// side pair after the merge; keep one.
					continue
				}
			}
			g.DestroyNode(u.ID)
			g.DestroyNode(v.ID)
			merges++
			merged = true
			break
		}
		if !merged {
			return merges
		}
	}
}

// soleMergeEdge finds the unique mergeable edge out of node id's end side:
// a plain end-to-start edge to a different node whose start side carries no
// other edges.
func (g *Graph) soleMergeEdge(id ID) (*Edge, bool) {
	outbound := g.EdgesOn(Side(id, true))
	if len(outbound) != 1 {
		return nil, false
	}
	e := outbound[0]
	s1, s2 := e.Sides()
	if e.Overlap != 0 {
		return nil, false
	}
	// Orient: we need exactly (id:end) -- (other:start).
	if s1 != Side(id, true) {
		s1, s2 = s2, s1
	}
	if s1 != Side(id, true) || s2.End || s2.Node == id {
		return nil, false
	}
	if len(g.EdgesOn(s2)) != 1 {
		return nil, false
	}
	return e, true
}
