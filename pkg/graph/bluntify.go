package graph

import (
	"errors"
	"fmt"
	"slices"
)

// ErrUnresolvableOverlap is returned by [Graph.Bluntify] when the overlap
// structure cannot be resolved into blunt-ended pieces, e.g. an overlap
// region glued to itself in opposite orientations.
var ErrUnresolvableOverlap = errors.New("unresolvable overlap structure")

// overlapEnd is one endpoint of an overlap edge: the attachment side plus the
// overlap length, which delimits the shared region adjacent to that side.
type overlapEnd struct {
	side    NodeSide
	overlap int
}

func (oe overlapEnd) region(length int) (int, int) {
	if oe.side.End {
		return length - oe.overlap, length
	}
	return 0, oe.overlap
}

// relToOffset converts a region-relative coordinate (measured from the
// region's left boundary on the node's forward strand) to a node offset.
func (oe overlapEnd) relToOffset(length, rel int) int {
	if oe.side.End {
		return length - oe.overlap + rel
	}
	return rel
}

func (oe overlapEnd) offsetToRel(length, offset int) int {
	if oe.side.End {
		return offset - (length - oe.overlap)
	}
	return offset
}

// Bluntify resolves all overlap edges into blunt (zero-overlap) topology.
// Each overlap identifies a region adjacent to one side of each endpoint as
// the same sequence; the nodes are cut at the region boundaries and the
// shared pieces merged into a single node, with orientation flipped when the
// two attachment sides are the same kind (both starts or both ends).
//
// Cut positions propagate across overlaps before any node is divided, so
// chains of overlapping overlaps resolve consistently.
func (g *Graph) Bluntify() error {
	type overlapPair struct {
		a, b overlapEnd
	}
	var pairs []overlapPair
	for _, e := range g.Edges() {
		if e.Overlap == 0 {
			continue
		}
		s1, s2 := e.Sides()
		pairs = append(pairs, overlapPair{
			a: overlapEnd{side: s1, overlap: e.Overlap},
			b: overlapEnd{side: s2, overlap: e.Overlap},
		})
	}
	if len(pairs) == 0 {
		return nil
	}

	// Seed cuts at the inner boundary of every overlap region, then
	// propagate cuts that land inside a region to the paired region until
	// nothing new appears.
	cuts := make(map[ID]map[int]bool)
	addCut := func(id ID, offset int) bool {
		length := g.nodes[id].Len()
		if offset <= 0 || offset >= length {
			return false
		}
		if cuts[id] == nil {
			cuts[id] = make(map[int]bool)
		}
		if cuts[id][offset] {
			return false
		}
		cuts[id][offset] = true
		return true
	}
	for _, p := range pairs {
		lenA := g.nodes[p.a.side.Node].Len()
		lenB := g.nodes[p.b.side.Node].Len()
		addCut(p.a.side.Node, p.a.relToOffset(lenA, boundaryRel(p.a)))
		addCut(p.b.side.Node, p.b.relToOffset(lenB, boundaryRel(p.b)))
	}
	for changed := true; changed; {
		changed = false
		for _, p := range pairs {
			if g.propagateCuts(p.a, p.b, cuts, addCut) {
				changed = true
			}
			if g.propagateCuts(p.b, p.a, cuts, addCut) {
				changed = true
			}
		}
	}

	// Overlap edges themselves are dropped: once the shared pieces merge,
	// the surviving chain edges carry the adjacency.
	for _, p := range pairs {
		g.DestroyEdge(p.a.side, p.b.side)
	}

	// Divide every cut node, remembering which piece covers which interval
	// of the original.
	pieceTable := make(map[ID][]span)
	lengths := make(map[ID]int)
	for _, p := range pairs {
		for _, oe := range []overlapEnd{p.a, p.b} {
			id := oe.side.Node
			if _, done := pieceTable[id]; done {
				continue
			}
			n := g.nodes[id]
			lengths[id] = n.Len()
			offsets := make([]int, 0, len(cuts[id]))
			for off := range cuts[id] {
				offsets = append(offsets, off)
			}
			slices.Sort(offsets)
			pieces, err := g.DivideNode(id, offsets)
			if err != nil {
				return fmt.Errorf("bluntify: %w", err)
			}
			spans := make([]span, len(pieces))
			prev := 0
			for i, pc := range pieces {
				spans[i] = span{id: pc.ID, start: prev, end: prev + pc.Len()}
				prev += pc.Len()
			}
			pieceTable[id] = spans
		}
	}

	// Union shared pieces. Same-kind attachment sides glue the regions in
	// opposite orientations, so those pairs merge flipped and in reversed
	// piece order.
	uf := newOrientedUnionFind()
	for _, p := range pairs {
		piecesA := regionPieces(pieceTable[p.a.side.Node], p.a, lengths[p.a.side.Node])
		piecesB := regionPieces(pieceTable[p.b.side.Node], p.b, lengths[p.b.side.Node])
		if len(piecesA) != len(piecesB) {
			return fmt.Errorf("bluntify %v-%v: %w", p.a.side, p.b.side, ErrUnresolvableOverlap)
		}
		flip := p.a.side.End == p.b.side.End
		for i, pa := range piecesA {
			pb := piecesB[i]
			if flip {
				pb = piecesB[len(piecesB)-1-i]
			}
			if pa.end-pa.start != pb.end-pb.start {
				return fmt.Errorf("bluntify %v-%v: %w", p.a.side, p.b.side, ErrUnresolvableOverlap)
			}
			if !uf.union(pa.id, pb.id, flip) {
				return fmt.Errorf("bluntify %v-%v: %w", p.a.side, p.b.side, ErrUnresolvableOverlap)
			}
		}
	}

	// Rewire every edge touching a merged-away piece onto its class
	// representative, then drop the duplicates.
	remapSide := func(s NodeSide) NodeSide {
		root, flipped := uf.find(s.Node)
		if flipped {
			return Side(root, !s.End)
		}
		return Side(root, s.End)
	}
	var obsolete []ID
	for id := range uf.parent {
		if root, _ := uf.find(id); root != id {
			obsolete = append(obsolete, id)
		}
	}
	slices.Sort(obsolete)
	for _, id := range obsolete {
		for _, e := range g.EdgesOf(id) {
			s1, s2 := e.Sides()
			if _, err := g.CreateEdge(remapSide(s1), remapSide(s2), e.Overlap); err != nil && !errors.Is(err, ErrDuplicateEdge) {
				return fmt.Errorf("bluntify: %w", err)
			}
		}
	}
	for _, id := range obsolete {
		g.DestroyNode(id)
	}
	return nil
}

// boundaryRel is the region-relative coordinate of the region's inner
// boundary: rel 0 for an end-side region (its left boundary is interior) and
// rel overlap for a start-side region.
func boundaryRel(oe overlapEnd) int {
	if oe.side.End {
		return 0
	}
	return oe.overlap
}

// propagateCuts maps every cut strictly inside src's overlap region onto the
// paired region of dst. Mixed attachment kinds glue the regions in the same
// direction, same kinds in opposite directions.
func (g *Graph) propagateCuts(src, dst overlapEnd, cuts map[ID]map[int]bool, addCut func(ID, int) bool) bool {
	srcLen := g.nodes[src.side.Node].Len()
	dstLen := g.nodes[dst.side.Node].Len()
	lo, hi := src.region(srcLen)
	changed := false
	for off := range cuts[src.side.Node] {
		if off <= lo || off >= hi {
			continue
		}
		rel := src.offsetToRel(srcLen, off)
		if src.side.End == dst.side.End {
			rel = src.overlap - rel
		}
		if addCut(dst.side.Node, dst.relToOffset(dstLen, rel)) {
			changed = true
		}
	}
	return changed
}

// span records which interval of an original node a division piece covers.
type span struct {
	id         ID
	start, end int
}

// regionPieces selects the pieces lying inside the overlap region, ordered by
// ascending region-relative position.
func regionPieces(spans []span, oe overlapEnd, length int) []span {
	lo, hi := oe.region(length)
	var out []span
	for _, sp := range spans {
		if sp.start >= lo && sp.end <= hi {
			out = append(out, sp)
		}
	}
	return out
}

type orientedUnionFind struct {
	parent map[ID]ID
	flip   map[ID]bool
}

func newOrientedUnionFind() *orientedUnionFind {
	return &orientedUnionFind{parent: make(map[ID]ID), flip: make(map[ID]bool)}
}

// find returns the class representative of id and whether id is oriented
// opposite to it. Unknown ids are their own representative.
func (u *orientedUnionFind) find(id ID) (ID, bool) {
	p, ok := u.parent[id]
	if !ok || p == id {
		return id, false
	}
	root, f := u.find(p)
	// Path compression keeps the accumulated flip consistent.
	u.parent[id] = root
	u.flip[id] = u.flip[id] != f
	return root, u.flip[id]
}

// union merges the classes of a and b with the given relative orientation.
// Returns false if they are already merged with the opposite orientation.
func (u *orientedUnionFind) union(a, b ID, flipped bool) bool {
	if _, ok := u.parent[a]; !ok {
		u.parent[a] = a
	}
	if _, ok := u.parent[b]; !ok {
		u.parent[b] = b
	}
	ra, fa := u.find(a)
	rb, fb := u.find(b)
	if ra == rb {
		return (fa != fb) == flipped
	}
	// Attach b's root under a's root.
	u.parent[rb] = ra
	u.flip[rb] = (fa != fb) != flipped
	return true
}
