package graph

import "github.com/tbruckner/seqgraph/pkg/sequence"

// OrigNode records where a node in a derived graph came from: the source
// node's id and whether the derived copy reads the opposite strand.
type OrigNode struct {
	ID      ID
	Flipped bool
}

// Translation maps node ids of a derived graph back to the source graph.
type Translation map[ID]OrigNode

// ReverseComplement builds the opposite-strand reading of the whole graph:
// every node's sequence is reverse-complemented in place of the original and
// every edge reattaches to the flipped sides, so walking the result forward
// corresponds to walking the source backward. Node ids are preserved; the
// translation marks every node as flipped.
func (g *Graph) ReverseComplement() (*Graph, Translation) {
	rc := New()
	trans := make(Translation, len(g.nodes))
	for _, n := range g.Nodes() {
		rc.AddNode(Node{ID: n.ID, Sequence: sequence.ReverseComplement(n.Sequence)})
		trans[n.ID] = OrigNode{ID: n.ID, Flipped: true}
	}
	for _, e := range g.edgeOrder {
		s1, s2 := e.Sides()
		rc.CreateEdge(s1.Flip(), s2.Flip(), e.Overlap)
	}
	return rc, trans
}
