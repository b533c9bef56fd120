package graph

import "testing"

// nodeBySeq finds the unique node carrying the given sequence.
func nodeBySeq(t *testing.T, g *Graph, seq string) *Node {
	t.Helper()
	var found *Node
	for _, n := range g.Nodes() {
		if n.Sequence == seq {
			if found != nil {
				t.Fatalf("sequence %q appears on nodes %d and %d", seq, found.ID, n.ID)
			}
			found = n
		}
	}
	if found == nil {
		t.Fatalf("no node with sequence %q", seq)
	}
	return found
}

func assertAllBlunt(t *testing.T, g *Graph) {
	t.Helper()
	for _, e := range g.Edges() {
		if e.Overlap != 0 {
			s1, s2 := e.Sides()
			t.Errorf("edge %v-%v kept overlap %d", s1, s2, e.Overlap)
		}
	}
}

func TestBluntifyPlainOverlap(t *testing.T) {
	g := buildGraph(t,
		[]testNode{{1, "GAA"}, {2, "AAT"}},
		[]testEdge{{from: 1, to: 2, overlap: 2}},
	)
	if err := g.Bluntify(); err != nil {
		t.Fatalf("bluntify: %v", err)
	}
	if g.NodeCount() != 3 || g.EdgeCount() != 2 {
		t.Fatalf("got %d nodes and %d edges, want 3 and 2", g.NodeCount(), g.EdgeCount())
	}
	gN := nodeBySeq(t, g, "G")
	aa := nodeBySeq(t, g, "AA")
	tN := nodeBySeq(t, g, "T")
	if !g.HasEdge(Side(gN.ID, true), Side(aa.ID, false)) {
		t.Error("missing edge G:end-AA:start")
	}
	if !g.HasEdge(Side(aa.ID, true), Side(tN.ID, false)) {
		t.Error("missing edge AA:end-T:start")
	}
	assertAllBlunt(t, g)
}

func TestBluntifyDoublyReversingOverlap(t *testing.T) {
	g := buildGraph(t,
		[]testNode{{1, "TTC"}, {2, "ATT"}},
		[]testEdge{{from: 1, to: 2, fromStart: true, toEnd: true, overlap: 2}},
	)
	if err := g.Bluntify(); err != nil {
		t.Fatalf("bluntify: %v", err)
	}
	if g.NodeCount() != 3 || g.EdgeCount() != 2 {
		t.Fatalf("got %d nodes and %d edges, want 3 and 2", g.NodeCount(), g.EdgeCount())
	}
	cN := nodeBySeq(t, g, "C")
	tt := nodeBySeq(t, g, "TT")
	aN := nodeBySeq(t, g, "A")
	if !g.HasEdge(Side(cN.ID, false), Side(tt.ID, true)) {
		t.Error("missing edge C:start-TT:end")
	}
	if !g.HasEdge(Side(tt.ID, false), Side(aN.ID, true)) {
		t.Error("missing edge TT:start-A:end")
	}
	assertAllBlunt(t, g)
}

func TestBluntifySingleReversingOverlap(t *testing.T) {
	g := buildGraph(t,
		[]testNode{{1, "TTC"}, {2, "AAT"}},
		[]testEdge{{from: 1, to: 2, fromStart: true, overlap: 2}},
	)
	if err := g.Bluntify(); err != nil {
		t.Fatalf("bluntify: %v", err)
	}
	if g.NodeCount() != 3 || g.EdgeCount() != 2 {
		t.Fatalf("got %d nodes and %d edges, want 3 and 2", g.NodeCount(), g.EdgeCount())
	}
	// The shared piece may survive on either strand.
	var middle *Node
	isTT := false
	for _, n := range g.Nodes() {
		switch n.Sequence {
		case "TT":
			middle = n
			isTT = true
		case "AA":
			middle = n
		}
	}
	if middle == nil {
		t.Fatal("no TT or AA middle node")
	}
	cN := nodeBySeq(t, g, "C")
	tN := nodeBySeq(t, g, "T")
	if !g.HasEdge(Side(cN.ID, false), Side(middle.ID, isTT)) {
		t.Error("C not attached to the middle node's shared end")
	}
	if !g.HasEdge(Side(middle.ID, !isTT), Side(tN.ID, false)) {
		t.Error("T not attached to the middle node's other end")
	}
	assertAllBlunt(t, g)
}

func TestBluntifyChainedOverlap(t *testing.T) {
	// The middle node is consumed entirely by the overlaps on both sides;
	// it must end up as the single shared piece, not split twice.
	g := buildGraph(t,
		[]testNode{{1, "GAA"}, {2, "AA"}, {3, "AAT"}},
		[]testEdge{
			{from: 1, to: 2, overlap: 2},
			{from: 2, to: 3, overlap: 2},
		},
	)
	if err := g.Bluntify(); err != nil {
		t.Fatalf("bluntify: %v", err)
	}
	if g.NodeCount() != 3 || g.EdgeCount() != 2 {
		t.Fatalf("got %d nodes and %d edges, want 3 and 2", g.NodeCount(), g.EdgeCount())
	}
	gN := nodeBySeq(t, g, "G")
	aa := nodeBySeq(t, g, "AA")
	tN := nodeBySeq(t, g, "T")
	if !g.HasEdge(Side(gN.ID, true), Side(aa.ID, false)) {
		t.Error("missing edge G:end-AA:start")
	}
	if !g.HasEdge(Side(aa.ID, true), Side(tN.ID, false)) {
		t.Error("missing edge AA:end-T:start")
	}
	assertAllBlunt(t, g)
}

func TestBluntifyChainedOverlapAcrossReversingEdge(t *testing.T) {
	g := buildGraph(t,
		[]testNode{{1, "TTC"}, {2, "AA"}, {3, "AAT"}},
		[]testEdge{
			{from: 1, to: 2, fromStart: true, overlap: 2},
			{from: 2, to: 3, overlap: 2},
		},
	)
	if err := g.Bluntify(); err != nil {
		t.Fatalf("bluntify: %v", err)
	}
	if g.NodeCount() != 3 || g.EdgeCount() != 2 {
		t.Fatalf("got %d nodes and %d edges, want 3 and 2", g.NodeCount(), g.EdgeCount())
	}
	var middle *Node
	isTT := false
	for _, n := range g.Nodes() {
		switch n.Sequence {
		case "TT":
			middle = n
			isTT = true
		case "AA":
			middle = n
		}
	}
	if middle == nil {
		t.Fatal("no TT or AA middle node")
	}
	cN := nodeBySeq(t, g, "C")
	tN := nodeBySeq(t, g, "T")
	if !g.HasEdge(Side(cN.ID, false), Side(middle.ID, isTT)) {
		t.Error("C not attached to the middle node's shared end")
	}
	if !g.HasEdge(Side(middle.ID, !isTT), Side(tN.ID, false)) {
		t.Error("T not attached to the middle node's other end")
	}
	assertAllBlunt(t, g)
}

func TestBluntifyPreservesNonOverlappingEdges(t *testing.T) {
	g := buildGraph(t,
		[]testNode{{1, "CAAAA"}, {2, "AAAT"}, {3, "GGG"}, {4, "CC"}},
		[]testEdge{
			{from: 1, to: 2, overlap: 3},
			{from: 3, to: 1},
			{from: 2, to: 4},
		},
	)
	if err := g.Bluntify(); err != nil {
		t.Fatalf("bluntify: %v", err)
	}
	g.Unchop()
	if g.NodeCount() != 1 {
		t.Fatalf("got %d nodes after unchop, want 1", g.NodeCount())
	}
	if g.EdgeCount() != 0 {
		t.Errorf("got %d edges after unchop, want 0", g.EdgeCount())
	}
	if seq := g.Nodes()[0].Sequence; seq != "GGGCAAAATCC" {
		t.Errorf("got %q, want GGGCAAAATCC", seq)
	}
}

func TestBluntifyIsIdempotent(t *testing.T) {
	g := buildGraph(t,
		[]testNode{{1, "GAA"}, {2, "AAT"}},
		[]testEdge{{from: 1, to: 2, overlap: 2}},
	)
	if err := g.Bluntify(); err != nil {
		t.Fatalf("first bluntify: %v", err)
	}
	nodes, edges := g.NodeCount(), g.EdgeCount()
	if err := g.Bluntify(); err != nil {
		t.Fatalf("second bluntify: %v", err)
	}
	if g.NodeCount() != nodes || g.EdgeCount() != edges {
		t.Errorf("second bluntify changed counts: got %d/%d, want %d/%d",
			g.NodeCount(), g.EdgeCount(), nodes, edges)
	}
}
