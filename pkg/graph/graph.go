// Package graph implements a mutable bidirected sequence graph: nodes carry
// DNA sequences and edges attach to a specific side (start or end) of each
// endpoint, so a node can be traversed on either strand.
//
// The model follows the conventions of variation-graph tooling. An edge is
// stored as (from, to, from_start, to_end, overlap): with both flags clear it
// connects the end side of from to the start side of to. An edge and its
// flag-inverted reversal are the same edge, and duplicate creation is
// rejected.
//
// A Graph owns its nodes and edges. NodeSide and Handle values are plain
// (id, flag) pairs carrying no ownership; they stay meaningful only while the
// referenced node exists. The Graph is not safe for concurrent mutation.
package graph

import (
	"errors"
	"fmt"
	"slices"

	"github.com/tbruckner/seqgraph/pkg/sequence"
)

var (
	// ErrNotFound is returned when a referenced node or edge id is absent
	// from the graph.
	ErrNotFound = errors.New("not found in graph")

	// ErrDuplicateNode is returned by [Graph.AddNode] and [Graph.CreateHandle]
	// when a node with the requested id already exists.
	ErrDuplicateNode = errors.New("duplicate node id")

	// ErrDuplicateEdge is returned by [Graph.CreateEdge] when a structurally
	// identical edge (accounting for traversal symmetry) already exists.
	ErrDuplicateEdge = errors.New("duplicate edge")

	// ErrMalformedOverlap is returned by [Graph.CreateEdge] when the declared
	// overlap is longer than either endpoint's sequence. An overlap equal to
	// an endpoint's length is allowed: chained overlaps can consume a middle
	// node completely.
	ErrMalformedOverlap = errors.New("overlap exceeds node length")
)

// ID identifies a node. Ids are positive and unique within one Graph.
type ID int64

// Node is a sequence fragment. Nodes are immutable once created except for
// division ([Graph.DivideNode]) and merging ([Graph.Unchop]), both of which
// replace nodes rather than rewriting them in place.
type Node struct {
	ID       ID
	Sequence string
}

// Len returns the node's sequence length in bases.
func (n *Node) Len() int { return len(n.Sequence) }

// NodeSide addresses one end of a node: End=false is the start (5') side,
// End=true the end (3') side. Edges attach to sides.
type NodeSide struct {
	Node ID
	End  bool
}

// Side builds the NodeSide for the given node id and end flag.
func Side(id ID, end bool) NodeSide { return NodeSide{Node: id, End: end} }

// Flip returns the opposite side of the same node.
func (s NodeSide) Flip() NodeSide { return NodeSide{Node: s.Node, End: !s.End} }

func (s NodeSide) String() string {
	if s.End {
		return fmt.Sprintf("%d:end", s.Node)
	}
	return fmt.Sprintf("%d:start", s.Node)
}

// Handle is an oriented reference to a node: the node read forward, or its
// reverse complement. Handles are the traversal unit for orientation-aware
// algorithms.
type Handle struct {
	Node    ID
	Reverse bool
}

// NewHandle builds a handle for the given node id and orientation.
func NewHandle(id ID, reverse bool) Handle { return Handle{Node: id, Reverse: reverse} }

// Flip returns the same node in the opposite orientation.
func (h Handle) Flip() Handle { return Handle{Node: h.Node, Reverse: !h.Reverse} }

func (h Handle) String() string {
	if h.Reverse {
		return fmt.Sprintf("%d-", h.Node)
	}
	return fmt.Sprintf("%d+", h.Node)
}

// Edge connects two node sides. The canonical storage form keeps the side the
// edge attaches to on each endpoint in the flag bits; Sides recovers them.
type Edge struct {
	From      ID
	To        ID
	FromStart bool
	ToEnd     bool
	Overlap   int
}

// Sides returns the two attachment sides of the edge: the side on From and
// the side on To.
func (e Edge) Sides() (NodeSide, NodeSide) {
	return Side(e.From, !e.FromStart), Side(e.To, e.ToEnd)
}

// Reversing reports whether crossing the edge switches strands, i.e. whether
// exactly one of the orientation flags is set.
func (e Edge) Reversing() bool { return e.FromStart != e.ToEnd }

// edgeKey is the symmetric identity of an edge: its side pair in canonical
// order.
type edgeKey struct {
	a, b NodeSide
}

func sideLess(a, b NodeSide) bool {
	if a.Node != b.Node {
		return a.Node < b.Node
	}
	return !a.End && b.End
}

func keyOf(s1, s2 NodeSide) edgeKey {
	if sideLess(s2, s1) {
		s1, s2 = s2, s1
	}
	return edgeKey{a: s1, b: s2}
}

// Graph is an arena of nodes and edges with side-indexed adjacency.
// Iteration order over nodes and edges is creation order.
//
// The zero value is not usable; use New.
type Graph struct {
	nodes     map[ID]*Node
	nodeOrder []ID
	edges     map[edgeKey]*Edge
	edgeOrder []*Edge
	bySide    map[NodeSide][]*Edge
	nextID    ID
}

// New creates an empty graph. Node ids are assigned from 1 upward unless
// chosen explicitly via AddNode or CreateHandle.
func New() *Graph {
	return &Graph{
		nodes:  make(map[ID]*Node),
		edges:  make(map[edgeKey]*Edge),
		bySide: make(map[NodeSide][]*Edge),
		nextID: 1,
	}
}

// CreateNode adds a node with the next free id and returns it.
func (g *Graph) CreateNode(seq string) *Node {
	n := &Node{ID: g.nextID, Sequence: seq}
	g.nextID++
	g.nodes[n.ID] = n
	g.nodeOrder = append(g.nodeOrder, n.ID)
	return n
}

// CreateHandle adds a node with a caller-chosen id and returns its forward
// handle. The id allocator is bumped past the given id so later CreateNode
// calls cannot collide. Returns ErrDuplicateNode if the id is taken.
func (g *Graph) CreateHandle(seq string, id ID) (Handle, error) {
	if err := g.AddNode(Node{ID: id, Sequence: seq}); err != nil {
		return Handle{}, err
	}
	return NewHandle(id, false), nil
}

// AddNode inserts a copy of the given node, keeping its id. This is how
// subgraph extraction carries nodes over with their original identity.
// Returns ErrDuplicateNode if the id is already present.
func (g *Graph) AddNode(n Node) error {
	if n.ID <= 0 {
		return fmt.Errorf("node id %d: %w", n.ID, ErrNotFound)
	}
	if _, exists := g.nodes[n.ID]; exists {
		return fmt.Errorf("node %d: %w", n.ID, ErrDuplicateNode)
	}
	node := n
	g.nodes[node.ID] = &node
	g.nodeOrder = append(g.nodeOrder, node.ID)
	if node.ID >= g.nextID {
		g.nextID = node.ID + 1
	}
	return nil
}

// GetNode returns the node with the given id, or ErrNotFound.
func (g *Graph) GetNode(id ID) (*Node, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node %d: %w", id, ErrNotFound)
	}
	return n, nil
}

// HasNode reports whether a node with the given id exists.
func (g *Graph) HasNode(id ID) bool {
	_, ok := g.nodes[id]
	return ok
}

// CreateEdge connects two node sides with the given overlap and returns the
// stored edge. It fails with ErrNotFound if either node is absent,
// ErrMalformedOverlap if the overlap is longer than either endpoint, and
// ErrDuplicateEdge if an equivalent edge already exists.
func (g *Graph) CreateEdge(s1, s2 NodeSide, overlap int) (*Edge, error) {
	n1, ok := g.nodes[s1.Node]
	if !ok {
		return nil, fmt.Errorf("edge endpoint %v: %w", s1, ErrNotFound)
	}
	n2, ok := g.nodes[s2.Node]
	if !ok {
		return nil, fmt.Errorf("edge endpoint %v: %w", s2, ErrNotFound)
	}
	if overlap > n1.Len() || overlap > n2.Len() {
		return nil, fmt.Errorf("edge %v-%v overlap %d: %w", s1, s2, overlap, ErrMalformedOverlap)
	}
	key := keyOf(s1, s2)
	if _, exists := g.edges[key]; exists {
		return nil, fmt.Errorf("edge %v-%v: %w", s1, s2, ErrDuplicateEdge)
	}
	e := &Edge{From: s1.Node, To: s2.Node, FromStart: !s1.End, ToEnd: s2.End, Overlap: overlap}
	g.edges[key] = e
	g.edgeOrder = append(g.edgeOrder, e)
	g.bySide[s1] = append(g.bySide[s1], e)
	if s2 != s1 {
		g.bySide[s2] = append(g.bySide[s2], e)
	}
	return e, nil
}

// AddEdge inserts an equivalent of the given edge, deriving the attachment
// sides from its flags. Used when copying topology between graphs.
func (g *Graph) AddEdge(e Edge) (*Edge, error) {
	s1, s2 := e.Sides()
	return g.CreateEdge(s1, s2, e.Overlap)
}

// GetEdge returns the edge between the two sides, or ErrNotFound.
func (g *Graph) GetEdge(s1, s2 NodeSide) (*Edge, error) {
	e, ok := g.edges[keyOf(s1, s2)]
	if !ok {
		return nil, fmt.Errorf("edge %v-%v: %w", s1, s2, ErrNotFound)
	}
	return e, nil
}

// HasEdge reports whether an edge between the two sides exists.
func (g *Graph) HasEdge(s1, s2 NodeSide) bool {
	_, ok := g.edges[keyOf(s1, s2)]
	return ok
}

// DestroyEdge removes the edge between the two sides if it exists.
func (g *Graph) DestroyEdge(s1, s2 NodeSide) {
	key := keyOf(s1, s2)
	e, ok := g.edges[key]
	if !ok {
		return
	}
	delete(g.edges, key)
	g.edgeOrder = slices.DeleteFunc(g.edgeOrder, func(x *Edge) bool { return x == e })
	g.bySide[key.a] = slices.DeleteFunc(g.bySide[key.a], func(x *Edge) bool { return x == e })
	if key.b != key.a {
		g.bySide[key.b] = slices.DeleteFunc(g.bySide[key.b], func(x *Edge) bool { return x == e })
	}
}

// DestroyNode removes a node and every edge attached to either of its sides.
func (g *Graph) DestroyNode(id ID) {
	if _, ok := g.nodes[id]; !ok {
		return
	}
	for _, e := range g.EdgesOf(id) {
		s1, s2 := e.Sides()
		g.DestroyEdge(s1, s2)
	}
	delete(g.nodes, id)
	g.nodeOrder = slices.DeleteFunc(g.nodeOrder, func(x ID) bool { return x == id })
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// TotalLength returns the summed sequence length of all nodes.
func (g *Graph) TotalLength() int {
	total := 0
	for _, n := range g.nodes {
		total += n.Len()
	}
	return total
}

// Nodes returns all nodes in creation order.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.nodes))
	for _, id := range g.nodeOrder {
		if n, ok := g.nodes[id]; ok {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// Edges returns all edges in creation order. The slice is a copy; the edge
// pointers are the graph's own.
func (g *Graph) Edges() []*Edge { return slices.Clone(g.edgeOrder) }

// ForEachNode calls fn for every node in creation order until fn returns
// false. The callback must not mutate the graph.
func (g *Graph) ForEachNode(fn func(*Node) bool) {
	for _, n := range g.Nodes() {
		if !fn(n) {
			return
		}
	}
}

// ForEachEdge calls fn for every edge in creation order until fn returns
// false. The callback must not mutate the graph.
func (g *Graph) ForEachEdge(fn func(*Edge) bool) {
	for _, e := range g.Edges() {
		if !fn(e) {
			return
		}
	}
}

// EdgesOn returns the edges attached to the given side, in creation order.
// The returned slice must be treated as read-only.
func (g *Graph) EdgesOn(s NodeSide) []*Edge { return g.bySide[s] }

// EdgesOf returns every edge touching either side of the node, each edge
// listed once.
func (g *Graph) EdgesOf(id ID) []*Edge {
	seen := make(map[*Edge]bool)
	var out []*Edge
	for _, s := range []NodeSide{Side(id, false), Side(id, true)} {
		for _, e := range g.bySide[s] {
			if !seen[e] {
				seen[e] = true
				out = append(out, e)
			}
		}
	}
	return out
}

// Adjacency describes a neighbor reached by traversing out of one side of a
// node: the neighbor's id plus an orientation bit recovered from the stored
// edge flags.
type Adjacency struct {
	Node    ID
	Reverse bool
}

// EdgesStart lists the neighbors reachable out of the node's start side.
// For an edge arriving at this node's start (to==id, !to_end) the pair is
// (from, from_start); for an edge leaving this node's start (from==id,
// from_start) it is (to, !to_end).
func (g *Graph) EdgesStart(id ID) []Adjacency {
	var out []Adjacency
	for _, e := range g.bySide[Side(id, false)] {
		if e.To == id && !e.ToEnd {
			out = append(out, Adjacency{Node: e.From, Reverse: e.FromStart})
		} else if e.From == id && e.FromStart {
			out = append(out, Adjacency{Node: e.To, Reverse: !e.ToEnd})
		}
	}
	return out
}

// EdgesEnd lists the neighbors reachable out of the node's end side,
// symmetric to EdgesStart.
func (g *Graph) EdgesEnd(id ID) []Adjacency {
	var out []Adjacency
	for _, e := range g.bySide[Side(id, true)] {
		if e.From == id && !e.FromStart {
			out = append(out, Adjacency{Node: e.To, Reverse: e.ToEnd})
		} else if e.To == id && e.ToEnd {
			out = append(out, Adjacency{Node: e.From, Reverse: !e.FromStart})
		}
	}
	return out
}

// SequenceOf returns the sequence selected by a handle: the node's sequence
// read forward, or its reverse complement.
func (g *Graph) SequenceOf(h Handle) (string, error) {
	n, err := g.GetNode(h.Node)
	if err != nil {
		return "", err
	}
	if h.Reverse {
		return sequence.ReverseComplement(n.Sequence), nil
	}
	return n.Sequence, nil
}

// Clone returns a deep copy sharing no state with the receiver.
func (g *Graph) Clone() *Graph {
	c := New()
	for _, n := range g.Nodes() {
		c.AddNode(*n)
	}
	for _, e := range g.edgeOrder {
		c.AddEdge(*e)
	}
	c.nextID = g.nextID
	return c
}

// IsConnected reports whether the graph forms a single weakly-connected
// component. The empty graph is connected.
func (g *Graph) IsConnected() bool {
	if len(g.nodes) == 0 {
		return true
	}
	visited := make(map[ID]bool, len(g.nodes))
	queue := []ID{g.nodeOrder[0]}
	visited[g.nodeOrder[0]] = true
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, e := range g.EdgesOf(id) {
			for _, next := range []ID{e.From, e.To} {
				if !visited[next] {
					visited[next] = true
					queue = append(queue, next)
				}
			}
		}
	}
	return len(visited) == len(g.nodes)
}
