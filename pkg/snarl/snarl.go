// Package snarl models nested sub-regions of a sequence graph and the
// haplotype lane state threaded through them. Snarl boundaries come from an
// external decomposition; this package consumes them as boundary side pairs.
package snarl

import (
	"errors"
	"fmt"

	"github.com/tbruckner/seqgraph/pkg/graph"
)

var (
	// ErrInvalidOrientation reports a haplotype that does not run from the
	// snarl's start boundary to its end boundary in forward orientation.
	ErrInvalidOrientation = errors.New("haplotype does not span the snarl forward")
	// ErrUnknownLane reports a lane index with no stored haplotype.
	ErrUnknownLane = errors.New("no haplotype in lane")
)

// Snarl is a nested sub-region bounded by two node sides. Start is the side
// of the entry node facing the interior; End is the side of the exit node
// facing the interior.
type Snarl struct {
	Start graph.NodeSide
	End   graph.NodeSide
}

// StartHandle is the entry node read into the snarl.
func (s Snarl) StartHandle() graph.Handle {
	return graph.NewHandle(s.Start.Node, !s.Start.End)
}

// EndHandle is the exit node read out of the snarl.
func (s Snarl) EndHandle() graph.Handle {
	return graph.NewHandle(s.End.Node, s.End.End)
}

func (s Snarl) String() string {
	return fmt.Sprintf("%v..%v", s.StartHandle(), s.EndHandle())
}

// NetGraph is a traversal view over a snarl's interior in which each child
// snarl collapses to a single node: the child's start node stands in for the
// whole child, and traversal through it jumps to the child's far boundary.
type NetGraph struct {
	g       *graph.Graph
	snarl   Snarl
	byStart map[graph.ID]Snarl
	byEnd   map[graph.ID]Snarl
	visible map[graph.ID]bool
}

// NewNetGraph builds the collapsed view of snarl over g given its immediate
// children. Grandchildren are interior to the children and never surface.
func NewNetGraph(g *graph.Graph, snarl Snarl, children []Snarl) *NetGraph {
	ng := &NetGraph{
		g:       g,
		snarl:   snarl,
		byStart: make(map[graph.ID]Snarl, len(children)),
		byEnd:   make(map[graph.ID]Snarl, len(children)),
		visible: make(map[graph.ID]bool),
	}
	for _, c := range children {
		ng.byStart[c.Start.Node] = c
		ng.byEnd[c.End.Node] = c
	}

	// Everything reachable by collapsed traversal from the boundaries is
	// visible; child interiors are jumped over and never appear.
	queue := []graph.Handle{snarl.StartHandle(), snarl.EndHandle().Flip()}
	for _, h := range queue {
		ng.visible[h.Node] = true
	}
	for len(queue) > 0 {
		h := queue[0]
		queue = queue[1:]
		if h.Node == snarl.End.Node && h == snarl.EndHandle() {
			continue
		}
		if h.Node == snarl.Start.Node && h == snarl.StartHandle().Flip() {
			continue
		}
		ng.Follow(h, func(next graph.Handle) bool {
			if !ng.visible[next.Node] {
				ng.visible[next.Node] = true
				queue = append(queue, next)
			}
			return true
		})
	}
	return ng
}

// Start is the boundary handle reading into the snarl.
func (ng *NetGraph) Start() graph.Handle { return ng.snarl.StartHandle() }

// End is the boundary handle reading out of the snarl.
func (ng *NetGraph) End() graph.Handle { return ng.snarl.EndHandle() }

// Handle returns the oriented handle for a visible node. Nodes interior to a
// child snarl, including the child's far boundary, are not addressable.
func (ng *NetGraph) Handle(id graph.ID, reverse bool) (graph.Handle, error) {
	if !ng.visible[id] {
		return graph.Handle{}, fmt.Errorf("net graph handle %d: %w", id, graph.ErrNotFound)
	}
	return graph.NewHandle(id, reverse), nil
}

// Flip returns the opposite orientation of a handle.
func (ng *NetGraph) Flip(h graph.Handle) graph.Handle { return h.Flip() }

// Follow visits the handles reachable one step past h, collapsing child
// snarls: stepping past a child representative exits from the child's far
// boundary, and arriving at a child's far boundary from outside yields the
// flipped representative. The walk stops early if fn returns false.
func (ng *NetGraph) Follow(h graph.Handle, fn func(graph.Handle) bool) {
	exit := graph.Side(h.Node, !h.Reverse)
	if c, ok := ng.byStart[h.Node]; ok && h == c.StartHandle() {
		exit = graph.Side(c.End.Node, !c.EndHandle().Reverse)
	}
	for _, e := range ng.g.EdgesOn(exit) {
		s1, s2 := e.Sides()
		other := s2
		if other == exit && s1 != exit {
			other = s1
		}
		next := graph.NewHandle(other.Node, other.End)
		if c, ok := ng.byEnd[other.Node]; ok && next == c.EndHandle().Flip() {
			next = c.StartHandle().Flip()
		}
		if !fn(next) {
			return
		}
	}
}
