package snarl

import (
	"fmt"
	"slices"

	"github.com/tbruckner/seqgraph/pkg/graph"
)

// Visit is one stop of a threaded haplotype: an oriented handle in the net
// graph together with the haplotype's lane at that node.
type Visit struct {
	Handle graph.Handle
	Lane   int
}

// State stores the haplotypes threaded through one net graph. A haplotype's
// identity is its lane at the snarl boundary; lane numbers at a given node
// strictly order every traversal through that node, in either orientation
// (a haplotype revisiting a node holds one lane per visit), and need not
// agree between nodes.
type State struct {
	net  *NetGraph
	haps [][]Visit
}

// NewState returns an empty lane state over the given net graph.
func NewState(net *NetGraph) *State {
	return &State{net: net}
}

// Size returns the number of stored haplotypes.
func (st *State) Size() int { return len(st.haps) }

// InsertAnnotated stores a haplotype whose lanes are already chosen. Every
// previously stored visit at a node the new haplotype also visits, with a
// lane at or above the new haplotype's lane there, is shifted up by one.
// Lanes at nodes the new haplotype does not visit are untouched.
func (st *State) InsertAnnotated(hap []Visit) error {
	if err := st.checkSpan(handlesOf(hap)); err != nil {
		return err
	}
	if lane := hap[0].Lane; lane < 0 || lane > len(st.haps) {
		return fmt.Errorf("insert at lane %d of %d: %w", lane, len(st.haps), ErrUnknownLane)
	}
	// Shift per node in ascending lane order, so a haplotype revisiting a
	// node opens one gap per visit instead of compounding shifts.
	for node, lanes := range lanesByNode(hap) {
		slices.Sort(lanes)
		for _, l := range lanes {
			st.shiftAt(node, l, +1)
		}
	}
	st.haps = append(st.haps, nil)
	lane := hap[0].Lane
	copy(st.haps[lane+1:], st.haps[lane:])
	st.haps[lane] = append([]Visit(nil), hap...)
	return nil
}

// Append stores a haplotype after all others, assigning at each visited node
// the lane one past that node's current occupancy, and returns the annotated
// visits. Revisits of a node take successive lanes in visit order.
func (st *State) Append(handles []graph.Handle) ([]Visit, error) {
	if err := st.checkSpan(handles); err != nil {
		return nil, err
	}
	hap := make([]Visit, len(handles))
	prior := make(map[graph.ID]int)
	for i, h := range handles {
		hap[i] = Visit{Handle: h, Lane: st.occupancy(h.Node) + prior[h.Node]}
		prior[h.Node]++
	}
	st.haps = append(st.haps, hap)
	return append([]Visit(nil), hap...), nil
}

// Insert stores a haplotype at the given boundary lane. The boundary visits
// are pinned to that lane; interior visits get occupancy-order lanes, since
// their exact ordering is not observable from outside the node. Returns the
// annotated visits.
func (st *State) Insert(lane int, handles []graph.Handle) ([]Visit, error) {
	if err := st.checkSpan(handles); err != nil {
		return nil, err
	}
	hap := make([]Visit, len(handles))
	prior := make(map[graph.ID]int)
	for i, h := range handles {
		l := st.occupancy(h.Node) + prior[h.Node]
		if i == 0 || i == len(handles)-1 {
			l = lane
		}
		hap[i] = Visit{Handle: h, Lane: l}
		prior[h.Node]++
	}
	if err := st.InsertAnnotated(hap); err != nil {
		return nil, err
	}
	return append([]Visit(nil), hap...), nil
}

// Erase removes the haplotype at the given boundary lane and closes the lane
// gaps it leaves at every node it visited.
func (st *State) Erase(lane int) error {
	if lane < 0 || lane >= len(st.haps) {
		return fmt.Errorf("erase lane %d of %d: %w", lane, len(st.haps), ErrUnknownLane)
	}
	hap := st.haps[lane]
	st.haps = append(st.haps[:lane], st.haps[lane+1:]...)
	// Close gaps per node from the highest vacated lane down, so lower
	// thresholds are not disturbed by earlier removals.
	for node, lanes := range lanesByNode(hap) {
		slices.Sort(lanes)
		for i := len(lanes) - 1; i >= 0; i-- {
			st.shiftAt(node, lanes[i]+1, -1)
		}
	}
	return nil
}

// Trace replays the haplotype at the given boundary lane. With backward set,
// visits come in reverse order with flipped handles; the stored lane numbers
// are reported unchanged either way.
func (st *State) Trace(lane int, backward bool, visit func(graph.Handle, int)) error {
	if lane < 0 || lane >= len(st.haps) {
		return fmt.Errorf("trace lane %d of %d: %w", lane, len(st.haps), ErrUnknownLane)
	}
	hap := st.haps[lane]
	if backward {
		for i := len(hap) - 1; i >= 0; i-- {
			visit(st.net.Flip(hap[i].Handle), hap[i].Lane)
		}
		return nil
	}
	for _, v := range hap {
		visit(v.Handle, v.Lane)
	}
	return nil
}

// checkSpan rejects haplotypes that do not run boundary to boundary in the
// snarl's forward orientation.
func (st *State) checkSpan(handles []graph.Handle) error {
	if len(handles) < 2 || handles[0] != st.net.Start() || handles[len(handles)-1] != st.net.End() {
		return fmt.Errorf("haplotype %v: %w", handles, ErrInvalidOrientation)
	}
	return nil
}

// occupancy counts the stored visits at a node, in any orientation.
func (st *State) occupancy(node graph.ID) int {
	count := 0
	for _, hap := range st.haps {
		for _, v := range hap {
			if v.Handle.Node == node {
				count++
			}
		}
	}
	return count
}

// shiftAt moves every stored lane at node that is >= from by delta.
func (st *State) shiftAt(node graph.ID, from, delta int) {
	for _, hap := range st.haps {
		for i := range hap {
			if hap[i].Handle.Node == node && hap[i].Lane >= from {
				hap[i].Lane += delta
			}
		}
	}
}

// lanesByNode groups a haplotype's lanes by the node they sit at.
func lanesByNode(hap []Visit) map[graph.ID][]int {
	byNode := make(map[graph.ID][]int)
	for _, v := range hap {
		byNode[v.Handle.Node] = append(byNode[v.Handle.Node], v.Lane)
	}
	return byNode
}

func handlesOf(hap []Visit) []graph.Handle {
	handles := make([]graph.Handle, len(hap))
	for i, v := range hap {
		handles[i] = v.Handle
	}
	return handles
}
