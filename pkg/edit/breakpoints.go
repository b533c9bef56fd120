package edit

import (
	"fmt"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/sets/treeset"

	"github.com/tbruckner/seqgraph/pkg/graph"
)

// FindBreakpoints collects, per node, the forward-strand offsets where the
// graph must be cut before path can be threaded through it. Every non-match
// edit contributes its two boundaries. A mapping's outer boundaries are
// included when another mapping adjoins them; with breakEnds set they are
// included unconditionally, so the path's own endpoints land on node
// boundaries too.
func FindBreakpoints(g *graph.Graph, path Path, breakEnds bool) (map[graph.ID]*treeset.Set, error) {
	breakpoints := make(map[graph.ID]*treeset.Set)
	add := func(node graph.ID, fwdOffset, nodeLen int) {
		if fwdOffset <= 0 || fwdOffset >= nodeLen {
			return
		}
		set, ok := breakpoints[node]
		if !ok {
			set = treeset.NewWithIntComparator()
			breakpoints[node] = set
		}
		set.Add(fwdOffset)
	}
	for mi, m := range path.Mappings {
		n, err := g.GetNode(m.Position.Node)
		if err != nil {
			return nil, fmt.Errorf("find breakpoints: %w", err)
		}
		offset := m.Position.Offset
		for ei, e := range m.Edits {
			breakBefore := !e.IsMatch() || (ei == 0 && (mi > 0 || breakEnds))
			breakAfter := !e.IsMatch() ||
				(ei == len(m.Edits)-1 && (mi < len(path.Mappings)-1 || breakEnds))
			if breakBefore {
				add(n.ID, Position{Node: n.ID, Offset: offset, Reverse: m.Position.Reverse}.Forward(n.Len()), n.Len())
			}
			offset += e.FromLength
			if breakAfter {
				add(n.ID, Position{Node: n.ID, Offset: offset, Reverse: m.Position.Reverse}.Forward(n.Len()), n.Len())
			}
		}
	}
	return breakpoints, nil
}

// pieceRef locates one division piece: its id and the forward offset of its
// first base within the original node.
type pieceRef struct {
	id    graph.ID
	start int
	len   int
}

// Translator maps positions on pre-division nodes onto the pieces that
// replaced them. Nodes that were never divided translate to themselves.
type Translator struct {
	g      *graph.Graph
	pieces map[graph.ID]*treemap.Map
	length map[graph.ID]int
}

// EnsureBreakpoints divides every node listed in breakpoints at its recorded
// offsets and returns a Translator over the resulting pieces.
func EnsureBreakpoints(g *graph.Graph, breakpoints map[graph.ID]*treeset.Set) (*Translator, error) {
	tr := &Translator{
		g:      g,
		pieces: make(map[graph.ID]*treemap.Map),
		length: make(map[graph.ID]int),
	}
	for id, set := range breakpoints {
		n, err := g.GetNode(id)
		if err != nil {
			return nil, fmt.Errorf("ensure breakpoints: %w", err)
		}
		tr.length[id] = n.Len()
		offsets := make([]int, 0, set.Size())
		for _, v := range set.Values() {
			offsets = append(offsets, v.(int))
		}
		pieces, err := g.DivideNode(id, offsets)
		if err != nil {
			return nil, fmt.Errorf("ensure breakpoints: %w", err)
		}
		index := treemap.NewWithIntComparator()
		start := 0
		for _, p := range pieces {
			index.Put(start, pieceRef{id: p.ID, start: start, len: p.Len()})
			start += p.Len()
		}
		tr.pieces[id] = index
	}
	return tr, nil
}

// Piece returns the piece covering the forward offset of the given original
// node, as (piece id, piece start within the original, piece length).
func (tr *Translator) Piece(node graph.ID, fwdOffset int) (pieceRef, error) {
	index, divided := tr.pieces[node]
	if !divided {
		n, err := tr.g.GetNode(node)
		if err != nil {
			return pieceRef{}, fmt.Errorf("translate: %w", err)
		}
		return pieceRef{id: node, start: 0, len: n.Len()}, nil
	}
	_, v := index.Floor(fwdOffset)
	if v == nil {
		return pieceRef{}, fmt.Errorf("translate: node %d offset %d: %w", node, fwdOffset, graph.ErrNotFound)
	}
	return v.(pieceRef), nil
}

// NodeLength returns the original (pre-division) length of a node.
func (tr *Translator) NodeLength(node graph.ID) (int, error) {
	if l, ok := tr.length[node]; ok {
		return l, nil
	}
	n, err := tr.g.GetNode(node)
	if err != nil {
		return 0, err
	}
	return n.Len(), nil
}
