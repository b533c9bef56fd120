package edit

import (
	"fmt"

	"github.com/emirpasic/gods/sets/treeset"

	"github.com/tbruckner/seqgraph/pkg/graph"
)

// Options control how paths are applied to the graph.
type Options struct {
	// DryRun threads the paths through a throwaway copy, leaving the
	// input graph untouched.
	DryRun bool
	// PreserveEdits returns the caller's paths verbatim instead of
	// rewriting them as perfect matches over the edited graph.
	PreserveEdits bool
	// BreakAtEnds additionally cuts nodes at every mapping boundary, so
	// the threaded path starts and ends exactly on node boundaries.
	BreakAtEnds bool
	// MaxNodeSize caps the length of nodes created for novel insertions;
	// longer insertions are chunked. Zero means unlimited.
	MaxNodeSize int
}

// element is one oriented stop on the threaded walk: a (possibly partial)
// visit of an existing piece, or a novel insertion node.
type element struct {
	id      graph.ID
	reverse bool
	offset  int
	length  int
}

func (el element) entry() graph.NodeSide { return graph.Side(el.id, el.reverse) }
func (el element) exit() graph.NodeSide  { return graph.Side(el.id, !el.reverse) }

type insertKey struct {
	at  Position
	seq string
}

// Apply threads each path through the graph: nodes are divided at the
// breakpoints the paths imply, novel sequence becomes new nodes, and the
// edges joining consecutive visits are created where missing. Identical
// insertions at the same position are materialized once and shared.
//
// The returned paths describe the same walks over the edited graph; unless
// opts.PreserveEdits is set they are rewritten as perfect matches. The only
// failure is a path referencing an unknown node.
func Apply(g *graph.Graph, paths []Path, opts Options) ([]Path, error) {
	target := g
	if opts.DryRun {
		target = g.Clone()
	}

	merged := make(map[graph.ID]*treeset.Set)
	for _, p := range paths {
		bps, err := FindBreakpoints(target, p, opts.BreakAtEnds)
		if err != nil {
			return nil, err
		}
		for id, set := range bps {
			if merged[id] == nil {
				merged[id] = treeset.NewWithIntComparator()
			}
			merged[id].Add(set.Values()...)
		}
	}
	tr, err := EnsureBreakpoints(target, merged)
	if err != nil {
		return nil, err
	}

	inserted := make(map[insertKey][]graph.ID)
	result := make([]Path, 0, len(paths))
	for _, p := range paths {
		elements, err := thread(target, p, tr, inserted, opts.MaxNodeSize)
		if err != nil {
			return nil, err
		}
		if opts.PreserveEdits {
			result = append(result, p)
			continue
		}
		rewritten := Path{Name: p.Name, Mappings: make([]Mapping, 0, len(elements))}
		for _, el := range elements {
			rewritten.Mappings = append(rewritten.Mappings, Mapping{
				Position: Position{Node: el.id, Offset: el.offset, Reverse: el.reverse},
				Edits:    []Edit{{FromLength: el.length, ToLength: el.length}},
			})
		}
		result = append(result, rewritten)
	}
	return result, nil
}

// thread walks one path, appending elements in visit order and wiring an
// edge from each element's exit to the next one's entry where the graph
// lacks it. Deletions advance the position without emitting an element, so
// the neighbors around a deletion get joined directly. A walk that doubles
// back through the same side produces a reversing self edge.
func thread(g *graph.Graph, p Path, tr *Translator, inserted map[insertKey][]graph.ID, maxNodeSize int) ([]element, error) {
	var elements []element
	var dangling []graph.NodeSide
	emit := func(el element) {
		for _, s := range dangling {
			if !g.HasEdge(s, el.entry()) {
				g.CreateEdge(s, el.entry(), 0)
			}
		}
		dangling = dangling[:0]
		dangling = append(dangling, el.exit())
		elements = append(elements, el)
	}

	for _, m := range p.Mappings {
		nodeLen, err := tr.NodeLength(m.Position.Node)
		if err != nil {
			return nil, fmt.Errorf("thread path %q: %w", p.Name, err)
		}
		offset := m.Position.Offset
		for _, e := range m.Edits {
			switch {
			case e.IsMatch() && e.FromLength > 0:
				els, err := matchElements(tr, m.Position.Node, m.Position.Reverse, nodeLen, offset, e.FromLength)
				if err != nil {
					return nil, fmt.Errorf("thread path %q: %w", p.Name, err)
				}
				for _, el := range els {
					emit(el)
				}
				offset += e.FromLength
			case e.ToLength > 0:
				// Novel sequence, possibly replacing consumed bases.
				key := insertKey{at: Position{Node: m.Position.Node, Offset: offset, Reverse: m.Position.Reverse}, seq: e.Sequence}
				ids, ok := inserted[key]
				if !ok {
					ids = materialize(g, e.Sequence, maxNodeSize)
					inserted[key] = ids
				}
				for _, id := range ids {
					n, _ := g.GetNode(id)
					emit(element{id: id, length: n.Len()})
				}
				offset += e.FromLength
			default:
				// Deletion: skip the consumed bases, keep the dangling
				// side so the next visit bridges the gap.
				offset += e.FromLength
			}
		}
	}
	return elements, nil
}

// matchElements resolves a match of fromLen bases starting at the given
// path-strand offset into the pieces it visits, in traversal order.
func matchElements(tr *Translator, node graph.ID, reverse bool, nodeLen, offset, fromLen int) ([]element, error) {
	lo := Position{Node: node, Offset: offset + fromLen, Reverse: reverse}.Forward(nodeLen)
	hi := Position{Node: node, Offset: offset, Reverse: reverse}.Forward(nodeLen)
	if !reverse {
		lo, hi = hi, lo
	}

	var fwdOrder []element
	at := lo
	for at < hi {
		p, err := tr.Piece(node, at)
		if err != nil {
			return nil, err
		}
		covStart := max(lo, p.start)
		covEnd := min(hi, p.start+p.len)
		el := element{id: p.id, reverse: reverse, length: covEnd - covStart}
		if reverse {
			el.offset = p.start + p.len - covEnd
		} else {
			el.offset = covStart - p.start
		}
		fwdOrder = append(fwdOrder, el)
		at = p.start + p.len
	}
	if reverse {
		for i, j := 0, len(fwdOrder)-1; i < j; i, j = i+1, j-1 {
			fwdOrder[i], fwdOrder[j] = fwdOrder[j], fwdOrder[i]
		}
	}
	return fwdOrder, nil
}

// materialize creates the node chain holding an inserted sequence, chunked
// to maxNodeSize, and links the chunks end to start.
func materialize(g *graph.Graph, seq string, maxNodeSize int) []graph.ID {
	if maxNodeSize <= 0 {
		maxNodeSize = len(seq)
	}
	var ids []graph.ID
	for start := 0; start < len(seq); start += maxNodeSize {
		end := min(start+maxNodeSize, len(seq))
		n := g.CreateNode(seq[start:end])
		if len(ids) > 0 {
			g.CreateEdge(graph.Side(ids[len(ids)-1], true), graph.Side(n.ID, false), 0)
		}
		ids = append(ids, n.ID)
	}
	return ids
}
