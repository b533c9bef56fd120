// Package edit threads externally described paths through a sequence graph.
// A path visits oriented node positions and applies edits against them;
// editing splits nodes at the implied breakpoints, materializes novel
// insertions as new nodes, and wires exactly the edges the path needs.
package edit

import (
	"fmt"

	"github.com/tbruckner/seqgraph/pkg/graph"
)

// Position addresses a base in the graph: an offset into a node read on the
// given strand. Offset counts from the start of the chosen strand, so a
// reverse position's offset runs from the node's end.
type Position struct {
	Node    graph.ID
	Offset  int
	Reverse bool
}

// Forward converts the position to forward-strand coordinates given the
// node's length.
func (p Position) Forward(nodeLen int) int {
	if p.Reverse {
		return nodeLen - p.Offset
	}
	return p.Offset
}

// Edit is one aligned operation: FromLength bases consumed on the graph,
// ToLength bases contributed by the path. A match has equal lengths and no
// sequence; an insertion has FromLength 0 and carries its sequence; a
// deletion has ToLength 0.
type Edit struct {
	FromLength int
	ToLength   int
	Sequence   string
}

// IsMatch reports whether the edit copies graph bases unchanged.
func (e Edit) IsMatch() bool {
	return e.FromLength == e.ToLength && e.Sequence == ""
}

// Mapping applies a run of edits starting at a position.
type Mapping struct {
	Position Position
	Edits    []Edit
}

// FromLength returns the number of graph bases the mapping consumes.
func (m Mapping) FromLength() int {
	total := 0
	for _, e := range m.Edits {
		total += e.FromLength
	}
	return total
}

// IsPerfectMatch reports whether every edit in the mapping is a match.
func (m Mapping) IsPerfectMatch() bool {
	for _, e := range m.Edits {
		if !e.IsMatch() {
			return false
		}
	}
	return true
}

// Path is an ordered walk of mappings, optionally named.
type Path struct {
	Name     string
	Mappings []Mapping
}

func (p Position) String() string {
	strand := "+"
	if p.Reverse {
		strand = "-"
	}
	return fmt.Sprintf("%d%s:%d", p.Node, strand, p.Offset)
}
