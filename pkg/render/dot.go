package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/tbruckner/seqgraph/pkg/graph"
)

// Options configures diagram generation.
type Options struct {
	// Detailed includes full sequences and lengths in node labels.
	// When false, long sequences are truncated.
	Detailed bool
}

// ToDOT converts a sequence graph to Graphviz DOT. The resulting string can
// be rendered with [SVG], [PDF], or [PNG], or fed to external Graphviz
// tools.
//
// Edges are emitted left to right, start node to end node; attachments on
// the unusual side (leaving a start, entering an end) are annotated so the
// bidirected topology survives the directed drawing.
func ToDOT(g *graph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.15,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		fmt.Fprintf(&buf, "  %d [label=%q];\n", n.ID, nodeLabel(n, opts.Detailed))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		attrs := edgeAttrs(e)
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %d -> %d;\n", e.From, e.To)
			continue
		}
		fmt.Fprintf(&buf, "  %d -> %d [%s];\n", e.From, e.To, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeLabel(n *graph.Node, detailed bool) string {
	seq := n.Sequence
	if !detailed && len(seq) > 12 {
		seq = seq[:10] + ".."
	}
	label := fmt.Sprintf("%d:%s", n.ID, seq)
	if detailed {
		label += fmt.Sprintf("\n(%dbp)", n.Len())
	}
	return label
}

func edgeAttrs(e *graph.Edge) []string {
	var attrs []string
	if e.FromStart {
		attrs = append(attrs, `taillabel="start"`)
	}
	if e.ToEnd {
		attrs = append(attrs, `headlabel="end"`)
	}
	if e.Overlap > 0 {
		attrs = append(attrs, fmt.Sprintf("label=\"overlap %d\"", e.Overlap), "style=dashed")
	}
	return attrs
}
