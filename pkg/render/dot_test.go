package render

import (
	"strings"
	"testing"

	"github.com/tbruckner/seqgraph/pkg/graph"
)

func TestToDOTAnnotatesReversingAndOverlapEdges(t *testing.T) {
	g := graph.New()
	g.CreateNode("GATT")
	g.CreateNode("ACAGATTACAGATT")
	g.CreateNode("T")
	if _, err := g.CreateEdge(graph.Side(1, true), graph.Side(2, false), 0); err != nil {
		t.Fatalf("CreateEdge: %v", err)
	}
	if _, err := g.CreateEdge(graph.Side(1, false), graph.Side(3, true), 0); err != nil {
		t.Fatalf("CreateEdge: %v", err)
	}
	if _, err := g.CreateEdge(graph.Side(2, true), graph.Side(3, false), 1); err != nil {
		t.Fatalf("CreateEdge: %v", err)
	}

	dot := ToDOT(g, Options{})

	for _, want := range []string{
		"digraph G {",
		`1 [label="1:GATT"]`,
		`2 [label="2:ACAGATTACA.."]`,
		"1 -> 2;",
		`taillabel="start"`,
		`headlabel="end"`,
		`label="overlap 1", style=dashed`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q in:\n%s", want, dot)
		}
	}
}

func TestToDOTDetailedLabels(t *testing.T) {
	g := graph.New()
	g.CreateNode("ACAGATTACAGATT")

	dot := ToDOT(g, Options{Detailed: true})
	if !strings.Contains(dot, "1:ACAGATTACAGATT\\n(14bp)") {
		t.Errorf("ToDOT(Detailed) missing full label in:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="3.50 7.00 100.00 200.00">`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 200.00" width="100" height="200">`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}
}
