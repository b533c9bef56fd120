package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/tbruckner/seqgraph/pkg/edit"
	"github.com/tbruckner/seqgraph/pkg/graph"
)

// WriteJSON encodes a graph as JSON and writes it to w. Nodes and edges come
// out in creation order, so the output is stable across runs and can be
// re-imported with [ReadJSON].
func WriteJSON(g *graph.Graph, w io.Writer) error {
	out := jsonGraph{
		Nodes: make([]jsonNode, 0, g.NodeCount()),
		Edges: make([]jsonEdge, 0, g.EdgeCount()),
	}
	for _, n := range g.Nodes() {
		out.Nodes = append(out.Nodes, jsonNode{ID: n.ID, Sequence: n.Sequence})
	}
	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, jsonEdge{
			From:      e.From,
			To:        e.To,
			FromStart: e.FromStart,
			ToEnd:     e.ToEnd,
			Overlap:   e.Overlap,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a graph to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(g *graph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, f)
}

// WritePathsJSON encodes paths as a JSON array and writes it to w.
func WritePathsJSON(paths []edit.Path, w io.Writer) error {
	out := make([]jsonPath, len(paths))
	for i, p := range paths {
		jp := jsonPath{Name: p.Name, Mappings: make([]jsonMapping, len(p.Mappings))}
		for j, m := range p.Mappings {
			jm := jsonMapping{
				Position: jsonPosition{
					Node:    m.Position.Node,
					Offset:  m.Position.Offset,
					Reverse: m.Position.Reverse,
				},
				Edits: make([]jsonEdit, len(m.Edits)),
			}
			for k, e := range m.Edits {
				jm.Edits[k] = jsonEdit{
					FromLength: e.FromLength,
					ToLength:   e.ToLength,
					Sequence:   e.Sequence,
				}
			}
			jp.Mappings[j] = jm
		}
		out[i] = jp
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode paths: %w", err)
	}
	return nil
}
