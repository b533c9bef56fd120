package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/tbruckner/seqgraph/pkg/edit"
	"github.com/tbruckner/seqgraph/pkg/graph"
)

type jsonGraph struct {
	Nodes []jsonNode `json:"node"`
	Edges []jsonEdge `json:"edge"`
}

type jsonNode struct {
	ID       graph.ID `json:"id"`
	Sequence string   `json:"sequence"`
}

type jsonEdge struct {
	From      graph.ID `json:"from"`
	To        graph.ID `json:"to"`
	FromStart bool     `json:"from_start,omitempty"`
	ToEnd     bool     `json:"to_end,omitempty"`
	Overlap   int      `json:"overlap,omitempty"`
}

type jsonPath struct {
	Name     string        `json:"name,omitempty"`
	Mappings []jsonMapping `json:"mapping"`
}

type jsonMapping struct {
	Position jsonPosition `json:"position"`
	Edits    []jsonEdit   `json:"edit"`
}

type jsonPosition struct {
	Node    graph.ID `json:"node_id"`
	Offset  int      `json:"offset,omitempty"`
	Reverse bool     `json:"is_reverse,omitempty"`
}

type jsonEdit struct {
	FromLength int    `json:"from_length,omitempty"`
	ToLength   int    `json:"to_length,omitempty"`
	Sequence   string `json:"sequence,omitempty"`
}

// ReadJSON decodes a JSON graph from r.
//
// ReadJSON returns an error if the JSON is malformed, a node id repeats, an
// edge references an unknown node, an edge pair repeats, or an edge claims
// an overlap longer than an attached sequence. Errors are wrapped with the
// offending node or edge; use errors.Is to check for the graph package's
// sentinel errors.
//
// The returned graph is independent of r. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*graph.Graph, error) {
	var data jsonGraph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	g := graph.New()
	for _, n := range data.Nodes {
		if err := g.AddNode(graph.Node{ID: n.ID, Sequence: n.Sequence}); err != nil {
			return nil, fmt.Errorf("node %d: %w", n.ID, err)
		}
	}
	for _, e := range data.Edges {
		s1 := graph.Side(e.From, !e.FromStart)
		s2 := graph.Side(e.To, e.ToEnd)
		if _, err := g.CreateEdge(s1, s2, e.Overlap); err != nil {
			return nil, fmt.Errorf("edge %v-%v: %w", s1, s2, err)
		}
	}
	return g, nil
}

// ImportJSON reads the JSON file at path and returns the decoded graph.
// It returns the same validation errors as [ReadJSON], wrapped with the
// file path.
func ImportJSON(path string) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	g, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", path, err)
	}
	return g, nil
}

// ReadPathsJSON decodes paths from r: either a single path object or an
// array of them.
func ReadPathsJSON(r io.Reader) ([]edit.Path, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read paths: %w", err)
	}
	var many []jsonPath
	if err := json.Unmarshal(raw, &many); err != nil {
		var one jsonPath
		if err := json.Unmarshal(raw, &one); err != nil {
			return nil, fmt.Errorf("decode paths: %w", err)
		}
		many = []jsonPath{one}
	}

	paths := make([]edit.Path, len(many))
	for i, jp := range many {
		p := edit.Path{Name: jp.Name, Mappings: make([]edit.Mapping, len(jp.Mappings))}
		for j, jm := range jp.Mappings {
			m := edit.Mapping{
				Position: edit.Position{
					Node:    jm.Position.Node,
					Offset:  jm.Position.Offset,
					Reverse: jm.Position.Reverse,
				},
				Edits: make([]edit.Edit, len(jm.Edits)),
			}
			for k, je := range jm.Edits {
				m.Edits[k] = edit.Edit{
					FromLength: je.FromLength,
					ToLength:   je.ToLength,
					Sequence:   je.Sequence,
				}
			}
			p.Mappings[j] = m
		}
		paths[i] = p
	}
	return paths, nil
}

// ImportPathsJSON reads the JSON file at path and returns the decoded paths.
func ImportPathsJSON(path string) ([]edit.Path, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	paths, err := ReadPathsJSON(f)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", path, err)
	}
	return paths, nil
}
