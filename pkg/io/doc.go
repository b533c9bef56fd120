// Package io provides JSON import and export for sequence graphs and paths.
//
// # Overview
//
// This package serializes bidirected sequence graphs to and from a simple
// JSON format. The format is designed for:
//
//   - Building graphs from hand-written fixtures and external tools
//   - Exchanging graphs with other sequence-graph toolkits
//   - Round-trip preservation: import, transform, export, and re-import
//
// # JSON Format
//
// The format has two top-level arrays:
//
//	{
//	  "node": [
//	    {"id": 1, "sequence": "GATT"},
//	    {"id": 2, "sequence": "ACA"}
//	  ],
//	  "edge": [
//	    {"from": 1, "to": 2},
//	    {"from": 1, "to": 2, "from_start": true, "to_end": true, "overlap": 2}
//	  ]
//	}
//
// An edge attaches to the "from" node's end (or its start when "from_start"
// is set) and to the "to" node's start (or its end when "to_end" is set).
// "overlap" marks how many bases the two attached sequence ends share; blunt
// edges omit it.
//
// Paths use the same conventions: a path is a list of mappings, each with an
// oriented node position and a run of edits (from_length, to_length, and a
// sequence for novel bases).
package io
