// Package render draws sequence graphs as node-link diagrams.
//
// # Overview
//
// This package converts a bidirected sequence graph to Graphviz DOT and
// renders it to SVG, PDF, or PNG. Nodes appear as boxes labeled with their
// id and sequence; edges carry annotations for the sides they attach to, so
// reversing edges are distinguishable from plain end-to-start links.
//
// # Usage
//
// Convert a graph to DOT, then render:
//
//	dot := render.ToDOT(g, render.Options{})
//	svg, err := render.SVG(dot)
//
// For PDF or PNG output:
//
//	pdf, err := render.PDF(dot)
//	png, err := render.PNG(dot, 2.0)  // 2x scale
//
// # Edge Annotations
//
// An edge normally leaves its from-node's end and enters its to-node's
// start; those attachments are drawn bare. An attachment on the opposite
// side gets a tail or head label naming the side, and overlapped edges are
// dashed with the overlap length as the edge label.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package render
