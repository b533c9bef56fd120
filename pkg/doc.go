// Package pkg provides the core libraries for seqgraph.
//
// # Overview
//
// Seqgraph models genomes as bidirected sequence graphs: nodes carry DNA
// fragments, edges join node sides, and a node can be traversed on either
// strand. The pkg directory is organized by concern:
//
//  1. [graph] - The graph model and topology algorithms (cycles, bluntify,
//     unfold, context expansion, node division and merging)
//  2. [edit] - Path-driven editing (breakpoints, insertions, threading)
//  3. [snarl] - Nested sub-region views and haplotype lane state
//  4. [sequence] - DNA strand arithmetic
//  5. [io] - JSON import and export for graphs and paths
//  6. [render] - DOT/SVG/PDF/PNG diagrams
//  7. [cache] - Rendered-artifact caching
//  8. [buildinfo] - Build-time version information
//
// # Architecture
//
// The typical data flow:
//
//	JSON graph
//	     ↓
//	[io]  →  [graph] topology transforms  →  [edit] path threading
//	                                      ↘
//	                                        [render] diagrams
//
// The graph model underlies everything else; [snarl] consumes boundary
// pairs discovered by an external decomposition and threads haplotypes
// through the collapsed view.
//
// [graph]: github.com/tbruckner/seqgraph/pkg/graph
// [edit]: github.com/tbruckner/seqgraph/pkg/edit
// [snarl]: github.com/tbruckner/seqgraph/pkg/snarl
// [sequence]: github.com/tbruckner/seqgraph/pkg/sequence
// [io]: github.com/tbruckner/seqgraph/pkg/io
// [render]: github.com/tbruckner/seqgraph/pkg/render
// [cache]: github.com/tbruckner/seqgraph/pkg/cache
// [buildinfo]: github.com/tbruckner/seqgraph/pkg/buildinfo
package pkg
