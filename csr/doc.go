// SPDX-License-Identifier: MIT

// Package csr provides a compact, immutable weighted graph in compressed
// sparse row layout, the form in which sparse-matrix code hands adjacency
// (strength-of-connection) graphs to coarsening algorithms.
//
// What it offers:
//
//   - Graph: validated (Indptr, Indices, Weights) triplet with O(1) row access.
//   - Constructors: New (zero-copy), FromEdges, FromDense, Path, Cycle, Grid.
//   - Traversals: BreadthFirstSearch (multi-source hop levels) and
//     ConnectedComponents (weak components via union-find).
//
// Numeric policy:
//
//   - Weights are finite and non-negative; NaN/±Inf → ErrInvalidWeight,
//     negative → ErrNegativeWeight.
//   - Self loops are stored as given; shortest-path code ignores them.
//
// Example:
//
//	g, err := csr.Grid(16, 16, 1.0) // 5-point stencil pattern
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cols, ws := g.Row(17)
//
// Thread safety: a Graph is read-only after construction and may be shared
// freely between goroutines.
package csr
