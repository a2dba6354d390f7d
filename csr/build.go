// SPDX-License-Identifier: MIT
// Package: balclust/csr
//
// build.go — constructors producing validated CSR graphs.
//
// Contract:
//   • FromEdges groups arcs by source with a stable counting sort: within a
//     row, arcs keep their input order. Symmetric mode appends the reverse arc
//     right after each forward arc is emitted into the reverse row.
//   • FromDense keeps every non-zero entry, columns ascending (the pattern of
//     a dense matrix converted to CSR).
//   • Path/Cycle/Grid emit neighbors in ascending id order per row.
//
// Determinism:
//   • Same input ⇒ identical Indptr/Indices/Weights.

package csr

import (
	"fmt"
	"math"
)

// File-local constants for method tagging and parameter minima.
const (
	methodFromEdges = "FromEdges"
	methodFromDense = "FromDense"
	methodPath      = "Path"
	methodCycle     = "Cycle"
	methodGrid      = "Grid"

	minPathNodes  = 2
	minCycleNodes = 3
	minGridDim    = 1
)

// Edge is one weighted arc From→To.
type Edge struct {
	From   int
	To     int
	Weight float64
}

// BuildOptions controls FromEdges.
type BuildOptions struct {
	// Symmetric mirrors every non-loop arc u→v with v→u of the same weight.
	Symmetric bool

	// DropSelfLoops discards arcs u→u.
	DropSelfLoops bool
}

// BuildOption configures FromEdges.
type BuildOption func(*BuildOptions)

// WithSymmetric mirrors every arc, turning an edge list into an undirected graph.
func WithSymmetric() BuildOption {
	return func(o *BuildOptions) { o.Symmetric = true }
}

// WithoutSelfLoops discards self loops (diagonal entries of a matrix).
func WithoutSelfLoops() BuildOption {
	return func(o *BuildOptions) { o.DropSelfLoops = true }
}

// FromEdges builds a Graph with n vertices from an arc list.
//
// Errors: ErrBadOrder, ErrIndexOutOfRange, ErrInvalidWeight, ErrNegativeWeight.
// Complexity: O(n + |edges|) time and space.
func FromEdges(n int, edges []Edge, opts ...BuildOption) (*Graph, error) {
	var cfg BuildOptions
	for _, opt := range opts {
		opt(&cfg)
	}

	// 1) Validate order and each edge before allocating the CSR arrays.
	if n < 0 {
		return nil, fmt.Errorf("%s: n=%d: %w", methodFromEdges, n, ErrBadOrder)
	}
	for idx, e := range edges {
		if e.From < 0 || e.From >= n || e.To < 0 || e.To >= n {
			return nil, fmt.Errorf("%s: edge #%d %d→%d (n=%d): %w",
				methodFromEdges, idx, e.From, e.To, n, ErrIndexOutOfRange)
		}
		if err := checkWeight(e.Weight); err != nil {
			return nil, fmt.Errorf("%s: edge #%d %d→%d: %w", methodFromEdges, idx, e.From, e.To, err)
		}
	}

	// 2) Count arcs per row.
	indptr := make([]int, n+1)
	for _, e := range edges {
		if e.From == e.To {
			if !cfg.DropSelfLoops {
				indptr[e.From+1]++
			}
			continue
		}
		indptr[e.From+1]++
		if cfg.Symmetric {
			indptr[e.To+1]++
		}
	}
	for i := 0; i < n; i++ {
		indptr[i+1] += indptr[i]
	}

	// 3) Scatter arcs into their rows, keeping input order within a row.
	nnz := indptr[n]
	indices := make([]int, nnz)
	weights := make([]float64, nnz)
	next := make([]int, n)
	copy(next, indptr[:n])
	put := func(u, v int, w float64) {
		indices[next[u]] = v
		weights[next[u]] = w
		next[u]++
	}
	for _, e := range edges {
		if e.From == e.To {
			if !cfg.DropSelfLoops {
				put(e.From, e.To, e.Weight)
			}
			continue
		}
		put(e.From, e.To, e.Weight)
		if cfg.Symmetric {
			put(e.To, e.From, e.Weight)
		}
	}

	return &Graph{n: n, indptr: indptr, indices: indices, weights: weights}, nil
}

// FromDense builds a Graph from a square matrix: every non-zero entry
// rows[i][j] becomes the arc i→j, columns ascending. Diagonal entries become
// self loops, which never shorten a path and are ignored by the clustering.
//
// Errors: ErrNotSquare, ErrInvalidWeight, ErrNegativeWeight.
func FromDense(rows [][]float64) (*Graph, error) {
	n := len(rows)
	indptr := make([]int, n+1)
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("%s: row %d has %d columns, want %d: %w",
				methodFromDense, i, len(row), n, ErrNotSquare)
		}
		for j, v := range row {
			if v == 0 {
				continue
			}
			if err := checkWeight(v); err != nil {
				return nil, fmt.Errorf("%s: entry (%d,%d): %w", methodFromDense, i, j, err)
			}
			indptr[i+1]++
		}
	}
	for i := 0; i < n; i++ {
		indptr[i+1] += indptr[i]
	}

	indices := make([]int, 0, indptr[n])
	weights := make([]float64, 0, indptr[n])
	for _, row := range rows {
		for j, v := range row {
			if v != 0 {
				indices = append(indices, j)
				weights = append(weights, v)
			}
		}
	}

	return &Graph{n: n, indptr: indptr, indices: indices, weights: weights}, nil
}

// Path builds the undirected path P_n: 0—1—…—(n-1), every edge weighted w.
// Errors: ErrTooFewVertices (n < 2), ErrInvalidWeight, ErrNegativeWeight.
func Path(n int, w float64) (*Graph, error) {
	if n < minPathNodes {
		return nil, fmt.Errorf("%s: n=%d < min=%d: %w", methodPath, n, minPathNodes, ErrTooFewVertices)
	}
	if err := checkWeight(w); err != nil {
		return nil, fmt.Errorf("%s: %w", methodPath, err)
	}

	edges := make([]Edge, 0, n-1)
	for i := 1; i < n; i++ {
		edges = append(edges, Edge{From: i - 1, To: i, Weight: w})
	}

	return sortedSymmetric(n, edges), nil
}

// Cycle builds the undirected cycle C_n with every edge weighted w.
// Errors: ErrTooFewVertices (n < 3), ErrInvalidWeight, ErrNegativeWeight.
func Cycle(n int, w float64) (*Graph, error) {
	if n < minCycleNodes {
		return nil, fmt.Errorf("%s: n=%d < min=%d: %w", methodCycle, n, minCycleNodes, ErrTooFewVertices)
	}
	if err := checkWeight(w); err != nil {
		return nil, fmt.Errorf("%s: %w", methodCycle, err)
	}

	edges := make([]Edge, 0, n)
	for i := 1; i < n; i++ {
		edges = append(edges, Edge{From: i - 1, To: i, Weight: w})
	}
	edges = append(edges, Edge{From: n - 1, To: 0, Weight: w})

	return sortedSymmetric(n, edges), nil
}

// Grid builds a rows×cols 4-neighborhood grid, vertex id r*cols+c
// (row-major), every edge weighted w. This is the graph of a 5-point
// finite-difference stencil, the usual coarsening test case.
// Errors: ErrTooFewVertices (rows or cols < 1), ErrInvalidWeight, ErrNegativeWeight.
func Grid(rows, cols int, w float64) (*Graph, error) {
	if rows < minGridDim || cols < minGridDim {
		return nil, fmt.Errorf("%s: rows=%d, cols=%d (each must be ≥ %d): %w",
			methodGrid, rows, cols, minGridDim, ErrTooFewVertices)
	}
	if err := checkWeight(w); err != nil {
		return nil, fmt.Errorf("%s: %w", methodGrid, err)
	}

	n := rows * cols
	edges := make([]Edge, 0, 2*n)
	var r, c, id int
	for r = 0; r < rows; r++ {
		for c = 0; c < cols; c++ {
			id = r*cols + c
			if c+1 < cols { // right neighbor
				edges = append(edges, Edge{From: id, To: id + 1, Weight: w})
			}
			if r+1 < rows { // bottom neighbor
				edges = append(edges, Edge{From: id, To: id + cols, Weight: w})
			}
		}
	}

	return sortedSymmetric(n, edges), nil
}

// sortedSymmetric mirrors edges and orders every row by ascending neighbor id.
// Inputs are already validated by the caller.
func sortedSymmetric(n int, edges []Edge) *Graph {
	// Bucket by target first, then stable-scatter by source: a two-pass
	// counting sort yields rows sorted by neighbor id.
	arcs := make([]Edge, 0, 2*len(edges))
	for _, e := range edges {
		arcs = append(arcs, e, Edge{From: e.To, To: e.From, Weight: e.Weight})
	}

	byTarget := make([]Edge, len(arcs))
	count := make([]int, n+1)
	for _, a := range arcs {
		count[a.To+1]++
	}
	for i := 0; i < n; i++ {
		count[i+1] += count[i]
	}
	for _, a := range arcs {
		byTarget[count[a.To]] = a
		count[a.To]++
	}

	g, _ := FromEdges(n, byTarget) // validated above; cannot fail

	return g
}

// checkWeight enforces the weight policy shared by every constructor.
func checkWeight(w float64) error {
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return fmt.Errorf("weight=%v: %w", w, ErrInvalidWeight)
	}
	if w < 0 {
		return fmt.Errorf("weight=%g: %w", w, ErrNegativeWeight)
	}

	return nil
}
