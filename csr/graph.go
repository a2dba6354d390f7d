// SPDX-License-Identifier: MIT
// Package: balclust/csr
//
// graph.go — compressed sparse row (CSR) view of a weighted graph.
//
// Contract:
//   • Row i holds the arcs i→Indices[k] with weight Weights[k] for
//     k∈[Indptr[i], Indptr[i+1]).
//   • Offsets are non-decreasing, start at 0 and end at len(Indices).
//   • Every neighbor id lies in [0,n); every weight is finite and ≥ 0.
//   • Undirected graphs store both directions explicitly.
//
// Ownership:
//   • New does NOT copy its inputs. The caller keeps ownership and must not
//     mutate the slices while a Graph built on them is in use.
//   • All accessors return views into the same storage; treat them as read-only.

package csr

import (
	"fmt"
	"math"
)

// Graph is an immutable weighted adjacency structure in CSR layout.
type Graph struct {
	n       int       // number of vertices
	indptr  []int     // row offsets, len n+1
	indices []int     // neighbor ids, parallel to weights
	weights []float64 // non-negative arc weights
}

// New validates the CSR triplet and wraps it in a Graph.
//
// Errors (first failing check wins):
//   - ErrBadOrder        n < 0.
//   - ErrMalformed       len(indptr) != n+1, indptr[0] != 0, a decreasing offset,
//     or indptr[n] != len(indices) or len(indices) != len(weights).
//   - ErrIndexOutOfRange a neighbor id outside [0,n).
//   - ErrInvalidWeight   NaN or ±Inf weight.
//   - ErrNegativeWeight  weight < 0.
//
// Complexity: O(n + nnz) time, O(1) extra space.
func New(n int, indptr, indices []int, weights []float64) (*Graph, error) {
	if err := Validate(n, indptr, indices, weights); err != nil {
		return nil, err
	}

	return &Graph{n: n, indptr: indptr, indices: indices, weights: weights}, nil
}

// Validate runs the structural checks of New without building a Graph.
func Validate(n int, indptr, indices []int, weights []float64) error {
	// 1) Order and offset array shape.
	if n < 0 {
		return fmt.Errorf("New: n=%d: %w", n, ErrBadOrder)
	}
	if len(indptr) != n+1 {
		return fmt.Errorf("New: len(indptr)=%d, want %d: %w", len(indptr), n+1, ErrMalformed)
	}
	if indptr[0] != 0 {
		return fmt.Errorf("New: indptr[0]=%d, want 0: %w", indptr[0], ErrMalformed)
	}

	// 2) Monotone offsets.
	var i int
	for i = 0; i < n; i++ {
		if indptr[i+1] < indptr[i] {
			return fmt.Errorf("New: indptr[%d]=%d < indptr[%d]=%d: %w",
				i+1, indptr[i+1], i, indptr[i], ErrMalformed)
		}
	}

	// 3) Payload lengths agree with the last offset.
	if indptr[n] != len(indices) || len(indices) != len(weights) {
		return fmt.Errorf("New: indptr[n]=%d, len(indices)=%d, len(weights)=%d: %w",
			indptr[n], len(indices), len(weights), ErrMalformed)
	}

	// 4) Per-arc checks in storage order so the reported arc is deterministic.
	var (
		k int
		j int
		w float64
	)
	for i = 0; i < n; i++ {
		for k = indptr[i]; k < indptr[i+1]; k++ {
			j = indices[k]
			if j < 0 || j >= n {
				return fmt.Errorf("New: arc %d→%d: %w", i, j, ErrIndexOutOfRange)
			}
			w = weights[k]
			if math.IsNaN(w) || math.IsInf(w, 0) {
				return fmt.Errorf("New: arc %d→%d weight=%v: %w", i, j, w, ErrInvalidWeight)
			}
			if w < 0 {
				return fmt.Errorf("New: arc %d→%d weight=%g: %w", i, j, w, ErrNegativeWeight)
			}
		}
	}

	return nil
}

// Order returns the number of vertices.
func (g *Graph) Order() int { return g.n }

// Size returns the number of stored arcs (self loops and both directions of
// undirected edges included).
func (g *Graph) Size() int { return len(g.indices) }

// Row returns the neighbor ids and weights of vertex i. The slices alias
// internal storage. Row panics if i is out of range, like a slice index.
func (g *Graph) Row(i int) ([]int, []float64) {
	lo, hi := g.indptr[i], g.indptr[i+1]

	return g.indices[lo:hi], g.weights[lo:hi]
}

// Degree returns the number of stored arcs leaving i.
func (g *Graph) Degree(i int) int { return g.indptr[i+1] - g.indptr[i] }

// Indptr returns the row offset array (read-only view).
func (g *Graph) Indptr() []int { return g.indptr }

// Indices returns the neighbor id array (read-only view).
func (g *Graph) Indices() []int { return g.indices }

// Weights returns the weight array (read-only view).
func (g *Graph) Weights() []float64 { return g.weights }

// Weight returns the smallest weight among arcs u→v and whether any exists.
func (g *Graph) Weight(u, v int) (float64, bool) {
	if u < 0 || u >= g.n {
		return 0, false
	}
	best, found := math.Inf(1), false
	cols, ws := g.Row(u)
	for k, j := range cols {
		if j == v && ws[k] < best {
			best, found = ws[k], true
		}
	}

	return best, found
}

// IsSymmetric reports whether every arc u→v with u≠v has a reverse arc v→u
// of the same weight. Self loops are ignored.
// Complexity: O(nnz · maxDegree).
func (g *Graph) IsSymmetric() bool {
	var (
		u, k int
		w, r float64
		ok   bool
	)
	for u = 0; u < g.n; u++ {
		for k = g.indptr[u]; k < g.indptr[u+1]; k++ {
			v := g.indices[k]
			if v == u {
				continue
			}
			w = g.weights[k]
			r, ok = g.Weight(v, u)
			if !ok || r != w {
				return false
			}
		}
	}

	return true
}
