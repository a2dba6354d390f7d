// SPDX-License-Identifier: MIT
// Package: balclust/apsp
//
// floydwarshall.go — dense all-pairs shortest paths with a predecessor matrix,
// in caller-owned, reusable buffers.
//
// Contract:
//   • A Matrix owns one capacity×capacity distance buffer and one predecessor
//     buffer. Reset(n) reuses their first n·n cells with stride n; n above the
//     capacity fails with ErrCapacity (never truncates).
//   • +Inf means "no path"; the diagonal is 0; Pred(i,j) is the vertex before j
//     on a shortest i→j path, or NoPred for i==j and unreachable pairs.
//
// Determinism:
//   • Loop order is fixed (k → i → j) and only strict improvements are taken,
//     so the first-found shortest path wins every tie.

package apsp

import (
	"fmt"
	"math"

	"github.com/katalvlaran/balclust/csr"
)

// NoPred marks the absence of a predecessor.
const NoPred = -1

// Matrix is a reusable dense APSP workspace.
type Matrix struct {
	n        int       // active order
	capacity int       // maximum order without reallocation
	dist     []float64 // row-major n×n over a capacity² buffer
	pred     []int     // row-major n×n over a capacity² buffer
}

// NewMatrix allocates a workspace able to hold up to capacity vertices.
// Errors: ErrBadCapacity if capacity < 0.
// Complexity: O(capacity²) space, allocated once.
func NewMatrix(capacity int) (*Matrix, error) {
	if capacity < 0 {
		return nil, fmt.Errorf("NewMatrix: capacity=%d: %w", capacity, ErrBadCapacity)
	}

	return &Matrix{
		capacity: capacity,
		dist:     make([]float64, capacity*capacity),
		pred:     make([]int, capacity*capacity),
	}, nil
}

// Order returns the active order set by the last Reset.
func (m *Matrix) Order() int { return m.n }

// Capacity returns the maximum order supported without reallocation.
func (m *Matrix) Capacity() int { return m.capacity }

// Reset activates an n×n problem: diagonal 0, every other distance +Inf,
// every predecessor NoPred.
// Errors: ErrCapacity if n > Capacity() or n < 0.
func (m *Matrix) Reset(n int) error {
	if n < 0 || n > m.capacity {
		return fmt.Errorf("Reset: order %d, capacity %d: %w", n, m.capacity, ErrCapacity)
	}
	m.n = n

	inf := math.Inf(1)
	var i, j, base int
	for i = 0; i < n; i++ {
		base = i * n
		for j = 0; j < n; j++ {
			m.dist[base+j] = inf
			m.pred[base+j] = NoPred
		}
		m.dist[base+i] = 0
	}

	return nil
}

// SetArc records the arc i→j with weight w, keeping the lighter of parallel
// arcs. Self loops are ignored. Indices must lie in [0, Order()).
func (m *Matrix) SetArc(i, j int, w float64) {
	if i == j {
		return
	}
	idx := i*m.n + j
	if w < m.dist[idx] {
		m.dist[idx] = w
		m.pred[idx] = i
	}
}

// Dist returns the current distance i→j.
func (m *Matrix) Dist(i, j int) float64 { return m.dist[i*m.n+j] }

// Pred returns the predecessor of j on the current shortest i→j path.
func (m *Matrix) Pred(i, j int) int { return m.pred[i*m.n+j] }

// Row returns the distance row of i (read-only view, length Order()).
func (m *Matrix) Row(i int) []float64 { return m.dist[i*m.n : (i+1)*m.n] }

// PredRow returns the predecessor row of i (read-only view, length Order()).
func (m *Matrix) PredRow(i int) []int { return m.pred[i*m.n : (i+1)*m.n] }

// Close runs the Floyd–Warshall closure in place.
// Time O(n³); no allocations.
func (m *Matrix) Close() {
	n := m.n
	var (
		k, i, j      int
		baseK, baseI int
		ik, kj, cand float64
	)
	dist, pred := m.dist, m.pred

	for k = 0; k < n; k++ { // intermediate vertex
		baseK = k * n
		for i = 0; i < n; i++ { // source
			ik = dist[i*n+k]
			if math.IsInf(ik, 1) || i == k {
				continue
			}
			baseI = i * n
			for j = 0; j < n; j++ { // destination
				kj = dist[baseK+j]
				if math.IsInf(kj, 1) {
					continue
				}
				cand = ik + kj
				if cand < dist[baseI+j] { // strict: first shortest path wins
					dist[baseI+j] = cand
					pred[baseI+j] = pred[baseK+j]
				}
			}
		}
	}
}

// Eccentricity returns max_j Dist(i,j), +Inf if some vertex is unreachable
// from i. An empty or single-vertex problem has eccentricity 0.
func (m *Matrix) Eccentricity(i int) float64 {
	ecc := 0.0
	for _, d := range m.Row(i) {
		if d > ecc {
			ecc = d
		}
	}

	return ecc
}

// Path returns the vertex sequence of a shortest i→j path, or nil when j is
// unreachable from i.
func (m *Matrix) Path(i, j int) []int {
	if i == j {
		return []int{i}
	}
	if math.IsInf(m.Dist(i, j), 1) {
		return nil
	}

	// Walk predecessors back from j; at most n steps on a simple path.
	rev := []int{j}
	for v := j; v != i; {
		v = m.Pred(i, v)
		if v == NoPred || len(rev) > m.n {
			return nil
		}
		rev = append(rev, v)
	}
	for a, b := 0, len(rev)-1; a < b; a, b = a+1, b-1 {
		rev[a], rev[b] = rev[b], rev[a]
	}

	return rev
}

// LoadInduced resets the matrix to the subgraph of g induced by verts and
// loads its arcs. local maps every global vertex id to its position in verts,
// or to a negative value when it is not part of the subgraph; it must have
// length g.Order(). Local index a corresponds to verts[a].
//
// Errors: ErrNilGraph, ErrBadIndexMap, ErrCapacity (len(verts) > Capacity()).
// Complexity: O(len(verts)² + Σ deg(verts)).
func (m *Matrix) LoadInduced(g *csr.Graph, verts []int, local []int) error {
	if g == nil {
		return ErrNilGraph
	}
	if len(local) != g.Order() {
		return fmt.Errorf("LoadInduced: len(local)=%d, n=%d: %w", len(local), g.Order(), ErrBadIndexMap)
	}
	if err := m.Reset(len(verts)); err != nil {
		return fmt.Errorf("LoadInduced: %w", err)
	}

	var a, b int
	for a = range verts {
		cols, ws := g.Row(verts[a])
		for k, v := range cols {
			b = local[v]
			if b < 0 {
				continue // arc leaves the induced subgraph
			}
			m.SetArc(a, b, ws[k])
		}
	}

	return nil
}

// FloydWarshall computes all-pairs shortest paths of the whole graph.
// Errors: ErrNilGraph.
// Complexity: O(n³) time, O(n²) space.
func FloydWarshall(g *csr.Graph) (*Matrix, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	n := g.Order()
	m, err := NewMatrix(n)
	if err != nil {
		return nil, err
	}

	verts := make([]int, n)
	for i := range verts {
		verts[i] = i
	}
	if err = m.LoadInduced(g, verts, verts); err != nil {
		return nil, err
	}
	m.Close()

	return m, nil
}
