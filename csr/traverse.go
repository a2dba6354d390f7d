// SPDX-License-Identifier: MIT
// Package: balclust/csr
//
// traverse.go — unweighted traversal utilities over the CSR pattern.
//
//   • BreadthFirstSearch: multi-source hop levels along out-arcs.
//   • ConnectedComponents: weakly connected components (arc direction ignored).
//
// Both are used to diagnose disconnected inputs before clustering: a
// component that holds no center stays unassigned after relaxation.

package csr

import "fmt"

// Unreached marks a vertex not reached by BreadthFirstSearch.
const Unreached = -1

// BreadthFirstSearch returns, for every vertex, the number of hops from the
// nearest seed along out-arcs, or Unreached. Duplicate seeds are allowed.
//
// Errors: ErrIndexOutOfRange if a seed lies outside [0,n).
// Complexity: O(n + nnz) time, O(n) space.
func BreadthFirstSearch(g *Graph, seeds []int) ([]int, error) {
	level := make([]int, g.n)
	for i := range level {
		level[i] = Unreached
	}

	// 1) Enqueue seeds at level 0.
	queue := make([]int, 0, g.n)
	for _, s := range seeds {
		if s < 0 || s >= g.n {
			return nil, fmt.Errorf("BreadthFirstSearch: seed %d (n=%d): %w", s, g.n, ErrIndexOutOfRange)
		}
		if level[s] == Unreached {
			level[s] = 0
			queue = append(queue, s)
		}
	}

	// 2) Expand in FIFO order; the queue slice doubles as visit order.
	var u, k, v int
	for head := 0; head < len(queue); head++ {
		u = queue[head]
		for k = g.indptr[u]; k < g.indptr[u+1]; k++ {
			v = g.indices[k]
			if level[v] == Unreached {
				level[v] = level[u] + 1
				queue = append(queue, v)
			}
		}
	}

	return level, nil
}

// ConnectedComponents labels weakly connected components. Labels are dense,
// start at 0 and are assigned in order of each component's smallest vertex.
// Returns the label slice and the number of components.
// Complexity: O(n + nnz·α(n)) time, O(n) space.
func ConnectedComponents(g *Graph) ([]int, int) {
	uf := newUnionFind(g.n)
	var u, k int
	for u = 0; u < g.n; u++ {
		for k = g.indptr[u]; k < g.indptr[u+1]; k++ {
			uf.union(u, g.indices[k])
		}
	}

	// Relabel roots densely in ascending vertex order.
	label := make([]int, g.n)
	rootLabel := make([]int, g.n)
	for u = range rootLabel {
		rootLabel[u] = -1
	}
	count := 0
	var r int
	for u = 0; u < g.n; u++ {
		r = uf.find(u)
		if rootLabel[r] < 0 {
			rootLabel[r] = count
			count++
		}
		label[u] = rootLabel[r]
	}

	return label, count
}

// unionFind is a disjoint-set forest with path compression and union by size.
type unionFind struct {
	parent []int // -1 marks a root
	size   []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n), size: make([]int, n)}
	for i := 0; i < n; i++ {
		uf.parent[i] = -1
		uf.size[i] = 1
	}

	return uf
}

func (uf *unionFind) find(x int) int {
	root := x
	for uf.parent[root] != -1 {
		root = uf.parent[root]
	}
	// Compress the walked path onto the root.
	for uf.parent[x] != -1 {
		x, uf.parent[x] = uf.parent[x], root
	}

	return root
}

func (uf *unionFind) union(x, y int) {
	rx, ry := uf.find(x), uf.find(y)
	if rx == ry {
		return
	}
	if uf.size[rx] < uf.size[ry] {
		rx, ry = ry, rx
	}
	uf.parent[ry] = rx
	uf.size[rx] += uf.size[ry]
}
