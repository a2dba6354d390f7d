// SPDX-License-Identifier: MIT
// Package: balclust/lloyd
//
// recenter.go — move every center to its cluster's graph center.
//
// Per cluster c:
//  1. Gather the members (ascending id) with a counting sort by cluster.
//  2. Floyd–Warshall on the induced subgraph, in the scratch matrices.
//  3. New center = member of minimum eccentricity. Ties keep the previous
//     center when it is a minimizer, else the lowest vertex id wins.
//  4. Rewrite Distance/Predecessor of all members from the center's row and
//     recount PredecessorCount, giving an exact shortest-path tree inside c.
//
// Shortest paths between members may leave the relaxation tree, which is why
// the tree alone cannot answer "which member is most central".

package lloyd

import (
	"fmt"
	"math"

	"github.com/katalvlaran/balclust/apsp"
	"github.com/katalvlaran/balclust/csr"
)

// Scratch holds the reusable buffers of Recenter, sized once per run.
type Scratch struct {
	n, k    int
	maxSize int
	mat     *apsp.Matrix // maxSize² distance + predecessor matrices
	offsets []int        // k+1 cluster offsets into order
	next    []int        // k write cursors for the counting sort
	order   []int        // n assigned vertices grouped by cluster
	local   []int        // n global→local map, -1 outside the current cluster
}

// DefaultScratchSize returns the conservative maximum cluster size
// min(n, 4·⌈n/k⌉). Returns 0 when n or k is not positive.
func DefaultScratchSize(n, k int) int {
	if n <= 0 || k <= 0 {
		return 0
	}
	size := 4 * ((n + k - 1) / k)
	if size > n {
		size = n
	}

	return size
}

// NewScratch allocates Recenter buffers for a graph of order n split into k
// clusters of at most maxSize vertices.
// Errors: ErrBadScratchSize (maxSize < 1, n < 1 or k < 1).
// Complexity: O(maxSize² + n + k) space.
func NewScratch(n, k, maxSize int) (*Scratch, error) {
	if maxSize < 1 || n < 1 || k < 1 {
		return nil, fmt.Errorf("NewScratch: n=%d, k=%d, maxSize=%d: %w", n, k, maxSize, ErrBadScratchSize)
	}
	mat, err := apsp.NewMatrix(maxSize)
	if err != nil {
		return nil, fmt.Errorf("NewScratch: %w", err)
	}

	sc := &Scratch{
		n:       n,
		k:       k,
		maxSize: maxSize,
		mat:     mat,
		offsets: make([]int, k+1),
		next:    make([]int, k),
		order:   make([]int, n),
		local:   make([]int, n),
	}
	for i := range sc.local {
		sc.local[i] = -1
	}

	return sc, nil
}

// MaxClusterSize returns the largest cluster the scratch can process.
func (sc *Scratch) MaxClusterSize() int { return sc.maxSize }

// group fills offsets/order with the assigned vertices grouped by cluster,
// ascending id inside each group.
func (sc *Scratch) group(st *State) {
	for c := range sc.offsets {
		sc.offsets[c] = 0
	}
	for _, c := range st.Membership {
		if c != Unassigned {
			sc.offsets[c+1]++
		}
	}
	for c := 0; c < sc.k; c++ {
		sc.offsets[c+1] += sc.offsets[c]
	}
	copy(sc.next, sc.offsets[:sc.k])
	for i, c := range st.Membership {
		if c != Unassigned {
			sc.order[sc.next[c]] = i
			sc.next[c]++
		}
	}
}

// members returns the vertices of cluster c (valid after group).
func (sc *Scratch) members(c int) []int { return sc.order[sc.offsets[c]:sc.offsets[c+1]] }

// Recenter moves every center of st to the minimum-eccentricity vertex of
// its cluster's induced subgraph and rebuilds each cluster's tree from the
// resulting all-pairs shortest paths. It reports whether any center moved.
//
// Errors: ErrNilGraph, ErrNilState, ErrStateMismatch, ErrNilScratch,
// ErrScratchMismatch, ErrScratchOverflow (checked for every cluster before
// anything is modified).
func Recenter(g *csr.Graph, st *State, sc *Scratch) (bool, error) {
	moves, err := recenter(g, st, sc)

	return moves > 0, err
}

// recenter is Recenter returning the number of centers that moved.
func recenter(g *csr.Graph, st *State, sc *Scratch) (int, error) {
	if err := checkStep(g, st); err != nil {
		return 0, fmt.Errorf("Recenter: %w", err)
	}
	if sc == nil {
		return 0, fmt.Errorf("Recenter: %w", ErrNilScratch)
	}
	if sc.n != st.Order() || sc.k != st.Clusters() {
		return 0, fmt.Errorf("Recenter: scratch (n=%d, k=%d), state (n=%d, k=%d): %w",
			sc.n, sc.k, st.Order(), st.Clusters(), ErrScratchMismatch)
	}

	// 1) Group members and refuse oversized clusters up front.
	sc.group(st)
	var c int
	for c = 0; c < sc.k; c++ {
		if size := len(sc.members(c)); size > sc.maxSize {
			return 0, fmt.Errorf("Recenter: cluster %d has %d vertices, scratch holds %d: %w",
				c, size, sc.maxSize, ErrScratchOverflow)
		}
	}

	// 2) Recenter cluster by cluster.
	moves := 0
	for c = 0; c < sc.k; c++ {
		moved, err := sc.recenterCluster(g, st, c)
		if err != nil {
			return moves, fmt.Errorf("Recenter: cluster %d: %w", c, err)
		}
		if moved {
			moves++
		}
	}

	return moves, nil
}

// recenterCluster handles one cluster; see the file header for the steps.
func (sc *Scratch) recenterCluster(g *csr.Graph, st *State, c int) (bool, error) {
	verts := sc.members(c)
	if len(verts) == 0 {
		return false, nil
	}

	// Induced all-pairs shortest paths.
	for a, v := range verts {
		sc.local[v] = a
	}
	err := sc.mat.LoadInduced(g, verts, sc.local)
	for _, v := range verts {
		sc.local[v] = -1
	}
	if err != nil {
		return false, err
	}
	sc.mat.Close()

	// Minimum eccentricity, previous center first so it wins ties.
	prev := st.Centers[c]
	best, bestEcc := -1, math.Inf(1)
	for a, v := range verts {
		if v == prev {
			best, bestEcc = a, sc.mat.Eccentricity(a)
			break
		}
	}
	var e float64
	for a := range verts {
		e = sc.mat.Eccentricity(a)
		if e < bestEcc {
			best, bestEcc = a, e
		}
	}
	if best < 0 || math.IsInf(bestEcc, 1) {
		// No member reaches the whole cluster inside it; keep the old tree.
		return false, nil
	}

	// Rebuild the cluster tree from the center's rows.
	dist, pred := sc.mat.Row(best), sc.mat.PredRow(best)
	for _, v := range verts {
		st.PredecessorCount[v] = 0
	}
	var p int
	for a, v := range verts {
		st.Distance[v] = dist[a]
		if a == best {
			st.Predecessor[v] = NoVertex
			continue
		}
		p = verts[pred[a]]
		st.Predecessor[v] = p
		st.PredecessorCount[p]++
	}

	center := verts[best]
	st.Centers[c] = center

	return center != prev, nil
}
