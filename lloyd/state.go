// SPDX-License-Identifier: MIT
// Package: balclust/lloyd
//
// state.go — the per-vertex / per-cluster arrays relaxed by the algorithm.
//
// Representation:
//   • The clusters form an index arena: Predecessor[i] is the parent of i in
//     its cluster's tree, NoVertex for roots (centers) and unassigned vertices.
//   • PredecessorCount[i] is the number of children of i; a vertex with zero
//     children is a leaf and may change cluster without orphaning anyone.
//   • ClusterSize[c] equals |{i : Membership[i] == c}| between passes.
//
// Ownership: a State belongs to one run; it is not safe for concurrent use.

package lloyd

import (
	"fmt"
	"math"

	"github.com/katalvlaran/balclust/csr"
)

const (
	// Unassigned marks a vertex not reached from any center.
	Unassigned = -1

	// NoVertex marks the absence of a predecessor.
	NoVertex = -1
)

// State holds the mutable clustering arrays.
type State struct {
	Membership       []int     // cluster id per vertex, or Unassigned
	Distance         []float64 // distance to the assigned center, +Inf if unassigned
	Predecessor      []int     // parent in the cluster tree, or NoVertex
	PredecessorCount []int     // number of children per vertex
	ClusterSize      []int     // vertices per cluster
	Centers          []int     // root vertex per cluster
}

// NewState allocates a State for g seeded with the given centers: every
// vertex unassigned except the centers, which sit at distance 0 in their own
// cluster (cluster id = position in centers).
//
// Errors: ErrNilGraph, ErrNoCenters, ErrTooManyCenters, ErrCenterOutOfRange,
// ErrDuplicateCenter.
// Complexity: O(n + k).
func NewState(g *csr.Graph, centers []int) (*State, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	n := g.Order()
	if err := validateCenters(n, centers); err != nil {
		return nil, err
	}

	k := len(centers)
	st := &State{
		Membership:       make([]int, n),
		Distance:         make([]float64, n),
		Predecessor:      make([]int, n),
		PredecessorCount: make([]int, n),
		ClusterSize:      make([]int, k),
		Centers:          make([]int, k),
	}
	copy(st.Centers, centers)
	st.reset()

	return st, nil
}

// reset returns the arrays to the initial "centers only" configuration.
func (s *State) reset() {
	inf := math.Inf(1)
	for i := range s.Membership {
		s.Membership[i] = Unassigned
		s.Distance[i] = inf
		s.Predecessor[i] = NoVertex
		s.PredecessorCount[i] = 0
	}
	for c, v := range s.Centers {
		s.Membership[v] = c
		s.Distance[v] = 0
		s.ClusterSize[c] = 1
	}
}

// validateCenters enforces 1 ≤ k ≤ n, range and distinctness.
func validateCenters(n int, centers []int) error {
	k := len(centers)
	if k == 0 {
		return ErrNoCenters
	}
	if k > n {
		return fmt.Errorf("k=%d, n=%d: %w", k, n, ErrTooManyCenters)
	}

	seen := make(map[int]int, k)
	for c, v := range centers {
		if v < 0 || v >= n {
			return fmt.Errorf("centers[%d]=%d (n=%d): %w", c, v, n, ErrCenterOutOfRange)
		}
		if prev, dup := seen[v]; dup {
			return fmt.Errorf("centers[%d]=centers[%d]=%d: %w", prev, c, v, ErrDuplicateCenter)
		}
		seen[v] = c
	}

	return nil
}

// Order returns the number of vertices.
func (s *State) Order() int { return len(s.Membership) }

// Clusters returns the number of clusters k.
func (s *State) Clusters() int { return len(s.Centers) }

// IsCenter reports whether v is the center of the cluster it belongs to.
func (s *State) IsCenter(v int) bool {
	c := s.Membership[v]

	return c != Unassigned && s.Centers[c] == v
}

// Assigned returns the number of vertices that belong to some cluster.
func (s *State) Assigned() int {
	count := 0
	for _, c := range s.Membership {
		if c != Unassigned {
			count++
		}
	}

	return count
}

// TotalDistance returns Σ Distance[i] over assigned vertices.
func (s *State) TotalDistance() float64 {
	total := 0.0
	for i, c := range s.Membership {
		if c != Unassigned {
			total += s.Distance[i]
		}
	}

	return total
}

// Clone returns a deep copy.
func (s *State) Clone() *State {
	return &State{
		Membership:       append([]int(nil), s.Membership...),
		Distance:         append([]float64(nil), s.Distance...),
		Predecessor:      append([]int(nil), s.Predecessor...),
		PredecessorCount: append([]int(nil), s.PredecessorCount...),
		ClusterSize:      append([]int(nil), s.ClusterSize...),
		Centers:          append([]int(nil), s.Centers...),
	}
}

// matches checks that s was built for a graph of order n.
func (s *State) matches(n int) error {
	if len(s.Membership) != n || len(s.Distance) != n ||
		len(s.Predecessor) != n || len(s.PredecessorCount) != n ||
		len(s.ClusterSize) != len(s.Centers) {
		return fmt.Errorf("state order %d, graph order %d: %w", len(s.Membership), n, ErrStateMismatch)
	}

	return nil
}

// prefer is the single comparison used by every relaxation: should v be
// (re)attached below u with distance cand?
//
// Order of keys:
//  1. shorter distance wins;
//  2. on equal distance, v moves to u's cluster only if that strictly improves
//     balance (size[u's cluster]+1 < size[v's cluster]) and v is a leaf.
//
// Centers are pinned to their cluster.
func (s *State) prefer(u, v int, cand float64) bool {
	if s.IsCenter(v) {
		return false
	}
	dv := s.Distance[v]
	if cand < dv {
		return true
	}
	if cand > dv {
		return false
	}
	mu, mv := s.Membership[u], s.Membership[v]

	return mu != mv && s.ClusterSize[mu]+1 < s.ClusterSize[mv] && s.PredecessorCount[v] == 0
}

// attach re-parents v below u at distance d, moving v into u's cluster and
// keeping every counter consistent.
func (s *State) attach(u, v int, d float64) {
	if p := s.Predecessor[v]; p != NoVertex {
		s.PredecessorCount[p]--
	}
	if c := s.Membership[v]; c != Unassigned {
		s.ClusterSize[c]--
	}

	c := s.Membership[u]
	s.Distance[v] = d
	s.Membership[v] = c
	s.Predecessor[v] = u
	s.PredecessorCount[u]++
	s.ClusterSize[c]++
}

// Validate checks every structural invariant of the forest:
//   - array lengths agree;
//   - each center belongs to its own cluster at distance 0 with no parent;
//   - unassigned vertices have +Inf distance and no parent;
//   - every assigned non-center has a parent in the same cluster;
//   - PredecessorCount and ClusterSize match recounts;
//   - following parents from any vertex reaches a center (no cycles).
//
// Returns ErrBrokenInvariant (wrapped with the first violation) or nil.
// Complexity: O(n + k).
func (s *State) Validate() error {
	n, k := s.Order(), s.Clusters()
	if err := s.matches(n); err != nil {
		return fmt.Errorf("Validate: %w: %w", err, ErrBrokenInvariant)
	}

	// 1) Centers.
	for c, v := range s.Centers {
		if v < 0 || v >= n || s.Membership[v] != c || s.Distance[v] != 0 || s.Predecessor[v] != NoVertex {
			return fmt.Errorf("Validate: center %d of cluster %d: %w", v, c, ErrBrokenInvariant)
		}
	}

	// 2) Per-vertex fields and recounts.
	children := make([]int, n)
	sizes := make([]int, k)
	var c, p int
	for i := 0; i < n; i++ {
		c, p = s.Membership[i], s.Predecessor[i]
		if c == Unassigned {
			if !math.IsInf(s.Distance[i], 1) || p != NoVertex {
				return fmt.Errorf("Validate: unassigned vertex %d has distance %v, parent %d: %w",
					i, s.Distance[i], p, ErrBrokenInvariant)
			}
			continue
		}
		if c < 0 || c >= k {
			return fmt.Errorf("Validate: vertex %d in cluster %d (k=%d): %w", i, c, k, ErrBrokenInvariant)
		}
		sizes[c]++
		if s.Centers[c] == i {
			continue
		}
		if p < 0 || p >= n || s.Membership[p] != c {
			return fmt.Errorf("Validate: vertex %d (cluster %d) has parent %d: %w", i, c, p, ErrBrokenInvariant)
		}
		children[p]++
	}
	for i := 0; i < n; i++ {
		if children[i] != s.PredecessorCount[i] {
			return fmt.Errorf("Validate: vertex %d has %d children, count says %d: %w",
				i, children[i], s.PredecessorCount[i], ErrBrokenInvariant)
		}
	}
	for c = 0; c < k; c++ {
		if sizes[c] != s.ClusterSize[c] {
			return fmt.Errorf("Validate: cluster %d has %d vertices, size says %d: %w",
				c, sizes[c], s.ClusterSize[c], ErrBrokenInvariant)
		}
	}

	// 3) Acyclicity: walk parents with a three-color marking.
	const (
		white = iota
		grey
		black
	)
	color := make([]uint8, n)
	var path []int
	for i := 0; i < n; i++ {
		path = path[:0]
		v := i
		for v != NoVertex && color[v] == white {
			color[v] = grey
			path = append(path, v)
			v = s.Predecessor[v]
		}
		if v != NoVertex && color[v] == grey {
			return fmt.Errorf("Validate: predecessor cycle through vertex %d: %w", v, ErrBrokenInvariant)
		}
		for _, u := range path {
			color[u] = black
		}
	}

	return nil
}
