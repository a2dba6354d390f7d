// SPDX-License-Identifier: MIT
// Package: balclust/lloyd
//
// rebalance.go — local-exchange refinement of cluster sizes.
//
// Rule (one pass):
//   • Scan arcs u→v in the same order as Relax (u ascending, row order).
//   • Move v into u's cluster when v is a leaf, not a center, belongs to a
//     different cluster, and size[u's cluster]+1 < size[v's cluster].
//   • v's new parent is u and its distance d[u]+w (it may grow: balance is
//     traded for compactness). Centers never move.
//
// Moving only leaves keeps the forest valid without touching other vertices.

package lloyd

import (
	"fmt"

	"github.com/katalvlaran/balclust/csr"
)

// Rebalance runs one local-exchange pass on st and returns the number of
// vertices moved to a smaller neighboring cluster.
// Errors: ErrNilGraph, ErrNilState, ErrStateMismatch.
func Rebalance(g *csr.Graph, st *State) (int, error) {
	if err := checkStep(g, st); err != nil {
		return 0, fmt.Errorf("Rebalance: %w", err)
	}

	n := g.Order()
	moved := 0
	var u, k, v, mu, mv int
	for u = 0; u < n; u++ {
		mu = st.Membership[u]
		if mu == Unassigned {
			continue
		}
		cols, ws := g.Row(u)
		for k, v = range cols {
			mv = st.Membership[v]
			if v == u || mv == Unassigned || mv == mu {
				continue
			}
			if st.PredecessorCount[v] != 0 || st.IsCenter(v) {
				continue
			}
			if st.ClusterSize[mu]+1 >= st.ClusterSize[mv] {
				continue
			}
			st.attach(u, v, st.Distance[u]+ws[k])
			moved++
		}
	}

	return moved, nil
}
