// SPDX-License-Identifier: MIT
// Package: balclust/lloyd
//
// relax.go — balanced multi-source shortest-path relaxation.
//
// Why label-correcting sweeps instead of a priority queue: the balance
// tie-break moves vertices between clusters at equal distance depending on
// the current cluster sizes, so the greedy "settle the closest vertex" cut
// property no longer holds. Bellman–Ford sweeps apply the same comparison to
// every arc until a full sweep changes nothing.
//
// Determinism:
//   • Arcs are scanned u ascending, then in row order of u. The first arc that
//     wins under prefer is applied immediately, so later arcs see the update.
//
// Complexity: O(sweeps · nnz); sweeps ≤ n+1 for strict improvements plus the
// finitely many balance moves (each lowers Σ size²).

package lloyd

import (
	"fmt"

	"github.com/katalvlaran/balclust/csr"
)

// Relax runs balanced Bellman–Ford relaxation from the current centers on
// st, in place, and reports whether any vertex changed cluster, parent or
// distance. Vertices unreachable from every center stay Unassigned; that is
// not an error.
//
// Preconditions: every center has distance 0 in its own cluster (as left by
// NewState or Recenter). Other entries may be stale.
//
// Errors: ErrNilGraph, ErrNilState, ErrStateMismatch.
func Relax(g *csr.Graph, st *State) (bool, error) {
	changed, _, err := relax(g, st)

	return changed, err
}

// relax is Relax plus the number of sweeps performed (including the final,
// unchanged one).
func relax(g *csr.Graph, st *State) (bool, int, error) {
	if err := checkStep(g, st); err != nil {
		return false, 0, fmt.Errorf("Relax: %w", err)
	}

	n := g.Order()
	var (
		changed, updated bool
		sweeps           int
		u, k, v          int
		du, cand         float64
	)
	for {
		sweeps++
		updated = false
		for u = 0; u < n; u++ {
			if st.Membership[u] == Unassigned {
				continue // +Inf source: nothing to offer
			}
			du = st.Distance[u]
			cols, ws := g.Row(u)
			for k, v = range cols {
				if v == u {
					continue // self loops never help
				}
				cand = du + ws[k]
				if st.prefer(u, v, cand) {
					st.attach(u, v, cand)
					updated = true
				}
			}
		}
		if !updated {
			break
		}
		changed = true
	}

	return changed, sweeps, nil
}

// checkStep validates the (graph, state) pair shared by every step function.
func checkStep(g *csr.Graph, st *State) error {
	if g == nil {
		return ErrNilGraph
	}
	if st == nil {
		return ErrNilState
	}

	return st.matches(g.Order())
}
