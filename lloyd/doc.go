// SPDX-License-Identifier: MIT

// Package lloyd implements balanced Lloyd clustering on weighted sparse graphs:
// a graph analogue of k-means that partitions the vertices into connected
// clusters of roughly equal size, each grown around a center vertex.
//
// Overview:
//
//   - Relax: multi-source Bellman–Ford from the current centers. A vertex
//     switches to a strictly closer center, or, at equal distance, to a
//     cluster that is smaller by at least two vertices (leaves only).
//   - Recenter: per cluster, all-pairs shortest paths on the induced subgraph
//     (Floyd–Warshall, package apsp) select the member of minimum
//     eccentricity as the new center; the cluster tree is rebuilt from it.
//   - Cluster: alternates Relax and Recenter until neither changes anything
//     or MaxIterations rounds ran, then optionally runs Rebalance passes that
//     move leaves into smaller neighboring clusters.
//
// State:
//
//   - Membership, Distance, Predecessor, PredecessorCount, ClusterSize and
//     Centers describe a spanning forest of the reachable vertices, one tree
//     per cluster rooted at its center. State.Validate checks it.
//   - Vertices unreachable from every center stay Unassigned (-1); this is a
//     reported outcome, not an error.
//
// Determinism:
//
//   - No randomness: arcs are scanned in (u ascending, row order), clusters
//     are processed in id order, ties follow fixed rules. Identical inputs
//     give identical outputs. RandomCenters is seeded by the caller.
//
// Complexity:
//
//   - Relax: O(sweeps · nnz).
//   - Recenter: O(Σ s_c³) time and O(S²) scratch for the largest allowed
//     cluster S (DefaultScratchSize = min(n, 4·⌈n/k⌉)).
//
// Errors:
//
//   - Invalid centers or options fail before any work: ErrNoCenters,
//     ErrTooManyCenters, ErrCenterOutOfRange, ErrDuplicateCenter,
//     ErrOptionViolation.
//   - A cluster larger than the scratch is refused with ErrScratchOverflow.
//
// Example:
//
//	g, _ := csr.Path(9, 1)
//	res, err := lloyd.Cluster(g, []int{1, 7, 8})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Membership, res.Centers)
//
// Thread safety: Cluster is safe to call concurrently on a shared graph; a
// Clusterer, State or Scratch must not be shared.
package lloyd
