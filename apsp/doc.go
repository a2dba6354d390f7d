// SPDX-License-Identifier: MIT

// Package apsp implements dense all-pairs shortest paths (Floyd–Warshall)
// with a predecessor matrix, sized for small vertex sets such as the members
// of one cluster, plus a sparse multi-source Dijkstra that assigns every
// vertex to its nearest source.
//
// The Matrix type is a reusable workspace: allocate it once at the largest
// order you expect, then call LoadInduced (or Reset + SetArc) and Close for
// every subproblem. No allocation happens after NewMatrix.
//
// Complexity:
//
//   - Close: O(n³) time, in place.
//   - LoadInduced: O(n² + Σ deg) time.
//   - MultiSourceDijkstra: O((n + nnz) log nnz) time.
//
// Errors (sentinel):
//
//   - ErrBadCapacity  negative capacity.
//   - ErrCapacity     order above the preallocated capacity (never truncated).
//   - ErrNilGraph     nil input graph.
//   - ErrBadIndexMap  global→local map of the wrong length.
//   - ErrSourceOutOfRange  Dijkstra source outside [0, n).
package apsp
