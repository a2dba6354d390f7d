// SPDX-License-Identifier: MIT

// Package balclust partitions weighted graphs into near-equal, compact
// clusters with a balanced variant of Lloyd's algorithm, the coarsening step
// used by aggregation-based algebraic multigrid.
//
// 🚀 What is inside?
//
//	• csr/    — immutable compressed sparse row graphs, builders, BFS and components
//	• apsp/   — Floyd–Warshall workspace and multi-source Dijkstra
//	• lloyd/  — balanced relaxation, re-centering, rebalance and the driver
//	• metrics/ — Prometheus collector fed by the driver's observer hooks
//
// The balclust command (cmd/balclust) reads a Matrix Market file, clusters
// its graph and prints one "vertex cluster" line per vertex.
//
// Quick start:
//
//	g, _ := csr.Path(9, 1)
//	res, err := lloyd.Cluster(g, []int{1, 7, 8})
//	if err != nil { … }
//	fmt.Println(res.Membership, res.Centers)
//
// See each subpackage's doc.go for contracts and complexity.
package balclust
