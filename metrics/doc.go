// SPDX-License-Identifier: MIT

// Package metrics exposes balanced Lloyd clustering runs to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	col := metrics.NewCollector(reg)
//	res, err := lloyd.Cluster(g, centers, lloyd.WithObserver(col))
//
// Series: balclust_runs_total{outcome}, balclust_iterations_total,
// balclust_relax_sweeps_total, balclust_center_moves_total,
// balclust_rebalance_moves_total, balclust_unassigned_vertices,
// balclust_cluster_size_spread, balclust_converged,
// balclust_run_duration_seconds, balclust_total_distance.
package metrics
