// SPDX-License-Identifier: MIT
// Package: balclust/metrics
//
// collector.go — Prometheus instrumentation of clustering runs.
//
// Collector implements lloyd.Observer; pass it with lloyd.WithObserver. All
// series carry the "balclust_" prefix and are registered once, on the
// Registerer given to NewCollector.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/balclust/lloyd"
)

// Collector exports clustering progress as Prometheus metrics.
type Collector struct {
	RunsTotal           *prometheus.CounterVec // by outcome: converged | budget
	IterationsTotal     prometheus.Counter
	RelaxSweepsTotal    prometheus.Counter
	CenterMovesTotal    prometheus.Counter
	RebalanceMovesTotal prometheus.Counter
	UnassignedVertices  prometheus.Gauge
	ClusterSizeSpread   prometheus.Gauge // max - min cluster size of the last run
	Converged           prometheus.Gauge // 1 if the last run converged
	RunDuration         prometheus.Histogram
	TotalDistance       prometheus.Gauge // Σ distance after the last round
}

// NewCollector creates and registers the metrics on reg. A nil reg selects
// a fresh private registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	f := promauto.With(reg)

	return &Collector{
		RunsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "balclust_runs_total",
				Help: "Completed clustering runs by outcome",
			},
			[]string{"outcome"},
		),
		IterationsTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "balclust_iterations_total",
			Help: "Relax + Recenter rounds executed",
		}),
		RelaxSweepsTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "balclust_relax_sweeps_total",
			Help: "Full arc sweeps performed by Relax",
		}),
		CenterMovesTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "balclust_center_moves_total",
			Help: "Cluster centers moved by Recenter",
		}),
		RebalanceMovesTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "balclust_rebalance_moves_total",
			Help: "Vertices moved by rebalance passes",
		}),
		UnassignedVertices: f.NewGauge(prometheus.GaugeOpts{
			Name: "balclust_unassigned_vertices",
			Help: "Vertices unreachable from every center in the last run",
		}),
		ClusterSizeSpread: f.NewGauge(prometheus.GaugeOpts{
			Name: "balclust_cluster_size_spread",
			Help: "Largest minus smallest cluster size in the last run",
		}),
		Converged: f.NewGauge(prometheus.GaugeOpts{
			Name: "balclust_converged",
			Help: "1 if the last run reached a fixed point, 0 otherwise",
		}),
		RunDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "balclust_run_duration_seconds",
			Help:    "Wall time of clustering runs",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		TotalDistance: f.NewGauge(prometheus.GaugeOpts{
			Name: "balclust_total_distance",
			Help: "Sum of vertex-to-center distances after the last round",
		}),
	}
}

// OnIteration records one round.
func (c *Collector) OnIteration(s lloyd.IterationStats) {
	c.IterationsTotal.Inc()
	c.RelaxSweepsTotal.Add(float64(s.RelaxSweeps))
	c.CenterMovesTotal.Add(float64(s.CenterMoves))
	c.TotalDistance.Set(s.TotalDistance)
}

// OnRebalance records one rebalance pass.
func (c *Collector) OnRebalance(_, moved int) {
	c.RebalanceMovesTotal.Add(float64(moved))
}

// OnDone records the run summary.
func (c *Collector) OnDone(s lloyd.RunStats) {
	outcome := "budget"
	converged := 0.0
	if s.Converged {
		outcome, converged = "converged", 1
	}
	c.RunsTotal.WithLabelValues(outcome).Inc()
	c.Converged.Set(converged)
	c.UnassignedVertices.Set(float64(s.Unassigned))
	c.ClusterSizeSpread.Set(float64(s.MaxClusterSize - s.MinClusterSize))
	c.RunDuration.Observe(s.Duration.Seconds())
}

var _ lloyd.Observer = (*Collector)(nil)
