// SPDX-License-Identifier: MIT
// Package: balclust/lloyd
//
// observer.go — hooks for instrumenting a clustering run.

package lloyd

import "time"

// IterationStats describes one Relax + Recenter round.
type IterationStats struct {
	Iteration     int     // 1-based round number
	RelaxSweeps   int     // full arc sweeps, including the final quiet one
	RelaxChanged  bool    // Relax modified the state
	CenterMoves   int     // clusters whose center moved in Recenter
	TotalDistance float64 // Σ distance over assigned vertices after the round
	Assigned      int     // vertices that belong to a cluster
}

// RunStats summarizes a finished run.
type RunStats struct {
	Vertices       int
	Clusters       int
	Iterations     int
	Converged      bool
	Unassigned     int
	RebalanceMoves int
	MinClusterSize int
	MaxClusterSize int
	Duration       time.Duration
}

// Observer receives progress callbacks from a Clusterer. Implementations
// must be cheap; they run inline on the clustering goroutine.
type Observer interface {
	// OnIteration is called after every Relax + Recenter round.
	OnIteration(IterationStats)

	// OnRebalance is called after every rebalance pass with the number of
	// vertices it moved.
	OnRebalance(pass, moved int)

	// OnDone is called once when Run finishes successfully.
	OnDone(RunStats)
}

// NoopObserver ignores every callback.
type NoopObserver struct{}

func (NoopObserver) OnIteration(IterationStats) {}
func (NoopObserver) OnRebalance(int, int)       {}
func (NoopObserver) OnDone(RunStats)            {}
