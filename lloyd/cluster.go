// SPDX-License-Identifier: MIT
// Package: balclust/lloyd
//
// cluster.go — the driver alternating Relax and Recenter.
//
// State machine: Init → Relax → Recenter → (Relax | Done).
//   • Done when a round reports no change in either step (Converged = true),
//     or when MaxIterations rounds ran (Converged = false, not an error).
//   • Then up to RebalanceIterations local-exchange passes (k ≥ 2 only),
//     stopping at the first pass that moves nothing.

package lloyd

import (
	"fmt"
	"math"
	"time"

	"github.com/katalvlaran/balclust/csr"
)

// Result is the outcome of a clustering run.
type Result struct {
	Membership     []int     // cluster per vertex, or Unassigned
	Centers        []int     // center vertex per cluster
	Distance       []float64 // distance to the center, +Inf if unassigned
	Iterations     int       // Relax + Recenter rounds executed
	Converged      bool      // false when the round budget ran out first
	Unassigned     int       // vertices unreachable from every center
	RebalanceMoves int       // vertices moved by the rebalance passes
}

// Sizes returns the number of vertices per cluster.
func (r *Result) Sizes() []int {
	sizes := make([]int, len(r.Centers))
	for _, c := range r.Membership {
		if c != Unassigned {
			sizes[c]++
		}
	}

	return sizes
}

// Aggregates returns the members of every cluster, ascending vertex id.
// This is the column structure of an aggregation operator.
func (r *Result) Aggregates() [][]int {
	sizes := r.Sizes()
	aggs := make([][]int, len(sizes))
	for c, s := range sizes {
		aggs[c] = make([]int, 0, s)
	}
	for i, c := range r.Membership {
		if c != Unassigned {
			aggs[c] = append(aggs[c], i)
		}
	}

	return aggs
}

// Cluster partitions g into len(centers) balanced clusters, starting from
// the given distinct centers.
//
// Errors (InvalidInput, nothing computed): ErrNilGraph, ErrNoCenters,
// ErrTooManyCenters, ErrCenterOutOfRange, ErrDuplicateCenter,
// ErrOptionViolation. Fatal during the run: ErrScratchOverflow.
//
// Example:
//
//	g, _ := csr.Grid(32, 32, 1)
//	res, err := lloyd.Cluster(g, []int{0, 31, 992, 1023}, lloyd.WithMaxIterations(20))
func Cluster(g *csr.Graph, centers []int, opts ...Option) (*Result, error) {
	c, err := NewClusterer(g, centers, opts...)
	if err != nil {
		return nil, err
	}

	return c.Run()
}

// Clusterer exposes the driver loop step by step. It exclusively owns its
// State and Scratch; it is not safe for concurrent use.
type Clusterer struct {
	g        *csr.Graph
	opts     Options
	state    *State
	scratch  *Scratch
	iter     int
	conv     bool
	rebMoves int
}

// NewClusterer validates the inputs and allocates State and Scratch.
func NewClusterer(g *csr.Graph, centers []int, opts ...Option) (*Clusterer, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	st, err := NewState(g, centers)
	if err != nil {
		return nil, fmt.Errorf("Cluster: %w", err)
	}

	n, k := g.Order(), len(centers)
	size := o.ScratchSize
	if size == 0 {
		size = DefaultScratchSize(n, k)
	}
	sc, err := NewScratch(n, k, size)
	if err != nil {
		return nil, fmt.Errorf("Cluster: %w", err)
	}

	return &Clusterer{g: g, opts: o, state: st, scratch: sc}, nil
}

// State returns the live state (not a copy).
func (c *Clusterer) State() *State { return c.state }

// Iterations returns the number of rounds run so far.
func (c *Clusterer) Iterations() int { return c.iter }

// Converged reports whether the last round changed nothing.
func (c *Clusterer) Converged() bool { return c.conv }

// Step runs one Relax + Recenter round.
func (c *Clusterer) Step() (relaxChanged, recenterChanged bool, err error) {
	relaxChanged, sweeps, err := relax(c.g, c.state)
	if err != nil {
		return false, false, err
	}
	if err = c.check("relax"); err != nil {
		return relaxChanged, false, err
	}

	moves, err := recenter(c.g, c.state, c.scratch)
	if err != nil {
		return relaxChanged, false, err
	}
	if err = c.check("recenter"); err != nil {
		return relaxChanged, moves > 0, err
	}

	c.iter++
	c.conv = !relaxChanged && moves == 0

	stats := IterationStats{
		Iteration:     c.iter,
		RelaxSweeps:   sweeps,
		RelaxChanged:  relaxChanged,
		CenterMoves:   moves,
		TotalDistance: c.state.TotalDistance(),
		Assigned:      c.state.Assigned(),
	}
	c.opts.Logger.Debug("lloyd round",
		"iteration", stats.Iteration,
		"sweeps", stats.RelaxSweeps,
		"relax_changed", stats.RelaxChanged,
		"center_moves", stats.CenterMoves,
		"total_distance", stats.TotalDistance,
	)
	c.opts.Observer.OnIteration(stats)

	return relaxChanged, moves > 0, nil
}

// Rebalance runs one local-exchange pass and returns the number of moves.
func (c *Clusterer) Rebalance() (int, error) {
	moved, err := Rebalance(c.g, c.state)
	if err != nil {
		return 0, err
	}
	if err = c.check("rebalance"); err != nil {
		return moved, err
	}
	c.rebMoves += moved

	return moved, nil
}

// Run executes the main loop and the rebalance phase, then returns a
// snapshot of the final state.
func (c *Clusterer) Run() (*Result, error) {
	start := time.Now()

	// 1) Relax ↔ Recenter until quiet or out of budget.
	for c.iter < c.opts.MaxIterations {
		if _, _, err := c.Step(); err != nil {
			return nil, err
		}
		if c.conv {
			break
		}
	}
	if !c.conv {
		c.opts.Logger.Warn("lloyd budget exhausted before convergence", "iterations", c.iter)
	}

	// 2) Optional size refinement; a single cluster has nothing to trade.
	if c.state.Clusters() >= 2 {
		for pass := 1; pass <= c.opts.RebalanceIterations; pass++ {
			moved, err := c.Rebalance()
			if err != nil {
				return nil, err
			}
			c.opts.Logger.Debug("lloyd rebalance", "pass", pass, "moved", moved)
			c.opts.Observer.OnRebalance(pass, moved)
			if moved == 0 {
				break
			}
		}
	}

	res := c.result()
	stats := c.runStats(res, time.Since(start))
	if res.Unassigned > 0 {
		c.opts.Logger.Warn("lloyd left vertices unassigned (disconnected graph)", "unassigned", res.Unassigned)
	}
	c.opts.Logger.Info("lloyd done",
		"vertices", stats.Vertices,
		"clusters", stats.Clusters,
		"iterations", stats.Iterations,
		"converged", stats.Converged,
		"rebalance_moves", stats.RebalanceMoves,
		"min_size", stats.MinClusterSize,
		"max_size", stats.MaxClusterSize,
		"elapsed", stats.Duration,
	)
	c.opts.Observer.OnDone(stats)

	return res, nil
}

// result snapshots the state into a Result.
func (c *Clusterer) result() *Result {
	st := c.state

	return &Result{
		Membership:     append([]int(nil), st.Membership...),
		Centers:        append([]int(nil), st.Centers...),
		Distance:       append([]float64(nil), st.Distance...),
		Iterations:     c.iter,
		Converged:      c.conv,
		Unassigned:     st.Order() - st.Assigned(),
		RebalanceMoves: c.rebMoves,
	}
}

// runStats derives the summary reported to observers.
func (c *Clusterer) runStats(res *Result, elapsed time.Duration) RunStats {
	minSize, maxSize := math.MaxInt, 0
	for _, s := range c.state.ClusterSize {
		minSize = min(minSize, s)
		maxSize = max(maxSize, s)
	}

	return RunStats{
		Vertices:       c.state.Order(),
		Clusters:       c.state.Clusters(),
		Iterations:     res.Iterations,
		Converged:      res.Converged,
		Unassigned:     res.Unassigned,
		RebalanceMoves: res.RebalanceMoves,
		MinClusterSize: minSize,
		MaxClusterSize: maxSize,
		Duration:       elapsed,
	}
}

// check validates the state after a step when invariant checks are on.
func (c *Clusterer) check(step string) error {
	if !c.opts.CheckInvariants {
		return nil
	}
	if err := c.state.Validate(); err != nil {
		return fmt.Errorf("after %s (round %d): %w", step, c.iter+1, err)
	}

	return nil
}
