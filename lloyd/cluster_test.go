// SPDX-License-Identifier: MIT

package lloyd_test

import (
	"bytes"
	"math"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/balclust/csr"
	"github.com/katalvlaran/balclust/lloyd"
)

// ------------------------------------------------------------------------
// 1. End-to-end runs on the reference fixtures.
// ------------------------------------------------------------------------

func TestCluster_Path9(t *testing.T) {
	t.Parallel()

	g := p9Graph(t)
	cases := []struct {
		name       string
		opts       []lloyd.Option
		membership []int
		centers    []int
		iterations int
		converged  bool
		moves      int
	}{
		{
			name:       "one round",
			opts:       []lloyd.Option{lloyd.WithMaxIterations(1), lloyd.WithRebalanceIterations(0)},
			membership: []int{0, 0, 0, 0, 1, 1, 1, 1, 2},
			centers:    []int{1, 5, 8},
			iterations: 1,
		},
		{
			name:       "five rounds",
			opts:       []lloyd.Option{lloyd.WithMaxIterations(5), lloyd.WithRebalanceIterations(0)},
			membership: []int{0, 0, 0, 0, 1, 1, 1, 2, 2},
			centers:    []int{1, 5, 8},
			iterations: 3,
			converged:  true,
		},
		{
			name:       "one round then rebalance",
			opts:       []lloyd.Option{lloyd.WithMaxIterations(1)},
			membership: []int{0, 0, 0, 0, 1, 1, 1, 2, 2},
			centers:    []int{1, 5, 8},
			iterations: 1,
			moves:      1,
		},
		{
			name:       "defaults",
			membership: []int{0, 0, 0, 0, 1, 1, 1, 2, 2},
			centers:    []int{1, 5, 8},
			iterations: 3,
			converged:  true,
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			res, err := lloyd.Cluster(g, []int{1, 7, 8}, append(tc.opts, lloyd.WithInvariantChecks())...)
			require.NoError(t, err)
			assert.Equal(t, tc.membership, res.Membership)
			assert.Equal(t, tc.centers, res.Centers)
			assert.Equal(t, tc.iterations, res.Iterations)
			assert.Equal(t, tc.converged, res.Converged)
			assert.Equal(t, tc.moves, res.RebalanceMoves)
			assert.Zero(t, res.Unassigned)
		})
	}
}

func TestCluster_Ladder(t *testing.T) {
	t.Parallel()

	res, err := lloyd.Cluster(ladderGraph(t), []int{1, 5},
		lloyd.WithMaxIterations(1), lloyd.WithRebalanceIterations(0))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0, 0, 1, 1, 1, 1}, res.Membership)
	assert.Equal(t, []int{1, 5}, res.Centers)
	assert.False(t, res.Converged) // the first round always relaxes

	res, err = lloyd.Cluster(ladderGraph(t), []int{1, 5})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0, 0, 1, 1, 1, 1}, res.Membership)
	assert.Equal(t, 2, res.Iterations)
	assert.True(t, res.Converged)
	assert.Zero(t, res.RebalanceMoves)
	assert.Equal(t, []int{4, 4}, res.Sizes())
	assert.Equal(t, [][]int{{0, 1, 2, 3}, {4, 5, 6, 7}}, res.Aggregates())
}

func TestCluster_DisconnectedReportsUnassigned(t *testing.T) {
	t.Parallel()

	res, err := lloyd.Cluster(twoComponents(t), []int{0})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0, -1, -1}, res.Membership)
	assert.Equal(t, []int{1}, res.Centers)
	assert.Equal(t, 2, res.Unassigned)
	assert.True(t, math.IsInf(res.Distance[4], 1))
	assert.Equal(t, []int{3}, res.Sizes())
	assert.Equal(t, [][]int{{0, 1, 2}}, res.Aggregates())
}

func TestCluster_GridBalanced(t *testing.T) {
	t.Parallel()

	g, err := csr.Grid(8, 8, 1)
	require.NoError(t, err)
	res, err := lloyd.Cluster(g, []int{0, 7, 56, 63},
		lloyd.WithMaxIterations(20), lloyd.WithInvariantChecks())
	require.NoError(t, err)
	assert.Zero(t, res.Unassigned)
	total := 0
	for _, s := range res.Sizes() {
		assert.Positive(t, s)
		total += s
	}
	assert.Equal(t, 64, total)
	for c, v := range res.Centers {
		assert.Equal(t, c, res.Membership[v])
		assert.Zero(t, res.Distance[v])
	}
}

func TestCluster_Deterministic(t *testing.T) {
	t.Parallel()

	g, err := csr.Grid(6, 7, 1)
	require.NoError(t, err)
	a, err := lloyd.Cluster(g, []int{3, 20, 40})
	require.NoError(t, err)
	b, err := lloyd.Cluster(g, []int{3, 20, 40})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

// ------------------------------------------------------------------------
// 2. Invalid input fails fast.
// ------------------------------------------------------------------------

func TestCluster_InvalidInput(t *testing.T) {
	t.Parallel()

	g := p9Graph(t)
	cases := []struct {
		name    string
		g       *csr.Graph
		centers []int
		opts    []lloyd.Option
		want    error
	}{
		{"nil graph", nil, []int{0}, nil, lloyd.ErrNilGraph},
		{"no centers", g, []int{}, nil, lloyd.ErrNoCenters},
		{"too many centers", g, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, nil, lloyd.ErrTooManyCenters},
		{"out of range", g, []int{12}, nil, lloyd.ErrCenterOutOfRange},
		{"duplicate", g, []int{2, 2}, nil, lloyd.ErrDuplicateCenter},
		{"zero iterations", g, []int{0}, []lloyd.Option{lloyd.WithMaxIterations(0)}, lloyd.ErrOptionViolation},
		{"negative rebalance", g, []int{0}, []lloyd.Option{lloyd.WithRebalanceIterations(-1)}, lloyd.ErrOptionViolation},
		{"zero scratch", g, []int{0}, []lloyd.Option{lloyd.WithScratchSize(0)}, lloyd.ErrOptionViolation},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			res, err := lloyd.Cluster(tc.g, tc.centers, tc.opts...)
			assert.ErrorIs(t, err, tc.want)
			assert.Nil(t, res)
		})
	}
}

func TestCluster_ScratchOverflow(t *testing.T) {
	t.Parallel()

	_, err := lloyd.Cluster(p9Graph(t), []int{4}, lloyd.WithScratchSize(4))
	assert.ErrorIs(t, err, lloyd.ErrScratchOverflow)
}

// ------------------------------------------------------------------------
// 3. Step API, logging and observer wiring.
// ------------------------------------------------------------------------

func TestClusterer_StepByStep(t *testing.T) {
	t.Parallel()

	c, err := lloyd.NewClusterer(p9Graph(t), []int{1, 7, 8})
	require.NoError(t, err)

	relaxed, moved, err := c.Step()
	require.NoError(t, err)
	assert.True(t, relaxed)
	assert.True(t, moved)
	assert.Equal(t, []int{1, 5, 8}, c.State().Centers)

	relaxed, moved, err = c.Step()
	require.NoError(t, err)
	assert.True(t, relaxed)
	assert.False(t, moved)
	assert.False(t, c.Converged())

	relaxed, moved, err = c.Step()
	require.NoError(t, err)
	assert.False(t, relaxed)
	assert.False(t, moved)
	assert.True(t, c.Converged())
	assert.Equal(t, 3, c.Iterations())

	n, err := c.Rebalance()
	require.NoError(t, err)
	assert.Zero(t, n)
}

// recorder captures observer callbacks.
type recorder struct {
	iterations []lloyd.IterationStats
	rebalance  [][2]int
	done       []lloyd.RunStats
}

func (r *recorder) OnIteration(s lloyd.IterationStats) { r.iterations = append(r.iterations, s) }
func (r *recorder) OnRebalance(pass, moved int)        { r.rebalance = append(r.rebalance, [2]int{pass, moved}) }
func (r *recorder) OnDone(s lloyd.RunStats)            { r.done = append(r.done, s) }

func TestCluster_ObserverAndLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	rec := &recorder{}

	_, err := lloyd.Cluster(p9Graph(t), []int{1, 7, 8},
		lloyd.WithMaxIterations(1), lloyd.WithLogger(logger), lloyd.WithObserver(rec))
	require.NoError(t, err)

	require.Len(t, rec.iterations, 1)
	it := rec.iterations[0]
	assert.Equal(t, 1, it.Iteration)
	assert.True(t, it.RelaxChanged)
	assert.Equal(t, 1, it.CenterMoves)
	assert.Equal(t, 9, it.Assigned)
	assert.Equal(t, 8.0, it.TotalDistance) // 1+0+1+2+1+0+1+2+0
	assert.Greater(t, it.RelaxSweeps, 1)

	assert.Equal(t, [][2]int{{1, 1}, {2, 0}}, rec.rebalance)

	require.Len(t, rec.done, 1)
	done := rec.done[0]
	assert.Equal(t, 9, done.Vertices)
	assert.Equal(t, 3, done.Clusters)
	assert.False(t, done.Converged)
	assert.Equal(t, 1, done.RebalanceMoves)
	assert.Equal(t, 2, done.MinClusterSize)
	assert.Equal(t, 4, done.MaxClusterSize)

	out := buf.String()
	assert.Contains(t, out, "lloyd round")
	assert.Contains(t, out, "lloyd rebalance")
	assert.Contains(t, out, "lloyd done")
}
