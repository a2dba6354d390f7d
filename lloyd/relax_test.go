// SPDX-License-Identifier: MIT

package lloyd_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/balclust/csr"
	"github.com/katalvlaran/balclust/lloyd"
)

// snapshot is the expected state after one step.
type snapshot struct {
	m, p, pc, s []int
	d           []float64
	centers     []int
}

func requireSnapshot(t *testing.T, want snapshot, st *lloyd.State) {
	t.Helper()
	assert.Equal(t, want.m, st.Membership, "membership")
	assert.Equal(t, want.d, st.Distance, "distance")
	assert.Equal(t, want.p, st.Predecessor, "predecessor")
	assert.Equal(t, want.pc, st.PredecessorCount, "predecessor count")
	assert.Equal(t, want.s, st.ClusterSize, "cluster size")
	assert.Equal(t, want.centers, st.Centers, "centers")
	require.NoError(t, st.Validate())
}

// ------------------------------------------------------------------------
// 1. Step-by-step trace on the 9-point path, seeds {1, 7, 8}.
// ------------------------------------------------------------------------

func TestSteps_Path9(t *testing.T) {
	t.Parallel()

	g := p9Graph(t)
	st, err := lloyd.NewState(g, []int{1, 7, 8})
	require.NoError(t, err)
	sc, err := lloyd.NewScratch(9, 3, lloyd.DefaultScratchSize(9, 3))
	require.NoError(t, err)

	// Relax #1: cluster 0 first floods the path, cluster 1 claws it back and
	// takes vertex 4 by the balance tie-break.
	changed, err := lloyd.Relax(g, st)
	require.NoError(t, err)
	assert.True(t, changed)
	requireSnapshot(t, snapshot{
		m:       []int{0, 0, 0, 0, 1, 1, 1, 1, 2},
		d:       []float64{1, 0, 1, 2, 3, 2, 1, 0, 0},
		p:       []int{1, -1, 1, 2, 5, 6, 7, -1, -1},
		pc:      []int{0, 2, 1, 0, 0, 1, 1, 1, 0},
		s:       []int{4, 4, 1},
		centers: []int{1, 7, 8},
	}, st)

	// Recenter #1: cluster 1 re-roots at 5.
	changed, err = lloyd.Recenter(g, st, sc)
	require.NoError(t, err)
	assert.True(t, changed)
	requireSnapshot(t, snapshot{
		m:       []int{0, 0, 0, 0, 1, 1, 1, 1, 2},
		d:       []float64{1, 0, 1, 2, 1, 0, 1, 2, 0},
		p:       []int{1, -1, 1, 2, 5, -1, 5, 6, -1},
		pc:      []int{0, 2, 1, 0, 0, 2, 1, 0, 0},
		s:       []int{4, 4, 1},
		centers: []int{1, 5, 8},
	}, st)

	// Relax #2: vertex 7 is now closer to 8.
	changed, err = lloyd.Relax(g, st)
	require.NoError(t, err)
	assert.True(t, changed)
	want := snapshot{
		m:       []int{0, 0, 0, 0, 1, 1, 1, 2, 2},
		d:       []float64{1, 0, 1, 2, 1, 0, 1, 1, 0},
		p:       []int{1, -1, 1, 2, 5, -1, 5, 8, -1},
		pc:      []int{0, 2, 1, 0, 0, 2, 0, 0, 1},
		s:       []int{4, 3, 2},
		centers: []int{1, 5, 8},
	}
	requireSnapshot(t, want, st)

	// Recenter #2: {7, 8} is a tie, the previous center 8 stays.
	changed, err = lloyd.Recenter(g, st, sc)
	require.NoError(t, err)
	assert.False(t, changed)
	requireSnapshot(t, want, st)

	// Fixed point.
	changed, err = lloyd.Relax(g, st)
	require.NoError(t, err)
	assert.False(t, changed)
	requireSnapshot(t, want, st)
}

// ------------------------------------------------------------------------
// 2. Ladder graph (absolute Laplacian, diagonal as self loops).
// ------------------------------------------------------------------------

func TestSteps_Ladder(t *testing.T) {
	t.Parallel()

	g := ladderGraph(t)
	st, err := lloyd.NewState(g, []int{1, 5})
	require.NoError(t, err)
	sc, err := lloyd.NewScratch(8, 2, lloyd.DefaultScratchSize(8, 2))
	require.NoError(t, err)

	changed, err := lloyd.Relax(g, st)
	require.NoError(t, err)
	assert.True(t, changed)
	want := snapshot{
		m:       []int{0, 0, 0, 0, 1, 1, 1, 1},
		d:       []float64{1, 0, 1, 2, 1, 0, 1, 2},
		p:       []int{1, -1, 1, 2, 5, -1, 5, 6},
		pc:      []int{0, 2, 1, 0, 0, 2, 1, 0},
		s:       []int{4, 4},
		centers: []int{1, 5},
	}
	requireSnapshot(t, want, st)

	changed, err = lloyd.Recenter(g, st, sc)
	require.NoError(t, err)
	assert.False(t, changed)
	requireSnapshot(t, want, st)
}

// ------------------------------------------------------------------------
// 3. Relax edge cases.
// ------------------------------------------------------------------------

func TestRelax_TieNeedsSizeGap(t *testing.T) {
	t.Parallel()

	// 4-path with seeds 0 and 3: each middle vertex is strictly closer to one
	// seed, nothing ties.
	g, err := csr.Path(4, 1)
	require.NoError(t, err)
	st, err := lloyd.NewState(g, []int{0, 3})
	require.NoError(t, err)
	_, err = lloyd.Relax(g, st)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 1, 1}, st.Membership)
	assert.Equal(t, []int{2, 2}, st.ClusterSize)

	// 5-path with seeds 0 and 4: vertex 2 ties at distance 2. Cluster 0
	// claims it first; sizes end 3 vs 2 and a move needs a gap of two.
	g, err = csr.Path(5, 1)
	require.NoError(t, err)
	st, err = lloyd.NewState(g, []int{0, 4})
	require.NoError(t, err)
	_, err = lloyd.Relax(g, st)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0, 1, 1}, st.Membership)
	assert.Equal(t, []int{3, 2}, st.ClusterSize)
	require.NoError(t, st.Validate())
}

func TestRelax_CentersArePinned(t *testing.T) {
	t.Parallel()

	// Each center is one hop from the other's cluster; neither is captured.
	g, err := csr.FromEdges(3, []csr.Edge{
		{From: 0, To: 1, Weight: 1},
		{From: 1, To: 2, Weight: 1},
	}, csr.WithSymmetric())
	require.NoError(t, err)
	st, err := lloyd.NewState(g, []int{0, 2})
	require.NoError(t, err)
	_, err = lloyd.Relax(g, st)
	require.NoError(t, err)
	assert.Zero(t, st.Distance[0])
	assert.Zero(t, st.Distance[2])
	assert.Equal(t, 0, st.Membership[0])
	assert.Equal(t, 1, st.Membership[2])
	require.NoError(t, st.Validate())
}

func TestRelax_DisconnectedLeavesUnassigned(t *testing.T) {
	t.Parallel()

	g := twoComponents(t)
	st, err := lloyd.NewState(g, []int{1})
	require.NoError(t, err)
	_, err = lloyd.Relax(g, st)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0, -1, -1}, st.Membership)
	assert.True(t, math.IsInf(st.Distance[3], 1))
	assert.Equal(t, 3, st.Assigned())
	require.NoError(t, st.Validate())
}

func TestRelax_Errors(t *testing.T) {
	t.Parallel()

	g := p9Graph(t)
	_, err := lloyd.Relax(nil, nil)
	assert.ErrorIs(t, err, lloyd.ErrNilGraph)
	_, err = lloyd.Relax(g, nil)
	assert.ErrorIs(t, err, lloyd.ErrNilState)

	small, err := csr.Path(3, 1)
	require.NoError(t, err)
	st, err := lloyd.NewState(small, []int{0})
	require.NoError(t, err)
	_, err = lloyd.Relax(g, st)
	assert.ErrorIs(t, err, lloyd.ErrStateMismatch)
}
