// SPDX-License-Identifier: MIT

package csr_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/balclust/csr"
)

// ------------------------------------------------------------------------
// 1. Validation: New rejects every malformed triplet with the right sentinel.
// ------------------------------------------------------------------------

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		n       int
		indptr  []int
		indices []int
		weights []float64
		want    error
	}{
		{"negative order", -1, []int{0}, nil, nil, csr.ErrBadOrder},
		{"short indptr", 2, []int{0, 1}, []int{1}, []float64{1}, csr.ErrMalformed},
		{"nonzero first offset", 1, []int{1, 1}, nil, nil, csr.ErrMalformed},
		{"decreasing offsets", 2, []int{0, 2, 1}, []int{1, 0}, []float64{1, 1}, csr.ErrMalformed},
		{"nnz mismatch", 2, []int{0, 1, 2}, []int{1}, []float64{1}, csr.ErrMalformed},
		{"weights mismatch", 2, []int{0, 1, 2}, []int{1, 0}, []float64{1}, csr.ErrMalformed},
		{"index out of range", 2, []int{0, 1, 2}, []int{1, 2}, []float64{1, 1}, csr.ErrIndexOutOfRange},
		{"negative index", 2, []int{0, 1, 2}, []int{-1, 0}, []float64{1, 1}, csr.ErrIndexOutOfRange},
		{"negative weight", 2, []int{0, 1, 2}, []int{1, 0}, []float64{1, -2}, csr.ErrNegativeWeight},
		{"nan weight", 2, []int{0, 1, 2}, []int{1, 0}, []float64{math.NaN(), 1}, csr.ErrInvalidWeight},
		{"inf weight", 2, []int{0, 1, 2}, []int{1, 0}, []float64{1, math.Inf(1)}, csr.ErrInvalidWeight},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := csr.New(tc.n, tc.indptr, tc.indices, tc.weights)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestNew_EmptyAndAccessors(t *testing.T) {
	t.Parallel()

	g, err := csr.New(0, []int{0}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, g.Order())
	assert.Equal(t, 0, g.Size())

	g, err = csr.New(3, []int{0, 1, 3, 4}, []int{1, 0, 2, 1}, []float64{1, 1, 2, 2})
	require.NoError(t, err)
	assert.Equal(t, 3, g.Order())
	assert.Equal(t, 4, g.Size())
	assert.Equal(t, 2, g.Degree(1))

	cols, ws := g.Row(1)
	assert.Equal(t, []int{0, 2}, cols)
	assert.Equal(t, []float64{1, 2}, ws)

	w, ok := g.Weight(1, 2)
	assert.True(t, ok)
	assert.Equal(t, 2.0, w)
	_, ok = g.Weight(0, 2)
	assert.False(t, ok)
	_, ok = g.Weight(7, 0)
	assert.False(t, ok)

	assert.True(t, g.IsSymmetric())
}

// ------------------------------------------------------------------------
// 2. Constructors.
// ------------------------------------------------------------------------

func TestFromEdges_SymmetricAndLoops(t *testing.T) {
	t.Parallel()

	edges := []csr.Edge{{From: 0, To: 1, Weight: 3}, {From: 1, To: 1, Weight: 5}, {From: 2, To: 1, Weight: 4}}

	g, err := csr.FromEdges(3, edges)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3}, g.Indptr())
	assert.False(t, g.IsSymmetric())

	g, err = csr.FromEdges(3, edges, csr.WithSymmetric(), csr.WithoutSelfLoops())
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 3, 4}, g.Indptr())
	assert.Equal(t, []int{1, 0, 2, 1}, g.Indices())
	assert.Equal(t, []float64{3, 3, 4, 4}, g.Weights())
	assert.True(t, g.IsSymmetric())
}

func TestFromEdges_Errors(t *testing.T) {
	t.Parallel()

	_, err := csr.FromEdges(-2, nil)
	assert.ErrorIs(t, err, csr.ErrBadOrder)

	_, err = csr.FromEdges(2, []csr.Edge{{From: 0, To: 2, Weight: 1}})
	assert.ErrorIs(t, err, csr.ErrIndexOutOfRange)

	_, err = csr.FromEdges(2, []csr.Edge{{From: 0, To: 1, Weight: -1}})
	assert.ErrorIs(t, err, csr.ErrNegativeWeight)
}

func TestFromDense(t *testing.T) {
	t.Parallel()

	g, err := csr.FromDense([][]float64{
		{2, 1, 0},
		{1, 2, 1},
		{0, 1, 2},
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 5, 7}, g.Indptr())
	assert.Equal(t, []int{0, 1, 0, 1, 2, 1, 2}, g.Indices())

	_, err = csr.FromDense([][]float64{{0, 1}, {1}})
	assert.ErrorIs(t, err, csr.ErrNotSquare)

	_, err = csr.FromDense([][]float64{{0, -1}, {-1, 0}})
	assert.ErrorIs(t, err, csr.ErrNegativeWeight)
}

func TestPathCycleGrid(t *testing.T) {
	t.Parallel()

	p, err := csr.Path(4, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 3, 5, 6}, p.Indptr())
	assert.Equal(t, []int{1, 0, 2, 1, 3, 2}, p.Indices())
	assert.True(t, p.IsSymmetric())

	c, err := csr.Cycle(4, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 0, 2, 1, 3, 0, 2}, c.Indices())

	gr, err := csr.Grid(2, 3, 1)
	require.NoError(t, err)
	assert.Equal(t, 6, gr.Order())
	assert.Equal(t, 14, gr.Size()) // 7 undirected edges
	cols, _ := gr.Row(4)
	assert.Equal(t, []int{1, 3, 5}, cols)

	_, err = csr.Path(1, 1)
	assert.ErrorIs(t, err, csr.ErrTooFewVertices)
	_, err = csr.Cycle(2, 1)
	assert.ErrorIs(t, err, csr.ErrTooFewVertices)
	_, err = csr.Grid(0, 3, 1)
	assert.ErrorIs(t, err, csr.ErrTooFewVertices)
	_, err = csr.Path(3, math.NaN())
	assert.ErrorIs(t, err, csr.ErrInvalidWeight)
}
