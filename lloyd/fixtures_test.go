// SPDX-License-Identifier: MIT

package lloyd_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/balclust/csr"
)

// p9Graph is the 1D finite-difference stencil on 9 points with absolute
// values taken: 2 on the diagonal (self loops), 1 between neighbors.
func p9Graph(t *testing.T) *csr.Graph {
	t.Helper()
	rows := make([][]float64, 9)
	for i := range rows {
		rows[i] = make([]float64, 9)
		rows[i][i] = 2
		if i > 0 {
			rows[i][i-1] = 1
		}
		if i < 8 {
			rows[i][i+1] = 1
		}
	}
	g, err := csr.FromDense(rows)
	require.NoError(t, err)

	return g
}

// ladderGraph is the absolute graph Laplacian of the 2×4 ladder: paths
// 0-1-2-3 and 4-5-6-7 joined by rungs i–(i+4).
func ladderGraph(t *testing.T) *csr.Graph {
	t.Helper()
	lap := [][]float64{
		{2, -1, 0, 0, -1, 0, 0, 0},
		{-1, 3, -1, 0, 0, -1, 0, 0},
		{0, -1, 3, -1, 0, 0, -1, 0},
		{0, 0, -1, 2, 0, 0, 0, -1},
		{-1, 0, 0, 0, 2, -1, 0, 0},
		{0, -1, 0, 0, -1, 3, -1, 0},
		{0, 0, -1, 0, 0, -1, 3, -1},
		{0, 0, 0, -1, 0, 0, -1, 2},
	}
	for _, row := range lap {
		for j := range row {
			row[j] = math.Abs(row[j])
		}
	}
	g, err := csr.FromDense(lap)
	require.NoError(t, err)

	return g
}

// twoComponents is a 3-path (0-1-2) plus a disjoint edge (3-4).
func twoComponents(t *testing.T) *csr.Graph {
	t.Helper()
	g, err := csr.FromEdges(5, []csr.Edge{
		{From: 0, To: 1, Weight: 1},
		{From: 1, To: 2, Weight: 1},
		{From: 3, To: 4, Weight: 1},
	}, csr.WithSymmetric())
	require.NoError(t, err)

	return g
}
