// SPDX-License-Identifier: MIT

package apsp_test

import (
	"fmt"

	"github.com/katalvlaran/balclust/apsp"
	"github.com/katalvlaran/balclust/csr"
)

// ExampleFloydWarshall finds the most central vertex of a short path.
func ExampleFloydWarshall() {
	g, _ := csr.Path(5, 1)
	m, err := apsp.FloydWarshall(g)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	ecc := make([]float64, m.Order())
	for i := range ecc {
		ecc[i] = m.Eccentricity(i)
	}
	fmt.Println(ecc)
	fmt.Println(m.Path(0, 4))
	// Output:
	// [4 3 2 3 4]
	// [0 1 2 3 4]
}

// ExampleMultiSourceDijkstra assigns every vertex of a path to its nearest
// source.
func ExampleMultiSourceDijkstra() {
	g, _ := csr.Path(7, 1)
	vor, err := apsp.MultiSourceDijkstra(g, []int{0, 6})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(vor.Dist)
	fmt.Println(vor.Nearest)
	// Output:
	// [0 1 2 3 2 1 0]
	// [0 0 0 0 1 1 1]
}
