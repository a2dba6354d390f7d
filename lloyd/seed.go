// SPDX-License-Identifier: MIT
// Package: balclust/lloyd
//
// seed.go — random initial centers.

package lloyd

import (
	"fmt"
	"math/rand"
	"sort"
)

// RandomCenters draws k distinct vertices of a graph of order n uniformly at
// random and returns them in ascending order. The same rng state always
// yields the same centers.
//
// Errors: ErrNilRand, ErrNoCenters (k < 1), ErrTooManyCenters (k > n).
// Complexity: O(n) time and space (partial Fisher–Yates).
func RandomCenters(n, k int, rng *rand.Rand) ([]int, error) {
	if rng == nil {
		return nil, ErrNilRand
	}
	if k < 1 {
		return nil, fmt.Errorf("RandomCenters: k=%d: %w", k, ErrNoCenters)
	}
	if k > n {
		return nil, fmt.Errorf("RandomCenters: k=%d, n=%d: %w", k, n, ErrTooManyCenters)
	}

	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	var j int
	for i := 0; i < k; i++ {
		j = i + rng.Intn(n-i)
		perm[i], perm[j] = perm[j], perm[i]
	}
	centers := perm[:k:k]
	sort.Ints(centers)

	return centers, nil
}
