// SPDX-License-Identifier: MIT
// Package: balclust/apsp
//
// dijkstra.go — multi-source Dijkstra over a csr.Graph (nearest-source
// distances, i.e. the unbalanced Voronoi partition of the vertices).
//
// Contract:
//   • All sources start at distance 0; Nearest[v] is the index (into sources)
//     of the source that settled v, NoPred when v is unreachable.
//   • Lazy decrease-key: stale heap entries are skipped on pop.
//   • Ties between sources go to the vertex settled first; equal distances
//     pop in push order, so seeds settle in source-index order.
//
// Complexity: O((n + nnz) log nnz) time, O(n + nnz) space.

package apsp

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/katalvlaran/balclust/csr"
)

// Voronoi is the result of MultiSourceDijkstra.
type Voronoi struct {
	Dist    []float64 // distance to the nearest source, +Inf if unreachable
	Nearest []int     // index into sources of the nearest source, or NoPred
	Pred    []int     // previous vertex on the shortest path, or NoPred
}

// MultiSourceDijkstra computes shortest distances from the nearest of the
// given sources.
//
// Errors: ErrNilGraph, ErrSourceOutOfRange.
func MultiSourceDijkstra(g *csr.Graph, sources []int) (*Voronoi, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	n := g.Order()
	for i, s := range sources {
		if s < 0 || s >= n {
			return nil, fmt.Errorf("MultiSourceDijkstra: sources[%d]=%d (n=%d): %w", i, s, n, ErrSourceOutOfRange)
		}
	}

	r := &dijkstraRunner{
		g: g,
		out: &Voronoi{
			Dist:    make([]float64, n),
			Nearest: make([]int, n),
			Pred:    make([]int, n),
		},
		done: make([]bool, n),
		pq:   make(vertexPQ, 0, n),
	}
	r.init(sources)
	r.process()

	return r.out, nil
}

// dijkstraRunner holds the state of one run.
type dijkstraRunner struct {
	g    *csr.Graph
	out  *Voronoi
	done []bool   // distance finalized
	pq   vertexPQ // lazy min-heap
	seq  int      // push counter for stable tie order
}

// init seeds every source at distance 0.
func (r *dijkstraRunner) init(sources []int) {
	inf := math.Inf(1)
	for v := range r.out.Dist {
		r.out.Dist[v] = inf
		r.out.Nearest[v] = NoPred
		r.out.Pred[v] = NoPred
	}
	heap.Init(&r.pq)
	for i, s := range sources {
		if r.out.Nearest[s] != NoPred {
			continue // duplicate source keeps its first index
		}
		r.out.Dist[s] = 0
		r.out.Nearest[s] = i
		r.push(s, 0)
	}
}

// process pops vertices in distance order and relaxes their arcs.
func (r *dijkstraRunner) process() {
	var (
		item    vertexItem
		k, v    int
		newDist float64
	)
	for r.pq.Len() > 0 {
		item = heap.Pop(&r.pq).(vertexItem)
		if r.done[item.v] || item.dist > r.out.Dist[item.v] {
			continue // stale entry
		}
		r.done[item.v] = true

		cols, ws := r.g.Row(item.v)
		for k, v = range cols {
			if r.done[v] {
				continue
			}
			newDist = item.dist + ws[k]
			if newDist >= r.out.Dist[v] {
				continue
			}
			r.out.Dist[v] = newDist
			r.out.Nearest[v] = r.out.Nearest[item.v]
			r.out.Pred[v] = item.v
			r.push(v, newDist)
		}
	}
}

func (r *dijkstraRunner) push(v int, d float64) {
	heap.Push(&r.pq, vertexItem{v: v, dist: d, seq: r.seq})
	r.seq++
}

// vertexItem is a heap entry.
type vertexItem struct {
	v    int
	dist float64
	seq  int
}

// vertexPQ is a min-heap on (dist, seq).
type vertexPQ []vertexItem

func (pq vertexPQ) Len() int { return len(pq) }

func (pq vertexPQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].seq < pq[j].seq
}

func (pq vertexPQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *vertexPQ) Push(x any) { *pq = append(*pq, x.(vertexItem)) }

func (pq *vertexPQ) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
