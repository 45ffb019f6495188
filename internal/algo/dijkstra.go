// Package algo implements the routing engine: single-source Dijkstra over a
// graph.Graph, path reconstruction, nearest-facility selection and the
// out-and-back trip used for ambulance dispatch.
//
// Every call owns its distance table, predecessor table and heap, so any
// number of searches may read the same graph concurrently as long as nobody
// mutates it meanwhile.
package algo

import (
	"container/heap"
	"context"
	"fmt"

	"github.com/atharv3903/ambroute/internal/graph"
)

type pqItem[K comparable, W graph.Weight] struct {
	node K
	dist W
}

type pq[K comparable, W graph.Weight] []pqItem[K, W]

func (p pq[K, W]) Len() int           { return len(p) }
func (p pq[K, W]) Less(i, j int) bool { return p[i].dist < p[j].dist }
func (p pq[K, W]) Swap(i, j int)      { p[i], p[j] = p[j], p[i] }

func (p *pq[K, W]) Push(x any) {
	*p = append(*p, x.(pqItem[K, W]))
}

func (p *pq[K, W]) Pop() any {
	old := *p
	n := len(old)
	item := old[n-1]
	*p = old[:n-1]
	return item
}

// Tree is the result of a single-source search.
type Tree[K comparable, W graph.Weight] struct {
	Origin K
	// Dist holds the shortest distance to every node of the graph;
	// unreachable nodes hold graph.Infinity.
	Dist map[K]W
	// Prev maps each reached node other than Origin to its predecessor on
	// one shortest path. A missing key means "no predecessor".
	Prev map[K]K
	// Explored counts settled nodes.
	Explored int
}

// Reachable reports whether n was reached from the origin.
func (t *Tree[K, W]) Reachable(n K) bool {
	d, ok := t.Dist[n]
	return ok && d != graph.Infinity[W]()
}

// ShortestPathsFrom runs Dijkstra from origin over g.
//
// The heap has no decrease-key: improved distances are pushed again and
// popped entries whose distance exceeds the recorded one are skipped.
// Among entries with equal distance the pop order is unspecified.
func ShortestPathsFrom[K comparable, W graph.Weight](ctx context.Context, g *graph.Graph[K, W], origin K) (*Tree[K, W], error) {
	if !g.HasNode(origin) {
		return nil, fmt.Errorf("%w: origin %v", graph.ErrUnknownNode, origin)
	}

	inf := graph.Infinity[W]()
	nodes := g.Nodes()
	t := &Tree[K, W]{
		Origin: origin,
		Dist:   make(map[K]W, len(nodes)),
		Prev:   make(map[K]K, len(nodes)),
	}
	for _, n := range nodes {
		t.Dist[n] = inf
	}
	t.Dist[origin] = 0

	q := &pq[K, W]{}
	heap.Push(q, pqItem[K, W]{node: origin, dist: 0})

	for q.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		cur := heap.Pop(q).(pqItem[K, W])
		u := cur.node
		if cur.dist > t.Dist[u] {
			continue // stale
		}
		t.Explored++

		arcs, err := g.Neighbors(u)
		if err != nil {
			return nil, err
		}
		for _, a := range arcs {
			// saturate: a sum past Infinity would wrap for integer weights
			if a.Weight > inf-cur.dist {
				continue
			}
			nd := cur.dist + a.Weight
			if nd < t.Dist[a.To] {
				t.Dist[a.To] = nd
				t.Prev[a.To] = u
				heap.Push(q, pqItem[K, W]{node: a.To, dist: nd})
			}
		}
	}

	return t, nil
}
