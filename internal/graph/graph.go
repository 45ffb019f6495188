// Package graph holds the undirected, weighted road graph searched by the
// routing engine. Nodes are opaque comparable keys; edges carry a
// non-negative travel cost.
//
// A Graph is safe for concurrent use, but callers are expected to finish
// building it before searches begin: a search reads adjacency lists without
// holding the lock for its whole duration.
package graph

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrUnknownNode is returned when an operation references a node that
	// was never added with AddNode.
	ErrUnknownNode = errors.New("graph: unknown node")

	// ErrInvalidWeight is returned by AddEdge for negative, NaN or infinite weights.
	ErrInvalidWeight = errors.New("graph: invalid edge weight")
)

// Arc is one entry of a node's adjacency list.
type Arc[K comparable, W Weight] struct {
	To     K
	Weight W
}

// Edge is an undirected edge as it was added.
type Edge[K comparable, W Weight] struct {
	U, V   K
	Weight W
}

// Graph is an undirected multigraph keyed by K with edge costs of type W.
type Graph[K comparable, W Weight] struct {
	mu    sync.RWMutex
	adj   map[K][]Arc[K, W]
	order []K
	edges []Edge[K, W]
}

// New returns an empty graph.
func New[K comparable, W Weight]() *Graph[K, W] {
	return &Graph[K, W]{adj: make(map[K][]Arc[K, W])}
}

// AddNode registers id with an empty neighbor list. Adding an existing node
// is a no-op.
func (g *Graph[K, W]) AddNode(id K) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.adj[id]; ok {
		return
	}
	g.adj[id] = nil
	g.order = append(g.order, id)
}

// AddEdge connects u and v in both directions with weight w. Both nodes must
// already be registered; nodes are never created implicitly. A second edge
// between the same pair is kept as a parallel edge.
func (g *Graph[K, W]) AddEdge(u, v K, w W) error {
	if !validWeight(w) {
		return fmt.Errorf("%w: %v between %v and %v", ErrInvalidWeight, w, u, v)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.adj[u]; !ok {
		return fmt.Errorf("%w: %v", ErrUnknownNode, u)
	}
	if _, ok := g.adj[v]; !ok {
		return fmt.Errorf("%w: %v", ErrUnknownNode, v)
	}

	g.adj[u] = append(g.adj[u], Arc[K, W]{To: v, Weight: w})
	if u != v {
		g.adj[v] = append(g.adj[v], Arc[K, W]{To: u, Weight: w})
	}
	g.edges = append(g.edges, Edge[K, W]{U: u, V: v, Weight: w})
	return nil
}

// Neighbors returns u's adjacency list in insertion order. The slice belongs
// to the graph and must not be modified.
func (g *Graph[K, W]) Neighbors(u K) ([]Arc[K, W], error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	arcs, ok := g.adj[u]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownNode, u)
	}
	return arcs, nil
}

// HasNode reports whether id was added with AddNode.
func (g *Graph[K, W]) HasNode(id K) bool {
	g.mu.RLock()
	_, ok := g.adj[id]
	g.mu.RUnlock()
	return ok
}

// Len returns the number of registered nodes.
func (g *Graph[K, W]) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.order)
}

// Nodes returns every registered node in the order it was added.
func (g *Graph[K, W]) Nodes() []K {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]K, len(g.order))
	copy(out, g.order)
	return out
}

// Edges returns each undirected edge once, in the order it was added.
func (g *Graph[K, W]) Edges() []Edge[K, W] {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]Edge[K, W], len(g.edges))
	copy(out, g.edges)
	return out
}

// Weight returns the cheapest weight among the edges joining u and v, and
// false if they are not adjacent.
func (g *Graph[K, W]) Weight(u, v K) (W, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var best W
	found := false
	for _, a := range g.adj[u] {
		if a.To == v && (!found || a.Weight < best) {
			best = a.Weight
			found = true
		}
	}
	return best, found
}
