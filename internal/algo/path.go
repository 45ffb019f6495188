package algo

import (
	"errors"
	"fmt"

	"github.com/atharv3903/ambroute/internal/graph"
)

var (
	// ErrUnreachable is returned when a destination has no path from the origin.
	ErrUnreachable = errors.New("algo: destination unreachable")

	// ErrNotAdjacent is returned by PathCost when two consecutive nodes share no edge.
	ErrNotAdjacent = errors.New("algo: consecutive path nodes are not adjacent")
)

// ReconstructPath follows prev backwards from dest and returns the path from
// the search origin to dest, both inclusive.
//
// A destination that was never reached has no predecessor, exactly like the
// origin itself, so the result is then just [dest]. Check Tree.Reachable
// first, or use Tree.PathTo.
func ReconstructPath[K comparable](prev map[K]K, dest K) []K {
	path := []K{dest}
	cur := dest
	for {
		p, ok := prev[cur]
		if !ok {
			break
		}
		path = append(path, p)
		cur = p
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// PathTo returns the shortest path from the tree's origin to dest.
func (t *Tree[K, W]) PathTo(dest K) ([]K, error) {
	if _, ok := t.Dist[dest]; !ok {
		return nil, fmt.Errorf("%w: %v", graph.ErrUnknownNode, dest)
	}
	if !t.Reachable(dest) {
		return nil, fmt.Errorf("%w: %v from %v", ErrUnreachable, dest, t.Origin)
	}
	return ReconstructPath(t.Prev, dest), nil
}

// PathCost sums the edge weights along path, taking the cheapest of any
// parallel edges between consecutive nodes.
func PathCost[K comparable, W graph.Weight](g *graph.Graph[K, W], path []K) (W, error) {
	var total W
	for i := 1; i < len(path); i++ {
		w, ok := g.Weight(path[i-1], path[i])
		if !ok {
			return 0, fmt.Errorf("%w: %v and %v", ErrNotAdjacent, path[i-1], path[i])
		}
		total += w
	}
	return total, nil
}
