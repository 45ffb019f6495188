package algo

import (
	"context"
	"errors"
	"fmt"

	"github.com/atharv3903/ambroute/internal/graph"
)

// ErrNoReachableCandidate is returned by Nearest when the candidate list is
// empty or none of its members can be reached from the origin.
var ErrNoReachableCandidate = errors.New("algo: no reachable candidate")

// Result describes the winning candidate of a Nearest query.
type Result[K comparable, W graph.Weight] struct {
	Candidate K
	Distance  W
	Path      []K
	Explored  int
}

// Nearest runs one search from origin and returns the candidate with the
// smallest distance. Candidates are scanned in slice order and only a
// strictly smaller distance replaces the current best, so ties go to the
// earliest candidate.
func Nearest[K comparable, W graph.Weight](ctx context.Context, g *graph.Graph[K, W], origin K, candidates []K) (Result[K, W], error) {
	var res Result[K, W]
	if len(candidates) == 0 {
		return res, fmt.Errorf("%w: empty candidate list", ErrNoReachableCandidate)
	}

	t, err := ShortestPathsFrom(ctx, g, origin)
	if err != nil {
		return res, err
	}
	res.Explored = t.Explored

	best := graph.Infinity[W]()
	found := false
	for _, c := range candidates {
		d, ok := t.Dist[c]
		if !ok {
			return res, fmt.Errorf("%w: candidate %v", graph.ErrUnknownNode, c)
		}
		if d < best {
			best = d
			res.Candidate = c
			found = true
		}
	}
	if !found {
		return res, fmt.Errorf("%w: %d candidates from %v", ErrNoReachableCandidate, len(candidates), origin)
	}

	res.Distance = best
	res.Path = ReconstructPath(t.Prev, res.Candidate)
	return res, nil
}
