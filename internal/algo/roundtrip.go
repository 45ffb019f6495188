package algo

import (
	"context"
	"errors"
	"fmt"

	"github.com/atharv3903/ambroute/internal/graph"
)

// ErrSameEndpoints is returned by RoundTrip when base and incident coincide.
var ErrSameEndpoints = errors.New("algo: base and incident must differ")

// Leg is one direction of a trip.
type Leg[K comparable, W graph.Weight] struct {
	Path []K
	Cost W
}

// Trip is a base -> incident -> base journey.
type Trip[K comparable, W graph.Weight] struct {
	Out   Leg[K, W]
	Back  Leg[K, W]
	Total W
	// Path is Out.Path followed by Back.Path without the repeated incident.
	Path []K
}

// RoundTrip plans the journey from base to incident and back. Each leg is an
// independent search; on an undirected graph both legs cost the same but may
// take different routes when several shortest paths exist.
func RoundTrip[K comparable, W graph.Weight](ctx context.Context, g *graph.Graph[K, W], base, incident K) (Trip[K, W], error) {
	var trip Trip[K, W]
	if base == incident {
		return trip, fmt.Errorf("%w: %v", ErrSameEndpoints, base)
	}

	out, err := leg(ctx, g, base, incident)
	if err != nil {
		return trip, err
	}
	back, err := leg(ctx, g, incident, base)
	if err != nil {
		return trip, err
	}

	trip.Out = out
	trip.Back = back
	trip.Total = out.Cost + back.Cost
	trip.Path = make([]K, 0, len(out.Path)+len(back.Path)-1)
	trip.Path = append(trip.Path, out.Path...)
	trip.Path = append(trip.Path, back.Path[1:]...)
	return trip, nil
}

func leg[K comparable, W graph.Weight](ctx context.Context, g *graph.Graph[K, W], from, to K) (Leg[K, W], error) {
	t, err := ShortestPathsFrom(ctx, g, from)
	if err != nil {
		return Leg[K, W]{}, err
	}
	path, err := t.PathTo(to)
	if err != nil {
		return Leg[K, W]{}, err
	}
	return Leg[K, W]{Path: path, Cost: t.Dist[to]}, nil
}
