// Package scenario describes road networks as plain data (places with a
// kind, roads with a travel time in minutes) and turns them into graphs the
// routing engine can search.
package scenario

import (
	"errors"
	"fmt"

	"github.com/atharv3903/ambroute/internal/graph"
)

// Kind classifies a place. Facilities are looked up by kind.
type Kind string

const (
	Hospital      Kind = "hospital"
	Police        Kind = "police"
	AmbulanceBase Kind = "ambulance_base"
	Square        Kind = "square"
	Street        Kind = "street"
)

func (k Kind) Valid() bool {
	switch k {
	case Hospital, Police, AmbulanceBase, Square, Street:
		return true
	}
	return false
}

var ErrInvalidScenario = errors.New("scenario: invalid")

type Place struct {
	ID   string `yaml:"id" json:"id"`
	Kind Kind   `yaml:"kind" json:"kind"`
}

type Road struct {
	ID      int64  `yaml:"id,omitempty" json:"id,omitempty"`
	From    string `yaml:"from" json:"from"`
	To      string `yaml:"to" json:"to"`
	Minutes int64  `yaml:"minutes" json:"minutes"`
}

type Scenario struct {
	Name   string  `yaml:"name" json:"name"`
	Places []Place `yaml:"places" json:"places"`
	Roads  []Road  `yaml:"roads" json:"roads"`
}

// Validate reports the first structural problem found in s.
func (s Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidScenario)
	}
	if len(s.Places) == 0 {
		return fmt.Errorf("%w: %s has no places", ErrInvalidScenario, s.Name)
	}

	seen := make(map[string]bool, len(s.Places))
	for _, p := range s.Places {
		if p.ID == "" {
			return fmt.Errorf("%w: %s has a place without id", ErrInvalidScenario, s.Name)
		}
		if seen[p.ID] {
			return fmt.Errorf("%w: duplicate place %q", ErrInvalidScenario, p.ID)
		}
		if !p.Kind.Valid() {
			return fmt.Errorf("%w: place %q has unknown kind %q", ErrInvalidScenario, p.ID, p.Kind)
		}
		seen[p.ID] = true
	}
	for _, r := range s.Roads {
		if !seen[r.From] || !seen[r.To] {
			return fmt.Errorf("%w: road %q-%q references an unknown place", ErrInvalidScenario, r.From, r.To)
		}
		if r.Minutes < 0 {
			return fmt.Errorf("%w: road %q-%q has negative minutes", ErrInvalidScenario, r.From, r.To)
		}
	}
	return nil
}

// Build validates s and returns its road graph, weighted in minutes.
func (s Scenario) Build() (*graph.Graph[string, int64], error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	g := graph.New[string, int64]()
	for _, p := range s.Places {
		g.AddNode(p.ID)
	}
	for _, r := range s.Roads {
		if err := g.AddEdge(r.From, r.To, r.Minutes); err != nil {
			return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
		}
	}
	return g, nil
}

// Facilities returns the ids of every place of the given kind, in
// declaration order.
func (s Scenario) Facilities(kind Kind) []string {
	var out []string
	for _, p := range s.Places {
		if p.Kind == kind {
			out = append(out, p.ID)
		}
	}
	return out
}

// KindOf returns the kind of place id.
func (s Scenario) KindOf(id string) (Kind, bool) {
	for _, p := range s.Places {
		if p.ID == id {
			return p.Kind, true
		}
	}
	return "", false
}
