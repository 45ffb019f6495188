package scenario

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrNotFound is returned when no scenario exists under the requested name.
var ErrNotFound = errors.New("scenario: not found")

// Registry is an in-memory set of scenarios keyed by name.
type Registry struct {
	mu sync.RWMutex
	m  map[string]Scenario
}

func NewRegistry(scenarios ...Scenario) (*Registry, error) {
	r := &Registry{m: make(map[string]Scenario, len(scenarios))}
	for _, s := range scenarios {
		if err := r.Add(s); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Add validates s and stores it, replacing any scenario with the same name.
func (r *Registry) Add(s Scenario) error {
	if err := s.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	r.m[s.Name] = s
	r.mu.Unlock()
	return nil
}

func (r *Registry) ListScenarios(context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.m))
	for n := range r.m {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

func (r *Registry) LoadScenario(_ context.Context, name string) (Scenario, error) {
	r.mu.RLock()
	s, ok := r.m[name]
	r.mu.RUnlock()
	if !ok {
		return Scenario{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return s, nil
}
