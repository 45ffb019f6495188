package scenario

import (
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"
)

type file struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// Parse decodes a YAML document holding a list of scenarios and validates
// each of them.
func Parse(data []byte) ([]Scenario, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("scenario: decode: %w", err)
	}
	for _, s := range f.Scenarios {
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}
	return f.Scenarios, nil
}

func Load(path string) ([]Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Marshal encodes scenarios in the format read by Parse.
func Marshal(scenarios []Scenario) ([]byte, error) {
	return yaml.Marshal(file{Scenarios: scenarios})
}

// RandomizeMinutes returns a copy of s where every road takes a uniformly
// random number of minutes in [lo, hi]. The range must be non-empty and
// non-negative.
func RandomizeMinutes(s Scenario, rng *rand.Rand, lo, hi int64) (Scenario, error) {
	if lo < 0 || hi < lo {
		return Scenario{}, fmt.Errorf("%w: minutes range [%d, %d]", ErrInvalidScenario, lo, hi)
	}
	out := s
	out.Places = append([]Place(nil), s.Places...)
	out.Roads = make([]Road, len(s.Roads))
	for i, r := range s.Roads {
		r.Minutes = lo + rng.Int63n(hi-lo+1)
		out.Roads[i] = r
	}
	return out, nil
}
