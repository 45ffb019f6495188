package graph

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Weight is the set of numeric types usable as edge costs.
type Weight interface {
	constraints.Integer | constraints.Float
}

// Infinity returns the distance assigned to nodes that cannot be reached:
// +Inf for floating point weights and the largest representable value for
// integer weights.
func Infinity[W Weight]() W {
	half := 0.5
	if W(half) != 0 {
		return W(math.Inf(1))
	}
	// integer: keep doubling until the next step would overflow or wrap.
	x := W(1)
	for {
		next := x*2 + 1
		if next <= x {
			return x
		}
		x = next
	}
}

func validWeight[W Weight](w W) bool {
	if w < 0 || math.IsNaN(float64(w)) {
		return false
	}
	return w != Infinity[W]()
}
