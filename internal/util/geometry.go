package util

import (
	"math"

	"github.com/aircanvas/aircanvas/core"
)

// Distance returns the Euclidean distance between two landmarks in normalized
// coordinate space.
func Distance(a, b core.Landmark) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Clamp01 clamps v into [0, 1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// IsFinite reports whether v is a usable number (not NaN, not an infinity).
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
