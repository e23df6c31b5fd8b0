// Package vmath holds the small float64 vector helpers shared by the physics and engine
// packages. Vectors are gonum r2.Vec values.
package vmath

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Finite reports whether x is neither NaN nor ±Inf
func Finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// FiniteVec reports whether both components of v are finite
func FiniteVec(v r2.Vec) bool {
	return Finite(v.X) && Finite(v.Y)
}

// Sign returns -1, 0 or 1
func Sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// SignedLog10 returns sign(x) * round(log10|x|), rounding half to even
// Zero maps to zero
func SignedLog10(x float64) int {
	if x == 0 {
		return 0
	}
	return int(Sign(x) * math.RoundToEven(math.Log10(math.Abs(x))))
}

// --- Randomness ---

// FastRand is a xorshift64 generator, deterministic for a given seed
type FastRand struct {
	state uint64
}

func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 1
	}
	return &FastRand{state: seed}
}

func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Float64 returns a value in [0, 1) built from the top 53 bits
func (r *FastRand) Float64() float64 {
	return float64(r.Next()>>11) / (1 << 53)
}

// Range returns a value in [lo, hi), or lo when the range is empty
func (r *FastRand) Range(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.Float64()*(hi-lo)
}
