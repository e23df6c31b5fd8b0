package vmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestSignedLog10(t *testing.T) {
	tests := []struct {
		x    float64
		want int
	}{
		{0, 0},
		{1, 0},
		{-1, 0},
		{1.496e11, 11},
		{-1.496e11, -11},
		{3.2e11, 12},
		{0.001, -3},
		{-0.001, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SignedLog10(tt.x), "x=%g", tt.x)
	}
}

func TestFinite(t *testing.T) {
	assert.True(t, Finite(1e300))
	assert.False(t, Finite(math.NaN()))
	assert.False(t, Finite(math.Inf(-1)))
	assert.False(t, FiniteVec(r2.Vec{X: 1, Y: math.Inf(1)}))
	assert.True(t, FiniteVec(r2.Vec{X: 1, Y: 2}))
}

func TestBoundsAndContains(t *testing.T) {
	b := Bounds([]r2.Vec{{X: 1, Y: 5}, {X: -2, Y: 3}, {X: 4, Y: -1}})
	assert.Equal(t, r2.Box{Min: r2.Vec{X: -2, Y: -1}, Max: r2.Vec{X: 4, Y: 5}}, b)

	assert.True(t, BoxContains(b, r2.Vec{X: 4, Y: 5}, 0))
	assert.False(t, BoxContains(b, r2.Vec{X: 4.1, Y: 5}, 0))
	assert.Equal(t, r2.Box{}, Bounds(nil))
}

func TestBoxContains_DegenerateBoxTolerance(t *testing.T) {
	p := r2.Vec{X: 1e9, Y: -3e8}
	b := Bounds([]r2.Vec{p, p})

	nudged := r2.Vec{X: math.Nextafter(p.X, math.Inf(1)), Y: p.Y}
	assert.False(t, BoxContains(b, nudged, 0))
	assert.True(t, BoxContains(b, nudged, 1e-9))
	assert.False(t, BoxContains(b, r2.Vec{X: p.X * 1.001, Y: p.Y}, 1e-9))
}

func TestOrbitalInsert(t *testing.T) {
	gm := 1.327e20
	rel := r2.Vec{X: 1.496e11}

	ccw := OrbitalInsert(rel, gm, false)
	assert.InDelta(t, 0, ccw.X, 1e-9)
	assert.InEpsilon(t, math.Sqrt(gm/rel.X), ccw.Y, 1e-12)

	cw := OrbitalInsert(rel, gm, true)
	assert.InEpsilon(t, -ccw.Y, cw.Y, 1e-12)

	assert.Equal(t, r2.Vec{}, OrbitalInsert(r2.Vec{}, gm, false))
	assert.Zero(t, OrbitalVelocity(gm, 0))
}

func TestOrbitalPeriod(t *testing.T) {
	// Earth around the Sun, about one year
	year := OrbitalPeriod(1.327e20, 1.496e11)
	assert.InEpsilon(t, 365.25*24*3600, year, 0.01)
	assert.True(t, math.IsInf(OrbitalPeriod(0, 1), 1))
}

func TestFastRand(t *testing.T) {
	a, b := NewFastRand(9), NewFastRand(9)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Next(), b.Next())
	}

	r := NewFastRand(0)
	for i := 0; i < 1000; i++ {
		f := r.Float64()
		assert.GreaterOrEqual(t, f, 0.0)
		assert.Less(t, f, 1.0)

		v := r.Range(1e29, 1e30)
		assert.GreaterOrEqual(t, v, 1e29)
		assert.Less(t, v, 1e30)

		n := r.Intn(3)
		assert.GreaterOrEqual(t, n, 0)
		assert.Less(t, n, 3)
	}
	assert.Equal(t, 5.0, r.Range(5, 5))
	assert.Zero(t, r.Intn(0))
}
