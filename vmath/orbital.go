package vmath

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// OrbitalVelocity returns tangential speed for a circular orbit
// gm: gravitational parameter G*(M+m)
// radius: orbital radius in meters
func OrbitalVelocity(gm, radius float64) float64 {
	if radius <= 0 || gm <= 0 {
		return 0
	}
	// v = sqrt(GM / r)
	return math.Sqrt(gm / radius)
}

// OrbitalInsert returns velocity vector for circular orbit insertion
// rel: position relative to the central body
// clockwise: orbit direction
func OrbitalInsert(rel r2.Vec, gm float64, clockwise bool) r2.Vec {
	radius := r2.Norm(rel)
	if radius == 0 {
		return r2.Vec{}
	}

	speed := OrbitalVelocity(gm, radius)

	// Tangent is perpendicular to radius
	t := Normalize(Perpendicular(rel))
	if clockwise {
		t = r2.Scale(-1, t)
	}

	return r2.Scale(speed, t)
}

// OrbitalPeriod returns the period of a circular orbit of the given radius
func OrbitalPeriod(gm, radius float64) float64 {
	if gm <= 0 {
		return math.Inf(1)
	}
	return 2 * math.Pi * math.Sqrt(radius*radius*radius/gm)
}
