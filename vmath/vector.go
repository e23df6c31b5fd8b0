package vmath

import "gonum.org/v1/gonum/spatial/r2"

// Normalize returns unit vector, zero-safe
func Normalize(v r2.Vec) r2.Vec {
	n := r2.Norm(v)
	if n == 0 {
		return r2.Vec{}
	}
	return r2.Scale(1/n, v)
}

// Perpendicular returns vector rotated 90° counter-clockwise
func Perpendicular(v r2.Vec) r2.Vec {
	return r2.Vec{X: -v.Y, Y: v.X}
}

// Distance returns |a - b|
func Distance(a, b r2.Vec) float64 {
	return r2.Norm(r2.Sub(a, b))
}
