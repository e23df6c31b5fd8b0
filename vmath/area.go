package vmath

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Bounds returns the smallest box holding all points, zero box for no points
func Bounds(points []r2.Vec) r2.Box {
	if len(points) == 0 {
		return r2.Box{}
	}
	b := r2.Box{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		b.Min.X = math.Min(b.Min.X, p.X)
		b.Min.Y = math.Min(b.Min.Y, p.Y)
		b.Max.X = math.Max(b.Max.X, p.X)
		b.Max.Y = math.Max(b.Max.Y, p.Y)
	}
	return b
}

// BoxContains checks if point is within the closed box widened by a relative tolerance
// Slack per axis is tol * max(extent, |min|, |max|), so degenerate boxes of coincident
// points still admit values that differ only by rounding
func BoxContains(b r2.Box, p r2.Vec, tol float64) bool {
	sx := tol * math.Max(b.Max.X-b.Min.X, math.Max(math.Abs(b.Min.X), math.Abs(b.Max.X)))
	sy := tol * math.Max(b.Max.Y-b.Min.Y, math.Max(math.Abs(b.Min.Y), math.Abs(b.Max.Y)))
	return p.X >= b.Min.X-sx && p.X <= b.Max.X+sx &&
		p.Y >= b.Min.Y-sy && p.Y <= b.Max.Y+sy
}
