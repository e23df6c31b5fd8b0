package main

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r2"
)

// cellAspect is the height/width ratio of a terminal cell
const cellAspect = 2.0

// Zoom bounds in meters per column
const (
	minScale = 1e6
	maxScale = 1e14
)

// view maps frame-relative simulation meters to screen cells
// The bottom row is reserved for the status line
type view struct {
	width, height int
	scale         float64 // meters per column
}

// newView fits a circle of the given radius into the screen
func newView(width, height int, radius float64) view {
	v := view{width: width, height: height}
	v.fit(radius)
	return v
}

func (v *view) fit(radius float64) {
	cx, cy := v.center()
	half := math.Min(cx-1, (cy-1)*cellAspect)
	if half < 1 {
		half = 1
	}
	v.scale = clampScale(radius / half)
}

func (v *view) resize(width, height int) {
	// Keep the same horizontal extent
	extent := v.scale * float64(v.width)
	v.width, v.height = width, height
	if width > 0 {
		v.scale = clampScale(extent / float64(width))
	}
}

// zoom multiplies the scale; factor < 1 zooms in
func (v *view) zoom(factor float64) {
	v.scale = clampScale(v.scale * factor)
}

func clampScale(s float64) float64 {
	return math.Max(minScale, math.Min(maxScale, s))
}

func (v view) center() (float64, float64) {
	return float64(v.width / 2), float64((v.height - 1) / 2)
}

// toScreen returns the cell of a frame-relative position; ok is false off screen
func (v view) toScreen(p r2.Vec) (x, y int, ok bool) {
	cx, cy := v.center()
	fx := cx + p.X/v.scale
	fy := cy - p.Y/(v.scale*cellAspect)
	if math.IsNaN(fx) || math.IsNaN(fy) {
		return 0, 0, false
	}
	x, y = int(math.Round(fx)), int(math.Round(fy))
	return x, y, x >= 0 && x < v.width && y >= 0 && y < v.height-1
}

// toSim returns the frame-relative position at the centre of a cell
func (v view) toSim(x, y int) r2.Vec {
	cx, cy := v.center()
	return r2.Vec{
		X: (float64(x) - cx) * v.scale,
		Y: (cy - float64(y)) * v.scale * cellAspect,
	}
}

// glyph picks a symbol by mass class
func glyph(mass float64) rune {
	switch {
	case mass >= 1e29:
		return '@'
	case mass >= 1e26:
		return 'O'
	case mass >= 1e23:
		return 'o'
	default:
		return '.'
	}
}

// tcellColour converts a body colour to a terminal colour
func tcellColour(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
