package parameter

import "github.com/lucasb-eyer/go-colorful"

// RGB builds a colour from 8-bit channels
func RGB(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// ThrowPalette is the set of colours a thrown body is drawn from
var ThrowPalette = []colorful.Color{
	RGB(255, 70, 110),
	RGB(50, 100, 255),
	RGB(255, 255, 200),
}

// SpaceColour is the background of the terminal view
var SpaceColour = RGB(0, 0, 10)

// DefaultBodyColour is used when a seed body has no colour
var DefaultBodyColour = RGB(255, 255, 255)
