// Package scenario provides ready-made seed sets for a simulation session
package scenario

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/orbit/body"
	"github.com/lixenwraith/orbit/parameter"
	"github.com/lixenwraith/orbit/vmath"
)

// Names of the built-in scenarios
const (
	Solar  = "solar"
	Binary = "binary"
	Empty  = "empty"
)

// Earth's mean orbital speed, the reference for the other circular speeds
const earthSpeed = 29789.0

func circular(au float64) float64 {
	return earthSpeed * math.Sqrt(1/au)
}

// SolarSystem returns the Sun and the eight planets on the +x/-x axis with circular
// tangential velocities; the Sun is first
func SolarSystem() []body.Spec {
	au := parameter.AU
	return []body.Spec{
		{Mass: 1.989e30, Position: r2.Vec{}, Velocity: r2.Vec{}, Colour: parameter.RGB(255, 255, 250), Density: 1408},
		{Mass: 3.285e23, Position: r2.Vec{X: 0.378 * au}, Velocity: r2.Vec{Y: circular(0.378)}, Colour: parameter.RGB(200, 180, 0), Density: 5429},
		{Mass: 4.867e24, Position: r2.Vec{X: 0.72 * au}, Velocity: r2.Vec{Y: circular(0.72)}, Colour: parameter.RGB(200, 180, 0), Density: 5243},
		{Mass: 5.972e24, Position: r2.Vec{X: au}, Velocity: r2.Vec{Y: earthSpeed}, Colour: parameter.RGB(80, 180, 255), Density: 5514},
		{Mass: 6.39e23, Position: r2.Vec{X: 1.5 * au}, Velocity: r2.Vec{Y: circular(1.5)}, Colour: parameter.RGB(200, 100, 50), Density: 3934},
		{Mass: 1.898e27, Position: r2.Vec{X: -5.2 * au}, Velocity: r2.Vec{Y: -circular(5.2)}, Colour: parameter.RGB(200, 150, 100), Density: 1326},
		{Mass: 5.972e24, Position: r2.Vec{X: 9.5 * au}, Velocity: r2.Vec{Y: circular(9.5)}, Colour: parameter.RGB(150, 150, 70), Density: 687},
		{Mass: 8.681e25, Position: r2.Vec{X: 19 * au}, Velocity: r2.Vec{Y: circular(19)}, Colour: parameter.RGB(0, 100, 150), Density: 1270},
		{Mass: 1.024e26, Position: r2.Vec{X: 30 * au}, Velocity: r2.Vec{Y: -circular(30)}, Colour: parameter.RGB(0, 100, 255), Density: 1638},
	}
}

// BinaryPair returns a heavy primary at rest at the origin and a light secondary at
// distance sep on +x, moving counter-clockwise at circular-orbit speed
func BinaryPair(primary, secondary, sep, g float64) []body.Spec {
	rel := r2.Vec{X: sep}
	return []body.Spec{
		{Mass: primary, Colour: parameter.RGB(255, 255, 250), Density: 1408},
		{
			Mass:     secondary,
			Position: rel,
			Velocity: vmath.OrbitalInsert(rel, g*(primary+secondary), false),
			Colour:   parameter.RGB(80, 180, 255),
			Density:  5514,
		},
	}
}

// Lookup returns the seed set of a built-in scenario
func Lookup(name string) ([]body.Spec, error) {
	switch name {
	case Solar, "":
		return SolarSystem(), nil
	case Binary:
		return BinaryPair(1e30, 1e24, parameter.AU, parameter.G), nil
	case Empty:
		return nil, nil
	}
	return nil, fmt.Errorf("unknown scenario %q (known: %v)", name, Names())
}

// Names lists the built-in scenarios
func Names() []string {
	names := []string{Solar, Binary, Empty}
	sort.Strings(names)
	return names
}
