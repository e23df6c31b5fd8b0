package physics

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/orbit/body"
)

// Integrate performs physics integration: v = v + a*dt; p = p + v*dt
// Position uses the updated velocity (semi-implicit Euler)
// Bodies without a field entry see zero acceleration
func Integrate(bodies []*body.Body, field Field, dt float64) {
	for _, b := range bodies {
		a := field[b.ID()]
		b.Velocity = r2.Add(b.Velocity, r2.Scale(dt, a))
		b.Position = r2.Add(b.Position, r2.Scale(dt, b.Velocity))
	}
}

// TotalMass returns the summed mass of a body set
func TotalMass(bodies []*body.Body) float64 {
	var m float64
	for _, b := range bodies {
		m += b.Mass()
	}
	return m
}

// TotalMomentum returns the summed momentum of a body set
func TotalMomentum(bodies []*body.Body) r2.Vec {
	var p r2.Vec
	for _, b := range bodies {
		p = r2.Add(p, b.Momentum())
	}
	return p
}
