// Package body defines the point-mass entity simulated by the engine.
//
// A Body's identity, mass, density, radius and colour are fixed at construction.
// Position and velocity are plain exported fields mutated in place by the integrator.
// Bodies never change mass: a merge destroys its constituents and builds a new Body.
package body

import (
	"errors"
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/orbit/vmath"
)

// Physical bounds enforced at construction
const (
	// MassCap is the largest storable mass, larger inputs are clamped
	MassCap = 1e32

	// SpeedLimit bounds each velocity component (sub-light sanity check)
	SpeedLimit = 2e8

	// DefaultDensity is used when a Spec leaves density unset (kg/m³)
	DefaultDensity = 1000
)

// ErrAssertion marks construction inputs that violate a hard invariant
var ErrAssertion = errors.New("body assertion violated")

// ID identifies a body for the lifetime of a simulation session
type ID uint64

// Spec carries the construction parameters of a body
type Spec struct {
	Mass     float64
	Position r2.Vec
	Velocity r2.Vec
	Colour   colorful.Color
	Density  float64
}

// Body is a point mass with derived spherical radius
type Body struct {
	id      ID
	mass    float64
	density float64
	radius  float64
	colour  colorful.Color

	Position r2.Vec
	Velocity r2.Vec
}

// Check validates a spec without building a body
// Mass above MassCap is not an error, it is clamped by construction
func Check(s Spec) error {
	if !vmath.Finite(s.Mass) || s.Mass <= 0 {
		return fmt.Errorf("%w: mass must be positive and finite, got %g", ErrAssertion, s.Mass)
	}
	if !vmath.Finite(s.Density) || s.Density < 0 {
		return fmt.Errorf("%w: density must be positive and finite, got %g", ErrAssertion, s.Density)
	}
	if !vmath.FiniteVec(s.Position) {
		return fmt.Errorf("%w: position must be finite, got %v", ErrAssertion, s.Position)
	}
	if !vmath.FiniteVec(s.Velocity) {
		return fmt.Errorf("%w: velocity must be finite, got %v", ErrAssertion, s.Velocity)
	}
	if math.Abs(s.Velocity.X) >= SpeedLimit || math.Abs(s.Velocity.Y) >= SpeedLimit {
		return fmt.Errorf("%w: velocity component exceeds %g m/s, got %v", ErrAssertion, float64(SpeedLimit), s.Velocity)
	}
	return nil
}

// Radius returns the radius of a homogeneous sphere of the given mass and density
func Radius(mass, density float64) float64 {
	return math.Cbrt(3 * mass / (4 * math.Pi * density))
}

func build(id ID, s Spec) (*Body, error) {
	if err := Check(s); err != nil {
		return nil, err
	}
	density := s.Density
	if density == 0 {
		density = DefaultDensity
	}
	mass := math.Min(s.Mass, MassCap)

	return &Body{
		id:       id,
		mass:     mass,
		density:  density,
		radius:   Radius(mass, density),
		colour:   s.Colour,
		Position: s.Position,
		Velocity: s.Velocity,
	}, nil
}

// ID returns the session-unique identifier
func (b *Body) ID() ID { return b.id }

// Mass returns the (clamped) mass in kg
func (b *Body) Mass() float64 { return b.mass }

// Density returns the density in kg/m³
func (b *Body) Density() float64 { return b.density }

// Radius returns the radius derived at construction
func (b *Body) Radius() float64 { return b.radius }

// Colour returns the display tag supplied at construction
func (b *Body) Colour() colorful.Color { return b.colour }

// Momentum returns mass * velocity
func (b *Body) Momentum() r2.Vec {
	return r2.Scale(b.mass, b.Velocity)
}

// Speed returns |velocity|
func (b *Body) Speed() float64 {
	return r2.Norm(b.Velocity)
}

// View returns a detached copy of the body's observable state
func (b *Body) View() View {
	return View{
		ID:       b.id,
		Position: b.Position,
		Velocity: b.Velocity,
		Mass:     b.mass,
		Density:  b.density,
		Radius:   b.radius,
		Colour:   b.colour,
	}
}

func (b *Body) String() string {
	return fmt.Sprintf("body#%d(m=%.3g r=%.3g p=(%.3g,%.3g) v=(%.3g,%.3g))",
		b.id, b.mass, b.radius, b.Position.X, b.Position.Y, b.Velocity.X, b.Velocity.Y)
}

// View is an immutable snapshot of one body handed to render and camera collaborators
type View struct {
	ID       ID
	Position r2.Vec
	Velocity r2.Vec
	Mass     float64
	Density  float64
	Radius   float64
	Colour   colorful.Color
}
