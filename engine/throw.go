package engine

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/orbit/body"
	"github.com/lixenwraith/orbit/parameter"
	"github.com/lixenwraith/orbit/vmath"
)

// ErrGestureTooShort rejects drags shorter than parameter.ThrowMinElapsed simulated seconds
var ErrGestureTooShort = errors.New("gesture too short")

// Gesture is a completed drag in simulation coordinates relative to the frame reference
type Gesture struct {
	Start   r2.Vec
	End     r2.Vec
	Elapsed float64 // simulated seconds between press and release
}

// Thrower turns gestures into body specs with randomized mass and colour
type Thrower struct {
	rng     *vmath.FastRand
	palette []colorful.Color
	massMin float64
	massMax float64
	density float64
}

// NewThrower builds a thrower with the standard palette and mass range
func NewThrower(seed uint64) *Thrower {
	return &Thrower{
		rng:     vmath.NewFastRand(seed),
		palette: parameter.ThrowPalette,
		massMin: parameter.ThrowMassMin,
		massMax: parameter.ThrowMassMax,
		density: parameter.ThrowDensity,
	}
}

// Spec converts a gesture to a body spec
// frame and frameVelocity are the followed body's state, zero when nothing is followed
func (t *Thrower) Spec(g Gesture, frame, frameVelocity r2.Vec) (body.Spec, error) {
	if !vmath.Finite(g.Elapsed) || g.Elapsed <= parameter.ThrowMinElapsed {
		return body.Spec{}, fmt.Errorf("%w: %g s", ErrGestureTooShort, g.Elapsed)
	}

	drag := r2.Scale(1/g.Elapsed, r2.Sub(g.End, g.Start))

	return body.Spec{
		Mass:     t.rng.Range(t.massMin, t.massMax),
		Position: r2.Add(g.End, frame),
		Velocity: r2.Add(drag, frameVelocity),
		Colour:   t.palette[t.rng.Intn(len(t.palette))],
		Density:  t.density,
	}, nil
}

// Throw injects the body described by a gesture in the current frame of reference
func (w *World) Throw(t *Thrower, g Gesture) (body.ID, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	var frame, frameVelocity r2.Vec
	if b := w.followedLocked(); b != nil {
		frame, frameVelocity = b.Position, b.Velocity
	}

	s, err := t.Spec(g, frame, frameVelocity)
	if err != nil {
		return 0, err
	}
	return w.injectLocked(s)
}
