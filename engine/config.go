package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/lixenwraith/orbit/body"
	"github.com/lixenwraith/orbit/parameter"
	"github.com/lixenwraith/orbit/vmath"
)

// ErrConfig marks an invalid simulation configuration
var ErrConfig = errors.New("invalid simulation config")

// Config is fixed at world construction
type Config struct {
	// TimeStep is simulated seconds per step before lapse, in (0, MaxTimeStep]
	TimeStep float64

	// TimeLapse scales TimeStep, in [0, 1]
	TimeLapse float64

	// G is the gravitational constant
	G float64

	// DomainRadius in meters; bodies whose locale exceeds 1.1*log10(DomainRadius) are pruned
	DomainRadius float64

	// Hardened switches the collision resolver to conservative merging
	Hardened bool

	// Seed is the initial body set, IDs are assigned in order starting at 0
	Seed []body.Spec
}

// DefaultConfig returns the standard constants with an empty seed
func DefaultConfig() Config {
	return Config{
		TimeStep:     parameter.DefaultTimeStep,
		TimeLapse:    parameter.DefaultTimeLapse,
		G:            parameter.G,
		DomainRadius: parameter.DefaultDomainRadius,
	}
}

// DT returns the fixed integration step in seconds
func (c Config) DT() float64 {
	return c.TimeStep * c.TimeLapse
}

// Validate checks every constant and seed body
func (c Config) Validate() error {
	if !vmath.Finite(c.TimeStep) || c.TimeStep <= 0 || c.TimeStep > parameter.MaxTimeStep {
		return fmt.Errorf("%w: time step must be in (0, %g], got %g", ErrConfig, parameter.MaxTimeStep, c.TimeStep)
	}
	if !vmath.Finite(c.TimeLapse) || c.TimeLapse < 0 || c.TimeLapse > 1 {
		return fmt.Errorf("%w: time lapse must be in [0, 1], got %g", ErrConfig, c.TimeLapse)
	}
	if !vmath.Finite(c.G) || c.G <= 0 {
		return fmt.Errorf("%w: gravitational constant must be positive, got %g", ErrConfig, c.G)
	}
	if !vmath.Finite(c.DomainRadius) || c.DomainRadius <= 1 {
		return fmt.Errorf("%w: domain radius must exceed 1 m, got %g", ErrConfig, c.DomainRadius)
	}
	for i, s := range c.Seed {
		if err := body.Check(s); err != nil {
			return fmt.Errorf("%w: seed body %d: %w", ErrConfig, i, err)
		}
	}
	if math.IsNaN(c.DT()) {
		return fmt.Errorf("%w: time step is not a number", ErrConfig)
	}
	return nil
}
