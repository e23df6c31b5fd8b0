// Package parameter holds the physical constants and tunable defaults of the simulation
package parameter

// Physical constants
const (
	// G is Newton's gravitational constant (m³ kg⁻¹ s⁻²)
	G = 6.67430e-11

	// AU is the mean Earth-Sun distance in meters
	AU = 1.496e11

	// Year is a calendar year in seconds, used for elapsed-time display
	Year = 365 * 24 * 3600
)

// Integration
const (
	// DefaultTimeStep is the simulated seconds advanced per step before time lapse
	DefaultTimeStep = 3000.0

	// MaxTimeStep bounds the configurable time step
	MaxTimeStep = 1e4

	// DefaultTimeLapse scales the time step, valid range [0, 1]
	DefaultTimeLapse = 1.0
)

// Domain
const (
	// DefaultDomainScale is the domain radius in AU used for pruning
	// Bodies whose locale exceeds 1.1*log10(radius) are dropped, roughly 21 AU for 3 AU
	DefaultDomainScale = 3.0

	// DefaultDomainRadius is DefaultDomainScale in meters
	DefaultDomainRadius = DefaultDomainScale * AU
)

// Thrown bodies
const (
	// ThrowMinElapsed is the shortest drag, in simulated seconds, that creates a body
	ThrowMinElapsed = 1000.0

	// ThrowMassMin and ThrowMassMax bound the uniformly drawn mass of a thrown body
	ThrowMassMin = 1e29
	ThrowMassMax = 1e30

	// ThrowDensity is the density of a thrown body (kg/m³)
	ThrowDensity = 1400.0
)
