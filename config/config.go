// Package config loads simulation settings from INI-style files
package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/gcfg.v1"

	"github.com/lixenwraith/orbit/body"
	"github.com/lixenwraith/orbit/engine"
	"github.com/lixenwraith/orbit/parameter"
	"github.com/lixenwraith/orbit/scenario"
	"github.com/lixenwraith/orbit/vmath"
)

const ExampleFile = `[Simulation]
# Simulated seconds per step before TimeLapse is applied, in (0, 10000].
TimeStep = 3000
# Fraction of TimeStep actually advanced each step, in [0, 1].
TimeLapse = 1
# Radius of the simulated domain in AU. Bodies far outside it are dropped.
DomainAU = 3

#######################
# Optional Parameters #
#######################

# Built-in seed set loaded before any [Body] section: solar, binary or empty.
# Scenario = solar

# Gravitational constant override.
# Gravity = 6.6743e-11

# Conservative merging: every cluster member contributes, the merged body is
# placed at the true centre of mass and rejected clusters are kept.
# Hardened = false

# Body the camera follows at startup, by [Body] name or seed index.
# Follow = 0

[Body "comet"]
# Mass in kg, position in AU, velocity in m/s.
Mass = 1e20
X = 2.5
Y = 0
VX = 0
VY = 15000

#######################
# Optional Parameters #
#######################

# Density in kg/m^3, defaults to 1000.
# Density = 500
# Colour as a hex triplet.
# Colour = "#a0c0ff"
# Replace VX/VY with a circular orbit around the first seed body.
# Orbit = true
# Clockwise = false
# Seeds are ordered by Order, then by name.
# Order = 0`

// SimulationConfig is the [Simulation] section
type SimulationConfig struct {
	TimeStep, TimeLapse, Gravity, DomainAU float64
	Hardened                               bool
	Scenario                               string
	Follow                                 string
}

// BodyConfig is one [Body "name"] section
type BodyConfig struct {
	// Required
	Mass float64
	X, Y float64

	// Optional
	VX, VY    float64
	Density   float64
	Colour    string
	Orbit     bool
	Clockwise bool
	Order     int

	Name string
}

// File mirrors the layout of a config file
type File struct {
	Simulation SimulationConfig
	Body       map[string]*BodyConfig
}

// Settings is a resolved config ready to build a world
type Settings struct {
	Engine engine.Config

	// Names holds the section name of each seed body, empty for scenario seeds
	Names []string

	Follow    body.ID
	Following bool
}

// DefaultFile returns the values used for variables a file leaves unset
func DefaultFile() *File {
	return &File{
		Simulation: SimulationConfig{
			TimeStep:  parameter.DefaultTimeStep,
			TimeLapse: parameter.DefaultTimeLapse,
			Gravity:   parameter.G,
			DomainAU:  parameter.DefaultDomainScale,
			Scenario:  scenario.Solar,
		},
	}
}

// Load reads and resolves a config file
func Load(path string) (*Settings, error) {
	f := DefaultFile()
	if err := gcfg.ReadFileInto(f, path); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return f.Settings()
}

// Parse reads and resolves config text
func Parse(text string) (*Settings, error) {
	f := DefaultFile()
	if err := gcfg.ReadStringInto(f, text); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return f.Settings()
}

// CheckInit validates a body section and records its name
func (b *BodyConfig) CheckInit(name string) error {
	if b.Mass <= 0 || !vmath.Finite(b.Mass) {
		return fmt.Errorf("Body '%s' needs a positive Mass, got %g", name, b.Mass)
	}
	if b.Density < 0 {
		return fmt.Errorf("Body '%s' given a negative Density, %g", name, b.Density)
	}
	if b.Colour != "" {
		if _, err := parseColour(b.Colour); err != nil {
			return fmt.Errorf("Body '%s' has invalid Colour %q: %w", name, b.Colour, err)
		}
	}
	b.Name = name
	return nil
}

// Spec converts the section to a body spec; primary is the body an Orbit is placed around
func (b *BodyConfig) Spec(primary *body.Spec, g float64) (body.Spec, error) {
	s := body.Spec{
		Mass:     b.Mass,
		Position: r2.Vec{X: b.X * parameter.AU, Y: b.Y * parameter.AU},
		Velocity: r2.Vec{X: b.VX, Y: b.VY},
		Colour:   parameter.DefaultBodyColour,
		Density:  b.Density,
	}
	if b.Colour != "" {
		c, err := parseColour(b.Colour)
		if err != nil {
			return body.Spec{}, err
		}
		s.Colour = c
	}

	if b.Orbit {
		if primary == nil {
			return body.Spec{}, fmt.Errorf("Body '%s' requests an orbit but there is no primary body", b.Name)
		}
		rel := r2.Sub(s.Position, primary.Position)
		if r2.Norm(rel) == 0 {
			return body.Spec{}, fmt.Errorf("Body '%s' sits on its primary, cannot orbit", b.Name)
		}
		s.Velocity = r2.Add(primary.Velocity, vmath.OrbitalInsert(rel, g*(primary.Mass+s.Mass), b.Clockwise))
	}

	return s, nil
}

// Settings validates the file and builds the seed set
func (f *File) Settings() (*Settings, error) {
	sim := f.Simulation

	cfg := engine.Config{
		TimeStep:     sim.TimeStep,
		TimeLapse:    sim.TimeLapse,
		G:            sim.Gravity,
		DomainRadius: sim.DomainAU * parameter.AU,
		Hardened:     sim.Hardened,
	}

	seed, err := scenario.Lookup(sim.Scenario)
	if err != nil {
		return nil, fmt.Errorf("Simulation: %w", err)
	}
	names := make([]string, len(seed))

	sections := make([]*BodyConfig, 0, len(f.Body))
	for name, b := range f.Body {
		if err := b.CheckInit(name); err != nil {
			return nil, err
		}
		sections = append(sections, b)
	}
	sort.Slice(sections, func(i, j int) bool {
		if sections[i].Order != sections[j].Order {
			return sections[i].Order < sections[j].Order
		}
		return sections[i].Name < sections[j].Name
	})

	for _, b := range sections {
		var primary *body.Spec
		if len(seed) > 0 {
			primary = &seed[0]
		}
		s, err := b.Spec(primary, cfg.G)
		if err != nil {
			return nil, err
		}
		seed = append(seed, s)
		names = append(names, b.Name)
	}
	cfg.Seed = seed

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	out := &Settings{Engine: cfg, Names: names}
	if sim.Follow != "" {
		id, err := resolveFollow(sim.Follow, names)
		if err != nil {
			return nil, err
		}
		out.Follow, out.Following = id, true
	}
	return out, nil
}

// resolveFollow maps a section name or seed index to the ID the seed will receive
func resolveFollow(follow string, names []string) (body.ID, error) {
	for i, n := range names {
		if n != "" && n == follow {
			return body.ID(i), nil
		}
	}
	i, err := strconv.Atoi(follow)
	if err != nil || i < 0 || i >= len(names) {
		return 0, fmt.Errorf("Follow %q names no seed body (have %d)", follow, len(names))
	}
	return body.ID(i), nil
}

// parseColour accepts a hex triplet with or without the leading '#'
func parseColour(s string) (colorful.Color, error) {
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	return colorful.Hex(s)
}
