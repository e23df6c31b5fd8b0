package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/orbit/body"
	"github.com/lixenwraith/orbit/engine"
	"github.com/lixenwraith/orbit/parameter"
	"github.com/lixenwraith/orbit/scenario"
	"github.com/lixenwraith/orbit/vmath"
)

func TestParse_ExampleFile(t *testing.T) {
	s, err := Parse(ExampleFile)
	require.NoError(t, err)

	solar := scenario.SolarSystem()
	require.Len(t, s.Engine.Seed, len(solar)+1)
	assert.Equal(t, "comet", s.Names[len(solar)])
	assert.Equal(t, r2.Vec{X: 2.5 * parameter.AU}, s.Engine.Seed[len(solar)].Position)
	assert.Equal(t, r2.Vec{Y: 15000}, s.Engine.Seed[len(solar)].Velocity)
	assert.False(t, s.Following)
	assert.NoError(t, s.Engine.Validate())
}

func TestParse_Defaults(t *testing.T) {
	s, err := Parse("[Simulation]\nScenario = empty\n")
	require.NoError(t, err)

	assert.Equal(t, parameter.DefaultTimeStep, s.Engine.TimeStep)
	assert.Equal(t, parameter.DefaultTimeLapse, s.Engine.TimeLapse)
	assert.Equal(t, parameter.G, s.Engine.G)
	assert.Equal(t, parameter.DefaultDomainRadius, s.Engine.DomainRadius)
	assert.False(t, s.Engine.Hardened)
	assert.Empty(t, s.Engine.Seed)
}

func TestParse_BodiesOrderedAndFollowed(t *testing.T) {
	text := `
[Simulation]
Scenario = empty
Hardened = true
Follow = moon

[Body "moon"]
Mass = 7e22
X = 1.0026
Order = 2
Orbit = true

[Body "earth"]
Mass = 6e24
X = 1
VY = 29789
Order = 1
Colour = "#3080ff"

[Body "star"]
Mass = 2e30
Density = 1400
`
	s, err := Parse(text)
	require.NoError(t, err)

	assert.True(t, s.Engine.Hardened)
	assert.Equal(t, []string{"star", "earth", "moon"}, s.Names)
	assert.True(t, s.Following)
	assert.Equal(t, body.ID(2), s.Follow)

	star, earth, moon := s.Engine.Seed[0], s.Engine.Seed[1], s.Engine.Seed[2]
	assert.Equal(t, 1400.0, star.Density)
	assert.Equal(t, parameter.DefaultBodyColour, star.Colour)
	assert.InDelta(t, 0x30/255.0, earth.Colour.R, 1e-9)

	// Orbit is around the first seed body, not the nearest
	want := vmath.OrbitalVelocity(parameter.G*(star.Mass+moon.Mass), 1.0026*parameter.AU)
	assert.InEpsilon(t, want, moon.Velocity.Y, 1e-9)
	assert.InDelta(t, 0, moon.Velocity.X, 1e-9)
}

func TestParse_OrbitAddsPrimaryVelocity(t *testing.T) {
	text := `
[Simulation]
Scenario = empty

[Body "a"]
Mass = 1e30
VX = 500

[Body "b"]
Mass = 1e20
Y = 1
Orbit = true
Clockwise = true
Order = 1
`
	s, err := Parse(text)
	require.NoError(t, err)

	v := s.Engine.Seed[1].Velocity
	speed := vmath.OrbitalVelocity(parameter.G*(1e30+1e20), parameter.AU)
	// Clockwise at +y moves towards +x
	assert.InEpsilon(t, 500+speed, v.X, 1e-9)
	assert.InDelta(t, 0, v.Y, 1e-6)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want error
	}{
		{"bad time step", "[Simulation]\nTimeStep = -1\n", engine.ErrConfig},
		{"bad lapse", "[Simulation]\nTimeLapse = 2\n", engine.ErrConfig},
		{"fast body", "[Simulation]\nScenario = empty\n[Body \"x\"]\nMass = 1\nVX = 3e8\n", body.ErrAssertion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	plain := []struct {
		name string
		text string
	}{
		{"unknown scenario", "[Simulation]\nScenario = galaxy\n"},
		{"massless body", "[Simulation]\nScenario = empty\n[Body \"x\"]\nX = 1\n"},
		{"bad colour", "[Simulation]\nScenario = empty\n[Body \"x\"]\nMass = 1\nColour = \"#zz0000\"\n"},
		{"orbit without primary", "[Simulation]\nScenario = empty\n[Body \"x\"]\nMass = 1\nX = 1\nOrbit = true\n"},
		{"unknown follow", "[Simulation]\nScenario = binary\nFollow = pluto\n"},
		{"follow out of range", "[Simulation]\nScenario = binary\nFollow = 2\n"},
		{"unknown variable", "[Simulation]\nWarp = 9\n"},
		{"syntax", "[Simulation\n"},
	}
	for _, tt := range plain {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text)
			assert.Error(t, err)
		})
	}
}

func TestParse_FollowByIndex(t *testing.T) {
	s, err := Parse("[Simulation]\nScenario = binary\nFollow = 1\n")
	require.NoError(t, err)
	assert.True(t, s.Following)
	assert.Equal(t, body.ID(1), s.Follow)
	assert.Equal(t, []string{"", ""}, s.Names)
}

func TestParseColour(t *testing.T) {
	a, err := parseColour("ff0000")
	require.NoError(t, err)
	b, err := parseColour("#ff0000")
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, 1.0, a.R)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orbit.gcfg")
	require.NoError(t, os.WriteFile(path, []byte(ExampleFile), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, s.Engine.Seed, len(scenario.SolarSystem())+1)

	_, err = Load(filepath.Join(t.TempDir(), "missing.gcfg"))
	assert.Error(t, err)
}
