package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/orbit/config"
	"github.com/lixenwraith/orbit/engine"
	"github.com/lixenwraith/orbit/scenario"
)

func TestLoadSettings_Scenario(t *testing.T) {
	s, err := loadSettings("", scenario.Binary, 0, -1, false)
	require.NoError(t, err)
	assert.Len(t, s.Engine.Seed, 2)
	assert.False(t, s.Engine.Hardened)
}

func TestLoadSettings_Overrides(t *testing.T) {
	s, err := loadSettings("", scenario.Empty, 500, 0.5, true)
	require.NoError(t, err)
	assert.Equal(t, 500.0, s.Engine.TimeStep)
	assert.Equal(t, 0.5, s.Engine.TimeLapse)
	assert.True(t, s.Engine.Hardened)
	assert.Equal(t, 250.0, s.Engine.DT())
}

func TestLoadSettings_InvalidOverride(t *testing.T) {
	_, err := loadSettings("", scenario.Empty, 1e6, -1, false)
	assert.ErrorIs(t, err, engine.ErrConfig)

	_, err = loadSettings("", "galaxy", 0, -1, false)
	assert.Error(t, err)
}

func TestLoadSettings_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orbit.gcfg")
	require.NoError(t, os.WriteFile(path, []byte(config.ExampleFile), 0644))

	s, err := loadSettings(path, scenario.Empty, 0, -1, false)
	require.NoError(t, err)
	// The file's scenario wins over the flag
	assert.Len(t, s.Engine.Seed, len(scenario.SolarSystem())+1)
}
