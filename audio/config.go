// Package audio synthesizes short cues for simulation events
package audio

import (
	"encoding/json"
	"os"
	"strconv"
)

// Cue identifies a sound played for a simulation event
type Cue int

const (
	CueMerge  Cue = iota // Bodies merged
	CueInject            // Body thrown or injected
	CueLoss              // Merge rejected, mass lost
	CuePrune             // Body left the domain
	cueCount
)

var cueNames = [cueCount]string{"merge", "inject", "loss", "prune"}

func (c Cue) String() string {
	if c < 0 || c >= cueCount {
		return "unknown"
	}
	return cueNames[c]
}

// Config holds audio settings
type Config struct {
	Enabled      bool
	MasterVolume float64
	CueVolumes   map[Cue]float64
	SampleRate   int
}

// DefaultConfig returns audio disabled at moderate volume
func DefaultConfig() *Config {
	return &Config{
		Enabled:      false,
		MasterVolume: 0.5,
		CueVolumes: map[Cue]float64{
			CueMerge:  1.0,
			CueInject: 0.6,
			CueLoss:   0.8,
			CuePrune:  0.4,
		},
		SampleRate: 44100,
	}
}

// LoadConfig overlays ORBIT_AUDIO_* environment variables on the defaults
func LoadConfig() *Config {
	cfg := DefaultConfig()

	if enabled := os.Getenv("ORBIT_AUDIO_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// 0-100 mapped to 0.0-1.0
	if volume := os.Getenv("ORBIT_AUDIO_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = clamp01(float64(val) / 100.0)
		}
	}

	// JSON object keyed by cue name, e.g. {"merge":0.5}
	if cueVols := os.Getenv("ORBIT_AUDIO_CUES"); cueVols != "" {
		var volumes map[string]float64
		if err := json.Unmarshal([]byte(cueVols), &volumes); err == nil {
			for c := Cue(0); c < cueCount; c++ {
				if v, ok := volumes[c.String()]; ok {
					cfg.CueVolumes[c] = clamp01(v)
				}
			}
		}
	}

	if sampleRate := os.Getenv("ORBIT_AUDIO_SAMPLE_RATE"); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	return cfg
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
