package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/orbit/vmath"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// Cue timings
const (
	mergeDuration  = 400 * time.Millisecond
	mergeAttack    = 5 * time.Millisecond
	mergeRelease   = 300 * time.Millisecond
	injectDuration = 180 * time.Millisecond
	injectAttack   = 60 * time.Millisecond
	injectRelease  = 100 * time.Millisecond
	lossDuration   = 250 * time.Millisecond
	lossAttack     = 5 * time.Millisecond
	lossRelease    = 120 * time.Millisecond
	pruneDuration  = 300 * time.Millisecond
	pruneAttack    = 2 * time.Millisecond
	pruneRelease   = 250 * time.Millisecond
)

// oscillator generates raw audio waves, optionally gliding linearly to an end frequency
type oscillator struct {
	freq     float64
	glide    float64 // frequency change per sample
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *vmath.FastRand
}

// NewOscillator creates a fixed-pitch oscillator
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep creates an oscillator gliding from one frequency to another over its duration
func NewSweep(from, to float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	samples := rate.N(duration)
	glide := 0.0
	if samples > 0 {
		glide = (to - from) / float64(samples)
	}
	return &oscillator{
		freq:     from,
		glide:    glide,
		duration: samples,
		wave:     wave,
		rate:     rate,
		rng:      vmath.NewFastRand(uint64(samples)*2654435761 + 1),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.freq += o.glide
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope wraps a stream with a linear attack and release
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := total - att - rel
	if sus < 0 {
		sus = 0
	}

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			remaining := e.totalSamples - e.position
			vol = math.Max(float64(remaining)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a stream linearly; log2(0) is -Inf so zero is mapped to silence
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// MergePitch maps merged mass to a thump frequency, heavier is lower
// 1e20 kg sits at 220 Hz, each decade of mass drops the pitch by a fifth, floor 40 Hz
func MergePitch(mass float64) float64 {
	if !vmath.Finite(mass) || mass <= 0 {
		return 220
	}
	decades := math.Log10(mass) - 20
	return math.Max(220*math.Pow(2.0/3.0, decades), 40)
}

// CreateMergeSound generates a falling thump pitched by the merged mass
func CreateMergeSound(cfg *Config, mass float64) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	pitch := MergePitch(mass)

	body := NewSweep(pitch*1.5, pitch, mergeDuration, WaveSine, rate)
	bodyShaped := NewEnvelope(body, mergeDuration, mergeAttack, mergeRelease, rate)

	crack := NewOscillator(0, mergeDuration/4, WaveNoise, rate)
	crackShaped := NewEnvelope(crack, mergeDuration/4, mergeAttack, mergeDuration/8, rate)

	mixed := beep.Mix(
		newVolume(bodyShaped, 0.8),
		newVolume(crackShaped, 0.2),
	)
	return newVolume(mixed, cfg.CueVolumes[CueMerge]*cfg.MasterVolume)
}

// CreateInjectSound generates a rising whoosh
func CreateInjectSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	noise := NewOscillator(0, injectDuration, WaveNoise, rate)
	noiseShaped := NewEnvelope(noise, injectDuration, injectAttack, injectRelease, rate)

	tone := NewSweep(300, 900, injectDuration, WaveSine, rate)
	toneShaped := NewEnvelope(tone, injectDuration, injectAttack, injectRelease, rate)

	mixed := beep.Mix(
		newVolume(noiseShaped, 0.5),
		newVolume(toneShaped, 0.3),
	)
	return newVolume(mixed, cfg.CueVolumes[CueInject]*cfg.MasterVolume)
}

// CreateLossSound generates a descending saw buzz
func CreateLossSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	buzz := NewSweep(180, 60, lossDuration, WaveSaw, rate)
	shaped := NewEnvelope(buzz, lossDuration, lossAttack, lossRelease, rate)

	return newVolume(shaped, cfg.CueVolumes[CueLoss]*cfg.MasterVolume*0.5)
}

// CreatePruneSound generates a two-note falling chime
func CreatePruneSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	half := pruneDuration / 2

	n1 := NewOscillator(659.25, half, WaveSine, rate)
	n1Shaped := NewEnvelope(n1, half, pruneAttack, pruneRelease/2, rate)

	n2 := NewOscillator(493.88, half, WaveSine, rate)
	n2Shaped := NewEnvelope(n2, half, pruneAttack, pruneRelease/2, rate)

	return newVolume(beep.Seq(n1Shaped, n2Shaped), cfg.CueVolumes[CuePrune]*cfg.MasterVolume)
}

// CueStreamer returns the streamer for a cue; mass only affects CueMerge
func CueStreamer(c Cue, cfg *Config, mass float64) beep.Streamer {
	switch c {
	case CueMerge:
		return CreateMergeSound(cfg, mass)
	case CueInject:
		return CreateInjectSound(cfg)
	case CueLoss:
		return CreateLossSound(cfg)
	case CuePrune:
		return CreatePruneSound(cfg)
	default:
		return nil
	}
}
