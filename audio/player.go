package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"golang.org/x/time/rate"

	"github.com/lixenwraith/orbit/physics"
)

// Cue throttling: bursts of merges collapse into a few sounds
const (
	cueInterval = 80 * time.Millisecond
	cueBurst    = 4
	maxVoices   = 8
)

// Player mixes cue streamers into the speaker
// Every method is safe to call when audio is disabled or failed to initialize
type Player struct {
	mu          sync.Mutex
	cfg         *Config
	mixer       *beep.Mixer
	limiter     *rate.Limiter
	initialized bool

	// Swapped in tests to run without an output device
	lock   func()
	unlock func()
}

// NewPlayer creates an uninitialized player
func NewPlayer(cfg *Config) *Player {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Player{
		cfg:     cfg,
		mixer:   &beep.Mixer{},
		limiter: rate.NewLimiter(rate.Every(cueInterval), cueBurst),
		lock:    speaker.Lock,
		unlock:  speaker.Unlock,
	}
}

// Initialize opens the output device and starts the mixer
// No-op when audio is disabled
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized || !p.cfg.Enabled {
		return nil
	}

	sr := beep.SampleRate(p.cfg.SampleRate)
	if err := speaker.Init(sr, sr.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio init: %w", err)
	}

	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Cleanup silences the mixer
func (p *Player) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	p.lock()
	p.mixer.Clear()
	p.unlock()
	p.initialized = false
}

// Play queues a cue, dropping it when throttled or too many voices are active
func (p *Player) Play(c Cue, mass float64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || !p.limiter.Allow() {
		return false
	}

	s := CueStreamer(c, p.cfg, mass)
	if s == nil {
		return false
	}

	p.lock()
	defer p.unlock()
	if p.mixer.Len() >= maxVoices {
		return false
	}
	p.mixer.Add(s)
	return true
}

// Voices returns the number of cues still playing
func (p *Player) Voices() int {
	p.lock()
	defer p.unlock()
	return p.mixer.Len()
}

// Recorder turns world events into cues, satisfies engine.Recorder
type Recorder struct {
	Player *Player
}

func (r Recorder) ObserveStep(time.Duration, int) {}

func (r Recorder) ObserveResolution(res physics.Resolution) {
	for _, m := range res.Merges {
		r.Player.Play(CueMerge, m.Mass)
	}
	for _, l := range res.Losses {
		if !l.Retained {
			r.Player.Play(CueLoss, l.Mass)
		}
	}
}

func (r Recorder) ObservePrune(int) {
	r.Player.Play(CuePrune, 0)
}

func (r Recorder) ObserveInject() {
	r.Player.Play(CueInject, 0)
}
