// Package engine owns the simulation session: the active body set, the per-step
// pipeline and the read-only views handed to render and camera collaborators.
package engine

import (
	"fmt"
	"log"
	"sync"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/orbit/body"
	"github.com/lixenwraith/orbit/physics"
)

// Recorder receives bookkeeping events from the world
// Calls happen with the world lock held and must not call back into the world
type Recorder interface {
	ObserveStep(d time.Duration, bodies int)
	ObserveResolution(res physics.Resolution)
	ObservePrune(n int)
	ObserveInject()
}

type nopRecorder struct{}

func (nopRecorder) ObserveStep(time.Duration, int)       {}
func (nopRecorder) ObserveResolution(physics.Resolution) {}
func (nopRecorder) ObservePrune(int)                     {}
func (nopRecorder) ObserveInject()                       {}

// Recorders fans events out to several recorders in order
func Recorders(rs ...Recorder) Recorder {
	return multiRecorder(rs)
}

type multiRecorder []Recorder

func (m multiRecorder) ObserveStep(d time.Duration, bodies int) {
	for _, r := range m {
		r.ObserveStep(d, bodies)
	}
}

func (m multiRecorder) ObserveResolution(res physics.Resolution) {
	for _, r := range m {
		r.ObserveResolution(res)
	}
}

func (m multiRecorder) ObservePrune(n int) {
	for _, r := range m {
		r.ObservePrune(n)
	}
}

func (m multiRecorder) ObserveInject() {
	for _, r := range m {
		r.ObserveInject()
	}
}

// Option configures a World at construction
type Option func(*World)

// WithRecorder attaches a bookkeeping sink
func WithRecorder(r Recorder) Option {
	return func(w *World) {
		if r != nil {
			w.recorder = r
		}
	}
}

// World is one simulation session
// Step and Inject are the only mutators; every accessor returns copies
type World struct {
	mu sync.RWMutex

	cfg      Config
	dt       float64
	field    physics.ForceField
	resolver physics.Resolver
	recorder Recorder

	seq    body.Sequence
	bodies []*body.Body

	elapsed float64
	steps   uint64
	lost    float64

	// Per-step bookkeeping, cleared at the start of Step
	removed []body.ID
	added   []body.ID
	pruned  []body.ID

	followed  body.ID
	following bool
}

// NewWorld builds a session from a validated config
// Panics on an invalid config: constants are fixed at startup
func NewWorld(cfg Config, opts ...Option) *World {
	if err := cfg.Validate(); err != nil {
		panic(err)
	}

	w := &World{
		cfg:      cfg,
		dt:       cfg.DT(),
		field:    physics.ForceField{G: cfg.G},
		resolver: physics.Resolver{DT: cfg.DT(), Hardened: cfg.Hardened},
		recorder: nopRecorder{},
		bodies:   make([]*body.Body, 0, len(cfg.Seed)),
	}
	for _, opt := range opts {
		opt(w)
	}

	for _, s := range cfg.Seed {
		w.bodies = append(w.bodies, w.seq.New(s))
	}

	return w
}

// Step advances the session by one fixed dt
// Order: prune, forces, integrate, locale tagging and collision resolution
func (w *World) Step() {
	start := time.Now()

	w.mu.Lock()
	defer w.mu.Unlock()

	w.removed = nil
	w.added = nil
	w.pruned = nil

	kept, pruned := physics.Prune(w.bodies, w.cfg.DomainRadius)
	if len(pruned) > 0 {
		for _, b := range pruned {
			w.pruned = append(w.pruned, b.ID())
			log.Printf("engine: pruned %v beyond domain", b)
		}
		w.recorder.ObservePrune(len(pruned))
	}
	w.bodies = kept

	field := w.field.Accelerations(w.bodies)
	physics.Integrate(w.bodies, field, w.dt)

	w.resolveLocked()

	w.elapsed += w.dt
	w.steps++

	w.recorder.ObserveStep(time.Since(start), len(w.bodies))
}

// Inject adds an externally constructed body and resolves collisions immediately
// The returned ID may already appear in RemovedIDs if the body merged on arrival
func (w *World) Inject(s body.Spec) (body.ID, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.injectLocked(s)
}

func (w *World) injectLocked(s body.Spec) (body.ID, error) {
	b, err := w.seq.Make(s)
	if err != nil {
		return 0, fmt.Errorf("inject: %w", err)
	}

	w.bodies = append(w.bodies, b)
	w.recorder.ObserveInject()
	log.Printf("engine: injected %v", b)

	w.resolveLocked()
	return b.ID(), nil
}

// Resolve re-runs collision resolution without advancing time
func (w *World) Resolve() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.resolveLocked()
}

func (w *World) resolveLocked() {
	var followed *body.ID
	if w.following {
		id := w.followed
		followed = &id
	}

	res := w.resolver.Resolve(w.bodies, &w.seq, followed)
	w.bodies = res.Survivors
	if len(res.Removed) == 0 && len(res.Added) == 0 && len(res.Losses) == 0 {
		return
	}

	w.removed = append(w.removed, res.Removed...)
	w.added = append(w.added, res.Added...)
	w.lost += res.LostMass()
	w.recorder.ObserveResolution(res)
}

// SetFollowed marks the body the camera tracks; merges carry the ID forward
func (w *World) SetFollowed(id body.ID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.followed, w.following = id, true
}

// ClearFollowed returns the camera to the origin frame
func (w *World) ClearFollowed() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.following = false
}

// Followed returns the tracked ID, if any
func (w *World) Followed() (body.ID, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.followed, w.following
}

// FrameReference returns the followed body's position, or the origin when it is absent
func (w *World) FrameReference() r2.Vec {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if b := w.followedLocked(); b != nil {
		return b.Position
	}
	return r2.Vec{}
}

func (w *World) followedLocked() *body.Body {
	if !w.following {
		return nil
	}
	for _, b := range w.bodies {
		if b.ID() == w.followed {
			return b
		}
	}
	return nil
}

// Bodies returns detached views of the active set
func (w *World) Bodies() []body.View {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.viewsLocked()
}

func (w *World) viewsLocked() []body.View {
	out := make([]body.View, len(w.bodies))
	for i, b := range w.bodies {
		out[i] = b.View()
	}
	return out
}

// RemovedIDs lists bodies consumed by merges since the last Step began
func (w *World) RemovedIDs() []body.ID {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]body.ID(nil), w.removed...)
}

// AddedIDs lists merged bodies created since the last Step began
func (w *World) AddedIDs() []body.ID {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]body.ID(nil), w.added...)
}

// PrunedIDs lists bodies dropped at the domain edge by the last Step
func (w *World) PrunedIDs() []body.ID {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]body.ID(nil), w.pruned...)
}

// Len returns the number of active bodies
func (w *World) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.bodies)
}

// Elapsed returns simulated seconds since the session began
func (w *World) Elapsed() float64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.elapsed
}

// Steps returns the number of completed steps
func (w *World) Steps() uint64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.steps
}

// DT returns the fixed step in simulated seconds
func (w *World) DT() float64 {
	return w.dt
}

// Config returns the construction config
func (w *World) Config() Config {
	return w.cfg
}

// TotalMass returns the summed mass of the active set
func (w *World) TotalMass() float64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return physics.TotalMass(w.bodies)
}

// TotalMomentum returns the summed momentum of the active set
func (w *World) TotalMomentum() r2.Vec {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return physics.TotalMomentum(w.bodies)
}

// LostMass returns mass dropped by rejected merges over the session
func (w *World) LostMass() float64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.lost
}
