package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// Stepper advances a simulation by one fixed step
type Stepper interface {
	Step()
}

// Scheduler drives a Stepper at a fixed wall-clock rate
// Pausing stops stepping but keeps the loop alive for single-step requests
type Scheduler struct {
	stepper Stepper
	limiter *rate.Limiter

	paused    atomic.Bool
	tickCount atomic.Uint64

	stepReq    chan struct{}
	updateDone chan struct{}

	crash func(any)

	cancel   context.CancelFunc
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
}

// NewScheduler creates a scheduler stepping once per interval
func NewScheduler(stepper Stepper, interval time.Duration) *Scheduler {
	if interval <= 0 {
		panic("engine: scheduler interval must be positive")
	}
	return &Scheduler{
		stepper:    stepper,
		limiter:    rate.NewLimiter(rate.Every(interval), 1),
		stepReq:    make(chan struct{}, 1),
		updateDone: make(chan struct{}, 1),
	}
}

// SetCrashHandler installs the handler for a panic inside the loop goroutine, must be called before Start
// Without one the panic propagates and kills the process
func (s *Scheduler) SetCrashHandler(fn func(any)) {
	s.crash = fn
}

// Start runs the loop in a goroutine until Stop or ctx cancellation
func (s *Scheduler) Start(ctx context.Context) {
	if !s.running.CompareAndSwap(false, true) {
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			if s.crash == nil {
				return
			}
			if r := recover(); r != nil {
				s.crash(r)
			}
		}()
		s.Run(ctx)
	}()
}

// Stop halts the loop and waits for the in-flight step
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		if s.running.CompareAndSwap(true, false) {
			s.cancel()
			s.wg.Wait()
		}
	})
}

// Run blocks stepping the simulation until ctx is done
func (s *Scheduler) Run(ctx context.Context) {
	for {
		if s.paused.Load() {
			select {
			case <-ctx.Done():
				return
			case <-s.stepReq:
				// Resume also signals stepReq to wake the loop
				if s.paused.Load() {
					s.tick()
				}
			}
			continue
		}

		// Drop a wake signal left over from Resume
		select {
		case <-s.stepReq:
		default:
		}

		if err := s.limiter.Wait(ctx); err != nil {
			return
		}
		// Pause may have flipped while waiting
		if s.paused.Load() {
			continue
		}
		s.tick()
	}
}

func (s *Scheduler) tick() {
	s.stepper.Step()
	s.tickCount.Add(1)

	select {
	case s.updateDone <- struct{}{}:
	default:
	}
}

// Pause stops automatic stepping
func (s *Scheduler) Pause() { s.paused.Store(true) }

// Resume restarts automatic stepping
func (s *Scheduler) Resume() {
	s.paused.Store(false)
	// Wake a loop parked on stepReq
	select {
	case s.stepReq <- struct{}{}:
	default:
	}
}

// TogglePause flips the pause state and returns the new state
func (s *Scheduler) TogglePause() bool {
	for {
		old := s.paused.Load()
		if s.paused.CompareAndSwap(old, !old) {
			if old {
				s.Resume()
			}
			return !old
		}
	}
}

// IsPaused reports whether automatic stepping is suspended
func (s *Scheduler) IsPaused() bool { return s.paused.Load() }

// StepOnce requests a single step while paused, no-op when running
func (s *Scheduler) StepOnce() {
	if !s.paused.Load() {
		return
	}
	select {
	case s.stepReq <- struct{}{}:
	default:
	}
}

// Ticks returns the number of steps taken by this scheduler
func (s *Scheduler) Ticks() uint64 { return s.tickCount.Load() }

// Updates signals after each step, coalescing when the reader falls behind
func (s *Scheduler) Updates() <-chan struct{} { return s.updateDone }
