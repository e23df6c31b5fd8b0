package engine

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/orbit/body"
)

// Snapshot is a consistent read-only copy of the session at one instant
// Render and camera code consume snapshots instead of holding the world lock
type Snapshot struct {
	Step      uint64
	Elapsed   float64
	DT        float64
	Followed  body.ID
	Following bool
	Bodies    []body.View
	Removed   []body.ID
	Added     []body.ID
	Pruned    []body.ID
	LostMass  float64
}

// Snapshot captures the session under a single read lock
func (w *World) Snapshot() Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return Snapshot{
		Step:      w.steps,
		Elapsed:   w.elapsed,
		DT:        w.dt,
		Followed:  w.followed,
		Following: w.following,
		Bodies:    w.viewsLocked(),
		Removed:   append([]body.ID(nil), w.removed...),
		Added:     append([]body.ID(nil), w.added...),
		Pruned:    append([]body.ID(nil), w.pruned...),
		LostMass:  w.lost,
	}
}

// Find returns the view with the given ID
func (s Snapshot) Find(id body.ID) (body.View, bool) {
	for _, v := range s.Bodies {
		if v.ID == id {
			return v, true
		}
	}
	return body.View{}, false
}

// FollowedView returns the tracked body if it is still active
func (s Snapshot) FollowedView() (body.View, bool) {
	if !s.Following {
		return body.View{}, false
	}
	return s.Find(s.Followed)
}

// FrameReference returns the followed body's position, or the origin
func (s Snapshot) FrameReference() r2.Vec {
	if v, ok := s.FollowedView(); ok {
		return v.Position
	}
	return r2.Vec{}
}

// FrameVelocity returns the followed body's velocity, or zero
func (s Snapshot) FrameVelocity() r2.Vec {
	if v, ok := s.FollowedView(); ok {
		return v.Velocity
	}
	return r2.Vec{}
}

// Heaviest returns the most massive active body
func (s Snapshot) Heaviest() (body.View, bool) {
	if len(s.Bodies) == 0 {
		return body.View{}, false
	}
	best := s.Bodies[0]
	for _, v := range s.Bodies[1:] {
		if v.Mass > best.Mass {
			best = v
		}
	}
	return best, true
}
