package physics

import (
	"log"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/orbit/body"
	"github.com/lixenwraith/orbit/vmath"
)

// BoxTolerance is the relative slack of the merge position bounding-box check
const BoxTolerance = 1e-9

// Loss reasons
const (
	LossIsolated = "no colliding partner in locale"
	LossOutside  = "merged position outside cluster bounds"
	LossMass     = "merged mass below cluster mass"
	LossInvalid  = "merged body failed construction"
)

// Resolver detects bodies closer than their combined extent plus a speed margin and
// replaces each colliding cluster with a single merged body
type Resolver struct {
	// DT is the fixed step used for the speed margin
	DT float64

	// Hardened sums every cluster member, places the result at the true centre of mass
	// and keeps the members of a rejected cluster alive instead of dropping them
	Hardened bool
}

// Merge records one accepted cluster
type Merge struct {
	Locale   Locale
	Consumed []body.ID
	Result   body.ID
	Mass     float64
}

// Loss records one cluster whose merge did not happen
type Loss struct {
	Locale   Locale
	Members  []body.ID
	Mass     float64 // mass that left the system, zero when Retained
	Reason   string
	Retained bool
}

// Resolution is the outcome of one Resolve call
type Resolution struct {
	Survivors []*body.Body
	Removed   []body.ID // bodies destroyed by this call
	Added     []body.ID // merged bodies created by this call
	Merges    []Merge
	Losses    []Loss
}

// LostMass sums the mass of all dropped clusters
func (r Resolution) LostMass() float64 {
	var m float64
	for _, l := range r.Losses {
		m += l.Mass
	}
	return m
}

// Threshold returns the approach distance at which two bodies collide
// Speed margin uses the sum of speeds, not the relative speed
func (r Resolver) Threshold(a, b *body.Body) float64 {
	return 0.5*(a.Radius()+b.Radius()) + (a.Speed()+b.Speed())*r.DT
}

// Detect returns every body that is within Threshold of at least one other, in set order
func (r Resolver) Detect(bodies []*body.Body) []*body.Body {
	marked := make([]bool, len(bodies))
	hit := 0
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			if marked[i] && marked[j] {
				continue
			}
			a, b := bodies[i], bodies[j]
			if vmath.Distance(a.Position, b.Position) <= r.Threshold(a, b) {
				if !marked[i] {
					hit++
				}
				if !marked[j] {
					hit++
				}
				marked[i], marked[j] = true, true
			}
		}
	}
	if hit == 0 {
		return nil
	}

	out := make([]*body.Body, 0, hit)
	for i, b := range bodies {
		if marked[i] {
			out = append(out, b)
		}
	}
	return out
}

// Resolve merges all colliding clusters of the set
// followed, when non-nil, is handed to the merged body of the cluster that contained it
// Safe to call with no collisions: the input set is returned as survivors
func (r Resolver) Resolve(bodies []*body.Body, seq *body.Sequence, followed *body.ID) Resolution {
	removed := r.Detect(bodies)
	if len(removed) == 0 {
		return Resolution{Survivors: bodies}
	}

	locales := Locales(bodies)
	doomed := make(map[body.ID]bool, len(removed))
	for _, b := range removed {
		doomed[b.ID()] = true
	}

	survivors := make([]*body.Body, 0, len(bodies)-len(removed)+1)
	for _, b := range bodies {
		if !doomed[b.ID()] {
			survivors = append(survivors, b)
		}
	}
	survivorMass := TotalMass(survivors)

	// Group by locale, clusters and members in set order
	var order []Locale
	clusters := make(map[Locale][]*body.Body)
	for _, b := range removed {
		loc := locales[b.ID()]
		if _, ok := clusters[loc]; !ok {
			order = append(order, loc)
		}
		clusters[loc] = append(clusters[loc], b)
	}

	res := Resolution{}
	for _, loc := range order {
		members := clusters[loc]
		merged, reason := r.merge(members, seq, followed, survivorMass)

		if merged != nil {
			survivors = append(survivors, merged)
			res.Removed = append(res.Removed, ids(members)...)
			res.Added = append(res.Added, merged.ID())
			res.Merges = append(res.Merges, Merge{
				Locale:   loc,
				Consumed: ids(members),
				Result:   merged.ID(),
				Mass:     merged.Mass(),
			})
			continue
		}

		loss := Loss{Locale: loc, Members: ids(members), Reason: reason, Retained: r.Hardened}
		if r.Hardened {
			survivors = append(survivors, members...)
			log.Printf("physics: merge of %v in locale %v rejected (%s), members kept", loss.Members, loc, reason)
		} else {
			loss.Mass = TotalMass(members)
			res.Removed = append(res.Removed, loss.Members...)
			log.Printf("physics: merge of %v in locale %v rejected (%s), %.4g kg lost", loss.Members, loc, reason, loss.Mass)
		}
		res.Losses = append(res.Losses, loss)
	}

	res.Survivors = survivors
	return res
}

// merge builds the body replacing one cluster, or returns the rejection reason
func (r Resolver) merge(members []*body.Body, seq *body.Sequence, followed *body.ID, survivorMass float64) (*body.Body, string) {
	var (
		mass, weightedDensity float64
		momentum, position    r2.Vec
	)

	if r.Hardened {
		for _, n := range members {
			mass += n.Mass()
			weightedDensity += n.Density() * n.Mass()
			momentum = r2.Add(momentum, n.Momentum())
			position = r2.Add(position, r2.Scale(n.Mass(), n.Position))
		}
		if len(members) > 1 {
			position = r2.Scale(1/mass, position)
		} else {
			mass = 0
		}
	} else {
		// Only members with an in-cluster partner contribute. Position is a running blend
		// discounted by the accumulated mass ratio of the partners already visited.
		for _, n := range members {
			ratio := 0.0
			partners := 0
			for _, i := range members {
				if i == n {
					continue
				}
				partners++
				ratio += i.Mass() / (n.Mass() + i.Mass())
				position = r2.Add(position, r2.Scale(1-ratio, n.Position))
			}
			if partners == 0 {
				continue
			}
			mass += n.Mass()
			weightedDensity += n.Density() * n.Mass()
			momentum = r2.Add(momentum, n.Momentum())
		}
	}

	if mass == 0 {
		return nil, LossIsolated
	}

	points := make([]r2.Vec, len(members))
	for k, n := range members {
		points[k] = n.Position
	}
	if !vmath.BoxContains(vmath.Bounds(points), position, BoxTolerance) {
		return nil, LossOutside
	}

	// Clamping at the mass cap must not make the system lighter
	if survivorMass+math.Min(mass, body.MassCap) < survivorMass+TotalMass(members) {
		return nil, LossMass
	}

	spec := body.Spec{
		Mass:     mass,
		Position: position,
		Velocity: r2.Scale(1/mass, momentum),
		Colour:   heaviestColour(members),
		Density:  weightedDensity / mass,
	}

	var (
		merged *body.Body
		err    error
	)
	if followed != nil && containsID(members, *followed) {
		merged, err = seq.Reissue(*followed, spec)
	} else {
		merged, err = seq.Make(spec)
	}
	if err != nil {
		return nil, LossInvalid
	}
	return merged, ""
}

func heaviestColour(members []*body.Body) colorful.Color {
	heaviest := members[0]
	for _, b := range members[1:] {
		if b.Mass() > heaviest.Mass() {
			heaviest = b
		}
	}
	return heaviest.Colour()
}

func containsID(bodies []*body.Body, id body.ID) bool {
	for _, b := range bodies {
		if b.ID() == id {
			return true
		}
	}
	return false
}

func ids(bodies []*body.Body) []body.ID {
	out := make([]body.ID, len(bodies))
	for i, b := range bodies {
		out[i] = b.ID()
	}
	return out
}
