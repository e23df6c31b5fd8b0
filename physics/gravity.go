// Package physics implements the per-step pieces of the simulation: pairwise gravity,
// semi-implicit Euler integration, spatial locale tagging, domain pruning and
// inelastic collision merging.
package physics

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/orbit/body"
)

// Field maps each body to its net acceleration for one step
type Field map[body.ID]r2.Vec

// Separation is a step-scoped record of one ordered pair
type Separation struct {
	From, To body.ID
	R        r2.Vec  // To.Position - From.Position
	Distance float64 // |R|
	Touching bool    // Distance within the sum of radii, or zero
}

// ForceField computes Newtonian accelerations over a full body set
// Direct O(N²) summation, intended for tens of bodies
type ForceField struct {
	G float64
}

// Accelerations returns the net acceleration on every body in the set
// Pairs closer than the sum of their radii contribute nothing
func (f ForceField) Accelerations(bodies []*body.Body) Field {
	field := make(Field, len(bodies))
	for _, n := range bodies {
		var acc r2.Vec
		for _, i := range bodies {
			if i == n {
				continue
			}
			acc = r2.Add(acc, f.pull(n, i))
		}
		field[n.ID()] = acc
	}
	return field
}

// pull returns the acceleration on n due to i
func (f ForceField) pull(n, i *body.Body) r2.Vec {
	s := separate(n, i)
	if s.Touching {
		return r2.Vec{}
	}
	// a = G*m*r/|r|³, r unnormalized
	d3 := s.Distance * s.Distance * s.Distance
	return r2.Scale(f.G*i.Mass()/d3, s.R)
}

// Separations lists every ordered pair (n, i), n != i, in set order
func Separations(bodies []*body.Body) []Separation {
	if len(bodies) < 2 {
		return nil
	}
	out := make([]Separation, 0, len(bodies)*(len(bodies)-1))
	for _, n := range bodies {
		for _, i := range bodies {
			if i == n {
				continue
			}
			out = append(out, separate(n, i))
		}
	}
	return out
}

func separate(n, i *body.Body) Separation {
	r := r2.Sub(i.Position, n.Position)
	d := r2.Norm(r)
	return Separation{
		From:     n.ID(),
		To:       i.ID(),
		R:        r,
		Distance: d,
		Touching: d == 0 || d <= n.Radius()+i.Radius(),
	}
}
