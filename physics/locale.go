package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/orbit/body"
	"github.com/lixenwraith/orbit/vmath"
)

// Locale is a coarse spatial bucket: signed, rounded log10 of each position component
// Simultaneous collisions in different buckets are merged separately
type Locale [2]int

// LocaleOf returns the bucket for a position
func LocaleOf(p r2.Vec) Locale {
	return Locale{vmath.SignedLog10(p.X), vmath.SignedLog10(p.Y)}
}

// Locales tags every body in the set, recomputed per call
func Locales(bodies []*body.Body) map[body.ID]Locale {
	out := make(map[body.ID]Locale, len(bodies))
	for _, b := range bodies {
		out[b.ID()] = LocaleOf(b.Position)
	}
	return out
}

// PruneLimit returns the largest locale magnitude kept for a domain radius
func PruneLimit(domainRadius float64) float64 {
	return 1.1 * math.Log10(domainRadius)
}

// Prune splits bodies into those inside the domain and those beyond it
// A body is beyond when any locale component magnitude exceeds PruneLimit
// Input slice is not modified
func Prune(bodies []*body.Body, domainRadius float64) (kept, pruned []*body.Body) {
	limit := PruneLimit(domainRadius)
	kept = make([]*body.Body, 0, len(bodies))
	for _, b := range bodies {
		loc := LocaleOf(b.Position)
		if math.Abs(float64(loc[0])) > limit || math.Abs(float64(loc[1])) > limit {
			pruned = append(pruned, b)
			continue
		}
		kept = append(kept, b)
	}
	return kept, pruned
}
