package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/orbit/body"
)

const testG = 6.67430e-11

func newBody(t *testing.T, seq *body.Sequence, mass float64, pos, vel r2.Vec) *body.Body {
	t.Helper()
	b, err := seq.Make(body.Spec{Mass: mass, Position: pos, Velocity: vel, Density: 5000})
	require.NoError(t, err)
	return b
}

func TestAccelerations_IsolatedBodyIsZero(t *testing.T) {
	var seq body.Sequence
	b := newBody(t, &seq, 1e24, r2.Vec{X: 1e9, Y: 2e9}, r2.Vec{X: 10, Y: -5})

	field := ForceField{G: testG}.Accelerations([]*body.Body{b})
	require.Contains(t, field, b.ID())
	assert.Equal(t, r2.Vec{}, field[b.ID()])

	Integrate([]*body.Body{b}, field, 100)
	assert.Equal(t, r2.Vec{X: 1e9 + 1000, Y: 2e9 - 500}, b.Position)
	assert.Equal(t, r2.Vec{X: 10, Y: -5}, b.Velocity)
}

func TestAccelerations_SymmetricPair(t *testing.T) {
	var seq body.Sequence
	a := newBody(t, &seq, 1e24, r2.Vec{X: -1e9}, r2.Vec{})
	b := newBody(t, &seq, 1e24, r2.Vec{X: 1e9}, r2.Vec{})
	set := []*body.Body{a, b}

	field := ForceField{G: testG}.Accelerations(set)
	aa, ab := field[a.ID()], field[b.ID()]

	want := testG * 1e24 / (2e9 * 2e9)
	assert.InEpsilon(t, want, aa.X, 1e-12, "a is pulled toward +x")
	assert.Equal(t, 0.0, aa.Y)
	assert.Equal(t, -aa.X, ab.X)
	assert.Equal(t, -aa.Y, ab.Y)

	Integrate(set, field, 3000)
	p := TotalMomentum(set)
	assert.InDelta(t, 0, p.X, 1e-6*r2.Norm(a.Momentum()))
	assert.InDelta(t, 0, p.Y, 1e-6*r2.Norm(a.Momentum()))
}

func TestAccelerations_TouchingAndCoincidentPairsAreZero(t *testing.T) {
	var seq body.Sequence
	a := newBody(t, &seq, 1e24, r2.Vec{}, r2.Vec{})
	touching := newBody(t, &seq, 1e24, r2.Vec{X: a.Radius()}, r2.Vec{})

	field := ForceField{G: testG}.Accelerations([]*body.Body{a, touching})
	assert.Equal(t, r2.Vec{}, field[a.ID()])
	assert.Equal(t, r2.Vec{}, field[touching.ID()])

	coincident := newBody(t, &seq, 1e24, r2.Vec{}, r2.Vec{})
	field = ForceField{G: testG}.Accelerations([]*body.Body{a, coincident})
	for id, acc := range field {
		assert.False(t, math.IsNaN(acc.X) || math.IsNaN(acc.Y), "body %d has NaN acceleration", id)
		assert.Equal(t, r2.Vec{}, acc)
	}
}

func TestAccelerations_NetIsVectorSum(t *testing.T) {
	var seq body.Sequence
	centre := newBody(t, &seq, 1e20, r2.Vec{}, r2.Vec{})
	east := newBody(t, &seq, 1e24, r2.Vec{X: 1e9}, r2.Vec{})
	north := newBody(t, &seq, 2e24, r2.Vec{Y: 1e9}, r2.Vec{})

	field := ForceField{G: testG}.Accelerations([]*body.Body{centre, east, north})
	acc := field[centre.ID()]

	assert.InEpsilon(t, testG*1e24/1e18, acc.X, 1e-12)
	assert.InEpsilon(t, testG*2e24/1e18, acc.Y, 1e-12)
}

func TestSeparations_DirectionPointsToOther(t *testing.T) {
	var seq body.Sequence
	a := newBody(t, &seq, 1, r2.Vec{X: 1, Y: 1}, r2.Vec{})
	b := newBody(t, &seq, 1, r2.Vec{X: 4, Y: 5}, r2.Vec{})

	seps := Separations([]*body.Body{a, b})
	require.Len(t, seps, 2)
	assert.Equal(t, a.ID(), seps[0].From)
	assert.Equal(t, r2.Vec{X: 3, Y: 4}, seps[0].R)
	assert.Equal(t, 5.0, seps[0].Distance)
	assert.Equal(t, r2.Vec{X: -3, Y: -4}, seps[1].R)
}

func TestIntegrate_UsesUpdatedVelocity(t *testing.T) {
	var seq body.Sequence
	b := newBody(t, &seq, 1, r2.Vec{}, r2.Vec{X: 1})

	Integrate([]*body.Body{b}, Field{b.ID(): {X: 2}}, 10)

	// v = 1 + 2*10 = 21, p = 0 + 21*10
	assert.Equal(t, r2.Vec{X: 21}, b.Velocity)
	assert.Equal(t, r2.Vec{X: 210}, b.Position)
}

func TestLocaleOf(t *testing.T) {
	tests := []struct {
		p    r2.Vec
		want Locale
	}{
		{r2.Vec{}, Locale{0, 0}},
		{r2.Vec{X: 1, Y: 10}, Locale{0, 1}},
		{r2.Vec{X: -100, Y: 1e10}, Locale{-2, 10}},
		{r2.Vec{X: 3.3e5, Y: -3.3e5}, Locale{6, -6}},
		{r2.Vec{X: 3.1e10, Y: 3.2e10}, Locale{10, 11}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LocaleOf(tt.p), "LocaleOf(%v)", tt.p)
	}
}

func TestPrune(t *testing.T) {
	var seq body.Sequence
	domain := 3 * 1.496e11

	inside := newBody(t, &seq, 1, r2.Vec{X: 1.496e11}, r2.Vec{})
	uranus := newBody(t, &seq, 1, r2.Vec{X: 19 * 1.496e11}, r2.Vec{})
	neptune := newBody(t, &seq, 1, r2.Vec{X: 30 * 1.496e11}, r2.Vec{})
	farSouth := newBody(t, &seq, 1, r2.Vec{Y: -1e14}, r2.Vec{})

	input := []*body.Body{inside, uranus, neptune, farSouth}
	kept, pruned := Prune(input, domain)

	assert.Equal(t, []*body.Body{inside, uranus}, kept)
	assert.Equal(t, []*body.Body{neptune, farSouth}, pruned)
	assert.Len(t, input, 4, "input slice must not be modified")
}
