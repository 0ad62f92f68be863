package force

import (
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/johnxnguyen/newton/body"
	"github.com/johnxnguyen/newton/vec2"
)

const tolerance = 1e-7

func TestNewGravityPanicsOnNonPositiveMinDist(t *testing.T) {
	for _, d := range []float64{0, -1} {
		func() {
			defer func() {
				if r := recover(); r == nil {
					t.Errorf("NewGravity(_, %v) should panic", d)
				}
			}()
			NewGravity(1, d)
		}()
	}
}

func TestBetweenCoincidentPositionsIsZero(t *testing.T) {
	g := NewGravity(1, 0.01)
	a := body.New(1, vec2.Point{X: 1, Y: 1}, vec2.Vector{})
	b := body.New(1, vec2.Point{X: 1, Y: 1}, vec2.Vector{})
	got := g.Between(a, b)
	if got != (vec2.Vector{}) {
		t.Errorf("Between() for coincident bodies = %v, want zero vector", got)
	}
}

func TestBetweenMagnitudeAndDirection(t *testing.T) {
	g := NewGravity(1, 0.01)
	a := body.New(2, vec2.Point{X: 0, Y: 0}, vec2.Vector{})
	b := body.New(3, vec2.Point{X: 3, Y: 4}, vec2.Vector{}) // distance 5

	got := g.Between(a, b)
	wantMagnitude := (1.0 * 2 * 3) / (5 * 5)
	if gotMag := got.Magnitude(); !scalar.EqualWithinAbs(gotMag, wantMagnitude, tolerance) {
		t.Errorf("|Between()| = %v, want %v", gotMag, wantMagnitude)
	}
	wantDirection := vec2.Vector{Dx: 3.0 / 5, Dy: 4.0 / 5}
	gotDirection, ok := got.Normalized()
	if !ok {
		t.Fatal("Between() returned a zero vector unexpectedly")
	}
	if !gotDirection.Equal(wantDirection) {
		t.Errorf("direction of Between() = %v, want %v", gotDirection, wantDirection)
	}
}

func TestBetweenClampsToMinDist(t *testing.T) {
	g := NewGravity(1, 10)
	a := body.New(1, vec2.Point{X: 0, Y: 0}, vec2.Vector{})
	b := body.New(1, vec2.Point{X: 1, Y: 0}, vec2.Vector{}) // distance 1, below min_dist

	got := g.Between(a, b)
	want := 1.0 * 1 * 1 / (10 * 10)
	if gotMag := got.Magnitude(); !scalar.EqualWithinAbs(gotMag, want, tolerance) {
		t.Errorf("clamped |Between()| = %v, want %v", gotMag, want)
	}
}

func TestBetweenIsAntisymmetric(t *testing.T) {
	g := NewGravity(1, 0.01)
	a := body.New(2, vec2.Point{X: 0, Y: 0}, vec2.Vector{})
	b := body.New(5, vec2.Point{X: 1, Y: 2}, vec2.Vector{})

	fab := g.Between(a, b)
	fba := g.Between(b, a)
	if !fab.Add(fba).Equal(vec2.Vector{}) {
		t.Errorf("Between(a,b) + Between(b,a) = %v, want zero", fab.Add(fba))
	}
}

func TestAttractorForceOn(t *testing.T) {
	g := NewGravity(1, 0.01)
	attractor := Attractor{Mass: 10, Position: vec2.Point{X: 0, Y: 0}, Gravity: g}
	m := body.New(1, vec2.Point{X: 0, Y: 5}, vec2.Vector{})

	got := attractor.ForceOn(m)
	direct := g.Between(m, attractor)
	if !got.Equal(direct) {
		t.Errorf("ForceOn() = %v, want %v", got, direct)
	}
}
