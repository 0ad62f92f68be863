// Package force implements the pairwise gravitational kernel shared by both
// force engines, and the fixed external attractor supplement.
//
// Grounded on original_source's physics/force.rs (Gravity/Attractor, the
// same g/min_dist shape and coincident-position short circuit) and on
// gonum.org/v1/gonum/spatial/barneshut's Gravity2 (the d2 == 0 -> zero
// vector guard and the inverse-square-times-unit-vector return shape).
package force

import (
	"github.com/johnxnguyen/newton/vec2"
)

// Massive is anything with a mass and a position: both body.Body and
// body.Centered satisfy it, so the kernel works uniformly over real bodies
// and Barnes-Hut aggregates.
type Massive interface {
	MassValue() float64
	Pos() vec2.Point
}

// Gravity computes the Newtonian gravitational force between two masses,
// with a minimum separation distance below which the force is clamped, to
// avoid a singularity as two bodies approach the same point.
type Gravity struct {
	G       float64
	MinDist float64
}

// NewGravity returns a Gravity kernel with gravitational constant g and
// minimum separation distance minDist. It panics if minDist is not strictly
// positive.
func NewGravity(g, minDist float64) Gravity {
	if minDist <= 0 {
		panic("force: min distance must be strictly positive")
	}
	return Gravity{G: g, MinDist: minDist}
}

// Between returns the force exerted on a by b. If a and b occupy exactly
// the same position, the force is undefined and the zero vector is
// returned rather than dividing by zero.
func (g Gravity) Between(a, b Massive) vec2.Vector {
	if a.Pos() == b.Pos() {
		return vec2.Vector{}
	}
	d := vec2.Difference(b.Pos(), a.Pos())
	dist := d.Magnitude()
	if dist < g.MinDist {
		dist = g.MinDist
	}
	direction, ok := d.Normalized()
	if !ok {
		return vec2.Vector{}
	}
	magnitude := g.G * a.MassValue() * b.MassValue() / (dist * dist)
	return direction.Scale(magnitude)
}

// Attractor is a fixed external mass that contributes to the force on every
// body in a field but is itself never moved or affected by other bodies.
type Attractor struct {
	Mass     float64
	Position vec2.Point
	Gravity  Gravity
}

// MassValue returns a's mass.
func (a Attractor) MassValue() float64 { return a.Mass }

// Pos returns a's fixed position.
func (a Attractor) Pos() vec2.Point { return a.Position }

// ForceOn returns the force a exerts on m.
func (a Attractor) ForceOn(m Massive) vec2.Vector {
	return a.Gravity.Between(m, a)
}
