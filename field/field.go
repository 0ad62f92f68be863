// Package field implements the two force engines a simulation step can use:
// a brute-force O(n^2) oracle, and the Barnes-Hut approximation.
//
// Grounded on original_source's physics/types.rs (the Field trait,
// BruteForceField, BHField: both rebuild their spatial structures fresh each
// call and carry an optional Attractor) and on
// gonum.org/v1/gonum/spatial/barneshut's Plane (Reset-then-ForceOn per
// step, theta threaded through as a parameter rather than hard-coded).
package field

import (
	"github.com/johnxnguyen/newton/barneshut"
	"github.com/johnxnguyen/newton/body"
	"github.com/johnxnguyen/newton/force"
	"github.com/johnxnguyen/newton/quad"
	"github.com/johnxnguyen/newton/vec2"
)

// defaultTheta is used by BarnesHut when Theta is left at its zero value.
const defaultTheta = 0.5

// Field computes, for a given set of bodies, the force acting on each one.
type Field interface {
	Forces(bodies []*body.Body) []vec2.Vector
}

// BruteForce computes the exact pairwise gravitational force on each body by
// summing its interaction with every other body, including an optional
// Attractor. It is the oracle the Barnes-Hut approximation is checked
// against.
type BruteForce struct {
	Gravity   force.Gravity
	Attractor *force.Attractor
}

// Forces implements Field.
func (f BruteForce) Forces(bodies []*body.Body) []vec2.Vector {
	out := make([]vec2.Vector, len(bodies))
	for i, b := range bodies {
		var total vec2.Vector
		for _, other := range bodies {
			total.AddAssign(f.Gravity.Between(b, other))
		}
		if f.Attractor != nil {
			total.AddAssign(f.Attractor.ForceOn(b))
		}
		out[i] = total
	}
	return out
}

// BarnesHut approximates the pairwise gravitational force on each body using
// a fresh quadtree built each call, collapsing distant clusters of bodies
// into a single aggregate whenever the ratio of a node's diameter to its
// distance from the queried body falls below 1/Theta.
type BarnesHut struct {
	Root      quad.Square
	Gravity   force.Gravity
	Theta     float64
	Attractor *force.Attractor
}

func (f BarnesHut) theta() float64 {
	if f.Theta == 0 {
		return defaultTheta
	}
	return f.Theta
}

// Forces implements Field.
func (f BarnesHut) Forces(bodies []*body.Body) []vec2.Vector {
	tree := barneshut.New(f.Root)
	for _, b := range bodies {
		tree.Add(b)
	}

	theta := f.theta()
	out := make([]vec2.Vector, len(bodies))
	for i, b := range bodies {
		var total vec2.Vector
		for _, vb := range tree.VirtualBodies(b, theta) {
			total.AddAssign(f.Gravity.Between(b, vb))
		}
		if f.Attractor != nil {
			total.AddAssign(f.Attractor.ForceOn(b))
		}
		out[i] = total
	}
	return out
}
