// Package body implements the masses that populate a simulation, and the
// mass-weighted aggregates (VirtualBody) the Barnes-Hut tree accumulates over
// them.
//
// Body's identity-based equality and Mass's construction panic follow
// original_source's physics/types.rs Body/Mass; VirtualBody's additive
// monoid follows physics/barneshut.rs's VirtualBody.
package body

import (
	"sync/atomic"

	"github.com/johnxnguyen/newton/vec2"
)

var nextID int64

// Body is a point mass with a position and velocity. Two bodies are equal
// exactly when they share an identity, never by comparing their fields: two
// distinct bodies may briefly occupy the same position and still must not be
// confused with one another.
type Body struct {
	id       int64
	Mass     float64
	Position vec2.Point
	Velocity vec2.Vector
}

// New constructs a Body with a fresh identity. It panics if mass is not
// strictly positive: a body with zero or negative mass is a construction
// error, not a runtime condition callers should expect to handle.
func New(mass float64, position vec2.Point, velocity vec2.Vector) *Body {
	if mass <= 0 {
		panic("body: mass must be strictly positive")
	}
	return &Body{
		id:       atomic.AddInt64(&nextID, 1),
		Mass:     mass,
		Position: position,
		Velocity: velocity,
	}
}

// Equal reports whether b and other are the same body.
func (b *Body) Equal(other *Body) bool {
	return b.id == other.id
}

// ApplyForce adjusts b's velocity by the impulse f/mass.
func (b *Body) ApplyForce(f vec2.Vector) {
	b.Velocity = b.Velocity.Add(f.Div(b.Mass))
}

// ApplyVelocity advances b's position by its current velocity.
func (b *Body) ApplyVelocity() {
	b.Position = b.Position.Add(b.Velocity)
}

// Centered is a mass located at a single point: the result of dividing a
// VirtualBody's mass-weighted position sum by its total mass.
type Centered struct {
	Mass     float64
	Position vec2.Point
}

// MassValue returns c's mass.
func (c Centered) MassValue() float64 { return c.Mass }

// Pos returns c's position.
func (c Centered) Pos() vec2.Point { return c.Position }

// MassValue returns b's mass.
func (b *Body) MassValue() float64 { return b.Mass }

// Pos returns b's position.
func (b *Body) Pos() vec2.Point { return b.Position }

// VirtualBody is the mass-weighted aggregate of zero or more bodies: a
// running (total mass, sum of mass*position) pair that forms a commutative
// monoid under Add, with the zero value as its identity.
type VirtualBody struct {
	Mass            float64
	WeightedPosition vec2.Vector
}

// FromBody returns the VirtualBody representing a single body.
func FromBody(b *Body) VirtualBody {
	return VirtualBody{
		Mass:             b.Mass,
		WeightedPosition: vec2.Vector{Dx: b.Position.X * b.Mass, Dy: b.Position.Y * b.Mass},
	}
}

// Add returns the aggregate of v and o.
func (v VirtualBody) Add(o VirtualBody) VirtualBody {
	return VirtualBody{
		Mass:             v.Mass + o.Mass,
		WeightedPosition: v.WeightedPosition.Add(o.WeightedPosition),
	}
}

// Sub returns v with o's contribution removed. It is the inverse of Add:
// v.Add(o).Sub(o) reproduces v.
func (v VirtualBody) Sub(o VirtualBody) VirtualBody {
	return VirtualBody{
		Mass:             v.Mass - o.Mass,
		WeightedPosition: v.WeightedPosition.Sub(o.WeightedPosition),
	}
}

// Centered divides v's weighted position by its total mass, yielding the
// aggregate's center of mass. It panics on a zero-mass VirtualBody, for
// which the center of mass is undefined.
func (v VirtualBody) Centered() Centered {
	if v.Mass == 0 {
		panic("body: center of mass is undefined for a zero-mass virtual body")
	}
	return Centered{
		Mass:     v.Mass,
		Position: vec2.Point{X: v.WeightedPosition.Dx / v.Mass, Y: v.WeightedPosition.Dy / v.Mass},
	}
}
