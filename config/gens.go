// Package config loads a declarative YAML document describing named
// generators, body templates, and a systems tree, and flattens it into the
// ordered list of bodies an Environment consumes.
//
// Grounded on original_source's util/gens.rs (UniformGen, MassGen,
// RotationGen's degrees-to-radians conversion and range normalization,
// VelocityGen) and util/distribution.rs (the gens-then-bodies-then-systems
// two-pass document shape), completed here: the original left distribution.rs
// an unfinished draft (its own comments: "need to give back errors instead
// of unwrapping", a stubbed parse_bod). This package replaces its
// yaml_rust/panic-on-unwrap approach with gopkg.in/yaml.v3 and the error
// kinds below, following gazed-vu/load/shd.go's yaml.Unmarshal idiom.
package config

import (
	"math"

	"golang.org/x/exp/rand"

	"github.com/johnxnguyen/newton/vec2"
)

// UniformGen draws float64 values uniformly from a closed range
// [Low, High], using a caller-supplied random source so that a simulation's
// initial configuration can be reproduced deterministically.
type UniformGen struct {
	Low, High float64
	rnd       *rand.Rand
}

// NewUniformGen returns a generator over [low, high], sourced from src. It
// panics if low is greater than high.
func NewUniformGen(low, high float64, src rand.Source) UniformGen {
	if low > high {
		panic("config: generator range low must not exceed high")
	}
	return UniformGen{Low: low, High: high, rnd: rand.New(src)}
}

// Next returns the next value in the range.
func (g UniformGen) Next() float64 {
	return g.Low + (g.High-g.Low)*g.rnd.Float64()
}

// MassGen generates strictly positive masses uniformly within a closed
// range.
type MassGen struct {
	gen UniformGen
}

// NewMassGen returns a mass generator over [low, high]. It panics if either
// bound is not strictly positive: a generator that could ever produce a
// non-positive mass cannot be used to construct a body.
func NewMassGen(low, high float64, src rand.Source) MassGen {
	if low <= 0 || high <= 0 {
		panic("config: mass generator requires a strictly positive range")
	}
	return MassGen{gen: NewUniformGen(low, high, src)}
}

// Next returns the next mass.
func (g MassGen) Next() float64 { return g.gen.Next() }

// TranslationGen generates offsets uniformly within a rectangle.
type TranslationGen struct {
	x, y UniformGen
}

// NewTranslationGen returns a translation generator over the rectangle
// [xLow, xHigh] x [yLow, yHigh].
func NewTranslationGen(xLow, xHigh, yLow, yHigh float64, src rand.Source) TranslationGen {
	return TranslationGen{x: NewUniformGen(xLow, xHigh, src), y: NewUniformGen(yLow, yHigh, src)}
}

// Next returns the next offset.
func (g TranslationGen) Next() vec2.Vector {
	return vec2.Vector{Dx: g.x.Next(), Dy: g.y.Next()}
}

// VelocityGen generates velocities uniformly within a rectangle.
type VelocityGen struct {
	dx, dy UniformGen
}

// NewVelocityGen returns a velocity generator over
// [dxLow, dxHigh] x [dyLow, dyHigh].
func NewVelocityGen(dxLow, dxHigh, dyLow, dyHigh float64, src rand.Source) VelocityGen {
	return VelocityGen{dx: NewUniformGen(dxLow, dxHigh, src), dy: NewUniformGen(dyLow, dyHigh, src)}
}

// Next returns the next velocity.
func (g VelocityGen) Next() vec2.Vector {
	return vec2.Vector{Dx: g.dx.Next(), Dy: g.dy.Next()}
}

// RotationGen generates angles, in radians, uniformly within a closed
// range normalized to (-2π, 2π].
type RotationGen struct {
	gen UniformGen
}

// NewRotationGenRadians returns a rotation generator over [low, high]
// radians, after normalizing the range.
func NewRotationGenRadians(low, high float64, src rand.Source) RotationGen {
	low, high = normalizeRotationRange(low, high)
	return RotationGen{gen: NewUniformGen(low, high, src)}
}

// NewRotationGenDegrees returns a rotation generator over [low, high]
// degrees, converted to radians and normalized.
func NewRotationGenDegrees(low, high float64, src rand.Source) RotationGen {
	return NewRotationGenRadians(degreesToRadians(low), degreesToRadians(high), src)
}

// Next returns the next angle, in radians.
func (g RotationGen) Next() float64 { return g.gen.Next() }

func degreesToRadians(d float64) float64 {
	return d * math.Pi / 180
}

// normalizeRotationRange brings low and high into (-2π, 2π] by repeatedly
// adding or subtracting a full turn, matching the bound RotationGen
// enforces on every range it is given.
func normalizeRotationRange(low, high float64) (float64, float64) {
	const twoPi = 2 * math.Pi
	for low+twoPi <= 0 {
		low += twoPi
	}
	for high-twoPi > 0 {
		high -= twoPi
	}
	return low, high
}
