// Package sim implements the Environment: the per-step loop that applies a
// field's forces to a population of bodies and publishes the resulting
// positions.
//
// Grounded on original_source's physics/types.rs Environment::update: the
// exact three-phase order (compute forces from every field, apply_force to
// every body, then apply_velocity to every body) before anything is
// written out.
package sim

import (
	"github.com/johnxnguyen/newton/body"
	"github.com/johnxnguyen/newton/field"
	"github.com/johnxnguyen/newton/vec2"
)

// FrameSink receives the positions of every body after a completed step, in
// the same order the bodies were given to Environment.
type FrameSink interface {
	WriteFrame(points []vec2.Point) error
}

// Environment holds the bodies of a simulation and the fields acting on
// them, and advances them one step at a time.
type Environment struct {
	Bodies []*body.Body
	Fields []field.Field
	Sink   FrameSink
}

// New returns an Environment over bodies, acted on by fields, publishing
// each step's positions to sink.
func New(bodies []*body.Body, fields []field.Field, sink FrameSink) *Environment {
	return &Environment{Bodies: bodies, Fields: fields, Sink: sink}
}

// Step advances the environment by one unit of time: every field's forces
// are applied to the bodies' velocities, then every body's position is
// advanced by its velocity, and finally the resulting positions are
// published to the sink, in that fixed order.
func (e *Environment) Step() error {
	for _, f := range e.Fields {
		forces := f.Forces(e.Bodies)
		for i, b := range e.Bodies {
			b.ApplyForce(forces[i])
		}
	}

	for _, b := range e.Bodies {
		b.ApplyVelocity()
	}

	points := make([]vec2.Point, len(e.Bodies))
	for i, b := range e.Bodies {
		points[i] = b.Position
	}
	return e.Sink.WriteFrame(points)
}

// Run advances the environment by frames steps, stopping at the first error
// returned by Step.
func (e *Environment) Run(frames uint) error {
	for i := uint(0); i < frames; i++ {
		if err := e.Step(); err != nil {
			return err
		}
	}
	return nil
}
