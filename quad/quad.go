// Package quad implements the axis-aligned squares used to partition the
// plane for the Barnes-Hut tree.
//
// The quadrant dispatch follows the shape of
// gonum.org/v1/gonum/spatial/barneshut's Box2.quadrant/Box2.split (a midpoint
// test against four named regions), adapted to the power-of-two edge
// constraint the tree's depth cap requires.
package quad

import (
	"errors"
	"math"

	"github.com/johnxnguyen/newton/vec2"
)

// ErrOutOfBounds is returned when a point lies outside a square being
// queried for its quadrant.
var ErrOutOfBounds = errors.New("quad: point is outside the square")

// Quadrant names one of a Square's four children. The order NW, NE, SW, SE
// is the fixed tie-break order used whenever a point lies on a shared
// boundary between quadrants.
type Quadrant int

const (
	NW Quadrant = iota
	NE
	SW
	SE
)

func (q Quadrant) String() string {
	switch q {
	case NW:
		return "NW"
	case NE:
		return "NE"
	case SW:
		return "SW"
	case SE:
		return "SE"
	default:
		return "quad.Quadrant(?)"
	}
}

// Square is an axis-aligned square with its lower-left corner at (X, Y) and
// an edge length of 2^K.
type Square struct {
	X, Y float64
	K    int
}

// New returns the square with lower-left corner (x, y) and edge 2^k.
func New(x, y float64, k int) Square {
	return Square{X: x, Y: y, K: k}
}

// Size returns the edge length of s.
func (s Square) Size() float64 {
	return math.Ldexp(1, s.K)
}

// Diameter returns the length of s's diagonal.
func (s Square) Diameter() float64 {
	return s.Size() * math.Sqrt2
}

// IsUnit reports whether s is a unit square (K == 0): the smallest square the
// tree is allowed to subdivide into.
func (s Square) IsUnit() bool {
	return s.K == 0
}

// Contains reports whether p lies within s's closed bounds.
func (s Square) Contains(p vec2.Point) bool {
	size := s.Size()
	return p.X >= s.X && p.X <= s.X+size && p.Y >= s.Y && p.Y <= s.Y+size
}

// Quadrants splits s into its four equal sub-squares, in NW, NE, SW, SE
// order. It panics if s is a unit square: a unit square is the smallest
// square the tree subdivides into, and splitting it further is a programmer
// error.
func (s Square) Quadrants() [4]Square {
	if s.IsUnit() {
		panic("quad: cannot split a unit square")
	}
	half := s.Size() / 2
	k := s.K - 1
	return [4]Square{
		NW: New(s.X, s.Y+half, k),
		NE: New(s.X+half, s.Y+half, k),
		SW: New(s.X, s.Y, k),
		SE: New(s.X+half, s.Y, k),
	}
}

// Quadrant returns the quadrant of s containing p, along with that
// quadrant's square. When p lies exactly on a boundary shared by more than
// one quadrant, the first quadrant in NW, NE, SW, SE order that contains p
// is returned. It reports ErrOutOfBounds if p does not lie within s.
func (s Square) Quadrant(p vec2.Point) (Quadrant, Square, error) {
	if !s.Contains(p) {
		return 0, Square{}, ErrOutOfBounds
	}
	for i, q := range s.Quadrants() {
		if q.Contains(p) {
			return Quadrant(i), q, nil
		}
	}
	panic("quad: point contained in square but in none of its quadrants")
}
