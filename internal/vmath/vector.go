// Package vmath holds the small amount of linear algebra the engine needs:
// arbitrary-arity vectors, the fixed 2D value type bodies carry, and 2x2
// rotation matrices.
package vmath

import (
	"fmt"
	"math"
)

// Vector is an arbitrary-arity vector. Operations never mutate their operands.
type Vector []float64

func (v Vector) Clone() Vector {
	c := make(Vector, len(v))
	copy(c, v)
	return c
}

func (v Vector) Norm() float64 {
	sum := 0.0
	for _, e := range v {
		sum += e * e
	}
	return math.Sqrt(sum)
}

func checkArity(a, b Vector) error {
	if len(a) != len(b) {
		return fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}
	return nil
}

// Add returns a + b component-wise.
func Add(a, b Vector) (Vector, error) {
	if err := checkArity(a, b); err != nil {
		return nil, err
	}
	result := make(Vector, len(a))
	for i := range a {
		result[i] = a[i] + b[i]
	}
	return result, nil
}

// Sub returns a - b component-wise.
func Sub(a, b Vector) (Vector, error) {
	if err := checkArity(a, b); err != nil {
		return nil, err
	}
	result := make(Vector, len(a))
	for i := range a {
		result[i] = a[i] - b[i]
	}
	return result, nil
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Vector) (float64, error) {
	if err := checkArity(a, b); err != nil {
		return 0, err
	}
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum), nil
}

// Vec2 is the fixed-arity value type carried by bodies.
type Vec2 struct {
	X, Y float64
}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }

func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

func (v Vec2) Dist(o Vec2) float64 { return v.Sub(o).Len() }

func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// Vector converts v to the arbitrary-arity form used by the matrix helpers.
func (v Vec2) Vector() Vector { return Vector{v.X, v.Y} }

// Vec2FromVector converts a 2-component Vector back to a Vec2.
func Vec2FromVector(v Vector) (Vec2, error) {
	if len(v) != 2 {
		return Vec2{}, fmt.Errorf("%w: want 2 components, got %d", ErrDimensionMismatch, len(v))
	}
	return Vec2{v[0], v[1]}, nil
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%.4g, %.4g)", v.X, v.Y)
}
