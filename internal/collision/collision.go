// Package collision detects overlapping circles and resolves elastic
// collisions between them in the frame aligned with the collision normal.
package collision

import (
	"fmt"
	"math"

	"github.com/san-kum/ballsim/internal/vmath"
)

// Contact describes two overlapping circles.
type Contact struct {
	Distance float64
	Depth    float64
	Angle    float64
}

// AngleDegrees returns the bearing of d in degrees, measured with
// atan2(x, y): zero along +y, positive toward +x.
func AngleDegrees(d vmath.Vec2) float64 {
	return math.Atan2(d.X, d.Y) * 180 / math.Pi
}

// NormalFrame returns the rotation whose first column is the unit collision
// normal for the bearing produced by AngleDegrees. A row vector multiplied by
// it has its normal component first and its tangential component second.
func NormalFrame(bearing float64) vmath.Matrix {
	return vmath.Rotation(90 - bearing)
}

// Detect reports whether two circles touch or overlap. The boundary is
// inclusive: circles at exactly r1+r2 collide.
func Detect(p1 vmath.Vec2, r1 float64, p2 vmath.Vec2, r2 float64) (Contact, bool, error) {
	return detect(p1.Vector(), r1, p2.Vector(), r2)
}

func detect(p1 vmath.Vector, r1 float64, p2 vmath.Vector, r2 float64) (Contact, bool, error) {
	dist, err := vmath.Distance(p1, p2)
	if err != nil {
		return Contact{}, false, fmt.Errorf("collision: distance: %w", err)
	}
	d, err := vmath.Sub(p1, p2)
	if err != nil {
		return Contact{}, false, fmt.Errorf("collision: displacement: %w", err)
	}
	dv, err := vmath.Vec2FromVector(d)
	if err != nil {
		return Contact{}, false, fmt.Errorf("collision: displacement: %w", err)
	}
	if dist > r1+r2 {
		return Contact{}, false, nil
	}
	return Contact{
		Distance: dist,
		Depth:    r1 + r2 - dist,
		Angle:    AngleDegrees(dv),
	}, true, nil
}

func Overlaps(p1 vmath.Vec2, r1 float64, p2 vmath.Vec2, r2 float64) (bool, error) {
	_, ok, err := Detect(p1, r1, p2, r2)
	return ok, err
}

// ElasticSpeeds solves the 1D elastic collision of masses m1, m2 moving at
// v1, v2 along one axis and returns their velocities afterwards.
func ElasticSpeeds(m1, m2, v1, v2 float64) (u1, u2 float64) {
	if m1 == m2 {
		return v2, v1
	}
	u2 = (2*m1*v1 + m2*v2 - m1*v2) / (m1 + m2)
	u1 = v2 + u2 - v1
	return u1, u2
}

// Resolve returns the post-collision velocities of two bodies at p1 and p2.
// Only the velocity components along the line of centres change; positions
// are left to the caller and no penetration correction is applied.
func Resolve(p1, p2, v1, v2 vmath.Vec2, m1, m2 float64) (vmath.Vec2, vmath.Vec2, error) {
	d, err := vmath.Sub(p1.Vector(), p2.Vector())
	if err != nil {
		return v1, v2, fmt.Errorf("collision: displacement: %w", err)
	}
	dv, err := vmath.Vec2FromVector(d)
	if err != nil {
		return v1, v2, fmt.Errorf("collision: displacement: %w", err)
	}

	rot := NormalFrame(AngleDegrees(dv))
	r1, err := vmath.MulVec(v1.Vector(), rot)
	if err != nil {
		return v1, v2, fmt.Errorf("collision: rotate v1: %w", err)
	}
	r2, err := vmath.MulVec(v2.Vector(), rot)
	if err != nil {
		return v1, v2, fmt.Errorf("collision: rotate v2: %w", err)
	}

	r1[0], r2[0] = ElasticSpeeds(m1, m2, r1[0], r2[0])

	inv, err := vmath.Transpose(rot)
	if err != nil {
		return v1, v2, fmt.Errorf("collision: inverse rotation: %w", err)
	}
	f1, err := vmath.MulVec(r1, inv)
	if err != nil {
		return v1, v2, fmt.Errorf("collision: rotate back v1: %w", err)
	}
	f2, err := vmath.MulVec(r2, inv)
	if err != nil {
		return v1, v2, fmt.Errorf("collision: rotate back v2: %w", err)
	}

	out1, err := vmath.Vec2FromVector(f1)
	if err != nil {
		return v1, v2, err
	}
	out2, err := vmath.Vec2FromVector(f2)
	if err != nil {
		return v1, v2, err
	}
	return out1, out2, nil
}
