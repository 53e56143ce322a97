package collision

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/ballsim/internal/vmath"
)

const tol = 1e-9

func near(a, b vmath.Vec2) bool {
	return math.Abs(a.X-b.X) < tol && math.Abs(a.Y-b.Y) < tol
}

func TestResolveHeadOn(t *testing.T) {
	p1, p2 := vmath.V(0, 0), vmath.V(15, 0)
	if ok, err := Overlaps(p1, 10, p2, 10); err != nil || !ok {
		t.Fatalf("expected overlap, got %v %v", ok, err)
	}

	v1, v2, err := Resolve(p1, p2, vmath.V(5, 0), vmath.V(-5, 0), 1, 1)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if !near(v1, vmath.V(-5, 0)) || !near(v2, vmath.V(5, 0)) {
		t.Errorf("got %v %v, want (-5,0) (5,0)", v1, v2)
	}
}

func TestResolveVertical(t *testing.T) {
	// body 1 falling onto a resting body 2 directly below it
	v1, v2, err := Resolve(vmath.V(0, 0), vmath.V(0, 20), vmath.V(0, 3), vmath.V(0, 0), 1, 1)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if !near(v1, vmath.V(0, 0)) || !near(v2, vmath.V(0, 3)) {
		t.Errorf("got %v %v, want (0,0) (0,3)", v1, v2)
	}
}

func TestResolveKeepsTangential(t *testing.T) {
	// contact along x: y components are tangential and must survive
	v1, v2, err := Resolve(vmath.V(0, 0), vmath.V(10, 0), vmath.V(2, 7), vmath.V(-1, -3), 1, 1)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if !near(v1, vmath.V(-1, 7)) || !near(v2, vmath.V(2, -3)) {
		t.Errorf("got %v %v, want (-1,7) (2,-3)", v1, v2)
	}
}

func TestResolveConservation(t *testing.T) {
	tests := []struct {
		name   string
		p1, p2 vmath.Vec2
		v1, v2 vmath.Vec2
		m1, m2 float64
	}{
		{"oblique equal", vmath.V(0, 0), vmath.V(6, 8), vmath.V(1, 2), vmath.V(-3, 0.5), 1, 1},
		{"heavy light", vmath.V(3, -2), vmath.V(-4, 5), vmath.V(0, 0), vmath.V(2, -2), 10, 1},
		{"light heavy", vmath.V(-1, -1), vmath.V(1, 2), vmath.V(4, 4), vmath.V(0, -1), 0.5, 3},
		{"diagonal", vmath.V(0, 0), vmath.V(5, 5), vmath.V(1, 1), vmath.V(-1, -1), 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u1, u2, err := Resolve(tt.p1, tt.p2, tt.v1, tt.v2, tt.m1, tt.m2)
			if err != nil {
				t.Fatalf("resolve failed: %v", err)
			}

			before := tt.v1.Scale(tt.m1).Add(tt.v2.Scale(tt.m2))
			after := u1.Scale(tt.m1).Add(u2.Scale(tt.m2))
			if !near(before, after) {
				t.Errorf("momentum %v -> %v", before, after)
			}

			keBefore := tt.m1*tt.v1.Dot(tt.v1) + tt.m2*tt.v2.Dot(tt.v2)
			keAfter := tt.m1*u1.Dot(u1) + tt.m2*u2.Dot(u2)
			if math.Abs(keBefore-keAfter) > 1e-8 {
				t.Errorf("kinetic energy %v -> %v", keBefore, keAfter)
			}

			// tangential components are untouched
			n := tt.p1.Sub(tt.p2).Scale(1 / tt.p1.Dist(tt.p2))
			tan := vmath.V(-n.Y, n.X)
			if math.Abs(tt.v1.Dot(tan)-u1.Dot(tan)) > tol || math.Abs(tt.v2.Dot(tan)-u2.Dot(tan)) > tol {
				t.Error("tangential component changed")
			}
		})
	}
}

func TestNormalFrameFirstComponentIsNormal(t *testing.T) {
	displacements := []vmath.Vec2{
		vmath.V(1, 0), vmath.V(0, 1), vmath.V(-3, 4), vmath.V(-2, -2), vmath.V(7, -1),
	}
	v := vmath.V(2.5, -1.25)

	for _, d := range displacements {
		rot := NormalFrame(AngleDegrees(d))
		r, err := vmath.MulVec(v.Vector(), rot)
		if err != nil {
			t.Fatalf("mul failed: %v", err)
		}
		n := d.Scale(1 / d.Len())
		if math.Abs(r[0]-v.Dot(n)) > tol {
			t.Errorf("d=%v: normal component %v, want %v", d, r[0], v.Dot(n))
		}
	}
}

func TestAngleDegrees(t *testing.T) {
	tests := []struct {
		d    vmath.Vec2
		want float64
	}{
		{vmath.V(0, 1), 0},
		{vmath.V(1, 0), 90},
		{vmath.V(-1, 0), -90},
		{vmath.V(0, -1), 180},
		{vmath.V(1, 1), 45},
	}

	for _, tt := range tests {
		if got := AngleDegrees(tt.d); math.Abs(got-tt.want) > tol {
			t.Errorf("AngleDegrees(%v) = %v, want %v", tt.d, got, tt.want)
		}
	}
}

func TestElasticSpeeds(t *testing.T) {
	tests := []struct {
		m1, m2, v1, v2 float64
	}{
		{1, 1, 5, -5},
		{1, 1, 0.1, 1e20},
		{2, 1, 3, 0},
		{1, 5, -2, 4},
		{0.25, 40, 10, -0.5},
		{3, 3, -7, -7},
	}

	for _, tt := range tests {
		u1, u2 := ElasticSpeeds(tt.m1, tt.m2, tt.v1, tt.v2)

		p0 := tt.m1*tt.v1 + tt.m2*tt.v2
		p1 := tt.m1*u1 + tt.m2*u2
		if math.Abs(p0-p1) > 1e-9*math.Max(1, math.Abs(p0)) {
			t.Errorf("%+v: momentum %v -> %v", tt, p0, p1)
		}

		e0 := tt.m1*tt.v1*tt.v1 + tt.m2*tt.v2*tt.v2
		e1 := tt.m1*u1*u1 + tt.m2*u2*u2
		if math.Abs(e0-e1) > 1e-9*math.Max(1, e0) {
			t.Errorf("%+v: energy %v -> %v", tt, e0, e1)
		}

		if tt.m1 == tt.m2 && (u1 != tt.v2 || u2 != tt.v1) {
			t.Errorf("%+v: equal masses must swap exactly, got %v %v", tt, u1, u2)
		}
	}
}

func TestDetectBoundary(t *testing.T) {
	p1, p2 := vmath.V(0, 0), vmath.V(20, 0)

	c, ok, err := Detect(p1, 10, p2, 10)
	if err != nil {
		t.Fatalf("detect failed: %v", err)
	}
	if !ok {
		t.Fatal("circles at exactly r1+r2 must collide")
	}
	if c.Depth != 0 || c.Distance != 20 {
		t.Errorf("unexpected contact %+v", c)
	}

	if ok, _ := Overlaps(p1, 10, vmath.V(20+1e-9, 0), 10); ok {
		t.Error("circles beyond r1+r2 must not collide")
	}

	if ok, _ := Overlaps(vmath.V(1, 1), 3, vmath.V(2, 2), 1); !ok {
		t.Error("expected nested circles to collide")
	}
}

func TestDetectDimensionMismatch(t *testing.T) {
	tests := []struct {
		name   string
		p1, p2 vmath.Vector
	}{
		{"mixed arity", vmath.Vector{0, 0}, vmath.Vector{0, 0, 0}},
		{"three dimensions", vmath.Vector{0, 0, 0}, vmath.Vector{1, 0, 0}},
		{"one dimension", vmath.Vector{0}, vmath.Vector{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok, err := detect(tt.p1, 10, tt.p2, 10)
			if !errors.Is(err, vmath.ErrDimensionMismatch) {
				t.Errorf("expected ErrDimensionMismatch, got %v", err)
			}
			if ok {
				t.Error("failed detection must not report a contact")
			}
		})
	}
}
