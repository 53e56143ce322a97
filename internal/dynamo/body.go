package dynamo

import (
	"fmt"
	"image/color"
	"math"

	"github.com/san-kum/ballsim/internal/vmath"
)

// DefaultColor is the grey used when no color is configured.
var DefaultColor = color.RGBA{R: 125, G: 125, B: 125, A: 255}

// Body is one simulated circle. Gravity and Friction already include the
// global constants; a zero Gravity disables vertical acceleration.
type Body struct {
	Pos      vmath.Vec2
	Vel      vmath.Vec2
	Radius   float64
	Mass     float64
	Gravity  float64
	Friction float64

	// Rendering attributes; ignored by the physics.
	Color       color.RGBA
	BorderColor color.RGBA
}

// Integrate advances the body by one unit time step: gravity plus
// proportional damping on the vertical channel, damping alone on the
// horizontal one, then an explicit Euler position update.
func (b *Body) Integrate() {
	b.Vel.Y += b.Gravity - b.Vel.Y*b.Friction
	b.Vel.X += -b.Vel.X * b.Friction
	b.Pos = b.Pos.Add(b.Vel)
}

func (b Body) Validate() error {
	if !(b.Radius > 0) || !(b.Mass > 0) {
		return fmt.Errorf("%w: radius %v, mass %v", ErrInvalidBody, b.Radius, b.Mass)
	}
	if b.Gravity < 0 || b.Friction < 0 {
		return fmt.Errorf("%w: negative coefficient", ErrInvalidBody)
	}
	if !b.Pos.IsFinite() || !b.Vel.IsFinite() || !finite(b.Radius, b.Mass, b.Gravity, b.Friction) {
		return fmt.Errorf("%w: non-finite value", ErrInvalidBody)
	}
	return nil
}

// TerminalVelocity is the vertical speed the body settles at, or +Inf for
// a body with gravity and no friction.
func (b Body) TerminalVelocity() float64 {
	if b.Friction == 0 {
		if b.Gravity == 0 {
			return 0
		}
		return math.Inf(1)
	}
	return b.Gravity / b.Friction
}

func (b Body) Speed() float64 { return b.Vel.Len() }

func (b Body) Momentum() vmath.Vec2 { return b.Vel.Scale(b.Mass) }

func (b Body) KineticEnergy() float64 { return 0.5 * b.Mass * b.Vel.Dot(b.Vel) }

// SpawnParams describe a body in coefficient form. Mass must be positive;
// DefaultSpawn and the config loader supply the default of 1.
type SpawnParams struct {
	Pos          vmath.Vec2
	Vel          vmath.Vec2
	Radius       float64
	GravityCoef  float64
	FrictionCoef float64
	Mass         float64
	Color        color.RGBA
	BorderColor  color.RGBA
}

// DefaultSpawn is what a pointer press creates.
func DefaultSpawn(pos vmath.Vec2) SpawnParams {
	return SpawnParams{
		Pos:          pos,
		Radius:       50,
		GravityCoef:  1,
		FrictionCoef: 1,
		Mass:         1,
		Color:        DefaultColor,
		BorderColor:  DefaultColor,
	}
}

// Body builds the body these parameters describe under constants c.
func (p SpawnParams) Body(c Constants) (Body, error) {
	if p.GravityCoef < 0 || p.FrictionCoef < 0 {
		return Body{}, fmt.Errorf("%w: negative coefficient", ErrInvalidBody)
	}
	col, border := p.Color, p.BorderColor
	if col == (color.RGBA{}) {
		col = DefaultColor
	}
	if border == (color.RGBA{}) {
		border = DefaultColor
	}
	b := Body{
		Pos:         p.Pos,
		Vel:         p.Vel,
		Radius:      p.Radius,
		Mass:        p.Mass,
		Gravity:     p.GravityCoef * c.Gravity,
		Friction:    p.FrictionCoef * c.AirFriction(),
		Color:       col,
		BorderColor: border,
	}
	if err := b.Validate(); err != nil {
		return Body{}, err
	}
	return b, nil
}

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
