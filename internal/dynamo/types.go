package dynamo

import (
	"github.com/san-kum/ballsim/internal/collision"
)

// Constants are the global multipliers every body's coefficients scale.
type Constants struct {
	Gravity          float64
	TerminalVelocity float64
}

func DefaultConstants() Constants {
	return Constants{
		Gravity:          1,
		TerminalVelocity: 30,
	}
}

// AirFriction is the damping factor under which a body with unit
// coefficients settles at TerminalVelocity.
func (c Constants) AirFriction() float64 {
	return c.Gravity / c.TerminalVelocity
}

func (c Constants) Validate() error {
	if !(c.Gravity > 0) || !(c.TerminalVelocity > 0) || !finite(c.Gravity, c.TerminalVelocity) {
		return ErrInvalidConstants
	}
	return nil
}

// BodyHandle identifies a body by insertion index. Bodies are never removed,
// so a handle stays valid for the simulation's lifetime.
type BodyHandle int

type Metric interface {
	Name() string
	Observe(tick int, bodies []Body)
	Value() float64
	Reset()
}

type Observer interface {
	OnTick(tick int, bodies []Body)
}

// CollisionObserver is notified of every resolved pair. Metrics that also
// implement it are registered automatically by AddMetric.
type CollisionObserver interface {
	OnCollision(tick, i, j int, c collision.Contact)
}

type RunOptions struct {
	// Record keeps a copy of every body after each tick.
	Record bool
	// Every thins recording to one frame per Every ticks. Zero means 1.
	Every int
}

type Frame struct {
	Tick   int
	Bodies []Body
}

type Result struct {
	Frames     []Frame
	Metrics    map[string]float64
	Collisions int
	TicksTaken int
	Final      []Body
}
