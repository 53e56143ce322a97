package metrics

import (
	"github.com/san-kum/ballsim/internal/collision"
	"github.com/san-kum/ballsim/internal/dynamo"
)

// CollisionCount counts resolved pairs. It observes collisions directly, so
// dynamo.Simulation.AddMetric wires it as a collision observer as well.
type CollisionCount struct {
	name     string
	count    int
	maxDepth float64
}

func NewCollisionCount() *CollisionCount {
	return &CollisionCount{name: "collisions"}
}

func (c *CollisionCount) Name() string { return c.name }

func (c *CollisionCount) Observe(tick int, bodies []dynamo.Body) {}

func (c *CollisionCount) OnCollision(tick, i, j int, contact collision.Contact) {
	c.count++
	if contact.Depth > c.maxDepth {
		c.maxDepth = contact.Depth
	}
}

func (c *CollisionCount) Value() float64 { return float64(c.count) }

// MaxDepth is the deepest overlap seen; positions are never corrected, so
// this shows how far bodies sink into each other.
func (c *CollisionCount) MaxDepth() float64 { return c.maxDepth }

func (c *CollisionCount) Reset() {
	c.count = 0
	c.maxDepth = 0
}

// Defaults is the metric set the CLI attaches to every run.
func Defaults() []dynamo.Metric {
	return []dynamo.Metric{
		NewKineticEnergy(),
		NewMomentum(),
		NewMaxSpeed(),
		NewTerminalApproach(),
		NewCollisionCount(),
	}
}
