package metrics

import (
	"math"

	"github.com/san-kum/ballsim/internal/dynamo"
	"github.com/san-kum/ballsim/internal/vmath"
)

// Momentum reports the magnitude of the scene's total momentum at the last
// observed tick.
type Momentum struct {
	name  string
	value float64
}

func NewMomentum() *Momentum {
	return &Momentum{name: "momentum"}
}

func (m *Momentum) Name() string { return m.name }

func (m *Momentum) Observe(tick int, bodies []dynamo.Body) {
	m.value = TotalMomentum(bodies).Len()
}

func (m *Momentum) Value() float64 { return m.value }

func (m *Momentum) Reset() { m.value = 0 }

func TotalMomentum(bodies []dynamo.Body) vmath.Vec2 {
	var p vmath.Vec2
	for _, b := range bodies {
		p = p.Add(b.Momentum())
	}
	return p
}

// MaxSpeed is the highest speed any body reached.
type MaxSpeed struct {
	name string
	max  float64
}

func NewMaxSpeed() *MaxSpeed {
	return &MaxSpeed{name: "max_speed"}
}

func (m *MaxSpeed) Name() string { return m.name }

func (m *MaxSpeed) Observe(tick int, bodies []dynamo.Body) {
	for _, b := range bodies {
		m.max = math.Max(m.max, b.Speed())
	}
}

func (m *MaxSpeed) Value() float64 { return m.max }

func (m *MaxSpeed) Reset() { m.max = 0 }

// TerminalApproach is the largest vertical speed reached by a falling body
// as a fraction of its own terminal velocity. Values above 1 only come from
// collisions.
type TerminalApproach struct {
	name string
	max  float64
}

func NewTerminalApproach() *TerminalApproach {
	return &TerminalApproach{name: "terminal_ratio"}
}

func (t *TerminalApproach) Name() string { return t.name }

func (t *TerminalApproach) Observe(tick int, bodies []dynamo.Body) {
	for _, b := range bodies {
		tv := b.TerminalVelocity()
		if tv == 0 || math.IsInf(tv, 0) {
			continue
		}
		t.max = math.Max(t.max, b.Vel.Y/tv)
	}
}

func (t *TerminalApproach) Value() float64 { return t.max }

func (t *TerminalApproach) Reset() { t.max = 0 }
