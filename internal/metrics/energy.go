package metrics

import (
	"github.com/san-kum/ballsim/internal/dynamo"
)

// KineticEnergy reports the mean total kinetic energy of the scene over the
// observed ticks.
type KineticEnergy struct {
	name    string
	samples int
	total   float64
	last    float64
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(tick int, bodies []dynamo.Body) {
	e.last = Total(bodies)
	e.total += e.last
	e.samples++
}

func (e *KineticEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

// Last is the energy at the most recent observed tick.
func (e *KineticEnergy) Last() float64 { return e.last }

func (e *KineticEnergy) Reset() {
	e.total = 0
	e.last = 0
	e.samples = 0
}

// Total returns the summed kinetic energy of bodies.
func Total(bodies []dynamo.Body) float64 {
	sum := 0.0
	for _, b := range bodies {
		sum += b.KineticEnergy()
	}
	return sum
}
