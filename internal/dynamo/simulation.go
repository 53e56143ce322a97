package dynamo

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/san-kum/ballsim/internal/collision"
)

type Option func(*Simulation)

func WithLogger(l *log.Logger) Option {
	return func(s *Simulation) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithObserver(o Observer) Option {
	return func(s *Simulation) { s.AddObserver(o) }
}

func WithCollisionObserver(o CollisionObserver) Option {
	return func(s *Simulation) { s.AddCollisionObserver(o) }
}

// Simulation owns an ordered collection of bodies. Insertion order is the
// iteration order of both the force pass and the pairwise collision scan.
type Simulation struct {
	consts     Constants
	bodies     []Body
	tick       int
	collisions int

	mu      sync.Mutex
	pending []Body

	logger             *log.Logger
	metrics            []Metric
	observers          []Observer
	collisionObservers []CollisionObserver
}

func NewSimulation(c Constants, opts ...Option) (*Simulation, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	s := &Simulation{
		consts:  c,
		bodies:  make([]Body, 0),
		logger:  log.New(io.Discard),
		metrics: make([]Metric, 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// AddMetric registers m; metrics that also observe collisions get those
// notifications too.
func (s *Simulation) AddMetric(m Metric) {
	s.metrics = append(s.metrics, m)
	if co, ok := m.(CollisionObserver); ok {
		s.collisionObservers = append(s.collisionObservers, co)
	}
}

func (s *Simulation) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulation) AddCollisionObserver(o CollisionObserver) {
	s.collisionObservers = append(s.collisionObservers, o)
}

func (s *Simulation) Constants() Constants { return s.consts }

func (s *Simulation) Ticks() int { return s.tick }

func (s *Simulation) Collisions() int { return s.collisions }

func (s *Simulation) Len() int { return len(s.bodies) }

func (s *Simulation) Metrics() []Metric { return s.metrics }

// Bodies returns a copy of the bodies in insertion order.
func (s *Simulation) Bodies() []Body {
	out := make([]Body, len(s.bodies))
	copy(out, s.bodies)
	return out
}

func (s *Simulation) Body(h BodyHandle) (Body, bool) {
	if h < 0 || int(h) >= len(s.bodies) {
		return Body{}, false
	}
	return s.bodies[h], true
}

// Spawn validates p and appends the body immediately. It must not run
// concurrently with Tick; use RequestSpawn from other goroutines.
func (s *Simulation) Spawn(p SpawnParams) (BodyHandle, error) {
	b, err := p.Body(s.consts)
	if err != nil {
		return -1, err
	}
	s.bodies = append(s.bodies, b)
	h := BodyHandle(len(s.bodies) - 1)
	s.logger.Debug("spawn", "handle", h, "pos", b.Pos, "radius", b.Radius, "mass", b.Mass)
	return h, nil
}

// RequestSpawn validates p and queues it for the start of the next tick.
// Invalid parameters are rejected here and never reach the queue.
func (s *Simulation) RequestSpawn(p SpawnParams) error {
	b, err := p.Body(s.consts)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.pending = append(s.pending, b)
	s.mu.Unlock()
	return nil
}

func (s *Simulation) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

func (s *Simulation) flushPending() {
	s.mu.Lock()
	queued := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, b := range queued {
		s.bodies = append(s.bodies, b)
		s.logger.Debug("spawn", "handle", len(s.bodies)-1, "pos", b.Pos, "queued", true)
	}
}

// Tick applies queued spawns, integrates every body, then resolves every
// overlapping pair (i, j), i < j, in order. A body in several contacts sees
// the velocity produced by the previous resolution.
func (s *Simulation) Tick() error {
	s.flushPending()
	t := s.tick + 1

	for i := range s.bodies {
		s.bodies[i].Integrate()
	}

	for i := 0; i < len(s.bodies); i++ {
		for j := i + 1; j < len(s.bodies); j++ {
			if err := s.collide(t, i, j); err != nil {
				return &TickError{Tick: t, I: i, J: j, Wrapped: err}
			}
		}
	}

	s.tick = t
	for _, m := range s.metrics {
		m.Observe(t, s.bodies)
	}
	for _, o := range s.observers {
		o.OnTick(t, s.bodies)
	}
	return nil
}

func (s *Simulation) collide(t, i, j int) error {
	a, b := &s.bodies[i], &s.bodies[j]
	c, ok, err := collision.Detect(a.Pos, a.Radius, b.Pos, b.Radius)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	va, vb, err := collision.Resolve(a.Pos, b.Pos, a.Vel, b.Vel, a.Mass, b.Mass)
	if err != nil {
		return err
	}
	a.Vel, b.Vel = va, vb
	s.collisions++

	s.logger.Debug("collision", "tick", t, "i", i, "j", j, "pos", a.Pos, "depth", c.Depth)
	for _, o := range s.collisionObservers {
		o.OnCollision(t, i, j, c)
	}
	return nil
}
