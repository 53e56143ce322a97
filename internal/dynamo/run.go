package dynamo

import (
	"context"
	"fmt"
)

// Run advances the simulation by ticks steps, checking ctx between ticks.
// On cancellation the partial result is returned with ctx.Err().
func (s *Simulation) Run(ctx context.Context, ticks int, opts RunOptions) (*Result, error) {
	if ticks <= 0 {
		return nil, fmt.Errorf("%w: ticks must be positive, got %d", ErrInvalidRun, ticks)
	}
	every := opts.Every
	if every <= 0 {
		every = 1
	}

	result := &Result{
		Metrics: make(map[string]float64),
	}
	if opts.Record {
		result.Frames = make([]Frame, 0, ticks/every+1)
		result.Frames = append(result.Frames, Frame{Tick: s.tick, Bodies: s.Bodies()})
	}

	for _, m := range s.metrics {
		m.Reset()
	}
	startCollisions := s.collisions

	finish := func() {
		result.Collisions = s.collisions - startCollisions
		result.Final = s.Bodies()
		for _, m := range s.metrics {
			result.Metrics[m.Name()] = m.Value()
		}
	}

	for i := 0; i < ticks; i++ {
		select {
		case <-ctx.Done():
			finish()
			return result, ctx.Err()
		default:
		}

		if err := s.Tick(); err != nil {
			finish()
			return result, err
		}
		result.TicksTaken++

		if opts.Record && result.TicksTaken%every == 0 {
			result.Frames = append(result.Frames, Frame{Tick: s.tick, Bodies: s.Bodies()})
		}
	}

	finish()
	return result, nil
}
