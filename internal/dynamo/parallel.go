package dynamo

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Variant builds one independent simulation of an ensemble.
type Variant struct {
	Name  string
	Build func() (*Simulation, error)
}

// Ensemble runs independent simulations side by side. Each simulation is
// still stepped by a single goroutine.
type Ensemble struct {
	variants []Variant
	ticks    int
	opts     RunOptions
	workers  int
}

func NewEnsemble(ticks int, opts RunOptions, variants ...Variant) *Ensemble {
	return &Ensemble{
		variants: variants,
		ticks:    ticks,
		opts:     opts,
		workers:  runtime.NumCPU(),
	}
}

// SetWorkers bounds how many simulations run at once.
func (e *Ensemble) SetWorkers(n int) {
	if n > 0 {
		e.workers = n
	}
}

// Run returns results in variant order. The first failure cancels the rest.
func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	if len(e.variants) == 0 {
		return nil, ErrNoVariants
	}

	results := make([]*Result, len(e.variants))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i, v := range e.variants {
		g.Go(func() error {
			s, err := v.Build()
			if err != nil {
				return fmt.Errorf("variant %s: %w", v.Name, err)
			}
			res, err := s.Run(ctx, e.ticks, e.opts)
			if err != nil {
				return fmt.Errorf("variant %s: %w", v.Name, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
