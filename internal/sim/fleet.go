package sim

import (
	"context"
	"sync"

	"github.com/tleroux/flightdyn/internal/rigid"
)

// Fleet runs several vehicles from different initial states
// concurrently. Each run owns its own kernel instance, so no locking
// is needed between them.
type Fleet struct {
	base *Simulator
}

func NewFleet(base *Simulator) *Fleet {
	return &Fleet{base: base}
}

// Run simulates one trajectory per initial state and returns the
// results in matching order. The first run error, if any, is returned
// after all runs finish.
func (f *Fleet) Run(ctx context.Context, starts []rigid.State, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(starts))
	errs := make([]error, len(starts))

	var wg sync.WaitGroup
	for i, s0 := range starts {
		wg.Add(1)
		go func(idx int, s0 rigid.State) {
			defer wg.Done()

			// Metrics hold per-run accumulator state, so the base
			// simulator's metrics are not shared across goroutines.
			run := New(f.base.veh, f.base.model)
			results[idx], errs[idx] = run.Run(ctx, s0, cfg)
		}(i, s0)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
