// Package trial runs many independent fights and summarises how long they
// take, so the behaviour of different backends can be compared.
package trial

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"pixelfight/internal/fight"
)

// Plan describes a batch of trials. Trial i runs with seed SeedBase+i.
type Plan struct {
	Base     fight.Config
	Trials   int
	MaxSteps uint64
	Workers  int
	SeedBase int64

	// Populate builds a fresh populator per trial. Nil keeps Base.Populator,
	// which must then be safe for concurrent use (Pinwheel is).
	Populate func(seed int64) fight.Populator
}

// Result is the outcome of one trial.
type Result struct {
	Backend string
	Trial   int
	Seed    int64

	// Finished is false when the trial hit MaxSteps without a winner.
	Finished         bool
	Victory          uint64
	FirstElimination uint64
	Winner           int
	Err              error
}

// Run executes plan on backend with a pool of workers and returns the results
// ordered by trial index. It stops early when ctx is cancelled.
func Run(ctx context.Context, plan Plan, backend string) ([]Result, error) {
	if plan.Trials <= 0 {
		return nil, nil
	}
	workers := plan.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	jobs := make(chan int)
	results := make(chan Result)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for trial := range jobs {
				results <- runTrial(ctx, plan, backend, trial)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		defer close(jobs)
		for trial := 0; trial < plan.Trials; trial++ {
			select {
			case jobs <- trial:
			case <-ctx.Done():
				return
			}
		}
	}()

	all := make([]Result, plan.Trials)
	got := make([]bool, plan.Trials)
	var errs []error
	for res := range results {
		all[res.Trial] = res
		got[res.Trial] = true
		if res.Err != nil && !errors.Is(res.Err, context.Canceled) {
			errs = append(errs, fmt.Errorf("trial %d: %w", res.Trial, res.Err))
		}
	}
	if err := ctx.Err(); err != nil {
		return compact(all, got), err
	}
	return all, errors.Join(errs...)
}

func compact(all []Result, got []bool) []Result {
	out := all[:0]
	for i, ok := range got {
		if ok {
			out = append(out, all[i])
		}
	}
	return out
}

func runTrial(ctx context.Context, plan Plan, backend string, trial int) Result {
	seed := plan.SeedBase + int64(trial)
	res := Result{Backend: backend, Trial: trial, Seed: seed, Winner: -1}

	cfg := plan.Base
	cfg.Backend = backend
	cfg.Seed = seed
	if plan.Populate != nil {
		cfg.Populator = plan.Populate(seed)
	}

	firstSeen := false
	sim, err := fight.New(cfg, fight.WithObserver(func(s fight.Snapshot) {
		if !firstSeen && s.Alive() < len(s.Counts) {
			firstSeen = true
			res.FirstElimination = s.Iteration
		}
	}))
	if err != nil {
		res.Err = err
		return res
	}
	defer sim.Close()

	snap, err := sim.Run(ctx, plan.MaxSteps)
	if err != nil {
		res.Err = err
		return res
	}
	if w, ok := snap.Winner(); ok {
		res.Finished = true
		res.Victory = snap.Iteration
		res.Winner = w
	}
	return res
}
