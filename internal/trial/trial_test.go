package trial

import (
	"context"
	"math"
	"slices"
	"testing"

	"pixelfight/internal/faction"
	"pixelfight/internal/fight"
)

func smallPlan(trials int) Plan {
	cfg := fight.DefaultConfig()
	cfg.Width, cfg.Height = 6, 6
	cfg.Factions = faction.Defaults(2)
	cfg.Workers = 2
	return Plan{Base: cfg, Trials: trials, MaxSteps: 200000, Workers: 4, SeedBase: 1000}
}

func TestRunFinishesEveryTrial(t *testing.T) {
	results, err := Run(context.Background(), smallPlan(12), fight.BackendCPU)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 12 {
		t.Fatalf("got %d results", len(results))
	}
	for i, r := range results {
		if r.Trial != i || r.Seed != 1000+int64(i) {
			t.Fatalf("result %d out of order: %+v", i, r)
		}
		if !r.Finished || r.Winner < 0 || r.Winner > 1 {
			t.Fatalf("trial %d did not finish: %+v", i, r)
		}
		if r.FirstElimination != r.Victory {
			t.Fatalf("two factions: first elimination %d should equal victory %d", r.FirstElimination, r.Victory)
		}
	}
}

func TestRunIsDeterministic(t *testing.T) {
	plan := smallPlan(6)
	a, err := Run(context.Background(), plan, fight.BackendParallel)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Run(context.Background(), plan, fight.BackendParallel)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(VictoryTimes(a), VictoryTimes(b)) {
		t.Fatalf("same seeds gave different victory times")
	}
}

func TestRunRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, smallPlan(50), fight.BackendCPU)
	if err == nil {
		t.Fatalf("expected an error from a cancelled run")
	}
}

func TestRunReportsBackendErrors(t *testing.T) {
	plan := smallPlan(2)
	_, err := Run(context.Background(), plan, "abacus")
	if err == nil {
		t.Fatalf("expected an error for an unknown backend")
	}
}

func TestSequentialAndParallelAgreeStatistically(t *testing.T) {
	if testing.Short() {
		t.Skip("statistical comparison is slow")
	}
	plan := smallPlan(200)
	seq, err := Run(context.Background(), plan, fight.BackendCPU)
	if err != nil {
		t.Fatalf("cpu: %v", err)
	}
	plan.SeedBase = 50000
	par, err := Run(context.Background(), plan, fight.BackendParallel)
	if err != nil {
		t.Fatalf("parallel: %v", err)
	}
	d := Compare(seq, par)
	if limit := CriticalKS(0.001, len(seq), len(par)); d > limit {
		t.Fatalf("victory time distributions differ: KS %.3f > %.3f\ncpu:      %v\nparallel: %v", d, limit, Summarize(seq), Summarize(par))
	}
}

func TestSummarize(t *testing.T) {
	var results []Result
	for i, v := range []uint64{50, 10, 40, 20, 30} {
		results = append(results, Result{Backend: "cpu", Trial: i, Finished: true, Victory: v, FirstElimination: v / 2})
	}
	results = append(results, Result{Backend: "cpu", Trial: 5})
	s := Summarize(results)
	if s.Trials != 6 || s.Finished != 5 {
		t.Fatalf("trials=%d finished=%d", s.Trials, s.Finished)
	}
	if s.Mean != 30 || s.Min != 10 || s.Max != 50 || s.Median != 30 {
		t.Fatalf("unexpected summary %+v", s)
	}
	if math.Abs(s.StdDev-math.Sqrt(250)) > 1e-9 {
		t.Fatalf("stddev %.4f", s.StdDev)
	}
	if s.MeanFirstElimination != 15 {
		t.Fatalf("mean first elimination %.2f", s.MeanFirstElimination)
	}
}

func TestCompare(t *testing.T) {
	mk := func(vs ...uint64) []Result {
		var out []Result
		for _, v := range vs {
			out = append(out, Result{Finished: true, Victory: v})
		}
		return out
	}
	if d := Compare(mk(1, 2, 3), mk(3, 2, 1)); d != 0 {
		t.Fatalf("identical samples: %v", d)
	}
	if d := Compare(mk(1, 2, 3), mk(10, 11, 12)); d != 1 {
		t.Fatalf("disjoint samples: %v", d)
	}
	if d := Compare(nil, mk(1)); !math.IsNaN(d) {
		t.Fatalf("empty sample: %v", d)
	}
}
