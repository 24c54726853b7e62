package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"time"

	"pixelfight/internal/app"
	"pixelfight/internal/fight"
	"pixelfight/internal/trial"
)

func main() {
	cfg := app.NewConfig()
	cfg.Width, cfg.Height = 24, 24
	cfg.Factions = "2"
	cfg.Workers = 2
	cfg.Bind(flag.CommandLine)
	trials := flag.Int("trials", 200, "independent runs per backend")
	maxSteps := flag.Uint64("max-steps", 1_000_000, "give up on a run after this many steps (0 = never)")
	poolSize := flag.Int("pool", runtime.NumCPU(), "runs executed concurrently")
	backends := flag.String("backends", "cpu,parallel", "comma separated backends to compare")
	flag.Parse()

	if _, err := app.SetupLogging(cfg.Debug, os.Stderr); err != nil {
		log.Fatal(err)
	}

	base, err := cfg.SimConfig()
	if err != nil {
		log.Fatal(err)
	}
	plan := trial.Plan{
		Base:     base,
		Trials:   *trials,
		MaxSteps: *maxSteps,
		Workers:  *poolSize,
		SeedBase: cfg.Seed,
	}
	if strings.EqualFold(cfg.Layout, app.LayoutUniform) {
		plan.Populate = fight.Uniform
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("Running %d trials per backend on a %dx%d grid with %d factions (%d concurrent)\n",
		*trials, base.Width, base.Height, len(base.Factions), *poolSize)

	var names []string
	results := map[string][]trial.Result{}
	for _, name := range strings.Split(*backends, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		start := time.Now()
		res, err := trial.Run(ctx, plan, name)
		if err != nil {
			log.Fatalf("%s: %v", name, err)
		}
		names = append(names, name)
		results[name] = res
		fmt.Printf("%s (elapsed %s)\n", trial.Summarize(res), time.Since(start).Round(time.Millisecond))
	}

	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			a, b := results[names[i]], results[names[j]]
			d := trial.Compare(a, b)
			limit := trial.CriticalKS(0.01, len(trial.VictoryTimes(a)), len(trial.VictoryTimes(b)))
			verdict := "consistent"
			if d > limit {
				verdict = "DIFFERENT"
			}
			fmt.Printf("%s vs %s: KS=%.3f (critical %.3f at 1%%) %s\n", names[i], names[j], d, limit, verdict)
		}
	}
}
