//go:build ebiten

package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"pixelfight/internal/app"
	"pixelfight/internal/chime"
	"pixelfight/internal/chronicle"
	"pixelfight/internal/fight"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	logFile, err := app.SetupLogging(cfg.Debug, os.Stderr)
	if err != nil {
		log.Fatal(err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	simCfg, err := cfg.SimConfig()
	if err != nil {
		log.Fatal(err)
	}

	var listeners []func(chronicle.Event)
	if cfg.Sound {
		player := chime.NewPlayer(0.5)
		if err := player.Init(); err != nil {
			log.Printf("audio unavailable: %v", err)
		} else {
			defer player.Close()
			listeners = append(listeners, player.Play)
		}
	}

	tracker := chronicle.New(cfg.Seed)
	sim, err := app.Open(simCfg, log.Default(), app.Narrate(tracker, log.Default(), listeners...), fight.WithVerify(cfg.Verify))
	if err != nil {
		log.Fatal(err)
	}
	defer sim.Close()

	game := app.New(sim, tracker, cfg.Scale, cfg.TPS, log.Default())
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle(fmt.Sprintf("pixelfight: %d factions on %s", len(simCfg.Factions), sim.Backend()))
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
