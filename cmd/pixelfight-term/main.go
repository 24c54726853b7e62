package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"pixelfight/internal/app"
	"pixelfight/internal/chime"
	"pixelfight/internal/chronicle"
	"pixelfight/internal/fight"
	"pixelfight/internal/term"

	"github.com/gdamore/tcell/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Width, cfg.Height = 120, 80
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "pixelfight-term: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *app.Config) error {
	// The screen owns the terminal, so logs only go to a file.
	logFile, err := app.SetupLogging(cfg.Debug, io.Discard)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	simCfg, err := cfg.SimConfig()
	if err != nil {
		return err
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
		return err
	}
	defer sim.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	viewer := term.New(screen, sim, tracker, cfg.TPS, log.Default())
	if err := viewer.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
