package app

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"strings"

	"pixelfight/internal/chronicle"
	"pixelfight/internal/fight"
)

// Initial layouts accepted by -layout.
const (
	LayoutPinwheel = "pinwheel"
	LayoutUniform  = "uniform"
)

// SimConfig translates the flags into a fight configuration.
func (c *Config) SimConfig() (fight.Config, error) {
	cfg := fight.FromMap(c.Values())
	if len(c.Roster) > 0 {
		cfg.Factions = append(cfg.Factions[:0:0], c.Roster...)
	}

	switch {
	case c.Image != "":
		img, err := loadImage(c.Image)
		if err != nil {
			return cfg, err
		}
		cfg.Populator = fight.ImagePopulator(img)
	case strings.EqualFold(c.Layout, LayoutUniform):
		cfg.Populator = fight.Uniform(cfg.Seed)
	case c.Layout == "" || strings.EqualFold(c.Layout, LayoutPinwheel):
		cfg.Populator = nil
	default:
		return cfg, &fight.ConfigError{Field: "layout", Reason: fmt.Sprintf("unknown layout %q", c.Layout)}
	}
	return cfg, cfg.Validate()
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening layout image: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding layout image %s: %w", path, err)
	}
	return img, nil
}

// Open builds the simulation for cfg. When the requested backend cannot run
// here it logs the reason and falls back to the sequential backend.
func Open(cfg fight.Config, logger *log.Logger, opts ...fight.Option) (*fight.Simulation, error) {
	if logger == nil {
		logger = log.Default()
	}
	opts = append(opts, fight.WithLogger(logger))
	sim, err := fight.New(cfg, opts...)
	if err == nil || !errors.Is(err, fight.ErrBackendUnavailable) || cfg.Backend == fight.BackendCPU {
		return sim, err
	}
	logger.Printf("backend %s unavailable, falling back to %s: %v", cfg.Backend, fight.BackendCPU, err)
	cfg.Backend = fight.BackendCPU
	return fight.New(cfg, opts...)
}

// Narrate feeds every snapshot to tracker, logs the resulting events and
// hands them to each listener.
func Narrate(tracker *chronicle.Tracker, logger *log.Logger, listeners ...func(chronicle.Event)) fight.Option {
	return fight.WithObserver(func(s fight.Snapshot) {
		for _, ev := range tracker.Observe(s) {
			if logger != nil {
				logger.Printf("iteration %d: %s", ev.Iteration, ev.Message)
			}
			for _, fn := range listeners {
				fn(ev)
			}
		}
	})
}
