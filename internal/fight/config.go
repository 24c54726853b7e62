package fight

import (
	"runtime"
	"strconv"
	"strings"

	"pixelfight/internal/faction"
)

// Config controls a fight's grid, roster and execution backend.
type Config struct {
	Width  int
	Height int

	Factions []faction.Faction

	// Backend is one of BackendCPU, BackendParallel or BackendOpenCL.
	Backend string
	// Workers bounds the goroutines used by BackendParallel.
	Workers int
	// Seed drives every random draw; equal seeds give equal resets and, on
	// BackendCPU and BackendParallel, equal runs.
	Seed int64

	// Populator assigns initial owners. Nil selects Pinwheel.
	Populator Populator
}

// DefaultConfig returns the standard configuration: a 128x128 grid and two
// factions on the sequential backend.
func DefaultConfig() Config {
	return Config{
		Width:    128,
		Height:   128,
		Factions: faction.Defaults(2),
		Backend:  BackendCPU,
		Workers:  runtime.NumCPU(),
		Seed:     1337,
	}
}

// FromMap populates a Config from a string map (flag-style key/value pairs).
// Unknown keys and unparsable values keep their defaults; Validate reports
// values that parse but make no sense.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Width = parsed
			// A bare width means a square grid, as in the original page.
			if _, hasH := cfg["h"]; !hasH {
				c.Height = parsed
			}
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Height = parsed
		}
	}
	if v, ok := cfg["backend"]; ok && v != "" {
		c.Backend = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := cfg["workers"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Workers = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["factions"]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			if n >= 0 {
				c.Factions = faction.Defaults(n)
			}
		} else if list, err := faction.ParseList(v); err == nil {
			c.Factions = list
		}
	}
	return c
}

// Validate checks the dimensions, roster and backend name.
func (c Config) Validate() error {
	if c.Width < 2 {
		return &ConfigError{Field: "width", Reason: "must be at least 2, got " + strconv.Itoa(c.Width)}
	}
	if c.Height < 2 {
		return &ConfigError{Field: "height", Reason: "must be at least 2, got " + strconv.Itoa(c.Height)}
	}
	if len(c.Factions) < 2 {
		return &ConfigError{Field: "factions", Reason: "at least 2 factions are required to start, got " + strconv.Itoa(len(c.Factions))}
	}
	if _, ok := backends[c.Backend]; !ok {
		return &ConfigError{Field: "backend", Reason: "unknown backend " + strconv.Quote(c.Backend) + "; choose one of " + strings.Join(Backends(), ", ")}
	}
	return nil
}
