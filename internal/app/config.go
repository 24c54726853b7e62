package app

import (
	"flag"
	"runtime"
	"strconv"

	"pixelfight/internal/faction"
	"pixelfight/internal/fight"
)

// Config represents the command-line parameters shared by the viewers.
type Config struct {
	Width    int
	Height   int
	Factions string
	Roster   faction.List
	Backend  string
	Workers  int
	Seed     int64
	Layout   string
	Image    string
	Verify   bool

	Scale int
	TPS   int
	Sound bool
	Debug string
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Width:    200,
		Height:   200,
		Factions: "4",
		Backend:  fight.BackendCPU,
		Workers:  runtime.NumCPU(),
		Seed:     1337,
		Layout:   LayoutPinwheel,
		Scale:    3,
		TPS:      60,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "w", c.Width, "grid width in pixels")
	fs.IntVar(&c.Height, "h", c.Height, "grid height in pixels")
	fs.StringVar(&c.Factions, "factions", c.Factions, "number of factions, or a list of name=#rrggbb")
	fs.Var(&c.Roster, "faction", "add a faction as name=#rrggbb (repeatable, overrides -factions)")
	fs.StringVar(&c.Backend, "backend", c.Backend, "execution backend: cpu, parallel or opencl")
	fs.IntVar(&c.Workers, "workers", c.Workers, "goroutines used by the parallel backend")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for population and stepping")
	fs.StringVar(&c.Layout, "layout", c.Layout, "initial layout: pinwheel or uniform")
	fs.StringVar(&c.Image, "image", c.Image, "PNG, JPEG or GIF whose colours seed the factions (overrides -layout)")
	fs.BoolVar(&c.Verify, "verify", c.Verify, "check every owner id after each step")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "steps per second")
	fs.BoolVar(&c.Sound, "sound", c.Sound, "play a chime on eliminations and victory")
	fs.StringVar(&c.Debug, "debug", c.Debug, "write a debug log to this file")
}

// Values renders the simulation settings as the key/value form fight.FromMap
// reads.
func (c *Config) Values() map[string]string {
	return map[string]string{
		"w":        strconv.Itoa(c.Width),
		"h":        strconv.Itoa(c.Height),
		"factions": c.Factions,
		"backend":  c.Backend,
		"workers":  strconv.Itoa(c.Workers),
		"seed":     strconv.FormatInt(c.Seed, 10),
	}
}
