package app

import "flag"

// Config represents the command-line parameters for the viewer.
type Config struct {
	Rule   string
	Scale  int
	TPS    int
	FPS    int
	Seed   int64
	Width  int
	Height int
	Per    int
	Last   int
	Data   string
	Index  int
	Panel  int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Rule:   "alive-mean",
		Scale:  16,
		TPS:    60,
		FPS:    4,
		Seed:   42,
		Width:  96,
		Height: 64,
		Per:    1,
		Last:   25,
		Data:   ".",
		Panel:  260,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Rule, "rule", c.Rule, "rule to run (see mnistca rules)")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.IntVar(&c.FPS, "fps", c.FPS, "playback frames per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for random initial grids")
	fs.IntVar(&c.Width, "w", c.Width, "grid width for seeded rules")
	fs.IntVar(&c.Height, "h", c.Height, "grid height for seeded rules")
	fs.IntVar(&c.Per, "per", c.Per, "evolutions per playback step")
	fs.IntVar(&c.Last, "last", c.Last, "last generation to simulate (0 plays forever)")
	fs.StringVar(&c.Data, "data", c.Data, "directory holding the MNIST idx files")
	fs.IntVar(&c.Index, "index", c.Index, "test image to load for alive-mean")
	fs.IntVar(&c.Panel, "panel", c.Panel, "width of the parameter panel in pixels")
}
