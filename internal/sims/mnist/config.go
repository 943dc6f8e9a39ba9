package mnist

import (
	"strconv"

	"mnist-ca/internal/core"
)

// Config controls how a source image is turned into an automaton run.
type Config struct {
	// Height and Width give the simulated region, cut from the top-left of
	// the source image.
	Height int
	Width  int

	SourceHeight int
	SourceWidth  int

	Edge              core.EdgeRule
	EvolutionsPerStep int
	Steps             int

	// AliveThreshold is the number of alive neighbors a cell must exceed
	// to take their mean.
	AliveThreshold int

	// PadToSource averages the final snapshot over the full source frame
	// with zeros outside the simulated region.
	PadToSource bool

	Workers int
}

// DefaultConfig returns the reference configuration: a 27x27 region of a
// 28x28 image on a torus.
func DefaultConfig() Config {
	return Config{
		Height:            27,
		Width:             27,
		SourceHeight:      28,
		SourceWidth:       28,
		Edge:              core.WrapFirstLastAsNeighbors,
		EvolutionsPerStep: 1,
		Steps:             25,
		AliveThreshold:    3,
		PadToSource:       true,
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["source_w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.SourceWidth = parsed
		}
	}
	if v, ok := cfg["source_h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.SourceHeight = parsed
		}
	}
	if v, ok := cfg["edge"]; ok {
		if parsed, err := core.ParseEdgeRule(v); err == nil {
			c.Edge = parsed
		}
	}
	if v, ok := cfg["evolutions_per_step"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.EvolutionsPerStep = parsed
		}
	}
	if v, ok := cfg["steps"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Steps = parsed
		}
	}
	if v, ok := cfg["alive_threshold"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.AliveThreshold = parsed
		}
	}
	if v, ok := cfg["pad"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.PadToSource = parsed
		}
	}
	if v, ok := cfg["workers"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Workers = parsed
		}
	}
	if c.Height > c.SourceHeight {
		c.Height = c.SourceHeight
	}
	if c.Width > c.SourceWidth {
		c.Width = c.SourceWidth
	}
	return c
}

// Parameters describes the configuration for the HUD and CLI listings.
func (c Config) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Region",
			Params: []core.Parameter{
				core.IntParam("h", "Height", c.Height),
				core.IntParam("w", "Width", c.Width),
				core.IntParam("source_h", "Source height", c.SourceHeight),
				core.IntParam("source_w", "Source width", c.SourceWidth),
			},
		},
		{
			Name: "Evolution",
			Params: []core.Parameter{
				core.StringParam("edge", "Edge rule", c.Edge.String()),
				core.IntParam("evolutions_per_step", "Evolutions per step", c.EvolutionsPerStep),
				core.IntParam("steps", "Steps", c.Steps),
				core.IntParam("alive_threshold", "Alive threshold", c.AliveThreshold),
			},
		},
		{
			Name: "Feature",
			Params: []core.Parameter{
				core.StringParam("pad", "Pad to source", strconv.FormatBool(c.PadToSource)),
			},
		},
	}}
}
