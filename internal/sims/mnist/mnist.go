package mnist

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"mnist-ca/internal/core"
)

// RuleName identifies the reference rule in a core.Catalog.
const RuleName = "alive-mean"

// AliveMean returns a rule that replaces a cell with the mean of its alive
// (strictly positive) neighbors when more than threshold of them are alive,
// and with zero otherwise. Only channel 0 is read.
func AliveMean(threshold int) core.Rule {
	return func(_ core.State, neighbors []core.State) core.State {
		sum, alive := 0.0, 0
		for _, n := range neighbors {
			if n[0] > 0 {
				sum += n[0]
				alive++
			}
		}
		if alive > threshold {
			return core.State{sum / float64(alive)}
		}
		return core.State{0}
	}
}

// Register adds the reference rule to c.
func Register(c *core.Catalog) error {
	return c.Register(core.RuleSpec{
		Name:         RuleName,
		Description:  "mean of alive neighbors when more than 3 are alive, else 0",
		Rule:         AliveMean(3),
		Arity:        1,
		Neighborhood: core.Moore(),
		Edge:         core.WrapFirstLastAsNeighbors,
	})
}

// NewAutomaton seeds an automaton from the top-left region of img. The image
// must have exactly the configured source dimensions.
func NewAutomaton(cfg Config, img mat.Matrix) (*core.Automaton, error) {
	rows, cols := img.Dims()
	if rows != cfg.SourceHeight || cols != cfg.SourceWidth {
		return nil, fmt.Errorf("image %dx%d, want %dx%d: %w", rows, cols, cfg.SourceHeight, cfg.SourceWidth, core.ErrShapeMismatch)
	}
	if cfg.Height > rows || cfg.Width > cols {
		return nil, fmt.Errorf("region %dx%d exceeds image %dx%d: %w", cfg.Height, cfg.Width, rows, cols, core.ErrShapeMismatch)
	}
	return core.New(core.Config{
		Height:       cfg.Height,
		Width:        cfg.Width,
		Arity:        1,
		Neighborhood: core.Moore(),
		Edge:         cfg.Edge,
		Workers:      cfg.Workers,
	}, func(c core.Coord) core.State {
		return core.State{img.At(c.Row, c.Col)}
	}, AliveMean(cfg.AliveThreshold))
}

// Simulate runs img through the configured number of steps.
func Simulate(cfg Config, img mat.Matrix) (core.History, error) {
	a, err := NewAutomaton(cfg, img)
	if err != nil {
		return nil, err
	}
	return core.NewDriver(a).Run(cfg.EvolutionsPerStep, cfg.Steps)
}

// Feature reduces the last snapshot of history to a single intensity value.
func Feature(cfg Config, history core.History) (float64, error) {
	last, ok := history.Last()
	if !ok {
		return 0, fmt.Errorf("empty history: %w", core.ErrInvalidStepCount)
	}
	if !cfg.PadToSource {
		return last.Mean(), nil
	}
	return FrameMean(last.Embed(cfg.SourceHeight, cfg.SourceWidth)), nil
}

// FrameMean averages every value of a rectangular frame.
func FrameMean(frame [][]float64) float64 {
	n, sum := 0, 0.0
	for _, row := range frame {
		sum += floats.Sum(row)
		n += len(row)
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
