package app

import (
	"errors"
	"fmt"

	"mnist-ca/internal/core"
	"mnist-ca/internal/render"
	"mnist-ca/internal/sims/briansbrain"
	"mnist-ca/internal/sims/life"
	"mnist-ca/internal/sims/mnist"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ErrNeedsImage is returned when an image-seeded rule is started without one.
var ErrNeedsImage = errors.New("rule needs a source image")

// NewSession builds the automaton named by cfg.Rule and returns a Player
// for it along with render options suited to its states. img seeds the
// alive-mean rule and is ignored by the others.
func NewSession(cfg *Config, catalog *core.Catalog, img mat.Matrix) (*Player, render.Options, error) {
	spec, ok := catalog.Lookup(cfg.Rule)
	if !ok {
		return nil, render.Options{}, fmt.Errorf("unknown rule %q (have %v)", cfg.Rule, catalog.Names())
	}

	var (
		a    *core.Automaton
		opts = render.Options{Scale: cfg.Scale, Max: 1}
		err  error
	)
	switch spec.Name {
	case mnist.RuleName:
		if img == nil {
			return nil, render.Options{}, ErrNeedsImage
		}
		mc := mnist.DefaultConfig()
		a, err = mnist.NewAutomaton(mc, img)
		if err == nil {
			opts.Max = floats.Max(a.Grid().Cells())
		}
	case life.RuleName:
		a, err = life.New(cfg.Width, cfg.Height, cfg.Seed)
	case briansbrain.RuleName:
		a, err = briansbrain.New(cfg.Width, cfg.Height, cfg.Seed)
		opts.Palette = render.BrainPalette
	default:
		a, err = core.New(core.ConfigFor(spec, cfg.Height, cfg.Width), nil, spec.Rule)
	}
	if err != nil {
		return nil, render.Options{}, err
	}

	p, err := NewPlayer(a, cfg.Per, cfg.Last)
	if err != nil {
		return nil, render.Options{}, err
	}
	return p, opts, nil
}
