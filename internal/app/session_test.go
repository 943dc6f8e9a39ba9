package app

import (
	"errors"
	"testing"

	"mnist-ca/internal/core"
	"mnist-ca/internal/render"
	"mnist-ca/internal/sims/briansbrain"
	"mnist-ca/internal/sims/life"
	"mnist-ca/internal/sims/mnist"

	"gonum.org/v1/gonum/mat"
)

func testCatalog(t *testing.T) *core.Catalog {
	t.Helper()
	c := core.NewCatalog()
	for _, register := range []func(*core.Catalog) error{mnist.Register, life.Register, briansbrain.Register} {
		if err := register(c); err != nil {
			t.Fatalf("register: %v", err)
		}
	}
	return c
}

func TestNewSessionAliveMean(t *testing.T) {
	img := mat.NewDense(28, 28, nil)
	img.Set(3, 4, 0.5)
	img.Set(10, 10, 0.8)

	cfg := NewConfig()
	p, opts, err := NewSession(cfg, testCatalog(t), img)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if size := p.Automaton().Size(); size.W != 27 || size.H != 27 {
		t.Fatalf("size = %+v, want 27x27", size)
	}
	if opts.Max != 0.8 {
		t.Fatalf("opts.Max = %v, want 0.8", opts.Max)
	}
}

func TestNewSessionAliveMeanNeedsImage(t *testing.T) {
	if _, _, err := NewSession(NewConfig(), testCatalog(t), nil); !errors.Is(err, ErrNeedsImage) {
		t.Fatalf("expected ErrNeedsImage, got %v", err)
	}
}

func TestNewSessionSeededRules(t *testing.T) {
	cfg := NewConfig()
	cfg.Width, cfg.Height = 12, 8

	cfg.Rule = life.RuleName
	p, _, err := NewSession(cfg, testCatalog(t), nil)
	if err != nil {
		t.Fatalf("life: %v", err)
	}
	if size := p.Automaton().Size(); size.W != 12 || size.H != 8 {
		t.Fatalf("life size = %+v", size)
	}

	cfg.Rule = briansbrain.RuleName
	_, opts, err := NewSession(cfg, testCatalog(t), nil)
	if err != nil {
		t.Fatalf("briansbrain: %v", err)
	}
	if len(opts.Palette) != len(render.BrainPalette) {
		t.Fatal("expected the brain palette")
	}
}

func TestNewSessionUnknownRule(t *testing.T) {
	cfg := NewConfig()
	cfg.Rule = "nope"
	if _, _, err := NewSession(cfg, testCatalog(t), nil); err == nil {
		t.Fatal("expected error for unknown rule")
	}
}
