package mnist

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"mnist-ca/internal/core"
)

func blockImage(lo, hi int, value float64) *mat.Dense {
	img := mat.NewDense(28, 28, nil)
	for r := lo; r <= hi; r++ {
		for c := lo; c <= hi; c++ {
			img.Set(r, c, value)
		}
	}
	return img
}

func TestReferenceScenarioCollapses(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Height, cfg.Width = 3, 3
	cfg.SourceHeight, cfg.SourceWidth = 3, 3
	cfg.Steps = 1
	img := mat.NewDense(3, 3, []float64{0, 0, 0, 0, 5, 0, 0, 0, 0})

	history, err := Simulate(cfg, img)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected 1 snapshot, got %d", len(history))
	}
	for i, v := range history[0].Values {
		if v != 0 {
			t.Fatalf("cell %d = %v after one step, want 0", i, v)
		}
	}
}

func TestBlockErodesCornersOnly(t *testing.T) {
	cfg := DefaultConfig()
	history, err := Simulate(cfg, blockImage(5, 20, 200))
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if len(history) != cfg.Steps {
		t.Fatalf("expected %d snapshots, got %d", cfg.Steps, len(history))
	}

	last, _ := history.Last()
	if v, _ := last.At(core.Coord{Row: 5, Col: 5}, 0); v != 0 {
		t.Fatalf("block corner should erode, got %v", v)
	}
	if v, _ := last.At(core.Coord{Row: 5, Col: 10}, 0); v != 200 {
		t.Fatalf("block edge should survive, got %v", v)
	}

	padded, err := Feature(cfg, history)
	if err != nil {
		t.Fatalf("feature: %v", err)
	}
	if want := 252 * 200.0 / 784; math.Abs(padded-want) > 1e-9 {
		t.Fatalf("padded feature = %v, want %v", padded, want)
	}

	cfg.PadToSource = false
	bare, _ := Feature(cfg, history)
	if want := 252 * 200.0 / 729; math.Abs(bare-want) > 1e-9 {
		t.Fatalf("bare feature = %v, want %v", bare, want)
	}
}

func TestNewAutomatonRejectsWrongImageShape(t *testing.T) {
	_, err := NewAutomaton(DefaultConfig(), mat.NewDense(27, 27, nil))
	if !errors.Is(err, core.ErrShapeMismatch) {
		t.Fatalf("expected ErrShapeMismatch, got %v", err)
	}
	cfg := DefaultConfig()
	cfg.Height = 30
	if _, err := NewAutomaton(cfg, mat.NewDense(28, 28, nil)); !errors.Is(err, core.ErrShapeMismatch) {
		t.Fatalf("expected ErrShapeMismatch for oversize region, got %v", err)
	}
}

func TestFeatureRejectsEmptyHistory(t *testing.T) {
	if _, err := Feature(DefaultConfig(), nil); !errors.Is(err, core.ErrInvalidStepCount) {
		t.Fatalf("expected ErrInvalidStepCount, got %v", err)
	}
}

func TestFromMapOverrides(t *testing.T) {
	cfg := FromMap(map[string]string{
		"edge":                "ignore-missing",
		"steps":               "250",
		"evolutions_per_step": "5",
		"w":                   "40",
		"pad":                 "false",
		"alive_threshold":     "bogus",
	})
	if cfg.Edge != core.IgnoreMissingNeighbors {
		t.Fatalf("edge = %v", cfg.Edge)
	}
	if cfg.Steps != 250 || cfg.EvolutionsPerStep != 5 {
		t.Fatalf("steps = %d/%d", cfg.Steps, cfg.EvolutionsPerStep)
	}
	if cfg.Width != 28 {
		t.Fatalf("width should clamp to the source width, got %d", cfg.Width)
	}
	if cfg.PadToSource {
		t.Fatal("pad should be disabled")
	}
	if cfg.AliveThreshold != 3 {
		t.Fatalf("invalid threshold should keep the default, got %d", cfg.AliveThreshold)
	}
}

func TestRegisterAddsReferenceRule(t *testing.T) {
	c := core.NewCatalog()
	if err := Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}
	spec, ok := c.Lookup(RuleName)
	if !ok {
		t.Fatal("reference rule not registered")
	}
	next := spec.Rule(core.State{9}, []core.State{{1}, {2}, {3}, {4}, {0}})
	if next[0] != 2.5 {
		t.Fatalf("rule output = %v, want 2.5", next[0])
	}
}
