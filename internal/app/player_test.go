package app

import (
	"errors"
	"slices"
	"testing"

	"mnist-ca/internal/core"
	"mnist-ca/internal/sims/life"
)

func blinker(t *testing.T) *core.Automaton {
	t.Helper()
	g, err := core.GridFromRows([][]float64{
		{0, 0, 0, 0, 0},
		{0, 0, 1, 0, 0},
		{0, 0, 1, 0, 0},
		{0, 0, 1, 0, 0},
		{0, 0, 0, 0, 0},
	})
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	a, err := core.FromGrid(core.Config{Height: 5, Width: 5, Edge: core.WrapFirstLastAsNeighbors}, g, life.Rule)
	if err != nil {
		t.Fatalf("automaton: %v", err)
	}
	return a
}

func TestPlayerStopsAtLastStep(t *testing.T) {
	p, err := NewPlayer(blinker(t), 2, 5)
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}
	var gens []int
	for {
		ok, err := p.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if !ok {
			break
		}
		gens = append(gens, p.Current().Generation)
	}
	if !slices.Equal(gens, []int{2, 4, 5}) {
		t.Fatalf("generations = %v, want [2 4 5]", gens)
	}
	if !p.Done() {
		t.Fatal("expected playback to be done")
	}
}

func TestPlayerReplaysRecordedHistory(t *testing.T) {
	p, err := NewPlayer(blinker(t), 1, 0)
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := p.Next(); err != nil {
			t.Fatalf("Next: %v", err)
		}
	}
	if p.Automaton().Generation() != 3 {
		t.Fatalf("generation = %d, want 3", p.Automaton().Generation())
	}
	first := append([]float64(nil), p.History()[1].Values...)

	p.Rewind()
	if p.Prev() || p.Position() != 0 {
		t.Fatalf("rewind left position %d", p.Position())
	}
	if _, err := p.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if p.Automaton().Generation() != 3 {
		t.Fatal("replay stepped the automaton")
	}
	if !slices.Equal(p.Current().Values, first) {
		t.Fatal("replayed snapshot differs from recorded one")
	}
	if !p.Prev() || p.Current().Generation != 0 {
		t.Fatalf("Prev landed on generation %d", p.Current().Generation)
	}
}

func TestNewPlayerRejectsInvalidCounts(t *testing.T) {
	if _, err := NewPlayer(blinker(t), 0, 5); !errors.Is(err, core.ErrInvalidStepCount) {
		t.Fatalf("per=0: %v", err)
	}
	a := blinker(t)
	if err := a.Step(3); err != nil {
		t.Fatalf("step: %v", err)
	}
	if _, err := NewPlayer(a, 1, 3); !errors.Is(err, core.ErrInvalidStepCount) {
		t.Fatalf("last<=generation: %v", err)
	}
}

func TestPlayerParametersIncludePlayback(t *testing.T) {
	p, err := NewPlayer(blinker(t), 1, 10)
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}
	snap := p.Parameters()
	group := snap.Groups[len(snap.Groups)-1]
	if group.Name != "Playback" {
		t.Fatalf("last group = %q", group.Name)
	}
	for _, param := range group.Params {
		if param.Key == "last" && param.Value != "10" {
			t.Fatalf("last = %q", param.Value)
		}
	}
}
