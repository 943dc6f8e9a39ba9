package life

import (
	"slices"
	"testing"

	"mnist-ca/internal/core"
)

func TestBlinkerOscillation(t *testing.T) {
	alive := map[core.Coord]bool{{Row: 1, Col: 2}: true, {Row: 2, Col: 2}: true, {Row: 3, Col: 2}: true}
	a, err := core.New(core.Config{Height: 5, Width: 5, Edge: core.WrapFirstLastAsNeighbors}, func(c core.Coord) core.State {
		if alive[c] {
			return core.State{1}
		}
		return core.State{0}
	}, Rule)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	check := func(step string, expects map[core.Coord]bool) {
		t.Helper()
		for row := 0; row < 5; row++ {
			for col := 0; col < 5; col++ {
				c := core.Coord{Row: row, Col: col}
				s, _ := a.Grid().At(c)
				if (s[0] == 1) != expects[c] {
					t.Fatalf("%s: cell %v alive=%v, expected %v", step, c, s[0] == 1, expects[c])
				}
			}
		}
	}

	if err := a.Step(1); err != nil {
		t.Fatalf("step: %v", err)
	}
	check("after first step", map[core.Coord]bool{{Row: 2, Col: 1}: true, {Row: 2, Col: 2}: true, {Row: 2, Col: 3}: true})

	if err := a.Step(1); err != nil {
		t.Fatalf("step: %v", err)
	}
	check("after second step", alive)
}

func TestNewIsSeedDeterministic(t *testing.T) {
	first, err := New(16, 12, 42)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	second, _ := New(16, 12, 42)
	if !slices.Equal(first.Grid().Cells(), second.Grid().Cells()) {
		t.Fatal("same seed produced different boards")
	}
	other, _ := New(16, 12, 7)
	if slices.Equal(first.Grid().Cells(), other.Grid().Cells()) {
		t.Fatal("different seeds should produce different boards")
	}
}
