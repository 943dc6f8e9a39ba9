package core

import (
	"errors"
	"math"
	"slices"
	"testing"
)

func digitLike(c Coord) State {
	if c.Row >= 2 && c.Row <= 6 && c.Col >= 3 && c.Col <= 5 {
		return State{float64(100 + c.Row*c.Col)}
	}
	return State{0}
}

func newDigitAutomaton(t *testing.T, edge EdgeRule) *Automaton {
	t.Helper()
	a, err := New(Config{Height: 9, Width: 9, Edge: edge}, digitLike, aliveMean)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	return a
}

func TestDriverRecordsOneSnapshotPerStep(t *testing.T) {
	d := NewDriver(newDigitAutomaton(t, WrapFirstLastAsNeighbors))
	history, err := d.Run(1, 5)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(history) != 5 {
		t.Fatalf("expected 5 snapshots, got %d", len(history))
	}
	for i, snap := range history {
		if snap.Generation != i+1 {
			t.Fatalf("snapshot %d has generation %d", i, snap.Generation)
		}
	}
}

func TestDriverBatchesNeverOvershoot(t *testing.T) {
	a := newDigitAutomaton(t, WrapFirstLastAsNeighbors)
	history, err := NewDriver(a).Run(2, 5)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	gens := make([]int, len(history))
	for i, snap := range history {
		gens[i] = snap.Generation
	}
	if !slices.Equal(gens, []int{2, 4, 5}) {
		t.Fatalf("expected generations [2 4 5], got %v", gens)
	}
	if a.Generation() != 5 {
		t.Fatalf("automaton overshot to generation %d", a.Generation())
	}
}

func TestDriverBatchedMatchesSingleSteps(t *testing.T) {
	single, err := NewDriver(newDigitAutomaton(t, IgnoreMissingNeighbors)).Run(1, 6)
	if err != nil {
		t.Fatalf("single: %v", err)
	}
	batched, err := NewDriver(newDigitAutomaton(t, IgnoreMissingNeighbors)).Run(3, 6)
	if err != nil {
		t.Fatalf("batched: %v", err)
	}
	if !slices.Equal(single[2].Values, batched[0].Values) || !slices.Equal(single[5].Values, batched[1].Values) {
		t.Fatal("batched snapshots differ from the matching single-step snapshots")
	}
}

func TestDriverRejectsInvalidStepCounts(t *testing.T) {
	cases := []struct{ per, last int }{{0, 5}, {-1, 5}, {1, 0}, {2, -4}}
	for _, c := range cases {
		_, err := NewDriver(newDigitAutomaton(t, WrapFirstLastAsNeighbors)).Run(c.per, c.last)
		if !errors.Is(err, ErrInvalidStepCount) {
			t.Fatalf("run(%d, %d): expected ErrInvalidStepCount, got %v", c.per, c.last, err)
		}
	}

	a := newDigitAutomaton(t, WrapFirstLastAsNeighbors)
	d := NewDriver(a)
	if _, err := d.Run(1, 3); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if _, err := d.Run(1, 3); !errors.Is(err, ErrInvalidStepCount) {
		t.Fatalf("re-running to a reached step should fail, got %v", err)
	}
}

func TestDriverRunIsDeterministic(t *testing.T) {
	for _, edge := range []EdgeRule{IgnoreEdgeCells, IgnoreMissingNeighbors, WrapFirstLastAsNeighbors} {
		first, err := NewDriver(newDigitAutomaton(t, edge)).Run(1, 8)
		if err != nil {
			t.Fatalf("%s: %v", edge, err)
		}
		second, err := NewDriver(newDigitAutomaton(t, edge)).Run(1, 8)
		if err != nil {
			t.Fatalf("%s: %v", edge, err)
		}
		for i := range first {
			if !slices.Equal(first[i].Values, second[i].Values) {
				t.Fatalf("%s: snapshot %d differs between identical runs", edge, i)
			}
		}
	}
}

func TestSnapshotsAreCopies(t *testing.T) {
	a := newDigitAutomaton(t, WrapFirstLastAsNeighbors)
	d := NewDriver(a)
	history, err := d.Run(1, 1)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	before := append([]float64(nil), history[0].Values...)
	if err := a.Step(3); err != nil {
		t.Fatalf("step: %v", err)
	}
	if !slices.Equal(before, history[0].Values) {
		t.Fatal("snapshot changed after further steps")
	}
	if &d.Get().Cells()[0] == &history[0].Values[0] {
		t.Fatal("snapshot aliases the live grid")
	}
}

func TestDriverGetExposesLiveGrid(t *testing.T) {
	a := newDigitAutomaton(t, WrapFirstLastAsNeighbors)
	d := NewDriver(a)
	history, err := d.Run(2, 4)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	last, ok := history.Last()
	if !ok {
		t.Fatal("expected a final snapshot")
	}
	if !slices.Equal(d.Get().Cells(), last.Values) {
		t.Fatal("live grid differs from the final snapshot")
	}
}

func TestSnapshotMeanIsOrderIndependent(t *testing.T) {
	history, err := NewDriver(newDigitAutomaton(t, IgnoreMissingNeighbors)).Run(1, 2)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	snap := history[0]
	reversed := 0.0
	for i := len(snap.Values) - 1; i >= 0; i-- {
		reversed += snap.Values[i]
	}
	reversed /= float64(len(snap.Values))
	if math.Abs(snap.Mean()-reversed) > 1e-9 {
		t.Fatalf("mean %v differs from reverse-order mean %v", snap.Mean(), reversed)
	}
}

func TestSnapshotEmbedPadsWithZeros(t *testing.T) {
	snap := Snapshot{Height: 2, Width: 2, Arity: 1, Values: []float64{1, 2, 3, 4}}
	frame := snap.Embed(3, 3)
	want := [][]float64{{1, 2, 0}, {3, 4, 0}, {0, 0, 0}}
	for r := range want {
		if !slices.Equal(frame[r], want[r]) {
			t.Fatalf("row %d = %v, want %v", r, frame[r], want[r])
		}
	}
	if snap.Mean() != 2.5 {
		t.Fatalf("mean = %v, want 2.5", snap.Mean())
	}
	if _, err := snap.At(Coord{Row: 2}, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
	if v, _ := snap.At(Coord{Row: 1, Col: 0}, 0); v != 3 {
		t.Fatalf("at (1,0) = %v, want 3", v)
	}
}
