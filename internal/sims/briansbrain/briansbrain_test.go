package briansbrain

import (
	"testing"

	"mnist-ca/internal/core"
)

func TestCellCycle(t *testing.T) {
	if got := Rule(core.State{stateOn}, nil); got[0] != stateDying {
		t.Fatalf("firing cell -> %v, want dying", got[0])
	}
	if got := Rule(core.State{stateDying}, []core.State{{stateOn}, {stateOn}}); got[0] != stateDead {
		t.Fatalf("dying cell -> %v, want dead", got[0])
	}
	two := []core.State{{stateOn}, {stateOn}, {stateDying}, {stateDead}}
	if got := Rule(core.State{stateDead}, two); got[0] != stateOn {
		t.Fatalf("dead cell with two firing neighbors -> %v, want on", got[0])
	}
	three := append(two, core.State{stateOn})
	if got := Rule(core.State{stateDead}, three); got[0] != stateDead {
		t.Fatalf("dead cell with three firing neighbors -> %v, want dead", got[0])
	}
}

func TestStepKeepsStatesInRange(t *testing.T) {
	a, err := New(32, 32, 3)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := a.Step(10); err != nil {
		t.Fatalf("step: %v", err)
	}
	for i, v := range a.Grid().Cells() {
		if v != stateDead && v != stateOn && v != stateDying {
			t.Fatalf("cell %d has invalid state %v", i, v)
		}
	}
}
