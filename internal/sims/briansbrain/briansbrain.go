package briansbrain

import (
	"math/rand/v2"

	"mnist-ca/internal/core"
)

// RuleName identifies Brian's Brain in a core.Catalog.
const RuleName = "briansbrain"

const (
	stateDead  = 0
	stateOn    = 1
	stateDying = 2
)

// Rule fires dead cells with exactly two firing neighbors; firing cells
// start dying and dying cells die.
func Rule(cur core.State, neighbors []core.State) core.State {
	switch cur[0] {
	case stateOn:
		return core.State{stateDying}
	case stateDying:
		return core.State{stateDead}
	}
	on := 0
	for _, n := range neighbors {
		if n[0] == stateOn {
			on++
		}
	}
	if on == 2 {
		return core.State{stateOn}
	}
	return core.State{stateDead}
}

// Register adds Brian's Brain to c.
func Register(c *core.Catalog) error {
	return c.Register(core.RuleSpec{
		Name:         RuleName,
		Description:  "Brian's Brain three-state excitable medium",
		Rule:         Rule,
		Arity:        1,
		Neighborhood: core.Moore(),
		Edge:         core.WrapFirstLastAsNeighbors,
	})
}

// New seeds roughly one cell in eight as firing.
func New(w, h int, seed int64) (*core.Automaton, error) {
	rng := rand.New(rand.NewPCG(uint64(seed), 0))
	return core.New(core.Config{Height: h, Width: w, Edge: core.WrapFirstLastAsNeighbors}, func(core.Coord) core.State {
		if rng.IntN(8) == 0 {
			return core.State{stateOn}
		}
		return core.State{stateDead}
	}, Rule)
}
