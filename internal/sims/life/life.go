package life

import (
	"math/rand/v2"

	"mnist-ca/internal/core"
)

// RuleName identifies Conway's Game of Life in a core.Catalog.
const RuleName = "life"

// Rule implements B3/S23 over 0/1 cell states.
func Rule(cur core.State, neighbors []core.State) core.State {
	alive := 0
	for _, n := range neighbors {
		if n[0] == 1 {
			alive++
		}
	}
	if (cur[0] == 1 && (alive == 2 || alive == 3)) || (cur[0] != 1 && alive == 3) {
		return core.State{1}
	}
	return core.State{0}
}

// Register adds Life to c with toroidal wrapping.
func Register(c *core.Catalog) error {
	return c.Register(core.RuleSpec{
		Name:         RuleName,
		Description:  "Conway's Game of Life (B3/S23)",
		Rule:         Rule,
		Arity:        1,
		Neighborhood: core.Moore(),
		Edge:         core.WrapFirstLastAsNeighbors,
	})
}

// New returns a w*h torus randomly filled from seed.
func New(w, h int, seed int64) (*core.Automaton, error) {
	rng := rand.New(rand.NewPCG(uint64(seed), 0))
	return core.New(core.Config{Height: h, Width: w, Edge: core.WrapFirstLastAsNeighbors}, func(core.Coord) core.State {
		return core.State{float64(rng.IntN(2))}
	}, Rule)
}
