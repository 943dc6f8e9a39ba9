package core

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Config describes the fixed shape and topology of an automaton.
type Config struct {
	Height       int
	Width        int
	Arity        int
	Neighborhood Neighborhood
	Edge         EdgeRule
	// Workers splits each generation across row bands. Values below 2 run
	// the generation on the calling goroutine.
	Workers int
}

// ConfigFor returns a Config of the given size using the spec's defaults.
func ConfigFor(spec RuleSpec, h, w int) Config {
	return Config{Height: h, Width: w, Arity: spec.Arity, Neighborhood: spec.Neighborhood, Edge: spec.Edge}
}

// Automaton is a synchronous grid state machine. It is owned by a single
// caller and is not safe for concurrent use.
type Automaton struct {
	cfg  Config
	rule Rule

	cur  *Grid
	nxt  *Grid
	edge []bool

	generation int
}

// New constructs an automaton whose cells are populated by init.
func New(cfg Config, init InitFunc, rule Rule) (*Automaton, error) {
	if rule == nil {
		return nil, fmt.Errorf("automaton requires a transition rule")
	}
	if cfg.Arity <= 0 {
		cfg.Arity = 1
	}
	if len(cfg.Neighborhood.Offsets) == 0 {
		cfg.Neighborhood = Moore()
	}
	cur, err := NewGrid(cfg.Height, cfg.Width, cfg.Arity, init)
	if err != nil {
		return nil, err
	}
	return newAutomaton(cfg, cur, rule), nil
}

// FromGrid wraps an existing grid. The grid must match cfg's dimensions and
// is owned by the automaton afterwards.
func FromGrid(cfg Config, g *Grid, rule Rule) (*Automaton, error) {
	if rule == nil {
		return nil, fmt.Errorf("automaton requires a transition rule")
	}
	if g == nil || g.H != cfg.Height || g.W != cfg.Width {
		return nil, fmt.Errorf("grid does not match configured %dx%d: %w", cfg.Height, cfg.Width, ErrShapeMismatch)
	}
	if cfg.Arity <= 0 {
		cfg.Arity = g.arity
	}
	if g.arity != cfg.Arity {
		return nil, fmt.Errorf("grid arity %d, configured %d: %w", g.arity, cfg.Arity, ErrDimensionMismatch)
	}
	if len(cfg.Neighborhood.Offsets) == 0 {
		cfg.Neighborhood = Moore()
	}
	return newAutomaton(cfg, g, rule), nil
}

func newAutomaton(cfg Config, cur *Grid, rule Rule) *Automaton {
	a := &Automaton{
		cfg:  cfg,
		rule: rule,
		cur:  cur,
		nxt:  &Grid{H: cur.H, W: cur.W, arity: cur.arity, data: make([]float64, len(cur.data))},
	}
	if cfg.Edge == IgnoreEdgeCells {
		a.edge = make([]bool, cur.H*cur.W)
		for row := 0; row < cur.H; row++ {
			for col := 0; col < cur.W; col++ {
				c := Coord{Row: row, Col: col}
				a.edge[cur.Index(c)] = cfg.Neighborhood.IsEdge(c, cur)
			}
		}
	}
	return a
}

// Config returns the configuration the automaton was built with.
func (a *Automaton) Config() Config { return a.cfg }

// Generation reports how many generations have been committed.
func (a *Automaton) Generation() int { return a.generation }

// Grid exposes the live grid without copying.
func (a *Automaton) Grid() *Grid { return a.cur }

// Size returns the grid dimensions.
func (a *Automaton) Size() Size { return a.cur.Size() }

// Frozen reports whether c is excluded from evolution by IgnoreEdgeCells.
func (a *Automaton) Frozen(c Coord) bool {
	return a.edge != nil && a.cur.Contains(c) && a.edge[a.cur.Index(c)]
}

// Step advances the automaton by n synchronous generations. A generation that
// fails is discarded and Step stops there. Generations of the same call that
// completed before it stay committed, so Generation reports how far the
// batch got.
func (a *Automaton) Step(n int) error {
	if n <= 0 {
		return fmt.Errorf("step %d: %w", n, ErrInvalidStepCount)
	}
	for i := 0; i < n; i++ {
		if err := a.generate(); err != nil {
			return fmt.Errorf("generation %d: %w", a.generation+1, err)
		}
		a.cur, a.nxt = a.nxt, a.cur
		a.generation++
	}
	return nil
}

func (a *Automaton) generate() error {
	h := a.cur.H
	workers := a.cfg.Workers
	if workers > h {
		workers = h
	}
	if workers < 2 {
		return a.computeRows(0, h)
	}
	var g errgroup.Group
	band := (h + workers - 1) / workers
	for start := 0; start < h; start += band {
		lo, hi := start, min(start+band, h)
		g.Go(func() error { return a.computeRows(lo, hi) })
	}
	return g.Wait()
}

// computeRows reads only a.cur and writes only rows [lo, hi) of a.nxt.
func (a *Automaton) computeRows(lo, hi int) error {
	cur, nxt := a.cur, a.nxt
	hood := a.cfg.Neighborhood
	buf := make([]State, 0, len(hood.Offsets))
	for row := lo; row < hi; row++ {
		for col := 0; col < cur.W; col++ {
			c := Coord{Row: row, Col: col}
			state := cur.cell(c)
			dst := nxt.cell(c)
			if a.edge != nil && a.edge[cur.Index(c)] {
				copy(dst, state)
				continue
			}
			var err error
			buf, err = appendNeighbors(buf[:0], c, hood, a.cfg.Edge, cur)
			if err != nil {
				return err
			}
			next := a.rule(state, buf)
			if len(next) != cur.arity {
				return fmt.Errorf("rule returned %d values for %v, want %d: %w", len(next), c, cur.arity, ErrDimensionMismatch)
			}
			copy(dst, next)
		}
	}
	return nil
}
