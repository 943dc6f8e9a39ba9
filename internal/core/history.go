package core

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Snapshot is an immutable copy of a grid taken after a generation commit.
type Snapshot struct {
	Generation int
	Height     int
	Width      int
	Arity      int
	Values     []float64
}

// TakeSnapshot copies the automaton's live grid.
func TakeSnapshot(a *Automaton) Snapshot {
	g := a.cur
	return Snapshot{
		Generation: a.generation,
		Height:     g.H,
		Width:      g.W,
		Arity:      g.arity,
		Values:     append([]float64(nil), g.data...),
	}
}

// At returns the value of channel k at c.
func (s Snapshot) At(c Coord, k int) (float64, error) {
	if c.Row < 0 || c.Row >= s.Height || c.Col < 0 || c.Col >= s.Width {
		return 0, fmt.Errorf("snapshot read %v: %w", c, ErrOutOfBounds)
	}
	if k < 0 || k >= s.Arity {
		return 0, fmt.Errorf("snapshot channel %d of %d: %w", k, s.Arity, ErrDimensionMismatch)
	}
	return s.Values[(c.Row*s.Width+c.Col)*s.Arity+k], nil
}

// Rows returns channel k as a freshly allocated 2D array.
func (s Snapshot) Rows(k int) [][]float64 {
	return rowsOf(s.Values, s.Height, s.Width, s.Arity, k)
}

// Mean averages channel 0 over every cell of the snapshot.
func (s Snapshot) Mean() float64 {
	n := s.Height * s.Width
	if n == 0 {
		return 0
	}
	if s.Arity == 1 {
		return floats.Sum(s.Values) / float64(n)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += s.Values[i*s.Arity]
	}
	return sum / float64(n)
}

// Embed places channel 0 in the top-left corner of an h*w zero frame. Cells
// that do not fit are dropped.
func (s Snapshot) Embed(h, w int) [][]float64 {
	out := make([][]float64, h)
	for row := range out {
		out[row] = make([]float64, w)
		if row >= s.Height {
			continue
		}
		for col := 0; col < w && col < s.Width; col++ {
			out[row][col] = s.Values[(row*s.Width+col)*s.Arity]
		}
	}
	return out
}

// History is the ordered list of snapshots produced by one Driver.Run.
type History []Snapshot

// Last returns the final snapshot, or false for an empty history.
func (h History) Last() (Snapshot, bool) {
	if len(h) == 0 {
		return Snapshot{}, false
	}
	return h[len(h)-1], true
}

// Driver steps an automaton in batches and records a snapshot per batch.
type Driver struct {
	ca *Automaton
}

// NewDriver returns a driver for a.
func NewDriver(a *Automaton) *Driver {
	return &Driver{ca: a}
}

// Run steps until the automaton reaches lastStep, calling Step with
// evolutionsPerStep generations at a time. The final batch is shortened so
// the generation never passes lastStep. One snapshot is recorded after each
// Step call.
func (d *Driver) Run(evolutionsPerStep, lastStep int) (History, error) {
	if evolutionsPerStep <= 0 {
		return nil, fmt.Errorf("evolutions per step %d: %w", evolutionsPerStep, ErrInvalidStepCount)
	}
	start := d.ca.Generation()
	if lastStep <= start {
		return nil, fmt.Errorf("last step %d at generation %d: %w", lastStep, start, ErrInvalidStepCount)
	}
	remaining := lastStep - start
	history := make(History, 0, (remaining+evolutionsPerStep-1)/evolutionsPerStep)
	for d.ca.Generation() < lastStep {
		n := min(evolutionsPerStep, lastStep-d.ca.Generation())
		if err := d.ca.Step(n); err != nil {
			return nil, err
		}
		history = append(history, TakeSnapshot(d.ca))
	}
	return history, nil
}

// Get exposes the live grid of the driven automaton.
func (d *Driver) Get() *Grid { return d.ca.Grid() }
