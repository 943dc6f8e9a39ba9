package core

import "fmt"

// Coord addresses a cell by row and column.
type Coord struct {
	Row, Col int
}

// State is the fixed-arity value vector held by a single cell.
type State []float64

// InitFunc computes the initial state of a cell.
type InitFunc func(c Coord) State

// Grid stores a dense 2D field of cell states in row-major order. Each cell
// holds exactly Arity consecutive values in the backing slice.
type Grid struct {
	H, W  int
	arity int
	data  []float64
}

// NewGrid allocates an h*w grid and calls init exactly once per coordinate.
func NewGrid(h, w, arity int, init InitFunc) (*Grid, error) {
	if h <= 0 || w <= 0 {
		return nil, fmt.Errorf("grid %dx%d: %w", h, w, ErrShapeMismatch)
	}
	if arity <= 0 {
		return nil, fmt.Errorf("grid arity %d: %w", arity, ErrDimensionMismatch)
	}
	g := &Grid{H: h, W: w, arity: arity, data: make([]float64, h*w*arity)}
	if init == nil {
		return g, nil
	}
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			c := Coord{Row: row, Col: col}
			s := init(c)
			if len(s) != arity {
				return nil, fmt.Errorf("init %v returned %d values, want %d: %w", c, len(s), arity, ErrDimensionMismatch)
			}
			copy(g.data[g.offset(c):], s)
		}
	}
	return g, nil
}

// GridFromRows builds an arity-1 grid from a rectangular array of values.
func GridFromRows(rows [][]float64) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("empty rows: %w", ErrShapeMismatch)
	}
	w := len(rows[0])
	for i, r := range rows {
		if len(r) != w {
			return nil, fmt.Errorf("row %d has %d values, want %d: %w", i, len(r), w, ErrShapeMismatch)
		}
	}
	return NewGrid(len(rows), w, 1, func(c Coord) State {
		return State{rows[c.Row][c.Col]}
	})
}

// Arity reports the number of values per cell.
func (g *Grid) Arity() int { return g.arity }

// Size returns the grid dimensions.
func (g *Grid) Size() Size { return Size{W: g.W, H: g.H} }

// Contains reports whether c lies inside the grid.
func (g *Grid) Contains(c Coord) bool {
	return c.Row >= 0 && c.Row < g.H && c.Col >= 0 && c.Col < g.W
}

// Index returns the linear cell index for c.
func (g *Grid) Index(c Coord) int { return c.Row*g.W + c.Col }

// Wrap applies toroidal wrapping to the provided coordinate.
func (g *Grid) Wrap(c Coord) Coord {
	c.Row = (c.Row%g.H + g.H) % g.H
	c.Col = (c.Col%g.W + g.W) % g.W
	return c
}

// At returns a copy of the state stored at c.
func (g *Grid) At(c Coord) (State, error) {
	if !g.Contains(c) {
		return nil, fmt.Errorf("read %v in %dx%d grid: %w", c, g.H, g.W, ErrOutOfBounds)
	}
	return append(State(nil), g.cell(c)...), nil
}

// Cells exposes the backing slice. Callers must treat it as read-only.
func (g *Grid) Cells() []float64 { return g.data }

// Rows copies one channel of the grid into a 2D array.
func (g *Grid) Rows(channel int) [][]float64 {
	return rowsOf(g.data, g.H, g.W, g.arity, channel)
}

func (g *Grid) offset(c Coord) int { return g.Index(c) * g.arity }

// cell returns a capacity-limited view of the state at c.
func (g *Grid) cell(c Coord) State {
	off := g.offset(c)
	return g.data[off : off+g.arity : off+g.arity]
}

func rowsOf(data []float64, h, w, arity, channel int) [][]float64 {
	if channel < 0 || channel >= arity {
		return nil
	}
	out := make([][]float64, h)
	for row := range out {
		out[row] = make([]float64, w)
		for col := range out[row] {
			out[row][col] = data[(row*w+col)*arity+channel]
		}
	}
	return out
}
