package core

import (
	"fmt"
	"strings"
)

// EdgeRule selects how neighbor lookups behave at the grid boundary.
type EdgeRule uint8

const (
	// IgnoreEdgeCells freezes every cell whose neighborhood leaves the grid.
	IgnoreEdgeCells EdgeRule = iota
	// IgnoreMissingNeighbors drops out-of-range neighbors from the list.
	IgnoreMissingNeighbors
	// WrapFirstLastAsNeighbors treats the grid as a torus.
	WrapFirstLastAsNeighbors
)

func (e EdgeRule) String() string {
	switch e {
	case IgnoreEdgeCells:
		return "ignore-edge-cells"
	case IgnoreMissingNeighbors:
		return "ignore-missing-neighbors"
	case WrapFirstLastAsNeighbors:
		return "wrap"
	default:
		return fmt.Sprintf("EdgeRule(%d)", uint8(e))
	}
}

// ParseEdgeRule accepts the canonical names plus a few common spellings.
func ParseEdgeRule(s string) (EdgeRule, error) {
	key := strings.NewReplacer("_", "-", " ", "-").Replace(strings.ToLower(strings.TrimSpace(s)))
	switch key {
	case "ignore-edge-cells", "ignore-edge", "ignoreedgecells", "frozen":
		return IgnoreEdgeCells, nil
	case "ignore-missing-neighbors", "ignore-missing", "ignore-missing-neighbors-of-edge-cells", "ignoremissingneighbors", "clip":
		return IgnoreMissingNeighbors, nil
	case "wrap", "torus", "first-and-last-cell-of-dimension-are-neighbors", "wrapfirstlastasneighbors":
		return WrapFirstLastAsNeighbors, nil
	}
	return 0, fmt.Errorf("unknown edge rule %q", s)
}

// Offset is a relative coordinate inside a neighborhood.
type Offset struct {
	DRow, DCol int
}

// Neighborhood is an ordered list of relative offsets defining adjacency.
type Neighborhood struct {
	Name    string
	Offsets []Offset
}

// Moore returns the 8-connected neighborhood in row-major order.
func Moore() Neighborhood {
	offsets := make([]Offset, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			offsets = append(offsets, Offset{DRow: dr, DCol: dc})
		}
	}
	return Neighborhood{Name: "moore", Offsets: offsets}
}

// VonNeumann returns the 4-connected neighborhood.
func VonNeumann() Neighborhood {
	return Neighborhood{Name: "von-neumann", Offsets: []Offset{
		{DRow: -1, DCol: 0},
		{DRow: 0, DCol: -1},
		{DRow: 0, DCol: 1},
		{DRow: 1, DCol: 0},
	}}
}

// IsEdge reports whether any offset of n lands outside g when applied to c.
func (n Neighborhood) IsEdge(c Coord, g *Grid) bool {
	for _, o := range n.Offsets {
		if !g.Contains(Coord{Row: c.Row + o.DRow, Col: c.Col + o.DCol}) {
			return true
		}
	}
	return false
}

// NeighborCoords resolves the absolute neighbor coordinates of c.
func NeighborCoords(c Coord, n Neighborhood, edge EdgeRule, g *Grid) ([]Coord, error) {
	if !g.Contains(c) {
		return nil, fmt.Errorf("neighbors of %v: %w", c, ErrInvalidCoordinate)
	}
	out := make([]Coord, 0, len(n.Offsets))
	for _, o := range n.Offsets {
		nc, ok, err := resolve(c, o, edge, g)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, nc)
		}
	}
	return out, nil
}

// NeighborsOf returns copies of the neighbor states of c in offset order.
func NeighborsOf(c Coord, n Neighborhood, edge EdgeRule, g *Grid) ([]State, error) {
	coords, err := NeighborCoords(c, n, edge, g)
	if err != nil {
		return nil, err
	}
	out := make([]State, len(coords))
	for i, nc := range coords {
		out[i] = append(State(nil), g.cell(nc)...)
	}
	return out, nil
}

// appendNeighbors is the allocation-free variant used while stepping. The
// returned states alias g and are only valid until the next commit.
func appendNeighbors(buf []State, c Coord, n Neighborhood, edge EdgeRule, g *Grid) ([]State, error) {
	for _, o := range n.Offsets {
		nc, ok, err := resolve(c, o, edge, g)
		if err != nil {
			return buf, err
		}
		if ok {
			buf = append(buf, g.cell(nc))
		}
	}
	return buf, nil
}

func resolve(c Coord, o Offset, edge EdgeRule, g *Grid) (Coord, bool, error) {
	nc := Coord{Row: c.Row + o.DRow, Col: c.Col + o.DCol}
	if g.Contains(nc) {
		return nc, true, nil
	}
	switch edge {
	case WrapFirstLastAsNeighbors:
		return g.Wrap(nc), true, nil
	case IgnoreMissingNeighbors:
		return Coord{}, false, nil
	default:
		return Coord{}, false, fmt.Errorf("neighbor %v of %v under %s: %w", nc, c, edge, ErrOutOfBounds)
	}
}
