package battleship

import "fmt"

// Coord is a 0-indexed (row, column) cell position. Comparable, so it is
// used directly as a map key.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// C is shorthand for Coord{Row: r, Col: c}.
func C(r, c int) Coord {
	return Coord{Row: r, Col: c}
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// InBounds reports whether c lies on a size×size grid.
func (c Coord) InBounds(size int) bool {
	return c.Row >= 0 && c.Row < size && c.Col >= 0 && c.Col < size
}

// Orthogonal returns the four edge-adjacent cells in the order
// down, up, right, left. Cells may be off-grid.
func (c Coord) Orthogonal() [4]Coord {
	return [4]Coord{
		{c.Row + 1, c.Col},
		{c.Row - 1, c.Col},
		{c.Row, c.Col + 1},
		{c.Row, c.Col - 1},
	}
}

// Around returns the eight surrounding cells (edges and diagonals).
// Cells may be off-grid.
func (c Coord) Around() [8]Coord {
	var out [8]Coord
	i := 0
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			out[i] = Coord{c.Row + dr, c.Col + dc}
			i++
		}
	}
	return out
}

// Even reports whether row+col is even (checkerboard parity).
func (c Coord) Even() bool {
	return (c.Row+c.Col)%2 == 0
}
