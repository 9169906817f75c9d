package battleship

import "fmt"

// CellState is what a board knows about one cell.
type CellState int

const (
	CellEmpty CellState = iota
	CellShip
	CellHit // struck ship segment ("already_hit")
	CellMiss
)

func (s CellState) String() string {
	switch s {
	case CellShip:
		return "ship"
	case CellHit:
		return "already_hit"
	case CellMiss:
		return "miss"
	default:
		return "empty"
	}
}

func (s CellState) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *CellState) UnmarshalText(b []byte) error {
	switch string(b) {
	case "empty":
		*s = CellEmpty
	case "ship":
		*s = CellShip
	case "already_hit":
		*s = CellHit
	case "miss":
		*s = CellMiss
	default:
		return fmt.Errorf("unknown cell state %q", b)
	}
	return nil
}

// Board is one side's square grid: its ships, per-cell state and the set of
// coordinates fired at. Board is the only writer of its own state; other
// packages should hold it as a BoardView.
type Board struct {
	size  int
	cells map[Coord]CellState // absent means CellEmpty
	ships []*Ship             // placement order
	shots map[Coord]struct{}
}

// NewBoard returns an empty size×size board.
func NewBoard(size int) *Board {
	return &Board{
		size:  size,
		cells: make(map[Coord]CellState),
		shots: make(map[Coord]struct{}),
	}
}

func (b *Board) Size() int { return b.size }

// AddShip places s if every footprint cell is on the grid and not already a
// ship cell. It returns false without mutating the board otherwise. The
// no-touch rule is not checked here; see ValidPlacement.
func (b *Board) AddShip(s *Ship) bool {
	for _, c := range s.footprint {
		if !c.InBounds(b.size) {
			return false
		}
	}
	for _, c := range s.footprint {
		if b.cells[c] == CellShip {
			return false
		}
	}
	b.ships = append(b.ships, s)
	for _, c := range s.footprint {
		b.cells[c] = CellShip
	}
	return true
}

// ReceiveShot resolves an incoming shot. A coordinate already fired at
// returns Repeat and changes nothing. Bounds are the caller's job.
func (b *Board) ReceiveShot(c Coord) ShotResult {
	if _, dup := b.shots[c]; dup {
		return Repeat
	}
	b.shots[c] = struct{}{}

	if b.cells[c] == CellShip {
		for _, s := range b.ships {
			if !s.Occupies(c) {
				continue
			}
			s.RegisterHit(c)
			b.cells[c] = CellHit
			if s.IsSunk() {
				return Sunk(s.name)
			}
			return Hit
		}
	}
	b.cells[c] = CellMiss
	return Miss
}

// AllShipsSunk reports whether every placed ship is sunk. It is vacuously
// true for a board with no ships.
func (b *Board) AllShipsSunk() bool {
	for _, s := range b.ships {
		if !s.IsSunk() {
			return false
		}
	}
	return true
}

// State returns the true state of c, including unhit ship cells.
func (b *Board) State(c Coord) CellState {
	return b.cells[c]
}

// Observed returns the state of c as the shooter sees it: unhit ship cells
// read as empty.
func (b *Board) Observed(c Coord) CellState {
	s := b.cells[c]
	if s == CellShip {
		return CellEmpty
	}
	return s
}

// WasShot reports whether c has been fired at.
func (b *Board) WasShot(c Coord) bool {
	_, ok := b.shots[c]
	return ok
}

// ShotCount returns the number of distinct coordinates fired at.
func (b *Board) ShotCount() int { return len(b.shots) }

// Ships returns the placed ships in placement order.
func (b *Board) Ships() []*Ship {
	out := make([]*Ship, len(b.ships))
	copy(out, b.ships)
	return out
}

// ShipAt returns the ship occupying c, or nil.
func (b *Board) ShipAt(c Coord) *Ship {
	for _, s := range b.ships {
		if s.Occupies(c) {
			return s
		}
	}
	return nil
}

// RemainingShipLengths returns the lengths of ships not yet sunk, in
// placement order. Fleet composition is public, so this is not a leak.
func (b *Board) RemainingShipLengths() []int {
	var out []int
	for _, s := range b.ships {
		if !s.IsSunk() {
			out = append(out, s.Len())
		}
	}
	return out
}

// SunkShipCells returns every cell of every sunk ship.
func (b *Board) SunkShipCells() []Coord {
	var out []Coord
	for _, s := range b.ships {
		if s.IsSunk() {
			out = append(out, s.footprint...)
		}
	}
	return out
}

// ShipCells returns every true ship cell, hit or not, in row-major order.
func (b *Board) ShipCells() []Coord {
	var out []Coord
	for r := 0; r < b.size; r++ {
		for c := 0; c < b.size; c++ {
			if s := b.cells[Coord{r, c}]; s == CellShip || s == CellHit {
				out = append(out, Coord{r, c})
			}
		}
	}
	return out
}

// Reveal returns the full true grid, indexed [row][col].
func (b *Board) Reveal() [][]CellState {
	grid := make([][]CellState, b.size)
	for r := range grid {
		grid[r] = make([]CellState, b.size)
		for c := range grid[r] {
			grid[r][c] = b.cells[Coord{r, c}]
		}
	}
	return grid
}

// ObservedGrid is Reveal with unhit ship cells masked as empty.
func (b *Board) ObservedGrid() [][]CellState {
	grid := b.Reveal()
	for r := range grid {
		for c := range grid[r] {
			if grid[r][c] == CellShip {
				grid[r][c] = CellEmpty
			}
		}
	}
	return grid
}
