package battleship

// BoardView is the read-only surface a shooter may inspect about the board
// it is firing at. Unhit ship cells are never exposed.
type BoardView interface {
	Size() int
	Observed(c Coord) CellState
	WasShot(c Coord) bool
	RemainingShipLengths() []int
	SunkShipCells() []Coord
}

// Layout is the ground-truth ship layout of a board, read after a game ends.
type Layout interface {
	Size() int
	ShipCells() []Coord
}

var (
	_ BoardView = (*Board)(nil)
	_ Layout    = (*Board)(nil)
)
