package bot

import "github.com/freeeve/battleship/pkg/battleship"

// hitWeight is what a confirmed but unresolved hit adds per window that
// covers it, versus 1 for open water. It pulls the field toward finishing
// damaged ships.
const hitWeight = 10

// BiasSource supplies a per-cell bonus from previous games.
type BiasSource interface {
	Score(c battleship.Coord) float64
}

// ProbabilityField is a per-cell likelihood score that some surviving ship
// covers the cell. It is recomputed for every hunt decision.
type ProbabilityField struct {
	size   int
	scores []float64
}

func (f *ProbabilityField) Size() int { return f.size }

// At returns the score of c.
func (f *ProbabilityField) At(c battleship.Coord) float64 {
	return f.scores[c.Row*f.size+c.Col]
}

// Grid returns the scores indexed [row][col].
func (f *ProbabilityField) Grid() [][]float64 {
	g := make([][]float64, f.size)
	for r := range g {
		g[r] = append([]float64(nil), f.scores[r*f.size:(r+1)*f.size]...)
	}
	return g
}

func (f *ProbabilityField) add(c battleship.Coord, v float64) {
	f.scores[c.Row*f.size+c.Col] += v
}

// ComputeField counts, for every surviving ship length, each horizontal
// and vertical window that could still hold that ship, and credits every
// cell the window covers. A window is ruled out if it touches a miss, a
// sunk ship's cell, or the ring around a sunk ship. When bias is non-nil
// its score is added to every cell not yet known to be a miss or hit.
func ComputeField(view battleship.BoardView, lengths []int, bias BiasSource) *ProbabilityField {
	size := view.Size()
	f := &ProbabilityField{size: size, scores: make([]float64, size*size)}
	blocked := forbiddenCells(view)

	for _, length := range lengths {
		if length <= 0 || length > size {
			continue
		}
		for r := 0; r < size; r++ {
			for c := 0; c+length <= size; c++ {
				f.fitWindow(view, blocked, battleship.C(r, c), length, battleship.Horizontal)
			}
		}
		for r := 0; r+length <= size; r++ {
			for c := 0; c < size; c++ {
				f.fitWindow(view, blocked, battleship.C(r, c), length, battleship.Vertical)
			}
		}
	}

	if bias != nil {
		for r := 0; r < size; r++ {
			for c := 0; c < size; c++ {
				cell := battleship.C(r, c)
				switch view.Observed(cell) {
				case battleship.CellMiss, battleship.CellHit:
				default:
					f.add(cell, bias.Score(cell))
				}
			}
		}
	}
	return f
}

func (f *ProbabilityField) fitWindow(view battleship.BoardView, blocked []bool, anchor battleship.Coord, length int, o battleship.Orientation) {
	window := battleship.Footprint(anchor, length, o)
	for _, c := range window {
		if blocked[c.Row*f.size+c.Col] {
			return
		}
	}
	for _, c := range window {
		w := 1.0
		if view.Observed(c) == battleship.CellHit {
			w = hitWeight
		}
		f.add(c, w)
	}
}

// forbiddenCells marks misses, sunk ship cells and the eight-neighbour ring
// around every sunk ship. No live ship can cover any of them.
func forbiddenCells(view battleship.BoardView) []bool {
	size := view.Size()
	blocked := make([]bool, size*size)
	mark := func(c battleship.Coord) {
		if c.InBounds(size) {
			blocked[c.Row*size+c.Col] = true
		}
	}
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			if view.Observed(battleship.C(r, c)) == battleship.CellMiss {
				blocked[r*size+c] = true
			}
		}
	}
	for _, c := range view.SunkShipCells() {
		mark(c)
		for _, n := range c.Around() {
			mark(n)
		}
	}
	return blocked
}

// BestHuntMove returns the unshot cell with the highest score, scanning in
// row-major order. A tie goes to the even-parity (row+col even) cell when
// the current best is odd; otherwise the earlier cell is kept. It returns
// false only when every cell has been shot.
func BestHuntMove(view battleship.BoardView, field *ProbabilityField) (battleship.Coord, bool) {
	size := view.Size()
	best := battleship.Coord{}
	bestScore := -1.0
	found := false

	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			cell := battleship.C(r, c)
			if view.WasShot(cell) {
				continue
			}
			score := field.At(cell)
			switch {
			case score > bestScore:
				best, bestScore, found = cell, score, true
			case score == bestScore && cell.Even() && !best.Even():
				best = cell
			}
		}
	}
	return best, found
}

// unshotCells lists every cell not yet fired at, row-major.
func unshotCells(view battleship.BoardView) []battleship.Coord {
	size := view.Size()
	var out []battleship.Coord
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			if cell := battleship.C(r, c); !view.WasShot(cell) {
				out = append(out, cell)
			}
		}
	}
	return out
}

// randomUnshot picks uniformly among unshot cells.
func randomUnshot(view battleship.BoardView) (battleship.Coord, bool) {
	open := unshotCells(view)
	if len(open) == 0 {
		return battleship.Coord{}, false
	}
	return open[botIntn(len(open))], true
}
