package battleship

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
)

// Orientation of a straight ship.
type Orientation string

const (
	Horizontal Orientation = "H"
	Vertical   Orientation = "V"
)

// FleetEntry names one ship to place and its length.
type FleetEntry struct {
	Name   string `json:"name"`
	Length int    `json:"length"`
}

const (
	// maxPlacementAttempts is the per-ship sampling cap for random placement.
	maxPlacementAttempts = 100
	// maxBoardAttempts bounds how many fresh boards RandomBoard tries.
	maxBoardAttempts = 50
)

var ErrPlacementExhausted = errors.New("random placement exhausted")

// PlacementError lists ships that random placement could not fit.
type PlacementError struct {
	Unplaced []FleetEntry
}

func (e *PlacementError) Error() string {
	names := make([]string, len(e.Unplaced))
	for i, f := range e.Unplaced {
		names[i] = fmt.Sprintf("%s(%d)", f.Name, f.Length)
	}
	return fmt.Sprintf("%s: could not place %s", ErrPlacementExhausted, strings.Join(names, ", "))
}

func (e *PlacementError) Unwrap() error { return ErrPlacementExhausted }

// StandardFleet returns the fleet used for a board of the given size.
func StandardFleet(size int) []FleetEntry {
	switch {
	case size >= 10:
		return []FleetEntry{
			{"Carrier", 5}, {"Battleship", 4}, {"Cruiser", 3}, {"Submarine", 3}, {"Destroyer", 2},
		}
	case size >= 5:
		return []FleetEntry{{"Submarine", 3}, {"Destroyer", 2}}
	default:
		return []FleetEntry{{"Destroyer", 2}}
	}
}

// Footprint returns the cells of a straight ship of the given length whose
// top-left cell is anchor.
func Footprint(anchor Coord, length int, o Orientation) []Coord {
	out := make([]Coord, length)
	for i := range out {
		if o == Vertical {
			out[i] = Coord{anchor.Row + i, anchor.Col}
		} else {
			out[i] = Coord{anchor.Row, anchor.Col + i}
		}
	}
	return out
}

// ValidPlacement reports whether footprint can be placed on b: every cell on
// the grid, no overlap, and no cell edge- or corner-adjacent to an existing
// ship. It never mutates b.
func ValidPlacement(b *Board, footprint []Coord) bool {
	if len(footprint) == 0 {
		return false
	}
	for _, c := range footprint {
		if !c.InBounds(b.size) {
			return false
		}
		if b.touchesShip(c) {
			return false
		}
	}
	return true
}

// touchesShip reports whether c or any of its eight neighbours holds a ship.
func (b *Board) touchesShip(c Coord) bool {
	if s := b.cells[c]; s == CellShip || s == CellHit {
		return true
	}
	for _, n := range c.Around() {
		if s := b.cells[n]; s == CellShip || s == CellHit {
			return true
		}
	}
	return false
}

// PlaceFleetRandomly places each entry in order at a random anchor and
// orientation, enforcing the no-touch rule. Each ship gets up to 100
// attempts; ships that never fit are skipped and reported in a
// *PlacementError while the rest of the fleet stays placed. A nil rng uses
// the global math/rand source.
func (b *Board) PlaceFleetRandomly(rng *rand.Rand, fleet []FleetEntry) error {
	var unplaced []FleetEntry
	for _, f := range fleet {
		if !b.placeOneRandomly(rng, f) {
			unplaced = append(unplaced, f)
		}
	}
	if len(unplaced) > 0 {
		return &PlacementError{Unplaced: unplaced}
	}
	return nil
}

func (b *Board) placeOneRandomly(rng *rand.Rand, f FleetEntry) bool {
	if f.Length <= 0 || f.Length > b.size {
		return false
	}
	for attempt := 0; attempt < maxPlacementAttempts; attempt++ {
		o := Horizontal
		if intn(rng, 2) == 1 {
			o = Vertical
		}
		var anchor Coord
		if o == Horizontal {
			anchor = Coord{intn(rng, b.size), intn(rng, b.size-f.Length+1)}
		} else {
			anchor = Coord{intn(rng, b.size-f.Length+1), intn(rng, b.size)}
		}
		fp := Footprint(anchor, f.Length, o)
		if !ValidPlacement(b, fp) {
			continue
		}
		s, err := NewShip(f.Name, fp)
		if err != nil {
			return false
		}
		return b.AddShip(s)
	}
	return false
}

// RandomBoard builds a board with the complete fleet placed under the
// no-touch rule. A layout that leaves any ship unplaced is discarded and a
// fresh board is tried, so callers never get an incomplete fleet.
func RandomBoard(size int, fleet []FleetEntry, rng *rand.Rand) (*Board, error) {
	var lastErr error
	for i := 0; i < maxBoardAttempts; i++ {
		b := NewBoard(size)
		err := b.PlaceFleetRandomly(rng, fleet)
		if err == nil {
			return b, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("board %dx%d after %d layouts: %w", size, size, maxBoardAttempts, lastErr)
}

func intn(rng *rand.Rand, n int) int {
	if rng != nil {
		return rng.Intn(n)
	}
	return rand.Intn(n)
}
