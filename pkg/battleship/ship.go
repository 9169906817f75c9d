package battleship

import (
	"errors"
	"fmt"
)

var ErrInvalidFootprint = errors.New("invalid ship footprint")

// Ship is a named set of occupied cells plus the subset of them that has
// been hit. The footprint never changes after construction.
type Ship struct {
	name      string
	footprint []Coord
	cells     map[Coord]struct{}
	hits      map[Coord]struct{}
}

// NewShip creates a ship. The footprint must be non-empty with no repeated
// cells. Bounds are not checked here; Board.AddShip does that.
func NewShip(name string, footprint []Coord) (*Ship, error) {
	if len(footprint) == 0 {
		return nil, fmt.Errorf("%w: %q has no cells", ErrInvalidFootprint, name)
	}
	cells := make(map[Coord]struct{}, len(footprint))
	for _, c := range footprint {
		if _, dup := cells[c]; dup {
			return nil, fmt.Errorf("%w: %q repeats cell %s", ErrInvalidFootprint, name, c)
		}
		cells[c] = struct{}{}
	}
	fp := make([]Coord, len(footprint))
	copy(fp, footprint)
	return &Ship{
		name:      name,
		footprint: fp,
		cells:     cells,
		hits:      make(map[Coord]struct{}, len(footprint)),
	}, nil
}

// MustShip is NewShip that panics on error. Intended for tests and literals.
func MustShip(name string, footprint ...Coord) *Ship {
	s, err := NewShip(name, footprint)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Ship) Name() string { return s.name }

// Len returns the number of cells the ship occupies.
func (s *Ship) Len() int { return len(s.footprint) }

// Footprint returns a copy of the occupied cells in construction order.
func (s *Ship) Footprint() []Coord {
	out := make([]Coord, len(s.footprint))
	copy(out, s.footprint)
	return out
}

// Occupies reports whether c is part of the footprint.
func (s *Ship) Occupies(c Coord) bool {
	_, ok := s.cells[c]
	return ok
}

// RegisterHit records a hit on c. The caller guarantees c is in the
// footprint. Repeated hits on the same cell are no-ops.
func (s *Ship) RegisterHit(c Coord) {
	s.hits[c] = struct{}{}
}

// IsHit reports whether c has been hit.
func (s *Ship) IsHit(c Coord) bool {
	_, ok := s.hits[c]
	return ok
}

// HitCount returns how many distinct cells have been hit.
func (s *Ship) HitCount() int { return len(s.hits) }

// IsSunk reports whether every footprint cell has been hit.
func (s *Ship) IsSunk() bool {
	return len(s.hits) == len(s.footprint)
}
