package battleship

import (
	"errors"
	"math/rand"
	"testing"
)

func TestValidPlacement(t *testing.T) {
	b := NewBoard(6)
	b.AddShip(MustShip("Destroyer", C(2, 2), C(2, 3)))

	tests := []struct {
		name string
		fp   []Coord
		want bool
	}{
		{"clear water", Footprint(C(5, 0), 3, Horizontal), true},
		{"off grid", Footprint(C(0, 4), 3, Horizontal), false},
		{"overlap", Footprint(C(1, 3), 3, Vertical), false},
		{"edge adjacent", Footprint(C(3, 2), 2, Horizontal), false},
		{"one column gap", Footprint(C(0, 0), 3, Vertical), true},
		{"diagonal adjacent", Footprint(C(0, 4), 2, Vertical), false},
		{"corner touch", Footprint(C(3, 4), 2, Vertical), false},
		{"empty", nil, false},
	}
	for _, tt := range tests {
		if got := ValidPlacement(b, tt.fp); got != tt.want {
			t.Errorf("%s: ValidPlacement(%v) = %v, want %v", tt.name, tt.fp, got, tt.want)
		}
	}
	if len(b.Ships()) != 1 {
		t.Error("ValidPlacement must not mutate the board")
	}
}

func TestPlaceFleetRandomly_NoTouchNoOverlap(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	fleet := StandardFleet(10)

	for i := 0; i < 200; i++ {
		b := NewBoard(10)
		if err := b.PlaceFleetRandomly(rng, fleet); err != nil {
			continue // exhaustion is a soft failure; the invariant still holds below
		}
		owner := make(map[Coord]int)
		for si, s := range b.Ships() {
			for _, c := range s.Footprint() {
				if _, taken := owner[c]; taken {
					t.Fatalf("layout %d: overlap at %s", i, c)
				}
				owner[c] = si
			}
		}
		for c, si := range owner {
			for _, n := range c.Around() {
				if other, ok := owner[n]; ok && other != si {
					t.Fatalf("layout %d: ship %d at %s touches ship %d at %s", i, si, c, other, n)
				}
			}
		}
	}
}

func TestPlaceFleetRandomly_OrderAndNotSunk(t *testing.T) {
	b := NewBoard(10)
	fleet := StandardFleet(10)
	if err := b.PlaceFleetRandomly(rand.New(rand.NewSource(1)), fleet); err != nil {
		t.Fatalf("unexpected placement error: %v", err)
	}
	ships := b.Ships()
	if len(ships) != len(fleet) {
		t.Fatalf("expected %d ships, got %d", len(fleet), len(ships))
	}
	for i, s := range ships {
		if s.Name() != fleet[i].Name || s.Len() != fleet[i].Length {
			t.Errorf("ship %d: expected %s(%d), got %s(%d)", i, fleet[i].Name, fleet[i].Length, s.Name(), s.Len())
		}
	}
	if b.AllShipsSunk() {
		t.Error("freshly placed fleet should not be sunk")
	}
}

func TestPlaceFleetRandomly_SoftFailure(t *testing.T) {
	b := NewBoard(2)
	err := b.PlaceFleetRandomly(nil, []FleetEntry{{"Destroyer", 2}, {"Second", 2}})

	var pe *PlacementError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *PlacementError, got %v", err)
	}
	if !errors.Is(err, ErrPlacementExhausted) {
		t.Error("expected error to wrap ErrPlacementExhausted")
	}
	if len(pe.Unplaced) != 1 || pe.Unplaced[0].Name != "Second" {
		t.Errorf("expected Second unplaced, got %v", pe.Unplaced)
	}
	if len(b.Ships()) != 1 {
		t.Errorf("expected the first ship to stay placed, got %d ships", len(b.Ships()))
	}
}

func TestRandomBoard_FailsWhenFleetCannotFit(t *testing.T) {
	_, err := RandomBoard(3, []FleetEntry{{"Big", 4}}, nil)
	if !errors.Is(err, ErrPlacementExhausted) {
		t.Fatalf("expected ErrPlacementExhausted, got %v", err)
	}
}

func TestRandomBoard_CompleteFleet(t *testing.T) {
	b, err := RandomBoard(5, StandardFleet(5), rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("RandomBoard: %v", err)
	}
	if got := len(b.ShipCells()); got != 5 {
		t.Errorf("expected 5 ship cells, got %d", got)
	}
}
