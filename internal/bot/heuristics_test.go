package bot

import (
	"testing"

	"github.com/freeeve/battleship/pkg/battleship"
)

type fixedBias map[battleship.Coord]float64

func (b fixedBias) Score(c battleship.Coord) float64 { return b[c] }

func TestComputeField_ForbiddenCellsScoreZero(t *testing.T) {
	b := battleship.NewBoard(5)
	b.AddShip(battleship.MustShip("Destroyer", battleship.C(0, 0), battleship.C(0, 1)))
	b.AddShip(battleship.MustShip("Submarine", battleship.C(3, 1), battleship.C(3, 2), battleship.C(3, 3)))
	b.ReceiveShot(battleship.C(0, 0))
	b.ReceiveShot(battleship.C(0, 1))
	b.ReceiveShot(battleship.C(4, 4))

	for _, lengths := range [][]int{{3}, {2}, {2, 3, 4}} {
		f := ComputeField(b, lengths, nil)
		zero := []battleship.Coord{
			battleship.C(0, 0), battleship.C(0, 1), // sunk
			battleship.C(4, 4), // miss
			battleship.C(1, 0), battleship.C(1, 1), battleship.C(1, 2), battleship.C(0, 2), // ring
		}
		for _, c := range zero {
			if got := f.At(c); got != 0 {
				t.Errorf("lengths %v: expected 0 at %s, got %v", lengths, c, got)
			}
		}
	}
}

func TestComputeField_NonNegative(t *testing.T) {
	b := battleship.NewBoard(6)
	b.AddShip(battleship.MustShip("Cruiser", battleship.C(1, 1), battleship.C(1, 2), battleship.C(1, 3)))
	for _, c := range []battleship.Coord{battleship.C(1, 2), battleship.C(5, 5), battleship.C(0, 3), battleship.C(3, 3)} {
		b.ReceiveShot(c)
	}
	f := ComputeField(b, b.RemainingShipLengths(), fixedBias{battleship.C(2, 2): 0.3})
	for r, row := range f.Grid() {
		for c, v := range row {
			if v < 0 {
				t.Errorf("negative score %v at (%d,%d)", v, r, c)
			}
		}
	}
}

func TestComputeField_UnresolvedHitWeighted(t *testing.T) {
	b := battleship.NewBoard(5)
	b.AddShip(battleship.MustShip("Destroyer", battleship.C(2, 2), battleship.C(2, 3)))
	b.ReceiveShot(battleship.C(2, 2))

	f := ComputeField(b, []int{2}, nil)
	// Four length-2 windows cover the hit, each weighted 10.
	if got := f.At(battleship.C(2, 2)); got != 40 {
		t.Errorf("expected hit cell score 40, got %v", got)
	}
	if got := f.At(battleship.C(2, 1)); got != 4 {
		t.Errorf("expected neighbour score 4, got %v", got)
	}
}

func TestComputeField_BiasSkipsMissAndHit(t *testing.T) {
	b := battleship.NewBoard(4)
	b.AddShip(battleship.MustShip("Destroyer", battleship.C(3, 0), battleship.C(3, 1)))
	b.ReceiveShot(battleship.C(0, 0)) // miss
	b.ReceiveShot(battleship.C(3, 0)) // hit

	bias := fixedBias{
		battleship.C(0, 0): 5,
		battleship.C(3, 0): 5,
		battleship.C(1, 1): 0.7,
	}
	plain := ComputeField(b, []int{2}, nil)
	biased := ComputeField(b, []int{2}, bias)

	if biased.At(battleship.C(0, 0)) != plain.At(battleship.C(0, 0)) {
		t.Error("expected no bias on a miss")
	}
	if biased.At(battleship.C(3, 0)) != plain.At(battleship.C(3, 0)) {
		t.Error("expected no bias on a hit")
	}
	if got, want := biased.At(battleship.C(1, 1)), plain.At(battleship.C(1, 1))+0.7; got != want {
		t.Errorf("expected %v at (1,1), got %v", want, got)
	}
}

func TestBestHuntMove_CenterOfEmptyBoard(t *testing.T) {
	b := battleship.NewBoard(10)
	lengths := []int{5, 4, 3, 3, 2}
	first, ok := BestHuntMove(b, ComputeField(b, lengths, nil))
	if !ok {
		t.Fatal("expected a move on an empty board")
	}
	if first != battleship.C(4, 4) {
		t.Errorf("expected (4,4), got %s", first)
	}
	for i := 0; i < 5; i++ {
		again, _ := BestHuntMove(b, ComputeField(b, lengths, nil))
		if again != first {
			t.Fatalf("expected deterministic move %s, got %s", first, again)
		}
	}
}

func TestBestHuntMove_ParityTieBreak(t *testing.T) {
	// On a 3x3 board with one length-3 ship every cell scores 2.
	b := battleship.NewBoard(3)
	got, _ := BestHuntMove(b, ComputeField(b, []int{3}, nil))
	if got != battleship.C(0, 0) {
		t.Errorf("expected (0,0), got %s", got)
	}

	b.ReceiveShot(battleship.C(0, 0))
	f := ComputeField(b, []int{3}, nil)
	// (0,0) is now a miss, so row 0 and column 0 lose their windows.
	// (1,1) and (2,2) keep both windows; (1,1) is reached first.
	got, _ = BestHuntMove(b, f)
	if got != battleship.C(1, 1) {
		t.Errorf("expected (1,1), got %s", got)
	}
}

func TestBestHuntMove_EvenReplacesOddTie(t *testing.T) {
	b := battleship.NewBoard(3)
	f := &ProbabilityField{size: 3, scores: []float64{
		0, 2, 2,
		0, 0, 0,
		0, 0, 0,
	}}
	got, _ := BestHuntMove(b, f)
	if got != battleship.C(0, 2) {
		t.Errorf("expected even cell (0,2) to win the tie, got %s", got)
	}
}

func TestBestHuntMove_FullyShot(t *testing.T) {
	b := battleship.NewBoard(2)
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			b.ReceiveShot(battleship.C(r, c))
		}
	}
	if _, ok := BestHuntMove(b, ComputeField(b, nil, nil)); ok {
		t.Error("expected no move on a fully shot board")
	}
	if _, ok := randomUnshot(b); ok {
		t.Error("expected no random move on a fully shot board")
	}
}
