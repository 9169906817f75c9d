package learning

import (
	"context"
	"errors"
	"testing"

	"github.com/freeeve/battleship/pkg/battleship"
)

func TestBias_LoadMissingIsZero(t *testing.T) {
	b := New(4, NewMemoryStore())
	if err := b.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	for _, row := range b.Counts() {
		for _, v := range row {
			if v != 0 {
				t.Fatalf("expected zeroed table, got %v", b.Counts())
			}
		}
	}
}

func TestBias_LoadDimensionMismatchResets(t *testing.T) {
	store := NewMemoryStore()
	store.Put(4, [][]int{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}})

	b := New(4, store)
	if err := b.Load(context.Background()); err != nil {
		t.Fatalf("mismatch should not be an error: %v", err)
	}
	if got := b.Count(battleship.C(0, 0)); got != 0 {
		t.Errorf("expected reset table, got count %d at (0,0)", got)
	}
	if len(b.Counts()) != 4 {
		t.Errorf("expected 4 rows, got %d", len(b.Counts()))
	}
}

func TestBias_LoadRaggedRowResets(t *testing.T) {
	store := NewMemoryStore()
	store.Put(2, [][]int{{1, 1}, {1}})

	b := New(2, store)
	b.Load(context.Background())
	if b.Count(battleship.C(0, 0)) != 0 {
		t.Error("ragged table should reset to zeros")
	}
}

func TestBias_RecordGameCountsAllShipCellsAndSaves(t *testing.T) {
	store := NewMemoryStore()
	b := New(4, store)
	b.Load(context.Background())

	board := battleship.NewBoard(4)
	board.AddShip(battleship.MustShip("Destroyer", battleship.C(1, 1), battleship.C(1, 2)))
	board.ReceiveShot(battleship.C(1, 1)) // hit or not, both cells count

	ctx := context.Background()
	if err := b.RecordGame(ctx, board); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := b.RecordGame(ctx, board); err != nil {
		t.Fatalf("record: %v", err)
	}

	if b.Count(battleship.C(1, 1)) != 2 || b.Count(battleship.C(1, 2)) != 2 {
		t.Errorf("expected count 2 on both ship cells, got %v", b.Counts())
	}
	if b.Count(battleship.C(0, 0)) != 0 {
		t.Error("water cell should stay 0")
	}
	if store.Saves != 2 {
		t.Errorf("expected a save per game, got %d", store.Saves)
	}

	reloaded := New(4, store)
	reloaded.Load(ctx)
	if reloaded.Count(battleship.C(1, 2)) != 2 {
		t.Error("persisted counts should survive reload")
	}
}

func TestBias_Score(t *testing.T) {
	store := NewMemoryStore()
	store.Put(2, [][]int{{25, 0}, {0, 3}})
	b := New(2, store)
	b.Load(context.Background())

	if got := b.Score(battleship.C(0, 0)); got != 2.5 {
		t.Errorf("expected 2.5, got %v", got)
	}
	if got := b.Score(battleship.C(1, 1)); got != 0.3 {
		t.Errorf("expected 0.3, got %v", got)
	}
	if got := b.Score(battleship.C(5, 5)); got != 0 {
		t.Errorf("off-grid score should be 0, got %v", got)
	}
}

func TestBias_RecordGameSizeMismatch(t *testing.T) {
	b := New(4, nil)
	err := b.RecordGame(context.Background(), battleship.NewBoard(5))
	if !errors.Is(err, ErrSizeMismatch) {
		t.Fatalf("expected ErrSizeMismatch, got %v", err)
	}
}
