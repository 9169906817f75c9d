package file

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/freeeve/battleship/internal/learning"
	"github.com/freeeve/battleship/pkg/battleship"
)

func TestBiasStore_MissingFile(t *testing.T) {
	s := NewBiasStore(filepath.Join(t.TempDir(), "ai_memory.json"))
	got, err := s.LoadBias(context.Background(), 10)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil grid, got %v", got)
	}
}

func TestBiasStore_RoundTripKeepsOtherSizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ai_memory.json")
	s := NewBiasStore(path)
	ctx := context.Background()

	small := [][]int{{1, 0}, {0, 1}}
	large := [][]int{{0, 0, 0}, {0, 5, 0}, {0, 0, 0}}
	if err := s.SaveBias(ctx, 2, small); err != nil {
		t.Fatalf("save 2: %v", err)
	}
	if err := s.SaveBias(ctx, 3, large); err != nil {
		t.Fatalf("save 3: %v", err)
	}

	reopened := NewBiasStore(path)
	for size, want := range map[int][][]int{2: small, 3: large} {
		got, err := reopened.LoadBias(ctx, size)
		if err != nil {
			t.Fatalf("load %d: %v", size, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("size %d: expected %v, got %v", size, want, got)
		}
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("expected temp file to be renamed away")
	}
}

func TestBiasStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ai_memory.json")
	os.WriteFile(path, []byte("{not json"), 0o644)
	if _, err := NewBiasStore(path).LoadBias(context.Background(), 10); err == nil {
		t.Error("expected decode error")
	}
}

func TestBiasStore_MismatchedTableResets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ai_memory.json")
	s := NewBiasStore(path)
	ctx := context.Background()
	// A 3x3 table filed under size 4.
	s.SaveBias(ctx, 4, [][]int{{1, 1, 1}, {1, 1, 1}, {1, 1, 1}})

	b := learning.New(4, s)
	if err := b.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if b.Count(battleship.C(0, 0)) != 0 {
		t.Error("expected mismatched table to reset to zeros")
	}

	board := battleship.NewBoard(4)
	board.AddShip(battleship.MustShip("Destroyer", battleship.C(3, 2), battleship.C(3, 3)))
	if err := b.RecordGame(ctx, board); err != nil {
		t.Fatalf("record: %v", err)
	}
	got, _ := s.LoadBias(ctx, 4)
	if len(got) != 4 || got[3][3] != 1 {
		t.Errorf("expected a fresh 4x4 table with (3,3)=1, got %v", got)
	}
}
