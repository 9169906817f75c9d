package bot

import (
	"testing"

	"github.com/freeeve/battleship/pkg/battleship"
)

func TestStrategyForDifficulty(t *testing.T) {
	tests := []struct {
		difficulty string
		bias       BiasSource
		want       string
	}{
		{"random", nil, DifficultyRandom},
		{"hunt", nil, DifficultyHunt},
		{"learning", fixedBias{}, DifficultyLearning},
		{"learning", nil, DifficultyHunt},
		{"impossible", nil, DifficultyHunt},
	}
	for _, tt := range tests {
		if got := StrategyForDifficulty(tt.difficulty, tt.bias).Name(); got != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.difficulty, tt.want, got)
		}
	}
}

func TestStrategyForDifficulty_ReturnsFreshAgents(t *testing.T) {
	a := StrategyForDifficulty(DifficultyHunt, nil)
	b := StrategyForDifficulty(DifficultyHunt, nil)
	if a == b {
		t.Error("expected distinct strategy instances per call")
	}
}

func TestRandomStrategy_CoversBoardWithoutRepeats(t *testing.T) {
	SeedBotRng(42)
	defer ResetBotRng()

	b := battleship.NewBoard(4)
	s := RandomStrategy{}
	seen := map[battleship.Coord]bool{}
	for {
		c, ok := s.NextMove(b)
		if !ok {
			break
		}
		if seen[c] {
			t.Fatalf("repeat move %s", c)
		}
		seen[c] = true
		s.Observe(c, b.ReceiveShot(c), b)
	}
	if len(seen) != 16 {
		t.Errorf("expected 16 moves, got %d", len(seen))
	}
}

func TestSeedBotRng_Reproducible(t *testing.T) {
	defer ResetBotRng()

	play := func() []battleship.Coord {
		SeedBotRng(99)
		b := battleship.NewBoard(5)
		var moves []battleship.Coord
		for i := 0; i < 10; i++ {
			c, _ := RandomStrategy{}.NextMove(b)
			b.ReceiveShot(c)
			moves = append(moves, c)
		}
		return moves
	}
	first, second := play(), play()
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("move %d differs: %s vs %s", i, first[i], second[i])
		}
	}
}
