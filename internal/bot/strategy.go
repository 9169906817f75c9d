package bot

import (
	"github.com/rs/zerolog/log"

	"github.com/freeeve/battleship/pkg/battleship"
)

// Strategy picks shots against an opponent board it can only observe.
// Strategies are stateful and belong to a single game.
type Strategy interface {
	Name() string
	// NextMove returns the next cell to fire at, or false when no unshot
	// cell remains.
	NextMove(view battleship.BoardView) (battleship.Coord, bool)
	// Observe feeds back the result of the shot just fired.
	Observe(c battleship.Coord, result battleship.ShotResult, view battleship.BoardView)
}

// Difficulty names accepted by StrategyForDifficulty.
const (
	DifficultyRandom   = "random"
	DifficultyHunt     = "hunt"
	DifficultyLearning = "learning"
)

// Difficulties lists every known difficulty in ascending strength.
func Difficulties() []string {
	return []string{DifficultyRandom, DifficultyHunt, DifficultyLearning}
}

// StrategyForDifficulty returns a fresh strategy for a difficulty level.
// "learning" needs a bias source; without one it plays as "hunt".
// Unknown names get "hunt".
func StrategyForDifficulty(difficulty string, bias BiasSource) Strategy {
	switch difficulty {
	case DifficultyRandom:
		return &RandomStrategy{}
	case DifficultyLearning:
		if bias == nil {
			log.Warn().Msg("learning difficulty requested without a bias table; falling back to hunt")
			return NewTargetingAgent(nil)
		}
		return NewTargetingAgent(bias)
	default:
		return NewTargetingAgent(nil)
	}
}

// --- RandomStrategy ---

// RandomStrategy fires uniformly at random among unshot cells. It is the
// baseline the other strategies are measured against.
type RandomStrategy struct{}

func (RandomStrategy) Name() string { return DifficultyRandom }

func (RandomStrategy) NextMove(view battleship.BoardView) (battleship.Coord, bool) {
	return randomUnshot(view)
}

func (RandomStrategy) Observe(battleship.Coord, battleship.ShotResult, battleship.BoardView) {}
