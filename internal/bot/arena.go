package bot

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/freeeve/battleship/internal/learning"
	"github.com/freeeve/battleship/internal/model"
	"github.com/freeeve/battleship/internal/repository"
	"github.com/freeeve/battleship/pkg/battleship"
)

// SoloConfig configures one strategy firing at a single random fleet.
type SoloConfig struct {
	Size     int
	Fleet    []battleship.FleetEntry // nil = StandardFleet(Size)
	Strategy string                  // difficulty name
	Bias     *learning.Bias          // read by "learning"; nil disables learning
	Seed     int64                   // 0 = random
}

// SoloResult is the outcome of RunSolo.
type SoloResult struct {
	Strategy string
	Moves    int
	Sunk     bool // false if the strategy ran out of moves or hit the cap
}

// MatchConfig configures a full two-sided game between strategies.
type MatchConfig struct {
	Size           int
	Fleet          []battleship.FleetEntry
	PlayerStrategy string
	AIStrategy     string
	Bias           *learning.Bias
	Seed           int64
	DryRun         bool // skip repository writes
}

// MatchResult describes a completed arena match.
type MatchResult struct {
	MatchID       string
	Winner        battleship.Side
	Aborted       bool
	PlayerMoves   int
	AIMoves       int
	PlayerHistory []battleship.Move
	AIHistory     []battleship.Move
}

// RunSolo places a random fleet and lets one strategy fire until every ship
// is sunk. The loop stops after size²+10 shots regardless.
func RunSolo(ctx context.Context, cfg SoloConfig) (*SoloResult, error) {
	fleet := cfg.Fleet
	if fleet == nil {
		fleet = battleship.StandardFleet(cfg.Size)
	}
	board, err := battleship.RandomBoard(cfg.Size, fleet, arenaRng(cfg.Seed))
	if err != nil {
		return nil, fmt.Errorf("place solo fleet: %w", err)
	}

	strategy := StrategyForDifficulty(cfg.Strategy, biasSource(cfg.Bias))
	result := &SoloResult{Strategy: strategy.Name()}

	maxMoves := cfg.Size*cfg.Size + 10
	for result.Moves < maxMoves && !board.AllShipsSunk() {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c, ok := strategy.NextMove(board)
		if !ok {
			break
		}
		r := board.ReceiveShot(c)
		result.Moves++
		strategy.Observe(c, r, board)
	}
	result.Sunk = board.AllShipsSunk()

	if result.Sunk && strategy.Name() == DifficultyLearning && cfg.Bias != nil {
		if err := cfg.Bias.RecordGame(ctx, board); err != nil {
			return nil, fmt.Errorf("record solo layout: %w", err)
		}
	}
	return result, nil
}

// RunMatch plays a full game between two strategies and, unless DryRun,
// saves it through repo. Pass a nil repo to skip persistence.
func RunMatch(ctx context.Context, cfg MatchConfig, repo repository.MatchRepository) (*MatchResult, error) {
	fleet := cfg.Fleet
	if fleet == nil {
		fleet = battleship.StandardFleet(cfg.Size)
	}
	rng := arenaRng(cfg.Seed)
	playerBoard, err := battleship.RandomBoard(cfg.Size, fleet, rng)
	if err != nil {
		return nil, fmt.Errorf("place player fleet: %w", err)
	}
	aiBoard, err := battleship.RandomBoard(cfg.Size, fleet, rng)
	if err != nil {
		return nil, fmt.Errorf("place ai fleet: %w", err)
	}

	startedAt := time.Now().UTC()
	gs := battleship.NewGameWithBoards(playerBoard, aiBoard)
	strategies := map[battleship.Side]Strategy{
		battleship.SidePlayer: StrategyForDifficulty(cfg.PlayerStrategy, biasSource(cfg.Bias)),
		battleship.SideAI:     StrategyForDifficulty(cfg.AIStrategy, biasSource(cfg.Bias)),
	}

	// Each side can fire at most size² times before one fleet is gone.
	maxMoves := 2*cfg.Size*cfg.Size + 10
	for i := 0; i < maxMoves && !gs.Over(); i++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		mover := gs.Turn()
		target := gs.Board(mover.Other())
		c, ok := strategies[mover].NextMove(target)
		if !ok {
			log.Warn().Str("side", string(mover)).Msg("Strategy has no move left, aborting match")
			gs.Abort()
			break
		}
		r, err := gs.MakeMove(c)
		if err != nil {
			return nil, fmt.Errorf("move %s by %s: %w", c, mover, err)
		}
		strategies[mover].Observe(c, r, target)
	}
	if !gs.Over() {
		log.Warn().Int("moves", gs.MoveCount()).Msg("Arena match hit move cap, aborting")
		gs.Abort()
	}

	if !gs.Aborted() && cfg.Bias != nil {
		for side, s := range strategies {
			if s.Name() != DifficultyLearning {
				continue
			}
			if err := cfg.Bias.RecordGame(ctx, gs.Board(side.Other())); err != nil {
				return nil, fmt.Errorf("record %s layout: %w", side.Other(), err)
			}
		}
	}

	result := &MatchResult{
		MatchID:       uuid.NewString(),
		Winner:        gs.Winner(),
		Aborted:       gs.Aborted(),
		PlayerHistory: gs.History(battleship.SidePlayer),
		AIHistory:     gs.History(battleship.SideAI),
	}
	result.PlayerMoves = len(result.PlayerHistory)
	result.AIMoves = len(result.AIHistory)

	if !cfg.DryRun && repo != nil {
		m := model.NewMatch(result.MatchID, gs, strategies[battleship.SidePlayer].Name(), strategies[battleship.SideAI].Name(), startedAt)
		if err := repo.SaveMatch(ctx, m); err != nil {
			return nil, fmt.Errorf("save match: %w", err)
		}
	}

	log.Debug().
		Str("matchId", result.MatchID).
		Str("winner", string(result.Winner)).
		Int("playerMoves", result.PlayerMoves).
		Int("aiMoves", result.AIMoves).
		Msg("Arena match finished")
	return result, nil
}

// arenaRng returns the placement source for one game. Seed 0 draws a seed
// from the bot RNG so SeedBotRng still makes whole batches reproducible.
func arenaRng(seed int64) *rand.Rand {
	if seed == 0 {
		seed = botInt63()
	}
	return rand.New(rand.NewSource(seed))
}

// biasSource avoids handing a typed nil to StrategyForDifficulty.
func biasSource(b *learning.Bias) BiasSource {
	if b == nil {
		return nil
	}
	return b
}
