package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/freeeve/battleship/internal/bot"
	"github.com/freeeve/battleship/internal/learning"
	"github.com/freeeve/battleship/internal/model"
	"github.com/freeeve/battleship/internal/repository"
	"github.com/freeeve/battleship/pkg/battleship"
)

// MaxBoardSize keeps rendered boards and per-move field work bounded.
const MaxBoardSize = 26

// HumanStrategy is the strategy name recorded for the human side.
const HumanStrategy = "human"

var (
	ErrSessionNotFound   = errors.New("game session not found")
	ErrInvalidSize       = errors.New("board size out of range")
	ErrUnknownDifficulty = errors.New("unknown difficulty")
	ErrNotPlacing        = errors.New("game is not in the placement phase")
	ErrNotPlaying        = errors.New("game is not in progress")
	ErrUnknownShip       = errors.New("ship is not part of this fleet")
	ErrShipPlaced        = errors.New("ship already placed")
	ErrInvalidPlacement  = errors.New("placement is out of bounds or touches another ship")
	ErrInvalidOrient     = errors.New("orientation must be H or V")
	ErrOutOfBounds       = errors.New("shot is outside the board")
	ErrRepeatShot        = errors.New("cell already fired at")
)

// Phase is a session's lifecycle stage.
type Phase string

const (
	PhasePlacing  Phase = "placing"
	PhasePlaying  Phase = "playing"
	PhaseFinished Phase = "finished"
)

// CreateInput describes a new human-vs-AI game.
type CreateInput struct {
	Size       int    `json:"size"`
	Difficulty string `json:"difficulty"`
	AutoPlace  bool   `json:"auto_place"`
}

// PlacementInput names a ship and where to put it.
type PlacementInput struct {
	Ship        string                 `json:"ship"`
	Row         int                    `json:"row"`
	Col         int                    `json:"col"`
	Orientation battleship.Orientation `json:"orientation"`
}

// PlacementPreview reports whether a placement would be accepted.
type PlacementPreview struct {
	Valid bool                `json:"valid"`
	Cells []battleship.Coord `json:"cells"`
}

// ShotView is one resolved shot as clients see it.
type ShotView struct {
	Side   battleship.Side       `json:"side"`
	Coord  battleship.Coord      `json:"coord"`
	Result battleship.ShotResult `json:"result"`
}

// FleetStatus is one of the player's own ships.
type FleetStatus struct {
	Name   string `json:"name"`
	Length int    `json:"length"`
	Placed bool   `json:"placed"`
	Sunk   bool   `json:"sunk"`
}

// Snapshot is the player's view of a session. The enemy board is masked
// until the game is finished.
type Snapshot struct {
	ID             string                   `json:"id"`
	Size           int                      `json:"size"`
	Difficulty     string                   `json:"difficulty"`
	Phase          Phase                    `json:"phase"`
	Turn           battleship.Side          `json:"turn"`
	Winner         battleship.Side          `json:"winner,omitempty"`
	Aborted        bool                     `json:"aborted"`
	Fleet          []FleetStatus            `json:"fleet"`
	OwnBoard       [][]battleship.CellState `json:"own_board"`
	EnemyBoard     [][]battleship.CellState `json:"enemy_board"`
	EnemyRemaining []int                    `json:"enemy_remaining"`
	EnemySunkCells []battleship.Coord       `json:"enemy_sunk_cells"`
	PlayerShots    []ShotView               `json:"player_shots"`
	AIShots        []ShotView               `json:"ai_shots"`
}

// FireResult is the player's shot plus every AI reply it triggered.
type FireResult struct {
	Shot     ShotView   `json:"shot"`
	Replies  []ShotView `json:"replies"`
	Snapshot *Snapshot  `json:"game"`
}

type session struct {
	mu         sync.Mutex
	id         string
	difficulty string
	game       *battleship.GameState
	fleet      []battleship.FleetEntry
	placed     map[string]bool
	ai         bot.Strategy
	phase      Phase
	startedAt  time.Time
	lastActive time.Time
}

// PlayService runs in-memory human-vs-AI sessions.
type PlayService struct {
	mu          sync.RWMutex
	sessions    map[string]*session
	defaultSize int
	biases      *learning.Registry
	matchRepo   repository.MatchRepository
	broadcaster Broadcaster
	now         func() time.Time
}

// NewPlayService creates a PlayService. biases and matchRepo may be nil,
// which disables learning and match history respectively.
func NewPlayService(defaultSize int, biases *learning.Registry, matchRepo repository.MatchRepository, broadcaster Broadcaster) *PlayService {
	if broadcaster == nil {
		broadcaster = NoopBroadcaster{}
	}
	return &PlayService{
		sessions:    make(map[string]*session),
		defaultSize: defaultSize,
		biases:      biases,
		matchRepo:   matchRepo,
		broadcaster: broadcaster,
		now:         time.Now,
	}
}

// Create starts a session. The AI fleet is always placed randomly; the
// player's is placed randomly only with AutoPlace.
func (s *PlayService) Create(ctx context.Context, in CreateInput) (*Snapshot, error) {
	size := in.Size
	if size == 0 {
		size = s.defaultSize
	}
	if size < 2 || size > MaxBoardSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	difficulty := in.Difficulty
	if difficulty == "" {
		difficulty = bot.DifficultyHunt
	}
	if !slices.Contains(bot.Difficulties(), difficulty) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDifficulty, difficulty)
	}

	fleet := battleship.StandardFleet(size)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	aiBoard, err := battleship.RandomBoard(size, fleet, rng)
	if err != nil {
		return nil, fmt.Errorf("place ai fleet: %w", err)
	}
	playerBoard := battleship.NewBoard(size)
	placed := make(map[string]bool)
	phase := PhasePlacing
	if in.AutoPlace {
		if playerBoard, err = battleship.RandomBoard(size, fleet, rng); err != nil {
			return nil, fmt.Errorf("place player fleet: %w", err)
		}
		for _, f := range fleet {
			placed[f.Name] = true
		}
		phase = PhasePlaying
	}

	var bias bot.BiasSource
	if difficulty == bot.DifficultyLearning && s.biases != nil {
		b, err := s.biases.Get(ctx, size)
		if err != nil {
			return nil, fmt.Errorf("load bias: %w", err)
		}
		bias = b
	}

	now := s.now()
	sess := &session{
		id:         uuid.NewString(),
		difficulty: difficulty,
		game:       battleship.NewGameWithBoards(playerBoard, aiBoard),
		fleet:      fleet,
		placed:     placed,
		ai:         bot.StrategyForDifficulty(difficulty, bias),
		phase:      phase,
		startedAt:  now,
		lastActive: now,
	}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	log.Info().Str("gameId", sess.id).Int("size", size).Str("difficulty", difficulty).Bool("autoPlace", in.AutoPlace).Msg("Game session created")
	return sess.snapshot(), nil
}

// Get returns the player's view of a session.
func (s *PlayService) Get(_ context.Context, id string) (*Snapshot, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.snapshot(), nil
}

// PreviewPlacement checks a placement without applying it.
func (s *PlayService) PreviewPlacement(_ context.Context, id string, in PlacementInput) (*PlacementPreview, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	footprint, err := sess.footprint(in)
	if err != nil {
		return nil, err
	}
	board := sess.game.Board(battleship.SidePlayer)
	return &PlacementPreview{Valid: battleship.ValidPlacement(board, footprint), Cells: footprint}, nil
}

// PlaceShip adds one of the player's ships. Placing the last ship starts
// the game.
func (s *PlayService) PlaceShip(_ context.Context, id string, in PlacementInput) (*Snapshot, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	footprint, err := sess.footprint(in)
	if err != nil {
		return nil, err
	}
	board := sess.game.Board(battleship.SidePlayer)
	if !battleship.ValidPlacement(board, footprint) {
		return nil, ErrInvalidPlacement
	}
	ship, err := battleship.NewShip(in.Ship, footprint)
	if err != nil {
		return nil, fmt.Errorf("build ship: %w", err)
	}
	if !board.AddShip(ship) {
		return nil, ErrInvalidPlacement
	}
	sess.placed[in.Ship] = true
	sess.lastActive = s.now()
	if len(sess.placed) == len(sess.fleet) {
		sess.phase = PhasePlaying
	}

	s.broadcaster.BroadcastGameEvent(id, EventShipPlaced, map[string]any{
		"ship":  in.Ship,
		"cells": footprint,
		"phase": sess.phase,
	})
	return sess.snapshot(), nil
}

// Fire resolves the player's shot and then lets the AI reply until the
// turn returns to the player or the game ends.
func (s *PlayService) Fire(ctx context.Context, id string, c battleship.Coord) (*FireResult, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.phase != PhasePlaying {
		return nil, ErrNotPlaying
	}
	gs := sess.game
	if !c.InBounds(gs.Size()) {
		return nil, fmt.Errorf("%w: %s", ErrOutOfBounds, c)
	}

	r, err := gs.MakeMove(c)
	if err != nil {
		return nil, err
	}
	if r.Outcome == battleship.OutcomeRepeat {
		return nil, fmt.Errorf("%w: %s", ErrRepeatShot, c)
	}
	sess.lastActive = s.now()
	out := &FireResult{Shot: ShotView{Side: battleship.SidePlayer, Coord: c, Result: r}}
	s.broadcaster.BroadcastGameEvent(id, EventShotResolved, out.Shot)

	playerBoard := gs.Board(battleship.SidePlayer)
	for !gs.Over() && gs.Turn() == battleship.SideAI {
		move, ok := sess.ai.NextMove(playerBoard)
		if !ok {
			log.Warn().Str("gameId", id).Msg("AI has no move left, aborting game")
			gs.Abort()
			break
		}
		ar, err := gs.MakeMove(move)
		if err != nil {
			return nil, err
		}
		if ar.Outcome == battleship.OutcomeRepeat {
			log.Error().Str("gameId", id).Str("coord", move.String()).Msg("AI repeated a shot, aborting game")
			gs.Abort()
			break
		}
		sess.ai.Observe(move, ar, playerBoard)
		reply := ShotView{Side: battleship.SideAI, Coord: move, Result: ar}
		out.Replies = append(out.Replies, reply)
		s.broadcaster.BroadcastGameEvent(id, EventShotResolved, reply)
	}

	if gs.Over() {
		s.finish(ctx, sess)
	}
	out.Snapshot = sess.snapshot()
	return out, nil
}

// Abort ends a session without a winner and forgets it.
func (s *PlayService) Abort(ctx context.Context, id string) error {
	sess, err := s.lookup(id)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	if sess.phase != PhaseFinished {
		sess.game.Abort()
		s.finish(ctx, sess)
	}
	sess.mu.Unlock()

	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	log.Info().Str("gameId", id).Msg("Game session removed")
	return nil
}

// Count returns the number of live sessions.
func (s *PlayService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// finish records the outcome. The caller holds sess.mu. Storage failures
// are logged; they never undo the game result.
func (s *PlayService) finish(ctx context.Context, sess *session) {
	sess.phase = PhaseFinished
	gs := sess.game

	if !gs.Aborted() && s.biases != nil {
		b, err := s.biases.Get(ctx, gs.Size())
		if err == nil {
			err = b.RecordGame(ctx, gs.Board(battleship.SidePlayer))
		}
		if err != nil {
			log.Error().Err(err).Str("gameId", sess.id).Msg("Failed to record player layout")
		}
	}

	if s.matchRepo != nil {
		m := model.NewMatch(sess.id, gs, HumanStrategy, sess.ai.Name(), sess.startedAt)
		if err := s.matchRepo.SaveMatch(ctx, m); err != nil {
			log.Error().Err(err).Str("gameId", sess.id).Msg("Failed to save match")
		}
	}

	s.broadcaster.BroadcastGameEvent(sess.id, EventGameEnded, map[string]any{
		"winner":  gs.Winner(),
		"aborted": gs.Aborted(),
		"moves":   gs.MoveCount(),
	})
	log.Info().Str("gameId", sess.id).Str("winner", string(gs.Winner())).Bool("aborted", gs.Aborted()).Int("moves", gs.MoveCount()).Msg("Game finished")
}

func (s *PlayService) lookup(id string) (*session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// footprint validates the request against the fleet and returns the cells
// it would cover. The caller holds sess.mu.
func (sess *session) footprint(in PlacementInput) ([]battleship.Coord, error) {
	if sess.phase != PhasePlacing {
		return nil, ErrNotPlacing
	}
	if in.Orientation != battleship.Horizontal && in.Orientation != battleship.Vertical {
		return nil, ErrInvalidOrient
	}
	idx := slices.IndexFunc(sess.fleet, func(f battleship.FleetEntry) bool { return f.Name == in.Ship })
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownShip, in.Ship)
	}
	if sess.placed[in.Ship] {
		return nil, fmt.Errorf("%w: %q", ErrShipPlaced, in.Ship)
	}
	return battleship.Footprint(battleship.C(in.Row, in.Col), sess.fleet[idx].Length, in.Orientation), nil
}

func (sess *session) snapshot() *Snapshot {
	gs := sess.game
	own := gs.Board(battleship.SidePlayer)
	enemy := gs.Board(battleship.SideAI)

	snap := &Snapshot{
		ID:             sess.id,
		Size:           gs.Size(),
		Difficulty:     sess.difficulty,
		Phase:          sess.phase,
		Turn:           gs.Turn(),
		Winner:         gs.Winner(),
		Aborted:        gs.Aborted(),
		OwnBoard:       own.Reveal(),
		EnemyBoard:     enemy.ObservedGrid(),
		EnemyRemaining: enemy.RemainingShipLengths(),
		EnemySunkCells: enemy.SunkShipCells(),
		PlayerShots:    shotViews(battleship.SidePlayer, gs.History(battleship.SidePlayer)),
		AIShots:        shotViews(battleship.SideAI, gs.History(battleship.SideAI)),
	}
	if gs.Over() {
		snap.EnemyBoard = enemy.Reveal()
	}
	for _, f := range sess.fleet {
		st := FleetStatus{Name: f.Name, Length: f.Length, Placed: sess.placed[f.Name]}
		for _, ship := range own.Ships() {
			if ship.Name() == f.Name {
				st.Sunk = ship.IsSunk()
			}
		}
		snap.Fleet = append(snap.Fleet, st)
	}
	return snap
}

func shotViews(side battleship.Side, moves []battleship.Move) []ShotView {
	out := make([]ShotView, len(moves))
	for i, m := range moves {
		out[i] = ShotView{Side: side, Coord: m.Coord, Result: m.Result}
	}
	return out
}
