package battleship

import "errors"

// Side identifies one of the two players.
type Side string

const (
	SidePlayer Side = "player"
	SideAI     Side = "ai"
	NoSide     Side = ""
)

// Other returns the opposing side.
func (s Side) Other() Side {
	if s == SidePlayer {
		return SideAI
	}
	return SidePlayer
}

var ErrGameOver = errors.New("game is finished")

// Move is one entry in a side's shot history.
type Move struct {
	Coord  Coord      `json:"coord"`
	Result ShotResult `json:"result"`
}

// GameState owns both boards, the turn, per-side histories and the winner.
// MakeMove is the only way game progress changes.
type GameState struct {
	size     int
	boards   map[Side]*Board // each side's own fleet
	turn     Side
	over     bool
	aborted  bool
	winner   Side
	history  map[Side][]Move
	moveSeen int
}

// NewGame returns a game with two empty boards. The player moves first.
func NewGame(size int) *GameState {
	return &GameState{
		size: size,
		boards: map[Side]*Board{
			SidePlayer: NewBoard(size),
			SideAI:     NewBoard(size),
		},
		turn:    SidePlayer,
		history: map[Side][]Move{SidePlayer: nil, SideAI: nil},
	}
}

// NewGameWithBoards starts a game from two already-populated boards.
func NewGameWithBoards(player, ai *Board) *GameState {
	gs := NewGame(player.Size())
	gs.boards[SidePlayer] = player
	gs.boards[SideAI] = ai
	return gs
}

func (gs *GameState) Size() int { return gs.size }

// Board returns the board holding side's own fleet.
func (gs *GameState) Board(side Side) *Board { return gs.boards[side] }

// Turn returns the side to move.
func (gs *GameState) Turn() Side { return gs.turn }

// Over reports whether the game has ended, by win or abort.
func (gs *GameState) Over() bool { return gs.over }

// Aborted reports whether the game ended without a winner.
func (gs *GameState) Aborted() bool { return gs.aborted }

// Winner returns the winning side, or NoSide.
func (gs *GameState) Winner() Side { return gs.winner }

// History returns side's shots in the order they were fired.
func (gs *GameState) History(side Side) []Move {
	h := gs.history[side]
	out := make([]Move, len(h))
	copy(out, h)
	return out
}

// MoveCount returns the total number of moves made by both sides.
func (gs *GameState) MoveCount() int { return gs.moveSeen }

// MakeMove fires the side-to-move's shot at the opposing board. The turn
// passes only if the game is still running afterward; a winning move keeps
// the turn with the winner. A repeat shot changes nothing: it is not
// recorded and the same side is still to move.
func (gs *GameState) MakeMove(c Coord) (ShotResult, error) {
	if gs.over {
		return ShotResult{}, ErrGameOver
	}
	mover := gs.turn
	result := gs.boards[mover.Other()].ReceiveShot(c)
	if result.Outcome == OutcomeRepeat {
		return result, nil
	}
	gs.history[mover] = append(gs.history[mover], Move{Coord: c, Result: result})
	gs.moveSeen++

	gs.checkWinner(mover)
	if !gs.over {
		gs.turn = mover.Other()
	}
	return result, nil
}

// checkWinner inspects both boards. The mover's opponent is checked last so
// that, if both fleets were somehow gone, the mover is credited. A board
// with no ships never counts as defeated.
func (gs *GameState) checkWinner(mover Side) {
	if gs.allSunk(mover) {
		gs.over = true
		gs.winner = mover.Other()
	}
	if gs.allSunk(mover.Other()) {
		gs.over = true
		gs.winner = mover
	}
}

func (gs *GameState) allSunk(side Side) bool {
	b := gs.boards[side]
	return len(b.ships) > 0 && b.AllShipsSunk()
}

// Abort ends the game with no winner. It is a no-op on a finished game.
func (gs *GameState) Abort() {
	if gs.over {
		return
	}
	gs.over = true
	gs.aborted = true
	gs.winner = NoSide
}
