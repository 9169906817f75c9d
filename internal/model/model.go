package model

import (
	"time"

	"github.com/freeeve/battleship/pkg/battleship"
)

// Match is a finished (or aborted) game between two strategies or a human
// and a strategy.
type Match struct {
	ID             string      `json:"id"`
	BoardSize      int         `json:"board_size"`
	PlayerStrategy string      `json:"player_strategy"` // "human" for play sessions
	AIStrategy     string      `json:"ai_strategy"`
	Winner         string      `json:"winner,omitempty"` // "player", "ai" or "" if aborted
	Aborted        bool        `json:"aborted"`
	Moves          []MatchMove `json:"moves,omitempty"`
	StartedAt      time.Time   `json:"started_at"`
	FinishedAt     time.Time   `json:"finished_at"`
}

// MatchMove is one shot in a match, in global move order.
type MatchMove struct {
	Seq    int    `json:"seq"`
	Side   string `json:"side"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Result string `json:"result"`
}

// MoveCount returns the number of shots fired by side.
func (m *Match) MoveCount(side string) int {
	n := 0
	for _, mv := range m.Moves {
		if mv.Side == side {
			n++
		}
	}
	return n
}

// NewMatch snapshots a finished game. The two shot histories are merged
// back into global order: sides alternate on every recorded shot and the
// player always opens.
func NewMatch(id string, gs *battleship.GameState, playerStrategy, aiStrategy string, startedAt time.Time) *Match {
	m := &Match{
		ID:             id,
		BoardSize:      gs.Size(),
		PlayerStrategy: playerStrategy,
		AIStrategy:     aiStrategy,
		Winner:         string(gs.Winner()),
		Aborted:        gs.Aborted(),
		StartedAt:      startedAt,
		FinishedAt:     time.Now().UTC(),
	}
	player := gs.History(battleship.SidePlayer)
	ai := gs.History(battleship.SideAI)
	for i := 0; i < len(player) || i < len(ai); i++ {
		if i < len(player) {
			m.Moves = append(m.Moves, matchMove(len(m.Moves)+1, battleship.SidePlayer, player[i]))
		}
		if i < len(ai) {
			m.Moves = append(m.Moves, matchMove(len(m.Moves)+1, battleship.SideAI, ai[i]))
		}
	}
	return m
}

func matchMove(seq int, side battleship.Side, mv battleship.Move) MatchMove {
	return MatchMove{
		Seq:    seq,
		Side:   string(side),
		Row:    mv.Coord.Row,
		Col:    mv.Coord.Col,
		Result: mv.Result.String(),
	}
}
