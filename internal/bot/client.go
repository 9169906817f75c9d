package bot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/battleship/pkg/battleship"
)

// RemotePlayer plays games against a running server, choosing each shot
// with a local Strategy and the enemy board the server reports.
type RemotePlayer struct {
	baseURL  string
	client   *http.Client
	strategy Strategy
}

// RemoteResult is the outcome of one remote game.
type RemoteResult struct {
	GameID  string
	Winner  battleship.Side
	Aborted bool
	Shots   int
}

// remoteSnapshot is the part of the server's game view the player reads.
type remoteSnapshot struct {
	ID             string                   `json:"id"`
	Size           int                      `json:"size"`
	Phase          string                   `json:"phase"`
	Winner         battleship.Side          `json:"winner"`
	Aborted        bool                     `json:"aborted"`
	EnemyBoard     [][]battleship.CellState `json:"enemy_board"`
	EnemyRemaining []int                    `json:"enemy_remaining"`
	EnemySunkCells []battleship.Coord       `json:"enemy_sunk_cells"`
}

// NewRemotePlayer creates a RemotePlayer for the server at baseURL.
func NewRemotePlayer(baseURL string, strategy Strategy) *RemotePlayer {
	return &RemotePlayer{
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   &http.Client{Timeout: 10 * time.Second},
		strategy: strategy,
	}
}

// Play creates an auto-placed game against the server's AI at the given
// difficulty and fires until it finishes.
func (p *RemotePlayer) Play(ctx context.Context, size int, difficulty string) (*RemoteResult, error) {
	var created struct {
		Game  remoteSnapshot `json:"game"`
		Token string         `json:"token"`
	}
	body := map[string]any{"size": size, "difficulty": difficulty, "auto_place": true}
	if err := p.do(ctx, "POST", "/api/v1/games", "", body, &created); err != nil {
		return nil, fmt.Errorf("create game: %w", err)
	}
	snap, token := created.Game, created.Token
	log.Info().Str("gameId", snap.ID).Int("size", snap.Size).Str("difficulty", difficulty).Msg("Remote game created")

	result := &RemoteResult{GameID: snap.ID}
	maxShots := snap.Size*snap.Size + 10
	for snap.Phase != "finished" {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if result.Shots >= maxShots {
			return nil, fmt.Errorf("game %s did not finish after %d shots", snap.ID, result.Shots)
		}

		view := snapshotView(snap)
		c, ok := p.strategy.NextMove(view)
		if !ok {
			if err := p.do(ctx, "DELETE", "/api/v1/games/"+snap.ID, token, nil, nil); err != nil {
				return nil, fmt.Errorf("abort game: %w", err)
			}
			result.Aborted = true
			return result, nil
		}

		var fired struct {
			Shot struct {
				Result battleship.ShotResult `json:"result"`
			} `json:"shot"`
			Game remoteSnapshot `json:"game"`
		}
		if err := p.do(ctx, "POST", "/api/v1/games/"+snap.ID+"/shots", token, c, &fired); err != nil {
			return nil, fmt.Errorf("fire %s: %w", c, err)
		}
		result.Shots++
		snap = fired.Game
		p.strategy.Observe(c, fired.Shot.Result, snapshotView(snap))
		log.Debug().Str("gameId", snap.ID).Str("coord", c.String()).Str("result", fired.Shot.Result.String()).Msg("Shot fired")
	}

	result.Winner = snap.Winner
	result.Aborted = snap.Aborted
	return result, nil
}

// do sends an optional JSON body and decodes the response into out.
func (p *RemotePlayer) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&apiErr)
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, apiErr.Error)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// gridView adapts a server snapshot to battleship.BoardView.
type gridView struct {
	size      int
	grid      [][]battleship.CellState
	remaining []int
	sunk      []battleship.Coord
}

func snapshotView(s remoteSnapshot) gridView {
	return gridView{size: s.Size, grid: s.EnemyBoard, remaining: s.EnemyRemaining, sunk: s.EnemySunkCells}
}

func (v gridView) Size() int { return v.size }

func (v gridView) Observed(c battleship.Coord) battleship.CellState {
	if !c.InBounds(v.size) || c.Row >= len(v.grid) || c.Col >= len(v.grid[c.Row]) {
		return battleship.CellEmpty
	}
	return v.grid[c.Row][c.Col]
}

func (v gridView) WasShot(c battleship.Coord) bool {
	s := v.Observed(c)
	return s == battleship.CellHit || s == battleship.CellMiss
}

func (v gridView) RemainingShipLengths() []int       { return v.remaining }
func (v gridView) SunkShipCells() []battleship.Coord { return v.sunk }
