package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/freeeve/battleship/internal/model"
)

// MatchRepo stores finished matches and their shot logs.
type MatchRepo struct {
	db *sql.DB
}

// NewMatchRepo creates a MatchRepo.
func NewMatchRepo(db *sql.DB) *MatchRepo {
	return &MatchRepo{db: db}
}

// SaveMatch inserts the match row and bulk-copies its moves in a single
// transaction.
func (r *MatchRepo) SaveMatch(ctx context.Context, m *model.Match) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO matches (id, board_size, player_strategy, ai_strategy, winner, aborted, started_at, finished_at)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8)`,
		m.ID, m.BoardSize, m.PlayerStrategy, m.AIStrategy, m.Winner, m.Aborted, m.StartedAt, m.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("insert match: %w", err)
	}

	if len(m.Moves) > 0 {
		stmt, err := tx.PrepareContext(ctx, pq.CopyIn("match_moves", "match_id", "seq", "side", "row_idx", "col_idx", "result"))
		if err != nil {
			return fmt.Errorf("prepare move copy: %w", err)
		}
		for _, mv := range m.Moves {
			if _, err := stmt.ExecContext(ctx, m.ID, mv.Seq, mv.Side, mv.Row, mv.Col, mv.Result); err != nil {
				stmt.Close()
				return fmt.Errorf("copy move %d: %w", mv.Seq, err)
			}
		}
		if _, err := stmt.ExecContext(ctx); err != nil {
			stmt.Close()
			return fmt.Errorf("flush move copy: %w", err)
		}
		if err := stmt.Close(); err != nil {
			return fmt.Errorf("close move copy: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit match: %w", err)
	}
	return nil
}

// FindMatch returns a match with its moves, or nil if not found.
func (r *MatchRepo) FindMatch(ctx context.Context, id string) (*model.Match, error) {
	var m model.Match
	var winner sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, board_size, player_strategy, ai_strategy, winner, aborted, started_at, finished_at
		 FROM matches WHERE id = $1`, id,
	).Scan(&m.ID, &m.BoardSize, &m.PlayerStrategy, &m.AIStrategy, &winner, &m.Aborted, &m.StartedAt, &m.FinishedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find match: %w", err)
	}
	m.Winner = winner.String

	rows, err := r.db.QueryContext(ctx,
		`SELECT seq, side, row_idx, col_idx, result FROM match_moves WHERE match_id = $1 ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("list moves: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var mv model.MatchMove
		if err := rows.Scan(&mv.Seq, &mv.Side, &mv.Row, &mv.Col, &mv.Result); err != nil {
			return nil, fmt.Errorf("scan move: %w", err)
		}
		m.Moves = append(m.Moves, mv)
	}
	return &m, rows.Err()
}

// ListRecent returns the most recently finished matches without moves.
func (r *MatchRepo) ListRecent(ctx context.Context, limit int) ([]model.Match, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, board_size, player_strategy, ai_strategy, winner, aborted, started_at, finished_at
		 FROM matches ORDER BY finished_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()

	var matches []model.Match
	for rows.Next() {
		var m model.Match
		var winner sql.NullString
		if err := rows.Scan(&m.ID, &m.BoardSize, &m.PlayerStrategy, &m.AIStrategy, &winner, &m.Aborted, &m.StartedAt, &m.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		m.Winner = winner.String
		matches = append(matches, m)
	}
	return matches, rows.Err()
}
