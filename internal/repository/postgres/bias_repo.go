package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// BiasRepo persists bias tables as one JSONB row per board size.
type BiasRepo struct {
	db *sql.DB
}

// NewBiasRepo creates a BiasRepo.
func NewBiasRepo(db *sql.DB) *BiasRepo {
	return &BiasRepo{db: db}
}

// LoadBias returns the stored grid for size, or nil if none exists.
func (r *BiasRepo) LoadBias(ctx context.Context, size int) ([][]int, error) {
	var raw []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT counts FROM bias_tables WHERE board_size = $1`, size,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load bias: %w", err)
	}
	var grid [][]int
	if err := json.Unmarshal(raw, &grid); err != nil {
		return nil, fmt.Errorf("decode bias: %w", err)
	}
	return grid, nil
}

// SaveBias upserts the whole grid for size.
func (r *BiasRepo) SaveBias(ctx context.Context, size int, grid [][]int) error {
	raw, err := json.Marshal(grid)
	if err != nil {
		return fmt.Errorf("encode bias: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO bias_tables (board_size, counts, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (board_size) DO UPDATE SET counts = EXCLUDED.counts, updated_at = now()`,
		size, string(raw),
	)
	if err != nil {
		return fmt.Errorf("save bias: %w", err)
	}
	return nil
}
