package repository

import (
	"context"

	"github.com/freeeve/battleship/internal/model"
)

// BiasStore persists one long-run bias table per board size. LoadBias
// returns a nil grid when nothing has been stored for that size yet.
type BiasStore interface {
	LoadBias(ctx context.Context, size int) ([][]int, error)
	SaveBias(ctx context.Context, size int, grid [][]int) error
}

// MatchRepository stores finished matches and their move logs.
type MatchRepository interface {
	SaveMatch(ctx context.Context, m *model.Match) error
	FindMatch(ctx context.Context, id string) (*model.Match, error)
	ListRecent(ctx context.Context, limit int) ([]model.Match, error)
}
