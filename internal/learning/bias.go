// Package learning keeps the long-run bias table: a per-cell count of how
// often ships have occupied each cell across finished games.
package learning

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/battleship/internal/repository"
	"github.com/freeeve/battleship/pkg/battleship"
)

// damping keeps the bias subordinate to the per-game probability field.
const damping = 10.0

var ErrSizeMismatch = errors.New("layout size does not match bias table")

// Bias is the cross-game frequency table for one board size. It is loaded
// once from its store and saved after every recorded game.
type Bias struct {
	mu     sync.RWMutex
	size   int
	store  repository.BiasStore
	counts [][]int
}

// New returns a zeroed table backed by store. Call Load to read persisted
// counts. A nil store keeps the table in memory only.
func New(size int, store repository.BiasStore) *Bias {
	return &Bias{size: size, store: store, counts: zeroGrid(size)}
}

func (b *Bias) Size() int { return b.size }

// Load replaces the in-memory table with the persisted one. A missing
// record or one with the wrong dimensions resets the table to zeros.
func (b *Bias) Load(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.counts = zeroGrid(b.size)
	if b.store == nil {
		return nil
	}
	grid, err := b.store.LoadBias(ctx, b.size)
	if err != nil {
		return fmt.Errorf("load bias table: %w", err)
	}
	if grid == nil {
		return nil
	}
	if !validGrid(grid, b.size) {
		log.Warn().Int("size", b.size).Int("rows", len(grid)).Msg("Bias table dimensions mismatch, resetting")
		return nil
	}
	b.counts = grid
	return nil
}

// RecordGame adds one to every true ship cell of layout and saves the
// table immediately.
func (b *Bias) RecordGame(ctx context.Context, layout battleship.Layout) error {
	if layout.Size() != b.size {
		return fmt.Errorf("%w: layout %d, table %d", ErrSizeMismatch, layout.Size(), b.size)
	}

	b.mu.Lock()
	for _, c := range layout.ShipCells() {
		b.counts[c.Row][c.Col]++
	}
	snapshot := cloneGrid(b.counts)
	b.mu.Unlock()

	if b.store == nil {
		return nil
	}
	if err := b.store.SaveBias(ctx, b.size, snapshot); err != nil {
		return fmt.Errorf("save bias table: %w", err)
	}
	log.Debug().Int("size", b.size).Int("cells", len(layout.ShipCells())).Msg("Bias table updated")
	return nil
}

// Count returns the raw count at c.
func (b *Bias) Count(c battleship.Coord) int {
	if !c.InBounds(b.size) {
		return 0
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.counts[c.Row][c.Col]
}

// Score returns the damped bias at c: count / 10.
func (b *Bias) Score(c battleship.Coord) float64 {
	return float64(b.Count(c)) / damping
}

// Counts returns a copy of the table, indexed [row][col].
func (b *Bias) Counts() [][]int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return cloneGrid(b.counts)
}

func zeroGrid(size int) [][]int {
	g := make([][]int, size)
	for r := range g {
		g[r] = make([]int, size)
	}
	return g
}

func cloneGrid(src [][]int) [][]int {
	g := make([][]int, len(src))
	for r := range src {
		g[r] = append([]int(nil), src[r]...)
	}
	return g
}

func validGrid(g [][]int, size int) bool {
	if len(g) != size {
		return false
	}
	for _, row := range g {
		if len(row) != size {
			return false
		}
	}
	return true
}
