package learning

import (
	"context"
	"sync"

	"github.com/freeeve/battleship/internal/repository"
)

// Registry hands out one shared Bias per board size, loading each from the
// store the first time it is asked for.
type Registry struct {
	mu     sync.Mutex
	store  repository.BiasStore
	tables map[int]*Bias
}

func NewRegistry(store repository.BiasStore) *Registry {
	return &Registry{store: store, tables: make(map[int]*Bias)}
}

// Get returns the table for size. A failed load is not cached, so the
// next call retries.
func (r *Registry) Get(ctx context.Context, size int) (*Bias, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if b, ok := r.tables[size]; ok {
		return b, nil
	}
	b := New(size, r.store)
	if err := b.Load(ctx); err != nil {
		return nil, err
	}
	r.tables[size] = b
	return b, nil
}
