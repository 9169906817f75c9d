// Package file stores bias tables in a single JSON document on local disk,
// keyed by board size.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// BiasStore reads and writes the whole document on every call. Writes go
// to a temp file that is renamed over the target, so readers never see a
// partial table.
type BiasStore struct {
	mu   sync.Mutex
	path string
}

func NewBiasStore(path string) *BiasStore {
	return &BiasStore{path: path}
}

func (s *BiasStore) Path() string { return s.path }

// LoadBias returns the grid stored for size, or nil if the file or the
// entry does not exist.
func (s *BiasStore) LoadBias(_ context.Context, size int) ([][]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	return doc[strconv.Itoa(size)], nil
}

// SaveBias replaces the entry for size, keeping the other sizes intact.
func (s *BiasStore) SaveBias(_ context.Context, size int, grid [][]int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	doc[strconv.Itoa(size)] = grid

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode bias file: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create bias dir: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write bias file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename bias file: %w", err)
	}
	return nil
}

func (s *BiasStore) read() (map[string][][]int, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string][][]int{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read bias file: %w", err)
	}
	doc := map[string][][]int{}
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode bias file %s: %w", s.path, err)
	}
	return doc, nil
}
