package service

import (
	"context"
	"sync"

	"github.com/freeeve/battleship/internal/model"
)

type recordedEvent struct {
	gameID    string
	eventType string
	data      any
}

type mockBroadcaster struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (m *mockBroadcaster) BroadcastGameEvent(gameID, eventType string, data any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, recordedEvent{gameID, eventType, data})
}

func (m *mockBroadcaster) count(eventType string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.events {
		if e.eventType == eventType {
			n++
		}
	}
	return n
}

type mockMatchRepo struct {
	mu      sync.Mutex
	matches []*model.Match
}

func (m *mockMatchRepo) SaveMatch(_ context.Context, match *model.Match) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matches = append(m.matches, match)
	return nil
}

func (m *mockMatchRepo) FindMatch(_ context.Context, id string) (*model.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, match := range m.matches {
		if match.ID == id {
			return match, nil
		}
	}
	return nil, nil
}

func (m *mockMatchRepo) ListRecent(_ context.Context, limit int) ([]model.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Match
	for i := len(m.matches) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, *m.matches[i])
	}
	return out, nil
}
