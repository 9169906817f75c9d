package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// SessionReaper periodically aborts and removes sessions that have been
// idle longer than the TTL.
type SessionReaper struct {
	svc      *PlayService
	ttl      time.Duration
	interval time.Duration
}

// NewSessionReaper creates a SessionReaper.
func NewSessionReaper(svc *PlayService, ttl, interval time.Duration) *SessionReaper {
	return &SessionReaper{svc: svc, ttl: ttl, interval: interval}
}

// Start polls until ctx is cancelled.
func (r *SessionReaper) Start(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	log.Info().Dur("ttl", r.ttl).Dur("interval", r.interval).Msg("Session reaper started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Session reaper stopped")
			return
		case <-ticker.C:
			r.Sweep(ctx)
		}
	}
}

// Sweep removes every idle session once and returns how many it removed.
func (r *SessionReaper) Sweep(ctx context.Context) int {
	cutoff := r.svc.now().Add(-r.ttl)

	r.svc.mu.RLock()
	var idle []string
	for id, sess := range r.svc.sessions {
		sess.mu.Lock()
		if sess.lastActive.Before(cutoff) {
			idle = append(idle, id)
		}
		sess.mu.Unlock()
	}
	r.svc.mu.RUnlock()

	removed := 0
	for _, id := range idle {
		if err := r.svc.Abort(ctx, id); err != nil {
			continue
		}
		removed++
	}
	if removed > 0 {
		log.Info().Int("count", removed).Msg("Reaped idle sessions")
	}
	return removed
}
