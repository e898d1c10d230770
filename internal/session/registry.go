package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/abgdnv/storefront/internal/errors"
	"github.com/google/uuid"
)

// Registry keeps the live sessions and evicts those idle for longer than the TTL.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	deps     Deps
	ttl      time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

func NewRegistry(deps Deps, ttl time.Duration, logger *slog.Logger) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		deps:     deps,
		ttl:      ttl,
		logger:   logger.With("component", "session"),
		now:      time.Now,
	}
}

// Create starts a new guest session.
func (r *Registry) Create() *Session {
	s := New(uuid.NewString(), r.deps, r.now())

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
	return s
}

// Get returns the live session with the given id and marks it as used.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()

	now := r.now()
	if !ok || s.idleSince(now) > r.ttl {
		return nil, fmt.Errorf("%w: %s", errors.ErrSessionNotFound, id)
	}
	s.touch(now)
	return s, nil
}

// Delete ends a session. Deleting an unknown session is a no-op.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Evict removes sessions idle for longer than the TTL and returns how many were removed.
func (r *Registry) Evict() int {
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()
	evicted := 0
	for id, s := range r.sessions {
		if s.idleSince(now) > r.ttl {
			delete(r.sessions, id)
			evicted++
		}
	}
	return evicted
}

// Run evicts idle sessions every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := r.Evict(); n > 0 {
				r.logger.InfoContext(ctx, "Evicted idle sessions", "count", n, "remaining", r.Len())
			}
		}
	}
}
