package repository

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/portfolio-admin/admin-backend/internal/auth/domain"
)

type memorySession struct {
	principal domain.Principal
	expiresAt time.Time
}

// MemorySessionRepository is the in-process session store used when no
// Redis is configured. Expired entries are never returned and are removed by
// Sweep.
type MemorySessionRepository struct {
	mu       sync.Mutex
	sessions map[string]memorySession
	now      func() time.Time
}

func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{
		sessions: make(map[string]memorySession),
		now:      time.Now,
	}
}

func (r *MemorySessionRepository) Save(_ context.Context, id string, p *domain.Principal, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[id] = memorySession{principal: *p, expiresAt: r.now().Add(ttl)}
	return nil
}

func (r *MemorySessionRepository) Load(_ context.Context, id string) (*domain.Principal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if !r.now().Before(s.expiresAt) {
		delete(r.sessions, id)
		return nil, domain.ErrSessionNotFound
	}
	p := s.principal
	return &p, nil
}

func (r *MemorySessionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

func (r *MemorySessionRepository) Ping(context.Context) error {
	return nil
}

// Sweep drops expired sessions and returns how many were removed.
func (r *MemorySessionRepository) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	removed := 0
	for id, s := range r.sessions {
		if !now.Before(s.expiresAt) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// ScheduleSweep registers Sweep on c with the given cron spec, e.g. "@every 1m".
func (r *MemorySessionRepository) ScheduleSweep(c *cron.Cron, spec string) (cron.EntryID, error) {
	return c.AddFunc(spec, func() { r.Sweep() })
}
