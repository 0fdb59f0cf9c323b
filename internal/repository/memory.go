package repository

import (
	"context"
	"sync"
	"time"

	"petmate/internal/models"
)

type memoryEntry struct {
	session   models.Session
	expiresAt time.Time
}

// MemorySessionRepository keeps sessions in process memory with a TTL.
type MemorySessionRepository struct {
	sessions sync.Map
	ttl      time.Duration
	now      func() time.Time
}

func NewMemorySessionRepository(ttl time.Duration) *MemorySessionRepository {
	return &MemorySessionRepository{
		ttl: ttl,
		now: time.Now,
	}
}

func (r *MemorySessionRepository) Get(ctx context.Context, userID string) (*models.Session, error) {
	val, ok := r.sessions.Load(userID)
	if !ok {
		return nil, nil
	}
	entry := val.(memoryEntry)
	if r.ttl > 0 && r.now().After(entry.expiresAt) {
		r.sessions.Delete(userID)
		return nil, nil
	}
	session := entry.session
	return &session, nil
}

func (r *MemorySessionRepository) Save(ctx context.Context, session *models.Session) error {
	now := r.now()
	if session.UpdatedAt.IsZero() {
		session.UpdatedAt = now
	}
	r.sessions.Store(session.UserID, memoryEntry{session: *session, expiresAt: now.Add(r.ttl)})
	return nil
}

func (r *MemorySessionRepository) Clear(ctx context.Context, userID string) error {
	r.sessions.Delete(userID)
	return nil
}
