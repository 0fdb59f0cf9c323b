package repository

import (
	"context"
	"sync/atomic"
	"time"

	"petmate/internal/domain"
	"petmate/internal/models"

	"github.com/rs/zerolog"
)

const recoveryInterval = time.Minute

// FailoverSessionRepository serves from primary (Redis) and switches to the
// fallback (memory) after the first primary error, probing primary again
// once per recoveryInterval.
type FailoverSessionRepository struct {
	primary   domain.SessionRepository
	fallback  domain.SessionRepository
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck atomic.Int64
}

func NewFailoverSessionRepository(primary, fallback domain.SessionRepository, logger *zerolog.Logger) *FailoverSessionRepository {
	return &FailoverSessionRepository{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (r *FailoverSessionRepository) markDown(err error) {
	r.logger.Error().Err(err).Msg("Primary session repository failed, falling back to memory")
	r.isDown.Store(true)
	r.lastCheck.Store(time.Now().UnixNano())
}

func (r *FailoverSessionRepository) usePrimary() bool {
	if !r.isDown.Load() {
		return true
	}
	return time.Since(time.Unix(0, r.lastCheck.Load())) > recoveryInterval
}

func (r *FailoverSessionRepository) Get(ctx context.Context, userID string) (*models.Session, error) {
	if r.usePrimary() {
		session, err := r.primary.Get(ctx, userID)
		if err == nil {
			if r.isDown.Swap(false) {
				r.logger.Info().Msg("Primary session repository recovered")
			}
			return session, nil
		}
		r.markDown(err)
	}
	return r.fallback.Get(ctx, userID)
}

func (r *FailoverSessionRepository) Save(ctx context.Context, session *models.Session) error {
	if r.usePrimary() {
		err := r.primary.Save(ctx, session)
		if err == nil {
			r.isDown.Store(false)
			return nil
		}
		r.markDown(err)
	}
	return r.fallback.Save(ctx, session)
}

func (r *FailoverSessionRepository) Clear(ctx context.Context, userID string) error {
	// The fallback may hold a copy written while primary was down.
	_ = r.fallback.Clear(ctx, userID)
	if r.usePrimary() {
		err := r.primary.Clear(ctx, userID)
		if err == nil {
			return nil
		}
		r.markDown(err)
	}
	return nil
}
