package repository

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"petmate/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Get(ctx context.Context, userID string) (*models.Session, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *mockRepo) Save(ctx context.Context, session *models.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *mockRepo) Clear(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func TestFailoverSessionRepository(t *testing.T) {
	primary := new(mockRepo)
	fallback := new(mockRepo)
	logger := zerolog.New(io.Discard)
	repo := NewFailoverSessionRepository(primary, fallback, &logger)
	ctx := context.Background()

	t.Run("PrimarySuccess", func(t *testing.T) {
		session := &models.Session{UserID: "a"}
		primary.On("Get", ctx, "a").Return(session, nil).Once()

		got, err := repo.Get(ctx, "a")
		assert.NoError(t, err)
		assert.Equal(t, session, got)
		primary.AssertExpectations(t)
	})

	t.Run("PrimaryFailFallbackSuccess", func(t *testing.T) {
		session := &models.Session{UserID: "b"}
		primary.On("Get", ctx, "b").Return(nil, errors.New("fail")).Once()
		fallback.On("Get", ctx, "b").Return(session, nil).Once()

		got, err := repo.Get(ctx, "b")
		assert.NoError(t, err)
		assert.Equal(t, session, got)
		assert.True(t, repo.isDown.Load())
		primary.AssertExpectations(t)
		fallback.AssertExpectations(t)
	})

	t.Run("StaysOnFallbackWhileDown", func(t *testing.T) {
		session := &models.Session{UserID: "c"}
		fallback.On("Save", ctx, session).Return(nil).Once()

		assert.NoError(t, repo.Save(ctx, session))
		primary.AssertNotCalled(t, "Save", ctx, session)
		fallback.AssertExpectations(t)
	})

	t.Run("RecoveryAttempt", func(t *testing.T) {
		repo.isDown.Store(true)
		repo.lastCheck.Store(time.Now().Add(-2 * time.Minute).UnixNano())

		session := &models.Session{UserID: "d"}
		primary.On("Get", ctx, "d").Return(session, nil).Once()

		got, err := repo.Get(ctx, "d")
		assert.NoError(t, err)
		assert.Equal(t, session, got)
		assert.False(t, repo.isDown.Load())
	})

	t.Run("ClearHitsBoth", func(t *testing.T) {
		fallback.On("Clear", ctx, "e").Return(nil).Once()
		primary.On("Clear", ctx, "e").Return(nil).Once()

		assert.NoError(t, repo.Clear(ctx, "e"))
		primary.AssertExpectations(t)
		fallback.AssertExpectations(t)
	})
}
