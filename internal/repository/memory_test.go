package repository

import (
	"context"
	"testing"
	"time"

	"petmate/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySessionRepository(t *testing.T) {
	repo := NewMemorySessionRepository(time.Hour)
	ctx := context.Background()

	t.Run("SaveAndGet", func(t *testing.T) {
		session := &models.Session{UserID: "u1", CompanyID: 3}
		require.NoError(t, repo.Save(ctx, session))

		got, err := repo.Get(ctx, "u1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, int64(3), got.CompanyID)

		// returned copies do not alias the stored value
		got.CompanyID = 99
		again, _ := repo.Get(ctx, "u1")
		assert.Equal(t, int64(3), again.CompanyID)
	})

	t.Run("Clear", func(t *testing.T) {
		require.NoError(t, repo.Clear(ctx, "u1"))
		got, _ := repo.Get(ctx, "u1")
		assert.Nil(t, got)
	})

	t.Run("Expiry", func(t *testing.T) {
		now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
		repo.now = func() time.Time { return now }
		require.NoError(t, repo.Save(ctx, &models.Session{UserID: "u2"}))

		now = now.Add(2 * time.Hour)
		got, err := repo.Get(ctx, "u2")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
