package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredballer90-ops/Trendbet-backend/internal/model"
)

func TestMemory_UpdateCommits(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Update(ctx, func(s *model.State) error {
		s.Users["u1"] = &model.User{ID: "u1", Balance: 100}
		return nil
	}))

	require.NoError(t, m.View(ctx, func(s *model.State) error {
		require.NotNil(t, s.Users["u1"])
		assert.Equal(t, 100.0, s.Users["u1"].Balance)
		return nil
	}))
}

func TestMemory_TransformErrorAborts(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	wantErr := assert.AnError
	err := m.Update(ctx, func(s *model.State) error {
		s.Users["ghost"] = &model.User{ID: "ghost"}
		return wantErr
	})
	require.ErrorIs(t, err, wantErr)

	require.NoError(t, m.View(ctx, func(s *model.State) error {
		assert.Empty(t, s.Users)
		return nil
	}))
}

func TestMemory_ConflictDetected(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	// um commit concorrente no meio da transform invalida a tentativa externa
	err := m.Update(ctx, func(s *model.State) error {
		return m.Update(ctx, func(inner *model.State) error {
			inner.Users["winner"] = &model.User{ID: "winner"}
			return nil
		})
	})
	require.ErrorIs(t, err, ErrConflict)

	require.NoError(t, m.View(ctx, func(s *model.State) error {
		assert.NotNil(t, s.Users["winner"])
		assert.Len(t, s.Users, 1)
		return nil
	}))
}

func TestMemory_ViewIsIsolated(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Update(ctx, func(s *model.State) error {
		s.Markets["m1"] = &model.Market{ID: "m1", Status: model.MarketOpen, Pool: &model.Pool{Yes: 10}}
		return nil
	}))

	// mutações no snapshot do View não escapam pro estado compartilhado
	require.NoError(t, m.View(ctx, func(s *model.State) error {
		s.Markets["m1"].Pool.Yes = 999999
		s.Markets["m1"].Status = model.MarketResolved
		return nil
	}))

	require.NoError(t, m.View(ctx, func(s *model.State) error {
		assert.Equal(t, 10.0, s.Markets["m1"].Pool.Yes)
		assert.Equal(t, model.MarketOpen, s.Markets["m1"].Status)
		return nil
	}))
}

func TestMemory_ContextCancelled(t *testing.T) {
	m := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.Update(ctx, func(s *model.State) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}
