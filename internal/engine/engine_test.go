package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fredballer90-ops/Trendbet-backend/internal/model"
	"github.com/fredballer90-ops/Trendbet-backend/internal/store"
)

const testAdmin = "admin-1"

func newTestEngine(t *testing.T) (*Engine, *store.Memory) {
	t.Helper()
	st := store.NewMemory()
	e := New(zap.NewNop(), st, NewStateGate(st))
	require.NoError(t, e.SeedAdmins(context.Background(), []string{testAdmin}))
	return e, st
}

func newTestMarket(t *testing.T, e *Engine) string {
	t.Helper()
	m, err := e.CreateMarket(context.Background(), testAdmin, "Vai chover amanhã?", "clima")
	require.NoError(t, err)
	return m.ID
}

// stateOf lê um snapshot do store para inspeção nos asserts.
func stateOf(t *testing.T, st store.Store) *model.State {
	t.Helper()
	var out *model.State
	require.NoError(t, st.View(context.Background(), func(s *model.State) error {
		out = s
		return nil
	}))
	return out
}

// conflictStore injeta conflitos otimistas antes de delegar ao store real.
type conflictStore struct {
	store.Store
	conflicts int
}

func (c *conflictStore) Update(ctx context.Context, fn store.Txn) error {
	if c.conflicts > 0 {
		c.conflicts--
		return store.ErrConflict
	}
	return c.Store.Update(ctx, fn)
}
