package engine

import (
	"context"

	"github.com/fredballer90-ops/Trendbet-backend/internal/model"
	"github.com/fredballer90-ops/Trendbet-backend/internal/store"
)

// Gate autoriza operações privilegiadas (resolução, freeze, criação de
// mercado). Abstraído para aceitar qualquer identity store.
type Gate interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

// StateGate consulta a side-table de admins mantida no próprio store
// transacional, chaveada por userId.
type StateGate struct {
	store store.Store
}

func NewStateGate(st store.Store) *StateGate { return &StateGate{store: st} }

func (g *StateGate) IsAdmin(ctx context.Context, userID string) (bool, error) {
	var ok bool
	err := g.store.View(ctx, func(s *model.State) error {
		ok = s.Admins[userID]
		return nil
	})
	return ok, err
}
