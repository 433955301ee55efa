package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fredballer90-ops/Trendbet-backend/internal/model"
)

// CreateMarket abre um novo mercado binário com pool zerado. Operação de admin.
func (e *Engine) CreateMarket(ctx context.Context, adminID, title, category string) (*model.Market, error) {
	if err := e.authorize(ctx, adminID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title required", ErrInvalidArgument)
	}

	m := &model.Market{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(title),
		Category:  category,
		Status:    model.MarketOpen,
		Pool:      &model.Pool{},
		Volume:    FormatVolume(0),
		CreatedAt: time.Now().UTC(),
	}
	err := e.update(ctx, func(s *model.State) error {
		s.Markets[m.ID] = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.log.Info("market created", zap.String("marketId", m.ID), zap.String("title", m.Title))
	return m, nil
}

// Market retorna um snapshot de um mercado.
func (e *Engine) Market(ctx context.Context, marketID string) (*model.Market, error) {
	if marketID == "" {
		return nil, fmt.Errorf("%w: marketId required", ErrInvalidArgument)
	}
	var out *model.Market
	err := e.store.View(ctx, func(s *model.State) error {
		m, ok := s.Markets[marketID]
		if !ok {
			return ErrMarketNotFound
		}
		out = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Markets lista todos os mercados, mais recentes primeiro.
func (e *Engine) Markets(ctx context.Context) ([]*model.Market, error) {
	var out []*model.Market
	err := e.store.View(ctx, func(s *model.State) error {
		for _, m := range s.Markets {
			out = append(out, m)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Bet retorna o registro de uma aposta.
func (e *Engine) Bet(ctx context.Context, betID string) (*model.Bet, error) {
	if betID == "" {
		return nil, fmt.Errorf("%w: betId required", ErrInvalidArgument)
	}
	var out *model.Bet
	err := e.store.View(ctx, func(s *model.State) error {
		b, ok := s.Bets[betID]
		if !ok {
			return fmt.Errorf("%w: bet %s", ErrInvalidArgument, betID)
		}
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// BalanceSnapshot é a visão de saldo devolvida ao chamador.
type BalanceSnapshot struct {
	Balance          float64
	LockedBalance    float64
	AvailableBalance float64
	TotalWagered     float64
	TotalWon         float64
}

// UserBalance retorna o saldo do usuário, criando-o com o saldo padrão na
// primeira consulta.
func (e *Engine) UserBalance(ctx context.Context, userID string) (*BalanceSnapshot, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId required", ErrInvalidArgument)
	}
	var out BalanceSnapshot
	err := e.update(ctx, func(s *model.State) error {
		u := EnsureUser(s, userID)
		out = BalanceSnapshot{
			Balance:          u.Balance,
			LockedBalance:    u.LockedBalance,
			AvailableBalance: u.Available(),
			TotalWagered:     u.TotalWagered,
			TotalWon:         u.TotalWon,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SeedAdmins grava a side-table de admins. Usado no bootstrap do serviço a
// partir da configuração.
func (e *Engine) SeedAdmins(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return e.update(ctx, func(s *model.State) error {
		for _, id := range ids {
			if id == "" {
				continue
			}
			s.Admins[id] = true
			u := EnsureUser(s, id)
			u.Role = "admin"
		}
		return nil
	})
}
