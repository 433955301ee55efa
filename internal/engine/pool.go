package engine

import (
	"fmt"
	"time"

	"github.com/fredballer90-ops/Trendbet-backend/internal/model"
)

// InitPool garante que o mercado tem um pool zerado.
func InitPool(m *model.Market) {
	if m.Pool == nil {
		m.Pool = &model.Pool{}
	}
}

// CanAcceptBet diz se o mercado aceita novas apostas.
func CanAcceptBet(m *model.Market) bool { return m.Status == model.MarketOpen }

// AddStake incrementa o lado apostado e reformata o volume de exibição.
// Só é chamado dentro da mesma tentativa atômica que bloqueia os fundos.
func AddStake(m *model.Market, outcome model.Outcome, amount float64) {
	InitPool(m)
	m.Pool.Add(outcome, amount)
	m.Volume = FormatVolume(m.Pool.Total())
}

// Freeze pausa novas apostas sem resolver o mercado.
func Freeze(m *model.Market) error {
	if m.Status == model.MarketResolved {
		return fmt.Errorf("%w: market already resolved", ErrMarketClosed)
	}
	now := time.Now().UTC()
	m.Status = model.MarketFrozen
	m.FrozenAt = &now
	return nil
}

// Unfreeze reabre um mercado congelado.
func Unfreeze(m *model.Market) error {
	if m.Status == model.MarketResolved {
		return fmt.Errorf("%w: market already resolved", ErrMarketClosed)
	}
	now := time.Now().UTC()
	m.Status = model.MarketOpen
	m.UnfrozenAt = &now
	return nil
}

// Resolve fixa o resultado e torna o mercado terminal: pool e result ficam
// imutáveis e qualquer freeze/addStake posterior falha.
func Resolve(m *model.Market, result model.Outcome) error {
	if m.Status == model.MarketResolved {
		return fmt.Errorf("%w: market already resolved", ErrMarketClosed)
	}
	now := time.Now().UTC()
	m.Status = model.MarketResolved
	m.Result = result
	m.ResolvedAt = &now
	return nil
}
