package engine

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fredballer90-ops/Trendbet-backend/internal/model"
)

// SettledBet descreve o desfecho de uma aposta dentro de uma resolução.
type SettledBet struct {
	BetID  string
	UserID string
	Status model.BetStatus
	Amount float64
	Payout float64 // 0 para perdedores
}

// Resolution resume uma liquidação aplicada.
type Resolution struct {
	MarketID   string
	Result     model.Outcome
	ResolvedAt time.Time
	Bets       []SettledBet
}

// ResolvedCount é o número de apostas liquidadas.
func (r *Resolution) ResolvedCount() int { return len(r.Bets) }

// ResolveMarket liquida um mercado: classifica cada aposta pendente como
// vencedora ou perdedora, paga vencedores pelas odds congeladas na colocação
// e libera os fundos dos perdedores, tudo num único lote atômico junto com a
// transição do mercado para resolved. Resolver um mercado já resolvido é
// rejeitado em vez de pagar em dobro.
func (e *Engine) ResolveMarket(ctx context.Context, adminID, marketID string, result model.Outcome) (*Resolution, error) {
	if err := e.authorize(ctx, adminID); err != nil {
		return nil, err
	}
	if marketID == "" {
		return nil, fmt.Errorf("%w: marketId required", ErrInvalidArgument)
	}
	if !result.Valid() {
		return nil, fmt.Errorf("%w: result must be YES or NO", ErrInvalidArgument)
	}

	var res Resolution
	err := e.update(ctx, func(s *model.State) error {
		m, ok := s.Markets[marketID]
		if !ok {
			return ErrMarketNotFound
		}

		// toda tentativa parte de um lote vazio
		res = Resolution{MarketID: marketID, Result: result}

		now := time.Now().UTC()
		for id, b := range s.Bets {
			if b.MarketID != marketID || b.Status != model.BetPending {
				continue
			}
			u, ok := s.Users[b.UserID]
			if !ok {
				return fmt.Errorf("bet %s references unknown user %s", id, b.UserID)
			}

			settled := SettledBet{BetID: id, UserID: b.UserID, Amount: b.Amount}
			if b.Outcome == result {
				// vencedor: payout pelas odds do momento da colocação
				payout := ComputePayout(b.Amount, b.Odds)
				CreditWin(u, payout, b.Amount)
				if err := ReleaseFunds(u, b.Amount); err != nil {
					return err
				}
				b.Status = model.BetWon
				b.Payout = payout
				settled.Status = model.BetWon
				settled.Payout = payout
			} else {
				if err := ReleaseFunds(u, b.Amount); err != nil {
					return err
				}
				b.Status = model.BetLost
				settled.Status = model.BetLost
			}
			b.ResolvedAt = &now
			res.Bets = append(res.Bets, settled)
		}

		if err := Resolve(m, result); err != nil {
			return err
		}
		res.ResolvedAt = *m.ResolvedAt
		return nil
	})
	if err != nil {
		return nil, err
	}

	marketsResolved.Inc()
	e.log.Info("market resolved",
		zap.String("marketId", marketID),
		zap.String("result", string(result)),
		zap.Int("resolvedBets", res.ResolvedCount()),
	)
	return &res, nil
}

// SetFreeze pausa (ou retoma) novas apostas sem resolver o mercado.
func (e *Engine) SetFreeze(ctx context.Context, adminID, marketID string, freeze bool) error {
	if err := e.authorize(ctx, adminID); err != nil {
		return err
	}
	if marketID == "" {
		return fmt.Errorf("%w: marketId required", ErrInvalidArgument)
	}

	err := e.update(ctx, func(s *model.State) error {
		m, ok := s.Markets[marketID]
		if !ok {
			return ErrMarketNotFound
		}
		if freeze {
			return Freeze(m)
		}
		return Unfreeze(m)
	})
	if err != nil {
		return err
	}

	e.log.Info("market freeze", zap.String("marketId", marketID), zap.Bool("frozen", freeze))
	return nil
}

// FreezeAndResolve congela o mercado e o resolve em seguida.
func (e *Engine) FreezeAndResolve(ctx context.Context, adminID, marketID string, result model.Outcome) (*Resolution, error) {
	if err := e.SetFreeze(ctx, adminID, marketID, true); err != nil {
		return nil, err
	}
	return e.ResolveMarket(ctx, adminID, marketID, result)
}
