package engine

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fredballer90-ops/Trendbet-backend/internal/model"
)

// PlacedBet é o resultado de uma colocação bem sucedida.
type PlacedBet struct {
	BetID           string
	Odds            float64
	PotentialPayout float64
}

// PlaceBet executa uma aposta como uma única unidade atômica: valida, cota as
// odds contra o pool lido dentro da própria tentativa, bloqueia os fundos,
// incrementa o pool e cria o registro da aposta. Em conflito otimista a
// tentativa inteira reexecuta e as odds são recotadas contra o pool fresco.
// Nenhum estado parcial é observável: não existe lock sem aposta nem aposta
// sem lock.
func (e *Engine) PlaceBet(ctx context.Context, userID, marketID string, outcome model.Outcome, amount float64) (*PlacedBet, error) {
	res, err := e.placeBet(ctx, userID, marketID, outcome, amount)
	if err != nil {
		betsRejected.WithLabelValues(string(KindOf(err))).Inc()
		e.log.Warn("bet rejected",
			zap.String("userId", userID),
			zap.String("marketId", marketID),
			zap.String("kind", string(KindOf(err))),
			zap.Error(err),
		)
		return nil, err
	}
	betsPlaced.WithLabelValues(string(outcome)).Inc()
	e.log.Info("bet placed",
		zap.String("betId", res.BetID),
		zap.String("userId", userID),
		zap.String("marketId", marketID),
		zap.String("outcome", string(outcome)),
		zap.Float64("amount", amount),
		zap.Float64("odds", res.Odds),
	)
	return res, nil
}

func (e *Engine) placeBet(ctx context.Context, userID, marketID string, outcome model.Outcome, amount float64) (*PlacedBet, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	if marketID == "" {
		return nil, fmt.Errorf("%w: marketId required", ErrInvalidArgument)
	}
	if !outcome.Valid() {
		return nil, ErrInvalidOutcome
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be a positive number", ErrInvalidArgument)
	}

	var out PlacedBet
	err := e.update(ctx, func(s *model.State) error {
		user := EnsureUser(s, userID)
		if err := ValidateStake(user, amount); err != nil {
			return err
		}

		m, ok := s.Markets[marketID]
		if !ok {
			return ErrMarketNotFound
		}
		if !CanAcceptBet(m) {
			return fmt.Errorf("%w: status %s", ErrMarketClosed, m.Status)
		}
		InitPool(m)

		// snapshot de odds da própria tentativa, nunca um valor lido antes
		odds := QuoteOdds(*m.Pool, outcome)
		payout := ComputePayout(amount, odds)

		LockFunds(user, amount)
		AddStake(m, outcome, amount)

		bet := &model.Bet{
			ID:              uuid.NewString(),
			UserID:          userID,
			MarketID:        marketID,
			Outcome:         outcome,
			Amount:          amount,
			Odds:            odds,
			PotentialPayout: payout,
			Status:          model.BetPending,
			PlacedAt:        time.Now().UTC(),
		}
		s.Bets[bet.ID] = bet

		out = PlacedBet{BetID: bet.ID, Odds: odds, PotentialPayout: payout}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
