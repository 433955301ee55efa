package producer

import (
	"context"
	"encoding/json"
	"time"

	skafka "github.com/fredballer90-ops/Trendbet-backend/internal/shared/kafka"
	"github.com/fredballer90-ops/Trendbet-backend/pkg/contracts/events"
)

// KafkaPublisher publica os eventos do engine, um writer por tópico.
type KafkaPublisher struct {
	BetPlaced      *skafka.Writer
	MarketResolved *skafka.Writer
	MarketFrozen   *skafka.Writer
}

func NewKafkaPublisher(betPlaced, marketResolved, marketFrozen *skafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{
		BetPlaced:      betPlaced,
		MarketResolved: marketResolved,
		MarketFrozen:   marketFrozen,
	}
}

func (p *KafkaPublisher) PublishBetPlaced(ctx context.Context, e events.BetPlaced) error {
	e.TsUnixMs = time.Now().UnixMilli()
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return skafka.WriteJSON(ctx, p.BetPlaced, e.MarketID, b)
}

func (p *KafkaPublisher) PublishMarketResolved(ctx context.Context, e events.MarketResolved) error {
	e.TsUnixMs = time.Now().UnixMilli()
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return skafka.WriteJSON(ctx, p.MarketResolved, e.MarketID, b)
}

func (p *KafkaPublisher) PublishMarketFrozen(ctx context.Context, e events.MarketFrozen) error {
	e.TsUnixMs = time.Now().UnixMilli()
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return skafka.WriteJSON(ctx, p.MarketFrozen, e.MarketID, b)
}
