package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/fredballer90-ops/Trendbet-backend/internal/model"
)

// Redis implementa Store guardando o documento inteiro sob uma única chave,
// com transação otimista via WATCH/MULTI. Espelha o contrato do update
// condicional: se a chave mudar entre o GET e o EXEC, a tentativa falha com
// ErrConflict e o engine reexecuta a partir da precificação.
type Redis struct {
	client *redis.Client
	key    string
}

func NewRedis(c *redis.Client, key string) *Redis {
	return &Redis{client: c, key: key}
}

func (r *Redis) load(ctx context.Context, get func(context.Context, string) *redis.StringCmd) (*model.State, error) {
	raw, err := get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.NewState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	s := &model.State{}
	if err := json.Unmarshal(raw, s); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}
	s.Init()
	return s, nil
}

func (r *Redis) View(ctx context.Context, fn Txn) error {
	s, err := r.load(ctx, r.client.Get)
	if err != nil {
		return err
	}
	return fn(s)
}

func (r *Redis) Update(ctx context.Context, fn Txn) error {
	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		s, err := r.load(ctx, tx.Get)
		if err != nil {
			return err
		}
		if err := fn(s); err != nil {
			return err
		}
		b, err := json.Marshal(s)
		if err != nil {
			return fmt.Errorf("encode state: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, r.key, b, 0)
			return nil
		})
		return err
	}, r.key)

	if errors.Is(err, redis.TxFailedErr) {
		return ErrConflict
	}
	return err
}
