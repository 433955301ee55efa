package engine

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/fredballer90-ops/Trendbet-backend/internal/store"
)

// maxTxnRetries limita as retentativas otimistas antes de devolver
// TRANSACTION_ABORTED ao chamador.
const maxTxnRetries = 32

// Engine é o núcleo de apostas e liquidação. Todo acesso ao estado passa pelo
// store transacional injetado; não há estado global nem locks longos.
type Engine struct {
	log   *zap.Logger
	store store.Store
	gate  Gate
}

func New(log *zap.Logger, st store.Store, gate Gate) *Engine {
	return &Engine{log: log, store: st, gate: gate}
}

// update reexecuta a transform inteira a cada conflito otimista. Reexecutar é
// obrigatório para apostas: as odds dependem do pool e precisam ser
// recotadas contra o estado fresco. Erros de validação abortam sem retry.
func (e *Engine) update(ctx context.Context, fn store.Txn) error {
	for attempt := 0; attempt < maxTxnRetries; attempt++ {
		err := e.store.Update(ctx, fn)
		if errors.Is(err, store.ErrConflict) {
			txnRetries.Inc()
			continue
		}
		return err
	}
	return fmt.Errorf("%w: optimistic conflict after %d attempts", ErrTransactionAborted, maxTxnRetries)
}

// authorize valida identidade e privilégio de admin para operações gated.
func (e *Engine) authorize(ctx context.Context, adminID string) error {
	if adminID == "" {
		return ErrUnauthenticated
	}
	ok, err := e.gate.IsAdmin(ctx, adminID)
	if err != nil {
		return fmt.Errorf("admin lookup: %w", err)
	}
	if !ok {
		return ErrPermissionDenied
	}
	return nil
}
