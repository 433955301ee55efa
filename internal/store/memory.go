package store

import (
	"context"
	"sync"

	"github.com/fredballer90-ops/Trendbet-backend/internal/model"
)

// Memory implementa Store em memória com controle otimista por versão.
// Cada tentativa trabalha sobre uma cópia profunda; o commit só acontece se a
// versão não avançou enquanto a transform rodava. Usado em testes e em
// execução local (STORE_BACKEND=memory).
type Memory struct {
	mu      sync.Mutex
	state   *model.State
	version uint64
}

func NewMemory() *Memory {
	return &Memory{state: model.NewState()}
}

// View entrega uma cópia do snapshot atual; mutações feitas por fn não
// escapam para o estado compartilhado.
func (m *Memory) View(ctx context.Context, fn Txn) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	snap := m.state.Clone()
	m.mu.Unlock()
	return fn(snap)
}

// Update roda fn fora do lock, sobre uma cópia, e comita com CAS de versão.
func (m *Memory) Update(ctx context.Context, fn Txn) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	v := m.version
	work := m.state.Clone()
	m.mu.Unlock()

	if err := fn(work); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.version != v {
		return ErrConflict
	}
	m.state = work
	m.version++
	return nil
}
