package store

import (
	"context"
	"errors"

	"github.com/fredballer90-ops/Trendbet-backend/internal/model"
)

// ErrConflict indica que o estado mudou entre a leitura e o commit de uma
// tentativa otimista. O chamador decide se reexecuta.
var ErrConflict = errors.New("store: optimistic conflict")

// Txn transforma o estado in-place. Retornar erro aborta a tentativa sem
// aplicar nada.
type Txn func(s *model.State) error

// Store é o único contrato que o engine exige do armazenamento: leitura
// pontual e update condicional atômico (uma tentativa; conflito => ErrConflict).
type Store interface {
	// View executa fn contra um snapshot consistente, somente leitura.
	View(ctx context.Context, fn Txn) error

	// Update executa exatamente uma tentativa otimista: lê o estado atual,
	// aplica fn e comita apenas se nada mudou por baixo.
	Update(ctx context.Context, fn Txn) error
}
