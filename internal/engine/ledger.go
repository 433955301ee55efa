package engine

import (
	"fmt"
	"time"

	"github.com/fredballer90-ops/Trendbet-backend/internal/model"
)

const (
	// DefaultBalance é o saldo creditado na primeira aparição de um usuário.
	DefaultBalance = 10000
	// MinStake / MaxStake delimitam o valor aceito por aposta.
	MinStake = 100
	MaxStake = 100000
)

// EnsureUser cria o usuário com o saldo padrão se ainda não existir.
// Idempotente; só roda dentro de uma transação do store.
func EnsureUser(s *model.State, userID string) *model.User {
	if u, ok := s.Users[userID]; ok {
		return u
	}
	u := &model.User{
		ID:        userID,
		Balance:   DefaultBalance,
		Role:      "user",
		CreatedAt: time.Now().UTC(),
	}
	s.Users[userID] = u
	return u
}

// ValidateStake aplica os limites de aposta e o teste de saldo disponível.
// Chamado antes de qualquer mutação.
func ValidateStake(u *model.User, amount float64) error {
	if amount < MinStake {
		return ErrStakeTooSmall
	}
	if amount > MaxStake {
		return ErrStakeTooLarge
	}
	if u.Available() < amount {
		return fmt.Errorf("%w: available %.2f", ErrInsufficientFunds, u.Available())
	}
	return nil
}

// LockFunds compromete o valor em LockedBalance e acumula o total apostado.
func LockFunds(u *model.User, amount float64) {
	u.LockedBalance += amount
	u.TotalWagered += amount
}

// ReleaseFunds devolve exatamente o valor bloqueado na colocação da aposta.
// Nunca deixa LockedBalance negativo.
func ReleaseFunds(u *model.User, amount float64) error {
	if amount > u.LockedBalance {
		return fmt.Errorf("release %.2f exceeds locked balance %.2f for user %s", amount, u.LockedBalance, u.ID)
	}
	u.LockedBalance -= amount
	return nil
}

// CreditWin credita o ganho líquido de uma aposta vencedora. Semântica de
// incremento: o saldo anterior é preservado e só o delta payout-stake entra.
func CreditWin(u *model.User, payout, stake float64) {
	net := payout - stake
	u.Balance += net
	u.TotalWon += net
}
