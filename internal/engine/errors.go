package engine

import (
	"errors"
	"fmt"
)

// Kind é a taxonomia de erro exposta pela API. Nunca devolvemos falha
// genérica: todo caminho de aborto mapeia para um kind específico.
type Kind string

const (
	KindUnauthenticated    Kind = "UNAUTHENTICATED"
	KindPermissionDenied   Kind = "PERMISSION_DENIED"
	KindInvalidArgument    Kind = "INVALID_ARGUMENT"
	KindStakeTooSmall      Kind = "STAKE_TOO_SMALL"
	KindStakeTooLarge      Kind = "STAKE_TOO_LARGE"
	KindInsufficientFunds  Kind = "INSUFFICIENT_FUNDS"
	KindMarketNotFound     Kind = "MARKET_NOT_FOUND"
	KindMarketClosed       Kind = "MARKET_CLOSED"
	KindUserNotFound       Kind = "USER_NOT_FOUND"
	KindTransactionAborted Kind = "TRANSACTION_ABORTED"
	KindInternal           Kind = "INTERNAL"
)

var (
	ErrUnauthenticated   = errors.New("authentication required")
	ErrPermissionDenied  = errors.New("admin access required")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrStakeTooSmall     = fmt.Errorf("minimum bet amount is %d", MinStake)
	ErrStakeTooLarge     = fmt.Errorf("maximum bet amount is %d", MaxStake)
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrMarketNotFound    = errors.New("market not found")
	ErrMarketClosed      = errors.New("market is not available for betting")
	ErrUserNotFound      = errors.New("user account not found")
	// ErrTransactionAborted só aparece depois que as retentativas otimistas
	// se esgotam; conflitos transientes nunca chegam ao chamador.
	ErrTransactionAborted = errors.New("transaction aborted")
)

// ErrInvalidOutcome é rejeitado antes de tocar no ledger.
var ErrInvalidOutcome = fmt.Errorf("%w: outcome must be YES or NO", ErrInvalidArgument)

// KindOf traduz qualquer erro do engine para o kind da taxonomia.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnauthenticated):
		return KindUnauthenticated
	case errors.Is(err, ErrPermissionDenied):
		return KindPermissionDenied
	case errors.Is(err, ErrStakeTooSmall):
		return KindStakeTooSmall
	case errors.Is(err, ErrStakeTooLarge):
		return KindStakeTooLarge
	case errors.Is(err, ErrInsufficientFunds):
		return KindInsufficientFunds
	case errors.Is(err, ErrMarketNotFound):
		return KindMarketNotFound
	case errors.Is(err, ErrMarketClosed):
		return KindMarketClosed
	case errors.Is(err, ErrUserNotFound):
		return KindUserNotFound
	case errors.Is(err, ErrInvalidArgument):
		return KindInvalidArgument
	case errors.Is(err, ErrTransactionAborted):
		return KindTransactionAborted
	default:
		return KindInternal
	}
}
