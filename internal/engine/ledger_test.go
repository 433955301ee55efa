package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredballer90-ops/Trendbet-backend/internal/model"
)

func TestEnsureUser_DefaultBalance(t *testing.T) {
	s := model.NewState()

	u := EnsureUser(s, "u1")
	assert.Equal(t, float64(DefaultBalance), u.Balance)
	assert.Zero(t, u.LockedBalance)
	assert.Zero(t, u.TotalWagered)
	assert.Zero(t, u.TotalWon)
	assert.Equal(t, "user", u.Role)

	// idempotente: segunda chamada devolve o mesmo usuário
	u.Balance = 5000
	again := EnsureUser(s, "u1")
	assert.Same(t, u, again)
	assert.Equal(t, 5000.0, again.Balance)
}

func TestValidateStake_Bounds(t *testing.T) {
	u := &model.User{ID: "u1", Balance: DefaultBalance}

	assert.ErrorIs(t, ValidateStake(u, 99), ErrStakeTooSmall)
	assert.ErrorIs(t, ValidateStake(u, 100001), ErrStakeTooLarge)
	assert.NoError(t, ValidateStake(u, 100))
}

func TestValidateStake_InsufficientFunds(t *testing.T) {
	u := &model.User{ID: "u1", Balance: 1000, LockedBalance: 800}

	// disponível = 200
	assert.NoError(t, ValidateStake(u, 200))
	assert.ErrorIs(t, ValidateStake(u, 201), ErrInsufficientFunds)
}

func TestLockRelease_Conservation(t *testing.T) {
	u := &model.User{ID: "u1", Balance: DefaultBalance}

	LockFunds(u, 1000)
	LockFunds(u, 250)
	assert.Equal(t, 1250.0, u.LockedBalance)
	assert.Equal(t, 1250.0, u.TotalWagered)
	assert.Equal(t, float64(DefaultBalance)-1250, u.Available())

	require.NoError(t, ReleaseFunds(u, 1000))
	require.NoError(t, ReleaseFunds(u, 250))
	assert.Zero(t, u.LockedBalance)
	assert.Equal(t, float64(DefaultBalance), u.Available())
}

func TestReleaseFunds_NeverNegative(t *testing.T) {
	u := &model.User{ID: "u1", Balance: DefaultBalance, LockedBalance: 100}

	err := ReleaseFunds(u, 150)
	require.Error(t, err)
	assert.Equal(t, 100.0, u.LockedBalance)
}

func TestCreditWin_IncrementSemantics(t *testing.T) {
	u := &model.User{ID: "u1", Balance: DefaultBalance, LockedBalance: 1000}

	// vitória de 1000 a 2.00: entra só o delta payout-stake
	CreditWin(u, 2000, 1000)
	assert.Equal(t, 11000.0, u.Balance)
	assert.Equal(t, 1000.0, u.TotalWon)
}
