package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const schema = `
CREATE TABLE IF NOT EXISTS bets (
    id               TEXT PRIMARY KEY,
    user_id          TEXT NOT NULL,
    market_id        TEXT NOT NULL,
    outcome          TEXT NOT NULL,
    amount           NUMERIC(14,2) NOT NULL,
    odds             NUMERIC(8,2)  NOT NULL,
    potential_payout NUMERIC(14,2) NOT NULL,
    status           TEXT NOT NULL DEFAULT 'pending',
    payout           NUMERIC(14,2),
    placed_at        TIMESTAMPTZ NOT NULL,
    resolved_at      TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS idx_bets_user   ON bets(user_id);
CREATE INDEX IF NOT EXISTS idx_bets_market ON bets(market_id);

-- trilha de auditoria da liquidação, uma linha por movimento de saldo
CREATE TABLE IF NOT EXISTS settlement_ledger (
    id          BIGSERIAL PRIMARY KEY,
    bet_id      TEXT NOT NULL,
    user_id     TEXT NOT NULL,
    market_id   TEXT NOT NULL,
    operation   TEXT NOT NULL, -- 'RELEASE' | 'CREDIT'
    amount      NUMERIC(14,2) NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Postgres mantém o histórico de apostas e a trilha de liquidação em banco
type Postgres struct{ db *sql.DB }

func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

// Migrate cria as tabelas do read model se ainda não existirem
func (p *Postgres) Migrate(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate history schema: %w", err)
	}
	return nil
}

// RecordBet insere a aposta recém colocada no histórico. Idempotente por id.
func (p *Postgres) RecordBet(ctx context.Context, b *Bet) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO bets (id,user_id,market_id,outcome,amount,odds,potential_payout,status,placed_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (id) DO NOTHING`,
		b.ID, b.UserID, b.MarketID, b.Outcome, b.Amount, b.Odds, b.PotentialPayout, b.Status, b.PlacedAt,
	)
	return err
}

// RecordSettlement aplica o desfecho de uma aposta no histórico e registra os
// movimentos correspondentes na trilha de auditoria.
func (p *Postgres) RecordSettlement(ctx context.Context, betID, userID, marketID, status string, amount, payout float64, resolvedAt time.Time) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var pay sql.NullFloat64
	if status == "won" {
		pay = sql.NullFloat64{Float64: payout, Valid: true}
	}
	if _, err = tx.ExecContext(ctx,
		`UPDATE bets SET status=$1, payout=$2, resolved_at=$3 WHERE id=$4 AND status='pending'`,
		status, pay, resolvedAt, betID); err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO settlement_ledger(bet_id, user_id, market_id, operation, amount) VALUES($1,$2,$3,'RELEASE',$4)`,
		betID, userID, marketID, amount); err != nil {
		return err
	}
	if status == "won" {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO settlement_ledger(bet_id, user_id, market_id, operation, amount) VALUES($1,$2,$3,'CREDIT',$4)`,
			betID, userID, marketID, payout-amount); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ListByUser retorna o histórico de apostas de um usuário, mais recentes primeiro
func (p *Postgres) ListByUser(ctx context.Context, userID string) ([]Bet, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id,user_id,market_id,outcome,amount,odds,potential_payout,status,payout,placed_at,resolved_at
		FROM bets WHERE user_id=$1 ORDER BY placed_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Bet
	for rows.Next() {
		var b Bet
		if err := rows.Scan(&b.ID, &b.UserID, &b.MarketID, &b.Outcome, &b.Amount, &b.Odds,
			&b.PotentialPayout, &b.Status, &b.Payout, &b.PlacedAt, &b.ResolvedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
