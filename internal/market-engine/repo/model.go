package repo

import (
	"database/sql"
	"time"
)

// Bet é a linha persistida no Postgres. Read model de histórico; a fonte de
// verdade do engine é o store transacional.
type Bet struct {
	ID              string
	UserID          string
	MarketID        string
	Outcome         string
	Amount          float64
	Odds            float64
	PotentialPayout float64
	Status          string
	Payout          sql.NullFloat64
	PlacedAt        time.Time
	ResolvedAt      sql.NullTime
}
