package events

// BetPlaced é emitido após o commit de uma aposta.
type BetPlaced struct {
	BetID           string  `json:"bet_id"`
	UserID          string  `json:"user_id"`
	MarketID        string  `json:"market_id"`
	Outcome         string  `json:"outcome"` // "YES" | "NO"
	Amount          float64 `json:"amount"`
	Odds            float64 `json:"odds"` // snapshot da colocação
	PotentialPayout float64 `json:"potential_payout"`
	TsUnixMs        int64   `json:"ts_unix_ms"`
}
