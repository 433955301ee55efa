package events

// MarketResolved é emitido após a liquidação de um mercado.
type MarketResolved struct {
	MarketID     string `json:"market_id"`
	Result       string `json:"result"` // "YES" | "NO"
	ResolvedBets int    `json:"resolved_bets"`
	TsUnixMs     int64  `json:"ts_unix_ms"`
}

// MarketFrozen é emitido quando um mercado é pausado ou retomado.
type MarketFrozen struct {
	MarketID string `json:"market_id"`
	Frozen   bool   `json:"frozen"`
	TsUnixMs int64  `json:"ts_unix_ms"`
}
