package dto

import "github.com/fredballer90-ops/Trendbet-backend/internal/model"

// ErrorResponse carrega o kind específico da falha; nunca uma falha genérica.
type ErrorResponse struct {
	Success   bool   `json:"success"`
	ErrorKind string `json:"errorKind"`
	Message   string `json:"message,omitempty"`
}

type PlaceBetResponse struct {
	Success         bool    `json:"success"`
	BetID           string  `json:"betId"`
	Odds            float64 `json:"odds"`
	PotentialPayout float64 `json:"potentialPayout"`
}

type ResolveMarketResponse struct {
	Success      bool   `json:"success"`
	MarketID     string `json:"marketId"`
	Result       string `json:"result"`
	ResolvedBets int    `json:"resolvedBets"`
}

type FreezeMarketResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status"` // "frozen" | "open"
}

type BalanceResponse struct {
	UserID           string  `json:"userId"`
	Balance          float64 `json:"balance"`
	LockedBalance    float64 `json:"lockedBalance"`
	AvailableBalance float64 `json:"availableBalance"`
	TotalWagered     float64 `json:"totalWagered"`
	TotalWon         float64 `json:"totalWon"`
}

type MarketResponse struct {
	Market  *model.Market `json:"market"`
	YesPct  int           `json:"yesPct"`
	NoPct   int           `json:"noPct"`
	OddsYes float64       `json:"oddsYes"`
	OddsNo  float64       `json:"oddsNo"`
}

type BetHistoryResponse struct {
	UserID string      `json:"userId"`
	Bets   []BetRecord `json:"bets"`
}

// BetRecord é a linha do read model de histórico (Postgres).
type BetRecord struct {
	BetID           string  `json:"betId"`
	MarketID        string  `json:"marketId"`
	Outcome         string  `json:"outcome"`
	Amount          float64 `json:"amount"`
	Odds            float64 `json:"odds"`
	PotentialPayout float64 `json:"potentialPayout"`
	Status          string  `json:"status"`
	Payout          float64 `json:"payout,omitempty"`
	PlacedAt        string  `json:"placedAt"`
	ResolvedAt      string  `json:"resolvedAt,omitempty"`
}
