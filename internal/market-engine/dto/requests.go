package dto

type PlaceBetRequest struct {
	UserID   string  `json:"userId"`
	MarketID string  `json:"marketId"`
	Outcome  string  `json:"outcome"` // "YES" | "NO"
	Amount   float64 `json:"amount"`
}

type CreateMarketRequest struct {
	AdminID  string `json:"adminId"`
	Title    string `json:"title"`
	Category string `json:"category,omitempty"`
}

type ResolveMarketRequest struct {
	AdminID  string `json:"adminId"`
	MarketID string `json:"marketId"`
	Result   string `json:"result"` // "YES" | "NO"
	// Freeze antes de resolver (atalho freeze+resolve)
	FreezeFirst bool `json:"freezeFirst,omitempty"`
}

type FreezeMarketRequest struct {
	AdminID  string `json:"adminId"`
	MarketID string `json:"marketId"`
	Freeze   bool   `json:"freeze"`
}
