package topics

const (
	// Apostas
	BetPlaced = "bet_placed"

	// Mercados
	MarketResolved = "market_resolved"
	MarketFrozen   = "market_frozen"
)
