package snapshot

import (
	"context"
	"time"
)

// P2PEntry is the reduced latest state of one P2P slot
type P2PEntry struct {
	UpdatedAt time.Time `json:"updated_at"`
	Exchange  string    `json:"exchange"`
	Side      string    `json:"side"`
	Asset     string    `json:"asset"`
	PayMethod string    `json:"pay_method,omitempty"`
	BestPrice float64   `json:"best_price"`
	Offers    int       `json:"offers"`
}

// MarketEntry is the latest spot price of one (exchange, symbol) pair
type MarketEntry struct {
	UpdatedAt time.Time `json:"updated_at"`
	Exchange  string    `json:"exchange"`
	Symbol    string    `json:"symbol"`
	Price     float64   `json:"price"`
}

// Store is an abstraction over the latest poll cycle results.
// Only the most recent value per slot is kept; there is no history
type Store interface {
	// SaveP2P saves the latest P2P cycle entries
	SaveP2P(context.Context, []P2PEntry) error

	// SaveMarket saves the latest market cycle entries
	SaveMarket(context.Context, []MarketEntry) error

	// LatestP2P fetches the latest known P2P entries
	LatestP2P(context.Context) ([]P2PEntry, error)

	// LatestMarket fetches the latest known market entries
	LatestMarket(context.Context) ([]MarketEntry, error)
}
