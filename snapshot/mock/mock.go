package mock

import (
	"context"

	"github.com/dkozlov/p2prates/snapshot"
)

type (
	SaveP2PDelegate      func(context.Context, []snapshot.P2PEntry) error
	SaveMarketDelegate   func(context.Context, []snapshot.MarketEntry) error
	LatestP2PDelegate    func(context.Context) ([]snapshot.P2PEntry, error)
	LatestMarketDelegate func(context.Context) ([]snapshot.MarketEntry, error)
)

// Store is a configurable snapshot store mock
type Store struct {
	SaveP2PFn      SaveP2PDelegate
	SaveMarketFn   SaveMarketDelegate
	LatestP2PFn    LatestP2PDelegate
	LatestMarketFn LatestMarketDelegate
}

func (m *Store) SaveP2P(ctx context.Context, entries []snapshot.P2PEntry) error {
	if m.SaveP2PFn != nil {
		return m.SaveP2PFn(ctx, entries)
	}

	return nil
}

func (m *Store) SaveMarket(ctx context.Context, entries []snapshot.MarketEntry) error {
	if m.SaveMarketFn != nil {
		return m.SaveMarketFn(ctx, entries)
	}

	return nil
}

func (m *Store) LatestP2P(ctx context.Context) ([]snapshot.P2PEntry, error) {
	if m.LatestP2PFn != nil {
		return m.LatestP2PFn(ctx)
	}

	return nil, nil
}

func (m *Store) LatestMarket(ctx context.Context) ([]snapshot.MarketEntry, error) {
	if m.LatestMarketFn != nil {
		return m.LatestMarketFn(ctx)
	}

	return nil, nil
}
