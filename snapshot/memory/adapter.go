package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/dkozlov/p2prates/snapshot"
)

type p2pKey struct {
	exchange, side, asset, payMethod string
}

type marketKey struct {
	exchange, symbol string
}

type Store struct {
	p2p    map[p2pKey]snapshot.P2PEntry
	market map[marketKey]snapshot.MarketEntry

	mu sync.RWMutex
}

func NewStore() *Store {
	return &Store{
		p2p:    make(map[p2pKey]snapshot.P2PEntry),
		market: make(map[marketKey]snapshot.MarketEntry),
	}
}

func (s *Store) SaveP2P(_ context.Context, entries []snapshot.P2PEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, entry := range entries {
		k := p2pKey{
			exchange:  entry.Exchange,
			side:      entry.Side,
			asset:     entry.Asset,
			payMethod: entry.PayMethod,
		}

		s.p2p[k] = entry // key is unique
	}

	return nil
}

func (s *Store) SaveMarket(_ context.Context, entries []snapshot.MarketEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, entry := range entries {
		k := marketKey{
			exchange: entry.Exchange,
			symbol:   entry.Symbol,
		}

		s.market[k] = entry
	}

	return nil
}

func (s *Store) LatestP2P(_ context.Context) ([]snapshot.P2PEntry, error) {
	s.mu.RLock()

	out := make([]snapshot.P2PEntry, 0, len(s.p2p))
	for _, entry := range s.p2p {
		out = append(out, entry)
	}

	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Exchange != out[j].Exchange {
			return out[i].Exchange < out[j].Exchange
		}

		if out[i].Side != out[j].Side {
			return out[i].Side < out[j].Side
		}

		if out[i].Asset != out[j].Asset {
			return out[i].Asset < out[j].Asset
		}

		return out[i].PayMethod < out[j].PayMethod
	})

	return out, nil
}

func (s *Store) LatestMarket(_ context.Context) ([]snapshot.MarketEntry, error) {
	s.mu.RLock()

	out := make([]snapshot.MarketEntry, 0, len(s.market))
	for _, entry := range s.market {
		out = append(out, entry)
	}

	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Exchange != out[j].Exchange {
			return out[i].Exchange < out[j].Exchange
		}

		return out[i].Symbol < out[j].Symbol
	})

	return out, nil
}
