package engine

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dkozlov/p2prates/exchange"
)

// MarketKey identifies one (exchange, symbol) spot-price slot
type MarketKey struct {
	Exchange string
	Symbol   string
}

// MarketResult maps each requested (exchange, symbol) pair to its
// fetched spot price. A 0 price means the exchange reported no
// sellable book for the symbol
type MarketResult map[MarketKey]float64

// FetchMarket concurrently fetches one spot price per
// (exchange, symbol) pair. Failure semantics match Fetch: failed pairs
// keep their key with a 0 price unless the fail-fast option is set
func (e *Engine) FetchMarket(
	ctx context.Context,
	exchanges []string,
	symbols []string,
) (MarketResult, error) {
	// Resolve every adapter before spawning any work
	adapters := make(map[string]exchange.Adapter, len(exchanges))

	for _, name := range exchanges {
		adapter, err := e.resolver.Resolve(name)
		if err != nil {
			return nil, err
		}

		adapters[name] = adapter
	}

	var (
		mux    sync.Mutex
		result = make(MarketResult, len(exchanges)*len(symbols))
		errs   []error
	)

	group, gCtx := errgroup.WithContext(ctx)
	if e.maxConcurrent > 0 {
		group.SetLimit(e.maxConcurrent)
	}

	for _, name := range exchanges {
		for _, symbol := range symbols {
			key := MarketKey{
				Exchange: name,
				Symbol:   symbol,
			}

			group.Go(func() error {
				price, err := adapters[key.Exchange].SpotPrice(gCtx, key.Symbol)

				if err != nil {
					if e.failFast {
						return err
					}

					e.logger.Error(
						"unable to fetch spot price",
						"exchange", key.Exchange,
						"symbol", key.Symbol,
						"err", err,
					)

					mux.Lock()
					result[key] = 0
					errs = append(errs, err)
					mux.Unlock()

					return nil
				}

				mux.Lock()
				result[key] = price
				mux.Unlock()

				return nil
			})
		}
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return result, errors.Join(errs...)
}
