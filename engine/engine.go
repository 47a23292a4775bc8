package engine

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dkozlov/p2prates/exchange"
)

// NoOfferPrice is the sentinel published for slots with no usable offer.
// Downstream consumers min-select prices numerically across exchanges,
// so the exact value is load-bearing
const NoOfferPrice = float64(1_000_000_000)

var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Key identifies one logical slot in a poll cycle's result set.
// An empty PayMethod means the slot was queried without a
// payment-method filter
type Key struct {
	Asset     string
	PayMethod string
}

// Result maps each requested (asset, payment method) pair to the
// advertisements the exchange returned for it, in exchange order.
// Every requested pair is present as a key, even when its fetch
// yielded nothing
type Result map[Key][]exchange.Advertisement

// BestPrice returns the price of the first advertisement for the given
// slot, or NoOfferPrice when the slot holds no offers. The first
// element is taken as-is; the engine never re-sorts exchange output
func BestPrice(result Result, asset, payMethod string) float64 {
	advs := result[Key{
		Asset:     asset,
		PayMethod: payMethod,
	}]

	if len(advs) == 0 {
		return NoOfferPrice
	}

	return advs[0].Price
}

// Engine concurrently fans out advertisement and spot-price queries
// across exchange adapters, and collects them into per-cycle result
// maps. It holds no cross-cycle state
type Engine struct {
	resolver exchange.Resolver
	logger   *slog.Logger

	maxConcurrent int
	failFast      bool
}

// New creates a new Engine instance on top of the given adapter resolver
func New(resolver exchange.Resolver, opts ...Option) *Engine {
	e := &Engine{
		resolver: resolver,
		logger:   noopLogger,
	}

	// Apply the options
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Fetch concurrently fetches advertisements for every
// (asset, payment method) pair on the given exchange.
//
// By default the full result map is returned even when some pairs
// fail: failed pairs keep their key with no advertisements, and the
// joined pair errors are returned alongside the map. With the
// fail-fast option the first error aborts the batch and no map is
// returned
func (e *Engine) Fetch(
	ctx context.Context,
	exchangeName string,
	assets []string,
	fiat string,
	side exchange.Side,
	payMethods []string,
	minAmount float64,
) (Result, error) {
	// Resolve the adapter before spawning any work
	adapter, err := e.resolver.Resolve(exchangeName)
	if err != nil {
		return nil, err
	}

	keys := make([]Key, 0, len(assets)*len(payMethods))

	for _, asset := range assets {
		for _, payMethod := range payMethods {
			keys = append(keys, Key{
				Asset:     asset,
				PayMethod: payMethod,
			})
		}
	}

	var (
		mux    sync.Mutex
		result = make(Result, len(keys))
		errs   []error
	)

	group, gCtx := errgroup.WithContext(ctx)
	if e.maxConcurrent > 0 {
		group.SetLimit(e.maxConcurrent)
	}

	for _, key := range keys {
		group.Go(func() error {
			advs, err := adapter.Advertisements(gCtx, exchange.Query{
				Asset:     key.Asset,
				Fiat:      fiat,
				Side:      side,
				PayMethod: key.PayMethod,
				MinAmount: minAmount,
			})

			if err != nil {
				if e.failFast {
					return err
				}

				e.logger.Error(
					"unable to fetch advertisements",
					"exchange", adapter.Name(),
					"asset", key.Asset,
					"pay_method", key.PayMethod,
					"err", err,
				)

				mux.Lock()
				result[key] = nil
				errs = append(errs, err)
				mux.Unlock()

				return nil
			}

			mux.Lock()
			result[key] = advs
			mux.Unlock()

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return result, errors.Join(errs...)
}
