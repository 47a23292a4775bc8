package engine

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkozlov/p2prates/exchange"
	"github.com/dkozlov/p2prates/exchange/mock"
)

func TestEngine_FetchMarket(t *testing.T) {
	t.Parallel()

	t.Run("all pairs fetched", func(t *testing.T) {
		t.Parallel()

		// One fixed price per adapter so pairs are distinguishable
		prices := map[string]float64{
			"binance":  64000.5,
			"bybit":    64010.2,
			"garantex": 64100.0,
		}

		resolver := &mock.Resolver{
			ResolveFn: func(name string) (exchange.Adapter, error) {
				price, ok := prices[name]
				if !ok {
					return nil, exchange.ErrUnknownExchange
				}

				return &mock.Adapter{
					NameFn: func() string {
						return name
					},
					SpotPriceFn: func(_ context.Context, _ string) (float64, error) {
						return price, nil
					},
				}, nil
			},
		}

		e := New(resolver)

		var (
			exchanges = []string{"binance", "bybit", "garantex"}
			symbols   = []string{"BTCUSDT", "ETHUSDT"}
		)

		result, err := e.FetchMarket(context.Background(), exchanges, symbols)

		require.NoError(t, err)
		require.Len(t, result, len(exchanges)*len(symbols))

		for _, name := range exchanges {
			for _, symbol := range symbols {
				assert.Equal(
					t,
					prices[name],
					result[MarketKey{Exchange: name, Symbol: symbol}],
				)
			}
		}
	})

	t.Run("unknown exchange, no network calls", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32

		resolver := &mock.Resolver{
			ResolveFn: func(name string) (exchange.Adapter, error) {
				if name == "kraken" {
					return nil, fmt.Errorf("%w: %s", exchange.ErrUnknownExchange, name)
				}

				return &mock.Adapter{
					SpotPriceFn: func(_ context.Context, _ string) (float64, error) {
						calls.Add(1)

						return 1, nil
					},
				}, nil
			},
		}

		e := New(resolver)

		// The unknown name fails the whole batch before any fetch runs
		result, err := e.FetchMarket(
			context.Background(),
			[]string{"binance", "kraken"},
			[]string{"BTCUSDT"},
		)

		assert.Nil(t, result)
		assert.ErrorIs(t, err, exchange.ErrUnknownExchange)
		assert.EqualValues(t, 0, calls.Load())
	})

	t.Run("partial failure keeps sibling results", func(t *testing.T) {
		t.Parallel()

		adapter := &mock.Adapter{
			NameFn: func() string {
				return "Bybit"
			},
			SpotPriceFn: func(_ context.Context, symbol string) (float64, error) {
				if symbol == "ETHBTC" {
					return 0, &exchange.RequestError{
						Exchange: "Bybit",
						Err:      fmt.Errorf("invalid status code received: 502"),
					}
				}

				return 3100.25, nil
			},
		}

		e := New(staticResolver(adapter))

		result, err := e.FetchMarket(
			context.Background(),
			[]string{"bybit"},
			[]string{"BTCUSDT", "ETHBTC", "ETHUSDT"},
		)

		require.NotNil(t, result)
		require.Len(t, result, 3)

		var reqErr *exchange.RequestError

		require.ErrorAs(t, err, &reqErr)

		assert.Zero(t, result[MarketKey{Exchange: "bybit", Symbol: "ETHBTC"}])
		assert.Equal(t, 3100.25, result[MarketKey{Exchange: "bybit", Symbol: "BTCUSDT"}])
		assert.Equal(t, 3100.25, result[MarketKey{Exchange: "bybit", Symbol: "ETHUSDT"}])
	})

	t.Run("fail fast aborts the batch", func(t *testing.T) {
		t.Parallel()

		adapter := &mock.Adapter{
			SpotPriceFn: func(_ context.Context, symbol string) (float64, error) {
				if symbol == "ETHBTC" {
					return 0, &exchange.RequestError{
						Exchange: "Bybit",
						Err:      fmt.Errorf("timeout"),
					}
				}

				return 3100.25, nil
			},
		}

		e := New(staticResolver(adapter), WithFailFast())

		result, err := e.FetchMarket(
			context.Background(),
			[]string{"bybit"},
			[]string{"BTCUSDT", "ETHBTC", "ETHUSDT"},
		)

		assert.Nil(t, result)

		var reqErr *exchange.RequestError

		assert.ErrorAs(t, err, &reqErr)
	})
}
