package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkozlov/p2prates/snapshot"
)

func TestStore_P2P(t *testing.T) {
	t.Parallel()

	t.Run("empty store", func(t *testing.T) {
		t.Parallel()

		s := NewStore()

		entries, err := s.LatestP2P(context.Background())

		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("latest entry wins per slot", func(t *testing.T) {
		t.Parallel()

		var (
			s   = NewStore()
			ctx = context.Background()

			first = snapshot.P2PEntry{
				UpdatedAt: time.Now().UTC().Add(-time.Minute),
				Exchange:  "binance",
				Side:      "BUY",
				Asset:     "USDT",
				PayMethod: "Tinkoff",
				BestPrice: 97.5,
				Offers:    20,
			}

			second = snapshot.P2PEntry{
				UpdatedAt: time.Now().UTC(),
				Exchange:  "binance",
				Side:      "BUY",
				Asset:     "USDT",
				PayMethod: "Tinkoff",
				BestPrice: 98.1,
				Offers:    18,
			}
		)

		require.NoError(t, s.SaveP2P(ctx, []snapshot.P2PEntry{first}))
		require.NoError(t, s.SaveP2P(ctx, []snapshot.P2PEntry{second}))

		entries, err := s.LatestP2P(ctx)

		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, second, entries[0])
	})

	t.Run("sorted output", func(t *testing.T) {
		t.Parallel()

		var (
			s   = NewStore()
			ctx = context.Background()
		)

		require.NoError(t, s.SaveP2P(ctx, []snapshot.P2PEntry{
			{Exchange: "bybit", Side: "BUY", Asset: "USDT", PayMethod: "QIWI"},
			{Exchange: "binance", Side: "SELL", Asset: "USDT", PayMethod: "Tinkoff"},
			{Exchange: "binance", Side: "BUY", Asset: "USDT", PayMethod: "Tinkoff"},
			{Exchange: "binance", Side: "BUY", Asset: "BTC", PayMethod: "Tinkoff"},
		}))

		entries, err := s.LatestP2P(ctx)

		require.NoError(t, err)
		require.Len(t, entries, 4)

		assert.Equal(t, "binance", entries[0].Exchange)
		assert.Equal(t, "BTC", entries[0].Asset)
		assert.Equal(t, "USDT", entries[1].Asset)
		assert.Equal(t, "SELL", entries[2].Side)
		assert.Equal(t, "bybit", entries[3].Exchange)
	})
}

func TestStore_Market(t *testing.T) {
	t.Parallel()

	t.Run("empty store", func(t *testing.T) {
		t.Parallel()

		s := NewStore()

		entries, err := s.LatestMarket(context.Background())

		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("latest entry wins per slot", func(t *testing.T) {
		t.Parallel()

		var (
			s   = NewStore()
			ctx = context.Background()
		)

		require.NoError(t, s.SaveMarket(ctx, []snapshot.MarketEntry{
			{Exchange: "binance", Symbol: "BTCUSDT", Price: 64000.5},
		}))
		require.NoError(t, s.SaveMarket(ctx, []snapshot.MarketEntry{
			{Exchange: "binance", Symbol: "BTCUSDT", Price: 64100.2},
		}))

		entries, err := s.LatestMarket(ctx)

		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, 64100.2, entries[0].Price)
	})

	t.Run("sorted output", func(t *testing.T) {
		t.Parallel()

		var (
			s   = NewStore()
			ctx = context.Background()
		)

		require.NoError(t, s.SaveMarket(ctx, []snapshot.MarketEntry{
			{Exchange: "garantex", Symbol: "BTCUSDT"},
			{Exchange: "binance", Symbol: "ETHUSDT"},
			{Exchange: "binance", Symbol: "BTCUSDT"},
		}))

		entries, err := s.LatestMarket(ctx)

		require.NoError(t, err)
		require.Len(t, entries, 3)

		assert.Equal(t, "binance", entries[0].Exchange)
		assert.Equal(t, "BTCUSDT", entries[0].Symbol)
		assert.Equal(t, "ETHUSDT", entries[1].Symbol)
		assert.Equal(t, "garantex", entries[2].Exchange)
	})
}
