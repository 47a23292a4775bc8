package exchange

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBybit_Advertisements(t *testing.T) {
	t.Parallel()

	t.Run("valid response", func(t *testing.T) {
		t.Parallel()

		var captured url.Values

		srv := httptest.NewServer(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodPost, r.Method)
				require.Equal(
					t,
					"application/x-www-form-urlencoded",
					r.Header.Get("Content-Type"),
				)

				// The OTC endpoint expects browser-like headers
				require.NotEmpty(t, r.Header.Get("User-Agent"))
				require.Equal(t, "https://www.bybit.com/", r.Header.Get("Referer"))
				require.Equal(t, "https://www.bybit.com", r.Header.Get("Origin"))

				require.NoError(t, r.ParseForm())
				captured = r.PostForm

				_, _ = w.Write([]byte(`{
					"result": {
						"items": [
							{"nickName": "otc-maker", "price": "97.8", "quantity": "310.25"}
						]
					}
				}`))
			}),
		)
		defer srv.Close()

		adapter := NewBybit(srv.Client())
		adapter.otcURL = srv.URL

		advs, err := adapter.Advertisements(context.Background(), Query{
			Asset:     "USDT",
			Fiat:      "RUB",
			Side:      SideBuy,
			PayMethod: PayTinkoff,
			MinAmount: 5000,
		})

		require.NoError(t, err)

		require.Len(t, advs, 1)
		assert.Equal(t, Advertisement{Nick: "otc-maker", Price: 97.8, Quantity: 310.25}, advs[0])

		// The payment method and direction use the Bybit encoding
		assert.Equal(t, "75", captured.Get("payment"))
		assert.Equal(t, "1", captured.Get("side"))
		assert.Equal(t, "USDT", captured.Get("tokenId"))
		assert.Equal(t, "RUB", captured.Get("currencyId"))
		assert.Equal(t, "5000", captured.Get("amount"))
		assert.Equal(t, "10", captured.Get("size"))
		assert.Equal(t, "1", captured.Get("page"))
	})

	t.Run("sell side encoding", func(t *testing.T) {
		t.Parallel()

		var captured url.Values

		srv := httptest.NewServer(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.NoError(t, r.ParseForm())
				captured = r.PostForm

				_, _ = w.Write([]byte(`{"result": {"items": []}}`))
			}),
		)
		defer srv.Close()

		adapter := NewBybit(srv.Client())
		adapter.otcURL = srv.URL

		_, err := adapter.Advertisements(context.Background(), Query{
			Asset:     "BTC",
			Fiat:      "RUB",
			Side:      SideSell,
			PayMethod: PayRosbank,
		})

		require.NoError(t, err)

		assert.Equal(t, "0", captured.Get("side"))
		assert.Equal(t, "185", captured.Get("payment"))
	})

	t.Run("unsupported payment method", func(t *testing.T) {
		t.Parallel()

		var called bool

		srv := httptest.NewServer(
			http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
				called = true
			}),
		)
		defer srv.Close()

		adapter := NewBybit(srv.Client())
		adapter.otcURL = srv.URL

		advs, err := adapter.Advertisements(context.Background(), Query{
			Asset:     "USDT",
			Fiat:      "RUB",
			Side:      SideBuy,
			PayMethod: "Hawala",
		})

		assert.Nil(t, advs)
		assert.ErrorIs(t, err, ErrUnsupportedPayMethod)
		assert.False(t, called, "no network call should be made")
	})

	t.Run("missing payment method", func(t *testing.T) {
		t.Parallel()

		adapter := NewBybit(NewHTTPClient(0))

		// Bybit has no unfiltered mode, an empty method has no id
		advs, err := adapter.Advertisements(context.Background(), Query{
			Asset: "USDT",
			Fiat:  "RUB",
			Side:  SideBuy,
		})

		assert.Nil(t, advs)
		assert.ErrorIs(t, err, ErrUnsupportedPayMethod)
	})

	t.Run("invalid status code", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(
			http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusForbidden)
			}),
		)
		defer srv.Close()

		adapter := NewBybit(srv.Client())
		adapter.otcURL = srv.URL

		advs, err := adapter.Advertisements(context.Background(), Query{
			Asset:     "USDT",
			Fiat:      "RUB",
			Side:      SideBuy,
			PayMethod: PayQIWI,
		})

		assert.Nil(t, advs)

		var reqErr *RequestError

		require.ErrorAs(t, err, &reqErr)
		assert.Equal(t, "Bybit", reqErr.Exchange)
	})
}

func TestBybit_SpotPrice(t *testing.T) {
	t.Parallel()

	t.Run("lowest sell order", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, "ETHUSDT", r.URL.Query().Get("symbol"))

				_, _ = w.Write([]byte(`{
					"result": [
						{"symbol": "ETHUSDT", "price": "3099.5", "side": "Buy"},
						{"symbol": "ETHUSDT", "price": "3100.25", "side": "Sell"},
						{"symbol": "ETHUSDT", "price": "3101.0", "side": "Sell"}
					]
				}`))
			}),
		)
		defer srv.Close()

		adapter := NewBybit(srv.Client())
		adapter.orderBookURL = srv.URL

		price, err := adapter.SpotPrice(context.Background(), "ethusdt")

		require.NoError(t, err)
		assert.Equal(t, 3100.25, price)
	})

	t.Run("empty book", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(
			http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"result": []}`))
			}),
		)
		defer srv.Close()

		adapter := NewBybit(srv.Client())
		adapter.orderBookURL = srv.URL

		price, err := adapter.SpotPrice(context.Background(), "ETHUSDT")

		require.NoError(t, err)
		assert.Zero(t, price)
	})
}
