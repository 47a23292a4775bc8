package exchange

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const garantexDepthURL = "https://garantex.io/api/v2/depth"

var errEmptyBook = errors.New("empty order book")

// garantexDepthResponse is the response from the Garantex depth endpoint
type garantexDepthResponse struct {
	Asks []garantexDepthLevel `json:"asks"`
	Bids []garantexDepthLevel `json:"bids"`
}

type garantexDepthLevel struct {
	Price  string `json:"price"`
	Volume string `json:"volume"`
	Amount string `json:"amount"`
}

// Garantex is the Garantex order-book depth adapter.
// The exchange has no P2P payment-method concept, so advertisements are
// derived from depth levels and carry no counterparty identity
type Garantex struct {
	client   *http.Client
	depthURL string
}

// NewGarantex creates a new Garantex adapter using the shared HTTP client
func NewGarantex(client *http.Client) *Garantex {
	return &Garantex{
		client:   client,
		depthURL: garantexDepthURL,
	}
}

func (g *Garantex) Name() string {
	return "Garantex"
}

func (g *Garantex) Advertisements(ctx context.Context, q Query) ([]Advertisement, error) {
	book, err := g.fetchDepth(ctx, strings.ToLower(q.Asset)+strings.ToLower(q.Fiat))
	if err != nil {
		return nil, err
	}

	// Buying crypto takes the asks side, selling takes the bids
	levels := book.Asks
	if q.Side == SideSell {
		levels = book.Bids
	}

	advs := make([]Advertisement, 0, len(levels))

	for _, level := range levels {
		price, err := strconv.ParseFloat(level.Price, 64)
		if err != nil {
			return nil, newRequestError(g.Name(), fmt.Errorf("invalid level price: %w", err))
		}

		volume, err := strconv.ParseFloat(level.Volume, 64)
		if err != nil {
			return nil, newRequestError(g.Name(), fmt.Errorf("invalid level volume: %w", err))
		}

		amount, err := strconv.ParseFloat(level.Amount, 64)
		if err != nil {
			return nil, newRequestError(g.Name(), fmt.Errorf("invalid level amount: %w", err))
		}

		// Drop levels below the requested transaction amount
		if amount < q.MinAmount {
			continue
		}

		advs = append(advs, Advertisement{
			Price:    price,
			Quantity: volume,
		})
	}

	return advs, nil
}

// SpotPrice returns the price of the first ask level for the market
func (g *Garantex) SpotPrice(ctx context.Context, symbol string) (float64, error) {
	book, err := g.fetchDepth(ctx, strings.ToLower(symbol))
	if err != nil {
		return 0, err
	}

	if len(book.Asks) == 0 {
		return 0, newRequestError(g.Name(), errEmptyBook)
	}

	price, err := strconv.ParseFloat(book.Asks[0].Price, 64)
	if err != nil {
		return 0, newRequestError(g.Name(), fmt.Errorf("invalid ask price: %w", err))
	}

	return price, nil
}

// fetchDepth fetches the order book snapshot for the given market
func (g *Garantex) fetchDepth(ctx context.Context, market string) (*garantexDepthResponse, error) {
	reqURL := fmt.Sprintf(
		"%s?%s",
		g.depthURL,
		url.Values{"market": []string{market}}.Encode(),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, newRequestError(g.Name(), fmt.Errorf("unable to create GET request: %w", err))
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, newRequestError(g.Name(), fmt.Errorf("unable to execute GET request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newRequestError(
			g.Name(),
			fmt.Errorf("invalid status code received: %d", resp.StatusCode),
		)
	}

	var book garantexDepthResponse
	if err = json.NewDecoder(resp.Body).Decode(&book); err != nil {
		return nil, newRequestError(g.Name(), fmt.Errorf("unable to decode response: %w", err))
	}

	return &book, nil
}
