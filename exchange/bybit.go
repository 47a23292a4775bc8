//nolint:tagliatelle // Bybit API uses camel case
package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	bybitOTCURL       = "https://api2.bybit.com/spot/api/otc/item/list"
	bybitOrderBookURL = "https://api-testnet.bybit.com/v2/public/orderBook/L2"
)

// bybitPayIDs maps canonical payment method names
// to Bybit OTC payment ids
var bybitPayIDs = map[string]int{
	PayAlfaBank:    1,
	PayPochtaBank:  59,
	PayQIWI:        62,
	PayRaiffeisen:  64,
	PayTinkoff:     75,
	PayRosbank:     185,
	PayYandexMoney: 274,
}

// bybitOTCResponse is the response from the Bybit OTC item list
type bybitOTCResponse struct {
	Result bybitOTCResult `json:"result"`
}

type bybitOTCResult struct {
	Items []bybitOTCItem `json:"items"`
}

type bybitOTCItem struct {
	NickName string `json:"nickName"`
	Price    string `json:"price"`
	Quantity string `json:"quantity"`
}

// bybitOrderBookResponse is the response from the Bybit L2 order book
type bybitOrderBookResponse struct {
	Result []bybitOrderBookLevel `json:"result"`
}

type bybitOrderBookLevel struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
	Side   string `json:"side"`
}

// Bybit is the Bybit P2P (OTC) advertisement board adapter
type Bybit struct {
	client       *http.Client
	otcURL       string
	orderBookURL string
}

// NewBybit creates a new Bybit adapter using the shared HTTP client
func NewBybit(client *http.Client) *Bybit {
	return &Bybit{
		client:       client,
		otcURL:       bybitOTCURL,
		orderBookURL: bybitOrderBookURL,
	}
}

func (b *Bybit) Name() string {
	return "Bybit"
}

func (b *Bybit) Advertisements(ctx context.Context, q Query) ([]Advertisement, error) {
	payment, ok := bybitPayIDs[q.PayMethod]
	if !ok {
		return nil, fmt.Errorf(
			"%w: %s has no id for %q",
			ErrUnsupportedPayMethod,
			b.Name(),
			q.PayMethod,
		)
	}

	// Bybit encodes the direction as 1 (buy) / 0 (sell)
	side := "0"
	if q.Side == SideBuy {
		side = "1"
	}

	form := url.Values{
		"tokenId":    []string{q.Asset},
		"currencyId": []string{q.Fiat},
		"payment":    []string{strconv.Itoa(payment)},
		"side":       []string{side},
		"size":       []string{"10"},
		"page":       []string{"1"},
		"amount":     []string{strconv.FormatFloat(q.MinAmount, 'f', -1, 64)},
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		b.otcURL,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return nil, newRequestError(b.Name(), fmt.Errorf("unable to create POST request: %w", err))
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	// The OTC endpoint rejects non-browser clients
	req.Header.Set(
		"User-Agent",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) "+
			"AppleWebKit/537.36 (KHTML, like Gecko) "+
			"Chrome/104.0.0.0 Safari/537.36",
	)
	req.Header.Set("Referer", "https://www.bybit.com/")
	req.Header.Set("Origin", "https://www.bybit.com")
	req.Header.Set("Pragma", "no-cache")

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, newRequestError(b.Name(), fmt.Errorf("unable to execute POST request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newRequestError(
			b.Name(),
			fmt.Errorf("invalid status code received: %d", resp.StatusCode),
		)
	}

	var apiResp bybitOTCResponse
	if err = json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, newRequestError(b.Name(), fmt.Errorf("unable to decode response: %w", err))
	}

	advs := make([]Advertisement, 0, len(apiResp.Result.Items))

	for _, item := range apiResp.Result.Items {
		price, err := strconv.ParseFloat(item.Price, 64)
		if err != nil {
			return nil, newRequestError(b.Name(), fmt.Errorf("invalid offer price: %w", err))
		}

		quantity, err := strconv.ParseFloat(item.Quantity, 64)
		if err != nil {
			return nil, newRequestError(b.Name(), fmt.Errorf("invalid offer quantity: %w", err))
		}

		advs = append(advs, Advertisement{
			Nick:     item.NickName,
			Price:    price,
			Quantity: quantity,
		})
	}

	return advs, nil
}

// SpotPrice returns the price of the lowest outstanding sell order,
// or 0 if the exchange reported no sellable book
func (b *Bybit) SpotPrice(ctx context.Context, symbol string) (float64, error) {
	reqURL := fmt.Sprintf(
		"%s?%s",
		b.orderBookURL,
		url.Values{"symbol": []string{strings.ToUpper(symbol)}}.Encode(),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return 0, newRequestError(b.Name(), fmt.Errorf("unable to create GET request: %w", err))
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return 0, newRequestError(b.Name(), fmt.Errorf("unable to execute GET request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, newRequestError(
			b.Name(),
			fmt.Errorf("invalid status code received: %d", resp.StatusCode),
		)
	}

	var book bybitOrderBookResponse
	if err = json.NewDecoder(resp.Body).Decode(&book); err != nil {
		return 0, newRequestError(b.Name(), fmt.Errorf("unable to decode response: %w", err))
	}

	for _, level := range book.Result {
		if level.Side != "Sell" {
			continue
		}

		price, err := strconv.ParseFloat(level.Price, 64)
		if err != nil {
			return 0, newRequestError(b.Name(), fmt.Errorf("invalid level price: %w", err))
		}

		return price, nil
	}

	return 0, nil
}
