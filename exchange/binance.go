//nolint:tagliatelle // Binance API uses camel case
package exchange

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	binanceAdvURL    = "https://p2p.binance.com/bapi/c2c/v2/friendly/c2c/adv/search"
	binanceTickerURL = "https://api.binance.com/api/v3/ticker/price"
)

// binancePayTypes maps canonical payment method names
// to Binance P2P payType codes
var binancePayTypes = map[string]string{
	PayTinkoff:     "TinkoffNew",
	PayRosbank:     "RosBankNew",
	PayQIWI:        "QIWI",
	PayYandexMoney: "YandexMoneyNew",
	PayAlfaBank:    "AlfaBank",
	PayPochtaBank:  "PochtaBankRussia",
	PayRaiffeisen:  "RaiffeisenBank",
}

// binanceAdvRequest is the request body for the Binance P2P adv search
type binanceAdvRequest struct {
	Asset         string   `json:"asset"`
	Fiat          string   `json:"fiat"`
	TradeType     string   `json:"tradeType"`
	TransAmount   float64  `json:"transAmount"`
	MerchantCheck bool     `json:"merchantCheck"`
	PayTypes      []string `json:"payTypes,omitempty"`
	Page          int      `json:"page"`
	Rows          int      `json:"rows"`
	FilterType    string   `json:"filterType"`
}

// binanceAdvResponse is the response from the Binance P2P adv search
type binanceAdvResponse struct {
	Data []binanceAdvRow `json:"data"`
}

type binanceAdvRow struct {
	Adv        binanceAdv        `json:"adv"`
	Advertiser binanceAdvertiser `json:"advertiser"`
}

type binanceAdv struct {
	Price            string `json:"price"`
	TradableQuantity string `json:"tradableQuantity"`
}

type binanceAdvertiser struct {
	NickName string `json:"nickName"`
}

// binanceTicker is the response from the Binance spot ticker endpoint
type binanceTicker struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
}

// Binance is the Binance P2P advertisement board adapter
type Binance struct {
	client    *http.Client
	advURL    string
	tickerURL string
}

// NewBinance creates a new Binance adapter using the shared HTTP client
func NewBinance(client *http.Client) *Binance {
	return &Binance{
		client:    client,
		advURL:    binanceAdvURL,
		tickerURL: binanceTickerURL,
	}
}

func (b *Binance) Name() string {
	return "Binance"
}

func (b *Binance) Advertisements(ctx context.Context, q Query) ([]Advertisement, error) {
	var payTypes []string

	if q.PayMethod != "" {
		code, ok := binancePayTypes[q.PayMethod]
		if !ok {
			return nil, fmt.Errorf(
				"%w: %s has no code for %q",
				ErrUnsupportedPayMethod,
				b.Name(),
				q.PayMethod,
			)
		}

		payTypes = []string{code}
	}

	reqBody := binanceAdvRequest{
		Asset:         q.Asset,
		Fiat:          q.Fiat,
		TradeType:     q.Side.String(),
		TransAmount:   q.MinAmount,
		MerchantCheck: true,
		PayTypes:      payTypes,
		Page:          1,
		Rows:          20,
		FilterType:    "all",
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, newRequestError(b.Name(), fmt.Errorf("unable to marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.advURL, bytes.NewReader(body))
	if err != nil {
		return nil, newRequestError(b.Name(), fmt.Errorf("unable to create POST request: %w", err))
	}

	req.Header.Set("Content-Type", "application/json")

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

	var apiResp binanceAdvResponse
	if err = json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, newRequestError(b.Name(), fmt.Errorf("unable to decode response: %w", err))
	}

	// Map the offers, preserving the exchange-given order
	advs := make([]Advertisement, 0, len(apiResp.Data))

	for _, row := range apiResp.Data {
		price, err := strconv.ParseFloat(row.Adv.Price, 64)
		if err != nil {
			return nil, newRequestError(b.Name(), fmt.Errorf("invalid offer price: %w", err))
		}

		quantity, err := strconv.ParseFloat(row.Adv.TradableQuantity, 64)
		if err != nil {
			return nil, newRequestError(b.Name(), fmt.Errorf("invalid offer quantity: %w", err))
		}

		advs = append(advs, Advertisement{
			Nick:     row.Advertiser.NickName,
			Price:    price,
			Quantity: quantity,
		})
	}

	return advs, nil
}

func (b *Binance) SpotPrice(ctx context.Context, symbol string) (float64, error) {
	reqURL := fmt.Sprintf(
		"%s?%s",
		b.tickerURL,
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

	var ticker binanceTicker
	if err = json.NewDecoder(resp.Body).Decode(&ticker); err != nil {
		return 0, newRequestError(b.Name(), fmt.Errorf("unable to decode response: %w", err))
	}

	price, err := strconv.ParseFloat(ticker.Price, 64)
	if err != nil {
		return 0, newRequestError(b.Name(), fmt.Errorf("invalid ticker price: %w", err))
	}

	return price, nil
}
