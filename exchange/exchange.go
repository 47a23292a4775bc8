package exchange

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	// ErrUnknownExchange indicates the requested exchange has no adapter
	ErrUnknownExchange = errors.New("unknown exchange")

	// ErrUnsupportedPayMethod indicates the payment method has no
	// translation entry for the exchange
	ErrUnsupportedPayMethod = errors.New("unsupported payment method")
)

// Side is the trade direction of a P2P query
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

func (s Side) String() string {
	return string(s)
}

// Canonical payment method names.
// Each adapter owns the translation to its exchange-specific encoding
const (
	PayTinkoff     = "Tinkoff"
	PayRosbank     = "Rosbank"
	PayQIWI        = "QIWI"
	PayYandexMoney = "YandexMoney"
	PayAlfaBank    = "Alfa-Bank"
	PayPochtaBank  = "Pochta Bank"
	PayRaiffeisen  = "Raiffeisen"
)

// Advertisement is a single normalized P2P offer.
// Nick is empty for order-book-derived offers (no counterparty identity)
type Advertisement struct {
	Nick     string  `json:"nick,omitempty"`
	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity"`
}

// Query is a normalized advertisement query.
// An empty PayMethod means "no payment-method filter"
type Query struct {
	Asset     string
	Fiat      string
	Side      Side
	PayMethod string
	MinAmount float64
}

// Adapter translates normalized queries into exchange-specific requests,
// and exchange-specific responses back into normalized records
type Adapter interface {
	// Name returns the human-readable name of the exchange
	Name() string

	// Advertisements fetches the P2P offers matching the given query,
	// in the order the exchange returned them
	Advertisements(ctx context.Context, q Query) ([]Advertisement, error)

	// SpotPrice fetches the representative spot price for the symbol
	SpotPrice(ctx context.Context, symbol string) (float64, error)
}

// Resolver maps exchange names to adapters
type Resolver interface {
	// Resolve returns the adapter for the given exchange name
	Resolve(name string) (Adapter, error)
}

// RequestError wraps a failed exchange call (transport failure,
// non-2xx status, or a malformed response body)
type RequestError struct {
	Err      error
	Exchange string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s request failed: %s", e.Exchange, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// newRequestError wraps the given failure for the given exchange
func newRequestError(exchange string, err error) *RequestError {
	return &RequestError{
		Exchange: exchange,
		Err:      err,
	}
}

// NewHTTPClient creates the process-wide HTTP client shared by all
// adapters. The transport holds no adapter-visible mutable state, so it
// is safe for concurrent fetches within and across poll cycles
func NewHTTPClient(timeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConns = 20
	transport.MaxIdleConnsPerHost = 10

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
