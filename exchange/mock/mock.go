package mock

import (
	"context"

	"github.com/dkozlov/p2prates/exchange"
)

type (
	NameDelegate           func() string
	AdvertisementsDelegate func(context.Context, exchange.Query) ([]exchange.Advertisement, error)
	SpotPriceDelegate      func(context.Context, string) (float64, error)
	ResolveDelegate        func(string) (exchange.Adapter, error)
)

// Adapter is a configurable exchange adapter mock
type Adapter struct {
	NameFn           NameDelegate
	AdvertisementsFn AdvertisementsDelegate
	SpotPriceFn      SpotPriceDelegate
}

func (m *Adapter) Name() string {
	if m.NameFn != nil {
		return m.NameFn()
	}

	return ""
}

func (m *Adapter) Advertisements(
	ctx context.Context,
	q exchange.Query,
) ([]exchange.Advertisement, error) {
	if m.AdvertisementsFn != nil {
		return m.AdvertisementsFn(ctx, q)
	}

	return nil, nil
}

func (m *Adapter) SpotPrice(ctx context.Context, symbol string) (float64, error) {
	if m.SpotPriceFn != nil {
		return m.SpotPriceFn(ctx, symbol)
	}

	return 0, nil
}

// Resolver is a configurable exchange resolver mock
type Resolver struct {
	ResolveFn ResolveDelegate
}

func (m *Resolver) Resolve(name string) (exchange.Adapter, error) {
	if m.ResolveFn != nil {
		return m.ResolveFn(name)
	}

	return nil, nil
}
