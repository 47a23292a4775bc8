package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dkozlov/p2prates/engine"
	"github.com/dkozlov/p2prates/sheet"
	"github.com/dkozlov/p2prates/snapshot"
)

// MarketTableJob polls the spot markets across all exchanges and
// publishes one price cell per (exchange, symbol) pair
type MarketTableJob struct {
	engine *engine.Engine
	sink   sheet.Sink
	store  snapshot.Store
	logger *slog.Logger

	interval time.Duration
}

// NewMarketTableJob creates the market data table job
func NewMarketTableJob(
	eng *engine.Engine,
	sink sheet.Sink,
	store snapshot.Store,
	opts ...JobOption,
) *MarketTableJob {
	cfg := &jobConfig{
		logger:   noopLogger,
		interval: defaultInterval,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return &MarketTableJob{
		engine:   eng,
		sink:     sink,
		store:    store,
		logger:   cfg.logger,
		interval: cfg.interval,
	}
}

func (j *MarketTableJob) Name() string {
	return "market data tables"
}

func (j *MarketTableJob) Interval() time.Duration {
	return j.interval
}

func (j *MarketTableJob) Run(ctx context.Context) error {
	result, fetchErr := j.engine.FetchMarket(ctx, marketExchanges, marketSymbols)
	if result == nil {
		return fetchErr
	}

	if fetchErr != nil {
		// Partial cycle, publish what completed
		j.logger.Warn(
			"publishing partial market tables",
			"err", fetchErr,
		)
	}

	now := time.Now().UTC()

	updates := make([]sheet.Update, 0, len(marketExchanges)*len(marketSymbols))
	entries := make([]snapshot.MarketEntry, 0, len(marketExchanges)*len(marketSymbols))

	for _, exchangeName := range marketExchanges {
		for _, symbol := range marketSymbols {
			cell, ok := marketLayout[strings.ToLower(exchangeName)][strings.ToUpper(symbol)]
			if !ok {
				return fmt.Errorf("no market cell for %s/%s", exchangeName, symbol)
			}

			price := result[engine.MarketKey{
				Exchange: exchangeName,
				Symbol:   symbol,
			}]

			updates = append(updates, sheet.Update{
				Range:  cell,
				Values: [][]any{{price}},
			})

			entries = append(entries, snapshot.MarketEntry{
				UpdatedAt: now,
				Exchange:  strings.ToLower(exchangeName),
				Symbol:    strings.ToUpper(symbol),
				Price:     price,
			})
		}
	}

	if err := j.store.SaveMarket(ctx, entries); err != nil {
		j.logger.Error(
			"unable to save market snapshot",
			"err", err,
		)
	}

	if err := j.sink.BatchUpdate(ctx, updates); err != nil {
		return errors.Join(fetchErr, fmt.Errorf("unable to publish market tables: %w", err))
	}

	return fetchErr
}
