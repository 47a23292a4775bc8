package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/dkozlov/p2prates/engine"
	"github.com/dkozlov/p2prates/exchange"
	"github.com/dkozlov/p2prates/sheet"
	"github.com/dkozlov/p2prates/snapshot"
)

var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// P2PTableJob polls one exchange / direction pair for P2P
// advertisements and publishes the best-price table to the sheet
type P2PTableJob struct {
	engine *engine.Engine
	sink   sheet.Sink
	store  snapshot.Store
	logger *slog.Logger

	exchange   string
	side       exchange.Side
	ranges     tableRanges
	payMethods []string
	interval   time.Duration
}

// NewP2PTableJob creates the P2P table job for the given exchange and
// trade direction. Exchanges without a sheet table are rejected with
// ErrUnknownExchange before any polling starts
func NewP2PTableJob(
	eng *engine.Engine,
	sink sheet.Sink,
	store snapshot.Store,
	exchangeName string,
	side exchange.Side,
	opts ...JobOption,
) (*P2PTableJob, error) {
	ranges, ok := p2pLayout[strings.ToLower(exchangeName)][side]
	if !ok {
		return nil, fmt.Errorf(
			"%w: no table layout for %s/%s",
			exchange.ErrUnknownExchange,
			exchangeName,
			side,
		)
	}

	// Garantex has no payment-method concept, it gets the single
	// unfiltered column
	payMethods := bankPayMethods
	if strings.EqualFold(exchangeName, "garantex") {
		payMethods = []string{""}
	}

	cfg := &jobConfig{
		logger:   noopLogger,
		interval: defaultInterval,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return &P2PTableJob{
		engine:     eng,
		sink:       sink,
		store:      store,
		logger:     cfg.logger,
		exchange:   exchangeName,
		side:       side,
		ranges:     ranges,
		payMethods: payMethods,
		interval:   cfg.interval,
	}, nil
}

func (j *P2PTableJob) Name() string {
	return fmt.Sprintf("%s/%s p2p table", strings.ToLower(j.exchange), j.side)
}

func (j *P2PTableJob) Interval() time.Duration {
	return j.interval
}

func (j *P2PTableJob) Run(ctx context.Context) error {
	result, fetchErr := j.engine.Fetch(
		ctx,
		j.exchange,
		defaultAssets,
		fiatRUB,
		j.side,
		j.payMethods,
		defaultMinAmount,
	)
	if result == nil {
		return fetchErr
	}

	if fetchErr != nil {
		// Partial cycle, publish what completed
		j.logger.Warn(
			"publishing partial p2p table",
			"exchange", j.exchange,
			"side", j.side.String(),
			"err", fetchErr,
		)
	}

	now := time.Now().UTC()

	// Build the best-price matrix, rows are assets,
	// columns are payment methods
	values := make([][]any, 0, len(defaultAssets))
	entries := make([]snapshot.P2PEntry, 0, len(defaultAssets)*len(j.payMethods))

	for _, asset := range defaultAssets {
		row := make([]any, 0, len(j.payMethods))

		for _, payMethod := range j.payMethods {
			price := engine.BestPrice(result, asset, payMethod)
			row = append(row, price)

			entries = append(entries, snapshot.P2PEntry{
				UpdatedAt: now,
				Exchange:  strings.ToLower(j.exchange),
				Side:      j.side.String(),
				Asset:     asset,
				PayMethod: payMethod,
				BestPrice: price,
				Offers:    len(result[engine.Key{Asset: asset, PayMethod: payMethod}]),
			})
		}

		values = append(values, row)
	}

	if err := j.store.SaveP2P(ctx, entries); err != nil {
		j.logger.Error(
			"unable to save p2p snapshot",
			"err", err,
		)
	}

	updates := []sheet.Update{
		{
			Range:  j.ranges.updatedAt,
			Values: [][]any{{"Updated at"}, {currentDatetime(now)}},
		},
		{
			Range:  j.ranges.table,
			Values: values,
		},
	}

	if err := j.sink.BatchUpdate(ctx, updates); err != nil {
		return errors.Join(fetchErr, fmt.Errorf("unable to publish p2p table: %w", err))
	}

	return fetchErr
}
