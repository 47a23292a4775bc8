package poll

import (
	"log/slog"
	"time"

	"github.com/dkozlov/p2prates/engine"
	"github.com/dkozlov/p2prates/exchange"
	"github.com/dkozlov/p2prates/poll"
	"github.com/dkozlov/p2prates/report"
	"github.com/dkozlov/p2prates/sheet"
	"github.com/dkozlov/p2prates/snapshot"
)

// defaultJobs returns the default poll jobs: one P2P table per
// exchange and direction, plus the market data tables
func defaultJobs(
	eng *engine.Engine,
	sink sheet.Sink,
	store snapshot.Store,
	logger *slog.Logger,
	interval time.Duration,
) ([]poll.Job, error) {
	var (
		exchanges = []string{"Binance", "Bybit", "Garantex"}
		sides     = []exchange.Side{exchange.SideBuy, exchange.SideSell}
	)

	jobs := make([]poll.Job, 0, len(exchanges)*len(sides)+1)

	for _, exchangeName := range exchanges {
		for _, side := range sides {
			job, err := report.NewP2PTableJob(
				eng,
				sink,
				store,
				exchangeName,
				side,
				report.WithLogger(logger),
				report.WithInterval(interval),
			)
			if err != nil {
				return nil, err
			}

			jobs = append(jobs, job)
		}
	}

	jobs = append(jobs, report.NewMarketTableJob(
		eng,
		sink,
		store,
		report.WithLogger(logger),
		report.WithInterval(interval),
	))

	return jobs, nil
}
