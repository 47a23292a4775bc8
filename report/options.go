package report

import (
	"log/slog"
	"time"
)

// jobConfig wraps the shared job settings
type jobConfig struct {
	logger   *slog.Logger
	interval time.Duration
}

type JobOption func(c *jobConfig)

// WithLogger specifies the logger for the job
func WithLogger(l *slog.Logger) JobOption {
	return func(c *jobConfig) {
		c.logger = l
	}
}

// WithInterval specifies the job cadence.
// Defaults to 5 minutes
func WithInterval(i time.Duration) JobOption {
	return func(c *jobConfig) {
		c.interval = i
	}
}
