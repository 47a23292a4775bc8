package engine

import "log/slog"

type Option func(e *Engine)

// WithLogger specifies the logger for the engine
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithMaxConcurrent caps the number of in-flight adapter calls per
// fetch. Unbounded by default, since each batch targets a single
// exchange endpoint and the exchange's own rate limiting is the real
// constraint
func WithMaxConcurrent(n int) Option {
	return func(e *Engine) {
		e.maxConcurrent = n
	}
}

// WithFailFast makes the first pair error abort the whole batch,
// discarding completed sibling results. Off by default; failed pairs
// are then reported alongside the complete result map
func WithFailFast() Option {
	return func(e *Engine) {
		e.failFast = true
	}
}
