package sheet

import (
	"context"
	"io"
	"log/slog"
)

// Log is a dry-run sink that logs updates instead of publishing them
type Log struct {
	logger *slog.Logger
}

// NewLog creates a new logging sink
func NewLog(logger *slog.Logger) *Log {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Log{
		logger: logger,
	}
}

func (l *Log) BatchUpdate(_ context.Context, updates []Update) error {
	for _, update := range updates {
		l.logger.Info(
			"sheet update",
			"range", update.Range,
			"values", update.Values,
		)
	}

	return nil
}
