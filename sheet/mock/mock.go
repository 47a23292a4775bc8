package mock

import (
	"context"

	"github.com/dkozlov/p2prates/sheet"
)

type BatchUpdateDelegate func(context.Context, []sheet.Update) error

// Sink is a configurable spreadsheet sink mock
type Sink struct {
	BatchUpdateFn BatchUpdateDelegate
}

func (m *Sink) BatchUpdate(ctx context.Context, updates []sheet.Update) error {
	if m.BatchUpdateFn != nil {
		return m.BatchUpdateFn(ctx, updates)
	}

	return nil
}
