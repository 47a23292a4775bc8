package sheet

import "context"

// Update is a single rectangular range write.
// Values is row-major: one inner slice per spreadsheet row
type Update struct {
	Range  string
	Values [][]any
}

// Sink is an abstraction over the spreadsheet the poll results are
// published to
type Sink interface {
	// BatchUpdate applies all given range updates in one call
	BatchUpdate(ctx context.Context, updates []Update) error
}
