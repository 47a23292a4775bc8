package sheet

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

var (
	ErrMissingSpreadsheetID = errors.New("missing spreadsheet ID")
	ErrMissingWorksheet     = errors.New("missing worksheet name")
	ErrMissingCredentials   = errors.New("missing credentials file")
)

// GoogleConfig is the Google Sheets sink configuration
type GoogleConfig struct {
	// The ID of the target spreadsheet (from its URL)
	SpreadsheetID string

	// The worksheet (tab) the ranges refer to
	Worksheet string

	// Path to the service account credentials JSON
	CredentialsFile string
}

// Google publishes updates to a Google spreadsheet worksheet
type Google struct {
	service       *sheets.Service
	spreadsheetID string
	worksheet     string
}

// NewGoogle creates a new Google Sheets sink using service account
// credentials
func NewGoogle(ctx context.Context, cfg GoogleConfig) (*Google, error) {
	if cfg.SpreadsheetID == "" {
		return nil, ErrMissingSpreadsheetID
	}

	if cfg.Worksheet == "" {
		return nil, ErrMissingWorksheet
	}

	if cfg.CredentialsFile == "" {
		return nil, ErrMissingCredentials
	}

	service, err := sheets.NewService(
		ctx,
		option.WithCredentialsFile(cfg.CredentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return &Google{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		worksheet:     cfg.Worksheet,
	}, nil
}

func (g *Google) BatchUpdate(ctx context.Context, updates []Update) error {
	data := make([]*sheets.ValueRange, 0, len(updates))

	for _, update := range updates {
		data = append(data, &sheets.ValueRange{
			Range:  fmt.Sprintf("%s!%s", g.worksheet, update.Range),
			Values: update.Values,
		})
	}

	req := &sheets.BatchUpdateValuesRequest{
		ValueInputOption: "RAW",
		Data:             data,
	}

	_, err := g.service.Spreadsheets.Values.
		BatchUpdate(g.spreadsheetID, req).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("unable to batch update spreadsheet: %w", err)
	}

	return nil
}
