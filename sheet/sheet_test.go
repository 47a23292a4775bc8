package sheet

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoogle_NewConfigValidation(t *testing.T) {
	t.Parallel()

	testTable := []struct {
		name        string
		cfg         GoogleConfig
		expectedErr error
	}{
		{
			name: "missing spreadsheet ID",
			cfg: GoogleConfig{
				Worksheet:       "Лист1",
				CredentialsFile: "service_account.json",
			},
			expectedErr: ErrMissingSpreadsheetID,
		},
		{
			name: "missing worksheet",
			cfg: GoogleConfig{
				SpreadsheetID:   "sheet-id",
				CredentialsFile: "service_account.json",
			},
			expectedErr: ErrMissingWorksheet,
		},
		{
			name: "missing credentials",
			cfg: GoogleConfig{
				SpreadsheetID: "sheet-id",
				Worksheet:     "Лист1",
			},
			expectedErr: ErrMissingCredentials,
		},
	}

	for _, testCase := range testTable {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			sink, err := NewGoogle(context.Background(), testCase.cfg)

			assert.Nil(t, sink)
			assert.ErrorIs(t, err, testCase.expectedErr)
		})
	}
}

func TestLog_BatchUpdate(t *testing.T) {
	t.Parallel()

	t.Run("nil logger discards", func(t *testing.T) {
		t.Parallel()

		sink := NewLog(nil)

		assert.NoError(t, sink.BatchUpdate(context.Background(), []Update{
			{Range: "A1", Values: [][]any{{1.0}}},
		}))
	})

	t.Run("updates are logged", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer

		sink := NewLog(slog.New(slog.NewTextHandler(&buf, nil)))

		updates := []Update{
			{Range: "B2:B3", Values: [][]any{{"Updated at"}}},
			{Range: "C16", Values: [][]any{{3100.25}}},
		}

		require.NoError(t, sink.BatchUpdate(context.Background(), updates))

		logged := buf.String()

		assert.Contains(t, logged, "B2:B3")
		assert.Contains(t, logged, "C16")
	})
}
