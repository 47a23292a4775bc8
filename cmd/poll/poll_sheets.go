package poll

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/dkozlov/p2prates/cmd/env"
	"github.com/dkozlov/p2prates/sheet"
)

type pollSheetsCfg struct {
	rootCfg *pollCfg
}

// newPollSheetsCmd creates the poll sheets command
func newPollSheetsCmd(rootCfg *pollCfg) *ffcli.Command {
	cfg := &pollSheetsCfg{
		rootCfg: rootCfg,
	}

	fs := flag.NewFlagSet("sheets", flag.ExitOnError)
	cfg.rootCfg.registerFlags(fs)

	return &ffcli.Command{
		Name:       "sheets",
		ShortUsage: "poll sheets [flags]",
		LongHelp:   "Runs the polling loop, publishing to a Google spreadsheet",
		FlagSet:    fs,
		Exec:       cfg.exec,
		Options: []ff.Option{
			ff.WithEnvVars(),
			ff.WithEnvVarPrefix(env.Prefix),
		},
	}
}

func (c *pollSheetsCfg) exec(ctx context.Context, _ []string) error {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := c.rootCfg.loadConfig(logger); err != nil {
		return err
	}

	// Create the Google Sheets sink
	sink, err := sheet.NewGoogle(ctx, sheet.GoogleConfig{
		SpreadsheetID:   c.rootCfg.spreadsheetID,
		Worksheet:       c.rootCfg.worksheet,
		CredentialsFile: c.rootCfg.credentialsFile,
	})
	if err != nil {
		return fmt.Errorf("unable to create sheets sink, %w", err)
	}

	return c.rootCfg.run(ctx, sink, logger)
}
