package poll

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/dkozlov/p2prates/cmd/env"
	"github.com/dkozlov/p2prates/sheet"
)

type pollLogCfg struct {
	rootCfg *pollCfg
}

// newPollLogCmd creates the poll log command
func newPollLogCmd(rootCfg *pollCfg) *ffcli.Command {
	cfg := &pollLogCfg{
		rootCfg: rootCfg,
	}

	fs := flag.NewFlagSet("log", flag.ExitOnError)
	cfg.rootCfg.registerFlags(fs)

	return &ffcli.Command{
		Name:       "log",
		ShortUsage: "poll log [flags]",
		LongHelp:   "Runs the polling loop with a dry-run sink that only logs updates",
		FlagSet:    fs,
		Exec:       cfg.exec,
		Options: []ff.Option{
			ff.WithEnvVars(),
			ff.WithEnvVarPrefix(env.Prefix),
		},
	}
}

func (c *pollLogCfg) exec(ctx context.Context, _ []string) error {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := c.rootCfg.loadConfig(logger); err != nil {
		return err
	}

	return c.rootCfg.run(ctx, sheet.NewLog(logger), logger)
}
