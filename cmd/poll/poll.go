package poll

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
	"golang.org/x/sync/errgroup"

	"github.com/dkozlov/p2prates/cmd/env"
	"github.com/dkozlov/p2prates/engine"
	"github.com/dkozlov/p2prates/exchange"
	"github.com/dkozlov/p2prates/poll"
	"github.com/dkozlov/p2prates/server"
	"github.com/dkozlov/p2prates/server/config"
	"github.com/dkozlov/p2prates/sheet"
	"github.com/dkozlov/p2prates/snapshot/memory"
)

const (
	defaultHTTPTimeout  = time.Second * 30
	defaultPollInterval = time.Minute * 5
)

// pollCfg wraps the poll configuration
type pollCfg struct {
	config *config.Config

	configPath      string
	spreadsheetID   string
	worksheet       string
	credentialsFile string

	httpTimeout  time.Duration
	pollInterval time.Duration
}

// NewPollCmd creates the poll subcommand
func NewPollCmd() *ffcli.Command {
	cfg := &pollCfg{
		config: config.DefaultConfig(),
	}

	fs := flag.NewFlagSet("poll", flag.ExitOnError)
	cfg.registerFlags(fs)

	cmd := &ffcli.Command{
		Name:       "poll",
		ShortUsage: "poll <subcommand> [flags]",
		LongHelp:   "Runs the exchange polling loop",
		FlagSet:    fs,
		Exec: func(_ context.Context, _ []string) error {
			return flag.ErrHelp
		},
		Options: []ff.Option{
			// Allow using ENV variables
			ff.WithEnvVars(),
			ff.WithEnvVarPrefix(env.Prefix),
		},
	}

	cmd.Subcommands = []*ffcli.Command{
		newPollSheetsCmd(cfg),
		newPollLogCmd(cfg),
	}

	return cmd
}

func (c *pollCfg) registerFlags(fs *flag.FlagSet) {
	fs.StringVar(
		&c.config.ListenAddress,
		"listen",
		config.DefaultListenAddress,
		"the IP:PORT URL for the rates API server",
	)

	fs.StringVar(
		&c.configPath,
		"config",
		"",
		"the path to the server TOML configuration, if any",
	)

	fs.StringVar(
		&c.spreadsheetID,
		"spreadsheet",
		"",
		"the ID of the target Google spreadsheet",
	)

	fs.StringVar(
		&c.worksheet,
		"worksheet",
		"Лист1",
		"the worksheet (tab) the tables live on",
	)

	fs.StringVar(
		&c.credentialsFile,
		"credentials",
		"service_account.json",
		"the path to the service account credentials JSON",
	)

	fs.DurationVar(
		&c.httpTimeout,
		"http-timeout",
		defaultHTTPTimeout,
		"the timeout for individual exchange calls",
	)

	fs.DurationVar(
		&c.pollInterval,
		"poll-interval",
		defaultPollInterval,
		"the cadence of each poll job",
	)
}

// run wires up and runs the polling service with the given sink
func (c *pollCfg) run(ctx context.Context, sink sheet.Sink, logger *slog.Logger) error {
	var (
		client   = exchange.NewHTTPClient(c.httpTimeout)
		registry = exchange.NewRegistry(client)
		store    = memory.NewStore()

		eng = engine.New(
			registry,
			engine.WithLogger(logger),
		)
	)

	// Create the poll scheduler with its jobs
	scheduler := poll.New(
		poll.WithLogger(logger),
	)

	jobs, err := defaultJobs(eng, sink, store, logger, c.pollInterval)
	if err != nil {
		return fmt.Errorf("unable to create jobs, %w", err)
	}

	for _, job := range jobs {
		if err := scheduler.Register(job); err != nil {
			return fmt.Errorf("unable to register job, %w", err)
		}
	}

	// Create the rates API server
	s, err := server.New(
		store,
		server.WithLogger(logger),
		server.WithConfig(c.config),
	)
	if err != nil {
		return fmt.Errorf("unable to create server, %w", err)
	}

	runCtx, cancelFn := signal.NotifyContext(
		ctx,
		os.Interrupt,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancelFn()

	group, gCtx := errgroup.WithContext(runCtx)

	group.Go(func() error {
		return scheduler.Start(gCtx)
	})

	group.Go(func() error {
		return s.Serve(gCtx)
	})

	return group.Wait()
}

// loadConfig reads the server configuration file, if any,
// and loads the local .env
func (c *pollCfg) loadConfig(logger *slog.Logger) error {
	if c.configPath != "" {
		serverCfg, err := config.Read(c.configPath)
		if err != nil {
			return fmt.Errorf("unable to read server config, %w", err)
		}

		c.config = serverCfg
	}

	// Load .env
	if err := godotenv.Load(); err != nil {
		logger.Warn("unable to load .env file")
	}

	return nil
}
