package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/preston-bernstein/nba-elo-sim/internal/app/pipeline"
	"github.com/preston-bernstein/nba-elo-sim/internal/config"
	"github.com/preston-bernstein/nba-elo-sim/internal/logging"
	"github.com/preston-bernstein/nba-elo-sim/internal/metrics"
	"github.com/preston-bernstein/nba-elo-sim/internal/prompt"
	"github.com/preston-bernstein/nba-elo-sim/internal/server"
	"github.com/preston-bernstein/nba-elo-sim/internal/simulate"
)

const appVersion = "dev"

const (
	modeRun   = "run"
	modeServe = "serve"
)

func main() {
	if os.Getenv("SKIP_SIM_RUN") == "1" {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, stop, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "nba-sim:", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, stop context.CancelFunc, args []string, in io.Reader, out io.Writer) error {
	fs := flag.NewFlagSet("nba-sim", flag.ContinueOnError)
	fs.SetOutput(out)
	envFile := fs.String("env", ".env", "path to a dotenv file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	mode := fs.Arg(0)
	if mode == "" {
		mode = modeRun
	}

	if err := config.LoadDotEnv(*envFile); err != nil {
		return fmt.Errorf("load %s: %w", *envFile, err)
	}
	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.Metrics.ServiceName,
		Version: appVersion,
	})

	switch mode {
	case modeRun:
		return runPipeline(ctx, cfg, logger, in, out)
	case modeServe:
		srv, err := server.New(ctx, cfg, logger)
		if err != nil {
			return err
		}
		srv.Run(ctx, stop)
		return nil
	default:
		return fmt.Errorf("unknown mode %q (want %s or %s)", mode, modeRun, modeServe)
	}
}

// runPipeline drives one console session and pushes its metrics when a gateway is configured.
func runPipeline(ctx context.Context, cfg config.Config, logger *slog.Logger, in io.Reader, out io.Writer) error {
	rec, _, shutdown, err := metrics.Setup(ctx, metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled || cfg.Metrics.PushgatewayURL != "",
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	})
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "err", err)
		rec, shutdown = metrics.NewRecorder(), nil
	}
	if shutdown != nil {
		defer func() { _ = shutdown(context.Background()) }()
	}

	provider, release := server.NewProvider(cfg, logger, rec)
	defer release()
	store, closeStore := server.NewSnapshotStore(cfg, logger)
	defer func() { _ = closeStore() }()
	arc, closeArchive, err := server.NewArchive(ctx, cfg, logger)
	if err != nil {
		logging.Warn(logger, "archive unavailable, postseasons will not be recorded", "err", err)
	}
	defer func() { _ = closeArchive() }()

	p, err := pipeline.New(pipeline.Config{
		Provider: provider,
		Store:    store,
		Decider:  decider(cfg, in, out),
		Archive:  arc,
		Out:      out,
		Logger:   logger,
		Metrics:  rec,
		History:  cfg.Season.History,
		Season:   cfg.Season.Current,
		Filter:   presetFilter(cfg),
	})
	if err != nil {
		return err
	}
	runErr := p.Run(ctx)

	if pushErr := metrics.Push(ctx, rec, cfg.Metrics.PushgatewayURL, cfg.Metrics.ServiceName); pushErr != nil {
		logging.Warn(logger, "metrics push failed", "err", pushErr)
	}
	return runErr
}

// decider prompts on the terminal, or keeps cached data and stops after one postseason.
func decider(cfg config.Config, in io.Reader, out io.Writer) prompt.Decider {
	if cfg.Season.Interactive {
		return prompt.NewTerminal(in, out)
	}
	return &prompt.Fixed{Answers: map[prompt.Question]bool{
		prompt.RedownloadSeason: false,
		prompt.ResimulateSeason: false,
		prompt.Done:             true,
	}}
}

func presetFilter(cfg config.Config) *simulate.Filter {
	if cfg.Season.ReportTeam == "" {
		return nil
	}
	f := simulate.ParseFilter(cfg.Season.ReportTeam)
	return &f
}
