package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/nba-elo-sim/internal/app/pipeline"
	"github.com/preston-bernstein/nba-elo-sim/internal/app/season"
	"github.com/preston-bernstein/nba-elo-sim/internal/archive"
	"github.com/preston-bernstein/nba-elo-sim/internal/config"
	httpserver "github.com/preston-bernstein/nba-elo-sim/internal/http"
	"github.com/preston-bernstein/nba-elo-sim/internal/http/handlers"
	"github.com/preston-bernstein/nba-elo-sim/internal/logging"
	"github.com/preston-bernstein/nba-elo-sim/internal/metrics"
	"github.com/preston-bernstein/nba-elo-sim/internal/poller"
	"github.com/preston-bernstein/nba-elo-sim/internal/prompt"
	"github.com/preston-bernstein/nba-elo-sim/internal/providers"
	"github.com/preston-bernstein/nba-elo-sim/internal/simulate"
	"github.com/preston-bernstein/nba-elo-sim/internal/snapshots"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	season        *season.Service
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	metricsStop   func(context.Context) error
	closers       []func() error
}

// deps carries the injectable collaborators of a server.
type deps struct {
	provider  providers.DataProvider
	snapshots snapshots.Store
	archive   archive.Archive
	recorder  *metrics.Recorder
	draw      simulate.Draw
}

// New builds the configured provider, artifact store and archive, replays history and
// simulates the current season so the server is ready before it starts listening.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, nil)

	provider, releaseProvider := newProviderFactory(logger, recorder).build(cfg)
	store, closeStore := NewSnapshotStore(cfg, logger)
	arc, closeArchive, err := NewArchive(ctx, cfg, logger)
	if err != nil {
		logging.Warn(logger, "archive unavailable, keeping postseasons in memory", "err", err)
		arc = nil
	}

	srv, err := newServerWithDeps(ctx, cfg, logger, deps{
		provider:  provider,
		snapshots: store,
		archive:   arc,
		recorder:  recorder,
	})
	if err != nil {
		releaseProvider()
		_ = closeStore()
		_ = closeArchive()
		if metricsShutdown != nil {
			_ = metricsShutdown(context.Background())
		}
		return nil, err
	}
	srv.metricsServer = metricsSrv
	srv.metricsStop = metricsShutdown
	srv.closers = append(srv.closers, func() error { releaseProvider(); return nil }, closeStore, closeArchive)
	return srv, nil
}

func newServerWithDeps(ctx context.Context, cfg config.Config, logger *slog.Logger, d deps) (*Server, error) {
	if d.recorder == nil {
		d.recorder = metrics.NewRecorder()
	}
	svc, err := prepareSeason(ctx, cfg, logger, d)
	if err != nil {
		return nil, err
	}

	plr := poller.New(d.provider, svc, d.snapshots, cfg.Season.Current, logger, d.recorder, cfg.PollInterval)
	httpSrv := buildHTTPServer(cfg, svc, logger, d.recorder, plr)

	return &Server{
		cfg:        cfg,
		logger:     logger,
		metrics:    d.recorder,
		season:     svc,
		httpServer: httpSrv,
		poller:     plr,
	}, nil
}

// newServerWithParts is used for testing to inject custom components.
func newServerWithParts(cfg config.Config, logger *slog.Logger, svc *season.Service, httpSrv httpServer, plr Poller) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		season:     svc,
		httpServer: httpSrv,
		poller:     plr,
	}
}

// prepareSeason replays history (or loads the cached ratings) and simulates the cached or
// freshly fetched current season. The poller keeps the season current afterwards.
func prepareSeason(ctx context.Context, cfg config.Config, logger *slog.Logger, d deps) (*season.Service, error) {
	none := simulate.FilterNone
	p, err := pipeline.New(pipeline.Config{
		Provider: d.provider,
		Store:    d.snapshots,
		Decider:  &prompt.Fixed{},
		Logger:   logger,
		Metrics:  d.recorder,
		Draw:     d.draw,
		History:  cfg.Season.History,
		Season:   cfg.Season.Current,
		Filter:   &none,
	})
	if err != nil {
		return nil, err
	}
	processed, err := p.Processed(ctx)
	if err != nil {
		return nil, fmt.Errorf("prepare ratings: %w", err)
	}
	current, err := p.SeasonGames(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("prepare season %d: %w", cfg.Season.Current, err)
	}

	svc := season.NewService(processed, season.Config{
		Season:  cfg.Season.Current,
		Archive: d.archive,
		Draw:    d.draw,
		Logger:  logger,
		Metrics: d.recorder,
	})
	if err := svc.ReplaceGames(ctx, current); err != nil {
		return nil, fmt.Errorf("simulate season %d: %w", cfg.Season.Current, err)
	}
	return svc, nil
}

func buildHTTPServer(cfg config.Config, svc *season.Service, logger *slog.Logger, recorder *metrics.Recorder, plr Poller) httpServer {
	var statusFn func() poller.Status
	if plr != nil {
		statusFn = plr.Status
	}
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}

	handler := handlers.NewHandler(svc, logger, statusFn)
	router := httpserver.NewRouter(handler, logger, recorder)

	return newNetHTTPServer(cfg.Port, router)
}

// Run starts the poller and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.poller.Start(ctx)

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	if s.logger != nil {
		s.logger.Info("http server starting", slog.String("addr", s.httpServer.Addr()))
	}
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	if s.logger != nil {
		s.logger.Info("metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	if err := s.poller.Stop(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("failed to stop poller", "error", err)
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}

	var closeErr error
	for _, c := range s.closers {
		closeErr = errors.Join(closeErr, c())
	}
	if closeErr != nil && s.logger != nil {
		s.logger.Warn("closing backends failed", "error", closeErr)
	}

	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", "err", err)
		}
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = newNetHTTPServer(recCfg.Port, handler)
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if logger != nil {
			logger.Info("starting "+name+" server", slog.String("addr", srv.Addr()))
		}
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.Warn(name+" server failed", "error", err)
			}
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}

// Season exposes the season service (useful for tests).
func (s *Server) Season() *season.Service {
	return s.season
}
