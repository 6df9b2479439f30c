package server

import (
	"log/slog"

	"github.com/preston-bernstein/nba-elo-sim/internal/config"
	"github.com/preston-bernstein/nba-elo-sim/internal/metrics"
	"github.com/preston-bernstein/nba-elo-sim/internal/providers"
	"github.com/preston-bernstein/nba-elo-sim/internal/providers/balldontlie"
)

// providerFactory assembles the provider with shared wrappers (rate limit + retry).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

// build returns the wrapped provider and a release func for the rate limiter ticker.
func (f providerFactory) build(cfg config.Config) (providers.DataProvider, func()) {
	base := selectProvider(cfg, f.logger)
	release := func() {}
	wrapped := base
	if _, ok := base.(*balldontlie.Client); ok {
		limited := providers.NewRateLimitedProvider(base, cfg.Balldontlie.MinInterval, f.logger)
		if c, ok := limited.(interface{ Close() }); ok {
			release = c.Close
		}
		wrapped = limited
	}
	name := normalizeProviderName(cfg.Provider, base)
	return providers.NewRetryingProvider(wrapped, f.logger, f.metrics, name, 0, 0), release
}

// NewProvider builds the configured provider for callers outside the server (the CLI run mode).
func NewProvider(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (providers.DataProvider, func()) {
	return newProviderFactory(logger, recorder).build(cfg)
}
