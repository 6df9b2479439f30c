package server

import (
	"log/slog"

	"github.com/preston-bernstein/nba-elo-sim/internal/config"
	"github.com/preston-bernstein/nba-elo-sim/internal/providers"
	"github.com/preston-bernstein/nba-elo-sim/internal/providers/balldontlie"
	"github.com/preston-bernstein/nba-elo-sim/internal/providers/fixture"
)

func selectProvider(cfg config.Config, logger *slog.Logger) providers.DataProvider {
	switch cfg.Provider {
	case "fixture", "":
		return fixture.New()
	case "balldontlie":
		return balldontlie.NewClient(balldontlie.Config{
			BaseURL:  cfg.Balldontlie.BaseURL,
			APIKey:   cfg.Balldontlie.APIKey,
			MaxPages: cfg.Balldontlie.MaxPages,
			Logger:   logger,
		})
	default:
		if logger != nil {
			logger.Warn("unknown provider, falling back to fixture", slog.String("provider", cfg.Provider))
		}
		return fixture.New()
	}
}
