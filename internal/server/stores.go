package server

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/preston-bernstein/nba-elo-sim/internal/archive"
	"github.com/preston-bernstein/nba-elo-sim/internal/config"
	"github.com/preston-bernstein/nba-elo-sim/internal/logging"
	"github.com/preston-bernstein/nba-elo-sim/internal/snapshots"
)

func noopClose() error { return nil }

// NewSnapshotStore builds the configured artifact backend and its close func.
func NewSnapshotStore(cfg config.Config, logger *slog.Logger) (snapshots.Store, func() error) {
	if cfg.Snapshots.Backend == config.BackendRedis {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Snapshots.RedisAddr,
			Password: cfg.Snapshots.RedisPassword,
			DB:       cfg.Snapshots.RedisDB,
		})
		logging.Info(logger, "snapshot backend selected",
			"backend", config.BackendRedis,
			"addr", cfg.Snapshots.RedisAddr,
		)
		return snapshots.NewRedisStore(client, cfg.Snapshots.RedisPrefix, cfg.Snapshots.RedisTTL), client.Close
	}
	logging.Info(logger, "snapshot backend selected",
		"backend", config.BackendFS,
		logging.FieldFile, cfg.Season.DataDir,
	)
	return snapshots.NewFSStore(cfg.Season.DataDir), noopClose
}

// NewArchive opens the Postgres archive when a DSN is configured. A nil Archive means none.
func NewArchive(ctx context.Context, cfg config.Config, logger *slog.Logger) (archive.Archive, func() error, error) {
	if cfg.Archive.DSN == "" {
		return nil, noopClose, nil
	}
	pg, err := archive.Open(ctx, cfg.Archive.DSN)
	if err != nil {
		return nil, noopClose, err
	}
	logging.Info(logger, "postseason archive connected")
	return pg, pg.Close, nil
}
