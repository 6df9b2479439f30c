package config

import "time"

const (
	envSnapshotBackend = "SNAPSHOT_BACKEND"
	envRedisAddr       = "REDIS_ADDR"
	envRedisPassword   = "REDIS_PASSWORD"
	envRedisDB         = "REDIS_DB"
	envRedisPrefix     = "REDIS_PREFIX"
	envRedisTTL        = "REDIS_TTL"
	envArchiveDSN      = "ARCHIVE_DSN"

	// BackendFS keeps artifacts as files under DATA_DIR.
	BackendFS = "fs"
	// BackendRedis keeps artifacts in Redis.
	BackendRedis = "redis"

	defaultRedisAddr   = "localhost:6379"
	defaultRedisPrefix = "nba-sim"
)

// SnapshotConfig selects and configures the artifact backend.
type SnapshotConfig struct {
	Backend       string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
	// RedisTTL of zero keeps artifacts until overwritten.
	RedisTTL time.Duration
}

// ArchiveConfig points at the optional Postgres postseason archive.
type ArchiveConfig struct {
	DSN string
}

func loadSnapshots() SnapshotConfig {
	backend := envOrDefault(envSnapshotBackend, BackendFS)
	if backend != BackendRedis {
		backend = BackendFS
	}
	return SnapshotConfig{
		Backend:       backend,
		RedisAddr:     envOrDefault(envRedisAddr, defaultRedisAddr),
		RedisPassword: envOrDefault(envRedisPassword, ""),
		RedisDB:       intEnvOrDefault(envRedisDB, 0),
		RedisPrefix:   envOrDefault(envRedisPrefix, defaultRedisPrefix),
		RedisTTL:      durationEnvOrDefault(envRedisTTL, 0),
	}
}

func loadArchive() ArchiveConfig {
	return ArchiveConfig{DSN: envOrDefault(envArchiveDSN, "")}
}
