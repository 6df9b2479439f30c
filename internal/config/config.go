package config

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration for both run and serve modes.
type Config struct {
	Port         string
	PollInterval Duration
	Provider     string
	Balldontlie  BalldontlieConfig
	Season       SeasonConfig
	Snapshots    SnapshotConfig
	Archive      ArchiveConfig
	Metrics      MetricsConfig
	Log          LogConfig
}

// SeasonConfig selects which seasons feed the pipeline and how the run is driven.
type SeasonConfig struct {
	DataDir     string
	History     []int
	Current     int
	ReportTeam  string
	Interactive bool
}

// LogConfig controls logger construction.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:         envOrDefault(envPort, defaultPort),
		PollInterval: durationEnvOrDefault(envPollInterval, defaultPollInterval),
		Provider:     envOrDefault(envProvider, defaultProvider),
		Balldontlie:  loadBalldontlie(),
		Season:       loadSeason(),
		Snapshots:    loadSnapshots(),
		Archive:      loadArchive(),
		Metrics:      loadMetrics(),
		Log: LogConfig{
			Level:  envOrDefault(envLogLevel, defaultLogLevel),
			Format: envOrDefault(envLogFormat, defaultLogFormat),
		},
	}
}

func loadSeason() SeasonConfig {
	return SeasonConfig{
		DataDir:     envOrDefault(envDataDir, defaultDataDir),
		History:     intListEnvOrDefault(envHistory, defaultHistorySeasons),
		Current:     intEnvOrDefault(envCurrentSeason, defaultCurrentSeason),
		ReportTeam:  envOrDefault(envReportTeam, ""),
		Interactive: boolEnvOrDefault(envInteractive, defaultInteractive),
	}
}

// LoadDotEnv populates the environment from a .env file. A missing file is not an error;
// variables already set in the environment win.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
