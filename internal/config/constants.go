package config

import "time"

const (
	envPort          = "PORT"
	envPollInterval  = "POLL_INTERVAL"
	envProvider      = "PROVIDER"
	envDataDir       = "DATA_DIR"
	envHistory       = "HISTORY_SEASONS"
	envCurrentSeason = "CURRENT_SEASON"
	envReportTeam    = "REPORT_TEAM"
	envInteractive   = "INTERACTIVE"
	envMetricsPort   = "METRICS_PORT"
	envMetricsOn     = "METRICS_ENABLED"
	envOtelEndpoint  = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService   = "OTEL_SERVICE_NAME"
	envOtelInsecure  = "OTEL_EXPORTER_OTLP_INSECURE"
	envPushgateway   = "PUSHGATEWAY_URL"
	envLogLevel      = "LOG_LEVEL"
	envLogFormat     = "LOG_FORMAT"

	defaultPort = "4000"
	// Conservative default poll interval to respect upstream quotas (balldontlie: 5 req/min).
	defaultPollInterval  = 10 * Duration(time.Minute)
	defaultProvider      = "fixture"
	defaultDataDir       = "data"
	defaultCurrentSeason = 2023
	defaultInteractive   = true
	defaultMetricsPort   = "9090"
	defaultServiceName   = "nba-elo-sim"
	defaultLogLevel      = "info"
	defaultLogFormat     = "text"
)

var defaultHistorySeasons = []int{2018, 2019, 2020, 2021, 2022}
