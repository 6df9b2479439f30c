package config

import "time"

const (
	envBdlBaseURL  = "BALDONTLIE_BASE_URL"
	envBdlAPIKey   = "BALDONTLIE_API_KEY"
	envBdlMaxPages = "BALDONTLIE_MAX_PAGES"
	envBdlInterval = "BALDONTLIE_MIN_INTERVAL"

	defaultBdlBaseURL  = "https://api.balldontlie.io/v1"
	defaultBdlMaxPages = 200
	defaultBdlInterval = Duration(time.Second)
)

// BalldontlieConfig controls how we talk to the balldontlie API.
type BalldontlieConfig struct {
	BaseURL  string
	APIKey   string
	MaxPages int

	// MinInterval spaces out successive upstream fetches.
	MinInterval Duration
}

func loadBalldontlie() BalldontlieConfig {
	return BalldontlieConfig{
		BaseURL:     envOrDefault(envBdlBaseURL, defaultBdlBaseURL),
		APIKey:      envOrDefault(envBdlAPIKey, ""),
		MaxPages:    intEnvOrDefault(envBdlMaxPages, defaultBdlMaxPages),
		MinInterval: durationEnvOrDefault(envBdlInterval, defaultBdlInterval),
	}
}
