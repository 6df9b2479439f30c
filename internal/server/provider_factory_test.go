package server

import (
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/nba-elo-sim/internal/config"
	"github.com/preston-bernstein/nba-elo-sim/internal/providers/balldontlie"
	"github.com/preston-bernstein/nba-elo-sim/internal/providers/fixture"
)

func TestProviderFactoryBuildsFixtureWithoutLimiter(t *testing.T) {
	prov, release := newProviderFactory(nil, nil).build(config.Config{Provider: "fixture"})
	defer release()
	if prov == nil {
		t.Fatalf("expected provider")
	}
}

func TestProviderFactoryBuildsBalldontlieWithLimiter(t *testing.T) {
	cfg := config.Config{
		Provider: "balldontlie",
		Balldontlie: config.BalldontlieConfig{
			BaseURL:     "http://example.com",
			MinInterval: 10 * time.Millisecond,
		},
	}
	prov, release := NewProvider(cfg, nil, nil)
	if prov == nil {
		t.Fatalf("expected provider")
	}
	release()
}

func TestSelectProviderFallsBackToFixture(t *testing.T) {
	provider := selectProvider(config.Config{Provider: "unknown"}, nil)
	if _, ok := provider.(*fixture.Provider); !ok {
		t.Fatalf("expected fixture fallback, got %T", provider)
	}
}

func TestSelectProviderChoosesBalldontlie(t *testing.T) {
	provider := selectProvider(config.Config{
		Provider: "balldontlie",
		Balldontlie: config.BalldontlieConfig{
			BaseURL: "http://example.com",
			APIKey:  "key",
		},
	}, nil)
	if _, ok := provider.(*balldontlie.Client); !ok {
		t.Fatalf("expected balldontlie provider")
	}
}

func TestNormalizeProviderName(t *testing.T) {
	if got := normalizeProviderName("BallDontLie", nil); got != "balldontlie" {
		t.Fatalf("expected lower-cased name, got %s", got)
	}
	if got := normalizeProviderName("", fixture.New()); !strings.Contains(got, "fixture") {
		t.Fatalf("expected derived name, got %s", got)
	}
	if got := normalizeProviderName("", nil); got != "provider" {
		t.Fatalf("expected default name, got %s", got)
	}
}
