package balldontlie

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/preston-bernstein/nba-elo-sim/internal/domain/games"
	"github.com/preston-bernstein/nba-elo-sim/internal/domain/teams"
	"github.com/preston-bernstein/nba-elo-sim/internal/logging"
	"github.com/preston-bernstein/nba-elo-sim/internal/providers"
)

// Config controls how the balldontlie client reaches the upstream API.
type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	MaxPages   int
	Logger     *slog.Logger
}

// Client fetches teams and games from the balldontlie API and maps them to domain models.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient httpDoer
	maxPages   int
	logger     *slog.Logger
}

// NewClient constructs a balldontlie client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		apiKey:     cfg.APIKey,
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		maxPages:   resolveMaxPages(cfg.MaxPages),
		logger:     cfg.Logger,
	}
}

// FetchTeams retrieves current franchises. Teams the API lists without a
// current conference or division are skipped.
func (c *Client) FetchTeams(ctx context.Context) ([]teams.Team, error) {
	req, err := c.newRequest(ctx, "/teams", nil)
	if err != nil {
		return nil, err
	}

	var payload teamsResponse
	if err := c.do(req, &payload); err != nil {
		return nil, err
	}

	out := make([]teams.Team, 0, len(payload.Data))
	for _, raw := range payload.Data {
		team, err := mapTeam(raw)
		if err != nil {
			if c.logger != nil {
				c.logger.Debug("skipping team", logging.FieldTeam, raw.Abbreviation, "error", err)
			}
			continue
		}
		out = append(out, team)
	}
	return out, nil
}

// FetchGames retrieves every game of the given seasons, following pagination
// until the API reports no further pages or the page cap is reached.
func (c *Client) FetchGames(ctx context.Context, seasons []int) ([]games.Game, error) {
	page := 1
	cursor := ""
	allGames := make([]games.Game, 0)

	for {
		q := make(map[string][]string)
		for _, s := range seasons {
			q["seasons[]"] = append(q["seasons[]"], strconv.Itoa(s))
		}
		q["per_page"] = []string{strconv.Itoa(defaultPerPage)}
		if cursor != "" {
			q["cursor"] = []string{cursor}
		} else {
			q["page"] = []string{strconv.Itoa(page)}
		}

		req, err := c.newRequest(ctx, "/games", q)
		if err != nil {
			return nil, err
		}

		var payload gamesResponse
		if err := c.do(req, &payload); err != nil {
			return nil, err
		}

		for _, g := range payload.Data {
			allGames = append(allGames, mapGame(g))
		}

		if page >= c.maxPages {
			break
		}
		if payload.Meta.NextCursor != nil {
			cursor = strconv.Itoa(*payload.Meta.NextCursor)
		} else if payload.Meta.TotalPages > 0 {
			if page >= payload.Meta.TotalPages {
				break
			}
		} else {
			break
		}
		page++
	}

	if c.logger != nil {
		c.logger.Info("fetched games", logging.FieldProvider, providerName, logging.FieldCount, len(allGames), "pages", page)
	}
	return allGames, nil
}

func (c *Client) newRequest(ctx context.Context, path string, query map[string][]string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	q := req.URL.Query()
	for key, values := range query {
		for _, v := range values {
			q.Add(key, v)
		}
	}
	req.URL.RawQuery = q.Encode()

	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			Remaining:  resp.Header.Get("X-RateLimit-Remaining"),
			Message:    "balldontlie: rate limited",
		}
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("balldontlie: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("balldontlie: decoding %s: %w", req.URL.Path, err)
	}
	return nil
}
