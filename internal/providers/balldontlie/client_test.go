package balldontlie

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/nba-elo-sim/internal/domain/games"
	"github.com/preston-bernstein/nba-elo-sim/internal/domain/teams"
	"github.com/preston-bernstein/nba-elo-sim/internal/providers"
)

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func TestFetchGamesHitsAPIAndMapsResponse(t *testing.T) {
	var capturedAuth string
	var capturedQueries []string

	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/games" {
			t.Fatalf("expected /games path, got %s", req.URL.Path)
		}
		capturedQueries = append(capturedQueries, req.URL.RawQuery)
		capturedAuth = req.Header.Get("Authorization")

		if len(capturedQueries) == 1 {
			return jsonResponse(http.StatusOK, `{
				"data": [
					{
						"id": 10,
						"date": "2024-01-02",
						"status": "Final",
						"home_team": { "id": 1, "abbreviation": "BOS", "full_name": "Boston Celtics" },
						"visitor_team": { "id": 2, "abbreviation": "LAL", "full_name": "Los Angeles Lakers" },
						"home_team_score": 110,
						"visitor_team_score": 102,
						"season": 2023
					}
				],
				"meta": { "total_pages": 2 }
			}`), nil
		}
		return jsonResponse(http.StatusOK, `{
			"data": [
				{
					"id": 11,
					"date": "2024-01-03",
					"status": "2024-01-03T00:30:00Z",
					"home_team": { "id": 3, "abbreviation": "MIA", "full_name": "Miami Heat" },
					"visitor_team": { "id": 4, "abbreviation": "GSW", "full_name": "Golden State Warriors" },
					"home_team_score": 0,
					"visitor_team_score": 0,
					"season": 2023
				}
			],
			"meta": { "total_pages": 2 }
		}`), nil
	})

	client := NewClient(Config{
		BaseURL:    "http://example.com",
		APIKey:     "secret",
		HTTPClient: &http.Client{Transport: rt},
		MaxPages:   5,
	})

	list, err := client.FetchGames(context.Background(), []int{2022, 2023})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if capturedAuth != "Bearer secret" {
		t.Fatalf("expected authorization header, got %s", capturedAuth)
	}
	if len(capturedQueries) != 2 {
		t.Fatalf("expected 2 requests (pagination), got %d", len(capturedQueries))
	}
	q, err := url.ParseQuery(capturedQueries[0])
	if err != nil {
		t.Fatalf("failed parsing query %s: %v", capturedQueries[0], err)
	}
	if q.Get("per_page") != "100" {
		t.Fatalf("expected per_page=100, got %s", q.Get("per_page"))
	}
	if seasons := q["seasons[]"]; len(seasons) != 2 || seasons[0] != "2022" || seasons[1] != "2023" {
		t.Fatalf("expected both seasons requested, got %v", seasons)
	}
	if q.Get("page") != "1" {
		t.Fatalf("expected page=1, got %s", q.Get("page"))
	}
	if len(list) != 2 {
		t.Fatalf("expected games from both pages, got %d", len(list))
	}

	game := list[0]
	if game.ID != "balldontlie-10" || game.Provider != "balldontlie" {
		t.Fatalf("unexpected game identifiers %+v", game)
	}
	if game.HomeTeam.Abbreviation != "BOS" || game.AwayTeam.Abbreviation != "LAL" {
		t.Fatalf("unexpected teams %+v", game)
	}
	if !game.Played() || !game.HomeWon() {
		t.Fatalf("expected recorded home win, got %+v", game)
	}
	if game.Meta.UpstreamGameID != 10 || game.Meta.Season != 2023 {
		t.Fatalf("unexpected meta %+v", game.Meta)
	}
	if list[1].Status != games.StatusScheduled {
		t.Fatalf("expected scheduled second game, got %s", list[1].Status)
	}
}

func TestFetchGamesFollowsCursor(t *testing.T) {
	var cursors []string
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		cursors = append(cursors, req.URL.Query().Get("cursor"))
		if len(cursors) == 1 {
			return jsonResponse(http.StatusOK, `{"data":[{"id":1,"status":"Final"}],"meta":{"next_cursor":77}}`), nil
		}
		return jsonResponse(http.StatusOK, `{"data":[{"id":2,"status":"Final"}],"meta":{}}`), nil
	})

	client := NewClient(Config{HTTPClient: &http.Client{Transport: rt}})
	list, err := client.FetchGames(context.Background(), []int{2023})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 games, got %d", len(list))
	}
	if len(cursors) != 2 || cursors[0] != "" || cursors[1] != "77" {
		t.Fatalf("unexpected cursor sequence %v", cursors)
	}
}

func TestFetchGamesHandlesNon200(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		_ = req
		return jsonResponse(http.StatusBadGateway, "boom"), nil
	})

	client := NewClient(Config{
		BaseURL:    "http://example.com",
		HTTPClient: &http.Client{Transport: rt},
	})

	if _, err := client.FetchGames(context.Background(), []int{2023}); err == nil {
		t.Fatal("expected error on non-200 response")
	}
}

func TestFetchGamesReturnsRateLimitError(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		resp := jsonResponse(http.StatusTooManyRequests, "slow down")
		resp.Header.Set("Retry-After", "7")
		return resp, nil
	})

	client := NewClient(Config{HTTPClient: &http.Client{Transport: rt}})
	_, err := client.FetchGames(context.Background(), []int{2023})
	rl, ok := providers.AsRateLimitError(err)
	if !ok {
		t.Fatalf("expected rate limit error, got %v", err)
	}
	if rl.RetryAfter != 7*time.Second || rl.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("unexpected rate limit details %+v", rl)
	}
}

func TestFetchGamesHandlesDecodeError(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		_ = req
		return jsonResponse(http.StatusOK, "{bad json"), nil
	})

	client := NewClient(Config{
		BaseURL:    "http://example.com",
		HTTPClient: &http.Client{Transport: rt},
	})

	if _, err := client.FetchGames(context.Background(), []int{2023}); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestFetchGamesRespectsMaxPagesCap(t *testing.T) {
	calls := 0
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		calls++
		return jsonResponse(http.StatusOK, `{
			"data": [{ "id": 1, "date": "2024-01-01", "status": "Final", "home_team_score": 10, "visitor_team_score": 5, "season": 2023 }],
			"meta": { "total_pages": 10 }
		}`), nil
	})

	client := NewClient(Config{
		BaseURL:    "http://example.com",
		HTTPClient: &http.Client{Transport: rt},
		MaxPages:   1,
	})

	list, err := client.FetchGames(context.Background(), []int{2023})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 game, got %d", len(list))
	}
	if calls != 1 {
		t.Fatalf("expected to stop after max pages, got %d calls", calls)
	}
}

func TestFetchTeamsSkipsHistoricFranchises(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/teams" {
			t.Fatalf("expected /teams path, got %s", req.URL.Path)
		}
		return jsonResponse(http.StatusOK, `{
			"data": [
				{ "id": 1, "abbreviation": "ATL", "city": "Atlanta", "conference": "East", "division": "Southeast", "full_name": "Atlanta Hawks", "name": "Hawks" },
				{ "id": 38, "abbreviation": "AND", "city": "Anderson", "conference": "    ", "division": "", "full_name": "Anderson Packers", "name": "Packers" }
			]
		}`), nil
	})

	client := NewClient(Config{HTTPClient: &http.Client{Transport: rt}})
	list, err := client.FetchTeams(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected historic team skipped, got %+v", list)
	}
	team := list[0]
	if team.Abbreviation != "ATL" || team.Conference != teams.East || team.Division != teams.Southeast {
		t.Fatalf("unexpected team %+v", team)
	}
	if team.Rating != 1000 || team.Wins != 0 || team.Losses != 0 {
		t.Fatalf("expected base rating and empty record, got %+v", team)
	}
}

func TestFetchTeamsPropagatesTransportError(t *testing.T) {
	boom := errors.New("dial failed")
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return nil, boom
	})

	client := NewClient(Config{HTTPClient: &http.Client{Transport: rt}})
	if _, err := client.FetchTeams(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestNewClientSetsDefaultHTTPClient(t *testing.T) {
	c := NewClient(Config{})
	httpClient, ok := c.httpClient.(*http.Client)
	if !ok {
		t.Fatalf("expected default http client")
	}
	if httpClient.Timeout == 0 {
		t.Fatalf("expected timeout to be set on default http client")
	}
	if c.maxPages != defaultMaxPages {
		t.Fatalf("expected default page cap, got %d", c.maxPages)
	}
}

type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
