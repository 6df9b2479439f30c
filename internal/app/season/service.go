// Package season serves the simulated state of the current season to the HTTP layer.
package season

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/preston-bernstein/nba-elo-sim/internal/archive"
	"github.com/preston-bernstein/nba-elo-sim/internal/domain/games"
	"github.com/preston-bernstein/nba-elo-sim/internal/domain/teams"
	"github.com/preston-bernstein/nba-elo-sim/internal/logging"
	"github.com/preston-bernstein/nba-elo-sim/internal/metrics"
	"github.com/preston-bernstein/nba-elo-sim/internal/simulate"
	"github.com/preston-bernstein/nba-elo-sim/internal/store"
)

// ErrNotReady is returned until a season has been simulated.
var ErrNotReady = errors.New("season not simulated yet")

// Config wires a Service.
type Config struct {
	Season  int
	Archive archive.Archive
	Draw    simulate.Draw
	Logger  *slog.Logger
	Metrics *metrics.Recorder
}

// Service holds the processed ratings and the league as it stands after the regular season.
// The processed league is never mutated; every refresh and postseason works on a copy.
type Service struct {
	processed *store.League
	season    int
	archive   archive.Archive
	draw      simulate.Draw
	logger    *slog.Logger
	metrics   *metrics.Recorder

	mu      sync.RWMutex
	after   *store.League
	games   []games.Game
	summary simulate.Summary
	// postseasons draw from the shared source one at a time
	playMu sync.Mutex
}

// NewService constructs a Service over the processed league.
func NewService(processed *store.League, cfg Config) *Service {
	arc := cfg.Archive
	if arc == nil {
		arc = archive.NewMemory()
	}
	return &Service{
		processed: processed.Clone(),
		season:    cfg.Season,
		archive:   arc,
		draw:      cfg.Draw,
		logger:    cfg.Logger,
		metrics:   cfg.Metrics,
	}
}

// ReplaceGames re-simulates the season from the processed ratings with a new game list
// and swaps in the result. The current state is kept when the list is invalid.
func (s *Service) ReplaceGames(ctx context.Context, list []games.Game) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	league := s.processed.Clone()
	league.ResetRecords()
	engine := simulate.New(league, simulate.Config{
		Draw:    s.draw,
		Logger:  s.logger,
		Metrics: s.metrics,
	})

	s.playMu.Lock()
	summary, err := engine.RunSeason(list)
	s.playMu.Unlock()
	if err != nil {
		return fmt.Errorf("simulating season %d: %w", s.season, err)
	}

	s.mu.Lock()
	s.after = league
	s.games = append([]games.Game(nil), list...)
	s.summary = summary
	s.mu.Unlock()
	return nil
}

// Ready reports whether a simulated season is available.
func (s *Service) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.after != nil
}

// Summary returns what the last refresh played.
func (s *Service) Summary() simulate.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summary
}

// Teams returns every team ordered by descending rating.
func (s *Service) Teams() ([]teams.Team, error) {
	league, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return pick(league, league.ByRating()), nil
}

// TeamByCode returns a single team by its code.
func (s *Service) TeamByCode(code string) (teams.Team, bool, error) {
	league, err := s.snapshot()
	if err != nil {
		return teams.Team{}, false, err
	}
	i, ok := league.Lookup(code)
	if !ok {
		return teams.Team{}, false, nil
	}
	return *league.Team(i), true, nil
}

// Standings returns each conference's teams in seed order.
func (s *Service) Standings() (map[teams.Conference][]teams.Team, error) {
	league, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	out := make(map[teams.Conference][]teams.Team, len(teams.Conferences))
	for _, conf := range teams.Conferences {
		out[conf] = pick(league, league.Standings(conf))
	}
	return out, nil
}

// SimulatePostseason plays a postseason on a copy of the after-season league and archives it.
func (s *Service) SimulatePostseason(ctx context.Context) (archive.Run, error) {
	league, err := s.snapshot()
	if err != nil {
		return archive.Run{}, err
	}
	engine := simulate.New(league, simulate.Config{
		Draw:    s.draw,
		Logger:  s.logger,
		Metrics: s.metrics,
	})

	s.playMu.Lock()
	result, err := engine.Postseason()
	s.playMu.Unlock()
	if err != nil {
		return archive.Run{}, err
	}

	run, err := s.archive.Record(ctx, s.season, result)
	if err != nil {
		return archive.Run{}, fmt.Errorf("archiving postseason: %w", err)
	}
	logging.Info(s.logger, "postseason simulated",
		slog.String("run_id", run.ID),
		slog.String(logging.FieldTeam, run.Champion),
	)
	return run, nil
}

// LatestPostseason returns the most recently archived run.
func (s *Service) LatestPostseason(ctx context.Context) (archive.Run, error) {
	return s.archive.Latest(ctx)
}

// snapshot returns a private copy of the after-season league.
func (s *Service) snapshot() (*store.League, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.after == nil {
		return nil, ErrNotReady
	}
	return s.after.Clone(), nil
}

func pick(league *store.League, idx []int) []teams.Team {
	out := make([]teams.Team, len(idx))
	for i, j := range idx {
		out[i] = *league.Team(j)
	}
	return out
}
