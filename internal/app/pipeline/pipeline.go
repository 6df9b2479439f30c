// Package pipeline runs the end-to-end flow: ingest, replay history, simulate the season,
// then play and render postseasons until the user is done.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/preston-bernstein/nba-elo-sim/internal/archive"
	"github.com/preston-bernstein/nba-elo-sim/internal/domain/bracket"
	"github.com/preston-bernstein/nba-elo-sim/internal/domain/games"
	"github.com/preston-bernstein/nba-elo-sim/internal/domain/teams"
	"github.com/preston-bernstein/nba-elo-sim/internal/logging"
	"github.com/preston-bernstein/nba-elo-sim/internal/metrics"
	"github.com/preston-bernstein/nba-elo-sim/internal/prompt"
	"github.com/preston-bernstein/nba-elo-sim/internal/providers"
	"github.com/preston-bernstein/nba-elo-sim/internal/report"
	"github.com/preston-bernstein/nba-elo-sim/internal/simulate"
	"github.com/preston-bernstein/nba-elo-sim/internal/snapshots"
	"github.com/preston-bernstein/nba-elo-sim/internal/store"
	"github.com/preston-bernstein/nba-elo-sim/internal/timeutil"
)

// Config wires a Pipeline. Provider, Store and Decider are required.
type Config struct {
	Provider providers.DataProvider
	Store    snapshots.Store
	Decider  prompt.Decider
	// Archive is optional; postseason results are recorded when set.
	Archive archive.Archive
	Out     io.Writer
	Logger  *slog.Logger
	Metrics *metrics.Recorder
	Draw    simulate.Draw
	History []int
	Season  int
	// Filter presets the event filter. When nil the Decider is asked before each pass.
	Filter *simulate.Filter
}

// Pipeline drives one session.
type Pipeline struct {
	cfg Config
	out io.Writer
}

// New validates cfg and returns a Pipeline.
func New(cfg Config) (*Pipeline, error) {
	if cfg.Provider == nil {
		return nil, errors.New("pipeline: provider is required")
	}
	if cfg.Store == nil {
		return nil, errors.New("pipeline: snapshot store is required")
	}
	if cfg.Decider == nil {
		return nil, errors.New("pipeline: decider is required")
	}
	out := cfg.Out
	if out == nil {
		out = io.Discard
	}
	return &Pipeline{cfg: cfg, out: out}, nil
}

// Run executes the whole session. Cached artifacts are reused; the Decider chooses whether
// to refresh the current season, re-simulate it, and when to stop.
func (p *Pipeline) Run(ctx context.Context) error {
	processed, err := p.Processed(ctx)
	if err != nil {
		return err
	}
	current, err := p.SeasonGames(ctx, true)
	if err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		after, err := p.AfterSeason(ctx, processed, current)
		if err != nil {
			return err
		}
		if _, err := p.Postseason(ctx, after); err != nil {
			return err
		}
		done, err := p.cfg.Decider.Confirm(prompt.Done)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// Teams returns the cached team list, fetching and saving it on first use.
func (p *Pipeline) Teams(ctx context.Context) ([]teams.Team, error) {
	return loadOrFetch(ctx, p, snapshots.Teams, p.cfg.Store.LoadTeams, p.cfg.Store.SaveTeams, p.cfg.Provider.FetchTeams)
}

// History returns the cached games of earlier seasons, fetching them on first use.
func (p *Pipeline) History(ctx context.Context) ([]games.Game, error) {
	return loadOrFetch(ctx, p, snapshots.PrevGames, p.cfg.Store.LoadGames, p.cfg.Store.SaveGames, func(ctx context.Context) ([]games.Game, error) {
		return p.cfg.Provider.FetchGames(ctx, p.cfg.History)
	})
}

// Processed returns the league rated by every historical game. The result is cached.
func (p *Pipeline) Processed(ctx context.Context) (*store.League, error) {
	cached, err := p.cfg.Store.LoadTeams(ctx, snapshots.Processed)
	if err == nil {
		logging.Info(p.cfg.Logger, "loaded processed ratings", slog.String(logging.FieldFile, string(snapshots.Processed)))
		return store.NewLeague(cached), nil
	}
	if !errors.Is(err, snapshots.ErrNotFound) {
		return nil, fmt.Errorf("loading %s: %w", snapshots.Processed, err)
	}

	list, err := p.Teams(ctx)
	if err != nil {
		return nil, err
	}
	history, err := p.History(ctx)
	if err != nil {
		return nil, err
	}

	league := store.NewLeague(list)
	engine, err := p.engine(league)
	if err != nil {
		return nil, err
	}
	if _, err := engine.ProcessHistory(history); err != nil {
		return nil, fmt.Errorf("processing history: %w", err)
	}
	if err := p.cfg.Store.SaveTeams(ctx, snapshots.Processed, league.Teams()); err != nil {
		return nil, fmt.Errorf("saving %s: %w", snapshots.Processed, err)
	}
	return league, nil
}

// SeasonGames returns the current season's games. A cached list is reused unless ask is set
// and the Decider wants a fresh download.
func (p *Pipeline) SeasonGames(ctx context.Context, ask bool) ([]games.Game, error) {
	cached, err := p.cfg.Store.LoadGames(ctx, snapshots.Games)
	switch {
	case err == nil:
		again := false
		if ask {
			if again, err = p.cfg.Decider.Confirm(prompt.RedownloadSeason); err != nil {
				return nil, err
			}
		}
		if !again {
			return cached, nil
		}
	case !errors.Is(err, snapshots.ErrNotFound):
		return nil, fmt.Errorf("loading %s: %w", snapshots.Games, err)
	}
	return p.RefreshSeason(ctx)
}

// RefreshSeason downloads the current season and replaces the cached list.
func (p *Pipeline) RefreshSeason(ctx context.Context) ([]games.Game, error) {
	list, err := p.cfg.Provider.FetchGames(ctx, []int{p.cfg.Season})
	if err != nil {
		return nil, fmt.Errorf("fetching season %d: %w", p.cfg.Season, err)
	}
	if err := p.cfg.Store.SaveGames(ctx, snapshots.Games, list); err != nil {
		return nil, fmt.Errorf("saving %s: %w", snapshots.Games, err)
	}
	logging.Info(p.cfg.Logger, "downloaded current season",
		slog.Int(logging.FieldSeason, p.cfg.Season),
		slog.Int(logging.FieldGames, len(list)),
	)
	return list, nil
}

// AfterSeason returns the league at the end of the regular season. A cached result is
// reused unless the Decider asks for a new simulation.
func (p *Pipeline) AfterSeason(ctx context.Context, processed *store.League, current []games.Game) (*store.League, error) {
	cached, err := p.cfg.Store.LoadTeams(ctx, snapshots.AfterSeason)
	switch {
	case err == nil:
		again, err := p.cfg.Decider.Confirm(prompt.ResimulateSeason)
		if err != nil {
			return nil, err
		}
		if !again {
			return store.NewLeague(cached), nil
		}
	case !errors.Is(err, snapshots.ErrNotFound):
		return nil, fmt.Errorf("loading %s: %w", snapshots.AfterSeason, err)
	}

	league, err := p.SimulateSeason(processed, current)
	if err != nil {
		return nil, err
	}
	if err := p.cfg.Store.SaveTeams(ctx, snapshots.AfterSeason, league.Teams()); err != nil {
		return nil, fmt.Errorf("saving %s: %w", snapshots.AfterSeason, err)
	}
	return league, nil
}

// SimulateSeason plays the current season on a copy of processed with cleared records.
func (p *Pipeline) SimulateSeason(processed *store.League, current []games.Game) (*store.League, error) {
	league := processed.Clone()
	league.ResetRecords()
	if err := report.RatingTable(p.out, league, fmt.Sprintf("Ratings before the %s season", timeutil.SeasonLabel(p.cfg.Season))); err != nil {
		return nil, err
	}

	engine, err := p.engine(league)
	if err != nil {
		return nil, err
	}
	if _, err := engine.RunSeason(current); err != nil {
		return nil, fmt.Errorf("simulating season %d: %w", p.cfg.Season, err)
	}
	return league, nil
}

// Postseason plays a postseason on a copy of after, renders standings and the bracket,
// and archives the result when an archive is configured.
func (p *Pipeline) Postseason(ctx context.Context, after *store.League) (bracket.PostseasonResult, error) {
	league := after.Clone()
	if err := report.Standings(p.out, league); err != nil {
		return bracket.PostseasonResult{}, err
	}

	engine, err := p.engine(league)
	if err != nil {
		return bracket.PostseasonResult{}, err
	}
	result, err := engine.Postseason()
	if err != nil {
		return bracket.PostseasonResult{}, err
	}
	if err := report.Bracket(p.out, result); err != nil {
		return bracket.PostseasonResult{}, err
	}

	if p.cfg.Archive != nil {
		run, err := p.cfg.Archive.Record(ctx, p.cfg.Season, result)
		if err != nil {
			logging.Warn(p.cfg.Logger, "postseason archive failed", "error", err)
		} else {
			logging.Info(p.cfg.Logger, "postseason archived", slog.String("run_id", run.ID))
		}
	}
	return result, nil
}

func (p *Pipeline) engine(league *store.League) (*simulate.Engine, error) {
	filter, err := p.filter(league)
	if err != nil {
		return nil, err
	}
	return simulate.New(league, simulate.Config{
		Draw:    p.cfg.Draw,
		Filter:  filter,
		OnEvent: report.Events(p.out),
		Logger:  p.cfg.Logger,
		Metrics: p.cfg.Metrics,
	}), nil
}

func (p *Pipeline) filter(league *store.League) (simulate.Filter, error) {
	if p.cfg.Filter != nil {
		return *p.cfg.Filter, nil
	}
	return p.cfg.Decider.TeamFilter(league.Codes())
}

func loadOrFetch[T any](
	ctx context.Context,
	p *Pipeline,
	a snapshots.Artifact,
	load func(context.Context, snapshots.Artifact) ([]T, error),
	save func(context.Context, snapshots.Artifact, []T) error,
	fetch func(context.Context) ([]T, error),
) ([]T, error) {
	list, err := load(ctx, a)
	if err == nil {
		logging.Info(p.cfg.Logger, "loaded cached artifact", slog.String(logging.FieldFile, string(a)), slog.Int(logging.FieldCount, len(list)))
		return list, nil
	}
	if !errors.Is(err, snapshots.ErrNotFound) {
		return nil, fmt.Errorf("loading %s: %w", a, err)
	}

	list, err = fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", a, err)
	}
	if err := save(ctx, a, list); err != nil {
		return nil, fmt.Errorf("saving %s: %w", a, err)
	}
	logging.Info(p.cfg.Logger, "fetched artifact", slog.String(logging.FieldFile, string(a)), slog.Int(logging.FieldCount, len(list)))
	return list, nil
}
