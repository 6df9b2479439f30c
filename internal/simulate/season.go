package simulate

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/preston-bernstein/nba-elo-sim/internal/domain/games"
	"github.com/preston-bernstein/nba-elo-sim/internal/logging"
	"github.com/preston-bernstein/nba-elo-sim/internal/timeutil"
)

var (
	// ErrUnknownTeam is returned when a game references a team the league does not hold.
	ErrUnknownTeam = errors.New("unknown team")
	// ErrTiedScore is returned for a final game with a level score; ties cannot be ranked.
	ErrTiedScore = errors.New("tied recorded score")
)

// Summary counts what a pass over a game list did.
type Summary struct {
	Games     int
	Recorded  int
	Simulated int
	Skipped   int
}

type resolved struct {
	game games.Game
	home int
	away int
}

// ProcessHistory replays final games from earlier seasons with their recorded outcomes.
// Ratings move; season records do not. Unfinished games are skipped and tied finals are rejected.
func (e *Engine) ProcessHistory(list []games.Game) (Summary, error) {
	plan, err := e.resolve(list)
	if err != nil {
		return Summary{}, err
	}

	var sum Summary
	for _, r := range plan {
		if !r.game.Played() {
			sum.Skipped++
			continue
		}
		e.PlayRecorded(gameLabel(r.game), r.home, r.away, r.game.Score, RatingOnly)
		sum.Games++
		sum.Recorded++
	}
	logging.Info(e.logger, "processed historical games",
		slog.Int(logging.FieldGames, sum.Games),
		slog.Int("skipped", sum.Skipped),
	)
	return sum, nil
}

// RunSeason plays the current regular season in chronological order. Final games keep their
// recorded outcome, the rest are simulated, and every game credits season records.
// Postseason games in the list are ignored. The list is validated before any rating moves.
func (e *Engine) RunSeason(list []games.Game) (Summary, error) {
	plan, err := e.resolve(list)
	if err != nil {
		return Summary{}, err
	}

	var sum Summary
	for _, r := range plan {
		if r.game.Meta.Postseason {
			sum.Skipped++
			continue
		}
		label := gameLabel(r.game)
		if r.game.Played() {
			e.PlayRecorded(label, r.home, r.away, r.game.Score, SeasonTally)
			sum.Recorded++
		} else {
			e.PlaySimulated(label, r.home, r.away, SeasonTally)
			sum.Simulated++
		}
		sum.Games++
	}
	logging.Info(e.logger, "simulated regular season",
		slog.Int(logging.FieldGames, sum.Games),
		slog.Int("recorded", sum.Recorded),
		slog.Int("simulated", sum.Simulated),
	)
	return sum, nil
}

func (e *Engine) resolve(list []games.Game) ([]resolved, error) {
	ordered := make([]games.Game, len(list))
	copy(ordered, list)
	games.SortChronological(ordered)

	plan := make([]resolved, 0, len(ordered))
	for _, g := range ordered {
		home, ok := e.league.Lookup(g.HomeTeam.Abbreviation)
		if !ok {
			return nil, fmt.Errorf("game %s: home %q: %w", g.ID, g.HomeTeam.Abbreviation, ErrUnknownTeam)
		}
		away, ok := e.league.Lookup(g.AwayTeam.Abbreviation)
		if !ok {
			return nil, fmt.Errorf("game %s: away %q: %w", g.ID, g.AwayTeam.Abbreviation, ErrUnknownTeam)
		}
		if g.Played() && g.Tied() {
			return nil, fmt.Errorf("game %s (%s): %d-%d: %w", g.ID, g.StartTime, g.Score.Home, g.Score.Away, ErrTiedScore)
		}
		plan = append(plan, resolved{game: g, home: home, away: away})
	}
	return plan, nil
}

func gameLabel(g games.Game) string {
	if t, err := g.Time(); err == nil {
		return timeutil.FormatDate(t.UTC())
	}
	return g.StartTime
}
