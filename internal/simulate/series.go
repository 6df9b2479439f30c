package simulate

import (
	"fmt"
	"log/slog"

	"github.com/preston-bernstein/nba-elo-sim/internal/domain/bracket"
	"github.com/preston-bernstein/nba-elo-sim/internal/logging"
)

const (
	winsNeeded     = 4
	maxSeriesGames = 2*winsNeeded - 1
)

// series tracks the running score of one best-of-seven matchup.
type series struct {
	name  string
	a, b  int
	winsA int
	winsB int
}

// Series plays a best-of-seven between a and b and returns the winner's index with the result.
// The team with fewer losses hosts games 1, 2, 5 and 7; on equal losses a keeps home court.
func (e *Engine) Series(name string, a, b int) (int, bracket.RoundResult) {
	s := &series{name: name, a: a, b: b}
	advantageB := e.league.Team(b).Losses < e.league.Team(a).Losses

	for game := 1; game <= maxSeriesGames; game++ {
		if s.playGame(e, game, hostIsB(game, advantageB)) {
			break
		}
	}

	result := s.result(e)
	winner := s.winner()
	e.metrics.RecordSeries(result.Games())
	logging.Debug(e.logger, "series complete",
		slog.String(logging.FieldRound, name),
		slog.String(logging.FieldTeam, result.Winner()),
		slog.Int(logging.FieldGames, result.Games()),
	)
	return winner, result
}

// hostIsB reports whether b hosts the given game. Games 3, 4 and 6 flip home court.
func hostIsB(game int, advantageB bool) bool {
	flipped := game == 3 || game == 4 || game == 6
	return advantageB != flipped
}

// playGame simulates one game and reports whether the series is decided.
func (s *series) playGame(e *Engine, game int, hostB bool) bool {
	label := fmt.Sprintf("%s game %d", s.name, game)
	home, away := s.a, s.b
	if hostB {
		home, away = s.b, s.a
	}

	ev := e.PlaySimulated(label, home, away, RatingOnly)
	if ev.HomeWin != hostB {
		s.winsA++
	} else {
		s.winsB++
	}
	return s.winsA == winsNeeded || s.winsB == winsNeeded
}

func (s *series) winner() int {
	switch {
	case s.winsA == winsNeeded && s.winsB < winsNeeded:
		return s.a
	case s.winsB == winsNeeded && s.winsA < winsNeeded:
		return s.b
	default:
		panic(fmt.Sprintf("simulate: series %q ended %d-%d", s.name, s.winsA, s.winsB))
	}
}

func (s *series) result(e *Engine) bracket.RoundResult {
	return bracket.RoundResult{
		Name:  s.name,
		TeamA: e.league.Team(s.a).Abbreviation,
		TeamB: e.league.Team(s.b).Abbreviation,
		WinsA: s.winsA,
		WinsB: s.winsB,
	}
}
