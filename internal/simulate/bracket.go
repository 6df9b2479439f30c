package simulate

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/preston-bernstein/nba-elo-sim/internal/domain/bracket"
	"github.com/preston-bernstein/nba-elo-sim/internal/domain/teams"
	"github.com/preston-bernstein/nba-elo-sim/internal/logging"
)

const (
	// PostseasonTeams is how many teams per conference reach the play-in or better.
	PostseasonTeams  = 10
	directSeeds      = 6
	championshipName = "Finals"
)

// ErrShortConference is returned when a conference has too few teams for the bracket.
var ErrShortConference = errors.New("conference has fewer than 10 teams")

// Postseason seeds both conferences from current records, plays each conference bracket
// and then the championship series.
func (e *Engine) Postseason() (bracket.PostseasonResult, error) {
	for _, conf := range teams.Conferences {
		if n := len(e.league.Standings(conf)); n < PostseasonTeams {
			return bracket.PostseasonResult{}, fmt.Errorf("%s has %d teams: %w", conf, n, ErrShortConference)
		}
	}

	westChamp, west := e.Conference(teams.West)
	eastChamp, east := e.Conference(teams.East)
	champ, finals := e.Series(championshipName, westChamp, eastChamp)

	code := e.league.Team(champ).Abbreviation
	e.metrics.RecordChampion(code)
	logging.Info(e.logger, "league champion decided",
		slog.String(logging.FieldTeam, code),
		slog.String("finals", fmt.Sprintf("%d-%d", finals.WinsA, finals.WinsB)),
	)

	return bracket.PostseasonResult{
		West:         west,
		East:         east,
		Championship: finals,
		Champion:     code,
	}, nil
}

// Conference plays one conference from seeding through its final.
// The conference must hold at least ten teams; teams below tenth are not simulated.
func (e *Engine) Conference(conf teams.Conference) (int, bracket.ConferenceResult) {
	standings := e.league.Standings(conf)
	if len(standings) < PostseasonTeams {
		panic(fmt.Sprintf("simulate: %s has %d teams, need %d", conf, len(standings), PostseasonTeams))
	}
	seeds := standings[:PostseasonTeams]
	name := string(conf)

	seventh, eighth, playIn := e.PlayIn(name, seeds[directSeeds:])

	field := make([]int, 0, 8)
	field = append(field, seeds[:directSeeds]...)
	field = append(field, seventh, eighth)

	field, round1 := e.Round(field, []string{
		name + " round 1 (1 vs 8)",
		name + " round 1 (2 vs 7)",
		name + " round 1 (3 vs 6)",
		name + " round 1 (4 vs 5)",
	})
	field, semis := e.Round(field, []string{
		name + " semifinals (1/8 vs 4/5)",
		name + " semifinals (2/7 vs 3/6)",
	})
	field, final := e.Round(field, []string{name + " finals"})

	champ := field[0]
	logging.Info(e.logger, "conference champion decided",
		slog.String("conference", name),
		slog.String(logging.FieldTeam, e.league.Team(champ).Abbreviation),
	)

	return champ, bracket.ConferenceResult{
		Conference: name,
		PlayIn:     playIn,
		Round1:     [4]bracket.RoundResult(round1),
		Semifinals: [2]bracket.RoundResult(semis),
		Final:      final[0],
		Champion:   e.league.Team(champ).Abbreviation,
	}
}

// PlayIn resolves seeds 7 through 10 into the final two bracket slots with three single games.
// Game 1: 7 hosts 8, the winner is the 7-seed. Game 2: 9 hosts 10, the loser is out.
// Game 3: the loser of game 1 hosts the winner of game 2 for the 8-seed.
func (e *Engine) PlayIn(conf string, seeds []int) (seventh, eighth int, results [3]bracket.GameResult) {
	if len(seeds) != 4 {
		panic(fmt.Sprintf("simulate: play-in needs 4 teams, got %d", len(seeds)))
	}

	var drop, advance int
	seventh, drop, results[0] = e.single(conf+" play-in game 1", seeds[0], seeds[1])
	advance, _, results[1] = e.single(conf+" play-in game 2", seeds[2], seeds[3])
	eighth, _, results[2] = e.single(conf+" play-in game 3", drop, advance)
	return seventh, eighth, results
}

// Round pairs the field outside-in (first vs last, second vs second-last, ...) and plays one
// series per pair. Winners come back in pairing order, which keeps bracket adjacency for the
// next round.
func (e *Engine) Round(field []int, names []string) ([]int, []bracket.RoundResult) {
	if len(field) == 0 || len(field)%2 != 0 {
		panic(fmt.Sprintf("simulate: round needs an even number of teams, got %d", len(field)))
	}
	pairs := len(field) / 2
	if len(names) != pairs {
		panic(fmt.Sprintf("simulate: round has %d pairings but %d names", pairs, len(names)))
	}

	winners := make([]int, 0, pairs)
	results := make([]bracket.RoundResult, 0, pairs)
	for i := 0; i < pairs; i++ {
		w, r := e.Series(names[i], field[i], field[len(field)-1-i])
		winners = append(winners, w)
		results = append(results, r)
	}
	return winners, results
}

func (e *Engine) single(name string, home, away int) (winner, loser int, result bracket.GameResult) {
	ev := e.PlaySimulated(name, home, away, RatingOnly)
	result = bracket.GameResult{Name: name, Home: ev.Home, Away: ev.Away, HomeWin: ev.HomeWin}
	if ev.HomeWin {
		return home, away, result
	}
	return away, home, result
}
