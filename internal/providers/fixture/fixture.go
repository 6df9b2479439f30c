package fixture

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/preston-bernstein/nba-elo-sim/internal/domain/games"
	"github.com/preston-bernstein/nba-elo-sim/internal/domain/teams"
)

const (
	providerName = "fixture"
	// SeasonGames is the length of a regular season per team.
	SeasonGames = 82
	daysPerRound = 2
)

type franchise struct {
	abbr     string
	fullName string
	conf     teams.Conference
	div      teams.Division
	// strength skews generated scores so standings spread out.
	strength int
}

var league = []franchise{
	{"BOS", "Boston Celtics", teams.East, teams.Atlantic, 14},
	{"BKN", "Brooklyn Nets", teams.East, teams.Atlantic, 3},
	{"NYK", "New York Knicks", teams.East, teams.Atlantic, 10},
	{"PHI", "Philadelphia 76ers", teams.East, teams.Atlantic, 9},
	{"TOR", "Toronto Raptors", teams.East, teams.Atlantic, 2},
	{"CHI", "Chicago Bulls", teams.East, teams.Central, 6},
	{"CLE", "Cleveland Cavaliers", teams.East, teams.Central, 10},
	{"DET", "Detroit Pistons", teams.East, teams.Central, 0},
	{"IND", "Indiana Pacers", teams.East, teams.Central, 8},
	{"MIL", "Milwaukee Bucks", teams.East, teams.Central, 11},
	{"ATL", "Atlanta Hawks", teams.East, teams.Southeast, 6},
	{"CHA", "Charlotte Hornets", teams.East, teams.Southeast, 1},
	{"MIA", "Miami Heat", teams.East, teams.Southeast, 8},
	{"ORL", "Orlando Magic", teams.East, teams.Southeast, 9},
	{"WAS", "Washington Wizards", teams.East, teams.Southeast, 0},
	{"DEN", "Denver Nuggets", teams.West, teams.Northwest, 13},
	{"MIN", "Minnesota Timberwolves", teams.West, teams.Northwest, 13},
	{"OKC", "Oklahoma City Thunder", teams.West, teams.Northwest, 14},
	{"POR", "Portland Trail Blazers", teams.West, teams.Northwest, 1},
	{"UTA", "Utah Jazz", teams.West, teams.Northwest, 3},
	{"GSW", "Golden State Warriors", teams.West, teams.Pacific, 8},
	{"LAC", "LA Clippers", teams.West, teams.Pacific, 10},
	{"LAL", "Los Angeles Lakers", teams.West, teams.Pacific, 8},
	{"PHX", "Phoenix Suns", teams.West, teams.Pacific, 9},
	{"SAC", "Sacramento Kings", teams.West, teams.Pacific, 7},
	{"DAL", "Dallas Mavericks", teams.West, teams.Southwest, 11},
	{"HOU", "Houston Rockets", teams.West, teams.Southwest, 6},
	{"MEM", "Memphis Grizzlies", teams.West, teams.Southwest, 3},
	{"NOP", "New Orleans Pelicans", teams.West, teams.Southwest, 10},
	{"SAS", "San Antonio Spurs", teams.West, teams.Southwest, 2},
}

// Provider returns a full synthetic league useful for offline runs and tests.
// Games dated before now carry deterministic final scores; later games are scheduled.
type Provider struct {
	now func() time.Time
}

// New creates a fixture provider with a time source.
func New() *Provider {
	return &Provider{
		now: time.Now,
	}
}

// NewAt creates a fixture provider whose clock is frozen at the given instant.
func NewAt(now time.Time) *Provider {
	return &Provider{
		now: func() time.Time { return now },
	}
}

// FetchTeams returns all thirty franchises at the base rating.
func (p *Provider) FetchTeams(ctx context.Context) ([]teams.Team, error) {
	_ = ctx
	out := make([]teams.Team, 0, len(league))
	for _, f := range league {
		team := teams.New(f.abbr, f.fullName, f.conf, f.div)
		idx := strings.LastIndex(f.fullName, " ")
		team.City = f.fullName[:idx]
		team.Name = f.fullName[idx+1:]
		out = append(out, team)
	}
	return out, nil
}

// FetchGames returns an 82-game schedule per team for every requested season.
func (p *Provider) FetchGames(ctx context.Context, seasons []int) ([]games.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	now := p.now().UTC()
	out := make([]games.Game, 0, len(seasons)*len(league)*SeasonGames/2)
	for _, season := range seasons {
		out = append(out, p.season(season, now)...)
	}
	return out, nil
}

// season builds a round-robin schedule with the circle method: each round pairs
// every team once, so 82 rounds give each team 82 games.
func (p *Provider) season(season int, now time.Time) []games.Game {
	n := len(league)
	cycle := n - 1
	opening := time.Date(season, time.October, 24, 0, 0, 0, 0, time.UTC)
	out := make([]games.Game, 0, n*SeasonGames/2)

	for round := 0; round < SeasonGames; round++ {
		date := opening.AddDate(0, 0, round*daysPerRound)
		r := round % cycle
		// The fixed slot plus a rotation of the remaining teams.
		slots := make([]int, n)
		slots[0] = 0
		for i := 1; i < n; i++ {
			slots[i] = 1 + (i-1+r)%cycle
		}
		for i := 0; i < n/2; i++ {
			home, away := hostOrder(slots[i], slots[n-1-i], round/cycle)
			seq := len(out) + 1
			out = append(out, p.game(season, seq, date, home, away, date.Before(now)))
		}
	}
	return out
}

// hostOrder alternates hosting between a pair from one cycle of rounds to the next.
func hostOrder(x, y, cycle int) (int, int) {
	lo, hi := min(x, y), max(x, y)
	if (x+y+cycle)%2 == 0 {
		return lo, hi
	}
	return hi, lo
}

func (p *Provider) game(season, seq int, date time.Time, home, away int, played bool) games.Game {
	h, a := league[home], league[away]
	g := games.Game{
		ID:        fmt.Sprintf("%s-%d-%04d", providerName, season, seq),
		Provider:  providerName,
		HomeTeam:  games.TeamRef{ID: strings.ToLower(h.abbr), Abbreviation: h.abbr, FullName: h.fullName},
		AwayTeam:  games.TeamRef{ID: strings.ToLower(a.abbr), Abbreviation: a.abbr, FullName: a.fullName},
		StartTime: date.Format("2006-01-02"),
		Status:    games.StatusScheduled,
		Meta:      games.GameMeta{Season: season, UpstreamGameID: season*10000 + seq},
	}
	if played {
		g.Status = games.StatusFinal
		g.Score = score(seq, h.strength, a.strength)
	}
	return g
}

// score derives a deterministic, never-tied result from the game sequence and team strengths.
func score(seq, homeStrength, awayStrength int) games.Score {
	home := 100 + homeStrength + (seq*7)%17
	away := 100 + awayStrength + (seq*11)%17
	if home == away {
		home++
	}
	return games.Score{Home: home, Away: away}
}
