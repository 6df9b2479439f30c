package simulate

import (
	"math"
	"testing"

	"github.com/preston-bernstein/nba-elo-sim/internal/domain/games"
	"github.com/preston-bernstein/nba-elo-sim/internal/domain/teams"
	"github.com/preston-bernstein/nba-elo-sim/internal/metrics"
	"github.com/preston-bernstein/nba-elo-sim/internal/store"
	"github.com/preston-bernstein/nba-elo-sim/internal/testutil"
)

func pairLeague(homeRating, awayRating float64) *store.League {
	home := teams.New("HOM", "Home Team", teams.West, teams.Pacific)
	away := teams.New("AWY", "Away Team", teams.East, teams.Atlantic)
	home.Rating = homeRating
	away.Rating = awayRating
	return store.NewLeague([]teams.Team{home, away})
}

func closeTo(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestPlayRecordedUpdatesRatingsAndRecords(t *testing.T) {
	league := pairLeague(1500, 1400)
	e := New(league, Config{})

	ev := e.PlayRecorded("2024-01-02", 0, 1, games.Score{Home: 110, Away: 100}, SeasonTally)

	if !ev.HomeWin || !ev.Recorded || ev.Score.Home != 110 {
		t.Fatalf("unexpected event %+v", ev)
	}
	if !closeTo(ev.Expected, 0.640065) {
		t.Fatalf("expected ~0.640065, got %f", ev.Expected)
	}
	if !closeTo(league.Team(0).Rating, 1511.517920) || !closeTo(league.Team(1).Rating, 1388.482080) {
		t.Fatalf("unexpected ratings %f/%f", league.Team(0).Rating, league.Team(1).Rating)
	}
	if !closeTo(ev.HomeBefore, 1500) || !closeTo(ev.HomeAfter, league.Team(0).Rating) || !closeTo(ev.AwayBefore, 1400) {
		t.Fatalf("unexpected before/after in event %+v", ev)
	}
	if league.Team(0).Record() != "1-0" || league.Team(1).Record() != "0-1" {
		t.Fatalf("unexpected records %s/%s", league.Team(0).Record(), league.Team(1).Record())
	}
}

func TestRatingOnlyLeavesRecords(t *testing.T) {
	league := pairLeague(1000, 1000)
	e := New(league, Config{})

	ev := e.PlayRecorded("2019-03-01", 0, 1, games.Score{Home: 90, Away: 95}, RatingOnly)

	if ev.HomeWin {
		t.Fatalf("expected away win, got %+v", ev)
	}
	if !closeTo(league.Team(0).Rating, 984) || !closeTo(league.Team(1).Rating, 1016) {
		t.Fatalf("unexpected ratings %f/%f", league.Team(0).Rating, league.Team(1).Rating)
	}
	if league.Team(0).Wins+league.Team(0).Losses+league.Team(1).Wins+league.Team(1).Losses != 0 {
		t.Fatalf("expected records untouched")
	}
}

func TestPlaySimulatedFollowsDraw(t *testing.T) {
	cases := []struct {
		name    string
		draw    float64
		homeWin bool
	}{
		{"low draw favors home", testutil.HomeWinDraw, true},
		{"high draw favors away", testutil.AwayWinDraw, false},
		{"draw just under expected", 0.64, true},
		{"draw above expected goes away", 0.65, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			league := pairLeague(1500, 1400)
			e := New(league, Config{Draw: testutil.Draws(tc.draw)})

			ev := e.PlaySimulated("sim", 0, 1, SeasonTally)
			if ev.HomeWin != tc.homeWin {
				t.Fatalf("expected homeWin=%v, got %+v", tc.homeWin, ev)
			}
			if ev.Recorded {
				t.Fatalf("simulated game flagged as recorded")
			}
			if !closeTo(league.Team(0).Rating+league.Team(1).Rating, 2900) {
				t.Fatalf("expected rating sum conserved, got %f", league.Team(0).Rating+league.Team(1).Rating)
			}
		})
	}
}

func TestEngineFiltersEvents(t *testing.T) {
	league := store.NewLeague(testutil.SampleTeams(2))
	var seen []games.Event
	e := New(league, Config{
		Draw:    testutil.Draws(testutil.HomeWinDraw),
		Filter:  ParseFilter(" w01 "),
		OnEvent: func(ev games.Event) { seen = append(seen, ev) },
	})

	e.PlaySimulated("a", 0, 1, SeasonTally) // W01 vs W02
	e.PlaySimulated("b", 2, 3, SeasonTally) // E01 vs E02
	e.PlaySimulated("c", 2, 0, SeasonTally) // E01 vs W01

	if len(seen) != 2 || seen[0].Label != "a" || seen[1].Label != "c" {
		t.Fatalf("expected only W01 events, got %+v", seen)
	}
}

func TestEngineRecordsGameMetrics(t *testing.T) {
	rec := metrics.NewRecorder()
	e := New(pairLeague(1000, 1000), Config{Draw: testutil.Draws(testutil.HomeWinDraw), Metrics: rec})

	e.PlayRecorded("r", 0, 1, games.Score{Home: 1, Away: 0}, RatingOnly)
	e.PlaySimulated("s", 0, 1, RatingOnly)
	e.PlaySimulated("s", 1, 0, RatingOnly)

	sim := rec.Simulation()
	if sim.RecordedGames != 1 || sim.SimulatedGames != 2 {
		t.Fatalf("unexpected simulation counters %+v", sim)
	}
}

func TestNewDefaultsToRandomDraw(t *testing.T) {
	e := New(pairLeague(1000, 1000), Config{})
	if e.draw == nil {
		t.Fatal("expected default draw")
	}
	for i := 0; i < 100; i++ {
		if v := e.draw(); v < 0 || v >= 1 {
			t.Fatalf("draw out of range: %f", v)
		}
	}
	if e.League().Len() != 2 {
		t.Fatalf("expected league exposed")
	}
}
