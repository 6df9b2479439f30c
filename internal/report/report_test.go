package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/preston-bernstein/nba-elo-sim/internal/domain/bracket"
	"github.com/preston-bernstein/nba-elo-sim/internal/domain/games"
	"github.com/preston-bernstein/nba-elo-sim/internal/store"
	"github.com/preston-bernstein/nba-elo-sim/internal/testutil"
)

func TestEventLineRecorded(t *testing.T) {
	ev := games.Event{
		Label:      "2024-01-02",
		Home:       "BOS",
		Away:       "LAL",
		HomeWin:    true,
		Recorded:   true,
		Score:      games.Score{Home: 110, Away: 102},
		Expected:   0.640065,
		HomeBefore: 1500,
		HomeAfter:  1511.51792,
		AwayBefore: 1400,
		AwayAfter:  1388.48208,
		Change:     11.51792,
	}

	want := "2024-01-02                         : BOS 110 - 102 LAL | exp: 64% | 1500.00 -> 1511.52 (+11.52), 1400.00 -> 1388.48 (-11.52)"
	if got := EventLine(ev); got != want {
		t.Fatalf("unexpected line\n got: %q\nwant: %q", got, want)
	}
}

func TestEventLineSimulated(t *testing.T) {
	ev := games.Event{
		Label:      "West round 1 (1 vs 8) game 3",
		Home:       "DEN",
		Away:       "OKC",
		HomeWin:    false,
		Expected:   0.5,
		HomeBefore: 1000,
		HomeAfter:  984,
		AwayBefore: 1000,
		AwayAfter:  1016,
		Change:     -16,
	}

	line := EventLine(ev)
	if !strings.Contains(line, "DEN L - W OKC") {
		t.Fatalf("expected W/L marks, got %q", line)
	}
	if !strings.Contains(line, "(-16.00)") || !strings.Contains(line, "(+16.00)") {
		t.Fatalf("expected signed changes, got %q", line)
	}
	if !strings.Contains(line, "exp: 50%") {
		t.Fatalf("expected percentage, got %q", line)
	}
}

func TestEventsSinkWritesLines(t *testing.T) {
	var buf bytes.Buffer
	sink := Events(&buf)
	sink(games.Event{Label: "a", Home: "X", Away: "Y"})
	sink(games.Event{Label: "b", Home: "X", Away: "Y"})
	if got := strings.Count(buf.String(), "\n"); got != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", got, buf.String())
	}
}

func TestRatingTableSplitsColumns(t *testing.T) {
	league := store.NewLeague(testutil.SampleTeams(16))
	for i := 0; i < league.Len(); i++ {
		league.Team(i).Rating = float64(2000 - i)
	}

	var buf bytes.Buffer
	if err := RatingTable(&buf, league, "Teams by rating"); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	// title, blank, 15 rows
	if len(lines) != 17 {
		t.Fatalf("expected 17 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[2], " 1. West Team 1") || !strings.Contains(lines[2], "| 16. ") {
		t.Fatalf("unexpected first row %q", lines[2])
	}
	if strings.Contains(out, "31. ") {
		t.Fatalf("expected table capped at 30 teams")
	}
}

func TestStandingsSideBySide(t *testing.T) {
	league := store.NewLeague(testutil.SeededTeams(3))

	var buf bytes.Buffer
	if err := Standings(&buf, league); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "West Conference") || !strings.Contains(out, "| East Conference") {
		t.Fatalf("missing headers:\n%s", out)
	}
	if !strings.Contains(out, " 1. West Team 1             82-0  elo: 1000.00 |  1. East Team 1             82-0  elo: 1000.00") {
		t.Fatalf("unexpected first row:\n%s", out)
	}
}

func TestBracketRendersEverySeries(t *testing.T) {
	conf := func(prefix string) bracket.ConferenceResult {
		c := bracket.ConferenceResult{Conference: prefix + "est", Champion: prefix + "01"}
		c.PlayIn = [3]bracket.GameResult{
			{Name: "g1", Home: prefix + "07", Away: prefix + "08", HomeWin: true},
			{Name: "g2", Home: prefix + "09", Away: prefix + "10", HomeWin: false},
			{Name: "g3", Home: prefix + "08", Away: prefix + "10", HomeWin: true},
		}
		pairs := [][2]string{{"01", "08"}, {"02", "07"}, {"03", "06"}, {"04", "05"}}
		for i, p := range pairs {
			c.Round1[i] = bracket.RoundResult{TeamA: prefix + p[0], TeamB: prefix + p[1], WinsA: 4, WinsB: i}
		}
		c.Semifinals[0] = bracket.RoundResult{TeamA: prefix + "01", TeamB: prefix + "04", WinsA: 4, WinsB: 2}
		c.Semifinals[1] = bracket.RoundResult{TeamA: prefix + "02", TeamB: prefix + "03", WinsA: 3, WinsB: 4}
		c.Final = bracket.RoundResult{TeamA: prefix + "01", TeamB: prefix + "03", WinsA: 4, WinsB: 1}
		return c
	}
	result := bracket.PostseasonResult{
		West:         conf("W"),
		East:         conf("E"),
		Championship: bracket.RoundResult{Name: "Finals", TeamA: "W01", TeamB: "E01", WinsA: 2, WinsB: 4},
		Champion:     "E01",
	}

	var buf bytes.Buffer
	if err := Bracket(&buf, result); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"W01 4-0 W08", "W04 4-3 W05", "W02 3-4 W03", "W01 4-1 W03",
		"E02 4-1 E07", "Finals: W01 2-4 E01", "Champion: E01",
		"play-in: W07 W - L W08, W09 L - W W10, W08 W - L W10",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in bracket:\n%s", want, out)
		}
	}
	// 1/8 and 4/5 sit above 2/7 and 3/6 so adjacent lines feed the same semifinal.
	if strings.Index(out, "W04 4-3 W05") > strings.Index(out, "W02 4-1 W07") {
		t.Fatalf("expected 4/5 drawn before 2/7:\n%s", out)
	}
}

func TestSeriesCellPadsMissing(t *testing.T) {
	if got := seriesCell(nil, 0); len(got) != 11 {
		t.Fatalf("expected 11 char blank cell, got %q", got)
	}
}
