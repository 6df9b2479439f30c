package games

import (
	"sort"
	"time"

	"github.com/preston-bernstein/nba-elo-sim/internal/timeutil"
)

// GameStatus mirrors the upstream lifecycle states.
type GameStatus string

const (
	StatusScheduled  GameStatus = "SCHEDULED"
	StatusInProgress GameStatus = "IN_PROGRESS"
	StatusFinal      GameStatus = "FINAL"
	StatusPostponed  GameStatus = "POSTPONED"
	StatusCanceled   GameStatus = "CANCELED"
)

// Score captures home and away points.
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// TeamRef identifies a participant without carrying its rating or record.
type TeamRef struct {
	ID           string `json:"id"`
	Abbreviation string `json:"abbreviation"`
	FullName     string `json:"fullName,omitempty"`
}

// GameMeta stores provider metadata for a game.
type GameMeta struct {
	Season         int  `json:"season"`
	UpstreamGameID int  `json:"upstreamGameId"`
	Postseason     bool `json:"postseason,omitempty"`
}

// Game is a regular-season game as handed over by ingestion.
// Final games carry real scores; everything else is simulated when consumed.
type Game struct {
	ID        string     `json:"id"`
	Provider  string     `json:"provider"`
	HomeTeam  TeamRef    `json:"homeTeam"`
	AwayTeam  TeamRef    `json:"awayTeam"`
	StartTime string     `json:"startTime"`
	Status    GameStatus `json:"status"`
	Score     Score      `json:"score"`
	Meta      GameMeta   `json:"meta"`
}

// Played reports whether the game has a recorded final score.
func (g Game) Played() bool {
	return g.Status == StatusFinal
}

// Tied reports whether the recorded score is level.
func (g Game) Tied() bool {
	return g.Score.Home == g.Score.Away
}

// HomeWon reports the recorded outcome.
func (g Game) HomeWon() bool {
	return g.Score.Home > g.Score.Away
}

// Time parses StartTime. Both RFC3339 timestamps and bare YYYY-MM-DD dates are accepted.
func (g Game) Time() (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, g.StartTime); err == nil {
		return t, nil
	}
	return timeutil.ParseDate(g.StartTime)
}

// SortChronological orders games by start time, keeping input order for equal or unparsable times.
func SortChronological(list []Game) {
	sort.SliceStable(list, func(i, j int) bool {
		ti, errI := list[i].Time()
		tj, errJ := list[j].Time()
		if errI != nil || errJ != nil {
			return false
		}
		return ti.Before(tj)
	})
}

// Event describes one rating update for reporting.
type Event struct {
	Label      string  `json:"label"`
	Home       string  `json:"home"`
	Away       string  `json:"away"`
	HomeWin    bool    `json:"homeWin"`
	Recorded   bool    `json:"recorded"`
	Score      Score   `json:"score"`
	Expected   float64 `json:"expected"`
	HomeBefore float64 `json:"homeBefore"`
	HomeAfter  float64 `json:"homeAfter"`
	AwayBefore float64 `json:"awayBefore"`
	AwayAfter  float64 `json:"awayAfter"`
	Change     float64 `json:"change"`
}

// Involves reports whether the team code took part in the game.
func (e Event) Involves(code string) bool {
	return e.Home == code || e.Away == code
}
