package store

import (
	"fmt"
	"sort"
	"strings"

	"github.com/preston-bernstein/nba-elo-sim/internal/domain/teams"
)

// League owns every team record for one simulation pass.
// Teams are addressed by a stable index; callers mutate ratings and records through Team(i),
// so a result applied in one game is visible to the next game that team plays.
type League struct {
	teams []teams.Team
	index map[string]int
}

// NewLeague copies the given teams into a fresh arena.
func NewLeague(list []teams.Team) *League {
	l := &League{
		teams: make([]teams.Team, len(list)),
		index: make(map[string]int, len(list)),
	}
	copy(l.teams, list)
	for i, t := range l.teams {
		l.index[strings.ToUpper(t.Abbreviation)] = i
	}
	return l
}

// Len returns the number of teams.
func (l *League) Len() int {
	return len(l.teams)
}

// Team returns a mutable reference to the team at index i.
func (l *League) Team(i int) *teams.Team {
	if i < 0 || i >= len(l.teams) {
		panic(fmt.Sprintf("store: team index %d out of range [0,%d)", i, len(l.teams)))
	}
	return &l.teams[i]
}

// Lookup resolves a team code (case-insensitive) to its index.
func (l *League) Lookup(code string) (int, bool) {
	i, ok := l.index[strings.ToUpper(strings.TrimSpace(code))]
	return i, ok
}

// Has reports whether a team code exists.
func (l *League) Has(code string) bool {
	_, ok := l.Lookup(code)
	return ok
}

// Codes lists all team codes in arena order.
func (l *League) Codes() []string {
	codes := make([]string, len(l.teams))
	for i, t := range l.teams {
		codes[i] = t.Abbreviation
	}
	return codes
}

// Teams returns a copy of every team, in arena order, for persistence.
func (l *League) Teams() []teams.Team {
	out := make([]teams.Team, len(l.teams))
	copy(out, l.teams)
	return out
}

// Clone returns an independent league with the same state.
func (l *League) Clone() *League {
	return NewLeague(l.teams)
}

// ResetRecords zeroes every season record, keeping ratings.
func (l *League) ResetRecords() {
	for i := range l.teams {
		l.teams[i].Wins = 0
		l.teams[i].Losses = 0
	}
}

// ByRating returns indices ordered by descending rating.
func (l *League) ByRating() []int {
	idx := l.indices(func(teams.Team) bool { return true })
	sort.SliceStable(idx, func(a, b int) bool {
		return l.teams[idx[a]].Rating > l.teams[idx[b]].Rating
	})
	return idx
}

// Standings returns a conference's team indices ordered by fewest losses, then most wins.
// Teams with identical records keep arena order.
func (l *League) Standings(conf teams.Conference) []int {
	idx := l.indices(func(t teams.Team) bool { return t.Conference == conf })
	sort.SliceStable(idx, func(a, b int) bool {
		ta, tb := l.teams[idx[a]], l.teams[idx[b]]
		if ta.Losses != tb.Losses {
			return ta.Losses < tb.Losses
		}
		return ta.Wins > tb.Wins
	})
	return idx
}

// Totals sums wins and losses across the league.
func (l *League) Totals() (wins, losses int) {
	for _, t := range l.teams {
		wins += t.Wins
		losses += t.Losses
	}
	return wins, losses
}

func (l *League) indices(keep func(teams.Team) bool) []int {
	out := make([]int, 0, len(l.teams))
	for i, t := range l.teams {
		if keep(t) {
			out = append(out, i)
		}
	}
	return out
}
