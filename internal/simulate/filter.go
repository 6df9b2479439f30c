package simulate

import (
	"strings"

	"github.com/preston-bernstein/nba-elo-sim/internal/domain/games"
)

// Filter selects which game events are surfaced: empty for none, "*" for all,
// otherwise a single team code.
type Filter string

const (
	FilterNone Filter = ""
	FilterAll  Filter = "*"
)

// ParseFilter normalises user input into a Filter.
func ParseFilter(raw string) Filter {
	return Filter(strings.ToUpper(strings.TrimSpace(raw)))
}

// Match reports whether the event should be surfaced.
func (f Filter) Match(ev games.Event) bool {
	switch f {
	case FilterNone:
		return false
	case FilterAll:
		return true
	default:
		return ev.Involves(string(f))
	}
}
