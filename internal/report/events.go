package report

import (
	"fmt"
	"io"

	"github.com/preston-bernstein/nba-elo-sim/internal/domain/games"
)

// EventLine formats one rating update. Recorded games show the score, simulated ones W/L.
func EventLine(ev games.Event) string {
	var result string
	if ev.Recorded {
		result = fmt.Sprintf("%s %3d - %-3d %s", ev.Home, ev.Score.Home, ev.Score.Away, ev.Away)
	} else {
		home, away := "L", "W"
		if ev.HomeWin {
			home, away = "W", "L"
		}
		result = fmt.Sprintf("%s %s - %s %s", ev.Home, home, away, ev.Away)
	}
	return fmt.Sprintf("%-35s: %s | exp: %2d%% | %7.2f -> %7.2f (%+06.2f), %7.2f -> %7.2f (%+06.2f)",
		ev.Label,
		result,
		int(ev.Expected*100),
		ev.HomeBefore, ev.HomeAfter, ev.Change,
		ev.AwayBefore, ev.AwayAfter, -ev.Change,
	)
}

// Events returns an event sink that writes one line per event to w.
func Events(w io.Writer) func(games.Event) {
	return func(ev games.Event) {
		fmt.Fprintln(w, EventLine(ev))
	}
}
