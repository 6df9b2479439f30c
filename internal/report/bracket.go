package report

import (
	_ "embed"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/preston-bernstein/nba-elo-sim/internal/domain/bracket"
)

//go:embed ladder.tmpl
var ladderSource string

var ladder = template.Must(template.New("report").Funcs(template.FuncMap{
	"series": seriesCell,
}).Parse(ladderSource))

type conferenceView struct {
	Name   string
	PlayIn []bracket.GameResult
	R1     []bracket.RoundResult
	Semi   []bracket.RoundResult
	Final  []bracket.RoundResult
}

type ladderView struct {
	West     conferenceView
	East     conferenceView
	Finals   []bracket.RoundResult
	Champion string
}

// seriesCell renders "AAA w-l BBB" with the wins of the first-named team first.
func seriesCell(list []bracket.RoundResult, i int) string {
	if i >= len(list) {
		return strings.Repeat(" ", 11)
	}
	r := list[i]
	return fmt.Sprintf("%-3s %d-%d %-3s", r.TeamA, r.WinsA, r.WinsB, r.TeamB)
}

func newConferenceView(c bracket.ConferenceResult) conferenceView {
	return conferenceView{
		Name:   c.Conference,
		PlayIn: c.PlayIn[:],
		R1:     c.Round1[:],
		Semi:   c.Semifinals[:],
		Final:  []bracket.RoundResult{c.Final},
	}
}

// Bracket draws the full postseason ladder: both conference brackets, the finals and the champion.
func Bracket(w io.Writer, result bracket.PostseasonResult) error {
	view := ladderView{
		West:     newConferenceView(result.West),
		East:     newConferenceView(result.East),
		Finals:   []bracket.RoundResult{result.Championship},
		Champion: result.Champion,
	}
	return ladder.ExecuteTemplate(w, "ladder", view)
}
