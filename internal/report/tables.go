// Package report renders league state and simulation output for the console.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/preston-bernstein/nba-elo-sim/internal/domain/teams"
	"github.com/preston-bernstein/nba-elo-sim/internal/store"
)

const ratingTableSize = 30

// RatingTable prints the top teams by rating in two side-by-side columns.
func RatingTable(w io.Writer, league *store.League, title string) error {
	order := league.ByRating()
	if len(order) > ratingTableSize {
		order = order[:ratingTableSize]
	}
	half := (len(order) + 1) / 2

	if _, err := fmt.Fprintf(w, "\n%s:\n\n", title); err != nil {
		return err
	}
	for i := 0; i < half; i++ {
		left := league.Team(order[i])
		line := fmt.Sprintf("%2d. %-23s elo: %7.2f", i+1, left.FullName, left.Rating)
		if j := i + half; j < len(order) {
			right := league.Team(order[j])
			line += fmt.Sprintf(" | %2d. %-23s elo: %7.2f", j+1, right.FullName, right.Rating)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

// Standings prints both conferences ordered by seed, West on the left.
func Standings(w io.Writer, league *store.League) error {
	west := league.Standings(teams.West)
	east := league.Standings(teams.East)

	if _, err := fmt.Fprintf(w, "\nStandings after season:\n\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%-46s | %s\n", "West Conference", "East Conference"); err != nil {
		return err
	}
	rows := max(len(west), len(east))
	for i := 0; i < rows; i++ {
		line := fmt.Sprintf("%-46s | %s", standingCell(league, west, i), standingCell(league, east, i))
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

func standingCell(league *store.League, seeds []int, i int) string {
	if i >= len(seeds) {
		return ""
	}
	t := league.Team(seeds[i])
	return fmt.Sprintf("%2d. %-23s %2d-%-2d elo: %7.2f", i+1, t.FullName, t.Wins, t.Losses, t.Rating)
}
