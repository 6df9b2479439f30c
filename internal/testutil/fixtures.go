package testutil

import (
	"fmt"

	"github.com/preston-bernstein/nba-elo-sim/internal/domain/games"
	"github.com/preston-bernstein/nba-elo-sim/internal/domain/teams"
	"github.com/preston-bernstein/nba-elo-sim/internal/elo"
)

// SampleTeams returns perConference teams in each conference, West first, all at the base
// rating with empty records. Codes are W01.., E01...
func SampleTeams(perConference int) []teams.Team {
	out := make([]teams.Team, 0, 2*perConference)
	for _, conf := range teams.Conferences {
		for i := 1; i <= perConference; i++ {
			code := fmt.Sprintf("%c%02d", conf[0], i)
			out = append(out, teams.Team{
				ID:           code,
				Abbreviation: code,
				FullName:     fmt.Sprintf("%s Team %d", conf, i),
				Conference:   conf,
				Division:     teams.Atlantic,
				Rating:       elo.BaseRating,
			})
		}
	}
	return out
}

// SeededTeams returns SampleTeams with records that sort exactly in code order inside each
// conference: team i has i-1 losses.
func SeededTeams(perConference int) []teams.Team {
	list := SampleTeams(perConference)
	for i := range list {
		rank := i % perConference
		list[i].Losses = rank
		list[i].Wins = 82 - rank
	}
	return list
}

// SampleGame returns a game between two codes on the given date.
// A zero score yields a scheduled game, anything else a final one.
func SampleGame(id, date, home, away string, homeScore, awayScore int) games.Game {
	status := games.StatusScheduled
	if homeScore != 0 || awayScore != 0 {
		status = games.StatusFinal
	}
	return games.Game{
		ID:        id,
		Provider:  "test",
		HomeTeam:  games.TeamRef{ID: home, Abbreviation: home},
		AwayTeam:  games.TeamRef{ID: away, Abbreviation: away},
		StartTime: date,
		Status:    status,
		Score:     games.Score{Home: homeScore, Away: awayScore},
		Meta:      games.GameMeta{Season: 2023},
	}
}
