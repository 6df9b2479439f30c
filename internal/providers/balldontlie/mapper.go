package balldontlie

import (
	"fmt"
	"strings"

	"github.com/preston-bernstein/nba-elo-sim/internal/domain/games"
	"github.com/preston-bernstein/nba-elo-sim/internal/domain/teams"
)

func mapGame(g gameResponse) games.Game {
	return games.Game{
		ID:        fmt.Sprintf("%s-%d", providerName, g.ID),
		Provider:  providerName,
		HomeTeam:  mapTeamRef(g.HomeTeam),
		AwayTeam:  mapTeamRef(g.VisitorTeam),
		StartTime: g.Date,
		Status:    mapStatus(g.Status),
		Score: games.Score{
			Home: g.HomeTeamScore,
			Away: g.VisitorTeamScore,
		},
		Meta: games.GameMeta{
			Season:         g.Season,
			UpstreamGameID: g.ID,
			Postseason:     g.Postseason,
		},
	}
}

func mapTeamRef(t teamResponse) games.TeamRef {
	return games.TeamRef{
		ID:           strings.ToLower(t.Abbreviation),
		Abbreviation: strings.ToUpper(t.Abbreviation),
		FullName:     t.FullName,
	}
}

// mapTeam builds a league team; historic franchises without a current conference are rejected.
func mapTeam(t teamResponse) (teams.Team, error) {
	conf, err := teams.ParseConference(t.Conference)
	if err != nil {
		return teams.Team{}, err
	}
	div, err := teams.ParseDivision(t.Division)
	if err != nil {
		return teams.Team{}, err
	}
	team := teams.New(t.Abbreviation, t.FullName, conf, div)
	team.Name = t.Name
	team.City = t.City
	return team, nil
}

func mapStatus(status string) games.GameStatus {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "final", "ended":
		return games.StatusFinal
	case "in progress", "halftime", "end of period":
		return games.StatusInProgress
	case "postponed":
		return games.StatusPostponed
	case "canceled", "cancelled":
		return games.StatusCanceled
	default:
		if strings.Contains(strings.ToLower(status), "qtr") {
			return games.StatusInProgress
		}
		return games.StatusScheduled
	}
}
