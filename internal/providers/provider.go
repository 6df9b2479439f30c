package providers

import (
	"context"

	"github.com/preston-bernstein/nba-elo-sim/internal/domain/games"
	"github.com/preston-bernstein/nba-elo-sim/internal/domain/teams"
)

// TeamProvider fetches the league's teams at the base rating with empty records.
type TeamProvider interface {
	FetchTeams(ctx context.Context) ([]teams.Team, error)
}

// GameProvider fetches every game of the given seasons, played or scheduled.
// Seasons are identified by the year they start in (2023 is 2023-24).
type GameProvider interface {
	FetchGames(ctx context.Context, seasons []int) ([]games.Game, error)
}

// DataProvider combines all provider capabilities.
type DataProvider interface {
	TeamProvider
	GameProvider
}
