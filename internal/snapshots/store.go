package snapshots

import (
	"context"
	"errors"

	"github.com/preston-bernstein/nba-elo-sim/internal/domain/games"
	"github.com/preston-bernstein/nba-elo-sim/internal/domain/teams"
)

// ErrNotFound is returned when an artifact has never been saved.
var ErrNotFound = errors.New("snapshot not found")

// Store persists team and game collections by artifact name.
type Store interface {
	LoadTeams(ctx context.Context, a Artifact) ([]teams.Team, error)
	SaveTeams(ctx context.Context, a Artifact, list []teams.Team) error
	LoadGames(ctx context.Context, a Artifact) ([]games.Game, error)
	SaveGames(ctx context.Context, a Artifact, list []games.Game) error
}

// Has reports whether the artifact can be loaded from the store.
func Has(ctx context.Context, s Store, a Artifact) bool {
	var err error
	switch a {
	case PrevGames, Games:
		_, err = s.LoadGames(ctx, a)
	default:
		_, err = s.LoadTeams(ctx, a)
	}
	return err == nil
}
