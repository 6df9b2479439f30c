package snapshots

import (
	"fmt"
	"path/filepath"
)

// Artifact names one persisted collection of the pipeline.
type Artifact string

const (
	// Teams holds every team at the base rating with empty records.
	Teams Artifact = "teams"
	// PrevGames holds the games of the historical seasons.
	PrevGames Artifact = "prev_games"
	// Processed holds the teams after the historical pass.
	Processed Artifact = "processed"
	// Games holds the current season's games.
	Games Artifact = "games"
	// AfterSeason holds the teams after the current season pass.
	AfterSeason Artifact = "after_season"
)

// Artifacts lists every artifact in pipeline order.
var Artifacts = []Artifact{Teams, PrevGames, Processed, Games, AfterSeason}

// ArtifactPath builds the path to an artifact file under basePath.
func ArtifactPath(basePath string, a Artifact) string {
	return filepath.Join(basePath, fmt.Sprintf("%s.json", a))
}
