package bracket

// GameResult is the snapshot of a single elimination game, such as a play-in game.
type GameResult struct {
	Name    string `json:"name"`
	Home    string `json:"home"`
	Away    string `json:"away"`
	HomeWin bool   `json:"homeWin"`
}

// Winner returns the code of the team that won.
func (g GameResult) Winner() string {
	if g.HomeWin {
		return g.Home
	}
	return g.Away
}

// Loser returns the code of the team that lost.
func (g GameResult) Loser() string {
	if g.HomeWin {
		return g.Away
	}
	return g.Home
}

// RoundResult is the snapshot of a completed best-of-seven series.
// TeamA is the higher seed of the pairing.
type RoundResult struct {
	Name  string `json:"name"`
	TeamA string `json:"teamA"`
	TeamB string `json:"teamB"`
	WinsA int    `json:"winsA"`
	WinsB int    `json:"winsB"`
}

// Winner returns the code of the team that reached four wins.
func (r RoundResult) Winner() string {
	if r.WinsA > r.WinsB {
		return r.TeamA
	}
	return r.TeamB
}

// Games returns how many games the series lasted.
func (r RoundResult) Games() int {
	return r.WinsA + r.WinsB
}

// ConferenceResult aggregates every round one conference played.
type ConferenceResult struct {
	Conference string         `json:"conference"`
	PlayIn     [3]GameResult  `json:"playIn"`
	Round1     [4]RoundResult `json:"round1"`
	Semifinals [2]RoundResult `json:"semifinals"`
	Final      RoundResult    `json:"final"`
	Champion   string         `json:"champion"`
}

// PostseasonResult is the full bracket of one postseason run.
type PostseasonResult struct {
	West         ConferenceResult `json:"west"`
	East         ConferenceResult `json:"east"`
	Championship RoundResult      `json:"championship"`
	Champion     string           `json:"champion"`
}
