package teams

import (
	"fmt"
	"strings"

	"github.com/preston-bernstein/nba-elo-sim/internal/elo"
)

// Conference groups teams for seeding and the bracket.
type Conference string

const (
	West Conference = "West"
	East Conference = "East"
)

// Conferences lists both conferences in bracket order.
var Conferences = []Conference{West, East}

// Division is one of the six fixed divisions.
type Division string

const (
	Atlantic  Division = "Atlantic"
	Central   Division = "Central"
	Southeast Division = "Southeast"
	Northwest Division = "Northwest"
	Pacific   Division = "Pacific"
	Southwest Division = "Southwest"
)

// Team carries identity, classification, rating and season record.
// Identity and classification never change after creation; rating and record are mutated in place.
type Team struct {
	ID           string     `json:"id"`
	Abbreviation string     `json:"abbreviation"`
	Name         string     `json:"name"`
	FullName     string     `json:"fullName"`
	City         string     `json:"city"`
	Conference   Conference `json:"conference"`
	Division     Division   `json:"division"`
	Rating       float64    `json:"rating"`
	Wins         int        `json:"wins"`
	Losses       int        `json:"losses"`
}

// New builds a team at the base rating with an empty record.
func New(abbreviation, fullName string, conference Conference, division Division) Team {
	return Team{
		ID:           strings.ToLower(abbreviation),
		Abbreviation: strings.ToUpper(abbreviation),
		FullName:     fullName,
		Conference:   conference,
		Division:     division,
		Rating:       elo.BaseRating,
	}
}

// Record formats the season record as W-L.
func (t Team) Record() string {
	return fmt.Sprintf("%d-%d", t.Wins, t.Losses)
}

// ParseConference maps an upstream conference label onto a Conference.
func ParseConference(raw string) (Conference, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "west", "western":
		return West, nil
	case "east", "eastern":
		return East, nil
	default:
		return "", fmt.Errorf("unknown conference %q", raw)
	}
}

// ParseDivision maps an upstream division label onto a Division.
func ParseDivision(raw string) (Division, error) {
	for _, d := range []Division{Atlantic, Central, Southeast, Northwest, Pacific, Southwest} {
		if strings.EqualFold(strings.TrimSpace(raw), string(d)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown division %q", raw)
}
