// Package simulate applies game results to league ratings and plays out the postseason.
//
// Every operation runs to completion on the caller's goroutine and mutates the shared
// store.League in place, so a rating change from one game is visible to the next.
package simulate

import (
	"log/slog"
	"math/rand"

	"github.com/preston-bernstein/nba-elo-sim/internal/domain/games"
	"github.com/preston-bernstein/nba-elo-sim/internal/elo"
	"github.com/preston-bernstein/nba-elo-sim/internal/metrics"
	"github.com/preston-bernstein/nba-elo-sim/internal/store"
)

// Draw returns a uniform value in [0,1).
type Draw func() float64

// Mode selects whether a game also counts toward season records.
type Mode int

const (
	// RatingOnly updates ratings and leaves records alone (history, postseason).
	RatingOnly Mode = iota
	// SeasonTally also credits a win and a loss.
	SeasonTally
)

// Config wires an Engine. Zero values are usable.
type Config struct {
	// Draw defaults to a fresh math/rand/v2 draw per call.
	Draw Draw
	// Filter decides which events reach OnEvent.
	Filter Filter
	// OnEvent receives every event that passes Filter.
	OnEvent func(games.Event)
	Logger  *slog.Logger
	Metrics *metrics.Recorder
}

// Engine runs games against one league.
type Engine struct {
	league  *store.League
	draw    Draw
	filter  Filter
	onEvent func(games.Event)
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// New constructs an Engine over league.
func New(league *store.League, cfg Config) *Engine {
	draw := cfg.Draw
	if draw == nil {
		draw = rand.Float64
	}
	return &Engine{
		league:  league,
		draw:    draw,
		filter:  cfg.Filter,
		onEvent: cfg.OnEvent,
		logger:  cfg.Logger,
		metrics: cfg.Metrics,
	}
}

// League exposes the store the engine mutates.
func (e *Engine) League() *store.League {
	return e.league
}

// PlayRecorded applies a game whose final score is known.
func (e *Engine) PlayRecorded(label string, home, away int, score games.Score, mode Mode) games.Event {
	ev := e.play(label, home, away, mode, func(float64) bool {
		return score.Home > score.Away
	})
	ev.Recorded = true
	ev.Score = score
	e.emit(ev)
	return ev
}

// PlaySimulated draws the outcome: home wins when the draw falls below its expected score.
func (e *Engine) PlaySimulated(label string, home, away int, mode Mode) games.Event {
	ev := e.play(label, home, away, mode, func(expected float64) bool {
		return e.draw() < expected
	})
	e.emit(ev)
	return ev
}

func (e *Engine) play(label string, home, away int, mode Mode, decide func(expected float64) bool) games.Event {
	h := e.league.Team(home)
	a := e.league.Team(away)

	expected := elo.Expected(h.Rating, a.Rating)
	homeWin := decide(expected)
	homeBefore, awayBefore := h.Rating, a.Rating
	newHome, newAway, delta := elo.Update(h.Rating, a.Rating, elo.Actual(homeWin))
	h.Rating, a.Rating = newHome, newAway

	if mode == SeasonTally {
		if homeWin {
			h.Wins++
			a.Losses++
		} else {
			h.Losses++
			a.Wins++
		}
	}

	return games.Event{
		Label:      label,
		Home:       h.Abbreviation,
		Away:       a.Abbreviation,
		HomeWin:    homeWin,
		Expected:   expected,
		HomeBefore: homeBefore,
		HomeAfter:  newHome,
		AwayBefore: awayBefore,
		AwayAfter:  newAway,
		Change:     delta,
	}
}

func (e *Engine) emit(ev games.Event) {
	e.metrics.RecordGame(!ev.Recorded, ev.Change)
	if e.onEvent != nil && e.filter.Match(ev) {
		e.onEvent(ev)
	}
}
