package elo

import "math"

const (
	// K scales how far a single result moves a rating.
	K = 32.0
	// BaseRating is the rating every team starts from.
	BaseRating = 1000.0
	// scale is the rating gap at which the favourite is ten times as likely to win.
	scale = 400.0
)

// Expected returns the probability that a team rated a beats a team rated b.
func Expected(a, b float64) float64 {
	return 1 / (1 + math.Pow(10, (b-a)/scale))
}

// Update applies one result between a and b. actual is 1 when a won and 0 when b won.
// The returned delta is added to a and subtracted from b, so the pair's total is unchanged.
func Update(a, b, actual float64) (newA, newB, delta float64) {
	delta = K * (actual - Expected(a, b))
	return a + delta, b - delta, delta
}

// Actual converts a win flag into the observed score used by Update.
func Actual(won bool) float64 {
	if won {
		return 1
	}
	return 0
}
