package testutil

const (
	// HomeWinDraw is below any expected score, so the home side always wins.
	HomeWinDraw = 0.0
	// AwayWinDraw is above any expected score reachable in tests, so the away side wins.
	AwayWinDraw = 0.999999
)

// Draws returns a draw function that yields values in order and then cycles.
func Draws(values ...float64) func() float64 {
	if len(values) == 0 {
		values = []float64{HomeWinDraw}
	}
	i := 0
	return func() float64 {
		v := values[i%len(values)]
		i++
		return v
	}
}
