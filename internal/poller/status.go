package poller

import (
	"sync"
	"time"
)

// unhealthyAfter is the run of failed refreshes after which the served season
// is considered stale.
const unhealthyAfter = 3

// Status is a point-in-time view of the refresh loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
	// LastGames is the number of games accepted by the most recent refresh.
	LastGames int
}

// IsReady is false until a refresh has landed and again once refreshes keep failing.
func (s Status) IsReady() bool {
	return !s.LastSuccess.IsZero() && s.ConsecutiveFailures < unhealthyAfter
}

type tracker struct {
	mu sync.RWMutex
	s  Status
}

func (t *tracker) attempt(at time.Time) {
	t.mu.Lock()
	t.s.LastAttempt = at
	t.mu.Unlock()
}

func (t *tracker) succeed(at time.Time, gameCount int) {
	t.mu.Lock()
	t.s.ConsecutiveFailures = 0
	t.s.LastError = ""
	t.s.LastSuccess = at
	t.s.LastGames = gameCount
	t.mu.Unlock()
}

func (t *tracker) fail(at time.Time, err error) {
	t.mu.Lock()
	t.s.ConsecutiveFailures++
	t.s.LastAttempt = at
	if err != nil {
		t.s.LastError = err.Error()
	}
	t.mu.Unlock()
}

func (t *tracker) snapshot() Status {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.s
}
