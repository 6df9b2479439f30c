package metrics

import (
	"errors"
	"testing"
	"time"
)

func TestRecorderTracksProviderAttemptsAndErrors(t *testing.T) {
	rec := NewRecorder()
	rec.RecordProviderAttempt("balldontlie", 10*time.Millisecond, nil)
	rec.RecordProviderAttempt("balldontlie", 15*time.Millisecond, errors.New("boom"))

	if got := rec.ProviderCalls("balldontlie"); got != 2 {
		t.Fatalf("expected 2 calls, got %d", got)
	}
	if got := rec.ProviderErrors("balldontlie"); got != 1 {
		t.Fatalf("expected 1 error, got %d", got)
	}
	if got := rec.LastCallLatency("balldontlie"); got != 15*time.Millisecond {
		t.Fatalf("expected last latency to be 15ms, got %s", got)
	}

	snap := rec.Snapshot("balldontlie")
	if snap.Calls != 2 || snap.Errors != 1 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestRecorderTracksRateLimits(t *testing.T) {
	rec := NewRecorder()
	rec.RecordRateLimit("balldontlie", 5*time.Second)
	rec.RecordRateLimit("balldontlie", 0)

	if got := rec.RateLimitHits("balldontlie"); got != 2 {
		t.Fatalf("expected 2 rate limit hits, got %d", got)
	}
	if got := rec.LastRetryAfter("balldontlie"); got != 5*time.Second {
		t.Fatalf("expected last retry-after to be 5s, got %s", got)
	}
}

func TestRecorderTracksSimulation(t *testing.T) {
	rec := NewRecorder()
	rec.RecordGame(false, 12.5)
	rec.RecordGame(true, -8)
	rec.RecordGame(true, 3)
	rec.RecordSeries(4)
	rec.RecordSeries(7)
	rec.RecordChampion("BOS")
	rec.RecordChampion("BOS")
	rec.RecordChampion("DEN")

	snap := rec.Simulation()
	if snap.RecordedGames != 1 || snap.SimulatedGames != 2 {
		t.Fatalf("unexpected game counts %+v", snap)
	}
	if snap.Series != 2 || snap.SeriesGames != 11 {
		t.Fatalf("unexpected series counts %+v", snap)
	}
	if snap.Champions["BOS"] != 2 || snap.Champions["DEN"] != 1 {
		t.Fatalf("unexpected champions %+v", snap.Champions)
	}

	snap.Champions["BOS"] = 99
	if rec.Simulation().Champions["BOS"] != 2 {
		t.Fatal("expected Simulation to return a copy")
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	var rec *Recorder
	rec.RecordProviderAttempt("x", time.Millisecond, nil)
	rec.RecordRateLimit("x", time.Second)
	rec.RecordGame(true, 1)
	rec.RecordSeries(5)
	rec.RecordChampion("BOS")
	rec.RecordHTTPRequest("GET", "/", 200, time.Millisecond)
	rec.RecordPollerCycle(time.Millisecond, nil)

	if rec.ProviderCalls("x") != 0 || rec.Simulation().Series != 0 || rec.Gatherer() != nil {
		t.Fatal("expected zero values from nil recorder")
	}
}
