package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type providerStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

type simulationStats struct {
	recordedGames  int
	simulatedGames int
	series         int
	seriesGames    int
	champions      map[string]int
}

// Recorder captures in-memory metrics about provider calls and simulation runs,
// mirroring them to OpenTelemetry instruments when configured.
type Recorder struct {
	mu       sync.Mutex
	stats    map[string]*providerStats
	sim      simulationStats
	otel     *otelInstruments
	gatherer prometheus.Gatherer
}

func NewRecorder() *Recorder {
	return newRecorder(nil, nil)
}

func newRecorder(otel *otelInstruments, gatherer prometheus.Gatherer) *Recorder {
	return &Recorder{
		stats:    make(map[string]*providerStats),
		sim:      simulationStats{champions: make(map[string]int)},
		otel:     otel,
		gatherer: gatherer,
	}
}

// RecordProviderAttempt increments counters for a provider call and stores the last observed latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(provider)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordProviderAttempt(provider, duration, err)
	}
}

// RecordRateLimit tracks that a provider response hit a rate limit and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(provider string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(provider)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordRateLimit(provider, retryAfter)
	}
}

// RecordGame counts one processed game, split by recorded or simulated outcome.
func (r *Recorder) RecordGame(simulated bool, change float64) {
	if r == nil {
		return
	}
	r.mu.Lock()
	if simulated {
		r.sim.simulatedGames++
	} else {
		r.sim.recordedGames++
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordGame(simulated, change)
	}
}

// RecordSeries tracks a completed series and how many games it took.
func (r *Recorder) RecordSeries(games int) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.sim.series++
	r.sim.seriesGames += games
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordSeries(games)
	}
}

// RecordChampion counts a league title for the team.
func (r *Recorder) RecordChampion(team string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.sim.champions[team]++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordChampion(team)
	}
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// RateLimitHits returns the number of rate limit events seen for a provider.
func (r *Recorder) RateLimitHits(provider string) int {
	return r.Snapshot(provider).RateLimitHits
}

// LastRetryAfter returns the most recent Retry-After recorded for a provider.
func (r *Recorder) LastRetryAfter(provider string) time.Duration {
	return r.Snapshot(provider).LastRetryAfter
}

// LastCallLatency returns the last recorded latency for a provider call.
func (r *Recorder) LastCallLatency(provider string) time.Duration {
	return r.Snapshot(provider).LastCallLatency
}

// Snapshot returns a copy of the current stats for the provider.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[provider]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// SimulationSnapshot is a copy of the simulation counters.
type SimulationSnapshot struct {
	RecordedGames  int
	SimulatedGames int
	Series         int
	SeriesGames    int
	Champions      map[string]int
}

// Simulation returns a copy of the simulation counters.
func (r *Recorder) Simulation() SimulationSnapshot {
	if r == nil {
		return SimulationSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	champions := make(map[string]int, len(r.sim.champions))
	for k, v := range r.sim.champions {
		champions[k] = v
	}
	return SimulationSnapshot{
		RecordedGames:  r.sim.recordedGames,
		SimulatedGames: r.sim.simulatedGames,
		Series:         r.sim.series,
		SeriesGames:    r.sim.seriesGames,
		Champions:      champions,
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordPollerCycle tracks poller cycles and errors.
func (r *Recorder) RecordPollerCycle(duration time.Duration, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordPoller(duration, err)
}

// Gatherer exposes the Prometheus registry backing the recorder, or nil when telemetry is off.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	if r == nil {
		return nil
	}
	return r.gatherer
}

// ensureStats must be called with r.mu held.
func (r *Recorder) ensureStats(provider string) *providerStats {
	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{}
		r.stats[provider] = stats
	}
	return stats
}
