package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// otelInstruments mirrors every Recorder call onto OpenTelemetry instruments.
// A nil *otelInstruments records nothing.
type otelInstruments struct {
	ctx context.Context

	requests       metric.Int64Counter
	requestLatency metric.Float64Histogram

	providerAttempts metric.Int64Counter
	providerErrors   metric.Int64Counter
	providerLatency  metric.Float64Histogram
	rateLimitHits    metric.Int64Counter
	retryAfter       metric.Float64Histogram

	pollerCycles  metric.Int64Counter
	pollerErrors  metric.Int64Counter
	pollerLatency metric.Float64Histogram

	games        metric.Int64Counter
	ratingChange metric.Float64Histogram
	seriesLength metric.Int64Histogram
	champions    metric.Int64Counter
}

// instrumentBuilder keeps the first creation error so the constructor can
// declare every instrument before checking once.
type instrumentBuilder struct {
	meter metric.Meter
	err   error
}

func (b *instrumentBuilder) counter(name, desc string) metric.Int64Counter {
	c, err := b.meter.Int64Counter(name, metric.WithDescription(desc))
	b.keep(err)
	return c
}

func (b *instrumentBuilder) histogram(name, desc string) metric.Float64Histogram {
	h, err := b.meter.Float64Histogram(name, metric.WithDescription(desc))
	b.keep(err)
	return h
}

func (b *instrumentBuilder) intHistogram(name, desc string, bounds ...float64) metric.Int64Histogram {
	h, err := b.meter.Int64Histogram(name, metric.WithDescription(desc), metric.WithExplicitBucketBoundaries(bounds...))
	b.keep(err)
	return h
}

func (b *instrumentBuilder) keep(err error) {
	if b.err == nil {
		b.err = err
	}
}

func newOtelInstruments(provider metric.MeterProvider) (*otelInstruments, error) {
	b := &instrumentBuilder{meter: provider.Meter(defaultServiceName)}
	inst := &otelInstruments{
		ctx: context.Background(),

		requests:       b.counter("http_requests_total", "API requests served"),
		requestLatency: b.histogram("http_request_duration_ms", "API request latency in milliseconds"),

		providerAttempts: b.counter("provider_attempts_total", "Upstream data provider calls"),
		providerErrors:   b.counter("provider_errors_total", "Upstream data provider calls that failed"),
		providerLatency:  b.histogram("provider_duration_ms", "Upstream data provider latency in milliseconds"),
		rateLimitHits:    b.counter("provider_rate_limit_hits_total", "HTTP 429 responses from the upstream provider"),
		retryAfter:       b.histogram("provider_retry_after_ms", "Retry-After hints from the upstream provider"),

		pollerCycles:  b.counter("poller_cycles_total", "Season refresh attempts"),
		pollerErrors:  b.counter("poller_errors_total", "Season refresh attempts that failed"),
		pollerLatency: b.histogram("poller_cycle_duration_ms", "Season refresh latency in milliseconds"),

		games:        b.counter("games_processed_total", "Games applied to the ratings"),
		ratingChange: b.histogram("rating_change_abs", "Absolute Elo change per game"),
		seriesLength: b.intHistogram("series_length_games", "Games needed to decide a series", 4, 5, 6, 7),
		champions:    b.counter("league_champions_total", "Simulated championships by team"),
	}
	if b.err != nil {
		return nil, b.err
	}
	return inst, nil
}

func (o *otelInstruments) recordHTTPRequest(method, path string, status int, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String(AttrMethod, method),
		attribute.String(AttrPath, path),
		attribute.Int(AttrStatus, status),
	)
	o.requests.Add(o.ctx, 1, attrs)
	o.requestLatency.Record(o.ctx, millis(duration), attrs)
}

func (o *otelInstruments) recordProviderAttempt(provider string, duration time.Duration, err error) {
	if o == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String(AttrProvider, provider))
	o.providerAttempts.Add(o.ctx, 1, attrs)
	o.providerLatency.Record(o.ctx, millis(duration), attrs)
	if err != nil {
		o.providerErrors.Add(o.ctx, 1, attrs)
	}
}

func (o *otelInstruments) recordRateLimit(provider string, retryAfter time.Duration) {
	if o == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String(AttrProvider, provider))
	o.rateLimitHits.Add(o.ctx, 1, attrs)
	if retryAfter > 0 {
		o.retryAfter.Record(o.ctx, millis(retryAfter), attrs)
	}
}

func (o *otelInstruments) recordPoller(duration time.Duration, err error) {
	if o == nil {
		return
	}
	o.pollerCycles.Add(o.ctx, 1)
	o.pollerLatency.Record(o.ctx, millis(duration))
	if err != nil {
		o.pollerErrors.Add(o.ctx, 1)
	}
}

func (o *otelInstruments) recordGame(simulated bool, change float64) {
	if o == nil {
		return
	}
	kind := "recorded"
	if simulated {
		kind = "simulated"
	}
	if change < 0 {
		change = -change
	}
	attrs := metric.WithAttributes(attribute.String(AttrKind, kind))
	o.games.Add(o.ctx, 1, attrs)
	o.ratingChange.Record(o.ctx, change, attrs)
}

func (o *otelInstruments) recordSeries(games int) {
	if o == nil {
		return
	}
	o.seriesLength.Record(o.ctx, int64(games))
}

func (o *otelInstruments) recordChampion(team string) {
	if o == nil {
		return
	}
	o.champions.Add(o.ctx, 1, metric.WithAttributes(attribute.String(AttrTeam, team)))
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
