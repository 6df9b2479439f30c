package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/preston-bernstein/nba-elo-sim/internal/domain/games"
	"github.com/preston-bernstein/nba-elo-sim/internal/domain/teams"
	"github.com/preston-bernstein/nba-elo-sim/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
)

type backoffFunc func() backoff.BackOff

// retryingProvider wraps a DataProvider with retry/backoff behavior and attempt metrics.
type retryingProvider struct {
	inner       DataProvider
	logger      *slog.Logger
	metrics     *metrics.Recorder
	name        string
	maxAttempts int
	backoffFn   backoffFunc
}

// NewRetryingProvider wraps the given provider with retries. If maxAttempts/initial are <= 0, defaults are used.
func NewRetryingProvider(inner DataProvider, logger *slog.Logger, recorder *metrics.Recorder, name string, maxAttempts int, initial time.Duration) DataProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if initial <= 0 {
		initial = defaultBackoff
	}
	return &retryingProvider{
		inner:       inner,
		logger:      logger,
		metrics:     recorder,
		name:        name,
		maxAttempts: maxAttempts,
		backoffFn: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = initial
			b.MaxElapsedTime = 0
			return b
		},
	}
}

func (r *retryingProvider) FetchTeams(ctx context.Context) ([]teams.Team, error) {
	var out []teams.Team
	err := r.do(ctx, "teams", func() error {
		list, err := r.inner.FetchTeams(ctx)
		out = list
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *retryingProvider) FetchGames(ctx context.Context, seasons []int) ([]games.Game, error) {
	var out []games.Game
	err := r.do(ctx, "games", func() error {
		list, err := r.inner.FetchGames(ctx, seasons)
		out = list
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *retryingProvider) do(ctx context.Context, op string, call func() error) error {
	if r.inner == nil {
		return ErrProviderUnavailable
	}

	attempt := 0
	policy := &retryAfterBackOff{next: r.backoffFn()}
	operation := func() error {
		attempt++
		start := time.Now()
		err := call()
		r.metrics.RecordProviderAttempt(r.name, time.Since(start), err)
		policy.retryAfter = 0
		if rl, ok := AsRateLimitError(err); ok {
			r.metrics.RecordRateLimit(r.name, rl.RetryAfter)
			policy.retryAfter = rl.RetryAfter
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		logWithProvider(ctx, r.logger, slog.LevelWarn, r.name, "provider fetch retry",
			"op", op,
			"attempt", attempt,
			"max_attempts", r.maxAttempts,
			"wait_ms", wait.Milliseconds(),
			"error", err,
		)
	}

	bounded := backoff.WithContext(backoff.WithMaxRetries(policy, uint64(r.maxAttempts-1)), ctx)
	if err := backoff.RetryNotify(operation, bounded, notify); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		logWithProvider(ctx, r.logger, slog.LevelWarn, r.name, "provider fetch failed",
			"op", op,
			"attempts", attempt,
			"error", err,
		)
		return err
	}
	return nil
}

// retryAfterBackOff honors an upstream Retry-After hint before falling back to the wrapped policy.
type retryAfterBackOff struct {
	next       backoff.BackOff
	retryAfter time.Duration
}

func (b *retryAfterBackOff) NextBackOff() time.Duration {
	if b.retryAfter > 0 {
		wait := b.retryAfter
		b.retryAfter = 0
		return wait
	}
	return b.next.NextBackOff()
}

func (b *retryAfterBackOff) Reset() {
	b.retryAfter = 0
	b.next.Reset()
}
