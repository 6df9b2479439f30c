package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/nba-elo-sim/internal/domain/games"
	"github.com/preston-bernstein/nba-elo-sim/internal/logging"
	"github.com/preston-bernstein/nba-elo-sim/internal/metrics"
	"github.com/preston-bernstein/nba-elo-sim/internal/providers"
	"github.com/preston-bernstein/nba-elo-sim/internal/snapshots"
)

const defaultInterval = 10 * time.Minute

// Sink receives every freshly fetched season. A rejected season counts as a
// failed refresh and is not persisted.
type Sink interface {
	ReplaceGames(ctx context.Context, list []games.Game) error
}

// SnapshotWriter persists an accepted season.
type SnapshotWriter interface {
	SaveGames(ctx context.Context, a snapshots.Artifact, list []games.Game) error
}

// Poller keeps the served season current by refetching it on an interval.
type Poller struct {
	provider providers.GameProvider
	sink     Sink
	writer   SnapshotWriter
	season   int
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration

	mu      sync.Mutex
	started bool
	quit    chan struct{}
	once    sync.Once

	health tracker
}

// New builds a Poller for one season. sink and writer may be nil.
func New(provider providers.GameProvider, sink Sink, writer SnapshotWriter, season int, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Poller{
		provider: provider,
		sink:     sink,
		writer:   writer,
		season:   season,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		quit:     make(chan struct{}),
	}
}

// Start refreshes immediately and then on every tick until ctx is cancelled
// or Stop is called. Calls after the first are ignored.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return
	}
	p.started = true
	go p.loop(ctx)
}

// Stop ends the loop. It is safe to call more than once.
func (p *Poller) Stop(context.Context) error {
	p.once.Do(func() { close(p.quit) })
	return nil
}

// Status reports the health of recent refreshes.
func (p *Poller) Status() Status {
	return p.health.snapshot()
}

func (p *Poller) loop(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	logging.Info(p.logger, "poller started",
		slog.Int(logging.FieldSeason, p.season),
		slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()),
	)
	p.refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			logging.Info(p.logger, "poller stopped", slog.String("reason", "context"))
			return
		case <-p.quit:
			logging.Info(p.logger, "poller stopped", slog.String("reason", "stop"))
			return
		case <-ticker.C:
			p.refresh(ctx)
		}
	}
}

// refresh fetches the season, hands it to the sink and, once accepted,
// writes the games snapshot.
func (p *Poller) refresh(ctx context.Context) {
	start := time.Now()
	p.health.attempt(start)

	list, err := p.provider.FetchGames(ctx, []int{p.season})
	if err == nil && p.sink != nil {
		err = p.sink.ReplaceGames(ctx, list)
	}
	elapsed := time.Since(start)
	p.metrics.RecordPollerCycle(elapsed, err)
	if err != nil {
		p.health.fail(start, err)
		logging.Error(p.logger, "poller refresh failed", err,
			slog.Int(logging.FieldSeason, p.season),
			slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
		)
		return
	}

	if p.writer != nil {
		if err := p.writer.SaveGames(ctx, snapshots.Games, list); err != nil {
			logging.Warn(p.logger, "poller snapshot write failed", "error", err)
		}
	}
	p.health.succeed(start, len(list))
	logging.Info(p.logger, "poller refreshed season",
		slog.Int(logging.FieldSeason, p.season),
		slog.Int(logging.FieldGames, len(list)),
		slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
	)
}
