// Package archive keeps a history of simulated postseasons.
package archive

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/preston-bernstein/nba-elo-sim/internal/domain/bracket"
)

// ErrNoRuns is returned by Latest before any run was archived.
var ErrNoRuns = errors.New("no archived postseason runs")

// Run is one archived postseason.
type Run struct {
	ID        string                   `json:"id"`
	Season    int                      `json:"season"`
	Champion  string                   `json:"champion"`
	CreatedAt time.Time                `json:"createdAt"`
	Result    bracket.PostseasonResult `json:"result"`
}

// Archive stores and retrieves postseason runs.
type Archive interface {
	Record(ctx context.Context, season int, result bracket.PostseasonResult) (Run, error)
	Latest(ctx context.Context) (Run, error)
}

func newRun(season int, result bracket.PostseasonResult, now time.Time) Run {
	return Run{
		ID:        uuid.New().String(),
		Season:    season,
		Champion:  result.Champion,
		CreatedAt: now.UTC(),
		Result:    result,
	}
}

// Memory is an in-process archive used when no database is configured.
type Memory struct {
	mu   sync.RWMutex
	runs []Run
	now  func() time.Time
}

// NewMemory returns an empty in-memory archive.
func NewMemory() *Memory {
	return &Memory{now: time.Now}
}

func (m *Memory) Record(ctx context.Context, season int, result bracket.PostseasonResult) (Run, error) {
	if err := ctx.Err(); err != nil {
		return Run{}, err
	}
	run := newRun(season, result, m.now())
	m.mu.Lock()
	m.runs = append(m.runs, run)
	m.mu.Unlock()
	return run, nil
}

func (m *Memory) Latest(ctx context.Context) (Run, error) {
	if err := ctx.Err(); err != nil {
		return Run{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.runs) == 0 {
		return Run{}, ErrNoRuns
	}
	return m.runs[len(m.runs)-1], nil
}

// Len reports how many runs are held.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.runs)
}
