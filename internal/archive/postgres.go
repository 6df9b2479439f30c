package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/preston-bernstein/nba-elo-sim/internal/domain/bracket"
)

const schema = `
	CREATE TABLE IF NOT EXISTS postseason_runs (
		id         UUID PRIMARY KEY,
		season     INTEGER NOT NULL,
		champion   TEXT NOT NULL,
		result     JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)
`

// Postgres archives runs in a postseason_runs table.
type Postgres struct {
	db  *sql.DB
	now func() time.Time
}

// Open connects to dsn, verifies the connection and ensures the table exists.
func Open(ctx context.Context, dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging archive: %w", err)
	}
	p := NewPostgres(db)
	if err := p.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return p, nil
}

// NewPostgres wraps an existing connection pool.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db, now: time.Now}
}

// EnsureSchema creates the runs table when missing.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating archive schema: %w", err)
	}
	return nil
}

func (p *Postgres) Record(ctx context.Context, season int, result bracket.PostseasonResult) (Run, error) {
	run := newRun(season, result, p.now())
	payload, err := json.Marshal(run.Result)
	if err != nil {
		return Run{}, fmt.Errorf("marshaling postseason: %w", err)
	}

	query := `
		INSERT INTO postseason_runs (id, season, champion, result, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := p.db.ExecContext(ctx, query, run.ID, run.Season, run.Champion, payload, run.CreatedAt); err != nil {
		return Run{}, fmt.Errorf("inserting postseason run: %w", err)
	}
	return run, nil
}

func (p *Postgres) Latest(ctx context.Context) (Run, error) {
	query := `
		SELECT id, season, champion, result, created_at
		FROM postseason_runs
		ORDER BY created_at DESC
		LIMIT 1
	`
	var (
		run     Run
		payload []byte
	)
	err := p.db.QueryRowContext(ctx, query).Scan(&run.ID, &run.Season, &run.Champion, &payload, &run.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrNoRuns
	}
	if err != nil {
		return Run{}, fmt.Errorf("loading latest postseason run: %w", err)
	}
	if err := json.Unmarshal(payload, &run.Result); err != nil {
		return Run{}, fmt.Errorf("decoding postseason run %s: %w", run.ID, err)
	}
	return run, nil
}

// Close releases the connection pool.
func (p *Postgres) Close() error {
	return p.db.Close()
}
