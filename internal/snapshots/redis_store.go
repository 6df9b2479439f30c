package snapshots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/preston-bernstein/nba-elo-sim/internal/domain/games"
	"github.com/preston-bernstein/nba-elo-sim/internal/domain/teams"
)

const defaultRedisPrefix = "nba-sim"

// RedisStore keeps artifacts as JSON strings in Redis with a manifest hash.
type RedisStore struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
	now    func() time.Time
}

// NewRedisStore creates a Redis-backed store. A zero ttl keeps artifacts forever.
func NewRedisStore(client redis.Cmdable, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl, now: time.Now}
}

func (s *RedisStore) key(a Artifact) string {
	return fmt.Sprintf("%s:snapshot:%s", s.prefix, a)
}

func (s *RedisStore) manifestKey() string {
	return fmt.Sprintf("%s:manifest", s.prefix)
}

func (s *RedisStore) LoadTeams(ctx context.Context, a Artifact) ([]teams.Team, error) {
	var list []teams.Team
	if err := s.load(ctx, a, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *RedisStore) SaveTeams(ctx context.Context, a Artifact, list []teams.Team) error {
	return s.save(ctx, a, list, len(list))
}

func (s *RedisStore) LoadGames(ctx context.Context, a Artifact) ([]games.Game, error) {
	var list []games.Game
	if err := s.load(ctx, a, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *RedisStore) SaveGames(ctx context.Context, a Artifact, list []games.Game) error {
	return s.save(ctx, a, list, len(list))
}

func (s *RedisStore) load(ctx context.Context, a Artifact, payload any) error {
	data, err := s.client.Get(ctx, s.key(a)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return fmt.Errorf("%s: %w", a, ErrNotFound)
		}
		return fmt.Errorf("reading %s: %w", a, err)
	}
	if err := json.Unmarshal(data, payload); err != nil {
		return fmt.Errorf("decoding %s: %w", a, err)
	}
	return nil
}

func (s *RedisStore) save(ctx context.Context, a Artifact, payload any, count int) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", a, err)
	}
	meta, err := json.Marshal(ArtifactMeta{Count: count, UpdatedAt: s.now().UTC()})
	if err != nil {
		return fmt.Errorf("marshaling manifest entry: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(a), data, s.ttl)
	pipe.HSet(ctx, s.manifestKey(), string(a), meta)
	_, err = pipe.Exec(ctx)
	return err
}

// Manifest reads the manifest hash back into a Manifest.
func (s *RedisStore) Manifest(ctx context.Context) (Manifest, error) {
	raw, err := s.client.HGetAll(ctx, s.manifestKey()).Result()
	if err != nil {
		return Manifest{}, err
	}
	m := defaultManifest()
	for field, value := range raw {
		var meta ArtifactMeta
		if err := json.Unmarshal([]byte(value), &meta); err != nil {
			return Manifest{}, fmt.Errorf("decoding manifest entry %s: %w", field, err)
		}
		m.Artifacts[Artifact(field)] = meta
	}
	return m, nil
}
