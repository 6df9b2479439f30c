package snapshots

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/preston-bernstein/nba-elo-sim/internal/domain/games"
	"github.com/preston-bernstein/nba-elo-sim/internal/domain/teams"
)

// FSStore keeps artifacts as JSON files under basePath, alongside a manifest.json.
type FSStore struct {
	basePath string
	mu       sync.Mutex
	now      func() time.Time
}

// NewFSStore constructs an FS-backed snapshot store rooted at basePath.
func NewFSStore(basePath string) *FSStore {
	return &FSStore{basePath: basePath, now: time.Now}
}

// BasePath exposes the store root path.
func (s *FSStore) BasePath() string {
	if s == nil {
		return ""
	}
	return s.basePath
}

func (s *FSStore) LoadTeams(ctx context.Context, a Artifact) ([]teams.Team, error) {
	var list []teams.Team
	if err := s.load(ctx, a, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *FSStore) SaveTeams(ctx context.Context, a Artifact, list []teams.Team) error {
	return s.save(ctx, a, list, len(list))
}

func (s *FSStore) LoadGames(ctx context.Context, a Artifact) ([]games.Game, error) {
	var list []games.Game
	if err := s.load(ctx, a, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *FSStore) SaveGames(ctx context.Context, a Artifact, list []games.Game) error {
	return s.save(ctx, a, list, len(list))
}

func (s *FSStore) load(ctx context.Context, a Artifact, payload any) error {
	if s == nil {
		return errors.New("snapshot store not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if a == "" {
		return errors.New("snapshot artifact required")
	}
	f, err := os.Open(ArtifactPath(s.basePath, a))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s: %w", a, ErrNotFound)
		}
		return err
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(payload); err != nil {
		return fmt.Errorf("decoding %s: %w", a, err)
	}
	return nil
}

// save writes through a temp file and rename so readers never see a partial artifact.
// Identical content is left untouched but still refreshes the manifest.
func (s *FSStore) save(ctx context.Context, a Artifact, payload any, count int) error {
	if s == nil {
		return errors.New("snapshot store not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if a == "" {
		return errors.New("snapshot artifact required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.basePath, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", a, err)
	}

	target := ArtifactPath(s.basePath, a)
	if existing, err := os.ReadFile(target); err != nil || !bytes.Equal(existing, data) {
		tmp := target + ".tmp"
		if err := os.WriteFile(tmp, data, 0o644); err != nil {
			return err
		}
		if err := os.Rename(tmp, target); err != nil {
			return err
		}
	}

	return s.updateManifest(a, count)
}

func (s *FSStore) updateManifest(a Artifact, count int) error {
	path := filepath.Join(s.basePath, manifestFile)
	m, _ := readManifest(path)
	m.record(a, count, s.now().UTC())
	return writeManifest(s.basePath, m)
}

// Manifest returns the current manifest, or an empty one when none was written yet.
func (s *FSStore) Manifest() Manifest {
	m, _ := readManifest(filepath.Join(s.basePath, manifestFile))
	return m
}
