package teststubs

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/nba-elo-sim/internal/domain/games"
	"github.com/preston-bernstein/nba-elo-sim/internal/domain/teams"
	"github.com/preston-bernstein/nba-elo-sim/internal/snapshots"
)

// StubProvider is a test double for providers.DataProvider.
type StubProvider struct {
	Teams   []teams.Team
	Games   []games.Game
	Err     error
	Calls   atomic.Int32
	Seasons [][]int
	Notify  chan struct{}
	mu      sync.Mutex
}

// FetchTeams returns configured teams and error while tracking calls.
func (s *StubProvider) FetchTeams(ctx context.Context) ([]teams.Team, error) {
	_ = ctx
	s.notify()
	s.Calls.Add(1)
	return append([]teams.Team(nil), s.Teams...), s.Err
}

// FetchGames returns configured games and error while tracking calls and requested seasons.
func (s *StubProvider) FetchGames(ctx context.Context, seasons []int) ([]games.Game, error) {
	_ = ctx
	s.notify()
	s.Calls.Add(1)
	s.mu.Lock()
	s.Seasons = append(s.Seasons, seasons)
	s.mu.Unlock()
	return append([]games.Game(nil), s.Games...), s.Err
}

func (s *StubProvider) notify() {
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
}

// StubSnapshotStore is an in-memory snapshots.Store.
type StubSnapshotStore struct {
	mu      sync.Mutex
	teams   map[snapshots.Artifact][]teams.Team
	games   map[snapshots.Artifact][]games.Game
	Saves   map[snapshots.Artifact]int
	LoadErr error
	SaveErr error
}

func (s *StubSnapshotStore) init() {
	if s.teams == nil {
		s.teams = make(map[snapshots.Artifact][]teams.Team)
		s.games = make(map[snapshots.Artifact][]games.Game)
		s.Saves = make(map[snapshots.Artifact]int)
	}
}

// LoadTeams returns a copy of the stored teams or snapshots.ErrNotFound.
func (s *StubSnapshotStore) LoadTeams(ctx context.Context, a snapshots.Artifact) ([]teams.Team, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	s.init()
	list, ok := s.teams[a]
	if !ok {
		return nil, fmt.Errorf("%s: %w", a, snapshots.ErrNotFound)
	}
	return append([]teams.Team(nil), list...), nil
}

// SaveTeams stores a copy of the teams.
func (s *StubSnapshotStore) SaveTeams(ctx context.Context, a snapshots.Artifact, list []teams.Team) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.init()
	s.teams[a] = append([]teams.Team(nil), list...)
	s.Saves[a]++
	return nil
}

// LoadGames returns a copy of the stored games or snapshots.ErrNotFound.
func (s *StubSnapshotStore) LoadGames(ctx context.Context, a snapshots.Artifact) ([]games.Game, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	s.init()
	list, ok := s.games[a]
	if !ok {
		return nil, fmt.Errorf("%s: %w", a, snapshots.ErrNotFound)
	}
	return append([]games.Game(nil), list...), nil
}

// SaveGames stores a copy of the games.
func (s *StubSnapshotStore) SaveGames(ctx context.Context, a snapshots.Artifact, list []games.Game) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.init()
	s.games[a] = append([]games.Game(nil), list...)
	s.Saves[a]++
	return nil
}

// SaveCount reports how many times an artifact was saved.
func (s *StubSnapshotStore) SaveCount(a snapshots.Artifact) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Saves[a]
}
