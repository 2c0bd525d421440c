package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

// Clock returns the current instant. Its location defines the local calendar
// used for date-keys and the day rollover.
type Clock func() time.Time

func SystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return func() time.Time { return time.Now().In(loc) }
}

// SaveScheduler is the write side of the persistence worker.
type SaveScheduler interface {
	Schedule(userID string, data *domain.AppData)
	Flush(ctx context.Context, userID string) error
	Cancel(userID string)
	Settled(userID string) bool
}

// StateStore owns the in-memory app state of every active user. The first
// access loads the persisted snapshot and every access reconciles it against
// today's date, so a long-running process still resets completion flags at
// midnight.
type StateStore struct {
	repo  domain.SnapshotRepository
	saver SaveScheduler
	clock Clock

	mu       sync.Mutex
	states   map[string]*domain.AppData
	lastSeen map[string]time.Time
}

func NewStateStore(repo domain.SnapshotRepository, saver SaveScheduler, clock Clock) *StateStore {
	if clock == nil {
		clock = SystemClock(time.Local)
	}
	return &StateStore{
		repo:     repo,
		saver:    saver,
		clock:    clock,
		states:   make(map[string]*domain.AppData),
		lastSeen: make(map[string]time.Time),
	}
}

func (s *StateStore) Now() time.Time {
	return s.clock()
}

// current must be called with s.mu held. A load error other than a missing or
// corrupt snapshot leaves nothing cached, so the next access retries.
func (s *StateStore) current(ctx context.Context, userID string, now time.Time) (*domain.AppData, error) {
	data, ok := s.states[userID]
	if !ok {
		loaded, err := s.load(ctx, userID)
		if err != nil {
			return nil, err
		}
		data = loaded
		s.states[userID] = data
	}
	s.lastSeen[userID] = now

	if data.Reconcile(domain.DateKey(now)) == domain.Stale {
		log.Printf("[STATE] new day for user %s, completion flags reset", userID)
		s.saver.Schedule(userID, data.Clone())
	}
	return data, nil
}

func (s *StateStore) load(ctx context.Context, userID string) (*domain.AppData, error) {
	data, err := s.repo.Load(ctx, userID)
	switch {
	case err == nil && data != nil:
		return data, nil
	case err == nil, errors.Is(err, domain.ErrSnapshotNotFound):
		return domain.DefaultAppData(), nil
	case errors.Is(err, domain.ErrSnapshotCorrupt):
		log.Printf("[STATE] unreadable snapshot for user %s, starting fresh: %v", userID, err)
		return domain.DefaultAppData(), nil
	default:
		return nil, fmt.Errorf("state store: failed to load snapshot: %w", err)
	}
}

// Snapshot returns a private copy of the user's state together with the
// instant it was reconciled against.
func (s *StateStore) Snapshot(ctx context.Context, userID string) (*domain.AppData, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	data, err := s.current(ctx, userID, now)
	if err != nil {
		return nil, now, err
	}
	return data.Clone(), now, nil
}

// Update runs fn against a working copy of the user's state. The copy is
// committed and a debounced save is scheduled only when fn succeeds.
func (s *StateStore) Update(ctx context.Context, userID string, fn func(data *domain.AppData, now time.Time) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	data, err := s.current(ctx, userID, now)
	if err != nil {
		return err
	}
	working := data.Clone()
	if err := fn(working, now); err != nil {
		return err
	}

	s.states[userID] = working
	s.saver.Schedule(userID, working.Clone())
	return nil
}

// Replace imports a full state blob and writes it through immediately.
func (s *StateStore) Replace(ctx context.Context, userID string, data *domain.AppData) error {
	if err := data.Validate(); err != nil {
		return err
	}

	imported := data.Clone()
	imported.Normalize()
	imported.Version = domain.CurrentDataVersion

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	imported.Reconcile(domain.DateKey(now))
	s.states[userID] = imported
	s.lastSeen[userID] = now
	s.saver.Schedule(userID, imported.Clone())

	if err := s.saver.Flush(ctx, userID); err != nil {
		return fmt.Errorf("state store: failed to persist import: %w", err)
	}
	return nil
}

// Reset wipes the user's state and persisted snapshot.
func (s *StateStore) Reset(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.saver.Cancel(userID)
	if err := s.repo.Delete(ctx, userID); err != nil && !errors.Is(err, domain.ErrSnapshotNotFound) {
		return fmt.Errorf("state store: failed to delete snapshot: %w", err)
	}

	now := s.clock()
	fresh := domain.DefaultAppData()
	fresh.Reconcile(domain.DateKey(now))
	s.states[userID] = fresh
	s.lastSeen[userID] = now
	return nil
}

// EvictIdle drops the cached state of users not seen for ttl whose snapshot
// is fully persisted. The next access reloads from storage.
func (s *StateStore) EvictIdle(ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.clock().Add(-ttl)
	evicted := 0
	for userID, seen := range s.lastSeen {
		if seen.After(cutoff) || !s.saver.Settled(userID) {
			continue
		}
		delete(s.states, userID)
		delete(s.lastSeen, userID)
		evicted++
	}
	return evicted
}

// Cached reports how many users have state in memory.
func (s *StateStore) Cached() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.states)
}

// RunEviction calls EvictIdle every interval until ctx is done.
func (s *StateStore) RunEviction(ctx context.Context, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.EvictIdle(ttl); n > 0 {
				log.Printf("[STATE] evicted %d idle user(s)", n)
			}
		}
	}
}
