package store

import (
	"errors"
	"sync"
	"time"

	"github.com/hillbillynomad/powder/internal/snowfall"
)

// ErrNotFound is returned when no snapshot exists for a resort.
var ErrNotFound = errors.New("no forecast snapshot for resort")

// ForecastSnapshot is one aggregated forecast fetched at a point in
// time for a single resort.
type ForecastSnapshot struct {
	ResortSlug string                    `json:"resortSlug"`
	FetchedAt  time.Time                 `json:"fetchedAt"`
	Horizon    int                       `json:"horizonDays"`
	Days       []snowfall.DailyAggregate `json:"days"`
}

// Stale reports whether the snapshot is older than maxAge.
func (s ForecastSnapshot) Stale(maxAge time.Duration) bool {
	return time.Since(s.FetchedAt) > maxAge
}

type snapshotHistory struct {
	snapshots []ForecastSnapshot
}

// MemoryStore is a concurrency-safe in-memory store of recent forecast
// snapshots per resort, with retention by count and age.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]*snapshotHistory

	maxHistory int
	maxAge     time.Duration
}

// NewMemoryStore creates a MemoryStore. maxHistory <= 0 means
// unlimited; maxAge <= 0 disables age-based eviction.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string]*snapshotHistory),
		maxHistory: maxHistory,
		maxAge:     maxAge,
	}
}

// Save appends a snapshot for its resort and enforces retention.
func (s *MemoryStore) Save(snap ForecastSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, ok := s.data[snap.ResortSlug]
	if !ok {
		history = &snapshotHistory{}
		s.data[snap.ResortSlug] = history
	}

	history.snapshots = append(history.snapshots, snap)

	if s.maxHistory > 0 && len(history.snapshots) > s.maxHistory {
		over := len(history.snapshots) - s.maxHistory
		history.snapshots = history.snapshots[over:]
	}

	if s.maxAge > 0 {
		cutoff := time.Now().Add(-s.maxAge)
		i := 0
		for ; i < len(history.snapshots); i++ {
			if !history.snapshots[i].FetchedAt.Before(cutoff) {
				break
			}
		}
		if i > 0 && i < len(history.snapshots) {
			history.snapshots = history.snapshots[i:]
		}
	}
}

// Latest returns the most recent snapshot for a resort slug.
func (s *MemoryStore) Latest(slug string) (ForecastSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[slug]
	if !ok || len(history.snapshots) == 0 {
		return ForecastSnapshot{}, ErrNotFound
	}
	return history.snapshots[len(history.snapshots)-1], nil
}
