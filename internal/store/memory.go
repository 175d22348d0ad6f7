// internal/store/memory.go
//
// In-memory implementation of the match Store interface.
// Live matches are ephemeral session state; durable history goes to
// the database once rounds are judged.
//
// Characteristics:
//   - Stores *judge.Match keyed by ID in a map.
//   - Concurrency-safe via RWMutex.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/robalobadob/rps-plus/internal/judge"
)

// ErrNotFound is returned by Get for unknown match IDs.
var ErrNotFound = errors.New("match not found")

// Store defines the persistence interface for live match sessions.
// Implementations may be backed by memory (this package), Redis, etc.
type Store interface {
	// Save persists or updates a match.
	Save(ctx context.Context, m *judge.Match) error

	// Get retrieves a match by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*judge.Match, error)
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu      sync.RWMutex
	matches map[string]*judge.Match
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{matches: make(map[string]*judge.Match)}
}

// Save adds or updates the match in the map.
func (m *memory) Save(ctx context.Context, match *judge.Match) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matches[match.ID] = match
	return nil
}

// Get looks up a match by ID.
func (m *memory) Get(ctx context.Context, id string) (*judge.Match, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if match, ok := m.matches[id]; ok {
		return match, nil
	}
	return nil, ErrNotFound
}
