// internal/store/memory.go
//
// In-memory implementation of the round Store.
// This is a lightweight session layer for ephemeral rounds, primarily in
// development/testing, or when durability across restarts is not required.
//
// Characteristics:
//   - Stores *game.Round objects keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.
//   - ErrNotFound is returned for missing round IDs on Get().

package store

import (
	"context"
	"errors"
	"sync"

	"phonetle/internal/game"
)

// ErrNotFound is returned when a round ID has no stored state.
var ErrNotFound = errors.New("round not found")

// Store defines the persistence interface for rounds.
// Implementations may be backed by memory (this file) or SQLite (sqlite.go).
type Store interface {
	// Save persists or updates a round's state.
	Save(ctx context.Context, r *game.Round) error

	// Get retrieves a round by ID.
	// Returns ErrNotFound if the round is not stored.
	Get(ctx context.Context, id string) (*game.Round, error)
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu     sync.RWMutex           // guards rounds map
	rounds map[string]*game.Round // keyed by Round.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{rounds: make(map[string]*game.Round)}
}

// Save adds or updates the round in the map.
func (m *memory) Save(ctx context.Context, r *game.Round) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rounds[r.ID] = r
	return nil
}

// Get looks up a round by ID.
func (m *memory) Get(ctx context.Context, id string) (*game.Round, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.rounds[id]; ok {
		return r, nil
	}
	return nil, ErrNotFound
}
