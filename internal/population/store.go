package population

import (
	"fmt"
	"sync"

	"github.com/eugenenazirov/apportionment/internal/apportion"
)

// Store provides access to the population table used for apportionment.
type Store interface {
	Distribution() (apportion.Distribution, error)
}

// MemoryStore keeps the active table in memory and guards access with a RWMutex.
// The table is fixed once the application has started; Load exists for wiring.
type MemoryStore struct {
	mu   sync.RWMutex
	dist apportion.Distribution
}

// NewMemoryStore initialises the store with the bundled 2013 table.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		dist: Census2013(),
	}
}

// Distribution returns a defensive copy of the active table.
func (s *MemoryStore) Distribution() (apportion.Distribution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.dist.Clone(), nil
}

// Load validates dist and makes it the active table.
func (s *MemoryStore) Load(dist apportion.Distribution) error {
	if err := apportion.Validate(dist, 1); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTable, err)
	}

	s.mu.Lock()
	s.dist = dist.Clone()
	s.mu.Unlock()

	return nil
}
