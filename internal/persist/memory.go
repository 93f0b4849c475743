package persist

import (
	"context"
	"sync"

	"sadat/internal/models"
)

// MemoryAdapter keeps the snapshot in process memory. Used by tests and for
// ephemeral runs that should not leave data behind.
type MemoryAdapter struct {
	mu   sync.Mutex
	data []byte
}

// NewMemory creates an empty in-memory adapter.
func NewMemory() *MemoryAdapter {
	return &MemoryAdapter{}
}

// Load returns the stored snapshot or ErrNoSnapshot.
func (a *MemoryAdapter) Load(_ context.Context) (*models.State, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Decode(a.data)
}

// Save stores the snapshot.
func (a *MemoryAdapter) Save(_ context.Context, state *models.State) error {
	data, err := Encode(state)
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.data = data
	a.mu.Unlock()
	return nil
}

// Clear drops the snapshot, as if the slot was never written.
func (a *MemoryAdapter) Clear() {
	a.mu.Lock()
	a.data = nil
	a.mu.Unlock()
}
