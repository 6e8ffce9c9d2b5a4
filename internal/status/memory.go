package status

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryCheckRepository is an in-memory CheckRepository used by tests and
// the default embedded server wiring.
type MemoryCheckRepository struct {
	mu     sync.RWMutex
	checks map[uuid.UUID]*Check
}

// NewMemoryCheckRepository builds an empty in-memory repository.
func NewMemoryCheckRepository() *MemoryCheckRepository {
	return &MemoryCheckRepository{
		checks: make(map[uuid.UUID]*Check),
	}
}

// Upsert stores the check under its normalized client name. A repeat post
// keeps the original id and refreshes the timestamp.
func (r *MemoryCheckRepository) Upsert(_ context.Context, check *Check) (*Check, error) {
	if check == nil {
		return nil, ErrClientNameRequired
	}
	normalized, err := NormalizeClientName(check.ClientName)
	if err != nil {
		return nil, err
	}

	copied := *check
	copied.ID = CheckID(normalized)
	if copied.Timestamp.IsZero() {
		copied.Timestamp = time.Now().UTC()
	}

	r.mu.Lock()
	r.checks[copied.ID] = &copied
	r.mu.Unlock()

	out := copied
	return &out, nil
}

// List returns every check, newest first.
func (r *MemoryCheckRepository) List(_ context.Context) ([]*Check, error) {
	r.mu.RLock()
	out := make([]*Check, 0, len(r.checks))
	for _, check := range r.checks {
		copied := *check
		out = append(out, &copied)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}
