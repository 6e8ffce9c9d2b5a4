package history

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-lingo/translate"
)

// EntryRepository persists translation entries for the embedded server and
// the retention job. List returns entries newest first.
type EntryRepository interface {
	Create(ctx context.Context, entry *translate.Result) (*translate.Result, error)
	List(ctx context.Context, limit int) ([]*translate.Result, error)
	// Prune deletes the oldest entries beyond keep and reports how many were
	// removed. A non-positive keep is a no-op.
	Prune(ctx context.Context, keep int) (int, error)
}

type storedEntry struct {
	entry *translate.Result
	seq   uint64
}

// MemoryEntryRepository is an in-memory EntryRepository used by tests and the
// default embedded server wiring.
type MemoryEntryRepository struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]storedEntry
	seq     uint64
}

// NewMemoryEntryRepository builds an empty in-memory repository.
func NewMemoryEntryRepository() *MemoryEntryRepository {
	return &MemoryEntryRepository{
		entries: make(map[uuid.UUID]storedEntry),
	}
}

func (r *MemoryEntryRepository) Create(ctx context.Context, entry *translate.Result) (*translate.Result, error) {
	if entry == nil {
		return nil, ErrEntryRequired
	}

	record := cloneEntry(entry)
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now().UTC()
	}

	r.mu.Lock()
	r.seq++
	r.entries[record.ID] = storedEntry{entry: record, seq: r.seq}
	r.mu.Unlock()

	return cloneEntry(record), nil
}

func (r *MemoryEntryRepository) List(ctx context.Context, limit int) ([]*translate.Result, error) {
	r.mu.RLock()
	stored := make([]storedEntry, 0, len(r.entries))
	for _, item := range r.entries {
		stored = append(stored, item)
	}
	r.mu.RUnlock()

	sortNewestFirst(stored)

	if limit > 0 && len(stored) > limit {
		stored = stored[:limit]
	}

	entries := make([]*translate.Result, 0, len(stored))
	for _, item := range stored {
		entries = append(entries, cloneEntry(item.entry))
	}
	return entries, nil
}

func (r *MemoryEntryRepository) Prune(ctx context.Context, keep int) (int, error) {
	if keep <= 0 {
		return 0, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.entries) <= keep {
		return 0, nil
	}

	stored := make([]storedEntry, 0, len(r.entries))
	for _, item := range r.entries {
		stored = append(stored, item)
	}
	sortNewestFirst(stored)

	removed := 0
	for _, item := range stored[keep:] {
		delete(r.entries, item.entry.ID)
		removed++
	}
	return removed, nil
}

// sortNewestFirst orders by timestamp descending; entries sharing a timestamp
// fall back to insertion order, newest first, so pagination stays stable.
func sortNewestFirst(stored []storedEntry) {
	sort.SliceStable(stored, func(i, j int) bool {
		if stored[i].entry.Timestamp.Equal(stored[j].entry.Timestamp) {
			return stored[i].seq > stored[j].seq
		}
		return stored[i].entry.Timestamp.After(stored[j].entry.Timestamp)
	})
}
