package jobs

import (
	"context"
	"maps"
	"sync"
	"time"
)

// RunEvent captures one maintenance pass applied by the worker.
type RunEvent struct {
	Job        string
	Action     string
	OccurredAt time.Time
	Details    map[string]any
}

// RunRecorder persists worker run events.
type RunRecorder interface {
	Record(ctx context.Context, event RunEvent) error
	List(ctx context.Context) ([]RunEvent, error)
	Clear(ctx context.Context) error
}

// InMemoryRunRecorder accumulates run events in-memory for tests.
type InMemoryRunRecorder struct {
	mu     sync.Mutex
	events []RunEvent
	err    error
}

// NewInMemoryRunRecorder constructs an empty recorder.
func NewInMemoryRunRecorder() *InMemoryRunRecorder {
	return &InMemoryRunRecorder{}
}

// Record stores the supplied event.
func (r *InMemoryRunRecorder) Record(_ context.Context, event RunEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	copied := event
	if copied.Details != nil {
		copied.Details = maps.Clone(copied.Details)
	}
	r.events = append(r.events, copied)
	return nil
}

// Events returns a snapshot of recorded run entries.
func (r *InMemoryRunRecorder) Events() []RunEvent {
	events, _ := r.List(context.Background())
	return events
}

// Fail configures the recorder to return the supplied error on subsequent Record calls.
func (r *InMemoryRunRecorder) Fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

// List returns the run events recorded so far.
func (r *InMemoryRunRecorder) List(context.Context) ([]RunEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]RunEvent, len(r.events))
	copy(out, r.events)
	return out, nil
}

// Clear removes all recorded events.
func (r *InMemoryRunRecorder) Clear(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
	return nil
}
