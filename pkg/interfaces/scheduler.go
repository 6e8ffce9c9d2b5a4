package interfaces

import (
	"context"
	"errors"
	"time"
)

// ErrJobNotFound is returned by lookups and transitions that reference a job
// the scheduler has no record of.
var ErrJobNotFound = errors.New("scheduler: job not found")

// Scheduler defers work to a later instant, such as catalog refreshes and
// history cleanup sweeps. Implementations own persistence and clock handling;
// callers drain due work with ListDue and report outcomes back through
// MarkDone and MarkFailed.
type Scheduler interface {
	// Enqueue stores a job to run at spec.RunAt. When spec.Key matches an
	// existing job, that job is replaced rather than duplicated.
	Enqueue(ctx context.Context, spec JobSpec) (*Job, error)
	// Cancel stops the identified job from running.
	Cancel(ctx context.Context, id string) error
	// CancelByKey is Cancel addressed by the job's unique key.
	CancelByKey(ctx context.Context, key string) error
	// Get loads a job by identifier.
	Get(ctx context.Context, id string) (*Job, error)
	// GetByKey loads a job by its unique key.
	GetByKey(ctx context.Context, key string) (*Job, error)
	// ListDue returns jobs still pending whose RunAt is at or before until,
	// oldest first. A positive limit caps the batch.
	ListDue(ctx context.Context, until time.Time, limit int) ([]*Job, error)
	// MarkDone records a successful run.
	MarkDone(ctx context.Context, id string) error
	// MarkFailed records a failed run. The job stays eligible for ListDue
	// until its attempt budget is spent.
	MarkFailed(ctx context.Context, id string, err error) error
}

// JobStatus tracks where a job sits in its lifecycle.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusCompleted JobStatus = "completed"
	JobStatusCanceled  JobStatus = "canceled"
	JobStatusFailed    JobStatus = "failed"
)

// JobSpec is the caller-supplied portion of a job.
type JobSpec struct {
	// Key dedupes jobs: re-enqueueing under the same key replaces the
	// earlier entry instead of scheduling a second one. Empty keys skip
	// deduping.
	Key string
	// Type names the action, e.g. lingo.languages.refresh.
	Type string
	// RunAt is the earliest instant the job may execute.
	RunAt time.Time
	// Payload carries whatever the worker needs to perform the job.
	Payload map[string]any
	// MaxAttempts caps failed runs before the job is marked failed. Zero
	// defers to the scheduler's own default.
	MaxAttempts int
}

// Job is a JobSpec the scheduler has accepted, together with the bookkeeping
// it maintains across runs.
type Job struct {
	JobSpec
	ID        string
	Attempt   int
	LastError string
	Status    JobStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
