package scheduler

import (
	"context"
	"errors"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/goliatone/go-lingo/pkg/interfaces"
	"github.com/google/uuid"
)

const defaultMaxAttempts = 3

// NewInMemory creates the in-process scheduler used when background
// maintenance is enabled. Jobs live in memory only, which fits a client-side
// library: a restart simply re-schedules the catalog refresh and history
// sweep from configuration.
func NewInMemory(opts ...Option) interfaces.Scheduler {
	mem := &inMemoryScheduler{
		now:        time.Now,
		newID:      func() string { return uuid.NewString() },
		jobs:       make(map[string]*interfaces.Job),
		jobKeys:    make(map[string]string),
		retryLimit: defaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(mem)
	}
	return mem
}

// Option allows customizing the behaviour of the in-memory scheduler.
type Option func(*inMemoryScheduler)

// WithClock overrides the internal clock, used mainly for tests.
func WithClock(clock func() time.Time) Option {
	return func(s *inMemoryScheduler) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithIDGenerator overrides the ID generator used when enqueuing jobs.
func WithIDGenerator(generator func() string) Option {
	return func(s *inMemoryScheduler) {
		if generator != nil {
			s.newID = generator
		}
	}
}

// WithDefaultMaxAttempts overrides the retry budget applied when the job spec
// leaves MaxAttempts unset.
func WithDefaultMaxAttempts(limit int) Option {
	return func(s *inMemoryScheduler) {
		if limit > 0 {
			s.retryLimit = limit
		}
	}
}

type inMemoryScheduler struct {
	mu         sync.Mutex
	now        func() time.Time
	newID      func() string
	retryLimit int
	jobs       map[string]*interfaces.Job
	jobKeys    map[string]string
}

func (s *inMemoryScheduler) Enqueue(_ context.Context, spec interfaces.JobSpec) (*interfaces.Job, error) {
	if spec.RunAt.IsZero() {
		return nil, errors.New("scheduler: run_at is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// A keyed enqueue replaces whatever job was previously scheduled under
	// the same key, so periodic re-scheduling never piles up duplicates.
	if spec.Key != "" {
		if prior, ok := s.jobKeys[spec.Key]; ok {
			delete(s.jobs, prior)
		}
	}

	now := s.now()
	job := &interfaces.Job{
		JobSpec: interfaces.JobSpec{
			Key:         spec.Key,
			Type:        spec.Type,
			RunAt:       spec.RunAt,
			Payload:     maps.Clone(spec.Payload),
			MaxAttempts: spec.MaxAttempts,
		},
		ID:        s.newID(),
		Status:    interfaces.JobStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if job.MaxAttempts == 0 {
		job.MaxAttempts = s.retryLimit
	}

	s.jobs[job.ID] = job
	if job.Key != "" {
		s.jobKeys[job.Key] = job.ID
	}
	return cloneJob(job), nil
}

func (s *inMemoryScheduler) Cancel(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transitionLocked(id, s.cancelJob)
}

func (s *inMemoryScheduler) CancelByKey(_ context.Context, key string) error {
	if key == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.jobKeys[key]
	if !ok {
		return interfaces.ErrJobNotFound
	}
	return s.transitionLocked(id, s.cancelJob)
}

func (s *inMemoryScheduler) Get(_ context.Context, id string) (*interfaces.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookupLocked(id)
}

func (s *inMemoryScheduler) GetByKey(_ context.Context, key string) (*interfaces.Job, error) {
	if key == "" {
		return nil, interfaces.ErrJobNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.jobKeys[key]
	if !ok {
		return nil, interfaces.ErrJobNotFound
	}
	return s.lookupLocked(id)
}

func (s *inMemoryScheduler) ListDue(_ context.Context, until time.Time, limit int) ([]*interfaces.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	due := make([]*interfaces.Job, 0, len(s.jobs))
	for _, job := range s.jobs {
		if job.Status == interfaces.JobStatusPending && !job.RunAt.After(until) {
			due = append(due, cloneJob(job))
		}
	}
	sort.SliceStable(due, func(i, j int) bool {
		a, b := due[i], due[j]
		if !a.RunAt.Equal(b.RunAt) {
			return a.RunAt.Before(b.RunAt)
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

func (s *inMemoryScheduler) MarkDone(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transitionLocked(id, func(job *interfaces.Job) {
		job.Status = interfaces.JobStatusCompleted
		s.releaseKeyLocked(job)
	})
}

func (s *inMemoryScheduler) MarkFailed(_ context.Context, id string, failure error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transitionLocked(id, func(job *interfaces.Job) {
		job.Attempt++
		job.LastError = ""
		if failure != nil {
			job.LastError = failure.Error()
		}
		// Failed runs stay pending until the retry budget runs out.
		if job.MaxAttempts > 0 && job.Attempt >= job.MaxAttempts {
			job.Status = interfaces.JobStatusFailed
		} else {
			job.Status = interfaces.JobStatusPending
		}
	})
}

// transitionLocked applies a state change to a stored job and stamps the
// update time. Callers hold s.mu.
func (s *inMemoryScheduler) transitionLocked(id string, apply func(*interfaces.Job)) error {
	job, ok := s.jobs[id]
	if !ok {
		return interfaces.ErrJobNotFound
	}
	apply(job)
	job.UpdatedAt = s.now()
	return nil
}

func (s *inMemoryScheduler) lookupLocked(id string) (*interfaces.Job, error) {
	if job, ok := s.jobs[id]; ok {
		return cloneJob(job), nil
	}
	return nil, interfaces.ErrJobNotFound
}

func (s *inMemoryScheduler) cancelJob(job *interfaces.Job) {
	job.Status = interfaces.JobStatusCanceled
	s.releaseKeyLocked(job)
}

func (s *inMemoryScheduler) releaseKeyLocked(job *interfaces.Job) {
	if job.Key != "" {
		delete(s.jobKeys, job.Key)
	}
}

// cloneJob keeps stored jobs private: callers always receive a copy with its
// own payload map.
func cloneJob(job *interfaces.Job) *interfaces.Job {
	if job == nil {
		return nil
	}
	dup := *job
	dup.Payload = maps.Clone(job.Payload)
	return &dup
}
