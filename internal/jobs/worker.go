package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/goliatone/go-lingo/catalog"
	"github.com/goliatone/go-lingo/internal/logging"
	"github.com/goliatone/go-lingo/internal/scheduler"
	"github.com/goliatone/go-lingo/pkg/interfaces"
)

// CatalogRefresher re-fetches the language catalog from the backend.
type CatalogRefresher interface {
	Refresh(ctx context.Context) ([]*catalog.Language, error)
}

// HistoryPruner drops stored translations beyond the retention cap.
type HistoryPruner interface {
	Prune(ctx context.Context, keep int) (int, error)
}

const (
	defaultBatchSize     = 50
	defaultSweepInterval = time.Hour
	defaultPollInterval  = time.Minute
)

// Worker drains due maintenance jobs from the scheduler. Periodic jobs
// re-enqueue themselves under the same key after a successful pass, so a
// single Schedule call keeps the cadence going for the process lifetime.
type Worker struct {
	scheduler interfaces.Scheduler
	catalog   CatalogRefresher
	entries   HistoryPruner
	recorder  RunRecorder
	logger    interfaces.Logger
	now       func() time.Time
	batchSize int

	refreshEvery time.Duration
	sweepEvery   time.Duration
	retention    int
}

// Option configures the worker at construction time.
type Option func(*Worker)

// WithRunRecorder captures a run event per handled job.
func WithRunRecorder(recorder RunRecorder) Option {
	return func(w *Worker) {
		w.recorder = recorder
	}
}

// WithLogger overrides the worker logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(w *Worker) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithClock overrides the internal clock, used mainly for tests.
func WithClock(clock func() time.Time) Option {
	return func(w *Worker) {
		if clock != nil {
			w.now = clock
		}
	}
}

// WithBatchSize caps how many due jobs a single Process pass drains.
func WithBatchSize(size int) Option {
	return func(w *Worker) {
		if size > 0 {
			w.batchSize = size
		}
	}
}

// WithRefreshInterval sets the catalog refresh cadence. Zero disables the
// refresh job.
func WithRefreshInterval(every time.Duration) Option {
	return func(w *Worker) {
		if every > 0 {
			w.refreshEvery = every
		}
	}
}

// WithRetention sets how many history entries each sweep keeps. Zero disables
// the cleanup job.
func WithRetention(keep int) Option {
	return func(w *Worker) {
		if keep > 0 {
			w.retention = keep
		}
	}
}

// WithSweepInterval overrides how often the history cleanup job runs.
func WithSweepInterval(every time.Duration) Option {
	return func(w *Worker) {
		if every > 0 {
			w.sweepEvery = every
		}
	}
}

// NewWorker wires the maintenance worker. A nil refresher or pruner disables
// the matching job, so callers only pass the collaborators they schedule.
func NewWorker(sched interfaces.Scheduler, refresher CatalogRefresher, pruner HistoryPruner, opts ...Option) *Worker {
	w := &Worker{
		scheduler:  sched,
		catalog:    refresher,
		entries:    pruner,
		logger:     logging.NoOp(),
		now:        time.Now,
		batchSize:  defaultBatchSize,
		sweepEvery: defaultSweepInterval,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Schedule enqueues the periodic jobs this worker is configured for. Both use
// fixed keys, so calling Schedule again resets the pending runs instead of
// stacking duplicates.
func (w *Worker) Schedule(ctx context.Context) error {
	if w.scheduler == nil {
		return errors.New("jobs: scheduler is nil")
	}
	now := w.now()
	if w.catalog != nil && w.refreshEvery > 0 {
		if _, err := w.scheduler.Enqueue(ctx, interfaces.JobSpec{
			Key:   scheduler.LanguagesRefreshJobKey,
			Type:  scheduler.JobTypeLanguagesRefresh,
			RunAt: now.Add(w.refreshEvery),
		}); err != nil {
			return err
		}
	}
	if w.entries != nil && w.retention > 0 {
		if _, err := w.scheduler.Enqueue(ctx, interfaces.JobSpec{
			Key:   scheduler.HistoryCleanupJobKey,
			Type:  scheduler.JobTypeHistoryCleanup,
			RunAt: now.Add(w.sweepEvery),
		}); err != nil {
			return err
		}
	}
	return nil
}

// Run drains due jobs on a fixed tick until the context is cancelled.
func (w *Worker) Run(ctx context.Context, every time.Duration) error {
	if every <= 0 {
		every = defaultPollInterval
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.Process(ctx); err != nil {
				w.logger.Warn("worker.process.failed", "error", err)
			}
		}
	}
}

// Process drains one batch of due jobs. Failed jobs go back to the scheduler
// for retry; successful periodic jobs enqueue their follow-up run.
func (w *Worker) Process(ctx context.Context) error {
	if w.scheduler == nil {
		return errors.New("jobs: scheduler is nil")
	}
	deadline := w.now()
	due, err := w.scheduler.ListDue(ctx, deadline, w.batchSize)
	if err != nil {
		return err
	}
	for _, job := range due {
		if job == nil {
			continue
		}
		next, err := w.handleJob(ctx, job, deadline)
		if err != nil {
			w.logger.Warn("worker.job.failed", "job_type", job.Type, "job_id", job.ID, "attempt", job.Attempt, "error", err)
			_ = w.scheduler.MarkFailed(ctx, job.ID, err)
			continue
		}
		_ = w.scheduler.MarkDone(ctx, job.ID)
		if next != nil {
			if _, err := w.scheduler.Enqueue(ctx, *next); err != nil {
				w.logger.Warn("worker.reschedule.failed", "job_type", job.Type, "error", err)
			}
		}
	}
	return nil
}

func (w *Worker) handleJob(ctx context.Context, job *interfaces.Job, now time.Time) (*interfaces.JobSpec, error) {
	switch job.Type {
	case scheduler.JobTypeLanguagesRefresh:
		return w.processLanguagesRefresh(ctx, job, now)
	case scheduler.JobTypeHistoryCleanup:
		return w.processHistoryCleanup(ctx, job, now)
	default:
		return nil, nil
	}
}

func (w *Worker) processLanguagesRefresh(ctx context.Context, job *interfaces.Job, now time.Time) (*interfaces.JobSpec, error) {
	if w.catalog == nil {
		return nil, errors.New("jobs: catalog refresher is nil")
	}
	languages, err := w.catalog.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	w.record(ctx, RunEvent{
		Job:        job.Type,
		Action:     "refresh",
		OccurredAt: now,
		Details:    buildRunDetails(job, map[string]any{"languages": len(languages)}),
	})
	w.logger.Debug("worker.languages.refreshed", "languages", len(languages))
	return w.nextRun(job, now, w.refreshEvery), nil
}

func (w *Worker) processHistoryCleanup(ctx context.Context, job *interfaces.Job, now time.Time) (*interfaces.JobSpec, error) {
	if w.entries == nil {
		return nil, errors.New("jobs: history pruner is nil")
	}
	removed, err := w.entries.Prune(ctx, w.retention)
	if err != nil {
		return nil, err
	}
	if removed > 0 {
		w.record(ctx, RunEvent{
			Job:        job.Type,
			Action:     "cleanup",
			OccurredAt: now,
			Details:    buildRunDetails(job, map[string]any{"removed": removed, "kept": w.retention}),
		})
	}
	w.logger.Debug("worker.history.pruned", "removed", removed, "kept", w.retention)
	return w.nextRun(job, now, w.sweepEvery), nil
}

// nextRun builds the follow-up spec for a periodic job. A zero interval makes
// the job one-shot. Late runs anchor on the current pass, so a stalled
// process does not replay every missed interval.
func (w *Worker) nextRun(job *interfaces.Job, now time.Time, every time.Duration) *interfaces.JobSpec {
	if every <= 0 {
		return nil
	}
	next := job.RunAt.Add(every)
	if !next.After(now) {
		next = now.Add(every)
	}
	return &interfaces.JobSpec{
		Key:         job.Key,
		Type:        job.Type,
		RunAt:       next,
		MaxAttempts: job.MaxAttempts,
	}
}

func (w *Worker) record(ctx context.Context, event RunEvent) {
	if w.recorder == nil {
		return
	}
	_ = w.recorder.Record(ctx, event)
}

func buildRunDetails(job *interfaces.Job, extra map[string]any) map[string]any {
	details := map[string]any{
		"job_id":  job.ID,
		"run_at":  job.RunAt,
		"attempt": job.Attempt,
	}
	for key, value := range extra {
		details[key] = value
	}
	return details
}
