package history

import (
	"context"
	"sync"

	"github.com/goliatone/go-lingo/internal/logging"
	"github.com/goliatone/go-lingo/pkg/interfaces"
	"github.com/goliatone/go-lingo/translate"
)

const (
	// DefaultRecentLimit bounds the recents cache shown on the text screen.
	DefaultRecentLimit = 5
	// DefaultFetchLimit is how many entries a refresh asks the source for.
	DefaultFetchLimit = 50
)

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithLogger overrides the module logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRecentLimit caps how many entries the recents cache holds.
func WithRecentLimit(limit int) ServiceOption {
	return func(s *service) {
		if limit > 0 {
			s.recentLimit = limit
		}
	}
}

// WithFetchLimit sets how many entries a refresh requests from the source.
func WithFetchLimit(limit int) ServiceOption {
	return func(s *service) {
		if limit > 0 {
			s.fetchLimit = limit
		}
	}
}

type service struct {
	source Source
	logger interfaces.Logger

	recentLimit int
	fetchLimit  int

	mu     sync.RWMutex
	recent []*translate.Result
}

// NewService constructs the recents cache over a history source.
func NewService(source Source, opts ...ServiceOption) Service {
	svc := &service{
		source:      source,
		logger:      logging.NoOp(),
		recentLimit: DefaultRecentLimit,
		fetchLimit:  DefaultFetchLimit,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc
}

// Refresh fetches history and keeps the leading entries in source order. The
// source already returns newest first, so no re-sorting happens here.
func (s *service) Refresh(ctx context.Context) error {
	if s.source == nil {
		return ErrSourceRequired
	}

	entries, err := s.source.TranslationHistory(ctx, s.fetchLimit)
	if err != nil {
		s.logger.Error("history.refresh.failed", "error", err)
		return err
	}

	if len(entries) > s.recentLimit {
		entries = entries[:s.recentLimit]
	}

	s.mu.Lock()
	s.recent = cloneEntries(entries)
	s.mu.Unlock()

	s.logger.Debug("history.refresh.completed", "entries", len(entries))
	return nil
}

func (s *service) Recent() []*translate.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneEntries(s.recent)
}

func (s *service) History(ctx context.Context, limit int) ([]*translate.Result, error) {
	if s.source == nil {
		return nil, ErrSourceRequired
	}
	if limit <= 0 {
		limit = s.fetchLimit
	}
	return s.source.TranslationHistory(ctx, limit)
}

func cloneEntries(entries []*translate.Result) []*translate.Result {
	if entries == nil {
		return nil
	}
	cloned := make([]*translate.Result, 0, len(entries))
	for _, entry := range entries {
		cloned = append(cloned, cloneEntry(entry))
	}
	return cloned
}

func cloneEntry(entry *translate.Result) *translate.Result {
	if entry == nil {
		return nil
	}
	copied := *entry
	if entry.Context != nil {
		ctxVal := *entry.Context
		copied.Context = &ctxVal
	}
	if entry.Confidence != nil {
		conf := *entry.Confidence
		copied.Confidence = &conf
	}
	return &copied
}
