package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-lingo/internal/logging"
	"github.com/goliatone/go-lingo/pkg/interfaces"
)

// LanguageRepository abstracts storage operations for the language catalog.
// It backs the embedded server and seeding paths; the client-side cache talks
// to a Provider instead.
type LanguageRepository interface {
	Upsert(ctx context.Context, language *Language) (*Language, error)
	GetByCode(ctx context.Context, code string) (*Language, error)
	List(ctx context.Context) ([]*Language, error)
}

// NotFoundError represents missing records from repository lookups.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

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

// service implements Service.
type service struct {
	provider Provider
	logger   interfaces.Logger

	mu        sync.RWMutex
	loaded    bool
	languages []*Language
	byCode    map[string]*Language
}

// NewService constructs the catalog cache around the supplied provider.
func NewService(provider Provider, opts ...ServiceOption) Service {
	s := &service{
		provider: provider,
		logger:   logging.NoOp(),
		byCode:   map[string]*Language{},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Load fetches the catalog exactly once. Concurrent callers serialize on the
// cache lock, so only the first one performs the network round trip.
func (s *service) Load(ctx context.Context) ([]*Language, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return cloneLanguages(s.languages), nil
	}
	return s.fetchLocked(ctx)
}

// Refresh always re-fetches. A failed refresh keeps the previous cache.
func (s *service) Refresh(ctx context.Context) ([]*Language, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.fetchLocked(ctx)
}

func (s *service) fetchLocked(ctx context.Context) ([]*Language, error) {
	if s.provider == nil {
		return nil, ErrProviderRequired
	}

	languages, err := s.provider.Languages(ctx)
	if err != nil {
		s.logger.Warn("catalog.load.failed", "error", err)
		return nil, err
	}

	cleaned := make([]*Language, 0, len(languages))
	index := make(map[string]*Language, len(languages))
	for _, language := range languages {
		if language == nil {
			continue
		}
		code := strings.ToLower(strings.TrimSpace(language.Code))
		if code == "" {
			continue
		}
		copied := *language
		copied.Code = code
		cleaned = append(cleaned, &copied)
		index[code] = &copied
	}

	s.languages = cleaned
	s.byCode = index
	s.loaded = true
	s.logger.Debug("catalog.load.success", "languages", len(cleaned))

	return cloneLanguages(cleaned), nil
}

// Languages returns the cached catalog.
func (s *service) Languages() []*Language {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneLanguages(s.languages)
}

// Loaded reports whether a load has succeeded.
func (s *service) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loaded
}

// Lookup finds a cached language by code.
func (s *service) Lookup(code string) (*Language, bool) {
	normalized := strings.ToLower(strings.TrimSpace(code))
	if normalized == "" {
		return nil, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	language, ok := s.byCode[normalized]
	if !ok {
		return nil, false
	}
	copied := *language
	return &copied, true
}

// ResolveName maps a code to its display name, echoing the code when the
// catalog does not know it. It never fails: an unloaded cache simply resolves
// every code to itself.
func (s *service) ResolveName(code string) string {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return trimmed
	}
	if language, ok := s.Lookup(trimmed); ok {
		return language.Name
	}
	return trimmed
}

func cloneLanguages(src []*Language) []*Language {
	out := make([]*Language, 0, len(src))
	for _, language := range src {
		if language == nil {
			continue
		}
		copied := *language
		out = append(out, &copied)
	}
	return out
}
