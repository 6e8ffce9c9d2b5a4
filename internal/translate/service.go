package translate

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-lingo/internal/logging"
	"github.com/goliatone/go-lingo/pkg/interfaces"
	lingotranslate "github.com/goliatone/go-lingo/translate"
	"github.com/google/uuid"
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

// WithLanguagePair sets the initial source and target codes.
func WithLanguagePair(source, target string) ServiceOption {
	return func(s *service) {
		if trimmed := normalizeCode(source); trimmed != "" {
			s.source = trimmed
		}
		if trimmed := normalizeCode(target); trimmed != "" {
			s.target = trimmed
		}
	}
}

// WithRecents wires the recent-results cache refreshed after each success.
func WithRecents(recents RecentsRefresher) ServiceOption {
	return func(s *service) {
		s.recents = recents
	}
}

// WithCache short-circuits repeat translations through the supplied provider.
// Results are stored per source/target/context/text tuple for the given TTL.
func WithCache(cache interfaces.CacheProvider, ttl time.Duration) ServiceOption {
	return func(s *service) {
		s.cache = cache
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// service implements Service.
type service struct {
	backend  Backend
	recents  RecentsRefresher
	logger   interfaces.Logger
	cache    interfaces.CacheProvider
	cacheTTL time.Duration

	mu     sync.Mutex
	busy   bool
	source string
	target string
	input  string
	output string
	last   *Result
	notice string
}

// NewService constructs the text translation orchestrator.
func NewService(backend Backend, opts ...ServiceOption) Service {
	s := &service{
		backend:  backend,
		logger:   logging.NoOp(),
		source:   SourceAuto,
		target:   "es",
		cacheTTL: 10 * time.Minute,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Translate performs one translation round trip. Blank input fails locally,
// and a translation already in flight rejects the call instead of queueing it.
func (s *service) Translate(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, ErrEmptyInput
	}
	if s.backend == nil {
		return nil, ErrBackendRequired
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	s.busy = true
	s.input = req.Text
	s.notice = ""
	source := normalizeCode(req.Source)
	if source == "" {
		source = s.source
	}
	target := normalizeCode(req.Target)
	if target == "" {
		target = s.target
	}
	s.mu.Unlock()

	var key string
	if s.cache != nil {
		key = resultCacheKey(source, target, req.Context, req.Text)
		if hit := s.cachedResult(ctx, key); hit != nil {
			s.mu.Lock()
			s.busy = false
			s.output = hit.TranslatedText
			s.last = cloneResult(hit)
			s.mu.Unlock()
			s.logger.Debug("translate.text.cache_hit", "source", source, "target", target)
			return cloneResult(hit), nil
		}
	}

	result, err := s.backend.TranslateText(ctx, Request{
		Text:    req.Text,
		Context: req.Context,
		Source:  source,
		Target:  target,
	})

	s.mu.Lock()
	s.busy = false
	if err != nil {
		// A failed attempt keeps the previous output and result intact; only
		// the notice changes.
		s.notice = lingotranslate.FailureNotice(err)
		s.mu.Unlock()
		s.logger.Error("translate.text.failed", "error", err, "source", source, "target", target)
		return nil, err
	}
	s.output = result.TranslatedText
	s.last = cloneResult(result)
	s.mu.Unlock()

	if s.cache != nil && s.cacheTTL > 0 {
		// Store a copy so later state mutations never bleed into the cache.
		_ = s.cache.Set(ctx, key, cloneResult(result), s.cacheTTL)
	}

	s.logger.Info("translate.text.success",
		"entry_id", result.ID,
		"source", result.SourceLanguage,
		"target", result.TargetLanguage,
	)

	if s.recents != nil {
		if err := s.recents.Refresh(ctx); err != nil {
			s.logger.Warn("translate.recents.refresh_failed", "error", err)
		}
	}

	return cloneResult(result), nil
}

// SwapLanguages exchanges the language pair and, when both texts are present,
// the input/output fields with them. Auto-detect sources refuse the swap with
// a notice.
func (s *service) SwapLanguages() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.EqualFold(s.source, SourceAuto) {
		s.notice = lingotranslate.NoticeAutoSwap
		return s.snapshotLocked()
	}

	s.source, s.target = s.target, s.source
	if s.input != "" && s.output != "" {
		s.input, s.output = s.output, s.input
	}
	s.notice = ""
	return s.snapshotLocked()
}

func (s *service) SetSourceLanguage(code string) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if trimmed := normalizeCode(code); trimmed != "" {
		s.source = trimmed
	}
	return s.snapshotLocked()
}

func (s *service) SetTargetLanguage(code string) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if trimmed := normalizeCode(code); trimmed != "" {
		s.target = trimmed
	}
	return s.snapshotLocked()
}

func (s *service) SetInputText(text string) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.input = text
	return s.snapshotLocked()
}

// ApplyRecent republishes a cached entry's texts. The active language pair is
// left alone so the user keeps their pickers.
func (s *service) ApplyRecent(entry *Result) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry == nil {
		return s.snapshotLocked()
	}

	s.input = entry.OriginalText
	s.output = entry.TranslatedText
	s.last = cloneResult(entry)
	s.notice = ""
	return s.snapshotLocked()
}

// TargetLanguage reports the active target code.
func (s *service) TargetLanguage() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.target
}

// State returns a snapshot of the observable fields.
func (s *service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshotLocked()
}

func (s *service) snapshotLocked() State {
	return State{
		SourceLanguage: s.source,
		TargetLanguage: s.target,
		InputText:      s.input,
		OutputText:     s.output,
		LastResult:     cloneResult(s.last),
		Notice:         s.notice,
		Busy:           s.busy,
	}
}

// cachedResult looks the key up and filters out backends storing foreign
// types. Lookup errors count as misses.
func (s *service) cachedResult(ctx context.Context, key string) *Result {
	cached, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil
	}
	if hit, ok := cached.(*Result); ok {
		return hit
	}
	return nil
}

// resultCacheKey digests the request fields that determine a translation, so
// cache backends never see raw user text in their key space.
func resultCacheKey(source, target, context, text string) string {
	payload := strings.Join([]string{source, target, context, text}, "\x1f")
	return "lingo:translate:" + uuid.NewSHA1(uuid.NameSpaceOID, []byte(payload)).String()
}

func normalizeCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

func cloneResult(src *Result) *Result {
	if src == nil {
		return nil
	}
	copied := *src
	if src.Context != nil {
		ctx := *src.Context
		copied.Context = &ctx
	}
	if src.Confidence != nil {
		conf := *src.Confidence
		copied.Confidence = &conf
	}
	return &copied
}
