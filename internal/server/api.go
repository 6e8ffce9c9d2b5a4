// Package server implements the HTTP backend the lingo client consumes. It
// serves the same wire contract internal/client speaks, so hosts can embed
// the backend next to the orchestrator or run cmd/lingo-server standalone.
package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-lingo/internal/catalog"
	"github.com/goliatone/go-lingo/internal/conversation"
	"github.com/goliatone/go-lingo/internal/engine"
	"github.com/goliatone/go-lingo/internal/history"
	"github.com/goliatone/go-lingo/internal/logging"
	"github.com/goliatone/go-lingo/internal/status"
	"github.com/goliatone/go-lingo/pkg/interfaces"
)

// Version is reported by the root endpoint.
const Version = "1.0.0"

// API registers the translation backend endpoints on a mux. Repositories and
// engines are wired through options; handlers answer 503 for anything not
// configured.
type API struct {
	basePath      string
	languages     catalog.LanguageRepository
	entries       history.EntryRepository
	conversations conversation.ConversationRepository
	messages      conversation.MessageRepository
	checks        status.CheckRepository
	translator    engine.Translator
	recognizer    engine.Recognizer
	logger        interfaces.Logger
	clock         func() time.Time
	newID         func() uuid.UUID
}

// Option mutates the API configuration.
type Option func(*API)

// NewAPI constructs an API instance.
func NewAPI(opts ...Option) *API {
	api := &API{
		basePath: "/api",
		logger:   logging.NoOp(),
		clock:    time.Now,
		newID:    uuid.New,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithBasePath overrides the base API path (defaults to "/api").
func WithBasePath(path string) Option {
	return func(api *API) {
		if api == nil {
			return
		}
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithLanguageRepository wires the language catalog store.
func WithLanguageRepository(repo catalog.LanguageRepository) Option {
	return func(api *API) {
		if api != nil {
			api.languages = repo
		}
	}
}

// WithEntryRepository wires the translation history store.
func WithEntryRepository(repo history.EntryRepository) Option {
	return func(api *API) {
		if api != nil {
			api.entries = repo
		}
	}
}

// WithConversationRepositories wires the conversation and message stores.
func WithConversationRepositories(conversations conversation.ConversationRepository, messages conversation.MessageRepository) Option {
	return func(api *API) {
		if api != nil {
			api.conversations = conversations
			api.messages = messages
		}
	}
}

// WithStatusRepository wires the status check store.
func WithStatusRepository(repo status.CheckRepository) Option {
	return func(api *API) {
		if api != nil {
			api.checks = repo
		}
	}
}

// WithTranslator wires the translation engine.
func WithTranslator(translator engine.Translator) Option {
	return func(api *API) {
		if api != nil {
			api.translator = translator
		}
	}
}

// WithRecognizer wires the text recognition engine.
func WithRecognizer(recognizer engine.Recognizer) Option {
	return func(api *API) {
		if api != nil {
			api.recognizer = recognizer
		}
	}
}

// WithLogger overrides the server logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(api *API) {
		if api != nil && logger != nil {
			api.logger = logger
		}
	}
}

// WithClock overrides the timestamp source, mainly for tests.
func WithClock(clock func() time.Time) Option {
	return func(api *API) {
		if api != nil && clock != nil {
			api.clock = clock
		}
	}
}

// WithIDGenerator overrides the record id source, mainly for tests.
func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(api *API) {
		if api != nil && newID != nil {
			api.newID = newID
		}
	}
}

// Register attaches the backend endpoints to the provided mux.
func (api *API) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("server: mux is required")
	}
	if api == nil {
		return fmt.Errorf("server: api is nil")
	}

	base := joinPath(api.basePath, "")

	mux.HandleFunc("GET "+base, api.handleRoot)
	mux.HandleFunc("GET "+base+"/{$}", api.handleRoot)

	api.registerLanguageRoutes(mux, base)
	api.registerTranslationRoutes(mux, base)
	api.registerConversationRoutes(mux, base)
	api.registerStatusRoutes(mux, base)

	return nil
}

func (api *API) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "lingo translation backend",
		"version": Version,
	})
}
