package lingo

import (
	"github.com/goliatone/go-lingo/capture"
	"github.com/goliatone/go-lingo/catalog"
	"github.com/goliatone/go-lingo/conversation"
	"github.com/goliatone/go-lingo/history"
	"github.com/goliatone/go-lingo/internal/di"
	"github.com/goliatone/go-lingo/internal/jobs"
	"github.com/goliatone/go-lingo/internal/server"
	"github.com/goliatone/go-lingo/pipeline"
	"github.com/goliatone/go-lingo/pkg/interfaces"
	"github.com/goliatone/go-lingo/status"
	"github.com/goliatone/go-lingo/translate"
)

// CatalogService exports the language catalog contract for consumers of the lingo package.
type CatalogService = catalog.Service

// TranslateService exports the text translation contract.
type TranslateService = translate.Service

// HistoryService exports the history and recents contract.
type HistoryService = history.Service

// ConversationService exports the conversation contract.
type ConversationService = conversation.Service

// CaptureService exports the image acquisition contract.
type CaptureService = capture.Service

// PipelineService exports the staged image translation contract.
type PipelineService = pipeline.Service

// StatusReporter exports the backend status check contract.
type StatusReporter = status.Reporter

// Module represents the top level translation runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a lingo module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Languages returns the configured language catalog service.
func (m *Module) Languages() CatalogService {
	return m.container.CatalogService()
}

// LanguageDirectory returns the store-backed language resolver.
func (m *Module) LanguageDirectory() LanguageDirectory {
	return newLanguageDirectory(m)
}

// Translator returns the configured text translation service.
func (m *Module) Translator() TranslateService {
	return m.container.TranslateService()
}

// History returns the configured history service.
func (m *Module) History() HistoryService {
	return m.container.HistoryService()
}

// Conversations returns the configured conversation service.
func (m *Module) Conversations() ConversationService {
	return m.container.ConversationService()
}

// Capture returns the configured image acquisition service.
func (m *Module) Capture() CaptureService {
	return m.container.CaptureService()
}

// Pipeline returns the configured image translation pipeline.
func (m *Module) Pipeline() PipelineService {
	return m.container.PipelineService()
}

// Status returns the backend status reporter when a backend is configured.
func (m *Module) Status() StatusReporter {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.StatusReporter()
}

// Scheduler returns the scheduler used for maintenance automation.
func (m *Module) Scheduler() interfaces.Scheduler {
	return m.container.Scheduler()
}

// Worker returns the maintenance worker when scheduling is enabled.
func (m *Module) Worker() *jobs.Worker {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.JobWorker()
}

// Server returns the embedded HTTP API when the server is enabled.
func (m *Module) Server() *server.API {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.ServerAPI()
}
