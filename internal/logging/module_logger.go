package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-lingo/pkg/interfaces"
)

const (
	rootModule         = "lingo"
	catalogModule      = "lingo.catalog"
	translateModule    = "lingo.translate"
	pipelineModule     = "lingo.pipeline"
	captureModule      = "lingo.capture"
	historyModule      = "lingo.history"
	conversationModule = "lingo.conversation"
	clientModule       = "lingo.client"
	serverModule       = "lingo.server"
	workerModule       = "lingo.worker"
)

const (
	fieldSourceLanguage = "source_language"
	fieldTargetLanguage = "target_language"
	fieldPipelineStage  = "stage"
)

// ModuleLogger asks provider for the named logger and tags it with a module
// field so entries stay filterable downstream. A nil provider, or one that
// returns nil, degrades to the no-op logger; an empty name resolves to the
// root namespace.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{"module": module})
}

// CatalogLogger returns the logger namespace reserved for the language catalog.
func CatalogLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, catalogModule)
}

// TranslateLogger returns the logger namespace reserved for text translation.
func TranslateLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, translateModule)
}

// PipelineLogger returns the logger namespace reserved for the image pipeline.
func PipelineLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, pipelineModule)
}

// CaptureLogger returns the logger namespace reserved for image acquisition.
func CaptureLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, captureModule)
}

// HistoryLogger returns the logger namespace reserved for translation history.
func HistoryLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, historyModule)
}

// ConversationLogger returns the logger namespace reserved for conversations.
func ConversationLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, conversationModule)
}

// ClientLogger returns the logger namespace reserved for the backend client.
func ClientLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, clientModule)
}

// ServerLogger returns the logger namespace reserved for the HTTP server.
func ServerLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, serverModule)
}

// WorkerLogger returns the logger namespace reserved for background workers.
func WorkerLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, workerModule)
}

// WithLanguagePair enriches the provided logger with the active language pair.
// Empty values are ignored.
func WithLanguagePair(logger interfaces.Logger, source, target string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(source); trimmed != "" {
		fields[fieldSourceLanguage] = trimmed
	}
	if trimmed := strings.TrimSpace(target); trimmed != "" {
		fields[fieldTargetLanguage] = trimmed
	}
	return WithFields(logger, fields)
}

// WithStage enriches the provided logger with the current pipeline stage.
func WithStage(logger interfaces.Logger, stage string) interfaces.Logger {
	if trimmed := strings.TrimSpace(stage); trimmed != "" {
		return WithFields(logger, map[string]any{fieldPipelineStage: trimmed})
	}
	return logger
}

// NoOp returns a logger that drops everything, letting services log
// unconditionally whether or not the host wired a provider.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
