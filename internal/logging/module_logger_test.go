package logging

import (
	"context"
	"maps"
	"testing"

	"github.com/goliatone/go-lingo/pkg/interfaces"
)

// tapLogger records every structured-field application it receives.
type tapLogger struct {
	applied []map[string]any
	ctxs    []context.Context
}

func (l *tapLogger) Trace(string, ...any) {}
func (l *tapLogger) Debug(string, ...any) {}
func (l *tapLogger) Info(string, ...any)  {}
func (l *tapLogger) Warn(string, ...any)  {}
func (l *tapLogger) Error(string, ...any) {}
func (l *tapLogger) Fatal(string, ...any) {}

func (l *tapLogger) WithFields(fields map[string]any) interfaces.Logger {
	l.applied = append(l.applied, maps.Clone(fields))
	return l
}

func (l *tapLogger) WithContext(ctx context.Context) interfaces.Logger {
	l.ctxs = append(l.ctxs, ctx)
	return l
}

// namedProvider hands out one logger and remembers which names were asked for.
type namedProvider struct {
	asked []string
	out   interfaces.Logger
}

func (p *namedProvider) GetLogger(name string) interfaces.Logger {
	p.asked = append(p.asked, name)
	return p.out
}

func TestModuleLoggerFallsBackToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, "lingo.test")
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger fallback, got %T", logger)
	}

	// The fallback must absorb the whole surface without panicking.
	logger = logger.WithContext(context.Background())
	logger = WithFields(logger, map[string]any{"foo": "bar"})
	logger.Debug("dropped")
}

func TestModuleLoggerAsksProviderAndTagsModule(t *testing.T) {
	tap := &tapLogger{}
	provider := &namedProvider{out: tap}

	logger := ModuleLogger(provider, "lingo.translate")

	if len(provider.asked) != 1 || provider.asked[0] != "lingo.translate" {
		t.Fatalf("expected one lookup for lingo.translate, got %v", provider.asked)
	}
	if len(tap.applied) != 1 || tap.applied[0]["module"] != "lingo.translate" {
		t.Fatalf("expected the module tag applied once, got %v", tap.applied)
	}

	logger.Info("tagged")
}

func TestModuleLoggerEmptyNameMeansRoot(t *testing.T) {
	tap := &tapLogger{}
	provider := &namedProvider{out: tap}

	_ = ModuleLogger(provider, "")

	if len(provider.asked) != 1 || provider.asked[0] != "lingo" {
		t.Fatalf("expected the root namespace, got %v", provider.asked)
	}
	if tap.applied[0]["module"] != "lingo" {
		t.Fatalf("expected the root module tag, got %v", tap.applied[0])
	}
}

func TestNamespaceWrappersRequestTheirModules(t *testing.T) {
	wrappers := []struct {
		name string
		call func(interfaces.LoggerProvider) interfaces.Logger
		want string
	}{
		{"catalog", CatalogLogger, "lingo.catalog"},
		{"translate", TranslateLogger, "lingo.translate"},
		{"pipeline", PipelineLogger, "lingo.pipeline"},
		{"capture", CaptureLogger, "lingo.capture"},
		{"history", HistoryLogger, "lingo.history"},
		{"conversation", ConversationLogger, "lingo.conversation"},
		{"client", ClientLogger, "lingo.client"},
		{"server", ServerLogger, "lingo.server"},
		{"worker", WorkerLogger, "lingo.worker"},
	}

	for _, w := range wrappers {
		t.Run(w.name, func(t *testing.T) {
			provider := &namedProvider{out: &tapLogger{}}
			_ = w.call(provider)
			if len(provider.asked) != 1 || provider.asked[0] != w.want {
				t.Fatalf("expected %q to be requested, got %v", w.want, provider.asked)
			}
		})
	}
}

func TestWithLanguagePairTrimsAndSkipsEmpty(t *testing.T) {
	tap := &tapLogger{}

	_ = WithLanguagePair(tap, " auto ", "")

	if len(tap.applied) != 1 {
		t.Fatalf("expected one fields application, got %d", len(tap.applied))
	}
	got := tap.applied[0]
	if got["source_language"] != "auto" {
		t.Fatalf("expected the source language trimmed, got %v", got)
	}
	if _, ok := got["target_language"]; ok {
		t.Fatalf("expected the empty target skipped, got %v", got)
	}
}

func TestWithLanguagePairCarriesBothSides(t *testing.T) {
	tap := &tapLogger{}

	_ = WithLanguagePair(tap, "en", "es")

	got := tap.applied[0]
	if got["source_language"] != "en" || got["target_language"] != "es" {
		t.Fatalf("expected both languages tagged, got %v", got)
	}
}

func TestWithStage(t *testing.T) {
	tap := &tapLogger{}

	_ = WithStage(tap, " extracting ")
	if len(tap.applied) != 1 || tap.applied[0]["stage"] != "extracting" {
		t.Fatalf("expected the stage tag trimmed and applied, got %v", tap.applied)
	}

	if got := WithStage(tap, "  "); got != interfaces.Logger(tap) {
		t.Fatal("expected a blank stage to return the logger unchanged")
	}
	if len(tap.applied) != 1 {
		t.Fatalf("expected no further applications for a blank stage, got %d", len(tap.applied))
	}
}
