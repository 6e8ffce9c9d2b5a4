package di_test

import (
	"context"
	"maps"
	"testing"
	"time"

	"github.com/goliatone/go-lingo/internal/di"
	"github.com/goliatone/go-lingo/internal/runtimeconfig"
	"github.com/goliatone/go-lingo/pkg/interfaces"
)

func TestContainerSchedulerLoggingWithInjectedProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Features.Scheduling = true
	cfg.Languages.RefreshInterval = time.Hour

	sink := newLogSink()

	if _, err := di.NewContainer(cfg, di.WithLoggerProvider(sink)); err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	entry := sink.find("scheduler.configured")
	if entry == nil {
		t.Fatalf("expected scheduler.configured log entry, got %#v", sink.entries)
	}
	if got := entry.fields["provider"]; got != "in-memory" {
		t.Fatalf("expected provider field to be in-memory, got %v", got)
	}
	if got := entry.fields["module"]; got != "lingo.scheduler" {
		t.Fatalf("expected module field to be lingo.scheduler, got %v", got)
	}
}

func TestContainerSeedLoggingReportsCount(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true

	sink := newLogSink()

	if _, err := di.NewContainer(cfg, di.WithLoggerProvider(sink)); err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	entry := sink.find("languages.seed.complete")
	if entry == nil {
		t.Fatalf("expected languages.seed.complete log entry, got %#v", sink.entries)
	}
	if got := entry.fields["module"]; got != "lingo.languages" {
		t.Fatalf("expected module field to be lingo.languages, got %v", got)
	}
	if got := entry.fields["count"]; got != 20 {
		t.Fatalf("expected count field to be 20, got %v", got)
	}
}

// logSink collects every entry emitted through loggers it hands out, with
// the pairwise args folded into the field map.
type logSink struct {
	entries []sunkEntry
}

type sunkEntry struct {
	level  string
	msg    string
	fields map[string]any
}

func newLogSink() *logSink {
	return &logSink{}
}

func (s *logSink) GetLogger(name string) interfaces.Logger {
	return &sinkLogger{sink: s, fields: map[string]any{"logger": name}}
}

func (s *logSink) find(msg string) *sunkEntry {
	for i := range s.entries {
		if s.entries[i].msg == msg {
			return &s.entries[i]
		}
	}
	return nil
}

type sinkLogger struct {
	sink   *logSink
	fields map[string]any
}

var _ interfaces.Logger = (*sinkLogger)(nil)
var _ interfaces.FieldsLogger = (*sinkLogger)(nil)

func (l *sinkLogger) Trace(msg string, args ...any) { l.emit("TRACE", msg, args) }
func (l *sinkLogger) Debug(msg string, args ...any) { l.emit("DEBUG", msg, args) }
func (l *sinkLogger) Info(msg string, args ...any)  { l.emit("INFO", msg, args) }
func (l *sinkLogger) Warn(msg string, args ...any)  { l.emit("WARN", msg, args) }
func (l *sinkLogger) Error(msg string, args ...any) { l.emit("ERROR", msg, args) }
func (l *sinkLogger) Fatal(msg string, args ...any) { l.emit("FATAL", msg, args) }

func (l *sinkLogger) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	merged := maps.Clone(l.fields)
	maps.Copy(merged, fields)
	return &sinkLogger{sink: l.sink, fields: merged}
}

func (l *sinkLogger) WithContext(context.Context) interfaces.Logger {
	return &sinkLogger{sink: l.sink, fields: maps.Clone(l.fields)}
}

func (l *sinkLogger) emit(level, msg string, args []any) {
	fields := maps.Clone(l.fields)
	if fields == nil {
		fields = map[string]any{}
	}
	for len(args) >= 2 {
		key, _ := args[0].(string)
		if key != "" {
			fields[key] = args[1]
		}
		args = args[2:]
	}
	l.sink.entries = append(l.sink.entries, sunkEntry{level: level, msg: msg, fields: fields})
}
