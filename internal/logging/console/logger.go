// Package console is the zero-dependency logger provider the module falls
// back to when the host wires no go-logger instance.
package console

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-lingo/internal/logging"
	"github.com/goliatone/go-lingo/pkg/interfaces"
)

// Level is the severity attached to a console entry.
type Level uint8

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var levelNames = [...]string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR", "FATAL"}

// String renders the label written into console output.
func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return levelNames[LevelInfo]
}

// Options configures the provider. Zero values fall back to stdout, the wall
// clock, and a DEBUG floor.
type Options struct {
	Writer   io.Writer
	TimeFunc func() time.Time
	MinLevel *Level
}

type provider struct {
	mu    sync.Mutex
	out   io.Writer
	clock func() time.Time
	floor Level
}

// NewProvider builds a console-backed LoggerProvider. A single provider
// serializes writes across every logger it hands out.
func NewProvider(opts Options) interfaces.LoggerProvider {
	p := &provider{
		out:   opts.Writer,
		clock: opts.TimeFunc,
		floor: LevelDebug,
	}
	if p.out == nil {
		p.out = os.Stdout
	}
	if p.clock == nil {
		p.clock = time.Now
	}
	if opts.MinLevel != nil {
		p.floor = *opts.MinLevel
	}
	return p
}

func (p *provider) GetLogger(name string) interfaces.Logger {
	return &entryLogger{
		provider: p,
		fields:   map[string]any{"logger": name},
	}
}

// entryLogger carries the accumulated fields of one named logger. Loggers are
// immutable; WithFields and WithContext return copies.
type entryLogger struct {
	provider *provider
	fields   map[string]any
	ctx      context.Context
}

var (
	_ interfaces.Logger       = (*entryLogger)(nil)
	_ interfaces.FieldsLogger = (*entryLogger)(nil)
)

func (l *entryLogger) Trace(msg string, args ...any) { l.emit(LevelTrace, msg, args) }
func (l *entryLogger) Debug(msg string, args ...any) { l.emit(LevelDebug, msg, args) }
func (l *entryLogger) Info(msg string, args ...any)  { l.emit(LevelInfo, msg, args) }
func (l *entryLogger) Warn(msg string, args ...any)  { l.emit(LevelWarn, msg, args) }
func (l *entryLogger) Error(msg string, args ...any) { l.emit(LevelError, msg, args) }
func (l *entryLogger) Fatal(msg string, args ...any) { l.emit(LevelFatal, msg, args) }

func (l *entryLogger) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	next := make(map[string]any, len(l.fields)+len(fields))
	for k, v := range l.fields {
		next[k] = v
	}
	for k, v := range fields {
		next[k] = v
	}
	return &entryLogger{provider: l.provider, fields: next, ctx: l.ctx}
}

func (l *entryLogger) WithContext(ctx context.Context) interfaces.Logger {
	next := make(map[string]any, len(l.fields))
	for k, v := range l.fields {
		next[k] = v
	}
	return &entryLogger{provider: l.provider, fields: next, ctx: ctx}
}

// emit merges fields with context fields and variadic arguments, later
// sources winning, then writes one line under the provider lock.
func (l *entryLogger) emit(level Level, msg string, args []any) {
	p := l.provider
	if p == nil || level < p.floor {
		return
	}

	merged := make(map[string]any, len(l.fields)+len(args)/2+2)
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range logging.ContextFields(l.ctx) {
		merged[k] = v
	}
	mergeArgs(merged, args)

	line := renderLine(p.clock().UTC(), level, msg, merged)

	p.mu.Lock()
	// Best effort: a diagnostics sink that cannot be written to should not
	// take the caller down with it.
	_, _ = io.WriteString(p.out, line)
	p.mu.Unlock()
}

// mergeArgs folds variadic key/value pairs into fields. A trailing unpaired
// argument and non-string keys keep their values under positional names
// rather than being dropped.
func mergeArgs(fields map[string]any, args []any) {
	pos := 0
	for len(args) >= 2 {
		key, ok := args[0].(string)
		if !ok || key == "" {
			key = positionalKey(pos)
		}
		fields[key] = args[1]
		args = args[2:]
		pos++
	}
	if len(args) == 1 {
		fields[positionalKey(pos)] = args[0]
	}
}

func positionalKey(i int) string {
	return "field_" + strconv.Itoa(i)
}

func renderLine(ts time.Time, level Level, msg string, fields map[string]any) string {
	var b strings.Builder
	b.Grow(64 + len(msg) + len(fields)*16)
	b.WriteString(ts.Format(time.RFC3339Nano))
	b.WriteByte(' ')
	b.WriteString(level.String())
	b.WriteByte(' ')
	b.WriteString(msg)

	if len(fields) > 0 {
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteByte(' ')
			b.WriteString(k)
			b.WriteByte('=')
			b.WriteString(renderValue(fields[k]))
		}
	}
	b.WriteByte('\n')
	return b.String()
}

func renderValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return quote(v)
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return quote(v.UTC().Format(time.RFC3339Nano))
	case *time.Time:
		if v == nil {
			return "null"
		}
		return quote(v.UTC().Format(time.RFC3339Nano))
	case error:
		return quote(v.Error())
	case fmt.Stringer:
		return quote(v.String())
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return quote(fmt.Sprint(v))
	}
}

// quote wraps values that would break the key=value grammar: empty strings,
// embedded '=', whitespace and control bytes.
func quote(v string) string {
	if v == "" {
		return `""`
	}
	for _, r := range v {
		if r <= ' ' || r == '=' {
			return strconv.Quote(v)
		}
	}
	return v
}
