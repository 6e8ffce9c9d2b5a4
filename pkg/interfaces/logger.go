package interfaces

import "context"

// Logger is the leveled logging contract the module logs through. It matches
// the surface of github.com/goliatone/go-logger, so hosts already on that
// package can hand their logger over directly; anything else needs only a
// thin adapter.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	WithContext(ctx context.Context) Logger
}

// LoggerProvider hands out named loggers. The module requests one child per
// feature area (translator, catalog, history, and so on) so hosts can route
// or filter by name; returning the same logger for every name is also valid.
type LoggerProvider interface {
	GetLogger(name string) Logger
}

// FieldsLogger is an optional upgrade a Logger can implement to carry
// persistent structured fields. WithFields returns a new logger with the
// fields attached; the receiver stays untouched.
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}
