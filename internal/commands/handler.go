package commands

import (
	"context"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-lingo/internal/logging"
	"github.com/goliatone/go-lingo/pkg/interfaces"
)

// DefaultCommandTimeout is the execution budget applied when a handler does
// not override it.
const DefaultCommandTimeout = 30 * time.Second

// HandlerOption configures a Handler instance.
type HandlerOption[T command.Message] func(*Handler[T])

// Handler adapts a command function to go-command's Commander contract,
// layering validation, context hygiene, timeout enforcement, logging and
// telemetry over the wrapped function.
type Handler[T command.Message] struct {
	exec      command.CommandFunc[T]
	logger    interfaces.Logger
	telemetry Telemetry[T]
	timeout   time.Duration
	operation string
}

// NewHandler wraps fn. Handlers run with a no-op logger and the default
// timeout unless options override them.
func NewHandler[T command.Message](fn command.CommandFunc[T], opts ...HandlerOption[T]) *Handler[T] {
	if fn == nil {
		panic("commands: handler function cannot be nil")
	}
	h := &Handler[T]{
		exec:    fn,
		logger:  logging.NoOp(),
		timeout: DefaultCommandTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// WithTimeout overrides the execution budget; zero or negative disables it.
func WithTimeout[T command.Message](timeout time.Duration) HandlerOption[T] {
	return func(h *Handler[T]) {
		if timeout <= 0 {
			timeout = 0
		}
		h.timeout = timeout
	}
}

// WithLogger injects the execution logger. Defaults to a no-op logger.
func WithLogger[T command.Message](logger interfaces.Logger) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.logger = loggerOrNoOp(logger)
	}
}

// WithOperation names the operation attached to log entries and telemetry.
func WithOperation[T command.Message](operation string) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.operation = operation
	}
}

// WithTelemetry registers a callback observing every execution outcome.
func WithTelemetry[T command.Message](telemetry Telemetry[T]) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.telemetry = telemetry
	}
}

// Execute conforms to command.Commander[T].Execute. Validation failures and
// pre-cancelled contexts short-circuit before the wrapped function runs.
// Each completed run reports its outcome exactly once: through the telemetry
// callback when one is set, otherwise through the logger.
func (h *Handler[T]) Execute(ctx context.Context, msg T) error {
	if err := command.ValidateMessage(msg); err != nil {
		return wrapValidationError(err)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	cancel := func() {}
	if h.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
	}
	defer cancel()

	if err := ctx.Err(); err != nil {
		return wrapContextError(err)
	}

	messageType := command.GetMessageType(msg)
	fields := map[string]any{"command": messageType}
	if h.operation != "" {
		fields["operation"] = h.operation
	}
	logger := logging.WithFields(h.logger, fields)
	logger.Debug("command.execute.start")

	started := time.Now()
	execErr := h.exec(ctx, msg)

	var outcome error
	status := TelemetryStatusSuccess
	switch {
	case execErr != nil:
		status = TelemetryStatusFailed
		outcome = wrapExecuteError(execErr)
	case ctx.Err() != nil:
		status = TelemetryStatusContextError
		outcome = wrapContextError(ctx.Err())
	}

	if h.telemetry != nil {
		h.telemetry(ctx, msg, TelemetryInfo{
			Command:   messageType,
			Operation: h.operation,
			Fields:    fields,
			Duration:  time.Since(started),
			Error:     outcome,
			Status:    status,
			Logger:    logger,
		})
		return outcome
	}

	switch status {
	case TelemetryStatusFailed:
		logger.Error("command.execute.failed", "error", execErr)
	case TelemetryStatusContextError:
		logger.Error("command.execute.context_error", "error", ctx.Err())
	default:
		logger.Info("command.execute.success")
	}
	return outcome
}

// loggerOrNoOp guards against nil loggers from optional wiring.
func loggerOrNoOp(logger interfaces.Logger) interfaces.Logger {
	if logger == nil {
		return logging.NoOp()
	}
	return logger
}
