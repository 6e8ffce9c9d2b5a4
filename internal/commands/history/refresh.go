package historycmd

import (
	"context"

	"github.com/goliatone/go-lingo/history"
	"github.com/goliatone/go-lingo/internal/commands"
	"github.com/goliatone/go-lingo/internal/logging"
	"github.com/goliatone/go-lingo/pkg/interfaces"
)

const refreshRecentsMessageType = "lingo.history.refresh"

// RefreshRecentsCommand re-fetches translation history and replaces the
// recents cache with the leading entries.
type RefreshRecentsCommand struct{}

// Type implements command.Message.
func (RefreshRecentsCommand) Type() string { return refreshRecentsMessageType }

// Validate implements command.Message; the refresh carries no payload.
func (RefreshRecentsCommand) Validate() error { return nil }

// RefreshRecentsHandler orchestrates recents cache refreshes.
type RefreshRecentsHandler struct {
	inner *commands.Handler[RefreshRecentsCommand]
}

// NewRefreshRecentsHandler constructs a handler wired to the provided history service.
func NewRefreshRecentsHandler(service history.Service, logger interfaces.Logger, opts ...commands.HandlerOption[RefreshRecentsCommand]) *RefreshRecentsHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, _ RefreshRecentsCommand) error {
		if err := service.Refresh(ctx); err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"operation": "refresh",
		}).Info("history.command.recents.refreshed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[RefreshRecentsCommand]{
		commands.WithLogger[RefreshRecentsCommand](baseLogger),
		commands.WithOperation[RefreshRecentsCommand]("history.refresh"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &RefreshRecentsHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[RefreshRecentsCommand].
func (h *RefreshRecentsHandler) Execute(ctx context.Context, msg RefreshRecentsCommand) error {
	return h.inner.Execute(ctx, msg)
}
