package conversationcmd

import (
	"context"

	"github.com/goliatone/go-lingo/conversation"
	"github.com/goliatone/go-lingo/internal/commands"
	"github.com/goliatone/go-lingo/pkg/interfaces"
)

const startConversationMessageType = "lingo.conversation.start"

// StartConversationCommand creates a conversation on the backend and makes it
// the current one. Any previous local transcript is cleared.
type StartConversationCommand struct{}

// Type implements command.Message.
func (StartConversationCommand) Type() string { return startConversationMessageType }

// Validate implements command.Message; starting carries no payload.
func (StartConversationCommand) Validate() error { return nil }

// StartConversationHandler drives the conversation orchestrator through the
// shared command foundation.
type StartConversationHandler struct {
	inner *commands.Handler[StartConversationCommand]
}

// NewStartConversationHandler constructs a handler wired to the provided conversation service.
func NewStartConversationHandler(service conversation.Service, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[StartConversationCommand]) *StartConversationHandler {
	exec := func(ctx context.Context, _ StartConversationCommand) error {
		if !gates.conversationsEnabled() {
			return ErrConversationsDisabled
		}
		_, err := service.Start(ctx)
		return err
	}

	handlerOpts := []commands.HandlerOption[StartConversationCommand]{
		commands.WithLogger[StartConversationCommand](logger),
		commands.WithOperation[StartConversationCommand]("conversation.start"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &StartConversationHandler{
		inner: commands.NewHandler[StartConversationCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[StartConversationCommand].Execute.
func (h *StartConversationHandler) Execute(ctx context.Context, msg StartConversationCommand) error {
	return h.inner.Execute(ctx, msg)
}
