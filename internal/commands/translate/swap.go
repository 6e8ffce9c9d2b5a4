package translatecmd

import (
	"context"

	"github.com/goliatone/go-lingo/internal/commands"
	"github.com/goliatone/go-lingo/pkg/interfaces"
	"github.com/goliatone/go-lingo/translate"
)

const swapLanguagesMessageType = "lingo.translate.swap"

// SwapLanguagesCommand exchanges the active source and target languages. An
// auto-detect source refuses the swap with a notice, which is state feedback
// rather than a command failure.
type SwapLanguagesCommand struct{}

// Type implements command.Message.
func (SwapLanguagesCommand) Type() string { return swapLanguagesMessageType }

// Validate implements command.Message; the swap carries no payload.
func (SwapLanguagesCommand) Validate() error { return nil }

// SwapLanguagesHandler forwards the swap to the translation orchestrator.
type SwapLanguagesHandler struct {
	inner *commands.Handler[SwapLanguagesCommand]
}

// NewSwapLanguagesHandler constructs a handler wired to the provided translation service.
func NewSwapLanguagesHandler(service translate.Service, logger interfaces.Logger, opts ...commands.HandlerOption[SwapLanguagesCommand]) *SwapLanguagesHandler {
	exec := func(_ context.Context, _ SwapLanguagesCommand) error {
		service.SwapLanguages()
		return nil
	}

	handlerOpts := []commands.HandlerOption[SwapLanguagesCommand]{
		commands.WithLogger[SwapLanguagesCommand](logger),
		commands.WithOperation[SwapLanguagesCommand]("translate.swap"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SwapLanguagesHandler{
		inner: commands.NewHandler[SwapLanguagesCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[SwapLanguagesCommand].Execute.
func (h *SwapLanguagesHandler) Execute(ctx context.Context, msg SwapLanguagesCommand) error {
	return h.inner.Execute(ctx, msg)
}
