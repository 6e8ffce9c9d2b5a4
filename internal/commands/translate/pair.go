package translatecmd

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-lingo/internal/commands"
	"github.com/goliatone/go-lingo/pkg/interfaces"
	"github.com/goliatone/go-lingo/translate"
)

const setLanguagePairMessageType = "lingo.translate.pair"

// SetLanguagePairCommand updates the active language pair. Either side may be
// omitted to leave it unchanged.
type SetLanguagePairCommand struct {
	Source string `json:"source_language,omitempty"`
	Target string `json:"target_language,omitempty"`
}

// Type implements command.Message.
func (SetLanguagePairCommand) Type() string { return setLanguagePairMessageType }

// Validate ensures at least one side of the pair is supplied.
func (m SetLanguagePairCommand) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(m.Source) == "" && strings.TrimSpace(m.Target) == "" {
		errs["target_language"] = validation.NewError("lingo.translate.pair.language_required", "source_language or target_language is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetLanguagePairHandler applies pair changes to the translation orchestrator.
type SetLanguagePairHandler struct {
	inner *commands.Handler[SetLanguagePairCommand]
}

// NewSetLanguagePairHandler constructs a handler wired to the provided translation service.
func NewSetLanguagePairHandler(service translate.Service, logger interfaces.Logger, opts ...commands.HandlerOption[SetLanguagePairCommand]) *SetLanguagePairHandler {
	exec := func(_ context.Context, msg SetLanguagePairCommand) error {
		if strings.TrimSpace(msg.Source) != "" {
			service.SetSourceLanguage(msg.Source)
		}
		if strings.TrimSpace(msg.Target) != "" {
			service.SetTargetLanguage(msg.Target)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[SetLanguagePairCommand]{
		commands.WithLogger[SetLanguagePairCommand](logger),
		commands.WithOperation[SetLanguagePairCommand]("translate.pair"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SetLanguagePairHandler{
		inner: commands.NewHandler[SetLanguagePairCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[SetLanguagePairCommand].Execute.
func (h *SetLanguagePairHandler) Execute(ctx context.Context, msg SetLanguagePairCommand) error {
	return h.inner.Execute(ctx, msg)
}
