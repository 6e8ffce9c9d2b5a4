package translatecmd

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-lingo/internal/commands"
	"github.com/goliatone/go-lingo/pkg/interfaces"
	"github.com/goliatone/go-lingo/translate"
)

const translateTextMessageType = "lingo.translate.text"

// TranslateTextCommand requests a text translation on the active language
// pair. Source and Target act as one-shot overrides; empty values inherit the
// orchestrator's current pair.
type TranslateTextCommand struct {
	Text    string `json:"text"`
	Context string `json:"context,omitempty"`
	Source  string `json:"source_language,omitempty"`
	Target  string `json:"target_language,omitempty"`
}

// Type implements command.Message.
func (TranslateTextCommand) Type() string { return translateTextMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m TranslateTextCommand) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(m.Text) == "" {
		errs["text"] = validation.NewError("lingo.translate.text.text_required", "text is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// TranslateTextHandler drives the translation orchestrator through the shared
// command foundation.
type TranslateTextHandler struct {
	inner *commands.Handler[TranslateTextCommand]
}

// NewTranslateTextHandler constructs a handler wired to the provided translation service.
func NewTranslateTextHandler(service translate.Service, logger interfaces.Logger, opts ...commands.HandlerOption[TranslateTextCommand]) *TranslateTextHandler {
	exec := func(ctx context.Context, msg TranslateTextCommand) error {
		_, err := service.Translate(ctx, translate.Request{
			Text:    msg.Text,
			Context: msg.Context,
			Source:  msg.Source,
			Target:  msg.Target,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[TranslateTextCommand]{
		commands.WithLogger[TranslateTextCommand](logger),
		commands.WithOperation[TranslateTextCommand]("translate.text"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &TranslateTextHandler{
		inner: commands.NewHandler[TranslateTextCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[TranslateTextCommand].Execute.
func (h *TranslateTextHandler) Execute(ctx context.Context, msg TranslateTextCommand) error {
	return h.inner.Execute(ctx, msg)
}
