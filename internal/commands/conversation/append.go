package conversationcmd

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-lingo/conversation"
	"github.com/goliatone/go-lingo/internal/commands"
	"github.com/goliatone/go-lingo/pkg/interfaces"
)

const appendMessageMessageType = "lingo.conversation.message"

// AppendMessageCommand sends a message into the current conversation. Sender,
// kind and the language pair fall back to the orchestrator's defaults when
// omitted.
type AppendMessageCommand struct {
	Text     string `json:"text"`
	Source   string `json:"source_language,omitempty"`
	Target   string `json:"target_language,omitempty"`
	Kind     string `json:"message_type,omitempty"`
	SenderID string `json:"sender_id,omitempty"`
}

// Type implements command.Message.
func (AppendMessageCommand) Type() string { return appendMessageMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m AppendMessageCommand) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(m.Text) == "" {
		errs["text"] = validation.NewError("lingo.conversation.message.text_required", "text is required")
	}
	if m.Kind != "" {
		switch conversation.MessageKind(m.Kind) {
		case conversation.MessageKindText, conversation.MessageKindVoice, conversation.MessageKindImage:
		default:
			errs["message_type"] = validation.NewError("lingo.conversation.message.kind_invalid", "message_type must be text, voice or image")
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// AppendMessageHandler forwards messages to the conversation orchestrator.
type AppendMessageHandler struct {
	inner *commands.Handler[AppendMessageCommand]
}

// NewAppendMessageHandler constructs a handler wired to the provided conversation service.
func NewAppendMessageHandler(service conversation.Service, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[AppendMessageCommand]) *AppendMessageHandler {
	exec := func(ctx context.Context, msg AppendMessageCommand) error {
		if !gates.conversationsEnabled() {
			return ErrConversationsDisabled
		}
		_, err := service.Append(ctx, conversation.MessageRequest{
			Text:     msg.Text,
			Source:   msg.Source,
			Target:   msg.Target,
			Kind:     conversation.MessageKind(msg.Kind),
			SenderID: msg.SenderID,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[AppendMessageCommand]{
		commands.WithLogger[AppendMessageCommand](logger),
		commands.WithOperation[AppendMessageCommand]("conversation.message"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &AppendMessageHandler{
		inner: commands.NewHandler[AppendMessageCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[AppendMessageCommand].Execute.
func (h *AppendMessageHandler) Execute(ctx context.Context, msg AppendMessageCommand) error {
	return h.inner.Execute(ctx, msg)
}
