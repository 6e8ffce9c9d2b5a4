package conversation

import (
	"context"

	"github.com/google/uuid"
)

// Backend performs conversation round trips against the translation service.
type Backend interface {
	CreateConversation(ctx context.Context) (uuid.UUID, error)
	AppendMessage(ctx context.Context, conversationID uuid.UUID, req MessageRequest) (*Message, error)
	ConversationMessages(ctx context.Context, conversationID uuid.UUID) ([]*Message, error)
}

// Service maintains the local view of one active conversation. The server owns
// message ordering and translation; the service only mirrors what it returns.
type Service interface {
	// Start creates a conversation and makes it the current one. The local
	// view is cleared.
	Start(ctx context.Context) (uuid.UUID, error)

	// Append sends a message and, on success, appends the server-returned
	// record to the local view. Failures leave the view untouched.
	Append(ctx context.Context, req MessageRequest) (*Message, error)

	// Load fetches the server's ordered messages for the conversation and
	// replaces the local view, making the conversation current.
	Load(ctx context.Context, conversationID uuid.UUID) ([]*Message, error)

	// Current reports the active conversation id, uuid.Nil when none.
	Current() uuid.UUID

	// Messages snapshots the local ordered view.
	Messages() []*Message
}
