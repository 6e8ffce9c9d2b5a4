package conversation

import (
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewConversationModelRepository builds the go-repository-bun repository for
// conversations.
func NewConversationModelRepository(db *bun.DB) repository.Repository[*Conversation] {
	handlers := repository.ModelHandlers[*Conversation]{
		NewRecord: func() *Conversation {
			return &Conversation{}
		},
		GetID: func(record *Conversation) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return record.ID
		},
		SetID: func(record *Conversation, id uuid.UUID) {
			if record != nil {
				record.ID = id
			}
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(record *Conversation) string {
			if record == nil {
				return ""
			}
			return record.ID.String()
		},
	}
	return repository.MustNewRepository(db, handlers)
}

// NewMessageModelRepository builds the go-repository-bun repository for
// conversation messages.
func NewMessageModelRepository(db *bun.DB) repository.Repository[*Message] {
	handlers := repository.ModelHandlers[*Message]{
		NewRecord: func() *Message {
			return &Message{}
		},
		GetID: func(record *Message) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return record.ID
		},
		SetID: func(record *Message, id uuid.UUID) {
			if record != nil {
				record.ID = id
			}
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(record *Message) string {
			if record == nil {
				return ""
			}
			return record.ID.String()
		},
	}
	return repository.MustNewRepository(db, handlers)
}
