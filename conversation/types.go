package conversation

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// MessageKind classifies how a message entered the conversation.
type MessageKind string

const (
	MessageKindText  MessageKind = "text"
	MessageKindVoice MessageKind = "voice"
	MessageKindImage MessageKind = "image"
)

// Conversation groups an ordered exchange of messages.
type Conversation struct {
	bun.BaseModel `bun:"table:conversations,alias:conv"`

	ID        uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// Message is a single conversation turn. The backend owns translation: when a
// distinct target language is supplied the stored message carries both texts
// and IsTranslated is set.
type Message struct {
	bun.BaseModel `bun:"table:conversation_messages,alias:cm"`

	ID             uuid.UUID   `bun:"id,pk,type:uuid" json:"id"`
	ConversationID uuid.UUID   `bun:"conversation_id,notnull,type:uuid" json:"conversation_id"`
	SenderID       string      `bun:"sender_id,notnull" json:"sender_id"`
	Kind           MessageKind `bun:"message_type,notnull" json:"message_type"`
	OriginalText   string      `bun:"original_text,notnull" json:"original_text"`
	TranslatedText string      `bun:"translated_text" json:"translated_text"`
	SourceLanguage string      `bun:"source_language,notnull" json:"source_language"`
	TargetLanguage string      `bun:"target_language" json:"target_language,omitempty"`
	IsTranslated   bool        `bun:"is_translated,notnull,default:false" json:"is_translated"`
	Timestamp      time.Time   `bun:"timestamp,nullzero,default:current_timestamp" json:"timestamp"`
}

// MessageRequest is the client-side payload for appending a message.
type MessageRequest struct {
	Text     string
	Source   string
	Target   string
	Kind     MessageKind
	SenderID string
}
