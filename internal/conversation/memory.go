package conversation

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ConversationRepository persists conversations for the embedded server.
type ConversationRepository interface {
	Create(ctx context.Context, conv *Conversation) (*Conversation, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Conversation, error)
}

// MessageRepository persists conversation messages for the embedded server.
// ListByConversation returns messages oldest first.
type MessageRepository interface {
	Append(ctx context.Context, message *Message) (*Message, error)
	ListByConversation(ctx context.Context, conversationID uuid.UUID) ([]*Message, error)
}

// NotFoundError indicates a missing conversation resource.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s not found: %s", e.Resource, e.Key)
}

// MemoryConversationRepository is an in-memory ConversationRepository.
type MemoryConversationRepository struct {
	mu            sync.RWMutex
	conversations map[uuid.UUID]*Conversation
}

func NewMemoryConversationRepository() *MemoryConversationRepository {
	return &MemoryConversationRepository{
		conversations: make(map[uuid.UUID]*Conversation),
	}
}

func (r *MemoryConversationRepository) Create(ctx context.Context, conv *Conversation) (*Conversation, error) {
	if conv == nil {
		return nil, ErrConversationRequired
	}

	record := *conv
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	r.mu.Lock()
	r.conversations[record.ID] = &record
	r.mu.Unlock()

	copied := record
	return &copied, nil
}

func (r *MemoryConversationRepository) GetByID(ctx context.Context, id uuid.UUID) (*Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conv, ok := r.conversations[id]
	if !ok {
		return nil, &NotFoundError{Resource: "conversation", Key: id.String()}
	}
	copied := *conv
	return &copied, nil
}

type storedMessage struct {
	message *Message
	seq     uint64
}

// MemoryMessageRepository is an in-memory MessageRepository.
type MemoryMessageRepository struct {
	mu       sync.RWMutex
	messages map[uuid.UUID]storedMessage
	seq      uint64
}

func NewMemoryMessageRepository() *MemoryMessageRepository {
	return &MemoryMessageRepository{
		messages: make(map[uuid.UUID]storedMessage),
	}
}

func (r *MemoryMessageRepository) Append(ctx context.Context, message *Message) (*Message, error) {
	if message == nil {
		return nil, ErrMessageRequired
	}
	if message.ConversationID == uuid.Nil {
		return nil, ErrNoConversation
	}

	record := cloneMessage(message)
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now().UTC()
	}

	r.mu.Lock()
	r.seq++
	r.messages[record.ID] = storedMessage{message: record, seq: r.seq}
	r.mu.Unlock()

	return cloneMessage(record), nil
}

func (r *MemoryMessageRepository) ListByConversation(ctx context.Context, conversationID uuid.UUID) ([]*Message, error) {
	r.mu.RLock()
	stored := make([]storedMessage, 0, len(r.messages))
	for _, item := range r.messages {
		if item.message.ConversationID == conversationID {
			stored = append(stored, item)
		}
	}
	r.mu.RUnlock()

	// Oldest first; ties keep insertion order so a burst of messages with the
	// same timestamp reads in send order.
	sort.SliceStable(stored, func(i, j int) bool {
		if stored[i].message.Timestamp.Equal(stored[j].message.Timestamp) {
			return stored[i].seq < stored[j].seq
		}
		return stored[i].message.Timestamp.Before(stored[j].message.Timestamp)
	})

	messages := make([]*Message, 0, len(stored))
	for _, item := range stored {
		messages = append(messages, cloneMessage(item.message))
	}
	return messages, nil
}
