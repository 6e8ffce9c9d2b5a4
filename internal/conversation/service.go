package conversation

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-lingo/internal/logging"
	"github.com/goliatone/go-lingo/pkg/interfaces"
)

// DefaultSenderID labels messages sent from this device when the request does
// not carry one.
const DefaultSenderID = "me"

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithLogger overrides the module logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDefaultSender sets the sender id stamped on requests that omit one.
func WithDefaultSender(senderID string) ServiceOption {
	return func(s *service) {
		if trimmed := strings.TrimSpace(senderID); trimmed != "" {
			s.defaultSender = trimmed
		}
	}
}

// WithLanguagePair sets the language pair used when a request omits its own.
func WithLanguagePair(source, target string) ServiceOption {
	return func(s *service) {
		if code := normalizeCode(source); code != "" {
			s.source = code
		}
		if code := normalizeCode(target); code != "" {
			s.target = code
		}
	}
}

type service struct {
	backend       Backend
	logger        interfaces.Logger
	defaultSender string
	source        string
	target        string

	mu       sync.Mutex
	busy     bool
	current  uuid.UUID
	messages []*Message
}

// NewService constructs the conversation orchestrator.
func NewService(backend Backend, opts ...ServiceOption) Service {
	svc := &service{
		backend:       backend,
		logger:        logging.NoOp(),
		defaultSender: DefaultSenderID,
		source:        "en",
		target:        "es",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc
}

func (s *service) Start(ctx context.Context) (uuid.UUID, error) {
	if s.backend == nil {
		return uuid.Nil, ErrBackendRequired
	}

	id, err := s.backend.CreateConversation(ctx)
	if err != nil {
		s.logger.Error("conversation.start.failed", "error", err)
		return uuid.Nil, err
	}

	s.mu.Lock()
	s.current = id
	s.messages = nil
	s.mu.Unlock()

	s.logger.Info("conversation.started", "conversation_id", id.String())
	return id, nil
}

// Append sends the message and mirrors the server's stored record into the
// local view. The view only ever changes on success, so a failed send leaves
// the transcript exactly as the server last confirmed it.
func (s *service) Append(ctx context.Context, req MessageRequest) (*Message, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, ErrEmptyMessage
	}
	if s.backend == nil {
		return nil, ErrBackendRequired
	}

	s.mu.Lock()
	if s.current == uuid.Nil {
		s.mu.Unlock()
		return nil, ErrNoConversation
	}
	if s.busy {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	s.busy = true
	conversationID := s.current
	s.mu.Unlock()

	prepared := s.prepareRequest(req)
	message, err := s.backend.AppendMessage(ctx, conversationID, prepared)

	s.mu.Lock()
	s.busy = false
	if err != nil {
		s.mu.Unlock()
		s.logger.Error("conversation.append.failed",
			"error", err,
			"conversation_id", conversationID.String(),
		)
		return nil, err
	}
	// The conversation may have been swapped while the call was in flight;
	// only the active one mirrors the result.
	if s.current == conversationID && message != nil {
		s.messages = append(s.messages, cloneMessage(message))
	}
	s.mu.Unlock()

	if message != nil {
		s.logger.Info("conversation.message.appended",
			"conversation_id", conversationID.String(),
			"message_id", message.ID.String(),
			"is_translated", message.IsTranslated,
		)
	}
	return cloneMessage(message), nil
}

func (s *service) Load(ctx context.Context, conversationID uuid.UUID) ([]*Message, error) {
	if s.backend == nil {
		return nil, ErrBackendRequired
	}
	if conversationID == uuid.Nil {
		return nil, ErrNoConversation
	}

	messages, err := s.backend.ConversationMessages(ctx, conversationID)
	if err != nil {
		s.logger.Error("conversation.load.failed",
			"error", err,
			"conversation_id", conversationID.String(),
		)
		return nil, err
	}

	s.mu.Lock()
	s.current = conversationID
	s.messages = cloneMessages(messages)
	s.mu.Unlock()

	return cloneMessages(messages), nil
}

func (s *service) Current() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *service) Messages() []*Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneMessages(s.messages)
}

func (s *service) prepareRequest(req MessageRequest) MessageRequest {
	prepared := req
	prepared.Text = strings.TrimSpace(req.Text)
	if code := normalizeCode(req.Source); code != "" {
		prepared.Source = code
	} else {
		prepared.Source = s.source
	}
	if code := normalizeCode(req.Target); code != "" {
		prepared.Target = code
	} else {
		prepared.Target = s.target
	}
	if prepared.Kind == "" {
		prepared.Kind = MessageKindText
	}
	if strings.TrimSpace(prepared.SenderID) == "" {
		prepared.SenderID = s.defaultSender
	}
	return prepared
}

func normalizeCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

func cloneMessages(messages []*Message) []*Message {
	if messages == nil {
		return nil
	}
	cloned := make([]*Message, 0, len(messages))
	for _, message := range messages {
		cloned = append(cloned, cloneMessage(message))
	}
	return cloned
}

func cloneMessage(message *Message) *Message {
	if message == nil {
		return nil
	}
	copied := *message
	return &copied
}
