package conversation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

type fakeBackend struct {
	mu            sync.Mutex
	createID      uuid.UUID
	createErr     error
	appendResult  *Message
	appendErr     error
	appendCalls   int
	lastAppendReq MessageRequest
	lastConvID    uuid.UUID
	messages      []*Message
	listErr       error
	entered       chan struct{}
	release       chan struct{}
}

func (f *fakeBackend) CreateConversation(ctx context.Context) (uuid.UUID, error) {
	if f.createErr != nil {
		return uuid.Nil, f.createErr
	}
	if f.createID == uuid.Nil {
		f.createID = uuid.New()
	}
	return f.createID, nil
}

func (f *fakeBackend) AppendMessage(ctx context.Context, conversationID uuid.UUID, req MessageRequest) (*Message, error) {
	f.mu.Lock()
	f.appendCalls++
	f.lastAppendReq = req
	f.lastConvID = conversationID
	entered := f.entered
	f.entered = nil
	f.mu.Unlock()

	if entered != nil {
		close(entered)
	}
	if f.release != nil {
		<-f.release
	}
	if f.appendErr != nil {
		return nil, f.appendErr
	}
	if f.appendResult != nil {
		result := *f.appendResult
		result.ConversationID = conversationID
		return &result, nil
	}
	return &Message{
		ID:             uuid.New(),
		ConversationID: conversationID,
		SenderID:       req.SenderID,
		Kind:           req.Kind,
		OriginalText:   req.Text,
		TranslatedText: "translated " + req.Text,
		SourceLanguage: req.Source,
		TargetLanguage: req.Target,
		IsTranslated:   true,
		Timestamp:      time.Now().UTC(),
	}, nil
}

func (f *fakeBackend) ConversationMessages(ctx context.Context, conversationID uuid.UUID) ([]*Message, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.messages, nil
}

func TestAppendRequiresConversation(t *testing.T) {
	backend := &fakeBackend{}
	svc := NewService(backend)

	if _, err := svc.Append(context.Background(), MessageRequest{Text: "hola"}); !errors.Is(err, ErrNoConversation) {
		t.Fatalf("expected ErrNoConversation, got %v", err)
	}
	if backend.appendCalls != 0 {
		t.Fatalf("expected no backend calls, got %d", backend.appendCalls)
	}
}

func TestAppendRejectsEmptyText(t *testing.T) {
	backend := &fakeBackend{}
	svc := NewService(backend)
	if _, err := svc.Start(context.Background()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	for _, text := range []string{"", "   ", "\n\t"} {
		if _, err := svc.Append(context.Background(), MessageRequest{Text: text}); !errors.Is(err, ErrEmptyMessage) {
			t.Fatalf("text %q: expected ErrEmptyMessage, got %v", text, err)
		}
	}
	if backend.appendCalls != 0 {
		t.Fatalf("expected no backend calls, got %d", backend.appendCalls)
	}
}

func TestAppendMirrorsServerRecord(t *testing.T) {
	backend := &fakeBackend{}
	svc := NewService(backend)
	if _, err := svc.Start(context.Background()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	message, err := svc.Append(context.Background(), MessageRequest{Text: "  hello there  "})
	if err != nil {
		t.Fatalf("Append returned error: %v", err)
	}

	if backend.lastAppendReq.Text != "hello there" {
		t.Fatalf("expected trimmed text, got %q", backend.lastAppendReq.Text)
	}
	if backend.lastAppendReq.Kind != MessageKindText {
		t.Fatalf("expected default kind text, got %q", backend.lastAppendReq.Kind)
	}
	if backend.lastAppendReq.SenderID != DefaultSenderID {
		t.Fatalf("expected default sender, got %q", backend.lastAppendReq.SenderID)
	}
	if backend.lastAppendReq.Source != "en" || backend.lastAppendReq.Target != "es" {
		t.Fatalf("expected default pair en/es, got %s/%s", backend.lastAppendReq.Source, backend.lastAppendReq.Target)
	}

	view := svc.Messages()
	if len(view) != 1 {
		t.Fatalf("expected 1 message in view, got %d", len(view))
	}
	if view[0].ID != message.ID {
		t.Fatal("view must hold the server-returned record")
	}
	if !view[0].IsTranslated {
		t.Fatal("expected server translation flag to be mirrored")
	}
}

func TestAppendFailureLeavesViewUntouched(t *testing.T) {
	backend := &fakeBackend{}
	svc := NewService(backend)
	if _, err := svc.Start(context.Background()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if _, err := svc.Append(context.Background(), MessageRequest{Text: "first"}); err != nil {
		t.Fatalf("Append returned error: %v", err)
	}

	backend.appendErr = errors.New("boom")
	if _, err := svc.Append(context.Background(), MessageRequest{Text: "second"}); err == nil {
		t.Fatal("expected append error")
	}

	view := svc.Messages()
	if len(view) != 1 {
		t.Fatalf("expected view to keep 1 message, got %d", len(view))
	}
	if view[0].OriginalText != "first" {
		t.Fatalf("expected surviving message %q, got %q", "first", view[0].OriginalText)
	}
}

func TestAppendWhileBusyIsRejected(t *testing.T) {
	backend := &fakeBackend{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	svc := NewService(backend)
	if _, err := svc.Start(context.Background()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	entered := backend.entered
	done := make(chan error, 1)
	go func() {
		_, err := svc.Append(context.Background(), MessageRequest{Text: "slow"})
		done <- err
	}()

	<-entered
	if _, err := svc.Append(context.Background(), MessageRequest{Text: "eager"}); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}

	close(backend.release)
	if err := <-done; err != nil {
		t.Fatalf("first append returned error: %v", err)
	}
	if backend.appendCalls != 1 {
		t.Fatalf("expected 1 backend call, got %d", backend.appendCalls)
	}
}

func TestStartClearsView(t *testing.T) {
	backend := &fakeBackend{}
	svc := NewService(backend)
	if _, err := svc.Start(context.Background()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if _, err := svc.Append(context.Background(), MessageRequest{Text: "hola"}); err != nil {
		t.Fatalf("Append returned error: %v", err)
	}

	backend.createID = uuid.New()
	id, err := svc.Start(context.Background())
	if err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if svc.Current() != id {
		t.Fatal("expected new conversation to be current")
	}
	if got := len(svc.Messages()); got != 0 {
		t.Fatalf("expected empty view after restart, got %d messages", got)
	}
}

func TestLoadReplacesViewInServerOrder(t *testing.T) {
	conversationID := uuid.New()
	base := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)
	backend := &fakeBackend{
		messages: []*Message{
			{ID: uuid.New(), ConversationID: conversationID, OriginalText: "one", Timestamp: base},
			{ID: uuid.New(), ConversationID: conversationID, OriginalText: "two", Timestamp: base.Add(time.Minute)},
			{ID: uuid.New(), ConversationID: conversationID, OriginalText: "three", Timestamp: base.Add(2 * time.Minute)},
		},
	}
	svc := NewService(backend)

	messages, err := svc.Load(context.Background(), conversationID)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(messages))
	}
	if svc.Current() != conversationID {
		t.Fatal("expected loaded conversation to be current")
	}

	view := svc.Messages()
	for i, want := range []string{"one", "two", "three"} {
		if view[i].OriginalText != want {
			t.Fatalf("message %d: expected %q, got %q", i, want, view[i].OriginalText)
		}
	}
}

func TestAppendDoesNotLeakIntoSwappedConversation(t *testing.T) {
	backend := &fakeBackend{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	svc := NewService(backend)
	if _, err := svc.Start(context.Background()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	entered := backend.entered
	done := make(chan error, 1)
	go func() {
		_, err := svc.Append(context.Background(), MessageRequest{Text: "late arrival"})
		done <- err
	}()

	<-entered

	other := uuid.New()
	if _, err := svc.Load(context.Background(), other); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	close(backend.release)
	if err := <-done; err != nil {
		t.Fatalf("append returned error: %v", err)
	}

	if got := len(svc.Messages()); got != 0 {
		t.Fatalf("late append must not land in the swapped conversation, found %d messages", got)
	}
}

func TestMessagesReturnsCopies(t *testing.T) {
	backend := &fakeBackend{}
	svc := NewService(backend)
	if _, err := svc.Start(context.Background()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if _, err := svc.Append(context.Background(), MessageRequest{Text: "hola"}); err != nil {
		t.Fatalf("Append returned error: %v", err)
	}

	view := svc.Messages()
	view[0].OriginalText = "tampered"

	if svc.Messages()[0].OriginalText == "tampered" {
		t.Fatal("view mutated through returned slice")
	}
}
