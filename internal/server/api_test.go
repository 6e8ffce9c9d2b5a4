package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/goliatone/go-lingo/internal/catalog"
	"github.com/goliatone/go-lingo/internal/conversation"
	"github.com/goliatone/go-lingo/internal/engine/stub"
	"github.com/goliatone/go-lingo/internal/history"
	"github.com/goliatone/go-lingo/internal/status"
	"github.com/goliatone/go-lingo/translate"
)

func TestAPIRootReportsVersion(t *testing.T) {
	mux := setupAPI(t)

	resp := doJSONRequest(t, mux, http.MethodGet, "/api", nil, http.StatusOK)
	var body map[string]string
	decodeJSONBody(t, resp, &body)
	if body["version"] != Version {
		t.Fatalf("expected version %s, got %q", Version, body["version"])
	}
	if body["message"] == "" {
		t.Fatal("expected a message in the root payload")
	}

	doJSONRequest(t, mux, http.MethodGet, "/api/", nil, http.StatusOK)
}

func TestLanguageListServesCatalog(t *testing.T) {
	mux := setupAPI(t)

	resp := doJSONRequest(t, mux, http.MethodGet, "/api/languages", nil, http.StatusOK)
	var languages []languagePayload
	decodeJSONBody(t, resp, &languages)
	if len(languages) != 20 {
		t.Fatalf("expected 20 languages, got %d", len(languages))
	}

	found := false
	for _, language := range languages {
		if language.Code == "hi" {
			found = true
			if language.NativeName != "हिंदी" {
				t.Fatalf("expected Hindi native name, got %q", language.NativeName)
			}
		}
	}
	if !found {
		t.Fatal("expected hi in the catalog")
	}
}

func TestLanguageListFiltersInactive(t *testing.T) {
	languages := catalog.NewMemoryLanguageRepository()
	seedLanguage(t, languages, "en", "English", true)
	seedLanguage(t, languages, "es", "Spanish", true)
	seedLanguage(t, languages, "xx", "Retired", false)

	mux := newMux(t, WithLanguageRepository(languages))

	resp := doJSONRequest(t, mux, http.MethodGet, "/api/languages", nil, http.StatusOK)
	var payload []languagePayload
	decodeJSONBody(t, resp, &payload)
	if len(payload) != 2 {
		t.Fatalf("expected inactive languages filtered, got %d entries", len(payload))
	}
}

func TestTextTranslatePersistsHistory(t *testing.T) {
	mux := setupAPI(t)

	resp := doJSONRequest(t, mux, http.MethodPost, "/api/translate/text", map[string]any{
		"text":            "hello",
		"source_language": "en",
		"target_language": "es",
	}, http.StatusOK)

	var result translate.Result
	decodeJSONBody(t, resp, &result)
	if result.ID == uuid.Nil {
		t.Fatal("expected a server-assigned id")
	}
	if result.TranslatedText != "hola" {
		t.Fatalf("expected hola, got %q", result.TranslatedText)
	}
	if result.Confidence == nil || *result.Confidence != stub.TranslateConfidence {
		t.Fatalf("expected confidence %v, got %v", stub.TranslateConfidence, result.Confidence)
	}
	if result.Timestamp.IsZero() {
		t.Fatal("expected a timestamp")
	}

	histResp := doJSONRequest(t, mux, http.MethodGet, "/api/translate/history", nil, http.StatusOK)
	var entries []*translate.Result
	decodeJSONBody(t, histResp, &entries)
	if len(entries) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(entries))
	}
	if entries[0].ID != result.ID {
		t.Fatalf("expected history to carry the stored entry, got %s", entries[0].ID)
	}
}

func TestTextTranslateSamePairEchoes(t *testing.T) {
	mux := setupAPI(t)

	resp := doJSONRequest(t, mux, http.MethodPost, "/api/translate/text", map[string]any{
		"text":            "already english",
		"source_language": "en",
		"target_language": "en",
	}, http.StatusOK)

	var result translate.Result
	decodeJSONBody(t, resp, &result)
	if result.TranslatedText != "already english" {
		t.Fatalf("expected echo, got %q", result.TranslatedText)
	}
	if result.Confidence == nil || *result.Confidence != 1.0 {
		t.Fatalf("expected confidence 1.0, got %v", result.Confidence)
	}
}

func TestTextTranslateAutoDetectsSource(t *testing.T) {
	mux := setupAPI(t)

	resp := doJSONRequest(t, mux, http.MethodPost, "/api/translate/text", map[string]any{
		"text":            "Привет мир",
		"source_language": "auto",
		"target_language": "en",
	}, http.StatusOK)

	var result translate.Result
	decodeJSONBody(t, resp, &result)
	if result.SourceLanguage != "ru" {
		t.Fatalf("expected detected source ru, got %q", result.SourceLanguage)
	}
	if result.TranslatedText == "" {
		t.Fatal("expected a translation")
	}
}

func TestTextTranslateBlankSourceDefaultsToAuto(t *testing.T) {
	mux := setupAPI(t)

	resp := doJSONRequest(t, mux, http.MethodPost, "/api/translate/text", map[string]any{
		"text":            "مرحبا بالعالم",
		"target_language": "en",
	}, http.StatusOK)

	var result translate.Result
	decodeJSONBody(t, resp, &result)
	if result.SourceLanguage != "ar" {
		t.Fatalf("expected detected source ar, got %q", result.SourceLanguage)
	}
}

func TestTextTranslateUnsupportedDetectionFallsBack(t *testing.T) {
	languages := catalog.NewMemoryLanguageRepository()
	seedLanguage(t, languages, "en", "English", true)
	seedLanguage(t, languages, "es", "Spanish", true)

	mux := newMux(t,
		WithLanguageRepository(languages),
		WithEntryRepository(history.NewMemoryEntryRepository()),
		WithTranslator(stub.New()),
	)

	resp := doJSONRequest(t, mux, http.MethodPost, "/api/translate/text", map[string]any{
		"text":            "Привет мир",
		"source_language": "auto",
		"target_language": "es",
	}, http.StatusOK)

	var result translate.Result
	decodeJSONBody(t, resp, &result)
	if result.SourceLanguage != "en" {
		t.Fatalf("expected fallback source en, got %q", result.SourceLanguage)
	}
}

func TestTextTranslateValidation(t *testing.T) {
	mux := setupAPI(t)

	resp := doJSONRequest(t, mux, http.MethodPost, "/api/translate/text", map[string]any{
		"text":            "",
		"source_language": "en",
		"target_language": "es",
	}, http.StatusUnprocessableEntity)
	var failure errorResponse
	decodeJSONBody(t, resp, &failure)
	if failure.Detail != "text is required" {
		t.Fatalf("expected text detail, got %q", failure.Detail)
	}

	resp = doJSONRequest(t, mux, http.MethodPost, "/api/translate/text", map[string]any{
		"text": "hello",
	}, http.StatusUnprocessableEntity)
	decodeJSONBody(t, resp, &failure)
	if failure.Detail != "target_language is required" {
		t.Fatalf("expected target detail, got %q", failure.Detail)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/translate/text", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for malformed body, got %d", rec.Code)
	}
}

func TestTranslationHistoryHonorsLimit(t *testing.T) {
	mux := setupAPI(t)

	for _, text := range []string{"one", "two", "three"} {
		doJSONRequest(t, mux, http.MethodPost, "/api/translate/text", map[string]any{
			"text":            text,
			"source_language": "en",
			"target_language": "es",
		}, http.StatusOK)
	}

	resp := doJSONRequest(t, mux, http.MethodGet, "/api/translate/history?limit=2", nil, http.StatusOK)
	var entries []*translate.Result
	decodeJSONBody(t, resp, &entries)
	if len(entries) != 2 {
		t.Fatalf("expected limit to cap history, got %d", len(entries))
	}
	if entries[0].OriginalText != "three" {
		t.Fatalf("expected newest first, got %q", entries[0].OriginalText)
	}

	resp = doJSONRequest(t, mux, http.MethodGet, "/api/translate/history?limit=nope", nil, http.StatusUnprocessableEntity)
	var failure errorResponse
	decodeJSONBody(t, resp, &failure)
	if failure.Detail != "limit must be an integer" {
		t.Fatalf("expected limit detail, got %q", failure.Detail)
	}
}

func TestOCRExtractRoundTrip(t *testing.T) {
	mux := setupAPI(t)

	image := base64.StdEncoding.EncodeToString([]byte("  Menu del dia  "))
	resp := doJSONRequest(t, mux, http.MethodPost, "/api/ocr/extract", map[string]any{
		"image_base64": image,
	}, http.StatusOK)

	var extraction ocrExtractResponse
	decodeJSONBody(t, resp, &extraction)
	if extraction.ExtractedText != "Menu del dia" {
		t.Fatalf("expected trimmed extraction, got %q", extraction.ExtractedText)
	}
	if extraction.Confidence == nil || *extraction.Confidence != stub.ExtractConfidence {
		t.Fatalf("expected confidence %v, got %v", stub.ExtractConfidence, extraction.Confidence)
	}
}

func TestOCRExtractRejectsBadPayloads(t *testing.T) {
	mux := setupAPI(t)

	resp := doJSONRequest(t, mux, http.MethodPost, "/api/ocr/extract", map[string]any{
		"image_base64": "not//valid--base64!!",
	}, http.StatusUnprocessableEntity)
	var failure errorResponse
	decodeJSONBody(t, resp, &failure)
	if failure.Detail != errImageEncoding.Error() {
		t.Fatalf("expected encoding detail, got %q", failure.Detail)
	}

	resp = doJSONRequest(t, mux, http.MethodPost, "/api/ocr/extract", map[string]any{}, http.StatusUnprocessableEntity)
	decodeJSONBody(t, resp, &failure)
	if failure.Detail != errImageRequired.Error() {
		t.Fatalf("expected required detail, got %q", failure.Detail)
	}
}

func TestImageTranslatePipeline(t *testing.T) {
	mux := setupAPI(t)

	image := base64.StdEncoding.EncodeToString([]byte("hello"))
	resp := doJSONRequest(t, mux, http.MethodPost, "/api/translate/image", map[string]any{
		"image_base64":    image,
		"source_language": "auto",
		"target_language": "es",
	}, http.StatusOK)

	var result imageTranslateResponse
	decodeJSONBody(t, resp, &result)
	if result.OriginalText != "hello" {
		t.Fatalf("expected extracted text, got %q", result.OriginalText)
	}
	if result.TranslatedText != "hola" {
		t.Fatalf("expected hola, got %q", result.TranslatedText)
	}
	if result.SourceLanguage != "en" {
		t.Fatalf("expected detected en, got %q", result.SourceLanguage)
	}
	if result.Confidence == nil || *result.Confidence != stub.TranslateConfidence {
		t.Fatalf("expected translation confidence, got %v", result.Confidence)
	}
}

func TestImageTranslateEmptyExtraction(t *testing.T) {
	mux := setupAPI(t)

	image := base64.StdEncoding.EncodeToString([]byte{0xff, 0xfe, 0xfd})
	resp := doJSONRequest(t, mux, http.MethodPost, "/api/translate/image", map[string]any{
		"image_base64":    image,
		"source_language": "en",
		"target_language": "es",
	}, http.StatusOK)

	var result imageTranslateResponse
	decodeJSONBody(t, resp, &result)
	if result.OriginalText != "" || result.TranslatedText != "" {
		t.Fatalf("expected empty pipeline result, got %+v", result)
	}
}

func TestConversationFlow(t *testing.T) {
	mux := setupAPI(t)

	createResp := doJSONRequest(t, mux, http.MethodPost, "/api/conversation/create", nil, http.StatusOK)
	var created conversationCreateResponse
	decodeJSONBody(t, createResp, &created)
	if created.ConversationID == uuid.Nil {
		t.Fatal("expected a conversation id")
	}

	msgPath := "/api/conversation/" + created.ConversationID.String() + "/message"
	firstResp := doJSONRequest(t, mux, http.MethodPost, msgPath, map[string]any{
		"original_text":   "hello",
		"source_language": "en",
		"target_language": "es",
		"message_type":    "text",
		"sender_id":       "user-1",
	}, http.StatusOK)
	var first conversation.Message
	decodeJSONBody(t, firstResp, &first)
	if !first.IsTranslated {
		t.Fatal("expected distinct target to mark the message translated")
	}
	if first.TranslatedText != "hola" {
		t.Fatalf("expected hola, got %q", first.TranslatedText)
	}

	secondResp := doJSONRequest(t, mux, http.MethodPost, msgPath, map[string]any{
		"original_text":   "same language",
		"source_language": "en",
		"target_language": "en",
		"message_type":    "text",
		"sender_id":       "user-2",
	}, http.StatusOK)
	var second conversation.Message
	decodeJSONBody(t, secondResp, &second)
	if second.IsTranslated {
		t.Fatal("expected same-language message stored untouched")
	}
	if second.TranslatedText != "" {
		t.Fatalf("expected no translation, got %q", second.TranslatedText)
	}

	listResp := doJSONRequest(t, mux, http.MethodGet, "/api/conversation/"+created.ConversationID.String()+"/messages", nil, http.StatusOK)
	var messages []*conversation.Message
	decodeJSONBody(t, listResp, &messages)
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if messages[0].SenderID != "user-1" || messages[1].SenderID != "user-2" {
		t.Fatal("expected messages ordered oldest first")
	}

	emptyResp := doJSONRequest(t, mux, http.MethodGet, "/api/conversation/"+uuid.NewString()+"/messages", nil, http.StatusOK)
	var empty []*conversation.Message
	decodeJSONBody(t, emptyResp, &empty)
	if len(empty) != 0 {
		t.Fatalf("expected no messages for an unknown conversation, got %d", len(empty))
	}
}

func TestConversationValidation(t *testing.T) {
	mux := setupAPI(t)

	resp := doJSONRequest(t, mux, http.MethodPost, "/api/conversation/not-a-uuid/message", map[string]any{
		"original_text":   "hello",
		"source_language": "en",
		"message_type":    "text",
		"sender_id":       "user-1",
	}, http.StatusUnprocessableEntity)
	var failure errorResponse
	decodeJSONBody(t, resp, &failure)
	if failure.Detail != "invalid conversation id" {
		t.Fatalf("expected id detail, got %q", failure.Detail)
	}

	path := "/api/conversation/" + uuid.NewString() + "/message"
	resp = doJSONRequest(t, mux, http.MethodPost, path, map[string]any{
		"original_text":   "hello",
		"source_language": "en",
		"message_type":    "text",
	}, http.StatusUnprocessableEntity)
	decodeJSONBody(t, resp, &failure)
	if failure.Detail != "sender_id is required" {
		t.Fatalf("expected sender detail, got %q", failure.Detail)
	}
}

func TestStatusUpsertFlow(t *testing.T) {
	mux := setupAPI(t)

	firstResp := doJSONRequest(t, mux, http.MethodPost, "/api/status", map[string]any{
		"client_name": "Desktop App",
	}, http.StatusOK)
	var first status.Check
	decodeJSONBody(t, firstResp, &first)
	if first.ID == uuid.Nil {
		t.Fatal("expected a check id")
	}
	if first.ClientName != "Desktop App" {
		t.Fatalf("expected client name echoed, got %q", first.ClientName)
	}

	secondResp := doJSONRequest(t, mux, http.MethodPost, "/api/status", map[string]any{
		"client_name": "desktop app",
	}, http.StatusOK)
	var second status.Check
	decodeJSONBody(t, secondResp, &second)
	if second.ID != first.ID {
		t.Fatal("expected repeated posts to land on one record")
	}

	listResp := doJSONRequest(t, mux, http.MethodGet, "/api/status", nil, http.StatusOK)
	var checks []*status.Check
	decodeJSONBody(t, listResp, &checks)
	if len(checks) != 1 {
		t.Fatalf("expected a single check, got %d", len(checks))
	}

	resp := doJSONRequest(t, mux, http.MethodPost, "/api/status", map[string]any{
		"client_name": "  ",
	}, http.StatusUnprocessableEntity)
	var failure errorResponse
	decodeJSONBody(t, resp, &failure)
	if failure.Detail != "client_name is required" {
		t.Fatalf("expected client name detail, got %q", failure.Detail)
	}
}

func TestUnconfiguredAPIAnswersUnavailable(t *testing.T) {
	api := NewAPI()
	mux := http.NewServeMux()
	if err := api.Register(mux); err != nil {
		t.Fatalf("register api: %v", err)
	}

	doJSONRequest(t, mux, http.MethodPost, "/api/translate/text", map[string]any{
		"text":            "hello",
		"target_language": "es",
	}, http.StatusServiceUnavailable)
	doJSONRequest(t, mux, http.MethodGet, "/api/languages", nil, http.StatusServiceUnavailable)
	doJSONRequest(t, mux, http.MethodGet, "/api/status", nil, http.StatusServiceUnavailable)
}

func TestRegisterRequiresMux(t *testing.T) {
	api := NewAPI()
	if err := api.Register(nil); err == nil {
		t.Fatal("expected an error for a nil mux")
	}
}

func setupAPI(t *testing.T, opts ...Option) *http.ServeMux {
	t.Helper()

	languages := catalog.NewMemoryLanguageRepository()
	for _, language := range catalog.DefaultLanguages() {
		if _, err := languages.Upsert(context.Background(), language); err != nil {
			t.Fatalf("seed language %s: %v", language.Code, err)
		}
	}

	eng := stub.New()
	base := []Option{
		WithLanguageRepository(languages),
		WithEntryRepository(history.NewMemoryEntryRepository()),
		WithConversationRepositories(
			conversation.NewMemoryConversationRepository(),
			conversation.NewMemoryMessageRepository(),
		),
		WithStatusRepository(status.NewMemoryCheckRepository()),
		WithTranslator(eng),
		WithRecognizer(eng),
	}
	return newMux(t, append(base, opts...)...)
}

func newMux(t *testing.T, opts ...Option) *http.ServeMux {
	t.Helper()

	api := NewAPI(opts...)
	mux := http.NewServeMux()
	if err := api.Register(mux); err != nil {
		t.Fatalf("register api: %v", err)
	}
	return mux
}

func doJSONRequest(t *testing.T, mux *http.ServeMux, method, path string, body any, wantStatus int) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != wantStatus {
		t.Fatalf("expected status %d got %d (%s)", wantStatus, rec.Code, rec.Body.String())
	}
	return rec
}

func decodeJSONBody(t *testing.T, rec *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), target); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func seedLanguage(t *testing.T, repo catalog.LanguageRepository, code, name string, active bool) {
	t.Helper()
	if _, err := repo.Upsert(context.Background(), &catalog.Language{
		Code:       code,
		Name:       name,
		NativeName: name,
		IsActive:   active,
	}); err != nil {
		t.Fatalf("seed language %s: %v", code, err)
	}
}
