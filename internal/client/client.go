package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-lingo/catalog"
	"github.com/goliatone/go-lingo/conversation"
	"github.com/goliatone/go-lingo/history"
	"github.com/goliatone/go-lingo/internal/logging"
	"github.com/goliatone/go-lingo/pipeline"
	"github.com/goliatone/go-lingo/pkg/interfaces"
	"github.com/goliatone/go-lingo/status"
	"github.com/goliatone/go-lingo/translate"
	urlkit "github.com/goliatone/go-urlkit"
	"github.com/google/uuid"
)

// DefaultTimeout bounds a backend round trip when the host does not supply
// its own http.Client.
const DefaultTimeout = 30 * time.Second

const apiGroup = "api"

// Named routes registered on the api group.
const (
	routeLanguages            = "languages"
	routeTranslateText        = "translate_text"
	routeTranslateHistory     = "translate_history"
	routeTranslateImage       = "translate_image"
	routeOCRExtract           = "ocr_extract"
	routeConversationCreate   = "conversation_create"
	routeConversationMessage  = "conversation_message"
	routeConversationMessages = "conversation_messages"
	routeStatus               = "status"
)

const maxErrorBody = 64 * 1024

// Client is the HTTP implementation of every backend contract the
// orchestrators consume: language catalog, text and image translation, OCR,
// history, conversations, and status checks. Images are base64 encoded at
// this boundary; transport failures map to interfaces.ErrTransportFailure and
// failure statuses to *interfaces.ServiceError.
type Client struct {
	manager    *urlkit.RouteManager
	httpClient *http.Client
	logger     interfaces.Logger
}

// Option configures the client at construction time.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client, including its timeout.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithTimeout overrides the round trip timeout of the default http.Client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithLogger overrides the module logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New builds a client rooted at baseURL, e.g. "http://localhost:8000". The
// base URL carries scheme and host only; the /api prefix is owned by the
// route table.
func New(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, ErrBaseURLRequired
	}

	c := &Client{
		manager:    newRouteManager(trimmed),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     logging.NoOp(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func newRouteManager(baseURL string) *urlkit.RouteManager {
	return urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    apiGroup,
				BaseURL: baseURL,
				Paths: map[string]string{
					routeLanguages:            "/api/languages",
					routeTranslateText:        "/api/translate/text",
					routeTranslateHistory:     "/api/translate/history",
					routeTranslateImage:       "/api/translate/image",
					routeOCRExtract:           "/api/ocr/extract",
					routeConversationCreate:   "/api/conversation/create",
					routeConversationMessage:  "/api/conversation/:id/message",
					routeConversationMessages: "/api/conversation/:id/messages",
					routeStatus:               "/api/status",
				},
			},
		},
	})
}

// Languages implements catalog.Provider.
func (c *Client) Languages(ctx context.Context) ([]*catalog.Language, error) {
	endpoint, err := c.endpoint(routeLanguages, nil, nil)
	if err != nil {
		return nil, err
	}

	var languages []*catalog.Language
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, &languages); err != nil {
		return nil, err
	}
	return languages, nil
}

type textTranslationRequest struct {
	Text           string `json:"text"`
	SourceLanguage string `json:"source_language"`
	TargetLanguage string `json:"target_language"`
	Context        string `json:"context,omitempty"`
}

// TranslateText implements translate.Backend.
func (c *Client) TranslateText(ctx context.Context, req translate.Request) (*translate.Result, error) {
	endpoint, err := c.endpoint(routeTranslateText, nil, nil)
	if err != nil {
		return nil, err
	}

	payload := textTranslationRequest{
		Text:           req.Text,
		SourceLanguage: req.Source,
		TargetLanguage: req.Target,
		Context:        strings.TrimSpace(req.Context),
	}

	var result translate.Result
	if err := c.doJSON(ctx, http.MethodPost, endpoint, payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// TranslationHistory implements history.Source. A non-positive limit defers
// to the server default.
func (c *Client) TranslationHistory(ctx context.Context, limit int) ([]*translate.Result, error) {
	var query map[string]string
	if limit > 0 {
		query = map[string]string{"limit": strconv.Itoa(limit)}
	}

	endpoint, err := c.endpoint(routeTranslateHistory, nil, query)
	if err != nil {
		return nil, err
	}

	var entries []*translate.Result
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

type ocrExtractRequest struct {
	ImageBase64 string `json:"image_base64"`
}

type ocrExtractResponse struct {
	ExtractedText string   `json:"extracted_text"`
	Confidence    *float64 `json:"confidence_score"`
}

// ExtractText implements pipeline.Recognizer.
func (c *Client) ExtractText(ctx context.Context, image *interfaces.ImagePayload) (*pipeline.Extraction, error) {
	encoded, err := encodeImage(image)
	if err != nil {
		return nil, err
	}

	endpoint, err := c.endpoint(routeOCRExtract, nil, nil)
	if err != nil {
		return nil, err
	}

	var decoded ocrExtractResponse
	if err := c.doJSON(ctx, http.MethodPost, endpoint, ocrExtractRequest{ImageBase64: encoded}, &decoded); err != nil {
		return nil, err
	}

	return &pipeline.Extraction{
		Text:       decoded.ExtractedText,
		Confidence: decoded.Confidence,
	}, nil
}

type imageTranslationRequest struct {
	ImageBase64    string `json:"image_base64"`
	SourceLanguage string `json:"source_language"`
	TargetLanguage string `json:"target_language"`
}

type imageTranslationResponse struct {
	OriginalText   string   `json:"original_text"`
	TranslatedText string   `json:"translated_text"`
	SourceLanguage string   `json:"source_language"`
	TargetLanguage string   `json:"target_language"`
	Confidence     *float64 `json:"confidence_score"`
}

// TranslateImage implements pipeline.ImageTranslator.
func (c *Client) TranslateImage(ctx context.Context, image *interfaces.ImagePayload, source, target string) (*pipeline.ImageTranslation, error) {
	encoded, err := encodeImage(image)
	if err != nil {
		return nil, err
	}

	endpoint, err := c.endpoint(routeTranslateImage, nil, nil)
	if err != nil {
		return nil, err
	}

	payload := imageTranslationRequest{
		ImageBase64:    encoded,
		SourceLanguage: source,
		TargetLanguage: target,
	}

	var decoded imageTranslationResponse
	if err := c.doJSON(ctx, http.MethodPost, endpoint, payload, &decoded); err != nil {
		return nil, err
	}

	return &pipeline.ImageTranslation{
		OriginalText:   decoded.OriginalText,
		TranslatedText: decoded.TranslatedText,
		SourceLanguage: decoded.SourceLanguage,
		TargetLanguage: decoded.TargetLanguage,
		Confidence:     decoded.Confidence,
	}, nil
}

type conversationCreateResponse struct {
	ConversationID uuid.UUID `json:"conversation_id"`
}

// CreateConversation implements conversation.Backend.
func (c *Client) CreateConversation(ctx context.Context) (uuid.UUID, error) {
	endpoint, err := c.endpoint(routeConversationCreate, nil, nil)
	if err != nil {
		return uuid.Nil, err
	}

	var decoded conversationCreateResponse
	if err := c.doJSON(ctx, http.MethodPost, endpoint, nil, &decoded); err != nil {
		return uuid.Nil, err
	}
	return decoded.ConversationID, nil
}

type messageAppendRequest struct {
	OriginalText   string                   `json:"original_text"`
	SourceLanguage string                   `json:"source_language"`
	TargetLanguage string                   `json:"target_language,omitempty"`
	MessageType    conversation.MessageKind `json:"message_type"`
	SenderID       string                   `json:"sender_id"`
}

// AppendMessage implements conversation.Backend.
func (c *Client) AppendMessage(ctx context.Context, conversationID uuid.UUID, req conversation.MessageRequest) (*conversation.Message, error) {
	if conversationID == uuid.Nil {
		return nil, conversation.ErrNoConversation
	}

	endpoint, err := c.endpoint(routeConversationMessage, map[string]any{"id": conversationID.String()}, nil)
	if err != nil {
		return nil, err
	}

	payload := messageAppendRequest{
		OriginalText:   req.Text,
		SourceLanguage: req.Source,
		TargetLanguage: req.Target,
		MessageType:    req.Kind,
		SenderID:       req.SenderID,
	}

	var message conversation.Message
	if err := c.doJSON(ctx, http.MethodPost, endpoint, payload, &message); err != nil {
		return nil, err
	}
	return &message, nil
}

// ConversationMessages implements conversation.Backend. Messages arrive in
// the server's order, oldest first.
func (c *Client) ConversationMessages(ctx context.Context, conversationID uuid.UUID) ([]*conversation.Message, error) {
	if conversationID == uuid.Nil {
		return nil, conversation.ErrNoConversation
	}

	endpoint, err := c.endpoint(routeConversationMessages, map[string]any{"id": conversationID.String()}, nil)
	if err != nil {
		return nil, err
	}

	var messages []*conversation.Message
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

type statusPostRequest struct {
	ClientName string `json:"client_name"`
}

// PostStatus implements status.Reporter.
func (c *Client) PostStatus(ctx context.Context, clientName string) (*status.Check, error) {
	endpoint, err := c.endpoint(routeStatus, nil, nil)
	if err != nil {
		return nil, err
	}

	var check status.Check
	if err := c.doJSON(ctx, http.MethodPost, endpoint, statusPostRequest{ClientName: clientName}, &check); err != nil {
		return nil, err
	}
	return &check, nil
}

// ListStatus implements status.Reporter.
func (c *Client) ListStatus(ctx context.Context) ([]*status.Check, error) {
	endpoint, err := c.endpoint(routeStatus, nil, nil)
	if err != nil {
		return nil, err
	}

	var checks []*status.Check
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, &checks); err != nil {
		return nil, err
	}
	return checks, nil
}

func (c *Client) endpoint(route string, params map[string]any, query map[string]string) (string, error) {
	group, err := lookupGroup(c.manager, apiGroup)
	if err != nil {
		return "", err
	}

	builder, err := safeBuilder(group, route)
	if err != nil {
		return "", err
	}

	for key, val := range params {
		builder.WithParam(key, val)
	}
	for key, val := range query {
		builder.WithQuery(key, val)
	}

	return builder.Build()
}

// doJSON runs one round trip: encode payload (nil means no body), send,
// classify the status band, decode into out (nil means drain and discard).
func (c *Client) doJSON(ctx context.Context, method, endpoint string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("client: encode request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("client: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("client.request.failed", "method", method, "url", endpoint, "error", err)
		return fmt.Errorf("%w: %v", interfaces.ErrTransportFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return c.serviceError(method, endpoint, resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("client: decode response: %w", err)
	}
	return nil
}

// serviceError maps a failure status to *interfaces.ServiceError, pulling the
// human readable detail out of the body when the backend supplied one.
func (c *Client) serviceError(method, endpoint string, resp *http.Response) error {
	var failure struct {
		Detail string `json:"detail"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	_ = json.Unmarshal(raw, &failure)

	svcErr := &interfaces.ServiceError{
		Status: resp.StatusCode,
		Detail: strings.TrimSpace(failure.Detail),
	}
	c.logger.Warn("client.request.rejected",
		"method", method,
		"url", endpoint,
		"status", resp.StatusCode,
		"detail", svcErr.Detail,
	)
	return svcErr
}

func encodeImage(image *interfaces.ImagePayload) (string, error) {
	if image == nil || len(image.Data) == 0 {
		return "", ErrEmptyImage
	}
	return base64.StdEncoding.EncodeToString(image.Data), nil
}

// lookupGroup wraps the panicking urlkit accessor so an unknown group comes
// back as an error.
func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	if manager == nil {
		return nil, fmt.Errorf("client: route manager not configured")
	}
	defer func() {
		if rec := recover(); rec != nil {
			group = nil
			err = fmt.Errorf("client: route group %q not found", name)
		}
	}()
	group = manager.Group(name)
	return group, nil
}

func safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	if group == nil {
		return nil, fmt.Errorf("client: urlkit group is nil")
	}
	defer func() {
		if rec := recover(); rec != nil {
			builder = nil
			err = fmt.Errorf("client: route %q not found: %v", route, rec)
		}
	}()
	builder = group.Builder(route)
	return builder, nil
}

var (
	_ catalog.Provider         = (*Client)(nil)
	_ translate.Backend        = (*Client)(nil)
	_ history.Source           = (*Client)(nil)
	_ pipeline.Recognizer      = (*Client)(nil)
	_ pipeline.ImageTranslator = (*Client)(nil)
	_ conversation.Backend     = (*Client)(nil)
	_ status.Reporter          = (*Client)(nil)
)
