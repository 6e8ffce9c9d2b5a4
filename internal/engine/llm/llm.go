// Package llm runs translation, detection, and recognition through an
// OpenAI-compatible chat completions API. Any endpoint speaking that format
// works: the hosted APIs, local runtimes, or proxies in front of them.
package llm

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-lingo/internal/catalog"
	"github.com/goliatone/go-lingo/internal/engine"
	"github.com/goliatone/go-lingo/internal/logging"
	"github.com/goliatone/go-lingo/pkg/interfaces"
)

const (
	// DefaultBaseURL targets the OpenAI API; point it anywhere that speaks
	// the same chat completions format.
	DefaultBaseURL = "https://api.openai.com/v1"
	// DefaultModel matches the model the stock backend ran on.
	DefaultModel = "gpt-4o"
	// DefaultTimeout bounds one completion round trip.
	DefaultTimeout = 60 * time.Second
	// DefaultMaxRetries caps retries on transport errors, 429s, and 5xx.
	DefaultMaxRetries = 3

	// TranslateConfidence is reported for completed translations; the API
	// does not expose a usable per-request score.
	TranslateConfidence = 0.95

	temperature  = 0.3
	maxErrorBody = 2048
)

const systemPrompt = "You are an expert translator and linguist. Provide accurate, contextual translations while preserving meaning, tone, and cultural nuances. Always respond with just the translated text unless specifically asked for explanations."

// ErrEmptyCompletion reports a well-formed response that carried no choices.
var ErrEmptyCompletion = errors.New("llm: completion carried no choices")

// Engine implements engine.Translator and engine.Recognizer over a chat
// completions endpoint.
type Engine struct {
	endpoint   string
	apiKey     string
	model      string
	maxRetries int
	httpClient *http.Client
	logger     interfaces.Logger

	languageNames map[string]string
}

// Option configures the engine.
type Option func(*Engine)

// WithAPIKey sets the bearer token. Local runtimes can leave it empty.
func WithAPIKey(key string) Option {
	return func(e *Engine) {
		e.apiKey = strings.TrimSpace(key)
	}
}

// WithModel overrides the model identifier.
func WithModel(model string) Option {
	return func(e *Engine) {
		if trimmed := strings.TrimSpace(model); trimmed != "" {
			e.model = trimmed
		}
	}
}

// WithMaxRetries overrides the retry budget.
func WithMaxRetries(retries int) Option {
	return func(e *Engine) {
		if retries >= 0 {
			e.maxRetries = retries
		}
	}
}

// WithHTTPClient replaces the underlying http.Client, including its timeout
// and any proxy configuration.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(e *Engine) {
		if httpClient != nil {
			e.httpClient = httpClient
		}
	}
}

// WithProxy routes requests through the supplied HTTP(S) proxy URL. Without
// it the standard proxy environment variables apply.
func WithProxy(proxyURL string) Option {
	return func(e *Engine) {
		e.httpClient = makeHTTPClient(proxyURL, e.httpClient.Timeout)
	}
}

// WithTimeout overrides the round trip timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(e *Engine) {
		if timeout > 0 {
			e.httpClient.Timeout = timeout
		}
	}
}

// WithLogger overrides the module logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New builds an engine against baseURL, falling back to the OpenAI API when
// blank. Prompts address languages by display name, seeded from the built-in
// catalog.
func New(baseURL string, opts ...Option) *Engine {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	endpoint := trimmed
	if !strings.HasSuffix(endpoint, "/chat/completions") {
		endpoint += "/chat/completions"
	}

	names := make(map[string]string)
	for _, language := range catalog.DefaultLanguages() {
		names[language.Code] = language.Name
	}

	e := &Engine{
		endpoint:      endpoint,
		model:         DefaultModel,
		maxRetries:    DefaultMaxRetries,
		httpClient:    makeHTTPClient("", DefaultTimeout),
		logger:        logging.NoOp(),
		languageNames: names,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Translate asks the model for the translated text and nothing else.
func (e *Engine) Translate(ctx context.Context, req engine.Request) (*engine.Translation, error) {
	var prompt strings.Builder
	fmt.Fprintf(&prompt, "Translate the following text from %s to %s.\n\n",
		e.languageName(req.Source), e.languageName(req.Target))
	prompt.WriteString("Maintain the original meaning, tone, and cultural context. Handle idioms, slang, and cultural references appropriately.")
	if trimmed := strings.TrimSpace(req.Context); trimmed != "" {
		fmt.Fprintf(&prompt, "\n\nContext: %s", trimmed)
	}
	fmt.Fprintf(&prompt, "\n\nText to translate: %q\n\nRespond with ONLY the translated text.", req.Text)

	text, err := e.complete(ctx, []chatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: prompt.String()},
	})
	if err != nil {
		return nil, err
	}

	confidence := TranslateConfidence
	return &engine.Translation{Text: strings.TrimSpace(text), Confidence: &confidence}, nil
}

// Detect returns the model's language code guess, lowercased. Callers
// validate it against their catalog.
func (e *Engine) Detect(ctx context.Context, text string) (string, error) {
	prompt := fmt.Sprintf("Detect the language of this text and respond with ONLY the ISO 639-1 language code (2 letters):\n\nText: %q\n\nRespond with only the 2-letter code (like: en, es, fr, de, etc.). No explanations.", text)

	answer, err := e.complete(ctx, []chatMessage{
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return "", err
	}

	code := strings.ToLower(strings.TrimSpace(answer))
	if fields := strings.Fields(code); len(fields) > 0 {
		code = fields[0]
	}
	return strings.Trim(code, ".\"'`"), nil
}

// Extract sends the image as a vision part and returns whatever text the
// model reads out of it. Confidence is nil: the API reports none.
func (e *Engine) Extract(ctx context.Context, image []byte, mime string) (*engine.Recognition, error) {
	if len(image) == 0 {
		return &engine.Recognition{}, nil
	}
	if strings.TrimSpace(mime) == "" {
		mime = "image/jpeg"
	}

	dataURI := "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(image)
	text, err := e.complete(ctx, []chatMessage{
		{Role: "user", Content: []contentPart{
			{Type: "text", Text: "Extract all text visible in this image exactly as written, preserving line breaks. Respond with ONLY the extracted text. If the image contains no text, respond with an empty string."},
			{Type: "image_url", ImageURL: &imageURL{URL: dataURI}},
		}},
	})
	if err != nil {
		return nil, err
	}

	return &engine.Recognition{Text: strings.TrimSpace(text)}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	Stream      bool          `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// complete runs the retry loop around one chat completion. Transport errors,
// 429s, and 5xx responses back off exponentially while the context allows.
func (e *Engine) complete(ctx context.Context, messages []chatMessage) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       e.model,
		Messages:    messages,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("llm: encode request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= e.maxRetries; attempt++ {
		if attempt > 0 {
			wait := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(wait):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(body))
		if err != nil {
			return "", fmt.Errorf("llm: build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		if e.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+e.apiKey)
		}

		resp, err := e.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("llm: request failed: %w", err)
			e.logger.Warn("llm.request.failed", "attempt", attempt+1, "error", err)
			continue
		}

		respBody, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
			lastErr = fmt.Errorf("llm: status %d: %s", resp.StatusCode, errorDetail(respBody))
			e.logger.Warn("llm.request.retrying", "attempt", attempt+1, "status", resp.StatusCode)
			continue
		}
		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("llm: status %d: %s", resp.StatusCode, errorDetail(respBody))
		}

		var decoded chatResponse
		if err := json.Unmarshal(respBody, &decoded); err != nil {
			return "", fmt.Errorf("llm: decode response: %w", err)
		}
		if decoded.Error != nil {
			return "", fmt.Errorf("llm: api error: %s", decoded.Error.Message)
		}
		if len(decoded.Choices) == 0 {
			return "", ErrEmptyCompletion
		}
		return decoded.Choices[0].Message.Content, nil
	}

	return "", fmt.Errorf("llm: exhausted %d retries: %w", e.maxRetries, lastErr)
}

func errorDetail(body []byte) string {
	var failure struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &failure); err == nil && failure.Error.Message != "" {
		return failure.Error.Message
	}
	return truncate(string(body), maxErrorBody)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

func (e *Engine) languageName(code string) string {
	normalized := strings.ToLower(strings.TrimSpace(code))
	if name, ok := e.languageNames[normalized]; ok {
		return name
	}
	if normalized == "" {
		return "the source language"
	}
	return normalized
}

// makeHTTPClient builds a client honoring an explicit proxy URL, falling
// back to the standard proxy environment variables.
func makeHTTPClient(proxyURL string, timeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if proxyURL != "" {
		if parsed, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(parsed)
		}
	} else {
		transport.Proxy = http.ProxyFromEnvironment
	}
	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}

var (
	_ engine.Translator = (*Engine)(nil)
	_ engine.Recognizer = (*Engine)(nil)
)
