// Package stub is a deterministic engine for development and tests. It
// translates through small per-target dictionaries, marks everything else
// with the target code, and recognizes images whose bytes are plain text.
package stub

import (
	"context"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/goliatone/go-lingo/internal/engine"
)

const (
	// TranslateConfidence is reported for every dictionary or marker
	// translation.
	TranslateConfidence = 0.95
	// ExtractConfidence is reported whenever recognition finds text.
	ExtractConfidence = 0.85
)

// Engine implements engine.Translator and engine.Recognizer with fully
// deterministic behavior.
type Engine struct {
	dictionaries map[string]map[string]string
	delay        time.Duration
}

// Option configures the engine.
type Option func(*Engine)

// WithDictionary registers translations for a target language. Phrases are
// matched case insensitively; entries merge over the built-in seed.
func WithDictionary(target string, entries map[string]string) Option {
	return func(e *Engine) {
		code := strings.ToLower(strings.TrimSpace(target))
		if code == "" || len(entries) == 0 {
			return
		}
		dict := e.dictionaries[code]
		if dict == nil {
			dict = make(map[string]string, len(entries))
			e.dictionaries[code] = dict
		}
		for phrase, translation := range entries {
			dict[strings.ToLower(strings.TrimSpace(phrase))] = translation
		}
	}
}

// WithDelay makes every call sleep first, for exercising busy states and
// cancellation in tests.
func WithDelay(delay time.Duration) Option {
	return func(e *Engine) {
		if delay > 0 {
			e.delay = delay
		}
	}
}

// New constructs the engine with a small built-in phrase seed.
func New(opts ...Option) *Engine {
	e := &Engine{
		dictionaries: defaultDictionaries(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Translate answers from the target dictionary when the phrase is known and
// falls back to tagging the text with the target code, so output is always
// distinguishable from input.
func (e *Engine) Translate(ctx context.Context, req engine.Request) (*engine.Translation, error) {
	if err := e.sleep(ctx); err != nil {
		return nil, err
	}

	target := strings.ToLower(strings.TrimSpace(req.Target))
	translated := ""
	if dict := e.dictionaries[target]; dict != nil {
		translated = dict[strings.ToLower(strings.TrimSpace(req.Text))]
	}
	if translated == "" {
		translated = "[" + target + "] " + req.Text
	}

	confidence := TranslateConfidence
	return &engine.Translation{Text: translated, Confidence: &confidence}, nil
}

// Detect classifies text by script: kana wins over Han so mixed Japanese
// resolves to ja, and Latin-only text resolves to en.
func (e *Engine) Detect(ctx context.Context, text string) (string, error) {
	if err := e.sleep(ctx); err != nil {
		return "", err
	}

	var hasHan, hasCyrillic, hasArabic, hasDevanagari bool
	for _, r := range text {
		switch {
		case unicode.Is(unicode.Hiragana, r) || unicode.Is(unicode.Katakana, r):
			return "ja", nil
		case unicode.Is(unicode.Hangul, r):
			return "ko", nil
		case unicode.Is(unicode.Han, r):
			hasHan = true
		case unicode.Is(unicode.Cyrillic, r):
			hasCyrillic = true
		case unicode.Is(unicode.Arabic, r):
			hasArabic = true
		case unicode.Is(unicode.Devanagari, r):
			hasDevanagari = true
		}
	}

	switch {
	case hasHan:
		return "zh", nil
	case hasCyrillic:
		return "ru", nil
	case hasArabic:
		return "ar", nil
	case hasDevanagari:
		return "hi", nil
	}
	return "en", nil
}

// Extract treats the image bytes as the text they carry: valid printable
// UTF-8 comes back as the recognized text, anything else recognizes as
// empty. Tests feed literal phrases as image data.
func (e *Engine) Extract(ctx context.Context, image []byte, mime string) (*engine.Recognition, error) {
	if err := e.sleep(ctx); err != nil {
		return nil, err
	}

	raw := string(image)
	if !utf8.ValidString(raw) {
		return &engine.Recognition{}, nil
	}
	text := strings.TrimSpace(raw)
	if text == "" || !printable(text) {
		return &engine.Recognition{}, nil
	}

	confidence := ExtractConfidence
	return &engine.Recognition{Text: text, Confidence: &confidence}, nil
}

func (e *Engine) sleep(ctx context.Context) error {
	if e.delay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(e.delay):
		return nil
	}
}

func printable(text string) bool {
	for _, r := range text {
		if r == '\n' || r == '\t' || r == '\r' {
			continue
		}
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}

func defaultDictionaries() map[string]map[string]string {
	return map[string]map[string]string{
		"es": {
			"hello":     "hola",
			"goodbye":   "adiós",
			"thank you": "gracias",
			"exit":      "salida",
			"welcome":   "bienvenido",
		},
		"en": {
			"hola":    "hello",
			"adiós":   "goodbye",
			"gracias": "thank you",
			"salida":  "exit",
		},
		"fr": {
			"hello":     "bonjour",
			"thank you": "merci",
		},
	}
}

var (
	_ engine.Translator = (*Engine)(nil)
	_ engine.Recognizer = (*Engine)(nil)
)
