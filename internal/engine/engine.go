// Package engine defines the translation and recognition contracts the
// embedded server runs on. Implementations live in the stub and llm
// subpackages; hosts can plug their own through the DI container.
package engine

import "context"

// Request is one translation invocation. Source and Target are language
// codes; Context optionally biases tone and terminology.
type Request struct {
	Text    string
	Source  string
	Target  string
	Context string
}

// Translation is an engine's answer for one request.
type Translation struct {
	Text       string
	Confidence *float64
}

// Recognition is an engine's answer for one OCR pass.
type Recognition struct {
	Text       string
	Confidence *float64
}

// Translator turns text from one language into another and detects the
// language of raw text. Detect returns a lowercased ISO 639-1 style code;
// callers own validating it against their catalog.
type Translator interface {
	Translate(ctx context.Context, req Request) (*Translation, error)
	Detect(ctx context.Context, text string) (string, error)
}

// Recognizer extracts the text visible in an image.
type Recognizer interface {
	Extract(ctx context.Context, image []byte, mime string) (*Recognition, error)
}
