package pipeline

import (
	"context"

	"github.com/goliatone/go-lingo/pkg/interfaces"
)

// Stage names a step of the image translation pipeline.
type Stage string

const (
	StageIdle          Stage = "idle"
	StageAcquiring     Stage = "acquiring"
	StageExtracting    Stage = "extracting"
	StageTranslating   Stage = "translating"
	StageSkippedNoText Stage = "skipped_no_text"
	StageDone          Stage = "done"
	StageError         Stage = "error"
)

// Snapshot is the observable pipeline state. Every run carries a token; a
// snapshot from a superseded run never overwrites a newer one.
type Snapshot struct {
	Stage Stage
	Token uint64

	Image          *interfaces.ImagePayload
	ExtractedText  string
	TranslatedText string
	SourceLanguage string
	TargetLanguage string

	ExtractionConfidence  *float64
	TranslationConfidence *float64

	// Notice carries user-facing copy for degraded completions, such as a
	// translation failure after a successful extraction.
	Notice string
	// LastError is the presentation of the failure that put the pipeline in
	// StageError.
	LastError string
}

// Extraction is the result of running OCR over an image.
type Extraction struct {
	Text       string
	Confidence *float64
}

// ImageTranslation is the result of a one-shot image translation.
type ImageTranslation struct {
	OriginalText   string
	TranslatedText string
	SourceLanguage string
	TargetLanguage string
	Confidence     *float64
}

// Recognizer extracts text from an image.
type Recognizer interface {
	ExtractText(ctx context.Context, image *interfaces.ImagePayload) (*Extraction, error)
}

// ImageTranslator translates the text in an image in one shot.
type ImageTranslator interface {
	TranslateImage(ctx context.Context, image *interfaces.ImagePayload, source, target string) (*ImageTranslation, error)
}

// TargetResolver reports the target language active elsewhere in the app,
// typically the text translation screen's selection.
type TargetResolver interface {
	TargetLanguage() string
}

// Listener observes pipeline snapshots as stages advance.
type Listener func(Snapshot)
