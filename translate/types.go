package translate

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// SourceAuto asks the backend to detect the source language.
const SourceAuto = "auto"

// Result is a completed translation. It doubles as the storage model for
// translation history, so client and server share one record shape.
type Result struct {
	bun.BaseModel `bun:"table:translation_entries,alias:te"`

	ID             uuid.UUID `bun:",pk,type:uuid"             json:"id"`
	OriginalText   string    `bun:"original_text,notnull"     json:"original_text"`
	TranslatedText string    `bun:"translated_text,notnull"   json:"translated_text"`
	SourceLanguage string    `bun:"source_language,notnull"   json:"source_language"`
	TargetLanguage string    `bun:"target_language,notnull"   json:"target_language"`
	Context        *string   `bun:"context"                   json:"context,omitempty"`
	Confidence     *float64  `bun:"confidence_score"          json:"confidence_score,omitempty"`
	Timestamp      time.Time `bun:"timestamp,nullzero,default:current_timestamp" json:"timestamp"`
}

// Request captures a text translation invocation. Source and Target override
// the orchestrator's current pair for this call only; empty values inherit it.
type Request struct {
	Text    string
	Context string
	Source  string
	Target  string
}

// State is the observable orchestrator state a UI renders after each
// operation. Notice carries user-facing feedback (connectivity problems,
// backend rejections, swap hints); it never reflects a partial mutation of
// the fields around it.
type State struct {
	SourceLanguage string
	TargetLanguage string
	InputText      string
	OutputText     string
	LastResult     *Result
	Notice         string
	Busy           bool
}
