package translate

import "context"

// Backend performs the translation round trip against the remote service.
type Backend interface {
	TranslateText(ctx context.Context, req Request) (*Result, error)
}

// RecentsRefresher is poked after every successful translation so cached
// recent results stay aligned with server history. Refresh failures are
// logged and swallowed; they never fail the translation that triggered them.
type RecentsRefresher interface {
	Refresh(ctx context.Context) error
}

// Service orchestrates text translations around a single active language
// pair. One translation runs at a time: requests issued while busy are
// rejected with ErrBusy rather than queued.
type Service interface {
	// Translate sends the text to the backend using the current pair (or the
	// request's overrides) and publishes the result.
	Translate(ctx context.Context, req Request) (*Result, error)
	// SwapLanguages exchanges source and target. When the source is
	// SourceAuto the swap is refused with an explanatory notice instead of
	// an error, and nothing changes.
	SwapLanguages() State
	SetSourceLanguage(code string) State
	SetTargetLanguage(code string) State
	SetInputText(text string) State
	// ApplyRecent republishes a cached entry's texts into the input/output
	// fields without a network call.
	ApplyRecent(entry *Result) State
	// TargetLanguage reports the active target code.
	TargetLanguage() string
	State() State
}
