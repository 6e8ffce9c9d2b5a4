package pipeline

import "errors"

var (
	// ErrBusy indicates a run is already active.
	ErrBusy = errors.New("pipeline: run already in progress")
	// ErrRunSuperseded indicates a newer run or reset replaced the one that
	// produced this result.
	ErrRunSuperseded = errors.New("pipeline: run superseded")
	// ErrImageRequired indicates Process was handed no image.
	ErrImageRequired = errors.New("pipeline: image is required")
	// ErrExtractionFailed wraps recognizer failures.
	ErrExtractionFailed = errors.New("pipeline: text extraction failed")
	// ErrRecognizerRequired indicates the service has no recognizer wired.
	ErrRecognizerRequired = errors.New("pipeline: recognizer is required")
	// ErrTranslatorRequired indicates the service has no image translator wired.
	ErrTranslatorRequired = errors.New("pipeline: image translator is required")
	// ErrCaptureServiceRequired indicates the acquisition entry points have no
	// capture service wired.
	ErrCaptureServiceRequired = errors.New("pipeline: capture service is required")
)
