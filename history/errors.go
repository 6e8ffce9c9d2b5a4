package history

import "errors"

var (
	// ErrSourceRequired indicates the service has no history source wired.
	ErrSourceRequired = errors.New("history: source is required")
	// ErrEntryRequired indicates a nil entry was handed to a repository.
	ErrEntryRequired = errors.New("history: entry is required")
)
