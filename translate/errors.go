package translate

import "errors"

var (
	// ErrEmptyInput rejects blank text before any network activity.
	ErrEmptyInput = errors.New("translate: text is required")
	// ErrBusy reports that a translation is already in flight.
	ErrBusy = errors.New("translate: translation already in progress")
	// ErrBackendRequired is returned when no backend is wired.
	ErrBackendRequired = errors.New("translate: backend is required")
)
