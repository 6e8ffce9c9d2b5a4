package capture

import "errors"

var (
	// ErrBusy indicates an acquisition is already in flight.
	ErrBusy = errors.New("capture: acquisition already in progress")
	// ErrCaptureFailed wraps device failures while acquiring an image.
	ErrCaptureFailed = errors.New("capture: image acquisition failed")
	// ErrNoImageSource indicates the service has no image source wired.
	ErrNoImageSource = errors.New("capture: image source is required")
)
