package client

import "errors"

var (
	// ErrBaseURLRequired is returned by New when the base URL is blank.
	ErrBaseURLRequired = errors.New("client: base url is required")
	// ErrEmptyImage is returned when an image payload carries no bytes to
	// encode.
	ErrEmptyImage = errors.New("client: image payload carries no data")
)
