package server

import "errors"

// Wire validation details surface verbatim, so these read as user-facing
// messages rather than package-prefixed sentinels.
var (
	errImageRequired = errors.New("image_base64 is required")
	errImageEncoding = errors.New("image_base64 is not valid base64")
)
