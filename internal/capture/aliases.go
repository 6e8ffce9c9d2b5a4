package capture

import lingocapture "github.com/goliatone/go-lingo/capture"

type (
	Service = lingocapture.Service
)

var (
	ErrBusy          = lingocapture.ErrBusy
	ErrCaptureFailed = lingocapture.ErrCaptureFailed
	ErrNoImageSource = lingocapture.ErrNoImageSource
)
