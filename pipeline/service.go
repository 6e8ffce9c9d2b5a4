package pipeline

import (
	"context"

	"github.com/goliatone/go-lingo/pkg/interfaces"
)

// Service drives an image through acquisition, text extraction and
// translation. One run is active at a time; acquiring a new image or
// resetting supersedes the previous run, whose in-flight responses are then
// discarded without touching state.
type Service interface {
	// Process runs extraction and translation over an already acquired image.
	Process(ctx context.Context, image *interfaces.ImagePayload) (Snapshot, error)

	// CaptureAndTranslate takes a camera photo and processes it. A user
	// cancellation settles back to StageIdle with no error.
	CaptureAndTranslate(ctx context.Context) (Snapshot, error)

	// PickAndTranslate picks a library photo and processes it. A user
	// cancellation settles back to StageIdle with no error.
	PickAndTranslate(ctx context.Context) (Snapshot, error)

	// Snapshot returns the current observable state.
	Snapshot() Snapshot

	// Reset returns the pipeline to StageIdle and supersedes any run still in
	// flight.
	Reset() Snapshot
}
