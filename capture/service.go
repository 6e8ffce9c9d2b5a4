package capture

import (
	"context"

	"github.com/goliatone/go-lingo/pkg/interfaces"
)

// Service acquires images from the host device for the image pipeline. The
// two entry points differ on purpose: the camera expects its permission to be
// granted ahead of time, while the photo library requests access inline.
type Service interface {
	// CaptureFromCamera takes a photo. Camera permission is only checked, never
	// requested; a missing grant fails with interfaces.ErrPermissionDenied.
	// A user cancellation returns (nil, nil).
	CaptureFromCamera(ctx context.Context) (*interfaces.ImagePayload, error)

	// PickFromLibrary opens the photo picker, requesting library permission
	// inline when needed. A user cancellation returns (nil, nil).
	PickFromLibrary(ctx context.Context) (*interfaces.ImagePayload, error)

	// CurrentImage returns the most recently acquired image, nil when none.
	CurrentImage() *interfaces.ImagePayload

	// Clear drops the current image.
	Clear()
}
