package interfaces

import (
	"context"
	"errors"
)

var (
	// ErrImageSourceCancelled reports that the user dismissed the picker or
	// camera UI without producing an image.
	ErrImageSourceCancelled = errors.New("image source: cancelled by user")
	// ErrImageSourceUnavailable reports that the host has no usable camera or
	// photo library.
	ErrImageSourceUnavailable = errors.New("image source: unavailable")
	// ErrPermissionDenied reports that the host denied a device permission.
	ErrPermissionDenied = errors.New("permission denied")
)

// Permission names a device capability the module needs the host to grant.
type Permission string

const (
	PermissionCamera       Permission = "camera"
	PermissionPhotoLibrary Permission = "photo_library"
)

// ImagePayload is an image handed over by the host device. Either URI or
// Data can be empty depending on what the platform produces.
type ImagePayload struct {
	// URI locates the image on the host (file path or platform URI).
	URI string
	// Data holds the encoded image bytes.
	Data []byte
	// MIME describes the encoding (e.g. "image/jpeg"). Empty means unknown.
	MIME string
}

// Clone returns a deep copy so callers can hold the payload after the
// producer reuses its buffer.
func (p *ImagePayload) Clone() *ImagePayload {
	if p == nil {
		return nil
	}
	copied := *p
	if len(p.Data) > 0 {
		copied.Data = append([]byte(nil), p.Data...)
	}
	return &copied
}

// PickOptions tune how the host picker hands images back.
type PickOptions struct {
	// Quality is the compression quality (1-100) applied to picked images.
	Quality int
}

// ImageSource abstracts the platform camera and photo library. Implementations
// live in the host application; the module ships a no-op adapter for headless
// environments.
type ImageSource interface {
	// Capture takes a photograph with the device camera.
	Capture(ctx context.Context) (*ImagePayload, error)
	// Pick opens the host photo library picker. A user dismissal is reported
	// as ErrImageSourceCancelled, not as a payload.
	Pick(ctx context.Context, opts PickOptions) (*ImagePayload, error)
}

// PermissionGate exposes the host permission system. Check must never prompt;
// Request may prompt when the permission is still undetermined.
type PermissionGate interface {
	Check(ctx context.Context, perm Permission) (bool, error)
	Request(ctx context.Context, perm Permission) (bool, error)
}
