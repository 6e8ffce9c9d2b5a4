package capture

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goliatone/go-lingo/internal/logging"
	"github.com/goliatone/go-lingo/pkg/interfaces"
)

// DefaultPickQuality is the compression quality requested from the picker.
const DefaultPickQuality = 70

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithLogger overrides the module logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPickQuality sets the compression quality (1-100) requested from the
// photo picker.
func WithPickQuality(quality int) ServiceOption {
	return func(s *service) {
		if quality >= 1 && quality <= 100 {
			s.quality = quality
		}
	}
}

type service struct {
	source  interfaces.ImageSource
	gate    interfaces.PermissionGate
	logger  interfaces.Logger
	quality int

	mu      sync.Mutex
	busy    bool
	current *interfaces.ImagePayload
}

// NewService constructs the image acquisition service. A nil gate skips
// permission handling, which suits headless hosts that enforce their own.
func NewService(source interfaces.ImageSource, gate interfaces.PermissionGate, opts ...ServiceOption) Service {
	svc := &service{
		source:  source,
		gate:    gate,
		logger:  logging.NoOp(),
		quality: DefaultPickQuality,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc
}

// CaptureFromCamera takes a photo. The camera permission is checked, never
// requested: the host grants it up front (usually on the capture screen) and
// a missing grant is an immediate failure.
func (s *service) CaptureFromCamera(ctx context.Context) (*interfaces.ImagePayload, error) {
	if s.source == nil {
		return nil, ErrNoImageSource
	}
	if err := s.claim(); err != nil {
		return nil, err
	}
	defer s.release()

	if s.gate != nil {
		granted, err := s.gate.Check(ctx, interfaces.PermissionCamera)
		if err != nil {
			return nil, fmt.Errorf("%w: camera permission check: %v", ErrCaptureFailed, err)
		}
		if !granted {
			s.logger.Warn("capture.camera.denied")
			return nil, interfaces.ErrPermissionDenied
		}
	}

	image, err := s.source.Capture(ctx)
	return s.finish("camera", image, err)
}

// PickFromLibrary opens the photo picker. Library permission is requested
// inline so first-time users get the system prompt at the moment of use.
func (s *service) PickFromLibrary(ctx context.Context) (*interfaces.ImagePayload, error) {
	if s.source == nil {
		return nil, ErrNoImageSource
	}
	if err := s.claim(); err != nil {
		return nil, err
	}
	defer s.release()

	if s.gate != nil {
		granted, err := s.gate.Request(ctx, interfaces.PermissionPhotoLibrary)
		if err != nil {
			return nil, fmt.Errorf("%w: photo library permission request: %v", ErrCaptureFailed, err)
		}
		if !granted {
			s.logger.Warn("capture.library.denied")
			return nil, interfaces.ErrPermissionDenied
		}
	}

	image, err := s.source.Pick(ctx, interfaces.PickOptions{Quality: s.quality})
	return s.finish("library", image, err)
}

func (s *service) CurrentImage() *interfaces.ImagePayload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

func (s *service) Clear() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}

func (s *service) claim() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return ErrBusy
	}
	s.busy = true
	return nil
}

func (s *service) release() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

// finish maps source outcomes to the acquisition contract: a cancellation is
// a silent no-op, any other failure wraps ErrCaptureFailed, and a produced
// image becomes the current one.
func (s *service) finish(origin string, image *interfaces.ImagePayload, err error) (*interfaces.ImagePayload, error) {
	if err != nil {
		if errors.Is(err, interfaces.ErrImageSourceCancelled) {
			s.logger.Debug("capture.cancelled", "origin", origin)
			return nil, nil
		}
		s.logger.Error("capture.failed", "origin", origin, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrCaptureFailed, err)
	}
	if image == nil {
		s.logger.Debug("capture.cancelled", "origin", origin)
		return nil, nil
	}

	stored := image.Clone()
	s.mu.Lock()
	s.current = stored
	s.mu.Unlock()

	s.logger.Info("capture.acquired",
		"origin", origin,
		"mime", image.MIME,
		"bytes", len(image.Data),
	)
	return image.Clone(), nil
}
