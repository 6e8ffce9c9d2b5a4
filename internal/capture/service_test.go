package capture

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-lingo/pkg/interfaces"
)

type fakeImageSource struct {
	captureImage *interfaces.ImagePayload
	captureErr   error
	captureCalls int
	pickImage    *interfaces.ImagePayload
	pickErr      error
	pickCalls    int
	lastOpts     interfaces.PickOptions
}

func (f *fakeImageSource) Capture(ctx context.Context) (*interfaces.ImagePayload, error) {
	f.captureCalls++
	if f.captureErr != nil {
		return nil, f.captureErr
	}
	return f.captureImage, nil
}

func (f *fakeImageSource) Pick(ctx context.Context, opts interfaces.PickOptions) (*interfaces.ImagePayload, error) {
	f.pickCalls++
	f.lastOpts = opts
	if f.pickErr != nil {
		return nil, f.pickErr
	}
	return f.pickImage, nil
}

type fakeGate struct {
	checkGranted   bool
	checkErr       error
	checkCalls     int
	requestGranted bool
	requestErr     error
	requestCalls   int
}

func (f *fakeGate) Check(ctx context.Context, perm interfaces.Permission) (bool, error) {
	f.checkCalls++
	return f.checkGranted, f.checkErr
}

func (f *fakeGate) Request(ctx context.Context, perm interfaces.Permission) (bool, error) {
	f.requestCalls++
	return f.requestGranted, f.requestErr
}

func payload(data string) *interfaces.ImagePayload {
	return &interfaces.ImagePayload{
		URI:  "file:///tmp/shot.jpg",
		Data: []byte(data),
		MIME: "image/jpeg",
	}
}

func TestCaptureChecksPermissionWithoutPrompting(t *testing.T) {
	source := &fakeImageSource{captureImage: payload("camera-bytes")}
	gate := &fakeGate{checkGranted: true}
	svc := NewService(source, gate)

	image, err := svc.CaptureFromCamera(context.Background())
	if err != nil {
		t.Fatalf("CaptureFromCamera returned error: %v", err)
	}
	if image == nil || string(image.Data) != "camera-bytes" {
		t.Fatal("expected captured payload")
	}
	if gate.checkCalls != 1 {
		t.Fatalf("expected 1 permission check, got %d", gate.checkCalls)
	}
	if gate.requestCalls != 0 {
		t.Fatalf("camera flow must never prompt, got %d requests", gate.requestCalls)
	}
}

func TestCaptureDeniedPermissionFailsBeforeSource(t *testing.T) {
	source := &fakeImageSource{captureImage: payload("camera-bytes")}
	gate := &fakeGate{checkGranted: false}
	svc := NewService(source, gate)

	_, err := svc.CaptureFromCamera(context.Background())
	if !errors.Is(err, interfaces.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	if source.captureCalls != 0 {
		t.Fatalf("source must not run without permission, got %d calls", source.captureCalls)
	}
}

func TestPickRequestsPermissionInline(t *testing.T) {
	source := &fakeImageSource{pickImage: payload("library-bytes")}
	gate := &fakeGate{requestGranted: true}
	svc := NewService(source, gate)

	image, err := svc.PickFromLibrary(context.Background())
	if err != nil {
		t.Fatalf("PickFromLibrary returned error: %v", err)
	}
	if image == nil || string(image.Data) != "library-bytes" {
		t.Fatal("expected picked payload")
	}
	if gate.requestCalls != 1 {
		t.Fatalf("expected 1 permission request, got %d", gate.requestCalls)
	}
	if gate.checkCalls != 0 {
		t.Fatalf("library flow requests directly, got %d checks", gate.checkCalls)
	}
	if source.lastOpts.Quality != DefaultPickQuality {
		t.Fatalf("expected default quality %d, got %d", DefaultPickQuality, source.lastOpts.Quality)
	}
}

func TestPickCancellationIsASilentNoOp(t *testing.T) {
	source := &fakeImageSource{captureImage: payload("previous")}
	gate := &fakeGate{checkGranted: true, requestGranted: true}
	svc := NewService(source, gate)

	if _, err := svc.CaptureFromCamera(context.Background()); err != nil {
		t.Fatalf("CaptureFromCamera returned error: %v", err)
	}

	source.pickErr = interfaces.ErrImageSourceCancelled
	image, err := svc.PickFromLibrary(context.Background())
	if err != nil {
		t.Fatalf("cancellation must not error, got %v", err)
	}
	if image != nil {
		t.Fatal("cancellation must not produce a payload")
	}

	current := svc.CurrentImage()
	if current == nil || string(current.Data) != "previous" {
		t.Fatal("cancellation must keep the previous image")
	}
}

func TestCaptureFailureWrapsSentinel(t *testing.T) {
	source := &fakeImageSource{captureErr: errors.New("shutter jammed")}
	svc := NewService(source, &fakeGate{checkGranted: true})

	_, err := svc.CaptureFromCamera(context.Background())
	if !errors.Is(err, ErrCaptureFailed) {
		t.Fatalf("expected ErrCaptureFailed, got %v", err)
	}
}

func TestCurrentImageReturnsCopies(t *testing.T) {
	source := &fakeImageSource{captureImage: payload("original")}
	svc := NewService(source, &fakeGate{checkGranted: true})

	if _, err := svc.CaptureFromCamera(context.Background()); err != nil {
		t.Fatalf("CaptureFromCamera returned error: %v", err)
	}

	leaked := svc.CurrentImage()
	copy(leaked.Data, []byte("XXXXXXXX"))

	current := svc.CurrentImage()
	if string(current.Data) != "original" {
		t.Fatalf("current image mutated through returned copy: %q", current.Data)
	}
}

func TestClearDropsCurrentImage(t *testing.T) {
	source := &fakeImageSource{captureImage: payload("bytes")}
	svc := NewService(source, &fakeGate{checkGranted: true})

	if _, err := svc.CaptureFromCamera(context.Background()); err != nil {
		t.Fatalf("CaptureFromCamera returned error: %v", err)
	}
	svc.Clear()
	if svc.CurrentImage() != nil {
		t.Fatal("expected no current image after Clear")
	}
}

func TestWithPickQualityOverridesDefault(t *testing.T) {
	source := &fakeImageSource{pickImage: payload("bytes")}
	svc := NewService(source, &fakeGate{requestGranted: true}, WithPickQuality(42))

	if _, err := svc.PickFromLibrary(context.Background()); err != nil {
		t.Fatalf("PickFromLibrary returned error: %v", err)
	}
	if source.lastOpts.Quality != 42 {
		t.Fatalf("expected quality 42, got %d", source.lastOpts.Quality)
	}
}

func TestAcquisitionRequiresImageSource(t *testing.T) {
	svc := NewService(nil, &fakeGate{checkGranted: true})

	if _, err := svc.CaptureFromCamera(context.Background()); !errors.Is(err, ErrNoImageSource) {
		t.Fatalf("expected ErrNoImageSource, got %v", err)
	}
	if _, err := svc.PickFromLibrary(context.Background()); !errors.Is(err, ErrNoImageSource) {
		t.Fatalf("expected ErrNoImageSource, got %v", err)
	}
}

func TestNilGateSkipsPermissionHandling(t *testing.T) {
	source := &fakeImageSource{captureImage: payload("bytes")}
	svc := NewService(source, nil)

	image, err := svc.CaptureFromCamera(context.Background())
	if err != nil {
		t.Fatalf("CaptureFromCamera returned error: %v", err)
	}
	if image == nil {
		t.Fatal("expected payload with nil gate")
	}
}
