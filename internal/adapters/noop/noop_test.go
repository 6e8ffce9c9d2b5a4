package noop_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-lingo/internal/adapters/noop"
	"github.com/goliatone/go-lingo/pkg/interfaces"
)

func TestAdaptersImplementInterfaces(t *testing.T) {
	var (
		_ interfaces.CacheProvider  = noop.Cache()
		_ interfaces.ImageSource    = noop.ImageSource()
		_ interfaces.PermissionGate = noop.PermissionGate()
	)
}

func TestImageSourceReportsUnavailable(t *testing.T) {
	source := noop.ImageSource()

	if _, err := source.Capture(context.Background()); !errors.Is(err, interfaces.ErrImageSourceUnavailable) {
		t.Fatalf("expected ErrImageSourceUnavailable, got %v", err)
	}
	if _, err := source.Pick(context.Background(), interfaces.PickOptions{}); !errors.Is(err, interfaces.ErrImageSourceUnavailable) {
		t.Fatalf("expected ErrImageSourceUnavailable, got %v", err)
	}
}

func TestPermissionGateGrantsEverything(t *testing.T) {
	gate := noop.PermissionGate()

	granted, err := gate.Check(context.Background(), interfaces.PermissionCamera)
	if err != nil || !granted {
		t.Fatalf("expected camera check to grant, got granted=%v err=%v", granted, err)
	}
	granted, err = gate.Request(context.Background(), interfaces.PermissionPhotoLibrary)
	if err != nil || !granted {
		t.Fatalf("expected library request to grant, got granted=%v err=%v", granted, err)
	}
}
