package noop

import (
	"context"
	"time"

	"github.com/goliatone/go-lingo/pkg/interfaces"
)

// Cache returns an interfaces.CacheProvider where every lookup misses and
// every write succeeds, so consumers degrade to cache-free behavior.
func Cache() interfaces.CacheProvider {
	return cacheAdapter{}
}

type cacheAdapter struct{}

func (cacheAdapter) Get(context.Context, string) (any, error) { return nil, nil }

func (cacheAdapter) Set(context.Context, string, any, time.Duration) error { return nil }

func (cacheAdapter) Delete(context.Context, string) error { return nil }

func (cacheAdapter) Clear(context.Context) error { return nil }

// ImageSource returns an image source for hosts without camera or library
// access. Every acquisition fails with interfaces.ErrImageSourceUnavailable.
func ImageSource() interfaces.ImageSource {
	return imageSourceAdapter{}
}

type imageSourceAdapter struct{}

func (imageSourceAdapter) Capture(context.Context) (*interfaces.ImagePayload, error) {
	return nil, interfaces.ErrImageSourceUnavailable
}

func (imageSourceAdapter) Pick(context.Context, interfaces.PickOptions) (*interfaces.ImagePayload, error) {
	return nil, interfaces.ErrImageSourceUnavailable
}

// PermissionGate returns a gate that grants every permission, for hosts that
// enforce their own access control or have none.
func PermissionGate() interfaces.PermissionGate {
	return permissionGateAdapter{}
}

type permissionGateAdapter struct{}

func (permissionGateAdapter) Check(context.Context, interfaces.Permission) (bool, error) {
	return true, nil
}

func (permissionGateAdapter) Request(context.Context, interfaces.Permission) (bool, error) {
	return true, nil
}
