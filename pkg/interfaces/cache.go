package interfaces

import (
	"context"
	"time"
)

// CacheProvider is the host-pluggable cache used for translation results.
// A process-local map satisfies it for single-binary hosts; shared backends
// such as Redis work too, as long as Set honours the supplied TTL. Misses
// may surface as an error or as a nil value; consumers treat both the same.
type CacheProvider interface {
	Get(ctx context.Context, key string) (any, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
