package catalog

import "context"

// Provider fetches the language catalog from the backend.
type Provider interface {
	Languages(ctx context.Context) ([]*Language, error)
}

// Service caches the language catalog and resolves display names.
//
// The cache is filled at most once per process unless Refresh is called. A
// failed load leaves the cache empty and the service fully usable: pickers
// render an empty list and ResolveName degrades to echoing codes.
type Service interface {
	// Load fetches the catalog on first use. Subsequent calls return the
	// cached list without touching the network.
	Load(ctx context.Context) ([]*Language, error)
	// Refresh re-fetches the catalog, replacing the cache on success.
	Refresh(ctx context.Context) ([]*Language, error)
	// Languages returns the cached catalog. Empty before the first
	// successful load.
	Languages() []*Language
	// Loaded reports whether a load has succeeded.
	Loaded() bool
	// Lookup finds a cached language by code.
	Lookup(code string) (*Language, bool)
	// ResolveName maps a language code to its display name. Unknown codes
	// resolve to the raw code, so the result is always renderable.
	ResolveName(code string) string
}
