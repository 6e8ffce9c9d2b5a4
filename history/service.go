package history

import (
	"context"

	"github.com/goliatone/go-lingo/translate"
)

// Source fetches persisted translation entries, most recent first.
type Source interface {
	TranslationHistory(ctx context.Context, limit int) ([]*translate.Result, error)
}

// Service keeps a bounded recents cache on top of a history source. The cache
// holds the first entries of the source's ordering; the service never re-sorts.
type Service interface {
	// Refresh re-fetches history and replaces the recents cache with the
	// leading entries, truncated to the recent limit. A fetch failure leaves
	// the previous cache in place.
	Refresh(ctx context.Context) error

	// Recent returns the cached entries in source order.
	Recent() []*translate.Result

	// History fetches up to limit entries straight from the source without
	// touching the recents cache. A non-positive limit uses the fetch default.
	History(ctx context.Context, limit int) ([]*translate.Result, error)
}
