package catalog

import "errors"

var (
	// ErrProviderRequired is returned by Load when no backend provider is wired.
	ErrProviderRequired = errors.New("catalog: language provider is required")
	// ErrLanguageCodeRequired rejects catalog writes without a code.
	ErrLanguageCodeRequired = errors.New("catalog: language code is required")
	// ErrUnknownLanguage reports lookups for codes the catalog does not hold.
	ErrUnknownLanguage = errors.New("catalog: unknown language")
)
