package catalog

import lingocatalog "github.com/goliatone/go-lingo/catalog"

type (
	Service  = lingocatalog.Service
	Provider = lingocatalog.Provider
	Language = lingocatalog.Language
)

var (
	ErrProviderRequired     = lingocatalog.ErrProviderRequired
	ErrLanguageCodeRequired = lingocatalog.ErrLanguageCodeRequired
	ErrUnknownLanguage      = lingocatalog.ErrUnknownLanguage
)
