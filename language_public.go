package lingo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-lingo/catalog"
	internalcatalog "github.com/goliatone/go-lingo/internal/catalog"
	"github.com/google/uuid"
)

var errNilModule = errors.New("lingo: module is nil")

var (
	// ErrLanguageCodeRequired indicates language lookups require a non-empty code.
	ErrLanguageCodeRequired = errors.New("lingo: language code is required")
	// ErrUnknownLanguage indicates a lookup failed because the language code is unknown.
	ErrUnknownLanguage = catalog.ErrUnknownLanguage
)

// LanguageNotFoundError describes unknown language-code lookups and unwraps to ErrUnknownLanguage.
type LanguageNotFoundError struct {
	Code string
}

func (e *LanguageNotFoundError) Error() string {
	code := strings.TrimSpace(e.Code)
	if code == "" {
		return "lingo: language not found"
	}
	return fmt.Sprintf("lingo: language %q not found", code)
}

func (e *LanguageNotFoundError) Unwrap() error {
	return ErrUnknownLanguage
}

// LanguageInfo is the stable public language view exposed by lingo.
type LanguageInfo struct {
	ID         uuid.UUID
	Code       string
	Name       string
	NativeName string
	IsActive   bool
}

// LanguageDirectory resolves language records from the local store, without a
// backend round trip.
type LanguageDirectory interface {
	ResolveByCode(ctx context.Context, code string) (LanguageInfo, error)
}

type languageDirectory struct {
	module *Module
}

func newLanguageDirectory(m *Module) LanguageDirectory {
	return &languageDirectory{module: m}
}

func (s *languageDirectory) ResolveByCode(ctx context.Context, code string) (LanguageInfo, error) {
	if s == nil || s.module == nil || s.module.container == nil {
		return LanguageInfo{}, errNilModule
	}

	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return LanguageInfo{}, ErrLanguageCodeRequired
	}

	repo := s.module.container.LanguageRepository()
	if repo == nil {
		return LanguageInfo{}, errNilModule
	}

	language, err := repo.GetByCode(ctx, code)
	if err != nil {
		var notFound *internalcatalog.NotFoundError
		if errors.As(err, &notFound) {
			return LanguageInfo{}, &LanguageNotFoundError{Code: code}
		}
		return LanguageInfo{}, err
	}
	if language == nil {
		return LanguageInfo{}, &LanguageNotFoundError{Code: code}
	}

	return LanguageInfo{
		ID:         language.ID,
		Code:       language.Code,
		Name:       language.Name,
		NativeName: language.NativeName,
		IsActive:   language.IsActive,
	}, nil
}
