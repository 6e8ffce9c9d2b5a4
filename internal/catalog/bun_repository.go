package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunLanguageRepository persists languages through go-repository-bun.
type BunLanguageRepository struct {
	repo repository.Repository[*Language]
}

func NewBunLanguageRepository(db *bun.DB) *BunLanguageRepository {
	return NewBunLanguageRepositoryWithCache(db, nil, nil)
}

// NewBunLanguageRepositoryWithCache constructs a LanguageRepository with optional caching.
func NewBunLanguageRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunLanguageRepository {
	base := NewLanguageModelRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunLanguageRepository{repo: wrapped}
}

// Upsert inserts the language or replaces the record stored under its code.
func (r *BunLanguageRepository) Upsert(ctx context.Context, language *Language) (*Language, error) {
	code := strings.ToLower(strings.TrimSpace(language.Code))
	if code == "" {
		return nil, ErrLanguageCodeRequired
	}

	copied := *language
	copied.Code = code

	existing, err := r.GetByCode(ctx, code)
	if err != nil {
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		if copied.ID == uuid.Nil {
			copied.ID = uuid.New()
		}
		created, err := r.repo.Create(ctx, &copied)
		if err != nil {
			return nil, fmt.Errorf("language repository error: %w", err)
		}
		return created, nil
	}

	copied.ID = existing.ID
	updated, err := r.repo.Update(ctx, &copied,
		repository.UpdateByID(existing.ID.String()),
		repository.UpdateColumns("code", "name", "native_name", "is_active"),
	)
	if err != nil {
		return nil, fmt.Errorf("language repository error: %w", err)
	}
	return updated, nil
}

// GetByCode retrieves a language by its code.
func (r *BunLanguageRepository) GetByCode(ctx context.Context, code string) (*Language, error) {
	result, err := r.repo.GetByIdentifier(ctx, strings.ToLower(strings.TrimSpace(code)))
	if err != nil {
		return nil, mapRepositoryError(err, "language", code)
	}
	return result, nil
}

// List returns the catalog ordered by code.
func (r *BunLanguageRepository) List(ctx context.Context) ([]*Language, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.code ASC")
		}),
	)
	return records, err
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{
			Resource: resource,
			Key:      key,
		}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
