package status

import (
	"context"
	"fmt"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/uptrace/bun"
)

// BunCheckRepository persists status checks through go-repository-bun.
type BunCheckRepository struct {
	repo repository.Repository[*Check]
}

func NewBunCheckRepository(db *bun.DB) *BunCheckRepository {
	return NewBunCheckRepositoryWithCache(db, nil, nil)
}

// NewBunCheckRepositoryWithCache constructs a CheckRepository with optional caching.
func NewBunCheckRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunCheckRepository {
	base := NewCheckModelRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunCheckRepository{repo: wrapped}
}

// Upsert inserts the check or refreshes the record stored for its client name.
func (r *BunCheckRepository) Upsert(ctx context.Context, check *Check) (*Check, error) {
	if check == nil {
		return nil, ErrClientNameRequired
	}
	normalized, err := NormalizeClientName(check.ClientName)
	if err != nil {
		return nil, err
	}

	copied := *check
	copied.ID = CheckID(normalized)
	if copied.Timestamp.IsZero() {
		copied.Timestamp = time.Now().UTC()
	}

	_, err = r.repo.GetByID(ctx, copied.ID.String())
	if err != nil {
		if !goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
			return nil, fmt.Errorf("status repository error: %w", err)
		}
		created, err := r.repo.Create(ctx, &copied)
		if err != nil {
			return nil, fmt.Errorf("status repository error: %w", err)
		}
		return created, nil
	}

	updated, err := r.repo.Update(ctx, &copied,
		repository.UpdateByID(copied.ID.String()),
		repository.UpdateColumns("client_name", "timestamp"),
	)
	if err != nil {
		return nil, fmt.Errorf("status repository error: %w", err)
	}
	return updated, nil
}

// List returns checks newest first.
func (r *BunCheckRepository) List(ctx context.Context) ([]*Check, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.timestamp DESC")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("status repository error: %w", err)
	}
	return records, nil
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
