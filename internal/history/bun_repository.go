package history

import (
	"context"
	"fmt"

	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-lingo/translate"
)

// BunEntryRepository persists translation entries through go-repository-bun.
// The raw handle stays around for the retention sweep, which works on id sets
// rather than single records.
type BunEntryRepository struct {
	db   *bun.DB
	repo repository.Repository[*translate.Result]
}

func NewBunEntryRepository(db *bun.DB) *BunEntryRepository {
	return NewBunEntryRepositoryWithCache(db, nil, nil)
}

// NewBunEntryRepositoryWithCache constructs an EntryRepository with optional caching.
func NewBunEntryRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunEntryRepository {
	base := NewEntryModelRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunEntryRepository{db: db, repo: wrapped}
}

func (r *BunEntryRepository) Create(ctx context.Context, entry *translate.Result) (*translate.Result, error) {
	if entry == nil {
		return nil, ErrEntryRequired
	}

	copied := *entry
	if copied.ID == uuid.Nil {
		copied.ID = uuid.New()
	}

	created, err := r.repo.Create(ctx, &copied)
	if err != nil {
		return nil, fmt.Errorf("translation entry repository error: %w", err)
	}
	return created, nil
}

// List returns entries newest first, capped at limit when positive.
func (r *BunEntryRepository) List(ctx context.Context, limit int) ([]*translate.Result, error) {
	criteria := []repository.SelectCriteria{
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.timestamp DESC")
		}),
	}
	if limit > 0 {
		criteria = append(criteria, repository.SelectPaginate(limit, 0))
	}

	records, _, err := r.repo.List(ctx, criteria...)
	if err != nil {
		return nil, fmt.Errorf("translation entry repository error: %w", err)
	}
	return records, nil
}

// Prune deletes every entry older than the keep newest ones.
func (r *BunEntryRepository) Prune(ctx context.Context, keep int) (int, error) {
	if keep <= 0 {
		return 0, nil
	}
	if r.db == nil {
		return 0, fmt.Errorf("translation entry repository: database not configured")
	}

	var removed int64
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var ids []uuid.UUID
		if err := tx.NewSelect().
			Model((*translate.Result)(nil)).
			Column("id").
			OrderExpr("?TableAlias.timestamp DESC").
			Scan(ctx, &ids); err != nil {
			return fmt.Errorf("list translation entry ids: %w", err)
		}

		if len(ids) <= keep {
			return nil
		}

		res, err := tx.NewDelete().
			Model((*translate.Result)(nil)).
			Where("?TableAlias.id IN (?)", bun.In(ids[keep:])).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("delete translation entries: %w", err)
		}
		affected, _ := res.RowsAffected()
		removed = affected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return int(removed), nil
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
