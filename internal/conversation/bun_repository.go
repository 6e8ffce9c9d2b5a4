package conversation

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunConversationRepository persists conversations through go-repository-bun.
type BunConversationRepository struct {
	repo repository.Repository[*Conversation]
}

func NewBunConversationRepository(db *bun.DB) *BunConversationRepository {
	return NewBunConversationRepositoryWithCache(db, nil, nil)
}

// NewBunConversationRepositoryWithCache constructs a ConversationRepository with optional caching.
func NewBunConversationRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunConversationRepository {
	base := NewConversationModelRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunConversationRepository{repo: wrapped}
}

func (r *BunConversationRepository) Create(ctx context.Context, conv *Conversation) (*Conversation, error) {
	if conv == nil {
		return nil, ErrConversationRequired
	}

	copied := *conv
	if copied.ID == uuid.Nil {
		copied.ID = uuid.New()
	}

	created, err := r.repo.Create(ctx, &copied)
	if err != nil {
		return nil, fmt.Errorf("conversation repository error: %w", err)
	}
	return created, nil
}

func (r *BunConversationRepository) GetByID(ctx context.Context, id uuid.UUID) (*Conversation, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "conversation", id.String())
	}
	return record, nil
}

// BunMessageRepository persists conversation messages through go-repository-bun.
type BunMessageRepository struct {
	repo repository.Repository[*Message]
}

func NewBunMessageRepository(db *bun.DB) *BunMessageRepository {
	return NewBunMessageRepositoryWithCache(db, nil, nil)
}

// NewBunMessageRepositoryWithCache constructs a MessageRepository with optional caching.
func NewBunMessageRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunMessageRepository {
	base := NewMessageModelRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunMessageRepository{repo: wrapped}
}

func (r *BunMessageRepository) Append(ctx context.Context, message *Message) (*Message, error) {
	if message == nil {
		return nil, ErrMessageRequired
	}
	if message.ConversationID == uuid.Nil {
		return nil, ErrNoConversation
	}

	copied := *message
	if copied.ID == uuid.Nil {
		copied.ID = uuid.New()
	}

	created, err := r.repo.Create(ctx, &copied)
	if err != nil {
		return nil, fmt.Errorf("conversation message repository error: %w", err)
	}
	return created, nil
}

// ListByConversation returns the conversation's messages oldest first.
func (r *BunMessageRepository) ListByConversation(ctx context.Context, conversationID uuid.UUID) ([]*Message, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.conversation_id = ?", conversationID).
				OrderExpr("?TableAlias.timestamp ASC")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("conversation message repository error: %w", err)
	}
	return records, nil
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
