package status

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-slug"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-lingo/internal/identity"
)

var ErrClientNameRequired = errors.New("status: client name is required")

// CheckRepository persists liveness checks. Upsert keys rows by the
// normalized client name, so repeated posts refresh the timestamp instead
// of inserting duplicates.
type CheckRepository interface {
	Upsert(ctx context.Context, check *Check) (*Check, error)
	List(ctx context.Context) ([]*Check, error)
}

// NormalizeClientName slugifies the client name so that casing and spacing
// variants of the same client collapse onto one record.
func NormalizeClientName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ErrClientNameRequired
	}
	normalized, err := slug.Normalize(trimmed)
	if err != nil || normalized == "" {
		return "", ErrClientNameRequired
	}
	return normalized, nil
}

// CheckID derives the deterministic record id for a normalized client name.
func CheckID(normalized string) uuid.UUID {
	return identity.ClientUUID(normalized)
}

// NewCheckModelRepository builds the go-repository-bun repository for
// status checks.
func NewCheckModelRepository(db *bun.DB) repository.Repository[*Check] {
	handlers := repository.ModelHandlers[*Check]{
		NewRecord: func() *Check {
			return &Check{}
		},
		GetID: func(record *Check) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return record.ID
		},
		SetID: func(record *Check, id uuid.UUID) {
			if record != nil {
				record.ID = id
			}
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(record *Check) string {
			if record == nil {
				return ""
			}
			return record.ID.String()
		},
	}
	return repository.MustNewRepository(db, handlers)
}
