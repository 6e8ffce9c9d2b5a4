package history

import (
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-lingo/translate"
)

// NewEntryModelRepository builds the go-repository-bun repository for
// translation entries.
func NewEntryModelRepository(db *bun.DB) repository.Repository[*translate.Result] {
	handlers := repository.ModelHandlers[*translate.Result]{
		NewRecord: func() *translate.Result {
			return &translate.Result{}
		},
		GetID: func(record *translate.Result) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return record.ID
		},
		SetID: func(record *translate.Result, id uuid.UUID) {
			if record != nil {
				record.ID = id
			}
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(record *translate.Result) string {
			if record == nil {
				return ""
			}
			return record.ID.String()
		},
	}
	return repository.MustNewRepository(db, handlers)
}
