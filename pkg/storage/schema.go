package storage

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-lingo/catalog"
	"github.com/goliatone/go-lingo/conversation"
	"github.com/goliatone/go-lingo/status"
	"github.com/goliatone/go-lingo/translate"
)

// Models lists every bun model the backend persists, in creation order.
func Models() []any {
	return []any{
		(*catalog.Language)(nil),
		(*translate.Result)(nil),
		(*conversation.Conversation)(nil),
		(*conversation.Message)(nil),
		(*status.Check)(nil),
	}
}

type indexSpec struct {
	model  any
	name   string
	column string
	unique bool
}

// Bootstrap creates the backend tables and their indexes when missing.
// Existing tables are left alone, so it is safe to run on every start.
func Bootstrap(ctx context.Context, db *bun.DB) error {
	if db == nil {
		return fmt.Errorf("storage: bootstrap requires a database")
	}

	for _, model := range Models() {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("storage: create table for %T: %w", model, err)
		}
	}

	indexes := []indexSpec{
		{model: (*catalog.Language)(nil), name: "idx_languages_code", column: "code", unique: true},
		{model: (*translate.Result)(nil), name: "idx_translation_entries_timestamp", column: "timestamp"},
		{model: (*conversation.Message)(nil), name: "idx_conversation_messages_conversation", column: "conversation_id"},
		{model: (*status.Check)(nil), name: "idx_status_checks_client_name", column: "client_name", unique: true},
	}
	for _, spec := range indexes {
		query := db.NewCreateIndex().Model(spec.model).Index(spec.name).Column(spec.column).IfNotExists()
		if spec.unique {
			query = query.Unique()
		}
		if _, err := query.Exec(ctx); err != nil {
			return fmt.Errorf("storage: create index %s: %w", spec.name, err)
		}
	}

	return nil
}
