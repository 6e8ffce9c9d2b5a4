package logging

import (
	"context"
	"testing"
)

func TestContextWithFieldsMergesNewValuesOverOld(t *testing.T) {
	ctx := ContextWithFields(context.Background(), map[string]any{
		"request_id": "r-1",
		"module":     "lingo.client",
	})
	ctx = ContextWithFields(ctx, map[string]any{
		"module": "lingo.translate",
		"stage":  "translating",
	})

	got := ContextFields(ctx)
	if len(got) != 3 {
		t.Fatalf("expected three merged fields, got %v", got)
	}
	if got["module"] != "lingo.translate" {
		t.Fatalf("expected the newer module value to win, got %v", got["module"])
	}
	if got["request_id"] != "r-1" || got["stage"] != "translating" {
		t.Fatalf("expected earlier and later fields to coexist, got %v", got)
	}
}

func TestContextFieldsReturnsACopy(t *testing.T) {
	ctx := ContextWithFields(context.Background(), map[string]any{"client": "cli"})

	first := ContextFields(ctx)
	first["client"] = "tampered"

	if got := ContextFields(ctx); got["client"] != "cli" {
		t.Fatalf("expected the stored fields untouched, got %v", got)
	}
}

func TestContextFieldsAbsentOrNil(t *testing.T) {
	if got := ContextFields(context.Background()); got != nil {
		t.Fatalf("expected nil for an unannotated context, got %v", got)
	}
	if got := ContextFields(nil); got != nil {
		t.Fatalf("expected nil for a nil context, got %v", got)
	}
	if ctx := ContextWithFields(context.Background(), nil); ContextFields(ctx) != nil {
		t.Fatal("expected empty fields to leave the context unannotated")
	}
}
