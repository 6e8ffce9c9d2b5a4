package status_test

import (
	"context"
	"errors"
	"testing"
	"time"

	status "github.com/goliatone/go-lingo/internal/status"
	lingostatus "github.com/goliatone/go-lingo/status"
)

func TestMemoryCheckRepositoryUpsertCollapsesClientVariants(t *testing.T) {
	repo := status.NewMemoryCheckRepository()
	ctx := context.Background()

	first, err := repo.Upsert(ctx, &lingostatus.Check{ClientName: "Desktop App"})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if first.Timestamp.IsZero() {
		t.Fatal("expected timestamp to be stamped")
	}

	second, err := repo.Upsert(ctx, &lingostatus.Check{
		ClientName: "desktop app",
		Timestamp:  first.Timestamp.Add(time.Minute),
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected casing variants to share an id, got %s and %s", first.ID, second.ID)
	}

	checks, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(checks) != 1 {
		t.Fatalf("expected a single record, got %d", len(checks))
	}
	if !checks[0].Timestamp.Equal(second.Timestamp) {
		t.Fatalf("expected repeat post to refresh the timestamp, got %s", checks[0].Timestamp)
	}
}

func TestMemoryCheckRepositoryListNewestFirst(t *testing.T) {
	repo := status.NewMemoryCheckRepository()
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	for i, name := range []string{"alpha", "beta", "gamma"} {
		check := &lingostatus.Check{ClientName: name, Timestamp: base.Add(time.Duration(i) * time.Hour)}
		if _, err := repo.Upsert(ctx, check); err != nil {
			t.Fatalf("seed %s: %v", name, err)
		}
	}

	checks, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(checks) != 3 {
		t.Fatalf("expected 3 checks, got %d", len(checks))
	}
	for i, want := range []string{"gamma", "beta", "alpha"} {
		if checks[i].ClientName != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, checks[i].ClientName)
		}
	}
}

func TestMemoryCheckRepositoryRejectsBlankClient(t *testing.T) {
	repo := status.NewMemoryCheckRepository()

	_, err := repo.Upsert(context.Background(), &lingostatus.Check{ClientName: "   "})
	if !errors.Is(err, status.ErrClientNameRequired) {
		t.Fatalf("expected ErrClientNameRequired, got %v", err)
	}
}

func TestNormalizeClientName(t *testing.T) {
	normalized, err := status.NormalizeClientName("  Mobile App v2 ")
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if normalized != "mobile-app-v2" {
		t.Fatalf("expected mobile-app-v2, got %q", normalized)
	}
	if status.CheckID(normalized) != status.CheckID("mobile-app-v2") {
		t.Fatal("expected deterministic check ids")
	}
}
