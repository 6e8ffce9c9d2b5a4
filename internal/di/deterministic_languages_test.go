package di

import (
	"context"
	"testing"

	"github.com/goliatone/go-lingo/internal/identity"
	"github.com/goliatone/go-lingo/internal/runtimeconfig"
)

func TestSeedLanguagesDeterministicIDs(t *testing.T) {
	ctx := context.Background()

	cfg := runtimeconfig.DefaultConfig()

	c1, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("create container 1: %v", err)
	}
	en1, err := c1.languageRepo.GetByCode(ctx, "en")
	if err != nil {
		t.Fatalf("get language en from container 1: %v", err)
	}
	es1, err := c1.languageRepo.GetByCode(ctx, "es")
	if err != nil {
		t.Fatalf("get language es from container 1: %v", err)
	}

	c2, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("create container 2: %v", err)
	}
	en2, err := c2.languageRepo.GetByCode(ctx, "en")
	if err != nil {
		t.Fatalf("get language en from container 2: %v", err)
	}
	es2, err := c2.languageRepo.GetByCode(ctx, "es")
	if err != nil {
		t.Fatalf("get language es from container 2: %v", err)
	}

	expectedEN := identity.LanguageUUID("en")
	if en1.ID != expectedEN || en2.ID != expectedEN {
		t.Fatalf("unexpected en language ids: got %s and %s want %s", en1.ID, en2.ID, expectedEN)
	}

	expectedES := identity.LanguageUUID("es")
	if es1.ID != expectedES || es2.ID != expectedES {
		t.Fatalf("unexpected es language ids: got %s and %s want %s", es1.ID, es2.ID, expectedES)
	}
}
