package catalogcmd

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-lingo/catalog"
	"github.com/goliatone/go-lingo/internal/commands"
	"github.com/goliatone/go-lingo/internal/logging"
)

type stubCatalogService struct {
	refreshes int
	err       error
	languages []*catalog.Language
}

func (s *stubCatalogService) Load(context.Context) ([]*catalog.Language, error) {
	return nil, errors.New("not implemented")
}

func (s *stubCatalogService) Refresh(context.Context) ([]*catalog.Language, error) {
	s.refreshes++
	if s.err != nil {
		return nil, s.err
	}
	return s.languages, nil
}

func (s *stubCatalogService) Languages() []*catalog.Language { return s.languages }

func (s *stubCatalogService) Loaded() bool { return len(s.languages) > 0 }

func (s *stubCatalogService) Lookup(string) (*catalog.Language, bool) { return nil, false }

func (s *stubCatalogService) ResolveName(code string) string { return code }

func TestRefreshLanguagesHandlerExecutesService(t *testing.T) {
	service := &stubCatalogService{languages: []*catalog.Language{{Code: "en", Name: "English"}}}
	logger := commands.CommandLogger(nil, "catalog")
	handler := NewRefreshLanguagesHandler(service, logger)

	if err := handler.Execute(context.Background(), RefreshLanguagesCommand{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if service.refreshes != 1 {
		t.Fatalf("expected one refresh, got %d", service.refreshes)
	}
}

func TestRefreshLanguagesHandlerWrapsServiceFailure(t *testing.T) {
	service := &stubCatalogService{err: errors.New("backend offline")}
	handler := NewRefreshLanguagesHandler(service, logging.NoOp())

	err := handler.Execute(context.Background(), RefreshLanguagesCommand{})
	if err == nil {
		t.Fatal("expected execution error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if service.refreshes != 1 {
		t.Fatalf("expected one refresh attempt, got %d", service.refreshes)
	}
}
