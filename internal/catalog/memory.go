package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryLanguageRepository is an in-memory implementation for embedding and tests.
type MemoryLanguageRepository struct {
	mu        sync.RWMutex
	languages map[uuid.UUID]*Language
	codeIndex map[string]uuid.UUID
}

// NewMemoryLanguageRepository creates an empty in-memory language repository.
func NewMemoryLanguageRepository() *MemoryLanguageRepository {
	return &MemoryLanguageRepository{
		languages: make(map[uuid.UUID]*Language),
		codeIndex: make(map[string]uuid.UUID),
	}
}

// Upsert inserts or replaces a language keyed by its code.
func (m *MemoryLanguageRepository) Upsert(_ context.Context, language *Language) (*Language, error) {
	code := strings.ToLower(strings.TrimSpace(language.Code))
	if code == "" {
		return nil, ErrLanguageCodeRequired
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *language
	copied.Code = code

	if existingID, ok := m.codeIndex[code]; ok {
		copied.ID = existingID
		m.languages[existingID] = &copied
	} else {
		if copied.ID == uuid.Nil {
			copied.ID = uuid.New()
		}
		m.languages[copied.ID] = &copied
		m.codeIndex[code] = copied.ID
	}

	out := copied
	return &out, nil
}

// GetByCode retrieves a language by its code, returning NotFoundError when absent.
func (m *MemoryLanguageRepository) GetByCode(_ context.Context, code string) (*Language, error) {
	normalized := strings.ToLower(strings.TrimSpace(code))

	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.codeIndex[normalized]
	if !ok {
		return nil, &NotFoundError{Resource: "language", Key: code}
	}
	copied := *m.languages[id]
	return &copied, nil
}

// List returns all languages ordered by code.
func (m *MemoryLanguageRepository) List(_ context.Context) ([]*Language, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Language, 0, len(m.languages))
	for _, language := range m.languages {
		copied := *language
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}
