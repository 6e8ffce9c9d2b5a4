package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-lingo/translate"
)

type fakeSource struct {
	entries   []*translate.Result
	err       error
	calls     int
	lastLimit int
}

func (f *fakeSource) TranslationHistory(ctx context.Context, limit int) ([]*translate.Result, error) {
	f.calls++
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.entries, nil
}

func newEntry(original, translated string, ts time.Time) *translate.Result {
	return &translate.Result{
		ID:             uuid.New(),
		OriginalText:   original,
		TranslatedText: translated,
		SourceLanguage: "en",
		TargetLanguage: "es",
		Timestamp:      ts,
	}
}

func entrySeries(count int) []*translate.Result {
	base := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)
	entries := make([]*translate.Result, 0, count)
	for i := 0; i < count; i++ {
		ts := base.Add(-time.Duration(i) * time.Minute)
		entries = append(entries, newEntry("hello", "hola", ts))
	}
	return entries
}

func TestRefreshTruncatesToRecentLimit(t *testing.T) {
	source := &fakeSource{entries: entrySeries(8)}
	svc := NewService(source)

	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}

	recent := svc.Recent()
	if len(recent) != DefaultRecentLimit {
		t.Fatalf("expected %d cached entries, got %d", DefaultRecentLimit, len(recent))
	}
	for i, entry := range recent {
		if entry.ID != source.entries[i].ID {
			t.Fatalf("entry %d: expected id %s, got %s", i, source.entries[i].ID, entry.ID)
		}
	}
	if source.lastLimit != DefaultFetchLimit {
		t.Fatalf("expected fetch limit %d, got %d", DefaultFetchLimit, source.lastLimit)
	}
}

func TestRefreshPreservesSourceOrder(t *testing.T) {
	// The backend owns the ordering; a mixed timestamp sequence must come
	// back exactly as sent.
	base := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)
	entries := []*translate.Result{
		newEntry("third", "tercero", base.Add(-2*time.Minute)),
		newEntry("first", "primero", base),
		newEntry("second", "segundo", base.Add(-time.Minute)),
	}
	svc := NewService(&fakeSource{entries: entries})

	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}

	recent := svc.Recent()
	if len(recent) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(recent))
	}
	for i, want := range []string{"third", "first", "second"} {
		if recent[i].OriginalText != want {
			t.Fatalf("entry %d: expected %q, got %q", i, want, recent[i].OriginalText)
		}
	}
}

func TestRefreshKeepsCacheWhenSourceFails(t *testing.T) {
	source := &fakeSource{entries: entrySeries(2)}
	svc := NewService(source)

	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}

	source.err = errors.New("boom")
	if err := svc.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh error")
	}

	if got := len(svc.Recent()); got != 2 {
		t.Fatalf("expected stale cache of 2 entries, got %d", got)
	}
}

func TestRefreshWithoutSource(t *testing.T) {
	svc := NewService(nil)
	if err := svc.Refresh(context.Background()); !errors.Is(err, ErrSourceRequired) {
		t.Fatalf("expected ErrSourceRequired, got %v", err)
	}
}

func TestRecentReturnsDefensiveCopies(t *testing.T) {
	source := &fakeSource{entries: entrySeries(2)}
	svc := NewService(source)
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}

	first := svc.Recent()
	first[0].OriginalText = "tampered"
	first[1] = nil

	second := svc.Recent()
	if second[0].OriginalText != "hello" {
		t.Fatalf("cache mutated through returned slice: %q", second[0].OriginalText)
	}
	if second[1] == nil {
		t.Fatal("cache slice shared with caller")
	}
}

func TestWithRecentLimitOverridesCap(t *testing.T) {
	source := &fakeSource{entries: entrySeries(8)}
	svc := NewService(source, WithRecentLimit(2))

	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if got := len(svc.Recent()); got != 2 {
		t.Fatalf("expected 2 cached entries, got %d", got)
	}
}

func TestHistoryBypassesRecentsCache(t *testing.T) {
	source := &fakeSource{entries: entrySeries(3)}
	svc := NewService(source)

	entries, err := svc.History(context.Background(), 3)
	if err != nil {
		t.Fatalf("History returned error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if source.lastLimit != 3 {
		t.Fatalf("expected source limit 3, got %d", source.lastLimit)
	}
	if got := len(svc.Recent()); got != 0 {
		t.Fatalf("History must not warm the recents cache, found %d entries", got)
	}
}

func TestHistoryDefaultsNonPositiveLimit(t *testing.T) {
	source := &fakeSource{entries: entrySeries(1)}
	svc := NewService(source)

	if _, err := svc.History(context.Background(), 0); err != nil {
		t.Fatalf("History returned error: %v", err)
	}
	if source.lastLimit != DefaultFetchLimit {
		t.Fatalf("expected default limit %d, got %d", DefaultFetchLimit, source.lastLimit)
	}
}
