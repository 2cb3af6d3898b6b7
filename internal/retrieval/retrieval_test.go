package retrieval

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pocketjournal/journal-memory/internal/model"
	"github.com/pocketjournal/journal-memory/internal/store"
)

func newTestRetriever(t *testing.T) (*Retriever, *store.SQLiteStore) {
	t.Helper()
	s, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return New(s), s
}

func TestRetrieveRelevantEmptyStore(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRetriever(t)

	got, err := r.RetrieveRelevant(ctx, "anything", nil, 0)
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty result, got %d", len(got))
	}
}

func TestConfidenceThresholdIsStrict(t *testing.T) {
	ctx := context.Background()
	r, s := newTestRetriever(t)

	at, _ := s.InsertInferred(ctx, store.InferredParams{
		Type: model.TypeFact, Content: "exactly at threshold", Confidence: 0.7,
	})
	above, _ := s.InsertInferred(ctx, store.InferredParams{
		Type: model.TypeFact, Content: "just above threshold", Confidence: 0.71,
	})

	got, err := r.RetrieveRelevant(ctx, "", nil, 0)
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected exactly 1 result, got %d", len(got))
	}
	if got[0].ID != above.ID {
		t.Errorf("expected %q included, got %q", above.Content, got[0].Content)
	}
	for _, m := range got {
		if m.ID == at.ID {
			t.Error("confidence 0.7 must be excluded")
		}
	}
}

func TestLowConfidenceYieldsEmptyResult(t *testing.T) {
	ctx := context.Background()
	r, s := newTestRetriever(t)

	s.InsertInferred(ctx, store.InferredParams{
		Type: model.TypeFact, Content: "weak inference", Confidence: 0.5,
	})

	got, err := r.RetrieveRelevant(ctx, "", nil, 0)
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	// No fallback to lower-confidence memories
	if len(got) != 0 {
		t.Errorf("expected empty result below threshold, got %d", len(got))
	}
}

func TestInactiveExcluded(t *testing.T) {
	ctx := context.Background()
	r, s := newTestRetriever(t)

	mem, _ := s.InsertExplicit(ctx, store.ExplicitParams{Type: model.TypeFact, Content: "soft-deleted"})
	inactive := false
	s.Update(ctx, mem.ID, store.UpdateParams{IsActive: &inactive})

	got, _ := r.RetrieveRelevant(ctx, "", nil, 0)
	if len(got) != 0 {
		t.Errorf("inactive memory must never reach retrieval, got %d", len(got))
	}

	active, _ := r.GetAll(ctx, nil, false)
	if len(active) != 0 {
		t.Errorf("GetAll must hide inactive by default, got %d", len(active))
	}

	all, _ := r.GetAll(ctx, nil, true)
	if len(all) != 1 || all[0].IsActive {
		t.Errorf("GetAll with includeInactive must show the record with is_active false, got %+v", all)
	}
}

func TestTypeFilterBeatsConfidenceAndRecency(t *testing.T) {
	ctx := context.Background()
	r, s := newTestRetriever(t)

	fact, _ := s.InsertInferred(ctx, store.InferredParams{
		Type: model.TypeFact, Content: "modest fact", Confidence: 0.75,
	})
	// Higher confidence and more recent, but the wrong type
	s.InsertExplicit(ctx, store.ExplicitParams{
		Type: model.TypePreference, Content: "strong preference",
	})

	got, err := r.RetrieveRelevant(ctx, "", []model.MemoryType{model.TypeFact}, 0)
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if len(got) != 1 || got[0].ID != fact.ID {
		t.Errorf("expected only the fact, got %+v", got)
	}
}

func TestRecencyOrderAndLimit(t *testing.T) {
	ctx := context.Background()
	r, s := newTestRetriever(t)

	s.InsertExplicit(ctx, store.ExplicitParams{Type: model.TypeFact, Content: "first"})
	s.InsertExplicit(ctx, store.ExplicitParams{Type: model.TypeFact, Content: "second"})
	s.InsertExplicit(ctx, store.ExplicitParams{Type: model.TypeFact, Content: "third"})

	got, _ := r.RetrieveRelevant(ctx, "", nil, 2)
	if len(got) != 2 {
		t.Fatalf("expected limit 2, got %d", len(got))
	}
	if got[0].Content != "third" || got[1].Content != "second" {
		t.Errorf("expected most recent first, got %q then %q", got[0].Content, got[1].Content)
	}
}

func TestQueryTextDoesNotAffectSelection(t *testing.T) {
	ctx := context.Background()
	r, s := newTestRetriever(t)

	s.InsertExplicit(ctx, store.ExplicitParams{Type: model.TypeFact, Content: "Lives in Seattle"})
	s.InsertExplicit(ctx, store.ExplicitParams{Type: model.TypePreference, Content: "Loves hiking"})

	matching, _ := r.RetrieveRelevant(ctx, "Seattle", nil, 0)
	unrelated, _ := r.RetrieveRelevant(ctx, "completely unrelated text", nil, 0)
	if len(matching) != len(unrelated) {
		t.Errorf("query text must not change selection: %d vs %d", len(matching), len(unrelated))
	}
}
