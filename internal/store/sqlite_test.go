package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/pocketjournal/journal-memory/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dir := t.TempDir()
	s, err := NewSQLiteStore(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestInsertExplicit(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	mem, err := s.InsertExplicit(ctx, ExplicitParams{
		Type: model.TypeFact, Content: "Lives in Seattle", Category: "location",
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if mem.ID == "" {
		t.Error("expected non-empty ID")
	}
	if mem.Confidence != 1.0 {
		t.Errorf("explicit memory must have confidence 1.0, got %v", mem.Confidence)
	}
	if mem.Source != model.SourceExplicit {
		t.Errorf("expected source explicit, got %q", mem.Source)
	}
	if !mem.IsActive {
		t.Error("new memory must be active")
	}
	if mem.AccessCount != 0 || mem.LastAccessedAt != nil {
		t.Error("new memory must have zero access stats")
	}
	if mem.UpdatedAt.Before(mem.CreatedAt) {
		t.Error("updated_at must not precede created_at")
	}

	got, err := s.Get(ctx, mem.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Content != "Lives in Seattle" || got.Category != "location" {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestInsertInferred(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	mem, err := s.InsertInferred(ctx, InferredParams{
		Type:            model.TypePreference,
		Content:         "Prefers morning journaling",
		Confidence:      0.8,
		SourceSessionID: "sess-1",
		SourceMessageID: "msg-9",
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if mem.Confidence != 0.8 {
		t.Errorf("expected confidence 0.8, got %v", mem.Confidence)
	}
	if mem.Source != model.SourceInferred {
		t.Errorf("expected source inferred, got %q", mem.Source)
	}

	got, _ := s.Get(ctx, mem.ID)
	if got.SourceSessionID != "sess-1" || got.SourceMessageID != "msg-9" {
		t.Errorf("back-references not persisted: %+v", got)
	}
}

func TestInsertInferredClampsConfidence(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	high, err := s.InsertInferred(ctx, InferredParams{
		Type: model.TypeFact, Content: "x", Confidence: 1.7,
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if high.Confidence != 1.0 {
		t.Errorf("expected clamp to 1.0, got %v", high.Confidence)
	}

	low, _ := s.InsertInferred(ctx, InferredParams{
		Type: model.TypeFact, Content: "y", Confidence: -0.3,
	})
	if low.Confidence != 0.0 {
		t.Errorf("expected clamp to 0.0, got %v", low.Confidence)
	}
}

func TestInsertRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if _, err := s.InsertExplicit(ctx, ExplicitParams{Type: "opinion", Content: "x"}); err == nil {
		t.Error("expected error for invalid type")
	}
	if _, err := s.InsertExplicit(ctx, ExplicitParams{Type: model.TypeFact, Content: "  "}); err == nil {
		t.Error("expected error for blank content")
	}
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	mem, _ := s.InsertExplicit(ctx, ExplicitParams{Type: model.TypeGoal, Content: "Run a 10k"})

	content := "Run a half marathon"
	updated, err := s.Update(ctx, mem.ID, UpdateParams{Content: &content})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Content != content {
		t.Errorf("expected updated content, got %q", updated.Content)
	}
	if updated.UpdatedAt.Before(mem.UpdatedAt) {
		t.Error("update must refresh updated_at")
	}
	if updated.CreatedAt != mem.CreatedAt {
		t.Error("update must not change created_at")
	}
}

func TestUpdateSoftDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	mem, _ := s.InsertExplicit(ctx, ExplicitParams{Type: model.TypeGoal, Content: "Learn piano"})

	inactive := false
	updated, err := s.Update(ctx, mem.ID, UpdateParams{IsActive: &inactive})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.IsActive {
		t.Error("expected inactive memory")
	}

	// Record survives in storage for audit/undo
	got, err := s.Get(ctx, mem.ID)
	if err != nil {
		t.Fatalf("get after soft delete: %v", err)
	}
	if got.IsActive {
		t.Error("expected is_active false after soft delete")
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	mem, _ := s.InsertExplicit(ctx, ExplicitParams{Type: model.TypeFact, Content: "temp"})
	if err := s.Delete(ctx, mem.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	_, err := s.Get(ctx, mem.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after hard delete, got %v", err)
	}
}

func TestNotFound(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if _, err := s.Get(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("get: expected ErrNotFound, got %v", err)
	}
	if err := s.Delete(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("delete: expected ErrNotFound, got %v", err)
	}
	if err := s.Touch(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("touch: expected ErrNotFound, got %v", err)
	}
	content := "x"
	if _, err := s.Update(ctx, "nope", UpdateParams{Content: &content}); !errors.Is(err, ErrNotFound) {
		t.Errorf("update: expected ErrNotFound, got %v", err)
	}
}

func TestQueryFilters(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.InsertExplicit(ctx, ExplicitParams{Type: model.TypeFact, Content: "fact one"})
	s.InsertInferred(ctx, InferredParams{Type: model.TypeMood, Content: "felt anxious", Confidence: 0.5})
	goal, _ := s.InsertExplicit(ctx, ExplicitParams{Type: model.TypeGoal, Content: "read more"})

	inactive := false
	s.Update(ctx, goal.ID, UpdateParams{IsActive: &inactive})

	all, err := s.Query(ctx, QueryParams{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3, got %d", len(all))
	}

	active, _ := s.Query(ctx, QueryParams{ActiveOnly: true})
	if len(active) != 2 {
		t.Errorf("expected 2 active, got %d", len(active))
	}

	threshold := 0.6
	confident, _ := s.Query(ctx, QueryParams{MinConfidence: &threshold})
	if len(confident) != 2 {
		t.Errorf("expected 2 above 0.6, got %d", len(confident))
	}

	moods, _ := s.Query(ctx, QueryParams{Types: []model.MemoryType{model.TypeMood}})
	if len(moods) != 1 || moods[0].Type != model.TypeMood {
		t.Errorf("type filter failed: %+v", moods)
	}

	limited, _ := s.Query(ctx, QueryParams{Limit: 1})
	if len(limited) != 1 {
		t.Errorf("expected 1 with limit, got %d", len(limited))
	}
}

func TestQueryRecencyOrder(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	first, _ := s.InsertExplicit(ctx, ExplicitParams{Type: model.TypeFact, Content: "older"})
	s.InsertExplicit(ctx, ExplicitParams{Type: model.TypeFact, Content: "newer"})

	got, _ := s.Query(ctx, QueryParams{})
	if len(got) != 2 {
		t.Fatalf("expected 2, got %d", len(got))
	}
	if got[0].Content != "newer" {
		t.Errorf("expected most recently updated first, got %q", got[0].Content)
	}

	// Editing the older record moves it to the front
	content := "older, edited"
	s.Update(ctx, first.ID, UpdateParams{Content: &content})
	got, _ = s.Query(ctx, QueryParams{})
	if got[0].ID != first.ID {
		t.Errorf("expected edited memory first, got %q", got[0].Content)
	}
}

func TestTouch(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	mem, _ := s.InsertExplicit(ctx, ExplicitParams{Type: model.TypeFact, Content: "touched"})

	for i := 1; i <= 3; i++ {
		if err := s.Touch(ctx, mem.ID); err != nil {
			t.Fatalf("touch %d: %v", i, err)
		}
		got, _ := s.Get(ctx, mem.ID)
		if got.AccessCount != i {
			t.Errorf("after %d touches expected access_count %d, got %d", i, i, got.AccessCount)
		}
		if got.LastAccessedAt == nil {
			t.Fatal("expected last_accessed_at after touch")
		}
	}

	first, _ := s.Get(ctx, mem.ID)
	s.Touch(ctx, mem.ID)
	last, _ := s.Get(ctx, mem.ID)
	if last.LastAccessedAt.Before(*first.LastAccessedAt) {
		t.Error("last_accessed_at must track the most recent touch")
	}
	// Access tracking is not an edit
	if !last.UpdatedAt.Equal(first.UpdatedAt) {
		t.Error("touch must not refresh updated_at")
	}
}
