package store

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"
)

// Link records a weak reference from one memory to another by appending
// to the source memory's related id list. Links are association only:
// deleting the target never cascades, and a dangling id is harmless.
func (s *SQLiteStore) Link(ctx context.Context, fromID, toID string) error {
	if fromID == toID {
		return fmt.Errorf("cannot link a memory to itself")
	}

	from, err := s.Get(ctx, fromID)
	if err != nil {
		return fmt.Errorf("resolve from: %w", err)
	}
	if _, err := s.Get(ctx, toID); err != nil {
		return fmt.Errorf("resolve to: %w", err)
	}

	if slices.Contains(from.RelatedMemoryIDs, toID) {
		return nil
	}
	related := append(from.RelatedMemoryIDs, toID)

	b, _ := json.Marshal(related)
	_, err = s.db.ExecContext(ctx,
		`UPDATE memories SET related_memory_ids = ?, updated_at = ? WHERE id = ?`,
		string(b), time.Now().UTC().Format(timeFormat), fromID)
	if err != nil {
		return fmt.Errorf("link memory: %w", err)
	}
	return nil
}

// Unlink removes a previously recorded relation. Removing a relation that
// does not exist is a no-op.
func (s *SQLiteStore) Unlink(ctx context.Context, fromID, toID string) error {
	from, err := s.Get(ctx, fromID)
	if err != nil {
		return fmt.Errorf("resolve from: %w", err)
	}

	idx := slices.Index(from.RelatedMemoryIDs, toID)
	if idx < 0 {
		return nil
	}
	related := slices.Delete(from.RelatedMemoryIDs, idx, idx+1)

	var value interface{}
	if len(related) > 0 {
		b, _ := json.Marshal(related)
		value = string(b)
	}
	_, err = s.db.ExecContext(ctx,
		`UPDATE memories SET related_memory_ids = ?, updated_at = ? WHERE id = ?`,
		value, time.Now().UTC().Format(timeFormat), fromID)
	if err != nil {
		return fmt.Errorf("unlink memory: %w", err)
	}
	return nil
}
