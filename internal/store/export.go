package store

import (
	"context"
	"fmt"

	"github.com/pocketjournal/journal-memory/internal/model"
)

// ExportAll returns every record, including inactive ones, ordered by
// creation time for a stable export.
func (s *SQLiteStore) ExportAll(ctx context.Context) ([]model.Memory, error) {
	rows, err := s.db.QueryContext(ctx,
		selectColumns+` FROM memories ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("export memories: %w", err)
	}
	defer rows.Close()

	var memories []model.Memory
	for rows.Next() {
		m, err := scanMemory(rows)
		if err != nil {
			return nil, err
		}
		memories = append(memories, m)
	}
	return memories, rows.Err()
}

// Import stores memories from an export through the regular insertion
// contract, so confidence rules per source still apply. Fresh ids and
// timestamps are assigned; the inactive flag is carried over.
func (s *SQLiteStore) Import(ctx context.Context, memories []model.Memory) (int, error) {
	imported := 0
	for _, m := range memories {
		var inserted *model.Memory
		var err error
		if m.Source == model.SourceInferred {
			inserted, err = s.InsertInferred(ctx, InferredParams{
				Type:            m.Type,
				Content:         m.Content,
				Confidence:      m.Confidence,
				Category:        m.Category,
				SourceSessionID: m.SourceSessionID,
				SourceMessageID: m.SourceMessageID,
			})
		} else {
			inserted, err = s.insert(ctx, model.Memory{
				Type:       m.Type,
				Content:    m.Content,
				Source:     m.Source,
				Confidence: 1.0,
				Category:   m.Category,
			})
		}
		if err != nil {
			return imported, err
		}
		if !m.IsActive {
			inactive := false
			if _, err := s.Update(ctx, inserted.ID, UpdateParams{IsActive: &inactive}); err != nil {
				return imported, err
			}
		}
		imported++
	}
	return imported, nil
}
