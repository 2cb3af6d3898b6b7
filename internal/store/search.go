package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/pocketjournal/journal-memory/internal/model"
)

// SearchParams holds parameters for searching memories.
type SearchParams struct {
	Query           string
	Types           []model.MemoryType
	IncludeInactive bool
	Limit           int
}

// Search finds memories whose content or category match the query substring.
// This backs the management UI's search box, not the retrieval policy.
func (s *SQLiteStore) Search(ctx context.Context, p SearchParams) ([]model.Memory, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}

	pattern := "%" + p.Query + "%"
	where := []string{"(content LIKE ? OR category LIKE ?)"}
	args := []interface{}{pattern, pattern}

	if !p.IncludeInactive {
		where = append(where, "is_active = 1")
	}
	if len(p.Types) > 0 {
		placeholders := make([]string, len(p.Types))
		for i, t := range p.Types {
			placeholders[i] = "?"
			args = append(args, string(t))
		}
		where = append(where, "type IN ("+strings.Join(placeholders, ", ")+")")
	}

	query := selectColumns + ` FROM memories WHERE ` +
		strings.Join(where, " AND ") + ` ORDER BY updated_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search memories: %w", err)
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
