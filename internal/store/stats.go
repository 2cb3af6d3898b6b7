package store

import (
	"context"
	"os"
)

// Stats holds database statistics.
type Stats struct {
	DBPath         string         `json:"db_path"`
	DBSizeBytes    int64          `json:"db_size_bytes"`
	TotalMemories  int            `json:"total_memories"`
	ActiveMemories int            `json:"active_memories"`
	ByType         map[string]int `json:"by_type"`
	BySource       map[string]int `json:"by_source"`
}

// Stats returns database statistics.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{
		DBPath:   dbPath,
		ByType:   map[string]int{},
		BySource: map[string]int{},
	}

	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM memories`).Scan(&st.TotalMemories)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM memories WHERE is_active = 1`).Scan(&st.ActiveMemories)

	rows, err := s.db.QueryContext(ctx,
		`SELECT type, COUNT(*) FROM memories WHERE is_active = 1 GROUP BY type`)
	if err != nil {
		return st, err
	}
	defer rows.Close()
	for rows.Next() {
		var t string
		var n int
		rows.Scan(&t, &n)
		st.ByType[t] = n
	}

	srcRows, err := s.db.QueryContext(ctx,
		`SELECT source, COUNT(*) FROM memories GROUP BY source`)
	if err != nil {
		return st, err
	}
	defer srcRows.Close()
	for srcRows.Next() {
		var src string
		var n int
		srcRows.Scan(&src, &n)
		st.BySource[src] = n
	}

	return st, nil
}
