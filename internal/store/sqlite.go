package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/pocketjournal/journal-memory/internal/model"
)

// timeFormat keeps fixed-width nanoseconds so stored timestamps sort
// lexicographically the same way they sort chronologically.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db      *sql.DB
	log     *slog.Logger
	entropy *rand.Rand
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		log:     slog.Default(),
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// SetLogger replaces the logger used for clamp warnings and the like.
func (s *SQLiteStore) SetLogger(l *slog.Logger) {
	if l != nil {
		s.log = l
	}
}

func (s *SQLiteStore) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS memories (
		id                 TEXT PRIMARY KEY,
		type               TEXT NOT NULL,
		content            TEXT NOT NULL,
		source             TEXT NOT NULL,
		confidence         REAL NOT NULL,
		category           TEXT,
		created_at         TEXT NOT NULL,
		updated_at         TEXT NOT NULL,
		last_accessed_at   TEXT,
		access_count       INTEGER NOT NULL DEFAULT 0,
		is_active          INTEGER NOT NULL DEFAULT 1,
		source_session_id  TEXT,
		source_message_id  TEXT,
		related_memory_ids TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_memories_type ON memories(type);
	CREATE INDEX IF NOT EXISTS idx_memories_active ON memories(is_active);
	CREATE INDEX IF NOT EXISTS idx_memories_updated ON memories(updated_at DESC);
	CREATE INDEX IF NOT EXISTS idx_memories_confidence ON memories(confidence);

	CREATE TABLE IF NOT EXISTS profile (
		id                 INTEGER PRIMARY KEY CHECK (id = 1),
		openness           REAL,
		conscientiousness  REAL,
		extraversion       REAL,
		agreeableness      REAL,
		neuroticism        REAL,
		custom_traits      TEXT,
		summary            TEXT,
		summary_updated_at TEXT
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) InsertExplicit(ctx context.Context, p ExplicitParams) (*model.Memory, error) {
	return s.insert(ctx, model.Memory{
		Type:       p.Type,
		Content:    p.Content,
		Source:     model.SourceExplicit,
		Confidence: 1.0,
		Category:   p.Category,
	})
}

func (s *SQLiteStore) InsertInferred(ctx context.Context, p InferredParams) (*model.Memory, error) {
	confidence := p.Confidence
	if confidence < 0 || confidence > 1 {
		clamped := min(max(confidence, 0), 1)
		s.log.Warn("clamped out-of-range confidence",
			"supplied", confidence, "clamped", clamped, "type", p.Type)
		confidence = clamped
	}
	return s.insert(ctx, model.Memory{
		Type:            p.Type,
		Content:         p.Content,
		Source:          model.SourceInferred,
		Confidence:      confidence,
		Category:        p.Category,
		SourceSessionID: p.SourceSessionID,
		SourceMessageID: p.SourceMessageID,
	})
}

func (s *SQLiteStore) insert(ctx context.Context, m model.Memory) (*model.Memory, error) {
	if !model.ValidTypes[m.Type] {
		return nil, fmt.Errorf("invalid memory type %q", m.Type)
	}
	if strings.TrimSpace(m.Content) == "" {
		return nil, fmt.Errorf("content is required")
	}

	now := time.Now().UTC()
	m.ID = s.newID()
	m.CreatedAt = now
	m.UpdatedAt = now
	m.IsActive = true

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO memories (id, type, content, source, confidence, category,
		                       created_at, updated_at, access_count, is_active,
		                       source_session_id, source_message_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0, 1, ?, ?)`,
		m.ID, string(m.Type), m.Content, string(m.Source), m.Confidence,
		nullable(m.Category), now.Format(timeFormat), now.Format(timeFormat),
		nullable(m.SourceSessionID), nullable(m.SourceMessageID))
	if err != nil {
		return nil, fmt.Errorf("insert memory: %w", err)
	}

	return &m, nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*model.Memory, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` FROM memories WHERE id = ?`, id)
	m, err := scanMemory(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *SQLiteStore) Update(ctx context.Context, id string, p UpdateParams) (*model.Memory, error) {
	set := []string{"updated_at = ?"}
	args := []interface{}{time.Now().UTC().Format(timeFormat)}

	if p.Content != nil {
		if strings.TrimSpace(*p.Content) == "" {
			return nil, fmt.Errorf("content is required")
		}
		set = append(set, "content = ?")
		args = append(args, *p.Content)
	}
	if p.Category != nil {
		set = append(set, "category = ?")
		args = append(args, nullable(*p.Category))
	}
	if p.IsActive != nil {
		set = append(set, "is_active = ?")
		args = append(args, boolInt(*p.IsActive))
	}
	args = append(args, id)

	res, err := s.db.ExecContext(ctx,
		`UPDATE memories SET `+strings.Join(set, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("update memory: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	return s.Get(ctx, id)
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM memories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete memory: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func (s *SQLiteStore) Query(ctx context.Context, p QueryParams) ([]model.Memory, error) {
	where := []string{"1=1"}
	var args []interface{}

	if p.ActiveOnly {
		where = append(where, "is_active = 1")
	}
	if p.MinConfidence != nil {
		where = append(where, "confidence > ?")
		args = append(args, *p.MinConfidence)
	}
	if len(p.Types) > 0 {
		placeholders := make([]string, len(p.Types))
		for i, t := range p.Types {
			placeholders[i] = "?"
			args = append(args, string(t))
		}
		where = append(where, "type IN ("+strings.Join(placeholders, ", ")+")")
	}

	var order string
	switch p.Sort {
	case SortCreated:
		order = "created_at DESC, id DESC"
	case SortConfidence:
		order = "confidence DESC, updated_at DESC, id DESC"
	default:
		order = "updated_at DESC, id DESC"
	}

	query := selectColumns + ` FROM memories WHERE ` +
		strings.Join(where, " AND ") + ` ORDER BY ` + order
	if p.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, p.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query memories: %w", err)
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

// Touch records a retrieval-triggered access. It does not refresh
// updated_at: surfacing a memory is not an edit.
func (s *SQLiteStore) Touch(ctx context.Context, id string) error {
	now := time.Now().UTC().Format(timeFormat)
	res, err := s.db.ExecContext(ctx,
		`UPDATE memories SET access_count = access_count + 1, last_accessed_at = ? WHERE id = ?`,
		now, id)
	if err != nil {
		return fmt.Errorf("touch memory: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

const selectColumns = `SELECT id, type, content, source, confidence, category,
       created_at, updated_at, last_accessed_at, access_count, is_active,
       source_session_id, source_message_id, related_memory_ids`

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanMemory(row scanner) (model.Memory, error) {
	var m model.Memory
	var memType, source, createdAt, updatedAt string
	var category, lastAccessed, sessionID, messageID, relatedIDs sql.NullString
	var isActive int

	err := row.Scan(
		&m.ID, &memType, &m.Content, &source, &m.Confidence, &category,
		&createdAt, &updatedAt, &lastAccessed, &m.AccessCount, &isActive,
		&sessionID, &messageID, &relatedIDs,
	)
	if err != nil {
		return m, err
	}

	m.Type = model.MemoryType(memType)
	m.Source = model.MemorySource(source)
	m.IsActive = isActive != 0
	m.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	m.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
	if lastAccessed.Valid {
		t, _ := time.Parse(time.RFC3339Nano, lastAccessed.String)
		m.LastAccessedAt = &t
	}
	if category.Valid {
		m.Category = category.String
	}
	if sessionID.Valid {
		m.SourceSessionID = sessionID.String
	}
	if messageID.Valid {
		m.SourceMessageID = messageID.String
	}
	if relatedIDs.Valid {
		json.Unmarshal([]byte(relatedIDs.String), &m.RelatedMemoryIDs)
	}

	return m, nil
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
