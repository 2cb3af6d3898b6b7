// Package store provides the memory storage interface and SQLite implementation.
package store

import (
	"context"
	"errors"

	"github.com/pocketjournal/journal-memory/internal/model"
)

// ErrNotFound is returned when no memory matches the given id.
var ErrNotFound = errors.New("memory not found")

// ExplicitParams holds parameters for storing a user-stated memory.
type ExplicitParams struct {
	Type     model.MemoryType
	Content  string
	Category string
}

// InferredParams holds parameters for storing an extraction-derived memory.
type InferredParams struct {
	Type            model.MemoryType
	Content         string
	Confidence      float64
	Category        string
	SourceSessionID string
	SourceMessageID string
}

// UpdateParams holds the mutable fields of a memory. Nil means unchanged.
type UpdateParams struct {
	Content  *string
	Category *string
	IsActive *bool
}

// Sort selects the ordering of query results.
type Sort string

const (
	// SortRecency orders by updated_at descending (default).
	SortRecency Sort = "recency"
	// SortCreated orders by created_at descending.
	SortCreated Sort = "created"
	// SortConfidence orders by confidence descending, then recency.
	SortConfidence Sort = "confidence"
)

// QueryParams holds the predicate for listing memories.
type QueryParams struct {
	// ActiveOnly excludes soft-deleted records.
	ActiveOnly bool
	// MinConfidence, when set, keeps only memories with confidence
	// strictly greater than the given value.
	MinConfidence *float64
	// Types, when non-empty, keeps only memories of the given types.
	Types []model.MemoryType
	Sort  Sort
	// Limit caps the result count; 0 means unlimited.
	Limit int
}

// Store defines the memory persistence interface.
type Store interface {
	// InsertExplicit persists a user-stated memory with confidence 1.0.
	InsertExplicit(ctx context.Context, p ExplicitParams) (*model.Memory, error)

	// InsertInferred persists an extraction-derived memory. Confidence is
	// clamped to [0,1].
	InsertInferred(ctx context.Context, p InferredParams) (*model.Memory, error)

	// Get retrieves a single memory by id.
	Get(ctx context.Context, id string) (*model.Memory, error)

	// Update mutates the given fields and refreshes updated_at.
	Update(ctx context.Context, id string, p UpdateParams) (*model.Memory, error)

	// Delete permanently removes a memory.
	Delete(ctx context.Context, id string) error

	// Query lists memories matching the given predicate.
	Query(ctx context.Context, p QueryParams) ([]model.Memory, error)

	// Touch records an access: increments access_count and sets
	// last_accessed_at.
	Touch(ctx context.Context, id string) error

	// Close closes the store.
	Close() error
}
