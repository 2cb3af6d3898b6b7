// Package retrieval decides which stored memories may influence a
// conversational turn.
package retrieval

import (
	"context"

	"github.com/pocketjournal/journal-memory/internal/model"
	"github.com/pocketjournal/journal-memory/internal/store"
)

const (
	// MinConfidence is the strict lower bound for prompt-eligible
	// memories: exactly this value is excluded.
	MinConfidence = 0.7
	// DefaultLimit caps RetrieveRelevant when the caller passes 0.
	DefaultLimit = 10
)

// Retriever applies the retrieval policy over a Store.
type Retriever struct {
	store store.Store
}

// New returns a Retriever backed by the given store.
func New(s store.Store) *Retriever {
	return &Retriever{store: s}
}

// RetrieveRelevant returns the memories eligible for prompt injection:
// active, confidence strictly above MinConfidence, optionally filtered to
// the given types, most recently updated first, capped to limit.
//
// The query text is accepted but does not affect selection yet; it is
// reserved for a semantic-relevance upgrade. Callers must not depend on
// it doing anything.
func (r *Retriever) RetrieveRelevant(ctx context.Context, query string, types []model.MemoryType, limit int) ([]model.Memory, error) {
	_ = query

	if limit <= 0 {
		limit = DefaultLimit
	}
	threshold := MinConfidence
	return r.store.Query(ctx, store.QueryParams{
		ActiveOnly:    true,
		MinConfidence: &threshold,
		Types:         types,
		Sort:          store.SortRecency,
		Limit:         limit,
	})
}

// GetAll lists memories for browsing, without the confidence filter.
// Inactive records are excluded unless includeInactive is set.
func (r *Retriever) GetAll(ctx context.Context, types []model.MemoryType, includeInactive bool) ([]model.Memory, error) {
	return r.store.Query(ctx, store.QueryParams{
		ActiveOnly: !includeInactive,
		Types:      types,
		Sort:       store.SortRecency,
	})
}
