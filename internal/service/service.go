// Package service composes the memory layer behind the two entry points
// the rest of the application uses: context assembly for prompt injection
// and conversation ingestion.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pocketjournal/journal-memory/internal/extract"
	"github.com/pocketjournal/journal-memory/internal/model"
	"github.com/pocketjournal/journal-memory/internal/prompt"
	"github.com/pocketjournal/journal-memory/internal/retrieval"
	"github.com/pocketjournal/journal-memory/internal/store"
)

// ContextLimit caps how many memories feed a single prompt.
const ContextLimit = 15

// Service wires the store, retrieval policy, formatter and extractor.
type Service struct {
	store     store.Store
	retriever *retrieval.Retriever
	extractor extract.Extractor
	log       *slog.Logger
}

// New returns a Service. A nil extractor disables extraction; a nil
// logger falls back to slog.Default().
func New(s store.Store, ex extract.Extractor, log *slog.Logger) *Service {
	if ex == nil {
		ex = extract.Noop{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		store:     s,
		retriever: retrieval.New(s),
		extractor: ex,
		log:       log,
	}
}

// BuildMemoryContext retrieves the memories relevant to the query and
// renders them into the context block appended to the base instruction
// prompt. A storage failure degrades to an empty block — personalization
// is lost for the turn, but message sending is never blocked.
//
// Every returned memory is touched, so access statistics reflect actual
// prompt usage. Touch failures are advisory and only logged.
func (s *Service) BuildMemoryContext(ctx context.Context, query string) string {
	memories, err := s.retriever.RetrieveRelevant(ctx, query, nil, ContextLimit)
	if err != nil {
		s.log.Error("memory retrieval failed, continuing without context", "error", err)
		return ""
	}

	for _, m := range memories {
		if err := s.store.Touch(ctx, m.ID); err != nil {
			s.log.Warn("access tracking failed", "id", m.ID, "error", err)
		}
	}

	return prompt.BuildContext(memories)
}

// IngestConversation runs the extractor over a finished transcript and
// inserts the surviving candidates as inferred memories. Candidates below
// the extraction confidence floor are dropped; a malformed batch inserts
// nothing.
func (s *Service) IngestConversation(ctx context.Context, sessionID, messageID string, turns []extract.Turn) ([]model.Memory, error) {
	candidates, err := s.extractor.Extract(ctx, turns)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	var inserted []model.Memory
	for _, c := range candidates {
		if c.Confidence < extract.MinConfidence {
			s.log.Debug("dropped low-confidence candidate",
				"type", c.Type, "confidence", c.Confidence)
			continue
		}
		m, err := s.store.InsertInferred(ctx, store.InferredParams{
			Type:            c.Type,
			Content:         c.Content,
			Confidence:      c.Confidence,
			Category:        c.Category,
			SourceSessionID: sessionID,
			SourceMessageID: messageID,
		})
		if err != nil {
			return inserted, fmt.Errorf("insert candidate: %w", err)
		}
		inserted = append(inserted, *m)
	}
	return inserted, nil
}

// Retriever exposes the policy for callers that list memories directly
// (the management surface).
func (s *Service) Retriever() *retrieval.Retriever {
	return s.retriever
}
