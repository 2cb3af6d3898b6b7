// Package extract proposes inferred memories from finished conversations.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pocketjournal/journal-memory/internal/model"
)

// MinConfidence is the floor below which proposed candidates are dropped
// before insertion.
const MinConfidence = 0.6

// Turn is one utterance of a conversation transcript.
type Turn struct {
	Role string `json:"role"` // "user" or "assistant"
	Text string `json:"text"`
}

// Candidate is a proposed inferred memory.
type Candidate struct {
	Type       model.MemoryType `json:"type"`
	Content    string           `json:"content"`
	Confidence float64          `json:"confidence"`
	Category   string           `json:"category,omitempty"`
}

// Extractor analyzes a transcript and proposes new inferred memories.
type Extractor interface {
	Extract(ctx context.Context, turns []Turn) ([]Candidate, error)
}

// Noop is an Extractor that proposes nothing. It is the default when no
// model provider is configured, so the rest of the system runs without one.
type Noop struct{}

func (Noop) Extract(ctx context.Context, turns []Turn) ([]Candidate, error) {
	return nil, nil
}

const extractPrompt = `You analyze a journaling conversation and extract discrete facts worth remembering about the user.

Return a JSON array. Each element has:
- "type": one of: fact, preference, event, mood, goal, trait, relationship
- "content": the remembered statement, one short sentence
- "confidence": 0.0-1.0, how certain the fact is
- "category": optional short sub-classification

Only extract what is stated or strongly implied. Skip anything you would rate below 0.6. Never infer personality traits from a single message. If nothing is worth remembering, return [].

Conversation:
%s

JSON array only, no explanation:`

// BuildPrompt renders the extraction prompt for a transcript.
func BuildPrompt(turns []Turn) string {
	var b strings.Builder
	for _, t := range turns {
		b.WriteString(t.Role)
		b.WriteString(": ")
		b.WriteString(t.Text)
		b.WriteString("\n")
	}
	return fmt.Sprintf(extractPrompt, b.String())
}

// ParseCandidates decodes and validates a model response. Any malformed
// candidate rejects the whole batch: a partial apply must never reach the
// store.
func ParseCandidates(response string) ([]Candidate, error) {
	raw := extractJSONArray(response)
	if raw == "" {
		return nil, fmt.Errorf("no JSON array in response")
	}

	var candidates []Candidate
	if err := json.Unmarshal([]byte(raw), &candidates); err != nil {
		return nil, fmt.Errorf("parse candidates: %w", err)
	}

	for i, c := range candidates {
		if !model.ValidTypes[c.Type] {
			return nil, fmt.Errorf("candidate %d: invalid type %q", i, c.Type)
		}
		if strings.TrimSpace(c.Content) == "" {
			return nil, fmt.Errorf("candidate %d: empty content", i)
		}
		if c.Confidence < 0 || c.Confidence > 1 {
			return nil, fmt.Errorf("candidate %d: confidence %v out of range", i, c.Confidence)
		}
	}
	return candidates, nil
}

// extractJSONArray pulls the first top-level JSON array out of a response
// that may be wrapped in prose or markdown fences.
func extractJSONArray(s string) string {
	start := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}
