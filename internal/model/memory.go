// Package model defines the core memory data types.
package model

import (
	"strings"
	"time"
)

// MemoryType classifies what kind of knowledge a memory holds.
type MemoryType string

const (
	TypeFact         MemoryType = "fact"
	TypePreference   MemoryType = "preference"
	TypeEvent        MemoryType = "event"
	TypeMood         MemoryType = "mood"
	TypeGoal         MemoryType = "goal"
	TypeTrait        MemoryType = "trait"
	TypeRelationship MemoryType = "relationship"
)

// AllTypes lists every memory type in declaration order.
var AllTypes = []MemoryType{
	TypeFact, TypePreference, TypeEvent, TypeMood,
	TypeGoal, TypeTrait, TypeRelationship,
}

// ValidTypes are the allowed memory types.
var ValidTypes = map[MemoryType]bool{
	TypeFact:         true,
	TypePreference:   true,
	TypeEvent:        true,
	TypeMood:         true,
	TypeGoal:         true,
	TypeTrait:        true,
	TypeRelationship: true,
}

// Label returns the capitalized display label used in formatted context
// and as the stable grouping key.
func (t MemoryType) Label() string {
	if t == "" {
		return ""
	}
	return strings.ToUpper(string(t[:1])) + string(t[1:])
}

// MemorySource records how a memory entered the store.
type MemorySource string

const (
	// SourceExplicit marks a memory the user directly stated.
	SourceExplicit MemorySource = "explicit"
	// SourceInferred marks a memory derived from conversation analysis.
	SourceInferred MemorySource = "inferred"
	// SourceCorrected marks a user override of a prior inferred value.
	SourceCorrected MemorySource = "corrected"
)

// FullConfidence reports whether this source always carries confidence 1.0.
func (s MemorySource) FullConfidence() bool {
	return s == SourceExplicit || s == SourceCorrected
}

// Memory is a single stored statement about the user.
type Memory struct {
	ID               string       `json:"id"`
	Type             MemoryType   `json:"type"`
	Content          string       `json:"content"`
	Source           MemorySource `json:"source"`
	Confidence       float64      `json:"confidence"`
	Category         string       `json:"category,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
	LastAccessedAt   *time.Time   `json:"last_accessed_at,omitempty"`
	AccessCount      int          `json:"access_count"`
	IsActive         bool         `json:"is_active"`
	SourceSessionID  string       `json:"source_session_id,omitempty"`
	SourceMessageID  string       `json:"source_message_id,omitempty"`
	RelatedMemoryIDs []string     `json:"related_memory_ids,omitempty"`
}
