// Package prompt renders selected memories into the context block that is
// appended to the base system instruction.
package prompt

import (
	"sort"
	"strings"

	"github.com/pocketjournal/journal-memory/internal/model"
)

// ContextHeader introduces the memory block inside the system prompt.
const ContextHeader = "\n\n## What you know about the user:\n"

// BuildContext renders memories into a single deterministic text block.
// Memories are grouped by type, groups ordered alphabetically by display
// label, and each group keeps the order its memories arrived in. An empty
// input yields an empty string, which callers treat as "nothing to inject".
func BuildContext(memories []model.Memory) string {
	if len(memories) == 0 {
		return ""
	}

	groups := make(map[string][]model.Memory)
	for _, m := range memories {
		label := m.Type.Label()
		groups[label] = append(groups[label], m)
	}

	// Explicit sort: map iteration order must never leak into the prompt.
	labels := make([]string, 0, len(groups))
	for label := range groups {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	var b strings.Builder
	b.WriteString(ContextHeader)
	for _, label := range labels {
		b.WriteString("\n### ")
		b.WriteString(label)
		b.WriteString(":\n")
		for _, m := range groups[label] {
			b.WriteString("- ")
			b.WriteString(m.Content)
			b.WriteString("\n")
		}
	}
	return b.String()
}
