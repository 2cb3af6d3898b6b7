package prompt

import (
	"strings"
	"testing"

	"github.com/pocketjournal/journal-memory/internal/model"
)

func mem(t model.MemoryType, content string) model.Memory {
	return model.Memory{Type: t, Content: content}
}

func TestBuildContextEmpty(t *testing.T) {
	if got := BuildContext(nil); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
	if got := BuildContext([]model.Memory{}); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestBuildContextFormat(t *testing.T) {
	got := BuildContext([]model.Memory{
		mem(model.TypeFact, "Lives in Seattle"),
		mem(model.TypePreference, "Loves hiking"),
	})

	want := "\n\n## What you know about the user:\n" +
		"\n### Fact:\n" +
		"- Lives in Seattle\n" +
		"\n### Preference:\n" +
		"- Loves hiking\n"
	if got != want {
		t.Errorf("format mismatch:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestBuildContextGroupsSortedAlphabetically(t *testing.T) {
	// Arrival order deliberately differs from label order
	got := BuildContext([]model.Memory{
		mem(model.TypeTrait, "detail oriented"),
		mem(model.TypeEvent, "moved apartments"),
		mem(model.TypeGoal, "run a marathon"),
	})

	eventIdx := strings.Index(got, "### Event:")
	goalIdx := strings.Index(got, "### Goal:")
	traitIdx := strings.Index(got, "### Trait:")
	if eventIdx < 0 || goalIdx < 0 || traitIdx < 0 {
		t.Fatalf("missing group headers: %q", got)
	}
	if !(eventIdx < goalIdx && goalIdx < traitIdx) {
		t.Errorf("groups must be alphabetical by label, got: %q", got)
	}
}

func TestBuildContextPreservesWithinGroupOrder(t *testing.T) {
	got := BuildContext([]model.Memory{
		mem(model.TypeFact, "newest fact"),
		mem(model.TypeFact, "older fact"),
	})

	first := strings.Index(got, "- newest fact")
	second := strings.Index(got, "- older fact")
	if first < 0 || second < 0 || first > second {
		t.Errorf("within-group order must match arrival order: %q", got)
	}
}

func TestBuildContextDeterministic(t *testing.T) {
	memories := []model.Memory{
		mem(model.TypeMood, "content lately"),
		mem(model.TypeFact, "has two cats"),
		mem(model.TypeRelationship, "close with sister"),
		mem(model.TypeFact, "works remotely"),
	}

	first := BuildContext(memories)
	for i := 0; i < 10; i++ {
		if got := BuildContext(memories); got != first {
			t.Fatalf("output must be byte-identical across calls:\n%q\nvs\n%q", first, got)
		}
	}
}
