package feature_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/mdtree/pkg/feature"
)

func TestNewSet(t *testing.T) {
	t.Parallel()

	set, err := feature.NewSet(feature.Heading, feature.Bold, feature.Table)
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}

	if !set.Enabled(feature.Heading) || !set.Enabled(feature.Table) {
		t.Error("requested features should be enabled")
	}
	if set.Enabled(feature.Footnote) {
		t.Error("unrequested feature should be disabled")
	}
}

func TestNewSet_RejectsUnknownTag(t *testing.T) {
	t.Parallel()

	_, err := feature.NewSet(feature.Heading, feature.Feature("blink"))
	if err == nil {
		t.Fatal("expected error for unknown tag")
	}
	if !strings.Contains(err.Error(), `"blink"`) {
		t.Errorf("error should name the bad tag: %v", err)
	}
}

func TestAllEnabled(t *testing.T) {
	t.Parallel()

	set := feature.AllEnabled()
	for _, f := range feature.All() {
		if !set.Enabled(f) {
			t.Errorf("feature %q should be enabled", f)
		}
	}
}

func TestAll_IsStableAndComplete(t *testing.T) {
	t.Parallel()

	tags := feature.All()
	if len(tags) != 21 {
		t.Fatalf("expected 21 recognized tags, got %d", len(tags))
	}

	seen := make(map[feature.Feature]bool, len(tags))
	for _, f := range tags {
		if seen[f] {
			t.Errorf("duplicate tag %q", f)
		}
		seen[f] = true
		if !feature.IsKnown(f) {
			t.Errorf("tag %q from All() not recognized by IsKnown", f)
		}
	}

	// Mutating the returned slice must not corrupt the catalog.
	tags[0] = "mutated"
	if feature.All()[0] == "mutated" {
		t.Error("All() should return a copy")
	}
}

func TestIsKnown(t *testing.T) {
	t.Parallel()

	if !feature.IsKnown(feature.FencedCode) {
		t.Error("fenced-code-block should be known")
	}
	if feature.IsKnown("marquee") {
		t.Error("unknown tag should not be recognized")
	}
}

func TestSet_Without(t *testing.T) {
	t.Parallel()

	base := feature.AllEnabled()
	trimmed := base.Without(feature.Table, feature.Emoji)

	if trimmed.Enabled(feature.Table) || trimmed.Enabled(feature.Emoji) {
		t.Error("removed features should be disabled")
	}
	if !trimmed.Enabled(feature.Heading) {
		t.Error("unrelated features should survive Without")
	}
	// Original set is untouched.
	if !base.Enabled(feature.Table) {
		t.Error("Without should not mutate the receiver")
	}
}

func TestSet_With(t *testing.T) {
	t.Parallel()

	base, err := feature.NewSet(feature.Heading)
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}

	grown, err := base.With(feature.Link)
	if err != nil {
		t.Fatalf("With: %v", err)
	}
	if !grown.Enabled(feature.Link) || !grown.Enabled(feature.Heading) {
		t.Error("With should add without removing")
	}

	if _, err := base.With("nonsense"); err == nil {
		t.Error("With should reject unknown tags")
	}
}

func TestSet_List(t *testing.T) {
	t.Parallel()

	set, err := feature.NewSet(feature.Table, feature.Bold, feature.Heading)
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}

	list := set.List()
	if len(list) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i-1] >= list[i] {
			t.Errorf("List() not sorted: %v", list)
		}
	}
}

func TestSet_ZeroValue(t *testing.T) {
	t.Parallel()

	var set feature.Set
	if set.Enabled(feature.Heading) {
		t.Error("zero set should have nothing enabled")
	}
	if len(set.List()) != 0 {
		t.Error("zero set should list nothing")
	}
}
