package tags_test

import (
	"testing"

	"github.com/jesterworks/canopy/pkg/tags"
)

func TestParse(t *testing.T) {
	cases := []struct {
		raw     string
		wantErr bool
	}{
		{"movement", false},
		{"movement.sprint", false},
		{"a.b.c.d", false},
		{"", true},
		{".movement", true},
		{"movement.", true},
		{"a..b", true},
	}

	for _, tc := range cases {
		_, err := tags.Parse(tc.raw)
		if tc.wantErr && err == nil {
			t.Errorf("Parse(%q): expected error, got nil", tc.raw)
		}
		if !tc.wantErr && err != nil {
			t.Errorf("Parse(%q): unexpected error: %v", tc.raw, err)
		}
	}
}

func TestTag_Hierarchy(t *testing.T) {
	tag := tags.MustParse("combat.stance.defensive")

	if got := tag.Leaf(); got != "defensive" {
		t.Errorf("Leaf: expected 'defensive', got %q", got)
	}
	if got := tag.Parent(); got != tags.Tag("combat.stance") {
		t.Errorf("Parent: expected 'combat.stance', got %q", got)
	}
	if got := tag.Depth(); got != 3 {
		t.Errorf("Depth: expected 3, got %d", got)
	}

	parents := tag.Parents()
	want := []tags.Tag{"combat.stance.defensive", "combat.stance", "combat"}
	if len(parents) != len(want) {
		t.Fatalf("Parents: expected %d entries, got %d", len(want), len(parents))
	}
	for i := range want {
		if parents[i] != want[i] {
			t.Errorf("Parents[%d]: expected %q, got %q", i, want[i], parents[i])
		}
	}
}

func TestTag_Matches(t *testing.T) {
	cases := []struct {
		tag, other string
		want       bool
	}{
		{"movement.sprint", "movement.sprint", true},
		{"movement.sprint", "movement", true},
		{"movement.sprint.burst", "movement", true},
		{"movement", "movement.sprint", false},
		{"movements", "movement", false}, // prefix of string, not of hierarchy
		{"combat", "movement", false},
	}

	for _, tc := range cases {
		got := tags.Tag(tc.tag).Matches(tags.Tag(tc.other))
		if got != tc.want {
			t.Errorf("%q.Matches(%q): expected %v, got %v", tc.tag, tc.other, tc.want, got)
		}
	}
}

func TestContainer(t *testing.T) {
	c, err := tags.NewContainer("movement.sprint", "combat.stance.defensive", "combat.stance.offensive")
	if err != nil {
		t.Fatalf("NewContainer failed: %v", err)
	}

	if !c.Has("movement") {
		t.Error("expected container to match parent tag 'movement'")
	}
	if c.Has("input") {
		t.Error("did not expect container to match 'input'")
	}

	other := tags.Container{"combat"}
	if !c.HasAny(other) {
		t.Error("expected HasAny to match 'combat'")
	}
	if !c.HasAll(tags.Container{"movement", "combat.stance"}) {
		t.Error("expected HasAll to match both parents")
	}
	if c.HasAll(tags.Container{"movement", "input"}) {
		t.Error("did not expect HasAll to match 'input'")
	}

	children := c.ChildrenOf("combat.stance")
	if len(children) != 2 {
		t.Fatalf("ChildrenOf: expected 2 children, got %d", len(children))
	}
	if children[0] != "combat.stance.defensive" || children[1] != "combat.stance.offensive" {
		t.Errorf("ChildrenOf: order not preserved: %v", children)
	}
}

func TestContainer_InvalidTag(t *testing.T) {
	if _, err := tags.NewContainer("ok", "not..ok"); err == nil {
		t.Error("expected error for invalid tag in container")
	}
}
