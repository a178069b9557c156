package tags

import (
	"fmt"
	"strings"
)

// Tag is a hierarchical identifier using dot notation, e.g. "movement.sprint".
// A tag matches itself and any of its ancestors: "movement.sprint.burst"
// matches a request for "movement.sprint".
type Tag string

// Empty is the zero tag. It matches nothing.
const Empty Tag = ""

// Parse validates the raw string and returns it as a Tag.
// Segments must be non-empty: "a..b", ".a" and "a." are rejected.
func Parse(raw string) (Tag, error) {
	if raw == "" {
		return Empty, fmt.Errorf("tag must not be empty")
	}
	for _, seg := range strings.Split(raw, ".") {
		if seg == "" {
			return Empty, fmt.Errorf("invalid tag %q: empty segment", raw)
		}
	}
	return Tag(raw), nil
}

// MustParse is like Parse but panics on invalid input.
// Intended for package-level tag constants.
func MustParse(raw string) Tag {
	t, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return t
}

// IsValid reports whether the tag would survive Parse.
func (t Tag) IsValid() bool {
	_, err := Parse(string(t))
	return err == nil
}

// Leaf returns the last segment of the tag ("movement.sprint" -> "sprint").
func (t Tag) Leaf() string {
	s := string(t)
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		return s[i+1:]
	}
	return s
}

// Parent returns the tag with its leaf segment removed, or Empty for a
// single-segment tag.
func (t Tag) Parent() Tag {
	s := string(t)
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		return Tag(s[:i])
	}
	return Empty
}

// Parents returns every ancestor of the tag including the tag itself,
// ordered from the tag down to the root segment.
func (t Tag) Parents() []Tag {
	if t == Empty {
		return nil
	}
	var out []Tag
	for cur := t; cur != Empty; cur = cur.Parent() {
		out = append(out, cur)
	}
	return out
}

// Matches reports whether this tag is the other tag or a descendant of it.
func (t Tag) Matches(other Tag) bool {
	if t == Empty || other == Empty {
		return false
	}
	if t == other {
		return true
	}
	return strings.HasPrefix(string(t), string(other)+".")
}

// Depth returns the number of segments in the tag.
func (t Tag) Depth() int {
	if t == Empty {
		return 0
	}
	return strings.Count(string(t), ".") + 1
}

func (t Tag) String() string { return string(t) }
