package tags

// Container is an ordered collection of tags. Order is preserved so callers
// can rely on declaration order when rendering or iterating.
type Container []Tag

// NewContainer parses every raw tag, failing on the first invalid one.
func NewContainer(raw ...string) (Container, error) {
	c := make(Container, 0, len(raw))
	for _, r := range raw {
		t, err := Parse(r)
		if err != nil {
			return nil, err
		}
		c = append(c, t)
	}
	return c, nil
}

// Has reports whether any tag in the container matches the given tag
// (exactly or as a descendant).
func (c Container) Has(tag Tag) bool {
	for _, t := range c {
		if t.Matches(tag) {
			return true
		}
	}
	return false
}

// HasAny reports whether the containers share at least one match.
func (c Container) HasAny(other Container) bool {
	for _, o := range other {
		if c.Has(o) {
			return true
		}
	}
	return false
}

// HasAll reports whether every tag in other is matched by this container.
func (c Container) HasAll(other Container) bool {
	for _, o := range other {
		if !c.Has(o) {
			return false
		}
	}
	return true
}

// ChildrenOf returns the tags in the container that are strict descendants
// of parent, in container order.
func (c Container) ChildrenOf(parent Tag) Container {
	var out Container
	for _, t := range c {
		if t != parent && t.Matches(parent) {
			out = append(out, t)
		}
	}
	return out
}

// Strings returns the raw string form of every tag, preserving order.
func (c Container) Strings() []string {
	out := make([]string, len(c))
	for i, t := range c {
		out[i] = string(t)
	}
	return out
}
