package domain

// Active pairs a capability instance with its declared identity for one
// evaluation pass.
type Active struct {
	Name       string
	Capability Capability
}

// ActiveSet is the transient result of one evaluation pass: the ordered set
// of capabilities that should be considered active this tick. It is rebuilt
// every tick and never persisted.
//
// Order is the concatenation order produced by the tree; callers may rely
// on it for iteration (TickActive runs in this order) but not for
// combinator semantics.
type ActiveSet []Active

// Append concatenates another set, preserving order.
func (s ActiveSet) Append(other ActiveSet) ActiveSet {
	return append(s, other...)
}

// Contains reports whether a capability with the given name is in the set.
func (s ActiveSet) Contains(name string) bool {
	for _, a := range s {
		if a.Name == name {
			return true
		}
	}
	return false
}

// Names returns the capability names in set order.
func (s ActiveSet) Names() []string {
	out := make([]string, len(s))
	for i, a := range s {
		out[i] = a.Name
	}
	return out
}
