package runtime

import "github.com/jesterworks/canopy/pkg/domain"

// StatefulFirstValid is FirstValid with stickiness: while the currently
// active child remains enabled, only that child is re-evaluated and the
// rest of the children are not touched that tick. Only when the current
// child disables does the node fall back to a full scan from index zero,
// with the same lowest-index-wins rule but without the cross-abort call.
// Models sticky selection such as a combat stance holding until its
// condition breaks.
type StatefulFirstValid struct {
	composite
	name    string
	current int
}

// NewStatefulFirstValid creates an empty sticky first-valid combinator.
func NewStatefulFirstValid(name string) *StatefulFirstValid {
	return &StatefulFirstValid{name: name, current: -1}
}

// Attach appends a child, taking ownership. Earlier children have higher
// priority during rescans.
func (s *StatefulFirstValid) Attach(child Node) {
	s.attach(s, child)
}

func (s *StatefulFirstValid) IsEnabled() bool { return s.current >= 0 }

// CurrentIndex returns the active child index, or -1 when none is enabled.
func (s *StatefulFirstValid) CurrentIndex() int { return s.current }

func (s *StatefulFirstValid) UpdateActive(ctx *domain.EvalContext) domain.ActiveSet {
	if s.current >= 0 {
		child := s.children[s.current]
		r := child.UpdateActive(ctx)
		if child.IsEnabled() {
			return r
		}
		s.current = -1
	}

	for i, child := range s.children {
		r := child.UpdateActive(ctx)
		if child.IsEnabled() {
			s.current = i
			return r
		}
	}
	return nil
}

func (s *StatefulFirstValid) AbortFromParent() {
	if s.current < 0 {
		return
	}
	s.children[s.current].AbortFromParent()
	s.current = -1
}

func (s *StatefulFirstValid) Info() domain.NodeInfo {
	return domain.NodeInfo{
		Kind:     domain.KindStickyFirstValid,
		Name:     s.name,
		Enabled:  s.current >= 0,
		Children: s.childInfos(),
	}
}
