package runtime

import "github.com/jesterworks/canopy/pkg/domain"

// Sequence runs its children as ordered steps. One child is the current
// step; when it finishes, the scan falls through to the next child within
// the same pass, so a sequence can complete one step and begin the next in
// a single tick. A candidate that fails to enable on its first attempt
// fails the whole sequence and resets the step index to zero.
type Sequence struct {
	composite
	name       string
	index      int
	wasEnabled bool
}

// NewSequence creates an empty sequence combinator.
func NewSequence(name string) *Sequence {
	return &Sequence{name: name}
}

// Attach appends a step, taking ownership.
func (s *Sequence) Attach(child Node) {
	s.attach(s, child)
}

func (s *Sequence) IsEnabled() bool { return s.wasEnabled }

// Index returns the current step index.
func (s *Sequence) Index() int { return s.index }

func (s *Sequence) UpdateActive(ctx *domain.EvalContext) domain.ActiveSet {
	var res domain.ActiveSet
	for s.index < len(s.children) {
		child := s.children[s.index]
		r := child.UpdateActive(ctx)

		if child.IsEnabled() {
			s.wasEnabled = true
			return res.Append(r)
		}

		if s.wasEnabled {
			// The running step just finished: accept its output and fall
			// through to the next candidate in the same pass.
			res = res.Append(r)
			s.wasEnabled = false
			s.index++
			continue
		}

		// Candidate failed to enable on first attempt: the sequence fails.
		s.index = 0
		return nil
	}

	// Ran out of steps this pass; restart from the top next tick.
	s.index = 0
	return res
}

func (s *Sequence) AbortFromParent() {
	for _, child := range s.children {
		if child.IsEnabled() {
			child.AbortFromParent()
		}
	}
	s.index = 0
	s.wasEnabled = false
}

func (s *Sequence) Info() domain.NodeInfo {
	return domain.NodeInfo{
		Kind:     domain.KindSequence,
		Name:     s.name,
		Enabled:  s.wasEnabled,
		Children: s.childInfos(),
	}
}
