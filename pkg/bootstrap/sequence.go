// Package bootstrap manages ordered game-state initialization steps.
// Systems bind callbacks to tag-identified steps; a readiness predicate
// gates advancement, and the sequence is advanced from the host's tick.
package bootstrap

import (
	"fmt"

	"github.com/jesterworks/canopy/pkg/tags"
)

// ReadyFunc reports whether the current step has finished its work and the
// sequence may advance past it.
type ReadyFunc func(step tags.Tag) bool

type binding struct {
	step tags.Tag
	fn   func(tags.Tag)
	// post bindings run after the step has been entered and settled,
	// i.e. when the sequence advances past the step.
	post bool
}

// Sequence walks an ordered list of initialization steps exactly once.
type Sequence struct {
	steps    []tags.Tag
	ready    ReadyFunc
	index    int
	started  bool
	done     bool
	bindings []binding

	onStepChanged func(tags.Tag)
	onCompleted   func()
}

// NewSequence creates a sequence over the given ordered steps. ready may
// be nil, in which case every step is considered immediately ready.
func NewSequence(steps []tags.Tag, ready ReadyFunc) (*Sequence, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("bootstrap: at least one step required")
	}
	seen := make(map[tags.Tag]bool, len(steps))
	for _, s := range steps {
		if !s.IsValid() {
			return nil, fmt.Errorf("bootstrap: invalid step tag %q", s)
		}
		if seen[s] {
			return nil, fmt.Errorf("bootstrap: duplicate step %q", s)
		}
		seen[s] = true
	}
	return &Sequence{steps: steps, ready: ready}, nil
}

// Bind registers a callback for a step. Pre bindings fire when the step is
// entered; post bindings fire when the sequence advances past it. Binding
// an already-passed step fires immediately.
func (s *Sequence) Bind(step tags.Tag, fn func(tags.Tag), post bool) {
	if fn == nil {
		return
	}
	if s.passed(step, post) {
		fn(step)
		return
	}
	s.bindings = append(s.bindings, binding{step: step, fn: fn, post: post})
}

// OnStepChanged registers a callback fired on every step entry.
func (s *Sequence) OnStepChanged(fn func(tags.Tag)) { s.onStepChanged = fn }

// OnCompleted registers a callback fired once, after the final step settles.
func (s *Sequence) OnCompleted(fn func()) { s.onCompleted = fn }

// Current returns the step the sequence is sitting on. ok is false before
// the first Tick and after completion.
func (s *Sequence) Current() (step tags.Tag, ok bool) {
	if !s.started || s.done {
		return tags.Empty, false
	}
	return s.steps[s.index], true
}

// IsCurrent reports whether the given step is the one in progress.
func (s *Sequence) IsCurrent(step tags.Tag) bool {
	cur, ok := s.Current()
	return ok && cur == step
}

// IsInitialized reports whether the step has been entered (it may still be
// the current one).
func (s *Sequence) IsInitialized(step tags.Tag) bool {
	if !s.started {
		return false
	}
	for i := 0; i <= s.index && i < len(s.steps); i++ {
		if s.steps[i] == step {
			return true
		}
	}
	return s.done
}

// Done reports whether every step has settled.
func (s *Sequence) Done() bool { return s.done }

// Tick drives the sequence: it enters the first step on the first call,
// then advances through every consecutive step whose readiness check
// passes. Multiple steps may settle in one tick.
func (s *Sequence) Tick() {
	if s.done {
		return
	}
	if !s.started {
		s.started = true
		s.enter(s.steps[0])
	}
	for !s.done && s.isReady(s.steps[s.index]) {
		s.leave(s.steps[s.index])
		if s.index+1 >= len(s.steps) {
			s.done = true
			if s.onCompleted != nil {
				s.onCompleted()
			}
			return
		}
		s.index++
		s.enter(s.steps[s.index])
	}
}

func (s *Sequence) isReady(step tags.Tag) bool {
	if s.ready == nil {
		return true
	}
	return s.ready(step)
}

func (s *Sequence) enter(step tags.Tag) {
	if s.onStepChanged != nil {
		s.onStepChanged(step)
	}
	s.fire(step, false)
}

func (s *Sequence) leave(step tags.Tag) {
	s.fire(step, true)
}

func (s *Sequence) fire(step tags.Tag, post bool) {
	kept := s.bindings[:0]
	for _, b := range s.bindings {
		if b.step == step && b.post == post {
			b.fn(step)
			continue
		}
		kept = append(kept, b)
	}
	s.bindings = kept
}

func (s *Sequence) passed(step tags.Tag, post bool) bool {
	if s.done {
		return true
	}
	if !s.started {
		return false
	}
	for i := 0; i < len(s.steps); i++ {
		if s.steps[i] != step {
			continue
		}
		if i < s.index {
			return true
		}
		if i == s.index && !post {
			// Pre binding for the current step: entry already happened.
			return true
		}
		return false
	}
	return false
}
