package aggregate

import (
	"sort"

	"github.com/jesterworks/canopy/pkg/tags"
)

// Prevention is a reason-keyed, reference-counted block list of tags.
// Gameplay systems register a block under an arbitrary reason string; a
// capability whose tag set matches any currently blocked tag is refused
// activation. Multiple reasons may block the same tag; the tag stays
// blocked until every reason holding it is removed.
//
// All access is expected to happen on the thread that drives ticks. The
// engine only reads; mutation comes from outside the evaluation pass.
type Prevention struct {
	counts  map[tags.Tag]int
	reasons map[string]tags.Container
}

// NewPrevention creates an empty aggregator.
func NewPrevention() *Prevention {
	return &Prevention{
		counts:  make(map[tags.Tag]int),
		reasons: make(map[string]tags.Container),
	}
}

// Block registers blocked tags under the given reason.
// Re-blocking an already registered reason replaces its tag set.
func (p *Prevention) Block(reason string, blocked ...tags.Tag) {
	if prev, ok := p.reasons[reason]; ok {
		p.release(prev)
	}
	set := make(tags.Container, len(blocked))
	copy(set, blocked)
	p.reasons[reason] = set
	for _, t := range set {
		p.counts[t]++
	}
}

// Unblock removes every tag held by the given reason.
// Unknown reasons are ignored.
func (p *Prevention) Unblock(reason string) {
	set, ok := p.reasons[reason]
	if !ok {
		return
	}
	delete(p.reasons, reason)
	p.release(set)
}

func (p *Prevention) release(set tags.Container) {
	for _, t := range set {
		p.counts[t]--
		if p.counts[t] <= 0 {
			delete(p.counts, t)
		}
	}
}

// HasAny reports whether any tag in the given set is currently blocked.
// Hierarchy applies: a capability tagged "movement.sprint" is blocked by a
// block on "movement".
func (p *Prevention) HasAny(set tags.Container) bool {
	for _, t := range set {
		for blocked := range p.counts {
			if t.Matches(blocked) {
				return true
			}
		}
	}
	return false
}

// BlockedTags returns the currently blocked tags, sorted for stable output.
func (p *Prevention) BlockedTags() tags.Container {
	out := make(tags.Container, 0, len(p.counts))
	for t := range p.counts {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ReasonTags returns the tag set held by a reason, if registered.
func (p *Prevention) ReasonTags(reason string) (tags.Container, bool) {
	set, ok := p.reasons[reason]
	if !ok {
		return nil, false
	}
	out := make(tags.Container, len(set))
	copy(out, set)
	return out, true
}

// Reasons returns the active reason keys, sorted.
func (p *Prevention) Reasons() []string {
	out := make([]string, 0, len(p.reasons))
	for r := range p.reasons {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}
