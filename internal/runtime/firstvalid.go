package runtime

import "github.com/jesterworks/canopy/pkg/domain"

// FirstValid rescans its children from index zero every tick and takes the
// first one that reports enabled: pure priority-list semantics with the
// lowest index winning. When the chosen index changes, the previously
// active child receives an explicit abort so it can run its cleanup even
// though evaluation may already have disabled it.
type FirstValid struct {
	composite
	name    string
	current int
}

// NewFirstValid creates an empty first-valid combinator.
func NewFirstValid(name string) *FirstValid {
	return &FirstValid{name: name, current: -1}
}

// Attach appends a child, taking ownership. Earlier children have higher
// priority.
func (f *FirstValid) Attach(child Node) {
	f.attach(f, child)
}

func (f *FirstValid) IsEnabled() bool { return f.current >= 0 }

// CurrentIndex returns the active child index, or -1 when none is enabled.
func (f *FirstValid) CurrentIndex() int { return f.current }

func (f *FirstValid) UpdateActive(ctx *domain.EvalContext) domain.ActiveSet {
	prev := f.current
	found := -1
	var res domain.ActiveSet

	for i, child := range f.children {
		r := child.UpdateActive(ctx)
		if child.IsEnabled() {
			found = i
			res = r
			break
		}
	}

	f.current = found
	if prev >= 0 && prev != found {
		f.children[prev].AbortFromParent()
	}
	return res
}

func (f *FirstValid) AbortFromParent() {
	if f.current < 0 {
		return
	}
	f.children[f.current].AbortFromParent()
	f.current = -1
}

func (f *FirstValid) Info() domain.NodeInfo {
	return domain.NodeInfo{
		Kind:     domain.KindFirstValid,
		Name:     f.name,
		Enabled:  f.current >= 0,
		Children: f.childInfos(),
	}
}
