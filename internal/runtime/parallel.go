package runtime

import "github.com/jesterworks/canopy/pkg/domain"

// Parallel evaluates every child each tick regardless of the others'
// state. The node is enabled while any child is, and its result is the
// concatenation, in child order, of every enabled child's result. Used to
// let independent capabilities run concurrently.
type Parallel struct {
	composite
	name    string
	enabled bool
}

// NewParallel creates an empty parallel combinator. name may be empty (the
// root node has no sheet name).
func NewParallel(name string) *Parallel {
	return &Parallel{name: name}
}

// Attach appends a child, taking ownership.
func (p *Parallel) Attach(child Node) {
	p.attach(p, child)
}

func (p *Parallel) IsEnabled() bool { return p.enabled }

func (p *Parallel) UpdateActive(ctx *domain.EvalContext) domain.ActiveSet {
	var res domain.ActiveSet
	any := false
	for _, child := range p.children {
		r := child.UpdateActive(ctx)
		if child.IsEnabled() {
			any = true
			res = res.Append(r)
		}
	}
	p.enabled = any
	return res
}

func (p *Parallel) AbortFromParent() {
	if !p.enabled {
		return
	}
	for _, child := range p.children {
		if child.IsEnabled() {
			child.AbortFromParent()
		}
	}
	p.enabled = false
}

func (p *Parallel) Info() domain.NodeInfo {
	return domain.NodeInfo{
		Kind:     domain.KindParallel,
		Name:     p.name,
		Enabled:  p.enabled,
		Children: p.childInfos(),
	}
}
