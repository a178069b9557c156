// Package runtime implements the capability tree evaluator: the node
// variants (leaf, parallel, sequence, first-valid, sticky first-valid) and
// the engine that drives one evaluation pass per tick.
package runtime

import "github.com/jesterworks/canopy/pkg/domain"

// Node is the polymorphic tree node contract. Evaluation is synchronous and
// single-threaded: UpdateActive runs to completion before the caller
// proceeds, and AbortFromParent is a direct call, never queued.
type Node interface {
	// IsEnabled reports the node's state as of its last evaluation.
	IsEnabled() bool

	// UpdateActive performs one evaluation pass and returns the set of
	// capabilities this subtree considers active for the tick.
	UpdateActive(ctx *domain.EvalContext) domain.ActiveSet

	// AbortFromParent forces the subtree to deactivate immediately,
	// running disable hooks for any capability still enabled.
	AbortFromParent()

	// Parent returns the non-owning back-reference set at attach time.
	Parent() Node

	// Info returns a read-only snapshot of the node for introspection.
	Info() domain.NodeInfo

	setParent(Node)
}

// composite holds the shared child bookkeeping for combinator nodes.
// Ownership is strictly top-down: a composite exclusively owns its
// children; children keep only the parent back-reference.
type composite struct {
	parent   Node
	children []Node
}

func (c *composite) Parent() Node     { return c.parent }
func (c *composite) setParent(p Node) { c.parent = p }
func (c *composite) Children() []Node { return c.children }

func (c *composite) attach(owner Node, child Node) {
	if child == nil {
		panic("runtime: attach called with nil child")
	}
	child.setParent(owner)
	c.children = append(c.children, child)
}

func (c *composite) childInfos() []domain.NodeInfo {
	out := make([]domain.NodeInfo, len(c.children))
	for i, child := range c.children {
		out[i] = child.Info()
	}
	return out
}
