package runtime

import "github.com/jesterworks/canopy/pkg/domain"

// Leaf wraps exactly one capability and owns its enable/disable lifecycle.
// It is the only node type that mutates capability state; composites merely
// aggregate leaf results.
type Leaf struct {
	parent Node
	desc   domain.Descriptor
	cap    domain.Capability

	enabled   bool
	enabledAt float64 // -1 while disabled

	// lastCtx is retained so an abort arriving between evaluations can
	// still run the disable hook with the tick's context.
	lastCtx *domain.EvalContext

	// blocked is the engine's notification callback for prevention refusals.
	blocked func(*domain.EvalContext, domain.Descriptor)
}

// NewLeaf creates a leaf node. A nil capability is a precondition violation
// by the tree's composer and panics.
func NewLeaf(desc domain.Descriptor, cap domain.Capability) *Leaf {
	if cap == nil {
		panic("runtime: nil capability for " + desc.Name)
	}
	return &Leaf{desc: desc, cap: cap, enabledAt: -1}
}

func (l *Leaf) Parent() Node     { return l.parent }
func (l *Leaf) setParent(p Node) { l.parent = p }

// IsEnabled mirrors the capability's enabled flag exactly.
func (l *Leaf) IsEnabled() bool { return l.enabled }

// Name returns the capability's declared identity.
func (l *Leaf) Name() string { return l.desc.Name }

// Descriptor returns the declaration the leaf was built from.
func (l *Leaf) Descriptor() domain.Descriptor { return l.desc }

// EnabledAt returns the context time the capability last enabled,
// or -1 while disabled.
func (l *Leaf) EnabledAt() float64 { return l.enabledAt }

// UpdateActive advances the leaf's two-state machine. While enabled it asks
// ShouldDisable; while disabled it checks prevention first, then
// ShouldEnable. Transitions happen at most once per pass.
func (l *Leaf) UpdateActive(ctx *domain.EvalContext) domain.ActiveSet {
	l.lastCtx = ctx

	if l.enabled {
		if l.cap.ShouldDisable(ctx) {
			l.disable(ctx)
			return nil
		}
		return domain.ActiveSet{{Name: l.desc.Name, Capability: l.cap}}
	}

	if ctx.Prevention != nil && ctx.Prevention.HasAny(l.desc.Tags) {
		if l.blocked != nil {
			l.blocked(ctx, l.desc)
		}
		return nil
	}
	if l.cap.ShouldEnable(ctx) {
		l.enable(ctx)
		return domain.ActiveSet{{Name: l.desc.Name, Capability: l.cap}}
	}
	return nil
}

// AbortFromParent force-disables an enabled capability. No-op otherwise.
func (l *Leaf) AbortFromParent() {
	if !l.enabled {
		return
	}
	l.disable(l.lastCtx)
}

func (l *Leaf) enable(ctx *domain.EvalContext) {
	l.enabled = true
	l.enabledAt = ctx.Time
	l.cap.OnEnable(ctx)
}

func (l *Leaf) disable(ctx *domain.EvalContext) {
	l.enabled = false
	l.enabledAt = -1
	l.cap.OnDisable(ctx)
}

// Info returns the leaf's introspection view.
func (l *Leaf) Info() domain.NodeInfo {
	return domain.NodeInfo{
		Kind:    domain.KindCapability,
		Name:    l.desc.Name,
		Tags:    l.desc.Tags.Strings(),
		Enabled: l.enabled,
	}
}
