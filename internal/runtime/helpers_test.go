package runtime

import (
	"github.com/jesterworks/canopy/pkg/domain"
	"github.com/jesterworks/canopy/pkg/tags"
)

// testCap is a scriptable capability recording its lifecycle calls.
type testCap struct {
	domain.BaseCapability

	enableFn  func(*domain.EvalContext) bool
	disableFn func(*domain.EvalContext) bool

	enables  int
	disables int
	ticks    int
}

func (c *testCap) ShouldEnable(ctx *domain.EvalContext) bool {
	if c.enableFn == nil {
		return true
	}
	return c.enableFn(ctx)
}

func (c *testCap) ShouldDisable(ctx *domain.EvalContext) bool {
	if c.disableFn == nil {
		return false
	}
	return c.disableFn(ctx)
}

func (c *testCap) OnEnable(*domain.EvalContext)            { c.enables++ }
func (c *testCap) OnDisable(*domain.EvalContext)           { c.disables++ }
func (c *testCap) TickActive(*domain.EvalContext, float64) { c.ticks++ }

func newLeafFor(name string, cap domain.Capability, capTags ...string) *Leaf {
	desc := domain.Descriptor{Name: name}
	for _, t := range capTags {
		desc.Tags = append(desc.Tags, tags.Tag(t))
	}
	return NewLeaf(desc, cap)
}

// spyNode is a scriptable Node used to observe combinator traffic.
type spyNode struct {
	parent  Node
	name    string
	enabled bool

	// script holds the enabled state to adopt on each successive
	// UpdateActive call; when exhausted the last value sticks.
	script []bool

	updates int
	aborts  int
}

func (s *spyNode) IsEnabled() bool { return s.enabled }

func (s *spyNode) UpdateActive(ctx *domain.EvalContext) domain.ActiveSet {
	if len(s.script) > 0 {
		s.enabled = s.script[0]
		s.script = s.script[1:]
	}
	s.updates++
	if !s.enabled {
		return nil
	}
	return domain.ActiveSet{{Name: s.name, Capability: &testCap{}}}
}

func (s *spyNode) AbortFromParent() {
	s.aborts++
	s.enabled = false
}

func (s *spyNode) Parent() Node     { return s.parent }
func (s *spyNode) setParent(p Node) { s.parent = p }

func (s *spyNode) Info() domain.NodeInfo {
	return domain.NodeInfo{Kind: domain.KindCapability, Name: s.name, Enabled: s.enabled}
}

func evalCtx() *domain.EvalContext {
	return &domain.EvalContext{Time: 1, Delta: 0.016, Tick: 1}
}
