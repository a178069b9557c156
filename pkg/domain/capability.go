package domain

// Capability is a discrete, conditionally-active unit of gameplay behavior.
// The tree evaluator owns its lifecycle: ShouldEnable is consulted only
// while the capability is disabled, ShouldDisable only while it is enabled,
// and the On hooks fire exactly once per transition. TickActive runs once
// per tick for every capability found active, after the whole tree has been
// evaluated.
//
// Implementations should embed BaseCapability to inherit neutral defaults
// and override only what they need.
type Capability interface {
	// ShouldEnable reports whether a disabled capability wants to activate.
	// It must be a pure read of the context; enable bookkeeping is the
	// evaluator's job.
	ShouldEnable(ctx *EvalContext) bool

	// ShouldDisable reports whether an enabled capability wants to stop.
	ShouldDisable(ctx *EvalContext) bool

	// OnEnable runs when the evaluator activates the capability.
	OnEnable(ctx *EvalContext)

	// OnDisable runs when the evaluator deactivates the capability,
	// including aborts forced by a parent node.
	OnDisable(ctx *EvalContext)

	// TickActive runs once per tick while active, in result order, after
	// tree evaluation has completed for the tick.
	TickActive(ctx *EvalContext, dt float64)
}

// BaseCapability provides neutral defaults: always willing to enable, never
// asking to disable, with no-op hooks.
type BaseCapability struct{}

func (BaseCapability) ShouldEnable(*EvalContext) bool   { return true }
func (BaseCapability) ShouldDisable(*EvalContext) bool  { return false }
func (BaseCapability) OnEnable(*EvalContext)            {}
func (BaseCapability) OnDisable(*EvalContext)           {}
func (BaseCapability) TickActive(*EvalContext, float64) {}
