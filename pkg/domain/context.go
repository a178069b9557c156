package domain

import "github.com/jesterworks/canopy/pkg/aggregate"

// ActionLookup exposes the input/action-state service to capability
// predicates. Implemented by pkg/input.States; hosts may substitute their
// own bookkeeping.
type ActionLookup interface {
	// IsPressed reports whether the named action is currently held.
	IsPressed(action string) bool
	// JustPressed reports whether the action went down this tick.
	JustPressed(action string) bool
	// Axis returns the current analog value for the action (0 when unbound).
	Axis(action string) float64
}

// EvalContext is passed through every evaluation call. It replaces ambient
// engine globals with explicit dependencies: the owning entity, the input
// lookup, and the prevention aggregator.
//
// The context is rebuilt by the driver each tick; capabilities must not
// retain it across ticks.
type EvalContext struct {
	// Owner is the entity the capability system is attached to. Opaque to
	// the engine.
	Owner any

	// Actions resolves input action state. May be nil when the host wires
	// no input service.
	Actions ActionLookup

	// Prevention is the driver-owned block list consulted before any
	// capability may enable. Read-only during a tick.
	Prevention *aggregate.Prevention

	// Time is the driver's elapsed time in seconds since start.
	Time float64

	// Delta is the current tick's timestep in seconds.
	Delta float64

	// Tick is the driver's tick counter, starting at 1 for the first tick.
	Tick uint64
}
