package domain

import (
	"context"
	"time"

	"github.com/jesterworks/canopy/pkg/tags"
)

// CapabilityEvent describes one activation-state transition.
type CapabilityEvent struct {
	Name string         `json:"name"`
	Tags tags.Container `json:"tags,omitempty"`
	Tick uint64         `json:"tick"`
	Time float64        `json:"time"`
}

// TickEvent describes one full evaluation pass.
type TickEvent struct {
	Tick     uint64        `json:"tick"`
	Time     float64       `json:"time"`
	Delta    float64       `json:"delta"`
	Active   []string      `json:"active"`
	Duration time.Duration `json:"duration"`
}

// LifecycleHooks defines callbacks for engine observability. Any field may
// be nil. Hooks run synchronously on the tick thread and must not call back
// into the system.
type LifecycleHooks struct {
	// OnTickStart fires before the tree is evaluated. Duration and Active
	// are unset at this point.
	OnTickStart func(context.Context, *TickEvent)
	// OnTickEnd fires after evaluation and TickActive calls complete.
	OnTickEnd func(context.Context, *TickEvent)
	// OnActivated fires for every capability that entered the active set.
	OnActivated func(context.Context, *CapabilityEvent)
	// OnDeactivated fires for every capability that left the active set.
	OnDeactivated func(context.Context, *CapabilityEvent)
	// OnBlocked fires when the prevention aggregator refused an activation
	// that ShouldEnable would otherwise have allowed.
	OnBlocked func(context.Context, *CapabilityEvent)
}

// MergeHooks chains hook sets; within each callback they fire in argument
// order. Nil callbacks are skipped.
func MergeHooks(sets ...LifecycleHooks) LifecycleHooks {
	var out LifecycleHooks
	for _, h := range sets {
		out.OnTickStart = chainTick(out.OnTickStart, h.OnTickStart)
		out.OnTickEnd = chainTick(out.OnTickEnd, h.OnTickEnd)
		out.OnActivated = chainCapability(out.OnActivated, h.OnActivated)
		out.OnDeactivated = chainCapability(out.OnDeactivated, h.OnDeactivated)
		out.OnBlocked = chainCapability(out.OnBlocked, h.OnBlocked)
	}
	return out
}

func chainTick(a, b func(context.Context, *TickEvent)) func(context.Context, *TickEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *TickEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}

func chainCapability(a, b func(context.Context, *CapabilityEvent)) func(context.Context, *CapabilityEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *CapabilityEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}

// Snapshot is one recorded history entry: the active set after a tick.
type Snapshot struct {
	Tick     uint64    `json:"tick"`
	Time     float64   `json:"time"`
	Active   []string  `json:"active"`
	Recorded time.Time `json:"recorded"`

	// Sealed carries the encrypted payload when history is stored through
	// the encryption middleware; the readable fields above are zeroed then.
	Sealed string `json:"sealed,omitempty"`
}
