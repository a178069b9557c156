package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jesterworks/canopy/pkg/aggregate"
	"github.com/jesterworks/canopy/pkg/domain"
	"github.com/jesterworks/canopy/pkg/ports"
)

// Engine is the capability system driver. It owns the tree, advances it
// once per tick, and collects the resulting active-capability set.
//
// The engine is strictly single-threaded: no two ticks of the same tree may
// overlap, and queries are only valid between ticks on the same goroutine.
// Concurrency guarding is the facade's job.
type Engine struct {
	root   *Parallel
	leaves []*Leaf
	byName map[string]*Leaf

	owner      any
	actions    domain.ActionLookup
	prevention *aggregate.Prevention
	hooks      domain.LifecycleHooks
	recorder   ports.Recorder
	logger     *slog.Logger
	now        func() time.Time

	active    domain.ActiveSet
	wasActive map[string]bool
	elapsed   float64
	tickCount uint64

	// tickCtx is the std context of the in-flight tick, handed to hooks
	// fired from inside the evaluation pass.
	tickCtx context.Context
}

// EngineOption configures the engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) { e.hooks = hooks }
}

// WithPrevention injects a shared prevention aggregator. By default the
// engine owns a fresh one.
func WithPrevention(p *aggregate.Prevention) EngineOption {
	return func(e *Engine) {
		if p != nil {
			e.prevention = p
		}
	}
}

// WithActions wires the input action-state lookup exposed to predicates.
func WithActions(a domain.ActionLookup) EngineOption {
	return func(e *Engine) { e.actions = a }
}

// WithOwner sets the entity the system is attached to.
func WithOwner(owner any) EngineOption {
	return func(e *Engine) { e.owner = owner }
}

// WithRecorder wires a history sink receiving one snapshot per tick.
func WithRecorder(r ports.Recorder) EngineOption {
	return func(e *Engine) { e.recorder = r }
}

// WithClock overrides the wall-clock source used to stamp history
// snapshots. Tests inject a fixed clock for deterministic timestamps.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine builds the whole tree from the registry: one leaf per direct
// descriptor plus one combinator per sheet, all mounted under a single root
// parallel node. Construction is all-or-nothing; a malformed registry
// (duplicate or empty names, failing factory) aborts with an error, and a
// factory returning a nil capability panics, as that is a programming
// error by the tree's composer.
func NewEngine(registry ports.Registry, opts ...EngineOption) (*Engine, error) {
	if registry == nil {
		panic("runtime: nil registry")
	}

	e := &Engine{
		root:       NewParallel(""),
		byName:     make(map[string]*Leaf),
		wasActive:  make(map[string]bool),
		prevention: aggregate.NewPrevention(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	direct, sheets, err := registry.Descriptors()
	if err != nil {
		return nil, fmt.Errorf("failed to load capability registry: %w", err)
	}

	for _, desc := range direct {
		leaf, err := e.buildLeaf(registry, desc)
		if err != nil {
			return nil, err
		}
		e.root.Attach(leaf)
	}

	for _, sheet := range sheets {
		node, err := e.buildSheet(registry, sheet)
		if err != nil {
			return nil, err
		}
		e.root.Attach(node)
	}

	e.logger.Debug("capability tree built",
		"capabilities", len(e.leaves),
		"sheets", len(sheets))
	return e, nil
}

func (e *Engine) buildLeaf(registry ports.Registry, desc domain.Descriptor) (*Leaf, error) {
	if desc.Name == "" {
		return nil, fmt.Errorf("capability descriptor with empty name")
	}
	if _, exists := e.byName[desc.Name]; exists {
		return nil, fmt.Errorf("%w: %q", domain.ErrDuplicateCapability, desc.Name)
	}

	cap, err := registry.New(desc)
	if err != nil {
		return nil, fmt.Errorf("failed to instantiate capability %q: %w", desc.Name, err)
	}

	leaf := NewLeaf(desc, cap)
	leaf.blocked = e.notifyBlocked
	e.leaves = append(e.leaves, leaf)
	e.byName[desc.Name] = leaf
	return leaf, nil
}

func (e *Engine) buildSheet(registry ports.Registry, sheet domain.Sheet) (Node, error) {
	policy, err := domain.ParsePolicy(string(sheet.Policy))
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheet.Name, err)
	}

	attach := func(parent interface{ Attach(Node) }) (Node, error) {
		for _, desc := range sheet.Capabilities {
			leaf, err := e.buildLeaf(registry, desc)
			if err != nil {
				return nil, fmt.Errorf("sheet %q: %w", sheet.Name, err)
			}
			parent.Attach(leaf)
		}
		return parent.(Node), nil
	}

	switch policy {
	case domain.PolicySequence:
		return attach(NewSequence(sheet.Name))
	case domain.PolicyFirstValid:
		return attach(NewFirstValid(sheet.Name))
	case domain.PolicyStickyFirstValid:
		return attach(NewStatefulFirstValid(sheet.Name))
	default:
		return attach(NewParallel(sheet.Name))
	}
}

func (e *Engine) notifyBlocked(ctx *domain.EvalContext, desc domain.Descriptor) {
	if e.hooks.OnBlocked != nil {
		hookCtx := e.tickCtx
		if hookCtx == nil {
			hookCtx = context.Background()
		}
		e.hooks.OnBlocked(hookCtx, &domain.CapabilityEvent{
			Name: desc.Name,
			Tags: desc.Tags,
			Tick: ctx.Tick,
			Time: ctx.Time,
		})
	}
}

// Tick advances the tree by one evaluation pass, then runs TickActive on
// every capability in the new active set, in result order. The std context
// is handed to hooks and the recorder only; evaluation itself has no
// suspension point.
func (e *Engine) Tick(ctx context.Context, dt float64) {
	e.tickCount++
	e.elapsed += dt
	e.tickCtx = ctx
	defer func() { e.tickCtx = nil }()

	ectx := &domain.EvalContext{
		Owner:      e.owner,
		Actions:    e.actions,
		Prevention: e.prevention,
		Time:       e.elapsed,
		Delta:      dt,
		Tick:       e.tickCount,
	}

	if e.hooks.OnTickStart != nil {
		e.hooks.OnTickStart(ctx, &domain.TickEvent{Tick: e.tickCount, Time: e.elapsed, Delta: dt})
	}

	started := time.Now()
	result := e.root.UpdateActive(ectx)

	nowActive := make(map[string]bool, len(result))
	for _, a := range result {
		nowActive[a.Name] = true
		if !e.wasActive[a.Name] {
			e.emitTransition(ctx, e.hooks.OnActivated, a.Name, ectx)
		}
	}
	for name := range e.wasActive {
		if !nowActive[name] {
			e.emitTransition(ctx, e.hooks.OnDeactivated, name, ectx)
		}
	}
	e.wasActive = nowActive
	e.active = result

	// Phase two: tick every active capability after the whole tree has
	// been evaluated.
	for _, a := range result {
		a.Capability.TickActive(ectx, dt)
	}
	elapsed := time.Since(started)

	if e.hooks.OnTickEnd != nil {
		e.hooks.OnTickEnd(ctx, &domain.TickEvent{
			Tick:     e.tickCount,
			Time:     e.elapsed,
			Delta:    dt,
			Active:   result.Names(),
			Duration: elapsed,
		})
	}

	if e.recorder != nil {
		snap := domain.Snapshot{
			Tick:     e.tickCount,
			Time:     e.elapsed,
			Active:   result.Names(),
			Recorded: e.now().UTC(),
		}
		if err := e.recorder.Record(ctx, snap); err != nil {
			// History is best-effort; a failing sink must not stall the
			// gameplay tick.
			e.logger.Warn("history record failed", "tick", e.tickCount, "err", err)
		}
	}
}

func (e *Engine) emitTransition(ctx context.Context, hook func(context.Context, *domain.CapabilityEvent), name string, ectx *domain.EvalContext) {
	if hook == nil {
		return
	}
	tagSet := e.byName[name].Descriptor().Tags
	hook(ctx, &domain.CapabilityEvent{
		Name: name,
		Tags: tagSet,
		Tick: ectx.Tick,
		Time: ectx.Time,
	})
}

// Active returns the active set produced by the most recent tick.
func (e *Engine) Active() domain.ActiveSet {
	out := make(domain.ActiveSet, len(e.active))
	copy(out, e.active)
	return out
}

// IsEnabled reports whether the named capability is in the current active
// list. Linear scan; the list is small.
func (e *Engine) IsEnabled(name string) bool {
	return e.active.Contains(name)
}

// EnabledAt returns the enable-start time of a capability, -1 while
// disabled. The second return is false for unknown names.
func (e *Engine) EnabledAt(name string) (float64, bool) {
	leaf, ok := e.byName[name]
	if !ok {
		return -1, false
	}
	return leaf.EnabledAt(), true
}

// Prevention returns the driver-owned prevention aggregator. Gameplay
// systems mutate it between ticks to block or release capability tags.
func (e *Engine) Prevention() *aggregate.Prevention { return e.prevention }

// Inspect returns a read-only view of the whole tree.
func (e *Engine) Inspect() domain.NodeInfo { return e.root.Info() }

// Time returns elapsed driver time in seconds.
func (e *Engine) Time() float64 { return e.elapsed }

// TickCount returns the number of completed ticks.
func (e *Engine) TickCount() uint64 { return e.tickCount }
