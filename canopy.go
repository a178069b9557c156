package canopy

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/jesterworks/canopy/internal/runtime"
	"github.com/jesterworks/canopy/pkg/aggregate"
	"github.com/jesterworks/canopy/pkg/domain"
	"github.com/jesterworks/canopy/pkg/ports"
	"github.com/jesterworks/canopy/pkg/tags"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// System is the high-level entry point for the canopy library. It wraps the
// internal runtime behind a mutex so debug surfaces (HTTP, CLI) can query
// and mutate the block list while the owner drives ticks.
type System struct {
	mu     sync.Mutex
	engine *runtime.Engine

	prevention *aggregate.Prevention
	hooks      []domain.LifecycleHooks
	recorder   ports.Recorder
	actions    domain.ActionLookup
	owner      any
	logger     *slog.Logger
	clock      func() time.Time
	Name       string
}

// Option defines a functional option for configuring the System.
type Option func(*System)

// WithName sets a descriptive label used in logs.
func WithName(name string) Option {
	return func(s *System) { s.Name = name }
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *System) { s.logger = logger }
}

// WithLifecycleHooks registers observability hooks. May be given multiple
// times; hook sets fire in registration order.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *System) { s.hooks = append(s.hooks, hooks) }
}

// WithRecorder wires a history sink receiving one snapshot per tick.
func WithRecorder(rec ports.Recorder) Option {
	return func(s *System) { s.recorder = rec }
}

// WithActions wires the input action-state lookup exposed to capability
// predicates.
func WithActions(actions domain.ActionLookup) Option {
	return func(s *System) { s.actions = actions }
}

// WithOwner sets the entity the system is attached to. Capabilities receive
// it through the evaluation context.
func WithOwner(owner any) Option {
	return func(s *System) { s.owner = owner }
}

// WithClock overrides the wall-clock source stamping history snapshots.
// Tests inject a fixed clock for deterministic timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *System) { s.clock = now }
}

// WithPrevention injects a shared prevention aggregator, letting several
// systems honor one block list.
func WithPrevention(p *aggregate.Prevention) Option {
	return func(s *System) {
		if p != nil {
			s.prevention = p
		}
	}
}

// New builds a capability system from the registry. The whole tree is
// constructed up front; a malformed registry aborts with an error.
func New(registry ports.Registry, opts ...Option) (*System, error) {
	s := &System{prevention: aggregate.NewPrevention()}
	for _, opt := range opts {
		opt(s)
	}

	// Don't pass nil to the runtime, which would overwrite its default.
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if s.Name != "" {
		s.logger = s.logger.With("system", s.Name)
	}

	engineOpts := []runtime.EngineOption{
		runtime.WithLogger(s.logger),
		runtime.WithPrevention(s.prevention),
		runtime.WithLifecycleHooks(domain.MergeHooks(s.hooks...)),
	}
	if s.recorder != nil {
		engineOpts = append(engineOpts, runtime.WithRecorder(s.recorder))
	}
	if s.actions != nil {
		engineOpts = append(engineOpts, runtime.WithActions(s.actions))
	}
	if s.owner != nil {
		engineOpts = append(engineOpts, runtime.WithOwner(s.owner))
	}
	if s.clock != nil {
		engineOpts = append(engineOpts, runtime.WithClock(s.clock))
	}

	engine, err := runtime.NewEngine(registry, engineOpts...)
	if err != nil {
		return nil, err
	}
	s.engine = engine
	return s, nil
}

// Tick advances the system by one evaluation pass with the given delta
// time in seconds. Ticks must come from a single goroutine.
func (s *System) Tick(ctx context.Context, dt float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.Tick(ctx, dt)
}

// Active returns the names of the capabilities active after the most
// recent tick, in evaluation order.
func (s *System) Active() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Active().Names()
}

// IsEnabled reports whether the named capability is currently active.
func (s *System) IsEnabled(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.IsEnabled(name)
}

// EnabledAt returns the enable-start time of a capability, -1 while
// disabled. The second return is false for unknown names.
func (s *System) EnabledAt(name string) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.EnabledAt(name)
}

// Inspect returns a read-only view of the whole tree for visualization or
// introspection tools.
func (s *System) Inspect() domain.NodeInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Inspect()
}

// Time returns elapsed system time in seconds.
func (s *System) Time() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Time()
}

// TickCount returns the number of completed ticks.
func (s *System) TickCount() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.TickCount()
}

// Block registers blocked tags under the given reason. Capabilities whose
// tag set matches a blocked tag are refused activation on later ticks.
func (s *System) Block(reason string, blocked ...tags.Tag) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prevention.Block(reason, blocked...)
}

// Unblock removes every tag held by the given reason.
func (s *System) Unblock(reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prevention.Unblock(reason)
}

// Blocks returns the current block list keyed by reason.
func (s *System) Blocks() map[string][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string][]string)
	for _, reason := range s.prevention.Reasons() {
		set, _ := s.prevention.ReasonTags(reason)
		out[reason] = set.Strings()
	}
	return out
}

// BlockedTags returns the flattened set of currently blocked tags, sorted.
func (s *System) BlockedTags() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prevention.BlockedTags().Strings()
}

// Prevention returns the underlying aggregator. Unlike the Block and
// Unblock methods, direct access is not serialized against ticking.
func (s *System) Prevention() *aggregate.Prevention { return s.prevention }
