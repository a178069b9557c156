package runtime

import (
	"context"
	"fmt"
	"testing"

	"github.com/jesterworks/canopy/pkg/domain"
	"github.com/jesterworks/canopy/pkg/tags"
)

type fakeRegistry struct {
	direct []domain.Descriptor
	sheets []domain.Sheet
	caps   map[string]domain.Capability
	err    error
}

func (r *fakeRegistry) Descriptors() ([]domain.Descriptor, []domain.Sheet, error) {
	return r.direct, r.sheets, r.err
}

func (r *fakeRegistry) New(desc domain.Descriptor) (domain.Capability, error) {
	c, ok := r.caps[desc.Name]
	if !ok {
		return nil, fmt.Errorf("no capability registered for %q", desc.Name)
	}
	return c, nil
}

func desc(name string, capTags ...string) domain.Descriptor {
	d := domain.Descriptor{Name: name}
	for _, t := range capTags {
		d.Tags = append(d.Tags, tags.Tag(t))
	}
	return d
}

func TestEngine_ScenarioA_SequenceFallThrough(t *testing.T) {
	capA := &testCap{}
	capA.disableFn = func(*domain.EvalContext) bool { return capA.ticks >= 1 }
	capB := &testCap{}

	reg := &fakeRegistry{
		sheets: []domain.Sheet{{
			Name:         "combo",
			Policy:       domain.PolicySequence,
			Capabilities: []domain.Descriptor{desc("capA"), desc("capB")},
		}},
		caps: map[string]domain.Capability{"capA": capA, "capB": capB},
	}

	e, err := NewEngine(reg)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	ctx := context.Background()

	e.Tick(ctx, 0.016)
	if names := e.Active().Names(); len(names) != 1 || names[0] != "capA" {
		t.Fatalf("tick 1: expected [capA], got %v", names)
	}

	e.Tick(ctx, 0.016)
	names := e.Active().Names()
	if len(names) != 1 || names[0] != "capB" {
		t.Fatalf("tick 2: expected capA to disable and capB to activate same tick, got %v", names)
	}
	if capA.disables != 1 {
		t.Errorf("capA should have disabled exactly once, got %d", capA.disables)
	}
}

func TestEngine_ScenarioB_FirstValidSwitch(t *testing.T) {
	capA := &testCap{}
	capA.disableFn = func(ctx *domain.EvalContext) bool { return ctx.Tick >= 2 }
	capB := &testCap{}

	reg := &fakeRegistry{
		sheets: []domain.Sheet{{
			Name:         "stances",
			Policy:       domain.PolicyFirstValid,
			Capabilities: []domain.Descriptor{desc("capA"), desc("capB")},
		}},
		caps: map[string]domain.Capability{"capA": capA, "capB": capB},
	}

	e, err := NewEngine(reg)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	ctx := context.Background()

	e.Tick(ctx, 0.016)
	if !e.IsEnabled("capA") || e.IsEnabled("capB") {
		t.Fatalf("tick 1: lower index must win, got %v", e.Active().Names())
	}

	e.Tick(ctx, 0.016)
	if e.IsEnabled("capA") || !e.IsEnabled("capB") {
		t.Fatalf("tick 2: expected switch to capB, got %v", e.Active().Names())
	}
	if capA.disables != 1 {
		t.Errorf("capA should have been disabled once, got %d", capA.disables)
	}
}

func TestEngine_ScenarioC_ParallelStability(t *testing.T) {
	capA := &testCap{}
	capB := &testCap{}
	reg := &fakeRegistry{
		direct: []domain.Descriptor{desc("capA"), desc("capB")},
		caps:   map[string]domain.Capability{"capA": capA, "capB": capB},
	}

	e, err := NewEngine(reg)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	ctx := context.Background()

	for i := 0; i < 100; i++ {
		e.Tick(ctx, 0.016)
		names := e.Active().Names()
		if len(names) != 2 || names[0] != "capA" || names[1] != "capB" {
			t.Fatalf("tick %d: expected [capA capB] in insertion order, got %v", i+1, names)
		}
	}
	if capA.ticks != 100 || capB.ticks != 100 {
		t.Errorf("expected 100 TickActive calls each, got %d and %d", capA.ticks, capB.ticks)
	}
	if capA.enables != 1 || capB.enables != 1 {
		t.Errorf("capabilities must enable once, got %d and %d", capA.enables, capB.enables)
	}
}

func TestEngine_ScenarioD_PreventionBlocksActivation(t *testing.T) {
	capA := &testCap{}
	reg := &fakeRegistry{
		direct: []domain.Descriptor{desc("capA", "movement.sprint")},
		caps:   map[string]domain.Capability{"capA": capA},
	}

	e, err := NewEngine(reg)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	ctx := context.Background()

	e.Prevention().Block("cutscene", "movement")
	for i := 0; i < 5; i++ {
		e.Tick(ctx, 0.016)
		if e.IsEnabled("capA") {
			t.Fatalf("tick %d: capA must stay blocked", i+1)
		}
	}
	if capA.enables != 0 {
		t.Errorf("OnEnable must not run while blocked, got %d", capA.enables)
	}

	e.Prevention().Unblock("cutscene")
	e.Tick(ctx, 0.016)
	if !e.IsEnabled("capA") {
		t.Error("capA should activate on the first tick after the block is removed")
	}
}

func TestEngine_TwoPhaseTicking(t *testing.T) {
	// TickActive must run only after the whole tree has been evaluated:
	// capB observes capA's state from the same pass, not the previous one.
	var orderedCalls []string
	capA := &testCap{}
	capB := &testCap{}

	hooks := domain.LifecycleHooks{
		OnActivated: func(_ context.Context, ev *domain.CapabilityEvent) {
			orderedCalls = append(orderedCalls, "activate:"+ev.Name)
		},
	}

	reg := &fakeRegistry{
		direct: []domain.Descriptor{desc("capA"), desc("capB")},
		caps:   map[string]domain.Capability{"capA": capA, "capB": capB},
	}
	e, err := NewEngine(reg, WithLifecycleHooks(hooks))
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	e.Tick(context.Background(), 0.016)
	if len(orderedCalls) != 2 || orderedCalls[0] != "activate:capA" || orderedCalls[1] != "activate:capB" {
		t.Errorf("expected activation events in result order, got %v", orderedCalls)
	}
	if capA.ticks != 1 || capB.ticks != 1 {
		t.Errorf("both active capabilities must receive exactly one TickActive, got %d and %d", capA.ticks, capB.ticks)
	}
}

func TestEngine_LifecycleHooks(t *testing.T) {
	var activated, deactivated, blocked []string

	capA := &testCap{}
	capA.disableFn = func(ctx *domain.EvalContext) bool { return ctx.Tick >= 2 }

	reg := &fakeRegistry{
		direct: []domain.Descriptor{desc("capA", "combat.attack")},
		caps:   map[string]domain.Capability{"capA": capA},
	}

	e, err := NewEngine(reg, WithLifecycleHooks(domain.LifecycleHooks{
		OnActivated: func(_ context.Context, ev *domain.CapabilityEvent) {
			activated = append(activated, ev.Name)
		},
		OnDeactivated: func(_ context.Context, ev *domain.CapabilityEvent) {
			deactivated = append(deactivated, ev.Name)
		},
		OnBlocked: func(_ context.Context, ev *domain.CapabilityEvent) {
			blocked = append(blocked, ev.Name)
		},
	}))
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	ctx := context.Background()

	e.Tick(ctx, 0.016)
	e.Tick(ctx, 0.016)
	if len(activated) != 1 || activated[0] != "capA" {
		t.Errorf("expected one activation event, got %v", activated)
	}
	if len(deactivated) != 1 || deactivated[0] != "capA" {
		t.Errorf("expected one deactivation event, got %v", deactivated)
	}

	e.Prevention().Block("stunned", "combat")
	e.Tick(ctx, 0.016)
	if len(blocked) != 1 || blocked[0] != "capA" {
		t.Errorf("expected one blocked event, got %v", blocked)
	}
}

func TestEngine_EnabledAtTracksContextTime(t *testing.T) {
	capA := &testCap{}
	reg := &fakeRegistry{
		direct: []domain.Descriptor{desc("capA")},
		caps:   map[string]domain.Capability{"capA": capA},
	}
	e, err := NewEngine(reg)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	if at, ok := e.EnabledAt("capA"); !ok || at != -1 {
		t.Errorf("before first tick: expected (-1, true), got (%v, %v)", at, ok)
	}

	e.Tick(context.Background(), 0.5)
	if at, ok := e.EnabledAt("capA"); !ok || at != 0.5 {
		t.Errorf("expected enable time 0.5, got %v (ok=%v)", at, ok)
	}

	if _, ok := e.EnabledAt("nope"); ok {
		t.Error("unknown capability must report ok=false")
	}
}

func TestEngine_BuildErrors(t *testing.T) {
	t.Run("duplicate name", func(t *testing.T) {
		reg := &fakeRegistry{
			direct: []domain.Descriptor{desc("a"), desc("a")},
			caps:   map[string]domain.Capability{"a": &testCap{}},
		}
		if _, err := NewEngine(reg); err == nil {
			t.Error("expected duplicate-name error")
		}
	})

	t.Run("empty name", func(t *testing.T) {
		reg := &fakeRegistry{
			direct: []domain.Descriptor{{}},
			caps:   map[string]domain.Capability{},
		}
		if _, err := NewEngine(reg); err == nil {
			t.Error("expected empty-name error")
		}
	})

	t.Run("factory failure", func(t *testing.T) {
		reg := &fakeRegistry{
			direct: []domain.Descriptor{desc("ghost")},
			caps:   map[string]domain.Capability{},
		}
		if _, err := NewEngine(reg); err == nil {
			t.Error("expected instantiation error")
		}
	})

	t.Run("bad sheet policy", func(t *testing.T) {
		reg := &fakeRegistry{
			sheets: []domain.Sheet{{Name: "s", Policy: "round_robin"}},
			caps:   map[string]domain.Capability{},
		}
		if _, err := NewEngine(reg); err == nil {
			t.Error("expected unknown-policy error")
		}
	})

	t.Run("registry failure", func(t *testing.T) {
		reg := &fakeRegistry{err: fmt.Errorf("boom")}
		if _, err := NewEngine(reg); err == nil {
			t.Error("expected registry error")
		}
	})
}

func TestEngine_InspectReflectsStructure(t *testing.T) {
	reg := &fakeRegistry{
		direct: []domain.Descriptor{desc("solo")},
		sheets: []domain.Sheet{
			{Name: "combo", Policy: domain.PolicySequence, Capabilities: []domain.Descriptor{desc("a"), desc("b")}},
			{Name: "stances", Policy: domain.PolicyStickyFirstValid, Capabilities: []domain.Descriptor{desc("c")}},
		},
		caps: map[string]domain.Capability{
			"solo": &testCap{}, "a": &testCap{}, "b": &testCap{}, "c": &testCap{},
		},
	}

	e, err := NewEngine(reg)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	info := e.Inspect()
	if info.Kind != domain.KindParallel {
		t.Fatalf("root must be parallel, got %s", info.Kind)
	}
	if len(info.Children) != 3 {
		t.Fatalf("expected 3 root children, got %d", len(info.Children))
	}
	if info.Children[0].Kind != domain.KindCapability || info.Children[0].Name != "solo" {
		t.Errorf("child 0: expected capability 'solo', got %+v", info.Children[0])
	}
	if info.Children[1].Kind != domain.KindSequence || len(info.Children[1].Children) != 2 {
		t.Errorf("child 1: expected sequence with 2 children, got %+v", info.Children[1])
	}
	if info.Children[2].Kind != domain.KindStickyFirstValid {
		t.Errorf("child 2: expected sticky first-valid, got %+v", info.Children[2])
	}
}
