package canopy_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jesterworks/canopy"
	"github.com/jesterworks/canopy/pkg/adapters/memory"
	"github.com/jesterworks/canopy/pkg/adapters/scripted"
	"github.com/jesterworks/canopy/pkg/domain"
	"github.com/jesterworks/canopy/pkg/input"
)

const locomotionSheet = `
sheets:
  - name: locomotion
    policy: first_valid
    capabilities:
      - name: sprint
        tags: [movement.sprint]
        params:
          action: sprint
      - name: walk
        tags: [movement.walk]
`

func newLocomotionSystem(t *testing.T, opts ...canopy.Option) (*canopy.System, *input.States) {
	t.Helper()
	registry, err := scripted.Parse([]byte(locomotionSheet))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	actions := input.NewStates()
	sys, err := canopy.New(registry, append([]canopy.Option{canopy.WithActions(actions)}, opts...)...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return sys, actions
}

func TestSystem_FirstValidSwitching(t *testing.T) {
	sys, actions := newLocomotionSystem(t)
	ctx := context.Background()

	sys.Tick(ctx, 0.1)
	if got := sys.Active(); len(got) != 1 || got[0] != "walk" {
		t.Fatalf("expected walk active, got %v", got)
	}

	actions.Press("sprint")
	sys.Tick(ctx, 0.1)
	if !sys.IsEnabled("sprint") || sys.IsEnabled("walk") {
		t.Fatalf("expected sprint to preempt walk, got %v", sys.Active())
	}

	actions.Release("sprint")
	sys.Tick(ctx, 0.1)
	if !sys.IsEnabled("walk") {
		t.Fatalf("expected walk to take over, got %v", sys.Active())
	}

	if sys.TickCount() != 3 {
		t.Errorf("expected 3 ticks, got %d", sys.TickCount())
	}
}

func TestSystem_BlockLifecycle(t *testing.T) {
	sys, _ := newLocomotionSystem(t)
	ctx := context.Background()

	// A parent tag blocks activation of every descendant. Blocks gate
	// activation only; capabilities already active keep running.
	sys.Block("stunned", "movement")
	sys.Tick(ctx, 0.1)
	if got := sys.Active(); len(got) != 0 {
		t.Fatalf("expected nothing active while blocked, got %v", got)
	}

	blocks := sys.Blocks()
	if got := blocks["stunned"]; len(got) != 1 || got[0] != "movement" {
		t.Errorf("unexpected block list: %v", blocks)
	}
	if got := sys.BlockedTags(); len(got) != 1 || got[0] != "movement" {
		t.Errorf("unexpected blocked tags: %v", got)
	}

	sys.Unblock("stunned")
	sys.Tick(ctx, 0.1)
	if !sys.IsEnabled("walk") {
		t.Fatal("expected walk to recover after unblock")
	}
}

func TestSystem_HooksAndRecorder(t *testing.T) {
	rec := memory.NewRecorder(8)
	var activated []string
	hooks := domain.LifecycleHooks{
		OnActivated: func(_ context.Context, e *domain.CapabilityEvent) {
			activated = append(activated, e.Name)
		},
	}

	fixed := time.Unix(1700000000, 0)
	sys, actions := newLocomotionSystem(t,
		canopy.WithRecorder(rec),
		canopy.WithLifecycleHooks(hooks),
		canopy.WithClock(func() time.Time { return fixed }))
	ctx := context.Background()

	sys.Tick(ctx, 0.1)
	actions.Press("sprint")
	sys.Tick(ctx, 0.1)

	if len(activated) != 2 || activated[0] != "walk" || activated[1] != "sprint" {
		t.Errorf("unexpected activation order: %v", activated)
	}

	snaps, err := rec.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(snaps) != 2 || snaps[0].Tick != 2 {
		t.Fatalf("expected 2 snapshots newest first, got %+v", snaps)
	}
	if len(snaps[0].Active) != 1 || snaps[0].Active[0] != "sprint" {
		t.Errorf("unexpected recorded active set: %v", snaps[0].Active)
	}
	if !snaps[0].Recorded.Equal(fixed) {
		t.Errorf("expected injected clock timestamp, got %v", snaps[0].Recorded)
	}
}

func TestSystem_EnabledAt(t *testing.T) {
	sys, _ := newLocomotionSystem(t)
	ctx := context.Background()

	if at, ok := sys.EnabledAt("walk"); !ok || at != -1 {
		t.Fatalf("expected -1 before first tick, got %v %v", at, ok)
	}
	sys.Tick(ctx, 0.5)
	if at, ok := sys.EnabledAt("walk"); !ok || at != 0.5 {
		t.Fatalf("expected enable time 0.5, got %v %v", at, ok)
	}
	if _, ok := sys.EnabledAt("fly"); ok {
		t.Error("expected unknown name to report !ok")
	}
}

func TestRunner(t *testing.T) {
	sys, actions := newLocomotionSystem(t)

	var buf bytes.Buffer
	runner := &canopy.Runner{
		Output:   &buf,
		Delta:    0.1,
		Ticks:    5,
		Headless: true,
		Actions:  actions,
		Script: func(tick uint64, a *input.States) {
			if tick == 3 {
				a.Press("sprint")
			}
			if tick == 5 {
				a.Release("sprint")
			}
		},
	}

	if err := runner.Run(context.Background(), sys); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"active: walk",
		"active: sprint",
		"simulated 0.5s over 5 ticks",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("runner output missing %q:\n%s", want, out)
		}
	}
	if sys.TickCount() != 5 {
		t.Errorf("expected 5 ticks, got %d", sys.TickCount())
	}
}

func TestRunner_RequiresOutput(t *testing.T) {
	sys, _ := newLocomotionSystem(t)
	runner := &canopy.Runner{}
	if err := runner.Run(context.Background(), sys); err == nil {
		t.Fatal("expected error for missing output writer")
	}
}
