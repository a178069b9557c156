package canopy

import (
	"context"
	"fmt"
	"io"

	"github.com/jesterworks/canopy/internal/presentation/tui"
	"github.com/jesterworks/canopy/pkg/domain"
	"github.com/jesterworks/canopy/pkg/input"
)

// DefaultDelta is the fixed timestep used when none is configured.
const DefaultDelta = 1.0 / 30

// Runner drives a system with a fixed timestep and writes a live trace of
// activations to the provided output. This allows easy testing and
// integration with different frontends (CLI, TUI, etc).
type Runner struct {
	Output   io.Writer
	Delta    float64
	Ticks    int
	Headless bool

	// Actions, when set, is handed its end-of-tick edge reset after every
	// tick.
	Actions *input.States
	// Script, when set, runs before each tick to inject input for the
	// tick about to happen.
	Script func(tick uint64, actions *input.States)
}

// Run executes the configured number of ticks against the system.
func (r *Runner) Run(ctx context.Context, sys *System) error {
	if r.Output == nil {
		return fmt.Errorf("output writer must be set (use os.Stdout)")
	}
	dt := r.Delta
	if dt <= 0 {
		dt = DefaultDelta
	}
	ticks := r.Ticks
	if ticks <= 0 {
		ticks = 1
	}

	if !r.Headless {
		tui.PrintBanner(r.Output, Version)
	}
	tracer := tui.NewTracer(r.Output)

	var prev []string
	for i := 0; i < ticks; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if r.Script != nil {
			r.Script(sys.TickCount()+1, r.Actions)
		}

		sys.Tick(ctx, dt)
		if r.Actions != nil {
			r.Actions.EndTick()
		}

		active := sys.Active()
		now := make(map[string]bool, len(active))
		for _, name := range active {
			now[name] = true
		}
		was := make(map[string]bool, len(prev))
		for _, name := range prev {
			was[name] = true
		}

		for _, name := range active {
			if !was[name] {
				tracer.Activated(&domain.CapabilityEvent{Name: name, Tick: sys.TickCount(), Time: sys.Time()})
			}
		}
		for _, name := range prev {
			if !now[name] {
				tracer.Deactivated(&domain.CapabilityEvent{Name: name, Tick: sys.TickCount(), Time: sys.Time()})
			}
		}
		tracer.TickLine(&domain.TickEvent{
			Tick:   sys.TickCount(),
			Time:   sys.Time(),
			Delta:  dt,
			Active: active,
		})
		prev = active
	}

	fmt.Fprintf(r.Output, "\nsimulated %s over %d ticks\n", tui.FormatDuration(sys.Time()), ticks)
	return nil
}
