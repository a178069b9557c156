package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jesterworks/canopy"
)

// SimOptions configures the offline simulation loop.
type SimOptions struct {
	Ticks    int
	Delta    float64
	Headless bool
}

// RunSimulation assembles a system and drives it for a fixed number of
// ticks, writing the activation trace to stdout. SIGINT or SIGTERM stops
// the loop early.
func RunSimulation(opts Options, sim SimOptions) error {
	build, err := NewSystem(opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := &canopy.Runner{
		Output:   os.Stdout,
		Delta:    sim.Delta,
		Ticks:    sim.Ticks,
		Headless: sim.Headless,
		Actions:  build.Actions,
	}
	if err := runner.Run(ctx, build.System); err != nil {
		if ctx.Err() != nil {
			// Interrupted by the user; not a failure.
			return nil
		}
		return err
	}
	return nil
}
