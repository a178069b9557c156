/*
Package canopy is a tick-driven capability system: a tree of small,
self-deciding behavior units ("capabilities") evaluated once per frame to
produce the set that is allowed to run.

It follows a "two-phase tick" architecture: first the whole tree is
evaluated to settle the active set, then every surviving capability is
ticked with the frame's delta time. Combinator nodes decide how their
children compete: in parallel, as an ordered sequence, or first-valid-wins
with or without stickiness.

# Key Features

  - Deterministic Evaluation: child order is declaration order, and the
    active set is reproducible for the same inputs.
  - Hexagonal Architecture: the core tree is decoupled from adapters
    (registries, history stores, debug surfaces).
  - Tag-Based Prevention: a reason-keyed block list refuses activations by
    hierarchical gameplay tag, without touching capability code.
  - Introspection: the tree, active set, and tick history are observable
    through hooks, Prometheus collectors, and a debug HTTP surface.

# Usage

Declare capabilities through a registry and drive the system from your
game loop:

	package main

	import (
		"context"
		"log"
		"os"

		"github.com/jesterworks/canopy"
		"github.com/jesterworks/canopy/pkg/adapters/scripted"
	)

	func main() {
		// Load capability sheets from YAML.
		registry, err := scripted.Load("./sheets/player.yaml")
		if err != nil {
			log.Fatal(err)
		}

		sys, err := canopy.New(registry)
		if err != nil {
			log.Fatal(err)
		}

		// Main loop: one Tick per frame.
		runner := &canopy.Runner{Output: os.Stdout, Ticks: 300}
		if err := runner.Run(context.Background(), sys); err != nil {
			log.Fatal(err)
		}
	}
*/
package canopy
