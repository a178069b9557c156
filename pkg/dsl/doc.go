/*
Package dsl provides a Go DSL for programmatically constructing capability
registries.

It lets developers declare trees using a type-safe, fluent builder pattern
instead of external YAML sheets. This is particularly useful for dynamic
tree generation, unit testing, and leveraging IDE autocompletion and
type-checking.

Example usage:

	package main

	import (
		"github.com/jesterworks/canopy"
		"github.com/jesterworks/canopy/pkg/domain"
		"github.com/jesterworks/canopy/pkg/dsl"
	)

	func main() {
		b := dsl.New()

		b.Capability("heartbeat", &HeartbeatCapability{}).
			Tags("system.heartbeat")

		locomotion := b.Sheet("locomotion", domain.PolicyFirstValid)
		locomotion.Capability("sprint", &SprintCapability{}).
			Tags("movement.sprint")
		locomotion.Capability("walk", &WalkCapability{}).
			Tags("movement.walk")

		registry, err := b.Build()
		// ... pass registry to canopy.New(...)
	}
*/
package dsl
