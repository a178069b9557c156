package domain

import (
	"fmt"

	"github.com/jesterworks/canopy/pkg/tags"
)

// Descriptor declares one capability to instantiate at tree build time.
type Descriptor struct {
	// Name uniquely identifies the capability within a system.
	Name string `json:"name" yaml:"name" mapstructure:"name"`

	// Tags classify the capability; the prevention aggregator matches
	// against this set before activation is allowed.
	Tags tags.Container `json:"tags,omitempty" yaml:"tags,omitempty" mapstructure:"tags"`

	// Params carries factory-specific configuration. The engine never
	// interprets it.
	Params map[string]any `json:"params,omitempty" yaml:"params,omitempty" mapstructure:"params"`
}

// Policy selects the combinator a sheet's capabilities are grouped under.
type Policy string

const (
	// PolicyParallel evaluates every member each tick; any may be active.
	PolicyParallel Policy = "parallel"
	// PolicySequence runs members as ordered steps with same-tick fall-through.
	PolicySequence Policy = "sequence"
	// PolicyFirstValid rescans from the top each tick; lowest index wins.
	PolicyFirstValid Policy = "first_valid"
	// PolicyStickyFirstValid holds the current member until it disables,
	// only then rescanning from the top.
	PolicyStickyFirstValid Policy = "sticky_first_valid"
)

// ParsePolicy validates a raw policy string.
func ParsePolicy(raw string) (Policy, error) {
	switch Policy(raw) {
	case PolicyParallel, PolicySequence, PolicyFirstValid, PolicyStickyFirstValid:
		return Policy(raw), nil
	case "":
		// Sheets without an explicit policy behave like the root: parallel.
		return PolicyParallel, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, raw)
	}
}

// Sheet groups capabilities under a shared combinator policy. The build
// phase mounts one composite node per sheet beneath the root parallel node.
type Sheet struct {
	Name         string       `json:"name" yaml:"name" mapstructure:"name"`
	Policy       Policy       `json:"policy,omitempty" yaml:"policy,omitempty" mapstructure:"policy"`
	Capabilities []Descriptor `json:"capabilities" yaml:"capabilities" mapstructure:"capabilities"`
}
