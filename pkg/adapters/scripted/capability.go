// Package scripted provides a YAML-driven capability registry. Scripted
// capabilities activate on elapsed time, input actions, and cooldowns, and
// can shape a strength value with a scalable curve while active. They power
// the CLI simulator and serve as a reference implementation of the
// Capability contract.
package scripted

import (
	"github.com/jesterworks/canopy/pkg/curve"
	"github.com/jesterworks/canopy/pkg/domain"
)

// Params is the scripted behavior configuration, decoded from the
// descriptor's params map.
type Params struct {
	// EnableAfter delays eligibility until this much elapsed time (seconds).
	EnableAfter float64 `mapstructure:"enable_after" yaml:"enable_after"`
	// Duration disables the capability after it has been active this long.
	// Zero means no time limit.
	Duration float64 `mapstructure:"duration" yaml:"duration"`
	// Cooldown blocks re-activation for this long after a disable.
	Cooldown float64 `mapstructure:"cooldown" yaml:"cooldown"`
	// Action, when set, requires the named input action to be held.
	Action string `mapstructure:"action" yaml:"action"`
	// StrengthCurve shapes Strength() over active time.
	StrengthCurve *CurveSpec `mapstructure:"strength_curve" yaml:"strength_curve"`
}

// CurveSpec declares a scalable curve in configuration.
type CurveSpec struct {
	ScaleX float64     `mapstructure:"scale_x" yaml:"scale_x"`
	ScaleY float64     `mapstructure:"scale_y" yaml:"scale_y"`
	Keys   []curve.Key `mapstructure:"keys" yaml:"keys"`
}

func (cs *CurveSpec) build() *curve.Scalable {
	c := curve.FromKeys(cs.Keys...)
	if cs.ScaleX != 0 {
		c.ScaleX = cs.ScaleX
	}
	if cs.ScaleY != 0 {
		c.ScaleY = cs.ScaleY
	}
	return c
}

// Capability is a scripted behavior unit.
type Capability struct {
	params Params
	shape  *curve.Scalable

	enabledAt  float64
	disabledAt float64
	strength   float64
}

// NewCapability creates a scripted capability from params.
func NewCapability(params Params) *Capability {
	c := &Capability{params: params, enabledAt: -1, disabledAt: -1}
	if params.StrengthCurve != nil {
		c.shape = params.StrengthCurve.build()
	}
	return c
}

// ShouldEnable combines the time gate, the optional input action, and the
// cooldown window.
func (c *Capability) ShouldEnable(ctx *domain.EvalContext) bool {
	if ctx.Time < c.params.EnableAfter {
		return false
	}
	if c.params.Cooldown > 0 && c.disabledAt >= 0 && ctx.Time-c.disabledAt < c.params.Cooldown {
		return false
	}
	if c.params.Action != "" {
		if ctx.Actions == nil || !ctx.Actions.IsPressed(c.params.Action) {
			return false
		}
	}
	return true
}

// ShouldDisable stops on expired duration or a released action.
func (c *Capability) ShouldDisable(ctx *domain.EvalContext) bool {
	if c.params.Duration > 0 && ctx.Time-c.enabledAt >= c.params.Duration {
		return true
	}
	if c.params.Action != "" {
		if ctx.Actions == nil || !ctx.Actions.IsPressed(c.params.Action) {
			return true
		}
	}
	return false
}

func (c *Capability) OnEnable(ctx *domain.EvalContext) {
	c.enabledAt = ctx.Time
}

func (c *Capability) OnDisable(ctx *domain.EvalContext) {
	if ctx != nil {
		c.disabledAt = ctx.Time
	}
	c.strength = 0
}

// TickActive samples the strength curve at the capability's active time.
func (c *Capability) TickActive(ctx *domain.EvalContext, dt float64) {
	if c.shape == nil {
		c.strength = 1
		return
	}
	c.strength = c.shape.Evaluate(ctx.Time - c.enabledAt)
}

// Strength returns the current curve-shaped output, 0 while inactive.
func (c *Capability) Strength() float64 { return c.strength }
