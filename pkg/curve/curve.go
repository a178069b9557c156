// Package curve implements a scalable runtime float curve: a normalized
// keyed curve that can be stretched on both axes, useful for authoring a
// 0..1 shape once and scaling it to the desired range at runtime.
package curve

import "sort"

// Key is one curve control point.
type Key struct {
	Time  float64 `json:"time" yaml:"time" mapstructure:"time"`
	Value float64 `json:"value" yaml:"value" mapstructure:"value"`
}

// Scalable is a piecewise-linear curve with axis scaling. Evaluation maps
// the query time into normalized space (t / ScaleX), samples the curve,
// and scales the result by ScaleY. The zero value has no keys and
// evaluates to 0; callers should set both scales to 1 via New or
// explicitly.
type Scalable struct {
	keys   []Key // sorted by Time, unique
	ScaleX float64
	ScaleY float64
}

// New creates an empty curve with identity scaling.
func New() *Scalable {
	return &Scalable{ScaleX: 1, ScaleY: 1}
}

// FromKeys creates a curve with identity scaling from the given keys.
func FromKeys(keys ...Key) *Scalable {
	c := New()
	for _, k := range keys {
		c.AddKey(k.Time, k.Value)
	}
	return c
}

// HasKeys reports whether the curve has any control points.
func (c *Scalable) HasKeys() bool { return len(c.keys) > 0 }

// AddKey inserts a control point in normalized space, replacing any
// existing key at the same time.
func (c *Scalable) AddKey(t, v float64) {
	i := sort.Search(len(c.keys), func(i int) bool { return c.keys[i].Time >= t })
	if i < len(c.keys) && c.keys[i].Time == t {
		c.keys[i].Value = v
		return
	}
	c.keys = append(c.keys, Key{})
	copy(c.keys[i+1:], c.keys[i:])
	c.keys[i] = Key{Time: t, Value: v}
}

// Evaluate samples the curve at the given (scaled) time. Queries before
// the first key or after the last clamp to the end values. A curve with no
// keys evaluates to 0.
func (c *Scalable) Evaluate(t float64) float64 {
	if len(c.keys) == 0 {
		return 0
	}
	sx := c.ScaleX
	if sx == 0 {
		sx = 1
	}
	nt := t / sx

	if nt <= c.keys[0].Time {
		return c.keys[0].Value * c.ScaleY
	}
	last := c.keys[len(c.keys)-1]
	if nt >= last.Time {
		return last.Value * c.ScaleY
	}

	i := sort.Search(len(c.keys), func(i int) bool { return c.keys[i].Time >= nt })
	lo, hi := c.keys[i-1], c.keys[i]
	frac := (nt - lo.Time) / (hi.Time - lo.Time)
	return (lo.Value + (hi.Value-lo.Value)*frac) * c.ScaleY
}

// TimeRange returns the scaled end time of the curve and its value there.
// Both are 0 for an empty curve.
func (c *Scalable) TimeRange() (endTime, endValue float64) {
	if len(c.keys) == 0 {
		return 0, 0
	}
	last := c.keys[len(c.keys)-1]
	return last.Time * c.ScaleX, last.Value * c.ScaleY
}

// Keys returns a copy of the control points in normalized space.
func (c *Scalable) Keys() []Key {
	out := make([]Key, len(c.keys))
	copy(out, c.keys)
	return out
}
