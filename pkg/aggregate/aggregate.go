// Package aggregate provides reason-keyed value aggregators for gameplay
// state: a reference-counted prevention block list plus generic bool and
// float folds. Systems contribute values under a reason string and the
// aggregator resolves them to a single effective value.
package aggregate

// BoolPolicy decides how boolean contributions fold.
type BoolPolicy int

const (
	// BoolAny resolves true when at least one contribution is true.
	BoolAny BoolPolicy = iota
	// BoolAll resolves true only when every contribution is true.
	BoolAll
)

// Bool folds boolean contributions keyed by reason.
type Bool struct {
	policy   BoolPolicy
	fallback bool
	values   map[string]bool
}

// NewBool creates an aggregator. fallback is the value resolved when no
// contributions are present.
func NewBool(policy BoolPolicy, fallback bool) *Bool {
	return &Bool{policy: policy, fallback: fallback, values: make(map[string]bool)}
}

// Set registers or replaces a contribution.
func (b *Bool) Set(reason string, value bool) { b.values[reason] = value }

// Remove drops a contribution. Unknown reasons are ignored.
func (b *Bool) Remove(reason string) { delete(b.values, reason) }

// Resolve folds the contributions under the configured policy.
func (b *Bool) Resolve() bool {
	if len(b.values) == 0 {
		return b.fallback
	}
	switch b.policy {
	case BoolAll:
		for _, v := range b.values {
			if !v {
				return false
			}
		}
		return true
	default: // BoolAny
		for _, v := range b.values {
			if v {
				return true
			}
		}
		return false
	}
}

// Len returns the number of active contributions.
func (b *Bool) Len() int { return len(b.values) }

// FloatPolicy decides how float contributions fold.
type FloatPolicy int

const (
	FloatSum FloatPolicy = iota
	FloatMin
	FloatMax
	// FloatProduct multiplies contributions; useful for stacked multipliers.
	FloatProduct
)

// Float folds float contributions keyed by reason.
type Float struct {
	policy   FloatPolicy
	fallback float64
	values   map[string]float64
}

// NewFloat creates an aggregator. fallback is the value resolved when no
// contributions are present.
func NewFloat(policy FloatPolicy, fallback float64) *Float {
	return &Float{policy: policy, fallback: fallback, values: make(map[string]float64)}
}

// Set registers or replaces a contribution.
func (f *Float) Set(reason string, value float64) { f.values[reason] = value }

// Remove drops a contribution. Unknown reasons are ignored.
func (f *Float) Remove(reason string) { delete(f.values, reason) }

// Resolve folds the contributions under the configured policy.
func (f *Float) Resolve() float64 {
	if len(f.values) == 0 {
		return f.fallback
	}
	switch f.policy {
	case FloatMin:
		first := true
		var out float64
		for _, v := range f.values {
			if first || v < out {
				out = v
				first = false
			}
		}
		return out
	case FloatMax:
		first := true
		var out float64
		for _, v := range f.values {
			if first || v > out {
				out = v
				first = false
			}
		}
		return out
	case FloatProduct:
		out := 1.0
		for _, v := range f.values {
			out *= v
		}
		return out
	default: // FloatSum
		out := 0.0
		for _, v := range f.values {
			out += v
		}
		return out
	}
}

// Len returns the number of active contributions.
func (f *Float) Len() int { return len(f.values) }
