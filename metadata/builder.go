package metadata

import (
	"fmt"
	"math"
	"strings"
)

// FilterBuilder assembles a Filter step by step.
//
// Range calls on the same key fold into a single NumberRange: a later call on
// the same side overwrites that side, the other side is preserved. All
// validation happens once in Build; a contradictory range (min greater than
// max, or equal bounds with either side exclusive) is a hard construction
// error rather than a filter that silently matches nothing.
type FilterBuilder struct {
	equals map[string]Value
	in     map[string][]Value
	ranges map[string]NumberRange
	err    error
}

// NewFilterBuilder creates a new filter builder.
func NewFilterBuilder() *FilterBuilder {
	return &FilterBuilder{
		equals: make(map[string]Value),
		in:     make(map[string][]Value),
		ranges: make(map[string]NumberRange),
	}
}

// WhereEquals requires key to map to exactly value. The value may be Null();
// a document lacking the key does not match even then.
func (b *FilterBuilder) WhereEquals(key string, value Value) *FilterBuilder {
	if !b.validKey(key) {
		return b
	}
	b.equals[key] = value
	return b
}

// WhereIn requires key to map to one of the candidate values.
// The candidate list must not be empty.
func (b *FilterBuilder) WhereIn(key string, candidates ...Value) *FilterBuilder {
	if !b.validKey(key) {
		return b
	}
	if len(candidates) == 0 {
		b.fail(fmt.Errorf("metadata filter: candidates for key %q must not be empty", key))
		return b
	}
	values := make([]Value, len(candidates))
	copy(values, candidates)
	b.in[key] = values
	return b
}

// WhereGreaterThan requires key to map to a number strictly above min.
func (b *FilterBuilder) WhereGreaterThan(key string, min float64) *FilterBuilder {
	return b.applyMin(key, min, false)
}

// WhereGreaterThanOrEqual requires key to map to a number at or above min.
func (b *FilterBuilder) WhereGreaterThanOrEqual(key string, min float64) *FilterBuilder {
	return b.applyMin(key, min, true)
}

// WhereLessThan requires key to map to a number strictly below max.
func (b *FilterBuilder) WhereLessThan(key string, max float64) *FilterBuilder {
	return b.applyMax(key, max, false)
}

// WhereLessThanOrEqual requires key to map to a number at or below max.
func (b *FilterBuilder) WhereLessThanOrEqual(key string, max float64) *FilterBuilder {
	return b.applyMax(key, max, true)
}

// Build validates the accumulated constraints and returns the immutable
// Filter. The builder can be discarded afterwards.
func (b *FilterBuilder) Build() (*Filter, error) {
	if b.err != nil {
		return nil, b.err
	}

	for key, bounds := range b.ranges {
		if bounds.Min != nil && math.IsNaN(*bounds.Min) {
			return nil, fmt.Errorf("metadata filter: min bound for key %q must not be NaN", key)
		}
		if bounds.Max != nil && math.IsNaN(*bounds.Max) {
			return nil, fmt.Errorf("metadata filter: max bound for key %q must not be NaN", key)
		}
		if bounds.Min == nil || bounds.Max == nil {
			continue
		}
		if *bounds.Min > *bounds.Max {
			return nil, fmt.Errorf("metadata filter: min must not be greater than max for key %q", key)
		}
		if *bounds.Min == *bounds.Max && (!bounds.MinInclusive || !bounds.MaxInclusive) {
			return nil, fmt.Errorf("metadata filter: exclusive bounds collapse range for key %q", key)
		}
	}

	if len(b.equals) == 0 && len(b.in) == 0 && len(b.ranges) == 0 {
		return EmptyFilter(), nil
	}

	f := &Filter{
		equals: make(map[string]Value, len(b.equals)),
		in:     make(map[string][]Value, len(b.in)),
		ranges: make(map[string]NumberRange, len(b.ranges)),
	}
	for k, v := range b.equals {
		f.equals[k] = v
	}
	for k, v := range b.in {
		f.in[k] = v
	}
	for k, v := range b.ranges {
		f.ranges[k] = v
	}
	return f, nil
}

func (b *FilterBuilder) applyMin(key string, min float64, inclusive bool) *FilterBuilder {
	if !b.validKey(key) {
		return b
	}
	bounds := b.ranges[key]
	bounds.Min = &min
	bounds.MinInclusive = inclusive
	b.ranges[key] = bounds
	return b
}

func (b *FilterBuilder) applyMax(key string, max float64, inclusive bool) *FilterBuilder {
	if !b.validKey(key) {
		return b
	}
	bounds := b.ranges[key]
	bounds.Max = &max
	bounds.MaxInclusive = inclusive
	b.ranges[key] = bounds
	return b
}

func (b *FilterBuilder) validKey(key string) bool {
	if strings.TrimSpace(key) == "" {
		b.fail(fmt.Errorf("metadata filter: key must not be blank"))
		return false
	}
	return true
}

// fail records the first error; Build reports it.
func (b *FilterBuilder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}
