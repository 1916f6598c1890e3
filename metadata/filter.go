package metadata

import "math"

// NumberRange describes the numeric bounds for a single filter key.
// A nil bound means that side is unbounded.
type NumberRange struct {
	Min          *float64
	MinInclusive bool
	Max          *float64
	MaxInclusive bool
}

// Contains reports whether x satisfies the set bounds. NaN satisfies no
// bound, so it never matches a range that has one.
func (r NumberRange) Contains(x float64) bool {
	if math.IsNaN(x) {
		return r.Min == nil && r.Max == nil
	}
	if r.Min != nil {
		if x < *r.Min || (x == *r.Min && !r.MinInclusive) {
			return false
		}
	}
	if r.Max != nil {
		if x > *r.Max || (x == *r.Max && !r.MaxInclusive) {
			return false
		}
	}
	return true
}

// Filter is an immutable conjunctive predicate over a metadata document.
//
// It combines three independent constraint sets, all of which must hold:
// equality (key must map to exactly the given value), membership (key must
// map to one of the candidate values) and numeric range (key must map to a
// number within the bounds). An empty filter matches every document,
// including nil ones.
//
// Filters are built once via FilterBuilder and never mutated afterwards.
type Filter struct {
	equals map[string]Value
	in     map[string][]Value
	ranges map[string]NumberRange
}

var emptyFilter = &Filter{}

// EmptyFilter returns a filter with no constraints.
func EmptyFilter() *Filter { return emptyFilter }

// IsEmpty reports whether the filter carries no constraints at all.
func (f *Filter) IsEmpty() bool {
	return f == nil || (len(f.equals) == 0 && len(f.in) == 0 && len(f.ranges) == 0)
}

// Matches checks whether the document satisfies every constraint.
//
// An absent key never matches, including an equality constraint on a null
// value: absence and explicit null are distinct. A non-numeric value never
// satisfies a range constraint.
func (f *Filter) Matches(doc Document) bool {
	if f.IsEmpty() {
		return true
	}

	for key, want := range f.equals {
		got, ok := doc[key]
		if !ok || !Equal(got, want) {
			return false
		}
	}

	for key, candidates := range f.in {
		got, ok := doc[key]
		if !ok {
			return false
		}
		matched := false
		for _, candidate := range candidates {
			if Equal(got, candidate) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	for key, bounds := range f.ranges {
		got, ok := doc[key]
		if !ok {
			return false
		}
		x, ok := got.Number()
		if !ok {
			return false
		}
		if !bounds.Contains(x) {
			return false
		}
	}

	return true
}
