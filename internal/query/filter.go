// Package query implements a generic in-memory filter -> sort -> paginate pipeline
// over a caller-supplied collection, plus a stateful Engine that debounces recomputation
// and mirrors its sort/pagination state to key-value storage and a shareable URL.
package query

import (
	"fmt"
	"sort"
)

// Mode controls how a criterion combines with the rest of the filter set.
type Mode int

// Combination modes.
const (
	// And criteria must all pass.
	And Mode = iota
	// Or criteria pass as a group when at least one of them passes.
	Or
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case And:
		return "AND"
	case Or:
		return "OR"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Predicate reports whether an item satisfies a criterion.
// It must be pure: deterministic for a given item and closed-over values.
type Predicate[T any] func(item T) bool

// Criterion is a named filter entry.
type Criterion[T any] struct {
	Predicate Predicate[T]
	Mode      Mode

	// Revision identifies the predicate's closed-over values. Setting a criterion
	// whose Mode and non-zero Revision equal the current entry is a no-op.
	// Zero always replaces.
	Revision uint64
}

// FilterMap is the active filter set keyed by criterion name.
type FilterMap[T any] map[string]Criterion[T]

// Clone returns a shallow copy of the map.
func (f FilterMap[T]) Clone() FilterMap[T] {
	out := make(FilterMap[T], len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Keys returns the criterion names in sorted order.
func (f FilterMap[T]) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// matcher is a FilterMap split into its AND and OR groups.
type matcher[T any] struct {
	and []Predicate[T]
	or  []Predicate[T]
}

func compile[T any](filters FilterMap[T]) matcher[T] {
	var m matcher[T]
	for _, key := range filters.Keys() {
		c := filters[key]
		if c.Predicate == nil {
			continue
		}
		if c.Mode == Or {
			m.or = append(m.or, c.Predicate)
		} else {
			m.and = append(m.and, c.Predicate)
		}
	}
	return m
}

// match accepts an item iff every AND predicate passes and, when OR predicates
// exist, at least one of them passes.
func (m matcher[T]) match(item T) bool {
	for _, p := range m.and {
		if !p(item) {
			return false
		}
	}
	if len(m.or) == 0 {
		return true
	}
	for _, p := range m.or {
		if p(item) {
			return true
		}
	}
	return false
}

// Filter returns the items of data accepted by filters, in input order.
//
// Behavior:
//   - Returns data itself (same backing array) when filters is empty
//   - Does NOT mutate data
//   - Panics raised by predicates propagate to the caller
//   - Performance is O(n*k) where k = number of criteria
func Filter[T any](data []T, filters FilterMap[T]) []T {
	if len(filters) == 0 {
		return data
	}

	m := compile(filters)
	result := make([]T, 0, len(data))
	for _, item := range data {
		if m.match(item) {
			result = append(result, item)
		}
	}
	return result
}
