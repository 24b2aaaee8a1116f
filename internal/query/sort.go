package query

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Direction is a sort direction.
type Direction string

// Sort directions.
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// IsValid checks if the direction is a known value.
func (d Direction) IsValid() bool {
	return d == Asc || d == Desc
}

// parseDirection reads a direction case-insensitively.
func parseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(s)) {
	case Asc:
		return Asc, nil
	case Desc:
		return Desc, nil
	default:
		return Asc, fmt.Errorf("unknown sort direction %q", s)
	}
}

type keyKind uint8

const (
	kindNumber keyKind = iota
	kindText
)

// Key is a sortable value derived from an item.
// Numbers order before text when the two kinds are mixed.
type Key struct {
	kind keyKind
	num  float64
	text string
}

// Number returns a numeric sort key.
func Number(v float64) Key { return Key{kind: kindNumber, num: v} }

// Int returns a numeric sort key from an int.
func Int(v int) Key { return Number(float64(v)) }

// Text returns a string sort key compared byte-wise.
func Text(s string) Key { return Key{kind: kindText, text: s} }

// Compare returns -1, 0 or +1.
func (k Key) Compare(other Key) int {
	if k.kind != other.kind {
		return cmp.Compare(k.kind, other.kind)
	}
	if k.kind == kindText {
		return strings.Compare(k.text, other.text)
	}
	return cmp.Compare(k.num, other.num)
}

// Accessor derives a sort key from an item.
type Accessor[T any] func(item T) Key

// Comparator is a total ordering returning negative, zero or positive.
type Comparator[T any] func(a, b T) int

// SortSpec selects the ordering of filtered items. It is one of
// ComparatorSort, KeySort or DerivedSort; a nil SortSpec keeps input order.
type SortSpec[T any] interface {
	isSortSpec(T)
}

// ComparatorSort orders items with a caller-supplied comparator.
type ComparatorSort[T any] struct {
	Compare Comparator[T]
}

// KeySort orders items by a named accessor registered with the engine.
// It is the only serializable arm.
type KeySort[T any] struct {
	Key       string
	Direction Direction
}

// DerivedSort orders items by an inline accessor.
type DerivedSort[T any] struct {
	Accessor  Accessor[T]
	Direction Direction
}

func (ComparatorSort[T]) isSortSpec(T) {}
func (KeySort[T]) isSortSpec(T)        {}
func (DerivedSort[T]) isSortSpec(T)    {}

// ByComparator builds a ComparatorSort.
func ByComparator[T any](fn Comparator[T]) SortSpec[T] {
	return ComparatorSort[T]{Compare: fn}
}

// ByKey builds a KeySort.
func ByKey[T any](key string, dir Direction) SortSpec[T] {
	return KeySort[T]{Key: key, Direction: dir}
}

// ByAccessor builds a DerivedSort.
func ByAccessor[T any](fn Accessor[T], dir Direction) SortSpec[T] {
	return DerivedSort[T]{Accessor: fn, Direction: dir}
}

// SortItems returns items ordered by spec. The sort is stable and works on a copy.
//
// Behavior:
//   - Returns items unchanged when spec is nil
//   - Returns items unchanged when a KeySort names a key missing from keys,
//     or when the comparator/accessor is nil
//   - Desc reverses the comparison, so equal keys keep input order in both directions
//   - Does NOT mutate items
func SortItems[T any](items []T, spec SortSpec[T], keys map[string]Accessor[T]) []T {
	if spec == nil || len(items) == 0 {
		return items
	}

	switch s := spec.(type) {
	case ComparatorSort[T]:
		if s.Compare == nil {
			return items
		}
		result := slices.Clone(items)
		slices.SortStableFunc(result, s.Compare)
		return result
	case KeySort[T]:
		accessor, ok := keys[s.Key]
		if !ok || accessor == nil {
			return items
		}
		return sortByAccessor(items, accessor, s.Direction)
	case DerivedSort[T]:
		if s.Accessor == nil {
			return items
		}
		return sortByAccessor(items, s.Accessor, s.Direction)
	default:
		return items
	}
}

type keyed[T any] struct {
	item T
	key  Key
}

// sortByAccessor evaluates the accessor once per item before sorting.
func sortByAccessor[T any](items []T, accessor Accessor[T], dir Direction) []T {
	decorated := make([]keyed[T], len(items))
	for i, item := range items {
		decorated[i] = keyed[T]{item: item, key: accessor(item)}
	}

	desc := dir == Desc
	slices.SortStableFunc(decorated, func(a, b keyed[T]) int {
		c := a.key.Compare(b.key)
		if desc {
			return -c
		}
		return c
	})

	result := make([]T, len(decorated))
	for i, d := range decorated {
		result[i] = d.item
	}
	return result
}
