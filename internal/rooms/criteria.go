package rooms

import (
	"bytes"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/hotel-site/room-filter/internal/domain"
	"github.com/hotel-site/room-filter/internal/query"
)

// Engine filter keys, one per filter dimension.
const (
	keySearch    = "search"
	keyPrice     = "price"
	keyCapacity  = "capacity"
	keyAmenities = "amenities"
	keyAvailable = "available"
	keyFeatured  = "featured"
)

// Engine sort keys.
const (
	sortKeyPrice    = "price"
	sortKeyCapacity = "capacity"
)

var sortKeys = map[string]query.Accessor[AugmentedRoom]{
	sortKeyPrice:    func(r AugmentedRoom) query.Key { return query.Number(r.Price) },
	sortKeyCapacity: func(r AugmentedRoom) query.Key { return query.Int(r.Capacity) },
}

// dimension describes how one filter dimension becomes an engine criterion.
// build returns a nil predicate when the dimension does not constrain results,
// and a signature that identifies the predicate's behavior.
type dimension struct {
	key   string
	build func(f domain.RoomFilters) (query.Predicate[AugmentedRoom], string)
}

// dimensions lists every dimension except search, which is driven by the debounced value.
var dimensions = []dimension{
	{key: keyPrice, build: pricePredicate},
	{key: keyCapacity, build: capacityPredicate},
	{key: keyAmenities, build: amenitiesPredicate},
	{key: keyAvailable, build: func(f domain.RoomFilters) (query.Predicate[AugmentedRoom], string) {
		if !f.Available {
			return nil, ""
		}
		return func(r AugmentedRoom) bool { return r.Available }, "true"
	}},
	{key: keyFeatured, build: func(f domain.RoomFilters) (query.Predicate[AugmentedRoom], string) {
		if !f.Featured {
			return nil, ""
		}
		return func(r AugmentedRoom) bool { return r.Featured }, "true"
	}},
}

// dimensionFor maps a filter field to its engine key.
func dimensionFor(key domain.FilterKey) string {
	switch key {
	case domain.FilterSearch:
		return keySearch
	case domain.FilterMinPrice, domain.FilterMaxPrice:
		return keyPrice
	case domain.FilterCapacity:
		return keyCapacity
	case domain.FilterAmenities:
		return keyAmenities
	case domain.FilterAvailable:
		return keyAvailable
	default:
		return keyFeatured
	}
}

func searchPredicate(text string) (query.Predicate[AugmentedRoom], string) {
	if text == "" {
		return nil, ""
	}
	term := strings.ToLower(text)
	return func(r AugmentedRoom) bool { return r.matchesSearch(term) }, term
}

func pricePredicate(f domain.RoomFilters) (query.Predicate[AugmentedRoom], string) {
	lo, hi, ok := priceBounds(f)
	if !ok {
		return nil, ""
	}
	sig := strconv.FormatFloat(lo, 'g', -1, 64) + ".." + strconv.FormatFloat(hi, 'g', -1, 64)
	return func(r AugmentedRoom) bool { return r.Price >= lo && r.Price <= hi }, sig
}

func capacityPredicate(f domain.RoomFilters) (query.Predicate[AugmentedRoom], string) {
	want, ok := parseNumber(f.Capacity)
	if !ok {
		return nil, ""
	}
	return func(r AugmentedRoom) bool { return float64(r.Capacity) >= want },
		strconv.FormatFloat(want, 'g', -1, 64)
}

func amenitiesPredicate(f domain.RoomFilters) (query.Predicate[AugmentedRoom], string) {
	if len(f.Amenities) == 0 {
		return nil, ""
	}
	want := make([]string, 0, len(f.Amenities))
	for _, a := range f.Amenities {
		want = append(want, strings.ToLower(a))
	}
	slices.Sort(want)
	want = slices.Compact(want)

	return func(r AugmentedRoom) bool {
		for _, a := range want {
			if !r.HasAmenity(a) {
				return false
			}
		}
		return true
	}, strings.Join(want, "\x00")
}

// revisions hands out a stable revision per dimension, bumped only when the
// dimension's signature changes.
type revisions struct {
	mu   sync.Mutex
	next uint64
	sigs map[string]string
	revs map[string]uint64
}

func newRevisions() *revisions {
	return &revisions{sigs: map[string]string{}, revs: map[string]uint64{}}
}

func (r *revisions) revision(key, sig string) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rev, ok := r.revs[key]; ok && r.sigs[key] == sig {
		return rev
	}
	r.next++
	r.sigs[key] = sig
	r.revs[key] = r.next
	return r.next
}

func (r *revisions) forget(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sigs, key)
	delete(r.revs, key)
}

func (r *revisions) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.sigs)
	clear(r.revs)
}

// sortSpec maps a sort option onto the engine's sort variants.
func sortSpec(opt domain.SortOption) query.SortSpec[AugmentedRoom] {
	switch opt {
	case domain.SortByPriceAsc:
		return query.ByKey[AugmentedRoom](sortKeyPrice, query.Asc)
	case domain.SortByPriceDesc:
		return query.ByKey[AugmentedRoom](sortKeyPrice, query.Desc)
	case domain.SortByCapacity:
		return query.ByKey[AugmentedRoom](sortKeyCapacity, query.Desc)
	case domain.SortBySize:
		return query.ByAccessor[AugmentedRoom](func(r AugmentedRoom) query.Key { return query.Int(sizeValue(r.Size)) }, query.Desc)
	case domain.SortByName:
		return query.ByComparator[AugmentedRoom](func(a, b AugmentedRoom) int { return bytes.Compare(a.nameKey, b.nameKey) })
	default:
		return nil
	}
}

// sortOptionFor maps a restored key sort back onto a sort option.
func sortOptionFor(spec query.SortSpec[AugmentedRoom]) (domain.SortOption, error) {
	if spec == nil {
		return domain.SortNone, nil
	}
	ks, ok := spec.(query.KeySort[AugmentedRoom])
	if !ok {
		return domain.SortNone, fmt.Errorf("%w: %T is not restorable", domain.ErrUnknownSortOption, spec)
	}
	switch {
	case ks.Key == sortKeyPrice && ks.Direction == query.Asc:
		return domain.SortByPriceAsc, nil
	case ks.Key == sortKeyPrice && ks.Direction == query.Desc:
		return domain.SortByPriceDesc, nil
	case ks.Key == sortKeyCapacity && ks.Direction == query.Desc:
		return domain.SortByCapacity, nil
	default:
		return domain.SortNone, fmt.Errorf("%w: %s %s", domain.ErrUnknownSortOption, ks.Key, ks.Direction)
	}
}
