package domain

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// SortOption defines the available sorting options for room listings.
type SortOption string

// Available sort options.
const (
	// SortNone keeps catalog order
	SortNone SortOption = ""

	// SortByPriceAsc sorts by nightly price, cheapest first
	SortByPriceAsc SortOption = "price-asc"

	// SortByPriceDesc sorts by nightly price, most expensive first
	SortByPriceDesc SortOption = "price-desc"

	// SortByCapacity sorts by guest capacity, largest first
	SortByCapacity SortOption = "capacity"

	// SortBySize sorts by the number in the size label, largest first
	SortBySize SortOption = "size"

	// SortByName sorts by title alphabetically
	SortByName SortOption = "name"
)

// SortOptions lists every non-empty sort option.
var SortOptions = []SortOption{SortByPriceAsc, SortByPriceDesc, SortByCapacity, SortBySize, SortByName}

// IsValid checks if the sort option is a valid value.
func (s SortOption) IsValid() bool {
	return s == SortNone || slices.Contains(SortOptions, s)
}

// ParseSortOption converts a string to a SortOption.
// Returns a wrapped ErrUnknownSortOption if the string is not a known option.
func ParseSortOption(s string) (SortOption, error) {
	option := SortOption(strings.TrimSpace(s))
	if !option.IsValid() {
		return SortNone, fmt.Errorf("%w: %q", ErrUnknownSortOption, s)
	}
	return option, nil
}

// FilterKey names one field of RoomFilters.
type FilterKey string

// Filter keys, matching the JSON field names of RoomFilters.
const (
	FilterSearch    FilterKey = "search"
	FilterMinPrice  FilterKey = "minPrice"
	FilterMaxPrice  FilterKey = "maxPrice"
	FilterCapacity  FilterKey = "capacity"
	FilterAmenities FilterKey = "amenities"
	FilterAvailable FilterKey = "available"
	FilterFeatured  FilterKey = "featured"
)

// ParseFilterKey converts a string to a FilterKey.
// Returns a wrapped ErrUnknownFilter for anything outside the vocabulary.
func ParseFilterKey(s string) (FilterKey, error) {
	switch k := FilterKey(s); k {
	case FilterSearch, FilterMinPrice, FilterMaxPrice, FilterCapacity,
		FilterAmenities, FilterAvailable, FilterFeatured:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFilter, s)
	}
}

// RoomFilters holds the user's filter selection.
// Numeric fields keep the raw text as typed; they are parsed when filtering
// and anything unparsable counts as no constraint.
type RoomFilters struct {
	// Search matches title, description or amenity text, case-insensitive
	Search string `json:"search" schema:"search"`

	// MinPrice is the lower price bound (inclusive)
	MinPrice string `json:"minPrice" schema:"minPrice"`

	// MaxPrice is the upper price bound (inclusive)
	MaxPrice string `json:"maxPrice" schema:"maxPrice"`

	// Capacity is the minimum number of guests
	Capacity string `json:"capacity" schema:"capacity"`

	// Amenities must all be present on a room
	Amenities []string `json:"amenities" schema:"amenities"`

	// Available restricts to bookable rooms when true
	Available bool `json:"available" schema:"available"`

	// Featured restricts to featured rooms when true
	Featured bool `json:"featured" schema:"featured"`
}

// Clone returns a copy that shares no slices with f.
func (f RoomFilters) Clone() RoomFilters {
	out := f
	out.Amenities = slices.Clone(f.Amenities)
	if out.Amenities == nil {
		out.Amenities = []string{}
	}
	return out
}

// HasPriceBound reports whether either price bound is set.
func (f RoomFilters) HasPriceBound() bool {
	return f.MinPrice != "" || f.MaxPrice != ""
}

// ActiveCount returns the number of filter dimensions currently constraining results.
// Each dimension counts once regardless of how many values it carries.
func (f RoomFilters) ActiveCount() int {
	n := 0
	for _, active := range []bool{
		f.Search != "",
		f.HasPriceBound(),
		f.Capacity != "",
		len(f.Amenities) > 0,
		f.Available,
		f.Featured,
	} {
		if active {
			n++
		}
	}
	return n
}

// Set assigns value to the field named by key. Values are accepted in the shapes
// produced by decoding JSON: strings or numbers for text fields, a string list for
// amenities, and booleans (or "true"/"false") for the flags.
func (f *RoomFilters) Set(key FilterKey, value any) error {
	switch key {
	case FilterSearch, FilterMinPrice, FilterMaxPrice, FilterCapacity:
		s, err := textValue(key, value)
		if err != nil {
			return err
		}
		switch key {
		case FilterSearch:
			f.Search = s
		case FilterMinPrice:
			f.MinPrice = s
		case FilterMaxPrice:
			f.MaxPrice = s
		default:
			f.Capacity = s
		}
	case FilterAmenities:
		list, err := listValue(value)
		if err != nil {
			return err
		}
		f.Amenities = list
	case FilterAvailable, FilterFeatured:
		b, err := boolValue(key, value)
		if err != nil {
			return err
		}
		if key == FilterAvailable {
			f.Available = b
		} else {
			f.Featured = b
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFilter, key)
	}
	return nil
}

func textValue(key FilterKey, value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(v), nil
	default:
		return "", fmt.Errorf("%w: %s must be text, got %T", ErrInvalidFilterValue, key, value)
	}
}

func listValue(value any) ([]string, error) {
	switch v := value.(type) {
	case nil:
		return []string{}, nil
	case []string:
		return slices.Clone(v), nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: amenities must be a list of strings, got %T element", ErrInvalidFilterValue, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: amenities must be a list of strings, got %T", ErrInvalidFilterValue, value)
	}
}

func boolValue(key FilterKey, value any) (bool, error) {
	switch v := value.(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, fmt.Errorf("%w: %s must be a boolean, got %q", ErrInvalidFilterValue, key, v)
		}
		return b, nil
	default:
		return false, fmt.Errorf("%w: %s must be a boolean, got %T", ErrInvalidFilterValue, key, value)
	}
}
