// Package rooms adapts the generic query engine to the hotel room vocabulary:
// text search, price range, capacity, amenities and the availability/featured flags,
// plus the room sort options and aggregate filter statistics.
package rooms

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/collate"

	"github.com/hotel-site/room-filter/internal/domain"
)

// AugmentedRoom is a Room with lookup data precomputed once per catalog change.
type AugmentedRoom struct {
	domain.Room

	title       string
	description string
	amenities   []string
	amenitySet  map[string]struct{}
	nameKey     []byte
}

// HasAmenity reports whether the room has the amenity. name must be lowercase.
func (r AugmentedRoom) HasAmenity(name string) bool {
	_, ok := r.amenitySet[name]
	return ok
}

// augment builds the lookup data for every room. col provides title collation keys.
func augment(rooms []domain.Room, col *collate.Collator) []AugmentedRoom {
	out := make([]AugmentedRoom, len(rooms))
	var buf collate.Buffer
	for i, r := range rooms {
		set := make(map[string]struct{}, len(r.Amenities))
		lower := make([]string, 0, len(r.Amenities))
		for _, a := range r.Amenities {
			la := strings.ToLower(a)
			if _, dup := set[la]; dup {
				continue
			}
			set[la] = struct{}{}
			lower = append(lower, la)
		}

		out[i] = AugmentedRoom{
			Room:        r,
			title:       strings.ToLower(r.Title),
			description: strings.ToLower(r.Description),
			amenities:   lower,
			amenitySet:  set,
			nameKey:     bytes.Clone(col.KeyFromString(&buf, r.Title)),
		}
		buf.Reset()
	}
	return out
}

func plain(rooms []AugmentedRoom) []domain.Room {
	out := make([]domain.Room, len(rooms))
	for i, r := range rooms {
		out[i] = r.Room
	}
	return out
}

// matchesSearch reports whether term (lowercase, non-empty) occurs in the title,
// the description or any amenity.
func (r AugmentedRoom) matchesSearch(term string) bool {
	if strings.Contains(r.title, term) || strings.Contains(r.description, term) {
		return true
	}
	for _, a := range r.amenities {
		if strings.Contains(a, term) {
			return true
		}
	}
	return false
}

// parseNumber parses user-typed numeric text. ok is false for anything that is
// not a finite number.
func parseNumber(s string) (v float64, ok bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// priceBounds returns the inclusive price range. Unset or unparsable bounds
// default to 0 and +Inf; ok is false when neither bound parsed.
func priceBounds(f domain.RoomFilters) (lo, hi float64, ok bool) {
	lo, hasLo := parseNumber(f.MinPrice)
	hi, hasHi := parseNumber(f.MaxPrice)
	if !hasLo {
		lo = 0
	}
	if !hasHi {
		hi = math.Inf(1)
	}
	return lo, hi, hasLo || hasHi
}

// sizeValue extracts the first run of ASCII digits from a free-text size label.
// "45 m²" gives 45, "approx. 30sqm" gives 30, and a label without digits gives 0.
// Ranges and decimals resolve to their leading number: "45-50 m²" gives 45, not 4550.
func sizeValue(label string) int {
	start := strings.IndexFunc(label, isDigit)
	if start < 0 {
		return 0
	}
	end := start
	for end < len(label) && isDigit(rune(label[end])) {
		end++
	}
	n, err := strconv.Atoi(label[start:end])
	if err != nil {
		return 0
	}
	return n
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }
