// Package testutil provides test helper functions for unit and integration tests.
package testutil

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/hotel-site/room-filter/internal/domain"
)

// ProjectRoot returns the repository root directory.
func ProjectRoot(t testing.TB) string {
	t.Helper()

	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}

	// testutil is in test/testutil
	return filepath.Join(filepath.Dir(currentFile), "..", "..")
}

// TestDataPath returns the path of a file in the test/testdata directory.
func TestDataPath(t testing.TB, filename string) string {
	t.Helper()
	return filepath.Join(ProjectRoot(t), "test", "testdata", filename)
}

// LoadTestData loads a file from the testdata directory.
// The filename should be relative to the testdata directory.
func LoadTestData(t testing.TB, filename string) []byte {
	t.Helper()

	data, err := os.ReadFile(TestDataPath(t, filename))
	if err != nil {
		t.Fatalf("Failed to load test file %s: %v", filename, err)
	}
	return data
}

// SampleRooms returns three rooms used across the adapter and HTTP tests.
//
//	Deluxe Suite  250  4 guests  WiFi, Minibar        featured, available
//	Standard      120  2 guests  WiFi                 available
//	Family        180  6 guests  WiFi, Refrigerator
func SampleRooms() []domain.Room {
	return []domain.Room{
		{
			ID:          "deluxe-suite",
			Title:       "Deluxe Suite",
			Description: "Corner suite with a separate living area",
			Size:        "45 m²",
			Price:       250,
			Capacity:    4,
			Amenities:   []string{"WiFi", "Minibar"},
			Available:   true,
			Featured:    true,
		},
		{
			ID:          "standard",
			Title:       "Standard",
			Description: "Comfortable room for two",
			Size:        "22 m²",
			Price:       120,
			Capacity:    2,
			Amenities:   []string{"WiFi"},
			Available:   true,
		},
		{
			ID:          "family",
			Title:       "Family",
			Description: "Two bedrooms with bunk beds",
			Size:        "approx. 60sqm",
			Price:       180,
			Capacity:    6,
			Amenities:   []string{"WiFi", "Refrigerator"},
		},
	}
}

var generatedAmenities = []string{
	"WiFi", "Minibar", "Refrigerator", "Safe", "Balcony",
	"Bathtub", "Sea View", "Air Conditioning", "Coffee Machine", "Desk",
}

var generatedKinds = []string{"Standard", "Superior", "Deluxe", "Junior Suite", "Suite", "Family", "Loft"}

// GenerateRooms builds n synthetic rooms. The same seed always yields the same rooms.
func GenerateRooms(n int, seed uint64) []domain.Room {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	rooms := make([]domain.Room, n)
	for i := range rooms {
		kind := generatedKinds[rng.IntN(len(generatedKinds))]

		var amenities []string
		for _, a := range generatedAmenities {
			if rng.IntN(3) == 0 {
				amenities = append(amenities, a)
			}
		}

		rooms[i] = domain.Room{
			ID:          fmt.Sprintf("room-%04d", i),
			Title:       fmt.Sprintf("%s %d", kind, i),
			Description: fmt.Sprintf("%s room on floor %d", kind, 1+rng.IntN(12)),
			Size:        fmt.Sprintf("%d m²", 15+rng.IntN(80)),
			Price:       float64(60 + rng.IntN(540)),
			Capacity:    1 + rng.IntN(6),
			Amenities:   amenities,
			Available:   rng.IntN(4) != 0,
			Featured:    rng.IntN(10) == 0,
		}
	}
	return rooms
}

// Titles returns the titles of rooms in order.
func Titles(rooms []domain.Room) []string {
	out := make([]string, len(rooms))
	for i, r := range rooms {
		out[i] = r.Title
	}
	return out
}

// Ptr returns a pointer to the given value.
// Useful for creating pointers to literals in tests.
func Ptr[T any](v T) *T {
	return &v
}
