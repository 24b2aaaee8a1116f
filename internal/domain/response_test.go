package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFilterStats(t *testing.T) {
	tests := []struct {
		name     string
		filters  RoomFilters
		matching int
		total    int
		want     FilterStats
	}{
		{
			name:     "no filters",
			matching: 3,
			total:    3,
			want:     FilterStats{MatchingRooms: 3, TotalRooms: 3},
		},
		{
			name:     "featured only",
			filters:  RoomFilters{Featured: true},
			matching: 1,
			total:    3,
			want:     FilterStats{ActiveFilters: 1, HasActiveFilters: true, MatchingRooms: 1, TotalRooms: 3, IsFiltered: true},
		},
		{
			name:     "active filters that match everything",
			filters:  RoomFilters{Search: "room", MaxPrice: "1000"},
			matching: 3,
			total:    3,
			want:     FilterStats{ActiveFilters: 2, HasActiveFilters: true, MatchingRooms: 3, TotalRooms: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewFilterStats(tt.filters, tt.matching, tt.total))
		})
	}
}

func TestNewRoomListResponse(t *testing.T) {
	tests := []struct {
		name          string
		rooms         []Room
		wantRoomCount int
	}{
		{
			name:          "creates response with rooms",
			rooms:         []Room{{ID: "1", Title: "Standard"}, {ID: "2", Title: "Family"}},
			wantRoomCount: 2,
		},
		{
			name:          "handles nil rooms",
			rooms:         nil,
			wantRoomCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filters := RoomFilters{Amenities: []string{"WiFi"}}
			resp := NewRoomListResponse(filters, SortByName, FilterStats{}, PageInfo{Page: 1}, false, tt.rooms)

			assert.NotNil(t, resp.Rooms, "rooms should never be nil")
			assert.Len(t, resp.Rooms, tt.wantRoomCount)
			assert.Equal(t, SortByName, resp.SortBy)

			filters.Amenities[0] = "Sauna"
			assert.Equal(t, []string{"WiFi"}, resp.Filters.Amenities, "filters are copied")
		})
	}
}
