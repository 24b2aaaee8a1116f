package domain

// FilterStats summarizes how the current filters constrain the room list.
type FilterStats struct {
	// ActiveFilters counts the filter dimensions currently constraining results
	ActiveFilters int `json:"activeFilters"`

	// HasActiveFilters is ActiveFilters > 0
	HasActiveFilters bool `json:"hasActiveFilters"`

	// MatchingRooms is the number of rooms passing the filters, before pagination
	MatchingRooms int `json:"matchingRooms"`

	// TotalRooms is the size of the unfiltered catalog
	TotalRooms int `json:"totalRooms"`

	// IsFiltered is MatchingRooms < TotalRooms
	IsFiltered bool `json:"isFiltered"`
}

// NewFilterStats derives the statistics from the filters and the engine totals.
func NewFilterStats(filters RoomFilters, matching, total int) FilterStats {
	active := filters.ActiveCount()
	return FilterStats{
		ActiveFilters:    active,
		HasActiveFilters: active > 0,
		MatchingRooms:    matching,
		TotalRooms:       total,
		IsFiltered:       matching < total,
	}
}

// PageInfo describes the current page of a listing.
type PageInfo struct {
	// Page is the 1-based page number
	Page int `json:"page"`

	// PageSize is the number of rooms per page; 0 means everything on one page
	PageSize int `json:"pageSize"`

	// TotalPages is the number of pages for the matching rooms
	TotalPages int `json:"totalPages"`
}

// RoomListResponse is the listing returned to the presentation layer.
type RoomListResponse struct {
	// Filters echoes the filter selection the listing was computed for
	Filters RoomFilters `json:"filters"`

	// SortBy echoes the active sort option
	SortBy SortOption `json:"sortBy"`

	// Stats summarizes the effect of the filters
	Stats FilterStats `json:"stats"`

	// Pagination describes the returned page
	Pagination PageInfo `json:"pagination"`

	// IsFiltering is true while a debounced recompute is pending;
	// Rooms then still reflects the previous filter state
	IsFiltering bool `json:"isFiltering"`

	// Rooms is the current page of matching rooms
	Rooms []Room `json:"rooms"`
}

// NewRoomListResponse builds a RoomListResponse, normalizing a nil room list to empty.
func NewRoomListResponse(filters RoomFilters, sortBy SortOption, stats FilterStats, page PageInfo, isFiltering bool, rooms []Room) RoomListResponse {
	if rooms == nil {
		rooms = []Room{}
	}
	return RoomListResponse{
		Filters:     filters.Clone(),
		SortBy:      sortBy,
		Stats:       stats,
		Pagination:  page,
		IsFiltering: isFiltering,
		Rooms:       rooms,
	}
}
