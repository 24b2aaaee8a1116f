package http

import (
	"github.com/hotel-site/room-filter/internal/domain"
	"github.com/hotel-site/room-filter/internal/query"
	"github.com/hotel-site/room-filter/internal/rooms"
	"github.com/hotel-site/room-filter/internal/session"
	"github.com/hotel-site/room-filter/internal/urlstate"
)

// ToCreateParams converts a CreateSessionRequest to session.CreateParams.
// Page state from a share URL fills in what the body leaves out.
func ToCreateParams(req *CreateSessionRequest, shared urlstate.PageState) session.CreateParams {
	sortBy, _ := domain.ParseSortOption(req.SortBy)
	p := session.CreateParams{
		SortBy:   sortBy,
		PageSize: req.PageSize,
		Resume:   req.Resume,
	}
	if req.Filters != nil {
		p.Filters = req.Filters.Clone()
	}
	if p.Resume == "" && shared.State != "" {
		p.Resume = session.IDFromStorageKey(shared.State)
	}
	if sp := shared.Pagination(); sp != nil {
		if p.PageSize == 0 {
			p.PageSize = sp.PageSize
		}
		p.Page = sp.Page
	}
	return p
}

// ToAdapterOptions converts a RoomQuery to options for a one-off, synchronous adapter.
func ToAdapterOptions(q *RoomQuery, locale string) *rooms.Options {
	sortBy, _ := domain.ParseSortOption(q.SortBy)
	return &rooms.Options{
		InitialFilters: q.RoomFilters.Clone(),
		SortBy:         sortBy,
		PageSize:       q.PageSize,
		SearchDebounce: -1,
		Locale:         locale,
		Engine:         query.Options[rooms.AugmentedRoom]{Debounce: -1},
	}
}

// ToSessionResponse builds the response for a session.
func ToSessionResponse(s *session.Session) *SessionResponse {
	return &SessionResponse{
		ID:               s.ID,
		URL:              s.Location.String(),
		RoomListResponse: s.Rooms.Snapshot(),
	}
}
