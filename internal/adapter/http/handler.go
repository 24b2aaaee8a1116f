package http

import (
	"errors"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/hotel-site/room-filter/internal/adapter/http/response"
	"github.com/hotel-site/room-filter/internal/domain"
	"github.com/hotel-site/room-filter/internal/rooms"
	"github.com/hotel-site/room-filter/internal/session"
	"github.com/hotel-site/room-filter/internal/urlstate"
)

// RoomHandler handles HTTP requests for room listings and filter sessions.
type RoomHandler struct {
	sessions *session.Manager
	locale   string
}

// NewRoomHandler creates a new RoomHandler backed by the session manager.
// locale orders room names for stateless listings.
func NewRoomHandler(sessions *session.Manager, locale string) *RoomHandler {
	return &RoomHandler{
		sessions: sessions,
		locale:   locale,
	}
}

// ListRooms handles GET /api/v1/rooms
//
// @Summary List rooms
// @Description Filter, sort and paginate the room catalog in a single request
// @Tags rooms
// @Produce json
// @Param search query string false "Search text matched against title, description and amenities"
// @Param minPrice query string false "Lowest nightly price"
// @Param maxPrice query string false "Highest nightly price"
// @Param capacity query string false "Minimum number of guests"
// @Param amenities query []string false "Required amenities" collectionFormat(multi)
// @Param available query bool false "Only bookable rooms"
// @Param featured query bool false "Only featured rooms"
// @Param sortBy query string false "Sort option" Enums(price-asc, price-desc, capacity, size, name)
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size; 0 disables pagination"
// @Success 200 {object} domain.RoomListResponse
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Router /rooms [get]
func (h *RoomHandler) ListRooms(c echo.Context) error {
	q, err := DecodeRoomQuery(c.QueryParams())
	if err != nil {
		return h.handleValidationError(c, err)
	}

	adapter, err := rooms.New(h.sessions.Catalog(), ToAdapterOptions(&q, h.locale))
	if err != nil {
		return h.handleError(c, err)
	}
	defer adapter.Close()

	if q.PageSize > 0 && q.Page > 1 {
		adapter.SetPage(q.Page)
	}

	return response.OK(c, adapter.Snapshot())
}

// CreateSession handles POST /api/v1/sessions
//
// @Summary Create a filter session
// @Description Start a stateful listing. Query parameters copied from a share URL (page, pageSize, state) restore that listing.
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body CreateSessionRequest false "Initial filters and sort"
// @Param page query int false "Page from a share URL"
// @Param pageSize query int false "Page size from a share URL"
// @Param state query string false "State key from a share URL"
// @Success 201 {object} SessionResponse
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 503 {object} response.ErrorDetail "Session limit reached"
// @Router /sessions [post]
func (h *RoomHandler) CreateSession(c echo.Context) error {
	var req CreateSessionRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	shared, err := urlstate.Decode(c.QueryParams())
	if err != nil {
		return response.ValidationErrorWithMessage(c, err.Error())
	}
	if err := ValidateSharedState(shared); err != nil {
		return h.handleValidationError(c, err)
	}

	s, err := h.sessions.Create(ToCreateParams(&req, shared))
	if err != nil {
		return h.handleError(c, err)
	}

	return response.Created(c, ToSessionResponse(s))
}

// GetSession handles GET /api/v1/sessions/:id
//
// @Summary Get a session's listing
// @Description Returns the current listing. With settle=true pending search and filter work is applied first.
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Param settle query bool false "Apply pending work before responding"
// @Success 200 {object} SessionResponse
// @Failure 404 {object} response.ErrorDetail "Session not found"
// @Router /sessions/{id} [get]
func (h *RoomHandler) GetSession(c echo.Context) error {
	return h.withSession(c, func(s *session.Session) error { return nil })
}

// UpdateFilter handles PATCH /api/v1/sessions/:id/filters
//
// @Summary Set one filter
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param settle query bool false "Apply pending work before responding"
// @Param request body UpdateFilterRequest true "Filter key and value"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 404 {object} response.ErrorDetail "Session not found"
// @Router /sessions/{id}/filters [patch]
func (h *RoomHandler) UpdateFilter(c echo.Context) error {
	var req UpdateFilterRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}
	key, err := req.Validate()
	if err != nil {
		return h.handleValidationError(c, err)
	}

	return h.withSession(c, func(s *session.Session) error {
		return s.Rooms.UpdateFilter(key, req.Value)
	})
}

// ClearFilters handles DELETE /api/v1/sessions/:id/filters
//
// @Summary Clear all filters
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Param settle query bool false "Apply pending work before responding"
// @Success 200 {object} SessionResponse
// @Failure 404 {object} response.ErrorDetail "Session not found"
// @Router /sessions/{id}/filters [delete]
func (h *RoomHandler) ClearFilters(c echo.Context) error {
	return h.withSession(c, func(s *session.Session) error {
		s.Rooms.ClearAllFilters()
		return nil
	})
}

// UpdateSearch handles PUT /api/v1/sessions/:id/search
//
// @Summary Set the search text
// @Description The text is applied after the search debounce period unless settle=true.
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param settle query bool false "Apply pending work before responding"
// @Param request body SearchRequest true "Search text"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} response.ErrorDetail "Invalid request body"
// @Failure 404 {object} response.ErrorDetail "Session not found"
// @Router /sessions/{id}/search [put]
func (h *RoomHandler) UpdateSearch(c echo.Context) error {
	var req SearchRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	return h.withSession(c, func(s *session.Session) error {
		s.Rooms.UpdateSearch(req.Text)
		return nil
	})
}

// UpdatePriceRange handles PUT /api/v1/sessions/:id/price
//
// @Summary Set the price range
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param settle query bool false "Apply pending work before responding"
// @Param request body PriceRangeRequest true "Price bounds"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} response.ErrorDetail "Invalid request body"
// @Failure 404 {object} response.ErrorDetail "Session not found"
// @Router /sessions/{id}/price [put]
func (h *RoomHandler) UpdatePriceRange(c echo.Context) error {
	var req PriceRangeRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	return h.withSession(c, func(s *session.Session) error {
		s.Rooms.UpdatePriceRange(req.Min, req.Max)
		return nil
	})
}

// ToggleAmenity handles POST /api/v1/sessions/:id/amenities/:name/toggle
//
// @Summary Toggle a required amenity
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Param name path string true "Amenity name"
// @Param settle query bool false "Apply pending work before responding"
// @Success 200 {object} SessionResponse
// @Failure 404 {object} response.ErrorDetail "Session not found"
// @Router /sessions/{id}/amenities/{name}/toggle [post]
func (h *RoomHandler) ToggleAmenity(c echo.Context) error {
	name := c.Param("name")
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}

	return h.withSession(c, func(s *session.Session) error {
		s.Rooms.ToggleAmenity(name)
		return nil
	})
}

// SetSort handles PUT /api/v1/sessions/:id/sort
//
// @Summary Set the sort option
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param settle query bool false "Apply pending work before responding"
// @Param request body SortRequest true "Sort option"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 404 {object} response.ErrorDetail "Session not found"
// @Router /sessions/{id}/sort [put]
func (h *RoomHandler) SetSort(c echo.Context) error {
	var req SortRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}
	opt, err := req.Validate()
	if err != nil {
		return h.handleValidationError(c, err)
	}

	return h.withSession(c, func(s *session.Session) error {
		return s.Rooms.SetSortBy(opt)
	})
}

// SetPage handles PUT /api/v1/sessions/:id/page
//
// @Summary Change page or page size
// @Description Changing the page size returns to page 1 unless a page is given too.
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param settle query bool false "Apply pending work before responding"
// @Param request body PageRequest true "Page and page size"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 404 {object} response.ErrorDetail "Session not found"
// @Router /sessions/{id}/page [put]
func (h *RoomHandler) SetPage(c echo.Context) error {
	var req PageRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}
	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	return h.withSession(c, func(s *session.Session) error {
		if req.PageSize != nil {
			s.Rooms.SetPageSize(*req.PageSize)
		}
		if req.Page != nil {
			s.Rooms.SetPage(*req.Page)
		}
		return nil
	})
}

// DeleteSession handles DELETE /api/v1/sessions/:id
//
// @Summary End a session
// @Tags sessions
// @Param id path string true "Session ID"
// @Success 204
// @Failure 404 {object} response.ErrorDetail "Session not found"
// @Router /sessions/{id} [delete]
func (h *RoomHandler) DeleteSession(c echo.Context) error {
	if err := h.sessions.Delete(c.Param("id")); err != nil {
		return h.handleError(c, err)
	}
	return response.NoContent(c)
}

// Health handles GET /health
func (h *RoomHandler) Health(c echo.Context) error {
	return response.Health(c, len(h.sessions.Catalog()), h.sessions.Len())
}

// withSession looks up the session, applies fn and writes the resulting listing.
func (h *RoomHandler) withSession(c echo.Context, fn func(s *session.Session) error) error {
	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		return h.handleError(c, err)
	}
	if err := fn(s); err != nil {
		return h.handleError(c, err)
	}

	if settle, _ := strconv.ParseBool(c.QueryParam("settle")); settle {
		s.Rooms.Flush()
	}
	return response.OK(c, ToSessionResponse(s))
}

// handleValidationError handles validation errors and returns a 400 response.
func (h *RoomHandler) handleValidationError(c echo.Context, err error) error {
	var validationErrs *ValidationErrors
	if errors.As(err, &validationErrs) {
		return response.ValidationError(c, validationErrs.ToMap())
	}

	// Fallback for non-structured validation errors
	return response.ValidationErrorWithMessage(c, err.Error())
}

// handleError maps domain errors to appropriate HTTP responses.
func (h *RoomHandler) handleError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return response.SessionNotFound(c)
	case errors.Is(err, session.ErrSessionLimit):
		return response.SessionLimit(c)
	case errors.Is(err, domain.ErrInvalidRequest),
		errors.Is(err, domain.ErrUnknownFilter),
		errors.Is(err, domain.ErrInvalidFilterValue),
		errors.Is(err, domain.ErrUnknownSortOption):
		return response.ValidationErrorWithMessage(c, err.Error())
	default:
		return response.InternalServerError(c)
	}
}
