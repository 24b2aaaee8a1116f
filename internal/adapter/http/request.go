// Package http provides the HTTP handler layer for the room filter API.
// It handles request parsing, validation, and response formatting.
package http

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gorilla/schema"

	"github.com/hotel-site/room-filter/internal/domain"
	"github.com/hotel-site/room-filter/internal/urlstate"
)

const (
	// maxPageSize bounds page sizes accepted from clients.
	maxPageSize = 100

	// maxPage bounds page numbers accepted from clients.
	maxPage = 100_000
)

// RoomQuery is the query string of GET /api/v1/rooms.
// Example: ?search=suite&minPrice=100&amenities=WiFi&amenities=Minibar&sortBy=price-asc&page=1&pageSize=10
type RoomQuery struct {
	domain.RoomFilters

	// SortBy is one of: price-asc, price-desc, capacity, size, name (optional)
	SortBy string `schema:"sortBy"`

	// Page is the 1-based page number (optional, defaults to 1)
	Page int `schema:"page"`

	// PageSize enables pagination when positive (optional)
	PageSize int `schema:"pageSize"`
}

// CreateSessionRequest is the request body for POST /api/v1/sessions.
type CreateSessionRequest struct {
	// Filters is the initial filter selection (optional)
	Filters *domain.RoomFilters `json:"filters,omitempty"`

	// SortBy is the initial sort (optional)
	SortBy string `json:"sortBy,omitempty" example:"price-asc"`

	// PageSize enables pagination when positive (optional)
	PageSize int `json:"pageSize,omitempty" example:"10"`

	// Resume is the ID of an expired session whose sort and page should be restored (optional)
	Resume string `json:"resume,omitempty"`
}

// UpdateFilterRequest sets a single filter.
// Example: {"key": "capacity", "value": "4"} or {"key": "amenities", "value": ["WiFi"]}
type UpdateFilterRequest struct {
	// Key is one of: search, minPrice, maxPrice, capacity, amenities, available, featured
	Key string `json:"key" example:"capacity"`

	// Value is text for search, price and capacity, a list for amenities, a boolean for flags.
	// null clears the filter.
	Value any `json:"value" swaggertype:"string" example:"4"`
}

// SearchRequest sets the search text.
type SearchRequest struct {
	Text string `json:"text" example:"suite"`
}

// PriceRangeRequest sets both price bounds. Empty strings remove a bound.
type PriceRangeRequest struct {
	Min string `json:"min" example:"100"`
	Max string `json:"max" example:"300"`
}

// SortRequest sets the sort option. An empty value keeps catalog order.
type SortRequest struct {
	SortBy string `json:"sortBy" example:"name"`
}

// PageRequest moves to a page and optionally changes the page size.
type PageRequest struct {
	Page     *int `json:"page,omitempty" example:"2"`
	PageSize *int `json:"pageSize,omitempty" example:"10"`
}

// queryDecoder decodes RoomQuery. Unknown keys such as "settle" are ignored.
var queryDecoder = newQueryDecoder()

func newQueryDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

// ValidationError represents a field-level validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors holds multiple validation errors.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "validation failed"
	}
	return v.Errors[0].Message
}

// Add adds a validation error.
func (v *ValidationErrors) Add(field, message string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// ToMap converts validation errors to a map for API response.
func (v *ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v.Errors))
	for _, e := range v.Errors {
		result[e.Field] = e.Message
	}
	return result
}

// DecodeRoomQuery decodes and validates the query string of a room listing.
func DecodeRoomQuery(values url.Values) (RoomQuery, error) {
	var q RoomQuery
	if err := queryDecoder.Decode(&q, values); err != nil {
		return RoomQuery{}, decodeErrors(err)
	}
	if err := q.Validate(); err != nil {
		return RoomQuery{}, err
	}
	return q, nil
}

// decodeErrors turns gorilla/schema conversion errors into field errors.
func decodeErrors(err error) error {
	errs := &ValidationErrors{}
	if multi, ok := err.(schema.MultiError); ok {
		for field, e := range multi {
			errs.Add(field, fmt.Sprintf("%s is invalid: %v", field, unwrapConversion(e)))
		}
		return errs
	}
	errs.Add("query", err.Error())
	return errs
}

func unwrapConversion(err error) error {
	if conv, ok := err.(schema.ConversionError); ok && conv.Err != nil {
		return conv.Err
	}
	return err
}

// Validate validates the room query.
func (q *RoomQuery) Validate() error {
	errs := &ValidationErrors{}
	validateSortBy(errs, q.SortBy)
	validatePaging(errs, &q.Page, &q.PageSize)

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// Validate validates the session request.
func (r *CreateSessionRequest) Validate() error {
	errs := &ValidationErrors{}
	validateSortBy(errs, r.SortBy)
	if r.PageSize < 0 || r.PageSize > maxPageSize {
		errs.Add("pageSize", fmt.Sprintf("pageSize must be between 0 and %d", maxPageSize))
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// Validate validates the filter update and returns the parsed key.
func (r *UpdateFilterRequest) Validate() (domain.FilterKey, error) {
	key, err := domain.ParseFilterKey(r.Key)
	if err != nil {
		errs := &ValidationErrors{}
		if strings.TrimSpace(r.Key) == "" {
			errs.Add("key", "key is required")
		} else {
			errs.Add("key", err.Error())
		}
		return "", errs
	}
	return key, nil
}

// Validate validates the sort request.
func (r *SortRequest) Validate() (domain.SortOption, error) {
	opt, err := domain.ParseSortOption(r.SortBy)
	if err != nil {
		errs := &ValidationErrors{}
		errs.Add("sortBy", err.Error())
		return "", errs
	}
	return opt, nil
}

// Validate validates the page request.
func (r *PageRequest) Validate() error {
	errs := &ValidationErrors{}
	if r.Page == nil && r.PageSize == nil {
		errs.Add("page", "page or pageSize is required")
	}
	if r.Page != nil && (*r.Page < 1 || *r.Page > maxPage) {
		errs.Add("page", fmt.Sprintf("page must be between 1 and %d", maxPage))
	}
	if r.PageSize != nil && (*r.PageSize < 0 || *r.PageSize > maxPageSize) {
		errs.Add("pageSize", fmt.Sprintf("pageSize must be between 0 and %d", maxPageSize))
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// ValidateSharedState checks page state read from a share URL.
func ValidateSharedState(s urlstate.PageState) error {
	errs := &ValidationErrors{}
	page, pageSize := s.Page, s.PageSize
	validatePaging(errs, &page, &pageSize)

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func validateSortBy(errs *ValidationErrors, sortBy string) {
	if _, err := domain.ParseSortOption(sortBy); err != nil {
		errs.Add("sortBy", fmt.Sprintf("sortBy must be one of: %s", sortOptionList()))
	}
}

func validatePaging(errs *ValidationErrors, page, pageSize *int) {
	if *page < 0 || *page > maxPage {
		errs.Add("page", fmt.Sprintf("page must be between 0 and %d", maxPage))
	}
	if *page == 0 {
		*page = 1
	}
	if *pageSize < 0 || *pageSize > maxPageSize {
		errs.Add("pageSize", fmt.Sprintf("pageSize must be between 0 and %d", maxPageSize))
	}
}

func sortOptionList() string {
	names := make([]string, len(domain.SortOptions))
	for i, o := range domain.SortOptions {
		names[i] = string(o)
	}
	return strings.Join(names, ", ")
}
