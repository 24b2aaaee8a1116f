package http

import (
	"math"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotel-site/room-filter/internal/domain"
	"github.com/hotel-site/room-filter/internal/session"
	"github.com/hotel-site/room-filter/internal/urlstate"
	"github.com/hotel-site/room-filter/test/testutil"
)

func TestDecodeRoomQuery(t *testing.T) {
	values, err := url.ParseQuery("search=sea+view&minPrice=100&maxPrice=300&capacity=2" +
		"&amenities=WiFi&amenities=Minibar&available=true&featured=false" +
		"&sortBy=price-asc&page=3&pageSize=20&settle=true")
	require.NoError(t, err)

	q, err := DecodeRoomQuery(values)
	require.NoError(t, err)

	assert.Equal(t, domain.RoomFilters{
		Search:    "sea view",
		MinPrice:  "100",
		MaxPrice:  "300",
		Capacity:  "2",
		Amenities: []string{"WiFi", "Minibar"},
		Available: true,
	}, q.RoomFilters)
	assert.Equal(t, "price-asc", q.SortBy)
	assert.Equal(t, 3, q.Page)
	assert.Equal(t, 20, q.PageSize)
}

func TestDecodeRoomQuery_Defaults(t *testing.T) {
	q, err := DecodeRoomQuery(url.Values{})
	require.NoError(t, err)

	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 0, q.PageSize)
	assert.Empty(t, q.SortBy)
}

func TestRoomQuery_Validate(t *testing.T) {
	tests := []struct {
		name       string
		query      RoomQuery
		wantFields []string
	}{
		{name: "valid", query: RoomQuery{SortBy: "name", Page: 2, PageSize: 10}},
		{name: "padded sort", query: RoomQuery{SortBy: " size "}},
		{name: "unknown sort", query: RoomQuery{SortBy: "stars"}, wantFields: []string{"sortBy"}},
		{name: "negative page", query: RoomQuery{Page: -2}, wantFields: []string{"page"}},
		{name: "page size bounds", query: RoomQuery{PageSize: maxPageSize + 1}, wantFields: []string{"pageSize"}},
		{name: "several", query: RoomQuery{SortBy: "x", PageSize: -1}, wantFields: []string{"sortBy", "pageSize"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.Validate()
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			var errs *ValidationErrors
			require.ErrorAs(t, err, &errs)
			fields := errs.ToMap()
			assert.Len(t, fields, len(tt.wantFields))
			for _, f := range tt.wantFields {
				assert.Contains(t, fields, f)
			}
		})
	}
}

func TestUpdateFilterRequest_Validate(t *testing.T) {
	key, err := (&UpdateFilterRequest{Key: "amenities"}).Validate()
	require.NoError(t, err)
	assert.Equal(t, domain.FilterAmenities, key)

	_, err = (&UpdateFilterRequest{Key: ""}).Validate()
	var errs *ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "key is required", errs.ToMap()["key"])

	_, err = (&UpdateFilterRequest{Key: "stars"}).Validate()
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap()["key"], "unknown filter")
}

func TestSortRequest_Validate(t *testing.T) {
	opt, err := (&SortRequest{SortBy: "capacity"}).Validate()
	require.NoError(t, err)
	assert.Equal(t, domain.SortByCapacity, opt)

	opt, err = (&SortRequest{}).Validate()
	require.NoError(t, err)
	assert.Equal(t, domain.SortNone, opt)

	_, err = (&SortRequest{SortBy: "popular"}).Validate()
	assert.Error(t, err)
}

func TestPageRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     PageRequest
		wantErr bool
	}{
		{name: "page only", req: PageRequest{Page: testutil.Ptr(2)}},
		{name: "page size only", req: PageRequest{PageSize: testutil.Ptr(0)}},
		{name: "both", req: PageRequest{Page: testutil.Ptr(1), PageSize: testutil.Ptr(25)}},
		{name: "empty", req: PageRequest{}, wantErr: true},
		{name: "page zero", req: PageRequest{Page: testutil.Ptr(0)}, wantErr: true},
		{name: "page size too large", req: PageRequest{PageSize: testutil.Ptr(maxPageSize + 1)}, wantErr: true},
		{name: "page too large", req: PageRequest{Page: testutil.Ptr(math.MaxInt / 2)}, wantErr: true},
		{name: "largest page", req: PageRequest{Page: testutil.Ptr(maxPage)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateSharedState(t *testing.T) {
	tests := []struct {
		name      string
		state     urlstate.PageState
		wantField string
	}{
		{name: "empty", state: urlstate.PageState{}},
		{name: "paged", state: urlstate.PageState{Page: 3, PageSize: 10, State: "rooms:x"}},
		{name: "negative page", state: urlstate.PageState{Page: -2, PageSize: 10}, wantField: "page"},
		{name: "page overflow", state: urlstate.PageState{Page: math.MaxInt / 2, PageSize: 4}, wantField: "page"},
		{name: "page size too large", state: urlstate.PageState{Page: 1, PageSize: maxPageSize + 1}, wantField: "pageSize"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSharedState(tt.state)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var errs *ValidationErrors
			require.ErrorAs(t, err, &errs)
			assert.Contains(t, errs.ToMap(), tt.wantField)
		})
	}
}

func TestValidationErrors(t *testing.T) {
	errs := &ValidationErrors{}
	assert.False(t, errs.HasErrors())
	assert.Equal(t, "validation failed", errs.Error())

	errs.Add("sortBy", "sortBy is invalid")
	errs.Add("page", "page must be at least 1")

	assert.True(t, errs.HasErrors())
	assert.Equal(t, "sortBy is invalid", errs.Error())
	assert.Equal(t, map[string]string{
		"sortBy": "sortBy is invalid",
		"page":   "page must be at least 1",
	}, errs.ToMap())
}

func TestToCreateParams(t *testing.T) {
	id := "0b6f4c38-2f5d-4f8e-8c57-7a1f4d9e3c21"

	tests := []struct {
		name   string
		req    CreateSessionRequest
		shared urlstate.PageState
		want   session.CreateParams
	}{
		{
			name: "body only",
			req:  CreateSessionRequest{Filters: &domain.RoomFilters{Search: "suite"}, SortBy: " name ", PageSize: 5},
			want: session.CreateParams{
				Filters:  domain.RoomFilters{Search: "suite", Amenities: []string{}},
				SortBy:   domain.SortByName,
				PageSize: 5,
			},
		},
		{
			name:   "share url fills gaps",
			shared: urlstate.PageState{Page: 2, PageSize: 10, State: "rooms:" + id},
			want:   session.CreateParams{PageSize: 10, Page: 2, Resume: id},
		},
		{
			name:   "body wins over share url",
			req:    CreateSessionRequest{PageSize: 3, Resume: "other"},
			shared: urlstate.PageState{PageSize: 10, State: "rooms:" + id},
			want:   session.CreateParams{PageSize: 3, Page: 1, Resume: "other"},
		},
		{
			name:   "page without page size is ignored",
			shared: urlstate.PageState{Page: 4},
			want:   session.CreateParams{},
		},
		{
			name:   "foreign state key",
			shared: urlstate.PageState{State: "listing"},
			want:   session.CreateParams{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToCreateParams(&tt.req, tt.shared))
		})
	}
}
