// Package urlstate keeps the shareable address of a listing in sync with its page state.
package urlstate

import (
	"fmt"
	"net/url"
	"sync"

	"github.com/gorilla/schema"

	"github.com/hotel-site/room-filter/internal/query"
)

// PageState is the page state carried in a listing's query string.
type PageState struct {
	Page     int    `schema:"page,omitempty"`
	PageSize int    `schema:"pageSize,omitempty"`
	State    string `schema:"state,omitempty"`
}

var (
	decoder = newDecoder()
	encoder = schema.NewEncoder()
)

func newDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

// Location is an in-memory address that implements query.URLStateWriter.
// Replace rewrites only the query parameters it is given, like a history
// replace that does not navigate. It is safe for concurrent use.
type Location struct {
	mu  sync.RWMutex
	url url.URL
}

// New creates a Location from a raw address such as "/rooms?view=grid".
func New(raw string) (*Location, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("urlstate: parse %q: %w", raw, err)
	}
	return &Location{url: *u}, nil
}

// Replace implements query.URLStateWriter. The page parameters are rewritten
// from s and dropped when zero; state is only touched when s carries one.
// Unrelated parameters are kept.
func (l *Location) Replace(s query.URLState) {
	params, err := Encode(PageState(s))
	if err != nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	q := l.url.Query()
	q.Del("page")
	q.Del("pageSize")
	for key, values := range params {
		q[key] = values
	}
	l.url.RawQuery = q.Encode()
}

// String returns the current address.
func (l *Location) String() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.url.String()
}

// Decode reads page state from query parameters. Unknown keys are ignored.
func Decode(q url.Values) (PageState, error) {
	var s PageState
	if err := decoder.Decode(&s, q); err != nil {
		return PageState{}, fmt.Errorf("urlstate: decode page state: %w", err)
	}
	return s, nil
}

// Encode writes the page state as query parameters, omitting zero fields.
func Encode(s PageState) (url.Values, error) {
	q := url.Values{}
	if err := encoder.Encode(s, q); err != nil {
		return nil, fmt.Errorf("urlstate: encode page state: %w", err)
	}
	return q, nil
}

// Pagination converts the page state into engine pagination.
// It returns nil when the state carries no page size.
func (s PageState) Pagination() *query.Pagination {
	if s.PageSize <= 0 {
		return nil
	}
	p := query.Pagination{Page: s.Page, PageSize: s.PageSize}.Normalize()
	return &p
}

var _ query.URLStateWriter = (*Location)(nil)
