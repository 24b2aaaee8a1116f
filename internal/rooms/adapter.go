package rooms

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/hotel-site/room-filter/internal/debounce"
	"github.com/hotel-site/room-filter/internal/domain"
	"github.com/hotel-site/room-filter/internal/infrastructure/logger"
	"github.com/hotel-site/room-filter/internal/query"
)

// DefaultSearchDebounce is the quiet period before search text is applied.
const DefaultSearchDebounce = 300 * time.Millisecond

// Options configures an Adapter.
type Options struct {
	// InitialFilters is the starting filter selection.
	InitialFilters domain.RoomFilters

	// SortBy is the starting sort. A key sort restored from Engine.Storage takes precedence.
	SortBy domain.SortOption

	// PageSize enables pagination when positive.
	PageSize int

	// SearchDebounce delays applying search text. Zero uses DefaultSearchDebounce;
	// a negative value applies it immediately.
	SearchDebounce time.Duration

	// Locale is the BCP 47 tag used to order room names. Empty means English.
	Locale string

	// Engine is passed to the underlying query engine. SortKeys is overwritten.
	Engine query.Options[AugmentedRoom]
}

// Adapter exposes the room filter vocabulary over a query.Engine.
// It is safe for concurrent use.
type Adapter struct {
	mu      sync.Mutex
	source  []domain.Room
	filters domain.RoomFilters
	sortBy  domain.SortOption
	closed  bool

	collator *collate.Collator
	revs     *revisions

	// search publishes Filters().Search to the engine after the quiet period.
	// nil when search text applies immediately.
	search *debounce.Value[string]

	// searchMu serializes publications of search text into the engine.
	searchMu sync.Mutex

	engine *query.Engine[AugmentedRoom]
	log    zerolog.Logger
}

// New creates an Adapter over rooms. The initial view is computed before New returns.
// Returns a wrapped ErrUnknownSortOption or ErrInvalidRequest for bad options.
func New(rooms []domain.Room, opts *Options) (*Adapter, error) {
	var o Options
	if opts != nil {
		o = *opts
	}
	if !o.SortBy.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownSortOption, o.SortBy)
	}
	if o.SearchDebounce == 0 {
		o.SearchDebounce = DefaultSearchDebounce
	}

	tag := language.English
	if o.Locale != "" {
		t, err := language.Parse(o.Locale)
		if err != nil {
			return nil, fmt.Errorf("%w: locale %q: %v", domain.ErrInvalidRequest, o.Locale, err)
		}
		tag = t
	}

	a := &Adapter{
		source:   rooms,
		filters:  o.InitialFilters.Clone(),
		sortBy:   o.SortBy,
		collator: collate.New(tag),
		revs:     newRevisions(),
		log:      logger.WithComponent(o.Engine.Logger, "rooms"),
	}

	filters := query.FilterMap[AugmentedRoom]{}
	if pred, sig := searchPredicate(a.filters.Search); pred != nil {
		filters[keySearch] = a.criterion(keySearch, pred, sig)
	}
	for _, d := range dimensions {
		if pred, sig := d.build(a.filters); pred != nil {
			filters[d.key] = a.criterion(d.key, pred, sig)
		}
	}

	var pagination *query.Pagination
	if o.PageSize > 0 {
		pagination = &query.Pagination{Page: 1, PageSize: o.PageSize}
	}

	engineOpts := o.Engine
	engineOpts.SortKeys = sortKeys
	a.engine = query.New(augment(rooms, a.collator), filters, sortSpec(o.SortBy), pagination, &engineOpts)

	if restored, ok := a.engine.Sort().(query.KeySort[AugmentedRoom]); ok {
		opt, err := sortOptionFor(restored)
		if err != nil {
			a.log.Debug().Err(err).Msg("Discarding restored sort")
			a.engine.SetSort(sortSpec(o.SortBy))
			a.engine.Flush()
		} else {
			a.sortBy = opt
		}
	}

	if o.SearchDebounce > 0 {
		a.search = debounce.NewValue(engineOpts.Clock, a.filters.Search, o.SearchDebounce, a.applySearch)
	}

	a.log.Debug().
		Int("rooms", len(rooms)).
		Str("sort_by", string(a.sortBy)).
		Int("active_filters", a.filters.ActiveCount()).
		Msg("Room adapter ready")

	return a, nil
}

// SetRooms replaces the room collection. The lookup cache is rebuilt only when
// rooms is a different slice from the current one.
func (a *Adapter) SetRooms(rooms []domain.Room) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed || sameSlice(a.source, rooms) {
		return
	}
	a.source = rooms
	a.engine.SetData(augment(rooms, a.collator))
}

// UpdateFilter sets one filter field. See domain.RoomFilters.Set for accepted values.
func (a *Adapter) UpdateFilter(key domain.FilterKey, value any) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil
	}
	next := a.filters.Clone()
	if err := next.Set(key, value); err != nil {
		return err
	}
	a.applyLocked(next, key)
	return nil
}

// UpdateSearch sets the search text. The engine sees it after the search debounce.
func (a *Adapter) UpdateSearch(text string) {
	a.update(func(f *domain.RoomFilters) { f.Search = text }, domain.FilterSearch)
}

// UpdatePriceRange sets both price bounds. Empty or non-numeric bounds are unset.
func (a *Adapter) UpdatePriceRange(minPrice, maxPrice string) {
	a.update(func(f *domain.RoomFilters) {
		f.MinPrice = minPrice
		f.MaxPrice = maxPrice
	}, domain.FilterMinPrice)
}

// ToggleAmenity adds the amenity when absent and removes it when present, ignoring case.
func (a *Adapter) ToggleAmenity(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	a.update(func(f *domain.RoomFilters) {
		match := func(s string) bool { return strings.EqualFold(s, name) }
		if slices.ContainsFunc(f.Amenities, match) {
			f.Amenities = slices.DeleteFunc(f.Amenities, match)
			return
		}
		f.Amenities = append(f.Amenities, name)
	}, domain.FilterAmenities)
}

// SetSortBy changes the sort and resets the page to 1.
func (a *Adapter) SetSortBy(opt domain.SortOption) error {
	if !opt.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownSortOption, opt)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil
	}
	a.sortBy = opt
	a.engine.SetSort(sortSpec(opt))
	a.resetPageLocked()
	return nil
}

// ClearAllFilters resets every filter field and clears the engine's filters.
func (a *Adapter) ClearAllFilters() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return
	}
	a.filters = domain.RoomFilters{}.Clone()
	if a.search != nil {
		a.search.Set("")
		a.search.Flush()
	}
	a.revs.reset()
	a.engine.ClearFilters()
}

// SetPage moves to page n.
func (a *Adapter) SetPage(n int) { a.engine.SetPage(n) }

// SetPageSize changes the page size and resets the page to 1. Zero shows every room.
func (a *Adapter) SetPageSize(n int) { a.engine.SetPageSize(n) }

// Rooms returns the current page of matching rooms.
func (a *Adapter) Rooms() []domain.Room { return plain(a.engine.Items()) }

// Total returns the number of matching rooms before pagination.
func (a *Adapter) Total() int { return a.engine.Total() }

// IsFiltering reports whether search text or a recompute is still pending.
func (a *Adapter) IsFiltering() bool {
	return a.engine.IsFiltering() || a.searchPending()
}

// Filters returns a copy of the current filter selection.
func (a *Adapter) Filters() domain.RoomFilters {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.filters.Clone()
}

// SortBy returns the active sort option.
func (a *Adapter) SortBy() domain.SortOption {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sortBy
}

// Pagination returns the engine's pagination, or nil when disabled.
func (a *Adapter) Pagination() *query.Pagination { return a.engine.Pagination() }

// AllRooms returns the unfiltered room collection the engine works on.
func (a *Adapter) AllRooms() []domain.Room { return plain(a.engine.Data()) }

// FilterStats summarizes the current filters against the engine's total.
func (a *Adapter) FilterStats() domain.FilterStats {
	matching := a.engine.Total()
	total := len(a.engine.Data())

	a.mu.Lock()
	defer a.mu.Unlock()
	return domain.NewFilterStats(a.filters, matching, total)
}

// Snapshot returns the current listing with filters, stats and pagination.
func (a *Adapter) Snapshot() domain.RoomListResponse {
	view := a.engine.Snapshot()
	pending := view.IsFiltering || a.searchPending()
	total := len(a.engine.Data())

	a.mu.Lock()
	filters := a.filters.Clone()
	sortBy := a.sortBy
	a.mu.Unlock()

	page := domain.PageInfo{Page: 1, TotalPages: view.TotalPages}
	if view.Pagination != nil {
		page.Page = view.Pagination.Page
		page.PageSize = view.Pagination.PageSize
	}

	return domain.NewRoomListResponse(
		filters,
		sortBy,
		domain.NewFilterStats(filters, view.Total, total),
		page,
		pending,
		plain(view.Items),
	)
}

// Flush applies pending search text and recomputes immediately.
func (a *Adapter) Flush() {
	if a.search != nil {
		a.search.Flush()
	}
	a.engine.Flush()
}

// Close cancels pending work. Later mutations are ignored.
func (a *Adapter) Close() {
	a.mu.Lock()
	a.closed = true
	a.mu.Unlock()

	if a.search != nil {
		a.search.Cancel()
	}
	a.engine.Close()
}

func (a *Adapter) update(fn func(f *domain.RoomFilters), key domain.FilterKey) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return
	}
	next := a.filters.Clone()
	fn(&next)
	a.applyLocked(next, key)
}

// applyLocked stores next and pushes the dimension owning key to the engine.
// Any change to the filter values resets the page to 1.
func (a *Adapter) applyLocked(next domain.RoomFilters, key domain.FilterKey) {
	changed := !sameFilters(a.filters, next)
	a.filters = next

	dim := dimensionFor(key)
	if dim == keySearch {
		if a.search != nil {
			a.search.Set(next.Search)
		} else {
			a.applySearch(next.Search)
		}
	} else {
		for _, d := range dimensions {
			if d.key == dim {
				pred, sig := d.build(next)
				a.setCriterion(d.key, pred, sig)
			}
		}
	}

	if changed {
		a.resetPageLocked()
	}
}

// applySearch runs when debounced search text is published. A publication
// overtaken by a newer one is dropped.
func (a *Adapter) applySearch(text string) {
	a.searchMu.Lock()
	defer a.searchMu.Unlock()

	if a.search != nil && text != a.search.Get() {
		return
	}
	pred, sig := searchPredicate(text)
	a.setCriterion(keySearch, pred, sig)
}

func (a *Adapter) setCriterion(key string, pred query.Predicate[AugmentedRoom], sig string) {
	if pred == nil {
		a.revs.forget(key)
		a.engine.RemoveFilter(key)
		return
	}
	a.engine.SetFilter(key, a.criterion(key, pred, sig))
}

func (a *Adapter) criterion(key string, pred query.Predicate[AugmentedRoom], sig string) query.Criterion[AugmentedRoom] {
	return query.Criterion[AugmentedRoom]{
		Predicate: pred,
		Mode:      query.And,
		Revision:  a.revs.revision(key, sig),
	}
}

func (a *Adapter) resetPageLocked() {
	if p := a.engine.Pagination(); p != nil && p.Page != 1 {
		a.engine.SetPage(1)
	}
}

func (a *Adapter) searchPending() bool {
	return a.search != nil && a.search.Pending()
}

func sameFilters(x, y domain.RoomFilters) bool {
	return x.Search == y.Search &&
		x.MinPrice == y.MinPrice &&
		x.MaxPrice == y.MaxPrice &&
		x.Capacity == y.Capacity &&
		x.Available == y.Available &&
		x.Featured == y.Featured &&
		slices.Equal(x.Amenities, y.Amenities)
}

func sameSlice(x, y []domain.Room) bool {
	if len(x) != len(y) {
		return false
	}
	return len(x) == 0 || &x[0] == &y[0]
}
