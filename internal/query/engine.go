package query

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/hotel-site/room-filter/internal/debounce"
	"github.com/hotel-site/room-filter/internal/infrastructure/logger"
	"github.com/hotel-site/room-filter/internal/infrastructure/timeutil"
)

// DefaultDebounce is the quiet period before a filter/sort change is recomputed.
const DefaultDebounce = 150 * time.Millisecond

// Options configures an Engine.
type Options[T any] struct {
	// Debounce delays the filter/sort recompute. Zero uses DefaultDebounce;
	// a negative value recomputes synchronously inside each mutation.
	Debounce time.Duration

	// StorageKey enables persistence of sort and pagination under this key.
	StorageKey string

	// SyncURL mirrors page and pageSize into URLWriter.
	SyncURL bool

	Storage   Storage
	URLWriter URLStateWriter

	// SortKeys resolves KeySort names to accessors.
	SortKeys map[string]Accessor[T]

	Clock  timeutil.Clock
	Logger zerolog.Logger
}

// View is a consistent read of the engine's derived outputs.
type View[T any] struct {
	// Items is the current page of filtered and sorted data.
	Items []T

	// Total is the filtered count before pagination.
	Total int

	TotalPages int

	// IsFiltering is true while a debounced recompute is pending.
	IsFiltering bool

	Pagination *Pagination
}

// Engine holds a filter set, sort and pagination over a collection and
// recomputes the filtered, sorted view once changes have settled.
type Engine[T any] struct {
	mu   sync.Mutex
	opts Options[T]
	log  zerolog.Logger

	data       []T
	filters    FilterMap[T]
	sort       SortSpec[T]
	pagination *Pagination

	// version counts data/filter/sort changes; computed is the version
	// that sorted reflects.
	version  uint64
	computed uint64
	sorted   []T

	// fault holds a panic from a timer-driven recompute until the next read.
	fault  any
	closed bool

	recompute *debounce.Func
}

// New creates an Engine and computes the initial view synchronously.
// When opts.StorageKey is set, a stored sort/pagination snapshot replaces the
// initial values; unreadable snapshots are ignored.
func New[T any](data []T, filters FilterMap[T], sort SortSpec[T], pagination *Pagination, opts *Options[T]) *Engine[T] {
	var o Options[T]
	if opts != nil {
		o = *opts
	}
	if o.Debounce == 0 {
		o.Debounce = DefaultDebounce
	}
	if o.Clock == nil {
		o.Clock = timeutil.NewRealClock()
	}

	e := &Engine[T]{
		opts:    o,
		log:     logger.WithComponent(o.Logger, "query_engine"),
		data:    data,
		filters: filters.Clone(),
		sort:    sort,
	}
	if pagination != nil {
		np := pagination.Normalize()
		e.pagination = &np
	}

	e.rehydrate()

	if o.Debounce > 0 {
		e.recompute = debounce.New(o.Clock, o.Debounce, e.recomputeNow)
	}

	e.recomputeNow()
	e.raiseFault()

	e.mu.Lock()
	e.stateChangedLocked()
	e.mu.Unlock()

	return e
}

func (e *Engine[T]) rehydrate() {
	if e.opts.StorageKey == "" || e.opts.Storage == nil {
		return
	}

	raw, err := e.opts.Storage.Get(e.opts.StorageKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			e.log.Debug().Err(err).Str("storage_key", e.opts.StorageKey).Msg("Failed to read stored state")
		}
		return
	}

	spec, p, err := decodeState(raw, e.opts.SortKeys)
	if err != nil {
		e.log.Debug().Err(err).Str("storage_key", e.opts.StorageKey).Msg("Ignoring corrupt stored state")
		return
	}
	if spec != nil {
		e.sort = spec
	}
	if p != nil {
		e.pagination = p
	}
}

// SetData replaces the source collection.
func (e *Engine[T]) SetData(data []T) {
	e.mutate(func() bool {
		e.data = data
		e.version++
		return false
	})
}

// SetFilter inserts or replaces the named criterion and resets the page to 1.
// A criterion equal in Mode and non-zero Revision to the current one is ignored.
func (e *Engine[T]) SetFilter(key string, c Criterion[T]) {
	e.mutate(func() bool {
		if cur, ok := e.filters[key]; ok && c.Revision != 0 &&
			cur.Revision == c.Revision && cur.Mode == c.Mode {
			return false
		}
		next := e.filters.Clone()
		next[key] = c
		e.filters = next
		e.version++
		e.resetPageLocked()
		return true
	})
}

// RemoveFilter drops the named criterion; the page resets to 1 when it existed.
func (e *Engine[T]) RemoveFilter(key string) {
	e.mutate(func() bool {
		if _, ok := e.filters[key]; !ok {
			return false
		}
		next := e.filters.Clone()
		delete(next, key)
		e.filters = next
		e.version++
		e.resetPageLocked()
		return true
	})
}

// ClearFilters empties the filter set and resets the page to 1.
func (e *Engine[T]) ClearFilters() {
	e.mutate(func() bool {
		if len(e.filters) > 0 {
			e.filters = FilterMap[T]{}
			e.version++
		}
		e.resetPageLocked()
		return true
	})
}

// SetSort replaces the active sort. nil keeps filtered order.
// The page is left unchanged.
func (e *Engine[T]) SetSort(spec SortSpec[T]) {
	e.mutate(func() bool {
		e.sort = spec
		e.version++
		return true
	})
}

// SetPage moves to page n (clamped to >= 1).
func (e *Engine[T]) SetPage(n int) {
	e.mutate(func() bool {
		p := Pagination{Page: n}
		if e.pagination != nil {
			p.PageSize = e.pagination.PageSize
		}
		p = p.Normalize()
		e.pagination = &p
		return true
	})
}

// SetPageSize changes the page size (clamped to >= 0) and resets the page to 1.
func (e *Engine[T]) SetPageSize(n int) {
	e.mutate(func() bool {
		p := Pagination{Page: 1, PageSize: n}.Normalize()
		e.pagination = &p
		return true
	})
}

// Filters returns a copy of the active filter set.
func (e *Engine[T]) Filters() FilterMap[T] {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.filters.Clone()
}

// Sort returns the active sort, or nil.
func (e *Engine[T]) Sort() SortSpec[T] {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sort
}

// Pagination returns a copy of the pagination, or nil.
func (e *Engine[T]) Pagination() *Pagination {
	e.mu.Lock()
	defer e.mu.Unlock()
	return clonePagination(e.pagination)
}

// Data returns the source collection.
func (e *Engine[T]) Data() []T {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.data
}

// Snapshot returns the current page, total and filtering flag together.
// It re-raises a panic captured from a timer-driven recompute.
func (e *Engine[T]) Snapshot() View[T] {
	e.raiseFault()

	e.mu.Lock()
	defer e.mu.Unlock()

	page := Paginate(e.sorted, e.pagination)
	return View[T]{
		Items:       page.Items,
		Total:       page.Total,
		TotalPages:  page.TotalPages,
		IsFiltering: e.version != e.computed,
		Pagination:  clonePagination(e.pagination),
	}
}

// Items returns the current page of filtered and sorted data.
func (e *Engine[T]) Items() []T { return e.Snapshot().Items }

// Total returns the filtered count before pagination.
func (e *Engine[T]) Total() int { return e.Snapshot().Total }

// IsFiltering reports whether a recompute is pending.
func (e *Engine[T]) IsFiltering() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.version != e.computed
}

// Flush runs a pending recompute immediately on the caller's goroutine.
func (e *Engine[T]) Flush() {
	if e.recompute != nil {
		e.recompute.Flush()
	}
	e.raiseFault()
}

// Close cancels any pending recompute. Later mutations are ignored;
// reads keep returning the last computed view.
func (e *Engine[T]) Close() {
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()

	if e.recompute != nil {
		e.recompute.Cancel()
	}
}

// mutate applies fn under the lock. fn reports whether sort or pagination changed,
// which triggers persistence and URL sync. A version change schedules a recompute.
func (e *Engine[T]) mutate(fn func() bool) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		e.log.Debug().Msg("Ignoring mutation on closed engine")
		return
	}

	before := e.version
	if fn() {
		e.stateChangedLocked()
	}
	changed := e.version != before
	e.mu.Unlock()

	if !changed {
		return
	}
	if e.recompute != nil {
		e.recompute.Call()
		return
	}
	e.recomputeNow()
	e.raiseFault()
}

// recomputeNow runs the filter and sort stages for the current version.
// The pipeline runs outside the lock; a newer version arriving meanwhile
// keeps IsFiltering true until its own recompute lands.
func (e *Engine[T]) recomputeNow() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	version := e.version
	data, filters, spec := e.data, e.filters, e.sort
	keys := e.opts.SortKeys
	e.mu.Unlock()

	sorted, fault := runPipeline(data, filters, spec, keys)

	e.mu.Lock()
	defer e.mu.Unlock()

	if fault != nil {
		e.fault = fault
		return
	}
	if version >= e.computed {
		e.sorted = sorted
		e.computed = version
	}

	e.log.Debug().
		Uint64("version", version).
		Int("source", len(data)).
		Int("matched", len(sorted)).
		Msg("Recomputed view")
}

func runPipeline[T any](data []T, filters FilterMap[T], spec SortSpec[T], keys map[string]Accessor[T]) (sorted []T, fault any) {
	defer func() {
		if r := recover(); r != nil {
			fault = r
		}
	}()
	return SortItems(Filter(data, filters), spec, keys), nil
}

// raiseFault re-panics with a captured pipeline panic, once.
func (e *Engine[T]) raiseFault() {
	e.mu.Lock()
	fault := e.fault
	e.fault = nil
	e.mu.Unlock()

	if fault != nil {
		panic(fault)
	}
}

func (e *Engine[T]) resetPageLocked() {
	if e.pagination != nil {
		e.pagination = &Pagination{Page: 1, PageSize: e.pagination.PageSize}
	}
}

// stateChangedLocked persists and mirrors sort/pagination. Failures are
// logged and swallowed; both are caches that can be regenerated.
func (e *Engine[T]) stateChangedLocked() {
	if e.opts.StorageKey != "" && e.opts.Storage != nil {
		raw, err := encodeState(e.sort, e.pagination)
		if err == nil {
			err = e.opts.Storage.Set(e.opts.StorageKey, raw)
		}
		if err != nil {
			e.log.Debug().Err(err).Str("storage_key", e.opts.StorageKey).Msg("Failed to persist state")
		}
	}

	if e.opts.SyncURL && e.opts.URLWriter != nil {
		e.opts.URLWriter.Replace(urlState(e.pagination, e.opts.StorageKey))
	}
}

func clonePagination(p *Pagination) *Pagination {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}
