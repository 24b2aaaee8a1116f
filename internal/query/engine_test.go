package query_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/hotel-site/room-filter/internal/infrastructure/timeutil"
	"github.com/hotel-site/room-filter/internal/query"
	"github.com/hotel-site/room-filter/test/mock"
)

type guest struct {
	Name string
	Age  int
	VIP  bool
}

func guests() []guest {
	return []guest{
		{Name: "Ana", Age: 34, VIP: true},
		{Name: "Ben", Age: 19},
		{Name: "Cleo", Age: 52, VIP: true},
		{Name: "Dev", Age: 27},
		{Name: "Eli", Age: 41},
	}
}

func names(gs []guest) []string {
	out := make([]string, len(gs))
	for i, g := range gs {
		out[i] = g.Name
	}
	return out
}

var guestKeys = map[string]query.Accessor[guest]{
	"age":  func(g guest) query.Key { return query.Int(g.Age) },
	"name": func(g guest) query.Key { return query.Text(g.Name) },
}

func vipOnly(rev uint64) query.Criterion[guest] {
	return query.Criterion[guest]{
		Predicate: func(g guest) bool { return g.VIP },
		Mode:      query.And,
		Revision:  rev,
	}
}

func olderThan(age int, rev uint64) query.Criterion[guest] {
	return query.Criterion[guest]{
		Predicate: func(g guest) bool { return g.Age > age },
		Revision:  rev,
	}
}

func newClock() *timeutil.MockClock {
	return timeutil.NewMockClock(time.Date(2025, 12, 15, 10, 0, 0, 0, time.UTC))
}

func newEngine(t *testing.T, clock timeutil.Clock, p *query.Pagination, opts *query.Options[guest]) *query.Engine[guest] {
	t.Helper()
	if opts == nil {
		opts = &query.Options[guest]{}
	}
	opts.Clock = clock
	opts.SortKeys = guestKeys
	e := query.New(guests(), nil, nil, p, opts)
	t.Cleanup(e.Close)
	return e
}

func TestEngine_InitialViewIsImmediate(t *testing.T) {
	data := guests()
	e := query.New(data, nil, nil, nil, &query.Options[guest]{Clock: newClock()})
	defer e.Close()

	view := e.Snapshot()
	assert.False(t, view.IsFiltering)
	assert.Equal(t, 5, view.Total)
	assert.Same(t, &data[0], &view.Items[0], "no filters and no sort pass the source through")
}

func TestEngine_InitialFiltersAndSort(t *testing.T) {
	e := query.New(guests(),
		query.FilterMap[guest]{"vip": vipOnly(1)},
		query.ByKey[guest]("age", query.Desc),
		nil,
		&query.Options[guest]{Clock: newClock(), SortKeys: guestKeys},
	)
	defer e.Close()

	assert.Equal(t, []string{"Cleo", "Ana"}, names(e.Items()))
}

func TestEngine_FilterChangeIsDebounced(t *testing.T) {
	clock := newClock()
	e := newEngine(t, clock, nil, nil)

	e.SetFilter("vip", vipOnly(1))

	assert.True(t, e.IsFiltering(), "pending until the quiet period elapses")
	assert.Equal(t, 5, e.Total(), "previous view is served while pending")

	clock.AdvanceMillis(149)
	assert.True(t, e.IsFiltering())

	clock.AdvanceMillis(1)
	assert.False(t, e.IsFiltering())
	assert.Equal(t, []string{"Ana", "Cleo"}, names(e.Items()))
}

func TestEngine_OnlyLastStateInWindowIsComputed(t *testing.T) {
	clock := newClock()
	e := newEngine(t, clock, nil, nil)

	e.SetFilter("age", olderThan(20, 1))
	clock.AdvanceMillis(100)
	e.SetFilter("age", olderThan(30, 2))
	clock.AdvanceMillis(100)
	e.SetFilter("age", olderThan(40, 3))

	clock.AdvanceMillis(150)
	assert.Equal(t, []string{"Cleo", "Eli"}, names(e.Items()))
	assert.Equal(t, 0, clock.PendingTimers())
}

func TestEngine_CustomDebounce(t *testing.T) {
	clock := newClock()
	e := newEngine(t, clock, nil, &query.Options[guest]{Debounce: time.Second})

	e.SetFilter("vip", vipOnly(1))
	clock.AdvanceMillis(999)
	assert.True(t, e.IsFiltering())
	clock.AdvanceMillis(1)
	assert.False(t, e.IsFiltering())
}

func TestEngine_SynchronousMode(t *testing.T) {
	e := newEngine(t, newClock(), nil, &query.Options[guest]{Debounce: -1})

	e.SetFilter("vip", vipOnly(1))

	assert.False(t, e.IsFiltering())
	assert.Equal(t, 2, e.Total())
}

func TestEngine_Flush(t *testing.T) {
	e := newEngine(t, newClock(), nil, nil)

	e.SetSort(query.ByKey[guest]("age", query.Asc))
	require.True(t, e.IsFiltering())

	e.Flush()
	assert.False(t, e.IsFiltering())
	assert.Equal(t, []string{"Ben", "Dev", "Ana", "Eli", "Cleo"}, names(e.Items()))
}

func TestEngine_FilterChangesResetPage(t *testing.T) {
	e := newEngine(t, newClock(), &query.Pagination{Page: 1, PageSize: 2}, nil)
	var rev uint64
	nextRev := func() uint64 {
		rev++
		return rev
	}

	mutations := map[string]func(){
		"SetFilter":    func() { e.SetFilter("vip", vipOnly(nextRev())) },
		"RemoveFilter": func() { e.RemoveFilter("vip") },
		"ClearFilters": e.ClearFilters,
		"SetPageSize":  func() { e.SetPageSize(2) },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			e.SetFilter("vip", vipOnly(nextRev()))
			e.SetPage(3)
			require.Equal(t, 3, e.Pagination().Page)

			mutate()
			assert.Equal(t, 1, e.Pagination().Page)
		})
	}
}

func TestEngine_SetSortKeepsPage(t *testing.T) {
	e := newEngine(t, newClock(), &query.Pagination{Page: 2, PageSize: 2}, nil)

	e.SetSort(query.ByKey[guest]("name", query.Desc))

	assert.Equal(t, 2, e.Pagination().Page)
}

func TestEngine_SameRevisionIsNoop(t *testing.T) {
	clock := newClock()
	e := newEngine(t, clock, &query.Pagination{Page: 1, PageSize: 2}, nil)

	e.SetFilter("vip", vipOnly(7))
	e.Flush()
	e.SetPage(2)

	e.SetFilter("vip", vipOnly(7))
	assert.False(t, e.IsFiltering(), "identical revision does not schedule work")
	assert.Equal(t, 2, e.Pagination().Page, "identical revision does not reset the page")

	e.SetFilter("vip", query.Criterion[guest]{Predicate: vipOnly(7).Predicate, Mode: query.Or, Revision: 7})
	assert.True(t, e.IsFiltering(), "mode change replaces the criterion")
}

func TestEngine_ZeroRevisionAlwaysReplaces(t *testing.T) {
	e := newEngine(t, newClock(), nil, nil)

	e.SetFilter("age", olderThan(40, 0))
	e.Flush()
	e.SetFilter("age", olderThan(30, 0))
	e.Flush()

	assert.Equal(t, []string{"Ana", "Cleo", "Eli"}, names(e.Items()))
}

func TestEngine_Pagination(t *testing.T) {
	e := newEngine(t, newClock(), &query.Pagination{Page: 1, PageSize: 2}, nil)

	assert.Equal(t, []string{"Ana", "Ben"}, names(e.Items()))
	assert.Equal(t, 5, e.Total())

	e.SetPage(3)
	assert.False(t, e.IsFiltering(), "paging never waits for the debounce")
	assert.Equal(t, []string{"Eli"}, names(e.Items()))

	view := e.Snapshot()
	assert.Equal(t, 3, view.TotalPages)

	e.SetPageSize(0)
	assert.Len(t, e.Items(), 5, "page size zero disables pagination")
}

func TestEngine_SetPageClamps(t *testing.T) {
	e := newEngine(t, newClock(), nil, nil)

	e.SetPage(-3)
	assert.Equal(t, &query.Pagination{Page: 1, PageSize: 0}, e.Pagination())

	e.SetPageSize(-10)
	assert.Equal(t, &query.Pagination{Page: 1, PageSize: 0}, e.Pagination())
}

func TestEngine_SetData(t *testing.T) {
	e := newEngine(t, newClock(), nil, nil)
	e.SetFilter("vip", vipOnly(1))
	e.Flush()

	e.SetData(append(guests(), guest{Name: "Fay", Age: 60, VIP: true}))
	assert.True(t, e.IsFiltering())

	e.Flush()
	assert.Equal(t, []string{"Ana", "Cleo", "Fay"}, names(e.Items()))
	assert.Len(t, e.Data(), 6)
}

func TestEngine_FiltersReturnsCopy(t *testing.T) {
	e := newEngine(t, newClock(), nil, nil)
	e.SetFilter("vip", vipOnly(1))

	f := e.Filters()
	delete(f, "vip")

	assert.Contains(t, e.Filters(), "vip")
}

func TestEngine_CloseCancelsPendingWork(t *testing.T) {
	clock := newClock()
	e := query.New(guests(), nil, nil, nil, &query.Options[guest]{Clock: clock})

	e.SetFilter("vip", vipOnly(1))
	e.Close()

	assert.Equal(t, 0, clock.PendingTimers())
	clock.AdvanceMillis(1000)
	assert.Equal(t, 5, e.Total(), "closed engine keeps its last view")

	e.SetFilter("age", olderThan(40, 2))
	assert.NotContains(t, e.Filters(), "age", "mutations after close are ignored")
}

func TestEngine_TimerPanicSurfacesOnRead(t *testing.T) {
	clock := newClock()
	e := newEngine(t, clock, nil, nil)

	e.SetFilter("boom", query.Criterion[guest]{Predicate: func(guest) bool { panic("broken predicate") }})
	assert.NotPanics(t, func() { clock.AdvanceMillis(150) })

	assert.PanicsWithValue(t, "broken predicate", func() { e.Items() })
	assert.NotPanics(t, func() { e.Items() }, "a captured panic is raised once")
}

func TestEngine_FlushPanicPropagates(t *testing.T) {
	e := newEngine(t, newClock(), nil, nil)

	e.SetSort(query.ByComparator(func(a, b guest) int { panic("broken comparator") }))

	assert.PanicsWithValue(t, "broken comparator", e.Flush)
}

func TestEngine_PersistsAndRehydrates(t *testing.T) {
	store := mock.NewStorage()
	opts := func() *query.Options[guest] {
		return &query.Options[guest]{StorageKey: "guest-list", Storage: store}
	}

	first := newEngine(t, newClock(), &query.Pagination{Page: 1, PageSize: 2}, opts())
	first.SetSort(query.ByKey[guest]("age", query.Desc))
	first.SetPage(2)
	first.Close()

	raw, ok := store.Value("guest-list")
	require.True(t, ok)
	assert.JSONEq(t, `{"sortConfig":{"key":"age","direction":"desc"},"pagination":{"page":2,"pageSize":2}}`, raw)

	second := newEngine(t, newClock(), &query.Pagination{Page: 1, PageSize: 10}, opts())

	assert.Equal(t, query.ByKey[guest]("age", query.Desc), second.Sort())
	assert.Equal(t, &query.Pagination{Page: 2, PageSize: 2}, second.Pagination())
	assert.Equal(t, []string{"Ana", "Dev"}, names(second.Items()))
}

func TestEngine_RehydratesDirectionCaseInsensitively(t *testing.T) {
	store := mock.NewStorage().WithValue("k", `{"sortConfig":{"key":"age","direction":"DESC"},"pagination":null}`)

	e := newEngine(t, newClock(), nil, &query.Options[guest]{StorageKey: "k", Storage: store})

	assert.Equal(t, query.ByKey[guest]("age", query.Desc), e.Sort())
}

func TestEngine_RehydratedHugePageIsEmpty(t *testing.T) {
	store := mock.NewStorage().WithValue("k", `{"sortConfig":null,"pagination":{"page":4611686018427387903,"pageSize":4}}`)

	e := newEngine(t, newClock(), &query.Pagination{Page: 1, PageSize: 4}, &query.Options[guest]{StorageKey: "k", Storage: store})

	assert.Equal(t, 4611686018427387903, e.Pagination().Page)
	assert.NotPanics(t, func() { assert.Empty(t, e.Items()) })
}

func TestEngine_NonSerializableSortPersistsAsNull(t *testing.T) {
	store := mock.NewStorage()
	e := newEngine(t, newClock(), nil, &query.Options[guest]{StorageKey: "k", Storage: store})

	e.SetSort(query.ByAccessor(func(g guest) query.Key { return query.Int(g.Age) }, query.Asc))

	raw, _ := store.Value("k")
	assert.JSONEq(t, `{"sortConfig":null,"pagination":null}`, raw)
}

func TestEngine_CorruptOrUnknownStateIgnored(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"corrupt json", `{not json`},
		{"unknown sort key", `{"sortConfig":{"key":"height","direction":"asc"},"pagination":null}`},
		{"invalid direction", `{"sortConfig":{"key":"age","direction":"up"},"pagination":null}`},
		{"missing direction", `{"sortConfig":{"key":"age"},"pagination":null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mock.NewStorage().WithValue("k", tt.value)
			e := newEngine(t, newClock(), nil, &query.Options[guest]{StorageKey: "k", Storage: store})

			assert.Nil(t, e.Sort())
			assert.Equal(t, 5, e.Total())
		})
	}
}

func TestEngine_StorageFailuresAreSwallowed(t *testing.T) {
	store := mock.NewStorage().
		WithGetError(errors.New("storage unavailable")).
		WithSetError(errors.New("quota exceeded"))

	e := newEngine(t, newClock(), &query.Pagination{Page: 1, PageSize: 2}, &query.Options[guest]{StorageKey: "k", Storage: store})

	assert.NotPanics(t, func() {
		e.SetPage(2)
		e.SetSort(query.ByKey[guest]("name", query.Asc))
	})
	assert.Equal(t, 2, e.Pagination().Page)
	assert.Equal(t, 3, store.SetCalls(), "init, page and sort each attempt a write")
}

func TestEngine_StorageContract(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mock.NewMockStorage(ctrl)

	gomock.InOrder(
		store.EXPECT().Get("rooms").Return("", query.ErrNotFound),
		store.EXPECT().Set("rooms", `{"sortConfig":null,"pagination":{"page":1,"pageSize":3}}`).Return(nil),
		store.EXPECT().Set("rooms", `{"sortConfig":null,"pagination":{"page":2,"pageSize":3}}`).Return(nil),
	)

	e := newEngine(t, newClock(), &query.Pagination{Page: 1, PageSize: 3}, &query.Options[guest]{StorageKey: "rooms", Storage: store})
	e.SetPage(2)
}

func TestEngine_SyncURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	writer := mock.NewMockURLStateWriter(ctrl)

	gomock.InOrder(
		writer.EXPECT().Replace(query.URLState{Page: 1, PageSize: 4, State: "rooms"}),
		writer.EXPECT().Replace(query.URLState{Page: 2, PageSize: 4, State: "rooms"}),
	)

	e := newEngine(t, newClock(), &query.Pagination{Page: 1, PageSize: 4}, &query.Options[guest]{
		StorageKey: "rooms",
		Storage:    mock.NewStorage(),
		SyncURL:    true,
		URLWriter:  writer,
	})
	e.SetPage(2)
}

func TestEngine_SyncURLWithoutPaginationClearsParams(t *testing.T) {
	ctrl := gomock.NewController(t)
	writer := mock.NewMockURLStateWriter(ctrl)

	writer.EXPECT().Replace(query.URLState{})

	newEngine(t, newClock(), nil, &query.Options[guest]{SyncURL: true, URLWriter: writer})
}
