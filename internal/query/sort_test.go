package query

import (
	"cmp"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

var testKeys = map[string]Accessor[testItem]{
	"score": func(it testItem) Key { return Number(it.Score) },
	"name":  func(it testItem) Key { return Text(it.Name) },
	"tag":   func(it testItem) Key { return Text(it.Tag) },
}

func TestSortItems_NilSpecKeepsOrder(t *testing.T) {
	data := testItems()
	result := SortItems(data, nil, testKeys)

	assert.Same(t, &data[0], &result[0])
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids(result))
}

func TestSortItems_KeySort(t *testing.T) {
	tests := []struct {
		name string
		spec SortSpec[testItem]
		want []int
	}{
		{"score asc", ByKey[testItem]("score", Asc), []int{2, 3, 1, 5, 4}},
		{"score desc", ByKey[testItem]("score", Desc), []int{4, 5, 1, 3, 2}},
		{"name desc", ByKey[testItem]("name", Desc), []int{5, 4, 3, 2, 1}},
		{"unknown key leaves order", ByKey[testItem]("missing", Asc), []int{1, 2, 3, 4, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(SortItems(testItems(), tt.spec, testKeys)))
		})
	}
}

func TestSortItems_Comparator(t *testing.T) {
	byIDDesc := ByComparator(func(a, b testItem) int { return cmp.Compare(b.ID, a.ID) })

	assert.Equal(t, []int{5, 4, 3, 2, 1}, ids(SortItems(testItems(), byIDDesc, nil)))
}

func TestSortItems_Derived(t *testing.T) {
	nameLen := ByAccessor(func(it testItem) Key { return Int(len(it.Name)) }, Asc)

	// alpha(5) bravo(5) charlie(7) delta(5) echo(4): ties keep input order.
	assert.Equal(t, []int{5, 1, 2, 4, 3}, ids(SortItems(testItems(), nameLen, nil)))
}

func TestSortItems_NilFunctionsKeepOrder(t *testing.T) {
	data := testItems()

	assert.Equal(t, ids(data), ids(SortItems(data, ComparatorSort[testItem]{}, nil)))
	assert.Equal(t, ids(data), ids(SortItems(data, DerivedSort[testItem]{Direction: Desc}, nil)))
}

// TestSortItems_StableOnTies tests that equal keys keep their relative input order
// in both directions.
func TestSortItems_StableOnTies(t *testing.T) {
	data := testItems()

	assert.Equal(t, []int{2, 5, 4, 1, 3}, ids(SortItems(data, ByKey[testItem]("tag", Asc), testKeys)))
	assert.Equal(t, []int{1, 3, 4, 2, 5}, ids(SortItems(data, ByKey[testItem]("tag", Desc), testKeys)))
}

// TestSortItems_DescIsReverseOfAsc is a property test over random collections with
// unique keys.
func TestSortItems_DescIsReverseOfAsc(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 50; round++ {
		n := rng.Intn(40)
		scores := rng.Perm(1000)[:n]
		data := make([]testItem, n)
		for i := range data {
			data[i] = testItem{ID: i, Score: float64(scores[i])}
		}

		asc := SortItems(data, ByKey[testItem]("score", Asc), testKeys)
		desc := SortItems(data, ByKey[testItem]("score", Desc), testKeys)

		reversed := slices.Clone(asc)
		slices.Reverse(reversed)
		assert.Equal(t, ids(reversed), ids(desc))
	}
}

func TestSortItems_DoesNotMutateInput(t *testing.T) {
	data := testItems()
	_ = SortItems(data, ByKey[testItem]("score", Asc), testKeys)

	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids(data))
}

func TestSortItems_ComparatorPanicPropagates(t *testing.T) {
	spec := ByComparator(func(a, b testItem) int { panic("bad comparator") })

	assert.Panics(t, func() { SortItems(testItems(), spec, nil) })
}

func TestKey_Compare(t *testing.T) {
	assert.Equal(t, -1, Number(1).Compare(Number(2)))
	assert.Equal(t, 0, Int(2).Compare(Number(2)))
	assert.Equal(t, 1, Text("b").Compare(Text("a")))
	assert.Equal(t, -1, Number(99).Compare(Text("a")), "numbers order before text")
}

func TestParseDirection(t *testing.T) {
	d, err := parseDirection("DESC")
	assert.NoError(t, err)
	assert.Equal(t, Desc, d)

	d, err = parseDirection("asc")
	assert.NoError(t, err)
	assert.Equal(t, Asc, d)

	for _, bad := range []string{"", "sideways"} {
		_, err = parseDirection(bad)
		assert.Error(t, err, bad)
	}
}
