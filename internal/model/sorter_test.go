package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a1s/gridview/internal/model1"
)

func people() model1.Rows {
	return model1.Rows{
		{"id": 1, "name": "Alice", "age": 30, "active": true},
		{"id": 2, "name": "Bob", "age": 25, "active": false},
		{"id": 3, "name": "Charlie", "age": 35, "active": true},
		{"id": 4, "name": "Diana", "age": 28, "active": true},
	}
}

func peopleCols() model1.Columns {
	return model1.Columns{
		{ID: "id", Type: model1.ColumnNumber, Sortable: true},
		{ID: "name", Type: model1.ColumnText, Sortable: true},
		{ID: "age", Type: model1.ColumnNumber, Sortable: true},
		{ID: "active", Type: model1.ColumnBoolean, Sortable: true},
		{ID: "notes", Type: model1.ColumnText},
	}
}

func names(rr model1.Rows) []string {
	nn := make([]string, 0, len(rr))
	for _, r := range rr {
		nn = append(nn, r["name"].(string))
	}
	return nn
}

func TestSortedDataAgeDesc(t *testing.T) {
	rows := people()
	out := SortedData(rows, model1.SortCriteria{{ColumnID: "age", Direction: model1.Desc}}, peopleCols())

	assert.Equal(t, []string{"Charlie", "Alice", "Diana", "Bob"}, names(out))
	assert.Equal(t, []string{"Alice", "Bob", "Charlie", "Diana"}, names(rows))
}

func TestSortedDataActiveFirst(t *testing.T) {
	cc := model1.SortCriteria{
		{ColumnID: "active", Direction: model1.Desc, Priority: 0},
		{ColumnID: "age", Direction: model1.Asc, Priority: 1},
	}
	out := SortedData(people(), cc, peopleCols())

	assert.Equal(t, []string{"Diana", "Alice", "Charlie", "Bob"}, names(out))
}

func TestSortedDataBooleanAsc(t *testing.T) {
	out := SortedData(people(), model1.SortCriteria{{ColumnID: "active", Direction: model1.Asc}}, peopleCols())

	assert.Equal(t, []string{"Bob", "Alice", "Charlie", "Diana"}, names(out))
}

func TestSortedDataStable(t *testing.T) {
	rows := model1.Rows{
		{"id": 1, "name": "a", "age": 2},
		{"id": 2, "name": "b", "age": 1},
		{"id": 3, "name": "c", "age": 2},
		{"id": 4, "name": "d", "age": 1},
		{"id": 5, "name": "e", "age": 2},
	}

	for _, dir := range []model1.Direction{model1.Asc, model1.Desc} {
		out := SortedData(rows, model1.SortCriteria{{ColumnID: "age", Direction: dir}}, peopleCols())
		if dir == model1.Asc {
			assert.Equal(t, []string{"b", "d", "a", "c", "e"}, names(out))
		} else {
			assert.Equal(t, []string{"a", "c", "e", "b", "d"}, names(out))
		}
	}
}

func TestSortedDataComposition(t *testing.T) {
	rows := model1.Rows{
		{"id": 1, "name": "x", "age": 3},
		{"id": 2, "name": "y", "age": 1},
		{"id": 3, "name": "x", "age": 1},
		{"id": 4, "name": "z", "age": 3},
		{"id": 5, "name": "y", "age": 2},
		{"id": 6, "name": "x", "age": 2},
	}
	a := model1.SortCriterion{ColumnID: "name", Direction: model1.Desc}
	b := model1.SortCriterion{ColumnID: "age", Direction: model1.Asc}
	cols := peopleCols()

	composite := SortedData(rows, model1.SortCriteria{a, {ColumnID: b.ColumnID, Direction: b.Direction, Priority: 1}}, cols)
	chained := SortedData(SortedData(rows, model1.SortCriteria{b}, cols), model1.SortCriteria{a}, cols)

	assert.Equal(t, chained, composite)
}

func TestSortedDataPriorityOrder(t *testing.T) {
	cc := model1.SortCriteria{
		{ColumnID: "age", Direction: model1.Asc, Priority: 5},
		{ColumnID: "active", Direction: model1.Desc, Priority: 1},
	}
	out := SortedData(people(), cc, peopleCols())

	assert.Equal(t, []string{"Diana", "Alice", "Charlie", "Bob"}, names(out))
}

func TestSortedDataUnknownColumn(t *testing.T) {
	out := SortedData(people(), model1.SortCriteria{{ColumnID: "bogus", Direction: model1.Desc}}, peopleCols())

	assert.Equal(t, names(people()), names(out))
}

func TestSortedDataMissingNumbers(t *testing.T) {
	rows := model1.Rows{
		{"id": 1, "name": "a", "age": 5},
		{"id": 2, "name": "b"},
		{"id": 3, "name": "c", "age": "n/a"},
		{"id": 4, "name": "d", "age": -3},
	}
	out := SortedData(rows, model1.SortCriteria{{ColumnID: "age", Direction: model1.Asc}}, peopleCols())

	assert.Equal(t, []string{"b", "c", "d", "a"}, names(out))
}

func TestSortedDataInvalidDatesLast(t *testing.T) {
	cols := model1.Columns{{ID: "at", Type: model1.ColumnDate, Sortable: true}}
	rows := model1.Rows{
		{"name": "bad", "at": "yesterday"},
		{"name": "old", "at": "2020-01-01"},
		{"name": "new", "at": "2024-06-01"},
	}

	asc := SortedData(rows, model1.SortCriteria{{ColumnID: "at", Direction: model1.Asc}}, cols)
	assert.Equal(t, []string{"old", "new", "bad"}, names(asc))

	desc := SortedData(rows, model1.SortCriteria{{ColumnID: "at", Direction: model1.Desc}}, cols)
	assert.Equal(t, []string{"new", "old", "bad"}, names(desc))
}

func TestToggleSortCycle(t *testing.T) {
	cols := peopleCols()
	var cc model1.SortCriteria

	cc, ok := ToggleSort(cc, cols, "name")
	require.True(t, ok)
	assert.Equal(t, model1.SortCriteria{{ColumnID: "name", Direction: model1.Asc}}, cc)

	cc, ok = ToggleSort(cc, cols, "name")
	require.True(t, ok)
	assert.Equal(t, model1.SortCriteria{{ColumnID: "name", Direction: model1.Desc}}, cc)

	cc, ok = ToggleSort(cc, cols, "name")
	require.True(t, ok)
	assert.Empty(t, cc)
}

func TestToggleSortClosure(t *testing.T) {
	cols := peopleCols()
	start := model1.SortCriteria{
		{ColumnID: "age", Direction: model1.Desc, Priority: 0},
		{ColumnID: "active", Direction: model1.Asc, Priority: 1},
	}

	for _, id := range []string{"name", "id"} {
		cc := start
		for range 3 {
			cc, _ = ToggleSort(cc, cols, id)
			assert.True(t, cc.IsNormalized())
		}
		assert.Equal(t, start, cc)
	}
}

func TestToggleSortRenormalizes(t *testing.T) {
	cc := model1.SortCriteria{
		{ColumnID: "name", Direction: model1.Desc, Priority: 0},
		{ColumnID: "age", Direction: model1.Asc, Priority: 1},
		{ColumnID: "id", Direction: model1.Asc, Priority: 2},
	}

	out, ok := ToggleSort(cc, peopleCols(), "name")
	require.True(t, ok)
	assert.Equal(t, model1.SortCriteria{
		{ColumnID: "age", Direction: model1.Asc, Priority: 0},
		{ColumnID: "id", Direction: model1.Asc, Priority: 1},
	}, out)
	assert.Equal(t, model1.Desc, cc[0].Direction)
}

func TestAddSort(t *testing.T) {
	cols := peopleCols()

	cc, ok := AddSort(nil, cols, "age", model1.Desc)
	require.True(t, ok)
	cc, ok = AddSort(cc, cols, "name", model1.Asc)
	require.True(t, ok)
	assert.Equal(t, model1.SortCriteria{
		{ColumnID: "age", Direction: model1.Desc, Priority: 0},
		{ColumnID: "name", Direction: model1.Asc, Priority: 1},
	}, cc)

	cc, ok = AddSort(cc, cols, "age", model1.Asc)
	require.True(t, ok)
	assert.Equal(t, model1.SortCriterion{ColumnID: "age", Direction: model1.Asc, Priority: 0}, cc[0])
	assert.Len(t, cc, 2)

	_, ok = AddSort(cc, cols, "notes", model1.Asc)
	assert.False(t, ok)
	_, ok = AddSort(cc, cols, "bogus", model1.Asc)
	assert.False(t, ok)
}

func TestRemoveSort(t *testing.T) {
	cc := model1.SortCriteria{
		{ColumnID: "age", Direction: model1.Desc, Priority: 0},
		{ColumnID: "name", Direction: model1.Asc, Priority: 1},
		{ColumnID: "id", Direction: model1.Asc, Priority: 2},
	}

	out, ok := RemoveSort(cc, "name")
	require.True(t, ok)
	assert.Equal(t, model1.SortCriteria{
		{ColumnID: "age", Direction: model1.Desc, Priority: 0},
		{ColumnID: "id", Direction: model1.Asc, Priority: 1},
	}, out)

	_, ok = RemoveSort(out, "name")
	assert.False(t, ok)
}

func TestSetSortConfig(t *testing.T) {
	out := SetSortConfig(model1.SortCriteria{
		{ColumnID: "name", Direction: model1.Asc, Priority: 10},
		{ColumnID: "age", Direction: model1.Desc, Priority: 3},
		{ColumnID: "name", Direction: model1.Desc, Priority: 12},
		{ColumnID: "id", Direction: "sideways", Priority: 11},
	})

	assert.Equal(t, model1.SortCriteria{
		{ColumnID: "age", Direction: model1.Desc, Priority: 0},
		{ColumnID: "name", Direction: model1.Asc, Priority: 1},
		{ColumnID: "id", Direction: model1.Asc, Priority: 2},
	}, out)
	assert.Empty(t, ClearSort())
}

func TestSorterCallbacks(t *testing.T) {
	var calls []model1.SortCriteria
	s := NewSorter(peopleCols(), nil, func(cc model1.SortCriteria) {
		calls = append(calls, cc)
	})

	s.ToggleSort("notes")
	s.AddSort("notes", model1.Asc)
	s.ToggleSort("bogus")
	s.RemoveSort("age")
	assert.Empty(t, calls)

	s.ToggleSort("age")
	s.AddSort("name", model1.Desc)
	require.Len(t, calls, 2)
	assert.Equal(t, s.Criteria(), calls[1])

	d, ok := s.SortDirection("name")
	assert.True(t, ok)
	assert.Equal(t, model1.Desc, d)
	p, ok := s.SortPriority("name")
	assert.True(t, ok)
	assert.Equal(t, 1, p)
	p, ok = s.SortPriority("id")
	assert.False(t, ok)
	assert.Equal(t, -1, p)
	assert.True(t, s.IsSorted("age"))
	assert.False(t, s.IsSorted("id"))
	assert.True(t, s.CanSort("age"))
	assert.False(t, s.CanSort("notes"))
	assert.True(t, s.HasMultipleSorts())
	assert.Equal(t, []string{"Bob", "Diana", "Alice", "Charlie"}, names(s.SortedData(people())))

	s.ClearSort()
	require.Len(t, calls, 3)
	assert.Empty(t, calls[2])
	assert.False(t, s.HasMultipleSorts())
}

func TestSorterCallbackSnapshot(t *testing.T) {
	var got model1.SortCriteria
	s := NewSorter(peopleCols(), nil, func(cc model1.SortCriteria) { got = cc })

	s.ToggleSort("age")
	got[0].Direction = model1.Desc

	d, _ := s.SortDirection("age")
	assert.Equal(t, model1.Asc, d)
}
