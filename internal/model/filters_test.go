package model

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a1s/gridview/internal/model1"
)

type testStore struct {
	data   map[string]string
	sets   int
	getErr error
	setErr error
}

func newTestStore() *testStore {
	return &testStore{data: make(map[string]string)}
}

func (s *testStore) Get(key string) (string, bool, error) {
	if s.getErr != nil {
		return "", false, s.getErr
	}
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *testStore) Set(key, value string) error {
	s.sets++
	if s.setErr != nil {
		return s.setErr
	}
	s.data[key] = value
	return nil
}

func statusOptions() []model1.FilterOption {
	return []model1.FilterOption{
		{Value: "active", Label: "Active"},
		{Value: "pending", Label: "Pending"},
		{Value: "closed", Label: "Closed"},
	}
}

func initialFilters() []model1.FilterState {
	return []model1.FilterState{
		{ID: "status", Type: model1.FilterMultiSelect, Value: model1.MultiValue{}, Options: statusOptions(), Placeholder: "Status"},
		{ID: "region", Type: model1.FilterSingleSelect, Value: model1.SingleValue(model1.AllValue), Placeholder: "Region"},
		{ID: "q", Type: model1.FilterSearch, Value: model1.SearchValue(""), Placeholder: "Search..."},
	}
}

func TestFilterManagerMultiSelect(t *testing.T) {
	m := NewFilterManager(initialFilters(), FilterConfig{})

	m.SetFilterValue("status", model1.MultiValue{"active", "pending"})
	assert.True(t, m.IsFilterActive("status"))
	assert.Equal(t, 2, m.ActiveFilterCount("status"))
	assert.Equal(t, "2 selected", m.FilterDisplayValue("status"))

	m.SetFilterValue("status", model1.MultiValue{"pending"})
	assert.Equal(t, "Pending", m.FilterDisplayValue("status"))
	assert.Equal(t, 1, m.ActiveFilterCount("status"))
}

func TestFilterManagerDisplayValues(t *testing.T) {
	m := NewFilterManager(initialFilters(), FilterConfig{})

	assert.Equal(t, "Region", m.FilterDisplayValue("region"))
	assert.Equal(t, "Search...", m.FilterDisplayValue("q"))
	assert.Equal(t, "", m.FilterDisplayValue("bogus"))

	m.SetFilterValue("region", model1.SingleValue("eu"))
	m.SetFilterValue("q", model1.SearchValue("bob"))
	assert.Equal(t, "eu", m.FilterDisplayValue("region"))
	assert.Equal(t, "bob", m.FilterDisplayValue("q"))
	assert.True(t, m.HasActiveFilters())
	assert.Len(t, m.ActiveFilters(), 2)
}

func TestFilterManagerCascadeOrder(t *testing.T) {
	var events []string
	ff := initialFilters()
	ff[2].OnChange = func(v model1.FilterValue) {
		events = append(events, "onChange:"+model1.ValueString(v))
	}
	store := newTestStore()
	var before int
	m := NewFilterManager(ff, FilterConfig{
		PersistFilters: true,
		Store:          store,
		OnFiltersChange: func(ff []model1.FilterState) {
			events = append(events, "onFiltersChange")
			assert.Equal(t, before, store.sets)
		},
	})

	before = store.sets
	m.SetFilterValue("q", model1.SearchValue("bob"))
	assert.Equal(t, []string{"onChange:bob", "onFiltersChange"}, events)
	assert.Equal(t, before+1, store.sets)

	events = events[:0]
	before = store.sets
	m.ClearFilter("q")
	assert.Equal(t, []string{"onChange:", "onFiltersChange"}, events)
	assert.Equal(t, before+1, store.sets)
	assert.False(t, m.IsFilterActive("q"))
}

func TestFilterManagerUnknownID(t *testing.T) {
	calls := 0
	m := NewFilterManager(initialFilters(), FilterConfig{
		OnFiltersChange: func([]model1.FilterState) { calls++ },
	})

	m.SetFilterValue("bogus", model1.SearchValue("x"))
	m.ClearFilter("bogus")
	m.RemoveFilter("bogus")
	m.UpdateFilter("bogus", FilterUpdate{Value: model1.SearchValue("x")})
	assert.Equal(t, 0, calls)
}

func TestFilterManagerClearAll(t *testing.T) {
	calls, changes := 0, 0
	ff := initialFilters()
	for i := range ff {
		ff[i].OnChange = func(model1.FilterValue) { changes++ }
	}
	store := newTestStore()
	m := NewFilterManager(ff, FilterConfig{
		PersistFilters:  true,
		Store:           store,
		OnFiltersChange: func([]model1.FilterState) { calls++ },
	})
	m.SetFilterValue("status", model1.MultiValue{"closed"})
	m.SetFilterValue("region", model1.SingleValue("us"))
	calls, changes, store.sets = 0, 0, 0

	m.ClearAllFilters()
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, store.sets)
	assert.Equal(t, 3, changes)
	assert.False(t, m.HasActiveFilters())

	f, ok := m.Filter("status")
	require.True(t, ok)
	assert.Equal(t, model1.MultiValue{}, f.Value)
	f, _ = m.Filter("region")
	assert.Equal(t, model1.SingleValue(""), f.Value)
}

func TestFilterManagerReset(t *testing.T) {
	var restored []string
	ff := initialFilters()
	ff[1].Value = model1.SingleValue("eu")
	ff[1].OnChange = func(v model1.FilterValue) {
		restored = append(restored, model1.ValueString(v))
	}
	m := NewFilterManager(ff, FilterConfig{})

	m.SetFilterValue("region", model1.SingleValue("us"))
	m.RemoveFilter("q")
	restored = restored[:0]

	m.ResetFilters()
	assert.Equal(t, []string{"eu"}, restored)
	assert.Len(t, m.Filters(), 3)
	assert.True(t, m.IsFilterActive("region"))
}

func TestFilterManagerStructural(t *testing.T) {
	m := NewFilterManager(initialFilters(), FilterConfig{})

	id := m.AddFilter(model1.FilterState{Type: model1.FilterSearch, Value: model1.SearchValue("x")})
	assert.NotEmpty(t, id)
	assert.True(t, m.IsFilterActive(id))

	assert.Equal(t, "q", m.AddFilter(model1.FilterState{ID: "q", Type: model1.FilterMultiSelect}))
	f, _ := m.Filter("q")
	assert.Equal(t, model1.FilterSearch, f.Type)
	assert.Len(t, m.Filters(), 4)

	typ, ph := model1.FilterMultiSelect, "Owners"
	m.UpdateFilter("q", FilterUpdate{Type: &typ, Placeholder: &ph, Value: model1.MultiValue{"a", "b", "c"}})
	f, _ = m.Filter("q")
	assert.Equal(t, model1.FilterMultiSelect, f.Type)
	assert.True(t, f.IsActive)
	assert.Equal(t, 3, f.ActiveCount)
	assert.Equal(t, "3 selected", m.FilterDisplayValue("q"))

	m.RemoveFilter(id)
	_, ok := m.Filter(id)
	assert.False(t, ok)
	assert.Len(t, m.Filters(), 3)
}

func TestFilterManagerListsAreReplaced(t *testing.T) {
	var seen [][]model1.FilterState
	m := NewFilterManager(initialFilters(), FilterConfig{
		OnFiltersChange: func(ff []model1.FilterState) { seen = append(seen, ff) },
	})

	m.SetFilterValue("status", model1.MultiValue{"active"})
	m.SetFilterValue("status", model1.MultiValue{"active", "closed"})
	require.Len(t, seen, 2)
	assert.Equal(t, 1, seen[0][0].ActiveCount)
	assert.Equal(t, 2, seen[1][0].ActiveCount)
}

func TestFilterManagerLoadRederives(t *testing.T) {
	store := newTestStore()
	store.data[DefaultStorageKey] = `[
		{"id":"status","type":"multi-select","value":["closed"],"placeholder":"Status","isActive":false,"activeCount":0},
		{"id":"q","type":"search","value":"  ","placeholder":"Search...","isActive":true,"activeCount":7}
	]`
	var got model1.FilterValue
	ff := initialFilters()
	ff[0].OnChange = func(v model1.FilterValue) { got = v }

	m := NewFilterManager(ff, FilterConfig{PersistFilters: true, Store: store})
	assert.True(t, m.IsFilterActive("status"))
	assert.Equal(t, 1, m.ActiveFilterCount("status"))
	assert.False(t, m.IsFilterActive("q"))
	assert.Equal(t, 0, m.ActiveFilterCount("q"))
	assert.Len(t, m.Filters(), 2)

	m.ClearFilter("status")
	assert.Equal(t, model1.MultiValue{}, got)
}

func TestFilterManagerLoadFallback(t *testing.T) {
	uu := map[string]string{
		"garbage":   `{not json`,
		"object":    `{"id":"q"}`,
		"null":      `null`,
		"bad-shape": `[{"id":"status","type":"multi-select","value":"closed"}]`,
	}

	for k := range uu {
		raw := uu[k]
		t.Run(k, func(t *testing.T) {
			store := newTestStore()
			store.data[DefaultStorageKey] = raw
			var buff bytes.Buffer
			m := NewFilterManager(initialFilters(), FilterConfig{
				PersistFilters: true,
				Store:          store,
				Logger:         slog.New(slog.NewTextHandler(&buff, nil)),
			})

			assert.Len(t, m.Filters(), 3)
			assert.False(t, m.HasActiveFilters())
			assert.Contains(t, buff.String(), "level=WARN")
		})
	}
}

func TestFilterManagerStorageFailure(t *testing.T) {
	store := newTestStore()
	store.getErr = errors.New("storage disabled")
	store.setErr = errors.New("quota exceeded")
	var buff bytes.Buffer
	var latest []model1.FilterState
	m := NewFilterManager(initialFilters(), FilterConfig{
		PersistFilters:  true,
		StorageKey:      "grid",
		Store:           store,
		OnFiltersChange: func(ff []model1.FilterState) { latest = ff },
		Logger:          slog.New(slog.NewTextHandler(&buff, nil)),
	})
	assert.Contains(t, buff.String(), "unable to read stored filters")

	m.SetFilterValue("q", model1.SearchValue("bob"))
	assert.True(t, m.IsFilterActive("q"))
	require.Len(t, latest, 3)
	assert.True(t, latest[2].IsActive)
	assert.Contains(t, buff.String(), "unable to persist filters")
	assert.Contains(t, buff.String(), "quota exceeded")
}

func TestFilterManagerPersistRoundTrip(t *testing.T) {
	store := newTestStore()
	cfg := FilterConfig{PersistFilters: true, StorageKey: "grid", Store: store}

	m := NewFilterManager(initialFilters(), cfg)
	m.SetFilterValue("status", model1.MultiValue{"active", "pending"})
	m.SetFilterValue("region", model1.SingleValue("eu"))
	assert.Contains(t, store.data["grid"], `"isActive":true`)

	m2 := NewFilterManager(initialFilters(), cfg)
	assert.Equal(t, "2 selected", m2.FilterDisplayValue("status"))
	assert.Equal(t, "eu", m2.FilterDisplayValue("region"))
}

func TestFilterManagerNoPersistence(t *testing.T) {
	store := newTestStore()
	m := NewFilterManager(initialFilters(), FilterConfig{Store: store})

	m.SetFilterValue("q", model1.SearchValue("x"))
	assert.Equal(t, 0, store.sets)

	require.NoError(t, m.Save())
	assert.Equal(t, 1, store.sets)
	assert.ErrorIs(t, NewFilterManager(nil, FilterConfig{}).Save(), ErrNoStore)
}
