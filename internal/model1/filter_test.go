package model1

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetermineActiveState(t *testing.T) {
	uu := map[string]struct {
		typ   FilterType
		v     FilterValue
		e     bool
		count int
	}{
		"single-empty":   {typ: FilterSingleSelect, v: SingleValue("")},
		"single-nil":     {typ: FilterSingleSelect},
		"single-all":     {typ: FilterSingleSelect, v: SingleValue(AllValue)},
		"single-set":     {typ: FilterSingleSelect, v: SingleValue("open"), e: true, count: 1},
		"multi-empty":    {typ: FilterMultiSelect, v: MultiValue{}},
		"multi-nil":      {typ: FilterMultiSelect},
		"multi-two":      {typ: FilterMultiSelect, v: MultiValue{"a", "b"}, e: true, count: 2},
		"search-blank":   {typ: FilterSearch, v: SearchValue("   ")},
		"search-set":     {typ: FilterSearch, v: SearchValue(" bob "), e: true, count: 1},
		"coerced-single": {typ: FilterMultiSelect, v: SingleValue("a"), e: true, count: 1},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, u.e, DetermineActiveState(u.typ, u.v))
			assert.Equal(t, u.count, ActiveCount(u.typ, u.v))
		})
	}
}

func TestFilterDeriveIgnoresStoredState(t *testing.T) {
	a := FilterState{ID: "q", Type: FilterSearch, Value: SearchValue("x"), IsActive: false}
	b := FilterState{ID: "q", Type: FilterSearch, Value: SearchValue("x"), IsActive: true, ActiveCount: 9}

	da, db := a.Derive(), b.Derive()
	assert.True(t, da.IsActive)
	assert.Equal(t, da.IsActive, db.IsActive)
	assert.Equal(t, 1, db.ActiveCount)
}

func TestFilterDisplayValue(t *testing.T) {
	opts := []FilterOption{
		{Value: "active", Label: "Active"},
		{Value: "pending", Label: "Pending"},
	}
	uu := map[string]struct {
		f FilterState
		e string
	}{
		"inactive": {
			f: FilterState{Type: FilterSingleSelect, Value: SingleValue(AllValue), Placeholder: "Status"},
			e: "Status",
		},
		"single-label": {
			f: FilterState{Type: FilterSingleSelect, Value: SingleValue("active"), Options: opts},
			e: "Active",
		},
		"single-raw": {
			f: FilterState{Type: FilterSingleSelect, Value: SingleValue("gone"), Options: opts},
			e: "gone",
		},
		"multi-many": {
			f: FilterState{Type: FilterMultiSelect, Value: MultiValue{"active", "pending"}, Options: opts},
			e: "2 selected",
		},
		"multi-one": {
			f: FilterState{Type: FilterMultiSelect, Value: MultiValue{"pending"}, Options: opts},
			e: "Pending",
		},
		"search": {
			f: FilterState{Type: FilterSearch, Value: SearchValue("bob"), Placeholder: "Search..."},
			e: "bob",
		},
		"search-empty": {
			f: FilterState{Type: FilterSearch, Placeholder: "Search..."},
			e: "Search...",
		},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, u.e, u.f.Derive().DisplayValue())
		})
	}
}

func TestFilterCloneIsolatesValues(t *testing.T) {
	f := FilterState{ID: "s", Type: FilterMultiSelect, Value: MultiValue{"a"}}
	c := f.Clone()
	c.Value.(MultiValue)[0] = "z"

	assert.Equal(t, MultiValue{"a"}, f.Value)
}

func TestFilterJSON(t *testing.T) {
	ff := []FilterState{
		{ID: "status", Type: FilterMultiSelect, Value: MultiValue{"active"}, Placeholder: "Status"},
		{ID: "q", Type: FilterSearch, Value: SearchValue("bob"), Placeholder: "Search"},
		{ID: "owner", Type: FilterSingleSelect, Field: "ownerId", Options: []FilterOption{{Value: "1", Label: "Ann"}}},
	}
	for i := range ff {
		ff[i] = ff[i].Derive()
		ff[i].OnChange = func(FilterValue) {}
	}

	raw, err := json.Marshal(ff)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"value":["active"]`)
	assert.Contains(t, string(raw), `"value":"bob"`)
	assert.Contains(t, string(raw), `"isActive":true`)

	var out []FilterState
	require.NoError(t, json.Unmarshal(raw, &out))
	require.Len(t, out, 3)
	assert.Equal(t, MultiValue{"active"}, out[0].Value)
	assert.Equal(t, SearchValue("bob"), out[1].Value)
	assert.Equal(t, SingleValue(""), out[2].Value)
	assert.Equal(t, "ownerId", out[2].Field)
	assert.Nil(t, out[0].OnChange)
}

func TestFilterJSONRejectsWrongShape(t *testing.T) {
	uu := map[string]string{
		"multi-as-string": `{"id":"s","type":"multi-select","value":"a"}`,
		"search-as-array": `{"id":"q","type":"search","value":["a"]}`,
		"unknown-type":    `{"id":"q","type":"range","value":""}`,
		"missing-id":      `{"type":"search","value":""}`,
	}

	for k := range uu {
		raw := uu[k]
		t.Run(k, func(t *testing.T) {
			var f FilterState
			assert.ErrorIs(t, json.Unmarshal([]byte(raw), &f), ErrInvalidFilter)
		})
	}
}
