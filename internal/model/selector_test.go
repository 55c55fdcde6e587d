package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a1s/gridview/internal/model1"
)

func newTestSelector(cfg SelectionConfig) (*Selector, *[]model1.Selection) {
	var calls []model1.Selection
	cfg.OnSelectionChange = func(s model1.Selection) {
		calls = append(calls, s)
	}
	s := NewSelector(cfg)
	s.SetRows(people())

	return s, &calls
}

func TestSelectRange(t *testing.T) {
	s, calls := newTestSelector(DefaultSelectionConfig())
	rows := people()

	s.SelectRow(rows[0])
	s.SelectRange(rows[1], rows[3])
	assert.Equal(t, []string{"2", "3", "4"}, s.Selection().Keys())
	assert.Len(t, *calls, 2)
}

func TestSelectRangeSymmetric(t *testing.T) {
	single := DefaultSelectionConfig()
	single.MultiSelect = false

	uu := map[string]struct {
		cfg SelectionConfig
	}{
		"multi":  {cfg: DefaultSelectionConfig()},
		"single": {cfg: single},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			rows := people()
			for i := range rows {
				for j := range rows {
					a, _ := newTestSelector(u.cfg)
					b, _ := newTestSelector(u.cfg)
					a.SelectRange(rows[i], rows[j])
					b.SelectRange(rows[j], rows[i])
					assert.True(t, a.Selection().Equal(b.Selection()), "%d:%d", i, j)
					assert.Equal(t, max(i, j)-min(i, j)+1, a.Selection().Len())
				}
			}
		})
	}
}

func TestSelectMultipleSingleSelect(t *testing.T) {
	cfg := DefaultSelectionConfig()
	cfg.MultiSelect = false
	s, _ := newTestSelector(cfg)
	rows := people()

	s.SelectMultiple(rows[1:3])
	assert.Equal(t, []string{"2", "3"}, s.Selection().Keys())
	s.SelectRow(rows[0])
	assert.Equal(t, []string{"1"}, s.Selection().Keys())
}

func TestSelectRangeUnknownRow(t *testing.T) {
	s, calls := newTestSelector(DefaultSelectionConfig())

	s.SelectRange(people()[0], model1.Row{"id": 99})
	assert.Empty(t, *calls)
	assert.Equal(t, 0, s.Selection().Len())
}

func TestSelectMultipleAlgebra(t *testing.T) {
	s, _ := newTestSelector(DefaultSelectionConfig())
	rows := people()

	s.SelectMultiple(rows[1:3])
	assert.Equal(t, []string{"2", "3"}, s.Selection().Keys())
	s.DeselectMultiple(rows[1:3])
	assert.Equal(t, 0, s.Selection().Len())
}

func TestInvertSelectionTwice(t *testing.T) {
	s, _ := newTestSelector(DefaultSelectionConfig())
	rows := people()

	s.SelectMultiple(model1.Rows{rows[0], rows[2]})
	orig := s.Selection()

	s.InvertSelection()
	assert.Equal(t, []string{"2", "4"}, s.Selection().Keys())
	s.InvertSelection()
	assert.True(t, orig.Equal(s.Selection()))
}

func TestSelectionImmutable(t *testing.T) {
	s, calls := newTestSelector(DefaultSelectionConfig())
	rows := people()

	s.SelectRow(rows[0])
	first := s.Selection()
	s.SelectRow(rows[1])

	assert.Equal(t, 1, first.Len())
	assert.Equal(t, 2, s.Selection().Len())
	(*calls)[1]["bogus"] = struct{}{}
	assert.False(t, s.Selection().Has("bogus"))
}

func TestToggleRowSelection(t *testing.T) {
	s, calls := newTestSelector(DefaultSelectionConfig())
	r := people()[2]

	s.ToggleRowSelection(r)
	assert.True(t, s.IsRowSelected(r))
	s.ToggleRowSelection(r)
	assert.False(t, s.IsRowSelected(r))
	assert.Len(t, *calls, 2)
}

func TestSingleSelectMode(t *testing.T) {
	cfg := DefaultSelectionConfig()
	cfg.MultiSelect = false
	s, _ := newTestSelector(cfg)
	rows := people()

	s.SelectRow(rows[0])
	s.SelectRow(rows[2])
	assert.Equal(t, []string{"3"}, s.Selection().Keys())

	s.SelectRange(rows[0], rows[3])
	assert.Equal(t, []string{"4"}, s.Selection().Keys())

	s.SelectMultiple(rows[:2])
	assert.Equal(t, []string{"2"}, s.Selection().Keys())
}

func TestSelectAll(t *testing.T) {
	s, calls := newTestSelector(DefaultSelectionConfig())

	s.ToggleSelectAll()
	assert.Equal(t, []string{"1", "2", "3", "4"}, s.Selection().Keys())
	assert.True(t, s.Stats().IsAllSelected)

	s.ToggleSelectAll()
	assert.Equal(t, 0, s.Selection().Len())
	assert.Len(t, *calls, 2)
}

func TestSelectAllDisabled(t *testing.T) {
	cfg := DefaultSelectionConfig()
	cfg.SelectAll = false
	s, calls := newTestSelector(cfg)

	s.SelectAll()
	assert.Empty(t, *calls)
	assert.Equal(t, 0, s.Selection().Len())
}

func TestSelectedRowsSelfHeal(t *testing.T) {
	s, _ := newTestSelector(DefaultSelectionConfig())
	rows := people()

	s.SelectMultiple(model1.Rows{rows[0], rows[3]})
	s.SetRows(rows[1:])

	sel := s.SelectedRows()
	require.Len(t, sel, 1)
	assert.Equal(t, "Diana", sel[0]["name"])
	assert.Equal(t, 2, s.Selection().Len())

	st := s.Stats()
	assert.Equal(t, 3, st.Total)
	assert.Equal(t, 1, st.Selected)
	assert.Equal(t, 33, st.Percentage)
	assert.True(t, st.IsPartiallySelected)
}

func TestRowsWithoutIdentity(t *testing.T) {
	s, calls := newTestSelector(DefaultSelectionConfig())
	anon := model1.Row{"name": "ghost"}

	s.SelectRow(anon)
	s.DeselectRow(anon)
	s.SelectMultiple(model1.Rows{anon})
	assert.Empty(t, *calls)
	assert.False(t, s.IsRowSelected(anon))
}

func TestCustomIdentityField(t *testing.T) {
	cfg := DefaultSelectionConfig()
	cfg.IdentityField = "name"
	s, _ := newTestSelector(cfg)

	s.SelectRow(people()[1])
	assert.Equal(t, []string{"Bob"}, s.Selection().Keys())
}

func TestSelectionStats(t *testing.T) {
	uu := map[string]struct {
		rows model1.Rows
		sel  model1.Selection
		e    SelectionStats
	}{
		"empty": {
			sel: model1.NewSelection("1"),
			e:   SelectionStats{IsNoneSelected: true},
		},
		"none": {
			rows: people(),
			sel:  model1.NewSelection(),
			e:    SelectionStats{Total: 4, IsNoneSelected: true},
		},
		"partial": {
			rows: people(),
			sel:  model1.NewSelection("1"),
			e:    SelectionStats{Total: 4, Selected: 1, Percentage: 25, IsPartiallySelected: true},
		},
		"rounding": {
			rows: people()[:3],
			sel:  model1.NewSelection("1", "2"),
			e:    SelectionStats{Total: 3, Selected: 2, Percentage: 67, IsPartiallySelected: true},
		},
		"all": {
			rows: people(),
			sel:  model1.NewSelection("1", "2", "3", "4", "stale"),
			e:    SelectionStats{Total: 4, Selected: 4, Percentage: 100, IsAllSelected: true},
		},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			st := NewSelectionStats(u.rows, u.sel, "")
			assert.Equal(t, u.e, st)
			assert.Equal(t, st.Total, st.Selected+(st.Total-st.Selected))
			assert.Equal(t, st.IsAllSelected, st.Total > 0 && st.Selected == st.Total)
			assert.Equal(t, st.IsNoneSelected, st.Selected == 0)
		})
	}
}
