// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of a1s

package ui

import (
	"context"
	"errors"
	"testing"

	"github.com/derailed/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a1s/gridview/internal/model"
	"github.com/a1s/gridview/internal/model1"
	"github.com/a1s/gridview/internal/render"
)

func testRows() model1.Rows {
	return model1.Rows{
		{"id": "r1", "name": "Cy", "age": 30, "status": "active"},
		{"id": "r2", "name": "Ann", "age": 25, "status": "idle"},
		{"id": "r3", "name": "Bo", "age": 41, "status": "active"},
	}
}

func testData(rows model1.Rows) *model1.TableData {
	cells := make([]model1.Cells, 0, len(rows))
	for _, r := range rows {
		c := model1.NewCells(0)
		c.ID, _ = r.Key("id")
		cells = append(cells, c)
	}
	d := model1.NewTableData()
	d.SetRowEvents(model1.Diff(nil, rows, cells))

	return d
}

func newTestGrid(t *testing.T) *GridTable {
	cols := model1.Columns{
		{ID: "id", Sortable: true, Type: model1.ColumnNatural},
		{ID: "name", Sortable: true, Type: model1.ColumnText},
		{ID: "age", Sortable: true, Type: model1.ColumnNumber},
	}
	filters := []model1.FilterState{
		{ID: "status", Type: model1.FilterSingleSelect, Value: model1.SingleValue(model1.AllValue)},
	}
	g := NewGridTable(
		"test",
		render.NewGrid(cols),
		model.NewSorter(cols, nil, nil),
		model.NewSelector(model.DefaultSelectionConfig()),
		model.NewFilterManager(filters, model.FilterConfig{}),
	)
	require.NoError(t, g.Init(context.Background()))
	g.TableDataChanged(testData(testRows()))

	return g
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func column(g *GridTable, col int) []string {
	out := make([]string, 0, g.GetRowCount())
	for row := 1; row < g.GetRowCount(); row++ {
		out = append(out, TrimCell(g.Table, row, col))
	}
	return out
}

func TestGridTableRender(t *testing.T) {
	g := newTestGrid(t)

	assert.Equal(t, "#", TrimCell(g.Table, 0, 0))
	assert.Equal(t, "ID", TrimCell(g.Table, 0, 1))
	assert.Equal(t, "AGE", TrimCell(g.Table, 0, 3))
	assert.Equal(t, []string{"Cy", "Ann", "Bo"}, column(g, 2))
	assert.Equal(t, " <test>[3/3] ", g.GetTitle())
	assert.Equal(t, model1.AddColor, g.GetCell(1, 1).Color)
}

func TestGridTableSort(t *testing.T) {
	uu := map[string]struct {
		keys  []rune
		names []string
		title string
	}{
		"asc": {
			keys:  []rune{'l', 's'},
			names: []string{"Ann", "Bo", "Cy"},
			title: "NAME " + render.SortAscIcon,
		},
		"desc": {
			keys:  []rune{'l', 's', 's'},
			names: []string{"Cy", "Bo", "Ann"},
			title: "NAME " + render.SortDescIcon,
		},
		"cleared": {
			keys:  []rune{'l', 's', 'S'},
			names: []string{"Cy", "Ann", "Bo"},
			title: "NAME",
		},
		"numeric": {
			keys:  []rune{'h', 's'},
			names: []string{"Ann", "Cy", "Bo"},
			title: "NAME",
		},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			g := newTestGrid(t)
			for _, r := range u.keys {
				assert.Nil(t, g.keyboard(runeKey(r)))
			}
			assert.Equal(t, u.names, column(g, 2))
			assert.Equal(t, u.title, TrimCell(g.Table, 0, 2))
		})
	}
}

func TestGridTableMarks(t *testing.T) {
	g := newTestGrid(t)

	g.Select(2, 0)
	assert.Nil(t, g.keyboard(runeKey(' ')))
	assert.True(t, g.Selector().Selection().Equal(model1.NewSelection("r2")))
	assert.Equal(t, render.MarkIcon, TrimCell(g.Table, 2, 0))
	assert.Equal(t, model1.MarkColor, g.GetCell(2, 1).Color)

	g.Select(3, 0)
	assert.Nil(t, g.keyboard(runeKey('v')))
	assert.True(t, g.Selector().Selection().Equal(model1.NewSelection("r2", "r3")))

	assert.Nil(t, g.keyboard(runeKey('i')))
	assert.True(t, g.Selector().Selection().Equal(model1.NewSelection("r1")))

	assert.Nil(t, g.keyboard(tcell.NewEventKey(tcell.KeyCtrlA, 0, tcell.ModCtrl)))
	assert.Equal(t, 3, g.Selector().Selection().Len())
	assert.Nil(t, g.keyboard(tcell.NewEventKey(tcell.KeyCtrlA, 0, tcell.ModCtrl)))
	assert.Equal(t, 0, g.Selector().Selection().Len())
}

func TestGridTableSearch(t *testing.T) {
	g := newTestGrid(t)

	g.Search("b")
	assert.Equal(t, []string{"Bo"}, column(g, 2))
	assert.Equal(t, "b", g.SearchText())
	assert.Equal(t, " <test>[1/3] ", g.GetTitle())

	assert.Nil(t, g.keyboard(tcell.NewEventKey(tcell.KeyEsc, 0, tcell.ModNone)))
	assert.Equal(t, "", g.SearchText())
	assert.Len(t, g.VisibleRows(), 3)

	assert.NotNil(t, g.keyboard(tcell.NewEventKey(tcell.KeyEsc, 0, tcell.ModNone)))
}

func TestGridTableSearchNoMatch(t *testing.T) {
	g := newTestGrid(t)

	g.Search("zz")
	assert.Empty(t, g.VisibleRows())
	assert.Equal(t, "No matching rows", TrimCell(g.Table, 1, 1))
}

func TestGridTableFilters(t *testing.T) {
	g := newTestGrid(t)

	g.Filters().SetFilterValue("status", model1.SingleValue("active"))
	assert.Equal(t, []string{"Cy", "Bo"}, column(g, 2))

	assert.Nil(t, g.keyboard(runeKey('c')))
	assert.Len(t, g.VisibleRows(), 3)

	g.Search("ann")
	assert.Len(t, g.VisibleRows(), 1)
	assert.Nil(t, g.keyboard(runeKey('r')))
	assert.Len(t, g.VisibleRows(), 3)
	assert.Equal(t, "", g.SearchText())
}

func TestGridTableSelectionFollowsVisibleRows(t *testing.T) {
	g := newTestGrid(t)

	g.Filters().SetFilterValue("status", model1.SingleValue("active"))
	assert.Nil(t, g.keyboard(tcell.NewEventKey(tcell.KeyCtrlA, 0, tcell.ModCtrl)))

	st := g.Selector().Stats()
	assert.Equal(t, 2, st.Total)
	assert.True(t, st.IsAllSelected)
}

func TestGridTableCursorKeepsRow(t *testing.T) {
	g := newTestGrid(t)

	g.Select(2, 0)
	r, ok := g.CurrentRow()
	require.True(t, ok)
	assert.Equal(t, "Ann", r["name"])

	g.Sorter().ToggleSort("name")
	r, ok = g.CurrentRow()
	require.True(t, ok)
	assert.Equal(t, "Ann", r["name"])
	row, _ := g.GetSelection()
	assert.Equal(t, 1, row)
}

func TestGridTableRebind(t *testing.T) {
	g := newTestGrid(t)

	require.NoError(t, g.Rebind(ActionSort, "o"))
	assert.Nil(t, g.keyboard(runeKey('o')))
	assert.True(t, g.Sorter().IsSorted("id"))

	_, ok := g.Actions().Get('s')
	assert.False(t, ok)

	assert.Error(t, g.Rebind("bozo", "x"))
	assert.Error(t, g.Rebind(ActionSort, "nope"))
}

func TestGridTableLoadFailed(t *testing.T) {
	g := newTestGrid(t)

	g.TableLoadFailed(errors.New("boom"))
	assert.Contains(t, g.GetTitle(), "boom")
}
