// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of a1s

package ui

import (
	"context"
	"fmt"
	"sync"

	"github.com/a1s/gridview/internal/model"
	"github.com/a1s/gridview/internal/model1"
	"github.com/a1s/gridview/internal/render"
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

const (
	// GridTitleFmt formats the grid title with source, visible and total counts.
	GridTitleFmt = " <%s>[%d/%d] "

	// SearchFilterID names the search filter added when none is configured.
	SearchFilterID = "search"

	markCol = 0
)

// Grid action names, used to rebind keys.
const (
	ActionSort         = "sort"
	ActionClearSort    = "clearSort"
	ActionSortAsc      = "sortAsc"
	ActionSortDesc     = "sortDesc"
	ActionMark         = "mark"
	ActionMarkAll      = "markAll"
	ActionInvert       = "invert"
	ActionMarkRange    = "markRange"
	ActionClearMarks   = "clearMarks"
	ActionSearch       = "search"
	ActionClearSearch  = "clearSearch"
	ActionClearFilters = "clearFilters"
	ActionResetFilters = "resetFilters"
	ActionRefresh      = "refresh"
)

// GridTable renders rows through the filter, sort and selection pipeline.
type GridTable struct {
	*tview.Table

	name      string
	actions   *KeyActions
	bindings  map[string]tcell.Key
	grid      *render.Grid
	sorter    *model.Sorter
	selector  *model.Selector
	filters   *model.FilterManager
	model     model.TableModel
	data      *model1.TableData
	visible   model1.Rows
	focusCol  int
	anchor    model1.Row
	searchID  string
	updateFn  func(func())
	changedFn func()
	searchFn  func()
	refreshFn func()
	mx        sync.RWMutex
}

// NewGridTable returns a new grid table.
func NewGridTable(name string, g *render.Grid, s *model.Sorter, sel *model.Selector, f *model.FilterManager) *GridTable {
	t := GridTable{
		Table:    tview.NewTable(),
		name:     name,
		actions:  NewKeyActions(),
		bindings: make(map[string]tcell.Key),
		grid:     g,
		sorter:   s,
		selector: sel,
		filters:  f,
		data:     model1.NewTableData(),
		updateFn: func(f func()) { f() },
	}
	t.searchID = t.findSearch()

	t.SetBorder(true)
	t.SetBorderAttributes(tcell.AttrBold)
	t.SetBorderPadding(0, 0, 1, 1)
	t.SetBorderColor(tcell.ColorWhite)
	t.SetBackgroundColor(tcell.ColorDefault)
	t.SetFixed(1, 0)
	t.SetSelectable(true, false)

	return &t
}

// Init initializes the component.
func (t *GridTable) Init(context.Context) error {
	t.sorter.SetOnSortChange(func(model1.SortCriteria) { t.Refresh() })
	t.selector.SetOnSelectionChange(func(model1.Selection) { t.Refresh() })
	t.filters.SetOnFiltersChange(func([]model1.FilterState) { t.Refresh() })

	t.SetInputCapture(t.keyboard)
	t.bindKeys()
	t.showNoData("Loading...")
	t.updateTitle()

	return nil
}

// Start starts the component.
func (*GridTable) Start() {}

// Stop terminates the component.
func (t *GridTable) Stop() {
	if t.model != nil {
		t.model.RemoveListener(t)
	}
}

// Name returns the component name.
func (t *GridTable) Name() string {
	return t.name
}

// Hints returns the menu hints.
func (t *GridTable) Hints() MenuHints {
	return t.actions.Hints()
}

// Actions returns the key actions.
func (t *GridTable) Actions() *KeyActions {
	return t.actions
}

// SetModel sets the data model and registers the table as listener.
func (t *GridTable) SetModel(m model.TableModel) {
	if t.model != nil {
		t.model.RemoveListener(t)
	}
	t.model = m
	if m != nil {
		m.AddListener(t)
	}
}

// SetUpdateFn sets the function running ui updates, usually on the draw loop.
func (t *GridTable) SetUpdateFn(f func(func())) {
	t.updateFn = f
}

// SetChangedFn sets the callback fired after each render.
func (t *GridTable) SetChangedFn(f func()) {
	t.changedFn = f
}

// SetSearchFn sets the callback opening the search prompt.
func (t *GridTable) SetSearchFn(f func()) {
	t.searchFn = f
}

// SetRefreshFn sets the callback reloading the rows.
func (t *GridTable) SetRefreshFn(f func()) {
	t.refreshFn = f
}

// Sorter returns the sort state.
func (t *GridTable) Sorter() *model.Sorter {
	return t.sorter
}

// Selector returns the selection state.
func (t *GridTable) Selector() *model.Selector {
	return t.selector
}

// Filters returns the filter manager.
func (t *GridTable) Filters() *model.FilterManager {
	return t.filters
}

// VisibleRows returns the filtered and sorted rows.
func (t *GridTable) VisibleRows() model1.Rows {
	t.mx.RLock()
	defer t.mx.RUnlock()

	return t.visible
}

// TotalRows returns the number of rows before filtering.
func (t *GridTable) TotalRows() int {
	t.mx.RLock()
	defer t.mx.RUnlock()

	return t.data.RowCount()
}

// FocusColumn returns the id of the focused column.
func (t *GridTable) FocusColumn() string {
	t.mx.RLock()
	defer t.mx.RUnlock()

	cols := t.grid.Columns()
	if t.focusCol < 0 || t.focusCol >= len(cols) {
		return ""
	}
	return cols[t.focusCol].ID
}

// CurrentRow returns the row under the cursor.
func (t *GridTable) CurrentRow() (model1.Row, bool) {
	row, _ := t.GetSelection()
	t.mx.RLock()
	defer t.mx.RUnlock()

	if row < 1 || row > len(t.visible) {
		return nil, false
	}
	return t.visible[row-1], true
}

// Rebind moves an action to another shortcut.
func (t *GridTable) Rebind(action, shortcut string) error {
	old, ok := t.bindings[action]
	if !ok {
		return fmt.Errorf("unknown grid action %q", action)
	}
	k, err := AsKey(shortcut)
	if err != nil {
		return err
	}
	a, ok := t.actions.Get(old)
	if !ok {
		return fmt.Errorf("action %q is not bound", action)
	}
	t.actions.Delete(old)
	t.actions.Add(k, a)
	t.bindings[action] = k

	return nil
}

func (t *GridTable) bindKeys() {
	t.bind(ActionSort, 's', NewKeyAction("Sort", t.sortCmd, true))
	t.bind(ActionClearSort, 'S', NewKeyAction("Clear Sort", t.clearSortCmd, true))
	t.bind(ActionSortAsc, '<', NewKeyAction("Sort Asc", t.sortDirCmd(model1.Asc), false))
	t.bind(ActionSortDesc, '>', NewKeyAction("Sort Desc", t.sortDirCmd(model1.Desc), false))
	t.bind(ActionMark, KeySpace, NewKeyAction("Mark", t.markCmd, true))
	t.bind(ActionMarkAll, tcell.KeyCtrlA, NewKeyAction("Mark All", t.markAllCmd, true))
	t.bind(ActionInvert, 'i', NewKeyAction("Invert Marks", t.invertCmd, true))
	t.bind(ActionMarkRange, 'v', NewKeyAction("Mark Range", t.markRangeCmd, true))
	t.bind(ActionClearMarks, tcell.KeyCtrlX, NewKeyAction("Clear Marks", t.clearMarksCmd, false))
	t.bind(ActionSearch, KeySlash, NewKeyAction("Search", t.searchCmd, true))
	t.bind(ActionClearSearch, tcell.KeyEsc, NewKeyAction("Clear Search", t.clearSearchCmd, false))
	t.bind(ActionClearFilters, 'c', NewKeyAction("Clear Filters", t.clearFiltersCmd, true))
	t.bind(ActionResetFilters, 'r', NewKeyAction("Reset Filters", t.resetFiltersCmd, true))
	t.bind(ActionRefresh, tcell.KeyCtrlR, NewKeyAction("Refresh", t.refreshCmd, false))
}

func (t *GridTable) bind(action string, k tcell.Key, a KeyAction) {
	t.bindings[action] = k
	t.actions.Add(k, a)
}

func (t *GridTable) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	row, _ := t.GetSelection()
	rowCount := t.GetRowCount()

	switch k := EventKey(evt); k {
	case KeyJ, tcell.KeyDown:
		if row < rowCount-1 {
			t.Select(row+1, 0)
		}
		return nil
	case KeyK, tcell.KeyUp:
		if row > 1 {
			t.Select(row-1, 0)
		}
		return nil
	case KeyG, tcell.KeyHome:
		if rowCount > 1 {
			t.Select(1, 0)
		}
		return nil
	case KeyShiftG, tcell.KeyEnd:
		if rowCount > 1 {
			t.Select(rowCount-1, 0)
		}
		return nil
	case KeyH, tcell.KeyLeft:
		t.moveFocus(-1)
		return nil
	case KeyL, tcell.KeyRight:
		t.moveFocus(1)
		return nil
	default:
		if a, ok := t.actions.Get(k); ok {
			return a.Action(evt)
		}
	}

	return evt
}

func (t *GridTable) moveFocus(delta int) {
	t.mx.Lock()
	n := len(t.grid.Columns())
	if n == 0 {
		t.mx.Unlock()
		return
	}
	t.focusCol = (t.focusCol + delta + n) % n
	t.mx.Unlock()

	t.Refresh()
}

func (t *GridTable) sortCmd(*tcell.EventKey) *tcell.EventKey {
	if id := t.FocusColumn(); id != "" {
		t.sorter.ToggleSort(id)
	}
	return nil
}

func (t *GridTable) sortDirCmd(d model1.Direction) ActionHandler {
	return func(*tcell.EventKey) *tcell.EventKey {
		if id := t.FocusColumn(); id != "" {
			t.sorter.AddSort(id, d)
		}
		return nil
	}
}

func (t *GridTable) clearSortCmd(*tcell.EventKey) *tcell.EventKey {
	t.sorter.ClearSort()
	return nil
}

func (t *GridTable) markCmd(*tcell.EventKey) *tcell.EventKey {
	r, ok := t.CurrentRow()
	if !ok {
		return nil
	}
	t.mx.Lock()
	t.anchor = r
	t.mx.Unlock()
	t.selector.ToggleRowSelection(r)

	return nil
}

func (t *GridTable) markAllCmd(*tcell.EventKey) *tcell.EventKey {
	t.selector.ToggleSelectAll()
	return nil
}

func (t *GridTable) invertCmd(*tcell.EventKey) *tcell.EventKey {
	t.selector.InvertSelection()
	return nil
}

func (t *GridTable) clearMarksCmd(*tcell.EventKey) *tcell.EventKey {
	t.selector.DeselectAll()
	return nil
}

func (t *GridTable) markRangeCmd(*tcell.EventKey) *tcell.EventKey {
	r, ok := t.CurrentRow()
	if !ok {
		return nil
	}
	t.mx.RLock()
	anchor := t.anchor
	t.mx.RUnlock()
	if anchor == nil {
		return t.markCmd(nil)
	}
	t.selector.SelectRange(anchor, r)

	return nil
}

func (t *GridTable) searchCmd(evt *tcell.EventKey) *tcell.EventKey {
	if t.searchFn == nil {
		return evt
	}
	t.searchFn()
	return nil
}

func (t *GridTable) clearSearchCmd(evt *tcell.EventKey) *tcell.EventKey {
	if t.SearchText() == "" {
		return evt
	}
	t.Search("")
	return nil
}

func (t *GridTable) clearFiltersCmd(*tcell.EventKey) *tcell.EventKey {
	t.filters.ClearAllFilters()
	return nil
}

func (t *GridTable) resetFiltersCmd(*tcell.EventKey) *tcell.EventKey {
	t.filters.ResetFilters()
	t.searchID = t.findSearch()
	return nil
}

func (t *GridTable) refreshCmd(*tcell.EventKey) *tcell.EventKey {
	if t.refreshFn != nil {
		t.refreshFn()
	}
	return nil
}

func (t *GridTable) findSearch() string {
	for _, f := range t.filters.Filters() {
		if f.Type == model1.FilterSearch {
			return f.ID
		}
	}
	return ""
}

// Search sets the value of the search filter, adding one if needed.
func (t *GridTable) Search(text string) {
	if _, ok := t.filters.Filter(t.searchID); !ok || t.searchID == "" {
		if text == "" {
			return
		}
		t.searchID = t.filters.AddFilter(model1.FilterState{
			ID:          SearchFilterID,
			Type:        model1.FilterSearch,
			Placeholder: "Search...",
		})
	}
	t.filters.SetFilterValue(t.searchID, model1.SearchValue(text))
}

// SearchText returns the current search text.
func (t *GridTable) SearchText() string {
	f, ok := t.filters.Filter(t.searchID)
	if !ok || t.searchID == "" {
		return ""
	}
	return model1.ValueString(f.Value)
}

// TableNoData notifies no rows were found.
func (t *GridTable) TableNoData(data *model1.TableData) {
	t.setData(data)
}

// TableDataChanged notifies the rows changed.
func (t *GridTable) TableDataChanged(data *model1.TableData) {
	t.setData(data)
}

// TableLoadFailed notifies the rows could not be loaded.
func (t *GridTable) TableLoadFailed(err error) {
	t.updateFn(func() {
		t.SetTitle(fmt.Sprintf(" <%s>[red::b] %v ", t.name, err))
	})
}

func (t *GridTable) setData(data *model1.TableData) {
	if data == nil {
		data = model1.NewTableData()
	}
	t.mx.Lock()
	t.data = data
	t.mx.Unlock()

	t.Refresh()
}

// Refresh reruns the filter and sort pipeline and redraws the rows.
func (t *GridTable) Refresh() {
	t.mx.RLock()
	data := t.data
	t.mx.RUnlock()

	var cursor string
	if r, ok := t.CurrentRow(); ok {
		cursor, _ = t.selector.KeyOf(r)
	}

	cols := t.grid.Columns()
	visible := t.sorter.SortedData(model.ApplyFilters(data.Rows(), t.filters.Filters(), cols))
	t.selector.SetRows(visible)

	t.mx.Lock()
	t.visible = visible
	t.mx.Unlock()

	t.updateFn(func() {
		t.draw(data, visible, cursor)
		if t.changedFn != nil {
			t.changedFn()
		}
	})
}

func (t *GridTable) draw(data *model1.TableData, visible model1.Rows, cursor string) {
	t.Clear()
	t.buildHeader()
	if len(visible) == 0 {
		msg := "No rows found"
		if data.RowCount() > 0 {
			msg = "No matching rows"
		}
		cell := tview.NewTableCell(msg)
		cell.SetTextColor(tcell.ColorGray)
		cell.SetSelectable(false)
		t.SetCell(1, markCol+1, cell)
		t.updateTitle()
		return
	}

	events, sel := data.RowEvents(), t.selector.Selection()
	selectRow := 1
	for i, r := range visible {
		key, keyed := t.selector.KeyOf(r)
		re, ok := events.Get(key)
		if !keyed || !ok {
			re = model1.NewRowEvent(model1.EventUnchanged, r, model1.Cells{})
		}
		cells := model1.NewCells(len(t.grid.Columns()))
		if err := t.grid.Render(r, &cells); err != nil {
			continue
		}
		marked := keyed && sel.Has(key)
		t.buildRow(i+1, cells, model1.DefaultColorer(re, marked), marked)
		if cursor != "" && keyed && key == cursor {
			selectRow = i + 1
		}
	}
	t.Select(selectRow, 0)
	t.updateTitle()
}

func (t *GridTable) buildHeader() {
	h := render.SortHeader(t.grid.Header(), t.sorter.Criteria())

	mark := tview.NewTableCell(render.MarkHeader)
	mark.SetTextColor(tcell.ColorAqua)
	mark.SetSelectable(false)
	t.SetCell(0, markCol, mark)

	t.mx.RLock()
	focus := t.focusCol
	t.mx.RUnlock()
	for i, c := range h {
		cell := tview.NewTableCell(c.Title())
		cell.SetTextColor(tcell.ColorAqua)
		cell.SetBackgroundColor(tcell.ColorDefault)
		cell.SetAlign(c.Align)
		cell.SetExpansion(1)
		cell.SetSelectable(false)
		if i == focus {
			cell.SetAttributes(tcell.AttrBold | tcell.AttrUnderline)
		}
		t.SetCell(0, i+1, cell)
	}
}

func (t *GridTable) buildRow(row int, cells model1.Cells, fg tcell.Color, marked bool) {
	h := t.grid.Header()

	mark := tview.NewTableCell(render.Blank)
	if marked {
		mark.SetText(render.MarkIcon)
	}
	mark.SetTextColor(fg)
	mark.SetReference(cells.ID)
	t.SetCell(row, markCol, mark)

	for i, f := range cells.Fields {
		cell := tview.NewTableCell(f)
		cell.SetTextColor(fg)
		cell.SetBackgroundColor(tcell.ColorDefault)
		if i < len(h) {
			cell.SetAlign(h[i].Align)
		}
		cell.SetExpansion(1)
		t.SetCell(row, i+1, cell)
	}
}

func (t *GridTable) showNoData(msg string) {
	t.Clear()
	cell := tview.NewTableCell(msg)
	cell.SetTextColor(tcell.ColorGray)
	cell.SetAlign(tview.AlignCenter)
	cell.SetSelectable(false)
	t.SetCell(0, 0, cell)
}

func (t *GridTable) updateTitle() {
	t.mx.RLock()
	visible, total := len(t.visible), t.data.RowCount()
	t.mx.RUnlock()

	t.SetTitle(fmt.Sprintf(GridTitleFmt, t.name, visible, total))
}
