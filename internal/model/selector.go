package model

import (
	"math"
	"sync"

	"github.com/a1s/gridview/internal/model1"
)

// SelectionConfig configures a selector.
type SelectionConfig struct {
	// IdentityField names the row field holding the row key.
	IdentityField string

	// MultiSelect lets SelectRow add to the selection instead of replacing it.
	MultiSelect bool

	// SelectAll enables the select all action.
	SelectAll bool

	// OnSelectionChange is called with every new selection.
	OnSelectionChange func(model1.Selection)
}

// DefaultSelectionConfig returns a multi-select configuration keyed by id.
func DefaultSelectionConfig() SelectionConfig {
	return SelectionConfig{
		IdentityField: model1.DefaultIdentityField,
		MultiSelect:   true,
		SelectAll:     true,
	}
}

// SelectionStats summarizes a selection against the live rows.
type SelectionStats struct {
	Total               int
	Selected            int
	Percentage          int
	IsAllSelected       bool
	IsPartiallySelected bool
	IsNoneSelected      bool
}

// NewSelectionStats computes stats for a selection over rows.
func NewSelectionStats(rows model1.Rows, sel model1.Selection, field string) SelectionStats {
	st := SelectionStats{Total: len(rows)}
	for _, r := range rows {
		if k, ok := r.Key(field); ok && sel.Has(k) {
			st.Selected++
		}
	}
	if st.Total > 0 {
		st.Percentage = int(math.Round(float64(st.Selected) / float64(st.Total) * 100))
	}
	st.IsAllSelected = st.Total > 0 && st.Selected == st.Total
	st.IsNoneSelected = st.Selected == 0
	st.IsPartiallySelected = st.Selected > 0 && st.Selected < st.Total

	return st
}

// Selector tracks the selected rows of a collection.
type Selector struct {
	config   SelectionConfig
	rows     model1.Rows
	selected model1.Selection
	mx       sync.RWMutex
}

// NewSelector returns a new selector.
func NewSelector(cfg SelectionConfig) *Selector {
	if cfg.IdentityField == "" {
		cfg.IdentityField = model1.DefaultIdentityField
	}
	return &Selector{
		config:   cfg,
		selected: model1.NewSelection(),
	}
}

// SetOnSelectionChange sets the change callback.
func (s *Selector) SetOnSelectionChange(f func(model1.Selection)) {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.config.OnSelectionChange = f
}

// SetRows sets the live rows. Selected keys are kept as is.
func (s *Selector) SetRows(rows model1.Rows) {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.rows = rows
}

// Rows returns the live rows.
func (s *Selector) Rows() model1.Rows {
	s.mx.RLock()
	defer s.mx.RUnlock()
	return s.rows
}

// Selection returns the current selection.
func (s *Selector) Selection() model1.Selection {
	s.mx.RLock()
	defer s.mx.RUnlock()
	return s.selected
}

// KeyOf returns the identity of a row.
func (s *Selector) KeyOf(r model1.Row) (string, bool) {
	return r.Key(s.config.IdentityField)
}

func (s *Selector) keysOf(rows model1.Rows) []string {
	kk := make([]string, 0, len(rows))
	for _, r := range rows {
		if k, ok := s.KeyOf(r); ok {
			kk = append(kk, k)
		}
	}
	return kk
}

func (s *Selector) indexOf(rows model1.Rows, key string) int {
	for i, r := range rows {
		if k, ok := s.KeyOf(r); ok && k == key {
			return i
		}
	}
	return -1
}

// SelectRow selects a row. In single-select mode it replaces the selection.
func (s *Selector) SelectRow(r model1.Row) {
	k, ok := s.KeyOf(r)
	if !ok {
		return
	}
	s.apply(func(sel model1.Selection, _ model1.Rows) (model1.Selection, bool) {
		if !s.config.MultiSelect {
			return model1.NewSelection(k), true
		}
		return sel.With(k), true
	})
}

// DeselectRow deselects a row.
func (s *Selector) DeselectRow(r model1.Row) {
	k, ok := s.KeyOf(r)
	if !ok {
		return
	}
	s.apply(func(sel model1.Selection, _ model1.Rows) (model1.Selection, bool) {
		return sel.Without(k), true
	})
}

// ToggleRowSelection flips the selection of a row.
func (s *Selector) ToggleRowSelection(r model1.Row) {
	if s.IsRowSelected(r) {
		s.DeselectRow(r)
		return
	}
	s.SelectRow(r)
}

// SelectAll selects every row unless select all is disabled.
func (s *Selector) SelectAll() {
	s.apply(func(_ model1.Selection, rows model1.Rows) (model1.Selection, bool) {
		if !s.config.SelectAll {
			return nil, false
		}
		return model1.NewSelection(s.keysOf(rows)...), true
	})
}

// DeselectAll clears the selection.
func (s *Selector) DeselectAll() {
	s.apply(func(model1.Selection, model1.Rows) (model1.Selection, bool) {
		return model1.NewSelection(), true
	})
}

// ToggleSelectAll deselects all rows when all are selected, else selects all.
func (s *Selector) ToggleSelectAll() {
	if s.Stats().IsAllSelected {
		s.DeselectAll()
		return
	}
	s.SelectAll()
}

// SelectRange selects the rows between two rows inclusive, by collection
// position. The prior selection is replaced.
func (s *Selector) SelectRange(a, b model1.Row) {
	ka, oka := s.KeyOf(a)
	kb, okb := s.KeyOf(b)
	if !oka || !okb {
		return
	}
	s.apply(func(_ model1.Selection, rows model1.Rows) (model1.Selection, bool) {
		ia, ib := s.indexOf(rows, ka), s.indexOf(rows, kb)
		if ia < 0 || ib < 0 {
			return nil, false
		}
		return model1.NewSelection(s.keysOf(rows[min(ia, ib) : max(ia, ib)+1])...), true
	})
}

// SelectMultiple adds rows to the selection.
func (s *Selector) SelectMultiple(rr model1.Rows) {
	kk := s.keysOf(rr)
	if len(kk) == 0 {
		return
	}
	s.apply(func(sel model1.Selection, _ model1.Rows) (model1.Selection, bool) {
		return sel.With(kk...), true
	})
}

// DeselectMultiple removes rows from the selection.
func (s *Selector) DeselectMultiple(rr model1.Rows) {
	kk := s.keysOf(rr)
	s.apply(func(sel model1.Selection, _ model1.Rows) (model1.Selection, bool) {
		return sel.Without(kk...), true
	})
}

// InvertSelection selects every unselected row and deselects the rest.
func (s *Selector) InvertSelection() {
	s.apply(func(sel model1.Selection, rows model1.Rows) (model1.Selection, bool) {
		out := model1.NewSelection()
		for _, k := range s.keysOf(rows) {
			if !sel.Has(k) {
				out[k] = struct{}{}
			}
		}
		return out, true
	})
}

func (s *Selector) apply(f func(model1.Selection, model1.Rows) (model1.Selection, bool)) {
	s.mx.Lock()
	sel, ok := f(s.selected, s.rows)
	if !ok {
		s.mx.Unlock()
		return
	}
	s.selected = sel
	cb := s.config.OnSelectionChange
	s.mx.Unlock()

	if cb != nil {
		cb(sel.Clone())
	}
}

// IsRowSelected returns true if the row is selected.
func (s *Selector) IsRowSelected(r model1.Row) bool {
	k, ok := s.KeyOf(r)
	return ok && s.Selection().Has(k)
}

// SelectedRows returns the live rows that are selected, in collection order.
func (s *Selector) SelectedRows() model1.Rows {
	s.mx.RLock()
	defer s.mx.RUnlock()

	out := make(model1.Rows, 0, len(s.selected))
	for _, r := range s.rows {
		if k, ok := s.KeyOf(r); ok && s.selected.Has(k) {
			out = append(out, r)
		}
	}
	return out
}

// Stats returns the selection statistics.
func (s *Selector) Stats() SelectionStats {
	s.mx.RLock()
	defer s.mx.RUnlock()
	return NewSelectionStats(s.rows, s.selected, s.config.IdentityField)
}
