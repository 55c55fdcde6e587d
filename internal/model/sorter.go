package model

import (
	"slices"
	"sync"

	"github.com/a1s/gridview/internal/model1"
)

type sortPlan struct {
	col model1.Column
	dir model1.Direction
}

func planSort(criteria model1.SortCriteria, cols model1.Columns) []sortPlan {
	cc := criteria.Normalize()
	plan := make([]sortPlan, 0, len(cc))
	for _, c := range cc {
		col, ok := cols.Find(c.ColumnID)
		if !ok {
			continue
		}
		dir := c.Direction
		if !dir.IsValid() {
			dir = model1.Asc
		}
		plan = append(plan, sortPlan{col: col, dir: dir})
	}
	return plan
}

// SortedData returns the rows ordered by the criteria. Full ties keep their
// original order. The input rows are left untouched.
func SortedData(rows model1.Rows, criteria model1.SortCriteria, cols model1.Columns) model1.Rows {
	plan := planSort(criteria, cols)
	if len(plan) == 0 {
		return rows.Clone()
	}

	type decorated struct {
		row  model1.Row
		keys []model1.SortKey
	}
	dd := make([]decorated, len(rows))
	for i, r := range rows {
		kk := make([]model1.SortKey, len(plan))
		for j, p := range plan {
			kk[j] = model1.NewSortKey(p.col.Type, p.col.Value(r))
		}
		dd[i] = decorated{row: r, keys: kk}
	}

	slices.SortStableFunc(dd, func(a, b decorated) int {
		for j, p := range plan {
			if c := model1.CompareKeys(p.col.Type, p.dir, a.keys[j], b.keys[j]); c != 0 {
				return c
			}
		}
		return 0
	})

	out := make(model1.Rows, len(dd))
	for i, d := range dd {
		out[i] = d.row
	}
	return out
}

// ToggleSort cycles a column through unsorted, ascending and descending.
// It reports false when the column cannot be sorted.
func ToggleSort(criteria model1.SortCriteria, cols model1.Columns, id string) (model1.SortCriteria, bool) {
	if !cols.CanSort(id) {
		return criteria, false
	}

	cc := criteria.Normalize()
	i := cc.IndexOf(id)
	switch {
	case i < 0:
		cc = append(cc, model1.SortCriterion{ColumnID: id, Direction: model1.Asc})
	case cc[i].Direction == model1.Desc:
		cc = slices.Delete(cc, i, i+1)
	default:
		cc[i].Direction = model1.Desc
	}

	return cc.Reindex(), true
}

// AddSort appends a column at the next priority or updates its direction
// when already sorted. It reports false when the column cannot be sorted.
func AddSort(criteria model1.SortCriteria, cols model1.Columns, id string, dir model1.Direction) (model1.SortCriteria, bool) {
	if !cols.CanSort(id) {
		return criteria, false
	}
	if !dir.IsValid() {
		dir = model1.Asc
	}

	cc := criteria.Normalize()
	if i := cc.IndexOf(id); i >= 0 {
		cc[i].Direction = dir
		return cc, true
	}
	cc = append(cc, model1.SortCriterion{ColumnID: id, Direction: dir})

	return cc.Reindex(), true
}

// RemoveSort drops a column from the criteria. It reports false when the
// column was not sorted.
func RemoveSort(criteria model1.SortCriteria, id string) (model1.SortCriteria, bool) {
	cc := criteria.Normalize()
	i := cc.IndexOf(id)
	if i < 0 {
		return criteria, false
	}

	return slices.Delete(cc, i, i+1).Reindex(), true
}

// SetSortConfig orders a list by its given priorities and re-indexes it from
// 0. Later duplicates of a column are dropped.
func SetSortConfig(list model1.SortCriteria) model1.SortCriteria {
	cc := list.Normalize()
	out := make(model1.SortCriteria, 0, len(cc))
	for _, c := range cc {
		if out.IndexOf(c.ColumnID) >= 0 {
			continue
		}
		if !c.Direction.IsValid() {
			c.Direction = model1.Asc
		}
		out = append(out, c)
	}

	return out.Reindex()
}

// ClearSort returns an empty criteria list.
func ClearSort() model1.SortCriteria {
	return model1.SortCriteria{}
}

// Sorter binds the sort transitions to a set of columns and a change callback.
type Sorter struct {
	columns      model1.Columns
	criteria     model1.SortCriteria
	onSortChange func(model1.SortCriteria)
	mx           sync.RWMutex
}

// NewSorter returns a new sorter.
func NewSorter(cols model1.Columns, initial model1.SortCriteria, onChange func(model1.SortCriteria)) *Sorter {
	return &Sorter{
		columns:      cols,
		criteria:     SetSortConfig(initial),
		onSortChange: onChange,
	}
}

// SetOnSortChange sets the change callback.
func (s *Sorter) SetOnSortChange(f func(model1.SortCriteria)) {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.onSortChange = f
}

// Columns returns the sorter columns.
func (s *Sorter) Columns() model1.Columns {
	s.mx.RLock()
	defer s.mx.RUnlock()
	return s.columns
}

// Criteria returns the current criteria.
func (s *Sorter) Criteria() model1.SortCriteria {
	s.mx.RLock()
	defer s.mx.RUnlock()
	return s.criteria
}

// SortedData returns the rows ordered by the current criteria.
func (s *Sorter) SortedData(rows model1.Rows) model1.Rows {
	s.mx.RLock()
	defer s.mx.RUnlock()
	return SortedData(rows, s.criteria, s.columns)
}

// ToggleSort cycles the sort of a column.
func (s *Sorter) ToggleSort(id string) {
	s.apply(func(cc model1.SortCriteria) (model1.SortCriteria, bool) {
		return ToggleSort(cc, s.columns, id)
	})
}

// AddSort sorts by an extra column.
func (s *Sorter) AddSort(id string, dir model1.Direction) {
	s.apply(func(cc model1.SortCriteria) (model1.SortCriteria, bool) {
		return AddSort(cc, s.columns, id, dir)
	})
}

// RemoveSort stops sorting by a column.
func (s *Sorter) RemoveSort(id string) {
	s.apply(func(cc model1.SortCriteria) (model1.SortCriteria, bool) {
		return RemoveSort(cc, id)
	})
}

// SetSortConfig replaces the criteria.
func (s *Sorter) SetSortConfig(list model1.SortCriteria) {
	s.apply(func(model1.SortCriteria) (model1.SortCriteria, bool) {
		return SetSortConfig(list), true
	})
}

// ClearSort removes all criteria.
func (s *Sorter) ClearSort() {
	s.apply(func(model1.SortCriteria) (model1.SortCriteria, bool) {
		return ClearSort(), true
	})
}

func (s *Sorter) apply(f func(model1.SortCriteria) (model1.SortCriteria, bool)) {
	s.mx.Lock()
	cc, ok := f(s.criteria)
	if !ok {
		s.mx.Unlock()
		return
	}
	s.criteria = cc
	cb := s.onSortChange
	s.mx.Unlock()

	if cb != nil {
		cb(cc.Clone())
	}
}

// SortDirection returns the direction a column is sorted by.
func (s *Sorter) SortDirection(id string) (model1.Direction, bool) {
	c, ok := s.Criteria().Get(id)
	return c.Direction, ok
}

// IsSorted returns true if the column is part of the criteria.
func (s *Sorter) IsSorted(id string) bool {
	return s.Criteria().IndexOf(id) >= 0
}

// SortPriority returns the priority of a sorted column.
func (s *Sorter) SortPriority(id string) (int, bool) {
	c, ok := s.Criteria().Get(id)
	if !ok {
		return -1, false
	}
	return c.Priority, true
}

// CanSort returns true if the column is sortable.
func (s *Sorter) CanSort(id string) bool {
	return s.Columns().CanSort(id)
}

// HasMultipleSorts returns true when more than one column is sorted.
func (s *Sorter) HasMultipleSorts() bool {
	return len(s.Criteria()) > 1
}
