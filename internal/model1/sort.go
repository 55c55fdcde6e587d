package model1

import (
	"cmp"
	"slices"
)

// SortCriterion represents one column of a composite sort.
type SortCriterion struct {
	ColumnID  string    `json:"columnId" yaml:"columnId"`
	Direction Direction `json:"direction" yaml:"direction"`
	Priority  int       `json:"priority" yaml:"priority"`
}

// SortCriteria represents an ordered list of sort criteria. Stored lists keep
// priorities contiguous from 0 in list order.
type SortCriteria []SortCriterion

// Clone returns a copy of the criteria.
func (s SortCriteria) Clone() SortCriteria {
	out := make(SortCriteria, len(s))
	copy(out, s)
	return out
}

// IndexOf returns the list position of a column criterion.
func (s SortCriteria) IndexOf(columnID string) int {
	for i, c := range s {
		if c.ColumnID == columnID {
			return i
		}
	}
	return -1
}

// Get returns the criterion for a column.
func (s SortCriteria) Get(columnID string) (SortCriterion, bool) {
	if i := s.IndexOf(columnID); i >= 0 {
		return s[i], true
	}
	return SortCriterion{}, false
}

// Reindex returns a copy whose priorities match list positions.
func (s SortCriteria) Reindex() SortCriteria {
	out := s.Clone()
	for i := range out {
		out[i].Priority = i
	}
	return out
}

// Normalize returns a copy ordered by the given priorities (stable on ties)
// and re-indexed from 0.
func (s SortCriteria) Normalize() SortCriteria {
	out := s.Clone()
	slices.SortStableFunc(out, func(a, b SortCriterion) int {
		return cmp.Compare(a.Priority, b.Priority)
	})
	return out.Reindex()
}

// IsNormalized returns true if priorities are exactly 0..n-1 in list order.
func (s SortCriteria) IsNormalized() bool {
	for i, c := range s {
		if c.Priority != i {
			return false
		}
	}
	return true
}

// Equal returns true if both lists hold the same criteria in the same order.
func (s SortCriteria) Equal(o SortCriteria) bool {
	return slices.Equal(s, o)
}
