package model1

import (
	"maps"
	"slices"
)

// Selection represents a set of selected row keys. A selection is never
// mutated once handed out; operations build a new one.
type Selection map[string]struct{}

// NewSelection returns a selection holding the given keys.
func NewSelection(keys ...string) Selection {
	s := make(Selection, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

// Has returns true if the key is selected.
func (s Selection) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Len returns the number of selected keys.
func (s Selection) Len() int {
	return len(s)
}

// Keys returns the selected keys in natural order.
func (s Selection) Keys() []string {
	kk := slices.Collect(maps.Keys(s))
	slices.SortFunc(kk, naturalCompare)
	return kk
}

// Clone returns a copy of the selection.
func (s Selection) Clone() Selection {
	out := make(Selection, len(s))
	maps.Copy(out, s)
	return out
}

// Equal returns true if both selections hold the same keys.
func (s Selection) Equal(o Selection) bool {
	if len(s) != len(o) {
		return false
	}
	for k := range s {
		if !o.Has(k) {
			return false
		}
	}
	return true
}

// With returns a new selection holding the extra keys.
func (s Selection) With(keys ...string) Selection {
	out := s.Clone()
	for _, k := range keys {
		out[k] = struct{}{}
	}
	return out
}

// Without returns a new selection minus the given keys.
func (s Selection) Without(keys ...string) Selection {
	out := s.Clone()
	for _, k := range keys {
		delete(out, k)
	}
	return out
}
