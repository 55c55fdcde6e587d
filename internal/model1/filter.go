package model1

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// FilterType represents the kind of a filter control.
type FilterType string

const (
	// FilterSingleSelect holds one option value.
	FilterSingleSelect FilterType = "single-select"

	// FilterMultiSelect holds a set of option values.
	FilterMultiSelect FilterType = "multi-select"

	// FilterSearch holds free text.
	FilterSearch FilterType = "search"
)

// AllValue is the single-select sentinel meaning no restriction.
const AllValue = "all"

// ErrInvalidFilter reports a filter payload that does not match its type.
var ErrInvalidFilter = errors.New("invalid filter")

// IsValid returns true if the filter type is known.
func (t FilterType) IsValid() bool {
	return t == FilterSingleSelect || t == FilterMultiSelect || t == FilterSearch
}

// FilterValue is the value of a filter: SingleValue, MultiValue or SearchValue.
type FilterValue interface {
	filterValue()
}

// SingleValue is the value of a single-select filter.
type SingleValue string

// MultiValue is the value of a multi-select filter.
type MultiValue []string

// SearchValue is the value of a search filter.
type SearchValue string

func (SingleValue) filterValue() {}
func (MultiValue) filterValue()  {}
func (SearchValue) filterValue() {}

// ZeroValue returns the cleared value for a filter type.
func ZeroValue(t FilterType) FilterValue {
	switch t {
	case FilterMultiSelect:
		return MultiValue{}
	case FilterSearch:
		return SearchValue("")
	default:
		return SingleValue("")
	}
}

// CoerceValue converts a value to the variant matching the filter type.
func CoerceValue(t FilterType, v FilterValue) FilterValue {
	if v == nil {
		return ZeroValue(t)
	}
	switch t {
	case FilterMultiSelect:
		switch vv := v.(type) {
		case MultiValue:
			out := make(MultiValue, len(vv))
			copy(out, vv)
			return out
		default:
			if s := ValueString(v); s != "" {
				return MultiValue{s}
			}
			return MultiValue{}
		}
	case FilterSearch:
		if vv, ok := v.(MultiValue); ok {
			return SearchValue(strings.Join(vv, " "))
		}
		return SearchValue(ValueString(v))
	default:
		if vv, ok := v.(MultiValue); ok {
			if len(vv) == 0 {
				return SingleValue("")
			}
			return SingleValue(vv[0])
		}
		return SingleValue(ValueString(v))
	}
}

// ValueString returns the raw text of a value; multi values are comma joined.
func ValueString(v FilterValue) string {
	switch vv := v.(type) {
	case SingleValue:
		return string(vv)
	case SearchValue:
		return string(vv)
	case MultiValue:
		return strings.Join(vv, ",")
	default:
		return ""
	}
}

// DetermineActiveState reports whether a value restricts rows for a filter
// type. It depends on type and value only.
func DetermineActiveState(t FilterType, v FilterValue) bool {
	v = CoerceValue(t, v)
	switch t {
	case FilterMultiSelect:
		return len(v.(MultiValue)) > 0
	case FilterSearch:
		return strings.TrimSpace(string(v.(SearchValue))) != ""
	default:
		s := string(v.(SingleValue))
		return s != "" && s != AllValue
	}
}

// ActiveCount returns the number of active constraints a value carries.
func ActiveCount(t FilterType, v FilterValue) int {
	if !DetermineActiveState(t, v) {
		return 0
	}
	if t == FilterMultiSelect {
		return len(CoerceValue(t, v).(MultiValue))
	}
	return 1
}

// FilterOption represents a selectable filter choice.
type FilterOption struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// FilterState represents a filter descriptor and its current value.
// IsActive and ActiveCount are derived; see Derive.
type FilterState struct {
	ID          string
	Type        FilterType
	Field       string
	Value       FilterValue
	Options     []FilterOption
	Placeholder string
	IsActive    bool
	ActiveCount int
	OnChange    func(FilterValue)
}

// FieldName returns the row field the filter constrains.
func (f FilterState) FieldName() string {
	if f.Field != "" {
		return f.Field
	}
	return f.ID
}

// Derive returns a copy with a type-coerced value and recomputed active state.
func (f FilterState) Derive() FilterState {
	out := f.Clone()
	out.Value = CoerceValue(out.Type, out.Value)
	out.IsActive = DetermineActiveState(out.Type, out.Value)
	out.ActiveCount = ActiveCount(out.Type, out.Value)
	return out
}

// Clone returns a deep copy of the filter.
func (f FilterState) Clone() FilterState {
	out := f
	out.Options = slices.Clone(f.Options)
	if mv, ok := f.Value.(MultiValue); ok {
		out.Value = slices.Clone(mv)
	}
	return out
}

// OptionLabel returns the label of the option holding value.
func (f FilterState) OptionLabel(value string) (string, bool) {
	for _, o := range f.Options {
		if o.Value == value {
			return o.Label, true
		}
	}
	return "", false
}

// DisplayValue returns the text shown for the filter control.
func (f FilterState) DisplayValue() string {
	if !f.IsActive {
		return f.Placeholder
	}
	switch f.Type {
	case FilterMultiSelect:
		mv, _ := f.Value.(MultiValue)
		if f.ActiveCount > 1 {
			return fmt.Sprintf("%d selected", f.ActiveCount)
		}
		if len(mv) == 0 {
			return f.Placeholder
		}
		if l, ok := f.OptionLabel(mv[0]); ok {
			return l
		}
		return mv[0]
	case FilterSearch:
		return ValueString(f.Value)
	default:
		raw := ValueString(f.Value)
		if l, ok := f.OptionLabel(raw); ok {
			return l
		}
		return raw
	}
}

type filterJSON struct {
	ID          string          `json:"id"`
	Type        FilterType      `json:"type"`
	Field       string          `json:"field,omitempty"`
	Value       json.RawMessage `json:"value"`
	Options     []FilterOption  `json:"options,omitempty"`
	Placeholder string          `json:"placeholder"`
	IsActive    bool            `json:"isActive"`
	ActiveCount int             `json:"activeCount"`
}

// MarshalJSON encodes the value as a string or, for multi-select, an array.
func (f FilterState) MarshalJSON() ([]byte, error) {
	var (
		raw []byte
		err error
	)
	switch v := CoerceValue(f.Type, f.Value).(type) {
	case MultiValue:
		raw, err = json.Marshal([]string(v))
	default:
		raw, err = json.Marshal(ValueString(v))
	}
	if err != nil {
		return nil, err
	}

	return json.Marshal(filterJSON{
		ID:          f.ID,
		Type:        f.Type,
		Field:       f.Field,
		Value:       raw,
		Options:     f.Options,
		Placeholder: f.Placeholder,
		IsActive:    f.IsActive,
		ActiveCount: f.ActiveCount,
	})
}

// UnmarshalJSON decodes a filter, rejecting values that do not match the type.
// Stored isActive and activeCount are kept as read; callers re-derive.
func (f *FilterState) UnmarshalJSON(b []byte) error {
	var raw filterJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidFilter)
	}
	if !raw.Type.IsValid() {
		return fmt.Errorf("%w: %q has unknown type %q", ErrInvalidFilter, raw.ID, raw.Type)
	}

	value, err := decodeValue(raw.Type, raw.Value)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidFilter, raw.ID, err)
	}

	*f = FilterState{
		ID:          raw.ID,
		Type:        raw.Type,
		Field:       raw.Field,
		Value:       value,
		Options:     raw.Options,
		Placeholder: raw.Placeholder,
		IsActive:    raw.IsActive,
		ActiveCount: raw.ActiveCount,
	}
	return nil
}

func decodeValue(t FilterType, raw json.RawMessage) (FilterValue, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return ZeroValue(t), nil
	}
	if t == FilterMultiSelect {
		var ss []string
		if err := json.Unmarshal(raw, &ss); err != nil {
			return nil, err
		}
		if ss == nil {
			ss = []string{}
		}
		return MultiValue(ss), nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	if t == FilterSearch {
		return SearchValue(s), nil
	}
	return SingleValue(s), nil
}
