package model1

import "strings"

// DefaultIdentityField is the row field holding the row key.
const DefaultIdentityField = "id"

// Row represents an opaque application record.
type Row map[string]any

// Field returns the raw value of a field.
func (r Row) Field(name string) (any, bool) {
	v, ok := r[name]
	return v, ok
}

// Key returns the row identity read from the given field, coerced to a string.
func (r Row) Key(field string) (string, bool) {
	if field == "" {
		field = DefaultIdentityField
	}
	v, ok := r[field]
	if !ok || v == nil {
		return "", false
	}
	return ToString(v), true
}

// Rows represents a collection of rows.
type Rows []Row

// Clone returns a shallow copy of the collection.
func (r Rows) Clone() Rows {
	out := make(Rows, len(r))
	copy(out, r)
	return out
}

// Fields represents the rendered fields of a row.
type Fields []string

// Clone returns a copy of the fields.
func (f Fields) Clone() Fields {
	out := make(Fields, len(f))
	copy(out, f)
	return out
}

// Contains returns true if any field contains the lower-cased needle.
func (f Fields) Contains(needle string) bool {
	for _, s := range f {
		if strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}
	return false
}

// Cells represents a rendered row.
type Cells struct {
	ID     string
	Fields Fields
}

// NewCells returns cells sized for a header.
func NewCells(size int) Cells {
	return Cells{Fields: make(Fields, size)}
}

// Clone returns a copy of the cells.
func (c Cells) Clone() Cells {
	return Cells{
		ID:     c.ID,
		Fields: c.Fields.Clone(),
	}
}

// Len returns the number of fields.
func (c Cells) Len() int {
	return len(c.Fields)
}
