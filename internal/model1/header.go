package model1

import (
	"fmt"
	"reflect"
)

// Attrs represents column attributes
type Attrs struct {
	Align    int  // tview alignment
	Numeric  bool // Right-aligned numeric column
	Sortable bool
	SortMark string // Sort indicator, ie ↑1
}

// HeaderColumn represents a table header column
type HeaderColumn struct {
	ID   string
	Name string
	Attrs
}

func (h HeaderColumn) String() string {
	return fmt.Sprintf("%s [%d::%t::%t]", h.Name, h.Align, h.Numeric, h.Sortable)
}

// Title returns the column name decorated with its sort indicator.
func (h HeaderColumn) Title() string {
	if h.SortMark == "" {
		return h.Name
	}
	return h.Name + " " + h.SortMark
}

// Header represents a table header (slice of columns)
type Header []HeaderColumn

func (h Header) Clone() Header {
	he := make(Header, len(h))
	copy(he, h)
	return he
}

func (h Header) Diff(header Header) bool {
	if len(h) != len(header) {
		return true
	}
	return !reflect.DeepEqual(h, header)
}

func (h Header) IndexOf(id string) (int, bool) {
	for i, c := range h {
		if c.ID == id {
			return i, true
		}
	}
	return -1, false
}

func (h Header) IsNumericCol(col int) bool {
	if col < 0 || col >= len(h) {
		return false
	}
	return h[col].Numeric
}

func (h Header) ColumnNames() []string {
	if len(h) == 0 {
		return nil
	}
	cc := make([]string, 0, len(h))
	for _, c := range h {
		cc = append(cc, c.Name)
	}
	return cc
}
