package model1

import "slices"

// DeltaRow holds the previous value of each changed cell, blank otherwise.
type DeltaRow []string

func NewDeltaRow(o, n Cells) DeltaRow {
	deltas := make(DeltaRow, len(o.Fields))
	for i, old := range o.Fields {
		if i >= len(n.Fields) {
			continue
		}
		if old != n.Fields[i] {
			deltas[i] = old
		}
	}
	return deltas
}

func (d DeltaRow) IsBlank() bool {
	for _, v := range d {
		if v != "" {
			return false
		}
	}
	return true
}

// Changed returns true if the cell at col changed.
func (d DeltaRow) Changed(col int) bool {
	return col >= 0 && col < len(d) && d[col] != ""
}

func (d DeltaRow) Clone() DeltaRow {
	return slices.Clone(d)
}
