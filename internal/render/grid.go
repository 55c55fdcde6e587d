package render

import (
	"errors"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/derailed/tview"

	"github.com/a1s/gridview/internal/model1"
)

// Grid renders rows through a set of column descriptors.
type Grid struct {
	Base

	cols model1.Columns
}

// NewGrid returns a renderer for the given columns.
func NewGrid(cols model1.Columns) *Grid {
	return &Grid{cols: cols}
}

// Columns returns the rendered columns.
func (g *Grid) Columns() model1.Columns {
	return g.cols
}

// Header returns the grid header.
func (g *Grid) Header() model1.Header {
	h := make(model1.Header, 0, len(g.cols))
	for _, c := range g.cols {
		attrs := model1.Attrs{
			Align:    tview.AlignLeft,
			Sortable: c.Sortable,
			Numeric:  c.Type.IsNumeric(),
		}
		if attrs.Numeric {
			attrs.Align = tview.AlignRight
		}
		h = append(h, model1.HeaderColumn{
			ID:    c.ID,
			Name:  strings.ToUpper(c.Name()),
			Attrs: attrs,
		})
	}

	return h
}

// Render formats a row into cells.
func (g *Grid) Render(r model1.Row, out *model1.Cells) error {
	if out == nil {
		return errors.New("no cells to render into")
	}
	if len(out.Fields) != len(g.cols) {
		out.Fields = make(model1.Fields, len(g.cols))
	}
	for i, c := range g.cols {
		out.Fields[i] = FormatCell(c.Type, c.Value(r))
	}

	return nil
}

// FormatCell formats a raw value for a column type. Missing or unparseable
// values render as n/a.
func FormatCell(typ model1.ColumnType, v any) string {
	if v == nil {
		return NAValue
	}
	switch typ {
	case model1.ColumnNumber:
		if f, ok := model1.ToFloat(v); ok {
			return FormatNumber(f)
		}
	case model1.ColumnCurrency:
		if f, ok := model1.ToFloat(v); ok {
			return FormatCurrency(f)
		}
	case model1.ColumnBoolean:
		return BoolToStr(model1.ToBool(v))
	case model1.ColumnDate:
		if t, ok := model1.ToTime(v); ok {
			return FormatDate(t)
		}
	case model1.ColumnDuration:
		if s, ok := model1.ToSeconds(v); ok {
			return HumanDuration(time.Duration(s * float64(time.Second)))
		}
	default:
		return NA(model1.ToString(v))
	}

	return NAValue
}

// SortHeader decorates header columns with their sort indicators. The
// priority is shown when more than one column is sorted.
func SortHeader(h model1.Header, criteria model1.SortCriteria) model1.Header {
	out := h.Clone()
	for i := range out {
		out[i].SortMark = Blank
	}
	for _, c := range criteria {
		idx, ok := out.IndexOf(c.ColumnID)
		if !ok {
			continue
		}
		mark := SortAscIcon
		if c.Direction == model1.Desc {
			mark = SortDescIcon
		}
		if len(criteria) > 1 {
			mark += strconv.Itoa(c.Priority + 1)
		}
		out[idx].SortMark = mark
	}

	return out
}

// InferColumns derives sortable columns from the fields of the rows. The
// identity field comes first, then the rest in natural order. Columns whose
// values are all numbers or all booleans get the matching type.
func InferColumns(rows model1.Rows, identityField string) model1.Columns {
	types := make(map[string]model1.ColumnType)
	for _, r := range rows {
		for k, v := range r {
			types[k] = mergeType(types[k], v)
		}
	}

	keys := slices.Collect(maps.Keys(types))
	slices.SortFunc(keys, func(a, b string) int {
		switch {
		case a == identityField:
			return -1
		case b == identityField:
			return 1
		}
		return model1.Compare(model1.ColumnNatural, model1.Asc, a, b)
	})

	cols := make(model1.Columns, 0, len(keys))
	for _, k := range keys {
		typ := types[k]
		if typ == "" {
			typ = model1.ColumnText
		}
		cols = append(cols, model1.Column{ID: k, Sortable: true, Type: typ})
	}

	return cols
}

func mergeType(prev model1.ColumnType, v any) model1.ColumnType {
	var typ model1.ColumnType
	switch v.(type) {
	case nil:
		return prev
	case bool:
		typ = model1.ColumnBoolean
	case int, int32, int64, float32, float64, uint, uint32, uint64:
		typ = model1.ColumnNumber
	case time.Time:
		typ = model1.ColumnDate
	default:
		typ = model1.ColumnText
	}
	if prev == "" || prev == typ {
		return typ
	}

	return model1.ColumnText
}
