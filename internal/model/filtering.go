package model

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/a1s/gridview/internal/model1"
)

// matcher tests one row against one active filter.
type matcher func(model1.Row) bool

// ApplyFilters returns the rows matching every active filter. Filters are
// AND-combined; multi-select values are OR-combined. A search filter without
// an explicit field matches any column.
func ApplyFilters(rows model1.Rows, filters []model1.FilterState, cols model1.Columns) model1.Rows {
	mm := make([]matcher, 0, len(filters))
	for _, f := range filters {
		f = f.Derive()
		if !f.IsActive {
			continue
		}
		mm = append(mm, newMatcher(f, cols))
	}
	if len(mm) == 0 {
		return rows.Clone()
	}

	out := make(model1.Rows, 0, len(rows))
	for _, r := range rows {
		pass := true
		for _, m := range mm {
			if !m(r) {
				pass = false
				break
			}
		}
		if pass {
			out = append(out, r)
		}
	}

	return out
}

func newMatcher(f model1.FilterState, cols model1.Columns) matcher {
	switch v := f.Value.(type) {
	case model1.MultiValue:
		set := toLowerSet(v)
		return func(r model1.Row) bool {
			return set[fold(fieldText(r, f.FieldName(), cols))]
		}
	case model1.SearchValue:
		needle := fold(strings.TrimSpace(string(v)))
		if f.Field != "" {
			return func(r model1.Row) bool {
				return strings.Contains(fold(fieldText(r, f.Field, cols)), needle)
			}
		}
		return func(r model1.Row) bool {
			for _, c := range cols {
				if strings.Contains(fold(model1.ToString(c.Value(r))), needle) {
					return true
				}
			}
			return false
		}
	default:
		want := fold(model1.ValueString(v))
		return func(r model1.Row) bool {
			return fold(fieldText(r, f.FieldName(), cols)) == want
		}
	}
}

// fieldText reads a field through its column when one exists.
func fieldText(r model1.Row, field string, cols model1.Columns) string {
	if c, ok := cols.Find(field); ok {
		return model1.ToString(c.Value(r))
	}
	return model1.ToString(r[field])
}

func fold(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}

func toLowerSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[fold(item)] = true
	}
	return set
}
