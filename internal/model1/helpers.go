package model1

import (
	"cmp"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/fvbommel/sortorder"
	"golang.org/x/text/unicode/norm"
)

// dateLayouts lists the layouts tried when a date cell is a string.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04",
	"01/02/2006",
	"1/2/2006",
	"02 Jan 2006 15:04",
	"02 Jan 2006",
	"Jan 2, 2006",
}

// ToString coerces a cell value to a string.
func ToString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case time.Time:
		return t.Format(time.RFC3339)
	case fmt.Stringer:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

// ToFloat coerces a cell value to a number. NaN and unparseable values are
// reported as missing.
func ToFloat(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case nil:
		return 0, false
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int8:
		f = float64(t)
	case int16:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	case uint:
		f = float64(t)
	case uint8:
		f = float64(t)
	case uint16:
		f = float64(t)
	case uint32:
		f = float64(t)
	case uint64:
		f = float64(t)
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = n
	case string:
		n, err := strconv.ParseFloat(cleanNumber(t), 64)
		if err != nil {
			return 0, false
		}
		f = n
	default:
		return 0, false
	}
	if math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// cleanNumber strips currency symbols, separators and padding.
func cleanNumber(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ',', '_', ' ', '$', '€', '£', '¥':
			return -1
		}
		return r
	}, strings.TrimSpace(s))
}

// ToBool coerces a cell value to a boolean. Missing values are false.
func ToBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		return err == nil && b
	default:
		f, ok := ToFloat(v)
		return ok && f != 0
	}
}

// ToTime coerces a cell value to a timestamp. Numbers are Unix milliseconds.
func ToTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, !t.IsZero()
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, false
		}
		for _, l := range dateLayouts {
			if ts, err := time.Parse(l, s); err == nil {
				return ts, true
			}
		}
		return time.Time{}, false
	default:
		ms, ok := ToFloat(v)
		if !ok {
			return time.Time{}, false
		}
		return time.UnixMilli(int64(ms)).UTC(), true
	}
}

// ToSeconds coerces a duration cell to seconds.
func ToSeconds(v any) (float64, bool) {
	switch t := v.(type) {
	case time.Duration:
		return t.Seconds(), true
	case string:
		s := strings.TrimSpace(t)
		if s == "" || s == NAValue {
			return 0, false
		}
		if d, err := time.ParseDuration(s); err == nil {
			return d.Seconds(), true
		}
		n, ok := durationToSeconds(s)
		return float64(n), ok
	default:
		return ToFloat(v)
	}
}

func durationToSeconds(duration string) (int64, bool) {
	num := make([]rune, 0, 5)
	var n, m int64
	for _, r := range duration {
		switch r {
		case 'y':
			m = 365 * 24 * 60 * 60
		case 'd':
			m = 24 * 60 * 60
		case 'h':
			m = 60 * 60
		case 'm':
			m = 60
		case 's':
			m = 1
		default:
			if r < '0' || r > '9' {
				return 0, false
			}
			num = append(num, r)
			continue
		}
		if len(num) == 0 {
			return 0, false
		}
		n, num = n+runesToNum(num)*m, num[:0]
	}
	if len(num) > 0 {
		return 0, false
	}
	return n, true
}

func runesToNum(rr []rune) int64 {
	var r int64
	var m int64 = 1
	for i := len(rr) - 1; i >= 0; i-- {
		v := int64(rr[i] - '0')
		r += v * m
		m *= 10
	}
	return r
}

// SortKey is a pre-computed comparable form of a cell value.
type SortKey struct {
	text string
	num  float64
	ts   time.Time
	ok   bool
}

// NewSortKey converts a raw cell value into a sort key for a column type.
func NewSortKey(typ ColumnType, v any) SortKey {
	switch typ {
	case ColumnNumber, ColumnCurrency:
		f, ok := ToFloat(v)
		if !ok {
			f = math.Inf(-1)
		}
		return SortKey{num: f, ok: ok}
	case ColumnDuration:
		f, ok := ToSeconds(v)
		if !ok {
			f = math.Inf(-1)
		}
		return SortKey{num: f, ok: ok}
	case ColumnBoolean:
		if ToBool(v) {
			return SortKey{num: 1, ok: true}
		}
		return SortKey{ok: true}
	case ColumnDate:
		ts, ok := ToTime(v)
		return SortKey{ts: ts, ok: ok}
	default:
		return SortKey{text: norm.NFC.String(ToString(v)), ok: true}
	}
}

// CompareKeys orders two sort keys for a column type in the given direction.
func CompareKeys(typ ColumnType, dir Direction, a, b SortKey) int {
	switch typ {
	case ColumnNumber, ColumnCurrency, ColumnDuration, ColumnBoolean:
		return dir.apply(cmp.Compare(a.num, b.num))
	case ColumnDate:
		switch {
		case !a.ok && !b.ok:
			return 0
		case !a.ok:
			return 1
		case !b.ok:
			return -1
		}
		return dir.apply(a.ts.Compare(b.ts))
	case ColumnNatural:
		return dir.apply(naturalCompare(a.text, b.text))
	default:
		return dir.apply(strings.Compare(a.text, b.text))
	}
}

// Compare orders two raw cell values for a column type in the given direction.
func Compare(typ ColumnType, dir Direction, a, b any) int {
	return CompareKeys(typ, dir, NewSortKey(typ, a), NewSortKey(typ, b))
}

func naturalCompare(a, b string) int {
	switch {
	case a == b:
		return 0
	case sortorder.NaturalLess(a, b):
		return -1
	default:
		return 1
	}
}
