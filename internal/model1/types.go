package model1

// NAValue renders a missing cell.
const NAValue = "n/a"

// ColumnType drives type-aware comparison and rendering of a column.
type ColumnType string

const (
	// ColumnText compares coerced strings lexicographically.
	ColumnText ColumnType = "text"

	// ColumnNumber compares numerically; missing values sort lowest.
	ColumnNumber ColumnType = "number"

	// ColumnCurrency compares like a number but tolerates currency symbols.
	ColumnCurrency ColumnType = "currency"

	// ColumnBoolean puts false first ascending and true first descending.
	ColumnBoolean ColumnType = "boolean"

	// ColumnDate compares parsed timestamps; invalid dates always sort last.
	ColumnDate ColumnType = "date"

	// ColumnNatural compares strings in natural order (file2 < file10).
	ColumnNatural ColumnType = "natural"

	// ColumnDuration compares compact durations such as 1d2h or 45m.
	ColumnDuration ColumnType = "duration"
)

// IsValid returns true if the type is one of the known column types.
func (c ColumnType) IsValid() bool {
	switch c {
	case ColumnText, ColumnNumber, ColumnCurrency, ColumnBoolean,
		ColumnDate, ColumnNatural, ColumnDuration:
		return true
	default:
		return false
	}
}

// IsNumeric returns true for types rendered right-aligned.
func (c ColumnType) IsNumeric() bool {
	return c == ColumnNumber || c == ColumnCurrency || c == ColumnDuration
}

// Direction represents a sort direction.
type Direction string

const (
	// Asc sorts lowest first.
	Asc Direction = "asc"

	// Desc sorts highest first.
	Desc Direction = "desc"
)

// IsValid returns true if the direction is asc or desc.
func (d Direction) IsValid() bool {
	return d == Asc || d == Desc
}

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Desc {
		return Asc
	}
	return Desc
}

func (d Direction) apply(c int) int {
	if d == Desc {
		return -c
	}
	return c
}

// Renderer converts rows into display cells.
type Renderer interface {
	// Header returns the rendered header.
	Header() Header

	// Render renders a single row.
	Render(r Row, out *Cells) error
}

// ResEvent represents a row event type between two refreshes.
type ResEvent int

const (
	EventUnchanged ResEvent = 1 << iota
	EventAdd
	EventUpdate
	EventDelete
)

// String returns the event name.
func (e ResEvent) String() string {
	switch e {
	case EventAdd:
		return "add"
	case EventUpdate:
		return "update"
	case EventDelete:
		return "delete"
	default:
		return "unchanged"
	}
}
