package model1

import "github.com/derailed/tcell/v2"

var (
	// ModColor row modified color
	ModColor tcell.Color = tcell.ColorYellow

	// AddColor row added color
	AddColor tcell.Color = tcell.ColorBlue

	// StdColor row default color
	StdColor tcell.Color = tcell.ColorWhite

	// HighlightColor row highlight color
	HighlightColor tcell.Color = tcell.ColorAqua

	// MarkColor marked row color
	MarkColor tcell.Color = tcell.ColorOrange
)

// ColorerFunc represents a row colorer.
type ColorerFunc func(re RowEvent, marked bool) tcell.Color

// DefaultColorer colors marked rows first, then rows changed by the last refresh.
func DefaultColorer(re RowEvent, marked bool) tcell.Color {
	if marked {
		return MarkColor
	}
	switch re.Kind {
	case EventAdd:
		return AddColor
	case EventUpdate:
		return ModColor
	default:
		return StdColor
	}
}
