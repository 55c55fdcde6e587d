package render

import "github.com/a1s/gridview/internal/model1"

const (
	// Sort indicators
	SortAscIcon  = "↑"
	SortDescIcon = "↓"

	// Row mark column
	MarkIcon   = "●"
	MarkHeader = "#"

	// Display values
	NAValue    = model1.NAValue
	TrueValue  = "true"
	FalseValue = "false"
	Blank      = ""
)
