// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of a1s

package view

import (
	"sort"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"

	"github.com/a1s/gridview/internal/ui"
)

// HelpBind represents a single keybinding.
type HelpBind struct {
	Key  string
	Desc string
}

// Help displays the key bindings and grid commands.
type Help struct {
	*tview.Table

	hints   ui.MenuHints
	closeFn func()
}

// NewHelp creates a new help view listing the grid hints.
func NewHelp(hh ui.MenuHints) *Help {
	h := &Help{
		Table: tview.NewTable(),
		hints: hh,
	}
	h.build()
	return h
}

// SetCloseFn sets the callback when help is closed.
func (h *Help) SetCloseFn(fn func()) {
	h.closeFn = fn
}

// build constructs the help UI.
func (h *Help) build() {
	h.SetBorder(true)
	h.SetTitle(" Help ")
	h.SetTitleAlign(tview.AlignCenter)
	h.SetBorderColor(tcell.ColorYellow)
	h.SetBackgroundColor(tcell.ColorDefault)
	h.SetSelectable(false, false)

	h.populateHelp(h.gridBinds())

	h.SetInputCapture(func(evt *tcell.EventKey) *tcell.EventKey {
		switch evt.Key() {
		case tcell.KeyEsc, tcell.KeyEnter:
			if h.closeFn != nil {
				h.closeFn()
			}
			return nil
		}
		if evt.Rune() == '?' || evt.Rune() == 'q' {
			if h.closeFn != nil {
				h.closeFn()
			}
			return nil
		}
		return evt
	})
}

func (h *Help) gridBinds() []HelpBind {
	hh := make(ui.MenuHints, len(h.hints))
	copy(hh, h.hints)
	sort.Sort(hh)

	bb := make([]HelpBind, 0, len(hh))
	for _, hint := range hh {
		bb = append(bb, HelpBind{Key: "<" + hint.Mnemonic + ">", Desc: hint.Description})
	}
	return bb
}

// populateHelp fills the help table in a four column layout.
func (h *Help) populateHelp(grid []HelpBind) {
	general := []HelpBind{
		{"<:>", "Command"},
		{"</>", "Search"},
		{"<?>", "Help"},
		{"<esc>", "Clear Search"},
		{"<q>", "Quit"},
		{"<C-r>", "Refresh"},
	}
	navigation := []HelpBind{
		{"<j>", "Down"},
		{"<k>", "Up"},
		{"<g>", "Top"},
		{"<G>", "Bottom"},
		{"<h>", "Column Left"},
		{"<l>", "Column Right"},
	}
	commands := []HelpBind{
		{":sort", "<col> [asc|desc|flip]"},
		{":unsort", "<col>"},
		{":filter", "<id> <value>"},
		{":clear", "[id]"},
		{":reset", "Initial Filters"},
		{":save", "Save Filters"},
		{":select", "all|none|invert"},
		{":profile", "[name]"},
		{":region", "<name>"},
	}

	columns := [][]HelpBind{general, navigation, grid, commands}
	headers := []string{"GENERAL", "NAVIGATION", "GRID", "COMMANDS"}

	maxRows := 0
	for _, col := range columns {
		maxRows = max(maxRows, len(col))
	}

	// Each logical column spans key, desc and a spacer.
	colWidth := 3
	for colIdx, col := range columns {
		baseCol := colIdx * colWidth

		header := tview.NewTableCell(headers[colIdx]).
			SetTextColor(tcell.ColorAqua).
			SetAttributes(tcell.AttrBold).
			SetSelectable(false)
		h.SetCell(0, baseCol, header)

		for rowIdx, bind := range col {
			row := rowIdx + 1

			keyCell := tview.NewTableCell(bind.Key).
				SetTextColor(tcell.ColorYellow).
				SetSelectable(false)
			h.SetCell(row, baseCol, keyCell)

			descCell := tview.NewTableCell(bind.Desc).
				SetTextColor(tcell.ColorWhite).
				SetSelectable(false).
				SetExpansion(1)
			h.SetCell(row, baseCol+1, descCell)
		}

		if colIdx < len(columns)-1 {
			for row := 0; row <= maxRows; row++ {
				spacer := tview.NewTableCell("").
					SetSelectable(false).
					SetExpansion(1)
				h.SetCell(row, baseCol+2, spacer)
			}
		}
	}

	footer := tview.NewTableCell("<esc> to close").
		SetTextColor(tcell.ColorGray).
		SetSelectable(false)
	h.SetCell(maxRows+2, 0, footer)
}
