// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of a1s

package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

const (
	menuFmt = " [yellow::b]<%s>[white::-]%s %s "
	maxRows = 4
)

// Menu lays out the grid key hints in columns of maxRows entries.
type Menu struct {
	*tview.Table
}

// NewMenu returns a new menu.
func NewMenu() *Menu {
	m := &Menu{
		Table: tview.NewTable(),
	}
	m.SetBackgroundColor(tcell.ColorDefault)
	m.SetBorderPadding(0, 0, 1, 1)

	return m
}

// HintsChanged redraws the menu for a hint provider.
func (m *Menu) HintsChanged(h Hinter) {
	m.Clear()
	if h == nil {
		return
	}
	m.hydrate(h.Hints())
}

func (m *Menu) hydrate(hh MenuHints) {
	sort.Sort(hh)
	visible := make(MenuHints, 0, len(hh))
	for _, h := range hh {
		if h.Visible && h.Mnemonic != "" && h.Description != "" {
			visible = append(visible, h)
		}
	}

	cols := (len(visible) + maxRows - 1) / maxRows
	widths := make([]int, cols)
	for i, h := range visible {
		widths[i/maxRows] = max(widths[i/maxRows], len(h.Mnemonic))
	}
	for i, h := range visible {
		col := i / maxRows
		pad := strings.Repeat(" ", widths[col]-len(h.Mnemonic))
		c := tview.NewTableCell(fmt.Sprintf(menuFmt, h.Mnemonic, pad, h.Description))
		c.SetBackgroundColor(tcell.ColorDefault)
		m.SetCell(i%maxRows, col, c)
	}
}
