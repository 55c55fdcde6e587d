// SPDX-License-Identifier: Apache-2.0

package ui

import (
	"fmt"
	"strings"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"

	"github.com/a1s/gridview/internal/model1"
)

// Crumbs shows the active filters as chips.
type Crumbs struct {
	*tview.TextView
}

// NewCrumbs returns a new filter chip bar.
func NewCrumbs() *Crumbs {
	c := &Crumbs{
		TextView: tview.NewTextView(),
	}
	c.SetBackgroundColor(tcell.ColorDefault)
	c.SetTextAlign(tview.AlignLeft)
	c.SetBorderPadding(0, 0, 1, 1)
	c.SetDynamicColors(true)

	return c
}

// FiltersChanged redraws the chips.
func (c *Crumbs) FiltersChanged(ff []model1.FilterState) {
	c.Clear()
	_, _ = fmt.Fprint(c, chips(ff))
}

func chips(ff []model1.FilterState) string {
	var b strings.Builder
	for _, f := range ff {
		if !f.IsActive {
			continue
		}
		fmt.Fprintf(&b, "[black:yellow:b] %s: %s [-:-:-] ",
			f.ID, tview.Escape(f.DisplayValue()))
	}
	if b.Len() == 0 {
		return "[gray::-] <no filters> [-:-:-]"
	}

	return b.String()
}
