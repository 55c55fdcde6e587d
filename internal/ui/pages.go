// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of a1s

package ui

import (
	"github.com/derailed/tview"
)

// Pages tracks the grid and the overlays stacked on top of it.
type Pages struct {
	*tview.Pages

	stack   []string
	pageMap map[string]tview.Primitive
}

// NewPages returns a new pages manager.
func NewPages() *Pages {
	return &Pages{
		Pages:   tview.NewPages(),
		stack:   make([]string, 0),
		pageMap: make(map[string]tview.Primitive),
	}
}

// Push adds a page on top and shows it.
func (p *Pages) Push(name string, page tview.Primitive) {
	if _, ok := p.pageMap[name]; ok {
		p.Remove(name)
	}
	p.stack = append(p.stack, name)
	p.pageMap[name] = page
	p.AddPage(name, page, true, true)
}

// Remove removes a named page wherever it sits in the stack.
func (p *Pages) Remove(name string) {
	for i, n := range p.stack {
		if n == name {
			p.stack = append(p.stack[:i], p.stack[i+1:]...)
			break
		}
	}
	delete(p.pageMap, name)
	p.RemovePage(name)
	if top := p.Current(); top != "" {
		p.SwitchToPage(top)
	}
}

// Has returns true if the named page is stacked.
func (p *Pages) Has(name string) bool {
	_, ok := p.pageMap[name]
	return ok
}

// Current returns the top page name.
func (p *Pages) Current() string {
	if len(p.stack) == 0 {
		return ""
	}
	return p.stack[len(p.stack)-1]
}
