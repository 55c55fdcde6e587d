// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of a1s

package ui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

// PromptMode tells what the prompt input drives.
type PromptMode int

const (
	// PromptOff means the grid has the keyboard.
	PromptOff PromptMode = iota
	// PromptCommand collects a colon command.
	PromptCommand
	// PromptSearch live-filters the grid.
	PromptSearch
)

const (
	gridIcon   = "▦"
	searchIcon = "🔍"
)

// Searcher applies the free text search of a grid.
type Searcher interface {
	Search(text string)
	SearchText() string
}

// CommandFunc runs a colon command.
type CommandFunc func(cmd string) error

// Prompt is the one line input above the grid. In search mode every
// keystroke refilters the grid; in command mode Enter runs the command and
// Tab completes the suggested command name.
type Prompt struct {
	*tview.TextView

	mode      PromptMode
	buff      []rune
	saved     string
	searcher  Searcher
	runFn     CommandFunc
	errFn     func(error)
	commands  []string
	suggested string
}

// NewPrompt returns an inactive prompt.
func NewPrompt() *Prompt {
	p := Prompt{
		TextView: tview.NewTextView(),
	}
	p.SetDynamicColors(true)
	p.SetWrap(false)
	p.SetBackgroundColor(tcell.ColorDefault)
	p.SetTextColor(tcell.ColorWhite)
	p.render()

	return &p
}

// SetSearcher binds the grid the search mode drives.
func (p *Prompt) SetSearcher(s Searcher) {
	p.searcher = s
}

// SetRunFn sets the command runner.
func (p *Prompt) SetRunFn(fn CommandFunc) {
	p.runFn = fn
}

// SetErrFn sets the command error reporter.
func (p *Prompt) SetErrFn(fn func(error)) {
	p.errFn = fn
}

// SetCommands sets the command names offered as completions.
func (p *Prompt) SetCommands(cc []string) {
	p.commands = slices.Sorted(slices.Values(cc))
}

// StartCommand opens the prompt for a colon command.
func (p *Prompt) StartCommand() {
	p.mode, p.buff, p.suggested = PromptCommand, nil, ""
	p.render()
}

// StartSearch opens the prompt on the current grid search.
func (p *Prompt) StartSearch() {
	p.mode, p.suggested = PromptSearch, ""
	p.saved = ""
	if p.searcher != nil {
		p.saved = p.searcher.SearchText()
	}
	p.buff = []rune(p.saved)
	p.render()
}

// IsActive returns true while the prompt owns the keyboard.
func (p *Prompt) IsActive() bool {
	return p.mode != PromptOff
}

// Mode returns the prompt mode.
func (p *Prompt) Mode() PromptMode {
	return p.mode
}

// Input returns the typed text.
func (p *Prompt) Input() string {
	return string(p.buff)
}

// Suggestion returns the completion shown after the input, if any.
func (p *Prompt) Suggestion() string {
	return p.suggested
}

// HandleKey consumes keys while the prompt is active.
func (p *Prompt) HandleKey(evt *tcell.EventKey) *tcell.EventKey {
	if !p.IsActive() {
		return evt
	}

	switch evt.Key() {
	case tcell.KeyEsc:
		if p.mode == PromptSearch {
			p.search(p.saved)
		}
		p.close()
	case tcell.KeyEnter:
		mode, in := p.mode, strings.TrimSpace(p.Input())
		p.close()
		if mode == PromptCommand && in != "" {
			p.run(in)
		}
	case tcell.KeyTab:
		if p.suggested != "" {
			p.edit([]rune(p.suggested + " "))
		}
	case tcell.KeyCtrlU:
		p.edit(nil)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(p.buff) > 0 {
			p.edit(p.buff[:len(p.buff)-1])
		}
	case tcell.KeyRune:
		p.edit(append(p.buff, evt.Rune()))
	default:
		return evt
	}

	return nil
}

func (p *Prompt) edit(rr []rune) {
	p.buff = rr
	p.suggested = ""
	switch p.mode {
	case PromptSearch:
		p.search(string(rr))
	case PromptCommand:
		p.suggested = p.suggest(string(rr))
	}
	p.render()
}

// suggest returns the first command name extending the input, as long as
// no argument has been typed.
func (p *Prompt) suggest(in string) string {
	if in == "" || strings.ContainsRune(in, ' ') {
		return ""
	}
	for _, c := range p.commands {
		if len(c) > len(in) && strings.HasPrefix(c, in) {
			return c
		}
	}
	return ""
}

func (p *Prompt) search(text string) {
	if p.searcher != nil {
		p.searcher.Search(text)
	}
}

func (p *Prompt) run(cmd string) {
	if p.runFn == nil {
		return
	}
	if err := p.runFn(cmd); err != nil && p.errFn != nil {
		p.errFn(err)
	}
}

func (p *Prompt) close() {
	p.mode, p.buff, p.saved, p.suggested = PromptOff, nil, "", ""
	p.render()
}

func (p *Prompt) render() {
	in := tview.Escape(string(p.buff))
	switch p.mode {
	case PromptCommand:
		ghost := strings.TrimPrefix(p.suggested, string(p.buff))
		p.SetText(fmt.Sprintf("%s:[::b]%s[gray::-]%s[black:white] [-:-:-]", gridIcon, in, ghost))
	case PromptSearch:
		p.SetText(fmt.Sprintf("%s/[::b]%s[black:white] [-:-:-]", searchIcon, in))
	default:
		p.SetText(gridIcon + ">")
	}
}
