// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of a1s

package ui

import (
	"errors"
	"testing"

	"github.com/derailed/tcell/v2"
	"github.com/stretchr/testify/assert"
)

type testSearcher struct {
	text  string
	calls []string
}

func (s *testSearcher) Search(text string) {
	s.text = text
	s.calls = append(s.calls, text)
}

func (s *testSearcher) SearchText() string { return s.text }

func typeKeys(p *Prompt, in string) {
	for _, r := range in {
		p.HandleKey(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func hitKey(p *Prompt, k tcell.Key) *tcell.EventKey {
	return p.HandleKey(tcell.NewEventKey(k, 0, tcell.ModNone))
}

func TestPromptSearchLive(t *testing.T) {
	s := &testSearcher{text: "wid"}
	p := NewPrompt()
	p.SetSearcher(s)

	p.StartSearch()
	assert.Equal(t, PromptSearch, p.Mode())
	assert.Equal(t, "wid", p.Input())

	typeKeys(p, "gé")
	hitKey(p, tcell.KeyBackspace2)
	assert.Equal(t, []string{"widg", "widgé", "widg"}, s.calls)

	assert.Nil(t, hitKey(p, tcell.KeyEnter))
	assert.False(t, p.IsActive())
	assert.Equal(t, "widg", s.text)
}

func TestPromptSearchEscRestores(t *testing.T) {
	s := &testSearcher{text: "old"}
	p := NewPrompt()
	p.SetSearcher(s)

	p.StartSearch()
	hitKey(p, tcell.KeyCtrlU)
	typeKeys(p, "new")
	assert.Equal(t, "new", s.text)

	hitKey(p, tcell.KeyEsc)
	assert.False(t, p.IsActive())
	assert.Equal(t, "old", s.text)
}

func TestPromptCommand(t *testing.T) {
	uu := map[string]struct {
		keys    string
		tab     bool
		ran     string
		suggest string
		err     error
	}{
		"complete": {
			keys:    "so",
			tab:     true,
			ran:     "sort",
			suggest: "sort",
		},
		"typed": {
			keys: "filter status active",
			ran:  "filter status active",
		},
		"no-suggest-after-args": {
			keys: "sort na",
			ran:  "sort na",
		},
		"failed": {
			keys: "bozo",
			ran:  "bozo",
			err:  errors.New("unknown command"),
		},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			var ran string
			var reported error
			p := NewPrompt()
			p.SetCommands([]string{"sort", "select", "filter", "unsort"})
			p.SetRunFn(func(cmd string) error {
				ran = cmd
				return u.err
			})
			p.SetErrFn(func(err error) { reported = err })

			p.StartCommand()
			typeKeys(p, u.keys)
			assert.Equal(t, u.suggest, p.Suggestion())
			if u.tab {
				hitKey(p, tcell.KeyTab)
			}
			hitKey(p, tcell.KeyEnter)

			assert.False(t, p.IsActive())
			assert.Equal(t, u.ran, ran)
			assert.Equal(t, u.err, reported)
		})
	}
}

func TestPromptInactive(t *testing.T) {
	p := NewPrompt()
	evt := tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)

	assert.Equal(t, evt, p.HandleKey(evt))
	assert.Equal(t, PromptOff, p.Mode())
}
