// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of a1s

package ui

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/derailed/tcell/v2"
)

// Rune keys are stored as keys holding the rune value.
const (
	KeySpace  tcell.Key = ' '
	KeySlash  tcell.Key = '/'
	KeyHelp   tcell.Key = '?'
	KeyJ      tcell.Key = 'j'
	KeyK      tcell.Key = 'k'
	KeyH      tcell.Key = 'h'
	KeyL      tcell.Key = 'l'
	KeyG      tcell.Key = 'g'
	KeyShiftG tcell.Key = 'G'
)

// ActionHandler handles a keyboard command.
type ActionHandler func(*tcell.EventKey) *tcell.EventKey

// KeyAction represents a keyboard action.
type KeyAction struct {
	Description string
	Action      ActionHandler
	Visible     bool
}

// KeyMap tracks key to action mappings.
type KeyMap map[tcell.Key]KeyAction

// KeyActions tracks the actions bound to a component.
type KeyActions struct {
	actions KeyMap
	mx      sync.RWMutex
}

// NewKeyAction returns a new keyboard action.
func NewKeyAction(d string, a ActionHandler, visible bool) KeyAction {
	return KeyAction{Description: d, Action: a, Visible: visible}
}

// NewKeyActions returns an empty action set.
func NewKeyActions() *KeyActions {
	return &KeyActions{actions: make(KeyMap)}
}

// Add binds an action to a key.
func (a *KeyActions) Add(k tcell.Key, action KeyAction) {
	a.mx.Lock()
	defer a.mx.Unlock()

	a.actions[k] = action
}

// Bulk binds several actions.
func (a *KeyActions) Bulk(km KeyMap) {
	a.mx.Lock()
	defer a.mx.Unlock()

	for k, v := range km {
		a.actions[k] = v
	}
}

// Get returns the action bound to a key.
func (a *KeyActions) Get(k tcell.Key) (KeyAction, bool) {
	a.mx.RLock()
	defer a.mx.RUnlock()

	v, ok := a.actions[k]
	return v, ok
}

// Delete unbinds keys.
func (a *KeyActions) Delete(kk ...tcell.Key) {
	a.mx.Lock()
	defer a.mx.Unlock()

	for _, k := range kk {
		delete(a.actions, k)
	}
}

// Len returns the number of bound keys.
func (a *KeyActions) Len() int {
	a.mx.RLock()
	defer a.mx.RUnlock()

	return len(a.actions)
}

// Hints returns menu hints for the visible actions.
func (a *KeyActions) Hints() MenuHints {
	a.mx.RLock()
	defer a.mx.RUnlock()

	hh := make(MenuHints, 0, len(a.actions))
	for k, v := range a.actions {
		if !v.Visible {
			continue
		}
		hh = append(hh, MenuHint{
			Mnemonic:    KeyName(k),
			Description: v.Description,
			Visible:     true,
		})
	}

	return hh
}

// AsKey converts a shortcut such as "s", "Space", "Esc" or "Ctrl-A" to a key.
func AsKey(s string) (tcell.Key, error) {
	if s == "" {
		return 0, fmt.Errorf("empty shortcut")
	}
	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		return tcell.Key(r), nil
	}
	if strings.EqualFold(s, "space") {
		return KeySpace, nil
	}
	for k, name := range tcell.KeyNames {
		if strings.EqualFold(name, s) {
			return k, nil
		}
	}

	return 0, fmt.Errorf("invalid shortcut %q", s)
}

// KeyName returns the display name of a key.
func KeyName(k tcell.Key) string {
	if k == KeySpace {
		return "space"
	}
	if name, ok := tcell.KeyNames[k]; ok {
		return strings.ToLower(name)
	}
	return string(rune(k))
}

// EventKey returns the action key of an event; runes map to their value.
func EventKey(evt *tcell.EventKey) tcell.Key {
	if evt.Key() == tcell.KeyRune {
		return tcell.Key(evt.Rune())
	}
	return evt.Key()
}
