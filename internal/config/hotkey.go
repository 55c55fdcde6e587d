package config

import (
	"os"
	"slices"
	"sync"

	"github.com/a1s/gridview/internal/config/data"
)

// HotKey rebinds a grid action to another key.
type HotKey struct {
	ShortCut    string `yaml:"shortCut"`
	Description string `yaml:"description,omitempty"`
}

// HotKeys maps grid actions (sort, mark, search, ...) to their key bindings.
type HotKeys struct {
	HotKey map[string]HotKey `yaml:"hotKeys"`
	mx     sync.RWMutex      `yaml:"-"`
}

// NewHotKeys creates an empty HotKeys configuration.
func NewHotKeys() *HotKeys {
	return &HotKeys{
		HotKey: make(map[string]HotKey),
	}
}

// Load loads hotkeys from the default config file.
func (h *HotKeys) Load() error {
	return h.LoadFrom(AppHotkeysFile)
}

// LoadFrom loads hotkeys from a specific file path.
// A missing file leaves the bindings empty.
func (h *HotKeys) LoadFrom(path string) error {
	h.mx.Lock()
	defer h.mx.Unlock()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		h.HotKey = make(map[string]HotKey)
		return nil
	}
	if err := data.LoadYAML(path, h); err != nil {
		return err
	}
	if h.HotKey == nil {
		h.HotKey = make(map[string]HotKey)
	}

	return nil
}

// SaveTo saves hotkeys to a specific file path.
func (h *HotKeys) SaveTo(path string) error {
	h.mx.RLock()
	defer h.mx.RUnlock()

	return data.SaveYAML(path, h)
}

// ShortCut returns the key bound to an action, or def when not rebound.
func (h *HotKeys) ShortCut(action, def string) string {
	h.mx.RLock()
	defer h.mx.RUnlock()

	if hk, ok := h.HotKey[action]; ok && hk.ShortCut != "" {
		return hk.ShortCut
	}
	return def
}

// Set binds an action.
func (h *HotKeys) Set(action string, hk HotKey) {
	h.mx.Lock()
	defer h.mx.Unlock()

	h.HotKey[action] = hk
}

// Names returns all rebound actions.
func (h *HotKeys) Names() []string {
	h.mx.RLock()
	defer h.mx.RUnlock()

	names := make([]string, 0, len(h.HotKey))
	for name := range h.HotKey {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}
