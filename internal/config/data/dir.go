package data

import (
	"fmt"
	"path/filepath"
	"sync"
)

// defaultStateDir is set by the config package during initialization.
// This avoids a circular import between data and config packages.
var defaultStateDir string

// SetDefaultStateDir sets the default state directory.
// This should be called by the config package during initialization.
func SetDefaultStateDir(dir string) {
	defaultStateDir = dir
}

// Dir manages the on-disk locations of persisted grid state.
type Dir struct {
	root string
	mx   sync.RWMutex
}

// NewDir creates a new Dir using the default state directory.
// Note: SetDefaultStateDir must be called before using NewDir.
func NewDir() *Dir {
	return &Dir{
		root: defaultStateDir,
	}
}

// Root returns the state directory.
func (d *Dir) Root() string {
	d.mx.RLock()
	defer d.mx.RUnlock()

	return d.root
}

// StorePath returns the default file for a store backend.
// Returns: {root}/state.yaml or {root}/gridview.db
func (d *Dir) StorePath(backend string) (string, error) {
	root := d.Root()
	if root == "" {
		return "", fmt.Errorf("no state directory configured")
	}
	switch backend {
	case "file":
		return filepath.Join(root, "state.yaml"), nil
	case "sqlite":
		return filepath.Join(root, "gridview.db"), nil
	default:
		return "", nil
	}
}

// SourceKey returns a store key scoped to a row source.
// Returns: {key}.{sanitized source}
func (d *Dir) SourceKey(key, source string) string {
	if source == "" {
		return key
	}
	return key + "." + SanitizeFileName(source)
}
