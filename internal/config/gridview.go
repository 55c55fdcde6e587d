package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/a1s/gridview/internal/config/data"
)

// Default values
const (
	DefaultAPITimeout    = 30 * time.Second
	DefaultIdentityField = "id"
	DefaultStoreBackend  = "file"
)

// Gridview represents the gridview global configuration.
type Gridview struct {
	RefreshRate    float32        `yaml:"refreshRate"`
	APITimeout     string         `yaml:"apiTimeout"`
	Source         string         `yaml:"source,omitempty"`
	IdentityField  string         `yaml:"identityField"`
	PersistFilters bool           `yaml:"persistFilters"`
	StorageKey     string         `yaml:"storageKey,omitempty"`
	Selection      data.Selection `yaml:"selection"`
	Store          data.Store     `yaml:"store"`
	AWS            data.AWS       `yaml:"aws,omitempty"`
	UI             data.UI        `yaml:"ui"`
	View           *data.View     `yaml:"view,omitempty"`

	dir *data.Dir
	mx  sync.RWMutex
}

// NewGridview creates a Gridview with default settings.
func NewGridview() *Gridview {
	g := Gridview{
		RefreshRate:    DefaultRefreshRate,
		APITimeout:     DefaultAPITimeout.String(),
		IdentityField:  DefaultIdentityField,
		PersistFilters: true,
		Store:          data.Store{Backend: DefaultStoreBackend},
		View:           data.NewView(),
		dir:            data.NewDir(),
	}
	g.Selection.Validate()

	return &g
}

// Validate ensures Gridview has valid settings.
func (g *Gridview) Validate() {
	g.mx.Lock()
	defer g.mx.Unlock()

	if g.RefreshRate <= 0 {
		g.RefreshRate = DefaultRefreshRate
	}
	if g.APITimeout == "" {
		g.APITimeout = DefaultAPITimeout.String()
	}
	if g.IdentityField == "" {
		g.IdentityField = DefaultIdentityField
	}
	if g.Store.Backend == "" {
		g.Store.Backend = DefaultStoreBackend
	}
	if g.View == nil {
		g.View = data.NewView()
	}
	if g.dir == nil {
		g.dir = data.NewDir()
	}
	g.Selection.Validate()
	g.View.Validate()
}

// Override applies CLI flag overrides to the configuration.
func (g *Gridview) Override(flags *data.Flags) {
	if flags == nil {
		return
	}

	g.mx.Lock()
	defer g.mx.Unlock()

	if flags.RefreshRate != nil && *flags.RefreshRate > 0 {
		g.RefreshRate = *flags.RefreshRate
	}
	if IsStringSet(flags.Source) {
		g.Source = *flags.Source
	}
	if IsStringSet(flags.IdentityField) {
		g.IdentityField = *flags.IdentityField
	}
	if IsBoolSet(flags.SingleSelect) {
		g.Selection.MultiSelect = new(bool)
	}
	if flags.PersistFilters != nil {
		g.PersistFilters = *flags.PersistFilters
	}
	if IsStringSet(flags.StorageKey) {
		g.StorageKey = *flags.StorageKey
	}
	if IsStringSet(flags.StoreBackend) {
		g.Store.Backend = *flags.StoreBackend
	}
	if IsStringSet(flags.StorePath) {
		g.Store.Path = *flags.StorePath
	}
	if IsStringSet(flags.Profile) {
		g.AWS.Profile = *flags.Profile
	}
	if IsStringSet(flags.Region) {
		g.AWS.Region = *flags.Region
	}
	if IsStringSet(flags.Endpoint) {
		g.AWS.Endpoint = *flags.Endpoint
	}
	if IsBoolSet(flags.Headless) {
		g.UI.Headless = true
	}
}

// GetAPITimeout returns the parsed API timeout duration.
func (g *Gridview) GetAPITimeout() (time.Duration, error) {
	g.mx.RLock()
	timeoutStr := g.APITimeout
	g.mx.RUnlock()

	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return 0, fmt.Errorf("invalid API timeout %q: %w", timeoutStr, err)
	}

	return timeout, nil
}

// GetRefreshRate returns the refresh interval.
func (g *Gridview) GetRefreshRate() time.Duration {
	g.mx.RLock()
	defer g.mx.RUnlock()

	return time.Duration(float64(g.RefreshRate) * float64(time.Second))
}

// IsMultiSelect returns true if more than one row may be selected.
func (g *Gridview) IsMultiSelect() bool {
	g.mx.RLock()
	defer g.mx.RUnlock()

	return g.Selection.MultiSelect == nil || *g.Selection.MultiSelect
}

// CanSelectAll returns true if select-all is enabled.
func (g *Gridview) CanSelectAll() bool {
	g.mx.RLock()
	defer g.mx.RUnlock()

	return g.Selection.SelectAll == nil || *g.Selection.SelectAll
}
