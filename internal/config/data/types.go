// Package data provides configuration data types and helpers for the gridview application.
package data

// Flags represents CLI command-line flags for the gridview application.
// A nil field means the flag was not given.
type Flags struct {
	RefreshRate    *float32 // Refresh rate in seconds
	LogLevel       *string  // Log level (e.g., debug, info, warn, error)
	LogFile        *string  // Path to log file
	Headless       *bool    // Run in headless mode (no TUI)
	Source         *string  // Row source location
	IdentityField  *string  // Row identity field
	SingleSelect   *bool    // Disable multi-selection
	PersistFilters *bool    // Persist filters to the store
	StorageKey     *string  // Store key for the filter list
	StoreBackend   *string  // Store backend
	StorePath      *string  // Store file or database path
	Profile        *string  // AWS profile to use
	Region         *string  // AWS region to use
	Endpoint       *string  // S3 endpoint override
}

// NewFlags creates a new Flags instance with all pointer fields initialized.
// All pointers are allocated but their values are not set.
func NewFlags() *Flags {
	return &Flags{
		RefreshRate:    new(float32),
		LogLevel:       new(string),
		LogFile:        new(string),
		Headless:       new(bool),
		Source:         new(string),
		IdentityField:  new(string),
		SingleSelect:   new(bool),
		PersistFilters: new(bool),
		StorageKey:     new(string),
		StoreBackend:   new(string),
		StorePath:      new(string),
		Profile:        new(string),
		Region:         new(string),
		Endpoint:       new(string),
	}
}

// UI represents user interface configuration settings.
type UI struct {
	EnableMouse bool `yaml:"enableMouse"`
	Headless    bool `yaml:"headless"`
	NoIcons     bool `yaml:"noIcons"`
}

// Selection represents the row selection settings.
type Selection struct {
	MultiSelect *bool `yaml:"multiSelect,omitempty"`
	SelectAll   *bool `yaml:"selectAll,omitempty"`
}

// Validate defaults unset switches to enabled.
func (s *Selection) Validate() {
	if s.MultiSelect == nil {
		s.MultiSelect = boolPtr(true)
	}
	if s.SelectAll == nil {
		s.SelectAll = boolPtr(true)
	}
}

// Store represents the key/value store used to persist grid state.
type Store struct {
	Backend  string `yaml:"backend"`
	Path     string `yaml:"path,omitempty"`
	Addr     string `yaml:"addr,omitempty"`
	Password string `yaml:"password,omitempty"`
	DB       int    `yaml:"db,omitempty"`
	Bucket   string `yaml:"bucket,omitempty"`
	Prefix   string `yaml:"prefix,omitempty"`
}

// AWS represents the connection settings for S3 sources and stores.
type AWS struct {
	Profile  string `yaml:"profile,omitempty"`
	Region   string `yaml:"region,omitempty"`
	Endpoint string `yaml:"endpoint,omitempty"`
}

func boolPtr(b bool) *bool {
	return &b
}
