package config

import (
	"github.com/a1s/gridview/internal/config/data"
)

// DefaultRefreshRate is the default data refresh interval in seconds.
const DefaultRefreshRate = 5.0

// DefaultLogLevel is the default logging level.
const DefaultLogLevel = "info"

// NewFlags creates a new Flags instance with default values set.
func NewFlags() *data.Flags {
	flags := data.NewFlags()
	*flags.RefreshRate = DefaultRefreshRate
	*flags.LogLevel = DefaultLogLevel
	*flags.LogFile = AppLogFile
	*flags.PersistFilters = true

	return flags
}

// IsBoolSet returns true if a bool pointer is non-nil and true.
func IsBoolSet(b *bool) bool {
	return b != nil && *b
}

// IsStringSet returns true if a string pointer is non-nil and non-empty.
func IsStringSet(s *string) bool {
	return s != nil && *s != ""
}
