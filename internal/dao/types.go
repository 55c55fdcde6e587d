package dao

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/a1s/gridview/internal/model1"
)

var (
	// ErrNotFound reports a missing key or row source.
	ErrNotFound = errors.New("not found")

	// ErrUnknownBackend reports an unsupported store backend.
	ErrUnknownBackend = errors.New("unknown store backend")

	// ErrUnsupportedFormat reports a row source format that cannot be decoded.
	ErrUnsupportedFormat = errors.New("unsupported row format")
)

// Store is a key/value store for persisted grid state.
type Store interface {
	// Get returns the value of a key and whether it was found.
	Get(key string) (string, bool, error)

	// Set stores a value under a key.
	Set(key, value string) error
}

// Closer releases store resources.
type Closer interface {
	Close() error
}

// Lister retrieves the rows of a source.
type Lister interface {
	List(ctx context.Context) (model1.Rows, error)
}

// RowAccessor is a row source.
type RowAccessor interface {
	Lister

	// Location returns where the rows are read from.
	Location() string
}

// Format represents a row source encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
)

// FormatFor returns the row format matching a file name extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
}
