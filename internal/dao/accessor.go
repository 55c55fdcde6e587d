package dao

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// AccessorFunc builds a row accessor for a location.
type AccessorFunc func(f Factory, location string) (RowAccessor, error)

// Accessors maps location schemes to their accessor constructors.
type Accessors map[string]AccessorFunc

// accessors holds all registered row sources.
var accessors = Accessors{
	"file": func(_ Factory, location string) (RowAccessor, error) {
		return NewFileAccessor(strings.TrimPrefix(location, "file://"))
	},
	"s3": func(f Factory, location string) (RowAccessor, error) {
		return NewS3Accessor(f, location)
	},
}

// RegisterAccessor adds an accessor constructor for a scheme.
func RegisterAccessor(scheme string, fn AccessorFunc) {
	accessors[scheme] = fn
}

// Scheme returns the scheme of a location. Plain paths are files.
func Scheme(location string) string {
	if s, _, ok := strings.Cut(location, "://"); ok {
		return strings.ToLower(s)
	}
	return "file"
}

// AccessorFor returns a row accessor for the given location.
func AccessorFor(f Factory, location string) (RowAccessor, error) {
	if location == "" {
		return nil, fmt.Errorf("no row source given")
	}
	scheme := Scheme(location)
	fn, ok := accessors[scheme]
	if !ok {
		return nil, fmt.Errorf("no accessor for: %s (supported: %s)", scheme, strings.Join(ListAccessors(), ", "))
	}

	return fn(f, location)
}

// ListAccessors returns all registered schemes.
func ListAccessors() []string {
	return slices.Sorted(maps.Keys(accessors))
}
