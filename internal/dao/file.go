package dao

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/a1s/gridview/internal/model1"
)

// FileAccessor reads rows from a local json, yaml or csv file.
type FileAccessor struct {
	path   string
	format Format
}

// NewFileAccessor returns an accessor for a local file.
func NewFileAccessor(path string) (*FileAccessor, error) {
	f, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	return &FileAccessor{path: path, format: f}, nil
}

// Location returns the file path.
func (f *FileAccessor) Location() string {
	return f.path
}

// List reads and decodes the file.
func (f *FileAccessor) List(ctx context.Context) (model1.Rows, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, f.path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}

	return DecodeRows(f.format, raw)
}
