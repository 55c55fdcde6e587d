package dao

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/bytedance/sonic"
	"gopkg.in/yaml.v3"

	"github.com/a1s/gridview/internal/model1"
)

// DecodeRows parses raw rows in the given format.
func DecodeRows(f Format, raw []byte) (model1.Rows, error) {
	switch f {
	case FormatJSON:
		return decodeJSON(raw)
	case FormatYAML:
		return decodeYAML(raw)
	case FormatCSV:
		return decodeCSV(raw)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

func decodeJSON(raw []byte) (model1.Rows, error) {
	var mm []map[string]any
	if err := sonic.ConfigStd.Unmarshal(raw, &mm); err != nil {
		return nil, fmt.Errorf("decode json rows: %w", err)
	}
	return toRows(mm), nil
}

func decodeYAML(raw []byte) (model1.Rows, error) {
	var mm []map[string]any
	if err := yaml.Unmarshal(raw, &mm); err != nil {
		return nil, fmt.Errorf("decode yaml rows: %w", err)
	}
	return toRows(mm), nil
}

// decodeCSV reads a header line followed by records. Cells stay strings;
// columns coerce them by type.
func decodeCSV(raw []byte) (model1.Rows, error) {
	r := csv.NewReader(bytes.NewReader(raw))
	r.TrimLeadingSpace = true
	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return model1.Rows{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("decode csv header: %w", err)
	}
	r.FieldsPerRecord = len(header)

	rows := make(model1.Rows, 0, 16)
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode csv rows: %w", err)
		}
		row := make(model1.Row, len(header))
		for i, h := range header {
			row[h] = rec[i]
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func toRows(mm []map[string]any) model1.Rows {
	rows := make(model1.Rows, 0, len(mm))
	for _, m := range mm {
		if m == nil {
			continue
		}
		rows = append(rows, model1.Row(m))
	}
	return rows
}
