package model

import (
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/wI2L/jsondiff"

	"github.com/a1s/gridview/internal/model1"
)

// ErrNoChanges reports two identical filter lists.
var ErrNoChanges = errors.New("no changes detected")

// filterDoc is the comparable form of a filter list, keyed by filter ID.
type filterDoc map[string]any

func toDoc(ff []model1.FilterState) (filterDoc, error) {
	raw, err := EncodeFilters(ff)
	if err != nil {
		return nil, err
	}
	var items []map[string]any
	if err := sonic.ConfigStd.UnmarshalFromString(raw, &items); err != nil {
		return nil, err
	}
	doc := make(filterDoc, len(items))
	for _, it := range items {
		id, _ := it["id"].(string)
		delete(it, "id")
		doc[id] = it
	}
	return doc, nil
}

// DiffFilters returns the JSON Patch turning one filter list into another.
func DiffFilters(from, to []model1.FilterState) (string, error) {
	a, err := toDoc(from)
	if err != nil {
		return "", err
	}
	b, err := toDoc(to)
	if err != nil {
		return "", err
	}

	patch, err := jsondiff.Compare(a, b)
	if err != nil {
		return "", fmt.Errorf("failed to generate patch: %w", err)
	}
	if len(patch) == 0 {
		return "", ErrNoChanges
	}

	raw, err := sonic.ConfigStd.Marshal(patch)
	if err != nil {
		return "", fmt.Errorf("failed to marshal patch: %w", err)
	}

	return string(raw), nil
}
