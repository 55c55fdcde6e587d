package config

import (
	"fmt"

	"github.com/a1s/gridview/internal/aws"
	"github.com/a1s/gridview/internal/config/data"
	"github.com/a1s/gridview/internal/dao"
	"github.com/a1s/gridview/internal/model"
	"github.com/a1s/gridview/internal/model1"
)

// Columns returns the configured grid columns.
func (g *Gridview) Columns() (model1.Columns, error) {
	g.mx.RLock()
	defer g.mx.RUnlock()

	if g.View == nil {
		return nil, nil
	}
	cols := make(model1.Columns, 0, len(g.View.Columns))
	for _, c := range g.View.Columns {
		if c.ID == "" {
			return nil, fmt.Errorf("column without id")
		}
		typ := model1.ColumnType(c.Type)
		if c.Type == "" {
			typ = model1.ColumnText
		}
		if !typ.IsValid() {
			return nil, fmt.Errorf("column %q: unknown type %q", c.ID, c.Type)
		}
		cols = append(cols, model1.Column{
			ID:       c.ID,
			Title:    c.Title,
			Field:    c.Field,
			Type:     typ,
			Sortable: c.Sortable == nil || *c.Sortable,
		})
	}

	return cols, nil
}

// SortCriteria returns the configured initial sort.
func (g *Gridview) SortCriteria() model1.SortCriteria {
	g.mx.RLock()
	defer g.mx.RUnlock()

	if g.View == nil {
		return nil
	}
	list := make(model1.SortCriteria, 0, len(g.View.Sort))
	for i, s := range g.View.Sort {
		list = append(list, model1.SortCriterion{
			ColumnID:  s.Column,
			Direction: model1.Direction(s.Direction),
			Priority:  i,
		})
	}

	return model.SetSortConfig(list)
}

// Filters returns the configured initial filters.
func (g *Gridview) Filters() ([]model1.FilterState, error) {
	g.mx.RLock()
	defer g.mx.RUnlock()

	if g.View == nil {
		return nil, nil
	}
	ff := make([]model1.FilterState, 0, len(g.View.Filters))
	for _, f := range g.View.Filters {
		fs, err := toFilter(f)
		if err != nil {
			return nil, err
		}
		ff = append(ff, fs)
	}

	return ff, nil
}

func toFilter(f data.Filter) (model1.FilterState, error) {
	typ := model1.FilterType(f.Type)
	if !typ.IsValid() {
		return model1.FilterState{}, fmt.Errorf("filter %q: unknown type %q", f.ID, f.Type)
	}
	var v model1.FilterValue
	switch typ {
	case model1.FilterMultiSelect:
		vv := model1.MultiValue(append([]string{}, f.Values...))
		if len(vv) == 0 && f.Value != "" {
			vv = model1.MultiValue{f.Value}
		}
		v = vv
	case model1.FilterSearch:
		v = model1.SearchValue(f.Value)
	default:
		v = model1.SingleValue(f.Value)
	}
	opts := make([]model1.FilterOption, 0, len(f.Options))
	for _, o := range f.Options {
		label := o.Label
		if label == "" {
			label = o.Value
		}
		opts = append(opts, model1.FilterOption{Value: o.Value, Label: label})
	}

	return model1.FilterState{
		ID:          f.ID,
		Type:        typ,
		Field:       f.Field,
		Value:       v,
		Options:     opts,
		Placeholder: f.Placeholder,
	}.Derive(), nil
}

// FilterStorageKey returns the store key for the filter list, scoped to the
// row source unless a key is configured.
func (g *Gridview) FilterStorageKey() string {
	g.mx.RLock()
	defer g.mx.RUnlock()

	if g.StorageKey != "" {
		return g.StorageKey
	}
	return g.dir.SourceKey(model.DefaultStorageKey, g.Source)
}

// StoreSpec returns the store settings, filling default file locations.
func (g *Gridview) StoreSpec() (dao.StoreSpec, error) {
	g.mx.RLock()
	defer g.mx.RUnlock()

	spec := dao.StoreSpec{
		Backend:  g.Store.Backend,
		Path:     g.Store.Path,
		Addr:     g.Store.Addr,
		Password: g.Store.Password,
		DB:       g.Store.DB,
		Bucket:   g.Store.Bucket,
		Prefix:   g.Store.Prefix,
	}
	if spec.Path == "" {
		p, err := g.dir.StorePath(spec.Backend)
		if err != nil {
			return spec, err
		}
		spec.Path = p
	}

	return spec, nil
}

// ClientConfig returns the AWS client settings.
func (g *Gridview) ClientConfig() (*aws.ClientConfig, error) {
	timeout, err := g.GetAPITimeout()
	if err != nil {
		return nil, err
	}

	g.mx.RLock()
	defer g.mx.RUnlock()

	return &aws.ClientConfig{
		Profile:  g.AWS.Profile,
		Region:   g.AWS.Region,
		Endpoint: g.AWS.Endpoint,
		Timeout:  timeout,
	}, nil
}

// SelectionConfig returns the selection settings.
func (g *Gridview) SelectionConfig() model.SelectionConfig {
	cfg := model.DefaultSelectionConfig()
	cfg.MultiSelect = g.IsMultiSelect()
	cfg.SelectAll = g.CanSelectAll()

	g.mx.RLock()
	defer g.mx.RUnlock()
	cfg.IdentityField = g.IdentityField

	return cfg
}
