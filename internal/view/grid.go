// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of a1s

package view

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/a1s/gridview/internal/config"
	"github.com/a1s/gridview/internal/dao"
	"github.com/a1s/gridview/internal/model"
	"github.com/a1s/gridview/internal/model1"
	"github.com/a1s/gridview/internal/render"
	"github.com/a1s/gridview/internal/ui"
)

var _ ui.Component = (*Grid)(nil)

// Grid wires a row source to the grid table.
type Grid struct {
	*ui.GridTable

	model    *model.TableData
	accessor dao.RowAccessor
	cache    *dao.RowCache
	cancelFn context.CancelFunc
	log      *slog.Logger
}

// NewGrid builds the grid for the configured source.
func NewGrid(ctx context.Context, cfg *config.Gridview, f dao.Factory, store model.Store, log *slog.Logger) (*Grid, error) {
	if cfg.Source == "" {
		return nil, fmt.Errorf("no row source configured")
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	acc, err := dao.AccessorFor(f, cfg.Source)
	if err != nil {
		return nil, err
	}
	cache := dao.NewRowCache(cfg.GetRefreshRate() / 2)
	acc = dao.NewCachedAccessor(acc, cache)

	cols, err := cfg.Columns()
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		rows, err := acc.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("unable to infer columns: %w", err)
		}
		cols = render.InferColumns(rows, cfg.IdentityField)
	}
	filters, err := cfg.Filters()
	if err != nil {
		return nil, err
	}

	grid := render.NewGrid(cols)
	fm := model.NewFilterManager(filters, model.FilterConfig{
		PersistFilters: cfg.PersistFilters,
		StorageKey:     cfg.FilterStorageKey(),
		Store:          store,
		Logger:         log,
	})
	table := ui.NewGridTable(
		filepath.Base(acc.Location()),
		grid,
		model.NewSorter(cols, cfg.SortCriteria(), nil),
		model.NewSelector(cfg.SelectionConfig()),
		fm,
	)

	td := model.NewTableData(cfg.IdentityField, cfg.GetRefreshRate())
	td.SetLogger(log)
	td.SetAccessor(acc)
	td.SetRenderer(grid)
	table.SetModel(td)

	return &Grid{
		GridTable: table,
		model:     td,
		accessor:  acc,
		cache:     cache,
		log:       log.With("component", "grid"),
	}, nil
}

// Start loads the rows and keeps them fresh.
func (g *Grid) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	g.cancelFn = cancel
	go func() {
		if err := g.model.Watch(ctx); err != nil {
			g.log.Error("watch failed", "source", g.Location(), "error", err)
		}
	}()
}

// Stop stops the refresh loop.
func (g *Grid) Stop() {
	if g.cancelFn != nil {
		g.cancelFn()
		g.cancelFn = nil
	}
	g.model.Stop()
	g.GridTable.Stop()
}

// Reload drops cached rows and fetches them again.
func (g *Grid) Reload(ctx context.Context) error {
	g.cache.Invalidate(g.accessor.Location())
	return g.model.Refresh(ctx)
}

// Location returns the row source location.
func (g *Grid) Location() string {
	return g.accessor.Location()
}

// SelectedRows returns the marked rows that are still visible.
func (g *Grid) SelectedRows() model1.Rows {
	return g.Selector().SelectedRows()
}
