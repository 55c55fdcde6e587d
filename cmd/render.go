package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/a1s/gridview/internal/dao"
	"github.com/a1s/gridview/internal/model"
	"github.com/a1s/gridview/internal/model1"
	"github.com/a1s/gridview/internal/render"
)

var (
	renderSorts []string
	renderCmd   = &cobra.Command{
		Use:   "render [source]",
		Short: "Print the filtered and sorted grid",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, args)
			if err != nil {
				return err
			}
			defer s.Close()

			sorts, err := parseSorts(renderSorts)
			if err != nil {
				return err
			}
			return renderGrid(cmd.Context(), s, os.Stdout, sorts)
		},
	}
)

func init() {
	renderCmd.Flags().StringSliceVarP(&renderSorts, "sort", "s", nil, "Sort columns as col[:asc|desc], highest priority first")
}

// parseSorts reads col[:dir] items into sort criteria.
func parseSorts(ss []string) (model1.SortCriteria, error) {
	cc := make(model1.SortCriteria, 0, len(ss))
	for i, s := range ss {
		id, dir, _ := strings.Cut(s, ":")
		d := model1.Asc
		if dir != "" {
			d = model1.Direction(strings.ToLower(dir))
		}
		if id == "" || !d.IsValid() {
			return nil, fmt.Errorf("invalid sort %q", s)
		}
		cc = append(cc, model1.SortCriterion{ColumnID: id, Direction: d, Priority: i})
	}

	return model.SetSortConfig(cc), nil
}

// newFilterManager returns the filter manager of the configured source.
func newFilterManager(s *session) (*model.FilterManager, error) {
	g := s.cfg.Gridview
	filters, err := g.Filters()
	if err != nil {
		return nil, err
	}

	return model.NewFilterManager(filters, model.FilterConfig{
		PersistFilters: g.PersistFilters,
		StorageKey:     g.FilterStorageKey(),
		Store:          s.store,
		Logger:         s.log,
	}), nil
}

// renderGrid prints the rows of the source through the filter and sort pipeline.
func renderGrid(ctx context.Context, s *session, w io.Writer, sorts model1.SortCriteria) error {
	g := s.cfg.Gridview
	acc, err := dao.AccessorFor(s.factory, g.Source)
	if err != nil {
		return err
	}
	rows, err := acc.List(ctx)
	if err != nil {
		return err
	}

	cols, err := g.Columns()
	if err != nil {
		return err
	}
	if len(cols) == 0 {
		cols = render.InferColumns(rows, g.IdentityField)
	}
	fm, err := newFilterManager(s)
	if err != nil {
		return err
	}
	if len(sorts) == 0 {
		sorts = g.SortCriteria()
	}
	for _, c := range sorts {
		if !cols.CanSort(c.ColumnID) {
			return fmt.Errorf("column %q is not sortable", c.ColumnID)
		}
	}

	sorter := model.NewSorter(cols, sorts, nil)
	visible := sorter.SortedData(model.ApplyFilters(rows, fm.Filters(), cols))
	s.log.Debug("rendering grid", "source", acc.Location(), "rows", len(rows), "visible", len(visible))

	grid := render.NewGrid(cols)
	cells := make([]model1.Cells, 0, len(visible))
	for _, r := range visible {
		c := model1.NewCells(len(cols))
		if err := grid.Render(r, &c); err != nil {
			return err
		}
		c.ID, _ = r.Key(g.IdentityField)
		cells = append(cells, c)
	}

	return render.Print(w, render.SortHeader(grid.Header(), sorter.Criteria()), cells, nil)
}
