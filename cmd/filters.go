package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/a1s/gridview/internal/model"
)

var filtersCmd = &cobra.Command{
	Use:   "filters",
	Short: "Inspect or reset the persisted filters of a source",
}

func init() {
	filtersCmd.AddCommand(
		&cobra.Command{
			Use:   "show [source]",
			Short: "Print the persisted filters",
			Args:  cobra.MaximumNArgs(1),
			RunE: withFilters(func(cmd *cobra.Command, fm *model.FilterManager) error {
				raw, err := model.EncodeFilters(fm.Filters())
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), raw)
				return err
			}),
		},
		&cobra.Command{
			Use:   "diff [source]",
			Short: "Print the JSON patch from the configured to the persisted filters",
			Args:  cobra.MaximumNArgs(1),
			RunE: withSession(func(cmd *cobra.Command, s *session) error {
				initial, err := s.cfg.Gridview.Filters()
				if err != nil {
					return err
				}
				fm, err := newFilterManager(s)
				if err != nil {
					return err
				}
				patch, err := model.DiffFilters(initial, fm.Filters())
				if errors.Is(err, model.ErrNoChanges) {
					_, err = fmt.Fprintln(cmd.OutOrStdout(), "no changes")
					return err
				}
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), patch)
				return err
			}),
		},
		&cobra.Command{
			Use:   "clear [source]",
			Short: "Clear every persisted filter value",
			Args:  cobra.MaximumNArgs(1),
			RunE: withFilters(func(_ *cobra.Command, fm *model.FilterManager) error {
				fm.ClearAllFilters()
				return fm.Save()
			}),
		},
		&cobra.Command{
			Use:   "reset [source]",
			Short: "Restore the configured filters",
			Args:  cobra.MaximumNArgs(1),
			RunE: withFilters(func(_ *cobra.Command, fm *model.FilterManager) error {
				fm.ResetFilters()
				return fm.Save()
			}),
		},
	)
}

func withSession(fn func(*cobra.Command, *session) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd, args)
		if err != nil {
			return err
		}
		defer s.Close()

		return fn(cmd, s)
	}
}

func withFilters(fn func(*cobra.Command, *model.FilterManager) error) func(*cobra.Command, []string) error {
	return withSession(func(cmd *cobra.Command, s *session) error {
		fm, err := newFilterManager(s)
		if err != nil {
			return err
		}
		return fn(cmd, fm)
	})
}
