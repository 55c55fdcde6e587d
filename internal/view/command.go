// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of a1s

package view

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/a1s/gridview/internal/aws"
	"github.com/a1s/gridview/internal/model1"
)

// defaultAliases defines command shortcuts.
var defaultAliases = map[string]string{
	"q":   "quit",
	"s":   "sort",
	"f":   "filter",
	"x":   "clear",
	"sel": "select",
}

// commandNames lists the commands Run understands.
var commandNames = []string{
	"quit", "sort", "unsort", "filter", "clear", "reset", "save",
	"select", "refresh", "profile", "region", "help",
}

// Command interprets the commands typed after a colon.
type Command struct {
	app     *App
	aliases map[string]string
}

// NewCommand creates a new command interpreter.
func NewCommand(app *App) *Command {
	return &Command{
		app:     app,
		aliases: make(map[string]string),
	}
}

// Init initializes the command interpreter with default aliases.
func (c *Command) Init() error {
	maps.Copy(c.aliases, defaultAliases)
	return nil
}

// Names returns the command names offered for completion.
func (c *Command) Names() []string {
	return slices.Clone(commandNames)
}

// Run parses and executes a command.
func (c *Command) Run(cmd string) error {
	cmdName, args := c.parseCommand(strings.TrimPrefix(strings.TrimSpace(cmd), ":"))
	if cmdName == "" {
		return nil
	}
	grid := c.app.Grid()
	if grid == nil && cmdName != "quit" {
		return errors.New("no grid loaded")
	}

	switch c.resolveAlias(cmdName) {
	case "quit":
		c.app.Stop()
	case "sort":
		return c.sortCmd(args)
	case "unsort":
		if len(args) != 1 {
			return errors.New("usage: unsort <column>")
		}
		grid.Sorter().RemoveSort(args[0])
	case "filter":
		return c.filterCmd(args)
	case "clear":
		if len(args) == 0 {
			c.app.ConfirmClearFilters()
			return nil
		}
		if _, ok := grid.Filters().Filter(args[0]); !ok {
			return fmt.Errorf("unknown filter %q", args[0])
		}
		grid.Filters().ClearFilter(args[0])
	case "reset":
		c.app.ConfirmResetFilters()
	case "save":
		if err := grid.Filters().Save(); err != nil {
			return err
		}
		c.app.Flash().Info("Filters saved")
	case "select":
		return c.selectCmd(args)
	case "refresh":
		c.app.Reload()
	case "profile", "region":
		return c.awsCmd(c.resolveAlias(cmdName), args)
	case "help":
		c.app.showHelp()
	default:
		return fmt.Errorf("unknown command %q", cmdName)
	}

	return nil
}

func (c *Command) sortCmd(args []string) error {
	sorter := c.app.Grid().Sorter()
	switch len(args) {
	case 0:
		sorter.ClearSort()
		return nil
	case 1, 2:
	default:
		return errors.New("usage: sort <column> [asc|desc|flip]")
	}
	if !sorter.CanSort(args[0]) {
		return fmt.Errorf("column %q is not sortable", args[0])
	}
	if len(args) == 1 {
		sorter.ToggleSort(args[0])
		return nil
	}
	dir := model1.Direction(strings.ToLower(args[1]))
	if dir == "flip" {
		cur, ok := sorter.SortDirection(args[0])
		if !ok {
			return fmt.Errorf("column %q is not sorted", args[0])
		}
		dir = cur.Flip()
	}
	if !dir.IsValid() {
		return fmt.Errorf("invalid sort direction %q", args[1])
	}
	sorter.AddSort(args[0], dir)

	return nil
}

func (c *Command) filterCmd(args []string) error {
	if len(args) < 2 {
		return errors.New("usage: filter <id> <value>")
	}
	fm := c.app.Grid().Filters()
	f, ok := fm.Filter(args[0])
	if !ok {
		return fmt.Errorf("unknown filter %q", args[0])
	}
	raw := strings.Join(args[1:], " ")
	var v model1.FilterValue
	switch f.Type {
	case model1.FilterMultiSelect:
		mv := model1.MultiValue{}
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				mv = append(mv, s)
			}
		}
		v = mv
	case model1.FilterSearch:
		v = model1.SearchValue(raw)
	default:
		v = model1.SingleValue(raw)
	}
	fm.SetFilterValue(f.ID, v)

	return nil
}

func (c *Command) selectCmd(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: select all|none|invert")
	}
	sel := c.app.Grid().Selector()
	switch args[0] {
	case "all":
		sel.SelectAll()
	case "none":
		sel.DeselectAll()
	case "invert":
		sel.InvertSelection()
	default:
		return fmt.Errorf("unknown selection %q", args[0])
	}

	return nil
}

// awsCmd switches the AWS profile or region backing an S3 source.
func (c *Command) awsCmd(kind string, args []string) error {
	if kind == "profile" && len(args) == 0 {
		pp, err := aws.NewCredentialDiscovery().DiscoverProfiles()
		if err != nil {
			return err
		}
		if len(pp) == 0 {
			return errors.New("no AWS profiles configured")
		}
		c.app.Flash().Infof("Profiles: %s", strings.Join(pp, ", "))
		return nil
	}
	if len(args) != 1 {
		return fmt.Errorf("usage: %s <name>", kind)
	}
	if c.app.factory == nil {
		return aws.ErrNoConnection
	}
	conn := c.app.factory.Client()
	if conn == nil {
		return aws.ErrNoConnection
	}
	var err error
	if kind == "profile" {
		err = conn.SwitchProfile(args[0])
	} else {
		err = conn.SwitchRegion(args[0])
	}
	if err != nil {
		return err
	}
	c.app.Flash().Infof("Switched %s to %s", kind, args[0])
	c.app.Reload()

	return nil
}

// parseCommand parses a command string into command name and arguments.
func (c *Command) parseCommand(cmd string) (string, []string) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return "", nil
	}

	return parts[0], parts[1:]
}

// resolveAlias resolves a command alias to its full form.
func (c *Command) resolveAlias(cmd string) string {
	if alias, ok := c.aliases[cmd]; ok {
		return alias
	}
	return cmd
}
