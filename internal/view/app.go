// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of a1s

package view

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/a1s/gridview/internal/config"
	"github.com/a1s/gridview/internal/dao"
	"github.com/a1s/gridview/internal/model"
	"github.com/a1s/gridview/internal/model1"
	"github.com/a1s/gridview/internal/render"
	"github.com/a1s/gridview/internal/ui"
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

const (
	// FlashDelay sets the flash auto-clear delay.
	FlashDelay = 5 * time.Second
)

// FlashLevel represents flash message severity.
type FlashLevel int

const (
	// FlashInfo represents an info message.
	FlashInfo FlashLevel = iota
	// FlashWarn represents a warning message.
	FlashWarn
	// FlashErr represents an error message.
	FlashErr
)

// Flash handles flash messages in the application.
type Flash struct {
	*tview.TextView
	app    *App
	cancel context.CancelFunc
	mx     sync.RWMutex
}

// NewFlash creates a new Flash instance.
func NewFlash(app *App) *Flash {
	f := &Flash{
		TextView: tview.NewTextView(),
		app:      app,
	}
	f.SetDynamicColors(true)
	f.SetTextAlign(tview.AlignLeft)
	f.SetBorderPadding(0, 0, 1, 1)
	return f
}

// Info displays an informational message.
func (f *Flash) Info(msg string) {
	f.setMessage(FlashInfo, msg)
}

// Infof displays a formatted informational message.
func (f *Flash) Infof(format string, args ...interface{}) {
	f.Info(fmt.Sprintf(format, args...))
}

// Warn displays a warning message.
func (f *Flash) Warn(msg string) {
	f.setMessage(FlashWarn, msg)
}

// Warnf displays a formatted warning message.
func (f *Flash) Warnf(format string, args ...interface{}) {
	f.Warn(fmt.Sprintf(format, args...))
}

// Err displays an error message.
func (f *Flash) Err(err error) {
	if err != nil {
		f.setMessage(FlashErr, err.Error())
	}
}

// Errf displays a formatted error message.
func (f *Flash) Errf(format string, args ...interface{}) {
	f.setMessage(FlashErr, fmt.Sprintf(format, args...))
}

// Clear clears the flash message.
func (f *Flash) Clear() {
	f.mx.Lock()
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.mx.Unlock()

	if f.app != nil {
		f.app.QueueUpdateDraw(func() {
			f.TextView.Clear()
		})
	} else {
		f.TextView.Clear()
	}
}

func (f *Flash) setMessage(level FlashLevel, msg string) {
	f.mx.Lock()
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.mx.Unlock()

	if msg == "" {
		f.Clear()
		return
	}

	updateFn := func() {
		f.TextView.Clear()
		f.SetTextColor(flashColor(level))
		fmt.Fprintf(f.TextView, "%s %s", flashPrefix(level), tview.Escape(msg))
	}

	if f.app != nil {
		f.app.QueueUpdateDraw(updateFn)
	} else {
		updateFn()
	}

	ctx, cancel := context.WithCancel(context.Background())
	f.mx.Lock()
	f.cancel = cancel
	f.mx.Unlock()

	go f.autoClear(ctx)
}

func (f *Flash) autoClear(ctx context.Context) {
	select {
	case <-ctx.Done():
		return
	case <-time.After(FlashDelay):
		f.Clear()
	}
}

func flashColor(level FlashLevel) tcell.Color {
	switch level {
	case FlashWarn:
		return tcell.ColorYellow
	case FlashErr:
		return tcell.ColorRed
	default:
		return tcell.ColorGreen
	}
}

func flashPrefix(level FlashLevel) string {
	switch level {
	case FlashWarn:
		return "[WARN]"
	case FlashErr:
		return "[ERROR]"
	default:
		return "[INFO]"
	}
}

const (
	gridPage    = "grid"
	helpPage    = "help"
	confirmPage = "confirm"
)

// App represents the main application container.
type App struct {
	*tview.Application

	version   string
	config    *config.Config
	Content   *ui.Pages
	command   *Command
	factory   dao.Factory
	store     model.Store
	hotKeys   *config.HotKeys
	grid      *Grid
	prompt    *ui.Prompt
	menu      *ui.Menu
	crumbs    *ui.Crumbs
	status    *tview.TextView
	flash     *Flash
	log       *slog.Logger
	running   bool
	mx        sync.RWMutex
}

// NewApp creates a new application instance.
func NewApp(cfg *config.Config, version string, log *slog.Logger) *App {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	app := &App{
		Application: tview.NewApplication(),
		version:     version,
		config:      cfg,
		Content:     ui.NewPages(),
		hotKeys:     config.NewHotKeys(),
		store:       dao.NewMemoryStore(),
		log:         log.With("component", "app"),
	}

	app.flash = NewFlash(app)
	app.menu = ui.NewMenu()
	app.crumbs = ui.NewCrumbs()
	app.prompt = ui.NewPrompt()
	app.status = tview.NewTextView()
	app.status.SetDynamicColors(true)
	app.status.SetTextAlign(tview.AlignRight)
	app.status.SetBackgroundColor(tcell.ColorDefault)

	app.Application.SetInputCapture(app.keyboard)

	app.prompt.SetRunFn(func(cmd string) error {
		return app.command.Run(cmd)
	})
	app.prompt.SetErrFn(app.flash.Err)

	return app
}

// SetFactory sets the AWS factory.
func (a *App) SetFactory(f dao.Factory) {
	a.mx.Lock()
	defer a.mx.Unlock()

	a.factory = f
}

// SetStore sets the store persisting the filters.
func (a *App) SetStore(s model.Store) {
	a.mx.Lock()
	defer a.mx.Unlock()

	a.store = s
}

// SetHotKeys sets the key rebindings.
func (a *App) SetHotKeys(hk *config.HotKeys) {
	a.mx.Lock()
	defer a.mx.Unlock()

	a.hotKeys = hk
}

// Init builds the grid and the application layout.
func (a *App) Init(ctx context.Context) error {
	a.command = NewCommand(a)
	if err := a.command.Init(); err != nil {
		return fmt.Errorf("failed to initialize command: %w", err)
	}

	grid, err := NewGrid(ctx, a.config.Gridview, a.factory, a.store, a.log)
	if err != nil {
		return fmt.Errorf("failed to build grid: %w", err)
	}
	grid.SetUpdateFn(a.QueueUpdateDraw)
	grid.SetChangedFn(a.gridChanged)
	a.prompt.SetSearcher(grid)
	a.prompt.SetCommands(a.command.Names())
	grid.SetSearchFn(a.prompt.StartSearch)
	grid.SetRefreshFn(a.Reload)
	if err := grid.Init(ctx); err != nil {
		return err
	}
	for _, action := range a.hotKeys.Names() {
		if err := grid.Rebind(action, a.hotKeys.ShortCut(action, "")); err != nil {
			a.log.Warn("skipping hotkey", "action", action, "error", err)
		}
	}
	a.grid = grid

	a.menu.HintsChanged(grid)
	a.crumbs.FiltersChanged(grid.Filters().Filters())
	a.Content.Push(gridPage, grid)
	a.SetRoot(a.buildLayout(), true)
	a.SetFocus(a.Content)

	return nil
}

// Run starts the application.
func (a *App) Run() error {
	a.mx.Lock()
	a.running = true
	a.mx.Unlock()

	a.grid.Start()
	a.flash.Infof("Loading %s...", a.grid.Location())

	return a.Application.Run()
}

// Stop stops the application.
func (a *App) Stop() {
	a.mx.Lock()
	defer a.mx.Unlock()

	if a.grid != nil {
		a.grid.Stop()
	}
	a.running = false
	a.Application.Stop()
}

// IsRunning returns whether the application is currently running.
func (a *App) IsRunning() bool {
	a.mx.RLock()
	defer a.mx.RUnlock()

	return a.running
}

// Flash returns the flash message handler.
func (a *App) Flash() *Flash {
	return a.flash
}

// Grid returns the grid view.
func (a *App) Grid() *Grid {
	return a.grid
}

// QueueUpdateDraw queues a function to be executed on the UI thread.
func (a *App) QueueUpdateDraw(fn func()) {
	go a.Application.QueueUpdateDraw(fn)
}

// Reload refetches the rows.
func (a *App) Reload() {
	a.flash.Info("Refreshing...")
	go func() {
		if err := a.grid.Reload(context.Background()); err != nil {
			a.flash.Err(err)
		}
	}()
}

// ConfirmClearFilters clears every filter once confirmed.
func (a *App) ConfirmClearFilters() {
	a.confirm("Clear all filters?", func() {
		a.grid.Filters().ClearAllFilters()
		a.flash.Info("Filters cleared")
	})
}

// ConfirmResetFilters restores the initial filters once confirmed.
func (a *App) ConfirmResetFilters() {
	a.confirm("Reset filters to their initial values?", func() {
		a.grid.Filters().ResetFilters()
		a.flash.Info("Filters reset")
	})
}

func (a *App) confirm(msg string, ack func()) {
	d := ui.ConfirmDialog(a.Content, confirmPage, msg, ack).
		SetDoneCallback(a.focusGrid)
	d.Show()
	a.SetFocus(d)
}

func (a *App) focusGrid() {
	a.SetFocus(a.Content)
}

func (a *App) gridChanged() {
	g := a.grid
	if g == nil {
		return
	}
	ff := g.Filters().Filters()
	a.crumbs.FiltersChanged(ff)
	a.status.SetText(statusLine(
		len(g.VisibleRows()),
		g.TotalRows(),
		g.Selector().Stats(),
		activeCount(ff),
		g.Sorter().Criteria(),
	))
}

func activeCount(ff []model1.FilterState) int {
	var n int
	for _, f := range ff {
		n += f.ActiveCount
	}
	return n
}

// statusLine summarizes the rows, marks, filters and sort of the grid.
func statusLine(visible, total int, st model.SelectionStats, filters int, cc model1.SortCriteria) string {
	parts := []string{fmt.Sprintf("[white::b]%d[-::-]/%d rows", visible, total)}
	if !st.IsNoneSelected {
		parts = append(parts, fmt.Sprintf("[orange::b]%d[-::-] marked (%d%%)", st.Selected, st.Percentage))
	}
	if filters > 0 {
		parts = append(parts, fmt.Sprintf("[yellow::b]%d[-::-] filters", filters))
	}
	if len(cc) > 0 {
		ss := make([]string, 0, len(cc))
		for _, c := range cc {
			icon := render.SortAscIcon
			if c.Direction == model1.Desc {
				icon = render.SortDescIcon
			}
			ss = append(ss, c.ColumnID+icon)
		}
		parts = append(parts, "sort "+strings.Join(ss, ","))
	}

	return strings.Join(parts, " | ")
}

// buildLayout creates the main UI layout.
func (a *App) buildLayout() *tview.Flex {
	header := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(a.menu, 0, 3, false).
		AddItem(a.status, 0, 2, false)

	prompt := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(a.prompt, 0, 1, false).
		AddItem(a.crumbs, 0, 3, false)

	return tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(header, 4, 0, false).
		AddItem(prompt, 1, 0, false).
		AddItem(a.Content, 0, 1, true).
		AddItem(a.flash, 1, 0, false)
}

// keyboard handles global keyboard events.
func (a *App) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	if a.Content.Has(helpPage) || a.Content.Has(confirmPage) {
		return evt
	}
	if a.prompt.IsActive() {
		return a.prompt.HandleKey(evt)
	}

	if evt.Key() == tcell.KeyRune {
		switch evt.Rune() {
		case ':':
			a.prompt.StartCommand()
			return nil
		case '?':
			a.showHelp()
			return nil
		case 'q':
			a.Stop()
			return nil
		}
	}
	if evt.Key() == tcell.KeyCtrlC {
		a.Stop()
		return nil
	}

	return evt
}

// showHelp displays the help screen over the grid.
func (a *App) showHelp() {
	help := NewHelp(a.grid.Hints())
	help.SetCloseFn(func() {
		a.Content.Remove(helpPage)
		a.focusGrid()
	})
	a.Content.Push(helpPage, help)
	a.SetFocus(help)
}
