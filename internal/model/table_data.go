package model

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/a1s/gridview/internal/dao"
	"github.com/a1s/gridview/internal/model1"
)

// DefaultRefreshRate is used when no refresh rate is configured.
const DefaultRefreshRate = 5 * time.Second

// TableData fetches rows from a row source and tracks their rendered form.
type TableData struct {
	accessor      dao.RowAccessor
	renderer      model1.Renderer
	identityField string
	data          *model1.TableData
	refreshRate   time.Duration
	listeners     []TableListener
	cancelFn      context.CancelFunc
	log           *slog.Logger
	mx            sync.RWMutex
}

// NewTableData creates a new table data model.
func NewTableData(identityField string, refreshRate time.Duration) *TableData {
	if identityField == "" {
		identityField = model1.DefaultIdentityField
	}
	return &TableData{
		identityField: identityField,
		data:          model1.NewTableData(),
		refreshRate:   refreshRate,
		listeners:     make([]TableListener, 0, 2),
		log:           slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// SetLogger sets the model logger.
func (t *TableData) SetLogger(l *slog.Logger) {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.log = l
}

// SetAccessor sets the row source.
func (t *TableData) SetAccessor(a dao.RowAccessor) {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.accessor = a
}

// SetRenderer sets the renderer converting rows to cells.
func (t *TableData) SetRenderer(r model1.Renderer) {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.renderer = r
}

// Header returns the table header.
func (t *TableData) Header() model1.Header {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.data.Header()
}

// RowCount returns the number of rows.
func (t *TableData) RowCount() int {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.data.RowCount()
}

// RowEvents returns the current row events.
func (t *TableData) RowEvents() *model1.RowEvents {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.data.RowEvents()
}

// Rows returns the current raw rows.
func (t *TableData) Rows() model1.Rows {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.data.Rows()
}

// Empty returns true if no data is available.
func (t *TableData) Empty() bool {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.data.Empty()
}

// AddListener registers a table listener.
func (t *TableData) AddListener(l TableListener) {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.listeners = append(t.listeners, l)
}

// RemoveListener unregisters a table listener.
func (t *TableData) RemoveListener(l TableListener) {
	t.mx.Lock()
	defer t.mx.Unlock()

	for i, listener := range t.listeners {
		if listener == l {
			t.listeners = append(t.listeners[:i], t.listeners[i+1:]...)
			return
		}
	}
}

// Watch loads the rows then refreshes them periodically until ctx is done.
func (t *TableData) Watch(ctx context.Context) error {
	t.mx.Lock()
	if t.cancelFn != nil {
		t.cancelFn()
	}
	watchCtx, cancel := context.WithCancel(ctx)
	t.cancelFn = cancel
	t.mx.Unlock()

	if err := t.Refresh(watchCtx); err != nil {
		t.notifyLoadFailed(err)
		return err
	}

	go t.watchLoop(watchCtx)
	return nil
}

func (t *TableData) watchLoop(ctx context.Context) {
	t.mx.RLock()
	refreshRate := t.refreshRate
	t.mx.RUnlock()

	if refreshRate <= 0 {
		refreshRate = DefaultRefreshRate
	}

	ticker := time.NewTicker(refreshRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := t.Refresh(ctx); err != nil {
				t.notifyLoadFailed(err)
			}
		}
	}
}

// Refresh fetches and renders the rows immediately.
func (t *TableData) Refresh(ctx context.Context) error {
	t.mx.RLock()
	accessor, renderer, log := t.accessor, t.renderer, t.log
	prev := t.data.RowEvents()
	t.mx.RUnlock()

	if accessor == nil {
		return fmt.Errorf("no accessor configured")
	}
	if renderer == nil {
		return fmt.Errorf("no renderer configured")
	}

	rows, err := accessor.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list rows: %w", err)
	}

	header := renderer.Header()
	kept := make(model1.Rows, 0, len(rows))
	cells := make([]model1.Cells, 0, len(rows))
	for i, r := range rows {
		c := model1.NewCells(len(header))
		if err := renderer.Render(r, &c); err != nil {
			log.Warn("skipping row", "index", i, "error", err)
			continue
		}
		if k, ok := r.Key(t.identityField); ok {
			c.ID = k
		} else {
			c.ID = "#" + strconv.Itoa(i)
		}
		kept, cells = append(kept, r), append(cells, c)
	}

	newData := model1.NewTableData()
	newData.SetHeader(header)
	newData.SetRowEvents(model1.Diff(prev, kept, cells))

	t.mx.Lock()
	oldEmpty := t.data.Empty()
	t.data = newData
	t.mx.Unlock()
	log.Debug("rows refreshed", "count", len(kept))

	if newData.Empty() && !oldEmpty {
		t.notifyNoData(newData)
	} else {
		t.notifyDataChanged(newData)
	}

	return nil
}

// Stop stops the watch loop.
func (t *TableData) Stop() {
	t.mx.Lock()
	defer t.mx.Unlock()

	if t.cancelFn != nil {
		t.cancelFn()
		t.cancelFn = nil
	}
}

func (t *TableData) snapshotListeners() []TableListener {
	t.mx.RLock()
	defer t.mx.RUnlock()
	ll := make([]TableListener, len(t.listeners))
	copy(ll, t.listeners)
	return ll
}

func (t *TableData) notifyNoData(data *model1.TableData) {
	for _, l := range t.snapshotListeners() {
		l.TableNoData(data)
	}
}

func (t *TableData) notifyDataChanged(data *model1.TableData) {
	for _, l := range t.snapshotListeners() {
		l.TableDataChanged(data)
	}
}

func (t *TableData) notifyLoadFailed(err error) {
	for _, l := range t.snapshotListeners() {
		l.TableLoadFailed(err)
	}
}
