package model

import (
	"context"

	"github.com/a1s/gridview/internal/model1"
)

// TableModel defines the interface for a table data model that fetches data.
type TableModel interface {
	// Header returns the table header.
	Header() model1.Header

	// RowCount returns the number of rows.
	RowCount() int

	// RowEvents returns the current row events.
	RowEvents() *model1.RowEvents

	// Rows returns the current raw rows.
	Rows() model1.Rows

	// Watch starts watching/refreshing data periodically.
	Watch(context.Context) error

	// Refresh fetches data from the source immediately.
	Refresh(context.Context) error

	// AddListener registers a table listener.
	AddListener(TableListener)

	// RemoveListener unregisters a table listener.
	RemoveListener(TableListener)
}

var _ TableModel = (*TableData)(nil)

// TableListener represents a table model listener.
type TableListener interface {
	// TableNoData notifies listener no data was found.
	TableNoData(*model1.TableData)

	// TableDataChanged notifies the model data changed.
	TableDataChanged(*model1.TableData)

	// TableLoadFailed notifies the load failed.
	TableLoadFailed(error)
}
