package model

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a1s/gridview/internal/model1"
)

type fakeAccessor struct {
	rows model1.Rows
	err  error
}

func (f *fakeAccessor) List(context.Context) (model1.Rows, error) {
	return f.rows, f.err
}

func (*fakeAccessor) Location() string {
	return "fake"
}

type fakeRenderer struct{}

func (fakeRenderer) Header() model1.Header {
	return model1.Header{{ID: "id", Name: "ID"}, {ID: "name", Name: "NAME"}}
}

func (fakeRenderer) Render(r model1.Row, out *model1.Cells) error {
	if r["name"] == nil {
		return errors.New("no name")
	}
	out.Fields[0] = model1.ToString(r["id"])
	out.Fields[1] = model1.ToString(r["name"])
	return nil
}

type testListener struct {
	changed, empty int
	err            error
	last           *model1.TableData
}

func (l *testListener) TableNoData(d *model1.TableData)      { l.empty++; l.last = d }
func (l *testListener) TableDataChanged(d *model1.TableData) { l.changed++; l.last = d }
func (l *testListener) TableLoadFailed(err error)            { l.err = err }

func TestTableDataRefresh(t *testing.T) {
	acc := &fakeAccessor{rows: model1.Rows{
		{"id": 1, "name": "Ann"},
		{"id": 2},
		{"name": "anon"},
	}}
	td := NewTableData("", 0)
	td.SetAccessor(acc)
	td.SetRenderer(fakeRenderer{})
	var l testListener
	td.AddListener(&l)

	require.NoError(t, td.Refresh(context.Background()))
	assert.Equal(t, 1, l.changed)
	assert.Equal(t, 2, td.RowCount())
	assert.Equal(t, model1.Rows{{"id": 1, "name": "Ann"}, {"name": "anon"}}, td.Rows())

	e, ok := td.RowEvents().Get("1")
	require.True(t, ok)
	assert.Equal(t, model1.EventAdd, e.Kind)
	_, ok = td.RowEvents().Get("#2")
	assert.True(t, ok)

	acc.rows = model1.Rows{{"id": 1, "name": "Anna"}}
	require.NoError(t, td.Refresh(context.Background()))
	e, _ = td.RowEvents().Get("1")
	assert.Equal(t, model1.EventUpdate, e.Kind)
	assert.Equal(t, "Ann", e.Deltas[1])

	acc.rows = nil
	require.NoError(t, td.Refresh(context.Background()))
	assert.Equal(t, 1, l.empty)
	assert.True(t, td.Empty())

	td.RemoveListener(&l)
	require.NoError(t, td.Refresh(context.Background()))
	assert.Equal(t, 1, l.empty)
}

func TestTableDataRefreshFailures(t *testing.T) {
	td := NewTableData("id", 0)
	assert.Error(t, td.Refresh(context.Background()))

	td.SetAccessor(&fakeAccessor{err: errors.New("boom")})
	assert.Error(t, td.Refresh(context.Background()))

	td.SetRenderer(fakeRenderer{})
	var l testListener
	td.AddListener(&l)
	err := td.Watch(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "boom")
	assert.Equal(t, err, l.err)
	td.Stop()
}
