package model1

import "fmt"

// RowEvent tracks a rendered row and how it changed since the last refresh.
type RowEvent struct {
	Kind   ResEvent
	Row    Row
	Cells  Cells
	Deltas DeltaRow
}

// NewRowEvent returns an event for a rendered row.
func NewRowEvent(kind ResEvent, row Row, cells Cells) RowEvent {
	return RowEvent{
		Kind:  kind,
		Row:   row,
		Cells: cells,
	}
}

// NewRowEventWithDeltas returns an update event carrying the previous values.
func NewRowEventWithDeltas(row Row, cells Cells, delta DeltaRow) RowEvent {
	return RowEvent{
		Kind:   EventUpdate,
		Row:    row,
		Cells:  cells,
		Deltas: delta,
	}
}

// Key returns the row key.
func (r RowEvent) Key() string {
	return r.Cells.ID
}

func (r RowEvent) Clone() RowEvent {
	return RowEvent{
		Kind:   r.Kind,
		Row:    r.Row,
		Cells:  r.Cells.Clone(),
		Deltas: r.Deltas.Clone(),
	}
}

// RowEvents a collection of row events indexed by row key.
type RowEvents struct {
	events []RowEvent
	index  map[string]int
}

func NewRowEvents(size int) *RowEvents {
	return &RowEvents{
		events: make([]RowEvent, 0, size),
		index:  make(map[string]int, size),
	}
}

// Diff builds the events of a refresh against the previous events.
func Diff(prev *RowEvents, rows Rows, cells []Cells) *RowEvents {
	out := NewRowEvents(len(cells))
	for i, c := range cells {
		old, ok := prev.Get(c.ID)
		switch {
		case !ok:
			out.Add(NewRowEvent(EventAdd, rows[i], c))
		default:
			d := NewDeltaRow(old.Cells, c)
			if d.IsBlank() {
				out.Add(NewRowEvent(EventUnchanged, rows[i], c))
				continue
			}
			out.Add(NewRowEventWithDeltas(rows[i], c, d))
		}
	}
	return out
}

func (r *RowEvents) reindex() {
	for i, e := range r.events {
		r.index[e.Key()] = i
	}
}

func (r *RowEvents) At(i int) (RowEvent, bool) {
	if i < 0 || i >= len(r.events) {
		return RowEvent{}, false
	}
	return r.events[i], true
}

func (r *RowEvents) Add(re RowEvent) {
	r.events = append(r.events, re)
	r.index[re.Key()] = len(r.events) - 1
}

func (r *RowEvents) Len() int {
	if r == nil {
		return 0
	}
	return len(r.events)
}

func (r *RowEvents) Empty() bool {
	return r.Len() == 0
}

func (r *RowEvents) Get(key string) (RowEvent, bool) {
	if r == nil {
		return RowEvent{}, false
	}
	i, ok := r.index[key]
	if !ok {
		return RowEvent{}, false
	}
	return r.At(i)
}

func (r *RowEvents) FindIndex(key string) (int, bool) {
	i, ok := r.index[key]
	return i, ok
}

func (r *RowEvents) Upsert(re RowEvent) {
	if idx, ok := r.FindIndex(re.Key()); ok {
		r.events[idx] = re
	} else {
		r.Add(re)
	}
}

func (r *RowEvents) Delete(key string) error {
	victim, ok := r.FindIndex(key)
	if !ok {
		return fmt.Errorf("unable to delete row with id: %q", key)
	}
	r.events = append(r.events[0:victim], r.events[victim+1:]...)
	delete(r.index, key)
	r.reindex()
	return nil
}

func (r *RowEvents) Clone() *RowEvents {
	out := NewRowEvents(r.Len())
	if r == nil {
		return out
	}
	for _, e := range r.events {
		out.Add(e.Clone())
	}
	return out
}

// Rows returns the raw rows in event order.
func (r *RowEvents) Rows() Rows {
	rr := make(Rows, 0, r.Len())
	r.Range(func(_ int, e RowEvent) bool {
		rr = append(rr, e.Row)
		return true
	})
	return rr
}

func (r *RowEvents) Range(f func(int, RowEvent) bool) {
	if r == nil {
		return
	}
	for i, e := range r.events {
		if !f(i, e) {
			return
		}
	}
}
