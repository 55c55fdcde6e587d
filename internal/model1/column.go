package model1

// Accessor extracts a column value from a row.
type Accessor func(Row) any

// Column describes a grid column.
type Column struct {
	ID       string
	Title    string
	Field    string
	Accessor Accessor
	Sortable bool
	Type     ColumnType
}

// FieldName returns the row field the column reads when no accessor is set.
func (c Column) FieldName() string {
	if c.Field != "" {
		return c.Field
	}
	return c.ID
}

// Value resolves the column value for a row.
func (c Column) Value(r Row) any {
	if c.Accessor != nil {
		return c.Accessor(r)
	}
	return r[c.FieldName()]
}

// Name returns the column title, defaulting to its ID.
func (c Column) Name() string {
	if c.Title != "" {
		return c.Title
	}
	return c.ID
}

// Columns represents a collection of column descriptors.
type Columns []Column

// Find returns the column with the given ID.
func (cc Columns) Find(id string) (Column, bool) {
	for _, c := range cc {
		if c.ID == id {
			return c, true
		}
	}
	return Column{}, false
}

// IndexOf returns the position of a column.
func (cc Columns) IndexOf(id string) (int, bool) {
	for i, c := range cc {
		if c.ID == id {
			return i, true
		}
	}
	return -1, false
}

// CanSort returns true if the column exists and is sortable.
func (cc Columns) CanSort(id string) bool {
	c, ok := cc.Find(id)
	return ok && c.Sortable
}

// IDs returns the column IDs in order.
func (cc Columns) IDs() []string {
	ids := make([]string, 0, len(cc))
	for _, c := range cc {
		ids = append(ids, c.ID)
	}
	return ids
}
