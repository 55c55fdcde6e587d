package data

// Column describes a grid column.
type Column struct {
	ID       string `yaml:"id"`
	Title    string `yaml:"title,omitempty"`
	Field    string `yaml:"field,omitempty"`
	Type     string `yaml:"type,omitempty"`
	Sortable *bool  `yaml:"sortable,omitempty"`
}

// Sort describes an initial sort criterion.
type Sort struct {
	Column    string `yaml:"column"`
	Direction string `yaml:"direction,omitempty"`
}

// Option describes a selectable filter choice.
type Option struct {
	Value string `yaml:"value"`
	Label string `yaml:"label,omitempty"`
}

// Filter describes a filter control and its initial value.
type Filter struct {
	ID          string   `yaml:"id"`
	Type        string   `yaml:"type"`
	Field       string   `yaml:"field,omitempty"`
	Value       string   `yaml:"value,omitempty"`
	Values      []string `yaml:"values,omitempty"`
	Options     []Option `yaml:"options,omitempty"`
	Placeholder string   `yaml:"placeholder,omitempty"`
}

// View represents the grid layout: its columns, initial sort and filters.
type View struct {
	Columns []Column `yaml:"columns"`
	Sort    []Sort   `yaml:"sort,omitempty"`
	Filters []Filter `yaml:"filters,omitempty"`
}

// NewView creates an empty View.
func NewView() *View {
	return &View{}
}

// Validate fills in column defaults.
func (v *View) Validate() {
	for i := range v.Columns {
		c := &v.Columns[i]
		if c.Type == "" {
			c.Type = "text"
		}
		if c.Sortable == nil {
			c.Sortable = boolPtr(true)
		}
	}
	for i := range v.Sort {
		if v.Sort[i].Direction == "" {
			v.Sort[i].Direction = "asc"
		}
	}
}
