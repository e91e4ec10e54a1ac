package layout

import "strings"

type Axis int

const (
	AxisRow Axis = iota
	AxisColumn
)

func (a Axis) String() string {
	if a == AxisColumn {
		return "column"
	}
	return "row"
}

// IndexLevel is one depth of a row or column hierarchy: one label per table
// row (or column), outer levels before inner ones.
type IndexLevel struct {
	Name   string   `json:"name,omitempty" yaml:"name,omitempty"`
	Labels []string `json:"labels" yaml:"labels"`
}

func NewIndexLevel(name string, labels ...string) IndexLevel {
	return IndexLevel{Name: name, Labels: labels}
}

func (l IndexLevel) Len() int {
	return len(l.Labels)
}

// Categories returns the distinct labels in order of first appearance.
func (l IndexLevel) Categories() []string {
	return distinct(l.Labels)
}

func distinct(labels []string) []string {
	seen := make(map[string]struct{}, len(labels))
	ret := make([]string, 0)
	for _, lbl := range labels {
		if _, ok := seen[lbl]; ok {
			continue
		}
		seen[lbl] = struct{}{}
		ret = append(ret, lbl)
	}
	return ret
}

// ColumnIndex is either flat (one header row) or two-level (outer group
// labels above inner column labels).
type ColumnIndex struct {
	levels []IndexLevel
}

func FlatColumns(labels ...string) ColumnIndex {
	return ColumnIndex{levels: []IndexLevel{{Labels: labels}}}
}

func TwoLevelColumns(outer, inner IndexLevel) (ColumnIndex, error) {
	if outer.Len() != inner.Len() {
		return ColumnIndex{}, newError(ErrShapeMismatch, outer.Len(), "outer column level has %d labels, inner has %d", outer.Len(), inner.Len())
	}
	return ColumnIndex{levels: []IndexLevel{outer, inner}}, nil
}

func (c ColumnIndex) Depth() int {
	return len(c.levels)
}

func (c ColumnIndex) IsMulti() bool {
	return len(c.levels) > 1
}

func (c ColumnIndex) Levels() []IndexLevel {
	return c.levels
}

func (c ColumnIndex) Len() int {
	if len(c.levels) == 0 {
		return 0
	}
	return c.levels[0].Len()
}

// Leaf returns the innermost level, the one that names each data column.
func (c ColumnIndex) Leaf() IndexLevel {
	if len(c.levels) == 0 {
		return IndexLevel{}
	}
	return c.levels[len(c.levels)-1]
}

// Label returns the display name of column i: "outer/inner" for two-level
// indexes.
func (c ColumnIndex) Label(i int) string {
	parts := make([]string, 0, len(c.levels))
	for _, lvl := range c.levels {
		parts = append(parts, lvl.Labels[i])
	}
	return strings.Join(parts, "/")
}
