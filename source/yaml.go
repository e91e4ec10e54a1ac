package source

import (
	"fmt"
	"os"

	"github.com/soderasen-au/go-common/util"
	"gopkg.in/yaml.v3"

	"github.com/soderasen-au/go-hiertable/layout"
)

// ColumnSpec is either a plain list of column labels or an
// {outer: [...], inner: [...]} pair for two-level columns.
type ColumnSpec struct {
	Outer []string `json:"outer,omitempty" yaml:"outer,omitempty"`
	Inner []string `json:"inner,omitempty" yaml:"inner,omitempty"`
}

func (c *ColumnSpec) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.SequenceNode {
		c.Outer = nil
		return value.Decode(&c.Inner)
	}
	type plain ColumnSpec
	return value.Decode((*plain)(c))
}

func (c ColumnSpec) Index() (layout.ColumnIndex, error) {
	if len(c.Outer) == 0 {
		return layout.FlatColumns(c.Inner...), nil
	}
	return layout.TwoLevelColumns(layout.NewIndexLevel("", fillForward(c.Outer)...), layout.NewIndexLevel("", c.Inner...))
}

// TableDoc is the yaml form of a table.
type TableDoc struct {
	IndexNames []string   `json:"index_names,omitempty" yaml:"index_names,omitempty"`
	RowIndex   [][]string `json:"row_index" yaml:"row_index"`
	Columns    ColumnSpec `json:"columns" yaml:"columns"`
	Values     [][]any    `json:"values" yaml:"values"`
}

func (d TableDoc) Table() (*layout.Table, *util.Result) {
	if len(d.IndexNames) > 0 && len(d.IndexNames) != len(d.RowIndex) {
		return nil, util.MsgError("TableDoc", fmt.Sprintf("%d index names for %d levels", len(d.IndexNames), len(d.RowIndex)))
	}
	rowIndex := make([]layout.IndexLevel, len(d.RowIndex))
	for i, lbls := range d.RowIndex {
		name := ""
		if i < len(d.IndexNames) {
			name = d.IndexNames[i]
		}
		rowIndex[i] = layout.NewIndexLevel(name, lbls...)
	}

	columns, err := d.Columns.Index()
	if err != nil {
		return nil, util.Error("Columns", err)
	}

	values := make([][]any, len(d.Values))
	for ri, row := range d.Values {
		values[ri] = make([]any, len(row))
		for ci, v := range row {
			values[ri][ci] = normalize(v)
		}
	}

	t, err := layout.NewTable(rowIndex, columns, values)
	if err != nil {
		return nil, util.Error("NewTable", err)
	}
	return t, nil
}

// normalize maps yaml scalars onto table values. yaml keeps unquoted dates
// as strings when decoding into any.
func normalize(v any) any {
	switch x := v.(type) {
	case int:
		return float64(x)
	case string:
		if t, ok := parseTime(x); ok {
			return t
		}
	}
	return v
}

func ParseYAML(data []byte) (*layout.Table, *util.Result) {
	var doc TableDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, util.Error("UnmarshalYAML", err)
	}
	t, res := doc.Table()
	if res != nil {
		return nil, res.With("Table")
	}
	return t, nil
}

func LoadYAML(path string) (*layout.Table, *util.Result) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, util.Error("ReadFile", err)
	}
	t, res := ParseYAML(data)
	if res != nil {
		return nil, res.With(path)
	}
	return t, nil
}
