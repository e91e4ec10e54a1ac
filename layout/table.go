package layout

// Table is a read-only view of the dataset being laid out. Values is indexed
// [row][column]; a nil value is rendered as the null replacement.
type Table struct {
	RowIndex []IndexLevel
	Columns  ColumnIndex
	Values   [][]any
}

func NewTable(rowIndex []IndexLevel, columns ColumnIndex, values [][]any) (*Table, error) {
	rows := len(values)
	for _, lvl := range rowIndex {
		if lvl.Len() != rows {
			return nil, newError(ErrShapeMismatch, lvl.Name, "row index level has %d labels for %d rows", lvl.Len(), rows)
		}
	}
	cols := columns.Len()
	for ri, row := range values {
		if len(row) != cols {
			return nil, newError(ErrShapeMismatch, ri, "row has %d values for %d columns", len(row), cols)
		}
	}
	return &Table{RowIndex: rowIndex, Columns: columns, Values: values}, nil
}

func (t *Table) RowCount() int {
	return len(t.Values)
}

func (t *Table) ColumnCount() int {
	return t.Columns.Len()
}

func (t *Table) IndexColumns() int {
	return len(t.RowIndex)
}

func (t *Table) IndexNames() []string {
	names := make([]string, len(t.RowIndex))
	for i, lvl := range t.RowIndex {
		names[i] = lvl.Name
	}
	return names
}

// ColumnPosition resolves a column name to its position. The name is either
// a leaf label or, for two-level columns, "outer/inner". The first match wins.
func (t *Table) ColumnPosition(name string) (int, error) {
	leaf := t.Columns.Leaf()
	for i, lbl := range leaf.Labels {
		if lbl == name {
			return i, nil
		}
	}
	if t.Columns.IsMulti() {
		for i := 0; i < t.Columns.Len(); i++ {
			if t.Columns.Label(i) == name {
				return i, nil
			}
		}
	}
	return -1, newError(ErrColumnNotFound, name, "no such column")
}

func (t *Table) Column(i int) []any {
	ret := make([]any, len(t.Values))
	for ri, row := range t.Values {
		ret[ri] = row[i]
	}
	return ret
}
