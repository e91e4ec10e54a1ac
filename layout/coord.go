package layout

import "fmt"

// GridOffset locates a table on the sheet. HeaderRows and IndexColumns are
// the rows consumed by column labels and the columns consumed by row-index
// labels; RowOffset and ColumnOffset are the blank margin chosen by the
// caller. All values are zero-based counts.
type GridOffset struct {
	HeaderRows   int `json:"header_rows" yaml:"header_rows"`
	IndexColumns int `json:"index_columns" yaml:"index_columns"`
	RowOffset    int `json:"row_offset" yaml:"row_offset"`
	ColumnOffset int `json:"column_offset" yaml:"column_offset"`
}

// Cell is an absolute, zero-based grid coordinate.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d, %d)", c.Row, c.Col)
}

func (o GridOffset) Validate() error {
	switch {
	case o.HeaderRows < 0:
		return newError(ErrInvalidOffset, o.HeaderRows, "negative header rows")
	case o.IndexColumns < 0:
		return newError(ErrInvalidOffset, o.IndexColumns, "negative index columns")
	case o.RowOffset < 0:
		return newError(ErrInvalidOffset, o.RowOffset, "negative row offset")
	case o.ColumnOffset < 0:
		return newError(ErrInvalidOffset, o.ColumnOffset, "negative column offset")
	}
	return nil
}

func checkPosition(what string, v int) error {
	if v < 0 {
		return newError(ErrInvalidOffset, v, "negative %s", what)
	}
	return nil
}

// Map converts a data position (row into the value matrix, column into the
// column index) to its grid cell.
func (o GridOffset) Map(tableRow, tableCol int) (Cell, error) {
	if err := o.Validate(); err != nil {
		return Cell{}, err
	}
	if err := checkPosition("table row", tableRow); err != nil {
		return Cell{}, err
	}
	if err := checkPosition("table column", tableCol); err != nil {
		return Cell{}, err
	}
	return Cell{
		Row: tableRow + o.HeaderRows + o.RowOffset,
		Col: tableCol + o.IndexColumns + o.ColumnOffset,
	}, nil
}

// MapIndex converts a row-index label position (table row, index level) to
// its grid cell. Index columns are not shifted by IndexColumns.
func (o GridOffset) MapIndex(tableRow, level int) (Cell, error) {
	if err := o.Validate(); err != nil {
		return Cell{}, err
	}
	if err := checkPosition("table row", tableRow); err != nil {
		return Cell{}, err
	}
	if err := checkPosition("index level", level); err != nil {
		return Cell{}, err
	}
	return Cell{
		Row: tableRow + o.HeaderRows + o.RowOffset,
		Col: level + o.ColumnOffset,
	}, nil
}

// MapHeader converts a header position (header row, data column) to its
// grid cell.
func (o GridOffset) MapHeader(headerRow, tableCol int) (Cell, error) {
	if err := o.Validate(); err != nil {
		return Cell{}, err
	}
	if err := checkPosition("header row", headerRow); err != nil {
		return Cell{}, err
	}
	if err := checkPosition("table column", tableCol); err != nil {
		return Cell{}, err
	}
	return Cell{
		Row: headerRow + o.RowOffset,
		Col: tableCol + o.IndexColumns + o.ColumnOffset,
	}, nil
}

// Bottom is the first grid row below a table of the given row count.
func (o GridOffset) Bottom(rows int) int {
	return o.RowOffset + o.HeaderRows + rows
}

// Right is the first grid column right of a table of the given column count.
func (o GridOffset) Right(cols int) int {
	return o.ColumnOffset + o.IndexColumns + cols
}
