package layout

// Options configures one table. The zero value lays a table out at the
// sheet's top-left corner with header-based widths and no outline.
type Options struct {
	HeaderOffset      int               `json:"header_offset" yaml:"header_offset"`
	ColumnOffset      int               `json:"column_offset" yaml:"column_offset"`
	MergeCells        bool              `json:"merge_cells" yaml:"merge_cells"`
	TextWrap          bool              `json:"text_wrap" yaml:"text_wrap"`
	WrapRows          int               `json:"wrap_rows" yaml:"wrap_rows"`
	Method            WidthMethod       `json:"method" yaml:"method"`
	NullValue         string            `json:"null_value" yaml:"null_value"`
	NullAlign         Align             `json:"null_align" yaml:"null_align"`
	DataFormat        Format            `json:"data_format" yaml:"data_format"`
	ColumnFormats     map[string]Format `json:"column_formats" yaml:"column_formats"`
	HighlightLast     bool              `json:"highlight_last" yaml:"highlight_last"`
	RequireUniqueLeaf bool              `json:"require_unique_leaf" yaml:"require_unique_leaf"`
	Outline           Outline           `json:"outline" yaml:"outline"`
}

func (o Options) Validate() error {
	if _, err := ParseWidthMethod(string(o.Method)); err != nil {
		return err
	}
	if _, err := ParseAlign(string(o.NullAlign)); err != nil {
		return err
	}
	if _, err := ParseFormat(string(o.DataFormat)); err != nil {
		return err
	}
	if o.WrapRows < 0 {
		return newError(ErrInvalidOffset, o.WrapRows, "negative wrap rows")
	}
	return o.offset(0, 0).Validate()
}

func (o Options) Wrap() Wrap {
	return Wrap{Enabled: o.TextWrap, Rows: o.WrapRows}
}

// HeaderRows is one row per column level, plus a row for the index names
// when a two-level header is not merged.
func (o Options) HeaderRows(columns ColumnIndex) int {
	n := columns.Depth()
	if columns.IsMulti() && !o.MergeCells {
		n++
	}
	return n
}

func (o Options) offset(indexColumns, headerRows int) GridOffset {
	return GridOffset{
		HeaderRows:   headerRows,
		IndexColumns: indexColumns,
		RowOffset:    o.HeaderOffset,
		ColumnOffset: o.ColumnOffset,
	}
}

// Offset places t on the grid under these options.
func (o Options) Offset(t *Table) GridOffset {
	return o.offset(t.IndexColumns(), o.HeaderRows(t.Columns))
}

// Layout is everything a renderer needs for one table.
type Layout struct {
	Offset  GridOffset    `json:"offset"`
	Rows    *AxisGeometry `json:"rows"`
	Columns *AxisGeometry `json:"columns"`
	Formats []Format      `json:"formats"`

	// Placements are ordered: column merges, header, row merges, index
	// labels, data, row borders, column borders, outline.
	Placements []Placement `json:"placements"`

	IndexWidths []int `json:"index_widths"`
	DataWidths  []int `json:"data_widths"`

	// LeftOutlineSkipped is set when a left outline was requested at
	// column offset zero.
	LeftOutlineSkipped bool `json:"left_outline_skipped"`
}

// Widths returns index and data widths in physical column order.
func (l *Layout) Widths() []int {
	ret := make([]int, 0, len(l.IndexWidths)+len(l.DataWidths))
	ret = append(ret, l.IndexWidths...)
	return append(ret, l.DataWidths...)
}

// Plan validates everything up front and returns no placements on error.
func Plan(t *Table, opts Options) (*Layout, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.Method == "" {
		opts.Method = WidthHeaders
	}

	off := opts.Offset(t)
	rows, err := ComputeAxis(AxisRow, t.RowIndex, opts.RequireUniqueLeaf)
	if err != nil {
		return nil, err
	}
	cols, err := ComputeAxis(AxisColumn, t.Columns.Levels(), false)
	if err != nil {
		return nil, err
	}
	formats, err := ColumnFormats(t, opts.DataFormat, opts.ColumnFormats)
	if err != nil {
		return nil, err
	}

	l := &Layout{Offset: off, Rows: rows, Columns: cols, Formats: formats}
	add := func(ps []Placement, err error) error {
		if err != nil {
			return err
		}
		l.Placements = append(l.Placements, ps...)
		return nil
	}

	if cols.IsMulti() && opts.MergeCells {
		if err := add(PlanMerges(cols, off)); err != nil {
			return nil, err
		}
	}
	if err := add(PlanHeader(t, cols, off, opts.MergeCells, opts.HighlightLast)); err != nil {
		return nil, err
	}
	if rows.IsMulti() {
		if err := add(PlanMerges(rows, off)); err != nil {
			return nil, err
		}
		if err := add(PlanIndexLabels(t, rows, off)); err != nil {
			return nil, err
		}
	} else if err := add(PlanFlatIndex(t, off)); err != nil {
		return nil, err
	}
	if err := add(PlanData(t, off, formats, opts.NullValue, opts.NullAlign)); err != nil {
		return nil, err
	}
	if rows.IsMulti() {
		if err := add(PlanBorders(rows, off, t.ColumnCount())); err != nil {
			return nil, err
		}
	}
	if cols.IsMulti() {
		if err := add(PlanBorders(cols, off, t.RowCount())); err != nil {
			return nil, err
		}
	}
	outline, skipped, err := PlanOutline(t, off, opts.Outline)
	if err != nil {
		return nil, err
	}
	l.Placements = append(l.Placements, outline...)
	l.LeftOutlineSkipped = skipped

	if l.IndexWidths, err = IndexWidths(t); err != nil {
		return nil, err
	}
	if l.DataWidths, err = DataWidths(t, formats, opts); err != nil {
		return nil, err
	}
	return l, nil
}

// IndexWidths sizes each index column to its longest label or name. It
// always measures with WidthAll and ignores Options.Method: index labels are
// the row headers, so every method measures them.
func IndexWidths(t *Table) ([]int, error) {
	content := make([][]string, len(t.RowIndex))
	for i, lvl := range t.RowIndex {
		content[i] = lvl.Labels
	}
	return PlanWidths(t.IndexNames(), content, WidthAll, Wrap{})
}

// DataWidths sizes each data column from its leaf label and the display text
// of its values.
func DataWidths(t *Table, formats []Format, opts Options) ([]int, error) {
	labels := t.Columns.Leaf().Labels
	content := make([][]string, t.ColumnCount())
	for c := range content {
		col := make([]string, t.RowCount())
		for r, v := range t.Column(c) {
			col[r] = DisplayText(v, formats[c], opts.NullValue)
		}
		content[c] = col
	}
	return PlanWidths(labels, content, opts.Method, opts.Wrap())
}
