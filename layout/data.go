package layout

// ColumnFormats resolves the per-column format tags. Every column starts with
// def; named overrides replace it. An unknown column name is an error.
func ColumnFormats(t *Table, def Format, byName map[string]Format) ([]Format, error) {
	if _, err := ParseFormat(string(def)); err != nil {
		return nil, err
	}
	ret := make([]Format, t.ColumnCount())
	for i := range ret {
		ret[i] = def
	}
	for name, f := range byName {
		if _, err := ParseFormat(string(f)); err != nil {
			return nil, err
		}
		pos, err := t.ColumnPosition(name)
		if err != nil {
			return nil, err
		}
		ret[pos] = f
	}
	return ret, nil
}

// PlanData writes every value of the matrix. Nil values become null, aligned
// with nullAlign.
func PlanData(t *Table, off GridOffset, formats []Format, null string, nullAlign Align) ([]Placement, error) {
	if err := off.Validate(); err != nil {
		return nil, err
	}
	if len(formats) != t.ColumnCount() {
		return nil, newError(ErrShapeMismatch, len(formats), "%d formats for %d columns", len(formats), t.ColumnCount())
	}

	ret := make([]Placement, 0, t.RowCount()*t.ColumnCount())
	for r, row := range t.Values {
		for c, v := range row {
			cell, err := off.Map(r, c)
			if err != nil {
				return nil, err
			}
			p := Placement{
				Kind:   KindWrite,
				Range:  CellRange(cell),
				Value:  v,
				Role:   RoleData,
				Format: formats[c],
			}
			if v == nil {
				p.Value = null
				p.Align = nullAlign
			}
			ret = append(ret, p)
		}
	}
	return ret, nil
}

// Outline selects the edges drawn around the whole table.
type Outline struct {
	Bottom bool `json:"bottom" yaml:"bottom"`
	Right  bool `json:"right" yaml:"right"`
	Left   bool `json:"left" yaml:"left"`
}

// PlanOutline draws the requested outline on the cells adjacent to the
// table: a top edge on the row below, a left edge on the column after and a
// right edge on the column before. The left edge needs a column before the
// table and is skipped when ColumnOffset is zero; skipped reports that.
func PlanOutline(t *Table, off GridOffset, o Outline) (ret []Placement, skipped bool, err error) {
	if err := off.Validate(); err != nil {
		return nil, false, err
	}

	bottom := off.Bottom(t.RowCount())
	right := off.Right(t.ColumnCount())
	if o.Bottom && right > off.ColumnOffset {
		ret = append(ret, Placement{
			Kind:  KindBorder,
			Range: Range{Top: bottom, Left: off.ColumnOffset, Bottom: bottom, Right: right - 1},
			Role:  RoleBoundary,
			Edges: EdgeTop,
			Level: -1,
		})
	}
	if o.Right && bottom > off.RowOffset {
		ret = append(ret, Placement{
			Kind:  KindBorder,
			Range: Range{Top: off.RowOffset, Left: right, Bottom: bottom - 1, Right: right},
			Role:  RoleBoundary,
			Edges: EdgeLeft,
			Axis:  AxisColumn,
			Level: -1,
		})
	}
	if o.Left && bottom > off.RowOffset {
		if off.ColumnOffset == 0 {
			skipped = true
		} else {
			col := off.ColumnOffset - 1
			ret = append(ret, Placement{
				Kind:  KindBorder,
				Range: Range{Top: off.RowOffset, Left: col, Bottom: bottom - 1, Right: col},
				Role:  RoleBoundary,
				Edges: EdgeRight,
				Axis:  AxisColumn,
				Level: -1,
			})
		}
	}
	return ret, skipped, nil
}
