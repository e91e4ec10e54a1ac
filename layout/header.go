package layout

// PlanHeader writes column labels and row-index names.
//
// Column level d goes to header row d. With merge set, an outer label is
// written once at the top-left of its block (the block itself is merged by
// PlanMerges); otherwise it is repeated over every column of the block. Leaf
// labels carry a bottom edge and, with highlightLast, the last one is tagged
// for highlighting.
//
// Index names go to the last header row, one per index column; the last name
// carries a right edge.
func PlanHeader(t *Table, cols *AxisGeometry, off GridOffset, merge, highlightLast bool) ([]Placement, error) {
	if err := off.Validate(); err != nil {
		return nil, err
	}

	ret := make([]Placement, 0)
	levels := t.Columns.Levels()
	for d, lvl := range levels {
		leaf := d == len(levels)-1
		run := 1
		if merge && !leaf && cols != nil && d < len(cols.Levels) {
			run = max(cols.Levels[d].RunLength, 1)
		}
		for _, start := range blockStarts(lvl.Len(), run) {
			cell, err := off.MapHeader(d, start)
			if err != nil {
				return nil, err
			}
			p := Placement{
				Kind:  KindWrite,
				Range: CellRange(cell),
				Value: lvl.Labels[start],
				Role:  RoleHeader,
				Axis:  AxisColumn,
				Level: d,
			}
			if run > 1 {
				p.Range.Right = cell.Col + run - 1
				p.Align = AlignCenter
			}
			if leaf {
				p.Edges = EdgeBottom
				if highlightLast && start == lvl.Len()-1 {
					p.Role = RoleHeaderHighlight
				}
			}
			ret = append(ret, p)
		}
	}

	if off.HeaderRows == 0 {
		return ret, nil
	}
	row := off.RowOffset + off.HeaderRows - 1
	for d, lvl := range t.RowIndex {
		p := Placement{
			Kind:  KindWrite,
			Range: CellRange(Cell{Row: row, Col: off.ColumnOffset + d}),
			Value: lvl.Name,
			Role:  RoleIndexName,
			Edges: EdgeBottom,
			Axis:  AxisRow,
			Level: d,
		}
		if d == len(t.RowIndex)-1 {
			p.Edges |= EdgeRight
		}
		ret = append(ret, p)
	}
	return ret, nil
}
