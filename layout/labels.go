package layout

// PlanFlatIndex writes a single-level row index: one label per row with a
// right edge separating labels from data.
func PlanFlatIndex(t *Table, off GridOffset) ([]Placement, error) {
	if err := off.Validate(); err != nil {
		return nil, err
	}
	if len(t.RowIndex) == 0 {
		return nil, nil
	}
	if len(t.RowIndex) > 1 {
		return nil, newError(ErrShapeMismatch, len(t.RowIndex), "flat index formatter got a multi-level index")
	}

	lvl := t.RowIndex[0]
	ret := make([]Placement, 0, lvl.Len())
	for r, lbl := range lvl.Labels {
		cell, err := off.MapIndex(r, 0)
		if err != nil {
			return nil, err
		}
		ret = append(ret, Placement{
			Kind:  KindWrite,
			Range: CellRange(cell),
			Value: lbl,
			Role:  RoleIndexLabel,
			Edges: EdgeRight,
			Axis:  AxisRow,
		})
	}
	return ret, nil
}

// PlanIndexLabels writes one label per category block at the block's
// top-left cell. The write covers the whole block so that block styling
// (the right edge of the last index column) reaches every merged cell.
func PlanIndexLabels(t *Table, rows *AxisGeometry, off GridOffset) ([]Placement, error) {
	if err := requireMulti(rows); err != nil {
		return nil, err
	}
	if err := off.Validate(); err != nil {
		return nil, err
	}

	ret := make([]Placement, 0)
	last := len(rows.Levels) - 1
	for d, lg := range rows.Levels {
		run := max(lg.RunLength, 1)
		for _, start := range blockStarts(rows.Extent, run) {
			first, err := off.MapIndex(start, d)
			if err != nil {
				return nil, err
			}
			p := Placement{
				Kind:  KindWrite,
				Range: Range{Top: first.Row, Left: first.Col, Bottom: first.Row + run - 1, Right: first.Col},
				Value: t.RowIndex[d].Labels[start],
				Role:  RoleIndexLabel,
				Axis:  AxisRow,
				Level: d,
			}
			if d == last {
				p.Edges = EdgeRight
			}
			ret = append(ret, p)
		}
	}
	return ret, nil
}
