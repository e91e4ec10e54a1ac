package layout

// blockStarts returns the first position of every block of size run.
func blockStarts(extent, run int) []int {
	if run <= 0 {
		return nil
	}
	starts := make([]int, 0, extent/run)
	for i := 0; i < extent; i += run {
		starts = append(starts, i)
	}
	return starts
}

func requireMulti(g *AxisGeometry) error {
	if g == nil || !g.IsMulti() {
		depth := 0
		axis := AxisRow
		if g != nil {
			depth = g.Depth()
			axis = g.Axis
		}
		return newError(ErrNotMultiIndex, depth, "%s axis has a single level, use the flat index formatter", axis)
	}
	return nil
}

// PlanMerges emits one merge range per category block for every level whose
// run length exceeds one. Row-axis blocks span rows in the level's index
// column; column-axis blocks span columns in the level's header row.
func PlanMerges(g *AxisGeometry, off GridOffset) ([]Placement, error) {
	if err := requireMulti(g); err != nil {
		return nil, err
	}
	if err := off.Validate(); err != nil {
		return nil, err
	}

	ret := make([]Placement, 0)
	for d, lvl := range g.Levels {
		if lvl.RunLength <= 1 {
			continue
		}
		for _, start := range blockStarts(g.Extent, lvl.RunLength) {
			end := start + lvl.RunLength - 1
			var first, last Cell
			var err error
			if g.Axis == AxisRow {
				if first, err = off.MapIndex(start, d); err != nil {
					return nil, err
				}
				if last, err = off.MapIndex(end, d); err != nil {
					return nil, err
				}
			} else {
				if first, err = off.MapHeader(d, start); err != nil {
					return nil, err
				}
				if last, err = off.MapHeader(d, end); err != nil {
					return nil, err
				}
			}
			ret = append(ret, Placement{
				Kind:  KindMerge,
				Range: Range{Top: first.Row, Left: first.Col, Bottom: last.Row, Right: last.Col},
				Value: Placeholder,
				Role:  RolePlaceholder,
				Axis:  g.Axis,
				Level: d,
			})
		}
	}
	return ret, nil
}

// PlanBorders marks the end of every category block. The edge is drawn on
// the cell after the block (top edge of the next row, left edge of the next
// column) so that cells already holding data keep their own style. The
// outermost level's line crosses the whole table; inner levels only cross
// their own label columns (or header rows).
//
// cross is the data extent of the other axis: column count for the row axis,
// row count for the column axis.
func PlanBorders(g *AxisGeometry, off GridOffset, cross int) ([]Placement, error) {
	if err := requireMulti(g); err != nil {
		return nil, err
	}
	if err := off.Validate(); err != nil {
		return nil, err
	}

	ret := make([]Placement, 0)
	for d, lvl := range g.Levels {
		if lvl.RunLength <= 1 {
			continue
		}
		for _, start := range blockStarts(g.Extent, lvl.RunLength) {
			next := start + lvl.RunLength
			var rng Range
			var edge Edges
			if g.Axis == AxisRow {
				row := off.RowOffset + off.HeaderRows + next
				left := off.ColumnOffset + d
				right := off.ColumnOffset + max(off.IndexColumns, d+1) - 1
				if d == 0 {
					right = off.Right(cross) - 1
				}
				rng = Range{Top: row, Left: left, Bottom: row, Right: right}
				edge = EdgeTop
			} else {
				col := off.ColumnOffset + off.IndexColumns + next
				top := off.RowOffset + d
				bottom := off.RowOffset + max(off.HeaderRows, d+1) - 1
				if d == 0 {
					bottom = off.Bottom(cross) - 1
				}
				rng = Range{Top: top, Left: col, Bottom: bottom, Right: col}
				edge = EdgeLeft
			}
			ret = append(ret, Placement{
				Kind:  KindBorder,
				Range: rng,
				Role:  RoleBoundary,
				Edges: edge,
				Axis:  g.Axis,
				Level: d,
			})
		}
	}
	return ret, nil
}
