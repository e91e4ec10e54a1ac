package layout

import (
	"errors"
	"testing"
)

func TestPlanMergesRegionCity(t *testing.T) {
	g, err := ComputeAxis(AxisRow, regionCity(), false)
	if err != nil {
		t.Fatalf("ComputeAxis() error = %v", err)
	}
	merges, err := PlanMerges(g, GridOffset{IndexColumns: 2})
	if err != nil {
		t.Fatalf("PlanMerges() error = %v", err)
	}
	want := []Range{
		{Top: 0, Left: 0, Bottom: 2, Right: 0},
		{Top: 3, Left: 0, Bottom: 5, Right: 0},
	}
	if len(merges) != len(want) {
		t.Fatalf("expected %d merges, got %d: %v", len(want), len(merges), merges)
	}
	for i, m := range merges {
		if m.Range != want[i] {
			t.Errorf("merge %d got %s, want %s", i, m.Range, want[i])
		}
		if m.Kind != KindMerge || m.Value != Placeholder || m.Level != 0 {
			t.Errorf("merge %d got %s", i, m)
		}
	}
}

func TestPlanMergesDoNotOverlap(t *testing.T) {
	levels := []IndexLevel{
		NewIndexLevel("Year", "2023", "2023", "2023", "2023", "2024", "2024", "2024", "2024"),
		NewIndexLevel("Half", "H1", "H1", "H2", "H2", "H1", "H1", "H2", "H2"),
		NewIndexLevel("Quarter", "Q1", "Q2", "Q3", "Q4", "Q1", "Q2", "Q3", "Q4"),
	}
	g, err := ComputeAxis(AxisRow, levels, false)
	if err != nil {
		t.Fatalf("ComputeAxis() error = %v", err)
	}
	merges, err := PlanMerges(g, GridOffset{HeaderRows: 1, IndexColumns: 3, RowOffset: 2, ColumnOffset: 1})
	if err != nil {
		t.Fatalf("PlanMerges() error = %v", err)
	}
	if len(merges) != 2+4 {
		t.Errorf("expected 6 merges, got %d", len(merges))
	}

	covered := make(map[int]map[int]int)
	for i, a := range merges {
		for j, b := range merges {
			if i != j && a.Level == b.Level && a.Range.Overlaps(b.Range) {
				t.Errorf("%s overlaps %s", a, b)
			}
		}
		col := covered[a.Level]
		if col == nil {
			col = make(map[int]int)
			covered[a.Level] = col
		}
		for r := a.Range.Top; r <= a.Range.Bottom; r++ {
			col[r]++
		}
	}
	for lvl, rows := range covered {
		if len(rows) != 8 {
			t.Errorf("level %d covers %d rows, want 8", lvl, len(rows))
		}
	}
}

func TestPlanMergesColumns(t *testing.T) {
	cols, err := TwoLevelColumns(
		NewIndexLevel("", "2023", "2023", "2024", "2024"),
		NewIndexLevel("", "Q1", "Q2", "Q1", "Q2"),
	)
	if err != nil {
		t.Fatalf("TwoLevelColumns() error = %v", err)
	}
	g, err := ComputeAxis(AxisColumn, cols.Levels(), false)
	if err != nil {
		t.Fatalf("ComputeAxis() error = %v", err)
	}
	merges, err := PlanMerges(g, GridOffset{HeaderRows: 2, IndexColumns: 1})
	if err != nil {
		t.Fatalf("PlanMerges() error = %v", err)
	}
	want := []Range{{0, 1, 0, 2}, {0, 3, 0, 4}}
	if len(merges) != len(want) {
		t.Fatalf("expected %d merges, got %d", len(want), len(merges))
	}
	for i, m := range merges {
		if m.Range != want[i] {
			t.Errorf("merge %d got %s, want %s", i, m.Range, want[i])
		}
	}
}

func TestPlanMergesNotMulti(t *testing.T) {
	g, _ := ComputeAxis(AxisRow, []IndexLevel{NewIndexLevel("Region", "A", "B")}, false)
	if _, err := PlanMerges(g, GridOffset{}); !errors.Is(err, ErrNotMultiIndex) {
		t.Errorf("expected NotMultiIndex, got %v", err)
	}
	if _, err := PlanBorders(nil, GridOffset{}, 1); !errors.Is(err, ErrNotMultiIndex) {
		t.Errorf("expected NotMultiIndex, got %v", err)
	}
}

func TestPlanBordersRegionCity(t *testing.T) {
	g, _ := ComputeAxis(AxisRow, regionCity(), false)
	off := GridOffset{HeaderRows: 1, IndexColumns: 2, ColumnOffset: 1}
	borders, err := PlanBorders(g, off, 3)
	if err != nil {
		t.Fatalf("PlanBorders() error = %v", err)
	}
	// one line after each Region block, spanning index and data columns
	want := []Range{{4, 1, 4, 5}, {7, 1, 7, 5}}
	if len(borders) != len(want) {
		t.Fatalf("expected %d borders, got %d", len(want), len(borders))
	}
	for i, b := range borders {
		if b.Range != want[i] || b.Edges != EdgeTop {
			t.Errorf("border %d got %s", i, b)
		}
	}
}
