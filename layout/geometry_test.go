package layout

import (
	"errors"
	"testing"
)

func regionCity() []IndexLevel {
	return []IndexLevel{
		NewIndexLevel("Region", "North", "North", "North", "South", "South", "South"),
		NewIndexLevel("City", "Oslo", "Bergen", "Tromso", "Rome", "Naples", "Bari"),
	}
}

func TestComputeAxis(t *testing.T) {
	g, err := ComputeAxis(AxisRow, regionCity(), false)
	if err != nil {
		t.Fatalf("ComputeAxis() error = %v", err)
	}
	tests := []struct {
		name     string
		got      LevelGeometry
		cats     int
		run      int
		runs     int
		perBlock int
	}{
		{"Region", g.Levels[0], 2, 3, 2, 2},
		{"City", g.Levels[1], 6, 1, 6, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got.CategoryCount != tt.cats {
				t.Errorf("CategoryCount got %d, want %d", tt.got.CategoryCount, tt.cats)
			}
			if tt.got.RunLength != tt.run {
				t.Errorf("RunLength got %d, want %d", tt.got.RunLength, tt.run)
			}
			if tt.got.Runs != tt.runs {
				t.Errorf("Runs got %d, want %d", tt.got.Runs, tt.runs)
			}
			if tt.got.CategoriesPerParent != tt.perBlock {
				t.Errorf("CategoriesPerParent got %d, want %d", tt.got.CategoriesPerParent, tt.perBlock)
			}
			if tt.got.RunLength*tt.got.Runs != tt.got.Extent {
				t.Errorf("RunLength*Runs = %d, extent %d", tt.got.RunLength*tt.got.Runs, tt.got.Extent)
			}
		})
	}
	if !g.TerminalUnique() {
		t.Errorf("expected unique terminal level")
	}
}

func TestComputeAxisRepeatedInner(t *testing.T) {
	levels := []IndexLevel{
		NewIndexLevel("Year", "2023", "2023", "2023", "2023", "2024", "2024", "2024", "2024"),
		NewIndexLevel("Half", "H1", "H1", "H2", "H2", "H1", "H1", "H2", "H2"),
		NewIndexLevel("Quarter", "Q1", "Q2", "Q3", "Q4", "Q1", "Q2", "Q3", "Q4"),
	}
	g, err := ComputeAxis(AxisRow, levels, true)
	if err != nil {
		t.Fatalf("ComputeAxis() error = %v", err)
	}
	want := []int{4, 2, 1}
	for d, lg := range g.Levels {
		if lg.RunLength != want[d] {
			t.Errorf("level %d RunLength got %d, want %d", d, lg.RunLength, want[d])
		}
		if d == 0 && lg.CategoryCount*lg.RunLength != lg.Extent {
			t.Errorf("level %d: CategoryCount*RunLength = %d, extent %d", d, lg.CategoryCount*lg.RunLength, lg.Extent)
		}
	}
	if g.Levels[1].CategoryCount != 2 || g.Levels[1].Runs != 4 {
		t.Errorf("Half got categories=%d runs=%d, want 2 and 4", g.Levels[1].CategoryCount, g.Levels[1].Runs)
	}
}

func TestComputeAxisErrors(t *testing.T) {
	tests := []struct {
		name   string
		levels []IndexLevel
		unique bool
		want   ErrorKind
	}{
		{
			name: "EightRowsThreeCategories",
			levels: []IndexLevel{
				NewIndexLevel("Outer", "A", "A", "A", "B", "B", "B", "C", "C"),
				NewIndexLevel("Inner", "1", "2", "3", "1", "2", "3", "1", "2"),
			},
			want: ErrImbalancedHierarchy,
		},
		{
			name: "UnevenRuns",
			levels: []IndexLevel{
				NewIndexLevel("Outer", "A", "A", "A", "B"),
				NewIndexLevel("Inner", "1", "2", "3", "1"),
			},
			want: ErrImbalancedHierarchy,
		},
		{
			name: "Interleaved",
			levels: []IndexLevel{
				NewIndexLevel("Outer", "A", "B", "A", "B"),
				NewIndexLevel("Inner", "1", "1", "2", "2"),
			},
			want: ErrImbalancedHierarchy,
		},
		{
			name: "DifferentInnerSequences",
			levels: []IndexLevel{
				NewIndexLevel("Year", "2023", "2023", "2023", "2023", "2024", "2024", "2024", "2024"),
				NewIndexLevel("Half", "H1", "H1", "H2", "H2", "H1", "H1", "H2", "H2"),
				NewIndexLevel("Month", "Jan", "Feb", "Jul", "Aug", "Mar", "Apr", "Sep", "Oct"),
			},
			want: ErrImbalancedHierarchy,
		},
		{
			name: "LeafNotUnique",
			levels: []IndexLevel{
				NewIndexLevel("Outer", "A", "A", "A", "A"),
				NewIndexLevel("Inner", "1", "1", "2", "2"),
			},
			unique: true,
			want:   ErrTerminalLevelNotUnique,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ComputeAxis(AxisRow, tt.levels, tt.unique)
			if err == nil {
				t.Fatalf("expected %s, got geometry %+v", tt.want, g)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %s, got %v", tt.want, err)
			}
			if g != nil {
				t.Errorf("expected nil geometry on error")
			}
		})
	}
}

func TestComputeGeometryOuterImbalanced(t *testing.T) {
	lvl := NewIndexLevel("Outer", "A", "A", "A", "B", "B", "B", "C", "C")
	if _, err := ComputeGeometry(lvl, nil); !errors.Is(err, ErrImbalancedHierarchy) {
		t.Errorf("expected ImbalancedHierarchy, got %v", err)
	}
}

func TestComputeAxisFlat(t *testing.T) {
	g, err := ComputeAxis(AxisColumn, []IndexLevel{NewIndexLevel("", "A", "B", "A")}, true)
	if err != nil {
		t.Fatalf("ComputeAxis() error = %v", err)
	}
	if g.IsMulti() {
		t.Errorf("expected flat axis")
	}
	if lg := g.Terminal(); lg.RunLength != 1 || lg.Runs != 3 || lg.CategoryCount != 2 {
		t.Errorf("got %+v", lg)
	}

	rows := NewIndexLevel("Region", "N", "N", "N", "S", "S", "S", "E", "E")
	g, err = ComputeAxis(AxisRow, []IndexLevel{rows}, false)
	if err != nil {
		t.Fatalf("flat row index with uneven repeats: error = %v", err)
	}
	if lg := g.Terminal(); lg.RunLength != 1 || lg.Runs != 8 || lg.CategoryCount != 3 {
		t.Errorf("got %+v", lg)
	}
}
