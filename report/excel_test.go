package report

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/soderasen-au/go-common/loggers"
	"github.com/soderasen-au/go-common/util"
	"github.com/xuri/excelize/v2"

	"github.com/soderasen-au/go-hiertable/layout"
)

func salesTable(t *testing.T) *layout.Table {
	t.Helper()
	tbl, err := layout.NewTable([]layout.IndexLevel{
		layout.NewIndexLevel("Region", "North", "North", "North", "South", "South", "South"),
		layout.NewIndexLevel("City", "Oslo", "Bergen", "Tromso", "Rome", "Naples", "Bari"),
	}, layout.FlatColumns("Revenue", "Units"), [][]any{
		{1200.5, 3},
		{800.0, nil},
		{450.25, 1},
		{9000.0, 12},
		{1234567890.0, 7},
		{15.0, 2},
	})
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}
	return tbl
}

func hasBorder(t *testing.T, f *excelize.File, sheet, cell, edge string) bool {
	t.Helper()
	id, err := f.GetCellStyle(sheet, cell)
	if err != nil {
		t.Fatalf("GetCellStyle(%s) error = %v", cell, err)
	}
	style, err := f.GetStyle(id)
	if err != nil {
		t.Fatalf("GetStyle(%d) error = %v", id, err)
	}
	for _, b := range style.Border {
		if b.Type == edge {
			return true
		}
	}
	return false
}

func TestExcelReportPrinter_Render(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	p := NewExcelReportPrinter()
	r := Report{Options: layout.Options{Method: layout.WidthAll, NullValue: "n/a"}}

	rect, widths, l, res := p.Render(f, "Sheet1", salesTable(t), r, Rect{Top: 1, Left: 1}, loggers.CoreDebugLogger)
	if res != nil {
		t.Fatalf("Render() error = %v", res)
	}
	if rect.Top != 1 || rect.Height != 7 || rect.Width != 4 {
		t.Errorf("unexpected rect %+v", rect)
	}
	if len(l.Placements) == 0 {
		t.Errorf("expected placements")
	}

	tests := []struct {
		cell string
		want string
	}{
		{"A1", "Region"},
		{"B1", "City"},
		{"C1", "Revenue"},
		{"D1", "Units"},
		{"A2", "North"},
		{"A5", "South"},
		{"B7", "Bari"},
		{"C2", "1200.5"},
		{"D3", "n/a"},
	}
	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			got, err := f.GetCellValue("Sheet1", tt.cell, excelize.Options{RawCellValue: true})
			if err != nil {
				t.Fatalf("GetCellValue() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}

	merges, err := f.GetMergeCells("Sheet1")
	if err != nil {
		t.Fatalf("GetMergeCells() error = %v", err)
	}
	if len(merges) != 2 {
		t.Fatalf("expected 2 merged ranges, got %d", len(merges))
	}
	found := map[string]string{}
	for _, m := range merges {
		found[m.GetStartAxis()] = m.GetEndAxis()
	}
	if found["A2"] != "A4" || found["A5"] != "A7" {
		t.Errorf("unexpected merged ranges %v", found)
	}

	if !hasBorder(t, f, "Sheet1", "C5", "top") {
		t.Errorf("expected a top border on the first row of the second region")
	}
	if !hasBorder(t, f, "Sheet1", "A8", "top") {
		t.Errorf("expected a closing border below the table")
	}
	if !hasBorder(t, f, "Sheet1", "B1", "right") || !hasBorder(t, f, "Sheet1", "B1", "bottom") {
		t.Errorf("expected bottom and right borders on the last index name")
	}

	want := []int{7, 7, 11, 6}
	if len(widths) != len(want) {
		t.Fatalf("expected %d widths, got %v", len(want), widths)
	}
	for i := range want {
		if widths[i] != want[i] {
			t.Errorf("width %d: expected %d, got %d", i, want[i], widths[i])
		}
	}
}

func TestExcelReportPrinter_RenderOffset(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	p := NewExcelReportPrinter()
	r := Report{Options: layout.Options{HeaderOffset: 1, ColumnOffset: 1, Outline: layout.Outline{Left: true, Right: true}}}

	rect, widths, _, res := p.Render(f, "Sheet1", salesTable(t), r, Rect{Top: 1, Left: 1}, loggers.CoreDebugLogger)
	if res != nil {
		t.Fatalf("Render() error = %v", res)
	}
	if rect.Top != 2 || rect.Left != 2 {
		t.Errorf("unexpected rect %+v", rect)
	}
	if widths[0] != 0 {
		t.Errorf("margin column should have no width, got %d", widths[0])
	}
	if got, _ := f.GetCellValue("Sheet1", "B2"); got != "Region" {
		t.Errorf("expected Region at B2, got %s", got)
	}
	if !hasBorder(t, f, "Sheet1", "A4", "right") {
		t.Errorf("expected left outline on column A")
	}
	if !hasBorder(t, f, "Sheet1", "F4", "left") {
		t.Errorf("expected right outline on column F")
	}
}

func TestExcelReportPrinter_Print(t *testing.T) {
	dir := t.TempDir()
	plan := filepath.Join(dir, "sales-plan.csv")
	r := Report{
		Name:         util.Ptr("sales"),
		OutputFolder: util.Ptr(dir),
		PlanFile:     util.Ptr(plan),
		Title:        &Title{Text: "Sales by city", Align: "center"},
		Logger:       loggers.CoreDebugLogger,
		Options:      layout.Options{Method: layout.WidthAll, ColumnFormats: map[string]layout.Format{"Revenue": layout.FormatDollarCents}},
		ColumnWidths: map[string]float64{"Units": 20},
	}

	p := NewExcelReportPrinter()
	if res := p.Print(r, salesTable(t), salesTable(t)); res != nil {
		t.Fatalf("Print() error = %v", res)
	}

	rr, res := p.GetReportResult(util.MaybeNil(p.R.ID))
	if res != nil {
		t.Fatalf("GetReportResult() error = %v", res)
	}
	if rr.Tables != 2 || rr.PrintedRows != 12 {
		t.Errorf("unexpected result %+v", rr)
	}
	if ok, _ := util.Exists(plan); !ok {
		t.Errorf("expected plan file %s", plan)
	}

	f, err := excelize.OpenFile(util.MaybeNil(rr.ReportFile))
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	defer f.Close()

	for _, name := range f.GetSheetList() {
		if name == "Sheet1" {
			t.Errorf("default sheet should be removed")
		}
	}
	tests := []struct {
		cell string
		want string
	}{
		{"A1", "Sales by city"},
		{"A3", "Region"},
		{"A4", "North"},
		{"A13", "Region"},
		{"B19", "Bari"},
	}
	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			got, err := f.GetCellValue("sales", tt.cell)
			if err != nil {
				t.Fatalf("GetCellValue() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}

	// "$1,234,567,890.00" plus margin
	if w, _ := f.GetColWidth("sales", "C"); w != 18 {
		t.Errorf("expected width 18 for column C, got %v", w)
	}
	if w, _ := f.GetColWidth("sales", "D"); w != 20 {
		t.Errorf("expected explicit width 20 for column D, got %v", w)
	}
}

func TestExcelReportPrinter_PrintInvalid(t *testing.T) {
	p := NewExcelReportPrinter()
	r := Report{
		OutputFolder: util.Ptr(t.TempDir()),
		Logger:       loggers.CoreDebugLogger,
		Options:      layout.Options{ColumnFormats: map[string]layout.Format{"Profit": layout.FormatNumeric}},
	}
	if res := p.Print(r, salesTable(t)); res == nil {
		t.Errorf("expected error for unknown column")
	}

	r = Report{OutputFolder: util.Ptr(t.TempDir()), Logger: loggers.CoreDebugLogger, HeaderBgColor: "not-a-color"}
	if res := p.Print(r, salesTable(t)); res == nil {
		t.Errorf("expected error for invalid color")
	}
}

func TestExcelReportPrinter_PrintUnknownColumnWidth(t *testing.T) {
	dir := t.TempDir()
	r := Report{
		Name:         util.Ptr("widths"),
		OutputFolder: util.Ptr(dir),
		Logger:       loggers.CoreDebugLogger,
		ColumnWidths: map[string]float64{"Units": 12, "NoSuchColumn": 20},
	}

	if err := checkColumnWidths(r, []*layout.Table{salesTable(t)}); !errors.Is(err, layout.ErrColumnNotFound) {
		t.Errorf("expected ColumnNotFound, got %v", err)
	}

	p := NewExcelReportPrinter()
	if res := p.Print(r, salesTable(t)); res == nil {
		t.Fatalf("expected error for unknown column width")
	}
	if ok, _ := util.Exists(filepath.Join(dir, "widths.xlsx")); ok {
		t.Errorf("no workbook should be saved")
	}

	// a name held by any one of the stacked tables is fine
	other, err := layout.NewTable([]layout.IndexLevel{layout.NewIndexLevel("Region", "North")},
		layout.FlatColumns("Profit"), [][]any{{1.0}})
	if err != nil {
		t.Fatal(err)
	}
	r.ColumnWidths = map[string]float64{"Units": 12, "Profit": 20}
	if err := checkColumnWidths(r, []*layout.Table{salesTable(t), other}); err != nil {
		t.Errorf("checkColumnWidths() error = %v", err)
	}
}
