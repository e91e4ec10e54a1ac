package report

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/soderasen-au/go-common/util"
	"github.com/xuri/excelize/v2"

	"github.com/soderasen-au/go-hiertable/layout"
)

const (
	ROW_LIMIT_PER_SHEET int = 1048576

	// default row height, multiplied by wrap_rows for wrapped headers
	ROW_HEIGHT float64 = 15
)

// Rect is a 1-based sheet area, the way excelize counts rows and columns.
type Rect struct {
	Top    int `json:"top" yaml:"top"`
	Left   int `json:"left" yaml:"left"`
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

type ExcelReportPrinter struct {
	ReportPrinterBase
}

func NewExcelReportPrinter() *ExcelReportPrinter {
	p := &ExcelReportPrinter{}
	p.ReportResults = make(map[string]*ReportResult)
	return p
}

func (p *ExcelReportPrinter) CheckRowsLimit(r Report, printed int, t *layout.Table) *util.Result {
	rows := printed + r.Options.HeaderRows(t.Columns) + t.RowCount()
	if rows > ROW_LIMIT_PER_SHEET {
		errRes := fmt.Errorf("table rows(%d), printed rows(%d). exceeding excel sheet limit(%d)", t.RowCount(), printed, ROW_LIMIT_PER_SHEET)
		return util.Error("ValidateDataCells", errRes)
	}
	return nil
}

func (p *ExcelReportPrinter) printTitle(r Report, f *excelize.File, sheet string, rect Rect, width int, _logger *zerolog.Logger) (*Rect, *util.Result) {
	resRect := rect
	resRect.Height = 0
	resRect.Width = 0
	if r.Title == nil || r.Title.Text == "" {
		return &resRect, nil
	}
	logger := _logger.With().Str("print", "title").Logger()

	titleCellName, err := excelize.CoordinatesToCellName(rect.Left, rect.Top)
	if err != nil {
		return nil, util.LogError(&logger, "CoordinatesToCellName", err)
	}
	logger.Debug().Msgf("print cell %s: %s", titleCellName, r.Title.Text)
	if err := f.SetCellStr(sheet, titleCellName, r.Title.Text); err != nil {
		return nil, util.LogError(&logger, "SetCellStr", err)
	}

	titleStyle := &excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: r.Title.FontSize,
		},
	}
	fontColor, res := ParseColor(r.Title.FontColor)
	if res != nil {
		return nil, res.LogWith(&logger, "ParseColor(FontColor)")
	}
	bgColor, res := ParseColor(r.Title.BgColor)
	if res != nil {
		return nil, res.LogWith(&logger, "ParseColor(BgColor)")
	}
	assignColors(titleStyle, bgColor, fontColor)

	endCellName := titleCellName
	if align, _ := layout.ParseAlign(r.Title.Align); align != layout.AlignNone {
		titleStyle.Alignment = &excelize.Alignment{Horizontal: string(align)}
		if width > 1 {
			endCellName, err = excelize.CoordinatesToCellName(rect.Left+width-1, rect.Top)
			if err != nil {
				return nil, util.LogError(&logger, "CoordinatesToCellName", err)
			}
			logger.Debug().Msgf("merge cells %s:%s", titleCellName, endCellName)
			if err := f.MergeCell(sheet, titleCellName, endCellName); err != nil {
				return nil, util.LogError(&logger, "MergeCell", err)
			}
		}
	}

	styleId, err := f.NewStyle(titleStyle)
	if err != nil {
		return nil, util.LogError(&logger, "NewStyle", err)
	}
	if err := f.SetCellStyle(sheet, titleCellName, endCellName, styleId); err != nil {
		return nil, util.LogError(&logger, "SetCellStyle", err)
	}

	resRect.Height = 1
	resRect.Width = util.Max(1, width)
	return &resRect, nil
}

// Render lays out one table with its top-left margin at rect.Top, rect.Left.
// The returned rect covers header, index and data cells; the widths are
// per sheet column, zero-based, 0 where the table has no column.
func (p *ExcelReportPrinter) Render(f *excelize.File, sheet string, t *layout.Table, r Report, rect Rect, _logger *zerolog.Logger) (*Rect, []int, *layout.Layout, *util.Result) {
	if f == nil {
		return nil, nil, nil, util.MsgError("Render", "nil excel")
	}
	logger := _logger.With().Str("print", "table").Logger()

	opts := r.Options
	opts.HeaderOffset += rect.Top - 1
	opts.ColumnOffset += rect.Left - 1
	l, err := layout.Plan(t, opts)
	if err != nil {
		return nil, nil, nil, util.LogError(&logger, "Plan", err)
	}
	if l.Rows.IsMulti() && !l.Rows.TerminalUnique() {
		logger.Warn().Msgf("innermost row level `%s` spans %d rows per category", l.Rows.Terminal().Name, l.Rows.Terminal().RunLength)
	}
	if l.LeftOutlineSkipped {
		logger.Warn().Msg("table starts at the first column, left border skipped")
	}
	logger.Info().Msgf("table %dx%d at (%d, %d): %d placements", t.RowCount(), t.ColumnCount(), l.Offset.RowOffset, l.Offset.ColumnOffset, len(l.Placements))

	palette, res := NewPalette(r)
	if res != nil {
		return nil, nil, nil, res.LogWith(&logger, "NewPalette")
	}
	styler := NewExcelStyler(f, sheet, *palette, opts.TextWrap, &logger)
	for _, pl := range l.Placements {
		if res := styler.Apply(pl); res != nil {
			return nil, nil, nil, res.With("Apply")
		}
	}
	logger.Debug().Msgf("%d styles", styler.Styles())

	if opts.TextWrap && opts.WrapRows > 1 && l.Offset.HeaderRows > 0 {
		row := l.Offset.RowOffset + l.Offset.HeaderRows
		if err := f.SetRowHeight(sheet, row, ROW_HEIGHT*float64(opts.WrapRows)); err != nil {
			return nil, nil, nil, util.LogError(&logger, "SetRowHeight", err)
		}
	}

	widths := make([]int, l.Offset.ColumnOffset, l.Offset.ColumnOffset+len(l.IndexWidths)+len(l.DataWidths))
	widths = append(widths, l.Widths()...)

	resRect := Rect{
		Top:    l.Offset.RowOffset + 1,
		Left:   l.Offset.ColumnOffset + 1,
		Width:  l.Offset.IndexColumns + t.ColumnCount(),
		Height: l.Offset.HeaderRows + t.RowCount(),
	}
	return &resRect, widths, l, nil
}

// applyWidths only ever widens a column, so an appended report keeps the
// widths of what is already on the sheet.
func (p *ExcelReportPrinter) applyWidths(f *excelize.File, sheet string, widths []int, _logger *zerolog.Logger) *util.Result {
	for ci, w := range widths {
		if w <= 0 {
			continue
		}
		colName, err := excelize.ColumnNumberToName(ci + 1)
		if err != nil {
			return util.LogError(_logger, "ColumnNumberToName", err)
		}
		cur, err := f.GetColWidth(sheet, colName)
		if err != nil {
			return util.LogError(_logger, "GetColWidth", err)
		}
		if cur < float64(w) {
			_logger.Debug().Msgf("column %s width %v => %d", colName, cur, w)
			if err := f.SetColWidth(sheet, colName, colName, float64(w)); err != nil {
				return util.LogError(_logger, "SetColWidth", err)
			}
		}
	}
	return nil
}

// applyColumnWidths sets explicit widths by data column label; these win
// over computed ones. Names were checked by checkColumnWidths, so a miss
// here only means another stacked table holds the column.
func (p *ExcelReportPrinter) applyColumnWidths(f *excelize.File, sheet string, r Report, t *layout.Table, l *layout.Layout, _logger *zerolog.Logger) *util.Result {
	for name, w := range r.ColumnWidths {
		pos, err := t.ColumnPosition(name)
		if err != nil {
			_logger.Debug().Msgf("column `%s` not in this table", name)
			continue
		}
		colName, err := excelize.ColumnNumberToName(l.Offset.ColumnOffset + l.Offset.IndexColumns + pos + 1)
		if err != nil {
			return util.LogError(_logger, "ColumnNumberToName", err)
		}
		if err := f.SetColWidth(sheet, colName, colName, w); err != nil {
			return util.LogError(_logger, "SetColWidth", err)
		}
	}
	return nil
}

func (p *ExcelReportPrinter) openFile(r Report, rResult *ReportResult, logger *zerolog.Logger) (*excelize.File, *util.Result) {
	if !r.IsSub {
		logger.Info().Msgf("create new excel file %s for this report", *rResult.ReportFile)
		return excelize.NewFile(), nil
	}

	logger.Info().Msgf("this is sub report, try to open existing one")
	ok, err := util.Exists(*rResult.ReportFile)
	if err != nil {
		logger.Err(err).Msgf("couldn't check file: %s", *rResult.ReportFile)
		return nil, util.Error("Exists", err)
	}
	if !ok {
		logger.Info().Msgf("%s doesn't exist, create new excel file for this sub report", *rResult.ReportFile)
		return excelize.NewFile(), nil
	}
	logger.Info().Msgf("%s exists, appending sub report to it", *rResult.ReportFile)
	f, err := excelize.OpenFile(*rResult.ReportFile)
	if err != nil {
		logger.Err(err).Msgf("couldn't open existing report: %s", *rResult.ReportFile)
		return nil, util.Error("OpenExcelFile", err)
	}
	return f, nil
}

// checkColumnWidths fails when a column_widths name matches no table.
func checkColumnWidths(r Report, tables []*layout.Table) error {
	for name := range r.ColumnWidths {
		var err error
		for _, t := range tables {
			if _, err = t.ColumnPosition(name); err == nil {
				break
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// PrintTo renders the tables onto sheet of f, stacked top to bottom with
// TABLE_GAP blank rows between them, and returns every placement applied.
func (p *ExcelReportPrinter) PrintTo(f *excelize.File, sheet string, r Report, rResult *ReportResult, tables []*layout.Table, logger *zerolog.Logger) ([]layout.Placement, *util.Result) {
	if err := checkColumnWidths(r, tables); err != nil {
		return nil, util.LogError(logger, "ColumnWidths", err)
	}

	rect := Rect{Top: 1, Left: 1}
	if rows, err := f.GetRows(sheet); err == nil && len(rows) > 0 {
		rect.Top = len(rows) + 1 + TABLE_GAP
	}

	titleWidth := 0
	for _, t := range tables {
		titleWidth = util.Max(titleWidth, t.IndexColumns()+t.ColumnCount())
	}
	titleRect, res := p.printTitle(r, f, sheet, Rect{Top: rect.Top, Left: rect.Left + r.ColumnOffset}, titleWidth, logger)
	if res != nil {
		return nil, res.With("printTitle")
	}
	if titleRect.Height > 0 {
		rect.Top = titleRect.Top + titleRect.Height + 1
	}

	placements := make([]layout.Placement, 0)
	layouts := make([]*layout.Layout, 0, len(tables))
	var widths []int
	for ti, t := range tables {
		tlogger := logger.With().Int("table", ti).Logger()
		if res := p.CheckRowsLimit(r, rect.Top-1, t); res != nil {
			return nil, res.LogWith(&tlogger, "CheckRowsLimit")
		}

		tRect, tWidths, l, res := p.Render(f, sheet, t, r, rect, &tlogger)
		if res != nil {
			return nil, res.With("Render")
		}
		widths = layout.ReconcileWidths(widths, tWidths)
		placements = append(placements, l.Placements...)
		layouts = append(layouts, l)

		rResult.PrintedRows += t.RowCount()
		rResult.Tables++
		rect.Top = tRect.Top + tRect.Height + TABLE_GAP
	}

	if res := p.applyWidths(f, sheet, widths, logger); res != nil {
		return nil, res.With("applyWidths")
	}
	for ti, t := range tables {
		if res := p.applyColumnWidths(f, sheet, r, t, layouts[ti], logger); res != nil {
			return nil, res.With("applyColumnWidths")
		}
	}
	rResult.Placements += len(placements)
	return placements, nil
}

func (p *ExcelReportPrinter) Print(r Report, tables ...*layout.Table) *util.Result {
	if res := r.Validate(); res != nil {
		return res.With("Validate")
	}
	if !r.IsValid() {
		return util.MsgError("Print", "invalid report")
	}
	if !r.OutputFormat.IsExcel() {
		return util.MsgError("OutputFormat", "ExcelReportPrinter only support xlsx format")
	}

	rResult, res := NewReportResult(r)
	if res != nil {
		return res.With("NewReportResult")
	}
	p.ReportResults[util.MaybeNil(r.ID)] = rResult
	p.R = r
	logger := rResult.Logger.With().Str("report", *r.ID).Logger()
	p.Logger = &logger

	if len(tables) == 0 {
		logger.Warn().Msg("no table to print")
	}

	f, res := p.openFile(r, rResult, &logger)
	if res != nil {
		return res.With("openFile")
	}
	defer f.Close()

	sheetName := r.SheetName()
	idx, err := f.GetSheetIndex(sheetName)
	if err != nil {
		return util.LogError(&logger, "GetSheetIndex", err)
	}
	if idx < 0 {
		logger.Info().Msgf("new excel sheet name: %s", sheetName)
		if idx, err = f.NewSheet(sheetName); err != nil {
			return util.LogError(&logger, "NewSheet", err)
		}
	}
	slogger := logger.With().Str("sheetName", sheetName).Logger()

	placements, res := p.PrintTo(f, sheetName, r, rResult, tables, &slogger)
	if res != nil {
		rResult.Result = res
		slogger.Err(res).Msg("PrintTo")
		return res.With("PrintTo")
	}
	logger.Info().Msgf("report is printed: %d tables, %d rows", rResult.Tables, rResult.PrintedRows)

	if r.PlanFile != nil && *r.PlanFile != "" {
		pf, err := os.Create(*r.PlanFile)
		if err != nil {
			return util.LogError(&logger, "CreatePlanFile", err)
		}
		res := WritePlan(pf, placements)
		pf.Close()
		if res != nil {
			return res.LogWith(&logger, "WritePlan")
		}
		logger.Info().Msgf("placement plan is saved as [%s]", *r.PlanFile)
	}

	if sheetName != "Sheet1" {
		if rows, err := f.GetRows("Sheet1"); err == nil && len(rows) == 0 {
			f.DeleteSheet("Sheet1")
		}
	}
	if idx, err = f.GetSheetIndex(sheetName); err == nil && idx >= 0 {
		f.SetActiveSheet(idx)
	}
	if err := f.SaveAs(*rResult.ReportFile); err != nil {
		res = util.Error("SaveWorkBook", err)
		logger.Err(res).Msg("SaveWorkBook")
		return res
	}
	logger.Info().Msgf("report is saved as [%s]", *rResult.ReportFile)

	return nil
}
