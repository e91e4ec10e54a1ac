package report

import (
	"encoding/csv"
	"os"

	"github.com/soderasen-au/go-common/util"

	"github.com/soderasen-au/go-hiertable/layout"
)

// CsvReportPrinter writes the same grid as the excel printer as plain text:
// merged blocks keep their label in the top-left cell only, styles and
// borders are dropped.
type CsvReportPrinter struct {
	ReportPrinterBase
	Writer *csv.Writer
	Grid   map[layout.Cell]string
	RowCnt int
	ColCnt int
}

func NewCsvReportPrinter() *CsvReportPrinter {
	p := &CsvReportPrinter{}
	p.ReportResults = make(map[string]*ReportResult)
	return p
}

func (p *CsvReportPrinter) put(c layout.Cell, text string) {
	p.Grid[c] = text
	p.RowCnt = util.Max(p.RowCnt, c.Row+1)
	p.ColCnt = util.Max(p.ColCnt, c.Col+1)
}

func (p *CsvReportPrinter) printTable(t *layout.Table, top int) (int, *util.Result) {
	opts := p.R.Options
	opts.HeaderOffset += top
	l, err := layout.Plan(t, opts)
	if err != nil {
		return 0, util.LogError(p.Logger, "Plan", err)
	}

	for _, pl := range l.Placements {
		switch pl.Kind {
		case layout.KindWrite, layout.KindMerge:
			p.put(pl.Range.TopLeft(), layout.DisplayText(pl.Value, pl.Format, opts.NullValue))
		}
	}
	p.Logger.Info().Msgf("table %dx%d at row %d", t.RowCount(), t.ColumnCount(), l.Offset.RowOffset)
	return l.Offset.RowOffset + l.Offset.HeaderRows + t.RowCount(), nil
}

func (p *CsvReportPrinter) flush() *util.Result {
	records := make([][]string, p.RowCnt)
	for ri := range records {
		records[ri] = make([]string, p.ColCnt)
		for ci := range records[ri] {
			records[ri][ci] = p.Grid[layout.Cell{Row: ri, Col: ci}]
		}
	}
	if err := p.Writer.WriteAll(records); err != nil {
		return util.LogError(p.Logger, "WriteAll", err)
	}
	return nil
}

func (p *CsvReportPrinter) Print(r Report, tables ...*layout.Table) *util.Result {
	if res := r.Validate(); res != nil {
		return res.With("Validate")
	}
	if !r.IsValid() {
		return util.MsgError("Print", "invalid report")
	}

	if !r.OutputFormat.IsCsv() {
		return util.MsgError("OutputFormat", "CsvReportPrinter only support csv format")
	}

	rResult, res := NewReportResult(r)
	if res != nil {
		return res.With("NewReportResult")
	}
	p.ReportResults[util.MaybeNil(r.ID)] = rResult
	logger := rResult.Logger.With().Str("report", *r.ID).Logger()
	p.Logger = &logger
	p.R = r
	p.Grid = make(map[layout.Cell]string)
	p.RowCnt, p.ColCnt = 0, 0

	ofs, err := os.OpenFile(util.MaybeNil(rResult.ReportFile), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0755)
	if err != nil {
		return util.Error("OpenFile: "+util.MaybeNil(rResult.ReportFile), err)
	}
	p.Writer = csv.NewWriter(ofs)
	if r.OutputFormat.IsTsv() {
		p.Writer.Comma = '\t'
	}
	defer func() {
		if ofs != nil {
			ofs.Close()
		}
	}()

	top := 0
	if r.Title != nil && r.Title.Text != "" {
		p.put(layout.Cell{Row: 0, Col: r.ColumnOffset}, r.Title.Text)
		top = 2
	}
	for ti, t := range tables {
		bottom, res := p.printTable(t, top)
		if res != nil {
			return res.With("printTable")
		}
		rResult.PrintedRows += t.RowCount()
		rResult.Tables = ti + 1
		top = bottom + TABLE_GAP
	}

	if res := p.flush(); res != nil {
		return res.With("flush")
	}

	err = ofs.Close()
	ofs = nil
	if err != nil {
		return util.Error("Close", err)
	}

	logger.Info().Msgf("report is saved as [%s]", *rResult.ReportFile)

	return nil
}
