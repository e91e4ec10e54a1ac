package report

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/soderasen-au/go-common/loggers"
	"github.com/soderasen-au/go-common/util"

	"github.com/soderasen-au/go-hiertable/layout"
)

type ReportFormat string

const (
	REPORT_FORMAT_XLSX ReportFormat = "xlsx"
	REPORT_FORMAT_CSV  ReportFormat = "csv"
	REPORT_FORMAT_TSV  ReportFormat = "tsv"

	// blank rows between stacked tables
	TABLE_GAP int = 3

	SHEET_NAME_LIMIT int = 31
)

func (f ReportFormat) IsExcel() bool {
	return f == REPORT_FORMAT_XLSX
}

func (f ReportFormat) IsCsv() bool {
	return f == REPORT_FORMAT_CSV || f == REPORT_FORMAT_TSV
}

func (f ReportFormat) IsTsv() bool {
	return f == REPORT_FORMAT_TSV
}

func (f ReportFormat) IsValid() bool {
	return f.IsExcel() || f.IsCsv()
}

func (f *ReportFormat) MaybeDefault() {
	if !f.IsValid() {
		*f = REPORT_FORMAT_XLSX
	}
}

type ReportPrinterBase struct {
	ReportResults map[string]*ReportResult //report-id -> report-results
	R             Report
	Logger        *zerolog.Logger
}

type IReportPrinter interface {
	Print(r Report, tables ...*layout.Table) *util.Result
	GetReportResult(id string) (*ReportResult, *util.Result)
}

func (p ReportPrinterBase) GetReportResult(id string) (*ReportResult, *util.Result) {
	result, ok := p.ReportResults[id]
	if !ok {
		return nil, util.MsgError("ReportFiles", "report id doesn't exists")
	}
	return result, nil
}

// Title is printed above the first table, spanning the table width.
type Title struct {
	Text      string  `json:"text" yaml:"text"`
	FontSize  float64 `json:"font_size,omitempty" yaml:"font_size,omitempty"`
	FontColor string  `json:"font_color,omitempty" yaml:"font_color,omitempty"`
	BgColor   string  `json:"bg_color,omitempty" yaml:"bg_color,omitempty"`
	Align     string  `json:"align,omitempty" yaml:"align,omitempty"`
}

func (t Title) Validate() *util.Result {
	if _, err := layout.ParseAlign(t.Align); err != nil {
		return util.Error("ValidateTitle", err)
	}
	return nil
}

// Report holds everything needed to print one or more tables on one sheet.
type Report struct {
	ID    *string `json:"id,omitempty" yaml:"id,omitempty"`
	Name  *string `json:"name,omitempty" yaml:"name,omitempty"`
	IsSub bool    `json:"is_sub,omitempty" yaml:"is_sub,omitempty"`
	Sheet string  `json:"sheet,omitempty" yaml:"sheet,omitempty"`
	Title *Title  `json:"title,omitempty" yaml:"title,omitempty"`

	// layout
	layout.Options `json:",inline" yaml:",inline"`

	// colors: "#RRGGBB", "RGB(r,g,b)", "ARGB(a,r,g,b)" or a color name
	HeaderBgColor      string             `json:"header_bg_color,omitempty" yaml:"header_bg_color,omitempty"`
	HeaderFontColor    string             `json:"header_font_color,omitempty" yaml:"header_font_color,omitempty"`
	IndexBgColor       string             `json:"index_bg_color,omitempty" yaml:"index_bg_color,omitempty"`
	IndexFontColor     string             `json:"index_font_color,omitempty" yaml:"index_font_color,omitempty"`
	HighlightBgColor   string             `json:"highlight_bg_color,omitempty" yaml:"highlight_bg_color,omitempty"`
	HighlightFontColor string             `json:"highlight_font_color,omitempty" yaml:"highlight_font_color,omitempty"`
	ColumnWidths       map[string]float64 `json:"column_widths,omitempty" yaml:"column_widths,omitempty"`

	// output
	OutputFormat *ReportFormat `json:"output_format,omitempty" yaml:"output_format,omitempty"`
	OutputFolder *string       `json:"output_folder,omitempty" yaml:"output_folder,omitempty"`
	PlanFile     *string       `json:"plan_file,omitempty" yaml:"plan_file,omitempty"`

	// logging
	LogFolder *string         `json:"log_folder,omitempty" yaml:"log_folder,omitempty"`
	Logger    *zerolog.Logger `json:"-" yaml:"-"`
}

func (r Report) IsValid() bool {
	if r.ID == nil || r.OutputFormat == nil || r.OutputFolder == nil {
		return false
	}

	if !r.OutputFormat.IsValid() {
		return false
	}

	return r.Options.Validate() == nil
}

func (r *Report) Validate() *util.Result {
	if r.ID == nil {
		id := uuid.NewString()
		if r.Name != nil && *r.Name != "" {
			id = fmt.Sprintf("%s-%s", *r.Name, time.Now().Format("20060102150405"))
		}
		r.ID = &id
	}

	if r.OutputFormat == nil {
		r.OutputFormat = new(ReportFormat)
	}
	r.OutputFormat.MaybeDefault()

	if r.OutputFolder == nil {
		r.OutputFolder = new(string)
	}

	if r.LogFolder == nil {
		r.LogFolder = new(string)
	}

	if r.Title != nil {
		if res := r.Title.Validate(); res != nil {
			return res.With("ValidateReport")
		}
	}

	for _, c := range []string{r.HeaderBgColor, r.HeaderFontColor, r.IndexBgColor, r.IndexFontColor, r.HighlightBgColor, r.HighlightFontColor} {
		if _, res := ParseColor(c); res != nil {
			return res.With("ValidateReport")
		}
	}

	if err := r.Options.Validate(); err != nil {
		return util.Error("ValidateReport", err)
	}

	return nil
}

// SheetName falls back to the report name, then to the report id, and is
// truncated to what spreadsheets accept.
func (r Report) SheetName() string {
	name := r.Sheet
	if name == "" {
		name = util.MaybeNil(r.Name)
	}
	if name == "" {
		name = util.MaybeNil(r.ID)
	}
	name = strings.NewReplacer("/", "_", "\\", "_", "?", "_", "*", "_", "[", "(", "]", ")", ":", "_").Replace(name)
	if len(name) > SHEET_NAME_LIMIT {
		name = name[:SHEET_NAME_LIMIT]
	}
	return name
}

type ReportResult struct {
	ID          string          `json:"id,omitempty" yaml:"id,omitempty"`
	Result      *util.Result    `json:"result,omitempty" yaml:"result,omitempty"`
	ReportFile  *string         `json:"report_file,omitempty" yaml:"report_file,omitempty"`
	LogFile     *string         `json:"log_file,omitempty" yaml:"log_file,omitempty"`
	PlanFile    *string         `json:"plan_file,omitempty" yaml:"plan_file,omitempty"`
	Logger      *zerolog.Logger `json:"-" yaml:"-"`
	PrintedRows int             `json:"printed_rows,omitempty" yaml:"printed_rows,omitempty"`
	Tables      int             `json:"tables,omitempty" yaml:"tables,omitempty"`
	Placements  int             `json:"placements,omitempty" yaml:"placements,omitempty"`
}

// ReportFile is <output_folder>/<name>.<format>, falling back to the id
// when the report has no name.
func (r Report) ReportFile() string {
	format := REPORT_FORMAT_XLSX
	if r.OutputFormat != nil {
		format = *r.OutputFormat
	}
	if r.Name != nil && len(*r.Name) > 0 {
		rn := strings.ReplaceAll(*r.Name, "/", "_")
		rn = strings.ReplaceAll(rn, "\\", "_")
		return filepath.Join(util.MaybeNil(r.OutputFolder), fmt.Sprintf("%s.%s", rn, format))
	}
	return filepath.Join(util.MaybeNil(r.OutputFolder), fmt.Sprintf("%s.%s", util.MaybeNil(r.ID), format))
}

func NewReportResult(r Report) (*ReportResult, *util.Result) {
	if !r.IsValid() {
		return nil, util.MsgError("Check", "invalid report")
	}

	rr := ReportResult{ID: util.MaybeNil(r.ID)}

	rf := r.ReportFile()
	rr.ReportFile = &rf
	rr.PlanFile = r.PlanFile

	if r.Logger != nil {
		rr.Logger = r.Logger
	} else {
		lf := filepath.Join(util.MaybeNil(r.LogFolder), fmt.Sprintf("log-%s.%s", util.MaybeNil(r.ID), "log"))
		rr.LogFile = &lf
		logger, err := loggers.GetLogger(lf)
		if err != nil {
			return nil, util.Error("GetLogger", err)
		}
		rr.Logger = logger
	}

	return &rr, nil
}
