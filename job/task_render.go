package job

import (
	"fmt"
	"os"

	"github.com/soderasen-au/go-common/util"

	"github.com/soderasen-au/go-hiertable/report"
	"github.com/soderasen-au/go-hiertable/source"
)

const (
	CMD_NAME_RENDER = "render"

	StashKeyReportResult = "_report_result"
)

func init() {
	RegisterNewTask(CMD_NAME_RENDER, NewRenderTask)
}

type RenderTask struct {
	*CmdTaskBase

	Report  report.Report
	Sources []source.Source
}

// Concurrent is false for appending reports: they open a workbook another
// step writes.
func (t *RenderTask) Concurrent() bool {
	return !t.Report.IsSub
}

func (t *RenderTask) OutputFile() string {
	return t.Report.ReportFile()
}

func (t *RenderTask) Run() *util.Result {
	tables, res := source.LoadAll(t.Sources)
	if res != nil {
		return res.LogWith(t.Logger, "LoadTables")
	}
	t.Logger.Info().Msgf("loaded %d tables", len(tables))

	if err := os.MkdirAll(util.MaybeNil(t.Report.OutputFolder), 0755); err != nil {
		return util.LogError(t.Logger, "MkdirAll", err)
	}

	printer := report.NewBuiltInReportPrinter()
	if res := printer.Print(t.Report, tables...); res != nil {
		return res.LogWith(t.Logger, "printer.Print")
	}
	result, rr := printer.GetReportResult(util.MaybeNil(t.Report.ID))
	if rr != nil {
		return rr.With("GetReportResult")
	}
	t.Logger.Info().Msgf("rendered %s: %d tables, %d rows", util.MaybeNil(result.ReportFile), result.Tables, result.PrintedRows)

	t.Script.Env.AddReport(result)
	if audit := t.Script.Env.Audit; audit != nil {
		if res := audit.Record(report.NewAuditRecord(t.Script.Name, t.Name, result)); res != nil {
			t.Logger.Warn().Msgf("audit: %s", res.Error())
		}
	}
	t.Script.Env.Stash(StashKeyReportResult, result)
	return util.OK(t.Name)
}

func NewRenderTask(s *Script, d *StepDef, n string) (TaskRunner, *util.Result) {
	if d.Cmd != CMD_NAME_RENDER {
		return nil, util.MsgError("::Validate", "wrong action name")
	}
	if d.Report == nil {
		return nil, util.MsgError("::Validate", "report is not defined")
	}
	if len(d.Tables) == 0 {
		return nil, util.MsgError("::Validate", "no tables to render")
	}

	t := &RenderTask{
		Report:  *d.Report,
		Sources: d.Tables,
	}
	t.CmdTaskBase = NewCmdTaskBase(s, d, fmt.Sprintf("%s::%s", n, CMD_NAME_RENDER))
	if res := t.CmdTaskBase.Validate(); res != nil {
		return nil, res.With(t.Name + "::ValidateTaskBase")
	}

	tpl := s.Env.Tpl
	if t.Report.OutputFolder == nil {
		t.Report.OutputFolder = util.Ptr(s.OutputFolder)
	}
	t.Report.Name = tpl.RenderPtr(t.Report.Name)
	t.Report.OutputFolder = tpl.RenderPtr(t.Report.OutputFolder)
	t.Report.PlanFile = tpl.RenderPtr(t.Report.PlanFile)
	t.Report.Sheet = tpl.Render(t.Report.Sheet)
	if t.Report.Title != nil {
		title := *t.Report.Title
		title.Text = tpl.Render(title.Text)
		t.Report.Title = &title
	}

	if res := t.Report.Validate(); res != nil {
		return nil, res.With(t.Name + "::Report.Validate")
	}

	if t.Report.LogFolder == nil {
		t.Report.Logger = t.Logger
	}

	return t, nil
}
