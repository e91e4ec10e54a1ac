package job

import (
	"fmt"

	"github.com/soderasen-au/go-common/util"

	"github.com/soderasen-au/go-hiertable/publish"
)

const (
	CMD_NAME_PUBLISH = "publish"

	StashKeyPublished = "_published"
)

func init() {
	RegisterNewTask(CMD_NAME_PUBLISH, NewPublishTask)
}

// PublishTask uploads Target, or every report rendered so far when no
// target is given. Plan files go along with their reports.
type PublishTask struct {
	*CmdTaskBase

	Config publish.Config
	Target string
}

func (t *PublishTask) files() []string {
	if t.Target != "" {
		return []string{t.Target}
	}
	ret := make([]string, 0)
	for _, rr := range t.Script.Env.Reports() {
		if rr.ReportFile != nil {
			ret = append(ret, *rr.ReportFile)
		}
		if rr.PlanFile != nil {
			ret = append(ret, *rr.PlanFile)
		}
	}
	return ret
}

func (t *PublishTask) Run() *util.Result {
	files := t.files()
	if len(files) == 0 {
		t.Logger.Warn().Msg("nothing to publish")
		return util.OK(t.Name)
	}

	uploader, res := publish.NewUploader(t.Config, t.Logger)
	if res != nil {
		return res.LogWith(t.Logger, "NewUploader")
	}

	locations := make(map[string]string, len(files))
	for _, f := range files {
		location, res := uploader.Upload(f)
		if res != nil {
			return res.LogWith(t.Logger, "Upload "+f)
		}
		locations[f] = location
		t.Logger.Info().Str("file", f).Str("id", publish.FileID(location)).Msg("published")
	}
	t.Script.Env.Stash(StashKeyPublished, locations)
	return util.OK(t.Name)
}

func NewPublishTask(s *Script, d *StepDef, n string) (TaskRunner, *util.Result) {
	if d.Cmd != CMD_NAME_PUBLISH {
		return nil, util.MsgError("::Validate", "wrong action name")
	}
	if d.Publish == nil {
		return nil, util.MsgError("::Validate", "publish is not defined")
	}

	t := &PublishTask{Config: *d.Publish}
	t.CmdTaskBase = NewCmdTaskBase(s, d, fmt.Sprintf("%s::%s", n, CMD_NAME_PUBLISH))
	if res := t.CmdTaskBase.Validate(); res != nil {
		return nil, res.With(t.Name + "::ValidateTaskBase")
	}
	if res := t.Config.Validate(); res != nil {
		return nil, res.With(t.Name + "::Config.Validate")
	}
	t.Target = s.Env.Tpl.Render(d.Target)

	return t, nil
}
