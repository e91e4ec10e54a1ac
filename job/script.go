package job

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/soderasen-au/go-common/util"
	"gopkg.in/yaml.v3"

	"github.com/soderasen-au/go-hiertable/publish"
	"github.com/soderasen-au/go-hiertable/report"
	"github.com/soderasen-au/go-hiertable/source"
)

const DEFAULT_CONCURRENCY = 2

type MetaInfo struct {
	ID          string `json:"id,omitempty" yaml:"id,omitempty"`
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// StepDef is one entry of a script's steps. Which fields matter depends on
// Cmd: render reads Tables and Report, publish reads Publish and Target,
// del_file reads Target.
type StepDef struct {
	MetaInfo `json:",inline" yaml:",inline"`

	Cmd     string          `json:"cmd" yaml:"cmd"`
	Target  string          `json:"target,omitempty" yaml:"target,omitempty"`
	Tables  []source.Source `json:"tables,omitempty" yaml:"tables,omitempty"`
	Report  *report.Report  `json:"report,omitempty" yaml:"report,omitempty"`
	Publish *publish.Config `json:"publish,omitempty" yaml:"publish,omitempty"`
}

type Script struct {
	MetaInfo `json:",inline" yaml:",inline"`

	LogFolder    string            `json:"log_folder,omitempty" yaml:"log_folder,omitempty"`
	OutputFolder string            `json:"output_folder,omitempty" yaml:"output_folder,omitempty"`
	Concurrency  int               `json:"concurrency,omitempty" yaml:"concurrency,omitempty"`
	AuditFile    string            `json:"audit_file,omitempty" yaml:"audit_file,omitempty"`
	Vars         map[string]string `json:"vars,omitempty" yaml:"vars,omitempty"`
	Steps        []*StepDef        `json:"steps,omitempty" yaml:"steps,omitempty"`

	Env *ExecEnv `json:"-" yaml:"-"`
}

func ParseScript(data []byte) (*Script, *util.Result) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, util.Error("UnmarshalYAML", err)
	}
	s.setDefaults()
	return &s, nil
}

// LoadScript reads a script file. Relative paths inside the script are
// resolved by the caller's working directory, not the script's.
func LoadScript(path string) (*Script, *util.Result) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, util.Error("ReadFile", err)
	}
	s, res := ParseScript(data)
	if res != nil {
		return nil, res.With(path)
	}
	if s.Name == "" {
		s.Name = filepath.Base(path)
	}
	return s, nil
}

func (s *Script) setDefaults() {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.LogFolder == "" {
		s.LogFolder = "."
	}
	if s.OutputFolder == "" {
		s.OutputFolder = "."
	}
	if s.Concurrency <= 0 {
		s.Concurrency = DEFAULT_CONCURRENCY
	}
}

func (s *Script) CreateExecEnv(logger *zerolog.Logger) {
	s.setDefaults()
	s.Env = NewExecEnv(s.LogFolder, s.Vars, logger)
}

func (s *Script) GenerateTaskRunners() ([]TaskRunner, *util.Result) {
	tasks := make([]TaskRunner, 0, len(s.Steps))
	outputs := make(map[string]string)
	for i, d := range s.Steps {
		if d == nil {
			return nil, util.MsgError(fmt.Sprintf("Step[%d]", i), "empty step")
		}
		group := fmt.Sprintf("Step[%d]", i)
		if d.Name != "" {
			group = fmt.Sprintf("Step[%s]", d.Name)
		}
		task, res := NewTaskRunner(s, d, group)
		if res != nil {
			return nil, res.With(group)
		}

		// two render steps writing one file would race
		if rt, ok := task.(*RenderTask); ok && !rt.Report.IsSub && rt.Report.Name != nil {
			out := rt.OutputFile()
			if prev, dup := outputs[out]; dup {
				return nil, util.MsgError(group, fmt.Sprintf("%s already writes %s", prev, out))
			}
			outputs[out] = group
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (s *Script) NewRequest() (*Request, *util.Result) {
	if s.Env == nil {
		s.CreateExecEnv(nil)
	}
	if s.AuditFile != "" && s.Env.Audit == nil {
		if res := s.Env.OpenAudit(s.Env.Tpl.Render(s.AuditFile)); res != nil {
			return nil, res.With("OpenAudit")
		}
	}
	req := &Request{Script: s}

	tasks, res := s.GenerateTaskRunners()
	if res != nil {
		s.Env.CleanUp()
		return nil, res.With("GenerateTaskRunners")
	}

	req.Tasks = tasks
	return req, nil
}
