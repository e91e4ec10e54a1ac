package job

import (
	"fmt"
	"strings"

	"github.com/soderasen-au/go-common/util"
)

type TaskRunner interface {
	Run() *util.Result
}

// ConcurrentTask is implemented by tasks that may run next to their
// neighbours. Tasks without it run alone.
type ConcurrentTask interface {
	Concurrent() bool
}

type TaskRunnerCreator func(s *Script, d *StepDef, n string) (TaskRunner, *util.Result)

var (
	taskRunnerCreators = map[string]TaskRunnerCreator{}
)

func NewTaskRunner(s *Script, d *StepDef, n string) (TaskRunner, *util.Result) {
	d.Cmd = strings.ToLower(d.Cmd)
	if creator, ok := taskRunnerCreators[d.Cmd]; ok {
		return creator(s, d, n)
	}
	return nil, util.MsgError("NewTaskRunner", fmt.Sprintf("no task creator for action: %s", d.Cmd))
}

func RegisterNewTask(cmdName string, creator TaskRunnerCreator) {
	taskRunnerCreators[cmdName] = creator
}

func isConcurrent(t TaskRunner) bool {
	c, ok := t.(ConcurrentTask)
	return ok && c.Concurrent()
}
