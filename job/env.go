package job

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/soderasen-au/go-common/loggers"
	"github.com/soderasen-au/go-common/util"

	"github.com/soderasen-au/go-hiertable/report"
)

// ExecEnv is shared by every task of a script run. Render tasks may run
// concurrently, so the stash and report list are guarded.
type ExecEnv struct {
	LogFolder string
	Log       *zerolog.Logger `json:"-"`
	Tpl       *Tpl
	Audit     *report.AuditLog

	mu      sync.Mutex
	stash   map[string]any
	reports []*report.ReportResult
}

func NewExecEnv(logFolder string, vars map[string]string, logger *zerolog.Logger) *ExecEnv {
	env := &ExecEnv{
		LogFolder: logFolder,
		Log:       logger,
		Tpl:       NewTpl(vars),
		stash:     make(map[string]any),
	}
	return env
}

func (env *ExecEnv) CreateLogger() error {
	logFolder := env.LogFolder
	if logFolder == "" {
		logFolder = "logs"
	}
	_ = util.MaybeCreate(logFolder)
	logFile := filepath.Join(logFolder, fmt.Sprintf("hiertable-%s.log", time.Now().Format("2006-01-02-15_04_05")))
	logger, err := loggers.GetLogger(logFile)
	if err != nil {
		return fmt.Errorf("can't get logger: %s", err.Error())
	}
	env.Log = logger

	return nil
}

func (env *ExecEnv) Logger() *zerolog.Logger {
	env.mu.Lock()
	defer env.mu.Unlock()
	if env.Log == nil {
		if err := env.CreateLogger(); err != nil {
			env.Log = loggers.NullLogger
		}
	}

	return env.Log
}

func (env *ExecEnv) OpenAudit(fn string) *util.Result {
	audit, res := report.NewAuditLog(fn)
	if res != nil {
		return res.With("NewAuditLog")
	}
	env.Audit = audit
	return nil
}

func (env *ExecEnv) CleanUp() {
	if env.Audit != nil {
		env.Audit.Close()
		env.Audit = nil
	}
}

func (env *ExecEnv) Stash(key string, v any) {
	env.mu.Lock()
	defer env.mu.Unlock()
	env.stash[key] = v
}

func (env *ExecEnv) Unstash(key string) (any, bool) {
	env.mu.Lock()
	defer env.mu.Unlock()
	v, ok := env.stash[key]
	return v, ok
}

func (env *ExecEnv) UnstashString(key string) (string, bool) {
	v, ok := env.Unstash(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func (env *ExecEnv) AddReport(rr *report.ReportResult) {
	env.mu.Lock()
	defer env.mu.Unlock()
	env.reports = append(env.reports, rr)
}

// Reports lists the reports rendered so far, in completion order.
func (env *ExecEnv) Reports() []*report.ReportResult {
	env.mu.Lock()
	defer env.mu.Unlock()
	ret := make([]*report.ReportResult, len(env.reports))
	copy(ret, env.reports)
	return ret
}
