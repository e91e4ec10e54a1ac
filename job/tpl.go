package job

import (
	"regexp"
	"strings"
	"time"

	"github.com/soderasen-au/go-common/util"
)

type (

	// TplVarMapFunc defines a function type that transform var-name to var-value.
	TplVarMapFunc func(string) string

	// TplVarMapType defines a map where keys are var-name, and values are function that generate var-value.
	TplVarMapType map[string]TplVarMapFunc

	// TplFuncMapFunc defines a function type that processes a slice of strings as parameter list and returns a single string as function result.
	TplFuncMapFunc func([]string) string

	// TplFuncMapType defines a map where keys are function names, and values are functions processing string params to return a string result.
	TplFuncMapType map[string]TplFuncMapFunc
)

var tplPattern = regexp.MustCompile(`\$(\w+)?\(([^)]*)\)`)

func dateFunc(now func() time.Time, days int) TplFuncMapFunc {
	return func(params []string) string {
		d := now().AddDate(0, 0, days)
		if len(params) == 0 {
			return d.Format("2006-01-02")
		}
		return d.Format(util.FromISO8601(params[0]))
	}
}

// Tpl expands `$func(args)` and `$(var)` in report names, titles and paths.
// Unknown functions and variables are left as written.
type Tpl struct {
	Vars  TplVarMapType
	Funcs TplFuncMapType
}

func NewTpl(vars map[string]string) *Tpl {
	t := &Tpl{
		Vars: TplVarMapType{},
		Funcs: TplFuncMapType{
			"today":     dateFunc(time.Now, 0),
			"yesterday": dateFunc(time.Now, -1),
		},
	}
	for k, v := range vars {
		val := v
		t.Vars[k] = func(string) string { return val }
	}
	return t
}

func (t *Tpl) Render(input string) string {
	return tplPattern.ReplaceAllStringFunc(input, func(match string) string {
		matches := tplPattern.FindStringSubmatch(match)
		if len(matches) < 3 {
			return match
		}

		funcName := matches[1]
		params := strings.TrimSpace(matches[2])

		if funcName == "" {
			if varFunc, exists := t.Vars[params]; exists {
				return varFunc(params)
			}
			return match
		}

		paramList := []string{}
		if params != "" {
			paramList = strings.Split(params, ",")
			for i, param := range paramList {
				paramList[i] = strings.TrimSpace(param)
			}
		}
		if function, exists := t.Funcs[funcName]; exists {
			return function(paramList)
		}
		return match
	})
}

// RenderPtr returns a rendered copy of *s; nil stays nil.
func (t *Tpl) RenderPtr(s *string) *string {
	if s == nil {
		return nil
	}
	return util.Ptr(t.Render(*s))
}
