package job

import (
	"github.com/rs/zerolog"
	"github.com/soderasen-au/go-common/util"
)

type CmdTaskBase struct {
	Script *Script
	Def    *StepDef
	Name   string
	Logger *zerolog.Logger
}

func NewCmdTaskBase(s *Script, d *StepDef, n string) *CmdTaskBase {
	b := &CmdTaskBase{
		Script: s,
		Def:    d,
		Name:   n,
	}
	if s != nil && s.Env != nil {
		logger := s.Env.Logger().With().Str("id", s.ID).Str("name", s.Name).Str("group", n).Logger()
		b.Logger = &logger
	}
	return b
}

func (b CmdTaskBase) Validate() *util.Result {
	if b.Script == nil {
		return util.MsgError("Script", "nil ptr")
	}

	if b.Script.Env == nil {
		return util.MsgError("Script.Env", "nil ptr")
	}

	if b.Def == nil {
		return util.MsgError("Def", "nil ptr")
	}

	return nil
}
