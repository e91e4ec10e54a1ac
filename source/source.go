package source

import (
	"github.com/soderasen-au/go-common/util"

	"github.com/soderasen-au/go-hiertable/layout"
)

// Source names where a table comes from. Exactly one of CSV, YAML or Inline
// is set.
type Source struct {
	CSV    *CSVSource `json:"csv,omitempty" yaml:"csv,omitempty"`
	YAML   string     `json:"yaml,omitempty" yaml:"yaml,omitempty"`
	Inline *TableDoc  `json:"inline,omitempty" yaml:"inline,omitempty"`
}

func (s Source) Load() (*layout.Table, *util.Result) {
	switch {
	case s.CSV != nil:
		t, res := LoadCSV(*s.CSV)
		if res != nil {
			return nil, res.With("LoadCSV")
		}
		return t, nil
	case s.YAML != "":
		t, res := LoadYAML(s.YAML)
		if res != nil {
			return nil, res.With("LoadYAML")
		}
		return t, nil
	case s.Inline != nil:
		t, res := s.Inline.Table()
		if res != nil {
			return nil, res.With("Inline")
		}
		return t, nil
	}
	return nil, util.MsgError("Source", "no csv, yaml or inline table")
}

func LoadAll(sources []Source) ([]*layout.Table, *util.Result) {
	ret := make([]*layout.Table, 0, len(sources))
	for _, s := range sources {
		t, res := s.Load()
		if res != nil {
			return nil, res
		}
		ret = append(ret, t)
	}
	return ret, nil
}
